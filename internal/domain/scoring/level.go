package scoring

// Performance levels derived from the normalized overall score.
const (
	LevelElite        = "Elite"
	LevelAdvanced     = "Advanced"
	LevelIntermediate = "Intermediate"
	LevelDeveloping   = "Developing"
	LevelBeginner     = "Beginner"
)

// PerformanceLevel labels a normalized overall score.
func PerformanceLevel(overall float64) string {
	switch {
	case overall >= 85:
		return LevelElite
	case overall >= 75:
		return LevelAdvanced
	case overall >= 65:
		return LevelIntermediate
	case overall >= 50:
		return LevelDeveloping
	}
	return LevelBeginner
}

// TargetLevel names the next level to work towards.
func TargetLevel(overall float64) string {
	switch {
	case overall < 40:
		return "Intermediate Level"
	case overall < 60:
		return "Advanced Level"
	case overall < 80:
		return "Elite Level"
	}
	return "Professional Level"
}
