package periodization

// Variant is the program rendered at one training frequency.
type Variant struct {
	DaysPerWeek int         `json:"days_per_week"`
	Schedule    string      `json:"schedule"`
	Intensity   string      `json:"intensity"`
	Phases      []PhaseDays `json:"phases"`
	TotalDays   int         `json:"total_days"`
	Recommended bool        `json:"recommended"`
}

// PhaseDays is a phase with its session count at one frequency.
type PhaseDays struct {
	Name         string `json:"name"`
	Weeks        int    `json:"weeks"`
	TrainingDays int    `json:"training_days"`
}

var frequencies = []struct {
	days      int
	schedule  string
	intensity string
}{
	{3, "Mon/Wed/Fri or Tue/Thu/Sat", "Moderate - Good for beginners"},
	{4, "Mon/Tue/Thu/Sat", "High - Recommended for development"},
	{5, "Mon-Fri", "Maximum - For elite progression"},
}

// Frequency recommends sessions per week from the normalized overall score.
func Frequency(overall float64) int {
	switch {
	case overall < 40:
		return 3
	case overall < 70:
		return 4
	}
	return 5
}

// Variants renders phases at 3, 4 and 5 days per week.
func Variants(phases []Phase, recommended int) []Variant {
	out := make([]Variant, 0, len(frequencies))
	for _, f := range frequencies {
		v := Variant{
			DaysPerWeek: f.days,
			Schedule:    f.schedule,
			Intensity:   f.intensity,
			Recommended: f.days == recommended,
		}
		for _, ph := range phases {
			days := ph.Weeks * f.days
			v.Phases = append(v.Phases, PhaseDays{Name: ph.Name, Weeks: ph.Weeks, TrainingDays: days})
			v.TotalDays += days
		}
		out = append(out, v)
	}
	return out
}
