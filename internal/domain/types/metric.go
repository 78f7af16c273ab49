package types

// Metric identifies one measured test.
type Metric string

const (
	Sprint30m        Metric = "sprint_30m"
	YoYoTest         Metric = "yo_yo_test"
	VO2Max           Metric = "vo2_max"
	VerticalJump     Metric = "vertical_jump"
	BodyFat          Metric = "body_fat"
	BallControl      Metric = "ball_control"
	PassingAccuracy  Metric = "passing_accuracy"
	DribblingSuccess Metric = "dribbling_success"
	ShootingAccuracy Metric = "shooting_accuracy"
	DefensiveDuels   Metric = "defensive_duels"
	GameIntelligence Metric = "game_intelligence"
	Positioning      Metric = "positioning"
	DecisionMaking   Metric = "decision_making"
	Coachability     Metric = "coachability"
	MentalToughness  Metric = "mental_toughness"
)

// MetricInfo describes a registered metric.
type MetricInfo struct {
	Metric    Metric
	Category  Category
	Direction Direction
	Unit      string
}

// registry order is the canonical tie-break order.
var registry = []MetricInfo{
	{Sprint30m, Physical, LowerIsBetter, "seconds"},
	{YoYoTest, Physical, HigherIsBetter, "meters"},
	{VO2Max, Physical, HigherIsBetter, "ml/kg/min"},
	{VerticalJump, Physical, HigherIsBetter, "cm"},
	{BodyFat, Physical, LowerIsBetter, "%"},
	{BallControl, Technical, HigherIsBetter, "1-5 scale"},
	{PassingAccuracy, Technical, HigherIsBetter, "%"},
	{DribblingSuccess, Technical, HigherIsBetter, "%"},
	{ShootingAccuracy, Technical, HigherIsBetter, "%"},
	{DefensiveDuels, Technical, HigherIsBetter, "%"},
	{GameIntelligence, Tactical, HigherIsBetter, "1-5 scale"},
	{Positioning, Tactical, HigherIsBetter, "1-5 scale"},
	{DecisionMaking, Tactical, HigherIsBetter, "1-5 scale"},
	{Coachability, Psychological, HigherIsBetter, "1-5 scale"},
	{MentalToughness, Psychological, HigherIsBetter, "1-5 scale"},
}

var index = func() map[Metric]int {
	m := make(map[Metric]int, len(registry))
	for i, info := range registry {
		m[info.Metric] = i
	}
	return m
}()

// Metrics returns every registered metric in registry order.
func Metrics() []MetricInfo {
	out := make([]MetricInfo, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the registry entry for m.
func Lookup(m Metric) (MetricInfo, bool) {
	i, ok := index[m]
	if !ok {
		return MetricInfo{}, false
	}
	return registry[i], true
}

// Order returns the registry position of m, or -1 when unknown.
func Order(m Metric) int {
	if i, ok := index[m]; ok {
		return i
	}
	return -1
}

// Known reports whether m is registered.
func (m Metric) Known() bool {
	_, ok := index[m]
	return ok
}

// MetricsIn returns the metrics of category c in registry order.
func MetricsIn(c Category) []Metric {
	var out []Metric
	for _, info := range registry {
		if info.Category == c {
			out = append(out, info.Metric)
		}
	}
	return out
}
