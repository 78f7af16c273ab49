package seed

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/types"
)

// Metric value ranges for generated athletes, roughly spanning poor to elite.
var ranges = map[types.Metric][2]float64{
	types.Sprint30m:        {3.8, 5.3},
	types.YoYoTest:         {800, 2500},
	types.VO2Max:           {38, 66},
	types.VerticalJump:     {30, 72},
	types.BodyFat:          {7, 20},
	types.BallControl:      {1, 5},
	types.PassingAccuracy:  {55, 92},
	types.DribblingSuccess: {35, 78},
	types.ShootingAccuracy: {30, 72},
	types.DefensiveDuels:   {35, 78},
	types.GameIntelligence: {1, 5},
	types.Positioning:      {1, 5},
	types.DecisionMaking:   {1, 5},
	types.Coachability:     {1, 5},
	types.MentalToughness:  {1, 5},
}

const (
	minSeedAge       = 12
	maxSeedAge       = 26
	skipProbability  = 0.1
	declineChance    = 0.25
	maxChangeFactor  = 0.08
	followUpInterval = 6 * 7 * 24 * time.Hour
)

var positions = []string{"goalkeeper", "defender", "midfielder", "forward"}

// Pair is the two assessments generated for one athlete.
type Pair struct {
	Baseline model.Assessment `json:"baseline"`
	FollowUp model.Assessment `json:"follow_up"`
}

// Generator produces plausible assessments. Not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
}

// Pairs generates n athletes with a baseline and a follow-up each.
func (g *Generator) Pairs(n int) []Pair {
	out := make([]Pair, n)
	for i := range out {
		out[i] = g.Pair(model.NewID())
	}
	return out
}

// Pair generates a baseline and a follow-up for athleteID. Roughly one in
// ten metrics is left out of both so incomplete assessments are exercised.
func (g *Generator) Pair(athleteID string) Pair {
	age := minSeedAge + g.rng.IntN(maxSeedAge-minSeedAge+1)
	position := positions[g.rng.IntN(len(positions))]
	at := g.now().UTC().Truncate(time.Second)

	base := make(map[types.Metric]float64, len(ranges))
	next := make(map[types.Metric]float64, len(ranges))
	for _, info := range types.Metrics() {
		if g.rng.Float64() < skipProbability {
			continue
		}
		r := ranges[info.Metric]
		v := r[0] + g.rng.Float64()*(r[1]-r[0])
		base[info.Metric] = round(v, info.Unit)
		next[info.Metric] = round(g.change(v, r, info.Direction), info.Unit)
	}

	first, _ := model.NewAssessment(model.NewID(), athleteID, age, position, at.Add(-followUpInterval), base)
	second, _ := model.NewAssessment(model.NewID(), athleteID, age, position, at, next)
	return Pair{Baseline: first, FollowUp: second}
}

// change moves v towards better by up to maxChangeFactor, or worse with
// declineChance, staying inside r.
func (g *Generator) change(v float64, r [2]float64, d types.Direction) float64 {
	step := v * maxChangeFactor * g.rng.Float64()
	better := g.rng.Float64() >= declineChance
	if (d == types.LowerIsBetter) == better {
		step = -step
	}
	return math.Min(r[1], math.Max(r[0], v+step))
}

// round keeps scale ratings whole and other values at two decimals.
func round(v float64, unit string) float64 {
	if unit == "1-5 scale" {
		return math.Round(v)
	}
	return math.Round(v*100) / 100
}
