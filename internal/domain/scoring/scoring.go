// Package scoring aggregates per-metric tiers into category and overall scores.
package scoring

import (
	"github.com/okian/pitchside/internal/domain/evaluation"
	"github.com/okian/pitchside/internal/domain/types"
)

// NormalizeFactor converts the 0-5 raw scale to 0-100.
const NormalizeFactor = 20

// MaxRaw is the best possible raw score.
const MaxRaw = 5

var weights = map[types.Category]float64{
	types.Physical:      0.20,
	types.Technical:     0.40,
	types.Tactical:      0.30,
	types.Psychological: 0.10,
}

// Weight returns the fixed overall weight of c.
func Weight(c types.Category) float64 { return weights[c] }

// Normalize maps a raw 0-5 score to 0-100.
func Normalize(raw float64) float64 { return raw * NormalizeFactor }

// CategoryScore is the mean tier score of one category.
type CategoryScore struct {
	Category   types.Category `json:"category"`
	Raw        float64        `json:"raw"`
	Normalized float64        `json:"normalized"`
	// Valid is the number of metrics that produced a tier.
	Valid int `json:"valid_metrics"`
}

// Scores holds every category score plus the weighted overall score.
type Scores struct {
	Categories []CategoryScore `json:"categories"`
	OverallRaw float64         `json:"overall_raw"`
	Overall    float64         `json:"overall"`
}

// Category returns the score of c.
func (s Scores) Category(c types.Category) (CategoryScore, bool) {
	for _, cs := range s.Categories {
		if cs.Category == c {
			return cs, true
		}
	}
	return CategoryScore{}, false
}

// ByCategory returns the normalized category scores keyed by category.
func (s Scores) ByCategory() map[types.Category]float64 {
	out := make(map[types.Category]float64, len(s.Categories))
	for _, cs := range s.Categories {
		out[cs.Category] = cs.Normalized
	}
	return out
}

// Aggregate computes category means and the weighted overall score.
// Excluded metrics count in neither numerator nor denominator. A category
// with no valid metric scores zero and still carries its weight.
func Aggregate(ev evaluation.Evaluation) Scores {
	sum := make(map[types.Category]float64, len(types.Categories))
	n := make(map[types.Category]int, len(types.Categories))
	for _, r := range ev.Results {
		if !r.Tier.Valid() {
			continue
		}
		sum[r.Category] += r.Score()
		n[r.Category]++
	}

	var s Scores
	for _, c := range types.Categories {
		cs := CategoryScore{Category: c, Valid: n[c]}
		if n[c] > 0 {
			cs.Raw = sum[c] / float64(n[c])
		}
		cs.Normalized = Normalize(cs.Raw)
		s.Categories = append(s.Categories, cs)
		s.OverallRaw += cs.Raw * weights[c]
	}
	s.Overall = Normalize(s.OverallRaw)
	return s
}
