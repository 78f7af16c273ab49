// Package gap measures how far an athlete is from the top of each category
// and ranks their weakest and strongest metrics.
package gap

import (
	"sort"

	"github.com/okian/pitchside/internal/domain/evaluation"
	"github.com/okian/pitchside/internal/domain/scoring"
	"github.com/okian/pitchside/internal/domain/types"
)

// DefaultLimit is the number of weaknesses and strengths kept.
const DefaultLimit = 4

// Category gap ratings.
const (
	RatingSignificant = "Needs Significant Work"
	RatingRoom        = "Room for Improvement"
	RatingStrong      = "Strong"
)

// CategoryGap is the distance of one category from a perfect score.
type CategoryGap struct {
	Category types.Category `json:"category"`
	// MeanGap is on the 0-5 scale, Percent on 0-100.
	MeanGap float64 `json:"mean_gap"`
	Percent float64 `json:"gap_percent"`
	Rating  string  `json:"rating,omitempty"`
	// Valid is false when no metric of the category was evaluated.
	Valid bool `json:"valid"`
}

// Weakness is a poor or average metric with its improvement target.
type Weakness struct {
	Metric   types.Metric   `json:"metric"`
	Category types.Category `json:"category"`
	Tier     types.Tier     `json:"tier"`
	Gap      float64        `json:"gap"`
	Current  float64        `json:"current"`
	Target   float64        `json:"target"`
	// Delta is the signed change needed to reach Target. Positive means
	// the value must move in the metric's better direction by that amount.
	Delta float64 `json:"improvement_needed"`
}

// Strength is a good or excellent metric.
type Strength struct {
	Metric   types.Metric   `json:"metric"`
	Category types.Category `json:"category"`
	Tier     types.Tier     `json:"tier"`
	Score    float64        `json:"score"`
	Current  float64        `json:"current"`
}

// Report is the full gap analysis of one evaluation.
type Report struct {
	Categories []CategoryGap `json:"categories"`
	Weaknesses []Weakness    `json:"weaknesses"`
	Strengths  []Strength    `json:"strengths"`
}

// Category returns the gap of c.
func (r Report) Category(c types.Category) (CategoryGap, bool) {
	for _, cg := range r.Categories {
		if cg.Category == c {
			return cg, true
		}
	}
	return CategoryGap{}, false
}

// Analyzer builds gap reports.
type Analyzer struct {
	limit int
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithLimit sets how many weaknesses and strengths are kept.
func WithLimit(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.limit = n
		}
	}
}

// New returns an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{limit: DefaultLimit}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Rating labels a mean gap on the 0-5 scale.
func Rating(meanGap float64) string {
	switch {
	case meanGap > 2:
		return RatingSignificant
	case meanGap > 1:
		return RatingRoom
	}
	return RatingStrong
}

// Analyze computes category gaps and ranked weaknesses and strengths.
func (a *Analyzer) Analyze(ev evaluation.Evaluation) Report {
	sum := make(map[types.Category]float64, len(types.Categories))
	n := make(map[types.Category]int, len(types.Categories))

	var rep Report
	for _, r := range ev.Results {
		if !r.Tier.Valid() {
			continue
		}
		g := scoring.MaxRaw - r.Score()
		sum[r.Category] += g
		n[r.Category]++

		if r.Tier.Weak() {
			rep.Weaknesses = append(rep.Weaknesses, weakness(r, g))
		} else {
			rep.Strengths = append(rep.Strengths, Strength{
				Metric:   r.Metric,
				Category: r.Category,
				Tier:     r.Tier,
				Score:    r.Score(),
				Current:  r.Value,
			})
		}
	}

	for _, c := range types.Categories {
		cg := CategoryGap{Category: c}
		if n[c] > 0 {
			cg.Valid = true
			cg.MeanGap = sum[c] / float64(n[c])
			cg.Percent = clamp(cg.MeanGap / scoring.MaxRaw * 100)
			cg.Rating = Rating(cg.MeanGap)
		}
		rep.Categories = append(rep.Categories, cg)
	}

	sort.SliceStable(rep.Weaknesses, func(i, j int) bool {
		wi, wj := rep.Weaknesses[i], rep.Weaknesses[j]
		if wi.Gap != wj.Gap {
			return wi.Gap > wj.Gap
		}
		return types.Order(wi.Metric) < types.Order(wj.Metric)
	})
	sort.SliceStable(rep.Strengths, func(i, j int) bool {
		si, sj := rep.Strengths[i], rep.Strengths[j]
		if si.Score != sj.Score {
			return si.Score > sj.Score
		}
		return types.Order(si.Metric) < types.Order(sj.Metric)
	})
	rep.Weaknesses = truncate(rep.Weaknesses, a.limit)
	rep.Strengths = truncate(rep.Strengths, a.limit)
	return rep
}

// targetTier is the bar a weakness is measured against.
const targetTier = types.Good

func weakness(r evaluation.Result, g float64) Weakness {
	info, _ := types.Lookup(r.Metric)
	target := r.Thresholds.Of(targetTier)
	delta := target - r.Value
	if info.Direction == types.LowerIsBetter {
		delta = r.Value - target
	}
	return Weakness{
		Metric:   r.Metric,
		Category: r.Category,
		Tier:     r.Tier,
		Gap:      g,
		Current:  r.Value,
		Target:   target,
		Delta:    delta,
	}
}

func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
