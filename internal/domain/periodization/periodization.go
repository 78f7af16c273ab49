// Package periodization sizes a multi-phase training program from gap analysis.
package periodization

import (
	"sort"

	"github.com/okian/pitchside/internal/domain/gap"
	"github.com/okian/pitchside/internal/domain/types"
)

// Phase names.
const (
	Foundation  = "Foundation Phase"
	Development = "Development Phase"
	Peak        = "Peak Performance Phase"
)

// MinWeeks is the shortest program and the fallback when nothing was measured.
const MinWeeks = 8

// foundationGap is the average gap above which a Foundation phase is added.
const foundationGap = 30

// maxFocus is the number of weakest categories a Development phase targets.
const maxFocus = 2

// Phase is one block of the program.
type Phase struct {
	Name       string   `json:"name"`
	Weeks      int      `json:"weeks"`
	Focus      []string `json:"focus"`
	Objectives []string `json:"objectives"`
}

// Plan is a program skeleton with its frequency variants.
type Plan struct {
	TotalWeeks int     `json:"total_weeks"`
	AvgGap     float64 `json:"average_gap"`
	// Fallback is set when no category had a valid metric.
	Fallback        bool      `json:"fallback,omitempty"`
	Phases          []Phase   `json:"phases"`
	RecommendedDays int       `json:"recommended_days_per_week"`
	Variants        []Variant `json:"variants"`
}

// Recommended returns the variant matching RecommendedDays.
func (p Plan) Recommended() (Variant, bool) {
	for _, v := range p.Variants {
		if v.Recommended {
			return v, true
		}
	}
	return Variant{}, false
}

// Planner builds plans. The zero value is ready to use.
type Planner struct{}

// New returns a Planner.
func New() *Planner { return &Planner{} }

// TotalWeeks maps an average gap percent onto a program length.
func TotalWeeks(avgGap float64) int {
	switch {
	case avgGap > 40:
		return 16
	case avgGap > 25:
		return 12
	case avgGap > 15:
		return 10
	}
	return MinWeeks
}

// AverageGap is the mean gap percent across all categories. A category
// without a valid metric counts as zero. ok is false when no category has one.
func AverageGap(r gap.Report) (avg float64, ok bool) {
	var sum float64
	for _, cg := range r.Categories {
		if !cg.Valid {
			continue
		}
		sum += cg.Percent
		ok = true
	}
	if !ok {
		return 0, false
	}
	return sum / float64(len(types.Categories)), true
}

// Plan derives the program for a gap report and normalized overall score.
func (p *Planner) Plan(r gap.Report, overall float64) Plan {
	avg, ok := AverageGap(r)
	plan := Plan{AvgGap: avg, Fallback: !ok}
	if ok {
		plan.TotalWeeks = TotalWeeks(avg)
	} else {
		plan.TotalWeeks = MinWeeks
	}
	plan.Phases = Phases(plan.TotalWeeks, ok && avg > foundationGap, weakestCategories(r))
	plan.RecommendedDays = Frequency(overall)
	plan.Variants = Variants(plan.Phases, plan.RecommendedDays)
	return plan
}

// Phases splits total weeks into phases. Foundation and Development are
// rounded up and Peak takes the remainder, so the weeks always sum to total.
func Phases(total int, withFoundation bool, focus []string) []Phase {
	if len(focus) == 0 {
		focus = []string{"Skill refinement", "Tactics"}
	}
	dev := Phase{
		Name:       Development,
		Focus:      focus,
		Objectives: []string{"Improve weak areas and integrate skills", "Progressive overload"},
	}
	peak := Phase{
		Name:       Peak,
		Focus:      []string{"Match scenarios", "High intensity", "Competition prep"},
		Objectives: []string{"Maximize performance and game readiness"},
	}

	if !withFoundation {
		dev.Weeks = ceilPct(total, 50)
		peak.Weeks = total - dev.Weeks
		return []Phase{dev, peak}
	}

	found := Phase{
		Name:       Foundation,
		Weeks:      ceilPct(total, 35),
		Focus:      []string{"Physical conditioning", "Basic technique", "Movement patterns"},
		Objectives: []string{"Build fitness base and correct fundamental movements"},
	}
	dev.Weeks = ceilPct(total, 40)
	peak.Weeks = total - found.Weeks - dev.Weeks
	return []Phase{found, dev, peak}
}

func ceilPct(total, pct int) int {
	return (total*pct + 99) / 100
}

// weakestCategories names up to two valid categories with the largest
// positive gap. Ties keep category order.
func weakestCategories(r gap.Report) []string {
	var cands []gap.CategoryGap
	for _, cg := range r.Categories {
		if cg.Valid && cg.Percent > 0 {
			cands = append(cands, cg)
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Percent > cands[j].Percent
	})
	if len(cands) > maxFocus {
		cands = cands[:maxFocus]
	}
	out := make([]string, 0, len(cands))
	for _, cg := range cands {
		out = append(out, focusName(cg.Category))
	}
	return out
}

func focusName(c types.Category) string {
	return c.Label() + " skills"
}
