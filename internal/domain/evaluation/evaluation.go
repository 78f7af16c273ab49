// Package evaluation maps raw metric values onto performance tiers.
package evaluation

import (
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/standards"
	"github.com/okian/pitchside/internal/domain/types"
)

// Reason explains why a metric was left out of scoring.
type Reason string

const (
	MissingValue    Reason = "missing_value"
	MissingStandard Reason = "missing_standard"
)

// Result is the judgment of one metric.
type Result struct {
	Metric     types.Metric         `json:"metric"`
	Category   types.Category       `json:"category"`
	Value      float64              `json:"value"`
	Tier       types.Tier           `json:"tier"`
	Thresholds standards.Thresholds `json:"thresholds"`
}

// Score is the tier's value on the shared scoring scale.
func (r Result) Score() float64 { return r.Tier.Score() }

// Exclusion records a metric that produced no result.
type Exclusion struct {
	Metric types.Metric `json:"metric"`
	Reason Reason       `json:"reason"`
}

// Evaluation collects the per-metric results of one assessment.
// Results and Exclusions are in registry order.
type Evaluation struct {
	Band       types.AgeBand `json:"age_band"`
	Results    []Result      `json:"results"`
	Exclusions []Exclusion   `json:"exclusions,omitempty"`
}

// Evaluator judges values against a standards repository.
type Evaluator struct {
	repo standards.Repository
}

// New returns an Evaluator backed by repo.
func New(repo standards.Repository) *Evaluator {
	return &Evaluator{repo: repo}
}

// Evaluate returns the tier of value for metric in band. ok is false when
// no standard exists. Boundary values take the better tier.
func (e *Evaluator) Evaluate(value float64, metric types.Metric, band types.AgeBand) (types.Tier, bool) {
	info, known := types.Lookup(metric)
	if !known {
		return 0, false
	}
	th, ok := e.repo.Lookup(band, metric)
	if !ok {
		return 0, false
	}
	return Classify(value, th, info.Direction), true
}

// Classify is the step function behind Evaluate.
func Classify(value float64, th standards.Thresholds, dir types.Direction) types.Tier {
	atLeast := func(cut float64) bool {
		if dir == types.LowerIsBetter {
			return value <= cut
		}
		return value >= cut
	}
	for _, tier := range types.Tiers[:len(types.Tiers)-1] {
		if atLeast(th.Of(tier)) {
			return tier
		}
	}
	return types.Poor
}

// EvaluateAssessment judges every registered metric of a.
func (e *Evaluator) EvaluateAssessment(a model.Assessment, band types.AgeBand) Evaluation {
	ev := Evaluation{Band: band}
	for _, info := range types.Metrics() {
		v, ok := a.Value(info.Metric)
		if !ok {
			ev.Exclusions = append(ev.Exclusions, Exclusion{Metric: info.Metric, Reason: MissingValue})
			continue
		}
		th, ok := e.repo.Lookup(band, info.Metric)
		if !ok {
			ev.Exclusions = append(ev.Exclusions, Exclusion{Metric: info.Metric, Reason: MissingStandard})
			continue
		}
		ev.Results = append(ev.Results, Result{
			Metric:     info.Metric,
			Category:   info.Category,
			Value:      v,
			Tier:       Classify(v, th, info.Direction),
			Thresholds: th,
		})
	}
	return ev
}
