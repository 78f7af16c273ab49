// Package benchmark compares two assessments of the same athlete.
package benchmark

import (
	"math"

	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/types"
)

// DefaultSignificancePct is the change at or below which a metric is maintained.
const DefaultSignificancePct = 2.0

// DefaultMetrics is the comparison set used unless overridden.
var DefaultMetrics = []types.Metric{
	types.Sprint30m,
	types.YoYoTest,
	types.VO2Max,
	types.BallControl,
	types.PassingAccuracy,
}

// Outcome classifies one compared metric.
type Outcome string

const (
	Improvement Outcome = "improvement"
	Decline     Outcome = "decline"
	Maintained  Outcome = "maintained"
)

// Change is the comparison of one metric.
type Change struct {
	Metric   types.Metric `json:"metric"`
	Current  float64      `json:"current"`
	Baseline float64      `json:"baseline"`
	// Delta is current minus baseline.
	Delta float64 `json:"change"`
	// Percent is the absolute change relative to the baseline.
	Percent float64 `json:"percent_change"`
	Outcome Outcome `json:"outcome"`
}

// Comparison buckets every compared metric.
type Comparison struct {
	Improvements []Change       `json:"improvements"`
	Declines     []Change       `json:"declines"`
	Maintained   []Change       `json:"maintained"`
	Incomparable []types.Metric `json:"incomparable,omitempty"`
	// OverallChangePct is the signed change of the normalized overall score,
	// set only when comparing benchmarks with a non-zero baseline score.
	OverallChangePct *float64 `json:"overall_change_pct,omitempty"`
}

// Changes returns every classified change grouped by outcome.
func (c Comparison) Changes() []Change {
	out := make([]Change, 0, len(c.Improvements)+len(c.Declines)+len(c.Maintained))
	out = append(out, c.Improvements...)
	out = append(out, c.Declines...)
	out = append(out, c.Maintained...)
	return out
}

// Comparator diffs assessments over a fixed metric set.
type Comparator struct {
	metrics      []types.Metric
	significance float64
}

// Option applies a configuration option to the Comparator.
type Option func(*Comparator)

// WithMetrics replaces the comparison set. Unknown metrics are ignored.
func WithMetrics(ms ...types.Metric) Option {
	return func(c *Comparator) {
		var keep []types.Metric
		for _, m := range ms {
			if m.Known() {
				keep = append(keep, m)
			}
		}
		if len(keep) > 0 {
			c.metrics = keep
		}
	}
}

// WithSignificancePct sets the maintained floor.
func WithSignificancePct(pct float64) Option {
	return func(c *Comparator) {
		if pct >= 0 {
			c.significance = pct
		}
	}
}

// New returns a Comparator over DefaultMetrics.
func New(opts ...Option) *Comparator {
	c := &Comparator{
		metrics:      append([]types.Metric(nil), DefaultMetrics...),
		significance: DefaultSignificancePct,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Metrics returns the comparison set.
func (c *Comparator) Metrics() []types.Metric {
	return append([]types.Metric(nil), c.metrics...)
}

// Compare classifies each metric of the set. A metric missing on either
// side, or with a zero baseline, is incomparable.
func (c *Comparator) Compare(current, baseline model.Assessment) Comparison {
	var out Comparison
	for _, m := range c.metrics {
		cur, okCur := current.Value(m)
		base, okBase := baseline.Value(m)
		if !okCur || !okBase || base == 0 {
			out.Incomparable = append(out.Incomparable, m)
			continue
		}
		ch := c.change(m, cur, base)
		switch ch.Outcome {
		case Improvement:
			out.Improvements = append(out.Improvements, ch)
		case Decline:
			out.Declines = append(out.Declines, ch)
		default:
			out.Maintained = append(out.Maintained, ch)
		}
	}
	return out
}

// CompareBenchmarks compares the assessments and the overall scores.
func (c *Comparator) CompareBenchmarks(current, baseline model.Benchmark) Comparison {
	out := c.Compare(current.Assessment, baseline.Assessment)
	if baseline.OverallScore != 0 {
		pct := (current.OverallScore - baseline.OverallScore) / baseline.OverallScore * 100
		out.OverallChangePct = &pct
	}
	return out
}

func (c *Comparator) change(m types.Metric, cur, base float64) Change {
	info, _ := types.Lookup(m)
	delta := cur - base
	ch := Change{
		Metric:   m,
		Current:  cur,
		Baseline: base,
		Delta:    delta,
		Percent:  math.Abs(delta/base) * 100,
	}
	switch {
	case ch.Percent <= c.significance:
		ch.Outcome = Maintained
	case info.Direction.Better(cur, base):
		ch.Outcome = Improvement
	default:
		ch.Outcome = Decline
	}
	return ch
}
