// Package standards holds the validated age-band threshold table.
package standards

import (
	"fmt"

	"github.com/okian/pitchside/internal/domain/types"
)

// Thresholds are the four tier cut-offs of one metric in one band.
type Thresholds struct {
	Excellent float64 `yaml:"excellent" json:"excellent"`
	Good      float64 `yaml:"good" json:"good"`
	Average   float64 `yaml:"average" json:"average"`
	Poor      float64 `yaml:"poor" json:"poor"`
}

// Of returns the cut-off for tier, or zero for an unknown tier.
func (t Thresholds) Of(tier types.Tier) float64 {
	switch tier {
	case types.Excellent:
		return t.Excellent
	case types.Good:
		return t.Good
	case types.Average:
		return t.Average
	case types.Poor:
		return t.Poor
	}
	return 0
}

// monotonic reports whether every cut-off is strictly better than the next one.
func (t Thresholds) monotonic(d types.Direction) bool {
	return d.Better(t.Excellent, t.Good) && d.Better(t.Good, t.Average) && d.Better(t.Average, t.Poor)
}

// Repository resolves thresholds for a band and metric.
type Repository interface {
	Lookup(band types.AgeBand, metric types.Metric) (Thresholds, bool)
}

// Table is an immutable, validated standards table. Safe for concurrent use.
type Table struct {
	rows    map[types.AgeBand]map[types.Metric]Thresholds
	partial bool
}

var _ Repository = (*Table)(nil)

// New validates rows and builds a Table. The input is copied.
func New(rows map[types.AgeBand]map[types.Metric]Thresholds, opts ...Option) (*Table, error) {
	t := &Table{rows: make(map[types.AgeBand]map[types.Metric]Thresholds, len(rows))}
	for _, opt := range opts {
		opt(t)
	}

	for band, metrics := range rows {
		if _, ok := types.ParseAgeBand(string(band)); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBand, band)
		}
		row := make(map[types.Metric]Thresholds, len(metrics))
		for m, th := range metrics {
			info, ok := types.Lookup(m)
			if !ok {
				return nil, fmt.Errorf("%w: %q in band %s", ErrUnknownMetric, m, band)
			}
			if !th.monotonic(info.Direction) {
				return nil, fmt.Errorf("%w: %s/%s (%s is better) %+v",
					ErrNonMonotonic, band, m, info.Direction, th)
			}
			row[m] = th
		}
		t.rows[band] = row
	}

	if !t.partial {
		for _, band := range types.AgeBands {
			for _, info := range types.Metrics() {
				if _, ok := t.rows[band][info.Metric]; !ok {
					return nil, fmt.Errorf("%w: missing %s/%s", ErrIncomplete, band, info.Metric)
				}
			}
		}
	}
	return t, nil
}

// Lookup returns the thresholds of metric in band.
func (t *Table) Lookup(band types.AgeBand, metric types.Metric) (Thresholds, bool) {
	th, ok := t.rows[band][metric]
	return th, ok
}

// Band returns a copy of every threshold defined for band.
func (t *Table) Band(band types.AgeBand) (map[types.Metric]Thresholds, bool) {
	row, ok := t.rows[band]
	if !ok {
		return nil, false
	}
	out := make(map[types.Metric]Thresholds, len(row))
	for m, th := range row {
		out[m] = th
	}
	return out, true
}
