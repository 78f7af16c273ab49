// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/okian/pitchside/internal/domain/types"
)

// ErrUnknownMetric is returned when an assessment names an unregistered metric.
var ErrUnknownMetric = errors.New("unknown metric")

// NewID returns a fresh random identifier.
func NewID() string { return uuid.NewString() }

// Assessment is one recorded test session for an athlete.
// Values are copied in at construction and never change afterwards.
type Assessment struct {
	ID         string
	AthleteID  string
	Age        int
	Position   string
	RecordedAt time.Time

	values map[types.Metric]float64
}

// NewAssessment builds an assessment. NaN and infinite values are dropped
// so they read as missing. Unknown metrics yield ErrUnknownMetric.
func NewAssessment(id, athleteID string, age int, position string, recordedAt time.Time,
	values map[types.Metric]float64,
) (Assessment, error) {
	a := Assessment{
		ID:         id,
		AthleteID:  athleteID,
		Age:        age,
		Position:   position,
		RecordedAt: recordedAt,
		values:     make(map[types.Metric]float64, len(values)),
	}
	for m, v := range values {
		if !m.Known() {
			return Assessment{}, fmt.Errorf("%w: %s", ErrUnknownMetric, m)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		a.values[m] = v
	}
	return a, nil
}

// Value returns the recorded value of m.
func (a Assessment) Value(m types.Metric) (float64, bool) {
	v, ok := a.values[m]
	return v, ok
}

// Values returns a copy of every recorded value.
func (a Assessment) Values() map[types.Metric]float64 {
	out := make(map[types.Metric]float64, len(a.values))
	for m, v := range a.values {
		out[m] = v
	}
	return out
}

// Len is the number of recorded metrics.
func (a Assessment) Len() int { return len(a.values) }

type assessmentJSON struct {
	ID         string                    `json:"id"`
	AthleteID  string                    `json:"athlete_id"`
	Age        int                       `json:"age"`
	Position   string                    `json:"position,omitempty"`
	RecordedAt time.Time                 `json:"recorded_at"`
	Metrics    map[types.Metric]*float64 `json:"metrics"`
}

// MarshalJSON emits recorded metrics only.
func (a Assessment) MarshalJSON() ([]byte, error) {
	out := assessmentJSON{
		ID:         a.ID,
		AthleteID:  a.AthleteID,
		Age:        a.Age,
		Position:   a.Position,
		RecordedAt: a.RecordedAt,
		Metrics:    make(map[types.Metric]*float64, len(a.values)),
	}
	for m, v := range a.values {
		out.Metrics[m] = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts null metric values as absent.
func (a *Assessment) UnmarshalJSON(b []byte) error {
	var in assessmentJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	values := make(map[types.Metric]float64, len(in.Metrics))
	for m, v := range in.Metrics {
		if !m.Known() {
			return fmt.Errorf("%w: %s", ErrUnknownMetric, m)
		}
		if v != nil {
			values[m] = *v
		}
	}
	parsed, err := NewAssessment(in.ID, in.AthleteID, in.Age, in.Position, in.RecordedAt, values)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
