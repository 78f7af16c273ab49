// Package engine runs the full evaluation pipeline for one assessment:
// tiers, scores, gaps and the training program.
package engine

import (
	"time"

	"github.com/okian/pitchside/internal/domain/evaluation"
	"github.com/okian/pitchside/internal/domain/gap"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/periodization"
	"github.com/okian/pitchside/internal/domain/scoring"
	"github.com/okian/pitchside/internal/domain/standards"
	"github.com/okian/pitchside/internal/domain/types"
)

// DefaultReassessmentInterval is the time until the next recommended test.
const DefaultReassessmentInterval = 28 * 24 * time.Hour

// Report is everything derived from one assessment.
type Report struct {
	AssessmentID string        `json:"assessment_id"`
	AthleteID    string        `json:"athlete_id"`
	Age          int           `json:"age"`
	AgeBand      types.AgeBand `json:"age_band"`
	// AgeBandFallback is set when the age fell below every band.
	AgeBandFallback  bool                  `json:"age_band_fallback,omitempty"`
	Evaluation       evaluation.Evaluation `json:"evaluation"`
	Scores           scoring.Scores        `json:"scores"`
	Gaps             gap.Report            `json:"gaps"`
	Plan             periodization.Plan    `json:"plan"`
	PerformanceLevel string                `json:"performance_level"`
	TargetLevel      string                `json:"target_level"`
	NextAssessmentAt time.Time             `json:"next_assessment_at"`
}

// Engine wires the pipeline stages together. Safe for concurrent use.
type Engine struct {
	evaluator *evaluation.Evaluator
	analyzer  *gap.Analyzer
	planner   *periodization.Planner
	interval  time.Duration
	gapLimit  int
	now       func() time.Time
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithReassessmentInterval sets how far after the assessment the next one is due.
func WithReassessmentInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithGapLimit sets how many weaknesses and strengths a report keeps.
func WithGapLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.gapLimit = n
		}
	}
}

// WithClock overrides the time source used for undated assessments.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New returns an Engine evaluating against repo.
func New(repo standards.Repository, opts ...Option) *Engine {
	e := &Engine{
		interval: DefaultReassessmentInterval,
		gapLimit: gap.DefaultLimit,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.evaluator = evaluation.New(repo)
	e.analyzer = gap.New(gap.WithLimit(e.gapLimit))
	e.planner = periodization.New()
	return e
}

// Evaluate builds the report for a.
func (e *Engine) Evaluate(a model.Assessment) Report {
	band, ok := types.AgeBandFor(a.Age)
	ev := e.evaluator.EvaluateAssessment(a, band)
	scores := scoring.Aggregate(ev)
	gaps := e.analyzer.Analyze(ev)

	at := a.RecordedAt
	if at.IsZero() {
		at = e.now()
	}
	return Report{
		AssessmentID:     a.ID,
		AthleteID:        a.AthleteID,
		Age:              a.Age,
		AgeBand:          band,
		AgeBandFallback:  !ok,
		Evaluation:       ev,
		Scores:           scores,
		Gaps:             gaps,
		Plan:             e.planner.Plan(gaps, scores.Overall),
		PerformanceLevel: scoring.PerformanceLevel(scores.Overall),
		TargetLevel:      scoring.TargetLevel(scores.Overall),
		NextAssessmentAt: at.Add(e.interval),
	}
}

// Analyze runs only the gap stage for a in band.
func (e *Engine) Analyze(a model.Assessment, band types.AgeBand) gap.Report {
	return e.analyzer.Analyze(e.evaluator.EvaluateAssessment(a, band))
}

// Benchmark turns a report into a storable benchmark. The store decides
// whether it becomes the baseline.
func Benchmark(a model.Assessment, r Report) model.Benchmark {
	return model.Benchmark{
		ID:               model.NewID(),
		AthleteID:        a.AthleteID,
		Assessment:       a,
		OverallRaw:       r.Scores.OverallRaw,
		OverallScore:     r.Scores.Overall,
		CategoryScores:   r.Scores.ByCategory(),
		PerformanceLevel: r.PerformanceLevel,
	}
}
