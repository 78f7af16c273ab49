// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/pitchside/internal/adapters/mq/queue"
	"github.com/okian/pitchside/internal/adapters/repository"
	service "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/domain/benchmark"
	"github.com/okian/pitchside/internal/domain/engine"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/standards"
	"github.com/okian/pitchside/internal/domain/types"
	"github.com/okian/pitchside/pkg/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	EvaluateDependencies
	AssessmentDependencies
	BenchmarkDependencies
	CompareDependencies
	StandardsDependencies
	StatsProvider
}

// EvaluateDependencies runs synchronous evaluation.
type EvaluateDependencies interface {
	Evaluate(ctx context.Context, a model.Assessment) (engine.Report, error)
	EvaluateBatch(ctx context.Context, batch []model.Assessment) ([]engine.Report, error)
}

// AssessmentDependencies accepts assessments for asynchronous processing.
type AssessmentDependencies interface {
	Submit(ctx context.Context, a model.Assessment) (service.Receipt, error)
}

// BenchmarkDependencies reads and prunes stored benchmarks.
type BenchmarkDependencies interface {
	Benchmarks(ctx context.Context, athleteID string) ([]model.Benchmark, error)
	DeleteBenchmark(ctx context.Context, id string) error
	Progress(ctx context.Context, athleteID string) (service.Progress, error)
}

// CompareDependencies compares two assessments.
type CompareDependencies interface {
	Compare(ctx context.Context, current, baseline model.Assessment) benchmark.Comparison
}

// StandardsDependencies exposes the thresholds table.
type StandardsDependencies interface {
	Standards(band string) (map[types.Metric]standards.Thresholds, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	evaluateHandler   *EvaluateHandler
	assessmentHandler *AssessmentHandler
	benchmarkHandler  *BenchmarkHandler
	compareHandler    *CompareHandler
	standardsHandler  *StandardsHandler
	logger            logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		evaluateHandler:   NewEvaluateHandler(deps),
		assessmentHandler: NewAssessmentHandler(deps),
		benchmarkHandler:  NewBenchmarkHandler(deps),
		compareHandler:    NewCompareHandler(deps),
		standardsHandler:  NewStandardsHandler(deps),
		logger:            logger.Get().Named("http"),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, Recover(MetricsMiddleware(h, endpoint), s.logger))
	}

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /stats", "stats", s.statsHandler.HandleStats)
	route("POST /evaluate", "evaluate", s.evaluateHandler.HandleEvaluate)
	route("POST /evaluate/batch", "evaluate_batch", s.evaluateHandler.HandleEvaluateBatch)
	route("POST /assessments", "assessments", s.assessmentHandler.HandlePostAssessment)
	route("GET /benchmarks/{athlete}", "benchmarks", s.benchmarkHandler.HandleList)
	route("DELETE /benchmarks/{athlete}/{id}", "benchmarks_delete", s.benchmarkHandler.HandleDelete)
	route("GET /progress/{athlete}", "progress", s.benchmarkHandler.HandleProgress)
	route("POST /compare", "compare", s.compareHandler.HandleCompare)
	route("GET /standards/{band}", "standards", s.standardsHandler.HandleGetStandards)
}

type ackResponse struct {
	Status    string `json:"status"`
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps domain and service errors onto status codes.
func writeFailure(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, model.ErrUnknownMetric),
		errors.Is(err, service.ErrBatchTooLarge):
		writeError(w, http.StatusBadRequest, "bad_request", tag(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrAgeOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, "age_out_of_range", Wrap(op, err))
	case errors.Is(err, queue.ErrFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", tag(op, ErrBackpressure, err))
	case errors.Is(err, queue.ErrClosed), errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", tag(op, ErrUnavailable, err))
	case errors.Is(err, repository.ErrBaselineImmutable):
		writeError(w, http.StatusConflict, "baseline_immutable", Wrap(op, err))
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrNoProgress),
		errors.Is(err, standards.ErrUnknownBand),
		errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", tag(op, ErrNotFound, err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "unavailable", tag(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// tag applies kind unless err already carries one.
func tag(op string, kind, err error) error {
	var ke *kindError
	if errors.As(err, &ke) {
		return err
	}
	return WrapKind(op, kind, err)
}

// decodeJSON reads one JSON value from the body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// validateAssessment checks the fields the engine cannot default.
func validateAssessment(a model.Assessment) error {
	switch {
	case strings.TrimSpace(a.AthleteID) == "":
		return errors.New("missing athlete_id")
	case a.Age <= 0:
		return errors.New("age must be positive")
	}
	return nil
}
