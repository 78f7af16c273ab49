package api

import (
	"fmt"
	"net/http"

	"github.com/okian/pitchside/internal/domain/engine"
	"github.com/okian/pitchside/internal/domain/model"
)

// EvaluateHandler handles synchronous evaluation requests.
type EvaluateHandler struct {
	deps EvaluateDependencies
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(deps EvaluateDependencies) *EvaluateHandler {
	return &EvaluateHandler{deps: deps}
}

type batchRequest struct {
	Assessments []model.Assessment `json:"assessments"`
}

type batchResponse struct {
	Reports []engine.Report `json:"reports"`
}

// HandleEvaluate handles POST /evaluate requests.
func (h *EvaluateHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate"
	var a model.Assessment
	if err := decodeJSON(r, &a); err != nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateAssessment(a); err != nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	report, err := h.deps.Evaluate(r.Context(), a)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleEvaluateBatch handles POST /evaluate/batch requests.
func (h *EvaluateHandler) HandleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate_batch"
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Assessments) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	for i, a := range req.Assessments {
		if err := validateAssessment(a); err != nil {
			writeFailure(w, op, WrapKind(op, ErrBadRequest, fmt.Errorf("assessment %d: %w", i, err)))
			return
		}
	}
	reports, err := h.deps.EvaluateBatch(r.Context(), req.Assessments)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Reports: reports})
}
