package api

import (
	"net/http"

	"github.com/okian/pitchside/internal/domain/model"
)

// AssessmentHandler handles asynchronous assessment intake.
type AssessmentHandler struct {
	deps AssessmentDependencies
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(deps AssessmentDependencies) *AssessmentHandler {
	return &AssessmentHandler{deps: deps}
}

// HandlePostAssessment handles POST /assessments requests.
// Accepted assessments are evaluated and stored as benchmarks by the workers.
func (h *AssessmentHandler) HandlePostAssessment(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_assessment"
	var a model.Assessment
	if err := decodeJSON(r, &a); err != nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateAssessment(a); err != nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	receipt, err := h.deps.Submit(r.Context(), a)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	if receipt.Duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", ID: receipt.ID, Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", ID: receipt.ID})
}
