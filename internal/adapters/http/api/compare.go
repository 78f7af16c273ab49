package api

import (
	"errors"
	"net/http"

	"github.com/okian/pitchside/internal/domain/model"
)

// CompareHandler compares two assessments supplied by the client.
type CompareHandler struct {
	deps CompareDependencies
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps CompareDependencies) *CompareHandler {
	return &CompareHandler{deps: deps}
}

type compareRequest struct {
	Current  *model.Assessment `json:"current"`
	Baseline *model.Assessment `json:"baseline"`
}

// HandleCompare handles POST /compare requests.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare"
	var req compareRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Current == nil || req.Baseline == nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, errors.New("current and baseline are required")))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Compare(r.Context(), *req.Current, *req.Baseline))
}
