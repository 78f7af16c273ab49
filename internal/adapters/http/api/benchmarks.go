package api

import (
	"net/http"
	"strings"
)

// BenchmarkHandler serves stored benchmarks and progress.
type BenchmarkHandler struct {
	deps BenchmarkDependencies
}

// NewBenchmarkHandler creates a new benchmark handler.
func NewBenchmarkHandler(deps BenchmarkDependencies) *BenchmarkHandler {
	return &BenchmarkHandler{deps: deps}
}

func athleteFrom(r *http.Request) string {
	return strings.TrimSpace(r.PathValue("athlete"))
}

// HandleList handles GET /benchmarks/{athlete} requests.
func (h *BenchmarkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_benchmarks"
	athlete := athleteFrom(r)
	if athlete == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	list, err := h.deps.Benchmarks(r.Context(), athlete)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleDelete handles DELETE /benchmarks/{athlete}/{id} requests.
func (h *BenchmarkHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_benchmark"
	athlete, id := athleteFrom(r), strings.TrimSpace(r.PathValue("id"))
	if athlete == "" || id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	list, err := h.deps.Benchmarks(r.Context(), athlete)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	owned := false
	for _, b := range list {
		if b.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		writeFailure(w, op, NewKind(op, ErrNotFound))
		return
	}
	if err := h.deps.DeleteBenchmark(r.Context(), id); err != nil {
		writeFailure(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleProgress handles GET /progress/{athlete} requests.
func (h *BenchmarkHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	const op = "api.progress"
	athlete := athleteFrom(r)
	if athlete == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	p, err := h.deps.Progress(r.Context(), athlete)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
