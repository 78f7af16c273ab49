package api

import (
	"net/http"

	"github.com/okian/pitchside/internal/domain/types"
)

// StandardsHandler serves the thresholds table.
type StandardsHandler struct {
	deps StandardsDependencies
}

// NewStandardsHandler creates a new standards handler.
func NewStandardsHandler(deps StandardsDependencies) *StandardsHandler {
	return &StandardsHandler{deps: deps}
}

type standardsResponse struct {
	Band       string          `json:"age_band"`
	Thresholds []thresholdsRow `json:"thresholds"`
}

type thresholdsRow struct {
	Metric    types.Metric `json:"metric"`
	Category  string       `json:"category"`
	Direction string       `json:"direction"`
	Unit      string       `json:"unit"`
	Excellent float64      `json:"excellent"`
	Good      float64      `json:"good"`
	Average   float64      `json:"average"`
	Poor      float64      `json:"poor"`
}

// HandleGetStandards handles GET /standards/{band} requests.
// Rows come back in registry order.
func (h *StandardsHandler) HandleGetStandards(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_standards"
	band := r.PathValue("band")
	rows, err := h.deps.Standards(band)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	resp := standardsResponse{Band: band}
	for _, info := range types.Metrics() {
		th, ok := rows[info.Metric]
		if !ok {
			continue
		}
		resp.Thresholds = append(resp.Thresholds, thresholdsRow{
			Metric:    info.Metric,
			Category:  string(info.Category),
			Direction: info.Direction.String(),
			Unit:      info.Unit,
			Excellent: th.Excellent,
			Good:      th.Good,
			Average:   th.Average,
			Poor:      th.Poor,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
