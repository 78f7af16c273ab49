package model

import (
	"time"

	"github.com/okian/pitchside/internal/domain/types"
)

// Benchmark is a saved assessment together with its scores.
// Whether it is the athlete's baseline is decided by the store.
type Benchmark struct {
	ID               string                     `json:"id"`
	AthleteID        string                     `json:"athlete_id"`
	Assessment       Assessment                 `json:"assessment"`
	OverallRaw       float64                    `json:"overall_raw"`
	OverallScore     float64                    `json:"overall_score"`
	CategoryScores   map[types.Category]float64 `json:"category_scores"`
	PerformanceLevel string                     `json:"performance_level"`
	IsBaseline       bool                       `json:"is_baseline"`
	CreatedAt        time.Time                  `json:"created_at"`
}
