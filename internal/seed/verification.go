package seed

import (
	"errors"
	"fmt"

	service "github.com/okian/pitchside/internal/app"
)

// ErrInconsistent is returned when reported progress contradicts what was submitted.
var ErrInconsistent = errors.New("inconsistent progress")

// verifyProgress checks that each athlete's baseline and latest benchmarks are
// the assessments submitted first and second, then tallies the outcomes.
func verifyProgress(pairs []Pair, progress []service.Progress, stats *Stats) error {
	if len(pairs) != len(progress) {
		return fmt.Errorf("%w: %d athletes, %d progress reports", ErrInconsistent, len(pairs), len(progress))
	}

	var sum float64
	var counted int
	for i, p := range progress {
		want := pairs[i]
		switch {
		case !p.Baseline.IsBaseline:
			return fmt.Errorf("%w: %s baseline not flagged", ErrInconsistent, p.AthleteID)
		case p.Latest.IsBaseline:
			return fmt.Errorf("%w: %s latest flagged as baseline", ErrInconsistent, p.AthleteID)
		case p.Baseline.Assessment.ID != want.Baseline.ID:
			return fmt.Errorf("%w: %s baseline is %s, want %s",
				ErrInconsistent, p.AthleteID, p.Baseline.Assessment.ID, want.Baseline.ID)
		case p.Latest.Assessment.ID != want.FollowUp.ID:
			return fmt.Errorf("%w: %s latest is %s, want %s",
				ErrInconsistent, p.AthleteID, p.Latest.Assessment.ID, want.FollowUp.ID)
		}

		stats.Improvements += len(p.Comparison.Improvements)
		stats.Declines += len(p.Comparison.Declines)
		stats.Maintained += len(p.Comparison.Maintained)
		if p.Comparison.OverallChangePct != nil {
			sum += *p.Comparison.OverallChangePct
			counted++
		}
	}
	if counted > 0 {
		stats.MeanOverallChange = sum / float64(counted)
	}
	return nil
}
