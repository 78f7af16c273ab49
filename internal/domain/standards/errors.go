package standards

import "errors"

// Sentinel kinds for standards configuration errors.
var (
	ErrNonMonotonic  = errors.New("thresholds are not monotonic")
	ErrIncomplete    = errors.New("standards table is incomplete")
	ErrUnknownBand   = errors.New("unknown age band")
	ErrUnknownMetric = errors.New("unknown metric")
	ErrParse         = errors.New("cannot parse standards")
)
