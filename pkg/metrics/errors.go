package metrics

import (
	"errors"
)

// ErrNoManager is returned when a recorder is used before a Manager exists.
var ErrNoManager = errors.New("metrics manager not initialized")
