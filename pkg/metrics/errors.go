package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrServeMetrics = errors.New("metrics listener failed")
)
