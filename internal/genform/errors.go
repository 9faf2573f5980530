package genform

import (
	"errors"
)

// Sentinel kinds for generator errors.
var (
	ErrInvalidShape = errors.New("players and matches must be positive")
	ErrWriteForm    = errors.New("write form workbook failed")
)
