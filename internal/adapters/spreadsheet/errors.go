package spreadsheet

import (
	"errors"
)

// Sentinel kinds for workbook errors. All of these fail fast, before the
// allocation core runs.
var (
	ErrOpenWorkbook   = errors.New("open workbook failed")
	ErrSheetNotFound  = errors.New("sheet not found")
	ErrMissingColumn  = errors.New("required column missing")
	ErrNoMatchColumns = errors.New("no match columns found")
	ErrWriteWorkbook  = errors.New("write workbook failed")
)
