package dto

import "errors"

var (
	// ErrStockNotFound indicates an unknown ticker symbol.
	ErrStockNotFound = errors.New("stock not found")

	// ErrScanInProgress indicates a scan was requested while one is active.
	ErrScanInProgress = errors.New("scan already running")
)

// ValidationError is a first-class validation outcome, returned as a value
// rather than raised through the error path.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse is the generic error body for API failures.
type ErrorResponse struct {
	Message string `json:"message"`
}
