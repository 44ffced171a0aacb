package resultsdb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNoRowsAffected indicates a DELETE matched no records.
	ErrNoRowsAffected = errors.New("no rows affected")
)
