package scrimdb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNotFound indicates the requested scrim, team or ban does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoRowsAffected indicates an UPDATE or DELETE matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
