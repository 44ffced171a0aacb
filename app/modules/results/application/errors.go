package resultsservice

import "errors"

// Business failures returned in OperationResult.Failure.
var (
	ErrScrimNotFound  = errors.New("scrim not found")
	ErrInvalidGame    = errors.New("game must be a positive number")
	ErrInvalidPlace   = errors.New("place must be between 1 and 20")
	ErrNoImages       = errors.New("no screenshots to process")
	ErrNoEntries      = errors.New("no manual entries with a team tag")
	ErrNoResults      = errors.New("no results recorded")
	ErrInvalidChannel = errors.New("channel is required")
)
