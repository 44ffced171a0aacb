package scrimservice

import "errors"

// Business failures returned in OperationResult.Failure.
var (
	ErrScrimNotFound      = errors.New("scrim not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrBanNotFound        = errors.New("ban not found")
	ErrInvalidSlotRange   = errors.New("min slot must be at least 1 and not above max slot")
	ErrSlotOutOfRange     = errors.New("slot outside the scrim's slot range")
	ErrSlotTaken          = errors.New("slot already taken")
	ErrOwnerHasTeam       = errors.New("user already registered a team for this scrim")
	ErrTagTaken           = errors.New("team tag already registered for this scrim")
	ErrInvalidTag         = errors.New("team tag is empty")
	ErrInvalidName        = errors.New("name is empty")
	ErrOwnerBanned        = errors.New("user is banned from scrims in this guild")
	ErrRegistrationClosed = errors.New("registration closed")
	ErrInvalidStartTime   = errors.New("could not parse start time")
	ErrStartTimeInPast    = errors.New("start time must be in the future")
	ErrUnknownTimezone    = errors.New("unknown timezone")
	ErrInvalidUser        = errors.New("guild and user are required")
)
