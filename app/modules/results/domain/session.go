package resultsdomain

import (
	"errors"
	"time"
)

// ErrNoSession is returned when a channel has no match session in progress.
var ErrNoSession = errors.New("no match session in progress for this channel")

// MatchSession collects screenshot references posted in one channel for a
// single game until staff finish the session.
type MatchSession struct {
	ScrimID   string    `json:"scrim_id"`
	Game      int       `json:"game"`
	Images    []string  `json:"images"`
	StartedAt time.Time `json:"started_at"`
}
