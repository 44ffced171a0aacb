package resultsdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for result persistence.
// Every method accepts a bun.IDB so callers can run it inside a transaction;
// a nil db uses the repository's own handle.
//
// Error semantics:
//   - ErrNoRowsAffected: DELETE matched no rows
//   - Other errors: Infrastructure failures (DB connection, query errors)
type Repository interface {
	// UpsertMatchResult writes an automated result, replacing any existing
	// record for the same (scrim, game, team).
	UpsertMatchResult(ctx context.Context, db bun.IDB, result *MatchResult) error

	// UpsertManualResult writes a staff override, replacing any existing
	// override for the same (scrim, game, team).
	UpsertManualResult(ctx context.Context, db bun.IDB, result *ManualResult) error

	ListMatchResults(ctx context.Context, db bun.IDB, scrimID string) ([]MatchResult, error)
	ListManualResults(ctx context.Context, db bun.IDB, scrimID string) ([]ManualResult, error)

	// DeleteGame removes automated and manual records of one game and
	// returns how many were removed.
	DeleteGame(ctx context.Context, db bun.IDB, scrimID string, game int) (int64, error)

	// ClearScrim removes every automated and manual record of a scrim.
	ClearScrim(ctx context.Context, db bun.IDB, scrimID string) (int64, error)
}
