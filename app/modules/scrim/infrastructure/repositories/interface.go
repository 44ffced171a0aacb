package scrimdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for scrim persistence.
// A nil db uses the repository's own handle.
//
// Error semantics:
//   - ErrNotFound: Record does not exist
//   - ErrNoRowsAffected: UPDATE/DELETE matched no rows
//   - Other errors: Infrastructure failures
type Repository interface {
	CreateScrim(ctx context.Context, db bun.IDB, scrim *Scrim) error
	GetScrim(ctx context.Context, db bun.IDB, scrimID string) (*Scrim, error)
	UpdateScoringConfig(ctx context.Context, db bun.IDB, scrimID string, raw string) error

	ListTeams(ctx context.Context, db bun.IDB, scrimID string) ([]Team, error)
	InsertTeam(ctx context.Context, db bun.IDB, team *Team) error
	DeleteTeam(ctx context.Context, db bun.IDB, scrimID, ownerID string) error
	ConfirmTeam(ctx context.Context, db bun.IDB, scrimID string, slot int) error

	GetBan(ctx context.Context, db bun.IDB, guildID, userID string) (*Ban, error)
	UpsertBan(ctx context.Context, db bun.IDB, ban *Ban) error
	DeleteBan(ctx context.Context, db bun.IDB, guildID, userID string) error
}
