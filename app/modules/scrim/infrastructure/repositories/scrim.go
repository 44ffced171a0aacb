package scrimdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Impl implements Repository with bun.
type Impl struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) conn(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateScrim(ctx context.Context, db bun.IDB, scrim *Scrim) error {
	if _, err := r.conn(db).NewInsert().Model(scrim).Exec(ctx); err != nil {
		return fmt.Errorf("scrimdb.CreateScrim: %w", err)
	}
	return nil
}

func (r *Impl) GetScrim(ctx context.Context, db bun.IDB, scrimID string) (*Scrim, error) {
	scrim := new(Scrim)
	err := r.conn(db).NewSelect().Model(scrim).Where("id = ?", scrimID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scrimdb.GetScrim: %w", err)
	}
	return scrim, nil
}

func (r *Impl) UpdateScoringConfig(ctx context.Context, db bun.IDB, scrimID string, raw string) error {
	res, err := r.conn(db).NewUpdate().
		Model((*Scrim)(nil)).
		Set("scoring_config = ?", raw).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", scrimID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("scrimdb.UpdateScoringConfig: %w", err)
	}
	return requireAffected(res)
}

func (r *Impl) ListTeams(ctx context.Context, db bun.IDB, scrimID string) ([]Team, error) {
	var teams []Team
	err := r.conn(db).NewSelect().
		Model(&teams).
		Where("scrim_id = ?", scrimID).
		Order("slot ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scrimdb.ListTeams: %w", err)
	}
	return teams, nil
}

func (r *Impl) InsertTeam(ctx context.Context, db bun.IDB, team *Team) error {
	if _, err := r.conn(db).NewInsert().Model(team).Exec(ctx); err != nil {
		return fmt.Errorf("scrimdb.InsertTeam: %w", err)
	}
	return nil
}

func (r *Impl) DeleteTeam(ctx context.Context, db bun.IDB, scrimID, ownerID string) error {
	res, err := r.conn(db).NewDelete().
		Model((*Team)(nil)).
		Where("scrim_id = ?", scrimID).
		Where("owner_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("scrimdb.DeleteTeam: %w", err)
	}
	return requireAffected(res)
}

func (r *Impl) ConfirmTeam(ctx context.Context, db bun.IDB, scrimID string, slot int) error {
	res, err := r.conn(db).NewUpdate().
		Model((*Team)(nil)).
		Set("confirmed = ?", true).
		Where("scrim_id = ?", scrimID).
		Where("slot = ?", slot).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("scrimdb.ConfirmTeam: %w", err)
	}
	return requireAffected(res)
}

func (r *Impl) GetBan(ctx context.Context, db bun.IDB, guildID, userID string) (*Ban, error) {
	ban := new(Ban)
	err := r.conn(db).NewSelect().
		Model(ban).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scrimdb.GetBan: %w", err)
	}
	return ban, nil
}

func (r *Impl) UpsertBan(ctx context.Context, db bun.IDB, ban *Ban) error {
	_, err := r.conn(db).NewInsert().
		Model(ban).
		On("CONFLICT (guild_id, user_id) DO UPDATE").
		Set("reason = EXCLUDED.reason").
		Set("banned_by = EXCLUDED.banned_by").
		Set("expires_at = EXCLUDED.expires_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("scrimdb.UpsertBan: %w", err)
	}
	return nil
}

func (r *Impl) DeleteBan(ctx context.Context, db bun.IDB, guildID, userID string) error {
	res, err := r.conn(db).NewDelete().
		Model((*Ban)(nil)).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("scrimdb.DeleteBan: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
