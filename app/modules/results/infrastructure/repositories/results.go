package resultsdb

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Impl is the bun-backed Repository. It works with the pg and sqlite dialects.
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

func (r *Impl) UpsertMatchResult(ctx context.Context, db bun.IDB, result *MatchResult) error {
	result.UpdatedAt = time.Now().UTC()
	_, err := r.conn(db).NewInsert().
		Model(result).
		On("CONFLICT (scrim_id, game, team_tag) DO UPDATE").
		Set("place = EXCLUDED.place").
		Set("kills = EXCLUDED.kills").
		Set("points = EXCLUDED.points").
		Set("batch_id = EXCLUDED.batch_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("resultsdb.UpsertMatchResult: %w", err)
	}
	return nil
}

func (r *Impl) UpsertManualResult(ctx context.Context, db bun.IDB, result *ManualResult) error {
	result.UpdatedAt = time.Now().UTC()
	_, err := r.conn(db).NewInsert().
		Model(result).
		On("CONFLICT (scrim_id, game, team_tag) DO UPDATE").
		Set("place = EXCLUDED.place").
		Set("kills = EXCLUDED.kills").
		Set("points = EXCLUDED.points").
		Set("entered_by = EXCLUDED.entered_by").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("resultsdb.UpsertManualResult: %w", err)
	}
	return nil
}

func (r *Impl) ListMatchResults(ctx context.Context, db bun.IDB, scrimID string) ([]MatchResult, error) {
	var rows []MatchResult
	err := r.conn(db).NewSelect().
		Model(&rows).
		Where("scrim_id = ?", scrimID).
		Order("game ASC", "team_tag ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("resultsdb.ListMatchResults: %w", err)
	}
	return rows, nil
}

func (r *Impl) ListManualResults(ctx context.Context, db bun.IDB, scrimID string) ([]ManualResult, error) {
	var rows []ManualResult
	err := r.conn(db).NewSelect().
		Model(&rows).
		Where("scrim_id = ?", scrimID).
		Order("game ASC", "team_tag ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("resultsdb.ListManualResults: %w", err)
	}
	return rows, nil
}

func (r *Impl) DeleteGame(ctx context.Context, db bun.IDB, scrimID string, game int) (int64, error) {
	return r.deleteWhere(ctx, db, "resultsdb.DeleteGame", func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("scrim_id = ?", scrimID).Where("game = ?", game)
	})
}

func (r *Impl) ClearScrim(ctx context.Context, db bun.IDB, scrimID string) (int64, error) {
	return r.deleteWhere(ctx, db, "resultsdb.ClearScrim", func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("scrim_id = ?", scrimID)
	})
}

func (r *Impl) deleteWhere(ctx context.Context, db bun.IDB, op string, where func(*bun.DeleteQuery) *bun.DeleteQuery) (int64, error) {
	conn := r.conn(db)
	var total int64
	for _, model := range []any{(*MatchResult)(nil), (*ManualResult)(nil)} {
		res, err := where(conn.NewDelete().Model(model)).Exec(ctx)
		if err != nil {
			return total, fmt.Errorf("%s: %w", op, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("%s: %w", op, err)
		}
		total += n
	}
	if total == 0 {
		return 0, ErrNoRowsAffected
	}
	return total, nil
}
