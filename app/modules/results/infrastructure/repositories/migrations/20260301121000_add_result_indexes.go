package resultsmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Adding scrim_id indexes to result tables...")

		for _, stmt := range []string{
			`CREATE INDEX IF NOT EXISTS idx_match_results_scrim ON match_results (scrim_id)`,
			`CREATE INDEX IF NOT EXISTS idx_manual_results_scrim ON manual_results (scrim_id)`,
		} {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}

		fmt.Println("Result indexes created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for _, stmt := range []string{
			`DROP INDEX IF EXISTS idx_manual_results_scrim`,
			`DROP INDEX IF EXISTS idx_match_results_scrim`,
		} {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to drop index: %w", err)
			}
		}
		return nil
	})
}
