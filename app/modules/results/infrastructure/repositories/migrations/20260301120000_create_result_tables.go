package resultsmigrations

import (
	"context"
	"fmt"

	resultsdb "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating match_results and manual_results tables...")

		for _, model := range []any{(*resultsdb.MatchResult)(nil), (*resultsdb.ManualResult)(nil)} {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create result table: %w", err)
			}
		}

		fmt.Println("Result tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping result tables...")

		for _, model := range []any{(*resultsdb.ManualResult)(nil), (*resultsdb.MatchResult)(nil)} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Result tables dropped successfully!")
		return nil
	})
}
