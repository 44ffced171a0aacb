package scrimmigrations

import (
	"context"
	"fmt"

	scrimdb "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scrims, scrim_teams and scrim_bans tables...")

		for _, model := range []any{(*scrimdb.Scrim)(nil), (*scrimdb.Team)(nil), (*scrimdb.Ban)(nil)} {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create scrim table: %w", err)
			}
		}

		fmt.Println("Scrim tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scrim tables...")

		for _, model := range []any{(*scrimdb.Ban)(nil), (*scrimdb.Team)(nil), (*scrimdb.Scrim)(nil)} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Scrim tables dropped successfully!")
		return nil
	})
}
