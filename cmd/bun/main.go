// Command bun manages the per-module database migrations.
package main

import (
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/Black-And-White-Club/scrim-bot/config"
	"github.com/Black-And-White-Club/scrim-bot/db/bundb"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "bun",
		Usage: "scrim-bot database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			newMigrateCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// withMigrators opens the configured database and hands the module migrators
// to fn.
func withMigrators(c *cli.Context, fn func(db *bun.DB, migrators map[string]*migrate.Migrator) error) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	db, err := bundb.Open(c.Context, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db, bundb.Migrators(db))
}

func moduleMigrator(c *cli.Context, migrators map[string]*migrate.Migrator) (string, *migrate.Migrator, error) {
	name := c.Args().First()
	m, ok := migrators[name]
	if !ok {
		return "", nil, fmt.Errorf("invalid module name %q (want one of %s)", name, strings.Join(bundb.MigrationOrder, ", "))
	}
	return name, m, nil
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *bun.DB, migrators map[string]*migrate.Migrator) error {
						for _, name := range bundb.MigrationOrder {
							if err := migrators[name].Init(c.Context); err != nil {
								return fmt.Errorf("init %s: %w", name, err)
							}
							fmt.Printf("Initialized migration tables for module: %s\n", name)
						}
						return nil
					})
				},
			},
			{
				Name:  "up",
				Usage: "apply pending migrations",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(db *bun.DB, _ map[string]*migrate.Migrator) error {
						if err := bundb.MigrateAll(c.Context, db); err != nil {
							return err
						}
						fmt.Println("All module migrations applied")
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "roll back the last migration group of every module",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *bun.DB, migrators map[string]*migrate.Migrator) error {
						order := slices.Clone(bundb.MigrationOrder)
						slices.Reverse(order)
						for _, name := range order {
							group, err := migrators[name].Rollback(c.Context)
							if err != nil {
								return fmt.Errorf("rollback %s: %w", name, err)
							}
							if group.IsZero() {
								fmt.Printf("No groups to roll back for module: %s\n", name)
							} else {
								fmt.Printf("Rolled back module %s: %s\n", name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:      "create_sql",
				Usage:     "create up and down SQL migrations for a module",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *bun.DB, migrators map[string]*migrate.Migrator) error {
						module, m, err := moduleMigrator(c, migrators)
						if err != nil {
							return err
						}
						files, err := m.CreateSQLMigrations(c.Context, strings.Join(c.Args().Tail(), "_"))
						if err != nil {
							return err
						}
						for _, mf := range files {
							fmt.Printf("Created migration for module %s: %s (%s)\n", module, mf.Name, mf.Path)
						}
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *bun.DB, migrators map[string]*migrate.Migrator) error {
						for _, name := range bundb.MigrationOrder {
							ms, err := migrators[name].MigrationsWithStatus(c.Context)
							if err != nil {
								return err
							}
							fmt.Printf("Module %s\n  Applied: %s\n  Unapplied: %s\n", name, ms.Applied(), ms.Unapplied())
						}
						return nil
					})
				},
			},
		},
	}
}
