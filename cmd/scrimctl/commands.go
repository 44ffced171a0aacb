package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	authdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/scrim-bot/app/modules/auth/infrastructure/jwt"
	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	"github.com/urfave/cli/v2"
)

func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:   "scrimctl",
		Usage:  "scrim results and admin tooling",
		Reader: in,
		Writer: out,
		Commands: []*cli.Command{
			parseCommand(),
			scoreCommand(),
			tokenCommand(),
		},
	}
}

// readInput returns the named file, or stdin for "" and "-".
func readInput(c *cli.Context) (string, error) {
	path := c.Args().First()
	if path == "" || path == "-" {
		data, err := io.ReadAll(c.App.Reader)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "print the scoreboard rows found in OCR text",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print JSON"},
		},
		Action: func(c *cli.Context) error {
			text, err := readInput(c)
			if err != nil {
				return err
			}
			rows := resultsdomain.ParseRows(resultsdomain.Normalize(text))

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PLACE\tKILLS\tPLAYERS")
			for _, r := range rows {
				fmt.Fprintf(tw, "%d\t%d\t%s\n", r.Place, r.TotalKills(), strings.Join(r.Players, ", "))
			}
			return tw.Flush()
		},
	}
}

// parseTeams reads "TAG" or "TAG=Name" entries, numbering slots in order.
func parseTeams(entries []string) []resultsdomain.Team {
	teams := make([]resultsdomain.Team, 0, len(entries))
	for i, entry := range entries {
		tag, name, _ := strings.Cut(entry, "=")
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if name == "" {
			name = tag
		}
		teams = append(teams, resultsdomain.Team{Tag: tag, Name: strings.TrimSpace(name), Slot: i + 1})
	}
	return teams
}

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "score OCR text against a roster",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "team", Aliases: []string{"t"}, Usage: "registered team as TAG or TAG=Name", Required: true},
			&cli.StringFlag{Name: "scoring", Usage: "path to a JSON points table"},
			&cli.IntFlag{Name: "min-matches", Value: resultsdomain.DefaultMinTagMatches, Usage: "players that must carry a tag"},
		},
		Action: func(c *cli.Context) error {
			text, err := readInput(c)
			if err != nil {
				return err
			}

			cfg := resultsdomain.DefaultScoringConfig()
			if path := c.String("scoring"); path != "" {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				cfg = resultsdomain.LoadScoringConfig(raw)
			}

			scored, discarded := resultsdomain.ScoreText(text, parseTeams(c.StringSlice("team")), &cfg, c.Int("min-matches"))

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PLACE\tTEAM\tKILLS\tPOINTS")
			for _, s := range scored {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", s.Row.Place, s.Team.Tag, s.Kills, s.Points)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if discarded > 0 {
				fmt.Fprintf(c.App.Writer, "%d row(s) matched no registered team\n", discarded)
			}
			return nil
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "mint a staff token for the admin API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "secret", EnvVars: []string{"JWT_SECRET"}, Usage: "signing secret", Required: true},
			&cli.StringFlag{Name: "user", Usage: "Discord user ID", Required: true},
			&cli.StringFlag{Name: "guild", Usage: "Discord guild ID"},
			&cli.StringFlag{Name: "role", Value: string(authdomain.RoleViewer), Usage: "viewer, organizer or admin"},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Usage: "token lifetime"},
		},
		Action: func(c *cli.Context) error {
			role := authdomain.Role(c.String("role"))
			if !role.IsValid() {
				return fmt.Errorf("unknown role %q", role)
			}
			token, err := authjwt.NewProvider(c.String("secret")).GenerateToken(&authdomain.Claims{
				UserID:  c.String("user"),
				GuildID: c.String("guild"),
				Role:    role,
			}, c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, token)
			return nil
		},
	}
}
