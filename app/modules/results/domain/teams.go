package resultsdomain

import (
	"strings"
	"unicode"
)

// DefaultMinTagMatches is how many of a row's names must carry a team's tag
// before the row is attributed to that team.
const DefaultMinTagMatches = 2

// Team is a registered scrim team as seen by result processing.
type Team struct {
	Tag  string `json:"team_tag"`
	Name string `json:"team_name"`
	Slot int    `json:"slot"`
}

// NormalizeTag upper-cases s and strips whitespace and the separators | . _ -.
func NormalizeTag(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if unicode.IsSpace(r) {
			continue
		}
		switch r {
		case '|', '.', '_', '-':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DetectTeam returns the team whose tag appears in the most candidate names,
// provided at least minMatches names carry it. Ties keep the team listed
// first. minMatches below 1 is treated as 1.
func DetectTeam(candidates []string, teams []Team, minMatches int) (Team, bool) {
	if minMatches < 1 {
		minMatches = 1
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = NormalizeTag(c)
	}

	var (
		best      Team
		bestCount int
		found     bool
	)
	for _, team := range teams {
		tag := NormalizeTag(team.Tag)
		if tag == "" {
			continue
		}

		count := 0
		for _, name := range names {
			if strings.Contains(name, tag) {
				count++
			}
		}

		if count >= minMatches && count > bestCount {
			best, bestCount, found = team, count, true
		}
	}

	return best, found
}
