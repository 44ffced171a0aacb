package resultsdomain

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxPlace is the highest placement a scoreboard ever shows.
	MaxPlace = 25
	// MaxRowPlayers caps the candidate names collected per row.
	MaxRowPlayers = 4
)

var (
	placeLinePattern   = regexp.MustCompile(`^#?(\d{1,2})$`)
	killLinePattern    = regexp.MustCompile(`(?i)\b(?:(\d{1,2})\s*ELIMINATION|(\d+)\s*ELIMINATIONS)\b`)
	numericLinePattern = regexp.MustCompile(`^\d+$`)
	noiseTokens        = []string{"PUBG", "MOBILE", "MATCH", "RESULT"}
)

// ScoreboardRow is one placement group read off a scoreboard screenshot.
type ScoreboardRow struct {
	Place   int      `json:"place"`
	Players []string `json:"players"`
	Kills   []int    `json:"kills"`
}

// TotalKills sums every kill line found for the row, saturating at MaxKills.
func (r ScoreboardRow) TotalKills() int {
	total := 0
	for _, k := range r.Kills {
		total = min(total+SanitizeKills(k), MaxKills)
	}
	return total
}

// IsPlaceLine reports whether line is a placement marker ("7" or "#7") in [1,MaxPlace].
func IsPlaceLine(line string) bool {
	_, ok := placeFromLine(line)
	return ok
}

func placeFromLine(line string) (int, bool) {
	m := placeLinePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > MaxPlace {
		return 0, false
	}
	return n, true
}

// ParseRows segments OCR text into placement rows. Unclassifiable lines are
// dropped; the parser never fails.
func ParseRows(text string) []ScoreboardRow {
	lines := splitLines(text)
	rows := make([]ScoreboardRow, 0)

	for i := 0; i < len(lines); {
		place, ok := placeFromLine(lines[i])
		if !ok {
			i++
			continue
		}

		j := i + 1
		for j < len(lines) && !IsPlaceLine(lines[j]) {
			j++
		}

		if row, keep := parseSegment(place, lines[i+1:j]); keep {
			rows = append(rows, row)
		}
		i = j
	}

	return rows
}

func parseSegment(place int, segment []string) (ScoreboardRow, bool) {
	row := ScoreboardRow{Place: place, Players: []string{}, Kills: []int{}}

	for _, line := range segment {
		if kills, ok := killsFromLine(line); ok {
			row.Kills = append(row.Kills, kills)
			continue
		}
		if isNoiseLine(line) || numericLinePattern.MatchString(line) {
			continue
		}
		if len(row.Players) < MaxRowPlayers {
			row.Players = append(row.Players, line)
		}
	}

	return row, len(row.Players) > 0 || len(row.Kills) > 0
}

func killsFromLine(line string) (int, bool) {
	m := killLinePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	// Only out-of-range digit runs fail to parse.
	n, err := strconv.Atoi(digits)
	if err != nil {
		return MaxKills, true
	}
	return SanitizeKills(n), true
}

func isNoiseLine(line string) bool {
	upper := strings.ToUpper(line)
	for _, token := range noiseTokens {
		if strings.Contains(upper, token) {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
