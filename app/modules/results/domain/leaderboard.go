package resultsdomain

import (
	"cmp"
	"math"
	"slices"
)

// Provenance distinguishes OCR-produced records from staff overrides.
type Provenance string

const (
	ProvenanceAutomated Provenance = "automated"
	ProvenanceManual    Provenance = "manual"
)

// UnregisteredTeamName labels leaderboard entries whose tag matches no registered team.
const UnregisteredTeamName = "(not registered)"

// ResultRecord is one team's result for one game of a scrim.
type ResultRecord struct {
	ScrimID string     `json:"scrim_id"`
	Game    int        `json:"game"`
	TeamTag string     `json:"team_tag"`
	Place   int        `json:"place"`
	Kills   int        `json:"kills"`
	Points  int        `json:"points"`
	Source  Provenance `json:"source"`
}

// LeaderboardEntry is a team's standing across every game of a scrim.
type LeaderboardEntry struct {
	TeamTag         string `json:"team_tag"`
	TeamName        string `json:"team_name"`
	Slot            int    `json:"slot,omitempty"`
	Registered      bool   `json:"registered"`
	Games           int    `json:"games"`
	Kills           int    `json:"kills"`
	PlacementPoints int    `json:"placement_points"`
	KillPoints      int    `json:"kill_points"`
	Points          int    `json:"points"`
}

type recordKey struct {
	game int
	tag  string
}

// MergeResults returns the effective record per (game, tag). Manual records
// replace automated ones at the same key. The result is ordered by game, then
// normalized tag.
func MergeResults(automated, manual []ResultRecord) []ResultRecord {
	effective := make(map[recordKey]ResultRecord, len(automated)+len(manual))
	for _, r := range automated {
		effective[recordKey{r.Game, NormalizeTag(r.TeamTag)}] = r
	}
	for _, r := range manual {
		effective[recordKey{r.Game, NormalizeTag(r.TeamTag)}] = r
	}

	out := make([]ResultRecord, 0, len(effective))
	for _, r := range effective {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b ResultRecord) int {
		if c := cmp.Compare(a.Game, b.Game); c != 0 {
			return c
		}
		return cmp.Compare(NormalizeTag(a.TeamTag), NormalizeTag(b.TeamTag))
	})
	return out
}

// BuildLeaderboard merges automated and manual records and aggregates them
// per team. Points are recomputed from place and kills with cfg; the stored
// Points field is ignored. Every registered team gets an entry.
func BuildLeaderboard(automated, manual []ResultRecord, teams []Team, cfg *ScoringConfig) []LeaderboardEntry {
	entries := make([]*LeaderboardEntry, 0, len(teams))
	byTag := make(map[string]*LeaderboardEntry, len(teams))
	games := make(map[string]map[int]struct{})

	for _, t := range teams {
		tag := NormalizeTag(t.Tag)
		if _, dup := byTag[tag]; dup {
			continue
		}
		e := &LeaderboardEntry{TeamTag: t.Tag, TeamName: t.Name, Slot: t.Slot, Registered: true}
		byTag[tag] = e
		entries = append(entries, e)
	}

	for _, r := range MergeResults(automated, manual) {
		tag := NormalizeTag(r.TeamTag)
		e, ok := byTag[tag]
		if !ok {
			e = &LeaderboardEntry{TeamTag: r.TeamTag, TeamName: UnregisteredTeamName}
			byTag[tag] = e
			entries = append(entries, e)
		}

		kills := SanitizeKills(r.Kills)
		placement := PointsForPlacement(r.Place, cfg)
		killPoints := KillPoints(kills, cfg)

		e.Kills += kills
		e.PlacementPoints += placement
		e.KillPoints += killPoints
		e.Points += placement + killPoints

		if games[tag] == nil {
			games[tag] = make(map[int]struct{})
		}
		games[tag][r.Game] = struct{}{}
	}

	out := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		e.Games = len(games[NormalizeTag(e.TeamTag)])
		out = append(out, *e)
	}

	slices.SortStableFunc(out, compareEntries)
	return out
}

func compareEntries(a, b LeaderboardEntry) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Kills, a.Kills); c != 0 {
		return c
	}
	return cmp.Compare(sortSlot(a), sortSlot(b))
}

func sortSlot(e LeaderboardEntry) int {
	if !e.Registered {
		return math.MaxInt
	}
	return e.Slot
}
