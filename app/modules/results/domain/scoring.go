package resultsdomain

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	// MaxKillPoints caps the per-kill value of a scoring config.
	MaxKillPoints = 50
	// MaxPlacementPoints caps every placement value of a scoring config.
	MaxPlacementPoints = 200
	// MaxKills is the most kills one team can be credited with in a game.
	MaxKills = 99
)

// ScoringConfig is a scrim's points table.
type ScoringConfig struct {
	KillPoints int `json:"killPoints"`
	P1         int `json:"p1"`
	P2         int `json:"p2"`
	P3         int `json:"p3"`
	P4         int `json:"p4"`
	P5         int `json:"p5"`
	P6         int `json:"p6"`
	P7         int `json:"p7"`
	P8         int `json:"p8"`
	P9Plus     int `json:"p9plus"`
}

// DefaultScoringConfig returns the table used when a scrim has none.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		KillPoints: 1,
		P1:         10,
		P2:         6,
		P3:         5,
		P4:         4,
		P5:         3,
		P6:         2,
		P7:         1,
		P8:         1,
		P9Plus:     0,
	}
}

// Clamp forces every field into its valid range.
func (c ScoringConfig) Clamp() ScoringConfig {
	c.KillPoints = clamp(c.KillPoints, 0, MaxKillPoints)
	for _, p := range c.placementFields() {
		*p = clamp(*p, 0, MaxPlacementPoints)
	}
	c.P9Plus = clamp(c.P9Plus, 0, MaxPlacementPoints)
	return c
}

func (c *ScoringConfig) placementFields() []*int {
	return []*int{&c.P1, &c.P2, &c.P3, &c.P4, &c.P5, &c.P6, &c.P7, &c.P8}
}

// LoadScoringConfig reads a stored config blob. Missing or unusable fields
// keep their defaults and the result is always clamped; it never fails.
func LoadScoringConfig(raw []byte) ScoringConfig {
	cfg := DefaultScoringConfig()
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return cfg
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return cfg
	}

	fields := map[string]*int{
		"killPoints": &cfg.KillPoints,
		"p1":         &cfg.P1,
		"p2":         &cfg.P2,
		"p3":         &cfg.P3,
		"p4":         &cfg.P4,
		"p5":         &cfg.P5,
		"p6":         &cfg.P6,
		"p7":         &cfg.P7,
		"p8":         &cfg.P8,
		"p9plus":     &cfg.P9Plus,
	}
	for key, dst := range fields {
		if v, ok := numericField(doc.Get(key)); ok {
			*dst = v
		}
	}

	return cfg.Clamp()
}

func numericField(r gjson.Result) (int, bool) {
	var f float64
	switch r.Type {
	case gjson.Number:
		f = r.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 {
		f = math.MaxInt32
	} else if f < math.MinInt32 {
		f = math.MinInt32
	}
	return int(f), true
}

// PointsForPlacement returns the placement points for place. Places outside
// 1..8 earn P9Plus. A nil config earns nothing.
func PointsForPlacement(place int, cfg *ScoringConfig) int {
	if cfg == nil {
		return 0
	}
	switch place {
	case 1:
		return cfg.P1
	case 2:
		return cfg.P2
	case 3:
		return cfg.P3
	case 4:
		return cfg.P4
	case 5:
		return cfg.P5
	case 6:
		return cfg.P6
	case 7:
		return cfg.P7
	case 8:
		return cfg.P8
	default:
		return cfg.P9Plus
	}
}

// KillPoints returns kills times the per-kill value. Kills are sanitized first.
func KillPoints(kills int, cfg *ScoringConfig) int {
	if cfg == nil {
		return 0
	}
	return SanitizeKills(kills) * cfg.KillPoints
}

// TotalPoints is placement points plus kill points.
func TotalPoints(place, kills int, cfg *ScoringConfig) int {
	return PointsForPlacement(place, cfg) + KillPoints(kills, cfg)
}

// SanitizeKills clamps a kill count into [0,MaxKills].
func SanitizeKills(kills int) int {
	return clamp(kills, 0, MaxKills)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
