package scrimdb

import (
	"time"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	"github.com/uptrace/bun"
)

// Scrim is a scheduled practice lobby.
type Scrim struct {
	bun.BaseModel `bun:"table:scrims,alias:s"`

	ID       string     `bun:"id,pk" json:"id"`
	GuildID  string     `bun:"guild_id,notnull" json:"guild_id"`
	Name     string     `bun:"name,notnull" json:"name"`
	MinSlot  int        `bun:"min_slot,notnull,default:1" json:"min_slot"`
	MaxSlot  int        `bun:"max_slot,notnull,default:25" json:"max_slot"`
	StartsAt *time.Time `bun:"starts_at,nullzero" json:"starts_at,omitempty"`
	// ScoringConfig is the raw JSON points table. Parsed leniently on read.
	ScoringConfig string    `bun:"scoring_config" json:"-"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// RegistrationOpen reports whether teams may still register at now.
func (s *Scrim) RegistrationOpen(now time.Time) bool {
	return s.StartsAt == nil || now.Before(*s.StartsAt)
}

// Team is a registration occupying one slot of a scrim.
type Team struct {
	bun.BaseModel `bun:"table:scrim_teams,alias:st"`

	ID        int64     `bun:"id,pk,autoincrement" json:"-"`
	ScrimID   string    `bun:"scrim_id,notnull,unique:scrim_teams_slot,unique:scrim_teams_owner" json:"scrim_id"`
	Slot      int       `bun:"slot,notnull,unique:scrim_teams_slot" json:"slot"`
	OwnerID   string    `bun:"owner_id,notnull,unique:scrim_teams_owner" json:"owner_id"`
	Tag       string    `bun:"tag,notnull" json:"team_tag"`
	Name      string    `bun:"name,notnull" json:"team_name"`
	Confirmed bool      `bun:"confirmed,notnull,default:false" json:"confirmed"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

func (t Team) ToDomain() resultsdomain.Team {
	return resultsdomain.Team{Tag: t.Tag, Name: t.Name, Slot: t.Slot}
}

// Ban blocks a user from registering teams in a guild's scrims.
type Ban struct {
	bun.BaseModel `bun:"table:scrim_bans,alias:sb"`

	GuildID   string     `bun:"guild_id,pk" json:"guild_id"`
	UserID    string     `bun:"user_id,pk" json:"user_id"`
	Reason    string     `bun:"reason" json:"reason,omitempty"`
	BannedBy  string     `bun:"banned_by" json:"banned_by,omitempty"`
	ExpiresAt *time.Time `bun:"expires_at,nullzero" json:"expires_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// ActiveAt reports whether the ban applies at now.
func (b *Ban) ActiveAt(now time.Time) bool {
	return b.ExpiresAt == nil || now.Before(*b.ExpiresAt)
}
