package scrimservice

import (
	"context"
	"time"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	scrimdb "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/repositories"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
)

type (
	ScrimResult   = results.OperationResult[*scrimdb.Scrim, error]
	TeamResult    = results.OperationResult[*scrimdb.Team, error]
	TeamsResult   = results.OperationResult[[]scrimdb.Team, error]
	BanResult     = results.OperationResult[*scrimdb.Ban, error]
	EmptyResult   = results.OperationResult[struct{}, error]
	ScoringResult = results.OperationResult[resultsdomain.ScoringConfig, error]
)

// Service is the scrim registration and settings API.
type Service interface {
	CreateScrim(ctx context.Context, req CreateScrimRequest) (ScrimResult, error)
	GetScrim(ctx context.Context, scrimID string) (ScrimResult, error)

	RegisterTeam(ctx context.Context, req RegisterTeamRequest) (TeamResult, error)
	UnregisterTeam(ctx context.Context, scrimID, ownerID string) (EmptyResult, error)
	ConfirmTeam(ctx context.Context, scrimID string, slot int) (EmptyResult, error)
	ListTeams(ctx context.Context, scrimID string) (TeamsResult, error)

	BanUser(ctx context.Context, req BanRequest) (BanResult, error)
	UnbanUser(ctx context.Context, guildID, userID string) (EmptyResult, error)

	GetScoringConfig(ctx context.Context, scrimID string) (ScoringResult, error)
	UpdateScoringConfig(ctx context.Context, scrimID string, cfg resultsdomain.ScoringConfig) (ScoringResult, error)
}

// CreateScrimRequest describes a new scrim. StartInput is free text such as
// "tomorrow at 9pm"; empty means no start time.
type CreateScrimRequest struct {
	GuildID    string `json:"guild_id"`
	Name       string `json:"name"`
	MinSlot    int    `json:"min_slot"`
	MaxSlot    int    `json:"max_slot"`
	StartInput string `json:"start"`
	Timezone   string `json:"timezone"`
}

type RegisterTeamRequest struct {
	ScrimID string `json:"scrim_id"`
	Tag     string `json:"tag"`
	Name    string `json:"name"`
	Slot    int    `json:"slot"`
	OwnerID string `json:"owner_id"`
}

type BanRequest struct {
	GuildID   string     `json:"guild_id"`
	UserID    string     `json:"user_id"`
	Reason    string     `json:"reason"`
	BannedBy  string     `json:"banned_by"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
