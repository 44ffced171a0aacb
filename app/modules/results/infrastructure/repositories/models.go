package resultsdb

import (
	"time"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	"github.com/uptrace/bun"
)

// MatchResult is an automated (OCR) result. One per (scrim, game, team).
type MatchResult struct {
	bun.BaseModel `bun:"table:match_results,alias:mr"`

	ID        int64     `bun:"id,pk,autoincrement"`
	ScrimID   string    `bun:"scrim_id,notnull,unique:match_results_scrim_game_team"`
	Game      int       `bun:"game,notnull,unique:match_results_scrim_game_team"`
	TeamTag   string    `bun:"team_tag,notnull,unique:match_results_scrim_game_team"`
	Place     int       `bun:"place,notnull"`
	Kills     int       `bun:"kills,notnull,default:0"`
	Points    int       `bun:"points,notnull,default:0"`
	BatchID   string    `bun:"batch_id"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ManualResult is a staff override. One per (scrim, game, team).
type ManualResult struct {
	bun.BaseModel `bun:"table:manual_results,alias:man"`

	ID        int64     `bun:"id,pk,autoincrement"`
	ScrimID   string    `bun:"scrim_id,notnull,unique:manual_results_scrim_game_team"`
	Game      int       `bun:"game,notnull,unique:manual_results_scrim_game_team"`
	TeamTag   string    `bun:"team_tag,notnull,unique:manual_results_scrim_game_team"`
	Place     int       `bun:"place,notnull"`
	Kills     int       `bun:"kills,notnull,default:0"`
	Points    int       `bun:"points,notnull,default:0"`
	EnteredBy string    `bun:"entered_by"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (m MatchResult) ToDomain() resultsdomain.ResultRecord {
	return resultsdomain.ResultRecord{
		ScrimID: m.ScrimID,
		Game:    m.Game,
		TeamTag: m.TeamTag,
		Place:   m.Place,
		Kills:   m.Kills,
		Points:  m.Points,
		Source:  resultsdomain.ProvenanceAutomated,
	}
}

func (m ManualResult) ToDomain() resultsdomain.ResultRecord {
	return resultsdomain.ResultRecord{
		ScrimID: m.ScrimID,
		Game:    m.Game,
		TeamTag: m.TeamTag,
		Place:   m.Place,
		Kills:   m.Kills,
		Points:  m.Points,
		Source:  resultsdomain.ProvenanceManual,
	}
}
