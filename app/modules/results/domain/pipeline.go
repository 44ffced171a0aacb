package resultsdomain

// ScoredRow is a parsed row attributed to a registered team.
type ScoredRow struct {
	Row    ScoreboardRow
	Team   Team
	Kills  int
	Points int
}

// ScoreText runs one screenshot's OCR text through normalization, row
// parsing, team detection and scoring. Rows no team qualifies for are counted
// in discarded and otherwise dropped.
func ScoreText(text string, teams []Team, cfg *ScoringConfig, minMatches int) (scored []ScoredRow, discarded int) {
	rows := ParseRows(Normalize(text))
	scored = make([]ScoredRow, 0, len(rows))
	for _, row := range rows {
		team, ok := DetectTeam(row.Players, teams, minMatches)
		if !ok {
			discarded++
			continue
		}
		kills := SanitizeKills(row.TotalKills())
		scored = append(scored, ScoredRow{
			Row:    row,
			Team:   team,
			Kills:  kills,
			Points: TotalPoints(row.Place, kills, cfg),
		})
	}
	return scored, discarded
}

// Record turns a scored row into an automated result for scrimID and game.
func (s ScoredRow) Record(scrimID string, game int) ResultRecord {
	return ResultRecord{
		ScrimID: scrimID,
		Game:    game,
		TeamTag: s.Team.Tag,
		Place:   s.Row.Place,
		Kills:   s.Kills,
		Points:  s.Points,
		Source:  ProvenanceAutomated,
	}
}
