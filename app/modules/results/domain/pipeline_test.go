package resultsdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreText(t *testing.T) {
	teams := []Team{
		{Tag: "DS", Name: "Dark Side", Slot: 1},
		{Tag: "TX", Name: "Texas", Slot: 2},
	}
	cfg := DefaultScoringConfig()

	text := "PUBG MOBILE MATCH RESULT\n" +
		"#1\nDS|Alice\nds.bob\n4 eliminations\n" +
		"#2\nTX_Carl\nTX-Dan\n1 ELIMINATION\n2 eliminations\n" +
		"#3\nrandom\nnobody\n"

	scored, discarded := ScoreText(text, teams, &cfg, DefaultMinTagMatches)
	require.Len(t, scored, 2)
	assert.Equal(t, 1, discarded)

	first := scored[0].Record("scrim-1", 2)
	assert.Equal(t, ResultRecord{
		ScrimID: "scrim-1", Game: 2, TeamTag: "DS", Place: 1, Kills: 4, Points: 14, Source: ProvenanceAutomated,
	}, first)

	assert.Equal(t, "TX", scored[1].Team.Tag)
	assert.Equal(t, 3, scored[1].Kills)
	assert.Equal(t, 6+3, scored[1].Points)
}

func TestScoreText_EmptyInput(t *testing.T) {
	cfg := DefaultScoringConfig()
	scored, discarded := ScoreText("", nil, &cfg, DefaultMinTagMatches)
	assert.Empty(t, scored)
	assert.Zero(t, discarded)
}

func TestScoreText_HugeKillLineDoesNotOverflow(t *testing.T) {
	teams := []Team{{Tag: "DS", Name: "Dark Side", Slot: 1}}
	cfg := DefaultScoringConfig()
	cfg.KillPoints = MaxKillPoints

	text := "1\nDS ALICE\nDS BOB\n999999999999999999 ELIMINATIONS\n999999999999999999 ELIMINATIONS"
	scored, _ := ScoreText(text, teams, &cfg, DefaultMinTagMatches)
	require.Len(t, scored, 1)
	assert.Equal(t, MaxKills, scored[0].Kills)
	assert.Equal(t, cfg.P1+MaxKills*MaxKillPoints, scored[0].Points)
}
