package resultsservice

import (
	"context"
	"testing"

	resultsdb "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsService_SubmitManualResults(t *testing.T) {
	tests := []struct {
		name        string
		req         ManualSubmission
		wantFailure error
		wantSaved   []resultsdb.ManualResult
	}{
		{
			name: "stores roster spelling and computes points",
			req: ManualSubmission{
				ScrimID: testScrimID, Game: 1, EnteredBy: "staff-1",
				Entries: []ManualEntry{
					{Place: 1, TeamTag: " d-s ", Kills: 3},
					{Place: 2, TeamTag: "", Kills: 9},
					{Place: 3, TeamTag: "zz", Kills: -4},
				},
			},
			wantSaved: []resultsdb.ManualResult{
				{ScrimID: testScrimID, Game: 1, TeamTag: "DS", Place: 1, Kills: 3, Points: 13, EnteredBy: "staff-1"},
				{ScrimID: testScrimID, Game: 1, TeamTag: "ZZ", Place: 3, Kills: 0, Points: 5, EnteredBy: "staff-1"},
			},
		},
		{
			name:        "place above form range",
			req:         ManualSubmission{ScrimID: testScrimID, Game: 1, Entries: []ManualEntry{{Place: 21, TeamTag: "DS"}}},
			wantFailure: ErrInvalidPlace,
		},
		{
			name:        "place zero",
			req:         ManualSubmission{ScrimID: testScrimID, Game: 1, Entries: []ManualEntry{{Place: 0, TeamTag: "DS"}}},
			wantFailure: ErrInvalidPlace,
		},
		{
			name:        "only blank tags",
			req:         ManualSubmission{ScrimID: testScrimID, Game: 1, Entries: []ManualEntry{{Place: 1, TeamTag: " | "}}},
			wantFailure: ErrNoEntries,
		},
		{
			name:        "invalid game",
			req:         ManualSubmission{ScrimID: testScrimID, Game: 0, Entries: []ManualEntry{{Place: 1, TeamTag: "DS"}}},
			wantFailure: ErrInvalidGame,
		},
		{
			name:        "unknown scrim",
			req:         ManualSubmission{ScrimID: "other", Game: 1, Entries: []ManualEntry{{Place: 1, TeamTag: "DS"}}},
			wantFailure: ErrScrimNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeResultsRepository()
			s := newTestService(repo, newDirectory(), &FakeTextDetector{}, nil, Options{})

			res, err := s.SubmitManualResults(context.Background(), tt.req)
			require.NoError(t, err)

			if tt.wantFailure != nil {
				require.True(t, res.IsFailure())
				assert.ErrorIs(t, *res.Failure, tt.wantFailure)
				assert.Empty(t, repo.Manuals)
				return
			}

			require.True(t, res.IsSuccess())
			assert.Equal(t, len(tt.wantSaved), *res.Success)
			assert.Equal(t, tt.wantSaved, repo.Manuals)
		})
	}
}
