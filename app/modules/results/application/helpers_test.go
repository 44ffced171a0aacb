package resultsservice

import (
	"io"
	"log/slog"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	resultsdb "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/repositories"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/metrics"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

const testScrimID = "scrim-1"

func testRoster() []resultsdomain.Team {
	return []resultsdomain.Team{
		{Tag: "DS", Name: "Dark Side", Slot: 1},
		{Tag: "TX", Name: "Texas", Slot: 2},
		{Tag: "GG", Name: "Good Game", Slot: 3},
	}
}

func newDirectory() *FakeScrimDirectory {
	return &FakeScrimDirectory{Rosters: map[string][]resultsdomain.Team{testScrimID: testRoster()}}
}

func newTestService(repo resultsdb.Repository, dir ScrimDirectory, det TextDetector, db *bun.DB, opts Options) *ResultsService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewResultsService(repo, dir, det, logger, metrics.NoOp{}, noop.NewTracerProvider().Tracer("test"), db, opts)
}

// Screenshot texts as the OCR service returns them.
const (
	screenshotTop = "PUBG MOBILE\nMATCH RESULT\n#1\nDS|Alice\nDS|Bob\n5 ELIMINATIONS\n#2\nTX.Carl\nTX.Dan\n2 ELIMINATIONS\n"
	screenshotLow = "#3\nGG Eve\nGG Finn\n0 ELIMINATIONS\n#4\nrandom\nstranger\n1 ELIMINATION\n"
)
