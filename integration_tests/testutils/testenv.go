// Package testutils starts the containers the integration suites share and
// builds apps wired to them.
package testutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/scrim-bot/app"
	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	"github.com/Black-And-White-Club/scrim-bot/config"
	"github.com/Black-And-White-Club/scrim-bot/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestEnvironment holds the containers for one suite run.
type TestEnvironment struct {
	PgContainer   *postgres.PostgresContainer
	NatsContainer testcontainers.Container
	PgDSN         string
	NatsURL       string
}

// NewTestEnvironment starts Postgres and NATS.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	pg, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, fmt.Errorf("failed to setup nats container: %w", err)
	}

	return &TestEnvironment{
		PgContainer:   pg,
		NatsContainer: natsContainer,
		PgDSN:         dsn,
		NatsURL:       natsURL,
	}, nil
}

// Terminate stops both containers.
func (env *TestEnvironment) Terminate(ctx context.Context) error {
	return errors.Join(env.NatsContainer.Terminate(ctx), env.PgContainer.Terminate(ctx))
}

// Config returns an app config pointing at the containers with the queue on.
func (env *TestEnvironment) Config() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverPostgres, DSN: env.PgDSN},
		NATS:     config.NATSConfig{URL: env.NatsURL},
		Redis:    config.RedisConfig{SessionTTL: time.Hour},
		JWT:      config.JWTConfig{Secret: "integration-secret", DefaultTTL: time.Hour},
		HTTP:     config.HTTPConfig{Addr: "127.0.0.1:0", RateLimit: 1000, RateBurst: 1000},
		Queue:    config.QueueConfig{Enabled: true, MaxWorkers: 2},
		Observability: config.ObservabilityConfig{
			LogLevel:    "error",
			Environment: "test",
		},
	}
}

// NewApp builds an app against the environment and closes it on cleanup.
func (env *TestEnvironment) NewApp(t *testing.T, detector resultsservice.TextDetector) *app.App {
	t.Helper()
	ctx := context.Background()
	a, err := app.NewApp(ctx, env.Config(), app.Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Detector: detector,
	})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = a.Close(ctx)
	})
	return a
}

// StaticDetector returns the same OCR text for every image and records calls.
type StaticDetector struct {
	Text string

	mu    sync.Mutex
	calls []string
}

func (d *StaticDetector) DetectText(_ context.Context, imageURL string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, imageURL)
	return d.Text, nil
}

// Calls returns the image URLs seen so far.
func (d *StaticDetector) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}
