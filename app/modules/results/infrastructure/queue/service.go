// Package resultsqueue runs screenshot batches in the background on River.
package resultsqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
)

// Ensure Service implements BatchQueue
var _ resultsservice.BatchQueue = (*Service)(nil)

// Service enqueues OCR batches and runs the worker that drains them.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	worker  *OCRBatchWorker
	logger  *slog.Logger
	metrics metrics.Operations
}

// NewService connects to Postgres, brings the River schema up to date and
// builds the client. Bind must be called before Start.
func NewService(ctx context.Context, dsn string, maxWorkers int, publisher EventPublisher, logger *slog.Logger, m metrics.Operations) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	m.RecordOperationAttempt(ctx, "initialize_service", "river")

	fail := func(err error) (*Service, error) {
		ctxLogger.Error("Failed to initialize results queue", attr.Error(err))
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, err
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fail(fmt.Errorf("failed to parse DSN: %w", err))
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fail(fmt.Errorf("failed to create pgx pool: %w", err))
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fail(fmt.Errorf("failed to ping database: %w", err))
	}

	driver := riverpgxv5.New(pool)

	migrator, err := rivermigrate.New(driver, nil)
	if err != nil {
		pool.Close()
		return fail(fmt.Errorf("failed to create River migrator: %w", err))
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		pool.Close()
		return fail(fmt.Errorf("failed to run River migrations: %w", err))
	}

	if maxWorkers < 1 {
		maxWorkers = 1
	}

	worker := NewOCRBatchWorker(ctxLogger, publisher)
	workers := river.NewWorkers()
	river.AddWorker(workers, worker)

	client, err := river.NewClient(driver, &river.Config{
		Queues: map[string]river.QueueConfig{
			QueueOCR: {MaxWorkers: maxWorkers},
		},
		Workers: workers,
		Logger:  ctxLogger,
	})
	if err != nil {
		pool.Close()
		return fail(fmt.Errorf("failed to create River client: %w", err))
	}

	m.RecordOperationSuccess(ctx, "initialize_service", "river")
	m.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))
	ctxLogger.Info("Results queue initialized", attr.Int("max_workers", maxWorkers))

	return &Service{
		client:  client,
		pool:    pool,
		worker:  worker,
		logger:  ctxLogger,
		metrics: m,
	}, nil
}

// Bind sets the processor the worker hands batches to.
func (s *Service) Bind(processor BatchProcessor) {
	s.worker.processor = processor
}

// Start starts working the queue.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.Info("Results queue started")
	return nil
}

// Stop waits for running jobs and closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	defer s.pool.Close()
	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.logger.Info("Results queue stopped")
	return nil
}

// EnqueueBatch inserts a batch job. Re-submitting the same batch is a no-op
// while the first job is pending.
func (s *Service) EnqueueBatch(ctx context.Context, req resultsservice.BatchRequest) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "enqueue_batch", "river")

	res, err := s.client.Insert(ctx, OCRBatchJob{
		BatchID:       req.BatchID,
		ScrimID:       req.ScrimID,
		Game:          req.Game,
		Images:        req.Images,
		ChannelID:     req.ChannelID,
		CorrelationID: attr.CorrelationID(ctx),
	}, nil)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "enqueue_batch", "river")
		s.logger.ErrorContext(ctx, "Failed to enqueue batch",
			attr.ExtractCorrelationID(ctx),
			attr.String("batch_id", req.BatchID),
			attr.Error(err),
		)
		return fmt.Errorf("failed to enqueue batch: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "enqueue_batch", "river")
	s.metrics.RecordOperationDuration(ctx, "enqueue_batch", "river", time.Since(start))
	s.logger.InfoContext(ctx, "Batch enqueued",
		attr.ExtractCorrelationID(ctx),
		attr.ScrimID(req.ScrimID),
		attr.Game(req.Game),
		attr.String("batch_id", req.BatchID),
		attr.Int64("job_id", res.Job.ID),
		attr.Bool("duplicate", res.UniqueSkippedAsDuplicate),
	)
	return nil
}

// HealthCheck pings the queue's connection pool.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("queue health check failed: %w", err)
	}
	return nil
}
