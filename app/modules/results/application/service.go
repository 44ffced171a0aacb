package resultsservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	resultsdb "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/repositories"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/metrics"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ResultsService"

// ResultsService implements the Service interface.
type ResultsService struct {
	repo     resultsdb.Repository
	scrims   ScrimDirectory
	detector TextDetector
	sessions SessionStore
	queue    BatchQueue
	logger   *slog.Logger
	metrics  metrics.ResultsMetrics
	tracer   trace.Tracer
	db       *bun.DB
	now      func() time.Time
}

// Options carries the optional collaborators. A nil Queue processes batches
// inline; a nil Sessions disables the match session operations.
type Options struct {
	Sessions SessionStore
	Queue    BatchQueue
}

// NewResultsService creates a new ResultsService.
func NewResultsService(
	repo resultsdb.Repository,
	scrims ScrimDirectory,
	detector TextDetector,
	logger *slog.Logger,
	metrics metrics.ResultsMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	opts Options,
) *ResultsService {
	return &ResultsService{
		repo:     repo,
		scrims:   scrims,
		detector: detector,
		sessions: opts.Sessions,
		queue:    opts.Queue,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
		now:      time.Now,
	}
}

type operationFunc[S any] func(ctx context.Context) (results.OperationResult[S, error], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any](
	s *ResultsService,
	ctx context.Context,
	operationName string,
	scrimID string,
	op operationFunc[S],
) (result results.OperationResult[S, error], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("scrim_id", scrimID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ScrimID(scrimID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
			result = results.OperationResult[S, error]{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.ScrimID(scrimID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.ScrimID(scrimID),
			attr.Error(*result.Failure),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	return result, nil
}

// runInTx runs fn in a transaction, or directly when no database handle is set.
func (s *ResultsService) runInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
