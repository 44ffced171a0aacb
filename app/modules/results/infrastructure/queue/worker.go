package resultsqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/attr"
	resultsevents "github.com/Black-And-White-Club/scrim-bot/pkg/events/results"
	"github.com/riverqueue/river"
)

// BatchProcessor runs a batch synchronously.
type BatchProcessor interface {
	ProcessScreenshots(ctx context.Context, req resultsservice.BatchRequest) (resultsservice.BatchResult, error)
}

// EventPublisher publishes JSON payloads on the event bus.
type EventPublisher interface {
	PublishJSON(ctx context.Context, topic string, payload any) error
}

var errNoProcessor = errors.New("no batch processor bound to the ocr worker")

// OCRBatchWorker processes queued batches and announces their outcome.
type OCRBatchWorker struct {
	river.WorkerDefaults[OCRBatchJob]

	processor BatchProcessor
	publisher EventPublisher
	logger    *slog.Logger
}

func NewOCRBatchWorker(logger *slog.Logger, publisher EventPublisher) *OCRBatchWorker {
	return &OCRBatchWorker{
		publisher: publisher,
		logger:    logger,
	}
}

// Work returns an error only for infrastructure failures so River retries
// them. Rejected batches are reported on the bus and completed.
func (w *OCRBatchWorker) Work(ctx context.Context, job *river.Job[OCRBatchJob]) error {
	if w.processor == nil {
		return errNoProcessor
	}

	args := job.Args
	if args.CorrelationID != "" {
		ctx = attr.WithCorrelationID(ctx, args.CorrelationID)
	}

	logger := w.logger.With(
		attr.ExtractCorrelationID(ctx),
		attr.ScrimID(args.ScrimID),
		attr.Game(args.Game),
		attr.String("batch_id", args.BatchID),
		attr.Int("attempt", job.Attempt),
	)
	logger.InfoContext(ctx, "Processing queued screenshot batch", attr.Int("images", len(args.Images)))

	result, err := w.processor.ProcessScreenshots(ctx, resultsservice.BatchRequest{
		BatchID:   args.BatchID,
		ScrimID:   args.ScrimID,
		Game:      args.Game,
		Images:    args.Images,
		ChannelID: args.ChannelID,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Queued batch failed", attr.Error(err))
		return fmt.Errorf("process batch %s: %w", args.BatchID, err)
	}

	if result.IsFailure() {
		reason := (*result.Failure).Error()
		logger.WarnContext(ctx, "Queued batch rejected", attr.String("reason", reason))
		if args.ChannelID == "" {
			return nil
		}
		return w.publisher.PublishJSON(ctx, resultsevents.MatchSessionFailedV1, resultsevents.MatchSessionFailedPayloadV1{
			ChannelID: args.ChannelID,
			Reason:    reason,
		})
	}

	report := *result.Success
	return w.publisher.PublishJSON(ctx, resultsevents.ResultsProcessedV1, resultsevents.ResultsProcessedPayloadV1{
		ChannelID:    report.ChannelID,
		ScrimID:      report.ScrimID,
		Game:         report.Game,
		BatchID:      report.BatchID,
		RowsWritten:  report.RowsWritten,
		Images:       len(report.Outcomes),
		FailedImages: report.FailedImages(),
	})
}
