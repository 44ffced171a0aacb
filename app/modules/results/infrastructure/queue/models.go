package resultsqueue

import (
	"github.com/riverqueue/river"
)

// QueueOCR is the dedicated River queue for screenshot batches.
const QueueOCR = "ocr"

// OCRBatchJob runs one game's screenshots through the results pipeline.
// Uniqueness is keyed on BatchID alone.
type OCRBatchJob struct {
	BatchID       string   `json:"batch_id" river:"unique"`
	ScrimID       string   `json:"scrim_id"`
	Game          int      `json:"game"`
	Images        []string `json:"images"`
	ChannelID     string   `json:"channel_id,omitempty"`
	CorrelationID string   `json:"correlation_id,omitempty"`
}

// Kind returns the job type identifier for River
func (OCRBatchJob) Kind() string { return "ocr_batch" }

func (OCRBatchJob) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       QueueOCR,
		MaxAttempts: 3,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	}
}
