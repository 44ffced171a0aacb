package resultsservice

import (
	"context"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
)

// MaxManualPlace is the last placement slot on the manual entry form.
const MaxManualPlace = 20

type (
	BatchResult       = results.OperationResult[*BatchReport, error]
	SubmissionResult  = results.OperationResult[*BatchSubmission, error]
	ManualSaveResult  = results.OperationResult[int, error]
	DeleteResult      = results.OperationResult[int64, error]
	LeaderboardResult = results.OperationResult[*Leaderboard, error]
	SessionResult     = results.OperationResult[struct{}, error]
	CollectResult     = results.OperationResult[int, error]
	FinishResult      = results.OperationResult[*FinishedSession, error]
)

// Service is the match-result pipeline and leaderboard API.
type Service interface {
	// ProcessScreenshots OCRs and scores every image of one game. A failed
	// image is recorded in the report and the rest are still processed.
	ProcessScreenshots(ctx context.Context, req BatchRequest) (BatchResult, error)

	// SubmitBatch hands the batch to the background queue when one is
	// configured and processes it inline otherwise.
	SubmitBatch(ctx context.Context, req BatchRequest) (SubmissionResult, error)

	SubmitManualResults(ctx context.Context, req ManualSubmission) (ManualSaveResult, error)
	DeleteGame(ctx context.Context, scrimID string, game int) (DeleteResult, error)
	ClearScrim(ctx context.Context, scrimID string) (DeleteResult, error)
	GetLeaderboard(ctx context.Context, scrimID string) (LeaderboardResult, error)

	BeginSession(ctx context.Context, channelID, scrimID string, game int) (SessionResult, error)
	CollectImage(ctx context.Context, channelID, imageURL string) (CollectResult, error)
	FinishSession(ctx context.Context, channelID string) (FinishResult, error)
}

// ScrimDirectory supplies the roster and points table of a scrim. Unknown
// scrims are reported with ErrScrimNotFound.
type ScrimDirectory interface {
	Teams(ctx context.Context, scrimID string) ([]resultsdomain.Team, error)
	ScoringConfig(ctx context.Context, scrimID string) (resultsdomain.ScoringConfig, error)
}

// TextDetector returns the full text recognized in an image, or "" when
// nothing was detected.
type TextDetector interface {
	DetectText(ctx context.Context, imageURL string) (string, error)
}

// SessionStore keeps per-channel match sessions. Collect and Finish return
// resultsdomain.ErrNoSession for channels without a session; Begin replaces
// any session already open in the channel.
type SessionStore interface {
	Begin(ctx context.Context, channelID string, session resultsdomain.MatchSession) error
	Collect(ctx context.Context, channelID, imageURL string) (int, error)
	Finish(ctx context.Context, channelID string) (resultsdomain.MatchSession, error)
}

// BatchQueue runs batches out of band.
type BatchQueue interface {
	EnqueueBatch(ctx context.Context, req BatchRequest) error
}

// BatchRequest names the screenshots of one game. ChannelID is carried along
// so completion can be reported back to the channel that posted them.
type BatchRequest struct {
	BatchID   string   `json:"batch_id"`
	ScrimID   string   `json:"scrim_id"`
	Game      int      `json:"game"`
	Images    []string `json:"images"`
	ChannelID string   `json:"channel_id,omitempty"`
}

// ImageOutcome is the result of processing one screenshot.
type ImageOutcome struct {
	Image         string `json:"image"`
	Success       bool   `json:"success"`
	RowsWritten   int    `json:"rows_written"`
	RowsDiscarded int    `json:"rows_discarded"`
	Error         string `json:"error,omitempty"`
}

// BatchReport summarizes a processed batch.
type BatchReport struct {
	BatchID       string         `json:"batch_id"`
	ScrimID       string         `json:"scrim_id"`
	Game          int            `json:"game"`
	ChannelID     string         `json:"channel_id,omitempty"`
	RowsWritten   int            `json:"rows_written"`
	RowsDiscarded int            `json:"rows_discarded"`
	Outcomes      []ImageOutcome `json:"outcomes"`
}

// FailedImages lists the images that could not be processed.
func (r *BatchReport) FailedImages() []string {
	var failed []string
	for _, o := range r.Outcomes {
		if !o.Success {
			failed = append(failed, o.Image)
		}
	}
	return failed
}

// BatchSubmission reports how a batch was handled. Report is nil when the
// batch was queued.
type BatchSubmission struct {
	BatchID string       `json:"batch_id"`
	Queued  bool         `json:"queued"`
	Report  *BatchReport `json:"report,omitempty"`
}

// ManualEntry is one placement slot of the manual entry form.
type ManualEntry struct {
	Place   int    `json:"place"`
	TeamTag string `json:"team_tag"`
	Kills   int    `json:"kills"`
}

type ManualSubmission struct {
	ScrimID   string        `json:"scrim_id"`
	Game      int           `json:"game"`
	EnteredBy string        `json:"entered_by"`
	Entries   []ManualEntry `json:"entries"`
}

// Leaderboard is the aggregated standings of a scrim under its current
// points table.
type Leaderboard struct {
	ScrimID string                           `json:"scrim_id"`
	Scoring resultsdomain.ScoringConfig      `json:"scoring"`
	Entries []resultsdomain.LeaderboardEntry `json:"entries"`
}

// FinishedSession is a closed match session and what happened to its batch.
type FinishedSession struct {
	ChannelID  string                     `json:"channel_id"`
	Session    resultsdomain.MatchSession `json:"session"`
	Submission BatchSubmission            `json:"submission"`
}
