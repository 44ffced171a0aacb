// Package resultsevents defines the match-result event subjects and payloads.
package resultsevents

const (
	MatchSessionBeginV1  = "scrim.match.session.begin.v1"
	MatchSessionImageV1  = "scrim.match.session.image.v1"
	MatchSessionFinishV1 = "scrim.match.session.finish.v1"
	MatchSessionFailedV1 = "scrim.match.session.failed.v1"

	ResultsProcessedV1 = "scrim.results.processed.v1"

	ManualResultsSubmitV1 = "scrim.results.manual.submit.v1"
	ManualResultsSavedV1  = "scrim.results.manual.saved.v1"
	ManualResultsFailedV1 = "scrim.results.manual.failed.v1"
)

type MatchSessionBeginPayloadV1 struct {
	ChannelID string `json:"channel_id"`
	ScrimID   string `json:"scrim_id"`
	Game      int    `json:"game"`
}

type MatchSessionImagePayloadV1 struct {
	ChannelID string `json:"channel_id"`
	ImageURL  string `json:"image_url"`
}

type MatchSessionFinishPayloadV1 struct {
	ChannelID string `json:"channel_id"`
}

type MatchSessionFailedPayloadV1 struct {
	ChannelID string `json:"channel_id"`
	Reason    string `json:"reason"`
}

// ResultsProcessedPayloadV1 reports an OCR batch. Queued is true when the batch
// was handed to the background queue and counts are not yet known.
type ResultsProcessedPayloadV1 struct {
	ChannelID    string   `json:"channel_id,omitempty"`
	ScrimID      string   `json:"scrim_id"`
	Game         int      `json:"game"`
	BatchID      string   `json:"batch_id"`
	Queued       bool     `json:"queued,omitempty"`
	RowsWritten  int      `json:"rows_written"`
	Images       int      `json:"images"`
	FailedImages []string `json:"failed_images,omitempty"`
}

type ManualEntryV1 struct {
	Place   int    `json:"place"`
	TeamTag string `json:"team_tag"`
	Kills   int    `json:"kills"`
}

type ManualResultsSubmitPayloadV1 struct {
	ScrimID   string          `json:"scrim_id"`
	Game      int             `json:"game"`
	EnteredBy string          `json:"entered_by"`
	Entries   []ManualEntryV1 `json:"entries"`
}

type ManualResultsSavedPayloadV1 struct {
	ScrimID string `json:"scrim_id"`
	Game    int    `json:"game"`
	Saved   int    `json:"saved"`
}

type ManualResultsFailedPayloadV1 struct {
	ScrimID string `json:"scrim_id"`
	Game    int    `json:"game"`
	Reason  string `json:"reason"`
}
