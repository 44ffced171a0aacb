// Package scrimevents defines the scrim registration event subjects and payloads.
package scrimevents

const (
	TeamRegisterRequestedV1 = "scrim.team.register.requested.v1"
	TeamRegisteredV1        = "scrim.team.registered.v1"
	TeamRegisterFailedV1    = "scrim.team.register.failed.v1"
)

type TeamRegisterRequestedPayloadV1 struct {
	ScrimID string `json:"scrim_id"`
	Tag     string `json:"tag"`
	Name    string `json:"name"`
	Slot    int    `json:"slot"`
	OwnerID string `json:"owner_id"`
}

type TeamRegisteredPayloadV1 struct {
	ScrimID string `json:"scrim_id"`
	Tag     string `json:"tag"`
	Name    string `json:"name"`
	Slot    int    `json:"slot"`
	OwnerID string `json:"owner_id"`
}

type TeamRegisterFailedPayloadV1 struct {
	ScrimID string `json:"scrim_id"`
	Slot    int    `json:"slot"`
	OwnerID string `json:"owner_id"`
	Reason  string `json:"reason"`
}
