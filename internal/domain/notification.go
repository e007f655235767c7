package domain

import "time"

type ChangeKind string

const (
	ChangeCreate ChangeKind = "CREATE"
	ChangeUpdate ChangeKind = "UPDATE"
	ChangeDelete ChangeKind = "DELETE"
)

// ChangeEvent is the ephemeral envelope published to the real-time channel
// after a successful write. It is never persisted.
type ChangeEvent struct {
	Entity    string      `json:"entity"`
	Kind      ChangeKind  `json:"kind"`
	Payload   interface{} `json:"payload"`
	CreatedAt time.Time   `json:"created_at"`
}

func NewChangeEvent(entity string, kind ChangeKind, payload interface{}) ChangeEvent {
	return ChangeEvent{
		Entity:    entity,
		Kind:      kind,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}
