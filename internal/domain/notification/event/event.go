package event

import (
	"encoding/json"

	"github.com/craftloop/backend/internal/entity"
)

// Event is one social occurrence that may turn into notifications. Op
// doubles as the durable notification type tag.
type Event interface {
	Op() entity.NotificationType

	// Title renders the headline shown to the recipient. The actor name is
	// resolved by the fanout engine.
	Title(actorName string) string

	// Message renders the notification body. Implementations fall back
	// from an explicit description to the target's title to a generic
	// viewing prompt.
	Message() string

	// Metadata references the triggering entities for the client.
	Metadata() entity.Map
}

type EventRequest struct {
	Op       entity.NotificationType `json:"o"`
	UserID   string                  `json:"user_id"`
	Title    string                  `json:"title"`
	Message  string                  `json:"message"`
	Metadata entity.Map              `json:"m,omitempty"`
}

func (r *EventRequest) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *EventRequest) Unmarshal(b []byte) error {
	return json.Unmarshal(b, r)
}
