package eventstream

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypePathSearched is emitted after a path lookup has been answered.
	EventTypePathSearched = "beatpath.path.searched"
)

// PathSearchedEvent is a transport-neutral event payload for one path lookup.
type PathSearchedEvent struct {
	SchemaVersion int           `json:"schema_version"`
	EventType     string        `json:"event_type"`
	EventID       string        `json:"event_id"`
	EmittedAt     time.Time     `json:"emitted_at"`
	Request       SearchRequest `json:"request"`
	Outcome       SearchOutcome `json:"outcome"`
}

// SearchRequest echoes the requested teams.
type SearchRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Origin string `json:"origin,omitempty"`
}

// SearchOutcome summarizes how the lookup was answered.
type SearchOutcome struct {
	Kind       string `json:"kind"`
	Steps      int    `json:"steps"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// NewPathSearchedEvent stamps a new event with a fresh id and emit time.
func NewPathSearchedEvent(req SearchRequest, outcome SearchOutcome) *PathSearchedEvent {
	return &PathSearchedEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypePathSearched,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		Request:       req,
		Outcome:       outcome,
	}
}
