package result

import "fmt"

// Tone classifies a status message for styling.
type Tone int

const (
	ToneInfo Tone = iota
	ToneError
	ToneSuccess

	// ToneFallback marks a generated, non-authoritative answer. It must stay
	// visually distinct from ToneSuccess, which is reserved for verified chains.
	ToneFallback
)

func (t Tone) String() string {
	switch t {
	case ToneError:
		return "error"
	case ToneSuccess:
		return "success"
	case ToneFallback:
		return "fallback"
	default:
		return "info"
	}
}

// Status is the one-line message shown above the results.
type Status struct {
	Message string
	Tone    Tone
}

const (
	msgPickTwoTeams   = "Pick two teams"
	msgSearching      = "Searching for a path…"
	msgNoPathFound    = "No path found"
	msgSomethingWrong = "Something went wrong. Try again."
	msgGenerated      = "Generated explanation (no transitive path found)"
)

func stepsStatus(steps int) Status {
	return Status{
		Message: fmt.Sprintf("Found a chain with %d step(s)", steps),
		Tone:    ToneSuccess,
	}
}

// State is the controller's position in its submit/response cycle.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateShowingPath
	StateShowingFallback
	StateShowingError
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateShowingPath:
		return "showing-path"
	case StateShowingFallback:
		return "showing-fallback"
	case StateShowingError:
		return "showing-error"
	default:
		return "idle"
	}
}
