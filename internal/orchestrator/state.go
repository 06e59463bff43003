package orchestrator

// State is the session's position in the pipeline.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateExtracting
	StateTranscribing
	StateSummarizing
	StateReady
	StateSending
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateExtracting:
		return "extracting"
	case StateTranscribing:
		return "transcribing"
	case StateSummarizing:
		return "summarizing"
	case StateReady:
		return "ready"
	case StateSending:
		return "sending"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TransitionFunc observes state changes. It runs synchronously on the
// goroutine performing the action.
type TransitionFunc func(from, to State)
