package resolve

import "encoding/json"

// Phase is the stage of a content load.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadState is the state of one content load. The zero value is Idle. Only
// Loaded carries content and only Failed carries a reason.
type LoadState struct {
	phase   Phase
	content string
	reason  string
	cause   error
}

// Idle is the state before any request.
func Idle() LoadState { return LoadState{} }

// Loading is the state while a request is in flight.
func Loading() LoadState { return LoadState{phase: PhaseLoading} }

// Loaded is the terminal success state holding the fetched content.
func Loaded(content string) LoadState {
	return LoadState{phase: PhaseLoaded, content: content}
}

// Failed is the terminal failure state. cause may be nil.
func Failed(reason string, cause error) LoadState {
	return LoadState{phase: PhaseFailed, reason: reason, cause: cause}
}

func (s LoadState) Phase() Phase { return s.phase }
func (s LoadState) Content() string { return s.content }
func (s LoadState) Reason() string { return s.reason }
func (s LoadState) Err() error { return s.cause }
func (s LoadState) String() string { return s.phase.String() }

// Terminal reports whether s is Loaded or Failed.
func (s LoadState) Terminal() bool {
	return s.phase == PhaseLoaded || s.phase == PhaseFailed
}

type loadStateJSON struct {
	State   string `json:"state"`
	Content *string `json:"content,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// MarshalJSON renders the state for the view layer.
func (s LoadState) MarshalJSON() ([]byte, error) {
	v := loadStateJSON{State: s.phase.String(), Reason: s.reason}
	// Loaded always carries content, even when it is empty.
	if s.phase == PhaseLoaded {
		v.Content = &s.content
	}
	return json.Marshal(v)
}
