package player

import "github.com/dlamsal/airwave/internal/domain"

// State is the playback state machine position.
type State int

const (
	// StateIdle: no current station.
	StateIdle State = iota
	// StateLoading: a play request was issued, stream not yet confirmed.
	StateLoading
	// StatePlaying: the stream is audible.
	StatePlaying
	// StatePaused: a current station exists but output is stopped.
	StatePaused
	// StateErrored: the last operation failed; the station is retained so
	// the user can retry or pick another.
	StateErrored
)

// String returns a human-readable representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateErrored:
		return "Errored"
	default:
		return "Unknown"
	}
}

// Status is a point-in-time snapshot of the controller for display.
type Status struct {
	State   State
	Station *domain.Station // nil when idle
	Volume  float64
	Message string // user-facing error message, empty unless errored
}

// IsPlaying reports whether audio output is active.
func (s Status) IsPlaying() bool {
	return s.State == StatePlaying
}
