// internal/playback/state.go
package playback

// State is the worker's playback state.
//
// Every command moves Idle/Playing → Stopping → Loading → Playing, or
// Stopping → Idle when the command is rejected or the load fails.
type State int32

const (
	StateIdle State = iota
	StateStopping
	StateLoading
	StatePlaying
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateStopping:
		return "Stopping"
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded and playing.
func (s State) IsActive() bool {
	return s == StatePlaying
}

// IsTransient returns true while a command is being handled.
func (s State) IsTransient() bool {
	return s == StateStopping || s == StateLoading
}

// Outcome is the result of handling one command.
type Outcome int

const (
	// OutcomePlaying means the track was loaded and started.
	OutcomePlaying Outcome = iota
	// OutcomeNotTrack means the command was not a track URI.
	OutcomeNotTrack
	// OutcomeInvalidID means the command was track-shaped but its id was corrupt.
	OutcomeInvalidID
	// OutcomeLoadFailed means the engine failed to load or start the track.
	OutcomeLoadFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeNotTrack:
		return "not_track"
	case OutcomeInvalidID:
		return "invalid_id"
	case OutcomeLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}
