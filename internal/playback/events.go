package playback

import (
	"time"

	"github.com/llehouerou/spotiqueue-worker/internal/command"
)

// StateChange is emitted when the worker state changes.
type StateChange struct {
	Previous State
	Current  State
}

// CommandHandled is emitted once per received command, after the worker has
// finished with it.
//
// Track is set only for OutcomePlaying. Err is set for OutcomeInvalidID and
// OutcomeLoadFailed, including a recovered panic from the engine.
type CommandHandled struct {
	Command command.Command
	Outcome Outcome
	Track   *Track
	Err     error
	At      time.Time
}
