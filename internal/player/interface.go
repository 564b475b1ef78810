package player

import (
	"context"
	"time"

	"github.com/llehouerou/spotiqueue-worker/internal/spotifyid"
)

// Interface is the engine the playback worker drives. Implementations need
// not be safe for concurrent use.
type Interface interface {
	// Load stops the current track, then opens and starts id at position.
	// When startPlaying is false the track is left paused.
	Load(ctx context.Context, id spotifyid.TrackID, startPlaying bool, position time.Duration) error
	Stop()
	State() State
	TrackInfo() *TrackInfo
	Position() time.Duration
	Duration() time.Duration
	Done() <-chan struct{}
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
