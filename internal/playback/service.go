package playback

import (
	"context"
)

// Service defines the playback worker contract.
type Service interface {
	// Start runs the command loop on its own OS thread.
	Start(ctx context.Context)
	// Wait blocks until the loop has exited and returns its error.
	Wait() error
	// Done is closed when the loop exits.
	Done() <-chan struct{}

	// State queries, safe from any goroutine
	State() State
	CurrentTrack() *Track

	// Event subscription
	Subscribe() *Subscription
}
