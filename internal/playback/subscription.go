package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged   <-chan StateChange
	CommandHandled <-chan CommandHandled
	Done           <-chan struct{}

	// Internal write channels
	stateCh   chan StateChange
	handledCh chan CommandHandled
	doneCh    chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:   make(chan StateChange, eventBufferSize),
		handledCh: make(chan CommandHandled, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.CommandHandled = s.handledCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendHandled sends a command outcome event (non-blocking).
func (s *Subscription) sendHandled(e CommandHandled) {
	select {
	case s.handledCh <- e:
	default:
	}
}
