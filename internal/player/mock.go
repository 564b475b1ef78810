package player

import (
	"context"
	"sync"
	"time"

	"github.com/llehouerou/spotiqueue-worker/internal/spotifyid"
)

// LoadCall records one call to Mock.Load.
type LoadCall struct {
	ID           spotifyid.TrackID
	StartPlaying bool
	Position     time.Duration
}

// Mock is a test double for Player. Unlike Player it is safe for concurrent
// use so tests can inspect it while a worker drives it.
type Mock struct {
	mu        sync.Mutex
	state     State
	position  time.Duration
	duration  time.Duration
	trackInfo *TrackInfo
	loadErr   error
	loadPanic any
	loadBlock bool
	loadCalls []LoadCall
	stopCalls int
	calls     []string
	done      chan struct{}
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state: Stopped,
		done:  make(chan struct{}),
	}
}

func (m *Mock) Load(ctx context.Context, id spotifyid.TrackID, startPlaying bool, position time.Duration) error {
	m.mu.Lock()
	m.calls = append(m.calls, "load")
	m.loadCalls = append(m.loadCalls, LoadCall{ID: id, StartPlaying: startPlaying, Position: position})
	if m.loadBlock {
		m.loadBlock = false
		m.mu.Unlock()
		<-ctx.Done()
		return ctx.Err()
	}
	defer m.mu.Unlock()
	if m.loadPanic != nil {
		p := m.loadPanic
		m.loadPanic = nil
		panic(p)
	}
	if m.loadErr != nil {
		m.state = Stopped
		return m.loadErr
	}
	m.trackInfo = &TrackInfo{ID: id}
	m.position = position
	if startPlaying {
		m.state = Playing
	} else {
		m.state = Paused
	}
	return nil
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "stop")
	m.stopCalls++
	m.state = Stopped
	m.trackInfo = nil
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) TrackInfo() *TrackInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trackInfo
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Done() <-chan struct{} {
	return m.done
}

// Test helpers

func (m *Mock) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

// SetLoadError makes every following Load fail with err.
func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// SetLoadBlock makes the next Load block until its context is done, like a
// stalled network fetch.
func (m *Mock) SetLoadBlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadBlock = true
}

// SetLoadPanic makes the next Load panic with v.
func (m *Mock) SetLoadPanic(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadPanic = v
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) LoadCalls() []LoadCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LoadCall(nil), m.loadCalls...)
}

func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

// Calls returns the ordered "stop"/"load" call log.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
