// internal/playback/worker.go
package playback

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/spotiqueue-worker/internal/command"
	"github.com/llehouerou/spotiqueue-worker/internal/errmsg"
	"github.com/llehouerou/spotiqueue-worker/internal/player"
	"github.com/llehouerou/spotiqueue-worker/internal/spotifyid"
)

// DefaultLoadTimeout bounds a single track load.
const DefaultLoadTimeout = 15 * time.Second

// Verify Worker implements Service at compile time.
var _ Service = (*Worker)(nil)

// Worker owns the player and handles commands one at a time. Only the loop
// goroutine touches the player.
type Worker struct {
	player player.Interface
	cmds   command.Receiver
	log    logrus.FieldLogger

	loadTimeout time.Duration

	state   atomic.Int32
	current atomic.Pointer[Track]

	subs       []*Subscription
	subsClosed bool
	subsMu     sync.RWMutex

	startOnce sync.Once
	done      chan struct{}
	err       error
}

// Option configures a Worker.
type Option func(*Worker)

// WithLoadTimeout sets how long one load may take before the command is
// failed. Non-positive values keep DefaultLoadTimeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.loadTimeout = d
		}
	}
}

// New creates a worker that reads commands from cmds and drives p.
func New(p player.Interface, cmds command.Receiver, log logrus.FieldLogger, opts ...Option) *Worker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	w := &Worker{
		player:      p,
		cmds:        cmds,
		log:         log.WithField("component", "worker"),
		loadTimeout: DefaultLoadTimeout,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start runs the loop on a goroutine locked to its own OS thread. Calling it
// more than once has no effect.
func (w *Worker) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		go func() {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			w.err = w.Run(ctx)
			close(w.done)
		}()
	})
}

// Wait blocks until the loop started by Start exits.
func (w *Worker) Wait() error {
	<-w.done
	return w.err
}

// Done is closed when the loop started by Start exits.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Run handles commands until the channel is closed (returns nil) or ctx is
// done (returns ctx.Err()). No single command can end the loop.
func (w *Worker) Run(ctx context.Context) error {
	defer w.closeSubscriptions()

	w.log.Debug("Worker started")
	for {
		cmd, err := w.cmds.Receive(ctx)
		if err != nil {
			if errors.Is(err, command.ErrClosed) {
				w.log.Debug("Command channel closed, worker exiting")
				w.player.Stop()
				return nil
			}
			return err
		}
		w.publish(w.handle(ctx, cmd))
	}
}

// handle runs one stop → parse → load cycle. Panics from the engine are
// recovered into an OutcomeLoadFailed event.
func (w *Worker) handle(ctx context.Context, cmd command.Command) (ev CommandHandled) {
	log := w.log.WithField("uri", string(cmd))
	log.Info("Command received")

	ev.Command = cmd
	defer func() {
		if r := recover(); r != nil {
			ev.Outcome = OutcomeLoadFailed
			ev.Track = nil
			ev.Err = fmt.Errorf("player panic: %v", r)
			log.WithField("panic", r).Error(errmsg.Format(errmsg.OpPlaybackLoad, ev.Err))
			w.current.Store(nil)
			w.setState(StateIdle)
		}
		ev.At = time.Now()
	}()

	w.setState(StateStopping)
	w.player.Stop()
	w.current.Store(nil)

	id, ok, err := spotifyid.ParseTrackURI(string(cmd))
	switch {
	case err != nil:
		log.Warn(errmsg.Format(errmsg.OpParseURI, err))
		w.setState(StateIdle)
		ev.Outcome = OutcomeInvalidID
		ev.Err = err
		return ev
	case !ok:
		log.Warn("Not a Spotify track URI, ignoring")
		w.setState(StateIdle)
		ev.Outcome = OutcomeNotTrack
		return ev
	}

	w.setState(StateLoading)
	loadCtx, cancel := context.WithTimeout(ctx, w.loadTimeout)
	err = w.player.Load(loadCtx, id, true, 0)
	cancel()
	if err != nil {
		log.Error(errmsg.FormatWith(errmsg.OpPlaybackLoad, id.Base62(), err))
		w.setState(StateIdle)
		ev.Outcome = OutcomeLoadFailed
		ev.Err = err
		return ev
	}

	track := trackFromInfo(id, w.player.TrackInfo())
	w.current.Store(track)
	w.setState(StatePlaying)
	log.WithFields(logrus.Fields{
		"title":  track.Title,
		"artist": track.Artist,
	}).Info("Playing")

	ev.Outcome = OutcomePlaying
	ev.Track = track
	return ev
}

// State returns the current worker state.
func (w *Worker) State() State {
	return State(w.state.Load())
}

// CurrentTrack returns the playing track, or nil if none.
func (w *Worker) CurrentTrack() *Track {
	t := w.current.Load()
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func (w *Worker) setState(s State) {
	prev := State(w.state.Swap(int32(s)))
	if prev == s {
		return
	}
	w.subsMu.RLock()
	defer w.subsMu.RUnlock()
	for _, sub := range w.subs {
		sub.sendState(StateChange{Previous: prev, Current: s})
	}
}

func (w *Worker) publish(ev CommandHandled) {
	w.subsMu.RLock()
	defer w.subsMu.RUnlock()
	for _, sub := range w.subs {
		sub.sendHandled(ev)
	}
}

// Subscribe creates a new event subscription. Subscribing after the loop has
// exited returns an already-closed subscription.
func (w *Worker) Subscribe() *Subscription {
	w.subsMu.Lock()
	defer w.subsMu.Unlock()
	sub := newSubscription()
	if w.subsClosed {
		sub.close()
		return sub
	}
	w.subs = append(w.subs, sub)
	return sub
}

func (w *Worker) closeSubscriptions() {
	w.subsMu.Lock()
	defer w.subsMu.Unlock()
	for _, sub := range w.subs {
		sub.close()
	}
	w.subs = nil
	w.subsClosed = true
}
