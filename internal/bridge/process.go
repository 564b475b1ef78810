package bridge

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/spotiqueue-worker/internal/command"
	"github.com/llehouerou/spotiqueue-worker/internal/errmsg"
	"github.com/llehouerou/spotiqueue-worker/internal/playback"
	"github.com/llehouerou/spotiqueue-worker/internal/player"
	"github.com/llehouerou/spotiqueue-worker/internal/session"
	"github.com/llehouerou/spotiqueue-worker/internal/spotifyid"
)

// DefaultLoginTimeout bounds InitializeWorker when Options leaves it unset.
const DefaultLoginTimeout = 30 * time.Second

// Connector logs in and returns the source tracks are streamed from.
type Connector func(ctx context.Context, creds session.Credentials) (player.Source, error)

// PlayerFactory builds the engine the worker will own.
type PlayerFactory func(src player.Source) player.Interface

// Options configures a Process.
type Options struct {
	Connect      Connector
	NewPlayer    PlayerFactory
	Logger       logrus.FieldLogger
	LoginTimeout time.Duration
	// LoadTimeout bounds each track load; zero uses the worker default.
	LoadTimeout time.Duration

	// OnStart, if set, is called with the worker before its loop starts.
	// Subscriptions made here see every event.
	OnStart func(w *playback.Worker)
}

type processState int32

const (
	stateUninitialized processState = iota
	stateInitializing
	stateReady
)

func (s processState) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateInitializing:
		return "initializing"
	case stateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Process is the single worker instance of the host process.
//
// cmds, worker and stop are written once, before state becomes stateReady,
// and only read after observing stateReady.
type Process struct {
	opts  Options
	log   logrus.FieldLogger
	state atomic.Int32

	cmds   *command.Channel
	worker *playback.Worker
	stop   context.CancelFunc
}

// New creates an uninitialized process.
func New(opts Options) *Process {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.LoginTimeout <= 0 {
		opts.LoginTimeout = DefaultLoginTimeout
	}
	return &Process{
		opts: opts,
		log:  opts.Logger.WithField("component", "bridge"),
	}
}

func (p *Process) loadState() processState {
	return processState(p.state.Load())
}

// InitializeWorker logs in and starts the worker. It blocks for the duration
// of the login and returns true only for the call that started the worker.
// A failed login leaves the process uninitialized so the call can be retried.
func (p *Process) InitializeWorker(username, password []byte) bool {
	user, err := DecodeText(username)
	if err != nil {
		p.log.WithField("arg", "username").Warn(errmsg.Format(errmsg.OpDecodeText, err))
		return false
	}
	pass, err := DecodeText(password)
	if err != nil {
		p.log.WithField("arg", "password").Warn(errmsg.Format(errmsg.OpDecodeText, err))
		return false
	}
	creds := session.Credentials{Username: user, Password: pass}
	if err := creds.Validate(); err != nil {
		p.log.Warn(errmsg.Format(errmsg.OpInitialize, err))
		return false
	}

	if !p.state.CompareAndSwap(int32(stateUninitialized), int32(stateInitializing)) {
		p.log.WithField("state", p.loadState()).
			Error("Initialize called more than once; keeping the existing worker")
		return false
	}

	ready := false
	defer func() {
		if !ready {
			p.state.Store(int32(stateUninitialized))
		}
	}()

	log := p.log.WithField("user", user)
	log.Info("Logging in")

	ctx, cancel := context.WithTimeout(context.Background(), p.opts.LoginTimeout)
	src, err := p.opts.Connect(ctx, creds)
	cancel()
	if err != nil {
		log.Error(errmsg.Format(errmsg.OpSessionLogin, err))
		return false
	}

	cmds := command.New()
	w := playback.New(p.opts.NewPlayer(src), cmds, p.opts.Logger,
		playback.WithLoadTimeout(p.opts.LoadTimeout))
	if p.opts.OnStart != nil {
		p.opts.OnStart(w)
	}
	runCtx, stop := context.WithCancel(context.Background())
	w.Start(runCtx)

	p.cmds, p.worker, p.stop = cmds, w, stop
	p.state.Store(int32(stateReady))
	ready = true
	log.Info("Worker ready")
	return true
}

// PlayTrack hands uri to the worker. It blocks until the worker takes the
// command and returns false if the process is not ready or uri is not a
// valid track URI.
func (p *Process) PlayTrack(raw []byte) bool {
	uri, err := DecodeText(raw)
	if err != nil {
		p.log.Warn(errmsg.Format(errmsg.OpDecodeText, err))
		return false
	}
	if p.loadState() != stateReady {
		p.log.WithField("uri", uri).Warn("Play requested before the worker was initialized")
		return false
	}

	_, ok, err := spotifyid.ParseTrackURI(uri)
	switch {
	case err != nil:
		p.log.Warn(errmsg.Format(errmsg.OpParseURI, err))
		return false
	case !ok:
		p.log.WithField("uri", uri).Warn("Not a Spotify track URI")
		return false
	}

	if err := p.cmds.Send(context.Background(), command.Command(uri)); err != nil {
		p.log.WithField("uri", uri).Error(errmsg.Format(errmsg.OpSendCommand, err))
		return false
	}
	return true
}

// Shutdown closes the command channel and waits for the worker to stop the
// player and exit. Pending and later PlayTrack calls return false.
func (p *Process) Shutdown() error {
	if p.loadState() != stateReady {
		return nil
	}
	p.cmds.Close()
	err := p.worker.Wait()
	p.stop()
	return err
}
