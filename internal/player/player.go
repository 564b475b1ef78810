package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/llehouerou/spotiqueue-worker/internal/spotifyid"
)

type State int

const (
	Stopped State = iota
	Playing
	Paused
)

const (
	// DefaultSampleRate matches the rate Spotify encodes its Ogg Vorbis files at.
	DefaultSampleRate = 44100
	DefaultBuffer     = 100 * time.Millisecond

	resampleQuality = 4
)

// Config holds the audio output settings.
type Config struct {
	SampleRate int
	Buffer     time.Duration
	Volume     float64 // 0.0 to 1.0
}

// DefaultConfig returns the default output configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		Buffer:     DefaultBuffer,
		Volume:     1,
	}
}

// Player decodes tracks from a Source and plays them on the default output
// device. It is not safe for concurrent use; the playback worker owns it.
type Player struct {
	source Source
	cfg    Config

	state     State
	ctrl      *beep.Ctrl
	volume    *effects.Volume
	streamer  beep.StreamSeekCloser
	format    beep.Format
	trackInfo *TrackInfo

	done   chan struct{}
	finish func()

	gain float64
}

var (
	speakerOnce sync.Once
	speakerErr  error
	speakerRate beep.SampleRate
)

// New creates a player reading tracks from source.
func New(source Source, cfg Config) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultBuffer
	}
	cfg.Volume = max(0, min(cfg.Volume, 1))

	done := make(chan struct{})
	close(done)
	return &Player{
		source: source,
		cfg:    cfg,
		state:  Stopped,
		done:   done,
		finish: func() {},
		gain:   levelToGain(cfg.Volume),
	}
}

// initSpeaker initializes the output device once per process. The speaker
// keeps its first sample rate; tracks at other rates are resampled.
func (p *Player) initSpeaker() error {
	speakerOnce.Do(func() {
		rate := beep.SampleRate(p.cfg.SampleRate)
		speakerErr = speaker.Init(rate, rate.N(p.cfg.Buffer))
		speakerRate = rate
	})
	return speakerErr
}

// Load stops the current track and starts id at position.
func (p *Player) Load(ctx context.Context, id spotifyid.TrackID, startPlaying bool, position time.Duration) error {
	p.Stop()

	stream, err := p.source.Open(ctx, id)
	if err != nil {
		return fmt.Errorf("open %s: %w", id, err)
	}

	streamer, format, err := decodeWithContext(ctx, stream)
	if err != nil {
		if c, ok := stream.Audio.(interface{ Close() error }); ok {
			c.Close()
		}
		return fmt.Errorf("decode %s (%s): %w", id, stream.Codec, err)
	}

	if err := p.initSpeaker(); err != nil {
		streamer.Close()
		return fmt.Errorf("init audio output: %w", err)
	}

	if position > 0 {
		n := min(format.SampleRate.N(position), streamer.Len())
		if err := streamer.Seek(n); err != nil {
			streamer.Close()
			return fmt.Errorf("seek %s to %v: %w", id, position, err)
		}
	}

	p.streamer = streamer
	p.format = format

	var playStreamer beep.Streamer = streamer
	if format.SampleRate != speakerRate {
		playStreamer = beep.Resample(resampleQuality, format.SampleRate, speakerRate, streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: playStreamer, Paused: !startPlaying}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   p.gain,
		Silent:   p.cfg.Volume == 0,
	}

	info := stream.Info
	info.ID = id
	info.Duration = format.SampleRate.D(streamer.Len())
	info.SampleRate = int(format.SampleRate)
	info.Channels = format.NumChannels
	p.trackInfo = &info

	done := make(chan struct{})
	p.done = done
	p.finish = sync.OnceFunc(func() { close(done) })

	if startPlaying {
		p.state = Playing
	} else {
		p.state = Paused
	}

	speaker.Play(beep.Seq(p.volume, beep.Callback(p.finish)))

	return nil
}

// State returns the current state. A track that played to the end reports
// Stopped.
func (p *Player) State() State {
	if p.state != Stopped {
		select {
		case <-p.done:
			return Stopped
		default:
		}
	}
	return p.state
}

// TrackInfo returns the loaded track, or nil when stopped.
func (p *Player) TrackInfo() *TrackInfo { return p.trackInfo }

// Done is closed when the current track finishes or is stopped.
func (p *Player) Done() <-chan struct{} { return p.done }

// Duration returns the loaded track duration.
func (p *Player) Duration() time.Duration {
	if p.trackInfo == nil {
		return 0
	}
	return p.trackInfo.Duration
}
