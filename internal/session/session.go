// Package session logs in to Spotify and opens track audio through
// librespot-golang.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/librespot-org/librespot-golang/Spotify"
	"github.com/librespot-org/librespot-golang/librespot"
	"github.com/librespot-org/librespot-golang/librespot/core"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/spotiqueue-worker/internal/player"
	"github.com/llehouerou/spotiqueue-worker/internal/spotifyid"
)

var (
	ErrTrackNotFound = errors.New("track not found")
	ErrNoAudioFile   = errors.New("no playable ogg vorbis file")
)

const DefaultBitrate = 320

// Options configure a session.
type Options struct {
	DeviceName string
	Bitrate    int // preferred Ogg Vorbis bitrate: 96, 160 or 320
	Logger     logrus.FieldLogger
}

type metadataClient interface {
	GetTrack(id string) (*Spotify.Track, error)
}

type audioLoader interface {
	LoadTrack(file *Spotify.AudioFile, trackID []byte) (io.ReadSeeker, error)
}

// Session is an authenticated Spotify connection. It implements
// player.Source.
type Session struct {
	username string
	meta     metadataClient
	audio    audioLoader
	bitrate  int
	log      logrus.FieldLogger
}

// Verify Session implements player.Source at compile time.
var _ player.Source = (*Session)(nil)

// librespotAudio adapts the librespot player to audioLoader.
type librespotAudio struct {
	cs *core.Session
}

func (a librespotAudio) LoadTrack(file *Spotify.AudioFile, trackID []byte) (io.ReadSeeker, error) {
	f, err := a.cs.Player().LoadTrack(file, trackID)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// loginFunc performs the blocking librespot handshake. Replaced in tests.
var loginFunc = func(username, password, deviceName string) (*Session, error) {
	cs, err := librespot.Login(username, password, deviceName)
	if err != nil {
		return nil, err
	}
	return &Session{
		username: username,
		meta:     cs.Mercury(),
		audio:    librespotAudio{cs: cs},
	}, nil
}

// Login authenticates with creds. It blocks until the handshake completes,
// fails, or ctx is done.
func Login(ctx context.Context, creds Credentials, opts Options) (*Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("username", creds.Username)

	start := time.Now()
	log.Info("Authorizing")

	s, err := withContext(ctx, func() (*Session, error) {
		return loginFunc(creds.Username, creds.Password, opts.DeviceName)
	})
	if err != nil {
		return nil, fmt.Errorf("login as %q: %w", creds.Username, err)
	}

	s.bitrate = opts.Bitrate
	if s.bitrate == 0 {
		s.bitrate = DefaultBitrate
	}
	s.log = log
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("Authorized")
	return s, nil
}

// Username returns the logged-in account name.
func (s *Session) Username() string { return s.username }

// Open resolves id to an audio file and opens its decrypted stream.
func (s *Session) Open(ctx context.Context, id spotifyid.TrackID) (*player.Stream, error) {
	track, err := withContext(ctx, func() (*Spotify.Track, error) {
		return s.meta.GetTrack(id.Hex())
	})
	if err != nil {
		return nil, fmt.Errorf("fetch metadata for %s: %w", id, err)
	}
	// librespot returns an empty message rather than nil for unknown ids.
	if len(track.GetGid()) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, id)
	}

	playable, file := selectFile(track, s.bitrate)
	if file == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoAudioFile, id)
	}
	if playable != track {
		s.log.WithField("track", id.String()).Debug("Using alternative track")
	}

	audio, err := withContext(ctx, func() (io.ReadSeeker, error) {
		return s.audio.LoadTrack(file, playable.GetGid())
	})
	if err != nil {
		return nil, fmt.Errorf("load audio for %s: %w", id, err)
	}

	return &player.Stream{
		Info:  trackInfo(track),
		Codec: codecFor(file.GetFormat()),
		Audio: audio,
	}, nil
}

func trackInfo(t *Spotify.Track) player.TrackInfo {
	artists := make([]string, 0, len(t.GetArtist()))
	for _, a := range t.GetArtist() {
		artists = append(artists, a.GetName())
	}
	return player.TrackInfo{
		Title:    t.GetName(),
		Artist:   strings.Join(artists, ", "),
		Album:    t.GetAlbum().GetName(),
		Duration: time.Duration(t.GetDuration()) * time.Millisecond,
	}
}

// withContext runs fn on its own goroutine so ctx bounds the wait. librespot
// calls are not cancellable; an abandoned call finishes in the background.
func withContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
