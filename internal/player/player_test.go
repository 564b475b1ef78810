package player

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/spotiqueue-worker/internal/spotifyid"
)

func TestNew_AppliesDefaults(t *testing.T) {
	p := New(nil, Config{Volume: 0.5})

	assert.Equal(t, DefaultSampleRate, p.cfg.SampleRate)
	assert.Equal(t, DefaultBuffer, p.cfg.Buffer)
	assert.InDelta(t, -1.0, p.gain, 1e-9)
	assert.Equal(t, Stopped, p.State())
	assert.Nil(t, p.TrackInfo())
	assert.Zero(t, p.Duration())
	assert.Zero(t, p.Position())

	select {
	case <-p.Done():
	default:
		t.Error("Done() should be closed while stopped")
	}
}

func TestPlayer_StopWhenStoppedIsNoop(t *testing.T) {
	p := New(nil, DefaultConfig())
	p.Stop()
	p.Stop()
	assert.Equal(t, Stopped, p.State())
}

func TestPlayer_LoadSourceError(t *testing.T) {
	errUnavailable := errors.New("track unavailable")
	var opened []spotifyid.TrackID
	src := SourceFunc(func(_ context.Context, id spotifyid.TrackID) (*Stream, error) {
		opened = append(opened, id)
		return nil, errUnavailable
	})
	p := New(src, DefaultConfig())

	id, err := spotifyid.FromBase62("7lmeHLHBe4nmXzuXc0HDjk")
	require.NoError(t, err)

	err = p.Load(context.Background(), id, true, 0)

	require.ErrorIs(t, err, errUnavailable)
	assert.Equal(t, []spotifyid.TrackID{id}, opened)
	assert.Equal(t, Stopped, p.State())
}

func TestPlayer_LoadHonorsContextDeadline(t *testing.T) {
	src := SourceFunc(func(ctx context.Context, _ spotifyid.TrackID) (*Stream, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	p := New(src, DefaultConfig())
	id, err := spotifyid.FromBase62("7lmeHLHBe4nmXzuXc0HDjk")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = p.Load(ctx, id, true, 0)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Stopped, p.State())
}

func TestPlayer_LoadDecodeError(t *testing.T) {
	src := SourceFunc(func(_ context.Context, _ spotifyid.TrackID) (*Stream, error) {
		return &Stream{Audio: bytes.NewReader(spotifyAudio("not ogg at all"))}, nil
	})
	p := New(src, DefaultConfig())

	id, err := spotifyid.FromBase62("7lmeHLHBe4nmXzuXc0HDjk")
	require.NoError(t, err)

	err = p.Load(context.Background(), id, true, time.Second)

	require.ErrorIs(t, err, errNotOgg)
	assert.Equal(t, Stopped, p.State())
}

func TestLevelToGain(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1, 0},
		{0.5, -1},
		{0.25, -2},
		{0, silenceGain},
		{-1, silenceGain},
		{2, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, levelToGain(tt.level), 1e-9, "level %v", tt.level)
	}
}

func TestNew_ClampsVolume(t *testing.T) {
	loud := New(nil, Config{Volume: 3})
	assert.InDelta(t, 1.0, loud.cfg.Volume, 1e-9)
	assert.Zero(t, loud.gain)

	quiet := New(nil, Config{Volume: -3})
	assert.Zero(t, quiet.cfg.Volume)
	assert.InDelta(t, float64(silenceGain), quiet.gain, 1e-9)
}
