package player

import (
	"context"
	"io"
	"time"

	"github.com/llehouerou/spotiqueue-worker/internal/spotifyid"
)

// Codec identifies how a Stream's audio is encoded.
type Codec int

const (
	// CodecVorbis is Ogg Vorbis, optionally behind the Spotify file header.
	CodecVorbis Codec = iota
	CodecMP3
)

func (c Codec) String() string {
	switch c {
	case CodecVorbis:
		return "vorbis"
	case CodecMP3:
		return "mp3"
	default:
		return "unknown"
	}
}

// Stream is an opened track: its metadata and the raw encoded audio.
type Stream struct {
	Info  TrackInfo
	Codec Codec
	Audio io.ReadSeeker
}

// Source opens the audio stream of a track.
type Source interface {
	Open(ctx context.Context, id spotifyid.TrackID) (*Stream, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, id spotifyid.TrackID) (*Stream, error)

// Open calls f(ctx, id).
func (f SourceFunc) Open(ctx context.Context, id spotifyid.TrackID) (*Stream, error) {
	return f(ctx, id)
}

// TrackInfo describes the loaded track.
type TrackInfo struct {
	ID       spotifyid.TrackID
	Title    string
	Artist   string
	Album    string
	Duration time.Duration

	SampleRate int
	Channels   int
}
