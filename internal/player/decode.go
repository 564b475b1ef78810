package player

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/vorbis"
)

// spotifyHeaderLen is the size of the Spotify-specific header prepended to
// Ogg Vorbis audio files.
const spotifyHeaderLen = 0xa7

var (
	errNotOgg           = errors.New("audio stream is not Ogg Vorbis")
	errUnsupportedCodec = errors.New("unsupported codec")
)

// decodeStream decodes s into a beep streamer.
func decodeStream(s *Stream) (beep.StreamSeekCloser, beep.Format, error) {
	switch s.Codec {
	case CodecVorbis:
		r, err := skipSpotifyHeader(s.Audio)
		if err != nil {
			return nil, beep.Format{}, err
		}
		return vorbis.Decode(r)
	case CodecMP3:
		r, err := newOffsetReader(s.Audio, 0)
		if err != nil {
			return nil, beep.Format{}, err
		}
		return decodeMP3(r)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %v", errUnsupportedCodec, s.Codec)
	}
}

// decodeWithContext runs decodeStream until ctx is done. Decoding reads the
// first pages of the stream, which may wait on the network. A decoder that
// finishes after ctx expired is closed.
func decodeWithContext(ctx context.Context, s *Stream) (beep.StreamSeekCloser, beep.Format, error) {
	type result struct {
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	}
	ch := make(chan result, 1)
	go func() {
		st, f, err := decodeStream(s)
		ch <- result{st, f, err}
	}()

	select {
	case r := <-ch:
		return r.streamer, r.format, r.err
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.err == nil {
				r.streamer.Close()
			}
		}()
		return nil, beep.Format{}, ctx.Err()
	}
}

// skipSpotifyHeader positions r on the "OggS" capture pattern, skipping the
// Spotify header if present. The returned reader presents the Ogg stream as
// if it started at offset 0, so decoder seeks stay within the audio.
func skipSpotifyHeader(r io.ReadSeeker) (*offsetReader, error) {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, err
	}
	if string(magic) == "OggS" {
		return newOffsetReader(r, 0)
	}

	if _, err := r.Seek(spotifyHeaderLen, io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, err
	}
	if string(magic) != "OggS" {
		return nil, errNotOgg
	}
	return newOffsetReader(r, spotifyHeaderLen)
}

// offsetReader exposes r starting at base.
type offsetReader struct {
	r    io.ReadSeeker
	base int64
}

func newOffsetReader(r io.ReadSeeker, base int64) (*offsetReader, error) {
	if _, err := r.Seek(base, io.SeekStart); err != nil {
		return nil, err
	}
	return &offsetReader{r: r, base: base}, nil
}

func (o *offsetReader) Read(p []byte) (int, error) {
	return o.r.Read(p)
}

func (o *offsetReader) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekStart {
		offset += o.base
	}
	pos, err := o.r.Seek(offset, whence)
	if err != nil {
		return 0, err
	}
	if pos < o.base {
		pos, err = o.r.Seek(o.base, io.SeekStart)
		if err != nil {
			return 0, err
		}
	}
	return pos - o.base, nil
}

// Close closes the underlying reader if it is closable.
func (o *offsetReader) Close() error {
	if c, ok := o.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
