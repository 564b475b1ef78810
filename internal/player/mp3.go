package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// bytesPerFrame is one stereo 16-bit sample frame as produced by go-mp3.
const bytesPerFrame = 4

var errMP3SampleRate = errors.New("mp3: invalid sample rate")

// mp3Streamer adapts a go-mp3 decoder to beep.StreamSeekCloser.
type mp3Streamer struct {
	dec    *mp3.Decoder
	closer io.Closer
	buf    []byte
	err    error
}

// decodeMP3 decodes an MP3 stream. go-mp3 always outputs 16-bit stereo.
func decodeMP3(r io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if dec.SampleRate() <= 0 {
		return nil, beep.Format{}, errMP3SampleRate
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(dec.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Streamer{dec: dec, closer: r}, format, nil
}

func (s *mp3Streamer) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}

	want := len(samples) * bytesPerFrame
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	buf := s.buf[:want]

	n, err := io.ReadFull(s.dec, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}

	frames := n / bytesPerFrame
	for i := range frames {
		b := buf[i*bytesPerFrame:]
		samples[i][0] = float64(int16(binary.LittleEndian.Uint16(b))) / 32768     //nolint:gosec // audio samples
		samples[i][1] = float64(int16(binary.LittleEndian.Uint16(b[2:]))) / 32768 //nolint:gosec // audio samples
	}
	return frames, frames > 0
}

func (s *mp3Streamer) Err() error { return s.err }

func (s *mp3Streamer) Len() int {
	return int(max(s.dec.SampleCount(), 0))
}

func (s *mp3Streamer) Position() int {
	return int(s.dec.SamplePosition())
}

func (s *mp3Streamer) Seek(p int) error {
	p = min(max(p, 0), s.Len())
	if err := s.dec.SeekToSample(int64(p)); err != nil {
		return err
	}
	s.err = nil
	return nil
}

func (s *mp3Streamer) Close() error {
	return s.closer.Close()
}
