package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Stop silences the output and closes the decoder. Done is closed once it
// returns. Stopping a stopped player does nothing.
func (p *Player) Stop() {
	if p.state == Stopped {
		return
	}

	speaker.Clear()
	if p.streamer != nil {
		p.streamer.Close()
	}
	p.streamer, p.ctrl, p.volume, p.trackInfo = nil, nil, nil, nil
	p.state = Stopped

	// No-op if the track already ran to the end.
	p.finish()
}

// Position returns how far into the loaded track playback is.
func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.streamer.Position())
}
