package session

import (
	"github.com/librespot-org/librespot-golang/Spotify"

	"github.com/llehouerou/spotiqueue-worker/internal/player"
)

var oggFormats = map[int]Spotify.AudioFile_Format{
	96:  Spotify.AudioFile_OGG_VORBIS_96,
	160: Spotify.AudioFile_OGG_VORBIS_160,
	320: Spotify.AudioFile_OGG_VORBIS_320,
}

// mp3Fallback is tried only when a track has no Ogg Vorbis file.
var mp3Fallback = []Spotify.AudioFile_Format{
	Spotify.AudioFile_MP3_320,
	Spotify.AudioFile_MP3_256,
	Spotify.AudioFile_MP3_160,
	Spotify.AudioFile_MP3_96,
}

// formatPreference lists Ogg Vorbis formats, preferred bitrate first, then
// the rest from highest to lowest, then the MP3 fallbacks.
func formatPreference(bitrate int) []Spotify.AudioFile_Format {
	prefs := make([]Spotify.AudioFile_Format, 0, len(oggFormats)+len(mp3Fallback))
	if f, ok := oggFormats[bitrate]; ok {
		prefs = append(prefs, f)
	}
	for _, b := range []int{320, 160, 96} {
		if b != bitrate {
			prefs = append(prefs, oggFormats[b])
		}
	}
	return append(prefs, mp3Fallback...)
}

// codecFor maps a Spotify file format to the decoder that handles it.
func codecFor(f Spotify.AudioFile_Format) player.Codec {
	switch f {
	case Spotify.AudioFile_MP3_96, Spotify.AudioFile_MP3_160,
		Spotify.AudioFile_MP3_256, Spotify.AudioFile_MP3_320:
		return player.CodecMP3
	default:
		return player.CodecVorbis
	}
}

// selectFile picks the best playable file of t, falling back to its
// alternatives when t itself has none (region-restricted tracks).
func selectFile(t *Spotify.Track, bitrate int) (*Spotify.Track, *Spotify.AudioFile) {
	prefs := formatPreference(bitrate)
	candidates := append([]*Spotify.Track{t}, t.GetAlternative()...)
	for _, c := range candidates {
		if f := pickFormat(c.GetFile(), prefs); f != nil {
			return c, f
		}
	}
	return nil, nil
}

func pickFormat(files []*Spotify.AudioFile, prefs []Spotify.AudioFile_Format) *Spotify.AudioFile {
	for _, want := range prefs {
		for _, f := range files {
			if f.GetFormat() == want {
				return f
			}
		}
	}
	return nil
}
