package spotifyid

import (
	"errors"
	"testing"
)

func TestParseTrackURI_Track(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"spotify:track:7lmeHLHBe4nmXzuXc0HDjk", "7lmeHLHBe4nmXzuXc0HDjk"},
		{"x:track:5sWHDYs0csV6RS48xBl0tH", "5sWHDYs0csV6RS48xBl0tH"},
		{":track:4GNcXTGWmnZ3ySrqvol3o4", "4GNcXTGWmnZ3ySrqvol3o4"},
	}
	for _, tt := range tests {
		id, ok, err := ParseTrackURI(tt.uri)
		if err != nil || !ok {
			t.Fatalf("ParseTrackURI(%q) = ok %v, err %v", tt.uri, ok, err)
		}
		if got := id.Base62(); got != tt.want {
			t.Errorf("ParseTrackURI(%q).Base62() = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestParseTrackURI_NotATrack(t *testing.T) {
	inputs := []string{
		"",
		"spotify",
		"spotify:track",
		"spotify:album:abc123",
		"spotify:album:7lmeHLHBe4nmXzuXc0HDjk",
		"spotify:Track:7lmeHLHBe4nmXzuXc0HDjk",
		"spotify:track:7lmeHLHBe4nmXzuXc0HDjk:extra",
		"spotify:user:someone:playlist:abc",
		"https://open.spotify.com/track/7lmeHLHBe4nmXzuXc0HDjk",
	}
	for _, uri := range inputs {
		id, ok, err := ParseTrackURI(uri)
		if err != nil {
			t.Errorf("ParseTrackURI(%q) error = %v, want nil", uri, err)
		}
		if ok {
			t.Errorf("ParseTrackURI(%q) ok = true, want false", uri)
		}
		if id.IsValid() {
			t.Errorf("ParseTrackURI(%q) returned a valid id", uri)
		}
	}
}

func TestParseTrackURI_CorruptID(t *testing.T) {
	inputs := []string{
		"spotify:track:",
		"spotify:track:abc123",
		"spotify:track:7lmeHLHBe4nmXzuXc0HD!k",
		"spotify:track:zzzzzzzzzzzzzzzzzzzzzz",
	}
	for _, uri := range inputs {
		_, ok, err := ParseTrackURI(uri)
		if ok {
			t.Errorf("ParseTrackURI(%q) ok = true, want false", uri)
		}
		if !errors.Is(err, ErrInvalidID) {
			t.Errorf("ParseTrackURI(%q) error = %v, want ErrInvalidID", uri, err)
		}
	}
}
