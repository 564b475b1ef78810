package spotifyid

import (
	"errors"
	"testing"
)

func TestFromBase62_KnownValues(t *testing.T) {
	tests := []struct {
		base62 string
		hex    string
	}{
		{"5sWHDYs0csV6RS48xBl0tH", "b39fe8081e1f4c54be38e8d6f9f12bb9"},
		{"7lmeHLHBe4nmXzuXc0HDjk", "f15126cfdd4f417f871eff0d2329f932"},
		{"4GNcXTGWmnZ3ySrqvol3o4", "9a1b1cfbc6f244569ae0356c77bbe9d8"},
		{"0000000000000000000000", "00000000000000000000000000000000"},
		{"7N42dgm5tFLK9N8MT7fHC7", "ffffffffffffffffffffffffffffffff"},
	}
	for _, tt := range tests {
		id, err := FromBase62(tt.base62)
		if err != nil {
			t.Fatalf("FromBase62(%q) error = %v", tt.base62, err)
		}
		if got := id.Hex(); got != tt.hex {
			t.Errorf("FromBase62(%q).Hex() = %q, want %q", tt.base62, got, tt.hex)
		}
		if got := id.Base62(); got != tt.base62 {
			t.Errorf("Base62() round trip = %q, want %q", got, tt.base62)
		}
		if !id.IsValid() {
			t.Errorf("FromBase62(%q).IsValid() = false", tt.base62)
		}
	}
}

func TestFromBase62_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "7lmeHLHBe4nmXzuXc0HDj"},
		{"too long", "7lmeHLHBe4nmXzuXc0HDjkk"},
		{"invalid char", "7lmeHLHBe4nmXzuXc0HD-k"},
		{"non ascii", "7lmeHLHBe4nmXzuXc0HDé"},
		{"overflow by one", "7N42dgm5tFLK9N8MT7fHC8"},
		{"overflow", "zzzzzzzzzzzzzzzzzzzzzz"},
		{"max digits", "ZZZZZZZZZZZZZZZZZZZZZZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := FromBase62(tt.input)
			if !errors.Is(err, ErrInvalidID) {
				t.Fatalf("FromBase62(%q) error = %v, want ErrInvalidID", tt.input, err)
			}
			if id.IsValid() {
				t.Error("rejected id should not be valid")
			}
		})
	}
}

func TestFromHex(t *testing.T) {
	id, err := FromHex("f15126cfdd4f417f871eff0d2329f932")
	if err != nil {
		t.Fatalf("FromHex() error = %v", err)
	}
	if got := id.Base62(); got != "7lmeHLHBe4nmXzuXc0HDjk" {
		t.Errorf("Base62() = %q, want 7lmeHLHBe4nmXzuXc0HDjk", got)
	}

	for _, bad := range []string{"", "f151", "g15126cfdd4f417f871eff0d2329f932"} {
		if _, err := FromHex(bad); !errors.Is(err, ErrInvalidID) {
			t.Errorf("FromHex(%q) error = %v, want ErrInvalidID", bad, err)
		}
	}
}

func TestTrackID_Bytes(t *testing.T) {
	id, err := FromBase62("5sWHDYs0csV6RS48xBl0tH")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{179, 159, 232, 8, 30, 31, 76, 84, 190, 56, 232, 214, 249, 241, 43, 185}
	got := id.Bytes()
	if string(got) != string(want) {
		t.Errorf("Bytes() = %v, want %v", got, want)
	}
}

func TestTrackID_String(t *testing.T) {
	var zero TrackID
	if zero.String() != "<invalid>" {
		t.Errorf("zero.String() = %q, want <invalid>", zero.String())
	}

	id, _ := FromBase62("7lmeHLHBe4nmXzuXc0HDjk")
	if id.String() != "spotify:track:7lmeHLHBe4nmXzuXc0HDjk" {
		t.Errorf("String() = %q", id.String())
	}
}
