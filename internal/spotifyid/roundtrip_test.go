package spotifyid

import (
	"bytes"
	"math/rand/v2"
	"testing"
)

// TestParseTrackURI_RandomRoundTrip checks encode then parse over random
// 128-bit values, including the all-zero and all-ones edges.
func TestParseTrackURI_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	raws := [][]byte{make([]byte, 16), bytes.Repeat([]byte{0xff}, 16)}
	for range 20000 {
		raw := make([]byte, 16)
		for i := range raw {
			raw[i] = byte(rng.Uint32())
		}
		raws = append(raws, raw)
	}

	for _, raw := range raws {
		want := fromBytes(raw)
		s := want.Base62()
		if len(s) != Base62Len {
			t.Fatalf("Base62() of %x = %q, want %d chars", raw, s, Base62Len)
		}

		got, ok, err := ParseTrackURI("spotify:track:" + s)
		if err != nil || !ok {
			t.Fatalf("ParseTrackURI(%q) = ok %v, err %v", s, ok, err)
		}
		if got != want {
			t.Fatalf("round trip of %x: got %s, want %s", raw, got.Hex(), want.Hex())
		}
		if !bytes.Equal(got.Bytes(), raw) {
			t.Fatalf("Bytes() = %x, want %x", got.Bytes(), raw)
		}
	}
}

func FuzzBase62RoundTrip(f *testing.F) {
	f.Add(make([]byte, 16))
	f.Add(bytes.Repeat([]byte{0xff}, 16))
	f.Add([]byte{0xf1, 0x51, 0x26, 0xcf, 0xdd, 0x4f, 0x41, 0x7f, 0x87, 0x1e, 0xff, 0x0d, 0x23, 0x29, 0xf9, 0x32})

	f.Fuzz(func(t *testing.T, raw []byte) {
		if len(raw) != 16 {
			t.Skip()
		}
		want := fromBytes(raw)
		got, err := FromBase62(want.Base62())
		if err != nil {
			t.Fatalf("FromBase62(%q) error = %v", want.Base62(), err)
		}
		if got != want {
			t.Fatalf("round trip of %x: got %s", raw, got.Hex())
		}
	})
}
