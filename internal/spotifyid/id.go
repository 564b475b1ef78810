// Package spotifyid parses Spotify URIs and encodes track identifiers.
package spotifyid

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

const (
	base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Base62Len is the length of a canonical base-62 Spotify ID.
	Base62Len = 22
	// HexLen is the length of a hex-encoded Spotify GID.
	HexLen = 32
)

// ErrInvalidID is returned when an identifier is not a valid Spotify ID.
var ErrInvalidID = errors.New("invalid spotify id")

// TrackID is the 128-bit identifier of a single playable track.
// The zero value is not a valid track.
type TrackID struct {
	hi, lo uint64
	valid  bool
}

// FromBase62 decodes a 22-character base-62 Spotify ID.
func FromBase62(s string) (TrackID, error) {
	if len(s) != Base62Len {
		return TrackID{}, fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidID, s, len(s), Base62Len)
	}

	var hi, lo uint64
	for i := range len(s) {
		d := strings.IndexByte(base62Alphabet, s[i])
		if d < 0 {
			return TrackID{}, fmt.Errorf("%w: %q contains %q", ErrInvalidID, s, s[i])
		}

		// (hi, lo) = (hi, lo) * 62 + d, rejecting 128-bit overflow
		carry, newLo := bits.Mul64(lo, 62)
		overflow, newHi := bits.Mul64(hi, 62)
		if overflow != 0 {
			return TrackID{}, fmt.Errorf("%w: %q overflows 128 bits", ErrInvalidID, s)
		}
		newHi, c := bits.Add64(newHi, carry, 0)
		if c != 0 {
			return TrackID{}, fmt.Errorf("%w: %q overflows 128 bits", ErrInvalidID, s)
		}
		newLo, c = bits.Add64(newLo, uint64(d), 0)
		newHi, c = bits.Add64(newHi, 0, c)
		if c != 0 {
			return TrackID{}, fmt.Errorf("%w: %q overflows 128 bits", ErrInvalidID, s)
		}
		hi, lo = newHi, newLo
	}

	return TrackID{hi: hi, lo: lo, valid: true}, nil
}

// FromHex decodes a 32-character hex GID.
func FromHex(s string) (TrackID, error) {
	if len(s) != HexLen {
		return TrackID{}, fmt.Errorf("%w: hex %q has length %d, want %d", ErrInvalidID, s, len(s), HexLen)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return TrackID{}, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return fromBytes(raw), nil
}

func fromBytes(raw []byte) TrackID {
	var id TrackID
	for _, b := range raw[:8] {
		id.hi = id.hi<<8 | uint64(b)
	}
	for _, b := range raw[8:16] {
		id.lo = id.lo<<8 | uint64(b)
	}
	id.valid = true
	return id
}

// IsValid reports whether the ID was produced by a successful decode.
func (id TrackID) IsValid() bool {
	return id.valid
}

// Base62 returns the canonical 22-character base-62 form.
func (id TrackID) Base62() string {
	var out [Base62Len]byte
	hi, lo := id.hi, id.lo
	for i := Base62Len - 1; i >= 0; i-- {
		// Long division of the 128-bit value by 62.
		qHi, rHi := hi/62, hi%62
		qLo, r := bits.Div64(rHi, lo, 62)
		hi, lo = qHi, qLo
		out[i] = base62Alphabet[r]
	}
	return string(out[:])
}

// Bytes returns the 16-byte big-endian GID.
func (id TrackID) Bytes() []byte {
	raw := make([]byte, 16)
	for i := range 8 {
		raw[7-i] = byte(id.hi >> (8 * i))
		raw[15-i] = byte(id.lo >> (8 * i))
	}
	return raw
}

// Hex returns the 32-character lowercase hex GID.
func (id TrackID) Hex() string {
	return hex.EncodeToString(id.Bytes())
}

// URI returns the spotify:track:<base62> form.
func (id TrackID) URI() string {
	return "spotify:track:" + id.Base62()
}

// String implements fmt.Stringer.
func (id TrackID) String() string {
	if !id.valid {
		return "<invalid>"
	}
	return id.URI()
}
