package spotifyid

import (
	"fmt"
	"strings"
)

const kindTrack = "track"

// ParseTrackURI parses a URI of the form "<scheme>:track:<base62>".
//
// It returns ok=false with a nil error when the input is not shaped like a
// track URI at all. A track-shaped URI whose id does not decode returns an
// error wrapping ErrInvalidID.
func ParseTrackURI(uri string) (id TrackID, ok bool, err error) {
	parts := strings.Split(uri, ":")
	if len(parts) != 3 || parts[1] != kindTrack {
		return TrackID{}, false, nil
	}

	id, err = FromBase62(parts[2])
	if err != nil {
		return TrackID{}, false, fmt.Errorf("parse %q: %w", uri, err)
	}
	return id, true, nil
}
