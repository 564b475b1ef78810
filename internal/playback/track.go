package playback

import (
	"time"

	"github.com/llehouerou/spotiqueue-worker/internal/player"
	"github.com/llehouerou/spotiqueue-worker/internal/spotifyid"
)

// Track is the loaded track.
// This is a copy of the data, not a reference to the player's TrackInfo.
type Track struct {
	ID       spotifyid.TrackID
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

func trackFromInfo(id spotifyid.TrackID, info *player.TrackInfo) *Track {
	t := &Track{ID: id}
	if info != nil {
		t.Title = info.Title
		t.Artist = info.Artist
		t.Album = info.Album
		t.Duration = info.Duration
	}
	return t
}
