package player

// State is the engine state. Load always goes through Stopped first; a
// track loaded with startPlaying=false sits in Paused.
//
//	Stopped ──load──▶ Playing | Paused
//	Playing | Paused ──stop / end of track──▶ Stopped

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive reports whether a track is loaded.
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
