package player

import "math"

// silenceGain is the exponent used for a zero level; 2^-10 is inaudible.
const silenceGain = -10

// levelToGain converts a linear 0..1 level to the base-2 exponent used by
// effects.Volume: 1 is unity gain (0), each halving is one step down.
func levelToGain(level float64) float64 {
	switch {
	case level <= 0:
		return silenceGain
	case level >= 1:
		return 0
	default:
		return math.Log2(level)
	}
}
