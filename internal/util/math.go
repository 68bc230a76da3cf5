package util

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp100 limits a derived score to the canonical [0,100] range.
func Clamp100(v float64) float64 {
	return Clamp(v, 0, 100)
}
