package gaze

import "math"

// OutlierGuard suppresses single-frame detection glitches. A sample
// that teleports farther than the threshold from the previous accepted
// sample is dropped, but still becomes the new reference point so a
// second consistent frame at the new position is accepted normally
// rather than being rejected forever against stale history.
type OutlierGuard struct {
	threshold float64

	prev    IrisSample
	hasPrev bool
}

// NewOutlierGuard creates a guard with the given jump threshold in
// normalized relative-iris units.
func NewOutlierGuard(threshold float64) *OutlierGuard {
	return &OutlierGuard{threshold: threshold}
}

// Accept reports whether the sample should be forwarded downstream.
// The sample always replaces the guard's reference point.
func (g *OutlierGuard) Accept(s IrisSample) bool {
	if !g.hasPrev {
		g.prev = s
		g.hasPrev = true
		return true
	}

	dist := math.Hypot(s.X-g.prev.X, s.Y-g.prev.Y)
	g.prev = s

	return dist <= g.threshold
}

// Reset forgets the reference point. Must be called on session
// boundaries so stale state does not leak into a new session.
func (g *OutlierGuard) Reset() {
	g.hasPrev = false
}

// SetThreshold updates the jump threshold at runtime.
func (g *OutlierGuard) SetThreshold(t float64) {
	if t > 0 {
		g.threshold = t
	}
}
