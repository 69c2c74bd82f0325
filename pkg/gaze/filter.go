package gaze

import "math"

// dtEpsilon floors the inter-sample interval so a duplicate timestamp
// cannot blow up the derivative estimate.
const dtEpsilon = 1e-6

// AdaptiveFilter is a one-pole low-pass filter whose cutoff frequency
// rises with the estimated signal speed: heavy smoothing while the
// gaze is still (jitter removal), fast tracking during saccades (lag
// avoidance). It operates on mapped screen-space gaze, independent of
// calibration.
type AdaptiveFilter struct {
	minCutoff float64
	beta      float64
	dCutoff   float64

	// State: last output, filtered velocity, last timestamp
	x, y   float64
	dx, dy float64
	t      float64
	primed bool
}

// NewAdaptiveFilter creates a filter from the config's parameters.
func NewAdaptiveFilter(cfg Config) *AdaptiveFilter {
	return &AdaptiveFilter{
		minCutoff: cfg.MinCutoff,
		beta:      cfg.Beta,
		dCutoff:   cfg.DCutoff,
	}
}

// Apply filters one raw sample at time t (seconds). The first sample
// passes through unchanged with zero velocity.
func (f *AdaptiveFilter) Apply(raw Point, t float64) Point {
	if !f.primed {
		f.x, f.y = raw.X, raw.Y
		f.dx, f.dy = 0, 0
		f.t = t
		f.primed = true
		return raw
	}

	dt := t - f.t
	if dt < dtEpsilon {
		dt = dtEpsilon
	}

	// Filtered derivative at the fixed derivative cutoff
	ad := smoothingFactor(f.dCutoff, dt)
	f.dx = ad*((raw.X-f.x)/dt) + (1-ad)*f.dx
	f.dy = ad*((raw.Y-f.y)/dt) + (1-ad)*f.dy

	// Cutoff rises with speed
	speed := math.Hypot(f.dx, f.dy)
	fc := f.minCutoff + f.beta*speed

	a := smoothingFactor(fc, dt)
	f.x = a*raw.X + (1-a)*f.x
	f.y = a*raw.Y + (1-a)*f.y
	f.t = t

	return Point{X: f.x, Y: f.y}
}

// Reset clears the filter state. Must be called whenever a tracking
// session restarts, otherwise a stale velocity estimate corrupts the
// first seconds of the new session.
func (f *AdaptiveFilter) Reset() {
	f.primed = false
	f.x, f.y, f.dx, f.dy, f.t = 0, 0, 0, 0, 0
}

// SetParams updates the filter tuning at runtime. Zero values leave
// the corresponding parameter unchanged.
func (f *AdaptiveFilter) SetParams(minCutoff, beta, dCutoff float64) {
	if minCutoff > 0 {
		f.minCutoff = minCutoff
	}
	if beta > 0 {
		f.beta = beta
	}
	if dCutoff > 0 {
		f.dCutoff = dCutoff
	}
}

// Velocity returns the current filtered velocity estimate (px/s).
func (f *AdaptiveFilter) Velocity() (float64, float64) {
	return f.dx, f.dy
}

// smoothingFactor is the one-pole alpha for a given cutoff and dt.
func smoothingFactor(cutoff, dt float64) float64 {
	return 1 / (1 + 1/(2*math.Pi*cutoff*dt))
}
