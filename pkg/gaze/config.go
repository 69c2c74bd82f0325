package gaze

import "time"

// Config holds all tunable parameters for the gaze pipeline.
type Config struct {
	// Frame geometry (screen/video pixels)
	FrameWidth  float64
	FrameHeight float64

	// Normalization
	BlinkRatio    float64 // Discard frame if eye height/width < this
	MinSocketSpan float64 // Floor for socket width/height (division guard)

	// Outlier guard
	JumpThreshold float64 // Reject samples jumping farther than this (normalized units)

	// Calibration timing
	DwellDuration   time.Duration // Stationary target time per waypoint
	SettleDuration  time.Duration // Silent prefix of each dwell (no sampling)
	TransitDuration time.Duration // Eased target movement between waypoints

	// Calibration geometry
	Path         []Point // Fractional waypoints; nil means DefaultPath()
	VerifyMargin float64 // Fractional inset of corner verification targets

	// Verification
	RecentSamples int // Samples averaged per verification confirm

	// Adaptive filter
	MinCutoff float64 // Minimum cutoff frequency (Hz)
	Beta      float64 // Speed coefficient (cutoff gain per px/s)
	DCutoff   float64 // Derivative filter cutoff (Hz)
}

// DefaultConfig returns the recommended configuration for a 1280x720
// frame with a ~10-15 Hz landmark provider.
func DefaultConfig() Config {
	return Config{
		FrameWidth:  1280,
		FrameHeight: 720,

		// Normalization - drop frames where the lid occludes the iris
		BlinkRatio:    0.15,
		MinSocketSpan: 1e-6,

		// Outlier guard - tuned for relative-iris units, not pixels
		JumpThreshold: 0.2,

		// Calibration - 1.4s dwell with a 400ms settle for the
		// saccade to land, 600ms eased transit between waypoints
		DwellDuration:   1400 * time.Millisecond,
		SettleDuration:  400 * time.Millisecond,
		TransitDuration: 600 * time.Millisecond,

		VerifyMargin:  0.1,
		RecentSamples: 8,

		// Filter - heavy smoothing at rest, fast tracking in motion
		MinCutoff: 0.5,
		Beta:      0.08,
		DCutoff:   1.0,
	}
}

// SmoothConfig returns a configuration that favors a steadier cursor
// over responsiveness. Useful for reading-heavy content.
func SmoothConfig() Config {
	cfg := DefaultConfig()
	cfg.MinCutoff = 0.3
	cfg.Beta = 0.05
	cfg.DwellDuration = 1800 * time.Millisecond
	return cfg
}

// ResponsiveConfig returns a configuration that favors low latency
// over steadiness. Useful for fast-moving content.
func ResponsiveConfig() Config {
	cfg := DefaultConfig()
	cfg.MinCutoff = 1.0
	cfg.Beta = 0.15
	cfg.DwellDuration = 1000 * time.Millisecond
	cfg.TransitDuration = 400 * time.Millisecond
	return cfg
}

// DefaultPath returns the standard calibration waypoint sequence in
// fractional screen coordinates: center, corners, edge midpoints,
// off-axis and interior points, and a final return to center. The
// exact set is a tuning parameter; what matters is covering the
// extremes the quadratic surface has to fit.
func DefaultPath() []Point {
	return []Point{
		{0.5, 0.5},
		{0.1, 0.1},
		{0.9, 0.1},
		{0.9, 0.9},
		{0.1, 0.9},
		{0.5, 0.1},
		{0.9, 0.5},
		{0.5, 0.9},
		{0.1, 0.5},
		{0.5, 0.5},
		{0.3, 0.3},
		{0.7, 0.3},
		{0.7, 0.7},
		{0.3, 0.7},
		{0.5, 0.5},
	}
}

// path returns the configured waypoint sequence, defaulting when unset.
func (c Config) path() []Point {
	if len(c.Path) > 0 {
		return c.Path
	}
	return DefaultPath()
}
