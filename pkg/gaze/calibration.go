package gaze

import "time"

// Phase is the calibration session state.
type Phase int

const (
	// PhaseIdle means no calibration is running.
	PhaseIdle Phase = iota
	// PhaseDwell means the target is stationary on a waypoint.
	PhaseDwell
	// PhaseTransit means the target is easing to the next waypoint.
	PhaseTransit
	// PhaseFitting means all waypoints are done and the fit is due.
	PhaseFitting
	// PhaseVerifying means the post-fit verification pass is running.
	PhaseVerifying
	// PhaseReady means calibration completed and tracking may begin.
	PhaseReady
)

// String returns the phase name for status reporting.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDwell:
		return "dwell"
	case PhaseTransit:
		return "transit"
	case PhaseFitting:
		return "fitting"
	case PhaseVerifying:
		return "verifying"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// CalibrationSession drives the guided multi-waypoint sampling
// sequence and owns the pair accumulator. Timing is advanced by a
// periodic Advance tick; the landmark callback reads Recording once
// per ingest so a sample can never straddle a phase boundary.
type CalibrationSession struct {
	path    []Point
	dwell   time.Duration
	settle  time.Duration
	transit time.Duration
	width   float64
	height  float64

	phase      Phase
	index      int
	phaseStart time.Time
	pairs      []CalibrationPair

	// Snapshot updated by Advance, read by the ingest path
	target    Point
	recording bool
	progress  float64
}

// NewCalibrationSession creates an idle session from the config.
func NewCalibrationSession(cfg Config) *CalibrationSession {
	return &CalibrationSession{
		path:    cfg.path(),
		dwell:   cfg.DwellDuration,
		settle:  cfg.SettleDuration,
		transit: cfg.TransitDuration,
		width:   cfg.FrameWidth,
		height:  cfg.FrameHeight,
		phase:   PhaseIdle,
	}
}

// Start begins the sequence at the first waypoint's dwell. Any
// previously accumulated pairs are discarded.
func (s *CalibrationSession) Start(now time.Time) {
	s.phase = PhaseDwell
	s.index = 0
	s.phaseStart = now
	s.pairs = nil
	s.target = s.waypointPixels(0)
	s.recording = false
	s.progress = 0
}

// Cancel discards the pair accumulator and returns to idle. The
// caller's previous model and bias are left untouched; recalibration
// only replaces state on successful completion.
func (s *CalibrationSession) Cancel() {
	s.phase = PhaseIdle
	s.pairs = nil
	s.recording = false
	s.progress = 0
}

// Advance drives the dwell/transit timing. Call it from the display
// refresh tick. When the last waypoint's dwell completes the session
// parks in PhaseFitting for the owner to run the fit.
func (s *CalibrationSession) Advance(now time.Time) {
	switch s.phase {
	case PhaseDwell:
		elapsed := now.Sub(s.phaseStart)
		s.target = s.waypointPixels(s.index)
		// The settle prefix is silent: the eye is still landing
		s.recording = elapsed >= s.settle
		if elapsed >= s.dwell {
			if s.index == len(s.path)-1 {
				s.phase = PhaseFitting
				s.recording = false
			} else {
				s.phase = PhaseTransit
				s.phaseStart = now
				s.recording = false
			}
		}

	case PhaseTransit:
		elapsed := now.Sub(s.phaseStart)
		t := float64(elapsed) / float64(s.transit)
		if t >= 1 {
			s.index++
			s.phase = PhaseDwell
			s.phaseStart = now
			s.target = s.waypointPixels(s.index)
		} else {
			from := s.waypointPixels(s.index)
			to := s.waypointPixels(s.index + 1)
			e := smoothstep(t)
			s.target = Point{
				X: from.X + e*(to.X-from.X),
				Y: from.Y + e*(to.Y-from.Y),
			}
		}
		s.recording = false
	}

	s.updateProgress(now)
}

// Record pairs an accepted iris sample with the current waypoint
// target. Samples arriving outside a settled dwell are ignored.
func (s *CalibrationSession) Record(sample IrisSample) {
	if !s.recording {
		return
	}
	s.pairs = append(s.pairs, CalibrationPair{Iris: sample, Target: s.target})
}

// Recording reports whether the session is in a settled dwell. The
// ingest path must call this exactly once per sample.
func (s *CalibrationSession) Recording() bool {
	return s.recording
}

// Phase returns the current session phase.
func (s *CalibrationSession) Phase() Phase {
	return s.phase
}

// Target returns the currently displayed target in screen pixels.
func (s *CalibrationSession) Target() Point {
	return s.target
}

// Progress returns a monotonic completion fraction in [0, 1] for UI
// feedback. It does not affect correctness.
func (s *CalibrationSession) Progress() float64 {
	return s.progress
}

// Pairs returns the accumulated calibration pairs.
func (s *CalibrationSession) Pairs() []CalibrationPair {
	return s.pairs
}

// BeginVerifying moves from fitting to the verification pass after a
// successful fit. The pair accumulator has served its purpose.
func (s *CalibrationSession) BeginVerifying() {
	s.phase = PhaseVerifying
	s.pairs = nil
	s.recording = false
}

// Complete marks the session ready after verification.
func (s *CalibrationSession) Complete() {
	s.phase = PhaseReady
	s.progress = 1
}

// waypointPixels converts a fractional waypoint to screen pixels.
func (s *CalibrationSession) waypointPixels(i int) Point {
	return Point{X: s.path[i].X * s.width, Y: s.path[i].Y * s.height}
}

// updateProgress recomputes the completion fraction, clamped so it
// never moves backwards across phase boundaries.
func (s *CalibrationSession) updateProgress(now time.Time) {
	total := time.Duration(len(s.path))*s.dwell +
		time.Duration(len(s.path)-1)*s.transit
	if total <= 0 {
		return
	}

	done := time.Duration(s.index) * (s.dwell + s.transit)
	switch s.phase {
	case PhaseDwell:
		elapsed := now.Sub(s.phaseStart)
		if elapsed > s.dwell {
			elapsed = s.dwell
		}
		done += elapsed
	case PhaseTransit:
		elapsed := now.Sub(s.phaseStart)
		if elapsed > s.transit {
			elapsed = s.transit
		}
		done += s.dwell + elapsed
	case PhaseFitting, PhaseVerifying, PhaseReady:
		done = total
	case PhaseIdle:
		return
	}

	p := float64(done) / float64(total)
	if p > 1 {
		p = 1
	}
	if p > s.progress {
		s.progress = p
	}
}

// smoothstep is the transit easing curve: zero derivative at both
// ends so the target never snaps into or out of motion.
func smoothstep(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
