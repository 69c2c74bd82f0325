package gaze

import (
	"testing"
	"time"
)

// shortConfig shrinks the calibration path and timing so state walks
// stay readable: 3 waypoints, 1s dwell with 0.4s settle, 0.5s transit.
func shortConfig() Config {
	cfg := DefaultConfig()
	cfg.Path = []Point{{0.5, 0.5}, {0.1, 0.1}, {0.9, 0.9}}
	cfg.DwellDuration = time.Second
	cfg.SettleDuration = 400 * time.Millisecond
	cfg.TransitDuration = 500 * time.Millisecond
	return cfg
}

func TestCalibrationSession_SettlePrefixIsSilent(t *testing.T) {
	s := NewCalibrationSession(shortConfig())
	base := time.Now()

	s.Start(base)
	if s.Phase() != PhaseDwell {
		t.Fatalf("phase after start: got %v, want dwell", s.Phase())
	}

	// Inside the settle window: the eye is still landing
	s.Advance(base.Add(200 * time.Millisecond))
	if s.Recording() {
		t.Error("recording must be off during the settle prefix")
	}
	s.Record(IrisSample{0.1, 0.1})
	if len(s.Pairs()) != 0 {
		t.Error("samples during settle must be discarded")
	}

	// Past settle, still dwelling: samples pair with the waypoint
	s.Advance(base.Add(600 * time.Millisecond))
	if !s.Recording() {
		t.Error("recording must be on after the settle prefix")
	}
	s.Record(IrisSample{0.1, 0.1})
	if len(s.Pairs()) != 1 {
		t.Fatalf("pairs: got %d, want 1", len(s.Pairs()))
	}

	// The pair's target is the waypoint in pixels
	pair := s.Pairs()[0]
	if pair.Target.X != 640 || pair.Target.Y != 360 {
		t.Errorf("pair target: got %v, want (640,360)", pair.Target)
	}
}

func TestCalibrationSession_TransitDoesNotSample(t *testing.T) {
	s := NewCalibrationSession(shortConfig())
	base := time.Now()
	s.Start(base)

	// Finish the first dwell
	s.Advance(base.Add(1100 * time.Millisecond))
	if s.Phase() != PhaseTransit {
		t.Fatalf("phase after dwell: got %v, want transit", s.Phase())
	}
	if s.Recording() {
		t.Error("recording must be off mid-saccade")
	}

	// Mid-transit the displayed target is strictly between waypoints
	s.Advance(base.Add(1350 * time.Millisecond))
	target := s.Target()
	if target.X >= 640 || target.X <= 128 {
		t.Errorf("mid-transit target X: got %v, want between 128 and 640", target.X)
	}

	s.Record(IrisSample{0, 0})
	if len(s.Pairs()) != 0 {
		t.Error("samples during transit must be discarded")
	}
}

func TestCalibrationSession_CompletesIntoFitting(t *testing.T) {
	s := NewCalibrationSession(shortConfig())
	base := time.Now()
	s.Start(base)

	// Walk the whole sequence in 50ms ticks, sampling whenever the
	// session says it is recording.
	total := 3*time.Second + 2*500*time.Millisecond
	for d := time.Duration(0); d <= total+time.Second; d += 50 * time.Millisecond {
		s.Advance(base.Add(d))
		if s.Recording() {
			s.Record(IrisSample{0, 0})
		}
		if s.Phase() == PhaseFitting {
			break
		}
	}

	if s.Phase() != PhaseFitting {
		t.Fatalf("phase after full walk: got %v, want fitting", s.Phase())
	}
	if s.Recording() {
		t.Error("recording must be off once fitting begins")
	}
	if len(s.Pairs()) == 0 {
		t.Error("expected accumulated pairs from the dwell windows")
	}
}

func TestCalibrationSession_ProgressMonotonic(t *testing.T) {
	s := NewCalibrationSession(shortConfig())
	base := time.Now()
	s.Start(base)

	last := -1.0
	for d := time.Duration(0); d <= 5*time.Second; d += 75 * time.Millisecond {
		s.Advance(base.Add(d))
		p := s.Progress()
		if p < last {
			t.Fatalf("progress went backwards: %v after %v", p, last)
		}
		if p < 0 || p > 1 {
			t.Fatalf("progress out of range: %v", p)
		}
		last = p
	}
	if last < 1 {
		t.Errorf("final progress: got %v, want 1", last)
	}
}

func TestCalibrationSession_CancelDiscardsPairs(t *testing.T) {
	s := NewCalibrationSession(shortConfig())
	base := time.Now()
	s.Start(base)

	s.Advance(base.Add(600 * time.Millisecond))
	s.Record(IrisSample{0.2, 0.2})
	if len(s.Pairs()) != 1 {
		t.Fatal("expected one recorded pair")
	}

	s.Cancel()
	if s.Phase() != PhaseIdle {
		t.Errorf("phase after cancel: got %v, want idle", s.Phase())
	}
	if len(s.Pairs()) != 0 {
		t.Error("cancel must discard the pair accumulator")
	}
	if s.Recording() {
		t.Error("cancel must stop recording")
	}
}

func TestCalibrationSession_RestartClearsOldPairs(t *testing.T) {
	s := NewCalibrationSession(shortConfig())
	base := time.Now()

	s.Start(base)
	s.Advance(base.Add(600 * time.Millisecond))
	s.Record(IrisSample{0.2, 0.2})

	s.Start(base.Add(2 * time.Second))
	if len(s.Pairs()) != 0 {
		t.Error("restart must begin with an empty accumulator")
	}
	if s.Phase() != PhaseDwell {
		t.Errorf("phase after restart: got %v, want dwell", s.Phase())
	}
}

func TestPhase_Strings(t *testing.T) {
	want := map[Phase]string{
		PhaseIdle:      "idle",
		PhaseDwell:     "dwell",
		PhaseTransit:   "transit",
		PhaseFitting:   "fitting",
		PhaseVerifying: "verifying",
		PhaseReady:     "ready",
	}
	for p, name := range want {
		if p.String() != name {
			t.Errorf("Phase(%d).String(): got %q, want %q", p, p.String(), name)
		}
	}
}

func TestSmoothstep_Easing(t *testing.T) {
	if smoothstep(0) != 0 || smoothstep(1) != 1 {
		t.Error("smoothstep endpoints must be exact")
	}
	if !floatEquals(smoothstep(0.5), 0.5, 1e-9) {
		t.Errorf("smoothstep midpoint: got %v, want 0.5", smoothstep(0.5))
	}
	// Eased start: the first tenth covers far less than a tenth of
	// the distance
	if smoothstep(0.1) > 0.05 {
		t.Errorf("smoothstep(0.1): got %v, want < 0.05", smoothstep(0.1))
	}
	if smoothstep(-1) != 0 || smoothstep(2) != 1 {
		t.Error("smoothstep must clamp outside [0,1]")
	}
}
