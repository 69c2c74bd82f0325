package gaze

import (
	"sync"
	"time"

	"github.com/irisline/gazekit/internal/log"
)

// DisplaySink receives non-blocking UI updates: the guided calibration
// dot and the live gaze cursor. Implementations must not block the
// pipeline.
type DisplaySink interface {
	UpdateTarget(target Point, phase string, progress float64)
	UpdateGaze(p Point)
}

// Tracker is one owned gaze session: it threads every landmark frame
// through normalize → outlier guard → (calibration sampling | map →
// filter → append) synchronously, and owns the calibration session,
// the fitted model, and the point log. There is no package-level
// state; independent trackers are independent sessions.
type Tracker struct {
	mu     sync.Mutex
	config Config

	normalizer *Normalizer
	guard      *OutlierGuard
	session    *CalibrationSession
	mapper     *Mapper
	verifier   *BiasEstimator
	filter     *AdaptiveFilter

	recording *PointLog
	tracking  bool

	// Ring of recently accepted samples for verification confirms
	recent []IrisSample

	display    DisplaySink
	lastFitErr error

	now func() time.Time
}

// New creates a tracker with the given configuration.
func New(cfg Config) *Tracker {
	if cfg.RecentSamples <= 0 {
		cfg.RecentSamples = DefaultConfig().RecentSamples
	}
	return &Tracker{
		config:     cfg,
		normalizer: NewNormalizer(cfg),
		guard:      NewOutlierGuard(cfg.JumpThreshold),
		session:    NewCalibrationSession(cfg),
		mapper:     NewMapper(),
		filter:     NewAdaptiveFilter(cfg),
		now:        time.Now,
	}
}

// SetDisplaySink attaches the display layer.
func (t *Tracker) SetDisplaySink(d DisplaySink) {
	t.mu.Lock()
	t.display = d
	t.mu.Unlock()
}

// IngestFrame runs one landmark frame through the full pipeline. All
// stages execute synchronously before it returns; ordering is exactly
// the delivery order. Unreliable frames (blink, outlier jump) are
// dropped silently, this is steady-state behavior and not a fault.
func (t *Tracker) IngestFrame(f LandmarkFrame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sample, ok := t.normalizer.Normalize(f)
	if !ok {
		return
	}
	if !t.guard.Accept(sample) {
		return
	}
	t.pushRecent(sample)

	// Single flag read: the sample belongs entirely to whichever
	// phase the session was in at this instant.
	if t.session.Recording() {
		t.session.Record(sample)
		return
	}

	if !t.tracking || t.recording == nil {
		return
	}
	raw, ok := t.mapper.Predict(sample)
	if !ok {
		// No model yet: the cursor is absent, not an error
		return
	}

	wall := t.now().Sub(t.recording.Started()).Seconds()
	smoothed := t.filter.Apply(raw, wall)
	t.recording.Append(GazePoint{
		Timestamp: f.Timestamp,
		WallTime:  wall,
		X:         smoothed.X,
		Y:         smoothed.Y,
	})

	if t.display != nil {
		t.display.UpdateGaze(smoothed)
	}
}

// BeginCalibration starts the guided waypoint sequence. The previous
// model and bias stay in effect until a new fit succeeds. Refused
// while a recording is active: the overlay needs the user's gaze.
func (t *Tracker) BeginCalibration() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tracking {
		return ErrSessionActive
	}
	switch t.session.Phase() {
	case PhaseIdle, PhaseReady:
		t.session.Start(t.now())
		t.lastFitErr = nil
		return nil
	default:
		return ErrSessionActive
	}
}

// CancelCalibration abandons the session, discarding accumulated
// pairs. The previous model and bias are left untouched.
func (t *Tracker) CancelCalibration() {
	t.mu.Lock()
	t.session.Cancel()
	t.verifier = nil
	t.mu.Unlock()
}

// Advance drives calibration timing. Call it from a display-refresh
// ticker. When the waypoint sequence completes it runs the fit,
// transitioning to verification on success and back to idle on
// failure (the failure is kept for Status so the caller can redo the
// session).
func (t *Tracker) Advance(now time.Time) {
	t.mu.Lock()

	t.session.Advance(now)

	if t.session.Phase() == PhaseFitting {
		model, err := Fit(t.session.Pairs())
		if err != nil {
			t.lastFitErr = err
			log.Warn("calibration fit failed",
				"err", err, "pairs", len(t.session.Pairs()))
			t.session.Cancel()
		} else {
			pairs := len(t.session.Pairs())
			t.mapper.SetModel(model)
			t.verifier = NewBiasEstimator(t.config)
			t.session.BeginVerifying()
			log.Info("calibration fit complete", "pairs", pairs)
		}
	}

	target := t.session.Target()
	if t.session.Phase() == PhaseVerifying && t.verifier != nil {
		if vt, ok := t.verifier.CurrentTarget(); ok {
			target = vt
		}
	}
	phase := t.session.Phase().String()
	progress := t.session.Progress()
	display := t.display

	t.mu.Unlock()

	if display != nil {
		display.UpdateTarget(target, phase, progress)
	}
}

// ConfirmVerification handles one click on the current verification
// dot: the mean of the recent accepted samples is mapped through the
// model without bias and the residual recorded. After the last target
// the mean residual becomes the new bias and the session is ready.
func (t *Tracker) ConfirmVerification() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session.Phase() != PhaseVerifying || t.verifier == nil {
		return ErrNotCalibrating
	}

	mean, has := t.meanRecent()
	var predicted Point
	ok := false
	if has {
		predicted, ok = t.mapper.PredictRaw(mean)
	}

	if done := t.verifier.Confirm(predicted, ok); done {
		if b, collected := t.verifier.Bias(); collected {
			t.mapper.SetBias(b)
			log.Info("bias updated", "dx", b.DX, "dy", b.DY)
		}
		t.verifier = nil
		t.session.Complete()
	}
	return nil
}

// StartTracking opens a fresh recording. Filter state and the outlier
// guard's memory are reset synchronously before any new sample can be
// accepted, so nothing leaks across session boundaries.
func (t *Tracker) StartTracking(source string) *PointLog {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.filter.Reset()
	t.guard.Reset()
	t.recent = t.recent[:0]
	t.recording = NewPointLog(source)
	t.tracking = true

	log.Info("tracking started",
		"recording", t.recording.ID(), "source", source)
	return t.recording
}

// StopTracking finalizes the recording and returns its metadata. The
// point log remains readable for aggregation queries.
func (t *Tracker) StopTracking() (Summary, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.recording == nil {
		return Summary{}, false
	}
	t.tracking = false
	summary := t.recording.Summarize()
	log.Info("tracking stopped",
		"recording", summary.ID, "points", summary.Points,
		"duration", summary.Duration)
	return summary, true
}

// Points returns a snapshot of the current recording's gaze points,
// or nil when no recording exists.
func (t *Tracker) Points() []GazePoint {
	t.mu.Lock()
	rec := t.recording
	t.mu.Unlock()

	if rec == nil {
		return nil
	}
	return rec.Snapshot()
}

// Recording returns the active point log, or nil.
func (t *Tracker) Recording() *PointLog {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.recording
}

// Status is a point-in-time view of the tracker for the API layer.
type Status struct {
	Phase           string  `json:"phase"`
	Progress        float64 `json:"progress"`
	Tracking        bool    `json:"tracking"`
	Calibrated      bool    `json:"calibrated"`
	Bias            Bias    `json:"bias"`
	Points          int     `json:"points"`
	RecordingID     string  `json:"recording_id,omitempty"`
	Source          string  `json:"source,omitempty"`
	VerifyRemaining int     `json:"verify_remaining,omitempty"`
	LastFitError    string  `json:"last_fit_error,omitempty"`
}

// Status returns the current session state.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Status{
		Phase:      t.session.Phase().String(),
		Progress:   t.session.Progress(),
		Tracking:   t.tracking,
		Calibrated: t.mapper.HasModel(),
		Bias:       t.mapper.Bias(),
	}
	if t.recording != nil {
		s.Points = t.recording.Len()
		s.RecordingID = t.recording.ID().String()
		s.Source = t.recording.Source()
	}
	if t.verifier != nil {
		s.VerifyRemaining = t.verifier.Remaining()
	}
	if t.lastFitErr != nil {
		s.LastFitError = t.lastFitErr.Error()
	}
	return s
}

// LastFitError returns the most recent fit failure, nil if the last
// fit succeeded or none was attempted.
func (t *Tracker) LastFitError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastFitErr
}

// pushRecent appends to the bounded recent-sample ring.
func (t *Tracker) pushRecent(s IrisSample) {
	t.recent = append(t.recent, s)
	if n := t.config.RecentSamples; len(t.recent) > n {
		t.recent = t.recent[len(t.recent)-n:]
	}
}

// meanRecent averages the recent-sample ring.
func (t *Tracker) meanRecent() (IrisSample, bool) {
	if len(t.recent) == 0 {
		return IrisSample{}, false
	}
	var sum IrisSample
	for _, s := range t.recent {
		sum.X += s.X
		sum.Y += s.Y
	}
	n := float64(len(t.recent))
	return IrisSample{X: sum.X / n, Y: sum.Y / n}, true
}
