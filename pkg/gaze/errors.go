package gaze

import "errors"

// Sentinel errors for the calibration fit. The two failure classes are
// deliberately distinct: insufficient data means the session should
// keep sampling, a singular system means the sampled geometry was
// degenerate and the user should redo the path.
var (
	// ErrInsufficientData is returned when fewer calibration pairs
	// than unknowns-plus-one were collected. The previous model, if
	// any, is retained.
	ErrInsufficientData = errors.New("gaze: not enough calibration pairs for fit")

	// ErrSingularSystem is returned when the normal-equations matrix
	// is numerically singular (degenerate or collinear calibration
	// geometry). The previous model, if any, is retained.
	ErrSingularSystem = errors.New("gaze: singular calibration system")

	// ErrNotCalibrating is returned when a verification confirm
	// arrives outside the verifying phase.
	ErrNotCalibrating = errors.New("gaze: no calibration in progress")

	// ErrSessionActive is returned when starting a calibration while
	// one is already running or a recording is active. Stop the
	// recording first; the guided overlay owns the screen.
	ErrSessionActive = errors.New("gaze: session already active")
)
