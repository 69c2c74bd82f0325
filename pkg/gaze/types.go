// Package gaze implements the calibrated gaze-estimation pipeline:
// landmark normalization, outlier rejection, guided calibration with a
// quadratic least-squares fit, post-calibration bias correction, and
// speed-adaptive temporal smoothing.
//
// The pipeline consumes per-frame eye landmarks from an external
// detector and produces screen-space gaze points. It performs no vision
// itself.
package gaze

// Point is a 2-D position. Depending on context it is either in the
// provider's normalized landmark space, fractional screen coordinates
// (0-1), or screen pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IrisSample is the relative iris position within the eye socket,
// averaged over both eyes. Each axis is roughly in [-0.5, 0.5]: 0 means
// the iris is centered, ±0.5 means it touches the socket edge.
type IrisSample struct {
	X float64
	Y float64
}

// EyeLandmarks holds the socket landmarks and iris center for one eye,
// all in the provider's shared normalized coordinate space.
type EyeLandmarks struct {
	OuterCorner Point `json:"outer_corner"`
	InnerCorner Point `json:"inner_corner"`
	UpperLid    Point `json:"upper_lid"`
	LowerLid    Point `json:"lower_lid"`
	Iris        Point `json:"iris"`
}

// LandmarkFrame is one detection delivered by the landmark provider.
// Timestamp is content time in seconds; it can pause or jump when the
// watched source pauses or seeks, which is why recorded gaze points
// carry a wall-clock time as well.
type LandmarkFrame struct {
	Left      EyeLandmarks `json:"left"`
	Right     EyeLandmarks `json:"right"`
	Timestamp float64      `json:"timestamp"`
}

// CalibrationPair is one training observation: where the iris sat while
// the user was looking at a known screen target. Pairs are owned by the
// active calibration session and cleared on reset or successful fit.
type CalibrationPair struct {
	Iris   IrisSample
	Target Point // screen pixels
}

// Bias is a constant screen-pixel offset applied after the polynomial
// mapping, correcting systematic calibration error measured during the
// verification pass. The sign convention is predicted + bias = actual.
type Bias struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// GazePoint is one finalized, filtered, calibrated gaze observation.
// Points are immutable once appended to a PointLog.
//
// Two time bases are carried deliberately: Timestamp is content time,
// which freezes whenever playback pauses; WallTime is seconds of real
// time since the recording started, and keeps advancing. Aggregations
// keyed only on content time silently report zero activity during a
// pause even though the person is still watching.
type GazePoint struct {
	Timestamp float64 `json:"timestamp"`
	WallTime  float64 `json:"wall_time"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}
