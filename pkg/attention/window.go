package attention

import "github.com/irisline/gazekit/pkg/gaze"

// TimeBase selects which of a gaze point's two clocks a query runs on.
// Wall time keeps advancing while content playback is paused; content
// time freezes. Aggregations keyed only on content time report
// false-zero attention across a pause, so wall time is the default.
type TimeBase int

const (
	// WallTime selects seconds of real time since recording start.
	WallTime TimeBase = iota
	// ContentTime selects the source-content timestamp.
	ContentTime
)

// Window is a half-open query interval [Start, End) on a time base,
// in seconds.
type Window struct {
	Start float64
	End   float64
	Base  TimeBase
}

// timeOf extracts the point's time on the window's base.
func (w Window) timeOf(p gaze.GazePoint) float64 {
	if w.Base == ContentTime {
		return p.Timestamp
	}
	return p.WallTime
}

// contains reports whether the point falls inside the window.
func (w Window) contains(p gaze.GazePoint) bool {
	t := w.timeOf(p)
	return t >= w.Start && t < w.End
}
