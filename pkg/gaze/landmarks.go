package gaze

import "math"

// Normalizer converts raw eye landmarks into a relative iris position.
//
// Absolute iris position conflates head motion with eye rotation and
// has poor vertical dynamic range, so each eye's iris is expressed as a
// fraction of its own socket size and the two eyes are averaged.
type Normalizer struct {
	blinkRatio float64
	minSpan    float64
}

// NewNormalizer creates a normalizer with the config's blink policy.
func NewNormalizer(cfg Config) *Normalizer {
	return &Normalizer{
		blinkRatio: cfg.BlinkRatio,
		minSpan:    cfg.MinSocketSpan,
	}
}

// Normalize converts one landmark frame into a relative iris sample.
// Returns false when the frame is unreliable: if either eye's
// height/width ratio falls below the blink threshold, the lid is
// occluding the iris and the whole frame is discarded.
func (n *Normalizer) Normalize(f LandmarkFrame) (IrisSample, bool) {
	left, ok := n.eyeRelative(f.Left)
	if !ok {
		return IrisSample{}, false
	}
	right, ok := n.eyeRelative(f.Right)
	if !ok {
		return IrisSample{}, false
	}
	return IrisSample{
		X: (left.X + right.X) / 2,
		Y: (left.Y + right.Y) / 2,
	}, true
}

// eyeRelative computes one eye's relative iris position:
// (iris - socketCenter) / socketSize, independently per axis.
func (n *Normalizer) eyeRelative(e EyeLandmarks) (IrisSample, bool) {
	width := math.Abs(e.InnerCorner.X - e.OuterCorner.X)
	height := math.Abs(e.LowerLid.Y - e.UpperLid.Y)
	if width < n.minSpan {
		width = n.minSpan
	}
	if height < n.minSpan {
		height = n.minSpan
	}

	// Blink/squint check on the raw aspect ratio
	if height/width < n.blinkRatio {
		return IrisSample{}, false
	}

	cx := (e.InnerCorner.X + e.OuterCorner.X) / 2
	cy := (e.UpperLid.Y + e.LowerLid.Y) / 2

	return IrisSample{
		X: (e.Iris.X - cx) / width,
		Y: (e.Iris.Y - cy) / height,
	}, true
}
