package gaze

// BiasEstimator drives the verification pass: a small fixed set of
// screen targets is shown one at a time, the user fixates and
// confirms, and the residual between the target and the model's
// prediction is recorded. The mean residual becomes the bias vector.
type BiasEstimator struct {
	targets   []Point
	index     int
	residuals []Point
}

// NewBiasEstimator creates an estimator with the standard target set:
// screen center plus the four corners inset by the configured margin.
func NewBiasEstimator(cfg Config) *BiasEstimator {
	m := cfg.VerifyMargin
	w, h := cfg.FrameWidth, cfg.FrameHeight
	return &BiasEstimator{
		targets: []Point{
			{0.5 * w, 0.5 * h},
			{m * w, m * h},
			{(1 - m) * w, m * h},
			{(1 - m) * w, (1 - m) * h},
			{m * w, (1 - m) * h},
		},
	}
}

// CurrentTarget returns the target awaiting confirmation, or false
// when the pass is complete.
func (b *BiasEstimator) CurrentTarget() (Point, bool) {
	if b.index >= len(b.targets) {
		return Point{}, false
	}
	return b.targets[b.index], true
}

// Confirm records the residual for the current target given the
// model's unbiased prediction. predicted=false (no model) advances
// past the target without recording anything. Returns true when all
// targets have been confirmed.
func (b *BiasEstimator) Confirm(predicted Point, ok bool) bool {
	if b.index >= len(b.targets) {
		return true
	}
	if ok {
		target := b.targets[b.index]
		b.residuals = append(b.residuals, Point{
			X: target.X - predicted.X,
			Y: target.Y - predicted.Y,
		})
	}
	b.index++
	return b.index >= len(b.targets)
}

// Bias returns the mean residual. ok is false when no residuals were
// collected (the model was unavailable throughout), in which case the
// caller keeps its previous bias.
func (b *BiasEstimator) Bias() (Bias, bool) {
	if len(b.residuals) == 0 {
		return Bias{}, false
	}
	var sum Point
	for _, r := range b.residuals {
		sum.X += r.X
		sum.Y += r.Y
	}
	n := float64(len(b.residuals))
	return Bias{DX: sum.X / n, DY: sum.Y / n}, true
}

// Remaining returns how many targets still await confirmation.
func (b *BiasEstimator) Remaining() int {
	return len(b.targets) - b.index
}
