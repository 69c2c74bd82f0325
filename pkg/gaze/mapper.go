package gaze

// Mapper evaluates the fitted polynomial plus the bias vector to turn
// an iris sample into a screen-space prediction. "No model yet" is the
// expected state before first calibration, reported through the bool
// return rather than an error.
type Mapper struct {
	model *Model
	bias  Bias
}

// NewMapper creates a mapper with no model and zero bias.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Predict maps an iris sample to screen pixels with bias applied.
// Returns false when no model exists.
func (m *Mapper) Predict(s IrisSample) (Point, bool) {
	p, ok := m.PredictRaw(s)
	if !ok {
		return Point{}, false
	}
	p.X += m.bias.DX
	p.Y += m.bias.DY
	return p, true
}

// PredictRaw maps an iris sample to screen pixels without bias. The
// verification pass uses this so residuals measure the model alone.
func (m *Mapper) PredictRaw(s IrisSample) (Point, bool) {
	if m.model == nil {
		return Point{}, false
	}
	return Point{
		X: evaluate(m.model.WX, s),
		Y: evaluate(m.model.WY, s),
	}, true
}

// SetModel replaces the model wholesale. Only called with a model from
// a successful fit; failed fits never reach here.
func (m *Mapper) SetModel(model *Model) {
	m.model = model
}

// HasModel reports whether a calibration has succeeded yet.
func (m *Mapper) HasModel() bool {
	return m.model != nil
}

// SetBias replaces the bias vector. Bias survives recalibration; only
// a completed verification pass or an explicit reset changes it.
func (m *Mapper) SetBias(b Bias) {
	m.bias = b
}

// Bias returns the current bias vector.
func (m *Mapper) Bias() Bias {
	return m.bias
}

// ResetBias zeroes the bias vector.
func (m *Mapper) ResetBias() {
	m.bias = Bias{}
}
