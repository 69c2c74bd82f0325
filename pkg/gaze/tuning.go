package gaze

// TuningParams holds the real-time adjustable pipeline parameters.
// These can be modified via the tuning API without restarting a
// session.
type TuningParams struct {
	// Filter
	MinCutoff float64 `json:"min_cutoff"` // Minimum cutoff (0.3=smooth, 1.0=responsive)
	Beta      float64 `json:"beta"`       // Speed coefficient
	DCutoff   float64 `json:"d_cutoff"`   // Derivative cutoff

	// Sample gating
	JumpThreshold float64 `json:"jump_threshold"` // Outlier rejection distance
	BlinkRatio    float64 `json:"blink_ratio"`    // Frame-drop aspect ratio
}

// GetTuningParams returns the current tuning parameters.
func (t *Tracker) GetTuningParams() TuningParams {
	t.mu.Lock()
	defer t.mu.Unlock()

	return TuningParams{
		MinCutoff:     t.filter.minCutoff,
		Beta:          t.filter.beta,
		DCutoff:       t.filter.dCutoff,
		JumpThreshold: t.guard.threshold,
		BlinkRatio:    t.normalizer.blinkRatio,
	}
}

// SetTuningParams updates tuning parameters at runtime.
// Only non-zero values are applied.
func (t *Tracker) SetTuningParams(params TuningParams) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.filter.SetParams(params.MinCutoff, params.Beta, params.DCutoff)

	if params.JumpThreshold > 0 {
		t.guard.SetThreshold(params.JumpThreshold)
		t.config.JumpThreshold = params.JumpThreshold
	}
	if params.BlinkRatio > 0 {
		t.normalizer.blinkRatio = clamp(params.BlinkRatio, 0, 1)
		t.config.BlinkRatio = t.normalizer.blinkRatio
	}
}

// clamp limits a value to a range.
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
