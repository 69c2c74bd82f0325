package gaze

import (
	"errors"
	"math"
	"testing"
)

const fitTolerance = 1e-6

func floatEquals(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// nonDegenerateSamples is a spread of iris positions covering the
// quadratic surface: center, corners, and off-axis points.
func nonDegenerateSamples() []IrisSample {
	return []IrisSample{
		{0, 0},
		{-0.3, -0.3},
		{0.3, -0.3},
		{0.3, 0.3},
		{-0.3, 0.3},
		{-0.15, 0},
		{0.15, 0},
		{0, 0.2},
		{0.1, -0.2},
	}
}

func TestFit_RoundTrip(t *testing.T) {
	wTrue := Model{
		WX: [6]float64{120, -40, 15, 900, 60, 640},
		WY: [6]float64{-30, 80, 5, 40, 500, 360},
	}

	var pairs []CalibrationPair
	for _, s := range nonDegenerateSamples() {
		pairs = append(pairs, CalibrationPair{
			Iris: s,
			Target: Point{
				X: evaluate(wTrue.WX, s),
				Y: evaluate(wTrue.WY, s),
			},
		})
	}

	model, err := Fit(pairs)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	for i := 0; i < basisTerms; i++ {
		if !floatEquals(model.WX[i], wTrue.WX[i], fitTolerance) {
			t.Errorf("WX[%d]: got %v, want %v", i, model.WX[i], wTrue.WX[i])
		}
		if !floatEquals(model.WY[i], wTrue.WY[i], fitTolerance) {
			t.Errorf("WY[%d]: got %v, want %v", i, model.WY[i], wTrue.WY[i])
		}
	}

	// The fitted surface must reproduce every training target
	for _, p := range pairs {
		x := evaluate(model.WX, p.Iris)
		y := evaluate(model.WY, p.Iris)
		if !floatEquals(x, p.Target.X, fitTolerance) || !floatEquals(y, p.Target.Y, fitTolerance) {
			t.Errorf("prediction at %v: got (%v,%v), want (%v,%v)",
				p.Iris, x, y, p.Target.X, p.Target.Y)
		}
	}
}

func TestFit_CollinearInputRejected(t *testing.T) {
	// All samples on the ix=iy line: geometrically degenerate even
	// though there are enough of them.
	var pairs []CalibrationPair
	for i := 0; i < 10; i++ {
		v := -0.4 + 0.08*float64(i)
		pairs = append(pairs, CalibrationPair{
			Iris:   IrisSample{v, v},
			Target: Point{X: 100 * v, Y: 50 * v},
		})
	}

	_, err := Fit(pairs)
	if !errors.Is(err, ErrSingularSystem) {
		t.Errorf("collinear fit: got %v, want ErrSingularSystem", err)
	}
}

func TestFit_InsufficientDataRejected(t *testing.T) {
	var pairs []CalibrationPair
	for _, s := range nonDegenerateSamples()[:MinCalibrationPairs-1] {
		pairs = append(pairs, CalibrationPair{Iris: s, Target: Point{X: 1, Y: 1}})
	}

	_, err := Fit(pairs)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("short fit: got %v, want ErrInsufficientData", err)
	}

	// The two failure classes must stay distinct
	if errors.Is(ErrInsufficientData, ErrSingularSystem) {
		t.Error("ErrInsufficientData must not match ErrSingularSystem")
	}
}

func TestFit_SevenPointScreenScenario(t *testing.T) {
	// Seven iris positions mapped to a 1280x720 frame's center,
	// corners, and horizontal edge midpoints.
	irises := []IrisSample{
		{0, 0},
		{-0.3, -0.3},
		{0.3, -0.3},
		{0.3, 0.3},
		{-0.3, 0.3},
		{-0.15, 0},
		{0.15, 0},
	}
	targets := []Point{
		{640, 360},
		{0, 0},
		{1280, 0},
		{1280, 720},
		{0, 720},
		{0, 360},
		{1280, 360},
	}

	pairs := make([]CalibrationPair, len(irises))
	for i := range irises {
		pairs[i] = CalibrationPair{Iris: irises[i], Target: targets[i]}
	}

	model, err := Fit(pairs)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	x := evaluate(model.WX, IrisSample{0, 0})
	y := evaluate(model.WY, IrisSample{0, 0})
	if math.Abs(x-640) > 3 || math.Abs(y-360) > 3 {
		t.Errorf("center prediction: got (%v,%v), want within 3px of (640,360)", x, y)
	}
}

func TestSolve_IdentitySystem(t *testing.T) {
	var a [basisTerms][basisTerms]float64
	b := [basisTerms]float64{1, 2, 3, 4, 5, 6}
	for i := 0; i < basisTerms; i++ {
		a[i][i] = 1
	}

	x, err := solve(a, b)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	for i := range x {
		if !floatEquals(x[i], b[i], fitTolerance) {
			t.Errorf("x[%d]: got %v, want %v", i, x[i], b[i])
		}
	}
}

func TestSolve_PivotingRequired(t *testing.T) {
	// Zero on the diagonal forces a row swap; without pivoting this
	// system divides by zero immediately.
	var a [basisTerms][basisTerms]float64
	a[0][1] = 1
	a[1][0] = 1
	for i := 2; i < basisTerms; i++ {
		a[i][i] = 1
	}
	b := [basisTerms]float64{2, 3, 1, 1, 1, 1}

	x, err := solve(a, b)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !floatEquals(x[0], 3, fitTolerance) || !floatEquals(x[1], 2, fitTolerance) {
		t.Errorf("swapped solution: got (%v,%v), want (3,2)", x[0], x[1])
	}
}
