package gaze

import "math"

const (
	// basisTerms is the size of the quadratic basis.
	basisTerms = 6

	// MinCalibrationPairs is the minimum number of pairs for a fit:
	// more equations than the six unknowns per axis.
	MinCalibrationPairs = 7

	// pivotEpsilon is the singularity cutoff for the elimination.
	pivotEpsilon = 1e-12
)

// Model is the fitted quadratic mapping from relative iris position to
// screen pixels, one weight vector per screen axis. A Model is
// immutable once produced; recalibration replaces it wholesale.
type Model struct {
	WX [basisTerms]float64
	WY [basisTerms]float64
}

// basis evaluates the quadratic feature vector for an iris sample:
// [ix², iy², ix·iy, ix, iy, 1]. A full quadratic surface is used
// because a purely affine model measurably under-fits near the screen
// edges, where the gaze-to-iris response is non-linear.
func basis(s IrisSample) [basisTerms]float64 {
	return [basisTerms]float64{
		s.X * s.X,
		s.Y * s.Y,
		s.X * s.Y,
		s.X,
		s.Y,
		1,
	}
}

// evaluate applies one axis' weights to a sample.
func evaluate(w [basisTerms]float64, s IrisSample) float64 {
	phi := basis(s)
	var sum float64
	for i := 0; i < basisTerms; i++ {
		sum += w[i] * phi[i]
	}
	return sum
}

// Fit solves the least-squares quadratic surface for both screen axes
// via the normal equations. It returns ErrInsufficientData for fewer
// than MinCalibrationPairs pairs and ErrSingularSystem when the
// calibration geometry is degenerate; callers must keep their previous
// model on either failure.
func Fit(pairs []CalibrationPair) (*Model, error) {
	if len(pairs) < MinCalibrationPairs {
		return nil, ErrInsufficientData
	}

	// Accumulate AᵀA and Aᵀb for both axes in one pass.
	var ata [basisTerms][basisTerms]float64
	var atbX, atbY [basisTerms]float64

	for _, p := range pairs {
		phi := basis(p.Iris)
		for i := 0; i < basisTerms; i++ {
			for j := 0; j < basisTerms; j++ {
				ata[i][j] += phi[i] * phi[j]
			}
			atbX[i] += phi[i] * p.Target.X
			atbY[i] += phi[i] * p.Target.Y
		}
	}

	wx, err := solve(ata, atbX)
	if err != nil {
		return nil, err
	}
	wy, err := solve(ata, atbY)
	if err != nil {
		return nil, err
	}

	return &Model{WX: wx, WY: wy}, nil
}

// solve performs Gaussian elimination with partial pivoting on a copy
// of the system. A pivot below pivotEpsilon after row selection means
// the system is singular.
func solve(a [basisTerms][basisTerms]float64, b [basisTerms]float64) ([basisTerms]float64, error) {
	var x [basisTerms]float64

	for col := 0; col < basisTerms; col++ {
		// Partial pivot: largest remaining |entry| in this column
		pivot := col
		for row := col + 1; row < basisTerms; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < pivotEpsilon {
			return x, ErrSingularSystem
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < basisTerms; row++ {
			f := a[row][col] / a[col][col]
			for k := col; k < basisTerms; k++ {
				a[row][k] -= f * a[col][k]
			}
			b[row] -= f * b[col]
		}
	}

	// Back-substitution
	for row := basisTerms - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < basisTerms; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}

	return x, nil
}
