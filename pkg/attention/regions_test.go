package attention

import (
	"math"
	"testing"

	"github.com/irisline/gazekit/pkg/gaze"
)

const frameW, frameH = 1280.0, 720.0

func wholeWindow() Window {
	return Window{Start: 0, End: math.Inf(1)}
}

func pointAt(x, y, wall float64) gaze.GazePoint {
	return gaze.GazePoint{X: x, Y: y, WallTime: wall, Timestamp: wall}
}

func TestRegions_SumTo100(t *testing.T) {
	points := []gaze.GazePoint{
		pointAt(100, 100, 1),
		pointAt(1200, 100, 2),
		pointAt(100, 700, 3),
		pointAt(1200, 700, 4),
		pointAt(640, 360, 5),
		pointAt(640, 360, 6),
		pointAt(30, 30, 7),
	}

	for _, n := range []int{2, 4, 8} {
		grid := Regions(points, wholeWindow(), n, frameW, frameH)

		var sum float64
		for _, row := range grid {
			for _, v := range row {
				sum += v
			}
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Errorf("n=%d: attention sum %v, want 100", n, sum)
		}
	}
}

func TestRegions_EmptyWindowAllZero(t *testing.T) {
	points := []gaze.GazePoint{pointAt(640, 360, 50)}

	// Window that excludes the only point
	grid := Regions(points, Window{Start: 0, End: 10}, 4, frameW, frameH)

	for r, row := range grid {
		for c, v := range row {
			if v != 0 {
				t.Errorf("cell (%d,%d): got %v, want 0", r, c, v)
			}
		}
	}
}

func TestRegions_CountsLandInCorrectCells(t *testing.T) {
	// Three points in the top-left 2x2 cell, one bottom-right
	points := []gaze.GazePoint{
		pointAt(10, 10, 1),
		pointAt(20, 20, 2),
		pointAt(30, 30, 3),
		pointAt(1270, 710, 4),
	}

	grid := Regions(points, wholeWindow(), 2, frameW, frameH)

	if !closeTo(grid[0][0], 75) {
		t.Errorf("top-left: got %v, want 75", grid[0][0])
	}
	if !closeTo(grid[1][1], 25) {
		t.Errorf("bottom-right: got %v, want 25", grid[1][1])
	}
	if grid[0][1] != 0 || grid[1][0] != 0 {
		t.Error("untouched cells must stay 0")
	}
}

func TestRegions_EdgePointsClampIntoFrame(t *testing.T) {
	// A biased prediction can land exactly on or past the frame edge
	points := []gaze.GazePoint{
		pointAt(frameW, frameH, 1),
		pointAt(-5, -5, 2),
	}

	grid := Regions(points, wholeWindow(), 4, frameW, frameH)

	var sum float64
	for _, row := range grid {
		for _, v := range row {
			sum += v
		}
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("clamped sum: got %v, want 100", sum)
	}
	if grid[0][0] == 0 || grid[3][3] == 0 {
		t.Error("edge points must clamp into the border cells")
	}
}

func TestQuadrants_SumSubBlocks(t *testing.T) {
	points := []gaze.GazePoint{
		pointAt(100, 100, 1),  // top-left
		pointAt(150, 150, 2),  // top-left
		pointAt(1200, 100, 3), // top-right
		pointAt(640.1, 700, 4), // bottom-right half
	}

	q := Quadrants(Regions(points, wholeWindow(), 4, frameW, frameH))

	if !closeTo(q.TopLeft, 50) {
		t.Errorf("top-left quadrant: got %v, want 50", q.TopLeft)
	}
	if !closeTo(q.TopRight, 25) {
		t.Errorf("top-right quadrant: got %v, want 25", q.TopRight)
	}
	if !closeTo(q.BottomRight, 25) {
		t.Errorf("bottom-right quadrant: got %v, want 25", q.BottomRight)
	}
	if q.BottomLeft != 0 {
		t.Errorf("bottom-left quadrant: got %v, want 0", q.BottomLeft)
	}

	total := q.TopLeft + q.TopRight + q.BottomLeft + q.BottomRight
	if !closeTo(total, 100) {
		t.Errorf("quadrant total: got %v, want 100", total)
	}
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}
