package attention

import "github.com/irisline/gazekit/pkg/gaze"

// Regions partitions the frame into an n x n grid and returns each
// cell's share of attention as a percentage: count/total x 100. The
// percentages sum to 100 for any window containing at least one point;
// an empty window yields all zeros and performs no division.
func Regions(points []gaze.GazePoint, window Window, n int, width, height float64) [][]float64 {
	if n <= 0 {
		return nil
	}
	grid := make([][]float64, n)
	for r := range grid {
		grid[r] = make([]float64, n)
	}
	if width <= 0 || height <= 0 {
		return grid
	}

	total := 0
	for _, p := range points {
		if !window.contains(p) {
			continue
		}
		row := cellIndex(p.Y, height, n)
		col := cellIndex(p.X, width, n)
		grid[row][col]++
		total++
	}
	if total == 0 {
		return grid
	}

	for _, row := range grid {
		for c := range row {
			row[c] = row[c] / float64(total) * 100
		}
	}
	return grid
}

// QuadrantAttention is the attention share per screen quadrant.
type QuadrantAttention struct {
	TopLeft     float64 `json:"top_left"`
	TopRight    float64 `json:"top_right"`
	BottomLeft  float64 `json:"bottom_left"`
	BottomRight float64 `json:"bottom_right"`
}

// Quadrants aggregates an even-sized region grid into four quadrant
// percentages by summing each n/2 x n/2 sub-block.
func Quadrants(regions [][]float64) QuadrantAttention {
	var q QuadrantAttention
	n := len(regions)
	if n == 0 {
		return q
	}
	half := n / 2

	for r, row := range regions {
		for c, v := range row {
			switch {
			case r < half && c < half:
				q.TopLeft += v
			case r < half:
				q.TopRight += v
			case c < half:
				q.BottomLeft += v
			default:
				q.BottomRight += v
			}
		}
	}
	return q
}
