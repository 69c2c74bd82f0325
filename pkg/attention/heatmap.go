package attention

import (
	"math"

	"github.com/irisline/gazekit/pkg/gaze"
)

// HeatmapOptions control the heatmap grid geometry and kernel shape.
type HeatmapOptions struct {
	Cols         int     // Grid columns
	Rows         int     // Grid rows
	KernelRadius int     // Splat radius in cells
	KernelSigma  float64 // Gaussian sigma in cells
}

// DefaultHeatmapOptions returns a 64x36 grid (16:9 cells) with a
// 2-cell kernel.
func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{
		Cols:         64,
		Rows:         36,
		KernelRadius: 2,
		KernelSigma:  1.0,
	}
}

// Heatmap splats a Gaussian kernel for every point inside the window
// into a Rows x Cols float grid, then normalizes by the grid maximum
// so the brightest cell is exactly 1.0. An empty window yields an
// all-zero grid; normalization never divides by zero.
func Heatmap(points []gaze.GazePoint, window Window, width, height float64, opts HeatmapOptions) [][]float64 {
	if opts.Rows <= 0 || opts.Cols <= 0 {
		return nil
	}
	grid := make([][]float64, opts.Rows)
	for r := range grid {
		grid[r] = make([]float64, opts.Cols)
	}
	if width <= 0 || height <= 0 {
		return grid
	}

	for _, p := range points {
		if !window.contains(p) {
			continue
		}
		row := cellIndex(p.Y, height, opts.Rows)
		col := cellIndex(p.X, width, opts.Cols)
		splat(grid, row, col, opts)
	}

	normalize(grid)
	return grid
}

// splat accumulates the Gaussian kernel centered on (row, col),
// clipped at the grid edges.
func splat(grid [][]float64, row, col int, opts HeatmapOptions) {
	twoSigmaSq := 2 * opts.KernelSigma * opts.KernelSigma
	for dr := -opts.KernelRadius; dr <= opts.KernelRadius; dr++ {
		for dc := -opts.KernelRadius; dc <= opts.KernelRadius; dc++ {
			r, c := row+dr, col+dc
			if r < 0 || r >= len(grid) || c < 0 || c >= len(grid[r]) {
				continue
			}
			d2 := float64(dr*dr + dc*dc)
			grid[r][c] += math.Exp(-d2 / twoSigmaSq)
		}
	}
}

// normalize scales the grid so its maximum is 1.0, leaving an all-zero
// grid untouched.
func normalize(grid [][]float64) {
	var max float64
	for _, row := range grid {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	if max == 0 {
		return
	}
	for _, row := range grid {
		for c := range row {
			row[c] /= max
		}
	}
}

// cellIndex maps a pixel coordinate to a grid index, clamping points
// at or beyond the frame edge into the border cell.
func cellIndex(v, span float64, cells int) int {
	i := int(v / span * float64(cells))
	if i < 0 {
		return 0
	}
	if i >= cells {
		return cells - 1
	}
	return i
}
