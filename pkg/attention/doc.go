// Package attention computes spatial and temporal attention statistics
// from a recorded gaze point sequence: a Gaussian-splatted heatmap
// grid, fixed-grid region and quadrant attention percentages, and a
// time-bucketed intensity timeline.
//
// Every aggregation is a pure function of (points, window) or
// (points, bucket width). Nothing here holds state, so results can be
// recomputed at any time while the point log keeps growing.
package attention
