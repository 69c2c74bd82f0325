package attention

import "github.com/irisline/gazekit/pkg/gaze"

// DefaultExpectedRate is the baseline gaze arrival rate in points per
// second used to scale timeline intensity. It matches the typical
// landmark provider cadence.
const DefaultExpectedRate = 12.0

// Bucket is one fixed-width slot of the intensity timeline.
type Bucket struct {
	Start     float64 `json:"start"`     // Bucket start time (seconds)
	Count     int     `json:"count"`     // Raw points in the bucket
	Intensity float64 `json:"intensity"` // 0-100, capped
}

// Timeline buckets the points into fixed-width slots on the chosen
// time base, from zero through the last point. Each bucket's intensity
// is its count against the expected rate, as a percentage capped at
// 100: raw gaze arrival can transiently exceed the baseline and must
// not push the scale past full.
func Timeline(points []gaze.GazePoint, bucketWidth float64, base TimeBase, expectedRate float64) []Bucket {
	if bucketWidth <= 0 || len(points) == 0 {
		return nil
	}
	if expectedRate <= 0 {
		expectedRate = DefaultExpectedRate
	}

	w := Window{Base: base}
	var last float64
	for _, p := range points {
		if t := w.timeOf(p); t > last {
			last = t
		}
	}

	buckets := make([]Bucket, int(last/bucketWidth)+1)
	for i := range buckets {
		buckets[i].Start = float64(i) * bucketWidth
	}

	for _, p := range points {
		t := w.timeOf(p)
		if t < 0 {
			continue
		}
		i := int(t / bucketWidth)
		if i >= len(buckets) {
			i = len(buckets) - 1
		}
		buckets[i].Count++
	}

	expected := expectedRate * bucketWidth
	for i := range buckets {
		intensity := float64(buckets[i].Count) / expected * 100
		if intensity > 100 {
			intensity = 100
		}
		buckets[i].Intensity = intensity
	}
	return buckets
}
