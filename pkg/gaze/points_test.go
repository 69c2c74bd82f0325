package gaze

import (
	"sync"
	"testing"
)

func TestPointLog_AppendAndSnapshot(t *testing.T) {
	l := NewPointLog("clip-7")

	for i := 0; i < 5; i++ {
		l.Append(GazePoint{Timestamp: float64(i), WallTime: float64(i), X: float64(i)})
	}

	snap := l.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("snapshot length: got %d, want 5", len(snap))
	}

	// Later appends must not show up in an existing snapshot
	l.Append(GazePoint{WallTime: 9})
	if len(snap) != 5 {
		t.Error("snapshot must be a stable view")
	}
	if l.Len() != 6 {
		t.Errorf("log length: got %d, want 6", l.Len())
	}

	// Appending past a snapshot must reallocate, never overwrite
	if snap[4].WallTime != 4 {
		t.Errorf("snapshot tail mutated: got %v", snap[4])
	}
}

func TestPointLog_Metadata(t *testing.T) {
	l := NewPointLog("webcam-a")

	if l.Source() != "webcam-a" {
		t.Errorf("source: got %q, want webcam-a", l.Source())
	}
	if l.ID().String() == "" {
		t.Error("expected a recording id")
	}

	l.Append(GazePoint{})
	s := l.Summarize()
	if s.Points != 1 || s.Source != "webcam-a" || s.ID != l.ID() {
		t.Errorf("summary: got %+v", s)
	}
}

func TestPointLog_ConcurrentAppendAndRead(t *testing.T) {
	l := NewPointLog("stress")

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			l.Append(GazePoint{WallTime: float64(i)})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := l.Snapshot()
			for j := 1; j < len(snap); j++ {
				if snap[j].WallTime < snap[j-1].WallTime {
					t.Error("snapshot out of order")
					return
				}
			}
		}
	}()

	wg.Wait()

	if l.Len() != 1000 {
		t.Errorf("final length: got %d, want 1000", l.Len())
	}
}
