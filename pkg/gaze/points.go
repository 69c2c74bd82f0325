package gaze

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// PointLog is the append-only sequence of finalized gaze points for
// one recording, plus its metadata. Points are never mutated after
// append and the backing array never shrinks, so a snapshot is just a
// capacity-capped slice header: concurrent appends allocate a new
// array instead of writing past a reader.
type PointLog struct {
	mu      sync.RWMutex
	points  []GazePoint
	id      uuid.UUID
	source  string
	started time.Time
}

// NewPointLog opens a recording for the given source identifier.
func NewPointLog(source string) *PointLog {
	return &PointLog{
		id:      uuid.New(),
		source:  source,
		started: time.Now(),
	}
}

// Append adds one gaze point. Points must arrive in wall-time order;
// the caller (the tracker's synchronous ingest path) guarantees this.
func (l *PointLog) Append(p GazePoint) {
	l.mu.Lock()
	l.points = append(l.points, p)
	l.mu.Unlock()
}

// Snapshot returns a read-only view of the sequence so far.
func (l *PointLog) Snapshot() []GazePoint {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.points[:len(l.points):len(l.points)]
}

// Len returns the number of recorded points.
func (l *PointLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.points)
}

// ID returns the recording identifier.
func (l *PointLog) ID() uuid.UUID {
	return l.id
}

// Source returns the source identifier supplied at open.
func (l *PointLog) Source() string {
	return l.source
}

// Started returns when the recording was opened.
func (l *PointLog) Started() time.Time {
	return l.started
}

// Duration returns the wall-clock length of the recording so far.
func (l *PointLog) Duration() time.Duration {
	return time.Since(l.started)
}

// Summary is the session metadata handed to the persistence layer at
// session end. The core only produces it, never reads it back.
type Summary struct {
	ID       uuid.UUID     `json:"id"`
	Source   string        `json:"source"`
	Duration time.Duration `json:"duration"`
	Points   int           `json:"points"`
}

// Summarize returns the recording's metadata.
func (l *PointLog) Summarize() Summary {
	return Summary{
		ID:       l.id,
		Source:   l.source,
		Duration: l.Duration(),
		Points:   l.Len(),
	}
}
