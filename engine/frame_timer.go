package engine

import "time"

// frameTimer measures wall-clock time between frames.
// The first frame has no predecessor and reports zero elapsed time.
type frameTimer struct {
	previous *time.Time
}

// elapsed returns the seconds since the previous call and records now.
func (t *frameTimer) elapsed(now time.Time) float32 {
	if t.previous == nil {
		t.previous = &now
		return 0
	}
	dt := float32(now.Sub(*t.previous).Seconds())
	*t.previous = now
	return dt
}
