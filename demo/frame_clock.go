package demo

const (
	// initialCountdown is the delay in seconds before the first spawn tick.
	initialCountdown float32 = 1
	// SpawnInterval is the countdown value restored after each spawn tick.
	SpawnInterval float32 = 0.25
	// MaxSpawns caps the number of spawn ticks.
	MaxSpawns = 10
)

// FrameClock is the countdown and counter advanced once per frame.
// A tick fires when the countdown drops below zero while fewer than MaxSpawns
// ticks have fired; nothing is spawned on a tick.
type FrameClock struct {
	countdown float32
	count     int
}

// NewFrameClock returns a clock with a one second countdown and no ticks.
//
// Returns:
//   - FrameClock: the initial clock state
func NewFrameClock() FrameClock {
	return FrameClock{countdown: initialCountdown}
}

// Advance subtracts dt seconds from the countdown. When the countdown is negative
// and the cap is not reached, it resets to SpawnInterval and the count increments.
//
// Parameters:
//   - dt: elapsed seconds since the previous frame
//
// Returns:
//   - bool: true if a tick fired on this call
func (c *FrameClock) Advance(dt float32) bool {
	c.countdown -= dt
	if c.countdown < 0 && c.count < MaxSpawns {
		c.countdown = SpawnInterval
		c.count++
		return true
	}
	return false
}

// Countdown returns the seconds left before the next tick. Past the cap it keeps falling.
func (c FrameClock) Countdown() float32 { return c.countdown }

// Count returns the number of ticks fired so far.
func (c FrameClock) Count() int { return c.count }
