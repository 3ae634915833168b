package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrameClock(t *testing.T) {
	c := NewFrameClock()
	assert.Equal(t, float32(1), c.Countdown())
	assert.Zero(t, c.Count())
}

func TestFrameClockThreeShortSteps(t *testing.T) {
	c := NewFrameClock()
	want := []float32{0.7, 0.4, 0.1}
	for i, w := range want {
		require.False(t, c.Advance(0.3), "step %d", i+1)
		assert.InDelta(t, w, c.Countdown(), 1e-6, "step %d", i+1)
		assert.Zero(t, c.Count(), "step %d", i+1)
	}

	// 0.1 - 0.3 goes negative: reset and count
	require.True(t, c.Advance(0.3))
	assert.Equal(t, SpawnInterval, c.Countdown())
	assert.Equal(t, 1, c.Count())
}

func TestFrameClockExactZeroDoesNotTick(t *testing.T) {
	c := NewFrameClock()
	assert.False(t, c.Advance(1))
	assert.Zero(t, c.Countdown())
	assert.Zero(t, c.Count())
	assert.True(t, c.Advance(0.001))
}

func TestFrameClockZeroDelta(t *testing.T) {
	c := NewFrameClock()
	for range 5 {
		assert.False(t, c.Advance(0))
	}
	assert.Equal(t, float32(1), c.Countdown())
}

func TestFrameClockStopsAtCap(t *testing.T) {
	c := NewFrameClock()
	ticks := 0
	for range 50 {
		if c.Advance(0.5) {
			ticks++
		}
	}
	assert.Equal(t, MaxSpawns, ticks)
	assert.Equal(t, MaxSpawns, c.Count())

	before := c.Countdown()
	assert.False(t, c.Advance(0.5))
	assert.InDelta(t, before-0.5, c.Countdown(), 1e-4, "countdown keeps falling past the cap")
	assert.Equal(t, MaxSpawns, c.Count())
}

func TestFrameClockMonotonicBetweenTicks(t *testing.T) {
	tests := []struct {
		name string
		dt   float32
	}{
		{"frame at 60Hz", 1.0 / 60},
		{"frame at 144Hz", 1.0 / 144},
		{"slow frame", 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFrameClock()
			prev := c.Countdown()
			for range 1000 {
				if c.Advance(tt.dt) {
					assert.Equal(t, SpawnInterval, c.Countdown())
				} else {
					assert.InDelta(t, prev-tt.dt, c.Countdown(), 1e-4)
				}
				prev = c.Countdown()
			}
			assert.Equal(t, MaxSpawns, c.Count())
		})
	}
}
