package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	var out bytes.Buffer
	prev := common.Logger()
	common.SetLogger(slog.New(slog.NewTextHandler(&out, nil)))
	t.Cleanup(func() { common.SetLogger(prev) })

	clock := time.Unix(0, 0)
	p := NewProfiler(time.Second)
	p.now = func() time.Time { return clock }
	p.lastTime = clock

	for range 59 {
		clock = clock.Add(10 * time.Millisecond)
		require.False(t, p.Tick())
	}
	clock = clock.Add(410 * time.Millisecond)
	require.True(t, p.Tick())

	assert.Contains(t, out.String(), "msg=profiler")
	assert.Contains(t, out.String(), "fps=60")
	assert.Zero(t, p.frameCount)

	clock = clock.Add(10 * time.Millisecond)
	assert.False(t, p.Tick())
}

func TestNewProfilerDefaultInterval(t *testing.T) {
	assert.Equal(t, time.Second, NewProfiler().updateInterval)
	assert.Equal(t, time.Second, NewProfiler(-time.Second).updateInterval)
	assert.Equal(t, 250*time.Millisecond, NewProfiler(250*time.Millisecond).updateInterval)
}
