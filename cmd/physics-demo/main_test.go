package main

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/Carmen-Shannon/oxy-physics/config"
	"github.com/Carmen-Shannon/oxy-physics/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

type closingWindow struct {
	err    error
	closed int
}

func (w *closingWindow) SetUpdateCallback(func())                                 {}
func (w *closingWindow) SetResizeCallback(func(width, height int))                {}
func (w *closingWindow) SetScrollCallback(func(delta float32))                    {}
func (w *closingWindow) SetDragCallback(func(b window.MouseButton, dx, dy float32)) {}
func (w *closingWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *closingWindow) IsRunning() bool                            { return w.closed == 0 }
func (w *closingWindow) ProcessMessages()                                         {}
func (w *closingWindow) Width() int  { return 1920 }
func (w *closingWindow) Height() int { return 1080 }

func (w *closingWindow) Close() error {
	w.closed++
	return w.err
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name        string
		cfgProfile  bool
		noPhysics   bool
		profile     bool
		wantProfile bool
		wantPhysics bool
	}{
		{"defaults", false, false, false, false, true},
		{"profile from config", true, false, false, true, true},
		{"profile from flag", false, false, true, true, true},
		{"both flags over profiled config", true, true, true, true, false},
		{"no physics", false, true, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Profile = tt.cfgProfile
			applyFlags(&cfg, tt.noPhysics, tt.profile)
			assert.Equal(t, tt.wantProfile, cfg.Profile)
			assert.Equal(t, tt.wantPhysics, cfg.Physics.Enabled)
		})
	}
}

func TestCloseWindowLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { common.SetLogger(nil) })

	ok := &closingWindow{}
	closeWindow(ok)
	assert.Equal(t, 1, ok.closed)
	assert.Empty(t, buf.String())

	bad := &closingWindow{err: errors.New("window is not initialized")}
	closeWindow(bad)
	assert.Equal(t, 1, bad.closed)
	assert.Contains(t, buf.String(), "close window")
	assert.Contains(t, buf.String(), "window is not initialized")
}
