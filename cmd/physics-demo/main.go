// Command physics-demo opens a window showing a box and a sphere dropped onto a
// ground plane under rigid-body physics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/Carmen-Shannon/oxy-physics/config"
	"github.com/Carmen-Shannon/oxy-physics/demo"
	"github.com/Carmen-Shannon/oxy-physics/engine"
	"github.com/Carmen-Shannon/oxy-physics/engine/renderer"
	"github.com/Carmen-Shannon/oxy-physics/engine/window"
	flag "github.com/spf13/pflag"
)

// startTimeout bounds the physics initialization phase.
const startTimeout = 10 * time.Second

func init() {
	// GLFW must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "physics-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.StringP("config", "c", "", "path to a TOML config file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	noPhysics := flag.Bool("no-physics", false, "show the static scene without simulation")
	profile := flag.Bool("profile", false, "log frame rate and memory stats every second")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, *noPhysics, *profile)

	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	msaa := renderer.MSAAOff
	if cfg.Renderer.Antialias {
		msaa = renderer.MSAA4x
	}
	present := renderer.PresentModeUncapped
	if cfg.Renderer.VSync {
		present = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(w,
		renderer.WithMSAA(msaa),
		renderer.WithPresentMode(present),
	)
	if err != nil {
		closeWindow(w)
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Release()

	d := demo.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	err = d.Start(startCtx)
	cancel()
	if err != nil {
		closeWindow(w)
		return err
	}
	defer d.Close()

	var eng engine.Engine
	eng = engine.NewEngine(
		engine.WithWindow(w),
		engine.WithRenderer(r),
		engine.WithScene(0, d.Scene()),
		engine.WithProfiling(cfg.Profile),
		engine.WithTickCallback(func(dt float32) {
			// the window is closed from the frame loop, never from the signal goroutine
			if ctx.Err() != nil {
				eng.Quit()
				return
			}
			d.Step(dt)
		}),
	)

	common.Logger().Info("running", "physics", cfg.Physics.Enabled)
	eng.Run()
	return nil
}

// applyFlags lets command-line switches override the loaded config. Flags only
// ever turn physics off and profiling on.
func applyFlags(cfg *config.Config, noPhysics, profile bool) {
	if noPhysics {
		cfg.Physics.Enabled = false
	}
	if profile {
		cfg.Profile = true
	}
}

// closeWindow tears the window down on an early exit, before the engine owns it.
func closeWindow(w window.Window) {
	if err := w.Close(); err != nil {
		common.Logger().Warn("close window", "error", err)
	}
}
