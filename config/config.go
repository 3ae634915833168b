// Package config loads the demo settings from TOML. Defaults reproduce the
// fixed scene parameters, so an empty file (or no file) yields the stock demo.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Window   Window   `toml:"window"`
	Renderer Renderer `toml:"renderer"`
	Camera   Camera   `toml:"camera"`
	Light    Light    `toml:"light"`
	Scene    Scene    `toml:"scene"`
	Physics  Physics  `toml:"physics"`
	Profile  bool     `toml:"profile"`
}

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type Renderer struct {
	Antialias bool `toml:"antialias"`
	VSync     bool `toml:"vsync"`
}

type Camera struct {
	FovDegrees float32    `toml:"fov_degrees"`
	Near       float32    `toml:"near"`
	Far        float32    `toml:"far"`
	Position   [3]float32 `toml:"position"`
	Target     [3]float32 `toml:"target"`
}

type Light struct {
	Color     uint32     `toml:"color"`
	Intensity float32    `toml:"intensity"`
	Position  [3]float32 `toml:"position"`
	Target    [3]float32 `toml:"target"`
	Shadow    Shadow     `toml:"shadow"`
}

type Shadow struct {
	Enabled bool    `toml:"enabled"`
	Bias    float32 `toml:"bias"`
	MapSize int     `toml:"map_size"`
	Near    float32 `toml:"near"`
	Far     float32 `toml:"far"`
	Left    float32 `toml:"left"`
	Right   float32 `toml:"right"`
	Top     float32 `toml:"top"`
	Bottom  float32 `toml:"bottom"`
}

type Scene struct {
	Background  uint32     `toml:"background"`
	GroundSize  [3]float32 `toml:"ground_size"`
	GroundColor uint32     `toml:"ground_color"`
}

type Physics struct {
	Enabled          bool       `toml:"enabled"`
	Gravity          [3]float32 `toml:"gravity"`
	MaxSubSteps      int        `toml:"max_sub_steps"`
	FixedTimeStep    float32    `toml:"fixed_time_step"`
	SolverIterations int        `toml:"solver_iterations"`
	Workers          int        `toml:"workers"`
}

// Default returns the stock demo configuration.
func Default() Config {
	return Config{
		Window: Window{
			Title:  "oxy-physics",
			Width:  1920,
			Height: 1080,
		},
		Renderer: Renderer{
			Antialias: true,
			VSync:     true,
		},
		Camera: Camera{
			FovDegrees: 60,
			Near:       1,
			Far:        1000,
			Position:   [3]float32{75, 20, 0},
			Target:     [3]float32{0, 20, 0},
		},
		Light: Light{
			Color:     0xFFFFFF,
			Intensity: 1,
			Position:  [3]float32{20, 100, 10},
			Target:    [3]float32{0, 0, 0},
			Shadow: Shadow{
				Enabled: true,
				Bias:    -0.001,
				MapSize: 2048,
				Near:    0.5,
				Far:     500,
				Left:    100,
				Right:   -100,
				Top:     100,
				Bottom:  -100,
			},
		},
		Scene: Scene{
			Background:  0x87CEEB,
			GroundSize:  [3]float32{100, 1, 100},
			GroundColor: 0x404040,
		},
		Physics: Physics{
			Enabled:          true,
			Gravity:          [3]float32{0, -100, 0},
			MaxSubSteps:      10,
			FixedTimeStep:    1.0 / 60.0,
			SolverIterations: 10,
			Workers:          0,
		},
	}
}

// Load reads a TOML file and overlays it on Default. An empty path returns the defaults.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over Default and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes the configuration as TOML.
func (c Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Validate reports the first setting that cannot produce a working demo.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180:
		return fmt.Errorf("%w: camera fov %v", ErrInvalid, c.Camera.FovDegrees)
	case c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far:
		return fmt.Errorf("%w: camera near %v far %v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Light.Shadow.MapSize <= 0:
		return fmt.Errorf("%w: shadow map size %d", ErrInvalid, c.Light.Shadow.MapSize)
	case c.Light.Shadow.Near >= c.Light.Shadow.Far:
		return fmt.Errorf("%w: shadow near %v far %v", ErrInvalid, c.Light.Shadow.Near, c.Light.Shadow.Far)
	case c.Physics.FixedTimeStep <= 0:
		return fmt.Errorf("%w: fixed time step %v", ErrInvalid, c.Physics.FixedTimeStep)
	case c.Physics.MaxSubSteps < 0:
		return fmt.Errorf("%w: max sub steps %d", ErrInvalid, c.Physics.MaxSubSteps)
	case c.Physics.SolverIterations < 1:
		return fmt.Errorf("%w: solver iterations %d", ErrInvalid, c.Physics.SolverIterations)
	case c.Physics.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Physics.Workers)
	}
	return nil
}
