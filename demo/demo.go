// Package demo holds the application state of the physics demo: the scene it
// shows, the physics world behind it and the per-frame step that ties them.
package demo

import (
	"context"
	"fmt"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/Carmen-Shannon/oxy-physics/config"
	"github.com/Carmen-Shannon/oxy-physics/engine/camera"
	"github.com/Carmen-Shannon/oxy-physics/engine/light"
	"github.com/Carmen-Shannon/oxy-physics/engine/mesh"
	"github.com/Carmen-Shannon/oxy-physics/engine/physics"
	"github.com/Carmen-Shannon/oxy-physics/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// initialAspect is used until the first resize reports the real framebuffer.
const initialAspect = float32(1920) / float32(1080)

// Shape selects the collision shape and geometry of a body.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeSphere
)

// BodySpec describes one dynamic object: its mesh and, in the physics variant, its body.
type BodySpec struct {
	Name     string
	Shape    Shape
	Size     float32 // edge length for boxes, radius for spheres
	Mass     float32
	Position mgl32.Vec3
	Color    uint32

	Restitution     float32
	Friction        float32
	RollingFriction float32

	// PhysicsOnly objects are left out of the scene when physics is disabled.
	PhysicsOnly bool
}

// DefaultBodies is the box shown in every variant plus the sphere dropped onto
// it when physics is enabled.
func DefaultBodies() []BodySpec {
	return []BodySpec{
		{
			Name:        "box",
			Shape:       ShapeBox,
			Size:        4,
			Mass:        10,
			Position:    mgl32.Vec3{0, 40, 0},
			Color:       0xFFFFFF,
			Restitution: 0.2,
			Friction:    0.8,
		},
		{
			Name:            "sphere",
			Shape:           ShapeSphere,
			Size:            2,
			Mass:            5,
			Position:        mgl32.Vec3{1, 60, 0.5},
			Color:           0xFF8040,
			Restitution:     0.5,
			Friction:        0.5,
			RollingFriction: 0.05,
			PhysicsOnly:     true,
		},
	}
}

// Demo is the explicitly owned application state handed to the frame loop.
type Demo struct {
	cfg    config.Config
	bodies []BodySpec

	scene  scene.Scene
	ground mesh.Mesh
	meshes []mesh.Mesh

	world   physics.World
	pairs   []TrackedPair
	scratch physics.Transform

	clock   FrameClock
	started bool
}

// New builds the scene described by cfg. Physics is not touched until Start.
//
// Parameters:
//   - cfg: a validated configuration
//   - options: functional options for the demo
//
// Returns:
//   - *Demo: the demo with its scene ready to render
func New(cfg config.Config, options ...DemoBuilderOption) *Demo {
	d := &Demo{
		cfg:     cfg,
		bodies:  DefaultBodies(),
		clock:   NewFrameClock(),
		scratch: physics.IdentityTransform(),
	}
	for _, opt := range options {
		opt(d)
	}
	d.buildScene()
	return d
}

func (d *Demo) buildScene() {
	cc := d.cfg.Camera
	ctrl := camera.NewOrbitController(
		camera.WithPosition(mgl32.Vec3(cc.Position)),
		camera.WithTarget(mgl32.Vec3(cc.Target)),
	)
	cam := camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(cc.FovDegrees)),
		camera.WithAspect(initialAspect),
		camera.WithNear(cc.Near),
		camera.WithFar(cc.Far),
		camera.WithController(ctrl),
	)

	lc := d.cfg.Light
	sun := light.NewDirectionalLight(
		light.WithPosition(mgl32.Vec3(lc.Position)),
		light.WithTarget(mgl32.Vec3(lc.Target)),
		light.WithColor(common.ColorFromHex(lc.Color)),
		light.WithIntensity(lc.Intensity),
		light.WithCastShadow(lc.Shadow.Enabled),
		light.WithShadow(light.ShadowConfig{
			Bias:    lc.Shadow.Bias,
			MapSize: uint32(lc.Shadow.MapSize),
			Near:    lc.Shadow.Near,
			Far:     lc.Shadow.Far,
			Left:    lc.Shadow.Left,
			Right:   lc.Shadow.Right,
			Top:     lc.Shadow.Top,
			Bottom:  lc.Shadow.Bottom,
		}),
	)

	gs := d.cfg.Scene.GroundSize
	d.ground = mesh.NewMesh(mesh.NewBoxGeometry(gs[0], gs[1], gs[2]),
		mesh.WithName("ground"),
		mesh.WithColor(common.ColorFromHex(d.cfg.Scene.GroundColor)),
		mesh.WithShadows(false, true),
	)

	d.scene = scene.NewScene("physics-demo", cam,
		scene.WithActive(true),
		scene.WithLight(sun),
		scene.WithBackground(common.ColorFromHex(d.cfg.Scene.Background)),
		scene.WithAmbient(0.25),
		scene.WithMeshes(d.ground),
	)

	groundTop := gs[1] / 2
	for _, b := range d.bodies {
		if b.PhysicsOnly && !d.cfg.Physics.Enabled {
			continue
		}
		pos := b.Position
		if !d.cfg.Physics.Enabled {
			// nothing will drop it, so rest it on the ground
			pos = mgl32.Vec3{pos.X(), groundTop + b.halfHeight(), pos.Z()}
		}
		m := mesh.NewMesh(b.geometry(),
			mesh.WithName(b.Name),
			mesh.WithColor(common.ColorFromHex(b.Color)),
			mesh.WithPosition(pos),
			mesh.WithShadows(true, true),
		)
		d.meshes = append(d.meshes, m)
		d.scene.Add(m)
	}
}

func (b BodySpec) geometry() *mesh.Geometry {
	if b.Shape == ShapeSphere {
		return mesh.NewSphereGeometry(b.Size, 32, 16)
	}
	return mesh.NewBoxGeometry(b.Size, b.Size, b.Size)
}

func (b BodySpec) halfHeight() float32 {
	if b.Shape == ShapeSphere {
		return b.Size
	}
	return b.Size / 2
}

func (b BodySpec) newBody(rotation mgl32.Quat) physics.RigidBody {
	if b.Shape == ShapeSphere {
		return physics.NewSphere(b.Mass, b.Position, rotation, b.Size)
	}
	h := b.Size / 2
	return physics.NewBox(b.Mass, b.Position, rotation, mgl32.Vec3{h, h, h})
}

// Start runs the physics initialization phase and must complete before the
// frame loop begins. With physics disabled it only marks the demo started.
// Calling Start again after a success is a no-op.
//
// Parameters:
//   - ctx: bounds the initialization phase
//
// Returns:
//   - error: an *InitError wrapping the cause if the world could not be created
//     or ctx ended first
func (d *Demo) Start(ctx context.Context) error {
	if d.started {
		return nil
	}
	if !d.cfg.Physics.Enabled {
		d.started = true
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &InitError{Phase: "physics", Err: err}
	}

	type result struct {
		world physics.World
		err   error
	}
	done := make(chan result, 1)
	go func() {
		w, err := d.newWorld()
		done <- result{w, err}
	}()

	select {
	case <-ctx.Done():
		return &InitError{Phase: "physics", Err: ctx.Err()}
	case r := <-done:
		if r.err != nil {
			return &InitError{Phase: "physics", Err: r.err}
		}
		d.world = r.world
	}

	d.populateWorld()
	d.started = true
	common.Logger().Debug("demo: tracked pairs", "pairs", len(d.pairs))
	return nil
}

func (d *Demo) newWorld() (physics.World, error) {
	pc := d.cfg.Physics
	w, err := physics.NewWorld(
		physics.WithGravity(mgl32.Vec3(pc.Gravity)),
		physics.WithFixedTimeStep(pc.FixedTimeStep),
		physics.WithSolverIterations(pc.SolverIterations),
		physics.WithWorkers(pc.Workers),
	)
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}
	return w, nil
}

// populateWorld adds the static ground and one dynamic body per mesh.
func (d *Demo) populateWorld() {
	gs := d.cfg.Scene.GroundSize
	ground := physics.NewBox(0, d.ground.Position(), d.ground.Rotation(), mgl32.Vec3{gs[0] / 2, gs[1] / 2, gs[2] / 2})
	d.world.AddRigidBody(ground)
	d.pairs = append(d.pairs, TrackedPair{Mesh: d.ground, Body: ground})

	for i, b := range d.bodies {
		m := d.meshes[i]
		body := b.newBody(m.Rotation())
		body.SetRestitution(b.Restitution)
		body.SetFriction(b.Friction)
		body.SetRollingFriction(b.RollingFriction)
		d.world.AddRigidBody(body)
		d.pairs = append(d.pairs, TrackedPair{Mesh: m, Body: body})
	}
}

// Step advances one frame: the frame clock, then the physics world by dt with
// at most the configured number of sub-steps, then every tracked mesh.
//
// Parameters:
//   - dt: elapsed wall-clock seconds since the previous frame
func (d *Demo) Step(dt float32) {
	if d.clock.Advance(dt) {
		common.Logger().Debug("spawn tick", "count", d.clock.Count())
	}
	if d.world == nil {
		return
	}
	d.world.StepSimulation(dt, d.cfg.Physics.MaxSubSteps)
	syncPairs(d.pairs, &d.scratch)
}

// Close stops the physics world's worker pool. The demo can still be stepped.
func (d *Demo) Close() {
	if d.world != nil {
		d.world.Close()
	}
}

// Scene returns the scene to render.
func (d *Demo) Scene() scene.Scene { return d.scene }

// World returns the physics world, or nil before Start or with physics disabled.
func (d *Demo) World() physics.World { return d.world }

// Pairs returns the tracked mesh/body pairs, ground first.
func (d *Demo) Pairs() []TrackedPair { return d.pairs }

// Clock returns the current frame clock state.
func (d *Demo) Clock() FrameClock { return d.clock }

// Started reports whether Start has completed successfully.
func (d *Demo) Started() bool { return d.started }
