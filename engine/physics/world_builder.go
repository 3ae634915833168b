package physics

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-physics/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// WorldBuilderOption configures a World during construction.
type WorldBuilderOption func(*world)

// WithGravity sets the world gravity.
//
// Parameters:
//   - g: acceleration applied to every dynamic body
//
// Returns:
//   - WorldBuilderOption: the option
func WithGravity(g mgl32.Vec3) WorldBuilderOption {
	return func(w *world) {
		w.gravity = g
	}
}

// WithFixedTimeStep sets the internal sub-step length in seconds.
//
// Parameters:
//   - dt: the sub-step length (must be > 0)
//
// Returns:
//   - WorldBuilderOption: the option
func WithFixedTimeStep(dt float32) WorldBuilderOption {
	return func(w *world) {
		w.fixedTimeStep = dt
	}
}

// WithSolverIterations sets the contact solver pass count used by the default solver.
//
// Parameters:
//   - n: passes per sub-step (must be > 0)
//
// Returns:
//   - WorldBuilderOption: the option
func WithSolverIterations(n int) WorldBuilderOption {
	return func(w *world) {
		w.solverIterations = n
	}
}

// WithWorkers sets the narrow-phase worker count. Zero picks a count from the CPU count.
//
// Parameters:
//   - n: number of workers (must be >= 0)
//
// Returns:
//   - WorldBuilderOption: the option
func WithWorkers(n int) WorldBuilderOption {
	return func(w *world) {
		w.workers = n
	}
}

// WithBroadphase replaces the default sweep-and-prune broadphase.
func WithBroadphase(b Broadphase) WorldBuilderOption {
	return func(w *world) {
		w.broadphase = b
	}
}

// WithSolver replaces the default sequential impulse solver.
func WithSolver(s ConstraintSolver) WorldBuilderOption {
	return func(w *world) {
		w.solver = s
	}
}

// NewWorld creates a dynamics world. Settings are validated after all options
// are applied; a bad setting returns an error wrapping ErrInvalidConfig.
//
// Parameters:
//   - options: builder options
//
// Returns:
//   - World: the world
//   - error: non-nil if the configuration is invalid
func NewWorld(options ...WorldBuilderOption) (World, error) {
	w := &world{
		gravity:          DefaultGravity,
		fixedTimeStep:    DefaultFixedTimeStep,
		solverIterations: DefaultSolverIterations,
	}
	for _, opt := range options {
		opt(w)
	}

	if err := w.validate(); err != nil {
		return nil, err
	}

	if w.broadphase == nil {
		w.broadphase = NewSweepAndPrune()
	}
	if w.solver == nil {
		w.solver = NewSequentialImpulseSolver(w.solverIterations)
	}
	w.dispatcher = NewCollisionDispatcher(w.workers)

	common.Logger().Info("physics: world ready",
		"gravity", w.gravity,
		"fixedTimeStep", w.fixedTimeStep,
		"solverIterations", w.solverIterations,
		"workers", w.dispatcher.NumWorkers(),
	)
	return w, nil
}

func (w *world) validate() error {
	if !finite(w.fixedTimeStep) || w.fixedTimeStep <= 0 {
		return fmt.Errorf("%w: fixed time step %v must be positive", ErrInvalidConfig, w.fixedTimeStep)
	}
	for i := 0; i < 3; i++ {
		if !finite(w.gravity[i]) {
			return fmt.Errorf("%w: gravity %v must be finite", ErrInvalidConfig, w.gravity)
		}
	}
	if w.solverIterations < 1 {
		return fmt.Errorf("%w: solver iterations %d must be at least 1", ErrInvalidConfig, w.solverIterations)
	}
	if w.workers < 0 {
		return fmt.Errorf("%w: worker count %d must not be negative", ErrInvalidConfig, w.workers)
	}
	return nil
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
