package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ConstraintSolver resolves contact constraints by adjusting body velocities.
type ConstraintSolver interface {
	// SolveGroup computes and applies contact impulses for one sub-step.
	//
	// Parameters:
	//   - manifolds: the contacts found this sub-step
	//   - dt: the sub-step length in seconds
	SolveGroup(manifolds []*Manifold, dt float32)
}

// SequentialImpulseSolver is a projected Gauss-Seidel contact solver with
// accumulated impulses, Coulomb friction and rolling friction.
type SequentialImpulseSolver struct {
	// Iterations is the number of passes over all contacts.
	Iterations int
	// ERP is the fraction of penetration removed per sub-step.
	ERP float32
	// Slop is the penetration depth tolerated without correction.
	Slop float32
	// RestitutionThreshold is the closing speed below which contacts do not bounce.
	RestitutionThreshold float32
}

var _ ConstraintSolver = &SequentialImpulseSolver{}

// NewSequentialImpulseSolver creates a solver with the given iteration count.
//
// Parameters:
//   - iterations: passes over the contact set per sub-step (minimum 1)
//
// Returns:
//   - *SequentialImpulseSolver: the solver
func NewSequentialImpulseSolver(iterations int) *SequentialImpulseSolver {
	return &SequentialImpulseSolver{
		Iterations:           max(iterations, 1),
		ERP:                  0.2,
		Slop:                 0.01,
		RestitutionThreshold: 1,
	}
}

func (s *SequentialImpulseSolver) SolveGroup(manifolds []*Manifold, dt float32) {
	if dt <= 0 || len(manifolds) == 0 {
		return
	}
	for _, m := range manifolds {
		s.setup(m, dt)
	}
	for it := 0; it < s.Iterations; it++ {
		for _, m := range manifolds {
			s.solveManifold(m)
		}
	}
}

func (s *SequentialImpulseSolver) setup(m *Manifold, dt float32) {
	a, b := m.bodyA, m.bodyB
	for i := range m.Points {
		c := &m.Points[i]
		c.rA = c.Position.Sub(a.transform.Origin)
		c.rB = c.Position.Sub(b.transform.Origin)
		c.normalMass = inverseOrZero(effectiveMass(a, b, c.rA, c.rB, c.Normal))
		c.tangents[0], c.tangents[1] = planeSpace(c.Normal)
		for k := 0; k < 2; k++ {
			c.tangentMass[k] = inverseOrZero(effectiveMass(a, b, c.rA, c.rB, c.tangents[k]))
		}

		if c.Depth < 0 {
			// still apart: allow closing exactly the remaining gap this sub-step
			c.targetVelocity = c.Depth / dt
		} else {
			c.targetVelocity = s.ERP * max(c.Depth-s.Slop, 0) / dt
		}

		vn := b.velocityAt(c.rB).Sub(a.velocityAt(c.rA)).Dot(c.Normal)
		if vn < -s.RestitutionThreshold && m.restitution > 0 {
			c.targetVelocity = max(c.targetVelocity, -m.restitution*vn)
		}
		c.normalImpulse = 0
		c.tangentImpulse = [2]float32{}
	}
	m.rollingImpulse = mgl32.Vec3{}
}

func (s *SequentialImpulseSolver) solveManifold(m *Manifold) {
	a, b := m.bodyA, m.bodyB

	var totalNormal float32
	for i := range m.Points {
		c := &m.Points[i]

		vn := b.velocityAt(c.rB).Sub(a.velocityAt(c.rA)).Dot(c.Normal)
		lambda := c.normalMass * (c.targetVelocity - vn)
		prev := c.normalImpulse
		c.normalImpulse = max(prev+lambda, 0)
		applyPairImpulse(a, b, c.Normal.Mul(c.normalImpulse-prev), c.rA, c.rB)
		totalNormal += c.normalImpulse

		limit := m.friction * c.normalImpulse
		for k := 0; k < 2; k++ {
			t := c.tangents[k]
			vt := b.velocityAt(c.rB).Sub(a.velocityAt(c.rA)).Dot(t)
			lambda := -c.tangentMass[k] * vt
			prev := c.tangentImpulse[k]
			c.tangentImpulse[k] = mgl32.Clamp(prev+lambda, -limit, limit)
			applyPairImpulse(a, b, t.Mul(c.tangentImpulse[k]-prev), c.rA, c.rB)
		}
	}

	if m.rollingFriction > 0 && totalNormal > 0 {
		s.solveRolling(m, totalNormal)
	}
}

// solveRolling damps relative angular velocity, bounded by rolling friction times the normal impulse.
func (s *SequentialImpulseSolver) solveRolling(m *Manifold, totalNormal float32) {
	a, b := m.bodyA, m.bodyB
	rel := b.angularVelocity.Sub(a.angularVelocity)
	speed := rel.Len()
	if speed < 1e-6 {
		return
	}
	axis := rel.Mul(1 / speed)
	k := axis.Dot(a.invInertiaWorld.Mul3x1(axis)) + axis.Dot(b.invInertiaWorld.Mul3x1(axis))
	if k <= 0 {
		return
	}

	prev := m.rollingImpulse
	next := prev.Sub(axis.Mul(speed / k))
	limit := m.rollingFriction * totalNormal
	if l := next.Len(); l > limit {
		next = next.Mul(limit / l)
	}
	m.rollingImpulse = next
	delta := next.Sub(prev)
	b.applyTorqueImpulse(delta)
	a.applyTorqueImpulse(delta.Mul(-1))
}

func applyPairImpulse(a, b *rigidBody, impulse, rA, rB mgl32.Vec3) {
	b.applyImpulse(impulse, rB)
	a.applyImpulse(impulse.Mul(-1), rA)
}

func effectiveMass(a, b *rigidBody, rA, rB, dir mgl32.Vec3) float32 {
	ra := rA.Cross(dir)
	rb := rB.Cross(dir)
	return a.invMass + b.invMass +
		ra.Dot(a.invInertiaWorld.Mul3x1(ra)) +
		rb.Dot(b.invInertiaWorld.Mul3x1(rb))
}

func inverseOrZero(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return 1 / v
}

// planeSpace returns two unit vectors orthogonal to n and to each other.
func planeSpace(n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	var p mgl32.Vec3
	if math32.Abs(n[2]) > 0.70710678 {
		l := math32.Sqrt(n[1]*n[1] + n[2]*n[2])
		p = mgl32.Vec3{0, -n[2] / l, n[1] / l}
	} else {
		l := math32.Sqrt(n[0]*n[0] + n[1]*n[1])
		p = mgl32.Vec3{-n[1] / l, n[0] / l, 0}
	}
	return p, n.Cross(p)
}
