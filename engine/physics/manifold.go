package physics

import "github.com/go-gl/mathgl/mgl32"

const maxFrictionCoefficient float32 = 10

// ContactPoint is a single point of contact between two bodies.
// Normal points from body A towards body B. Depth is positive when the
// shapes interpenetrate and negative while they are still separated but
// within the contact threshold.
type ContactPoint struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Depth    float32

	rA, rB         mgl32.Vec3
	normalMass     float32
	tangents       [2]mgl32.Vec3
	tangentMass    [2]float32
	targetVelocity float32
	normalImpulse  float32
	tangentImpulse [2]float32
}

// NormalImpulse returns the accumulated normal impulse from the last solve.
func (c *ContactPoint) NormalImpulse() float32 { return c.normalImpulse }

// Manifold holds the contact points found between one pair of bodies during a sub-step.
type Manifold struct {
	bodyA  *rigidBody
	bodyB  *rigidBody
	Points []ContactPoint

	friction        float32
	restitution     float32
	rollingFriction float32
	rollingImpulse  mgl32.Vec3
}

// BodyA returns the first body of the pair.
func (m *Manifold) BodyA() RigidBody { return m.bodyA }

// BodyB returns the second body of the pair.
func (m *Manifold) BodyB() RigidBody { return m.bodyB }

// NumContacts returns the number of contact points.
func (m *Manifold) NumContacts() int { return len(m.Points) }

func newManifold(a, b *rigidBody) *Manifold {
	return &Manifold{
		bodyA:           a,
		bodyB:           b,
		friction:        a.friction * b.friction,
		restitution:     a.restitution * b.restitution,
		rollingFriction: combineRollingFriction(a, b),
	}
}

// combineRollingFriction lets one rolling body on a plain surface still roll to a stop.
func combineRollingFriction(a, b *rigidBody) float32 {
	return mgl32.Clamp(a.rollingFriction*b.friction+b.rollingFriction*a.friction, -maxFrictionCoefficient, maxFrictionCoefficient)
}

func (m *Manifold) addPoint(position, normal mgl32.Vec3, depth float32) {
	m.Points = append(m.Points, ContactPoint{Position: position, Normal: normal, Depth: depth})
}

// swap exchanges the roles of A and B, flipping every normal.
func (m *Manifold) swap() {
	m.bodyA, m.bodyB = m.bodyB, m.bodyA
	for i := range m.Points {
		m.Points[i].Normal = m.Points[i].Normal.Mul(-1)
	}
}
