package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asBody(t *testing.T, b RigidBody) *rigidBody {
	t.Helper()
	rb, ok := b.(*rigidBody)
	require.True(t, ok)
	return rb
}

func TestCollideSphereSphere(t *testing.T) {
	a := asBody(t, NewSphere(1, mgl32.Vec3{}, mgl32.QuatIdent(), 1))
	b := asBody(t, NewSphere(1, mgl32.Vec3{1.5, 0, 0}, mgl32.QuatIdent(), 1))

	m := collideSphereSphere(a, b)
	require.NotNil(t, m)
	require.Len(t, m.Points, 1)
	assert.InDelta(t, 0.5, m.Points[0].Depth, 1e-5)
	assert.True(t, m.Points[0].Normal.ApproxEqual(mgl32.Vec3{1, 0, 0}))

	far := asBody(t, NewSphere(1, mgl32.Vec3{5, 0, 0}, mgl32.QuatIdent(), 1))
	assert.Nil(t, collideSphereSphere(a, far))
}

func TestCollideBoxSphereFromAbove(t *testing.T) {
	box := asBody(t, NewBox(0, mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{2, 0.5, 2}))
	sphere := asBody(t, NewSphere(1, mgl32.Vec3{0.5, 1.4, 0}, mgl32.QuatIdent(), 1))

	m := collideBoxSphere(box, sphere)
	require.NotNil(t, m)
	require.Len(t, m.Points, 1)
	c := m.Points[0]
	assert.True(t, c.Normal.ApproxEqual(mgl32.Vec3{0, 1, 0}))
	assert.InDelta(t, 0.1, c.Depth, 1e-5)
	assert.True(t, c.Position.ApproxEqual(mgl32.Vec3{0.5, 0.5, 0}))
}

func TestCollideBoxSphereCenterInside(t *testing.T) {
	box := asBody(t, NewBox(0, mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{2, 0.5, 2}))
	sphere := asBody(t, NewSphere(1, mgl32.Vec3{0, 0.25, 0}, mgl32.QuatIdent(), 1))

	m := collideBoxSphere(box, sphere)
	require.NotNil(t, m)
	assert.True(t, m.Points[0].Normal.ApproxEqual(mgl32.Vec3{0, 1, 0}))
	assert.InDelta(t, 1.25, m.Points[0].Depth, 1e-5)
}

func TestCollideBoxBoxStacked(t *testing.T) {
	ground := asBody(t, NewBox(0, mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{5, 0.5, 5}))
	box := asBody(t, NewBox(1, mgl32.Vec3{0, 1.45, 0}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}))

	m := collideBoxBox(ground, box)
	require.NotNil(t, m)
	require.Len(t, m.Points, 4)
	for _, c := range m.Points {
		assert.True(t, c.Normal.ApproxEqual(mgl32.Vec3{0, 1, 0}))
		assert.InDelta(t, 0.05, c.Depth, 1e-5)
		assert.InDelta(t, 0.45, c.Position[1], 1e-5)
	}
}

func TestCollideBoxBoxSeparated(t *testing.T) {
	a := asBody(t, NewBox(0, mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}))
	b := asBody(t, NewBox(1, mgl32.Vec3{3, 0, 0}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}))
	assert.Nil(t, collideBoxBox(a, b))
}

func TestDispatcherSwapsReversedPairs(t *testing.T) {
	d := NewCollisionDispatcher(1)
	sphere := asBody(t, NewSphere(1, mgl32.Vec3{0, 1.4, 0}, mgl32.QuatIdent(), 1))
	box := asBody(t, NewBox(0, mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{2, 0.5, 2}))

	m := d.collide(sphere, box)
	require.NotNil(t, m)
	assert.Same(t, sphere, m.BodyA())
	assert.Same(t, box, m.BodyB())
	assert.True(t, m.Points[0].Normal.ApproxEqual(mgl32.Vec3{0, -1, 0}))
}

func TestDispatcherParallelMatchesSerial(t *testing.T) {
	var bodies []*rigidBody
	for i := 0; i < 40; i++ {
		x := float32(i) * 0.1
		bodies = append(bodies, asBody(t, NewSphere(1, mgl32.Vec3{x, 0, 0}, mgl32.QuatIdent(), 1)))
	}
	var pairs []BroadphasePair
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			pairs = append(pairs, BroadphasePair{A: i, B: j})
		}
	}
	require.Greater(t, len(pairs), parallelPairThreshold)

	serial := NewCollisionDispatcher(1).dispatchAllCollisionPairs(bodies, pairs)
	parallel := NewCollisionDispatcher(4).dispatchAllCollisionPairs(bodies, pairs)

	require.Len(t, parallel, len(serial))
	for i := range serial {
		assert.Same(t, serial[i].bodyA, parallel[i].bodyA)
		assert.Same(t, serial[i].bodyB, parallel[i].bodyB)
		assert.Equal(t, serial[i].Points, parallel[i].Points)
	}
}

func TestCombinedMaterialProperties(t *testing.T) {
	a := asBody(t, NewSphere(1, mgl32.Vec3{}, mgl32.QuatIdent(), 1))
	b := asBody(t, NewSphere(1, mgl32.Vec3{}, mgl32.QuatIdent(), 1))
	a.SetFriction(0.5)
	b.SetFriction(0.4)
	a.SetRestitution(0.5)
	b.SetRestitution(0.5)
	a.SetRollingFriction(0.1)

	m := newManifold(a, b)
	assert.InDelta(t, 0.2, m.friction, 1e-6)
	assert.InDelta(t, 0.25, m.restitution, 1e-6)
	assert.InDelta(t, 0.04, m.rollingFriction, 1e-6)
}

func TestDispatcherRunsInlineAfterClose(t *testing.T) {
	var bodies []*rigidBody
	for i := 0; i < 20; i++ {
		bodies = append(bodies, asBody(t, NewSphere(1, mgl32.Vec3{float32(i) * 0.1, 0, 0}, mgl32.QuatIdent(), 1)))
	}
	var pairs []BroadphasePair
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			pairs = append(pairs, BroadphasePair{A: i, B: j})
		}
	}
	require.Greater(t, len(pairs), parallelPairThreshold)

	d := NewCollisionDispatcher(4)
	before := d.dispatchAllCollisionPairs(bodies, pairs)
	d.Close()
	assert.NotPanics(t, d.Close)

	after := d.dispatchAllCollisionPairs(bodies, pairs)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Points, after[i].Points)
	}
}
