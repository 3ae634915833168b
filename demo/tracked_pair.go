package demo

import (
	"github.com/Carmen-Shannon/oxy-physics/engine/mesh"
	"github.com/Carmen-Shannon/oxy-physics/engine/physics"
)

// TrackedPair links a rigid body to the mesh it drives.
// Data flows one way: the body's world transform is copied onto the mesh, never back.
type TrackedPair struct {
	Mesh mesh.Mesh
	Body physics.RigidBody
}

// syncPairs copies each body's motion-state transform onto its mesh through scratch.
func syncPairs(pairs []TrackedPair, scratch *physics.Transform) {
	for _, p := range pairs {
		p.Body.MotionState().WorldTransform(scratch)
		p.Mesh.SetPosition(scratch.Origin)
		p.Mesh.SetRotation(scratch.Rotation)
	}
}
