package physics

// MotionState is the handle used to query and write a rigid body's world transform.
// The world writes the body transform into the motion state after every step, and
// callers read it back to drive visuals.
type MotionState interface {
	// WorldTransform copies the current world transform into out.
	// Writing into a caller-owned value lets callers reuse one scratch transform across frames.
	//
	// Parameters:
	//   - out: destination transform (must not be nil)
	WorldTransform(out *Transform)

	// SetWorldTransform stores a new world transform.
	//
	// Parameters:
	//   - t: the transform to store
	SetWorldTransform(t Transform)
}

type defaultMotionState struct {
	graphicsWorldTrans Transform
	startWorldTrans    Transform
}

var _ MotionState = &defaultMotionState{}

// NewDefaultMotionState creates a MotionState that simply stores the last written transform.
//
// Parameters:
//   - start: the initial world transform
//
// Returns:
//   - MotionState: the motion state
func NewDefaultMotionState(start Transform) MotionState {
	return &defaultMotionState{
		graphicsWorldTrans: start,
		startWorldTrans:    start,
	}
}

func (m *defaultMotionState) WorldTransform(out *Transform) {
	*out = m.graphicsWorldTrans
}

func (m *defaultMotionState) SetWorldTransform(t Transform) {
	m.graphicsWorldTrans = t
}
