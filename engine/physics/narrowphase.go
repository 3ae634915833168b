package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// collisionFunc generates contacts between two bodies whose shape types match the
// dispatch table entry. It returns nil when the shapes are farther apart than the
// contact threshold.
type collisionFunc func(a, b *rigidBody) *Manifold

// edgeAxisTolerance makes face axes win over nearly equal edge-edge axes,
// which keeps resting boxes from flickering between contact configurations.
const edgeAxisTolerance float32 = 0.95

func contactThreshold(a, b *rigidBody) float32 {
	return a.shape.Margin() + b.shape.Margin()
}

func collideSphereSphere(a, b *rigidBody) *Manifold {
	ra := a.shape.(*SphereShape).radius
	rb := b.shape.(*SphereShape).radius
	d := b.transform.Origin.Sub(a.transform.Origin)
	dist := d.Len()
	depth := ra + rb - dist
	if depth < -contactThreshold(a, b) {
		return nil
	}

	normal := mgl32.Vec3{0, 1, 0}
	if dist > mgl32.Epsilon {
		normal = d.Mul(1 / dist)
	}
	point := a.transform.Origin.Add(normal.Mul(ra - depth*0.5))

	m := newManifold(a, b)
	m.addPoint(point, normal, depth)
	return m
}

// collideBoxSphere expects a to be the box and b the sphere.
func collideBoxSphere(a, b *rigidBody) *Manifold {
	he := a.shape.(*BoxShape).halfExtents
	r := b.shape.(*SphereShape).radius
	center := a.transform.InverseApply(b.transform.Origin)

	closest := mgl32.Vec3{
		mgl32.Clamp(center[0], -he[0], he[0]),
		mgl32.Clamp(center[1], -he[1], he[1]),
		mgl32.Clamp(center[2], -he[2], he[2]),
	}

	var localNormal mgl32.Vec3
	var depth float32
	diff := center.Sub(closest)
	dist := diff.Len()
	if dist <= mgl32.Epsilon {
		// sphere center inside the box: push out through the nearest face
		axis := 0
		best := he[0] - math32.Abs(center[0])
		for i := 1; i < 3; i++ {
			if d := he[i] - math32.Abs(center[i]); d < best {
				best, axis = d, i
			}
		}
		sign := float32(1)
		if center[axis] < 0 {
			sign = -1
		}
		localNormal[axis] = sign
		closest[axis] = sign * he[axis]
		depth = best + r
	} else {
		localNormal = diff.Mul(1 / dist)
		depth = r - dist
	}
	if depth < -contactThreshold(a, b) {
		return nil
	}

	normal := a.transform.Rotation.Rotate(localNormal)
	m := newManifold(a, b)
	m.addPoint(a.transform.Apply(closest), normal, depth)
	return m
}

type orientedBox struct {
	center mgl32.Vec3
	axes   [3]mgl32.Vec3
	he     mgl32.Vec3
}

func newOrientedBox(b *rigidBody) orientedBox {
	basis := b.transform.Basis()
	return orientedBox{
		center: b.transform.Origin,
		axes:   [3]mgl32.Vec3{basis.Col(0), basis.Col(1), basis.Col(2)},
		he:     b.shape.(*BoxShape).halfExtents,
	}
}

// projectedRadius is the half length of the box's shadow on axis.
func (o *orientedBox) projectedRadius(axis mgl32.Vec3) float32 {
	return o.he[0]*math32.Abs(o.axes[0].Dot(axis)) +
		o.he[1]*math32.Abs(o.axes[1].Dot(axis)) +
		o.he[2]*math32.Abs(o.axes[2].Dot(axis))
}

func (o *orientedBox) support(dir mgl32.Vec3) mgl32.Vec3 {
	p := o.center
	for i := 0; i < 3; i++ {
		if o.axes[i].Dot(dir) >= 0 {
			p = p.Add(o.axes[i].Mul(o.he[i]))
		} else {
			p = p.Sub(o.axes[i].Mul(o.he[i]))
		}
	}
	return p
}

func (o *orientedBox) vertices() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := 0; i < 8; i++ {
		p := o.center
		for k := 0; k < 3; k++ {
			s := o.he[k]
			if i&(1<<k) != 0 {
				s = -s
			}
			p = p.Add(o.axes[k].Mul(s))
		}
		out[i] = p
	}
	return out
}

func (o *orientedBox) contains(p mgl32.Vec3, tolerance float32) bool {
	d := p.Sub(o.center)
	for i := 0; i < 3; i++ {
		if math32.Abs(d.Dot(o.axes[i])) > o.he[i]+tolerance {
			return false
		}
	}
	return true
}

// collideBoxBox runs a separating axis test over the 15 candidate axes and,
// when the boxes touch, collects the vertices of each box that lie inside the other.
func collideBoxBox(a, b *rigidBody) *Manifold {
	threshold := contactThreshold(a, b)
	oa := newOrientedBox(a)
	ob := newOrientedBox(b)
	d := ob.center.Sub(oa.center)

	bestOverlap := math32.Inf(1)
	var bestAxis mgl32.Vec3
	test := func(axis mgl32.Vec3, edge bool) bool {
		l := axis.Len()
		if l < 1e-5 {
			return true
		}
		axis = axis.Mul(1 / l)
		overlap := oa.projectedRadius(axis) + ob.projectedRadius(axis) - math32.Abs(d.Dot(axis))
		if overlap < -threshold {
			return false
		}
		if edge && overlap >= bestOverlap*edgeAxisTolerance {
			return true
		}
		if overlap < bestOverlap {
			bestOverlap = overlap
			bestAxis = axis
		}
		return true
	}

	for i := 0; i < 3; i++ {
		if !test(oa.axes[i], false) || !test(ob.axes[i], false) {
			return nil
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !test(oa.axes[i].Cross(ob.axes[j]), true) {
				return nil
			}
		}
	}

	normal := bestAxis
	if d.Dot(normal) < 0 {
		normal = normal.Mul(-1)
	}

	m := newManifold(a, b)
	topA := oa.center.Dot(normal) + oa.projectedRadius(normal)
	for _, v := range ob.vertices() {
		if oa.contains(v, threshold) {
			m.addPoint(v, normal, topA-v.Dot(normal))
		}
	}
	bottomB := ob.center.Dot(normal) - ob.projectedRadius(normal)
	for _, v := range oa.vertices() {
		if ob.contains(v, threshold) {
			m.addPoint(v, normal, v.Dot(normal)-bottomB)
		}
	}

	if len(m.Points) == 0 {
		// edge against edge: place a single point between the two deepest features
		pa := oa.support(normal)
		pb := ob.support(normal.Mul(-1))
		m.addPoint(pa.Add(pb).Mul(0.5), normal, bestOverlap)
	}
	return m
}
