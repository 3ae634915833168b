package physics

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// BroadphaseProxy is the axis-aligned bounds of one body as seen by a Broadphase.
type BroadphaseProxy struct {
	Index  int
	Min    mgl32.Vec3
	Max    mgl32.Vec3
	Static bool
}

// BroadphasePair names two proxies (by Index) whose bounds overlap. A < B always holds.
type BroadphasePair struct {
	A int
	B int
}

// Broadphase finds candidate collision pairs from bounding boxes.
type Broadphase interface {
	// CalculateOverlappingPairs returns every pair of proxies whose bounds overlap.
	// Pairs where both proxies are static are never reported.
	//
	// Parameters:
	//   - proxies: the bounds of every body in the world
	//
	// Returns:
	//   - []BroadphasePair: overlapping pairs sorted by (A, B)
	CalculateOverlappingPairs(proxies []BroadphaseProxy) []BroadphasePair
}

type sweepAndPrune struct {
	order []int
	pairs []BroadphasePair
}

var _ Broadphase = &sweepAndPrune{}

// NewSweepAndPrune creates a broadphase that sorts proxies along the X axis and
// sweeps for overlaps. Scratch storage is reused between calls.
//
// Returns:
//   - Broadphase: the broadphase
func NewSweepAndPrune() Broadphase {
	return &sweepAndPrune{}
}

func (s *sweepAndPrune) CalculateOverlappingPairs(proxies []BroadphaseProxy) []BroadphasePair {
	s.order = s.order[:0]
	for i := range proxies {
		s.order = append(s.order, i)
	}
	sort.SliceStable(s.order, func(i, j int) bool {
		return proxies[s.order[i]].Min[0] < proxies[s.order[j]].Min[0]
	})

	s.pairs = s.pairs[:0]
	for i, oi := range s.order {
		a := &proxies[oi]
		for _, oj := range s.order[i+1:] {
			b := &proxies[oj]
			if b.Min[0] > a.Max[0] {
				break
			}
			if a.Static && b.Static {
				continue
			}
			if !overlaps(a, b) {
				continue
			}
			p := BroadphasePair{A: a.Index, B: b.Index}
			if p.A > p.B {
				p.A, p.B = p.B, p.A
			}
			s.pairs = append(s.pairs, p)
		}
	}

	sort.Slice(s.pairs, func(i, j int) bool {
		if s.pairs[i].A != s.pairs[j].A {
			return s.pairs[i].A < s.pairs[j].A
		}
		return s.pairs[i].B < s.pairs[j].B
	})
	out := make([]BroadphasePair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

func overlaps(a, b *BroadphaseProxy) bool {
	for i := 0; i < 3; i++ {
		if a.Min[i] > b.Max[i] || b.Min[i] > a.Max[i] {
			return false
		}
	}
	return true
}
