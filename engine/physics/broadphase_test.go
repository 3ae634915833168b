package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func proxy(index int, lo, hi mgl32.Vec3, static bool) BroadphaseProxy {
	return BroadphaseProxy{Index: index, Min: lo, Max: hi, Static: static}
}

func TestSweepAndPruneFindsOverlaps(t *testing.T) {
	bp := NewSweepAndPrune()
	proxies := []BroadphaseProxy{
		proxy(0, mgl32.Vec3{5, 0, 0}, mgl32.Vec3{6, 1, 1}, false),
		proxy(1, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, false),
		proxy(2, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1.5, 1.5, 1.5}, false),
		proxy(3, mgl32.Vec3{5.5, 5, 0}, mgl32.Vec3{6.5, 6, 1}, false),
	}

	pairs := bp.CalculateOverlappingPairs(proxies)
	assert.Equal(t, []BroadphasePair{{A: 1, B: 2}}, pairs)
}

func TestSweepAndPruneSkipsStaticPairs(t *testing.T) {
	bp := NewSweepAndPrune()
	proxies := []BroadphaseProxy{
		proxy(0, mgl32.Vec3{-10, -1, -10}, mgl32.Vec3{10, 0, 10}, true),
		proxy(1, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, true),
		proxy(2, mgl32.Vec3{2, -0.5, 2}, mgl32.Vec3{3, 0.5, 3}, false),
	}

	pairs := bp.CalculateOverlappingPairs(proxies)
	assert.Equal(t, []BroadphasePair{{A: 0, B: 2}}, pairs)
}

func TestSweepAndPrunePairsAreOrdered(t *testing.T) {
	bp := NewSweepAndPrune()
	boxes := []BroadphaseProxy{
		proxy(2, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2}, false),
		proxy(0, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{3, 3, 3}, false),
		proxy(1, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1.5, 1.5, 1.5}, false),
	}
	pairs := bp.CalculateOverlappingPairs(boxes)
	assert.Equal(t, []BroadphasePair{{A: 0, B: 1}, {A: 0, B: 2}, {A: 1, B: 2}}, pairs)
}

func TestSweepAndPruneEmpty(t *testing.T) {
	assert.Empty(t, NewSweepAndPrune().CalculateOverlappingPairs(nil))
}
