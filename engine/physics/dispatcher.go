package physics

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// parallelPairThreshold is the pair count below which narrow-phase runs inline.
// Small worlds finish faster than a task round-trip through the pool.
const parallelPairThreshold = 64

// CollisionDispatcher routes broadphase pairs to the narrow-phase routine for their
// shape types. Large pair sets are split into chunks and processed on a worker pool.
type CollisionDispatcher struct {
	pool    worker.DynamicWorkerPool
	workers int
	table   map[[2]ShapeType]collisionFunc

	closeOnce sync.Once
	closed    atomic.Bool
}

// NewCollisionDispatcher creates a dispatcher backed by a worker pool.
// A worker count below 1 uses one worker per CPU minus one, with a minimum of one.
//
// Parameters:
//   - workers: the number of narrow-phase workers
//
// Returns:
//   - *CollisionDispatcher: the dispatcher
func NewCollisionDispatcher(workers int) *CollisionDispatcher {
	if workers < 1 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	return &CollisionDispatcher{
		pool:    worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
		workers: workers,
		table: map[[2]ShapeType]collisionFunc{
			{ShapeTypeSphere, ShapeTypeSphere}: collideSphereSphere,
			{ShapeTypeBox, ShapeTypeSphere}:    collideBoxSphere,
			{ShapeTypeBox, ShapeTypeBox}:       collideBoxBox,
		},
	}
}

// NumWorkers returns the configured worker count.
func (d *CollisionDispatcher) NumWorkers() int { return d.workers }

// Close stops the worker pool. Later dispatches run inline on the caller.
// Safe to call more than once.
func (d *CollisionDispatcher) Close() {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		d.pool.Stop()
	})
}

func (d *CollisionDispatcher) collide(a, b *rigidBody) *Manifold {
	if fn, ok := d.table[[2]ShapeType{a.shape.Type(), b.shape.Type()}]; ok {
		return fn(a, b)
	}
	if fn, ok := d.table[[2]ShapeType{b.shape.Type(), a.shape.Type()}]; ok {
		m := fn(b, a)
		if m != nil {
			m.swap()
		}
		return m
	}
	return nil
}

func (d *CollisionDispatcher) collideRange(bodies []*rigidBody, pairs []BroadphasePair) []*Manifold {
	var out []*Manifold
	for _, p := range pairs {
		if m := d.collide(bodies[p.A], bodies[p.B]); m != nil && len(m.Points) > 0 {
			out = append(out, m)
		}
	}
	return out
}

// dispatchAllCollisionPairs runs narrow-phase over every pair. The result order
// follows the pair order regardless of how the work was split.
func (d *CollisionDispatcher) dispatchAllCollisionPairs(bodies []*rigidBody, pairs []BroadphasePair) []*Manifold {
	if len(pairs) < parallelPairThreshold || d.workers == 1 || d.closed.Load() {
		return d.collideRange(bodies, pairs)
	}

	chunkSize := (len(pairs) + d.workers - 1) / d.workers
	results := make([][]*Manifold, (len(pairs)+chunkSize-1)/chunkSize)
	var wg sync.WaitGroup
	for slot := range results {
		start := slot * chunkSize
		chunk := pairs[start:min(start+chunkSize, len(pairs))]
		wg.Add(1)
		d.pool.SubmitTask(worker.Task{
			ID: slot,
			Do: func() (any, error) {
				defer wg.Done()
				results[slot] = d.collideRange(bodies, chunk)
				return nil, nil
			},
		})
	}
	wg.Wait()

	var out []*Manifold
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
