// Package engine streams a voxel world around a moving viewer: chunks are
// generated and meshed on background workers, published on the caller's
// goroutine, and evicted as the viewer moves away.
package engine

import (
	"log/slog"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/markoelez/blockworld/internal/engine/block"
	"github.com/markoelez/blockworld/internal/engine/config"
	"github.com/markoelez/blockworld/internal/engine/sched"
	"github.com/markoelez/blockworld/internal/engine/world"
	"github.com/markoelez/blockworld/internal/engine/world/gen"
)

// Engine owns the chunk store and the generation scheduler. All methods must
// be called from a single goroutine; the heavy lifting happens on the
// scheduler's workers.
type Engine struct {
	cfg   *config.Config
	log   *slog.Logger
	gen   gen.Generator
	store *world.ChunkStore
	sched *sched.Scheduler

	// pending records, per in-flight generate job, which boundary planes its
	// snapshot resolved. Compared against residency at publish time to catch
	// neighbors that arrived mid-flight.
	pending map[world.ChunkPos][4]bool
}

// New creates an engine from a validated config.
func New(cfg *config.Config, log *slog.Logger) *Engine {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	params := gen.Params{
		Seed:      cfg.Seed,
		ChunkSize: cfg.ChunkSize,
		Height:    cfg.Height,
		SeaLevel:  cfg.SeaLevel,
	}
	g := gen.NewDefaultGenerator(params)

	return &Engine{
		cfg:     cfg,
		log:     log,
		gen:     g,
		store:   world.NewChunkStore(cfg.ChunkSize, cfg.Height, cfg.LoadRadius, cfg.Hysteresis),
		sched:   sched.New(g, params, workers, cfg.QueueDepth, log),
		pending: make(map[world.ChunkPos][4]bool),
	}
}

// Update advances the streaming state for one frame: finished jobs are
// published, residency is reconciled against the viewer, and new work is
// scheduled. It never blocks on generation.
func (e *Engine) Update(viewer mgl32.Vec3) {
	e.drainResults()

	viewerChunk := world.ChunkPosAt(
		int(math.Floor(float64(viewer.X()))),
		int(math.Floor(float64(viewer.Z()))),
		e.cfg.ChunkSize)

	requested, evicted := e.store.Update(viewerChunk)
	for _, pos := range requested {
		c, _ := e.store.Get(pos)
		c.State = world.StateGenerating
		boundary := e.store.SnapshotBoundary(pos)
		e.pending[pos] = boundary.Resolved()
		e.sched.SubmitGenerate(pos, boundary.Lookup)
	}
	if len(evicted) > 0 {
		e.log.Debug("evicted chunks", "count", len(evicted), "resident", e.store.Len())
	}

	// Re-mesh chunks whose data changed since their mesh was built. The job
	// gets a clone plus a boundary snapshot, so the live grid stays editable
	// and the old mesh stays drawable while the replacement is built.
	for _, c := range e.store.Dirty() {
		c.State = world.StateRemeshing
		c.Dirty = false
		e.sched.SubmitMesh(c.Pos, c.Grid.Clone(), e.store.SnapshotBoundary(c.Pos).Lookup)
	}
}

// drainResults publishes every finished job. Results for chunks evicted
// while in flight are dropped.
func (e *Engine) drainResults() {
	for {
		r, ok := e.sched.Poll()
		if !ok {
			return
		}
		c, resident := e.store.Get(r.Pos)
		if !resident {
			if r.Kind == sched.JobGenerate {
				delete(e.pending, r.Pos)
			}
			continue
		}
		switch r.Kind {
		case sched.JobGenerate:
			snapshot := e.pending[r.Pos]
			delete(e.pending, r.Pos)
			c.Attach(r.Grid)
			c.Mesh = r.Mesh
			c.State = world.StateReady
			// Stale if a neighbor published after the job's boundary
			// snapshot was taken; its shared faces were suppressed.
			c.Dirty = e.snapshotStale(r.Pos, snapshot)
			// Neighbors meshed before this data existed suppressed their
			// shared boundary faces; give them a corrective re-mesh.
			e.store.MarkNeighborsDirty(r.Pos)
		case sched.JobMesh:
			// Dirty is not cleared here: edits that landed while the job
			// was in flight set it again, queueing another re-mesh.
			c.Mesh = r.Mesh
			c.State = world.StateReady
		}
	}
}

// snapshotStale reports whether any face-sharing neighbor has voxel data
// that the given boundary snapshot did not include.
func (e *Engine) snapshotStale(pos world.ChunkPos, resolved [4]bool) bool {
	neighbors := [4]world.ChunkPos{
		{X: pos.X - 1, Z: pos.Z},
		{X: pos.X + 1, Z: pos.Z},
		{X: pos.X, Z: pos.Z - 1},
		{X: pos.X, Z: pos.Z + 1},
	}
	for i, n := range neighbors {
		if resolved[i] {
			continue
		}
		if c, ok := e.store.Get(n); ok && c.Grid != nil {
			return true
		}
	}
	return false
}

// BlockAt returns the block at a world coordinate, or Unknown where no chunk
// data is resident. It never triggers generation.
func (e *Engine) BlockAt(bx, by, bz int) block.Type {
	return e.store.BlockAt(bx, by, bz)
}

// SetBlock edits one voxel. The owning chunk and any boundary-sharing
// neighbors are re-meshed on a later Update.
func (e *Engine) SetBlock(bx, by, bz int, t block.Type) error {
	return e.store.ApplyEdit(bx, by, bz, t)
}

// ReadyChunks returns every chunk with drawable geometry.
func (e *Engine) ReadyChunks() []*world.Chunk {
	return e.store.ReadyChunks()
}

// ChunkCount returns the number of resident chunks in any state.
func (e *Engine) ChunkCount() int { return e.store.Len() }

// SpawnPosition finds a safe spawn near the origin: the first dry, non-ocean
// column on an outward spiral, two blocks above the surface. Pure terrain
// queries only, so it works before any chunk is resident.
func (e *Engine) SpawnPosition() mgl32.Vec3 {
	for radius := 0; radius < 64; radius++ {
		for bx := -radius; bx <= radius; bx++ {
			for bz := -radius; bz <= radius; bz++ {
				if abs(bx) != radius && abs(bz) != radius {
					continue
				}
				h := e.gen.HeightAt(bx, bz)
				if h > e.cfg.SeaLevel && e.gen.BiomeAt(bx, bz) != gen.BiomeOcean {
					return mgl32.Vec3{float32(bx) + 0.5, float32(h + 2), float32(bz) + 0.5}
				}
			}
		}
	}
	// All ocean near the origin; float above sea level.
	return mgl32.Vec3{0.5, float32(e.cfg.SeaLevel + 8), 0.5}
}

// Close stops the scheduler and waits for in-flight jobs.
func (e *Engine) Close() {
	e.sched.Close()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
