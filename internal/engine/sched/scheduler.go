// Package sched runs chunk generation and meshing on a worker pool, handing
// finished results back to the consumer through a non-blocking poll.
package sched

import (
	"fmt"
	"log/slog"

	"github.com/alitto/pond/v2"

	"github.com/markoelez/blockworld/internal/engine/block"
	"github.com/markoelez/blockworld/internal/engine/mesh"
	"github.com/markoelez/blockworld/internal/engine/world"
	"github.com/markoelez/blockworld/internal/engine/world/gen"
)

// JobKind distinguishes fresh generation from re-meshing of existing data.
type JobKind uint8

const (
	// JobGenerate builds voxel data from the generator, then meshes it.
	JobGenerate JobKind = iota
	// JobMesh re-meshes a grid snapshot the job exclusively owns.
	JobMesh
)

// Result is a finished job. Grid is set only for JobGenerate; Fallback marks
// a chunk whose generation faulted twice and was replaced with filler
// terrain.
type Result struct {
	Pos      world.ChunkPos
	Kind     JobKind
	Grid     *world.VoxelGrid
	Mesh     *mesh.Buffers
	Fallback bool
}

// Scheduler owns the worker pool. Submit hands a job to the pool without
// blocking the caller; Poll returns at most one finished result without
// blocking. All grid arguments must be exclusively owned by the job: fresh
// generation output, or clones taken by the consumer before submitting.
type Scheduler struct {
	pool    pond.Pool
	gen     gen.Generator
	params  gen.Params
	log     *slog.Logger
	results chan Result
}

// New creates a scheduler with the given worker count. queueDepth bounds how
// many finished results may wait between polls; workers block when it fills,
// which backpressures generation rather than growing memory.
func New(g gen.Generator, p gen.Params, workers, queueDepth int, log *slog.Logger) *Scheduler {
	return &Scheduler{
		pool:    pond.NewPool(workers),
		gen:     g,
		params:  p,
		log:     log,
		results: make(chan Result, queueDepth),
	}
}

// SubmitGenerate schedules generation and meshing for a chunk. boundary may
// be nil when no neighbor data exists yet.
func (s *Scheduler) SubmitGenerate(pos world.ChunkPos, boundary mesh.NeighborLookup) {
	s.pool.Submit(func() {
		grid, fallback := s.generate(pos)
		s.results <- Result{
			Pos:      pos,
			Kind:     JobGenerate,
			Grid:     grid,
			Mesh:     mesh.Mesh(grid, boundary),
			Fallback: fallback,
		}
	})
}

// SubmitMesh schedules a re-mesh of a grid snapshot.
func (s *Scheduler) SubmitMesh(pos world.ChunkPos, grid *world.VoxelGrid, boundary mesh.NeighborLookup) {
	s.pool.Submit(func() {
		s.results <- Result{
			Pos:  pos,
			Kind: JobMesh,
			Mesh: mesh.Mesh(grid, boundary),
		}
	})
}

// Poll returns one finished result if any is ready. It never blocks.
func (s *Scheduler) Poll() (Result, bool) {
	select {
	case r := <-s.results:
		return r, true
	default:
		return Result{}, false
	}
}

// Close stops accepting work and waits for in-flight jobs. Queued results
// that were never polled are discarded.
func (s *Scheduler) Close() {
	done := make(chan struct{})
	go func() {
		s.pool.StopAndWait()
		close(done)
	}()
	for {
		select {
		case <-s.results:
		case <-done:
			return
		}
	}
}

// generate runs the generator with a retry. A second fault substitutes
// filler terrain so one bad chunk cannot wedge the stream.
func (s *Scheduler) generate(pos world.ChunkPos) (grid *world.VoxelGrid, fallback bool) {
	grid, err := s.tryGenerate(pos)
	if err == nil {
		return grid, false
	}
	grid, retryErr := s.tryGenerate(pos)
	if retryErr == nil {
		s.log.Warn("chunk generation recovered on retry",
			"chunk_x", pos.X, "chunk_z", pos.Z, "err", err)
		return grid, false
	}
	s.log.Error("chunk generation failed twice, using fallback terrain",
		"chunk_x", pos.X, "chunk_z", pos.Z, "err", retryErr)
	return s.fallbackGrid(), true
}

// tryGenerate isolates one generation attempt, converting panics into a
// gen.Fault.
func (s *Scheduler) tryGenerate(pos world.ChunkPos) (grid *world.VoxelGrid, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &gen.Fault{Pos: pos, Stage: "generate", Cause: fmt.Errorf("panic: %v", r)}
		}
	}()
	return s.gen.Generate(pos.X, pos.Z)
}

// fallbackGrid is flat stone up to sea level. Deliberately unremarkable, it
// reads as a visible flaw rather than a crash.
func (s *Scheduler) fallbackGrid() *world.VoxelGrid {
	g := world.NewVoxelGrid(s.params.ChunkSize, s.params.Height, s.params.ChunkSize)
	for y := 0; y <= s.params.SeaLevel; y++ {
		for x := 0; x < s.params.ChunkSize; x++ {
			for z := 0; z < s.params.ChunkSize; z++ {
				g.SetUnchecked(x, y, z, block.Stone)
			}
		}
	}
	return g
}
