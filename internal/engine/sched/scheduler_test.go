package sched

import (
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/markoelez/blockworld/internal/engine/block"
	"github.com/markoelez/blockworld/internal/engine/world"
	"github.com/markoelez/blockworld/internal/engine/world/gen"
)

var testParams = gen.Params{Seed: 1, ChunkSize: 8, Height: 32, SeaLevel: 12}

// flatGenerator fills a stone floor. failures > 0 makes the next attempts
// panic, exercising the retry path.
type flatGenerator struct {
	calls    atomic.Int64
	failures atomic.Int64
}

func (g *flatGenerator) Generate(cx, cz int) (*world.VoxelGrid, error) {
	g.calls.Add(1)
	if g.failures.Load() > 0 {
		g.failures.Add(-1)
		panic("injected generation fault")
	}
	grid := world.NewVoxelGrid(testParams.ChunkSize, testParams.Height, testParams.ChunkSize)
	for x := 0; x < testParams.ChunkSize; x++ {
		for z := 0; z < testParams.ChunkSize; z++ {
			grid.SetUnchecked(x, 0, z, block.Grass)
		}
	}
	return grid, nil
}

func (g *flatGenerator) HeightAt(bx, bz int) int { return 0 }

func (g *flatGenerator) BiomeAt(bx, bz int) gen.Biome { return gen.BiomePlains }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pollOne spins until the scheduler yields a result.
func pollOne(t *testing.T, s *Scheduler) Result {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if r, ok := s.Poll(); ok {
			return r
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no result within deadline")
	return Result{}
}

func TestSchedulerGenerateDelivers(t *testing.T) {
	fg := &flatGenerator{}
	s := New(fg, testParams, 2, 16, discardLogger())
	defer s.Close()

	pos := world.ChunkPos{X: 3, Z: -1}
	s.SubmitGenerate(pos, nil)

	r := pollOne(t, s)
	if r.Pos != pos || r.Kind != JobGenerate {
		t.Fatalf("result pos=%v kind=%v, want %v generate", r.Pos, r.Kind, pos)
	}
	if r.Fallback {
		t.Error("healthy generation flagged as fallback")
	}
	if r.Grid == nil || r.Grid.AtUnchecked(0, 0, 0) != block.Grass {
		t.Error("result carries wrong grid")
	}
	if r.Mesh == nil || r.Mesh.Opaque.Empty() {
		t.Error("result carries no mesh")
	}
}

func TestSchedulerPollNonBlocking(t *testing.T) {
	s := New(&flatGenerator{}, testParams, 1, 4, discardLogger())
	defer s.Close()

	start := time.Now()
	if _, ok := s.Poll(); ok {
		t.Fatal("empty scheduler returned a result")
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("Poll blocked for %v", elapsed)
	}
}

func TestSchedulerRetriesOnce(t *testing.T) {
	fg := &flatGenerator{}
	fg.failures.Store(1)
	s := New(fg, testParams, 1, 4, discardLogger())
	defer s.Close()

	s.SubmitGenerate(world.ChunkPos{}, nil)
	r := pollOne(t, s)

	if r.Fallback {
		t.Error("single fault should recover on retry, got fallback")
	}
	if got := fg.calls.Load(); got != 2 {
		t.Errorf("generator called %d times, want 2", got)
	}
	if r.Grid == nil || r.Grid.AtUnchecked(0, 0, 0) != block.Grass {
		t.Error("retry did not deliver real terrain")
	}
}

func TestSchedulerFallbackAfterTwoFaults(t *testing.T) {
	fg := &flatGenerator{}
	fg.failures.Store(2)
	s := New(fg, testParams, 1, 4, discardLogger())
	defer s.Close()

	s.SubmitGenerate(world.ChunkPos{X: 9, Z: 9}, nil)
	r := pollOne(t, s)

	if !r.Fallback {
		t.Fatal("two faults should produce fallback terrain")
	}
	if got := fg.calls.Load(); got != 2 {
		t.Errorf("generator called %d times, want 2", got)
	}
	// Fallback is solid stone up to sea level, meshable like any chunk.
	if r.Grid.AtUnchecked(0, 0, 0) != block.Stone {
		t.Error("fallback floor is not stone")
	}
	if r.Grid.AtUnchecked(0, testParams.SeaLevel, 0) != block.Stone {
		t.Error("fallback not filled to sea level")
	}
	if r.Grid.AtUnchecked(0, testParams.SeaLevel+1, 0) != block.Air {
		t.Error("fallback filled above sea level")
	}
	if r.Mesh == nil || r.Mesh.Opaque.Empty() {
		t.Error("fallback chunk has no mesh")
	}
}

func TestSchedulerMeshJob(t *testing.T) {
	s := New(&flatGenerator{}, testParams, 2, 4, discardLogger())
	defer s.Close()

	grid := world.NewVoxelGrid(4, 4, 4)
	grid.SetUnchecked(1, 1, 1, block.Stone)

	pos := world.ChunkPos{X: 1, Z: 2}
	s.SubmitMesh(pos, grid, func(int, int, int) block.Type { return block.Air })

	r := pollOne(t, s)
	if r.Kind != JobMesh || r.Pos != pos {
		t.Fatalf("result pos=%v kind=%v, want %v mesh", r.Pos, r.Kind, pos)
	}
	if r.Grid != nil {
		t.Error("mesh job returned a grid")
	}
	if got := r.Mesh.Opaque.QuadCount(); got != 6 {
		t.Errorf("single voxel meshed to %d quads, want 6", got)
	}
}

func TestSchedulerManyJobs(t *testing.T) {
	fg := &flatGenerator{}
	s := New(fg, testParams, 4, 8, discardLogger())
	defer s.Close()

	const n = 50
	for i := 0; i < n; i++ {
		s.SubmitGenerate(world.ChunkPos{X: i, Z: -i}, nil)
	}

	seen := make(map[world.ChunkPos]bool)
	for i := 0; i < n; i++ {
		r := pollOne(t, s)
		if seen[r.Pos] {
			t.Fatalf("duplicate result for %v", r.Pos)
		}
		seen[r.Pos] = true
	}
	if _, ok := s.Poll(); ok {
		t.Error("extra result after all jobs drained")
	}
}

func TestFaultError(t *testing.T) {
	cause := errors.New("boom")
	f := &gen.Fault{Pos: world.ChunkPos{X: 1, Z: 2}, Stage: "generate", Cause: cause}
	if !errors.Is(f, cause) {
		t.Error("Fault does not unwrap to its cause")
	}
}
