package world

import "github.com/markoelez/blockworld/internal/engine/mesh"

// ChunkPos identifies a chunk by its X and Z coordinates. Chunks span the
// full world height, so chunk positions are two-dimensional.
type ChunkPos struct{ X, Z int }

// ChunkPosAt returns the chunk containing the given world block coordinate.
func ChunkPosAt(bx, bz, size int) ChunkPos {
	return ChunkPos{X: floorDiv(bx, size), Z: floorDiv(bz, size)}
}

// floorDiv divides rounding toward negative infinity, so chunk coordinates
// are continuous across the origin.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod returns the non-negative remainder matching floorDiv.
func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// ChunkState tracks where a chunk is in its lifecycle.
type ChunkState uint8

const (
	// StateRequested: the chunk entered the load radius but no job has been
	// scheduled yet.
	StateRequested ChunkState = iota
	// StateGenerating: a generation or re-mesh job is in flight.
	StateGenerating
	// StateReady: voxel data and mesh both exist and are immutable until the
	// next edit.
	StateReady
	// StateRemeshing: a re-mesh job is in flight. The previous mesh stays
	// drawable until the replacement lands.
	StateRemeshing
)

func (s ChunkState) String() string {
	switch s {
	case StateRequested:
		return "requested"
	case StateGenerating:
		return "generating"
	case StateReady:
		return "ready"
	case StateRemeshing:
		return "remeshing"
	default:
		return "invalid"
	}
}

// Chunk owns the voxel data and cached geometry for one chunk position. All
// fields are owned by the store's single writer; worker tasks only ever see
// grids they exclusively own (freshly generated, or cloned snapshots).
type Chunk struct {
	Pos   ChunkPos
	Grid  *VoxelGrid
	State ChunkState

	// Dirty means the voxel data changed since the cached mesh was built.
	// A dirty chunk needs re-meshing only, never regeneration.
	Dirty bool

	// Mesh is the cached geometry, replaced atomically by the store when a
	// re-mesh completes. Nil until the first mesh lands.
	Mesh *mesh.Buffers
}

// NewChunk creates a chunk in the Requested state with no data.
func NewChunk(pos ChunkPos) *Chunk {
	return &Chunk{Pos: pos, State: StateRequested}
}

// Attach installs a generated grid and wires its dirty callback.
func (c *Chunk) Attach(g *VoxelGrid) {
	c.Grid = g
	g.onSet = func() { c.Dirty = true }
}

// Ready reports whether the chunk has drawable geometry. A chunk being
// re-meshed keeps its previous mesh drawable until the replacement lands.
func (c *Chunk) Ready() bool {
	return c.Mesh != nil && (c.State == StateReady || c.State == StateRemeshing)
}
