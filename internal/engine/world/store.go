package world

import (
	"errors"
	"fmt"

	"github.com/markoelez/blockworld/internal/engine/block"
)

var (
	// ErrNotResident reports an edit against a chunk that is not loaded.
	ErrNotResident = errors.New("world: chunk not resident")
	// ErrNotReady reports an edit against a chunk whose voxel data has not
	// been generated yet.
	ErrNotReady = errors.New("world: chunk has no voxel data yet")
)

// ChunkStore holds every resident chunk and decides which chunks should be
// resident for a given viewer position. It is single-writer: all mutation
// happens on the consumer goroutine, worker tasks only ever touch grids they
// exclusively own.
type ChunkStore struct {
	size       int // chunk extent along X and Z
	height     int // world height, chunk extent along Y
	loadRadius int
	hysteresis int

	chunks map[ChunkPos]*Chunk
}

// NewChunkStore creates an empty store. loadRadius is the Chebyshev distance
// in chunks within which chunks are requested; chunks are only evicted beyond
// loadRadius+hysteresis, so a viewer oscillating across a chunk boundary does
// not thrash.
func NewChunkStore(size, height, loadRadius, hysteresis int) *ChunkStore {
	return &ChunkStore{
		size:       size,
		height:     height,
		loadRadius: loadRadius,
		hysteresis: hysteresis,
		chunks:     make(map[ChunkPos]*Chunk),
	}
}

// ChunkSize returns the horizontal chunk extent.
func (s *ChunkStore) ChunkSize() int { return s.size }

// Height returns the world height.
func (s *ChunkStore) Height() int { return s.height }

// Get returns the resident chunk at pos, if any.
func (s *ChunkStore) Get(pos ChunkPos) (*Chunk, bool) {
	c, ok := s.chunks[pos]
	return c, ok
}

// Len returns the number of resident chunks in any state.
func (s *ChunkStore) Len() int { return len(s.chunks) }

// chebyshev returns the chunk-grid Chebyshev distance between two positions.
func chebyshev(a, b ChunkPos) int {
	dx, dz := a.X-b.X, a.Z-b.Z
	if dx < 0 {
		dx = -dx
	}
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}

// Update reconciles residency against the viewer's chunk position. Chunks
// within loadRadius that are not resident are created in the Requested state
// and returned for scheduling; resident chunks beyond loadRadius+hysteresis
// are removed and their positions returned. Chunks in the band between the
// two radii are left alone.
func (s *ChunkStore) Update(viewer ChunkPos) (requested, evicted []ChunkPos) {
	for x := viewer.X - s.loadRadius; x <= viewer.X+s.loadRadius; x++ {
		for z := viewer.Z - s.loadRadius; z <= viewer.Z+s.loadRadius; z++ {
			pos := ChunkPos{X: x, Z: z}
			if _, ok := s.chunks[pos]; ok {
				continue
			}
			s.chunks[pos] = NewChunk(pos)
			requested = append(requested, pos)
		}
	}
	for pos := range s.chunks {
		if chebyshev(pos, viewer) > s.loadRadius+s.hysteresis {
			delete(s.chunks, pos)
			evicted = append(evicted, pos)
		}
	}
	return requested, evicted
}

// BlockAt returns the block at a world coordinate. Coordinates above or below
// the world are air; coordinates in chunks that are not resident or not yet
// generated resolve to Unknown. It never triggers generation.
func (s *ChunkStore) BlockAt(bx, by, bz int) block.Type {
	if by < 0 || by >= s.height {
		return block.Air
	}
	c, ok := s.chunks[ChunkPosAt(bx, bz, s.size)]
	if !ok || c.Grid == nil {
		return block.Unknown
	}
	return c.Grid.AtUnchecked(floorMod(bx, s.size), by, floorMod(bz, s.size))
}

// ApplyEdit writes a block at a world coordinate. The owning chunk is marked
// dirty through its grid callback; resident neighbors that share a face with
// the edited voxel are marked dirty too, since their boundary faces may have
// changed visibility.
func (s *ChunkStore) ApplyEdit(bx, by, bz int, t block.Type) error {
	pos := ChunkPosAt(bx, bz, s.size)
	c, ok := s.chunks[pos]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotResident, pos)
	}
	if c.Grid == nil {
		return fmt.Errorf("%w: %v", ErrNotReady, pos)
	}
	lx, lz := floorMod(bx, s.size), floorMod(bz, s.size)
	if err := c.Grid.Set(lx, by, lz, t); err != nil {
		return err
	}

	if lx == 0 {
		s.markDirty(ChunkPos{X: pos.X - 1, Z: pos.Z})
	}
	if lx == s.size-1 {
		s.markDirty(ChunkPos{X: pos.X + 1, Z: pos.Z})
	}
	if lz == 0 {
		s.markDirty(ChunkPos{X: pos.X, Z: pos.Z - 1})
	}
	if lz == s.size-1 {
		s.markDirty(ChunkPos{X: pos.X, Z: pos.Z + 1})
	}
	return nil
}

func (s *ChunkStore) markDirty(pos ChunkPos) {
	if c, ok := s.chunks[pos]; ok && c.Grid != nil {
		c.Dirty = true
	}
}

// MarkNeighborsDirty flags the four face-sharing neighbors of pos that
// already have voxel data. Called when a chunk's data first arrives, so
// neighbors re-mesh with their boundary faces resolved instead of suppressed.
func (s *ChunkStore) MarkNeighborsDirty(pos ChunkPos) {
	s.markDirty(ChunkPos{X: pos.X - 1, Z: pos.Z})
	s.markDirty(ChunkPos{X: pos.X + 1, Z: pos.Z})
	s.markDirty(ChunkPos{X: pos.X, Z: pos.Z - 1})
	s.markDirty(ChunkPos{X: pos.X, Z: pos.Z + 1})
}

// Dirty returns the resident chunks whose voxel data changed since their
// mesh was built and that are not already being re-meshed.
func (s *ChunkStore) Dirty() []*Chunk {
	var out []*Chunk
	for _, c := range s.chunks {
		if c.Dirty && c.State == StateReady {
			out = append(out, c)
		}
	}
	return out
}

// ReadyChunks returns every chunk with drawable geometry.
func (s *ChunkStore) ReadyChunks() []*Chunk {
	var out []*Chunk
	for _, c := range s.chunks {
		if c.Ready() {
			out = append(out, c)
		}
	}
	return out
}

// BoundaryPlanes is an immutable snapshot of the four side planes adjacent to
// one chunk, captured from resident neighbor grids at scheduling time. A nil
// plane means that neighbor had no voxel data, and probes into it resolve to
// Unknown. Plane storage is indexed y*sz + z (X sides) or y*sx + x (Z sides).
type BoundaryPlanes struct {
	sx, sy, sz             int
	negX, posX, negZ, posZ []block.Type
}

// Lookup resolves a probe one step outside the chunk, in the chunk's local
// coordinates. It satisfies mesh.NeighborLookup.
func (p *BoundaryPlanes) Lookup(x, y, z int) block.Type {
	if y < 0 || y >= p.sy {
		return block.Air
	}
	switch {
	case x == -1:
		return p.sample(p.negX, y*p.sz+z)
	case x == p.sx:
		return p.sample(p.posX, y*p.sz+z)
	case z == -1:
		return p.sample(p.negZ, y*p.sx+x)
	case z == p.sz:
		return p.sample(p.posZ, y*p.sx+x)
	}
	return block.Unknown
}

// Resolved reports which neighbor planes held data when the snapshot was
// taken, in -X, +X, -Z, +Z order. Consumers compare it against current
// residency to detect meshes built against since-arrived neighbors.
func (p *BoundaryPlanes) Resolved() [4]bool {
	return [4]bool{p.negX != nil, p.posX != nil, p.negZ != nil, p.posZ != nil}
}

func (p *BoundaryPlanes) sample(plane []block.Type, i int) block.Type {
	if plane == nil {
		return block.Unknown
	}
	return plane[i]
}

// SnapshotBoundary copies the facing planes of the four resident neighbors of
// pos. The copies are owned by the caller, so a mesh job may read them while
// the consumer keeps editing the live grids.
func (s *ChunkStore) SnapshotBoundary(pos ChunkPos) *BoundaryPlanes {
	p := &BoundaryPlanes{sx: s.size, sy: s.height, sz: s.size}
	p.negX = s.copyPlaneX(ChunkPos{X: pos.X - 1, Z: pos.Z}, s.size-1)
	p.posX = s.copyPlaneX(ChunkPos{X: pos.X + 1, Z: pos.Z}, 0)
	p.negZ = s.copyPlaneZ(ChunkPos{X: pos.X, Z: pos.Z - 1}, s.size-1)
	p.posZ = s.copyPlaneZ(ChunkPos{X: pos.X, Z: pos.Z + 1}, 0)
	return p
}

func (s *ChunkStore) copyPlaneX(pos ChunkPos, lx int) []block.Type {
	c, ok := s.chunks[pos]
	if !ok || c.Grid == nil {
		return nil
	}
	plane := make([]block.Type, s.height*s.size)
	for y := 0; y < s.height; y++ {
		for z := 0; z < s.size; z++ {
			plane[y*s.size+z] = c.Grid.AtUnchecked(lx, y, z)
		}
	}
	return plane
}

func (s *ChunkStore) copyPlaneZ(pos ChunkPos, lz int) []block.Type {
	c, ok := s.chunks[pos]
	if !ok || c.Grid == nil {
		return nil
	}
	plane := make([]block.Type, s.height*s.size)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.size; x++ {
			plane[y*s.size+x] = c.Grid.AtUnchecked(x, y, lz)
		}
	}
	return plane
}
