package world

import (
	"errors"
	"fmt"

	"github.com/markoelez/blockworld/internal/engine/block"
)

// ErrOutOfBounds reports a local coordinate outside the chunk extent. It is a
// programmer error: callers needing cross-chunk lookups go through the store,
// which resolves them to the Unknown sentinel instead of failing.
var ErrOutOfBounds = errors.New("world: local coordinate out of chunk bounds")

// VoxelGrid is the dense block storage for one chunk. Index order is
// (y*sz + z)*sx + x so that horizontal slices are contiguous.
type VoxelGrid struct {
	sx, sy, sz int
	blocks     []block.Type
	onSet      func()
}

// NewVoxelGrid allocates an all-air grid with the given extent.
func NewVoxelGrid(sx, sy, sz int) *VoxelGrid {
	return &VoxelGrid{
		sx:     sx,
		sy:     sy,
		sz:     sz,
		blocks: make([]block.Type, sx*sy*sz),
	}
}

// Size returns the grid extent along each axis.
func (g *VoxelGrid) Size() (sx, sy, sz int) { return g.sx, g.sy, g.sz }

// InBounds reports whether the local coordinate lies inside the extent.
func (g *VoxelGrid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.sx && y >= 0 && y < g.sy && z >= 0 && z < g.sz
}

func (g *VoxelGrid) index(x, y, z int) int { return (y*g.sz+z)*g.sx + x }

// At returns the block at a local coordinate.
func (g *VoxelGrid) At(x, y, z int) (block.Type, error) {
	if !g.InBounds(x, y, z) {
		return block.Air, fmt.Errorf("%w: (%d,%d,%d) in %dx%dx%d", ErrOutOfBounds, x, y, z, g.sx, g.sy, g.sz)
	}
	return g.blocks[g.index(x, y, z)], nil
}

// AtUnchecked returns the block at a local coordinate without bounds checks.
// The mesher and generator use it on coordinates they already validated.
func (g *VoxelGrid) AtUnchecked(x, y, z int) block.Type {
	return g.blocks[g.index(x, y, z)]
}

// Set writes the block at a local coordinate and notifies the owning chunk.
func (g *VoxelGrid) Set(x, y, z int, t block.Type) error {
	if !g.InBounds(x, y, z) {
		return fmt.Errorf("%w: (%d,%d,%d) in %dx%dx%d", ErrOutOfBounds, x, y, z, g.sx, g.sy, g.sz)
	}
	g.blocks[g.index(x, y, z)] = t
	if g.onSet != nil {
		g.onSet()
	}
	return nil
}

// SetUnchecked writes without bounds checks or dirty notification. Generation
// stages use it while they still exclusively own the grid.
func (g *VoxelGrid) SetUnchecked(x, y, z int, t block.Type) {
	g.blocks[g.index(x, y, z)] = t
}

// Fill overwrites every voxel with the given type.
func (g *VoxelGrid) Fill(t block.Type) {
	for i := range g.blocks {
		g.blocks[i] = t
	}
}

// Clone returns a deep copy with no dirty callback attached. Mesh-only jobs
// operate on clones so in-flight work never shares storage with the consumer.
func (g *VoxelGrid) Clone() *VoxelGrid {
	c := &VoxelGrid{sx: g.sx, sy: g.sy, sz: g.sz, blocks: make([]block.Type, len(g.blocks))}
	copy(c.blocks, g.blocks)
	return c
}

// Equal reports whether two grids have identical extent and content.
func (g *VoxelGrid) Equal(o *VoxelGrid) bool {
	if g.sx != o.sx || g.sy != o.sy || g.sz != o.sz {
		return false
	}
	for i := range g.blocks {
		if g.blocks[i] != o.blocks[i] {
			return false
		}
	}
	return true
}
