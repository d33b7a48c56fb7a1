package gen

import (
	"github.com/markoelez/blockworld/internal/engine/block"
	"github.com/markoelez/blockworld/internal/engine/world"
)

// OreGenerator places ore veins in stone using seeded per-chunk RNG. A
// separate noise channel gates vein-rich regions, so ore density varies
// independently of terrain and caves.
type OreGenerator struct {
	seed int64
	gate *NoiseChannel
}

// NewOreGenerator creates an OreGenerator from a seed.
func NewOreGenerator(seed int64) *OreGenerator {
	return &OreGenerator{seed: seed, gate: NewNoiseChannel(seed + 550)}
}

type oreConfig struct {
	block    block.Type
	minY     int
	maxY     int
	veinSize int // max blocks per vein
	attempts int // veins per chunk
}

// Rarer ores sit in deeper, narrower bands.
var ores = []oreConfig{
	{block.CoalOre, 4, 120, 12, 16},
	{block.IronOre, 4, 56, 8, 10},
	{block.GoldOre, 4, 28, 8, 3},
	{block.DiamondOre, 4, 14, 6, 1},
}

// Place scatters ore veins within the chunk.
func (og *OreGenerator) Place(grid *world.VoxelGrid, chunkX, chunkZ int, heights []int, p Params) {
	rng := newChunkRNG(og.seed, chunkX, chunkZ, 500)
	size := p.ChunkSize

	for _, ore := range ores {
		maxY := ore.maxY
		if maxY > p.Height-1 {
			maxY = p.Height - 1
		}
		for attempt := 0; attempt < ore.attempts; attempt++ {
			x := rng.nextN(size)
			y := ore.minY + rng.nextN(maxY-ore.minY)
			z := rng.nextN(size)

			if y >= heights[x*size+z] {
				continue
			}
			// Sparse regions drop a share of their veins.
			bx := float64(chunkX*size + x)
			bz := float64(chunkZ*size + z)
			if og.gate.Sample2D(bx/96.0, bz/96.0) < -0.5 {
				continue
			}
			og.placeVein(grid, x, y, z, ore.block, ore.veinSize, heights, rng, size)
		}
	}
}

// placeVein random-walks from a start point, replacing stone only.
func (og *OreGenerator) placeVein(grid *world.VoxelGrid, cx, cy, cz int, t block.Type, size int, heights []int, rng *chunkRNG, chunkSize int) {
	for step := 0; step < size; step++ {
		if cx >= 0 && cx < chunkSize && cz >= 0 && cz < chunkSize && cy >= 1 && cy < heights[cx*chunkSize+cz] {
			if grid.AtUnchecked(cx, cy, cz) == block.Stone {
				grid.SetUnchecked(cx, cy, cz, t)
			}
		}

		switch rng.nextN(6) {
		case 0:
			cx++
		case 1:
			cx--
		case 2:
			cy++
		case 3:
			cy--
		case 4:
			cz++
		case 5:
			cz--
		}
	}
}
