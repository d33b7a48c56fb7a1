package gen

import (
	"github.com/markoelez/blockworld/internal/engine/block"
	"github.com/markoelez/blockworld/internal/engine/world"
)

// CaveGenerator carves caves using 3D simplex noise.
type CaveGenerator struct {
	noise1 *NoiseChannel
	noise2 *NoiseChannel
}

// NewCaveGenerator creates a CaveGenerator from a seed.
func NewCaveGenerator(seed int64) *CaveGenerator {
	return &CaveGenerator{
		noise1: NewNoiseChannel(seed + 300),
		noise2: NewNoiseChannel(seed + 400),
	}
}

// Carve removes blocks to form caves in the chunk. Depth loosens the
// threshold, so caverns widen toward bedrock. The bedrock floor and a buffer
// below the surface are never carved.
func (cg *CaveGenerator) Carve(grid *world.VoxelGrid, chunkX, chunkZ int, heights []int, p Params) {
	const lavaLevel = 10

	size := p.ChunkSize
	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			bx := float64(chunkX*size + x)
			bz := float64(chunkZ*size + z)
			maxY := heights[x*size+z]
			if maxY < 8 {
				continue
			}

			for y := 4; y < maxY-4; y++ {
				by := float64(y)

				n1 := cg.noise1.Sample3D(bx/32.0, by/24.0, bz/32.0)
				n2 := cg.noise2.Sample3D(bx/48.0, by/32.0, bz/48.0)
				density := (n1 + n2) / 2.0

				depth := float64(maxY-y) / float64(p.Height)
				threshold := 0.55 - depth*0.1

				if density > threshold {
					if y < lavaLevel {
						grid.SetUnchecked(x, y, z, block.Lava)
					} else {
						grid.SetUnchecked(x, y, z, block.Air)
					}
				}
			}
		}
	}
}
