package gen

import (
	"github.com/markoelez/blockworld/internal/engine/block"
	"github.com/markoelez/blockworld/internal/engine/world"
)

// TreeGenerator places trees and vegetation per biome.
type TreeGenerator struct {
	seed     int64
	seaLevel int
}

// NewTreeGenerator creates a TreeGenerator from a seed.
func NewTreeGenerator(seed int64, seaLevel int) *TreeGenerator {
	return &TreeGenerator{seed: seed, seaLevel: seaLevel}
}

// Decorate places trees and vegetation in the chunk.
func (tg *TreeGenerator) Decorate(grid *world.VoxelGrid, chunkX, chunkZ int, heights []int, biomes []Biome, p Params) {
	rng := newChunkRNG(tg.seed, chunkX, chunkZ, 600)
	size := p.ChunkSize

	for tree, trees := 0, treesForBiome(biomes[(size/2)*size+size/2]); tree < trees; tree++ {
		x := rng.nextN(size)
		z := rng.nextN(size)
		y := heights[x*size+z]

		if y <= tg.seaLevel || y >= p.Height-16 {
			continue
		}
		// Caves may have removed the surface block under this spot. Cold
		// biomes grow through their snow cover.
		top := grid.AtUnchecked(x, y, z)
		if top != block.Grass && top != block.Snow {
			continue
		}

		if biomes[x*size+z] == BiomeTundra {
			tg.placeConifer(grid, x, y+1, z, rng, size, p.Height)
		} else {
			tg.placeBroadleaf(grid, x, y+1, z, rng, size, p.Height)
		}
	}

	tg.placeVegetation(grid, heights, biomes, rng, p)
}

// treesForBiome returns tree placement attempts per chunk.
func treesForBiome(biome Biome) int {
	switch biome {
	case BiomeForest:
		return 8
	case BiomePlains:
		return 1
	case BiomeTundra:
		return 2
	case BiomeMountains:
		return 1
	default:
		return 0
	}
}

// placeBroadleaf places a trunk with a rounded leaf canopy.
func (tg *TreeGenerator) placeBroadleaf(grid *world.VoxelGrid, x, baseY, z int, rng *chunkRNG, size, height int) {
	trunk := 4 + rng.nextN(3) // 4-6
	if baseY+trunk+2 >= height {
		return
	}

	for y := baseY; y < baseY+trunk; y++ {
		grid.SetUnchecked(x, y, z, block.Log)
	}

	leafBase := baseY + trunk - 2
	for dy := 0; dy < 4; dy++ {
		y := leafBase + dy
		radius := 2
		if dy >= 2 {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				lx, lz := x+dx, z+dz
				if lx < 0 || lx >= size || lz < 0 || lz >= size {
					continue
				}
				if dx == 0 && dz == 0 && y < baseY+trunk {
					continue
				}
				// Trim corners for a rounder crown.
				if radius == 2 && abs(dx) == 2 && abs(dz) == 2 && rng.nextN(2) == 0 {
					continue
				}
				if grid.AtUnchecked(lx, y, lz) == block.Air {
					grid.SetUnchecked(lx, y, lz, block.Leaves)
				}
			}
		}
	}
}

// placeConifer places a conical tree for cold biomes.
func (tg *TreeGenerator) placeConifer(grid *world.VoxelGrid, x, baseY, z int, rng *chunkRNG, size, height int) {
	trunk := 6 + rng.nextN(3) // 6-8
	if baseY+trunk+1 >= height {
		return
	}

	for y := baseY; y < baseY+trunk; y++ {
		grid.SetUnchecked(x, y, z, block.Log)
	}

	for dy := 1; dy <= trunk; dy++ {
		y := baseY + dy
		radius := (trunk - dy) / 2
		if radius > 3 {
			radius = 3
		}
		if radius <= 0 && dy < trunk {
			continue
		}
		if radius >= 2 && dy%2 == 0 {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				lx, lz := x+dx, z+dz
				if lx < 0 || lx >= size || lz < 0 || lz >= size {
					continue
				}
				if dx == 0 && dz == 0 {
					continue
				}
				if grid.AtUnchecked(lx, y, lz) == block.Air {
					grid.SetUnchecked(lx, y, lz, block.Leaves)
				}
			}
		}
	}
	grid.SetUnchecked(x, baseY+trunk, z, block.Leaves)
}

// placeVegetation scatters tall grass, flowers, cacti, and dead bushes.
func (tg *TreeGenerator) placeVegetation(grid *world.VoxelGrid, heights []int, biomes []Biome, rng *chunkRNG, p Params) {
	size := p.ChunkSize
	for attempt := 0; attempt < 20; attempt++ {
		x := rng.nextN(size)
		z := rng.nextN(size)
		y := heights[x*size+z]
		if y <= tg.seaLevel || y+4 >= p.Height {
			continue
		}
		top := grid.AtUnchecked(x, y, z)

		switch biomes[x*size+z] {
		case BiomeDesert:
			if top != block.Sand {
				continue
			}
			if rng.nextN(8) == 0 {
				h := 1 + rng.nextN(3)
				for dy := 1; dy <= h; dy++ {
					grid.SetUnchecked(x, y+dy, z, block.Cactus)
				}
			} else if rng.nextN(4) == 0 {
				grid.SetUnchecked(x, y+1, z, block.DeadBush)
			}

		case BiomePlains, BiomeForest:
			if top != block.Grass {
				continue
			}
			if rng.nextN(3) == 0 {
				grid.SetUnchecked(x, y+1, z, block.TallGrass)
			} else if rng.nextN(8) == 0 {
				grid.SetUnchecked(x, y+1, z, block.Flower)
			}

		case BiomeTundra, BiomeMountains:
			if top != block.Grass && top != block.Snow {
				continue
			}
			if rng.nextN(6) == 0 {
				grid.SetUnchecked(x, y+1, z, block.TallGrass)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
