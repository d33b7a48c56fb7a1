package gen

import (
	"fmt"

	"github.com/markoelez/blockworld/internal/engine/block"
	"github.com/markoelez/blockworld/internal/engine/world"
)

// Params fixes the world shape a generator produces. The same Params and
// seed always yield byte-identical chunks.
type Params struct {
	Seed      int64
	ChunkSize int
	Height    int
	SeaLevel  int
}

// Generator produces chunk voxel data deterministically from world
// coordinates. Implementations must be safe for concurrent Generate calls.
type Generator interface {
	Generate(chunkX, chunkZ int) (*world.VoxelGrid, error)
	HeightAt(blockX, blockZ int) int
	BiomeAt(blockX, blockZ int) Biome
}

// Fault reports a failed generation stage. The scheduler retries faulted
// chunks once before substituting fallback terrain.
type Fault struct {
	Pos   world.ChunkPos
	Stage string
	Cause error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("gen: chunk (%d,%d) failed in %s: %v", f.Pos.X, f.Pos.Z, f.Stage, f.Cause)
}

func (f *Fault) Unwrap() error { return f.Cause }

// DefaultGenerator produces layered terrain with biomes, rivers, caves,
// ores, trees, and structures.
type DefaultGenerator struct {
	p Params

	detail *NoiseChannel
	river  *NoiseChannel
	lake   *NoiseChannel

	biomeGen  *BiomeGenerator
	caveGen   *CaveGenerator
	oreGen    *OreGenerator
	treeGen   *TreeGenerator
	structGen *StructureGenerator
}

// NewDefaultGenerator creates a DefaultGenerator for the given params.
func NewDefaultGenerator(p Params) *DefaultGenerator {
	return &DefaultGenerator{
		p:         p,
		detail:    NewNoiseChannel(p.Seed + 1),
		river:     NewNoiseChannel(p.Seed + 2),
		lake:      NewNoiseChannel(p.Seed + 3),
		biomeGen:  NewBiomeGenerator(p.Seed, p.SeaLevel),
		caveGen:   NewCaveGenerator(p.Seed),
		oreGen:    NewOreGenerator(p.Seed),
		treeGen:   NewTreeGenerator(p.Seed, p.SeaLevel),
		structGen: NewStructureGenerator(p.Seed),
	}
}

// Generate builds the full voxel grid for one chunk. Stages run in a fixed
// order so later stages see the exact terrain earlier stages produced.
func (g *DefaultGenerator) Generate(chunkX, chunkZ int) (*world.VoxelGrid, error) {
	size, height := g.p.ChunkSize, g.p.Height
	grid := world.NewVoxelGrid(size, height, size)

	// Pass 1: heightmap, biomes, and column fill.
	heights := make([]int, size*size)
	biomes := make([]Biome, size*size)
	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			bx := chunkX*size + x
			bz := chunkZ*size + z

			biome := g.biomeGen.BiomeAt(bx, bz)
			h := g.heightFor(bx, bz, biome)

			idx := x*size + z
			heights[idx] = h
			biomes[idx] = biome

			g.fillColumn(grid, x, z, bx, bz, h, biome)
		}
	}

	// Pass 2: carve caves.
	g.caveGen.Carve(grid, chunkX, chunkZ, heights, g.p)

	// Pass 3: place ores.
	g.oreGen.Place(grid, chunkX, chunkZ, heights, g.p)

	// Pass 4: trees and vegetation.
	g.treeGen.Decorate(grid, chunkX, chunkZ, heights, biomes, g.p)

	// Pass 5: structures, stamped in world coordinates and clipped to this
	// chunk so the parts falling in neighbor chunks line up seam-free.
	g.structGen.Stamp(grid, chunkX, chunkZ, g, g.p)

	return grid, nil
}

// HeightAt returns the terrain surface height at a world block coordinate,
// before caves and decoration. Matches the top solid block pass 1 produces.
func (g *DefaultGenerator) HeightAt(blockX, blockZ int) int {
	return g.heightFor(blockX, blockZ, g.biomeGen.BiomeAt(blockX, blockZ))
}

// BiomeAt returns the biome at a world block coordinate.
func (g *DefaultGenerator) BiomeAt(blockX, blockZ int) Biome {
	return g.biomeGen.BiomeAt(blockX, blockZ)
}

// heightFor refines the continent elevation with biome-scaled detail noise,
// then carves rivers and lakes into it.
func (g *DefaultGenerator) heightFor(bx, bz int, biome Biome) int {
	base := g.biomeGen.continentHeight(bx, bz)
	detail := g.detail.Octave2D(float64(bx)/32.0, float64(bz)/32.0, 3, 0.5)

	h := base + detail*biomeDetailAmplitude(biome)

	// Ocean floors stay submerged regardless of detail noise.
	if biome == BiomeOcean {
		if floor := float64(g.p.SeaLevel - 2); h > floor {
			h = floor
		}
	}

	if biome != BiomeOcean && biome != BiomeMountains {
		// Rivers follow the zero contour of a low-frequency field.
		rn := g.river.Octave2D(float64(bx)/256.0, float64(bz)/256.0, 2, 0.5)
		if rn > -0.04 && rn < 0.04 {
			if floor := float64(g.p.SeaLevel - 1); h > floor {
				h = floor
			}
		}
		// Lakes pool in isolated hotspots of their own field.
		if g.lake.Sample2D(float64(bx)/64.0, float64(bz)/64.0) > 0.78 {
			if floor := float64(g.p.SeaLevel - 2); h > floor {
				h = floor
			}
		}
	}

	hi := int(h)
	if hi < 1 {
		hi = 1
	}
	if max := g.p.Height - 16; hi > max {
		hi = max
	}
	return hi
}

// biomeDetailAmplitude scales the small-scale detail noise per biome.
func biomeDetailAmplitude(biome Biome) float64 {
	switch biome {
	case BiomeOcean:
		return 3.0
	case BiomePlains:
		return 3.0
	case BiomeForest:
		return 5.0
	case BiomeDesert:
		return 4.0
	case BiomeTundra:
		return 4.0
	case BiomeMountains:
		return 14.0
	default:
		return 4.0
	}
}

// fillColumn fills a single block column with terrain blocks.
func (g *DefaultGenerator) fillColumn(grid *world.VoxelGrid, x, z, bx, bz, height int, biome Biome) {
	// Bedrock floor: y=0 always, y=1..2 mixed with stone.
	grid.SetUnchecked(x, 0, z, block.Bedrock)
	for y := 1; y <= 2; y++ {
		if g.detail.Sample2D(float64(bx)*0.7+float64(y*13), float64(bz)*0.7) > 0 {
			grid.SetUnchecked(x, y, z, block.Bedrock)
		} else {
			grid.SetUnchecked(x, y, z, block.Stone)
		}
	}

	// Stone up to the surface band.
	stoneTop := height - surfaceDepth(biome)
	if stoneTop < 3 {
		stoneTop = 3
	}
	for y := 3; y <= stoneTop && y <= height; y++ {
		grid.SetUnchecked(x, y, z, block.Stone)
	}

	applySurface(grid, x, z, height, biome, g.p.SeaLevel)

	// Water fill where terrain sits below sea level.
	if height < g.p.SeaLevel {
		for y := height + 1; y <= g.p.SeaLevel; y++ {
			grid.SetUnchecked(x, y, z, block.Water)
		}
		// Frozen surface in cold biomes.
		if biome == BiomeTundra {
			grid.SetUnchecked(x, g.p.SeaLevel, z, block.Ice)
		}
	}
}

// surfaceDepth returns how many blocks of surface material go below the top
// block.
func surfaceDepth(biome Biome) int {
	if biome == BiomeDesert {
		return 5
	}
	return 4
}
