package gen

import (
	"github.com/markoelez/blockworld/internal/engine/block"
	"github.com/markoelez/blockworld/internal/engine/world"
)

// Structure grid cell size in blocks. Each cell holds at most one structure,
// decided purely from the seed and cell coordinates, so every chunk that
// overlaps the cell reconstructs the same decision and stamps its own slice
// of the structure without seams.
const structCell = 48

// Largest structure extent; chunks scan this margin of neighboring cells.
const structMargin = 16

// terrainSampler exposes the pure terrain queries structures anchor against.
type terrainSampler interface {
	HeightAt(blockX, blockZ int) int
	BiomeAt(blockX, blockZ int) Biome
}

// StructureGenerator stamps huts, dungeons, and mineshafts.
type StructureGenerator struct {
	seed int64
}

// NewStructureGenerator creates a StructureGenerator from a seed.
func NewStructureGenerator(seed int64) *StructureGenerator {
	return &StructureGenerator{seed: seed}
}

// Stamp places the chunk's slice of every structure rooted in a nearby cell.
func (sg *StructureGenerator) Stamp(grid *world.VoxelGrid, chunkX, chunkZ int, terrain terrainSampler, p Params) {
	size := p.ChunkSize
	minBx, minBz := chunkX*size, chunkZ*size

	c0x := floorDiv(minBx-structMargin, structCell)
	c1x := floorDiv(minBx+size-1+structMargin, structCell)
	c0z := floorDiv(minBz-structMargin, structCell)
	c1z := floorDiv(minBz+size-1+structMargin, structCell)

	w := &stamper{grid: grid, originX: minBx, originZ: minBz, size: size, height: p.Height}

	for cx := c0x; cx <= c1x; cx++ {
		for cz := c0z; cz <= c1z; cz++ {
			sg.stampCell(w, cx, cz, terrain, p)
		}
	}
}

// stampCell re-derives the cell's structure decision and writes the blocks
// that fall inside this chunk.
func (sg *StructureGenerator) stampCell(w *stamper, cellX, cellZ int, terrain terrainSampler, p Params) {
	rng := newCellRNG(sg.seed, cellX, cellZ, 700)
	if rng.nextN(3) != 0 {
		return
	}

	rx := cellX*structCell + rng.nextN(structCell-12)
	rz := cellZ*structCell + rng.nextN(structCell-12)

	switch rng.nextN(3) {
	case 0:
		surface := terrain.HeightAt(rx, rz)
		if surface <= p.SeaLevel || terrain.BiomeAt(rx, rz) == BiomeOcean {
			return
		}
		sg.stampHut(w, rx, surface+1, rz, rng)
	case 1:
		depth := 14 + rng.nextN(16)
		if depth+6 >= terrain.HeightAt(rx, rz) {
			return
		}
		sg.stampDungeon(w, rx, depth, rz)
	default:
		depth := 20 + rng.nextN(10)
		if depth+4 >= terrain.HeightAt(rx, rz) {
			return
		}
		sg.stampMineshaft(w, rx, depth, rz, rng)
	}
}

// stampHut places a small plank hut with a door gap facing +X.
func (sg *StructureGenerator) stampHut(w *stamper, rx, ry, rz int, rng *chunkRNG) {
	const wdt, hgt, dpt = 5, 4, 5

	// Foundation so huts on slopes do not float.
	for dx := 0; dx < wdt; dx++ {
		for dz := 0; dz < dpt; dz++ {
			w.set(rx+dx, ry-1, rz+dz, block.Cobblestone)
		}
	}

	for dy := 0; dy < hgt; dy++ {
		for dx := 0; dx < wdt; dx++ {
			for dz := 0; dz < dpt; dz++ {
				corner := (dx == 0 || dx == wdt-1) && (dz == 0 || dz == dpt-1)
				edge := dx == 0 || dx == wdt-1 || dz == 0 || dz == dpt-1
				roof := dy == hgt-1
				switch {
				case roof:
					w.set(rx+dx, ry+dy, rz+dz, block.Planks)
				case corner:
					w.set(rx+dx, ry+dy, rz+dz, block.Log)
				case edge:
					// Door gap in the +X wall.
					if dx == wdt-1 && dz == dpt/2 && dy < 2 {
						w.set(rx+dx, ry+dy, rz+dz, block.Air)
					} else {
						w.set(rx+dx, ry+dy, rz+dz, block.Planks)
					}
				default:
					w.set(rx+dx, ry+dy, rz+dz, block.Air)
				}
			}
		}
	}

	w.set(rx+1, ry, rz+1, block.CraftingTable)
	if rng.nextN(2) == 0 {
		w.set(rx+1, ry, rz+dpt-2, block.Chest)
	}
	w.set(rx+wdt/2, ry+hgt-2, rz+dpt/2, block.Torch)
}

// stampDungeon places a hollow cobblestone room with a chest.
func (sg *StructureGenerator) stampDungeon(w *stamper, rx, ry, rz int) {
	const wdt, hgt, dpt = 7, 5, 7

	for dy := 0; dy < hgt; dy++ {
		for dx := 0; dx < wdt; dx++ {
			for dz := 0; dz < dpt; dz++ {
				shell := dx == 0 || dx == wdt-1 || dz == 0 || dz == dpt-1 || dy == 0 || dy == hgt-1
				if shell {
					w.set(rx+dx, ry+dy, rz+dz, block.Cobblestone)
				} else {
					w.set(rx+dx, ry+dy, rz+dz, block.Air)
				}
			}
		}
	}
	w.set(rx+wdt/2, ry+1, rz+dpt/2, block.Chest)
	w.set(rx+1, ry+2, rz+1, block.Torch)
}

// stampMineshaft places a supported corridor running along +X.
func (sg *StructureGenerator) stampMineshaft(w *stamper, rx, ry, rz int, rng *chunkRNG) {
	length := 10 + rng.nextN(6)

	for dx := 0; dx < length; dx++ {
		for dz := 0; dz < 3; dz++ {
			w.set(rx+dx, ry-1, rz+dz, block.Planks)
			for dy := 0; dy < 3; dy++ {
				w.set(rx+dx, ry+dy, rz+dz, block.Air)
			}
		}
		// Log frame with a torch every fourth segment, the occasional
		// ladder up a support.
		if dx%4 == 0 {
			for dy := 0; dy < 3; dy++ {
				w.set(rx+dx, ry+dy, rz, block.Log)
				w.set(rx+dx, ry+dy, rz+2, block.Log)
			}
			w.set(rx+dx, ry+2, rz+1, block.Planks)
			w.set(rx+dx, ry+1, rz+1, block.Torch)
			if rng.nextN(4) == 0 {
				w.set(rx+dx, ry, rz+1, block.Ladder)
			}
		}
	}
}

// stamper clips world-coordinate writes to one chunk's grid.
type stamper struct {
	grid             *world.VoxelGrid
	originX, originZ int
	size, height     int
}

func (w *stamper) set(bx, by, bz int, t block.Type) {
	x, z := bx-w.originX, bz-w.originZ
	if x < 0 || x >= w.size || z < 0 || z >= w.size || by < 0 || by >= w.height {
		return
	}
	w.grid.SetUnchecked(x, by, z, t)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
