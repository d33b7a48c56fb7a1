package gen

import (
	"github.com/markoelez/blockworld/internal/engine/block"
	"github.com/markoelez/blockworld/internal/engine/world"
)

// applySurface places the biome-specific surface blocks on top of the stone
// column.
func applySurface(grid *world.VoxelGrid, x, z, height int, biome Biome, seaLevel int) {
	switch biome {
	case BiomeDesert:
		// Sand on top, sandstone below.
		for y := height; y > height-3 && y > 2; y-- {
			grid.SetUnchecked(x, y, z, block.Sand)
		}
		for y := height - 3; y > height-6 && y > 2; y-- {
			grid.SetUnchecked(x, y, z, block.Sandstone)
		}

	case BiomeOcean:
		// Gravel floor over dirt.
		for y := height; y > height-2 && y > 2; y-- {
			grid.SetUnchecked(x, y, z, block.Gravel)
		}
		for y := height - 2; y > height-5 && y > 2; y-- {
			grid.SetUnchecked(x, y, z, block.Dirt)
		}

	case BiomeMountains:
		if height > seaLevel+30 {
			// Bare stone peaks with a snow cap.
			for y := height; y > height-4 && y > 2; y-- {
				grid.SetUnchecked(x, y, z, block.Stone)
			}
			grid.SetUnchecked(x, height, z, block.Snow)
		} else {
			applyDefaultSurface(grid, x, z, height, seaLevel)
		}

	case BiomeTundra:
		applyDefaultSurface(grid, x, z, height, seaLevel)
		if height > seaLevel {
			grid.SetUnchecked(x, height, z, block.Snow)
		}

	default:
		applyDefaultSurface(grid, x, z, height, seaLevel)
	}
}

// applyDefaultSurface places grass on top with dirt below. Underwater columns
// get dirt instead of grass.
func applyDefaultSurface(grid *world.VoxelGrid, x, z, height, seaLevel int) {
	if height <= 2 {
		return
	}
	if height > seaLevel {
		grid.SetUnchecked(x, height, z, block.Grass)
	} else {
		grid.SetUnchecked(x, height, z, block.Dirt)
	}
	for y := height - 1; y > height-4 && y > 2; y-- {
		grid.SetUnchecked(x, y, z, block.Dirt)
	}
}
