package gen

// Biome classifies a surface column. Biomes drive terrain amplitude, surface
// materials, and decoration density.
type Biome uint8

const (
	BiomePlains Biome = iota
	BiomeForest
	BiomeDesert
	BiomeMountains
	BiomeTundra
	BiomeOcean
)

func (b Biome) String() string {
	switch b {
	case BiomePlains:
		return "plains"
	case BiomeForest:
		return "forest"
	case BiomeDesert:
		return "desert"
	case BiomeMountains:
		return "mountains"
	case BiomeTundra:
		return "tundra"
	case BiomeOcean:
		return "ocean"
	default:
		return "invalid"
	}
}

// BiomeGenerator selects biomes from temperature and moisture noise fields,
// with elevation overrides for mountains and oceans.
type BiomeGenerator struct {
	tempNoise  *NoiseChannel
	moistNoise *NoiseChannel
	terrain    *NoiseChannel
	seaLevel   int
}

// NewBiomeGenerator creates a BiomeGenerator from a seed.
func NewBiomeGenerator(seed int64, seaLevel int) *BiomeGenerator {
	return &BiomeGenerator{
		tempNoise:  NewNoiseChannel(seed + 100),
		moistNoise: NewNoiseChannel(seed + 200),
		terrain:    NewNoiseChannel(seed),
		seaLevel:   seaLevel,
	}
}

// continentHeight is the biome-independent elevation field. Terrain height is
// refined from it per biome, but the biome decision itself must not depend on
// the biome, so this raw field drives the ocean and mountain overrides.
func (bg *BiomeGenerator) continentHeight(bx, bz int) float64 {
	n := bg.terrain.Octave2D(float64(bx)/128.0, float64(bz)/128.0, 6, 0.5)
	return float64(bg.seaLevel) + 8.0 + n*28.0
}

// BiomeAt returns the biome at the given world block coordinates.
func (bg *BiomeGenerator) BiomeAt(bx, bz int) Biome {
	elev := bg.continentHeight(bx, bz)
	if elev < float64(bg.seaLevel)-2 {
		return BiomeOcean
	}
	if elev > float64(bg.seaLevel)+28 {
		return BiomeMountains
	}

	temp := bg.tempNoise.Octave2D(float64(bx)*0.003, float64(bz)*0.003, 4, 0.5)*0.5 + 0.5
	moist := bg.moistNoise.Octave2D(float64(bx)*0.004, float64(bz)*0.004, 4, 0.5)*0.5 + 0.5

	return selectBiome(temp, moist)
}

// selectBiome maps temperature and moisture to a biome.
//
//	Temp\Moist    | Dry (<0.4)  | Wet (>=0.4)
//	Cold <0.35    | Tundra      | Tundra
//	Mild 0.35-0.65| Plains      | Forest (moist > 0.55)
//	Hot >0.65     | Desert      | Forest
func selectBiome(temp, moist float64) Biome {
	switch {
	case temp < 0.35:
		return BiomeTundra
	case temp > 0.65:
		if moist < 0.4 {
			return BiomeDesert
		}
		return BiomeForest
	default:
		if moist > 0.55 {
			return BiomeForest
		}
		return BiomePlains
	}
}
