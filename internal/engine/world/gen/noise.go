package gen

import "github.com/ojrac/opensimplex-go"

// NoiseChannel wraps a seeded simplex noise source with octave layering.
// Channels at different seed offsets are independent, so terrain, caves,
// biomes, and rivers never correlate.
type NoiseChannel struct {
	n opensimplex.Noise
}

// NewNoiseChannel creates a noise channel from a seed.
func NewNoiseChannel(seed int64) *NoiseChannel {
	return &NoiseChannel{n: opensimplex.New(seed)}
}

// Sample2D returns simplex noise in roughly [-1, 1].
func (c *NoiseChannel) Sample2D(x, y float64) float64 { return c.n.Eval2(x, y) }

// Sample3D returns simplex noise in roughly [-1, 1].
func (c *NoiseChannel) Sample3D(x, y, z float64) float64 { return c.n.Eval3(x, y, z) }

// Octave2D layers multiple octaves of 2D noise for natural-looking terrain.
// Returns a value roughly in [-1, 1].
func (c *NoiseChannel) Octave2D(x, y float64, octaves int, persistence float64) float64 {
	var total, maxVal float64
	amplitude := 1.0
	frequency := 1.0

	for oct := 0; oct < octaves; oct++ {
		total += c.n.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2.0
	}
	return total / maxVal
}

// Octave3D layers multiple octaves of 3D noise.
func (c *NoiseChannel) Octave3D(x, y, z float64, octaves int, persistence float64) float64 {
	var total, maxVal float64
	amplitude := 1.0
	frequency := 1.0

	for oct := 0; oct < octaves; oct++ {
		total += c.n.Eval3(x*frequency, y*frequency, z*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2.0
	}
	return total / maxVal
}

// chunkRNG is a simple deterministic RNG for per-chunk generation. Each
// generation stage seeds its own with a distinct salt so stages stay
// independent of each other's draw counts.
type chunkRNG struct {
	state int64
}

func newChunkRNG(seed int64, cx, cz int, salt int64) *chunkRNG {
	s := seed ^ (int64(cx)*341873128712 + int64(cz)*132897987541 + salt)
	return &chunkRNG{state: s}
}

func (r *chunkRNG) next() int64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

func (r *chunkRNG) nextN(n int) int {
	v := int(r.next()>>33) % n
	if v < 0 {
		v = -v
	}
	return v
}

// cellRNG seeds an RNG from a structure grid cell rather than a chunk, so
// every chunk overlapping the cell derives the same decisions.
func newCellRNG(seed int64, cellX, cellZ int, salt int64) *chunkRNG {
	s := seed ^ (int64(cellX)*341873128712 + int64(cellZ)*132897987541 + salt)
	return &chunkRNG{state: s}
}
