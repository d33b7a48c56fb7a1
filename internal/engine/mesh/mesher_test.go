package mesh

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/markoelez/blockworld/internal/engine/block"
)

// testGrid is a minimal Grid for meshing tests.
type testGrid struct {
	sx, sy, sz int
	blocks     []block.Type
}

func newTestGrid(sx, sy, sz int) *testGrid {
	return &testGrid{sx: sx, sy: sy, sz: sz, blocks: make([]block.Type, sx*sy*sz)}
}

func (g *testGrid) Size() (int, int, int) { return g.sx, g.sy, g.sz }

func (g *testGrid) AtUnchecked(x, y, z int) block.Type {
	return g.blocks[(y*g.sz+z)*g.sx+x]
}

func (g *testGrid) set(x, y, z int, t block.Type) {
	g.blocks[(y*g.sz+z)*g.sx+x] = t
}

// unitFace identifies one exposed unit face: the emitting voxel plus the
// face direction.
type unitFace struct {
	x, y, z    int
	dx, dy, dz int
}

// naiveFaces emits one face per visible unit voxel face, with the same probe
// and visibility semantics as the greedy mesher. Rasterizing the greedy
// output must reproduce these sets exactly.
func naiveFaces(g Grid, lookup NeighborLookup) (opaque, transparent map[unitFace]bool) {
	opaque = make(map[unitFace]bool)
	transparent = make(map[unitFace]bool)

	sx, sy, sz := g.Size()
	probe := func(x, y, z int) block.Type {
		if y < 0 || y >= sy {
			return block.Air
		}
		if x >= 0 && x < sx && z >= 0 && z < sz {
			return g.AtUnchecked(x, y, z)
		}
		if lookup == nil {
			return block.Unknown
		}
		return lookup(x, y, z)
	}
	dirs := [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}

	for x := 0; x < sx; x++ {
		for y := 0; y < sy; y++ {
			for z := 0; z < sz; z++ {
				near := g.AtUnchecked(x, y, z)
				if block.IsAir(near) {
					continue
				}
				for _, d := range dirs {
					if !faceVisible(near, probe(x+d[0], y+d[1], z+d[2])) {
						continue
					}
					f := unitFace{x, y, z, d[0], d[1], d[2]}
					if block.IsTransparent(near) {
						transparent[f] = true
					} else {
						opaque[f] = true
					}
				}
			}
		}
	}
	return opaque, transparent
}

// rasterize splits every merged quad back into the unit faces it covers.
// Duplicate or overlapping coverage fails the test through a count mismatch.
func rasterize(t *testing.T, d *Data) map[unitFace]bool {
	t.Helper()
	out := make(map[unitFace]bool)

	for i := 0; i+3 < len(d.Vertices); i += 4 {
		n := d.Vertices[i].Normal
		var axis, sign int
		for a := 0; a < 3; a++ {
			if n[a] != 0 {
				axis = a
				sign = int(n[a])
			}
		}

		// Component-wise extent of the quad.
		lo, hi := d.Vertices[i].Position, d.Vertices[i].Position
		for j := 1; j < 4; j++ {
			p := d.Vertices[i+j].Position
			for a := 0; a < 3; a++ {
				if p[a] < lo[a] {
					lo[a] = p[a]
				}
				if p[a] > hi[a] {
					hi[a] = p[a]
				}
			}
		}

		// The near voxel sits one step behind the plane for +faces.
		slice := int(lo[axis])
		if sign > 0 {
			slice--
		}
		uAxis, vAxis := (axis+1)%3, (axis+2)%3
		for u := int(lo[uAxis]); u < int(hi[uAxis]); u++ {
			for v := int(lo[vAxis]); v < int(hi[vAxis]); v++ {
				var p, dir [3]int
				p[axis], p[uAxis], p[vAxis] = slice, u, v
				dir[axis] = sign
				f := unitFace{p[0], p[1], p[2], dir[0], dir[1], dir[2]}
				if out[f] {
					t.Fatalf("quads overlap at face %+v", f)
				}
				out[f] = true
			}
		}
	}
	return out
}

func sameFaces(a, b map[unitFace]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for f := range a {
		if !b[f] {
			return false
		}
	}
	return true
}

// quadArea sums width*height over all quads, read from the corner texture
// coordinates.
func quadArea(d *Data) int {
	area := 0
	for i := 0; i+3 < len(d.Vertices); i += 4 {
		uv := d.Vertices[i+2].TexCoords
		area += int(uv.X()) * int(uv.Y())
	}
	return area
}

func airLookup(int, int, int) block.Type { return block.Air }

func TestCubeMeshesSixQuads(t *testing.T) {
	g := newTestGrid(4, 4, 4)
	for x := 1; x <= 2; x++ {
		for y := 1; y <= 2; y++ {
			for z := 1; z <= 2; z++ {
				g.set(x, y, z, block.Stone)
			}
		}
	}

	b := Mesh(g, nil)

	if got := b.Opaque.QuadCount(); got != 6 {
		t.Errorf("2x2x2 cube opaque quads = %d, want 6", got)
	}
	if len(b.Opaque.Vertices) != 24 {
		t.Errorf("vertices = %d, want 24", len(b.Opaque.Vertices))
	}
	if len(b.Opaque.Indices) != 36 {
		t.Errorf("indices = %d, want 36", len(b.Opaque.Indices))
	}
	if !b.Transparent.Empty() {
		t.Error("stone cube produced transparent geometry")
	}
	if got := quadArea(&b.Opaque); got != 24 {
		t.Errorf("cube surface area = %d, want 24", got)
	}
}

func TestSingleVoxelSixQuads(t *testing.T) {
	g := newTestGrid(3, 3, 3)
	g.set(1, 1, 1, block.Dirt)

	b := Mesh(g, nil)
	if got := b.Opaque.QuadCount(); got != 6 {
		t.Errorf("single voxel quads = %d, want 6", got)
	}
}

func TestSlabMergesAndUnknownSuppresses(t *testing.T) {
	g := newTestGrid(4, 4, 4)
	for x := 0; x < 4; x++ {
		for z := 0; z < 4; z++ {
			g.set(x, 0, z, block.Stone)
		}
	}

	// No neighbor data: the four side walls at the chunk boundary are
	// suppressed, leaving one merged top quad and one merged bottom quad.
	b := Mesh(g, nil)
	if got := b.Opaque.QuadCount(); got != 2 {
		t.Errorf("slab with unknown sides quads = %d, want 2", got)
	}

	// With air neighbors the four side strips appear, each merged.
	b = Mesh(g, airLookup)
	if got := b.Opaque.QuadCount(); got != 6 {
		t.Errorf("slab with air sides quads = %d, want 6", got)
	}
}

func TestGreedyMatchesNaiveFaces(t *testing.T) {
	palette := []block.Type{
		block.Air, block.Air, block.Air,
		block.Stone, block.Dirt, block.Sand, block.Water, block.Leaves,
	}
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		g := newTestGrid(8, 8, 8)
		for i := range g.blocks {
			g.blocks[i] = palette[rng.Intn(len(palette))]
		}

		for _, lookup := range []NeighborLookup{nil, airLookup} {
			b := Mesh(g, lookup)
			wantO, wantT := naiveFaces(g, lookup)
			if got := rasterize(t, &b.Opaque); !sameFaces(got, wantO) {
				t.Fatalf("trial %d: opaque faces = %d, naive = %d", trial, len(got), len(wantO))
			}
			if got := rasterize(t, &b.Transparent); !sameFaces(got, wantT) {
				t.Fatalf("trial %d: transparent faces = %d, naive = %d", trial, len(got), len(wantT))
			}
			// Merging never increases quad count past one per face.
			if b.Opaque.QuadCount() > len(wantO) || b.Transparent.QuadCount() > len(wantT) {
				t.Fatalf("trial %d: more quads than unit faces", trial)
			}
		}
	}
}

func TestMeshIdempotent(t *testing.T) {
	g := newTestGrid(6, 6, 6)
	rng := rand.New(rand.NewSource(3))
	for i := range g.blocks {
		if rng.Intn(2) == 0 {
			g.blocks[i] = block.Stone
		}
	}

	a := Mesh(g, airLookup)
	b := Mesh(g, airLookup)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("meshing the same grid twice produced different output")
	}
}

func TestWaterSurfaceSplitsPasses(t *testing.T) {
	// A stone floor under a layer of water, open to air above.
	g := newTestGrid(4, 3, 4)
	for x := 0; x < 4; x++ {
		for z := 0; z < 4; z++ {
			g.set(x, 0, z, block.Stone)
			g.set(x, 1, z, block.Water)
		}
	}

	b := Mesh(g, nil)

	// Water top surface merges into one quad; the stone-water interface
	// emits faces on both sides since the opacity classes differ.
	if b.Transparent.Empty() {
		t.Fatal("water produced no transparent geometry")
	}
	if b.Opaque.Empty() {
		t.Fatal("stone floor produced no opaque geometry")
	}
	wantO, wantT := naiveFaces(g, nil)
	if got := rasterize(t, &b.Opaque); !sameFaces(got, wantO) {
		t.Errorf("opaque faces = %d, want %d", len(got), len(wantO))
	}
	if got := rasterize(t, &b.Transparent); !sameFaces(got, wantT) {
		t.Errorf("transparent faces = %d, want %d", len(got), len(wantT))
	}
}

func TestQuadWindingMatchesNormal(t *testing.T) {
	g := newTestGrid(3, 3, 3)
	g.set(1, 1, 1, block.Stone)

	b := Mesh(g, airLookup)
	v := b.Opaque.Vertices
	for i := 0; i+3 < len(v); i += 4 {
		e1 := v[i+1].Position.Sub(v[i].Position)
		e2 := v[i+2].Position.Sub(v[i].Position)
		if e1.Cross(e2).Dot(v[i].Normal) <= 0 {
			t.Errorf("quad %d wound clockwise against its normal %v", i/4, v[i].Normal)
		}
	}
}

func TestVertexBlockTypeField(t *testing.T) {
	g := newTestGrid(3, 3, 3)
	g.set(1, 1, 1, block.DiamondOre)

	b := Mesh(g, airLookup)
	for _, vert := range b.Opaque.Vertices {
		if vert.BlockType != float32(block.DiamondOre) {
			t.Fatalf("vertex block type = %v, want %v", vert.BlockType, float32(block.DiamondOre))
		}
		if vert.Flags != FlagNone {
			t.Fatalf("vertex flags = %v, want FlagNone", vert.Flags)
		}
	}
}
