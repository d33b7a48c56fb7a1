package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/markoelez/blockworld/internal/engine/block"
)

// Grid is the voxel source meshed by this package. Satisfied by
// world.VoxelGrid; accepted as an interface so meshing stays decoupled from
// chunk ownership.
type Grid interface {
	Size() (sx, sy, sz int)
	AtUnchecked(x, y, z int) block.Type
}

// NeighborLookup resolves probes that fall outside the grid on the ±X/±Z
// sides, in the grid's local coordinates (one step beyond the extent). It
// returns block.Unknown for neighbors that are not resident.
type NeighborLookup func(x, y, z int) block.Type

// Mesh builds greedily merged opaque and transparent geometry for one chunk.
// A nil lookup treats every side neighbor as Unknown, which suppresses all
// boundary faces.
func Mesh(g Grid, lookup NeighborLookup) *Buffers {
	b := &Buffers{}
	for axis := 0; axis < 3; axis++ {
		meshDirection(b, g, lookup, axis, +1)
		meshDirection(b, g, lookup, axis, -1)
	}
	return b
}

// faceVisible decides whether a face between near (non-air) and the voxel
// beyond it is emitted. Unknown neighbors suppress the face entirely: drawing
// nothing at an unloaded boundary beats leaking a wall of geometry, and the
// neighbor-arrival re-mesh corrects it.
func faceVisible(near, far block.Type) bool {
	if far == block.Unknown {
		return false
	}
	if block.IsAir(far) {
		return true
	}
	return block.OpacityOf(far) != block.OpacityOf(near)
}

// meshDirection greedily meshes all faces pointing along one axis direction.
// For each depth slice it builds a 2D mask of visible-face candidates keyed
// by block type, then merges maximal same-type rectangles row-major: extend
// the width while successor cells match, then extend the height while the
// whole row matches.
func meshDirection(b *Buffers, g Grid, lookup NeighborLookup, axis, sign int) {
	var dims [3]int
	dims[0], dims[1], dims[2] = g.Size()

	// In-plane axes chosen so that e_u × e_v points along +axis; winding
	// below relies on this.
	uAxis := (axis + 1) % 3
	vAxis := (axis + 2) % 3
	dimS, dimU, dimV := dims[axis], dims[uAxis], dims[vAxis]

	at := func(p [3]int) block.Type { return g.AtUnchecked(p[0], p[1], p[2]) }

	// probe resolves the voxel beyond a face, which may be outside the grid
	// along the slice axis. There are no vertical neighbors: above and below
	// the world is air.
	probe := func(p [3]int) block.Type {
		if p[axis] >= 0 && p[axis] < dimS {
			return at(p)
		}
		if axis == 1 {
			return block.Air
		}
		if lookup == nil {
			return block.Unknown
		}
		return lookup(p[0], p[1], p[2])
	}

	mask := make([]block.Type, dimU*dimV)

	for s := 0; s < dimS; s++ {
		// Build the visibility mask for this slice.
		for u := 0; u < dimU; u++ {
			for v := 0; v < dimV; v++ {
				var p [3]int
				p[axis], p[uAxis], p[vAxis] = s, u, v
				near := at(p)
				if block.IsAir(near) {
					mask[u*dimV+v] = block.Air
					continue
				}
				p[axis] += sign
				if faceVisible(near, probe(p)) {
					mask[u*dimV+v] = near
				} else {
					mask[u*dimV+v] = block.Air
				}
			}
		}

		// Greedy merge.
		for i := 0; i < len(mask); {
			t := mask[i]
			if t == block.Air {
				i++
				continue
			}
			u0, v0 := i/dimV, i%dimV

			width := 1
			for v0+width < dimV && mask[u0*dimV+v0+width] == t {
				width++
			}

			height := 1
		grow:
			for u0+height < dimU {
				for v := v0; v < v0+width; v++ {
					if mask[(u0+height)*dimV+v] != t {
						break grow
					}
				}
				height++
			}

			emitQuad(b, t, axis, sign, s, uAxis, vAxis, u0, v0, height, width)

			for u := u0; u < u0+height; u++ {
				for v := v0; v < v0+width; v++ {
					mask[u*dimV+v] = block.Air
				}
			}
			i += width
		}
	}
}

// emitQuad appends one merged rectangle as two triangles to the pass buffer
// selected by the block's opacity class.
func emitQuad(b *Buffers, t block.Type, axis, sign, s, uAxis, vAxis, u0, v0, height, width int) {
	md := &b.Opaque
	if block.IsTransparent(t) {
		md = &b.Transparent
	}

	// The face plane sits at s for -axis faces and s+1 for +axis faces.
	fs := s
	if sign > 0 {
		fs = s + 1
	}

	corner := func(du, dv int) mgl32.Vec3 {
		var p [3]float32
		p[axis] = float32(fs)
		p[uAxis] = float32(u0 + du)
		p[vAxis] = float32(v0 + dv)
		return mgl32.Vec3{p[0], p[1], p[2]}
	}

	// Plane-coordinate corners; CCW from outside for +axis, reversed for
	// -axis (e_u × e_v points along +axis).
	pos := [4]mgl32.Vec3{corner(0, 0), corner(height, 0), corner(height, width), corner(0, width)}
	uv := [4]mgl32.Vec2{{0, 0}, {0, float32(height)}, {float32(width), float32(height)}, {float32(width), 0}}
	if sign < 0 {
		pos[1], pos[3] = pos[3], pos[1]
		uv[1], uv[3] = uv[3], uv[1]
	}

	var n [3]float32
	n[axis] = float32(sign)
	normal := mgl32.Vec3{n[0], n[1], n[2]}

	base := uint32(len(md.Vertices))
	for i := 0; i < 4; i++ {
		md.Vertices = append(md.Vertices, Vertex{
			Position:  pos[i],
			TexCoords: uv[i],
			Normal:    normal,
			BlockType: float32(t),
			Flags:     FlagNone,
		})
	}
	md.Indices = append(md.Indices, base, base+1, base+2, base+2, base+3, base)
}
