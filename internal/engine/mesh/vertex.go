// Package mesh converts chunk voxel data into renderable geometry. Faces are
// merged greedily per direction so triangle counts track visible surface
// complexity, not voxel count.
package mesh

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the per-vertex layout handed to the renderer. Positions are
// chunk-local; the renderer offsets by the chunk's world origin.
type Vertex struct {
	Position  mgl32.Vec3
	TexCoords mgl32.Vec2 // scaled to quad width/height for tiling materials
	Normal    mgl32.Vec3
	BlockType float32 // block code for GPU-side material selection
	Flags     float32 // render-mode scalar; negative values are sentinels
}

// Flags sentinel values. Zero is the normal render path; negative values
// select special shading modes on the GPU side.
const (
	FlagNone       float32 = 0
	FlagPreview    float32 = -1 // placement preview ghost
	FlagUnderwater float32 = -2 // submerged depth tint
)

// Data is one vertex+index buffer pair. Indices are triangle lists.
type Data struct {
	Vertices []Vertex
	Indices  []uint32
}

// Empty reports whether the buffer holds no geometry.
func (d *Data) Empty() bool { return len(d.Indices) == 0 }

// QuadCount returns the number of merged quads in the buffer.
func (d *Data) QuadCount() int { return len(d.Indices) / 6 }

// Buffers is the complete geometry for one chunk: one pair per render pass.
// Buffers are immutable once produced; a re-mesh replaces the whole value.
type Buffers struct {
	Opaque      Data
	Transparent Data
}
