package world

import (
	"testing"

	"github.com/markoelez/blockworld/internal/engine/mesh"
)

func TestChunkPosAt(t *testing.T) {
	tests := []struct {
		bx, bz int
		want   ChunkPos
	}{
		{0, 0, ChunkPos{0, 0}},
		{15, 15, ChunkPos{0, 0}},
		{16, 0, ChunkPos{1, 0}},
		{-1, 0, ChunkPos{-1, 0}},
		{-16, -16, ChunkPos{-1, -1}},
		{-17, 31, ChunkPos{-2, 1}},
	}
	for _, tt := range tests {
		if got := ChunkPosAt(tt.bx, tt.bz, 16); got != tt.want {
			t.Errorf("ChunkPosAt(%d,%d,16) = %v, want %v", tt.bx, tt.bz, got, tt.want)
		}
	}
}

func TestFloorDivMod(t *testing.T) {
	tests := []struct {
		a, b, div, mod int
	}{
		{7, 16, 0, 7},
		{16, 16, 1, 0},
		{-1, 16, -1, 15},
		{-16, 16, -1, 0},
		{-17, 16, -2, 15},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.div {
			t.Errorf("floorDiv(%d,%d) = %d, want %d", tt.a, tt.b, got, tt.div)
		}
		if got := floorMod(tt.a, tt.b); got != tt.mod {
			t.Errorf("floorMod(%d,%d) = %d, want %d", tt.a, tt.b, got, tt.mod)
		}
	}
}

func TestChunkStateString(t *testing.T) {
	tests := []struct {
		s    ChunkState
		want string
	}{
		{StateRequested, "requested"},
		{StateGenerating, "generating"},
		{StateReady, "ready"},
		{StateRemeshing, "remeshing"},
		{ChunkState(99), "invalid"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("ChunkState(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestChunkReady(t *testing.T) {
	c := NewChunk(ChunkPos{})
	if c.Ready() {
		t.Error("fresh chunk reports ready")
	}
	c.State = StateReady
	if c.Ready() {
		t.Error("ready state without mesh reports ready")
	}
	c.Mesh = &mesh.Buffers{}
	if !c.Ready() {
		t.Error("ready state with mesh does not report ready")
	}
	// A re-mesh in flight keeps the previous mesh drawable.
	c.State = StateRemeshing
	if !c.Ready() {
		t.Error("remeshing chunk with a prior mesh does not report ready")
	}
	c.State = StateGenerating
	if c.Ready() {
		t.Error("generating chunk reports ready")
	}
}
