// Package block defines the closed set of block types and their static
// properties. Properties are table lookups keyed by the compact type code;
// there is no per-block state and no dynamic dispatch.
package block

// Type is the compact code for a block type, stored directly in voxel grids.
type Type uint8

// The closed block enumeration. New variants append at the end; codes are
// part of the vertex format handed to the renderer and must stay stable.
const (
	Air Type = iota
	Grass
	Dirt
	Stone
	Cobblestone
	Bedrock
	Sand
	Sandstone
	Gravel
	Clay
	Snow
	Ice
	Water
	Lava
	Log
	Planks
	Leaves
	Glass
	CoalOre
	IronOre
	GoldOre
	DiamondOre
	Torch
	Glowstone
	Ladder
	Chest
	CraftingTable
	TallGrass
	Flower
	Cactus
	DeadBush
	Barrier
	Apple
	Bread
	RawPork
	RawBeef

	typeCount
)

// Unknown is the sentinel returned for voxels in non-resident chunks. It is
// not a member of the closed set and is never written into a grid. It is
// classified opaque so that meshing against an unloaded neighbor suppresses
// the boundary face instead of leaking geometry into unloaded space.
const Unknown Type = 255

// Opacity classifies how a block interacts with face visibility.
type Opacity uint8

const (
	OpacityAir Opacity = iota
	OpacityOpaque
	OpacityTransparent
)

type properties struct {
	name       string
	opacity    Opacity
	collides   bool
	foodPoints float64
	saturation float64
}

var table = [typeCount]properties{
	Air:           {name: "air", opacity: OpacityAir},
	Grass:         {name: "grass", opacity: OpacityOpaque, collides: true},
	Dirt:          {name: "dirt", opacity: OpacityOpaque, collides: true},
	Stone:         {name: "stone", opacity: OpacityOpaque, collides: true},
	Cobblestone:   {name: "cobblestone", opacity: OpacityOpaque, collides: true},
	Bedrock:       {name: "bedrock", opacity: OpacityOpaque, collides: true},
	Sand:          {name: "sand", opacity: OpacityOpaque, collides: true},
	Sandstone:     {name: "sandstone", opacity: OpacityOpaque, collides: true},
	Gravel:        {name: "gravel", opacity: OpacityOpaque, collides: true},
	Clay:          {name: "clay", opacity: OpacityOpaque, collides: true},
	Snow:          {name: "snow", opacity: OpacityOpaque, collides: true},
	Ice:           {name: "ice", opacity: OpacityTransparent, collides: true},
	Water:         {name: "water", opacity: OpacityTransparent},
	Lava:          {name: "lava", opacity: OpacityTransparent},
	Log:           {name: "log", opacity: OpacityOpaque, collides: true},
	Planks:        {name: "planks", opacity: OpacityOpaque, collides: true},
	Leaves:        {name: "leaves", opacity: OpacityTransparent, collides: true},
	Glass:         {name: "glass", opacity: OpacityTransparent, collides: true},
	CoalOre:       {name: "coal_ore", opacity: OpacityOpaque, collides: true},
	IronOre:       {name: "iron_ore", opacity: OpacityOpaque, collides: true},
	GoldOre:       {name: "gold_ore", opacity: OpacityOpaque, collides: true},
	DiamondOre:    {name: "diamond_ore", opacity: OpacityOpaque, collides: true},
	Torch:         {name: "torch", opacity: OpacityTransparent},
	Glowstone:     {name: "glowstone", opacity: OpacityOpaque, collides: true},
	Ladder:        {name: "ladder", opacity: OpacityTransparent},
	Chest:         {name: "chest", opacity: OpacityOpaque, collides: true},
	CraftingTable: {name: "crafting_table", opacity: OpacityOpaque, collides: true},
	TallGrass:     {name: "tall_grass", opacity: OpacityTransparent},
	Flower:        {name: "flower", opacity: OpacityTransparent},
	Cactus:        {name: "cactus", opacity: OpacityOpaque, collides: true},
	DeadBush:      {name: "dead_bush", opacity: OpacityTransparent},
	Barrier:       {name: "barrier", opacity: OpacityAir, collides: true},
	Apple:         {name: "apple", opacity: OpacityTransparent, foodPoints: 4, saturation: 2.4},
	Bread:         {name: "bread", opacity: OpacityTransparent, foodPoints: 5, saturation: 6},
	RawPork:       {name: "raw_pork", opacity: OpacityTransparent, foodPoints: 3, saturation: 1.8},
	RawBeef:       {name: "raw_beef", opacity: OpacityTransparent, foodPoints: 3, saturation: 1.8},
}

// Name returns the stable lowercase identifier for a block type.
func (t Type) Name() string {
	if t == Unknown {
		return "unknown"
	}
	if int(t) >= len(table) {
		return "invalid"
	}
	return table[t].name
}

// OpacityOf returns the opacity classification. Unknown is opaque by policy.
func OpacityOf(t Type) Opacity {
	if t == Unknown {
		return OpacityOpaque
	}
	if int(t) >= len(table) {
		return OpacityOpaque
	}
	return table[t].opacity
}

// IsOpaque reports whether the block fully occludes the face behind it.
func IsOpaque(t Type) bool { return OpacityOf(t) == OpacityOpaque }

// IsTransparent reports whether the block is drawn in the transparent pass.
func IsTransparent(t Type) bool { return OpacityOf(t) == OpacityTransparent }

// IsAir reports whether the block occupies no visual volume. Barrier counts:
// it collides but never renders.
func IsAir(t Type) bool { return OpacityOf(t) == OpacityAir }

// Collides reports whether the block participates in collision queries.
// Unknown collides, so physics treats unloaded space as solid.
func Collides(t Type) bool {
	if t == Unknown {
		return true
	}
	if int(t) >= len(table) {
		return false
	}
	return table[t].collides
}

// FoodValue returns the hunger and saturation restored by consuming the
// block, and whether it is edible at all.
func FoodValue(t Type) (points, saturation float64, ok bool) {
	if t == Unknown || int(t) >= len(table) {
		return 0, 0, false
	}
	p := table[t]
	return p.foodPoints, p.saturation, p.foodPoints > 0
}

// Count returns the number of variants in the closed set.
func Count() int { return int(typeCount) }
