package block

import "testing"

func TestEveryTypeHasName(t *testing.T) {
	seen := make(map[string]Type)
	for i := 0; i < Count(); i++ {
		bt := Type(i)
		name := bt.Name()
		if name == "" || name == "unknown" {
			t.Errorf("type %d has no name", i)
			continue
		}
		if prev, dup := seen[name]; dup {
			t.Errorf("types %d and %d share name %q", prev, bt, name)
		}
		seen[name] = bt
	}
}

func TestOpacityClasses(t *testing.T) {
	tests := []struct {
		bt   Type
		want Opacity
	}{
		{Air, OpacityAir},
		{Stone, OpacityOpaque},
		{Grass, OpacityOpaque},
		{Water, OpacityTransparent},
		{Lava, OpacityTransparent},
		{Ice, OpacityTransparent},
		{Leaves, OpacityTransparent},
		{Glass, OpacityTransparent},
		{Unknown, OpacityOpaque},
	}
	for _, tt := range tests {
		if got := OpacityOf(tt.bt); got != tt.want {
			t.Errorf("OpacityOf(%s) = %d, want %d", tt.bt.Name(), got, tt.want)
		}
	}
}

func TestOpacityPredicatesConsistent(t *testing.T) {
	for i := 0; i < Count(); i++ {
		bt := Type(i)
		classes := 0
		if IsAir(bt) {
			classes++
		}
		if IsOpaque(bt) {
			classes++
		}
		if IsTransparent(bt) {
			classes++
		}
		if classes != 1 {
			t.Errorf("type %s matches %d opacity predicates, want exactly 1", bt.Name(), classes)
		}
	}
}

func TestBarrierInvisibleButSolid(t *testing.T) {
	if !IsAir(Barrier) {
		t.Error("barrier should render as air")
	}
	if !Collides(Barrier) {
		t.Error("barrier should collide")
	}
}

func TestUnknownCollides(t *testing.T) {
	// Movement into unloaded chunks must be blocked.
	if !Collides(Unknown) {
		t.Error("unknown should collide")
	}
}

func TestFoodValues(t *testing.T) {
	tests := []struct {
		bt         Type
		points     float64
		saturation float64
	}{
		{Apple, 4, 2.4},
		{Bread, 5, 6},
		{RawPork, 3, 1.8},
		{RawBeef, 3, 1.8},
	}
	for _, tt := range tests {
		points, saturation, ok := FoodValue(tt.bt)
		if !ok {
			t.Errorf("FoodValue(%s) not edible", tt.bt.Name())
			continue
		}
		if points != tt.points || saturation != tt.saturation {
			t.Errorf("FoodValue(%s) = (%v, %v), want (%v, %v)",
				tt.bt.Name(), points, saturation, tt.points, tt.saturation)
		}
	}

	if _, _, ok := FoodValue(Stone); ok {
		t.Error("stone should not be edible")
	}
}
