package utils

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/types"
)

func TestParseBindings(t *testing.T) {
	bindings, err := ParseBindings(config.DefaultBindings())
	if err != nil {
		t.Fatalf("ParseBindings() error = %v", err)
	}

	tests := []struct {
		control types.Control
		want    []ebiten.Key
	}{
		{types.ControlLeft, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}},
		{types.ControlRight, []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}},
		{types.ControlUp, []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}},
		{types.ControlDown, []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}},
		{types.ControlFire, []ebiten.Key{ebiten.KeySpace}},
	}
	for _, tt := range tests {
		t.Run(tt.control.String(), func(t *testing.T) {
			got := bindings.Keys(tt.control)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("key %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseBindingsErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string][]string
	}{
		{"unknown control", map[string][]string{"jump": {"Space"}}},
		{"unknown key", map[string][]string{"fire": {"NoSuchKey"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBindings(tt.raw); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestKeyboardInputIsHeld(t *testing.T) {
	bindings := KeyBindings{
		types.ControlLeft: {ebiten.KeyA, ebiten.KeyArrowLeft},
		types.ControlFire: {ebiten.KeySpace},
	}
	down := map[ebiten.Key]bool{ebiten.KeyArrowLeft: true}
	in := &KeyboardInput{
		bindings: bindings,
		pressed:  func(k ebiten.Key) bool { return down[k] },
	}

	if !in.IsHeld(types.ControlLeft) {
		t.Error("left should be held through its second binding")
	}
	if in.IsHeld(types.ControlFire) {
		t.Error("fire should not be held")
	}
	if in.IsHeld(types.ControlDown) {
		t.Error("unbound control should never be held")
	}
}
