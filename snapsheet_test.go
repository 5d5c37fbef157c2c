package snapsheet

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestStateOrder(t *testing.T) {
	if !(StateClosed < StateCollapsed && StateCollapsed < StateMid && StateMid < StateFull) {
		t.Error("states are not ordered lowest to highest")
	}
	if StateExpanded != StateFull {
		t.Error("StateExpanded should alias StateFull")
	}
}

func TestStateText(t *testing.T) {
	for _, s := range []State{StateClosed, StateCollapsed, StateMid, StateFull} {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", s, err)
		}
		var got State
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if got != s {
			t.Errorf("text round trip of %s = %s", s, got)
		}
	}

	var s State
	if err := s.UnmarshalText([]byte(" Expanded ")); err != nil || s != StateFull {
		t.Errorf("UnmarshalText(expanded) = %s, %v; want full", s, err)
	}
	if err := s.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("expected error for unknown state")
	}
	if _, err := State(9).MarshalText(); err == nil {
		t.Error("expected error for out-of-range state")
	}
	if got := State(9).String(); got != "State(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{110, 70, true},
		{60, 45, true},
		{9, 45, false},
		{60, 71, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestItemFallbacks(t *testing.T) {
	it := Item{ID: "a", Title: "  "}
	if it.DisplayTitle() != FallbackTitle {
		t.Errorf("DisplayTitle() = %q, want %q", it.DisplayTitle(), FallbackTitle)
	}
	if it.DisplayImage() != FallbackImage {
		t.Errorf("DisplayImage() = %q, want %q", it.DisplayImage(), FallbackImage)
	}
	it = Item{Title: "Bakery", ImageURL: "b.png"}
	if it.DisplayTitle() != "Bakery" || it.DisplayImage() != "b.png" {
		t.Errorf("fallbacks replaced present fields: %q %q", it.DisplayTitle(), it.DisplayImage())
	}
}

func TestModeAndAxisNames(t *testing.T) {
	if ModeDiscover.String() != "discover" || ModePartner.String() != "partner" {
		t.Error("unexpected content mode names")
	}
	if AxisVertical.String() != "vertical" || AxisHorizontal.String() != "horizontal" || AxisNone.String() != "none" {
		t.Error("unexpected axis names")
	}
}
