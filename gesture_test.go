package snapsheet

import (
	"testing"
	"time"
)

func newTracker() *GestureTracker {
	return NewGestureTracker(defaultGesture(), TapThreshold{Offset: 10, Velocity: 100})
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func TestGestureTap(t *testing.T) {
	g := newTracker()
	g.Begin(100, 100, 0)
	s := g.End(102, 103, ms(50))
	if !s.Tap {
		t.Errorf("Tap = false for sample %+v", s)
	}
	if s.DoubleTap {
		t.Error("first tap reported as double tap")
	}
	if s.Axis != AxisNone {
		t.Errorf("Axis = %s, want none", s.Axis)
	}
	if g.Active() {
		t.Error("tracker still active after End")
	}
}

func TestGestureVerticalDrag(t *testing.T) {
	g := newTracker()
	g.Begin(100, 500, 0)
	if axis := g.Move(100, 450, ms(16)); axis != AxisVertical {
		t.Errorf("Move axis = %s, want vertical", axis)
	}
	g.Move(100, 400, ms(32))
	s := g.End(100, 350, ms(48))

	if s.Offset.Y != -150 || s.Offset.X != 0 {
		t.Errorf("Offset = %+v, want (0, -150)", s.Offset)
	}
	if s.Velocity.Y >= 0 {
		t.Errorf("Velocity.Y = %v, want upward (negative)", s.Velocity.Y)
	}
	if s.Tap {
		t.Error("drag reported as tap")
	}
	if s.Duration != ms(48) {
		t.Errorf("Duration = %v", s.Duration)
	}
}

func TestGestureVelocityWindow(t *testing.T) {
	g := newTracker()
	g.Begin(0, 0, 0)
	g.Move(0, 0, ms(400))
	s := g.End(0, 100, ms(450))
	// Only the last 50ms lie inside the 100ms window.
	if !approxEqual(s.Velocity.Y, 2000, 1e-6) {
		t.Errorf("Velocity.Y = %v, want 2000", s.Velocity.Y)
	}
}

func TestGestureAxisLock(t *testing.T) {
	g := newTracker()
	g.Begin(0, 0, 0)
	if axis := g.Move(3, 2, ms(8)); axis != AxisNone {
		t.Errorf("axis locked below lock distance: %s", axis)
	}
	if axis := g.Move(30, 5, ms(16)); axis != AxisHorizontal {
		t.Errorf("axis = %s, want horizontal", axis)
	}
	if axis := g.Move(30, 120, ms(32)); axis != AxisHorizontal {
		t.Errorf("lock changed mid-gesture to %s", axis)
	}
	s := g.End(30, 120, ms(40))
	if s.Axis != AxisHorizontal {
		t.Errorf("sample axis = %s", s.Axis)
	}
	if g.Axis() != AxisNone {
		t.Error("axis lock not released after End")
	}
}

func TestDominantAxis(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   Axis
	}{
		{0, 0, AxisNone},
		{10, 10, AxisVertical},
		{14, 10, AxisVertical},
		{16, 10, AxisHorizontal},
		{-16, 10, AxisHorizontal},
		{0, -5, AxisVertical},
	}
	for _, tt := range tests {
		if got := DominantAxis(tt.dx, tt.dy, 1.5); got != tt.want {
			t.Errorf("DominantAxis(%v, %v) = %s, want %s", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestGestureDoubleTap(t *testing.T) {
	g := newTracker()
	g.Begin(50, 50, 0)
	g.End(50, 50, ms(40))
	g.Begin(52, 51, ms(150))
	s := g.End(52, 51, ms(190))
	if !s.DoubleTap {
		t.Error("second quick tap not reported as double tap")
	}

	g.Begin(52, 51, ms(260))
	s = g.End(52, 51, ms(280))
	if s.DoubleTap {
		t.Error("third tap should start a new pair")
	}
}

func TestGestureDoubleTapTooSlow(t *testing.T) {
	g := newTracker()
	g.Begin(50, 50, 0)
	g.End(50, 50, ms(40))
	g.Begin(50, 50, ms(500))
	if s := g.End(50, 50, ms(520)); s.DoubleTap {
		t.Error("taps 480ms apart reported as double tap")
	}
}

func TestGestureDoubleTapTooFar(t *testing.T) {
	g := newTracker()
	g.Begin(50, 50, 0)
	g.End(50, 50, ms(40))
	g.Begin(150, 50, ms(100))
	if s := g.End(150, 50, ms(120)); s.DoubleTap {
		t.Error("taps 100px apart reported as double tap")
	}
}

func TestGestureCancel(t *testing.T) {
	g := newTracker()
	g.Begin(0, 0, 0)
	g.Move(0, 50, ms(16))
	g.Cancel()
	if g.Active() {
		t.Error("Active() after Cancel")
	}
	if s := g.End(0, 80, ms(32)); s != (DragSample{}) {
		t.Errorf("End after Cancel = %+v, want zero sample", s)
	}
	if off := g.Offset(); off != (Vec2{}) {
		t.Errorf("Offset after Cancel = %+v", off)
	}
}

func TestDragSampleIsTap(t *testing.T) {
	th := TapThreshold{Offset: 10, Velocity: 100}
	if !(DragSample{Offset: Vec2{Y: 9}, Velocity: Vec2{Y: 99}}).IsTap(th) {
		t.Error("small sample should be a tap")
	}
	if (DragSample{Offset: Vec2{Y: 10}}).IsTap(th) {
		t.Error("offset at the threshold is not a tap")
	}
	if (DragSample{Offset: Vec2{X: 40}}).IsTap(th) {
		t.Error("horizontal travel should not be a tap")
	}
	if !(DragSample{Offset: Vec2{X: 40}}).isVerticalTap(th) {
		t.Error("horizontal-only sample should be a vertical tap")
	}
}
