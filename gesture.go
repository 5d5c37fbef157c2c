package snapsheet

import (
	"math"
	"time"
)

// DragSample is the outcome of one gesture, captured at release. Offset is
// cumulative from the drag start; Velocity is measured over the tail of the
// gesture in pixels per second.
type DragSample struct {
	Offset    Vec2
	Velocity  Vec2
	Axis      Axis
	Tap       bool
	DoubleTap bool
	Duration  time.Duration
}

// IsTap reports whether the sample is too small on both axes to count as a
// drag under th.
func (d DragSample) IsTap(th TapThreshold) bool {
	return math.Abs(d.Offset.Y) < th.Offset && math.Abs(d.Velocity.Y) < th.Velocity &&
		math.Abs(d.Offset.X) < th.Offset && math.Abs(d.Velocity.X) < th.Velocity
}

// isVerticalTap is the vertical-only variant the snap machine uses: a
// horizontal swipe with no vertical travel is still a no-op for the sheet.
func (d DragSample) isVerticalTap(th TapThreshold) bool {
	return math.Abs(d.Offset.Y) < th.Offset && math.Abs(d.Velocity.Y) < th.Velocity
}

const velocityRing = 16

type timedPoint struct {
	x, y float64
	at   time.Duration
}

// GestureTracker turns a stream of pointer positions into a single DragSample
// per gesture. It owns the dominant-axis lock for its input surface and the
// tap bookkeeping needed for double-tap detection; it never touches sheet
// state.
type GestureTracker struct {
	cfg GestureConfig
	tap TapThreshold

	active  bool
	axis    Axis
	start   timedPoint
	last    timedPoint
	ring    [velocityRing]timedPoint
	head    int
	count   int
	lastTap timedPoint
	hasTap  bool
}

// NewGestureTracker creates a tracker. Zero-valued config fields take the
// package defaults.
func NewGestureTracker(cfg GestureConfig, tap TapThreshold) *GestureTracker {
	def := defaultGesture()
	if cfg.AxisRatio <= 0 {
		cfg.AxisRatio = def.AxisRatio
	}
	if cfg.VelocityWindow <= 0 {
		cfg.VelocityWindow = def.VelocityWindow
	}
	if cfg.DoubleTapInterval <= 0 {
		cfg.DoubleTapInterval = def.DoubleTapInterval
	}
	if cfg.DoubleTapSlop <= 0 {
		cfg.DoubleTapSlop = def.DoubleTapSlop
	}
	return &GestureTracker{cfg: cfg, tap: tap}
}

// Begin starts a gesture at (x, y). Any gesture already in progress is
// discarded without producing a sample.
func (g *GestureTracker) Begin(x, y float64, at time.Duration) {
	p := timedPoint{x: x, y: y, at: at}
	g.active = true
	g.axis = AxisNone
	g.start = p
	g.last = p
	g.head = 0
	g.count = 0
	g.push(p)
}

// Move records a pointer position and returns the axis that owns the
// gesture. The axis is decided once, the first time movement exceeds
// AxisLockDistance, and holds until End or Cancel.
func (g *GestureTracker) Move(x, y float64, at time.Duration) Axis {
	if !g.active {
		return AxisNone
	}
	p := timedPoint{x: x, y: y, at: at}
	g.last = p
	g.push(p)

	if g.axis == AxisNone {
		dx := x - g.start.x
		dy := y - g.start.y
		if math.Hypot(dx, dy) > g.cfg.AxisLockDistance {
			g.axis = DominantAxis(dx, dy, g.cfg.AxisRatio)
		}
	}
	return g.axis
}

// End finishes the gesture at (x, y) and returns its sample. Calling End
// without an active gesture returns a zero sample.
func (g *GestureTracker) End(x, y float64, at time.Duration) DragSample {
	if !g.active {
		return DragSample{}
	}
	g.Move(x, y, at)

	sample := DragSample{
		Offset:   Vec2{X: x - g.start.x, Y: y - g.start.y},
		Velocity: g.velocity(),
		Axis:     g.axis,
		Duration: at - g.start.at,
	}
	sample.Tap = sample.IsTap(g.tap)

	if sample.Tap {
		if g.hasTap && at-g.lastTap.at <= g.cfg.DoubleTapInterval &&
			math.Hypot(x-g.lastTap.x, y-g.lastTap.y) <= g.cfg.DoubleTapSlop {
			sample.DoubleTap = true
			g.hasTap = false
		} else {
			g.lastTap = timedPoint{x: x, y: y, at: at}
			g.hasTap = true
		}
	} else {
		g.hasTap = false
	}

	g.active = false
	g.axis = AxisNone
	return sample
}

// Cancel abandons the active gesture. No sample is produced and the tap
// history is cleared.
func (g *GestureTracker) Cancel() {
	g.active = false
	g.axis = AxisNone
	g.hasTap = false
}

// Active reports whether a gesture is in progress.
func (g *GestureTracker) Active() bool {
	return g.active
}

// Axis returns the locked axis of the active gesture.
func (g *GestureTracker) Axis() Axis {
	return g.axis
}

// Offset returns the live offset of the active gesture from its start.
func (g *GestureTracker) Offset() Vec2 {
	if !g.active {
		return Vec2{}
	}
	return Vec2{X: g.last.x - g.start.x, Y: g.last.y - g.start.y}
}

func (g *GestureTracker) push(p timedPoint) {
	g.ring[g.head] = p
	g.head = (g.head + 1) % velocityRing
	if g.count < velocityRing {
		g.count++
	}
}

// velocity is the displacement across the samples inside VelocityWindow
// divided by their time span.
func (g *GestureTracker) velocity() Vec2 {
	if g.count < 2 {
		return Vec2{}
	}
	newest := g.ring[(g.head-1+velocityRing)%velocityRing]
	oldest := newest
	for i := 2; i <= g.count; i++ {
		p := g.ring[(g.head-i+velocityRing)%velocityRing]
		if newest.at-p.at > g.cfg.VelocityWindow {
			break
		}
		oldest = p
	}
	span := (newest.at - oldest.at).Seconds()
	if span <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: (newest.x - oldest.x) / span,
		Y: (newest.y - oldest.y) / span,
	}
}

// DominantAxis decides which direction owns a movement: horizontal wins only
// when |dx| exceeds |dy| scaled by ratio.
func DominantAxis(dx, dy, ratio float64) Axis {
	if dx == 0 && dy == 0 {
		return AxisNone
	}
	if math.Abs(dx) > math.Abs(dy)*ratio {
		return AxisHorizontal
	}
	return AxisVertical
}
