package snapsheet

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// backdropTolerance is the settle tolerance of the opacity channel.
const backdropTolerance = 0.005

// Target is where the animator is heading: a tier and the height and
// backdrop opacity mapped to it.
type Target struct {
	State    State
	Height   float64
	Backdrop float64
}

// Motion is a declarative description of one animated transition. The
// animator builds one for every retarget; hosts can read it to drive their
// own effects in step with the sheet.
type Motion struct {
	From, To State
	Kind     MotionKind
	Ease     ease.TweenFunc
	Duration time.Duration
}

type channel struct {
	pos, vel float64
	tol      float64
	// side is the sign of pos-target when the current target was set.
	// Ending up further than tol on the other side counts as overshoot.
	side  float64
	tween *gween.Tween
}

// HeightAnimator moves the sheet height and backdrop opacity toward a target
// tier. Setting a new target mid-flight retargets from the current position
// and velocity; nothing is queued.
//
// Like the rest of the package there is no global clock: the host calls
// Update(dt) once per frame.
type HeightAnimator struct {
	cfg  AnimatorConfig
	ease ease.TweenFunc

	spring   harmonica.Spring
	springDT float64

	height   channel
	backdrop channel
	target   Target
	motion   Motion

	grabbed  bool
	grabBase float64
	settled  bool
}

// NewHeightAnimator creates an animator resting at height 0 (closed).
func NewHeightAnimator(cfg AnimatorConfig) *HeightAnimator {
	a := &HeightAnimator{settled: true}
	a.SetConfig(cfg)
	return a
}

// SetConfig replaces the animator parameters. An in-flight animation keeps
// its position and velocity and continues under the new parameters.
func (a *HeightAnimator) SetConfig(cfg AnimatorConfig) {
	def := defaultAnimator()
	if cfg.Motion == "" {
		cfg.Motion = def.Motion
	}
	if cfg.Spring.Frequency <= 0 {
		cfg.Spring.Frequency = def.Spring.Frequency
	}
	if cfg.Spring.Damping <= 0 {
		cfg.Spring.Damping = def.Spring.Damping
	}
	if cfg.Spring.Tolerance <= 0 {
		cfg.Spring.Tolerance = def.Spring.Tolerance
	}
	if cfg.Tween.Duration <= 0 {
		cfg.Tween.Duration = def.Tween.Duration
	}
	fn, ok := EaseByName(cfg.Tween.Ease)
	if !ok {
		fn = ease.OutCubic
	}
	a.cfg = cfg
	a.ease = fn
	a.springDT = 0
	if cfg.Motion != MotionTween {
		a.height.tween = nil
		a.backdrop.tween = nil
	}
	a.height.tol = cfg.Spring.Tolerance
	a.backdrop.tol = backdropTolerance
}

// Jump places the sheet at t immediately, with no animation.
func (a *HeightAnimator) Jump(t Target) {
	a.target = t
	a.height = channel{pos: t.Height, tol: a.height.tol}
	a.backdrop = channel{pos: t.Backdrop, tol: a.backdrop.tol}
	a.motion = Motion{From: t.State, To: t.State, Kind: a.cfg.Motion}
	a.grabbed = false
	a.settled = true
}

// Retarget starts animating toward t from wherever the sheet is now.
func (a *HeightAnimator) Retarget(t Target) {
	a.motion = Motion{
		From:     a.target.State,
		To:       t.State,
		Kind:     a.cfg.Motion,
		Ease:     a.ease,
		Duration: a.cfg.Tween.Duration,
	}
	a.target = t
	a.grabbed = false
	a.settled = false
	a.height.side = approachSide(a.height.pos, t.Height)
	a.backdrop.side = approachSide(a.backdrop.pos, t.Backdrop)
	if a.cfg.Motion != MotionTween {
		a.height.tween = nil
		a.backdrop.tween = nil
		return
	}
	d := float32(a.cfg.Tween.Duration.Seconds())
	a.height.tween = gween.New(float32(a.height.pos), float32(t.Height), d, a.ease)
	a.backdrop.tween = gween.New(float32(a.backdrop.pos), float32(t.Backdrop), d, a.ease)
}

// Grab freezes the sheet at its current height so a new gesture takes over
// immediately, even mid-animation.
func (a *HeightAnimator) Grab() {
	a.grabbed = true
	a.grabBase = a.height.pos
	a.height.vel = 0
	a.backdrop.vel = 0
	a.height.tween = nil
	a.backdrop.tween = nil
	a.settled = false
}

// DragTo moves a grabbed sheet to follow the finger. A positive offsetY
// (downward) lowers the sheet. The height is clamped to [0, maxHeight].
func (a *HeightAnimator) DragTo(offsetY, maxHeight float64) {
	if !a.grabbed {
		return
	}
	a.height.pos = clampFloat(a.grabBase-offsetY, 0, maxHeight)
}

// Release ends a grab and animates toward t, carrying the gesture velocity
// (pixels per second, positive downward) into the spring.
func (a *HeightAnimator) Release(t Target, velocityY float64) {
	a.Retarget(t)
	if a.cfg.Motion == MotionSpring {
		a.height.vel = -velocityY
	}
}

// Update advances the animation by dt seconds.
func (a *HeightAnimator) Update(dt float64) {
	if a.grabbed || a.settled || dt <= 0 {
		return
	}
	if a.cfg.Motion == MotionTween {
		a.stepTween(&a.height, a.target.Height, dt)
		a.stepTween(&a.backdrop, a.target.Backdrop, dt)
	} else {
		if a.springDT != dt {
			a.spring = harmonica.NewSpring(dt, a.cfg.Spring.Frequency, a.cfg.Spring.Damping)
			a.springDT = dt
		}
		a.stepSpring(&a.height, a.target.Height)
		a.stepSpring(&a.backdrop, a.target.Backdrop)
	}
	if a.height.done(a.target.Height) && a.backdrop.done(a.target.Backdrop) {
		a.height = channel{pos: a.target.Height, tol: a.height.tol}
		a.backdrop = channel{pos: a.target.Backdrop, tol: a.backdrop.tol}
		a.settled = true
	}
}

// stepSpring advances one channel and stops any overshoot past the
// channel tolerance.
func (a *HeightAnimator) stepSpring(c *channel, target float64) {
	c.pos, c.vel = a.spring.Update(c.pos, c.vel, target)
	if (c.pos-target)*c.side < -c.tol {
		c.pos = target - c.side*c.tol
		c.vel = 0
	}
}

func approachSide(pos, target float64) float64 {
	switch {
	case pos < target:
		return -1
	case pos > target:
		return 1
	}
	return 0
}

func (a *HeightAnimator) stepTween(c *channel, target, dt float64) {
	if c.tween == nil {
		c.pos = target
		c.vel = 0
		return
	}
	prev := c.pos
	val, finished := c.tween.Update(float32(dt))
	c.pos = float64(val)
	c.vel = (c.pos - prev) / dt
	if finished {
		c.pos = target
		c.vel = 0
		c.tween = nil
	}
}

func (c *channel) done(target float64) bool {
	if c.tween != nil {
		return false
	}
	return math.Abs(c.pos-target) <= c.tol && math.Abs(c.vel) <= c.tol*4
}

// Height returns the current sheet height in pixels.
func (a *HeightAnimator) Height() float64 { return a.height.pos }

// Backdrop returns the current backdrop opacity.
func (a *HeightAnimator) Backdrop() float64 { return a.backdrop.pos }

// Velocity returns the current height velocity in pixels per second
// (positive = growing).
func (a *HeightAnimator) Velocity() float64 { return a.height.vel }

// Target returns the current animation target.
func (a *HeightAnimator) Target() Target { return a.target }

// Motion returns the descriptor of the latest retarget.
func (a *HeightAnimator) Motion() Motion { return a.motion }

// Settled reports whether the animator is at rest on its target.
func (a *HeightAnimator) Settled() bool { return a.settled }

// Grabbed reports whether a gesture currently holds the sheet.
func (a *HeightAnimator) Grabbed() bool { return a.grabbed }
