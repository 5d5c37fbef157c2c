package snapsheet

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrTiersChanged is returned by SetConfig when the tier layout changes
// while the sheet is open.
var ErrTiersChanged = errors.New("snapsheet: tier layout can only change while closed")

// OpenOptions are the external control signals applied when the sheet opens.
type OpenOptions struct {
	Mode         ContentMode
	PartnerID    string
	InitialIndex int
}

type grabTarget uint8

const (
	grabNone grabTarget = iota
	grabSheet
	grabBackdrop
)

// Sheet is a draggable multi-state bottom sheet. It wires the gesture
// tracker, snap machine, height animator, content router and carousel
// together and exposes the callback contract host pages consume.
//
// Sheet is not safe for concurrent use; drive it from the UI loop. Only the
// session Context may be handed to other goroutines.
type Sheet struct {
	cfg      Config
	machine  *SnapMachine
	tracker  *GestureTracker
	anim     *HeightAnimator
	router   *ContentRouter
	carousel *Carousel

	handlers handlerRegistry
	sink     EventSink
	log      logrus.FieldLogger
	debug    bool

	// restoreLevel undoes the level change made by SetDebugMode.
	restoreLevel func()

	viewport Rect
	clock    time.Duration
	parent   context.Context
	session  session
	grab     grabTarget
}

// New creates a closed sheet from cfg.
func New(cfg Config) (*Sheet, error) {
	return NewWithContext(context.Background(), cfg)
}

// NewWithContext is New with a parent context for every session context.
func NewWithContext(ctx context.Context, cfg Config) (*Sheet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	machine, err := NewSnapMachine(cfg.Tiers, cfg.Thresholds, cfg.Dismissible)
	if err != nil {
		return nil, err
	}
	s := &Sheet{
		cfg:     cfg,
		machine: machine,
		tracker: NewGestureTracker(cfg.Gesture, cfg.Thresholds.Tap),
		anim:    NewHeightAnimator(cfg.Animator),
		router:  NewContentRouter(),
		log:     defaultLogger(),
		parent:  ctx,
	}
	s.carousel = NewCarousel(cfg.Carousel, s.onCarouselIndex)
	s.router.Track(s.carousel)
	return s, nil
}

// Config returns the active configuration.
func (s *Sheet) Config() Config { return s.cfg }

// SetConfig applies a new configuration. Thresholds, geometry and animation
// parameters take effect immediately; a different tier layout is only
// accepted while the sheet is closed.
func (s *Sheet) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !slices.Equal(cfg.Tiers, s.cfg.Tiers) {
		if !s.Closed() {
			return ErrTiersChanged
		}
		machine, err := NewSnapMachine(cfg.Tiers, cfg.Thresholds, cfg.Dismissible)
		if err != nil {
			return err
		}
		s.machine = machine
	}
	s.machine.SetThresholds(cfg.Thresholds)
	s.machine.dismissible = cfg.Dismissible
	s.tracker = NewGestureTracker(cfg.Gesture, cfg.Thresholds.Tap)
	s.anim.SetConfig(cfg.Animator)
	s.carousel.SetConfig(cfg.Carousel)
	s.cfg = cfg
	s.grab = grabNone
	if !s.Closed() {
		s.anim.Retarget(s.targetFor(s.machine.State()))
	}
	s.logf("config applied", logrus.Fields{"tiers": len(cfg.Tiers)})
	return nil
}

// SetViewport sets the size of the container the sheet slides over.
func (s *Sheet) SetViewport(width, height float64) {
	s.viewport = Rect{Width: width, Height: height}
	s.carousel.SetViewport(width)
	t := s.targetFor(s.machine.State())
	if s.anim.Settled() {
		s.anim.Jump(t)
	} else if !s.anim.Grabbed() {
		s.anim.Retarget(t)
	}
}

// SetItems replaces the display items. The carousel index is clamped when
// the list shrinks. While the sheet is open the host map is resynced when
// the centered item changes without an index change, e.g. when the first
// items arrive after Open.
func (s *Sheet) SetItems(items []Item) {
	prev, hadPrev := s.carousel.Current()
	prevIndex := s.carousel.Index()
	s.carousel.SetItems(items)
	if s.Closed() || s.carousel.Index() != prevIndex {
		return
	}
	if cur, ok := s.carousel.Current(); ok && (!hadPrev || cur.ID != prev.ID) {
		s.syncMap()
	}
}

// Open shows the sheet at the lowest tier. It is a no-op if the sheet is
// already open. Mode and carousel index always start from opts, never from a
// previous session.
func (s *Sheet) Open(opts OpenOptions) bool {
	if !s.Closed() {
		return false
	}
	s.session = newSession(s.parent)
	s.tracker.Cancel()
	s.grab = grabNone

	t := s.machine.Open()
	s.router.Reset()
	s.anim.Retarget(s.targetFor(t.To))
	s.logTransition(t)

	s.emit(Event{Type: EventOpen, From: t.From, To: t.To, Reason: t.Reason})
	s.emit(Event{Type: EventHeightChange, From: t.From, To: t.To, Reason: t.Reason})

	if opts.Mode == ModePartner {
		s.setMode(ModePartner, opts.PartnerID)
	}
	s.carousel.ResetTo(opts.InitialIndex)
	s.syncMap()
	return true
}

// Close dismisses the sheet (close button or host request). OnClose fires
// once; closing a closed sheet does nothing.
func (s *Sheet) Close() {
	if s.Closed() {
		return
	}
	s.finishClose(s.machine.Close(), 0)
}

// Expand moves straight to the top tier, bypassing drag thresholds.
func (s *Sheet) Expand() Transition {
	t := s.machine.Expand()
	s.commit(t, 0)
	return t
}

// ApplyDrag feeds a finished gesture to the snap machine and animates to the
// result. Samples below every threshold animate back to the current tier with
// no callbacks. A double tap at the lowest tier expands.
func (s *Sheet) ApplyDrag(sample DragSample) Transition {
	if s.Closed() {
		return Transition{}
	}
	var t Transition
	if sample.DoubleTap && s.machine.State() == s.machine.Lowest() {
		t = s.machine.Expand()
	} else {
		t = s.machine.Resolve(sample)
	}
	s.commit(t, sample.Velocity.Y)
	return t
}

// SelectPartner switches to the partner carousel for id and surfaces the
// sheet to at least the Mid tier. A closed sheet opens first.
func (s *Sheet) SelectPartner(id string) {
	if s.Closed() {
		s.Open(OpenOptions{Mode: ModePartner, PartnerID: id})
		return
	}
	s.setMode(ModePartner, id)
}

// SetMode mirrors the host's content mode. Entering ModePartner raises the
// sheet to at least Mid.
func (s *Sheet) SetMode(mode ContentMode, partnerID string) {
	if s.Closed() {
		return
	}
	s.setMode(mode, partnerID)
}

// RequestMode asks the host to change the content mode. The sheet does not
// change mode itself; the host answers with SetMode.
func (s *Sheet) RequestMode(mode ContentMode) {
	if s.Closed() {
		return
	}
	s.emit(Event{Type: EventModeRequest, Mode: mode})
}

// Update advances the frame clock, the height animation and the carousel by
// dt seconds.
func (s *Sheet) Update(dt float64) {
	if dt <= 0 {
		return
	}
	s.clock += time.Duration(dt * float64(time.Second))
	s.anim.Update(dt)
	s.carousel.Update(dt)
}

// PointerDown starts a gesture. Inside the sheet it grabs the sheet, even
// mid-animation; above the sheet, while the backdrop is dimmed, it starts a
// potential backdrop tap. A second pointer is ignored while one is active.
func (s *Sheet) PointerDown(x, y float64) {
	if s.Closed() || s.tracker.Active() {
		return
	}
	switch {
	case s.SheetRect().Contains(x, y):
		s.grab = grabSheet
		s.tracker.Begin(x, y, s.clock)
		s.anim.Grab()
	case s.cfg.Backdrop.Opacity(s.machine.State()) > 0:
		s.grab = grabBackdrop
		s.tracker.Begin(x, y, s.clock)
	default:
		s.grab = grabNone
	}
}

// PointerMove routes movement to the owner picked by the dominant-axis lock:
// vertical drags move the sheet, horizontal drags move the carousel track.
func (s *Sheet) PointerMove(x, y float64) {
	if !s.tracker.Active() {
		return
	}
	axis := s.tracker.Move(x, y, s.clock)
	if s.grab != grabSheet {
		return
	}
	off := s.tracker.Offset()
	switch axis {
	case AxisVertical:
		s.anim.DragTo(off.Y, s.viewport.Height)
	case AxisHorizontal:
		s.carousel.Drag(off.X)
	}
}

// PointerUp ends the gesture and releases the axis lock.
func (s *Sheet) PointerUp(x, y float64) {
	if !s.tracker.Active() {
		return
	}
	sample := s.tracker.End(x, y, s.clock)
	grab := s.grab
	s.grab = grabNone

	switch grab {
	case grabBackdrop:
		if sample.Tap {
			s.Close()
		}
	case grabSheet:
		if sample.Axis == AxisHorizontal {
			s.carousel.Swipe(sample)
			s.anim.Release(s.targetFor(s.machine.State()), 0)
			return
		}
		s.ApplyDrag(sample)
	}
}

// PointerCancel abandons the active gesture and animates back to the
// current tier with no side effects.
func (s *Sheet) PointerCancel() {
	if !s.tracker.Active() {
		return
	}
	s.tracker.Cancel()
	if s.grab == grabSheet {
		s.carousel.Drag(0)
		s.anim.Release(s.targetFor(s.machine.State()), 0)
	}
	s.grab = grabNone
}

// State returns the discrete state.
func (s *Sheet) State() State { return s.machine.State() }

// Mode returns the content mode.
func (s *Sheet) Mode() ContentMode { return s.router.Mode() }

// Route returns the content decision for the current state.
func (s *Sheet) Route() Route { return s.router.Route(s.machine.State()) }

// Height returns the animated sheet height in pixels.
func (s *Sheet) Height() float64 { return s.anim.Height() }

// Backdrop returns the animated backdrop opacity.
func (s *Sheet) Backdrop() float64 { return s.anim.Backdrop() }

// Settled reports whether the height animation is at rest.
func (s *Sheet) Settled() bool { return s.anim.Settled() }

// Motion returns the descriptor of the latest height transition.
func (s *Sheet) Motion() Motion { return s.anim.Motion() }

// Carousel returns the sheet's carousel.
func (s *Sheet) Carousel() *Carousel { return s.carousel }

// Dragging reports whether a gesture currently owns the sheet, and on which
// axis.
func (s *Sheet) Dragging() (bool, Axis) {
	return s.grab == grabSheet && s.tracker.Active(), s.tracker.Axis()
}

// SheetRect returns the sheet's on-screen rectangle.
func (s *Sheet) SheetRect() Rect {
	h := s.anim.Height()
	return Rect{
		X:      s.viewport.X,
		Y:      s.viewport.Y + s.viewport.Height - h,
		Width:  s.viewport.Width,
		Height: h,
	}
}

// Clock returns the sheet's frame clock.
func (s *Sheet) Clock() time.Duration { return s.clock }

func (s *Sheet) targetFor(state State) Target {
	return Target{
		State:    state,
		Height:   s.cfg.SnapPoints.Fraction(state) * s.viewport.Height,
		Backdrop: s.cfg.Backdrop.Opacity(state),
	}
}

// commit animates to the transition's target and reports the change.
func (s *Sheet) commit(t Transition, velocityY float64) {
	if t.To == StateClosed {
		if t.Changed() {
			s.finishClose(t, velocityY)
		}
		return
	}
	s.anim.Release(s.targetFor(t.To), velocityY)
	if t.Changed() {
		s.logTransition(t)
		s.emit(Event{Type: EventHeightChange, From: t.From, To: t.To, Reason: t.Reason})
	}
}

func (s *Sheet) finishClose(t Transition, velocityY float64) {
	s.tracker.Cancel()
	s.grab = grabNone
	s.anim.Release(s.targetFor(StateClosed), velocityY)
	s.logTransition(t)

	prevMode := s.router.Mode()
	s.router.Reset()
	s.session.end()

	s.emit(Event{Type: EventHeightChange, From: t.From, To: t.To, Reason: t.Reason})
	if prevMode != ModeDiscover {
		s.emit(Event{Type: EventModeChange, Mode: ModeDiscover})
	}
	s.emit(Event{Type: EventClose, From: t.From, To: t.To, Reason: t.Reason})
}

func (s *Sheet) setMode(mode ContentMode, partnerID string) {
	if s.router.SetMode(mode, partnerID) {
		s.logf("mode change", logrus.Fields{"mode": mode.String(), "partner": partnerID})
		s.emit(Event{Type: EventModeChange, Mode: mode, PartnerID: partnerID})
	}
	// Selecting a partner surfaces the sheet even when the partner is unchanged.
	if mode == ModePartner {
		if t := s.machine.EnsureAtLeast(StateMid); t.Changed() {
			s.commit(t, 0)
		}
	}
}

func (s *Sheet) onCarouselIndex(index int) {
	if s.Closed() {
		return
	}
	s.emit(Event{Type: EventIndexChange, Index: index})
	s.syncMap()
}

// syncMap points the host map at the centered item.
func (s *Sheet) syncMap() {
	item, ok := s.carousel.Current()
	if !ok {
		return
	}
	s.emit(Event{Type: EventMapHighlight, Index: s.carousel.Index(), ItemID: item.ID})
	if item.Location != nil {
		s.emit(Event{Type: EventMapCenter, Index: s.carousel.Index(), ItemID: item.ID, Center: *item.Location})
	}
}
