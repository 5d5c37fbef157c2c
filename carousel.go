package snapsheet

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Carousel keeps the centered index of a horizontally paged item list. It
// supports discrete stepping (Next, Previous, GoTo, Swipe) and continuous
// scrolling (ScrollTo, ScrollBy) where the centered item is derived from the
// scroll position.
//
// Index changes are reported through a trailing-edge debounce so a host map
// is not re-centered on every intermediate index.
type Carousel struct {
	cfg      CarouselConfig
	items    []Item
	index    int
	notified int
	viewport float64

	scroll float64
	drag   float64
	slide  *gween.Tween

	debounce *Debouncer
	onChange func(index int)
}

// NewCarousel creates an empty carousel. onChange receives debounced index
// changes and may be nil.
func NewCarousel(cfg CarouselConfig, onChange func(index int)) *Carousel {
	c := &Carousel{cfg: carouselDefaults(cfg), onChange: onChange}
	c.debounce = NewDebouncer(c.cfg.NotifyDelay, c.notify)
	return c
}

func carouselDefaults(cfg CarouselConfig) CarouselConfig {
	def := defaultCarousel()
	if cfg.ItemWidth <= 0 {
		cfg.ItemWidth = def.ItemWidth
	}
	if cfg.Resize == "" {
		cfg.Resize = def.Resize
	}
	if cfg.Swipe.Offset <= 0 {
		cfg.Swipe.Offset = def.Swipe.Offset
	}
	if cfg.Swipe.Velocity <= 0 {
		cfg.Swipe.Velocity = def.Swipe.Velocity
	}
	return cfg
}

// SetConfig applies new geometry and policy. The current index is kept
// (clamped) and the scroll position is re-derived from it.
func (c *Carousel) SetConfig(cfg CarouselConfig) {
	c.cfg = carouselDefaults(cfg)
	c.debounce.SetDelay(c.cfg.NotifyDelay)
	c.slide = nil
	c.scroll = c.scrollFor(c.index)
}

// SetViewport sets the visible width of the carousel container.
func (c *Carousel) SetViewport(width float64) {
	c.viewport = width
	c.slide = nil
	c.scroll = c.scrollFor(c.index)
}

// SetItems replaces the backing list. When the length changes the index is
// clamped to the new last item, or reset to 0 under ResizeReset, so it never
// points past the end.
func (c *Carousel) SetItems(items []Item) {
	prevLen := len(c.items)
	c.items = items
	n := len(items)
	if n == 0 {
		c.index = 0
		c.notified = 0
		c.drag = 0
		c.slide = nil
		c.scroll = c.scrollFor(0)
		c.debounce.Cancel()
		return
	}
	if n == prevLen {
		return
	}
	target := c.index
	if c.cfg.Resize == ResizeReset {
		target = 0
	}
	target = clampInt(target, 0, n-1)
	if target != c.index {
		c.setIndex(target, false)
	} else {
		c.scroll = c.scrollFor(c.index)
	}
}

// Items returns the backing list. The returned slice MUST NOT be mutated.
func (c *Carousel) Items() []Item { return c.items }

// Len returns the number of items.
func (c *Carousel) Len() int { return len(c.items) }

// Index returns the centered item index. It is 0 for an empty list.
func (c *Carousel) Index() int { return c.index }

// Current returns the centered item, or false for an empty list.
func (c *Carousel) Current() (Item, bool) {
	if len(c.items) == 0 {
		return Item{}, false
	}
	return c.items[c.index], true
}

// Next moves one item forward. It is a no-op on the last item.
func (c *Carousel) Next() bool {
	return c.GoTo(c.index + 1)
}

// Previous moves one item back. It is a no-op on the first item.
func (c *Carousel) Previous() bool {
	return c.GoTo(c.index - 1)
}

// GoTo centers item i, clamped to the list bounds. It reports whether the
// index changed; going to the current index does nothing.
func (c *Carousel) GoTo(i int) bool {
	if len(c.items) == 0 {
		return false
	}
	i = clampInt(i, 0, len(c.items)-1)
	if i == c.index {
		return false
	}
	c.setIndex(i, true)
	return true
}

// Drag offsets the track visually while a horizontal gesture is in progress.
func (c *Carousel) Drag(dx float64) {
	c.drag = dx
}

// Swipe ends a horizontal gesture: past the swipe threshold to the left moves
// forward, to the right moves back. The visual drag offset is cleared either
// way. It reports whether the index changed.
func (c *Carousel) Swipe(sample DragSample) bool {
	c.drag = 0
	sw := c.cfg.Swipe
	switch {
	case sample.Offset.X < -sw.Offset || sample.Velocity.X < -sw.Velocity:
		return c.Next()
	case sample.Offset.X > sw.Offset || sample.Velocity.X > sw.Velocity:
		return c.Previous()
	}
	return false
}

// ScrollTo sets the continuous scroll position and re-derives the centered
// item from it.
func (c *Carousel) ScrollTo(x float64) {
	c.slide = nil
	if len(c.items) == 0 {
		c.scroll = c.scrollFor(0)
		return
	}
	c.scroll = clampFloat(x, c.scrollFor(0), c.scrollFor(len(c.items)-1))
	if i := c.CenteredIndex(); i != c.index {
		c.index = i
		c.debounce.Trigger()
	}
}

// ScrollBy moves the continuous scroll position by dx.
func (c *Carousel) ScrollBy(dx float64) {
	c.ScrollTo(c.scroll + dx)
}

// Scroll returns the track coordinate shown at the container's left edge.
func (c *Carousel) Scroll() float64 { return c.scroll }

// TrackX returns the horizontal translation to apply to the item track,
// including any in-progress drag.
func (c *Carousel) TrackX() float64 { return -c.scroll + c.drag }

// ItemCenter returns the center of item i in track coordinates.
func (c *Carousel) ItemCenter(i int) float64 {
	return c.cfg.Padding + float64(i)*(c.cfg.ItemWidth+c.cfg.Gap) + c.cfg.ItemWidth/2
}

// CenteredIndex returns the item whose center is nearest to the container's
// visual center at the current scroll position.
func (c *Carousel) CenteredIndex() int {
	if len(c.items) == 0 {
		return 0
	}
	center := c.scroll + c.viewport/2
	best, bestDist := 0, math.Inf(1)
	for i := range c.items {
		d := math.Abs(c.ItemCenter(i) - center)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// NearestCenter returns the index of the center nearest to target. Ties go to
// the lower index. It returns -1 for an empty slice.
func NearestCenter(centers []float64, target float64) int {
	best, bestDist := -1, math.Inf(1)
	for i, c := range centers {
		d := math.Abs(c - target)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Settle snaps a continuous scroll to the centered item.
func (c *Carousel) Settle() {
	if len(c.items) == 0 {
		return
	}
	c.startSlide(c.scrollFor(c.CenteredIndex()))
}

// Reset returns to the first item, drops pending notifications and clears
// the drag offset. The reset itself is not reported.
func (c *Carousel) Reset() {
	c.index = 0
	c.notified = 0
	c.drag = 0
	c.slide = nil
	c.scroll = c.scrollFor(0)
	c.debounce.Cancel()
}

// ResetTo is Reset followed by a silent jump to item i (clamped).
func (c *Carousel) ResetTo(i int) {
	c.Reset()
	if len(c.items) == 0 {
		return
	}
	c.index = clampInt(i, 0, len(c.items)-1)
	c.notified = c.index
	c.scroll = c.scrollFor(c.index)
}

// Update advances the slide animation and the notification debounce by dt
// seconds.
func (c *Carousel) Update(dt float64) {
	if c.slide != nil {
		val, done := c.slide.Update(float32(dt))
		c.scroll = float64(val)
		if done {
			c.slide = nil
		}
	}
	c.debounce.Update(dt)
}

// Sliding reports whether a step animation is running.
func (c *Carousel) Sliding() bool { return c.slide != nil }

// FlushNotify delivers a pending index notification immediately.
func (c *Carousel) FlushNotify() { c.debounce.Flush() }

func (c *Carousel) setIndex(i int, animate bool) {
	c.index = i
	if animate {
		c.startSlide(c.scrollFor(i))
	} else {
		c.slide = nil
		c.scroll = c.scrollFor(i)
	}
	c.debounce.Trigger()
}

func (c *Carousel) startSlide(to float64) {
	d := float32(c.cfg.SlideDuration.Seconds())
	if d <= 0 {
		c.slide = nil
		c.scroll = to
		return
	}
	c.slide = gween.New(float32(c.scroll), float32(to), d, ease.OutCubic)
}

// scrollFor is the scroll position that centers item i.
func (c *Carousel) scrollFor(i int) float64 {
	return c.ItemCenter(i) - c.viewport/2
}

func (c *Carousel) notify() {
	if len(c.items) == 0 || c.index == c.notified {
		return
	}
	c.notified = c.index
	if c.onChange != nil {
		c.onChange(c.index)
	}
}
