package snapsheet

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tileSize is the Web Mercator world size in pixels at zoom 0.
const tileSize = 256.0

// Mercator latitude limit; beyond it the projection diverges.
const maxLatitude = 85.05112878

// scrollAnim holds active center-on tweens for longitude and latitude.
type scrollAnim struct {
	tweenLat *gween.Tween
	tweenLng *gween.Tween
	doneLat  bool
	doneLng  bool
}

// GeoBounds is a latitude/longitude rectangle.
type GeoBounds struct {
	South, West, North, East float64
}

// MapView is the host-side map viewport kept in sync with the sheet's
// centered item. It does not render tiles; it tracks the center, projects
// coordinates to screen space, and remembers which item is highlighted.
type MapView struct {
	// Center is the coordinate shown at the middle of the viewport.
	Center LatLng
	// Zoom is the Web Mercator zoom level.
	Zoom float64
	// Viewport is the screen-space rectangle the map occupies.
	Viewport Rect
	// Highlight is the ID of the highlighted item.
	Highlight string

	// BoundsEnabled clamps the center inside Bounds.
	BoundsEnabled bool
	Bounds        GeoBounds

	scrollTween *scrollAnim
	duration    float32
	easeFn      ease.TweenFunc
	handles     []CallbackHandle
}

// NewMapView creates a map view at zoom 14 over viewport.
func NewMapView(viewport Rect) *MapView {
	return &MapView{
		Zoom:     14,
		Viewport: viewport,
		duration: 0.4,
		easeFn:   ease.OutCubic,
	}
}

// CenterOn animates the map center to p over duration seconds. A duration of
// zero or less jumps immediately.
func (m *MapView) CenterOn(p LatLng, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		m.scrollTween = nil
		m.Center = p
		m.ClampToBounds()
		return
	}
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	m.scrollTween = &scrollAnim{
		tweenLat: gween.New(float32(m.Center.Lat), float32(p.Lat), duration, easeFn),
		tweenLng: gween.New(float32(m.Center.Lng), float32(p.Lng), duration, easeFn),
	}
}

// Animating reports whether a center-on animation is running.
func (m *MapView) Animating() bool {
	return m.scrollTween != nil
}

// SetBounds enables center clamping.
func (m *MapView) SetBounds(b GeoBounds) {
	m.BoundsEnabled = true
	m.Bounds = b
}

// ClearBounds disables center clamping.
func (m *MapView) ClearBounds() {
	m.BoundsEnabled = false
}

// ClampToBounds immediately clamps the center into Bounds. No-op if
// BoundsEnabled is false.
func (m *MapView) ClampToBounds() {
	if !m.BoundsEnabled {
		return
	}
	m.Center.Lat = clampFloat(m.Center.Lat, m.Bounds.South, m.Bounds.North)
	m.Center.Lng = clampFloat(m.Center.Lng, m.Bounds.West, m.Bounds.East)
}

// Update advances the center-on animation by dt seconds.
func (m *MapView) Update(dt float64) {
	if m.scrollTween != nil {
		if !m.scrollTween.doneLat {
			val, done := m.scrollTween.tweenLat.Update(float32(dt))
			m.Center.Lat = float64(val)
			m.scrollTween.doneLat = done
		}
		if !m.scrollTween.doneLng {
			val, done := m.scrollTween.tweenLng.Update(float32(dt))
			m.Center.Lng = float64(val)
			m.scrollTween.doneLng = done
		}
		if m.scrollTween.doneLat && m.scrollTween.doneLng {
			m.scrollTween = nil
		}
	}
	m.ClampToBounds()
}

// Project converts a coordinate to screen space.
func (m *MapView) Project(p LatLng) (x, y float64) {
	px, py := mercator(p, m.Zoom)
	cx, cy := mercator(m.Center, m.Zoom)
	return m.Viewport.X + m.Viewport.Width/2 + px - cx,
		m.Viewport.Y + m.Viewport.Height/2 + py - cy
}

// Unproject converts a screen point back to a coordinate.
func (m *MapView) Unproject(x, y float64) LatLng {
	cx, cy := mercator(m.Center, m.Zoom)
	px := x - m.Viewport.X - m.Viewport.Width/2 + cx
	py := y - m.Viewport.Y - m.Viewport.Height/2 + cy
	world := tileSize * math.Exp2(m.Zoom)
	lng := px/world*360 - 180
	n := math.Pi - 2*math.Pi*py/world
	lat := 180 / math.Pi * math.Atan(math.Sinh(n))
	return LatLng{Lat: lat, Lng: lng}
}

// Attach keeps the map in sync with sheet: it centers on the sheet's
// centered item and highlights it. Attach replaces any previous attachment.
func (m *MapView) Attach(sheet *Sheet) {
	m.Detach()
	m.handles = append(m.handles,
		sheet.OnMapCenter(func(p LatLng) { m.CenterOn(p, m.duration, m.easeFn) }),
		sheet.OnMapHighlight(func(id string) { m.Highlight = id }),
		sheet.OnClose(func() { m.Highlight = "" }),
	)
}

// Detach removes the callbacks registered by Attach.
func (m *MapView) Detach() {
	for _, h := range m.handles {
		h.Remove()
	}
	m.handles = m.handles[:0]
}

// SetFollowMotion sets the duration and easing used when following the sheet.
func (m *MapView) SetFollowMotion(duration float32, easeFn ease.TweenFunc) {
	m.duration = duration
	m.easeFn = easeFn
}

func mercator(p LatLng, zoom float64) (x, y float64) {
	world := tileSize * math.Exp2(zoom)
	lat := clampFloat(p.Lat, -maxLatitude, maxLatitude) * math.Pi / 180
	x = (p.Lng + 180) / 360 * world
	y = (1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2 * world
	return x, y
}
