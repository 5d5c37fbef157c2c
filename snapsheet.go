package snapsheet

import (
	"fmt"
	"strings"
)

// Vec2 is a 2D vector used for offsets, velocities, and positions.
// Y increases downward, matching screen coordinates.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// State is a discrete height tier of the sheet. States are ordered from
// lowest (Closed) to highest (Full) so tiers can be compared directly.
type State uint8

const (
	StateClosed    State = iota // hidden / unmounted
	StateCollapsed              // peek height
	StateMid                    // half height (three-tier layouts only)
	StateFull                   // fully expanded
)

// StateExpanded is the top tier of a two-tier layout.
const StateExpanded = StateFull

var stateNames = [...]string{
	StateClosed:    "closed",
	StateCollapsed: "collapsed",
	StateMid:       "mid",
	StateFull:      "full",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if int(s) >= len(stateNames) {
		return nil, fmt.Errorf("snapsheet: invalid state %d", s)
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. "expanded" is accepted
// as an alias for "full".
func (s *State) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	if name == "expanded" {
		*s = StateFull
		return nil
	}
	for i, n := range stateNames {
		if n == name {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("snapsheet: unknown state %q", string(text))
}

// Tier layouts supported by the snap machine, ordered lowest to highest.
var (
	TwoTier   = []State{StateCollapsed, StateFull}
	ThreeTier = []State{StateCollapsed, StateMid, StateFull}
)

// ContentMode selects which child content the sheet body renders. The host
// page owns the mode; the sheet mirrors it.
type ContentMode uint8

const (
	ModeDiscover ContentMode = iota // list of nearby offers
	ModePartner                     // single partner with an offer carousel
)

func (m ContentMode) String() string {
	switch m {
	case ModeDiscover:
		return "discover"
	case ModePartner:
		return "partner"
	default:
		return fmt.Sprintf("ContentMode(%d)", m)
	}
}

// Axis identifies which direction owns a touch interaction.
type Axis uint8

const (
	AxisNone       Axis = iota // not yet decided (or a tap)
	AxisVertical               // sheet drag
	AxisHorizontal             // content swipe
)

func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return "none"
	}
}

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat, Lng float64
}

// Item is a read-only display payload (an offer or a partner) supplied by the
// data layer. The engine never mutates it.
type Item struct {
	ID       string
	Title    string
	Subtitle string
	ImageURL string
	Location *LatLng
	Payload  any
}

// Fallbacks used when an item is missing optional display fields.
const (
	FallbackTitle = "Untitled"
	FallbackImage = "placeholder.png"
)

// DisplayTitle returns the title, or FallbackTitle when empty.
func (it Item) DisplayTitle() string {
	if strings.TrimSpace(it.Title) == "" {
		return FallbackTitle
	}
	return it.Title
}

// DisplayImage returns the image URL, or FallbackImage when empty.
func (it Item) DisplayImage() string {
	if it.ImageURL == "" {
		return FallbackImage
	}
	return it.ImageURL
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
