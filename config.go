package snapsheet

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Thresholds are the vertical drag policy constants. Offsets are in pixels
// and velocities in pixels per second; all values are magnitudes and the
// comparisons are strict, so a sample exactly at a threshold does not trigger.
type Thresholds struct {
	DownOffset   float64      `yaml:"down_offset"`
	DownVelocity float64      `yaml:"down_velocity"`
	UpOffset     float64      `yaml:"up_offset"`
	UpVelocity   float64      `yaml:"up_velocity"`
	Tap          TapThreshold `yaml:"tap"`
}

// TapThreshold bounds what counts as a tap rather than a drag.
type TapThreshold struct {
	Offset   float64 `yaml:"offset"`
	Velocity float64 `yaml:"velocity"`
}

// SwipeThresholds are the horizontal navigation triggers for the carousel.
type SwipeThresholds struct {
	Offset   float64 `yaml:"offset"`
	Velocity float64 `yaml:"velocity"`
}

// GestureConfig tunes the gesture tracker.
type GestureConfig struct {
	AxisRatio         float64       `yaml:"axis_ratio"`
	AxisLockDistance  float64       `yaml:"axis_lock_distance"`
	VelocityWindow    time.Duration `yaml:"velocity_window"`
	DoubleTapInterval time.Duration `yaml:"double_tap_interval"`
	DoubleTapSlop     float64       `yaml:"double_tap_slop"`
}

// SnapPoints are sheet heights per tier as fractions of the viewport height.
type SnapPoints struct {
	Collapsed float64 `yaml:"collapsed"`
	Mid       float64 `yaml:"mid"`
	Full      float64 `yaml:"full"`
}

// Fraction returns the height fraction for a state. Closed is always 0.
func (p SnapPoints) Fraction(s State) float64 {
	switch s {
	case StateCollapsed:
		return p.Collapsed
	case StateMid:
		return p.Mid
	case StateFull:
		return p.Full
	default:
		return 0
	}
}

// BackdropLevels is the dimming opacity per tier.
type BackdropLevels struct {
	Collapsed float64 `yaml:"collapsed"`
	Mid       float64 `yaml:"mid"`
	Full      float64 `yaml:"full"`
}

// Opacity returns the backdrop opacity for a state. Closed is always 0.
func (b BackdropLevels) Opacity(s State) float64 {
	switch s {
	case StateCollapsed:
		return b.Collapsed
	case StateMid:
		return b.Mid
	case StateFull:
		return b.Full
	default:
		return 0
	}
}

// MotionKind selects the animator's driver.
type MotionKind string

const (
	MotionSpring MotionKind = "spring"
	MotionTween  MotionKind = "tween"
)

// AnimatorConfig configures the height animator.
type AnimatorConfig struct {
	Motion MotionKind   `yaml:"motion"`
	Spring SpringConfig `yaml:"spring"`
	Tween  TweenConfig  `yaml:"tween"`
}

// SpringConfig parameterizes the damped spring. A damping ratio of 1 is
// critically damped.
type SpringConfig struct {
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
	Tolerance float64 `yaml:"tolerance"`
}

// TweenConfig parameterizes eased transitions.
type TweenConfig struct {
	Duration time.Duration `yaml:"duration"`
	Ease     string        `yaml:"ease"`
}

// ResizePolicy decides what happens to the carousel index when the backing
// list changes length.
type ResizePolicy string

const (
	ResizeClamp ResizePolicy = "clamp" // keep the index, clamped to the new last item
	ResizeReset ResizePolicy = "reset" // return to the first item
)

// CarouselConfig configures the pager.
type CarouselConfig struct {
	ItemWidth     float64         `yaml:"item_width"`
	Gap           float64         `yaml:"gap"`
	Padding       float64         `yaml:"padding"`
	NotifyDelay   time.Duration   `yaml:"notify_delay"`
	SlideDuration time.Duration   `yaml:"slide_duration"`
	Resize        ResizePolicy    `yaml:"resize"`
	Swipe         SwipeThresholds `yaml:"swipe"`
}

// Config is the full sheet configuration.
type Config struct {
	Tiers       []State        `yaml:"tiers"`
	Dismissible bool           `yaml:"dismissible"`
	Thresholds  Thresholds     `yaml:"thresholds"`
	Gesture     GestureConfig  `yaml:"gesture"`
	SnapPoints  SnapPoints     `yaml:"snap_points"`
	Backdrop    BackdropLevels `yaml:"backdrop"`
	Animator    AnimatorConfig `yaml:"animator"`
	Carousel    CarouselConfig `yaml:"carousel"`
}

// Config validation errors.
var (
	ErrNoTiers          = errors.New("snapsheet: no tiers configured")
	ErrTierOrder        = errors.New("snapsheet: tiers must start at collapsed and be strictly increasing")
	ErrThreshold        = errors.New("snapsheet: thresholds must be positive")
	ErrSnapPoints       = errors.New("snapsheet: snap points must be increasing fractions in (0, 1]")
	ErrMotion           = errors.New("snapsheet: unknown motion kind")
	ErrEase             = errors.New("snapsheet: unknown easing")
	ErrCarouselGeometry = errors.New("snapsheet: carousel item width must be positive")
	ErrResizePolicy     = errors.New("snapsheet: unknown resize policy")
)

func defaultGesture() GestureConfig {
	return GestureConfig{
		AxisRatio:         1.5,
		AxisLockDistance:  8,
		VelocityWindow:    100 * time.Millisecond,
		DoubleTapInterval: 300 * time.Millisecond,
		DoubleTapSlop:     24,
	}
}

func defaultCarousel() CarouselConfig {
	return CarouselConfig{
		ItemWidth:     280,
		Gap:           12,
		Padding:       16,
		NotifyDelay:   100 * time.Millisecond,
		SlideDuration: 250 * time.Millisecond,
		Resize:        ResizeClamp,
		Swipe:         SwipeThresholds{Offset: 80, Velocity: 500},
	}
}

func defaultAnimator() AnimatorConfig {
	return AnimatorConfig{
		Motion: MotionSpring,
		Spring: SpringConfig{Frequency: 12, Damping: 1, Tolerance: 0.5},
		Tween:  TweenConfig{Duration: 300 * time.Millisecond, Ease: "outCubic"},
	}
}

// TwoTierConfig returns the Collapsed/Expanded layout used by single-offer
// sheets: close or collapse past 150px or 600px/s, expand past 100px or
// 600px/s.
func TwoTierConfig() Config {
	return Config{
		Tiers:       append([]State(nil), TwoTier...),
		Dismissible: true,
		Thresholds: Thresholds{
			DownOffset: 150, DownVelocity: 600,
			UpOffset: 100, UpVelocity: 600,
			Tap: TapThreshold{Offset: 10, Velocity: 100},
		},
		Gesture:    defaultGesture(),
		SnapPoints: SnapPoints{Collapsed: 0.4, Full: 0.92},
		Backdrop:   BackdropLevels{Collapsed: 0, Full: 0.6},
		Animator:   defaultAnimator(),
		Carousel:   defaultCarousel(),
	}
}

// ThreeTierConfig returns the Collapsed/Mid/Full layout used by discovery
// sheets: move one tier past 100px or 500px/s in either direction.
func ThreeTierConfig() Config {
	return Config{
		Tiers:       append([]State(nil), ThreeTier...),
		Dismissible: true,
		Thresholds: Thresholds{
			DownOffset: 100, DownVelocity: 500,
			UpOffset: 100, UpVelocity: 500,
			Tap: TapThreshold{Offset: 10, Velocity: 100},
		},
		Gesture:    defaultGesture(),
		SnapPoints: SnapPoints{Collapsed: 0.22, Mid: 0.5, Full: 0.92},
		Backdrop:   BackdropLevels{Collapsed: 0, Mid: 0.35, Full: 0.6},
		Animator:   defaultAnimator(),
		Carousel:   defaultCarousel(),
	}
}

// DefaultConfig returns ThreeTierConfig.
func DefaultConfig() Config {
	return ThreeTierConfig()
}

// ParseConfig decodes YAML over DefaultConfig, so a file only needs the keys
// it changes.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// Validate reports the first configuration error found.
func (c Config) Validate() error {
	if len(c.Tiers) == 0 {
		return ErrNoTiers
	}
	if c.Tiers[0] != StateCollapsed {
		return ErrTierOrder
	}
	for i := 1; i < len(c.Tiers); i++ {
		if c.Tiers[i] <= c.Tiers[i-1] || c.Tiers[i] > StateFull {
			return ErrTierOrder
		}
	}

	th := c.Thresholds
	if th.DownOffset <= 0 || th.DownVelocity <= 0 || th.UpOffset <= 0 || th.UpVelocity <= 0 ||
		th.Tap.Offset < 0 || th.Tap.Velocity < 0 {
		return ErrThreshold
	}
	if c.Carousel.Swipe.Offset <= 0 || c.Carousel.Swipe.Velocity <= 0 {
		return ErrThreshold
	}

	prev := 0.0
	for _, s := range c.Tiers {
		f := c.SnapPoints.Fraction(s)
		if f <= prev || f > 1 {
			return fmt.Errorf("%w: %s=%v", ErrSnapPoints, s, f)
		}
		prev = f
	}

	switch c.Animator.Motion {
	case MotionSpring, MotionTween:
	default:
		return fmt.Errorf("%w: %q", ErrMotion, c.Animator.Motion)
	}
	if _, ok := EaseByName(c.Animator.Tween.Ease); !ok {
		return fmt.Errorf("%w: %q", ErrEase, c.Animator.Tween.Ease)
	}

	if c.Carousel.ItemWidth <= 0 {
		return ErrCarouselGeometry
	}
	switch c.Carousel.Resize {
	case ResizeClamp, ResizeReset:
	default:
		return fmt.Errorf("%w: %q", ErrResizePolicy, c.Carousel.Resize)
	}
	return nil
}

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"outQuart":   ease.OutQuart,
	"outExpo":    ease.OutExpo,
	"inOutSine":  ease.InOutSine,
	"outBack":    ease.OutBack,
}

// EaseByName looks up a gween easing function by its camel-case name.
// An empty name resolves to outCubic.
func EaseByName(name string) (ease.TweenFunc, bool) {
	if name == "" {
		return ease.OutCubic, true
	}
	fn, ok := easings[name]
	return fn, ok
}
