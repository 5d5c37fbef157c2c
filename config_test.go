package snapsheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStockConfigsValidate(t *testing.T) {
	for name, cfg := range map[string]Config{
		"two":     TwoTierConfig(),
		"three":   ThreeTierConfig(),
		"default": DefaultConfig(),
	} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v", name, err)
		}
	}
}

func TestTwoTierThresholds(t *testing.T) {
	th := TwoTierConfig().Thresholds
	if th.DownOffset != 150 || th.DownVelocity != 600 || th.UpOffset != 100 || th.UpVelocity != 600 {
		t.Errorf("two-tier thresholds = %+v", th)
	}
	th = ThreeTierConfig().Thresholds
	if th.DownOffset != 100 || th.DownVelocity != 500 || th.UpOffset != 100 || th.UpVelocity != 500 {
		t.Errorf("three-tier thresholds = %+v", th)
	}
}

func TestSnapPointsAndBackdrop(t *testing.T) {
	cfg := ThreeTierConfig()
	if cfg.SnapPoints.Fraction(StateClosed) != 0 || cfg.Backdrop.Opacity(StateClosed) != 0 {
		t.Error("closed should map to zero height and opacity")
	}
	if got := cfg.Backdrop.Opacity(StateFull); got != 0.6 {
		t.Errorf("full backdrop = %v, want 0.6", got)
	}
	if got := cfg.Backdrop.Opacity(StateCollapsed); got != 0 {
		t.Errorf("collapsed backdrop = %v, want 0", got)
	}
}

func TestParseConfigOverlaysDefaults(t *testing.T) {
	data := []byte(`
thresholds:
  down_offset: 150
  down_velocity: 600
carousel:
  notify_delay: 250ms
  resize: reset
animator:
  motion: tween
  tween:
    duration: 180ms
    ease: outQuad
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Thresholds.DownOffset != 150 || cfg.Thresholds.DownVelocity != 600 {
		t.Errorf("down thresholds = %v/%v", cfg.Thresholds.DownOffset, cfg.Thresholds.DownVelocity)
	}
	if cfg.Thresholds.UpOffset != 100 {
		t.Errorf("UpOffset = %v, want default 100", cfg.Thresholds.UpOffset)
	}
	if cfg.Carousel.NotifyDelay != 250*time.Millisecond {
		t.Errorf("NotifyDelay = %v", cfg.Carousel.NotifyDelay)
	}
	if cfg.Carousel.Resize != ResizeReset {
		t.Errorf("Resize = %q", cfg.Carousel.Resize)
	}
	if cfg.Animator.Motion != MotionTween || cfg.Animator.Tween.Duration != 180*time.Millisecond {
		t.Errorf("Animator = %+v", cfg.Animator)
	}
	if len(cfg.Tiers) != 3 {
		t.Errorf("Tiers = %v, want three-tier default", cfg.Tiers)
	}
}

func TestParseConfigTiers(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
tiers: [collapsed, expanded]
snap_points: {collapsed: 0.4, full: 0.9}
`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if len(cfg.Tiers) != 2 || cfg.Tiers[0] != StateCollapsed || cfg.Tiers[1] != StateFull {
		t.Errorf("Tiers = %v", cfg.Tiers)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"no tiers", "tiers: []", ErrNoTiers},
		{"order", "tiers: [full, collapsed]", ErrTierOrder},
		{"starts closed", "tiers: [closed, collapsed]", ErrTierOrder},
		{"threshold", "thresholds: {up_offset: 0}", ErrThreshold},
		{"swipe", "carousel: {swipe: {velocity: -1}}", ErrThreshold},
		{"snap points", "snap_points: {mid: 0.1}", ErrSnapPoints},
		{"motion", "animator: {motion: bounce}", ErrMotion},
		{"ease", "animator: {tween: {ease: wobble}}", ErrEase},
		{"geometry", "carousel: {item_width: 0}", ErrCarouselGeometry},
		{"resize", "carousel: {resize: grow}", ErrResizePolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseConfig() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseConfigMalformed(t *testing.T) {
	if _, err := ParseConfig([]byte("thresholds: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	if err := os.WriteFile(path, []byte("dismissible: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Dismissible {
		t.Error("Dismissible = true, want false")
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEaseByName(t *testing.T) {
	if fn, ok := EaseByName(""); !ok || fn == nil {
		t.Error("empty name should resolve to the default easing")
	}
	if _, ok := EaseByName("outBack"); !ok {
		t.Error("outBack not found")
	}
	if _, ok := EaseByName("bogus"); ok {
		t.Error("bogus easing should not resolve")
	}
}
