package snapsheet

import (
	"encoding/json"
	"fmt"
)

// testStep is one scripted action and its arguments.
type testStep struct {
	Action  string  `json:"action"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Mode    string  `json:"mode,omitempty"`
	Partner string  `json:"partner,omitempty"`
	Index   *int    `json:"index,omitempty"`
	State   string  `json:"state,omitempty"`
}

// testScript is the document root of a gesture script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected gestures, sheet commands and expectations
// across frames. Call Step once per frame before PointerInput.Update.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "open", "close", "drag", "tap", "wait", "select", "expand", "expect":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the mismatches recorded by expect steps.
func (r *TestRunner) Failures() []string {
	return r.failures
}

// Step advances the runner by one frame.
func (r *TestRunner) Step(in *PointerInput, sh *Sheet) {
	if r.done {
		return
	}
	// An injected gesture runs to completion before the next step.
	if in.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "open":
		opts := OpenOptions{PartnerID: st.Partner}
		if st.Mode == ModePartner.String() {
			opts.Mode = ModePartner
		}
		if st.Index != nil {
			opts.InitialIndex = *st.Index
		}
		sh.Open(opts)
	case "close":
		sh.Close()
	case "select":
		sh.SelectPartner(st.Partner)
	case "expand":
		sh.Expand()
	case "tap":
		in.InjectTap(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect":
		r.check(r.cursor-1, st, sh)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}

func (r *TestRunner) check(i int, st testStep, sh *Sheet) {
	if st.State != "" {
		var want State
		if err := want.UnmarshalText([]byte(st.State)); err != nil {
			r.failures = append(r.failures, fmt.Sprintf("step %d: %v", i, err))
		} else if got := sh.State(); got != want {
			r.failures = append(r.failures, fmt.Sprintf("step %d: state = %s, want %s", i, got, want))
		}
	}
	if st.Mode != "" {
		if got := sh.Mode().String(); got != st.Mode {
			r.failures = append(r.failures, fmt.Sprintf("step %d: mode = %s, want %s", i, got, st.Mode))
		}
	}
	if st.Index != nil {
		if got := sh.Carousel().Index(); got != *st.Index {
			r.failures = append(r.failures, fmt.Sprintf("step %d: index = %d, want %d", i, got, *st.Index))
		}
	}
}
