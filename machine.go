package snapsheet

import "fmt"

// Reason records what caused a transition.
type Reason uint8

const (
	ReasonNone   Reason = iota
	ReasonDrag          // drag past a threshold
	ReasonExpand        // double tap or expand affordance
	ReasonSelect        // partner selection surfaced the sheet
	ReasonOpen          // closed -> open
	ReasonClose         // close button, backdrop tap, or host close
)

var reasonNames = [...]string{"none", "drag", "expand", "select", "open", "close"}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("Reason(%d)", r)
}

// Transition describes a move between two states. A Transition whose From and
// To are equal is a no-op; the sheet animates back to its current tier.
type Transition struct {
	From, To State
	Reason   Reason
}

// Changed reports whether the transition moves to a different state.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// SnapMachine maps the current tier plus a gesture outcome to the next tier.
// It holds no animation or gesture state; one machine serves any number of
// tier layouts through configuration.
type SnapMachine struct {
	tiers       []State
	th          Thresholds
	dismissible bool
	state       State
}

// NewSnapMachine creates a machine over tiers (lowest first). The machine
// starts Closed; call Open to enter the lowest tier.
func NewSnapMachine(tiers []State, th Thresholds, dismissible bool) (*SnapMachine, error) {
	if len(tiers) == 0 {
		return nil, ErrNoTiers
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i] <= tiers[i-1] {
			return nil, ErrTierOrder
		}
	}
	if tiers[0] == StateClosed {
		return nil, ErrTierOrder
	}
	return &SnapMachine{
		tiers:       append([]State(nil), tiers...),
		th:          th,
		dismissible: dismissible,
		state:       StateClosed,
	}, nil
}

// State returns the active state.
func (m *SnapMachine) State() State {
	return m.state
}

// Tiers returns the configured layout. The returned slice MUST NOT be mutated.
func (m *SnapMachine) Tiers() []State {
	return m.tiers
}

// Lowest returns the initial (lowest open) tier.
func (m *SnapMachine) Lowest() State {
	return m.tiers[0]
}

// Highest returns the top tier.
func (m *SnapMachine) Highest() State {
	return m.tiers[len(m.tiers)-1]
}

// SetThresholds swaps the policy constants, e.g. after a config reload.
func (m *SnapMachine) SetThresholds(th Thresholds) {
	m.th = th
}

// Thresholds returns the active policy constants.
func (m *SnapMachine) Thresholds() Thresholds {
	return m.th
}

// Peek computes the transition a sample would cause without applying it.
func (m *SnapMachine) Peek(sample DragSample) Transition {
	t := Transition{From: m.state, To: m.state}
	if m.state == StateClosed || sample.isVerticalTap(m.th.Tap) {
		return t
	}

	idx := m.indexOf(m.state)
	oy, vy := sample.Offset.Y, sample.Velocity.Y

	switch {
	case oy > m.th.DownOffset || vy > m.th.DownVelocity:
		if idx > 0 {
			t.To = m.tiers[idx-1]
		} else if m.dismissible {
			t.To = StateClosed
		}
	case oy < -m.th.UpOffset || vy < -m.th.UpVelocity:
		if idx < len(m.tiers)-1 {
			t.To = m.tiers[idx+1]
		}
	}
	if t.Changed() {
		t.Reason = ReasonDrag
	}
	return t
}

// Resolve applies the transition for sample. At most one tier is crossed per
// gesture.
func (m *SnapMachine) Resolve(sample DragSample) Transition {
	t := m.Peek(sample)
	m.state = t.To
	return t
}

// Expand jumps to the top tier, bypassing thresholds. No-op while closed.
func (m *SnapMachine) Expand() Transition {
	t := Transition{From: m.state, To: m.state}
	if m.state == StateClosed {
		return t
	}
	t.To = m.Highest()
	if t.Changed() {
		t.Reason = ReasonExpand
	}
	m.state = t.To
	return t
}

// EnsureAtLeast raises the state to the first tier at or above s. States
// already at or above s are left alone, and so is a closed machine.
func (m *SnapMachine) EnsureAtLeast(s State) Transition {
	t := Transition{From: m.state, To: m.state}
	if m.state == StateClosed || m.state >= s {
		return t
	}
	t.To = m.Highest()
	for _, tier := range m.tiers {
		if tier >= s {
			t.To = tier
			break
		}
	}
	if t.Changed() {
		t.Reason = ReasonSelect
	}
	m.state = t.To
	return t
}

// Open enters the lowest tier. Opening an already open machine resets it to
// the lowest tier too, so every open session starts the same way.
func (m *SnapMachine) Open() Transition {
	t := Transition{From: m.state, To: m.Lowest(), Reason: ReasonOpen}
	m.state = t.To
	return t
}

// Close moves to StateClosed from any state.
func (m *SnapMachine) Close() Transition {
	t := Transition{From: m.state, To: StateClosed}
	if t.Changed() {
		t.Reason = ReasonClose
	}
	m.state = StateClosed
	return t
}

// Reset returns the machine to Closed without reporting a transition.
func (m *SnapMachine) Reset() {
	m.state = StateClosed
}

func (m *SnapMachine) indexOf(s State) int {
	for i, tier := range m.tiers {
		if tier == s {
			return i
		}
	}
	// A state outside the layout (e.g. Mid in a two-tier layout) behaves as
	// the nearest tier below it.
	idx := 0
	for i, tier := range m.tiers {
		if tier < s {
			idx = i
		}
	}
	return idx
}
