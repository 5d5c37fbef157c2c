package snapsheet

import "testing"

func TestCallbackHandleRemove(t *testing.T) {
	s, _ := newTestSheet(t, ThreeTierConfig())
	var order []string
	h1 := s.OnClose(func() { order = append(order, "first") })
	s.OnClose(func() { order = append(order, "second") })
	h3 := s.OnClose(func() { order = append(order, "third") })

	h1.Remove()
	h1.Remove()
	s.Open(OpenOptions{})
	s.Close()
	if len(order) != 2 || order[0] != "second" || order[1] != "third" {
		t.Errorf("order = %v, want [second third]", order)
	}

	h3.Remove()
	order = order[:0]
	s.Open(OpenOptions{})
	s.Close()
	if len(order) != 1 || order[0] != "second" {
		t.Errorf("order = %v, want [second]", order)
	}
}

func TestCallbackRemovesItselfDuringDispatch(t *testing.T) {
	s, _ := newTestSheet(t, ThreeTierConfig())
	var order []string
	var h1 CallbackHandle
	h1 = s.OnClose(func() {
		order = append(order, "first")
		h1.Remove()
	})
	s.OnClose(func() { order = append(order, "second") })
	s.OnClose(func() { order = append(order, "third") })

	s.Open(OpenOptions{})
	s.Close()
	if len(order) != 3 || order[1] != "second" || order[2] != "third" {
		t.Errorf("order = %v, want [first second third]", order)
	}

	order = order[:0]
	s.Open(OpenOptions{})
	s.Close()
	if len(order) != 2 || order[0] != "second" || order[1] != "third" {
		t.Errorf("order after removal = %v, want [second third]", order)
	}
	if n := len(s.handlers.byType[EventClose]); n != 2 {
		t.Errorf("%d close handlers registered, want 2", n)
	}
}

func TestCallbackRemovesLaterHandlerDuringDispatch(t *testing.T) {
	s, _ := newTestSheet(t, ThreeTierConfig())
	var order []string
	var h2 CallbackHandle
	s.OnClose(func() {
		order = append(order, "first")
		h2.Remove()
		s.OnClose(func() { order = append(order, "added") })
	})
	h2 = s.OnClose(func() { order = append(order, "second") })

	s.Open(OpenOptions{})
	s.Close()
	if len(order) != 1 || order[0] != "first" {
		t.Errorf("order = %v, want [first]", order)
	}
}

func TestZeroCallbackHandleRemove(t *testing.T) {
	var h CallbackHandle
	h.Remove()
}

func TestEventPayloads(t *testing.T) {
	s, rec := newTestSheet(t, ThreeTierConfig())
	s.Open(OpenOptions{Mode: ModePartner, PartnerID: "p-1"})

	var modeChange *Event
	for i := range rec.events {
		if rec.events[i].Type == EventModeChange {
			modeChange = &rec.events[i]
		}
	}
	if modeChange == nil {
		t.Fatal("no mode change event")
	}
	if modeChange.Mode != ModePartner || modeChange.PartnerID != "p-1" {
		t.Errorf("mode change = %+v", *modeChange)
	}

	last := rec.events[len(rec.events)-1]
	if last.Type != EventHeightChange || last.From != StateCollapsed || last.To != StateMid || last.Reason != ReasonSelect {
		t.Errorf("last event = %+v", last)
	}
	for _, e := range rec.events {
		if e.Session != s.SessionID() {
			t.Errorf("%s event has session %q, want %q", e.Type, e.Session, s.SessionID())
		}
	}
}

func TestEventTypeNames(t *testing.T) {
	if EventIndexChange.String() != "index_change" || EventType(200).String() != "unknown" {
		t.Error("unexpected event type names")
	}
}
