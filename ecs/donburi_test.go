package ecs

import (
	"testing"

	"github.com/phanxgames/snapsheet"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []snapsheet.Event
	SheetEventType.Subscribe(world, func(w donburi.World, e snapsheet.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(snapsheet.Event{
		Type: snapsheet.EventHeightChange,
		From: snapsheet.StateCollapsed,
		To:   snapsheet.StateMid,
	})
	sink.EmitEvent(snapsheet.Event{
		Type:  snapsheet.EventIndexChange,
		Index: 3,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before processing, got %d", len(received))
	}
	SheetEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != snapsheet.EventHeightChange || e.To != snapsheet.StateMid {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != snapsheet.EventIndexChange || e.Index != 3 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_ReceivesSheetEvents(t *testing.T) {
	world := donburi.NewWorld()
	sheet, err := snapsheet.New(snapsheet.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	sheet.SetViewport(400, 800)
	sheet.SetEventSink(NewDonburiSink(world))

	var types []snapsheet.EventType
	SheetEventType.Subscribe(world, func(w donburi.World, e snapsheet.Event) {
		types = append(types, e.Type)
	})

	sheet.Open(snapsheet.OpenOptions{})
	sheet.Close()
	events.ProcessAllEvents(world)

	want := []snapsheet.EventType{
		snapsheet.EventOpen,
		snapsheet.EventHeightChange,
		snapsheet.EventHeightChange,
		snapsheet.EventClose,
	}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink snapsheet.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}
