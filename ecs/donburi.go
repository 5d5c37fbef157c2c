package ecs

import (
	"github.com/phanxgames/snapsheet"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SheetEventType is the Donburi event type for snapsheet events.
var SheetEventType = events.NewEventType[snapsheet.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on SheetEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) snapsheet.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event snapsheet.Event) {
	SheetEventType.Publish(s.world, event)
}
