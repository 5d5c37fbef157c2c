package snapsheet

// EventType identifies a kind of sheet event.
type EventType uint8

const (
	EventOpen          EventType = iota // sheet opened (closed -> lowest tier)
	EventClose                          // sheet dismissed
	EventHeightChange                   // discrete state changed
	EventModeChange                     // content mode changed
	EventModeRequest                    // sheet asks the host to change mode
	EventIndexChange                    // centered carousel item changed (debounced)
	EventMapHighlight                   // host map should highlight an item
	EventMapCenter                      // host map should center on a location
)

var eventNames = [...]string{
	"open", "close", "height_change", "mode_change", "mode_request",
	"index_change", "map_highlight", "map_center",
}

func (e EventType) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Event carries the payload of one sheet event. Only the fields relevant to
// Type are set.
type Event struct {
	Type      EventType
	Session   string
	From, To  State
	Reason    Reason
	Mode      ContentMode
	PartnerID string
	Index     int
	ItemID    string
	Center    LatLng
}

// EventSink receives every event the sheet emits, after the registered
// callbacks. See the ecs subpackage for a Donburi-backed sink.
type EventSink interface {
	EmitEvent(event Event)
}

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	byType [len(eventNames)][]eventHandler
	nextID uint32

	// Removals during dispatch only clear fn; the lists are compacted once
	// the outermost dispatch returns.
	dispatching int
	dirty       bool
}

func (r *handlerRegistry) add(t EventType, fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.byType[t] = append(r.byType[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: t}
}

// dispatch calls the handlers registered for e.Type when it starts. Handlers
// added meanwhile wait for the next event; handlers removed meanwhile are
// skipped.
func (r *handlerRegistry) dispatch(e Event) {
	r.dispatching++
	n := len(r.byType[e.Type])
	for i := 0; i < n; i++ {
		if fn := r.byType[e.Type][i].fn; fn != nil {
			fn(e)
		}
	}
	r.dispatching--
	if r.dispatching == 0 && r.dirty {
		r.compact()
	}
}

func (r *handlerRegistry) compact() {
	for t, hs := range r.byType {
		live := hs[:0]
		for _, h := range hs {
			if h.fn != nil {
				live = append(live, h)
			}
		}
		clear(hs[len(live):])
		r.byType[t] = live
	}
	r.dirty = false
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. It is safe to call
// from inside any callback, including the one being removed.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id != h.id || s[i].fn == nil {
			continue
		}
		if h.reg.dispatching > 0 {
			s[i].fn = nil
			h.reg.dirty = true
			return
		}
		copy(s[i:], s[i+1:])
		s[len(s)-1] = eventHandler{}
		h.reg.byType[h.event] = s[:len(s)-1]
		return
	}
}

// OnOpen registers a callback fired when the sheet opens.
func (s *Sheet) OnOpen(fn func(session string)) CallbackHandle {
	return s.handlers.add(EventOpen, func(e Event) { fn(e.Session) })
}

// OnClose registers a callback fired once when the sheet is dismissed, by
// drag past the lowest tier, the close button, or a backdrop tap.
func (s *Sheet) OnClose(fn func()) CallbackHandle {
	return s.handlers.add(EventClose, func(Event) { fn() })
}

// OnHeightChange registers a callback fired on every discrete state change.
func (s *Sheet) OnHeightChange(fn func(State)) CallbackHandle {
	return s.handlers.add(EventHeightChange, func(e Event) { fn(e.To) })
}

// OnModeChange registers a callback fired on every content mode change.
func (s *Sheet) OnModeChange(fn func(ContentMode)) CallbackHandle {
	return s.handlers.add(EventModeChange, func(e Event) { fn(e.Mode) })
}

// OnModeRequest registers a callback fired when the sheet asks the host to
// switch content mode (e.g. a back affordance in partner view).
func (s *Sheet) OnModeRequest(fn func(ContentMode)) CallbackHandle {
	return s.handlers.add(EventModeRequest, func(e Event) { fn(e.Mode) })
}

// OnIndexChange registers a callback fired when the centered carousel item
// changes, at most once per notify delay.
func (s *Sheet) OnIndexChange(fn func(int)) CallbackHandle {
	return s.handlers.add(EventIndexChange, func(e Event) { fn(e.Index) })
}

// OnMapHighlight registers a callback receiving the ID of the centered item.
func (s *Sheet) OnMapHighlight(fn func(itemID string)) CallbackHandle {
	return s.handlers.add(EventMapHighlight, func(e Event) { fn(e.ItemID) })
}

// OnMapCenter registers a callback receiving the location of the centered
// item. Items without a location do not fire it.
func (s *Sheet) OnMapCenter(fn func(LatLng)) CallbackHandle {
	return s.handlers.add(EventMapCenter, func(e Event) { fn(e.Center) })
}

// SetEventSink sets the optional event bridge.
func (s *Sheet) SetEventSink(sink EventSink) {
	s.sink = sink
}

func (s *Sheet) emit(e Event) {
	e.Session = s.session.id
	s.handlers.dispatch(e)
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
}
