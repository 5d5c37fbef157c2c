package snapsheet

// Child names the content the sheet body shows.
type Child uint8

const (
	ChildNone     Child = iota // sheet closed, nothing rendered
	ChildList                  // discover list
	ChildCarousel              // single partner with offer carousel
)

func (c Child) String() string {
	switch c {
	case ChildList:
		return "list"
	case ChildCarousel:
		return "carousel"
	default:
		return "none"
	}
}

// Route is the content decision for one state/mode pair.
type Route struct {
	Mode      ContentMode
	Child     Child
	PartnerID string
	// Peek is true when the sheet is too short for full content and shows a
	// compact preview instead. Only the Collapsed tier peeks.
	Peek    bool
	Visible bool
}

// Resetter is nested content state (paging, search, scroll) that must be
// cleared when the content mode changes.
type Resetter interface {
	Reset()
}

// ResetFunc adapts a plain function to Resetter.
type ResetFunc func()

// Reset calls f.
func (f ResetFunc) Reset() { f() }

// ContentRouter chooses between the discover list and the partner carousel.
type ContentRouter struct {
	mode      ContentMode
	partnerID string
	resetters []Resetter
}

// NewContentRouter creates a router in ModeDiscover.
func NewContentRouter() *ContentRouter {
	return &ContentRouter{mode: ModeDiscover}
}

// Mode returns the current content mode.
func (r *ContentRouter) Mode() ContentMode { return r.mode }

// PartnerID returns the selected partner, empty in ModeDiscover.
func (r *ContentRouter) PartnerID() string { return r.partnerID }

// Track registers nested state to clear on every mode switch.
func (r *ContentRouter) Track(res Resetter) {
	r.resetters = append(r.resetters, res)
}

// SetMode switches the content mode. Switching modes, or switching to a
// different partner, resets all tracked nested state. It reports whether
// anything changed.
func (r *ContentRouter) SetMode(mode ContentMode, partnerID string) bool {
	if mode == ModeDiscover {
		partnerID = ""
	}
	if mode == r.mode && partnerID == r.partnerID {
		return false
	}
	r.mode = mode
	r.partnerID = partnerID
	r.resetNested()
	return true
}

// Reset returns the router to ModeDiscover and clears nested state. Used
// when the sheet closes.
func (r *ContentRouter) Reset() {
	r.mode = ModeDiscover
	r.partnerID = ""
	r.resetNested()
}

func (r *ContentRouter) resetNested() {
	for _, res := range r.resetters {
		res.Reset()
	}
}

// Route decides what to render at state.
func (r *ContentRouter) Route(state State) Route {
	if state == StateClosed {
		return Route{Mode: r.mode, PartnerID: r.partnerID}
	}
	child := ChildList
	if r.mode == ModePartner {
		child = ChildCarousel
	}
	return Route{
		Mode:      r.mode,
		Child:     child,
		PartnerID: r.partnerID,
		Peek:      state == StateCollapsed,
		Visible:   true,
	}
}
