package snapsheet

import "github.com/hajimehoshi/ebiten/v2"

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// PointerTarget receives one pointer stream. Sheet implements it.
type PointerTarget interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp(x, y float64)
}

type pointerState struct {
	down  bool
	lastX float64
	lastY float64
}

// PointerInput polls Ebitengine mouse and touch input and forwards a single
// pointer stream to its target. The first pointer to go down owns the
// surface until it is released; other pointers are ignored meanwhile, so two
// gesture streams never interleave.
//
// Coordinates are translated by Origin before forwarding, so a sheet laid out
// inside a sub-rectangle of the window receives local coordinates.
type PointerInput struct {
	target PointerTarget
	Origin Vec2

	pointers [maxPointers]pointerState
	owner    int

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticPointerEvent
}

// NewPointerInput creates an input adapter feeding target.
func NewPointerInput(target PointerTarget) *PointerInput {
	return &PointerInput{target: target, owner: -1}
}

// Update processes one frame of input. A queued synthetic event, if any,
// replaces real mouse and touch input for the frame.
func (p *PointerInput) Update() {
	if p.processInjectedInput() {
		return
	}
	p.processMousePointer()
	p.processTouchPointers()
}

// Owner returns the pointer slot that owns the surface, or -1.
func (p *PointerInput) Owner() int {
	return p.owner
}

// processMousePointer handles mouse input (pointer 0).
func (p *PointerInput) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	p.processPointer(0, float64(mx), float64(my), pressed)
}

// processTouchPointers handles touch input (pointers 1-9).
func (p *PointerInput) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(p.prevTouchIDs[:0])
	p.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := p.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		p.processPointer(slot, float64(tx), float64(ty), true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && !activeSlots[i] {
			ps := &p.pointers[i]
			if ps.down {
				p.processPointer(i, ps.lastX+p.Origin.X, ps.lastY+p.Origin.Y, false)
			}
			p.touchUsed[i] = false
			p.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (p *PointerInput) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if p.touchUsed[i] && p.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !p.touchUsed[i] {
			p.touchUsed[i] = true
			p.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the press/move/release state machine for one pointer
// given screen coordinates.
func (p *PointerInput) processPointer(pointerID int, sx, sy float64, pressed bool) {
	ps := &p.pointers[pointerID]
	x, y := sx-p.Origin.X, sy-p.Origin.Y

	switch {
	case pressed && !ps.down:
		ps.down = true
		if p.owner < 0 {
			p.owner = pointerID
			p.target.PointerDown(x, y)
		}
	case pressed && ps.down:
		if p.owner == pointerID && (x != ps.lastX || y != ps.lastY) {
			p.target.PointerMove(x, y)
		}
	case !pressed && ps.down:
		ps.down = false
		if p.owner == pointerID {
			p.owner = -1
			p.target.PointerUp(x, y)
		}
	}
	ps.lastX = x
	ps.lastY = y
}
