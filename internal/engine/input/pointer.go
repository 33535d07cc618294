// Package input tracks per-frame pointer state over the viewport.
package input

// ClickSlop is how far, in pixels, the pointer may travel between press and
// release for the release to still count as a click.
const ClickSlop = 4

// Pointer holds the pointer state for one frame.
type Pointer struct {
	// Raw state, set by the caller before Update.
	X, Y     float32
	LeftDown bool
	Wheel    float32
	Inside   bool

	// Derived by Update
	DeltaX, DeltaY float32
	LeftPressed    bool
	LeftReleased   bool
	Exited         bool // Inside last frame, outside now

	// Previous frame state for edge detection
	prevLeft   bool
	prevInside bool
	prevX      float32
	prevY      float32
	pressX     float32
	pressY     float32
	travelled  float32
	dragActive bool
}

// Update derives deltas and button edges. Call once per frame after
// setting the raw values.
func (p *Pointer) Update() {
	p.DeltaX = p.X - p.prevX
	p.DeltaY = p.Y - p.prevY

	p.LeftPressed = p.LeftDown && !p.prevLeft
	p.LeftReleased = !p.LeftDown && p.prevLeft
	p.Exited = p.prevInside && !p.Inside

	if p.LeftPressed {
		p.pressX, p.pressY = p.X, p.Y
		p.travelled = 0
		// Drags only start inside the viewport.
		p.dragActive = p.Inside
	}
	if p.LeftDown && !p.LeftPressed {
		p.travelled += abs(p.DeltaX) + abs(p.DeltaY)
	}

	p.prevLeft = p.LeftDown
	p.prevInside = p.Inside
	p.prevX = p.X
	p.prevY = p.Y
}

// Dragging reports whether a drag that started inside the viewport is in
// progress.
func (p *Pointer) Dragging() bool {
	return p.LeftDown && p.dragActive
}

// Clicked reports whether the left button was released this frame after a
// press inside the viewport without travelling beyond ClickSlop.
func (p *Pointer) Clicked() bool {
	return p.LeftReleased && p.dragActive && p.Inside && p.travelled <= ClickSlop
}

// EndFrame clears per-frame values.
func (p *Pointer) EndFrame() {
	p.Wheel = 0
	if !p.LeftDown {
		p.dragActive = false
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
