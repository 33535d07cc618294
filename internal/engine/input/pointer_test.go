package input

import "testing"

func frame(p *Pointer, x, y float32, down, inside bool) {
	p.X, p.Y, p.LeftDown, p.Inside = x, y, down, inside
	p.Update()
}

func TestPointerClick(t *testing.T) {
	var p Pointer
	frame(&p, 10, 10, false, true)
	frame(&p, 10, 10, true, true)
	if !p.LeftPressed {
		t.Error("expected press edge")
	}
	p.EndFrame()
	frame(&p, 11, 10, true, true)
	p.EndFrame()
	frame(&p, 11, 10, false, true)
	if !p.LeftReleased {
		t.Error("expected release edge")
	}
	if !p.Clicked() {
		t.Error("expected click after small travel")
	}
}

func TestPointerDragIsNotClick(t *testing.T) {
	var p Pointer
	frame(&p, 0, 0, true, true)
	p.EndFrame()
	frame(&p, 20, 0, true, true)
	if !p.Dragging() {
		t.Error("expected drag in progress")
	}
	if p.DeltaX != 20 {
		t.Errorf("expected delta 20, got %v", p.DeltaX)
	}
	p.EndFrame()
	frame(&p, 20, 0, false, true)
	if p.Clicked() {
		t.Error("drag must not count as click")
	}
}

func TestPointerPressOutside(t *testing.T) {
	var p Pointer
	frame(&p, 0, 0, true, false)
	p.EndFrame()
	frame(&p, 5, 5, true, true)
	if p.Dragging() {
		t.Error("drag started outside the viewport")
	}
	p.EndFrame()
	frame(&p, 5, 5, false, true)
	if p.Clicked() {
		t.Error("press outside must not click")
	}
}

func TestEndFrameClearsWheel(t *testing.T) {
	p := Pointer{Wheel: 2}
	p.EndFrame()
	if p.Wheel != 0 {
		t.Errorf("expected wheel reset, got %v", p.Wheel)
	}
}

func TestPointerExited(t *testing.T) {
	var p Pointer
	frame(&p, 5, 5, false, true)
	if p.Exited {
		t.Error("entering must not count as exit")
	}
	p.EndFrame()
	frame(&p, -1, 5, false, false)
	if !p.Exited {
		t.Error("expected exit edge")
	}
	p.EndFrame()
	frame(&p, -2, 5, false, false)
	if p.Exited {
		t.Error("exit edge must fire once")
	}
}
