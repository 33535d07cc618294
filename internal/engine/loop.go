package engine

import (
	"slices"
	"sync"
)

// Loop implements the callback side of Surface: render loop and resize
// listener registration, Frame dispatch and size tracking. Backends embed it.
type Loop struct {
	mu      sync.Mutex
	nextID  int
	loops   map[int]func()
	resizes map[int]func(width, height int)
	width   int
	height  int
	closed  bool
}

// NewLoop creates a loop for a surface of the given size.
func NewLoop(width, height int) *Loop {
	return &Loop{
		loops:   make(map[int]func()),
		resizes: make(map[int]func(width, height int)),
		width:   clampSize(width),
		height:  clampSize(height),
	}
}

// RunRenderLoop registers fn to run on every Frame.
func (l *Loop) RunRenderLoop(fn func()) (stop func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return func() {}
	}
	id := l.nextID
	l.nextID++
	l.loops[id] = fn
	return func() {
		l.mu.Lock()
		delete(l.loops, id)
		l.mu.Unlock()
	}
}

// OnResize registers fn to run after the size changes.
func (l *Loop) OnResize(fn func(width, height int)) (remove func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return func() {}
	}
	id := l.nextID
	l.nextID++
	l.resizes[id] = fn
	return func() {
		l.mu.Lock()
		delete(l.resizes, id)
		l.mu.Unlock()
	}
}

// Resize records the new size and notifies listeners when it changed.
// It reports whether the size changed.
func (l *Loop) Resize(width, height int) bool {
	width, height = clampSize(width), clampSize(height)

	l.mu.Lock()
	if l.closed || (width == l.width && height == l.height) {
		l.mu.Unlock()
		return false
	}
	l.width, l.height = width, height
	listeners := snapshot(l.resizes)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(width, height)
	}
	return true
}

// Size returns the current size.
func (l *Loop) Size() (width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.width, l.height
}

// Frame runs every registered render loop once.
func (l *Loop) Frame() {
	l.mu.Lock()
	loops := snapshot(l.loops)
	l.mu.Unlock()

	for _, fn := range loops {
		fn()
	}
}

// Active returns the number of registered render loops and resize listeners.
func (l *Loop) Active() (loops, resizes int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.loops), len(l.resizes)
}

// Close drops all callbacks. Later registrations are ignored.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.loops)
	clear(l.resizes)
	l.closed = true
}

// snapshot copies callbacks in registration order so they run unlocked.
func snapshot[F any](m map[int]F) []F {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]F, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func clampSize(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
