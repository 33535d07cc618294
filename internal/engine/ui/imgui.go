// Package ui wraps the ImGui SDL backend that owns the application window.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Options configures the window.
type Options struct {
	Title     string
	Width     int
	Height    int
	TargetFPS uint // 0 leaves the backend default
	FontPath  string
	FontSize  float32
}

// Backend owns the window, the GL context and the ImGui frame loop.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	title   string
}

// NewBackend creates the window and initializes OpenGL on it.
func NewBackend(opts Options) (*Backend, error) {
	b := &Backend{title: opts.Title}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	// Fonts must be registered before the first frame.
	b.backend.SetAfterCreateContextHook(func() {
		loadFont(opts.FontPath, opts.FontSize)
	})

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(opts.Title, opts.Width, opts.Height)
	if opts.TargetFPS > 0 {
		b.backend.SetTargetFPS(opts.TargetFPS)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

// loadFont adds a TTF font when path names a readable file. The default
// ImGui font is kept otherwise.
func loadFont(path string, size float32) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if size <= 0 {
		size = 16
	}
	imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, size, &imgui.FontConfig{}, nil)
}

// Run starts the frame loop. It returns when the window closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// OnDrop registers fn to receive paths dropped onto the window.
func (b *Backend) OnDrop(fn func(paths []string)) {
	b.backend.SetDropCallback(fn)
}

// SetDocument shows name after the base title. An empty name restores
// the base title.
func (b *Backend) SetDocument(name string) {
	title := b.title
	if name != "" {
		title = name + " - " + b.title
	}
	b.backend.SetWindowTitle(title)
}

// WorkArea returns the main viewport work area below the menu bar.
func WorkArea() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
