// Package ui wraps the Dear ImGui SDL backend that owns the window in the
// debug panel frontend.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/pkg/math"
)

// runLoop is the part of the backend that owns the window lifetime. The
// backend tears down its contexts and the window when Run returns.
type runLoop interface {
	Run(frame func())
	SetShouldClose(bool)
}

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	loop    runLoop
	ran     bool
}

// NewBackend creates the window, the GL context and the ImGui context.
// bg is the color behind all ImGui windows.
func NewBackend(title string, width, height int, bg math.Color) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}
	b.loop = b.backend

	b.backend.SetAfterCreateContextHook(func() {
		imgui.StyleColorsDark()
	})
	b.backend.SetBgColor(imgui.NewVec4(bg.R, bg.G, bg.B, bg.A))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		b.Destroy()
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	logger.Info("imgui backend created",
		zap.String("title", title),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return b, nil
}

// Run starts the main render loop. frame is called once per displayed
// frame between ImGui's NewFrame and Render.
func (b *Backend) Run(frame func()) {
	b.ran = true
	b.loop.Run(frame)
}

// Close asks the loop to stop after the current frame.
func (b *Backend) Close() {
	b.loop.SetShouldClose(true)
}

// Destroy releases the window and contexts of a backend whose loop never
// ran, by running a loop that stops before its first frame. It is a no-op
// once Run has been called.
func (b *Backend) Destroy() {
	if b.ran {
		return
	}
	b.ran = true
	b.loop.SetShouldClose(true)
	b.loop.Run(func() {})
	logger.Debug("imgui backend destroyed before its loop ran")
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// FramebufferSize returns the drawable size in pixels.
// Only valid inside the frame callback.
func FramebufferSize() (int, int) {
	io := imgui.CurrentIO()
	size := io.DisplaySize()
	scale := io.DisplayFramebufferScale()
	return int(size.X * scale.X), int(size.Y * scale.Y)
}

// GetViewport returns the main viewport work area.
func GetViewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// WantsKeyboard reports whether an ImGui widget has keyboard focus.
func WantsKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}
