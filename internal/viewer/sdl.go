package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/app"
	"github.com/Faultbox/spotlight/internal/engine/camera"
	"github.com/Faultbox/spotlight/internal/engine/input"
	"github.com/Faultbox/spotlight/internal/engine/renderer"
	"github.com/Faultbox/spotlight/internal/engine/window"
	"github.com/Faultbox/spotlight/internal/logger"
)

// runSDL drives the keyboard only frontend: SDL owns the window and events,
// the renderer presents by swapping the window buffers.
func runSDL(ctx context.Context, a *app.App) error {
	cfg := a.Config()

	win, err := window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	a.OnClose(func() error {
		win.Close()
		return nil
	})

	// Drawable size differs from the window size on high-DPI displays.
	width, height := win.GetDrawableSize()
	r, err := renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		Lens:   camera.DefaultLens(),
	}, a.Camera())
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	r.SetPresent(win.SwapBuffers)
	a.OnClose(func() error {
		r.Close()
		return nil
	})

	if err := attachGL(a, r, nil); err != nil {
		return err
	}
	if err := a.Start(ctx); err != nil {
		return err
	}

	in := input.New()
	cam := a.Camera()
	fpsTimer := time.Now()
	frames := 0

	logger.Info("starting frame loop", zap.String("frontend", "sdl"))
	for {
		if ctx.Err() != nil || in.Update() {
			return nil
		}

		for _, ev := range in.Events() {
			switch ev.Type {
			case input.EventWindowResize:
				r.Resize(win.GetDrawableSize())
			case input.EventKeyDown:
				if ev.Key == sdl.SCANCODE_ESCAPE {
					a.Quit()
					continue
				}
				if action, ok := scancodeActions[ev.Key]; ok {
					a.Do(action)
				}
			case input.EventMouseMove:
				if ev.Dragging() {
					cam.HandleDrag(float32(ev.DeltaX), float32(ev.DeltaY))
				}
			case input.EventMouseWheel:
				cam.HandleZoom(float32(ev.DeltaY))
			}
		}

		if !a.Frame() {
			return nil
		}

		frames++
		if time.Since(fpsTimer) >= time.Second {
			win.SetTitle(fmt.Sprintf("%s - %d FPS", Title, frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}
}
