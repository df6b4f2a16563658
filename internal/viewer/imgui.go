package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/app"
	"github.com/Faultbox/spotlight/internal/engine/camera"
	"github.com/Faultbox/spotlight/internal/engine/debug"
	"github.com/Faultbox/spotlight/internal/engine/framebuffer"
	"github.com/Faultbox/spotlight/internal/engine/renderer"
	engineui "github.com/Faultbox/spotlight/internal/engine/ui"
	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/internal/pipeline"
	"github.com/Faultbox/spotlight/internal/preset"
	"github.com/Faultbox/spotlight/internal/ui"
)

// ScreenshotDir is where the panel's screenshot button writes PNGs.
const ScreenshotDir = "screenshots"

// runImGui drives the debug panel frontend. The ImGui backend owns the window
// and clears it after every frame, so the scene renders offscreen and is
// shown as a full-viewport image behind the panel.
func runImGui(ctx context.Context, a *app.App) error {
	cfg := a.Config()
	width, height := cfg.Graphics.Width, cfg.Graphics.Height

	backend, err := engineui.NewBackend(Title, width, height, pipeline.ClearColor)
	if err != nil {
		return err
	}
	a.OnClose(func() error {
		backend.Destroy()
		return nil
	})

	r, err := renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		Lens:   camera.DefaultLens(),
	}, a.Camera())
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	a.OnClose(func() error {
		r.Close()
		return nil
	})

	fb, err := framebuffer.New(int32(width), int32(height))
	if err != nil {
		return err
	}
	r.SetTarget(fb)
	a.OnClose(func() error {
		fb.Destroy()
		return nil
	})

	timer := &ui.FrameTimer{}
	a.SetTick(func(dt float64) { timer.Update(dt * 1000) })

	panel := ui.NewPanel(a.Controls(), timer)
	panel.SetSceneView(ui.NewSceneView(fb.ColorTexture, a.Camera()))

	shots := debug.NewScreenshotCapture(ScreenshotDir, "spotlight")
	wantShot := false
	panel.OnScreenshot = func() { wantShot = true }

	if path := cfg.Preset.Path; path != "" {
		panel.OnSavePreset = func() {
			if err := preset.Save(path, a.Controls().Light().Snapshot()); err != nil {
				logger.Warn("saving preset failed", zap.Error(err))
				panel.Status = "Preset not saved: " + err.Error()
				return
			}
			panel.Status = "Preset saved to " + path
		}
	}

	if err := attachGL(a, r, panel); err != nil {
		return err
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	if addr := a.RemoteAddr(); addr != "" {
		panel.Status = "Remote: ws://" + addr + "/light"
	}

	titleTimer := time.Now()

	logger.Info("starting frame loop", zap.String("frontend", "imgui"))
	backend.Run(func() {
		if ctx.Err() != nil {
			backend.Close()
			return
		}

		// Follow the drawable size so the scene stays sharp after resizes.
		if w, h := engineui.FramebufferSize(); w > 0 && h > 0 {
			if fw, fh := fb.Size(); int32(w) != fw || int32(h) != fh {
				fb.Resize(int32(w), int32(h))
			}
		}

		if !engineui.WantsKeyboard() {
			handleImGuiKeys(a, &wantShot)
		}

		if !a.Frame() {
			backend.Close()
			return
		}

		if wantShot {
			wantShot = false
			saveScreenshot(shots, fb, panel)
		}

		if time.Since(titleTimer) >= time.Second {
			backend.SetWindowTitle(fmt.Sprintf("%s - %.0f FPS", Title, timer.FPS()))
			titleTimer = time.Now()
		}
	})
	return nil
}

func handleImGuiKeys(a *app.App, wantShot *bool) {
	if engineui.IsKeyPressed(imgui.KeyEscape) {
		a.Quit()
		return
	}
	if engineui.IsKeyPressed(imgui.KeyF12) {
		*wantShot = true
	}
	for _, b := range keyBindings {
		if engineui.IsKeyPressed(b.key) {
			a.Do(b.action)
		}
	}
}

func saveScreenshot(shots *debug.ScreenshotCapture, fb *framebuffer.Framebuffer, panel *ui.Panel) {
	w, h := fb.Size()
	path, err := shots.CaptureFromPixels(fb.ReadPixels(), int(w), int(h))
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		panel.Status = "Screenshot failed: " + err.Error()
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
	panel.Status = "Saved " + path
}
