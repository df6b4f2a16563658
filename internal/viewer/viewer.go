// Package viewer runs the interactive spotlight viewer on OpenGL, with either
// the ImGui debug panel or plain SDL keyboard controls as frontend.
package viewer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/app"
	"github.com/Faultbox/spotlight/internal/config"
	"github.com/Faultbox/spotlight/internal/engine/renderer"
	"github.com/Faultbox/spotlight/internal/engine/shader"
	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/internal/pipeline"
)

// Title is the window title.
const Title = "Spotlight"

// Run builds the app for the configured frontend and loops until the window
// closes, Escape is pressed or frames keep failing.
func Run(ctx context.Context, cfg *config.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	switch cfg.Graphics.Frontend {
	case config.FrontendSDL:
		err = runSDL(ctx, a)
	case config.FrontendImGui:
		err = runImGui(ctx, a)
	default:
		err = fmt.Errorf("unknown frontend %q", cfg.Graphics.Frontend)
	}
	if err != nil {
		return err
	}
	return a.Err()
}

// attachGL uploads the scene to the current GL context and connects the
// pipeline to r. overlay may be nil.
func attachGL(a *app.App, r *renderer.Renderer, overlay pipeline.Overlay) error {
	program, err := shader.NewSpotlightProgram()
	if err != nil {
		return err
	}
	a.OnClose(func() error {
		program.Destroy()
		return nil
	})

	m, err := renderer.UploadMesh(a.Geometry())
	if err != nil {
		return err
	}
	a.OnClose(func() error {
		m.Destroy()
		return nil
	})

	if err := a.UseTextures(renderer.TextureUploader{}); err != nil {
		return err
	}

	if err := a.Attach(r, program, m, overlay); err != nil {
		return err
	}

	g := a.Geometry()
	logger.Info("scene ready",
		zap.String("mesh", a.Config().Scene.Mesh),
		zap.Int("vertices", len(g.Vertices)),
		zap.Int32("indices", g.IndexCount()),
		zap.String("texture", a.Config().Scene.TextureKey),
	)
	return nil
}
