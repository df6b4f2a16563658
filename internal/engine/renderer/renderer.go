// Package renderer provides the OpenGL renderer of the lighting pipeline.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/engine/camera"
	"github.com/Faultbox/spotlight/internal/engine/framebuffer"
	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/internal/pipeline"
	"github.com/Faultbox/spotlight/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	Lens   camera.Lens
}

// Renderer owns the GL frame state: clear, matrices, fill mode and present.
type Renderer struct {
	config  Config
	view    camera.ViewSource
	world   math.Mat4
	present func() error

	target  *framebuffer.Framebuffer // nil renders to the window
	restore func()
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, view camera.ViewSource) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return &Renderer{
		config: cfg,
		view:   view,
		world:  math.Identity(),
	}, nil
}

// SetPresent installs the function that shows the finished frame. Without
// one, EndScene leaves presentation to the frontend.
func (r *Renderer) SetPresent(present func() error) {
	r.present = present
}

// SetTarget redirects the scene into an offscreen framebuffer. Pass nil to
// render to the window again.
func (r *Renderer) SetTarget(target *framebuffer.Framebuffer) {
	r.target = target
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// BeginScene binds the render target and clears color and depth.
func (r *Renderer) BeginScene(clear math.Color) {
	r.AbandonFrame()
	if r.target != nil {
		r.restore = r.target.BindWithViewport()
	}
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Transforms returns this frame's matrices.
func (r *Renderer) Transforms() pipeline.Transforms {
	return pipeline.Transforms{
		World:      r.world,
		View:       r.view.ViewMatrix(),
		Projection: r.config.Lens.Projection(r.viewport()),
	}
}

func (r *Renderer) viewport() (int, int) {
	if r.target != nil {
		w, h := r.target.Size()
		return int(w), int(h)
	}
	return r.config.Width, r.config.Height
}

// SetWireframe switches between line and fill rasterization.
func (r *Renderer) SetWireframe(on bool) {
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

// EndScene restores the window target, reports pending GL errors and
// presents the frame.
func (r *Renderer) EndScene() error {
	if r.restore != nil {
		r.restore()
		r.restore = nil
	}
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("GL error 0x%04x", code)
	}
	if r.present != nil {
		return r.present()
	}
	return nil
}

// AbandonFrame undoes the state of a frame that failed before EndScene:
// the window target and fill mode are restored.
func (r *Renderer) AbandonFrame() {
	if r.restore != nil {
		r.restore()
		r.restore = nil
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.AbandonFrame()
}
