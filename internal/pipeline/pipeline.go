// Package pipeline runs the per-frame lighting pass: it snapshots the light,
// gathers the frame transforms, binds both to the shading stage and issues the
// single draw of the mesh.
package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/lighting"
	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/pkg/math"
)

// ClearColor is the fixed scene background.
var ClearColor = math.RGBA(0.39, 0.58, 0.92, 1)

// Frame failure causes. Every error returned by RenderFrame wraps ErrFrameFailed.
var (
	ErrFrameFailed    = errors.New("frame failed")
	ErrMissingMesh    = errors.New("mesh not loaded")
	ErrMissingShader  = errors.New("shader not loaded")
	ErrMissingTexture = errors.New("texture not loaded")
)

// Transforms are the matrices of one frame. They are borrowed from the
// renderer for the duration of the frame.
type Transforms struct {
	World      math.Mat4
	View       math.Mat4
	Projection math.Mat4
}

// Params is the per-frame parameter block handed to the shading stage.
type Params struct {
	Transforms
	Texture Texture
	Light   lighting.Snapshot
}

// Renderer owns the device and the frame boundaries.
type Renderer interface {
	// BeginScene clears the color and depth targets.
	BeginScene(clear math.Color)
	// Transforms returns this frame's world, view and projection matrices.
	Transforms() Transforms
	// SetWireframe switches the fill mode for following draws.
	SetWireframe(on bool)
	// EndScene presents the frame.
	EndScene() error
}

// Mesh is an opaque geometry handle.
type Mesh interface {
	// SendData binds the mesh's vertex and index buffers for the next draw.
	SendData() error
	IndexCount() int32
}

// Texture is an opaque texture handle. Shading stages type-assert it to the
// capability they need.
type Texture interface {
	Key() string
}

// TextureSource resolves texture keys.
type TextureSource interface {
	Texture(key string) (Texture, bool)
}

// ShadingStage evaluates the spotlight shading for the bound mesh.
type ShadingStage interface {
	SetParameters(p *Params) error
	Render(indexCount int32) error
}

// Overlay is drawn after the main pass, e.g. the debug panel.
type Overlay interface {
	Render()
}

// Loader is implemented by handles that can be released or not yet uploaded.
// Handles without it are considered loaded when non-nil.
type Loader interface {
	Loaded() bool
}

func loaded(h any) bool {
	if h == nil {
		return false
	}
	if l, ok := h.(Loader); ok {
		return l.Loaded()
	}
	return true
}

// Stats counts frames since the pipeline was created.
type Stats struct {
	Frames      uint64
	Failures    uint64
	LastFailure error
}

// Config wires a Pipeline to its collaborators.
type Config struct {
	Renderer   Renderer
	Shader     ShadingStage
	Mesh       Mesh
	Textures   TextureSource
	TextureKey string
	Controls   *lighting.Controls
	Overlay    Overlay // optional
}

// Pipeline renders one lit mesh per frame.
type Pipeline struct {
	renderer   Renderer
	shader     ShadingStage
	mesh       Mesh
	textures   TextureSource
	textureKey string
	controls   *lighting.Controls
	overlay    Overlay

	stats Stats
	log   *zap.Logger
}

// New creates a pipeline. Renderer and Controls are required; missing
// per-frame resources (mesh, shader, texture) are reported by RenderFrame.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Renderer == nil {
		return nil, errors.New("pipeline: renderer is required")
	}
	if cfg.Controls == nil {
		return nil, errors.New("pipeline: light controls are required")
	}
	return &Pipeline{
		renderer:   cfg.Renderer,
		shader:     cfg.Shader,
		mesh:       cfg.Mesh,
		textures:   cfg.Textures,
		textureKey: cfg.TextureKey,
		controls:   cfg.Controls,
		overlay:    cfg.Overlay,
		log:        logger.Component("pipeline"),
	}, nil
}

// SetOverlay attaches (or with nil detaches) the post-pass overlay.
func (p *Pipeline) SetOverlay(o Overlay) { p.overlay = o }

// SetMesh replaces the mesh handle.
func (p *Pipeline) SetMesh(m Mesh) { p.mesh = m }

// SetShader replaces the shading stage.
func (p *Pipeline) SetShader(s ShadingStage) { p.shader = s }

// Stats returns the frame counters.
func (p *Pipeline) Stats() Stats { return p.stats }

// RenderFrame draws one frame. On failure nothing is drawn for the frame and
// the returned error wraps ErrFrameFailed. There is no retry; the next call is
// the next frame.
func (p *Pipeline) RenderFrame() error {
	p.stats.Frames++
	if err := p.renderFrame(); err != nil {
		err = fmt.Errorf("%w: %w", ErrFrameFailed, err)
		p.stats.Failures++
		p.stats.LastFailure = err
		return err
	}
	return nil
}

func (p *Pipeline) renderFrame() error {
	// Resolve everything before touching the device so a missing resource
	// never leaves a half-drawn frame.
	if !loaded(p.mesh) {
		return ErrMissingMesh
	}
	if !loaded(p.shader) {
		return ErrMissingShader
	}
	if p.textures == nil {
		return fmt.Errorf("%w: no texture source", ErrMissingTexture)
	}
	tex, ok := p.textures.Texture(p.textureKey)
	if !ok || !loaded(tex) {
		return fmt.Errorf("%w: %q", ErrMissingTexture, p.textureKey)
	}

	p.renderer.BeginScene(ClearColor)
	p.renderer.SetWireframe(p.controls.Wireframe())

	// One consistent read of the light per frame.
	params := Params{
		Transforms: p.renderer.Transforms(),
		Texture:    tex,
		Light:      p.controls.Light().Snapshot(),
	}

	if err := p.mesh.SendData(); err != nil {
		return fmt.Errorf("sending mesh: %w", err)
	}
	if err := p.shader.SetParameters(&params); err != nil {
		return fmt.Errorf("binding shader parameters: %w", err)
	}
	if err := p.shader.Render(p.mesh.IndexCount()); err != nil {
		return fmt.Errorf("drawing mesh: %w", err)
	}

	// The panel draws after the lit pass with its own state.
	p.renderer.SetWireframe(false)
	if p.overlay != nil {
		p.overlay.Render()
	}

	if err := p.renderer.EndScene(); err != nil {
		return fmt.Errorf("presenting: %w", err)
	}

	if p.stats.Frames%600 == 0 {
		p.log.Debug("frame stats",
			zap.Uint64("frames", p.stats.Frames),
			zap.Uint64("failures", p.stats.Failures),
		)
	}
	return nil
}
