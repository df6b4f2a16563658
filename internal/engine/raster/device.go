package raster

import (
	"errors"
	"image"

	"github.com/Faultbox/spotlight/internal/engine/camera"
	"github.com/Faultbox/spotlight/internal/engine/mesh"
	"github.com/Faultbox/spotlight/internal/pipeline"
	"github.com/Faultbox/spotlight/pkg/math"
)

// Device is the software renderer. It implements pipeline.Renderer and
// holds the state the shading stage draws with.
type Device struct {
	fb        *Framebuffer
	view      camera.ViewSource
	lens      camera.Lens
	world     math.Mat4
	wireframe bool
	bound     *mesh.Geometry
	drawCalls int
	frames    int
	present   func(*image.RGBA) error
}

// NewDevice creates a device rendering into a width x height framebuffer.
func NewDevice(width, height int, view camera.ViewSource, lens camera.Lens) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("raster: framebuffer size must be positive")
	}
	if view == nil {
		return nil, errors.New("raster: view source is required")
	}
	return &Device{
		fb:    NewFramebuffer(width, height),
		view:  view,
		lens:  lens,
		world: math.Identity(),
	}, nil
}

// SetPresent installs a callback receiving every finished frame.
func (d *Device) SetPresent(present func(*image.RGBA) error) {
	d.present = present
}

// BeginScene clears the color and depth targets.
func (d *Device) BeginScene(clear math.Color) {
	d.fb.Clear(clear)
}

// Transforms returns this frame's matrices.
func (d *Device) Transforms() pipeline.Transforms {
	return pipeline.Transforms{
		World:      d.world,
		View:       d.view.ViewMatrix(),
		Projection: d.lens.Projection(d.fb.Width, d.fb.Height),
	}
}

// SetWireframe switches between edge-only and filled triangles.
func (d *Device) SetWireframe(on bool) {
	d.wireframe = on
}

// EndScene hands the frame to the present callback.
func (d *Device) EndScene() error {
	d.frames++
	if d.present != nil {
		return d.present(d.fb.Image())
	}
	return nil
}

// Framebuffer returns the render target.
func (d *Device) Framebuffer() *Framebuffer {
	return d.fb
}

// DrawCalls returns the number of draws issued since creation.
func (d *Device) DrawCalls() int {
	return d.drawCalls
}

// Frames returns the number of presented frames.
func (d *Device) Frames() int {
	return d.frames
}

// bind makes g the geometry of the next draw.
func (d *Device) bind(g *mesh.Geometry) {
	d.bound = g
}

// Mesh is geometry bound to a Device.
type Mesh struct {
	dev  *Device
	geom *mesh.Geometry
}

// NewMesh wraps g for drawing on dev.
func NewMesh(dev *Device, g *mesh.Geometry) *Mesh {
	return &Mesh{dev: dev, geom: g}
}

// SendData binds the geometry for the next draw.
func (m *Mesh) SendData() error {
	if !m.Loaded() {
		return errors.New("raster mesh released")
	}
	m.dev.bind(m.geom)
	return nil
}

// IndexCount returns the number of indices to draw.
func (m *Mesh) IndexCount() int32 {
	if m.geom == nil {
		return 0
	}
	return m.geom.IndexCount()
}

// Loaded reports whether the mesh still has geometry.
func (m *Mesh) Loaded() bool {
	return m != nil && m.geom != nil
}

// Release drops the geometry.
func (m *Mesh) Release() {
	m.geom = nil
}
