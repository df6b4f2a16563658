package raster

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/spotlight/internal/lighting"
	"github.com/Faultbox/spotlight/internal/pipeline"
	"github.com/Faultbox/spotlight/pkg/math"
)

// Sampler is the capability the software stage needs from a texture.
type Sampler interface {
	Sample(u, v float32) math.Color
}

// nearW rejects triangles touching the camera plane; there is no clipper.
const nearW = 1e-4

// wireWidth is the edge thickness in pixels in wireframe mode.
const wireWidth = 1

// Stage is the software shading stage. It evaluates lighting.Shade for
// every covered pixel of the bound mesh.
type Stage struct {
	dev     *Device
	params  pipeline.Params
	sampler Sampler
	ready   bool
}

// NewStage creates a shading stage drawing on dev.
func NewStage(dev *Device) *Stage {
	return &Stage{dev: dev}
}

// Loaded reports whether the stage has a device.
func (s *Stage) Loaded() bool {
	return s != nil && s.dev != nil
}

// SetParameters stores the frame's parameter block.
func (s *Stage) SetParameters(p *pipeline.Params) error {
	if p.Texture == nil {
		return errors.New("no texture bound")
	}
	sampler, ok := p.Texture.(Sampler)
	if !ok {
		return fmt.Errorf("texture %q cannot be sampled on the CPU", p.Texture.Key())
	}
	s.params = *p
	s.sampler = sampler
	s.ready = true
	return nil
}

// Render rasterizes indexCount indices of the bound mesh.
func (s *Stage) Render(indexCount int32) error {
	if !s.ready {
		return errors.New("parameters not set")
	}
	g := s.dev.bound
	if g == nil {
		return errors.New("no mesh bound")
	}
	if indexCount <= 0 || int(indexCount) > len(g.Indices) || indexCount%3 != 0 {
		return fmt.Errorf("invalid index count %d for %d indices", indexCount, len(g.Indices))
	}
	s.dev.drawCalls++

	verts := s.transform()
	for i := 0; i < int(indexCount); i += 3 {
		s.triangle(verts[g.Indices[i]], verts[g.Indices[i+1]], verts[g.Indices[i+2]])
	}
	s.ready = false
	return nil
}

// clipVertex is a vertex after the vertex stage.
type clipVertex struct {
	world  math.Vec3
	normal math.Vec3
	uv     math.Vec2
	clip   math.Vec4
}

func (s *Stage) transform() []clipVertex {
	g := s.dev.bound
	t := s.params.Transforms
	viewProj := t.Projection.Mul(t.View)

	out := make([]clipVertex, len(g.Vertices))
	for i, v := range g.Vertices {
		world := t.World.TransformPoint(v.Pos())
		out[i] = clipVertex{
			world:  world,
			normal: t.World.TransformDirection(v.Norm()),
			uv:     v.UV(),
			clip:   viewProj.MulVec4(math.Point(world)),
		}
	}
	return out
}

// screenVertex is a vertex in window coordinates with 1/w for
// perspective-correct interpolation.
type screenVertex struct {
	x, y, z float32
	invW    float32
}

func (s *Stage) toScreen(v clipVertex) screenVertex {
	fb := s.dev.fb
	invW := 1 / v.clip.W
	ndcX := v.clip.X * invW
	ndcY := v.clip.Y * invW
	return screenVertex{
		x:    (ndcX + 1) * 0.5 * float32(fb.Width),
		y:    (1 - ndcY) * 0.5 * float32(fb.Height), // window Y grows downwards
		z:    v.clip.Z * invW,
		invW: invW,
	}
}

func (s *Stage) triangle(a, b, c clipVertex) {
	if a.clip.W < nearW || b.clip.W < nearW || c.clip.W < nearW {
		return
	}
	sa, sb, sc := s.toScreen(a), s.toScreen(b), s.toScreen(c)

	// Counter-clockwise in NDC is front facing; with Y flipped that is a
	// negative signed area in window space.
	area := edge(sa, sb, sc.x, sc.y)
	if area >= 0 {
		return
	}

	fb := s.dev.fb
	minX := max(int(math32.Floor(min(sa.x, sb.x, sc.x))), 0)
	maxX := min(int(math32.Ceil(max(sa.x, sb.x, sc.x))), fb.Width-1)
	minY := max(int(math32.Floor(min(sa.y, sb.y, sc.y))), 0)
	maxY := min(int(math32.Ceil(max(sa.y, sb.y, sc.y))), fb.Height-1)

	// Distance from a pixel to an edge is weight * |2*area| / edge length.
	var edgeScale [3]float32
	if s.dev.wireframe {
		edgeScale[0] = -area / length(sb, sc)
		edgeScale[1] = -area / length(sc, sa)
		edgeScale[2] = -area / length(sa, sb)
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5
			w0 := edge(sb, sc, px, py) / area
			w1 := edge(sc, sa, px, py) / area
			w2 := edge(sa, sb, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			if s.dev.wireframe &&
				w0*edgeScale[0] > wireWidth && w1*edgeScale[1] > wireWidth && w2*edgeScale[2] > wireWidth {
				continue
			}

			z := w0*sa.z + w1*sb.z + w2*sc.z
			if z < -1 || z > 1 || !fb.depthTest(x, y, z) {
				continue
			}

			// Perspective-correct weights.
			p0, p1, p2 := w0*sa.invW, w1*sb.invW, w2*sc.invW
			sum := p0 + p1 + p2
			p0, p1, p2 = p0/sum, p1/sum, p2/sum

			frag := lighting.Fragment{
				Position: a.world.Scale(p0).Add(b.world.Scale(p1)).Add(c.world.Scale(p2)),
				Normal:   a.normal.Scale(p0).Add(b.normal.Scale(p1)).Add(c.normal.Scale(p2)),
				TexColor: s.sampler.Sample(
					a.uv.X*p0+b.uv.X*p1+c.uv.X*p2,
					a.uv.Y*p0+b.uv.Y*p1+c.uv.Y*p2,
				),
			}
			fb.Set(x, y, lighting.Shade(frag, s.params.Light))
		}
	}
}

// edge is twice the signed area of (a, b, p).
func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

func length(a, b screenVertex) float32 {
	return math32.Hypot(b.x-a.x, b.y-a.y)
}
