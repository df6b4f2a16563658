package shader

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/internal/pipeline"
)

// glTexture is the capability the GL stage needs from a texture handle.
type glTexture interface {
	GLID() uint32
}

// SpotlightProgram is the GL shading stage of the lighting pipeline.
type SpotlightProgram struct {
	id uint32

	locWorld      int32
	locView       int32
	locProjection int32
	locTexture    int32
	locLightPos   int32
	locLightDir   int32
	locDiffuse    int32
	locAmbient    int32
	locInnerCone  int32
	locOuterCone  int32
}

// NewSpotlightProgram compiles the embedded spotlight shaders.
// Requires a current GL context.
func NewSpotlightProgram() (*SpotlightProgram, error) {
	id, err := CompileProgram(SpotlightVertexShader, SpotlightFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("spotlight program: %w", err)
	}

	p := &SpotlightProgram{id: id}
	var missing []string
	lookup := func(name string) int32 {
		loc := GetUniform(id, name)
		if loc < 0 {
			missing = append(missing, name)
		}
		return loc
	}
	p.locWorld = lookup("uWorld")
	p.locView = lookup("uView")
	p.locProjection = lookup("uProjection")
	p.locTexture = lookup("uTexture")
	p.locLightPos = lookup("uLightPosition")
	p.locLightDir = lookup("uLightDirection")
	p.locDiffuse = lookup("uDiffuseColor")
	p.locAmbient = lookup("uAmbientColor")
	p.locInnerCone = lookup("uInnerCone")
	p.locOuterCone = lookup("uOuterCone")

	if len(missing) > 0 {
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("spotlight program: missing uniforms %v", missing)
	}

	logger.Debug("spotlight program compiled", zap.Uint32("program", id))
	return p, nil
}

// Loaded reports whether the program is linked and not destroyed.
func (p *SpotlightProgram) Loaded() bool {
	return p != nil && p.id != 0
}

// SetParameters binds the program and uploads the frame's parameter block.
func (p *SpotlightProgram) SetParameters(params *pipeline.Params) error {
	if !p.Loaded() {
		return errors.New("spotlight program not loaded")
	}
	if params.Texture == nil {
		return errors.New("no texture bound")
	}
	tex, ok := params.Texture.(glTexture)
	if !ok || tex.GLID() == 0 {
		return fmt.Errorf("texture %q is not resident on the GPU", params.Texture.Key())
	}

	gl.UseProgram(p.id)

	gl.UniformMatrix4fv(p.locWorld, 1, false, params.World.Ptr())
	gl.UniformMatrix4fv(p.locView, 1, false, params.View.Ptr())
	gl.UniformMatrix4fv(p.locProjection, 1, false, params.Projection.Ptr())

	light := params.Light
	gl.Uniform3f(p.locLightPos, light.Position.X, light.Position.Y, light.Position.Z)
	gl.Uniform3f(p.locLightDir, light.Direction.X, light.Direction.Y, light.Direction.Z)
	gl.Uniform4f(p.locDiffuse, light.Diffuse.R, light.Diffuse.G, light.Diffuse.B, light.Diffuse.A)
	gl.Uniform4f(p.locAmbient, light.Ambient.R, light.Ambient.G, light.Ambient.B, light.Ambient.A)
	gl.Uniform1f(p.locInnerCone, light.InnerCone)
	gl.Uniform1f(p.locOuterCone, light.OuterCone)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex.GLID())
	gl.Uniform1i(p.locTexture, 0)
	return nil
}

// Render draws indexCount indices of the bound mesh.
func (p *SpotlightProgram) Render(indexCount int32) error {
	if indexCount <= 0 {
		return fmt.Errorf("invalid index count %d", indexCount)
	}
	gl.DrawElements(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, nil)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("draw elements: GL error 0x%04x", code)
	}
	return nil
}

// Destroy deletes the GL program.
func (p *SpotlightProgram) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
