package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/spotlight/internal/lighting"
	"github.com/Faultbox/spotlight/pkg/math"
)

// Panel is the spotlight control window. It implements pipeline.Overlay.
// Every edit goes through lighting.Controls, so the panel never bypasses
// the range and cone rules.
type Panel struct {
	controls *lighting.Controls
	timer    *FrameTimer
	scene    *SceneView // optional

	// OnScreenshot is called when the screenshot button is pressed.
	OnScreenshot func()
	// OnSavePreset, if set, adds a button writing the light to its preset file.
	OnSavePreset func()
	// Status is shown at the bottom of the panel, e.g. the remote address.
	Status string
}

// NewPanel creates a panel editing controls. timer supplies the FPS readout.
func NewPanel(controls *lighting.Controls, timer *FrameTimer) *Panel {
	return &Panel{controls: controls, timer: timer}
}

// SetSceneView shows the offscreen scene behind the panel.
func (p *Panel) SetSceneView(v *SceneView) {
	p.scene = v
}

// Render draws the scene view, if any, and the panel.
func (p *Panel) Render() {
	if p.scene != nil {
		p.scene.Render()
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 0), imgui.CondFirstUseEver)
	imgui.SetNextWindowBgAlpha(0.85)

	if imgui.BeginV("Spotlight", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.Text(fmt.Sprintf("FPS: %.2f", p.timer.FPS()))
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("(%.2f ms)", p.timer.FrameTime()))

		wireframe := p.controls.Wireframe()
		if imgui.Checkbox("Wireframe mode", &wireframe) {
			p.controls.SetWireframe(wireframe)
		}

		imgui.Separator()
		imgui.Text("Spotlight Configuration")

		p.renderPosition()
		p.renderDirection()
		p.renderColors()
		p.renderCone()

		if p.OnScreenshot != nil || p.OnSavePreset != nil {
			imgui.Separator()
		}
		if p.OnScreenshot != nil && imgui.ButtonV("Screenshot", imgui.NewVec2(-1, 0)) {
			p.OnScreenshot()
		}
		if p.OnSavePreset != nil && imgui.ButtonV("Save Preset", imgui.NewVec2(-1, 0)) {
			p.OnSavePreset()
		}
		if p.Status != "" {
			imgui.TextDisabled(p.Status)
		}
	}
	imgui.End()
}

func (p *Panel) renderPosition() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Position Controls", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	lim := p.controls.Limits()
	pos := p.controls.Light().Position()

	changed := imgui.SliderFloatV("X Position", &pos.X, lim.PositionMin.X, lim.PositionMax.X, "%.1f", imgui.SliderFlagsNone)
	changed = imgui.SliderFloatV("Y Position", &pos.Y, lim.PositionMin.Y, lim.PositionMax.Y, "%.1f", imgui.SliderFlagsNone) || changed
	changed = imgui.SliderFloatV("Z Position", &pos.Z, lim.PositionMin.Z, lim.PositionMax.Z, "%.1f", imgui.SliderFlagsNone) || changed
	if changed {
		p.controls.SetPosition(pos)
	}
}

func (p *Panel) renderDirection() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Direction Controls", imgui.TreeNodeFlagsNone) {
		return
	}
	dir := p.controls.Light().Direction()

	changed := imgui.SliderFloatV("X Direction", &dir.X, -1, 1, "%.2f", imgui.SliderFlagsNone)
	changed = imgui.SliderFloatV("Y Direction", &dir.Y, -1, 1, "%.2f", imgui.SliderFlagsNone) || changed
	changed = imgui.SliderFloatV("Z Direction", &dir.Z, -1, 1, "%.2f", imgui.SliderFlagsNone) || changed
	if changed {
		p.controls.SetDirection(dir)
	}

	if imgui.Button("Normalize Direction") {
		p.controls.NormalizeDirection()
	}
	imgui.SameLine()
	if imgui.Button("Point Down") {
		p.controls.PointDown()
	}
}

func (p *Panel) renderColors() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Color Settings", imgui.TreeNodeFlagsNone) {
		return
	}
	light := p.controls.Light()

	diffuse := light.DiffuseColor().Array()
	if imgui.ColorEdit4V("Spotlight Color", &diffuse, imgui.ColorEditFlagsFloat) {
		p.controls.SetDiffuse(math.ColorFromArray(diffuse))
	}
	ambient := light.AmbientColor().Array()
	if imgui.ColorEdit4V("Ambient Color", &ambient, imgui.ColorEditFlagsFloat) {
		p.controls.SetAmbient(math.ColorFromArray(ambient))
	}

	if imgui.Button("White Light") {
		p.controls.ResetDiffuse()
	}
	imgui.SameLine()
	if imgui.Button("Blue Ambient") {
		p.controls.ResetAmbient()
	}
}

func (p *Panel) renderCone() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Cone Shape", imgui.TreeNodeFlagsNone) {
		return
	}
	lim := p.controls.Limits()
	light := p.controls.Light()

	inner := light.InnerCone()
	if imgui.SliderFloatV("Inner Cone", &inner, lim.Inner.Min, lim.Inner.Max, "%.1f", imgui.SliderFlagsNone) {
		p.controls.SetInnerCone(inner)
	}
	outer := light.OuterCone()
	if imgui.SliderFloatV("Outer Cone", &outer, lim.Outer.Min, lim.Outer.Max, "%.1f", imgui.SliderFlagsNone) {
		p.controls.SetOuterCone(outer)
	}

	imgui.Text(ConeReadout(light.InnerCone(), light.OuterCone()))
}

// ConeReadout formats the cone angles shown under the sliders.
func ConeReadout(inner, outer float32) string {
	return fmt.Sprintf("Inner: %.1f deg, Outer: %.1f deg", inner, outer)
}
