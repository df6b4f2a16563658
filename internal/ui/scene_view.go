package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/spotlight/internal/engine/camera"
	engineui "github.com/Faultbox/spotlight/internal/engine/ui"
)

// SceneView fills the main viewport with the offscreen scene texture and
// turns mouse drags and wheel over it into orbit camera moves.
type SceneView struct {
	texture   func() uint32
	camera    *camera.OrbitCamera
	lastMouse imgui.Vec2
}

// NewSceneView shows the texture returned by texture each frame.
func NewSceneView(texture func() uint32, cam *camera.OrbitCamera) *SceneView {
	return &SceneView{texture: texture, camera: cam}
}

// Render draws the scene behind all other windows.
func (v *SceneView) Render() {
	x, y, w, h := engineui.GetViewport()
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))

	flags := imgui.WindowFlagsNoDecoration | imgui.WindowFlagsNoMove |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoScrollWithMouse

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Scene", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(v.texture()))
		// GL textures are bottom-up, so V is flipped.
		imgui.ImageWithBgV(
			*texRef,
			imgui.NewVec2(w, h),
			imgui.NewVec2(0, 1),
			imgui.NewVec2(1, 0),
			imgui.NewVec4(0, 0, 0, 0),
			imgui.NewVec4(1, 1, 1, 1),
		)

		if imgui.IsItemHovered() && v.camera != nil {
			mousePos := imgui.MousePos()
			if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
				v.camera.HandleDrag(mousePos.X-v.lastMouse.X, mousePos.Y-v.lastMouse.Y)
			}
			v.lastMouse = mousePos

			if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
				v.camera.HandleZoom(wheel)
			}
		}
	}
	imgui.End()
	imgui.PopStyleVar()
}
