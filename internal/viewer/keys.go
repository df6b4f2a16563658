package viewer

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/spotlight/internal/app"
)

// keyBinding maps one key of each frontend to an app action.
type keyBinding struct {
	scancode sdl.Scancode
	key      imgui.Key
	action   app.Action
}

var keyBindings = []keyBinding{
	{sdl.SCANCODE_LEFT, imgui.KeyLeftArrow, app.MoveLeft},
	{sdl.SCANCODE_RIGHT, imgui.KeyRightArrow, app.MoveRight},
	{sdl.SCANCODE_UP, imgui.KeyUpArrow, app.MoveForward},
	{sdl.SCANCODE_DOWN, imgui.KeyDownArrow, app.MoveBack},
	{sdl.SCANCODE_PAGEUP, imgui.KeyPageUp, app.MoveUp},
	{sdl.SCANCODE_PAGEDOWN, imgui.KeyPageDown, app.MoveDown},
	{sdl.SCANCODE_Q, imgui.KeyQ, app.NarrowInner},
	{sdl.SCANCODE_E, imgui.KeyE, app.WidenInner},
	{sdl.SCANCODE_Z, imgui.KeyZ, app.NarrowOuter},
	{sdl.SCANCODE_C, imgui.KeyC, app.WidenOuter},
	{sdl.SCANCODE_N, imgui.KeyN, app.NormalizeDirection},
	{sdl.SCANCODE_P, imgui.KeyP, app.PointDown},
	{sdl.SCANCODE_F, imgui.KeyF, app.ToggleWireframe},
	{sdl.SCANCODE_1, imgui.Key1, app.WhiteLight},
	{sdl.SCANCODE_2, imgui.Key2, app.BlueAmbient},
	{sdl.SCANCODE_R, imgui.KeyR, app.ResetLight},
}

// scancodeActions indexes keyBindings for the SDL frontend.
var scancodeActions = func() map[sdl.Scancode]app.Action {
	m := make(map[sdl.Scancode]app.Action, len(keyBindings))
	for _, b := range keyBindings {
		m[b.scancode] = b.action
	}
	return m
}()
