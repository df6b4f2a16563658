package app

import (
	"github.com/Faultbox/spotlight/internal/lighting"
	"github.com/Faultbox/spotlight/pkg/math"
)

// Keyboard step sizes.
const (
	PositionStep = float32(0.5)
	ConeStep     = float32(1)
)

// Action names a light edit a frontend can bind to a key.
type Action string

const (
	MoveLeft           Action = "move_left"
	MoveRight          Action = "move_right"
	MoveForward        Action = "move_forward"
	MoveBack           Action = "move_back"
	MoveUp             Action = "move_up"
	MoveDown           Action = "move_down"
	NarrowInner        Action = "narrow_inner"
	WidenInner         Action = "widen_inner"
	NarrowOuter        Action = "narrow_outer"
	WidenOuter         Action = "widen_outer"
	NormalizeDirection Action = "normalize_direction"
	PointDown          Action = "point_down"
	ToggleWireframe    Action = "toggle_wireframe"
	WhiteLight         Action = "white_light"
	BlueAmbient        Action = "blue_ambient"
	ResetLight         Action = "reset_light"
)

func move(d math.Vec3) lighting.Edit {
	return func(c *lighting.Controls) {
		c.SetPosition(c.Light().Position().Add(d))
	}
}

func innerBy(d float32) lighting.Edit {
	return func(c *lighting.Controls) { c.SetInnerCone(c.Light().InnerCone() + d) }
}

func outerBy(d float32) lighting.Edit {
	return func(c *lighting.Controls) { c.SetOuterCone(c.Light().OuterCone() + d) }
}

func resetLight(c *lighting.Controls) {
	c.Apply(lighting.DefaultSnapshot())
}

var actions = map[Action]lighting.Edit{
	MoveLeft:           move(math.Vec3{X: -PositionStep}),
	MoveRight:          move(math.Vec3{X: PositionStep}),
	MoveForward:        move(math.Vec3{Z: -PositionStep}),
	MoveBack:           move(math.Vec3{Z: PositionStep}),
	MoveUp:             move(math.Vec3{Y: PositionStep}),
	MoveDown:           move(math.Vec3{Y: -PositionStep}),
	NarrowInner:        innerBy(-ConeStep),
	WidenInner:         innerBy(ConeStep),
	NarrowOuter:        outerBy(-ConeStep),
	WidenOuter:         outerBy(ConeStep),
	NormalizeDirection: (*lighting.Controls).NormalizeDirection,
	PointDown:          (*lighting.Controls).PointDown,
	ToggleWireframe:    (*lighting.Controls).ToggleWireframe,
	WhiteLight:         (*lighting.Controls).ResetDiffuse,
	BlueAmbient:        (*lighting.Controls).ResetAmbient,
	ResetLight:         resetLight,
}

// Do applies a named action on the frame thread. Unknown actions are ignored
// and reported false.
func (a *App) Do(action Action) bool {
	edit, ok := actions[action]
	if !ok {
		return false
	}
	edit(a.controls)
	return true
}
