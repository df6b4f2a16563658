// Package remote exposes the spotlight controls over a WebSocket connection.
//
// Each text frame carries one JSON command. The command is decoded on the
// connection goroutine into a lighting.Edit and handed to the frame thread
// through the edit queue, so remote peers never touch the light directly.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Faultbox/spotlight/internal/lighting"
	"github.com/Faultbox/spotlight/pkg/math"
)

// Command ops.
const (
	OpSetPosition        = "set_position"
	OpSetDirection       = "set_direction"
	OpSetDiffuse         = "set_diffuse"
	OpSetAmbient         = "set_ambient"
	OpSetInnerCone       = "set_inner_cone"
	OpSetOuterCone       = "set_outer_cone"
	OpNormalizeDirection = "normalize_direction"
	OpPointDown          = "point_down"
	OpResetDiffuse       = "reset_diffuse"
	OpResetAmbient       = "reset_ambient"
	OpToggleWireframe    = "toggle_wireframe"
)

var (
	// ErrUnknownOp is returned for a command whose op is not recognized.
	ErrUnknownOp = errors.New("unknown op")
	// ErrBadValue is returned when the value does not fit the op.
	ErrBadValue = errors.New("bad value")
)

// Command is a single remote request.
type Command struct {
	Op    string          `json:"op"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Reply answers every command.
type Reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func okReply() Reply { return Reply{OK: true} }

func errReply(err error) Reply { return Reply{Error: err.Error()} }

// Decode parses a JSON command into an edit.
func Decode(data []byte) (lighting.Edit, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	return cmd.Edit()
}

// Edit converts the command into an edit of the light.
func (cmd Command) Edit() (lighting.Edit, error) {
	switch cmd.Op {
	case OpSetPosition:
		v, err := cmd.vec3()
		if err != nil {
			return nil, err
		}
		return func(c *lighting.Controls) { c.SetPosition(v) }, nil
	case OpSetDirection:
		v, err := cmd.vec3()
		if err != nil {
			return nil, err
		}
		return func(c *lighting.Controls) { c.SetDirection(v) }, nil
	case OpSetDiffuse:
		col, err := cmd.color()
		if err != nil {
			return nil, err
		}
		return func(c *lighting.Controls) { c.SetDiffuse(col) }, nil
	case OpSetAmbient:
		col, err := cmd.color()
		if err != nil {
			return nil, err
		}
		return func(c *lighting.Controls) { c.SetAmbient(col) }, nil
	case OpSetInnerCone:
		deg, err := cmd.number()
		if err != nil {
			return nil, err
		}
		return func(c *lighting.Controls) { c.SetInnerCone(deg) }, nil
	case OpSetOuterCone:
		deg, err := cmd.number()
		if err != nil {
			return nil, err
		}
		return func(c *lighting.Controls) { c.SetOuterCone(deg) }, nil
	case OpNormalizeDirection:
		return (*lighting.Controls).NormalizeDirection, nil
	case OpPointDown:
		return (*lighting.Controls).PointDown, nil
	case OpResetDiffuse:
		return (*lighting.Controls).ResetDiffuse, nil
	case OpResetAmbient:
		return (*lighting.Controls).ResetAmbient, nil
	case OpToggleWireframe:
		return (*lighting.Controls).ToggleWireframe, nil
	case "":
		return nil, fmt.Errorf("%w: missing op", ErrUnknownOp)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, cmd.Op)
	}
}

func (cmd Command) vec3() (math.Vec3, error) {
	var a []float32
	if err := cmd.decodeValue(&a); err != nil {
		return math.Vec3{}, err
	}
	if len(a) != 3 {
		return math.Vec3{}, fmt.Errorf("%w: %s wants 3 components, got %d", ErrBadValue, cmd.Op, len(a))
	}
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}, nil
}

// color accepts [r, g, b] (alpha 1) or [r, g, b, a].
func (cmd Command) color() (math.Color, error) {
	var a []float32
	if err := cmd.decodeValue(&a); err != nil {
		return math.Color{}, err
	}
	switch len(a) {
	case 3:
		return math.RGBA(a[0], a[1], a[2], 1), nil
	case 4:
		return math.RGBA(a[0], a[1], a[2], a[3]), nil
	default:
		return math.Color{}, fmt.Errorf("%w: %s wants 3 or 4 channels, got %d", ErrBadValue, cmd.Op, len(a))
	}
}

func (cmd Command) number() (float32, error) {
	var f float32
	if err := cmd.decodeValue(&f); err != nil {
		return 0, err
	}
	return f, nil
}

func (cmd Command) decodeValue(dst any) error {
	if len(cmd.Value) == 0 {
		return fmt.Errorf("%w: %s needs a value", ErrBadValue, cmd.Op)
	}
	if err := json.Unmarshal(cmd.Value, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadValue, cmd.Op, err)
	}
	return nil
}
