package shader

import _ "embed"

// SpotlightVertexShader transforms the mesh and passes world-space position,
// normal and texture coordinates to the fragment stage.
//
//go:embed spotlight.vert
var SpotlightVertexShader string

// SpotlightFragmentShader evaluates the spotlight model per fragment.
//
//go:embed spotlight.frag
var SpotlightFragmentShader string
