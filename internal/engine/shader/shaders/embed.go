// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MaxLights is the light array size compiled into ObjectFragmentShader.
const MaxLights = 2

// ObjectVertexShader transforms textured, lit scene objects.
//
//go:embed object.vert
var ObjectVertexShader string

// ObjectFragmentShader shades scene objects with ambient plus diffuse light
// from MaxLights point lights.
//
//go:embed object.frag
var ObjectFragmentShader string

// LightVertexShader transforms the light marker meshes.
//
//go:embed light.vert
var LightVertexShader string

// LightFragmentShader draws light markers in a flat color.
//
//go:embed light.frag
var LightFragmentShader string
