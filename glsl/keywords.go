// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strconv"
	"strings"

	"github.com/gogpu/shadergen/ir"
)

// ReservedWords contains every keyword and future reserved word of
// GLSL ES 1.00 and GLSL ES 3.00. Escaping against both versions keeps
// generated names valid when a shader is later ported to ES 3.00.
var ReservedWords = map[string]struct{}{
	// GLSL ES 1.00 keywords
	"attribute": {}, "const": {}, "uniform": {}, "varying": {},
	"break": {}, "continue": {}, "do": {}, "for": {}, "while": {},
	"if": {}, "else": {}, "in": {}, "out": {}, "inout": {},
	"float": {}, "int": {}, "void": {}, "bool": {}, "true": {}, "false": {},
	"lowp": {}, "mediump": {}, "highp": {}, "precision": {}, "invariant": {},
	"discard": {}, "return": {}, "struct": {},
	"mat2": {}, "mat3": {}, "mat4": {},
	"vec2": {}, "vec3": {}, "vec4": {},
	"ivec2": {}, "ivec3": {}, "ivec4": {},
	"bvec2": {}, "bvec3": {}, "bvec4": {},
	"sampler2D": {}, "samplerCube": {},

	// GLSL ES 1.00 future reserved words
	"asm": {}, "class": {}, "union": {}, "enum": {}, "typedef": {}, "template": {}, "this": {},
	"packed": {}, "goto": {}, "switch": {}, "default": {}, "inline": {}, "noinline": {},
	"volatile": {}, "public": {}, "static": {}, "extern": {}, "external": {}, "interface": {},
	"flat": {}, "long": {}, "short": {}, "double": {}, "half": {}, "fixed": {}, "unsigned": {},
	"superp": {}, "input": {}, "output": {},
	"hvec2": {}, "hvec3": {}, "hvec4": {},
	"dvec2": {}, "dvec3": {}, "dvec4": {},
	"fvec2": {}, "fvec3": {}, "fvec4": {},
	"sampler1D": {}, "sampler3D": {}, "sampler1DShadow": {}, "sampler2DShadow": {},
	"sampler2DRect": {}, "sampler3DRect": {}, "sampler2DRectShadow": {},
	"sizeof": {}, "cast": {}, "namespace": {}, "using": {},

	// GLSL ES 3.00 keywords
	"layout": {}, "centroid": {}, "smooth": {}, "case": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},
	"uint": {}, "uvec2": {}, "uvec3": {}, "uvec4": {},
	"samplerCubeShadow": {}, "sampler2DArray": {}, "sampler2DArrayShadow": {},
	"isampler2D": {}, "isampler3D": {}, "isamplerCube": {}, "isampler2DArray": {},
	"usampler2D": {}, "usampler3D": {}, "usamplerCube": {}, "usampler2DArray": {},

	// GLSL ES 3.00 future reserved words
	"coherent": {}, "restrict": {}, "readonly": {}, "writeonly": {}, "resource": {},
	"atomic_uint": {}, "noperspective": {}, "patch": {}, "sample": {}, "subroutine": {},
	"common": {}, "partition": {}, "active": {}, "filter": {},
	"image1D": {}, "image2D": {}, "image3D": {}, "imageCube": {},
	"iimage1D": {}, "iimage2D": {}, "iimage3D": {}, "iimageCube": {},
	"uimage1D": {}, "uimage2D": {}, "uimage3D": {}, "uimageCube": {},
	"image1DArray": {}, "image2DArray": {},
	"iimage1DArray": {}, "iimage2DArray": {},
	"uimage1DArray": {}, "uimage2DArray": {},
	"imageBuffer": {}, "iimageBuffer": {}, "uimageBuffer": {},
	"sampler1DArray": {}, "sampler1DArrayShadow": {},
	"isampler1D": {}, "isampler1DArray": {}, "usampler1D": {}, "usampler1DArray": {},
	"isampler2DRect": {}, "usampler2DRect": {},
	"samplerBuffer": {}, "isamplerBuffer": {}, "usamplerBuffer": {},
	"sampler2DMS": {}, "isampler2DMS": {}, "usampler2DMS": {},
	"sampler2DMSArray": {}, "isampler2DMSArray": {}, "usampler2DMSArray": {},
}

// preprocessorNames are the predefined macros a double-underscore name may
// legitimately refer to.
var preprocessorNames = map[string]struct{}{
	"__LINE__":    {},
	"__FILE__":    {},
	"__VERSION__": {},
}

// isKeyword checks if a name is a GLSL reserved word.
func isKeyword(name string) bool {
	_, ok := ReservedWords[name]
	return ok
}

// SanitizeIdentifier maps an arbitrary host name to a valid GLSL identifier
// that avoids every word in reserved.
//
// Characters outside [A-Za-z0-9_] are replaced by their code point in
// upper-case hexadecimal. A result that is reserved, starts with "gl_" or
// starts with a digit is prefixed with "_". A result starting with "__"
// is prefixed with "var" unless it names a predefined macro. The empty
// name maps to "_unnamed".
func SanitizeIdentifier(name string, reserved map[string]struct{}) string {
	if name == "" {
		return "_unnamed"
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if isIdentRune(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteString(strings.ToUpper(strconv.FormatInt(int64(r), 16)))
	}
	s := b.String()

	if _, ok := reserved[s]; ok {
		return "_" + s
	}
	if strings.HasPrefix(s, "gl_") {
		return "_" + s
	}
	if s[0] >= '0' && s[0] <= '9' {
		return "_" + s
	}
	if strings.HasPrefix(s, "__") {
		if _, ok := preprocessorNames[s]; ok {
			return s
		}
		return "var" + s
	}
	return s
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// Escape sanitizes name against ReservedWords.
func Escape(name string) string {
	return SanitizeIdentifier(name, ReservedWords)
}

// escapeVariable returns the GLSL spelling of a variable name. GLSL built-in
// variables pass through unchanged.
func escapeVariable(name string) string {
	if ir.IsBuiltinVariable(name) {
		return name
	}
	return Escape(name)
}

// escapeFunction returns the GLSL spelling of a called function. Built-in
// functions and constructors pass through unchanged.
func escapeFunction(name string) string {
	if ir.IsBuiltinFunction(name) {
		return name
	}
	return Escape(name)
}
