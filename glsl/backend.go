// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/shadergen/ir"
)

// WriterFlags control output formatting.
type WriterFlags uint32

const (
	// WriterFlagNone uses default settings.
	WriterFlagNone WriterFlags = 0

	// WriterFlagDebugInfo adds a header comment naming the shader stage.
	WriterFlagDebugInfo WriterFlags = 1 << iota
)

// Options configures GLSL code generation.
type Options struct {
	// Validate runs ir.Validate before generation and fails on any error.
	Validate bool

	// HoistCommon runs ir.HoistCommon over function bodies before
	// generation.
	HoistCommon bool

	// WriterFlags control output formatting.
	WriterFlags WriterFlags
}

// DefaultOptions returns sensible default options for GLSL generation.
func DefaultOptions() Options {
	return Options{
		Validate: true,
	}
}

// TranslationInfo contains metadata about the translation.
type TranslationInfo struct {
	// Version is the #version directive value written.
	Version string `json:"version"`

	// Attributes lists the attribute declarations in declaration order.
	Attributes []Binding `json:"attributes"`

	// Uniforms lists the uniform declarations in declaration order.
	Uniforms []Binding `json:"uniforms"`

	// Varyings lists the varying declarations in declaration order.
	Varyings []Binding `json:"varyings"`
}

// Lookup returns the binding with the given host name.
func (info TranslationInfo) Lookup(name string) (Binding, bool) {
	for _, list := range [][]Binding{info.Attributes, info.Uniforms, info.Varyings} {
		for _, b := range list {
			if b.Name == name {
				return b, true
			}
		}
	}
	return Binding{}, false
}

// Compile generates GLSL source code from a shader.
// Returns the GLSL source as a string, translation info, or an error.
// On error no partial source is returned.
func Compile(shader *ir.Shader, options Options) (string, TranslationInfo, error) {
	if shader == nil {
		return "", TranslationInfo{}, fmt.Errorf("glsl: shader is nil")
	}
	if shader.Version != ir.Version100 {
		return "", TranslationInfo{}, fmt.Errorf("glsl: %w",
			ir.Errorf(ir.ErrUnsupportedVersion, "GLSL ES %s code generation is not implemented", shader.Version))
	}

	if options.Validate {
		errs, err := ir.Validate(shader)
		if err != nil {
			return "", TranslationInfo{}, fmt.Errorf("glsl: %w", err)
		}
		if len(errs) > 0 {
			return "", TranslationInfo{}, fmt.Errorf("glsl: %w", validationFailure(errs))
		}
	}

	if options.HoistCommon {
		hoisted, err := ir.HoistCommon(shader)
		if err != nil {
			return "", TranslationInfo{}, fmt.Errorf("glsl: %w", err)
		}
		shader = hoisted
	}

	// Create writer
	w := newWriter(shader, &options)

	// Generate GLSL code
	if err := w.writeShader(); err != nil {
		return "", TranslationInfo{}, fmt.Errorf("glsl: %w", err)
	}

	return w.String(), w.info, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(shader *ir.Shader, options Options) (string, TranslationInfo) {
	source, info, err := Compile(shader, options)
	if err != nil {
		panic(err)
	}
	return source, info
}

// validationFailure folds validation errors into a single error.
func validationFailure(errs []ir.ValidationError) error {
	msg := errs[0].Error()
	if len(errs) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(errs)-1)
	}
	return ir.NewError(ir.ErrInvalidStatement, "validation failed: "+msg)
}
