// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl generates GLSL ES 1.00 source from a shader IR.
//
// # Basic Usage
//
//	source, info, err := glsl.Compile(shader, glsl.DefaultOptions())
//
// The output starts with "#version 100" and a blank line, followed by each
// top-level statement in order. Every binary operation is parenthesized
// and float literals always carry a decimal point or exponent, so the text
// is unambiguous without precedence analysis. Indentation is four spaces.
//
// # Identifiers
//
// User identifiers pass through SanitizeIdentifier before they are
// written. Characters outside [A-Za-z0-9_] are replaced with their hex
// code, reserved words and gl_ prefixed names get a leading underscore,
// and names starting with a double underscore get a "var" prefix. Built-in
// variables (gl_Position, gl_FragColor, ...) and built-in functions are
// written unchanged.
//
// # Bindings
//
// TranslationInfo lists every top-level attribute, uniform and varying
// with its sanitized name and the host-side value type expected to feed
// it, so callers can match application data against the program.
package glsl
