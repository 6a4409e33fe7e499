// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/shadergen/ir"
)

// Writer generates GLSL source code from IR.
type Writer struct {
	shader  *ir.Shader
	options *Options

	// Output buffer
	out strings.Builder

	// Current indentation level
	indent int

	// Function context (set during function writing)
	currentFunction *ir.StmtFunction

	// Output tracking
	info TranslationInfo
}

// newWriter creates a new GLSL writer.
func newWriter(shader *ir.Shader, options *Options) *Writer {
	return &Writer{
		shader:  shader,
		options: options,
		info:    TranslationInfo{Version: shader.Version.String()},
	}
}

// String returns the generated GLSL source.
func (w *Writer) String() string {
	return w.out.String()
}

// writeShader writes the version directive followed by every top-level
// statement.
func (w *Writer) writeShader() error {
	w.writeLine("#version %s", w.shader.Version)
	w.writeLine("")
	if w.options.WriterFlags&WriterFlagDebugInfo != 0 {
		w.writeLine("// %s shader", w.shader.Stage)
	}

	for i, stmt := range w.shader.Statements {
		if err := w.writeStatement(stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i, err)
		}
		w.recordBindings(stmt)
	}
	return nil
}

// recordBindings adds the interface declarations of a global statement,
// including those inside #ifdef branches, to the translation info.
func (w *Writer) recordBindings(stmt ir.Statement) {
	switch s := stmt.(type) {
	case ir.StmtDeclare:
		w.recordBinding(s)
	case ir.StmtIfdef:
		for _, inner := range s.Accept {
			w.recordBindings(inner)
		}
		for _, inner := range s.Reject {
			w.recordBindings(inner)
		}
	}
}

// recordBinding adds an interface declaration to the translation info.
// A name declared in both branches of an #ifdef is recorded once.
func (w *Writer) recordBinding(decl ir.StmtDeclare) {
	var list *[]Binding
	switch decl.Qualifier {
	case ir.QualifierAttribute:
		list = &w.info.Attributes
	case ir.QualifierUniform:
		list = &w.info.Uniforms
	case ir.QualifierVarying:
		list = &w.info.Varyings
	default:
		return
	}
	for _, b := range *list {
		if b.Name == decl.Name {
			return
		}
	}
	*list = append(*list, newBinding(decl))
}

// writeLine writes an indented line.
func (w *Writer) writeLine(format string, args ...any) {
	w.writeIndent()
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

// writeDirective writes a preprocessor line at column zero.
func (w *Writer) writeDirective(format string, args ...any) {
	fmt.Fprintf(&w.out, format, args...)
	w.out.WriteByte('\n')
}

// writeIndent writes the current indentation.
func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("    ")
	}
}

// pushIndent increases indentation.
func (w *Writer) pushIndent() {
	w.indent++
}

// popIndent decreases indentation.
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}

// formatFloat formats a float for GLSL output. The result always contains
// a decimal point or an exponent so it is never read as an int.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", ir.Errorf(ir.ErrInvalidExpression, "float literal %v is not representable in GLSL", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// Ensure it has a decimal point or exponent
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}
