// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"reflect"

	"github.com/gogpu/shadergen/ir"
)

// HostType identifies the Go value shape that feeds a shader input.
type HostType uint8

const (
	HostUnknown HostType = iota
	HostFloat
	HostVec2
	HostVec3
	HostVec4
	HostMat2
	HostMat3
	HostMat4
	HostInt
	HostIVec2
	HostIVec3
	HostIVec4
	HostBool
	HostBVec2
	HostBVec3
	HostBVec4
	HostTexture
)

var hostTypeNames = [...]string{
	HostUnknown: "unknown",
	HostFloat:   "float32",
	HostVec2:    "[2]float32",
	HostVec3:    "[3]float32",
	HostVec4:    "[4]float32",
	HostMat2:    "[2][2]float32",
	HostMat3:    "[3][3]float32",
	HostMat4:    "[4][4]float32",
	HostInt:     "int32",
	HostIVec2:   "[2]int32",
	HostIVec3:   "[3]int32",
	HostIVec4:   "[4]int32",
	HostBool:    "bool",
	HostBVec2:   "[2]bool",
	HostBVec3:   "[3]bool",
	HostBVec4:   "[4]bool",
	HostTexture: "texture",
}

// String returns the Go spelling of the host type.
func (h HostType) String() string {
	if int(h) < len(hostTypeNames) {
		return hostTypeNames[h]
	}
	return fmt.Sprintf("HostType(%d)", uint8(h))
}

// MarshalText implements encoding.TextMarshaler.
func (h HostType) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HostType) UnmarshalText(text []byte) error {
	for i, name := range hostTypeNames {
		if name == string(text) {
			*h = HostType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown host type %q", text)
}

// hostTypeOf maps a GLSL type to the host value feeding it.
func hostTypeOf(t ir.Type) HostType {
	switch t := t.(type) {
	case ir.FloatType:
		return HostFloat
	case ir.VectorType:
		return HostVec2 + HostType(t.Size-ir.Vec2)
	case ir.MatrixType:
		return HostMat2 + HostType(t.Size-ir.Vec2)
	case ir.IntType:
		return HostInt
	case ir.IntVectorType:
		return HostIVec2 + HostType(t.Size-ir.Vec2)
	case ir.BoolType:
		return HostBool
	case ir.BoolVectorType:
		return HostBVec2 + HostType(t.Size-ir.Vec2)
	case ir.SamplerType:
		return HostTexture
	default:
		return HostUnknown
	}
}

// Check reports whether v has the Go shape described by h. Textures are
// opaque to this package and accept any non-nil value.
func (h HostType) Check(v any) error {
	ok := false
	switch h {
	case HostFloat:
		_, ok = v.(float32)
	case HostVec2:
		_, ok = v.([2]float32)
	case HostVec3:
		_, ok = v.([3]float32)
	case HostVec4:
		_, ok = v.([4]float32)
	case HostMat2:
		_, ok = v.([2][2]float32)
	case HostMat3:
		_, ok = v.([3][3]float32)
	case HostMat4:
		_, ok = v.([4][4]float32)
	case HostInt:
		_, ok = v.(int32)
	case HostIVec2:
		_, ok = v.([2]int32)
	case HostIVec3:
		_, ok = v.([3]int32)
	case HostIVec4:
		_, ok = v.([4]int32)
	case HostBool:
		_, ok = v.(bool)
	case HostBVec2:
		_, ok = v.([2]bool)
	case HostBVec3:
		_, ok = v.([3]bool)
	case HostBVec4:
		_, ok = v.([4]bool)
	case HostTexture:
		ok = v != nil
	}
	if !ok {
		return fmt.Errorf("expected %s, got %T", h, v)
	}
	return nil
}

// Binding describes one attribute, uniform or varying of a generated
// program.
type Binding struct {
	// Name is the identifier used in the IR.
	Name string `json:"name"`

	// GLSL is the identifier written to the source.
	GLSL string `json:"glsl"`

	// Type is the GLSL type spelling without precision, e.g. "vec3" or
	// "float[4]".
	Type string `json:"type"`

	// Precision is the declared precision qualifier, if any.
	Precision string `json:"precision,omitempty"`

	// ArraySize is the element count for array bindings, zero otherwise.
	ArraySize uint32 `json:"arraySize,omitempty"`

	// Host is the Go type of a single element.
	Host HostType `json:"host"`
}

func newBinding(decl ir.StmtDeclare) Binding {
	b := Binding{
		Name: decl.Name,
		GLSL: escapeVariable(decl.Name),
		Type: ir.TypeName(decl.Type),
	}
	elem := decl.Type
	if arr, ok := decl.Type.(ir.ArrayType); ok {
		b.ArraySize = arr.Size
		elem = arr.Base
	}
	b.Precision = ir.PrecisionOf(elem).String()
	b.Host = hostTypeOf(elem)
	return b
}

// Check reports whether v can feed the binding. Array bindings take a
// slice or array of exactly ArraySize elements.
func (b Binding) Check(v any) error {
	if b.ArraySize == 0 {
		if err := b.Host.Check(v); err != nil {
			return fmt.Errorf("%s: %w", b.Name, err)
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("%s: expected %d elements of %s, got %T", b.Name, b.ArraySize, b.Host, v)
	}
	if rv.Len() != int(b.ArraySize) {
		return fmt.Errorf("%s: expected %d elements, got %d", b.Name, b.ArraySize, rv.Len())
	}
	for i := 0; i < rv.Len(); i++ {
		if err := b.Host.Check(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("%s[%d]: %w", b.Name, i, err)
		}
	}
	return nil
}
