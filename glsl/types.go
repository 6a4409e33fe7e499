// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strconv"

	"github.com/gogpu/shadergen/ir"
)

// typeName returns the GLSL spelling of a non-array type, including its
// precision qualifier, e.g. "highp vec3".
func (w *Writer) typeName(typ ir.Type) (string, error) {
	switch t := typ.(type) {
	case nil:
		return "", ir.NewError(ir.ErrInvalidStatement, "missing type")
	case ir.ArrayType:
		return "", ir.Errorf(ir.ErrInvalidStatement, "array type %s is not allowed here", ir.TypeName(t))
	case ir.StructType:
		if t.Name == "" {
			return "", ir.NewError(ir.ErrInvalidStatement, "struct type without a name")
		}
		return Escape(t.Name), nil
	case ir.VectorType:
		if t.Size < ir.Vec2 || t.Size > ir.Vec4 {
			return "", ir.Errorf(ir.ErrInvalidStatement, "invalid vector size %d", t.Size)
		}
	case ir.BoolVectorType:
		if t.Size < ir.Vec2 || t.Size > ir.Vec4 {
			return "", ir.Errorf(ir.ErrInvalidStatement, "invalid vector size %d", t.Size)
		}
	case ir.IntVectorType:
		if t.Size < ir.Vec2 || t.Size > ir.Vec4 {
			return "", ir.Errorf(ir.ErrInvalidStatement, "invalid vector size %d", t.Size)
		}
	case ir.MatrixType:
		if t.Size < ir.Vec2 || t.Size > ir.Vec4 {
			return "", ir.Errorf(ir.ErrInvalidStatement, "invalid matrix size %d", t.Size)
		}
	}
	name := ir.TypeName(typ)
	if p := ir.PrecisionOf(typ); p != ir.PrecisionDefault {
		name = p.String() + " " + name
	}
	return name, nil
}

// typeParts splits a declared type into the part written before the name
// and the array suffix written after it: "float a[4]".
func (w *Writer) typeParts(typ ir.Type) (string, string, error) {
	arr, ok := typ.(ir.ArrayType)
	if !ok {
		name, err := w.typeName(typ)
		return name, "", err
	}
	if arr.Size == 0 {
		return "", "", ir.NewError(ir.ErrInvalidStatement, "array size must be positive")
	}
	base, err := w.typeName(arr.Base)
	if err != nil {
		return "", "", err
	}
	return base, "[" + strconv.FormatUint(uint64(arr.Size), 10) + "]", nil
}
