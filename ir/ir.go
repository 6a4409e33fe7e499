// Package ir defines the intermediate representation for shadergen.
//
// The IR is a tree of immutable GLSL ES 1.00 expressions and statements
// that the glsl package serializes to source text.
package ir

import (
	"fmt"
	"strconv"
)

// Shader represents a complete shader program in IR form.
type Shader struct {
	// Version is the target GLSL version directive.
	Version Version

	// Stage selects the set of gl_ built-in variables in scope.
	Stage ShaderStage

	// Statements holds the top-level statements in declaration order.
	Statements Block
}

// Version represents a GLSL ES language version.
type Version uint8

const (
	// Version100 is GLSL ES 1.00 (WebGL 1).
	Version100 Version = iota
	// Version300ES is GLSL ES 3.00 (WebGL 2). Code generation is not implemented.
	Version300ES
)

// String returns the version as a #version directive value.
func (v Version) String() string {
	switch v {
	case Version100:
		return "100"
	case Version300ES:
		return "300 es"
	default:
		return fmt.Sprintf("Version(%d)", uint8(v))
	}
}

// ShaderStage represents a shader stage.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
)

// String returns the stage name.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderStage(%d)", uint8(s))
	}
}

// Precision is a GLSL precision qualifier.
type Precision uint8

const (
	PrecisionDefault Precision = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

// String returns the GLSL keyword for the precision, or "" for the default.
func (p Precision) String() string {
	switch p {
	case PrecisionLow:
		return "lowp"
	case PrecisionMedium:
		return "mediump"
	case PrecisionHigh:
		return "highp"
	default:
		return ""
	}
}

// VectorSize represents the number of components in a vector or the
// column count of a square matrix.
type VectorSize uint8

const (
	Vec2 VectorSize = 2
	Vec3 VectorSize = 3
	Vec4 VectorSize = 4
)

// Type represents a GLSL type. All variants are comparable, so two types
// are identical exactly when they compare equal with ==.
type Type interface {
	glslType()
}

// VoidType is the return type of functions without a result.
type VoidType struct{}

func (VoidType) glslType() {}

// BoolType is the scalar bool type.
type BoolType struct{}

func (BoolType) glslType() {}

// IntType is the scalar int type.
type IntType struct{}

func (IntType) glslType() {}

// FloatType is the scalar float type.
type FloatType struct {
	Precision Precision
}

func (FloatType) glslType() {}

// VectorType is a float vector (vec2, vec3, vec4).
type VectorType struct {
	Size      VectorSize
	Precision Precision
}

func (VectorType) glslType() {}

// BoolVectorType is a boolean vector (bvec2, bvec3, bvec4).
type BoolVectorType struct {
	Size VectorSize
}

func (BoolVectorType) glslType() {}

// IntVectorType is an integer vector (ivec2, ivec3, ivec4).
type IntVectorType struct {
	Size VectorSize
}

func (IntVectorType) glslType() {}

// MatrixType is a square float matrix (mat2, mat3, mat4).
type MatrixType struct {
	Size      VectorSize
	Precision Precision
}

func (MatrixType) glslType() {}

// SamplerType is an opaque texture sampler.
type SamplerType struct {
	Cube bool // samplerCube instead of sampler2D
}

func (SamplerType) glslType() {}

// StructType references a struct declared by name.
type StructType struct {
	Name string
}

func (StructType) glslType() {}

// ArrayType is a fixed-size array of Base.
type ArrayType struct {
	Base Type
	Size uint32
}

func (ArrayType) glslType() {}

// TypeName returns the GLSL spelling of t without its precision qualifier.
// Arrays are spelled with their size suffix, e.g. "vec2[3]".
func TypeName(t Type) string {
	switch t := t.(type) {
	case VoidType:
		return "void"
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case VectorType:
		return "vec" + strconv.Itoa(int(t.Size))
	case BoolVectorType:
		return "bvec" + strconv.Itoa(int(t.Size))
	case IntVectorType:
		return "ivec" + strconv.Itoa(int(t.Size))
	case MatrixType:
		return "mat" + strconv.Itoa(int(t.Size))
	case SamplerType:
		if t.Cube {
			return "samplerCube"
		}
		return "sampler2D"
	case StructType:
		return t.Name
	case ArrayType:
		return TypeName(t.Base) + "[" + strconv.FormatUint(uint64(t.Size), 10) + "]"
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%T", t)
	}
}

// IsFloating reports whether t belongs to the floating-point family
// (float, vecN, matN), the only types that carry a precision.
func IsFloating(t Type) bool {
	switch t.(type) {
	case FloatType, VectorType, MatrixType:
		return true
	}
	return false
}

// PrecisionOf returns the precision carried by t, or PrecisionDefault for
// types outside the floating-point family.
func PrecisionOf(t Type) Precision {
	switch t := t.(type) {
	case FloatType:
		return t.Precision
	case VectorType:
		return t.Precision
	case MatrixType:
		return t.Precision
	case ArrayType:
		return PrecisionOf(t.Base)
	}
	return PrecisionDefault
}

// WithPrecision returns t with its precision replaced by p. Types outside
// the floating-point family are returned unchanged.
func WithPrecision(t Type, p Precision) Type {
	switch t := t.(type) {
	case FloatType:
		t.Precision = p
		return t
	case VectorType:
		t.Precision = p
		return t
	case MatrixType:
		t.Precision = p
		return t
	case ArrayType:
		t.Base = WithPrecision(t.Base, p)
		return t
	}
	return t
}

// SameShape reports whether a and b are the same type ignoring precision.
func SameShape(a, b Type) bool {
	return WithPrecision(a, PrecisionDefault) == WithPrecision(b, PrecisionDefault)
}

// Components returns the number of scalar components of a scalar or vector
// type, or 0 for any other type.
func Components(t Type) int {
	switch t := t.(type) {
	case BoolType, IntType, FloatType:
		return 1
	case VectorType:
		return int(t.Size)
	case BoolVectorType:
		return int(t.Size)
	case IntVectorType:
		return int(t.Size)
	}
	return 0
}

// IsScalar reports whether t is bool, int or float.
func IsScalar(t Type) bool {
	return Components(t) == 1
}

// ScalarOf returns the component type of a scalar or vector type.
func ScalarOf(t Type) (Type, bool) {
	switch t := t.(type) {
	case BoolType, IntType, FloatType:
		return t, true
	case VectorType:
		return FloatType{Precision: t.Precision}, true
	case BoolVectorType:
		return BoolType{}, true
	case IntVectorType:
		return IntType{}, true
	}
	return nil, false
}

// VectorOf returns the vector type with n components whose component type
// is scalar. n == 1 returns the scalar itself.
func VectorOf(scalar Type, n int) (Type, bool) {
	if n == 1 {
		return scalar, IsScalar(scalar)
	}
	if n < 2 || n > 4 {
		return nil, false
	}
	size := VectorSize(n)
	switch s := scalar.(type) {
	case FloatType:
		return VectorType{Size: size, Precision: s.Precision}, true
	case BoolType:
		return BoolVectorType{Size: size}, true
	case IntType:
		return IntVectorType{Size: size}, true
	}
	return nil, false
}

// BoolVectorOf returns the boolean type with the same number of components
// as t: bool for scalars and bvecN for vectors.
func BoolVectorOf(t Type) (Type, bool) {
	n := Components(t)
	if n == 0 {
		return nil, false
	}
	return VectorOf(BoolType{}, n)
}

// MaxPrecision returns the higher of two precisions. The default precision
// ranks below every explicit qualifier.
func MaxPrecision(a, b Precision) Precision {
	if a > b {
		return a
	}
	return b
}
