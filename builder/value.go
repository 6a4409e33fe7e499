package builder

import (
	"fmt"

	"github.com/gogpu/shadergen/ir"
)

// Value is implemented by every typed builder. A value wraps exactly one
// expression, its origin, and knows the GLSL type it evaluates to.
type Value interface {
	// Origin returns the expression backing the value.
	Origin() ir.Expression

	// Type returns the GLSL type of the value, including precision.
	Type() ir.Type

	// TypeName returns the GLSL spelling of the type without precision.
	TypeName() string
}

// FloatValue is the closed set Float | Vec2 | Vec3 | Vec4. It is returned
// where the component count is only known at run time, such as Pick and
// Concat.
type FloatValue interface {
	Value
	floatFamily()
}

// BoolValue is the closed set Bool | BVec2 | BVec3 | BVec4.
type BoolValue interface {
	Value
	boolFamily()
}

// Storable lists the builder types that can be declared as variables.
type Storable interface {
	Float | Vec2 | Vec3 | Vec4 | Int | Bool | BVec2 | BVec3 | BVec4
}

// Axis selects one vector component.
type Axis = ir.SwizzleComponent

const (
	AxisX = ir.SwizzleX
	AxisY = ir.SwizzleY
	AxisZ = ir.SwizzleZ
	AxisW = ir.SwizzleW
)

// base holds the state shared by all builders.
type base struct {
	expr ir.Expression
	typ  ir.Type
}

// Origin implements Value.
func (b base) Origin() ir.Expression { return b.expr }

// Type implements Value.
func (b base) Type() ir.Type { return b.typ }

// TypeName implements Value.
func (b base) TypeName() string { return ir.TypeName(b.typ) }

// String returns a debug representation.
func (b base) String() string {
	return fmt.Sprintf("%s(%#v)", ir.TypeName(b.typ), b.expr)
}

func (b base) precision() ir.Precision { return ir.PrecisionOf(b.typ) }

func (b base) components() int { return ir.Components(b.typ) }

// originOf returns the expression behind a builder held in a type
// parameter.
func originOf(v any) ir.Expression {
	return v.(Value).Origin()
}

func typeOfValue(v any) ir.Type {
	return v.(Value).Type()
}

// construct wraps expr as the builder type T.
//
//nolint:gocyclo // one case per builder type
func construct[T any](expr ir.Expression, typ ir.Type) T {
	var out T
	b := base{expr: expr, typ: typ}
	switch p := any(&out).(type) {
	case *Float:
		*p = Float{floating[Float]{b}}
	case *Vec2:
		*p = Vec2{floatVector[Vec2, BVec2]{floating[Vec2]{b}}}
	case *Vec3:
		*p = Vec3{floatVector[Vec3, BVec3]{floating[Vec3]{b}}}
	case *Vec4:
		*p = Vec4{floatVector[Vec4, BVec4]{floating[Vec4]{b}}}
	case *Int:
		*p = Int{b}
	case *Bool:
		*p = Bool{boolean[Bool]{b}}
	case *BVec2:
		*p = BVec2{boolVector[BVec2]{boolean[BVec2]{b}}}
	case *BVec3:
		*p = BVec3{boolVector[BVec3]{boolean[BVec3]{b}}}
	case *BVec4:
		*p = BVec4{boolVector[BVec4]{boolean[BVec4]{b}}}
	case *Sampler2D:
		*p = Sampler2D{b}
	case *SamplerCube:
		*p = SamplerCube{b}
	default:
		panic(fmt.Sprintf("builder: unsupported value type %T", out))
	}
	return out
}

// typeOf returns the default-precision GLSL type of the builder type T.
func typeOf[T any]() ir.Type {
	var zero T
	switch any(zero).(type) {
	case Float:
		return ir.FloatType{}
	case Vec2:
		return ir.VectorType{Size: ir.Vec2}
	case Vec3:
		return ir.VectorType{Size: ir.Vec3}
	case Vec4:
		return ir.VectorType{Size: ir.Vec4}
	case Int:
		return ir.IntType{}
	case Bool:
		return ir.BoolType{}
	case BVec2:
		return ir.BoolVectorType{Size: ir.Vec2}
	case BVec3:
		return ir.BoolVectorType{Size: ir.Vec3}
	case BVec4:
		return ir.BoolVectorType{Size: ir.Vec4}
	case Sampler2D:
		return ir.SamplerType{}
	case SamplerCube:
		return ir.SamplerType{Cube: true}
	default:
		panic(fmt.Sprintf("builder: unsupported value type %T", zero))
	}
}

// Named returns a builder referring to an existing variable. The caller
// vouches for the variable's type; use Ref to check it against a scope.
func Named[T Storable](name string, p ir.Precision) T {
	return construct[T](ir.Var(name), ir.WithPrecision(typeOf[T](), p))
}

// Ref returns a builder for a variable visible in env, failing when the
// variable is unknown or its type does not match T.
func Ref[T Storable](env ir.TypeEnv, name string) (T, error) {
	return From[T](env, ir.Var(name))
}

// From adopts an arbitrary expression as a T after resolving its type
// against env.
func From[T Storable](env ir.TypeEnv, expr ir.Expression) (T, error) {
	var zero T
	t, err := ir.ResolveType(env, expr)
	if err != nil {
		return zero, err
	}
	if !ir.SameShape(t, typeOf[T]()) {
		return zero, ir.Errorf(ir.ErrTypeMismatch, "expression has type %s, want %s",
			ir.TypeName(t), ir.TypeName(typeOf[T]()))
	}
	return construct[T](expr, t), nil
}

// Call builds a call to a user-declared function visible in env.
func Call[T Storable](env ir.TypeEnv, name string, args ...Value) (T, error) {
	exprs := make([]ir.Expression, len(args))
	for i, a := range args {
		exprs[i] = a.Origin()
	}
	return From[T](env, ir.Call(name, exprs...))
}

// F returns a float literal.
func F(v float64) Float {
	return construct[Float](ir.Float(v), ir.FloatType{})
}

// I returns an int literal.
func I(v int64) Int {
	return Int{base{expr: ir.Int(v), typ: ir.IntType{}}}
}

// IntOf returns an int literal for an integral float, failing with
// ErrInvalidIntegerLiteral otherwise.
func IntOf(v float64) (Int, error) {
	lit, err := ir.IntLiteral(v)
	if err != nil {
		return Int{}, err
	}
	return Int{base{expr: lit, typ: ir.IntType{}}}, nil
}

// B returns a bool literal.
func B(v bool) Bool {
	return construct[Bool](ir.Bool(v), ir.BoolType{})
}

func floatLiterals(vs ...float64) []ir.Expression {
	out := make([]ir.Expression, len(vs))
	for i, v := range vs {
		out[i] = ir.Float(v)
	}
	return out
}

func boolLiterals(vs ...bool) []ir.Expression {
	out := make([]ir.Expression, len(vs))
	for i, v := range vs {
		out[i] = ir.Bool(v)
	}
	return out
}

// Vec2Lit returns vec2(x, y).
func Vec2Lit(x, y float64) Vec2 {
	return construct[Vec2](ir.Call("vec2", floatLiterals(x, y)...), ir.VectorType{Size: ir.Vec2})
}

// Vec3Lit returns vec3(x, y, z).
func Vec3Lit(x, y, z float64) Vec3 {
	return construct[Vec3](ir.Call("vec3", floatLiterals(x, y, z)...), ir.VectorType{Size: ir.Vec3})
}

// Vec4Lit returns vec4(x, y, z, w).
func Vec4Lit(x, y, z, w float64) Vec4 {
	return construct[Vec4](ir.Call("vec4", floatLiterals(x, y, z, w)...), ir.VectorType{Size: ir.Vec4})
}

// BVec2Lit returns bvec2(x, y).
func BVec2Lit(x, y bool) BVec2 {
	return construct[BVec2](ir.Call("bvec2", boolLiterals(x, y)...), ir.BoolVectorType{Size: ir.Vec2})
}

// BVec3Lit returns bvec3(x, y, z).
func BVec3Lit(x, y, z bool) BVec3 {
	return construct[BVec3](ir.Call("bvec3", boolLiterals(x, y, z)...), ir.BoolVectorType{Size: ir.Vec3})
}

// BVec4Lit returns bvec4(x, y, z, w).
func BVec4Lit(x, y, z, w bool) BVec4 {
	return construct[BVec4](ir.Call("bvec4", boolLiterals(x, y, z, w)...), ir.BoolVectorType{Size: ir.Vec4})
}

// Vec2Splat returns vec2(f).
func Vec2Splat(f Float) Vec2 { return splat[Vec2](f, ir.Vec2) }

// Vec3Splat returns vec3(f).
func Vec3Splat(f Float) Vec3 { return splat[Vec3](f, ir.Vec3) }

// Vec4Splat returns vec4(f).
func Vec4Splat(f Float) Vec4 { return splat[Vec4](f, ir.Vec4) }

func splat[T any](f Float, size ir.VectorSize) T {
	t := ir.VectorType{Size: size, Precision: f.precision()}
	return construct[T](ir.Call(ir.TypeName(t), f.expr), t)
}
