package builder

import (
	"github.com/gogpu/shadergen/ir"
)

// floating implements the operations shared by float and the float
// vectors. T is the concrete builder type the operations return.
type floating[T any] struct {
	base
}

func (floating[T]) floatFamily() {}

func (f floating[T]) wrap(expr ir.Expression) T {
	return construct[T](expr, f.typ)
}

// binary applies an arithmetic operator; the result takes the higher
// operand precision.
func (f floating[T]) binary(op ir.BinaryOperator, other ir.Expression, otherType ir.Type) T {
	p := ir.MaxPrecision(f.precision(), ir.PrecisionOf(otherType))
	return construct[T](ir.Binary(op, f.expr, other), ir.WithPrecision(f.typ, p))
}

// promote returns a literal of the receiver's type: x for float, vecN(x)
// for vectors.
func (f floating[T]) promote(x float64) (ir.Expression, ir.Type) {
	if _, ok := f.typ.(ir.FloatType); ok {
		return ir.Float(x), ir.FloatType{}
	}
	t := ir.WithPrecision(f.typ, ir.PrecisionDefault)
	return ir.Call(ir.TypeName(t), ir.Float(x)), t
}

func (f floating[T]) binaryF(op ir.BinaryOperator, x float64) T {
	lit, t := f.promote(x)
	return f.binary(op, lit, t)
}

func (f floating[T]) call(name string, args ...ir.Expression) T {
	return f.wrap(ir.Call(name, args...))
}

func (f floating[T]) scalar(name string, args ...ir.Expression) Float {
	return construct[Float](ir.Call(name, args...), ir.FloatType{Precision: f.precision()})
}

// Add returns f + o.
func (f floating[T]) Add(o T) T { return f.binary(ir.BinaryAdd, originOf(o), typeOfValue(o)) }

// Sub returns f - o.
func (f floating[T]) Sub(o T) T { return f.binary(ir.BinarySubtract, originOf(o), typeOfValue(o)) }

// Mul returns f * o, component-wise for vectors.
func (f floating[T]) Mul(o T) T { return f.binary(ir.BinaryMultiply, originOf(o), typeOfValue(o)) }

// Div returns f / o, component-wise for vectors.
func (f floating[T]) Div(o T) T { return f.binary(ir.BinaryDivide, originOf(o), typeOfValue(o)) }

// AddF returns f + x with x promoted to the receiver type.
func (f floating[T]) AddF(x float64) T { return f.binaryF(ir.BinaryAdd, x) }

// SubF returns f - x with x promoted to the receiver type.
func (f floating[T]) SubF(x float64) T { return f.binaryF(ir.BinarySubtract, x) }

// MulF returns f * x with x promoted to the receiver type.
func (f floating[T]) MulF(x float64) T { return f.binaryF(ir.BinaryMultiply, x) }

// DivF returns f / x with x promoted to the receiver type.
func (f floating[T]) DivF(x float64) T { return f.binaryF(ir.BinaryDivide, x) }

// Scale returns f * s.
func (f floating[T]) Scale(s Float) T { return f.binary(ir.BinaryMultiply, s.expr, s.typ) }

// Neg returns -f.
func (f floating[T]) Neg() T { return f.wrap(ir.Unary(ir.UnaryNegate, f.expr)) }

// Eq returns f == o.
func (f floating[T]) Eq(o T) Bool { return compare(ir.BinaryEqual, f.expr, originOf(o)) }

// Ne returns f != o.
func (f floating[T]) Ne(o T) Bool { return compare(ir.BinaryNotEqual, f.expr, originOf(o)) }

// Angle and trigonometry.

func (f floating[T]) Radians() T { return f.call("radians", f.expr) }
func (f floating[T]) Degrees() T { return f.call("degrees", f.expr) }
func (f floating[T]) Sin() T     { return f.call("sin", f.expr) }
func (f floating[T]) Cos() T     { return f.call("cos", f.expr) }
func (f floating[T]) Tan() T     { return f.call("tan", f.expr) }
func (f floating[T]) Asin() T    { return f.call("asin", f.expr) }
func (f floating[T]) Acos() T    { return f.call("acos", f.expr) }
func (f floating[T]) Atan() T    { return f.call("atan", f.expr) }

// Atan2 returns atan(f, x), the arc tangent of f/x.
func (f floating[T]) Atan2(x T) T { return f.call("atan", f.expr, originOf(x)) }

// Exponential.

func (f floating[T]) Pow(y T) T      { return f.call("pow", f.expr, originOf(y)) }
func (f floating[T]) Exp() T         { return f.call("exp", f.expr) }
func (f floating[T]) Log() T         { return f.call("log", f.expr) }
func (f floating[T]) Exp2() T        { return f.call("exp2", f.expr) }
func (f floating[T]) Log2() T        { return f.call("log2", f.expr) }
func (f floating[T]) Sqrt() T        { return f.call("sqrt", f.expr) }
func (f floating[T]) Inversesqrt() T { return f.call("inversesqrt", f.expr) }

// Common.

func (f floating[T]) Abs() T   { return f.call("abs", f.expr) }
func (f floating[T]) Sign() T  { return f.call("sign", f.expr) }
func (f floating[T]) Floor() T { return f.call("floor", f.expr) }
func (f floating[T]) Ceil() T  { return f.call("ceil", f.expr) }
func (f floating[T]) Fract() T { return f.call("fract", f.expr) }

func (f floating[T]) Mod(y T) T        { return f.call("mod", f.expr, originOf(y)) }
func (f floating[T]) ModF(y float64) T { return f.call("mod", f.expr, ir.Float(y)) }
func (f floating[T]) Min(y T) T        { return f.call("min", f.expr, originOf(y)) }
func (f floating[T]) MinF(y float64) T { return f.call("min", f.expr, ir.Float(y)) }
func (f floating[T]) Max(y T) T        { return f.call("max", f.expr, originOf(y)) }
func (f floating[T]) MaxF(y float64) T { return f.call("max", f.expr, ir.Float(y)) }
func (f floating[T]) Clamp(lo, hi T) T { return f.call("clamp", f.expr, originOf(lo), originOf(hi)) }
func (f floating[T]) ClampF(lo, hi float64) T {
	return f.call("clamp", f.expr, ir.Float(lo), ir.Float(hi))
}

// Mix returns mix(f, y, a), the linear blend of f and y.
func (f floating[T]) Mix(y, a T) T { return f.call("mix", f.expr, originOf(y), originOf(a)) }

// MixF returns mix(f, y, a) with a scalar blend factor.
func (f floating[T]) MixF(y T, a float64) T { return f.call("mix", f.expr, originOf(y), ir.Float(a)) }

// Step returns step(edge, f).
func (f floating[T]) Step(edge T) T { return f.call("step", originOf(edge), f.expr) }

// StepF returns step(edge, f) with a scalar edge.
func (f floating[T]) StepF(edge float64) T { return f.call("step", ir.Float(edge), f.expr) }

// Smoothstep returns smoothstep(lo, hi, f).
func (f floating[T]) Smoothstep(lo, hi T) T {
	return f.call("smoothstep", originOf(lo), originOf(hi), f.expr)
}

// SmoothstepF returns smoothstep(lo, hi, f) with scalar edges.
func (f floating[T]) SmoothstepF(lo, hi float64) T {
	return f.call("smoothstep", ir.Float(lo), ir.Float(hi), f.expr)
}

// Geometric.

// Length returns length(f).
func (f floating[T]) Length() Float { return f.scalar("length", f.expr) }

// Distance returns distance(f, o).
func (f floating[T]) Distance(o T) Float { return f.scalar("distance", f.expr, originOf(o)) }

// Dot returns dot(f, o).
func (f floating[T]) Dot(o T) Float { return f.scalar("dot", f.expr, originOf(o)) }

func (f floating[T]) Normalize() T { return f.call("normalize", f.expr) }

// Faceforward returns faceforward(f, i, nref): f if dot(nref, i) < 0,
// otherwise -f.
func (f floating[T]) Faceforward(i, nref T) T {
	return f.call("faceforward", f.expr, originOf(i), originOf(nref))
}

// Reflect returns reflect(f, n) for incident vector f and normal n.
func (f floating[T]) Reflect(n T) T { return f.call("reflect", f.expr, originOf(n)) }

// Refract returns refract(f, n, eta).
func (f floating[T]) Refract(n T, eta Float) T {
	return f.call("refract", f.expr, originOf(n), eta.expr)
}

// floatVector adds the operations that only exist on vectors. B is the
// boolean vector of the same size.
type floatVector[T, B any] struct {
	floating[T]
}

func (v floatVector[T, B]) relational(name string, o T) B {
	t, _ := ir.BoolVectorOf(v.typ)
	return construct[B](ir.Call(name, v.expr, originOf(o)), t)
}

// LessThan returns the component-wise f < o.
func (v floatVector[T, B]) LessThan(o T) B { return v.relational("lessThan", o) }

// LessThanEqual returns the component-wise f <= o.
func (v floatVector[T, B]) LessThanEqual(o T) B { return v.relational("lessThanEqual", o) }

// GreaterThan returns the component-wise f > o.
func (v floatVector[T, B]) GreaterThan(o T) B { return v.relational("greaterThan", o) }

// GreaterThanEqual returns the component-wise f >= o.
func (v floatVector[T, B]) GreaterThanEqual(o T) B { return v.relational("greaterThanEqual", o) }

// Equal returns the component-wise f == o.
func (v floatVector[T, B]) Equal(o T) B { return v.relational("equal", o) }

// NotEqual returns the component-wise f != o.
func (v floatVector[T, B]) NotEqual(o T) B { return v.relational("notEqual", o) }

// Pick swizzles the vector. One axis yields a Float, two to four yield the
// vector of that size. Axes beyond the receiver's size fail with
// ErrInvalidSwizzleIndex.
func (v floatVector[T, B]) Pick(axes ...Axis) (FloatValue, error) {
	expr, t, err := swizzle(v.base, axes)
	if err != nil {
		return nil, err
	}
	return floatValueOf(expr, t), nil
}

// Pick1 selects one component.
func (v floatVector[T, B]) Pick1(a Axis) (Float, error) { return pickAs[Float](v.base, a) }

// Pick2 selects two components.
func (v floatVector[T, B]) Pick2(a, b Axis) (Vec2, error) { return pickAs[Vec2](v.base, a, b) }

// Pick3 selects three components.
func (v floatVector[T, B]) Pick3(a, b, c Axis) (Vec3, error) { return pickAs[Vec3](v.base, a, b, c) }

// Pick4 selects four components.
func (v floatVector[T, B]) Pick4(a, b, c, d Axis) (Vec4, error) {
	return pickAs[Vec4](v.base, a, b, c, d)
}

func (v floatVector[T, B]) X() Float { return mustPick[Float](v.base, AxisX) }
func (v floatVector[T, B]) Y() Float { return mustPick[Float](v.base, AxisY) }
func (v floatVector[T, B]) XY() Vec2 { return mustPick[Vec2](v.base, AxisX, AxisY) }
func (v floatVector[T, B]) YX() Vec2 { return mustPick[Vec2](v.base, AxisY, AxisX) }
func (v floatVector[T, B]) XX() Vec2 { return mustPick[Vec2](v.base, AxisX, AxisX) }
func (v floatVector[T, B]) YY() Vec2 { return mustPick[Vec2](v.base, AxisY, AxisY) }

// Float is a GLSL float.
type Float struct {
	floating[Float]
}

// Lt returns f < o.
func (f Float) Lt(o Float) Bool { return compare(ir.BinaryLess, f.expr, o.expr) }

// Le returns f <= o.
func (f Float) Le(o Float) Bool { return compare(ir.BinaryLessEqual, f.expr, o.expr) }

// Gt returns f > o.
func (f Float) Gt(o Float) Bool { return compare(ir.BinaryGreater, f.expr, o.expr) }

// Ge returns f >= o.
func (f Float) Ge(o Float) Bool { return compare(ir.BinaryGreaterEqual, f.expr, o.expr) }

// EqF returns f == x.
func (f Float) EqF(x float64) Bool { return f.Eq(F(x)) }

// ToInt returns int(f).
func (f Float) ToInt() Int { return Int{base{expr: ir.Call("int", f.expr), typ: ir.IntType{}}} }

// Concat returns vec2(f, o).
func (f Float) Concat(o Float) Vec2 { return concat2[Vec2](f.base, o.expr) }

// ConcatVec2 returns vec3(f, o).
func (f Float) ConcatVec2(o Vec2) Vec3 { return concat2[Vec3](f.base, o.expr) }

// ConcatVec3 returns vec4(f, o).
func (f Float) ConcatVec3(o Vec3) Vec4 { return concat2[Vec4](f.base, o.expr) }

// ConcatF returns vec2(f, x).
func (f Float) ConcatF(x float64) Vec2 { return concat2[Vec2](f.base, ir.Float(x)) }

// ConcatF2 returns vec3(f, x, y).
func (f Float) ConcatF2(x, y float64) Vec3 { return concat2[Vec3](f.base, floatLiterals(x, y)...) }

// ConcatF3 returns vec4(f, x, y, z).
func (f Float) ConcatF3(x, y, z float64) Vec4 {
	return concat2[Vec4](f.base, floatLiterals(x, y, z)...)
}

// Vec2 is a GLSL vec2.
type Vec2 struct {
	floatVector[Vec2, BVec2]
}

// Concat returns vec3(v, o).
func (v Vec2) Concat(o Float) Vec3 { return concat2[Vec3](v.base, o.expr) }

// ConcatVec2 returns vec4(v, o).
func (v Vec2) ConcatVec2(o Vec2) Vec4 { return concat2[Vec4](v.base, o.expr) }

// ConcatF returns vec3(v, x).
func (v Vec2) ConcatF(x float64) Vec3 { return concat2[Vec3](v.base, ir.Float(x)) }

// ConcatF2 returns vec4(v, x, y).
func (v Vec2) ConcatF2(x, y float64) Vec4 { return concat2[Vec4](v.base, floatLiterals(x, y)...) }

// Vec3 is a GLSL vec3.
type Vec3 struct {
	floatVector[Vec3, BVec3]
}

// Cross returns cross(v, o).
func (v Vec3) Cross(o Vec3) Vec3 {
	return construct[Vec3](ir.Call("cross", v.expr, o.expr), ir.VectorType{Size: ir.Vec3, Precision: v.precision()})
}

// Concat returns vec4(v, o).
func (v Vec3) Concat(o Float) Vec4 { return concat2[Vec4](v.base, o.expr) }

// ConcatF returns vec4(v, x).
func (v Vec3) ConcatF(x float64) Vec4 { return concat2[Vec4](v.base, ir.Float(x)) }

func (v Vec3) Z() Float  { return mustPick[Float](v.base, AxisZ) }
func (v Vec3) XZ() Vec2  { return mustPick[Vec2](v.base, AxisX, AxisZ) }
func (v Vec3) YZ() Vec2  { return mustPick[Vec2](v.base, AxisY, AxisZ) }
func (v Vec3) ZYX() Vec3 { return mustPick[Vec3](v.base, AxisZ, AxisY, AxisX) }

// Vec4 is a GLSL vec4.
type Vec4 struct {
	floatVector[Vec4, BVec4]
}

func (v Vec4) Z() Float   { return mustPick[Float](v.base, AxisZ) }
func (v Vec4) W() Float   { return mustPick[Float](v.base, AxisW) }
func (v Vec4) XZ() Vec2   { return mustPick[Vec2](v.base, AxisX, AxisZ) }
func (v Vec4) YZ() Vec2   { return mustPick[Vec2](v.base, AxisY, AxisZ) }
func (v Vec4) ZW() Vec2   { return mustPick[Vec2](v.base, AxisZ, AxisW) }
func (v Vec4) XYZ() Vec3  { return mustPick[Vec3](v.base, AxisX, AxisY, AxisZ) }
func (v Vec4) WZYX() Vec4 { return mustPick[Vec4](v.base, AxisW, AxisZ, AxisY, AxisX) }

// XYZ returns v.xyz, which for a vec3 is a copy of v.
func (v Vec3) XYZ() Vec3 { return mustPick[Vec3](v.base, AxisX, AxisY, AxisZ) }

// concat2 builds the constructor call of T from the receiver followed by
// rest. The result takes the precision of the receiver.
func concat2[T any](first base, rest ...ir.Expression) T {
	t := ir.WithPrecision(typeOf[T](), first.precision())
	args := append([]ir.Expression{first.expr}, rest...)
	return construct[T](ir.Call(ir.TypeName(t), args...), t)
}
