package builder

import "github.com/gogpu/shadergen/ir"

// compare builds a comparison or logical operation, which is always bool.
func compare(op ir.BinaryOperator, left, right ir.Expression) Bool {
	return construct[Bool](ir.Binary(op, left, right), ir.BoolType{})
}

// boolean implements the operations shared by bool and the boolean
// vectors.
type boolean[T any] struct {
	base
}

func (boolean[T]) boolFamily() {}

// Eq returns b == o.
func (b boolean[T]) Eq(o T) Bool { return compare(ir.BinaryEqual, b.expr, originOf(o)) }

// Ne returns b != o.
func (b boolean[T]) Ne(o T) Bool { return compare(ir.BinaryNotEqual, b.expr, originOf(o)) }

// Bool is a GLSL bool.
type Bool struct {
	boolean[Bool]
}

// And returns b && o.
func (b Bool) And(o Bool) Bool { return compare(ir.BinaryLogicalAnd, b.expr, o.expr) }

// Or returns b || o.
func (b Bool) Or(o Bool) Bool { return compare(ir.BinaryLogicalOr, b.expr, o.expr) }

// Xor returns b ^^ o.
func (b Bool) Xor(o Bool) Bool { return compare(ir.BinaryLogicalXor, b.expr, o.expr) }

// Not returns !b.
func (b Bool) Not() Bool {
	return construct[Bool](ir.Unary(ir.UnaryLogicalNot, b.expr), ir.BoolType{})
}

// Concat returns bvec2(b, o).
func (b Bool) Concat(o Bool) BVec2 { return concat2[BVec2](b.base, o.expr) }

// ConcatBVec2 returns bvec3(b, o).
func (b Bool) ConcatBVec2(o BVec2) BVec3 { return concat2[BVec3](b.base, o.expr) }

// ConcatBVec3 returns bvec4(b, o).
func (b Bool) ConcatBVec3(o BVec3) BVec4 { return concat2[BVec4](b.base, o.expr) }

// ConcatB returns bvec2(b, x).
func (b Bool) ConcatB(x bool) BVec2 { return concat2[BVec2](b.base, ir.Bool(x)) }

// boolVector adds the operations that only exist on boolean vectors.
type boolVector[T any] struct {
	boolean[T]
}

// Any returns any(v).
func (v boolVector[T]) Any() Bool {
	return construct[Bool](ir.Call("any", v.expr), ir.BoolType{})
}

// All returns all(v).
func (v boolVector[T]) All() Bool {
	return construct[Bool](ir.Call("all", v.expr), ir.BoolType{})
}

// Not returns the component-wise not(v).
func (v boolVector[T]) Not() T {
	return construct[T](ir.Call("not", v.expr), v.typ)
}

// Pick swizzles the vector. One axis yields a Bool, two to four yield the
// boolean vector of that size.
func (v boolVector[T]) Pick(axes ...Axis) (BoolValue, error) {
	expr, t, err := swizzle(v.base, axes)
	if err != nil {
		return nil, err
	}
	return boolValueOf(expr, t), nil
}

func (v boolVector[T]) X() Bool { return mustPick[Bool](v.base, AxisX) }
func (v boolVector[T]) Y() Bool { return mustPick[Bool](v.base, AxisY) }

// BVec2 is a GLSL bvec2.
type BVec2 struct {
	boolVector[BVec2]
}

// Concat returns bvec3(v, o).
func (v BVec2) Concat(o Bool) BVec3 { return concat2[BVec3](v.base, o.expr) }

// ConcatBVec2 returns bvec4(v, o).
func (v BVec2) ConcatBVec2(o BVec2) BVec4 { return concat2[BVec4](v.base, o.expr) }

// ConcatB returns bvec3(v, x).
func (v BVec2) ConcatB(x bool) BVec3 { return concat2[BVec3](v.base, ir.Bool(x)) }

// BVec3 is a GLSL bvec3.
type BVec3 struct {
	boolVector[BVec3]
}

// Concat returns bvec4(v, o).
func (v BVec3) Concat(o Bool) BVec4 { return concat2[BVec4](v.base, o.expr) }

// ConcatB returns bvec4(v, x).
func (v BVec3) ConcatB(x bool) BVec4 { return concat2[BVec4](v.base, ir.Bool(x)) }

func (v BVec3) Z() Bool { return mustPick[Bool](v.base, AxisZ) }

// BVec4 is a GLSL bvec4.
type BVec4 struct {
	boolVector[BVec4]
}

func (v BVec4) Z() Bool { return mustPick[Bool](v.base, AxisZ) }
func (v BVec4) W() Bool { return mustPick[Bool](v.base, AxisW) }
