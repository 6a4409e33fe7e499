package builder

import "github.com/gogpu/shadergen/ir"

// Int is a GLSL int.
type Int struct {
	base
}

func (i Int) binary(op ir.BinaryOperator, o ir.Expression) Int {
	return Int{base{expr: ir.Binary(op, i.expr, o), typ: ir.IntType{}}}
}

// Add returns i + o.
func (i Int) Add(o Int) Int { return i.binary(ir.BinaryAdd, o.expr) }

// Sub returns i - o.
func (i Int) Sub(o Int) Int { return i.binary(ir.BinarySubtract, o.expr) }

// Mul returns i * o.
func (i Int) Mul(o Int) Int { return i.binary(ir.BinaryMultiply, o.expr) }

// Div returns i / o.
func (i Int) Div(o Int) Int { return i.binary(ir.BinaryDivide, o.expr) }

func (i Int) AddI(x int64) Int { return i.binary(ir.BinaryAdd, ir.Int(x)) }
func (i Int) SubI(x int64) Int { return i.binary(ir.BinarySubtract, ir.Int(x)) }
func (i Int) MulI(x int64) Int { return i.binary(ir.BinaryMultiply, ir.Int(x)) }
func (i Int) DivI(x int64) Int { return i.binary(ir.BinaryDivide, ir.Int(x)) }

// Neg returns -i.
func (i Int) Neg() Int {
	return Int{base{expr: ir.Unary(ir.UnaryNegate, i.expr), typ: ir.IntType{}}}
}

func (i Int) Eq(o Int) Bool { return compare(ir.BinaryEqual, i.expr, o.expr) }
func (i Int) Ne(o Int) Bool { return compare(ir.BinaryNotEqual, i.expr, o.expr) }
func (i Int) Lt(o Int) Bool { return compare(ir.BinaryLess, i.expr, o.expr) }
func (i Int) Le(o Int) Bool { return compare(ir.BinaryLessEqual, i.expr, o.expr) }
func (i Int) Gt(o Int) Bool { return compare(ir.BinaryGreater, i.expr, o.expr) }
func (i Int) Ge(o Int) Bool { return compare(ir.BinaryGreaterEqual, i.expr, o.expr) }

// ToFloat returns float(i).
func (i Int) ToFloat() Float {
	return construct[Float](ir.Call("float", i.expr), ir.FloatType{})
}
