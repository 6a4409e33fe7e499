// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"math"
	"testing"

	"github.com/gogpu/shadergen/ir"
)

func writeExpr(t *testing.T, e ir.Expression) string {
	t.Helper()
	w := newWriter(vertexShader(nil), &Options{})
	s, err := w.writeExpression(e)
	if err != nil {
		t.Fatalf("writeExpression(%#v) error = %v", e, err)
	}
	return s
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-1, "-1.0"},
		{0.5, "0.5"},
		{3.14159, "3.14159"},
		{100, "100.0"},
		{1e21, "1e+21"},
		{1e-7, "1e-07"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := formatFloat(tt.input)
			if err != nil {
				t.Fatalf("formatFloat(%v) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("formatFloat(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatFloat_NotRepresentable(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := formatFloat(f); !ir.IsKind(err, ir.ErrInvalidExpression) {
			t.Errorf("formatFloat(%v) error = %v, want InvalidExpression", f, err)
		}
	}
}

func TestGLSL_Literals(t *testing.T) {
	tests := []struct {
		name string
		expr ir.Expression
		want string
	}{
		{"float", ir.Float(2), "2.0"},
		{"int", ir.Int(42), "42"},
		{"negative int", ir.Int(-3), "-3"},
		{"true", ir.Bool(true), "true"},
		{"false", ir.Bool(false), "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := writeExpr(t, tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGLSL_Operators(t *testing.T) {
	a, b := ir.Var("a"), ir.Var("b")
	tests := []struct {
		name string
		expr ir.Expression
		want string
	}{
		{"add", ir.Binary(ir.BinaryAdd, a, b), "(a+b)"},
		{"nested", ir.Binary(ir.BinaryMultiply, ir.Binary(ir.BinarySubtract, a, b), ir.Float(2)), "((a-b)*2.0)"},
		{"compare", ir.Binary(ir.BinaryLessEqual, a, b), "(a<=b)"},
		{"logical", ir.Binary(ir.BinaryLogicalXor, a, b), "(a^^b)"},
		{"shift", ir.Binary(ir.BinaryShiftLeft, a, ir.Int(1)), "(a<<1)"},
		{"negate", ir.Unary(ir.UnaryNegate, a), "-a"},
		{"not", ir.Unary(ir.UnaryLogicalNot, a), "!a"},
		{"double negate", ir.Unary(ir.UnaryNegate, ir.Unary(ir.UnaryNegate, a)), "-(-a)"},
		{"negate literal", ir.Unary(ir.UnaryNegate, ir.Float(-1)), "-(-1.0)"},
		{"pre increment", ir.Unary(ir.UnaryPreIncrement, a), "++a"},
		{"post decrement", ir.Unary(ir.UnaryPostDecrement, a), "a--"},
		{"negate binary", ir.Unary(ir.UnaryNegate, ir.Binary(ir.BinaryAdd, a, b)), "-(a+b)"},
		{"minus negative literal", ir.Binary(ir.BinarySubtract, a, ir.Float(-1)), "(a-(-1.0))"},
		{"minus negative int", ir.Binary(ir.BinarySubtract, a, ir.Int(-2)), "(a-(-2))"},
		{"minus negation", ir.Binary(ir.BinarySubtract, a, ir.Unary(ir.UnaryNegate, a)), "(a-(-a))"},
		{"plus unary plus", ir.Binary(ir.BinaryAdd, a, ir.Unary(ir.UnaryPlus, b)), "(a+(+b))"},
		{"minus pre decrement", ir.Binary(ir.BinarySubtract, a, ir.Unary(ir.UnaryPreDecrement, b)), "(a-(--b))"},
		{"plus pre increment", ir.Binary(ir.BinaryAdd, a, ir.Unary(ir.UnaryPreIncrement, b)), "(a+(++b))"},
		{"times negation", ir.Binary(ir.BinaryMultiply, a, ir.Unary(ir.UnaryNegate, b)), "(a*(-b))"},
		{"post decrement minus", ir.Binary(ir.BinarySubtract, ir.Unary(ir.UnaryPostDecrement, a), b), "(a---b)"},
		{"negative left", ir.Binary(ir.BinaryAdd, ir.Float(-1), a), "(-1.0+a)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := writeExpr(t, tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGLSL_Swizzle(t *testing.T) {
	v := ir.Var("v")
	tests := []struct {
		name string
		expr ir.Expression
		want string
	}{
		{"single", ir.ExprSwizzle{Vector: v, Pattern: []ir.SwizzleComponent{ir.SwizzleX}}, "v.x"},
		{"reverse", ir.ExprSwizzle{Vector: v, Pattern: []ir.SwizzleComponent{ir.SwizzleW, ir.SwizzleZ, ir.SwizzleY, ir.SwizzleX}}, "v.wzyx"},
		{"repeat", ir.ExprSwizzle{Vector: v, Pattern: []ir.SwizzleComponent{ir.SwizzleY, ir.SwizzleY}}, "v.yy"},
		{"of call", ir.ExprSwizzle{Vector: ir.Call("normalize", v), Pattern: []ir.SwizzleComponent{ir.SwizzleZ}}, "normalize(v).z"},
		{"of negation", ir.ExprSwizzle{Vector: ir.Unary(ir.UnaryNegate, v), Pattern: []ir.SwizzleComponent{ir.SwizzleX}}, "(-v).x"},
		{"of binary", ir.ExprSwizzle{Vector: ir.Binary(ir.BinaryAdd, v, v), Pattern: []ir.SwizzleComponent{ir.SwizzleX}}, "(v+v).x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := writeExpr(t, tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGLSL_SwizzleInvalid(t *testing.T) {
	w := newWriter(vertexShader(nil), &Options{})
	for _, pattern := range [][]ir.SwizzleComponent{
		nil,
		{ir.SwizzleX, ir.SwizzleY, ir.SwizzleZ, ir.SwizzleW, ir.SwizzleX},
	} {
		_, err := w.writeExpression(ir.ExprSwizzle{Vector: ir.Var("v"), Pattern: pattern})
		if !ir.IsKind(err, ir.ErrInvalidSwizzleIndex) {
			t.Errorf("pattern %v: error = %v, want InvalidSwizzleIndex", pattern, err)
		}
	}
}

func TestGLSL_Calls(t *testing.T) {
	tests := []struct {
		name string
		expr ir.Expression
		want string
	}{
		{"no args", ir.Call("rand"), "rand()"},
		{"builtin", ir.Call("clamp", ir.Var("x"), ir.Float(0), ir.Float(1)), "clamp(x, 0.0, 1.0)"},
		{"concat", ir.Call("vec3", ir.Call("vec2", ir.Float(1), ir.Float(2)), ir.Float(3)), "vec3(vec2(1.0, 2.0), 3.0)"},
		{"texture", ir.Call("texture2D", ir.Var("tex"), ir.Var("uv")), "texture2D(tex, uv)"},
		{"reserved user function", ir.Call("input", ir.Var("x")), "_input(x)"},
		{"index", ir.ExprIndex{Base: ir.Var("weights"), Index: ir.Int(2)}, "weights[2]"},
		{"index expression", ir.ExprIndex{Base: ir.Var("weights"), Index: ir.Binary(ir.BinaryAdd, ir.Var("i"), ir.Int(1))}, "weights[(i+1)]"},
		{"builtin variable", ir.Var("gl_FragCoord"), "gl_FragCoord"},
		{"escaped variable", ir.Var("gl_custom"), "_gl_custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := writeExpr(t, tt.expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
