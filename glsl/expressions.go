// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/shadergen/ir"
)

// writeExpression returns the GLSL representation of an expression.
// Every binary operation is parenthesized, so no precedence analysis is
// needed when nesting.
func (w *Writer) writeExpression(expr ir.Expression) (string, error) {
	switch e := expr.(type) {
	case ir.Literal:
		return writeLiteral(e)
	case ir.ExprVariable:
		if e.Name == "" {
			return "", ir.NewError(ir.ErrInvalidExpression, "variable reference without a name")
		}
		return escapeVariable(e.Name), nil
	case ir.ExprUnary:
		return w.writeUnary(e)
	case ir.ExprBinary:
		return w.writeBinary(e)
	case ir.ExprCall:
		return w.writeCall(e)
	case ir.ExprIndex:
		return w.writeIndex(e)
	case ir.ExprSwizzle:
		return w.writeSwizzle(e)
	case nil:
		return "", ir.NewError(ir.ErrInvalidExpression, "nil expression")
	default:
		return "", ir.Errorf(ir.ErrInvalidExpression, "unsupported expression kind: %T", expr)
	}
}

// writeLiteral writes a literal value.
func writeLiteral(lit ir.Literal) (string, error) {
	switch v := lit.Value.(type) {
	case ir.LiteralFloat:
		return formatFloat(float64(v))
	case ir.LiteralInt:
		return strconv.FormatInt(int64(v), 10), nil
	case ir.LiteralBool:
		if v {
			return "true", nil
		}
		return "false", nil
	default:
		return "", ir.Errorf(ir.ErrInvalidExpression, "unsupported literal value: %T", lit.Value)
	}
}

// writeUnary writes a unary operation. Operands that begin with a sign are
// wrapped so that -(-x) never collapses into the decrement operator.
func (w *Writer) writeUnary(e ir.ExprUnary) (string, error) {
	operand, err := w.writeExpression(e.Operand)
	if err != nil {
		return "", err
	}
	if _, nested := e.Operand.(ir.ExprUnary); nested || startsWithSign(operand) {
		operand = "(" + operand + ")"
	}

	switch e.Op {
	case ir.UnaryPlus, ir.UnaryNegate, ir.UnaryLogicalNot, ir.UnaryBitwiseNot,
		ir.UnaryPreIncrement, ir.UnaryPreDecrement:
		return e.Op.String() + operand, nil
	case ir.UnaryPostIncrement, ir.UnaryPostDecrement:
		return operand + e.Op.String(), nil
	default:
		return "", ir.Errorf(ir.ErrUnknownOperator, "unknown unary operator %d", uint8(e.Op))
	}
}

// writeBinary writes a binary operation as (left op right). A right
// operand that begins with a sign is wrapped so a-(-1.0) does not lex as
// a decrement.
func (w *Writer) writeBinary(e ir.ExprBinary) (string, error) {
	if int(e.Op) > int(ir.BinaryLogicalOr) {
		return "", ir.Errorf(ir.ErrUnknownOperator, "unknown binary operator %d", uint8(e.Op))
	}
	left, err := w.writeExpression(e.Left)
	if err != nil {
		return "", err
	}
	right, err := w.writeExpression(e.Right)
	if err != nil {
		return "", err
	}
	if startsWithSign(right) {
		right = "(" + right + ")"
	}
	return "(" + left + e.Op.String() + right + ")", nil
}

func startsWithSign(s string) bool {
	return strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+")
}

// writeCall writes a function or constructor call.
func (w *Writer) writeCall(e ir.ExprCall) (string, error) {
	if e.Function == "" {
		return "", ir.NewError(ir.ErrInvalidExpression, "call without a function name")
	}
	args := make([]string, len(e.Arguments))
	for i, arg := range e.Arguments {
		s, err := w.writeExpression(arg)
		if err != nil {
			return "", fmt.Errorf("%s argument %d: %w", e.Function, i, err)
		}
		args[i] = s
	}
	return escapeFunction(e.Function) + "(" + strings.Join(args, ", ") + ")", nil
}

// writeIndex writes an array access.
func (w *Writer) writeIndex(e ir.ExprIndex) (string, error) {
	base, err := w.writeExpression(e.Base)
	if err != nil {
		return "", err
	}
	index, err := w.writeExpression(e.Index)
	if err != nil {
		return "", err
	}
	return postfixOperand(e.Base, base) + "[" + index + "]", nil
}

// writeSwizzle writes a component selection such as v.wzyx.
func (w *Writer) writeSwizzle(e ir.ExprSwizzle) (string, error) {
	if len(e.Pattern) == 0 || len(e.Pattern) > 4 {
		return "", ir.Errorf(ir.ErrInvalidSwizzleIndex, "swizzle selects %d components", len(e.Pattern))
	}
	vector, err := w.writeExpression(e.Vector)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(postfixOperand(e.Vector, vector))
	b.WriteByte('.')
	for _, c := range e.Pattern {
		if c > ir.SwizzleW {
			return "", ir.Errorf(ir.ErrInvalidSwizzleIndex, "swizzle component %d out of range", uint8(c))
		}
		b.WriteString(c.String())
	}
	return b.String(), nil
}

// postfixOperand parenthesizes a prefix unary operand of a postfix
// operator, since v.x binds tighter than -v.
func postfixOperand(expr ir.Expression, s string) string {
	if u, ok := expr.(ir.ExprUnary); ok && !u.Op.IsPostfix() {
		return "(" + s + ")"
	}
	if lit, ok := expr.(ir.Literal); ok {
		if _, isFloat := lit.Value.(ir.LiteralFloat); isFloat && strings.HasPrefix(s, "-") {
			return "(" + s + ")"
		}
	}
	return s
}
