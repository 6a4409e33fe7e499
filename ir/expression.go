package ir

import (
	"fmt"
	"math"
)

// Expression represents a value-producing node. Expressions form an
// immutable tree: a node is never modified after construction, only
// referenced or rebuilt.
type Expression interface {
	expression()
}

// Literal represents a literal constant value.
type Literal struct {
	Value LiteralValue
}

func (Literal) expression() {}

// LiteralValue represents the value of a literal.
type LiteralValue interface {
	literalValue()
}

// LiteralInt represents an integer literal.
type LiteralInt int64

func (LiteralInt) literalValue() {}

// LiteralFloat represents a float literal (may not be NaN or infinity).
type LiteralFloat float64

func (LiteralFloat) literalValue() {}

// LiteralBool represents a boolean literal.
type LiteralBool bool

func (LiteralBool) literalValue() {}

// ExprVariable references a variable by its host name.
type ExprVariable struct {
	Name string
}

func (ExprVariable) expression() {}

// ExprUnary applies a unary operator.
type ExprUnary struct {
	Op      UnaryOperator
	Operand Expression
}

func (ExprUnary) expression() {}

// UnaryOperator represents unary operators.
type UnaryOperator uint8

const (
	UnaryPlus UnaryOperator = iota
	UnaryNegate
	UnaryLogicalNot
	UnaryBitwiseNot
	UnaryPreIncrement
	UnaryPreDecrement
	UnaryPostIncrement
	UnaryPostDecrement
)

// String returns the GLSL token of the operator.
func (op UnaryOperator) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryNegate:
		return "-"
	case UnaryLogicalNot:
		return "!"
	case UnaryBitwiseNot:
		return "~"
	case UnaryPreIncrement, UnaryPostIncrement:
		return "++"
	case UnaryPreDecrement, UnaryPostDecrement:
		return "--"
	default:
		return fmt.Sprintf("UnaryOperator(%d)", uint8(op))
	}
}

// IsPostfix reports whether the operator is written after its operand.
func (op UnaryOperator) IsPostfix() bool {
	return op == UnaryPostIncrement || op == UnaryPostDecrement
}

// ExprBinary applies a binary operator.
type ExprBinary struct {
	Op    BinaryOperator
	Left  Expression
	Right Expression
}

func (ExprBinary) expression() {}

// BinaryOperator represents binary operators.
type BinaryOperator uint8

const (
	BinaryMultiply BinaryOperator = iota
	BinaryDivide
	BinaryModulo
	BinaryAdd
	BinarySubtract
	BinaryShiftLeft
	BinaryShiftRight
	BinaryLess
	BinaryLessEqual
	BinaryGreater
	BinaryGreaterEqual
	BinaryEqual
	BinaryNotEqual
	BinaryAnd
	BinaryExclusiveOr
	BinaryInclusiveOr
	BinaryLogicalAnd
	BinaryLogicalXor
	BinaryLogicalOr
)

var binaryTokens = [...]string{
	BinaryMultiply:     "*",
	BinaryDivide:       "/",
	BinaryModulo:       "%",
	BinaryAdd:          "+",
	BinarySubtract:     "-",
	BinaryShiftLeft:    "<<",
	BinaryShiftRight:   ">>",
	BinaryLess:         "<",
	BinaryLessEqual:    "<=",
	BinaryGreater:      ">",
	BinaryGreaterEqual: ">=",
	BinaryEqual:        "==",
	BinaryNotEqual:     "!=",
	BinaryAnd:          "&",
	BinaryExclusiveOr:  "^",
	BinaryInclusiveOr:  "|",
	BinaryLogicalAnd:   "&&",
	BinaryLogicalXor:   "^^",
	BinaryLogicalOr:    "||",
}

// String returns the GLSL token of the operator.
func (op BinaryOperator) String() string {
	if int(op) < len(binaryTokens) {
		return binaryTokens[op]
	}
	return fmt.Sprintf("BinaryOperator(%d)", uint8(op))
}

// ParseBinaryOperator maps a GLSL token to its operator.
func ParseBinaryOperator(token string) (BinaryOperator, bool) {
	for op, tok := range binaryTokens {
		if tok == token {
			return BinaryOperator(op), true
		}
	}
	return 0, false
}

// IsComparison reports whether the operator yields bool regardless of
// operand type.
func (op BinaryOperator) IsComparison() bool {
	switch op {
	case BinaryLess, BinaryLessEqual, BinaryGreater, BinaryGreaterEqual,
		BinaryEqual, BinaryNotEqual:
		return true
	}
	return false
}

// IsLogical reports whether the operator is &&, ^^ or ||.
func (op BinaryOperator) IsLogical() bool {
	return op == BinaryLogicalAnd || op == BinaryLogicalXor || op == BinaryLogicalOr
}

// ExprCall calls a built-in or user-declared function. Constructors such as
// vec3 are calls too.
type ExprCall struct {
	Function  string
	Arguments []Expression
}

func (ExprCall) expression() {}

// ExprIndex indexes into an array.
type ExprIndex struct {
	Base  Expression
	Index Expression
}

func (ExprIndex) expression() {}

// ExprSwizzle reorders or duplicates vector components.
type ExprSwizzle struct {
	Vector  Expression
	Pattern []SwizzleComponent
}

func (ExprSwizzle) expression() {}

// SwizzleComponent represents a component selector.
type SwizzleComponent uint8

const (
	SwizzleX SwizzleComponent = iota
	SwizzleY
	SwizzleZ
	SwizzleW
)

// String returns the component letter.
func (c SwizzleComponent) String() string {
	if c <= SwizzleW {
		return string("xyzw"[c])
	}
	return fmt.Sprintf("SwizzleComponent(%d)", uint8(c))
}

// Var returns a reference to the named variable.
func Var(name string) ExprVariable {
	return ExprVariable{Name: name}
}

// Float returns a float literal.
func Float(v float64) Literal {
	return Literal{Value: LiteralFloat(v)}
}

// Int returns an int literal.
func Int(v int64) Literal {
	return Literal{Value: LiteralInt(v)}
}

// Bool returns a bool literal.
func Bool(v bool) Literal {
	return Literal{Value: LiteralBool(v)}
}

// IntLiteral returns an int literal for v, failing when v is not integral.
func IntLiteral(v float64) (Literal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) ||
		v < math.MinInt64 || v >= math.MaxInt64 {
		return Literal{}, NewError(ErrInvalidIntegerLiteral, fmt.Sprintf("%v is not an integer", v))
	}
	return Int(int64(v)), nil
}

// Call returns a call of the named function.
func Call(name string, args ...Expression) ExprCall {
	return ExprCall{Function: name, Arguments: args}
}

// Binary returns left op right.
func Binary(op BinaryOperator, left, right Expression) ExprBinary {
	return ExprBinary{Op: op, Left: left, Right: right}
}

// Unary returns op operand.
func Unary(op UnaryOperator, operand Expression) ExprUnary {
	return ExprUnary{Op: op, Operand: operand}
}

// Children returns the direct subexpressions of e in evaluation order.
func Children(e Expression) []Expression {
	switch e := e.(type) {
	case ExprUnary:
		return []Expression{e.Operand}
	case ExprBinary:
		return []Expression{e.Left, e.Right}
	case ExprCall:
		return e.Arguments
	case ExprIndex:
		return []Expression{e.Base, e.Index}
	case ExprSwizzle:
		return []Expression{e.Vector}
	}
	return nil
}

// withChildren rebuilds e with its direct subexpressions replaced. The
// children slice must have the length returned by Children.
func withChildren(e Expression, children []Expression) Expression {
	switch e := e.(type) {
	case ExprUnary:
		e.Operand = children[0]
		return e
	case ExprBinary:
		e.Left, e.Right = children[0], children[1]
		return e
	case ExprCall:
		e.Arguments = children
		return e
	case ExprIndex:
		e.Base, e.Index = children[0], children[1]
		return e
	case ExprSwizzle:
		e.Vector = children[0]
		return e
	}
	return e
}

// IsLeaf reports whether e is a literal or a variable reference.
func IsLeaf(e Expression) bool {
	switch e.(type) {
	case Literal, ExprVariable:
		return true
	}
	return false
}
