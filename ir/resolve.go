package ir

import "fmt"

// TypeEnv maps variable names to their declared types.
type TypeEnv interface {
	Lookup(name string) (Type, bool)
}

// FunctionEnv is implemented by environments that also know user-declared
// functions. ResolveType consults it for calls of non-built-in functions.
type FunctionEnv interface {
	LookupFunction(name string) (Type, bool)
}

// Vars is a flat TypeEnv backed by a map.
type Vars map[string]Type

// Lookup implements TypeEnv.
func (v Vars) Lookup(name string) (Type, bool) {
	t, ok := v[name]
	return t, ok
}

// ResolveType infers the GLSL type of expr given the variables in env.
//
// Literals resolve to int, float (default precision) or bool. Calls are
// resolved against the built-in table, then against env when it implements
// FunctionEnv. Comparison and logical operators yield bool; arithmetic
// requires operands of the same shape or one of the GLSL scalar/vector/
// matrix mixes, and takes the higher operand precision.
func ResolveType(env TypeEnv, expr Expression) (Type, error) {
	switch e := expr.(type) {
	case Literal:
		return resolveLiteralType(e)
	case ExprVariable:
		if env != nil {
			if t, ok := env.Lookup(e.Name); ok {
				return t, nil
			}
		}
		return nil, Errorf(ErrUnknownVariable, "variable %q is not declared", e.Name)
	case ExprIndex:
		return resolveIndexType(env, e)
	case ExprCall:
		return resolveCallType(env, e)
	case ExprUnary:
		return resolveUnaryType(env, e)
	case ExprBinary:
		return resolveBinaryType(env, e)
	case ExprSwizzle:
		return resolveSwizzleType(env, e)
	case nil:
		return nil, NewError(ErrInvalidExpression, "nil expression")
	default:
		return nil, Errorf(ErrInvalidExpression, "unsupported expression kind: %T", expr)
	}
}

func resolveLiteralType(lit Literal) (Type, error) {
	switch lit.Value.(type) {
	case LiteralInt:
		return IntType{}, nil
	case LiteralFloat:
		return FloatType{}, nil
	case LiteralBool:
		return BoolType{}, nil
	default:
		return nil, Errorf(ErrInvalidExpression, "unsupported literal value: %T", lit.Value)
	}
}

func resolveIndexType(env TypeEnv, e ExprIndex) (Type, error) {
	base, err := ResolveType(env, e.Base)
	if err != nil {
		return nil, fmt.Errorf("index base: %w", err)
	}
	arr, ok := base.(ArrayType)
	if !ok {
		return nil, Errorf(ErrNotAnArray, "cannot index into %s", TypeName(base))
	}
	if _, err := ResolveType(env, e.Index); err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	return arr.Base, nil
}

func resolveCallType(env TypeEnv, e ExprCall) (Type, error) {
	args := make([]Type, len(e.Arguments))
	for i, arg := range e.Arguments {
		t, err := ResolveType(env, arg)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", e.Function, i, err)
		}
		args[i] = t
	}

	if spec, ok := builtinFunctions[e.Function]; ok {
		if len(args) < spec.minArgs || len(args) > spec.maxArgs {
			return nil, Errorf(ErrInvalidExpression, "%s: expected %s, got %d",
				e.Function, arityString(spec.minArgs, spec.maxArgs), len(args))
		}
		return spec.result(args)
	}

	if fns, ok := env.(FunctionEnv); ok {
		if t, ok := fns.LookupFunction(e.Function); ok {
			return t, nil
		}
	}
	return nil, Errorf(ErrUnknownFunction, "function %q is not defined", e.Function)
}

func arityString(lo, hi int) string {
	switch {
	case lo == hi && lo == 1:
		return "1 argument"
	case lo == hi:
		return fmt.Sprintf("%d arguments", lo)
	default:
		return fmt.Sprintf("%d to %d arguments", lo, hi)
	}
}

func resolveUnaryType(env TypeEnv, e ExprUnary) (Type, error) {
	operand, err := ResolveType(env, e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case UnaryLogicalNot:
		return BoolType{}, nil
	case UnaryPlus, UnaryNegate, UnaryBitwiseNot,
		UnaryPreIncrement, UnaryPreDecrement, UnaryPostIncrement, UnaryPostDecrement:
		return operand, nil
	default:
		return nil, Errorf(ErrUnknownOperator, "unknown unary operator %d", uint8(e.Op))
	}
}

func resolveBinaryType(env TypeEnv, e ExprBinary) (Type, error) {
	left, err := ResolveType(env, e.Left)
	if err != nil {
		return nil, fmt.Errorf("left operand: %w", err)
	}
	right, err := ResolveType(env, e.Right)
	if err != nil {
		return nil, fmt.Errorf("right operand: %w", err)
	}

	if int(e.Op) >= len(binaryTokens) {
		return nil, Errorf(ErrUnknownOperator, "unknown binary operator %d", uint8(e.Op))
	}
	if e.Op.IsComparison() || e.Op.IsLogical() {
		return BoolType{}, nil
	}
	return arithmeticResult(e.Op, left, right)
}

// arithmeticResult returns the type of left op right for the arithmetic and
// bitwise operators.
func arithmeticResult(op BinaryOperator, left, right Type) (Type, error) {
	prec := MaxPrecision(PrecisionOf(left), PrecisionOf(right))
	if SameShape(left, right) {
		return WithPrecision(left, prec), nil
	}

	mismatch := Errorf(ErrTypeMismatch, "operands of %s have types %s and %s",
		op, TypeName(left), TypeName(right))

	switch op {
	case BinaryAdd, BinarySubtract, BinaryMultiply, BinaryDivide:
	default:
		return nil, mismatch
	}

	// float op vecN, float op matN, int op ivecN and the mirrored forms.
	if ls, ok := ScalarOf(left); ok && IsScalar(right) && !IsScalar(left) && SameShape(ls, right) {
		return WithPrecision(left, prec), nil
	}
	if rs, ok := ScalarOf(right); ok && IsScalar(left) && !IsScalar(right) && SameShape(rs, left) {
		return WithPrecision(right, prec), nil
	}
	if _, ok := left.(MatrixType); ok {
		if _, ok := right.(FloatType); ok {
			return WithPrecision(left, prec), nil
		}
	}
	if _, ok := right.(MatrixType); ok {
		if _, ok := left.(FloatType); ok {
			return WithPrecision(right, prec), nil
		}
	}

	if op != BinaryMultiply {
		return nil, mismatch
	}
	// matN * vecN and vecN * matN yield vecN.
	if m, ok := left.(MatrixType); ok {
		if v, ok := right.(VectorType); ok && v.Size == m.Size {
			return VectorType{Size: v.Size, Precision: prec}, nil
		}
	}
	if m, ok := right.(MatrixType); ok {
		if v, ok := left.(VectorType); ok && v.Size == m.Size {
			return VectorType{Size: v.Size, Precision: prec}, nil
		}
	}
	return nil, mismatch
}

func resolveSwizzleType(env TypeEnv, e ExprSwizzle) (Type, error) {
	vector, err := ResolveType(env, e.Vector)
	if err != nil {
		return nil, fmt.Errorf("swizzle vector: %w", err)
	}
	size := 0
	switch v := vector.(type) {
	case VectorType:
		size = int(v.Size)
	case BoolVectorType:
		size = int(v.Size)
	case IntVectorType:
		size = int(v.Size)
	default:
		return nil, Errorf(ErrNotAVector, "cannot swizzle %s", TypeName(vector))
	}
	if len(e.Pattern) == 0 || len(e.Pattern) > 4 {
		return nil, Errorf(ErrInvalidSwizzleIndex, "swizzle selects %d components", len(e.Pattern))
	}
	for _, c := range e.Pattern {
		if int(c) >= size {
			return nil, Errorf(ErrInvalidSwizzleIndex, "component %s out of range for %s", c, TypeName(vector))
		}
	}
	scalar, _ := ScalarOf(vector)
	result, _ := VectorOf(scalar, len(e.Pattern))
	return result, nil
}
