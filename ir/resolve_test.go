package ir

import "testing"

func testVars() Vars {
	return Vars{
		"a":     FloatType{},
		"h":     FloatType{Precision: PrecisionHigh},
		"i":     IntType{},
		"flag":  BoolType{},
		"v2":    VectorType{Size: Vec2},
		"v3":    VectorType{Size: Vec3, Precision: PrecisionMedium},
		"v4":    VectorType{Size: Vec4},
		"b3":    BoolVectorType{Size: Vec3},
		"iv2":   IntVectorType{Size: Vec2},
		"m4":    MatrixType{Size: Vec4},
		"tex":   SamplerType{},
		"cube":  SamplerType{Cube: true},
		"arr":   ArrayType{Base: VectorType{Size: Vec3}, Size: 4},
		"light": StructType{Name: "Light"},
	}
}

func TestResolveLiteralType(t *testing.T) {
	tests := []struct {
		name     string
		literal  Literal
		wantType Type
	}{
		{"int literal", Int(42), IntType{}},
		{"float literal", Float(3.14), FloatType{}},
		{"bool literal true", Bool(true), BoolType{}},
		{"bool literal false", Bool(false), BoolType{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveType(nil, tt.literal)
			if err != nil {
				t.Fatalf("ResolveType() error = %v", err)
			}
			if got != tt.wantType {
				t.Errorf("ResolveType() = %#v, want %#v", got, tt.wantType)
			}
		})
	}
}

func TestResolveType(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want Type
	}{
		{"variable", Var("v3"), VectorType{Size: Vec3, Precision: PrecisionMedium}},
		{"array access", ExprIndex{Base: Var("arr"), Index: Int(1)}, VectorType{Size: Vec3}},
		{"negate keeps type", Unary(UnaryNegate, Var("v2")), VectorType{Size: Vec2}},
		{"post increment keeps type", Unary(UnaryPostIncrement, Var("i")), IntType{}},
		{"logical not", Unary(UnaryLogicalNot, Var("flag")), BoolType{}},
		{"add same type", Binary(BinaryAdd, Var("a"), Float(5)), FloatType{}},
		{"highest precision wins", Binary(BinaryMultiply, Var("a"), Var("h")), FloatType{Precision: PrecisionHigh}},
		{"vector times scalar", Binary(BinaryMultiply, Var("v3"), Var("a")), VectorType{Size: Vec3, Precision: PrecisionMedium}},
		{"scalar times vector", Binary(BinaryMultiply, Var("h"), Var("v4")), VectorType{Size: Vec4, Precision: PrecisionHigh}},
		{"matrix times vector", Binary(BinaryMultiply, Var("m4"), Var("v4")), VectorType{Size: Vec4}},
		{"vector times matrix", Binary(BinaryMultiply, Var("v4"), Var("m4")), VectorType{Size: Vec4}},
		{"equality", Binary(BinaryEqual, Var("v2"), Var("v2")), BoolType{}},
		{"less than", Binary(BinaryLess, Var("a"), Float(1)), BoolType{}},
		{"logical and", Binary(BinaryLogicalAnd, Var("flag"), Bool(true)), BoolType{}},
		{"logical xor", Binary(BinaryLogicalXor, Var("flag"), Bool(true)), BoolType{}},
		{"same as first argument", Call("clamp", Var("v3"), Float(0), Float(1)), VectorType{Size: Vec3, Precision: PrecisionMedium}},
		{"atan2", Call("atan", Var("a"), Var("h")), FloatType{}},
		{"step takes second", Call("step", Var("a"), Var("v2")), VectorType{Size: Vec2}},
		{"smoothstep takes third", Call("smoothstep", Float(0), Float(1), Var("v4")), VectorType{Size: Vec4}},
		{"length", Call("length", Var("v3")), FloatType{Precision: PrecisionMedium}},
		{"distance", Call("distance", Var("v2"), Var("v2")), FloatType{}},
		{"dot", Call("dot", Var("v3"), Var("v3")), FloatType{Precision: PrecisionMedium}},
		{"cross", Call("cross", Var("v3"), Var("v3")), VectorType{Size: Vec3, Precision: PrecisionMedium}},
		{"lessThan", Call("lessThan", Var("v3"), Var("v3")), BoolVectorType{Size: Vec3}},
		{"equal on ivec", Call("equal", Var("iv2"), Var("iv2")), BoolVectorType{Size: Vec2}},
		{"any", Call("any", Var("b3")), BoolType{}},
		{"all", Call("all", Var("b3")), BoolType{}},
		{"not keeps bvec", Call("not", Var("b3")), BoolVectorType{Size: Vec3}},
		{"texture2D", Call("texture2D", Var("tex"), Var("v2")), VectorType{Size: Vec4}},
		{"textureCube", Call("textureCube", Var("cube"), Var("v3")), VectorType{Size: Vec4}},
		{"vec2 constructor", Call("vec2", Var("h"), Float(1)), VectorType{Size: Vec2, Precision: PrecisionHigh}},
		{"vec4 constructor", Call("vec4", Var("v3"), Float(1)), VectorType{Size: Vec4, Precision: PrecisionMedium}},
		{"bvec2 constructor", Call("bvec2", Bool(true), Var("flag")), BoolVectorType{Size: Vec2}},
		{"int conversion", Call("int", Var("a")), IntType{}},
		{"swizzle single", ExprSwizzle{Vector: Var("v4"), Pattern: []SwizzleComponent{SwizzleX}}, FloatType{}},
		{"swizzle reorder", ExprSwizzle{Vector: Var("v3"), Pattern: []SwizzleComponent{SwizzleZ, SwizzleY, SwizzleX, SwizzleX}}, VectorType{Size: Vec4, Precision: PrecisionMedium}},
		{"swizzle bvec", ExprSwizzle{Vector: Var("b3"), Pattern: []SwizzleComponent{SwizzleX, SwizzleY}}, BoolVectorType{Size: Vec2}},
		{"swizzle ivec", ExprSwizzle{Vector: Var("iv2"), Pattern: []SwizzleComponent{SwizzleY}}, IntType{}},
	}

	vars := testVars()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveType(vars, tt.expr)
			if err != nil {
				t.Fatalf("ResolveType() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveType() = %s %#v, want %#v", TypeName(got), got, tt.want)
			}
		})
	}
}

func TestResolveType_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		kind ErrorKind
	}{
		{"unknown variable", Var("missing"), ErrUnknownVariable},
		{"unknown variable nested", Binary(BinaryAdd, Var("a"), Var("missing")), ErrUnknownVariable},
		{"index non-array", ExprIndex{Base: Var("v3"), Index: Int(0)}, ErrNotAnArray},
		{"swizzle scalar", ExprSwizzle{Vector: Var("a"), Pattern: []SwizzleComponent{SwizzleX}}, ErrNotAVector},
		{"swizzle out of range", ExprSwizzle{Vector: Var("v2"), Pattern: []SwizzleComponent{SwizzleZ}}, ErrInvalidSwizzleIndex},
		{"swizzle too long", ExprSwizzle{Vector: Var("v4"), Pattern: make([]SwizzleComponent, 5)}, ErrInvalidSwizzleIndex},
		{"unknown function", Call("frobnicate", Var("a")), ErrUnknownFunction},
		{"unknown unary", Unary(UnaryOperator(99), Var("a")), ErrUnknownOperator},
		{"unknown binary", Binary(BinaryOperator(99), Var("a"), Var("a")), ErrUnknownOperator},
		{"vec2 plus vec3", Binary(BinaryAdd, Var("v2"), Var("v3")), ErrTypeMismatch},
		{"float plus int", Binary(BinaryAdd, Var("a"), Var("i")), ErrTypeMismatch},
		{"matrix times wrong vector", Binary(BinaryMultiply, Var("m4"), Var("v3")), ErrTypeMismatch},
		{"lessThan on scalars", Call("lessThan", Var("a"), Var("a")), ErrNotAVector},
		{"wrong arity", Call("sin"), ErrInvalidExpression},
		{"nil expression", nil, ErrInvalidExpression},
	}

	vars := testVars()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveType(vars, tt.expr)
			if err == nil {
				t.Fatal("ResolveType() expected error, got nil")
			}
			if !IsKind(err, tt.kind) {
				t.Errorf("ResolveType() error = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

type fnEnv struct {
	Vars
	functions map[string]Type
}

func (e fnEnv) LookupFunction(name string) (Type, bool) {
	t, ok := e.functions[name]
	return t, ok
}

func TestResolveType_UserFunction(t *testing.T) {
	env := fnEnv{Vars: testVars(), functions: map[string]Type{"shade": VectorType{Size: Vec3}}}
	got, err := ResolveType(env, Call("shade", Var("v3")))
	if err != nil {
		t.Fatalf("ResolveType() error = %v", err)
	}
	if got != (VectorType{Size: Vec3}) {
		t.Errorf("ResolveType() = %s, want vec3", TypeName(got))
	}

	if _, err := ResolveType(testVars(), Call("shade")); !IsKind(err, ErrUnknownFunction) {
		t.Errorf("without FunctionEnv: error = %v, want UnknownFunction", err)
	}
}

func TestIntLiteral(t *testing.T) {
	tests := []struct {
		value   float64
		want    int64
		wantErr bool
	}{
		{value: 3, want: 3},
		{value: -12, want: -12},
		{value: 0, want: 0},
		{value: 2.5, wantErr: true},
		{value: 1e300, wantErr: true},
	}

	for _, tt := range tests {
		lit, err := IntLiteral(tt.value)
		if tt.wantErr {
			if !IsKind(err, ErrInvalidIntegerLiteral) {
				t.Errorf("IntLiteral(%v) error = %v, want InvalidIntegerLiteral", tt.value, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("IntLiteral(%v) error = %v", tt.value, err)
			continue
		}
		if lit.Value != LiteralInt(tt.want) {
			t.Errorf("IntLiteral(%v) = %v, want %d", tt.value, lit.Value, tt.want)
		}
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{VoidType{}, "void"},
		{FloatType{Precision: PrecisionHigh}, "float"},
		{VectorType{Size: Vec3}, "vec3"},
		{BoolVectorType{Size: Vec2}, "bvec2"},
		{IntVectorType{Size: Vec4}, "ivec4"},
		{MatrixType{Size: Vec3}, "mat3"},
		{SamplerType{}, "sampler2D"},
		{SamplerType{Cube: true}, "samplerCube"},
		{StructType{Name: "Light"}, "Light"},
		{ArrayType{Base: VectorType{Size: Vec2}, Size: 3}, "vec2[3]"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := TypeName(tt.typ); got != tt.want {
				t.Errorf("TypeName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrecisionOnlyOnFloatFamily(t *testing.T) {
	nonFloat := []Type{BoolType{}, IntType{}, BoolVectorType{Size: Vec3}, IntVectorType{Size: Vec2}, SamplerType{}}
	for _, typ := range nonFloat {
		if got := WithPrecision(typ, PrecisionHigh); got != typ {
			t.Errorf("WithPrecision(%s) changed a non-float type to %#v", TypeName(typ), got)
		}
		if IsFloating(typ) {
			t.Errorf("IsFloating(%s) = true", TypeName(typ))
		}
	}
	if !SameShape(VectorType{Size: Vec3, Precision: PrecisionLow}, VectorType{Size: Vec3, Precision: PrecisionHigh}) {
		t.Error("SameShape should ignore precision")
	}
	if SameShape(VectorType{Size: Vec3}, VectorType{Size: Vec4}) {
		t.Error("SameShape(vec3, vec4) = true")
	}
}
