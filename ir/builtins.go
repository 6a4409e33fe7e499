package ir

import "sort"

// builtinFn computes the result type of a built-in call from its argument
// types. It is only called once the argument count has been checked.
type builtinFn func(args []Type) (Type, error)

type builtinSpec struct {
	minArgs int
	maxArgs int
	result  builtinFn
}

func sameAs(index int) builtinFn {
	return func(args []Type) (Type, error) {
		return args[index], nil
	}
}

func scalarFloatOf(args []Type) (Type, error) {
	return FloatType{Precision: PrecisionOf(args[0])}, nil
}

func fixed(t Type) builtinFn {
	return func([]Type) (Type, error) {
		return t, nil
	}
}

func boolVectorOfFirst(args []Type) (Type, error) {
	t, ok := BoolVectorOf(args[0])
	if !ok || IsScalar(args[0]) {
		return nil, Errorf(ErrNotAVector, "expected a vector argument, got %s", TypeName(args[0]))
	}
	return t, nil
}

func logicalNot(args []Type) (Type, error) {
	if bv, ok := args[0].(BoolVectorType); ok {
		return bv, nil
	}
	return BoolType{}, nil
}

func floatConstructor(size VectorSize) builtinFn {
	return func(args []Type) (Type, error) {
		return VectorType{Size: size, Precision: PrecisionOf(args[0])}, nil
	}
}

func matrixConstructor(size VectorSize) builtinFn {
	return func(args []Type) (Type, error) {
		return MatrixType{Size: size, Precision: PrecisionOf(args[0])}, nil
	}
}

var (
	genType     = builtinSpec{minArgs: 1, maxArgs: 1, result: sameAs(0)}
	genType2    = builtinSpec{minArgs: 2, maxArgs: 2, result: sameAs(0)}
	genType3    = builtinSpec{minArgs: 3, maxArgs: 3, result: sameAs(0)}
	relational  = builtinSpec{minArgs: 2, maxArgs: 2, result: boolVectorOfFirst}
	texture4    = builtinSpec{minArgs: 2, maxArgs: 3, result: fixed(VectorType{Size: Vec4})}
	constructor = func(fn builtinFn) builtinSpec { return builtinSpec{minArgs: 1, maxArgs: 16, result: fn} }
)

// builtinFunctions lists the GLSL ES 1.00 built-in functions and
// constructors with their result type rules.
var builtinFunctions = map[string]builtinSpec{
	// Angle and trigonometry
	"radians": genType, "degrees": genType,
	"sin": genType, "cos": genType, "tan": genType,
	"asin": genType, "acos": genType,
	"atan": {minArgs: 1, maxArgs: 2, result: sameAs(0)},

	// Exponential
	"pow": genType2, "exp": genType, "log": genType,
	"exp2": genType, "log2": genType, "sqrt": genType, "inversesqrt": genType,

	// Common
	"abs": genType, "sign": genType, "floor": genType, "ceil": genType, "fract": genType,
	"mod": genType2, "min": genType2, "max": genType2,
	"clamp": genType3, "mix": genType3,
	"step":       {minArgs: 2, maxArgs: 2, result: sameAs(1)},
	"smoothstep": {minArgs: 3, maxArgs: 3, result: sameAs(2)},

	// Geometric
	"length":      {minArgs: 1, maxArgs: 1, result: scalarFloatOf},
	"distance":    {minArgs: 2, maxArgs: 2, result: scalarFloatOf},
	"dot":         {minArgs: 2, maxArgs: 2, result: scalarFloatOf},
	"cross":       {minArgs: 2, maxArgs: 2, result: floatConstructor(Vec3)},
	"normalize":   genType,
	"faceforward": genType3,
	"reflect":     genType2,
	"refract":     genType3,

	// Matrix
	"matrixCompMult": genType2,

	// Vector relational
	"lessThan": relational, "lessThanEqual": relational,
	"greaterThan": relational, "greaterThanEqual": relational,
	"equal": relational, "notEqual": relational,
	"any": {minArgs: 1, maxArgs: 1, result: fixed(BoolType{})},
	"all": {minArgs: 1, maxArgs: 1, result: fixed(BoolType{})},
	"not": {minArgs: 1, maxArgs: 1, result: logicalNot},

	// Texture lookup
	"texture2D": texture4, "texture2DProj": texture4,
	"texture2DLod":     {minArgs: 3, maxArgs: 3, result: fixed(VectorType{Size: Vec4})},
	"texture2DProjLod": {minArgs: 3, maxArgs: 3, result: fixed(VectorType{Size: Vec4})},
	"textureCube":      texture4,
	"textureCubeLod":   {minArgs: 3, maxArgs: 3, result: fixed(VectorType{Size: Vec4})},

	// Constructors
	"float": constructor(scalarFloatOf),
	"int":   constructor(fixed(IntType{})),
	"bool":  constructor(fixed(BoolType{})),
	"vec2":  constructor(floatConstructor(Vec2)),
	"vec3":  constructor(floatConstructor(Vec3)),
	"vec4":  constructor(floatConstructor(Vec4)),
	"bvec2": constructor(fixed(BoolVectorType{Size: Vec2})),
	"bvec3": constructor(fixed(BoolVectorType{Size: Vec3})),
	"bvec4": constructor(fixed(BoolVectorType{Size: Vec4})),
	"ivec2": constructor(fixed(IntVectorType{Size: Vec2})),
	"ivec3": constructor(fixed(IntVectorType{Size: Vec3})),
	"ivec4": constructor(fixed(IntVectorType{Size: Vec4})),
	"mat2":  constructor(matrixConstructor(Vec2)),
	"mat3":  constructor(matrixConstructor(Vec3)),
	"mat4":  constructor(matrixConstructor(Vec4)),
}

// IsBuiltinFunction reports whether name is a GLSL ES 1.00 built-in
// function or type constructor.
func IsBuiltinFunction(name string) bool {
	_, ok := builtinFunctions[name]
	return ok
}

// BuiltinFunctions returns the sorted names of all built-in functions and
// constructors.
func BuiltinFunctions() []string {
	names := make([]string, 0, len(builtinFunctions))
	for name := range builtinFunctions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinVariable describes a gl_ variable predefined by GLSL ES 1.00.
type BuiltinVariable struct {
	Name     string
	Type     Type
	ReadOnly bool
}

// Vertex and fragment built-in variables.
var (
	vertexBuiltins = []BuiltinVariable{
		{Name: "gl_Position", Type: VectorType{Size: Vec4, Precision: PrecisionHigh}},
		{Name: "gl_PointSize", Type: FloatType{Precision: PrecisionMedium}},
	}

	fragmentBuiltins = []BuiltinVariable{
		{Name: "gl_FragCoord", Type: VectorType{Size: Vec4, Precision: PrecisionMedium}, ReadOnly: true},
		{Name: "gl_FrontFacing", Type: BoolType{}, ReadOnly: true},
		{Name: "gl_PointCoord", Type: VectorType{Size: Vec2, Precision: PrecisionMedium}, ReadOnly: true},
		{Name: "gl_FragColor", Type: VectorType{Size: Vec4, Precision: PrecisionMedium}},
		{Name: "gl_FragData", Type: ArrayType{Base: VectorType{Size: Vec4, Precision: PrecisionMedium}, Size: 1}},
	}

	constantBuiltins = []BuiltinVariable{
		{Name: "gl_MaxVertexAttribs", Type: IntType{}, ReadOnly: true},
		{Name: "gl_MaxVertexUniformVectors", Type: IntType{}, ReadOnly: true},
		{Name: "gl_MaxVaryingVectors", Type: IntType{}, ReadOnly: true},
		{Name: "gl_MaxVertexTextureImageUnits", Type: IntType{}, ReadOnly: true},
		{Name: "gl_MaxCombinedTextureImageUnits", Type: IntType{}, ReadOnly: true},
		{Name: "gl_MaxTextureImageUnits", Type: IntType{}, ReadOnly: true},
		{Name: "gl_MaxFragmentUniformVectors", Type: IntType{}, ReadOnly: true},
		{Name: "gl_MaxDrawBuffers", Type: IntType{}, ReadOnly: true},
	}
)

// BuiltinVariables returns the gl_ variables available in the given stage.
func BuiltinVariables(stage ShaderStage) []BuiltinVariable {
	var vars []BuiltinVariable
	switch stage {
	case StageVertex:
		vars = append(vars, vertexBuiltins...)
	case StageFragment:
		vars = append(vars, fragmentBuiltins...)
	}
	return append(vars, constantBuiltins...)
}

// IsBuiltinVariable reports whether name is a gl_ variable of any stage.
func IsBuiltinVariable(name string) bool {
	for _, list := range [][]BuiltinVariable{vertexBuiltins, fragmentBuiltins, constantBuiltins} {
		for _, v := range list {
			if v.Name == name {
				return true
			}
		}
	}
	return false
}
