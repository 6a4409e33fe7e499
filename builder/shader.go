package builder

import (
	"errors"
	"fmt"

	"github.com/gogpu/shadergen/ir"
)

// ShaderBuilder assembles a complete shader: precision statements, global
// declarations, helper functions and main.
type ShaderBuilder struct {
	stage      ir.ShaderStage
	precisions ir.Block
	globals    ir.Block
	functions  ir.Block
	global     *Scope
	main       *Scope
	errs       []error
}

// NewShader returns a builder for a shader of the given stage. The stage's
// built-in variables are visible from every scope.
func NewShader(stage ir.ShaderStage) *ShaderBuilder {
	global := NewScope(nil)
	for _, b := range ir.BuiltinVariables(stage) {
		global.vars[b.Name] = b.Type
	}
	return &ShaderBuilder{
		stage:  stage,
		global: global,
		main:   global.Child(),
	}
}

// Stage returns the shader stage.
func (b *ShaderBuilder) Stage() ir.ShaderStage { return b.stage }

// Scope returns the global scope, which resolves every uniform, attribute,
// varying and built-in declared so far.
func (b *ShaderBuilder) Scope() *Scope { return b.global }

// Precision emits a default precision statement. A nil type means float.
func (b *ShaderBuilder) Precision(p ir.Precision, t ir.Type) {
	b.precisions = append(b.precisions, ir.StmtPrecision{Precision: p, Type: t})
}

func (b *ShaderBuilder) declare(name string, t ir.Type, q ir.StorageQualifier) {
	if err := b.global.Define(name, t); err != nil {
		b.errs = append(b.errs, err)
		return
	}
	b.globals = append(b.globals, ir.StmtDeclare{Name: name, Type: t, Qualifier: q})
}

// Uniform declares a uniform and returns it as a value.
func Uniform[T Storable](b *ShaderBuilder, name string, p ir.Precision) T {
	t := ir.WithPrecision(typeOf[T](), p)
	b.declare(name, t, ir.QualifierUniform)
	return construct[T](ir.Var(name), t)
}

// Attribute declares a vertex attribute and returns it as a value.
func Attribute[T Storable](b *ShaderBuilder, name string, p ir.Precision) T {
	t := ir.WithPrecision(typeOf[T](), p)
	b.declare(name, t, ir.QualifierAttribute)
	return construct[T](ir.Var(name), t)
}

// Varying declares a varying. In a vertex shader the returned variable is
// written from main; in a fragment shader it is read through Get.
func Varying[T Storable](b *ShaderBuilder, name string, p ir.Precision) Var[T] {
	t := ir.WithPrecision(typeOf[T](), p)
	b.declare(name, t, ir.QualifierVarying)
	return Var[T]{name: name, typ: t, scope: b.main}
}

// Const declares a global constant.
func Const[T Storable](b *ShaderBuilder, name string, v T) T {
	val := any(v).(Value)
	if err := b.global.Define(name, val.Type()); err != nil {
		b.errs = append(b.errs, err)
	} else {
		b.globals = append(b.globals, ir.StmtDeclare{
			Name:        name,
			Type:        val.Type(),
			Qualifier:   ir.QualifierConst,
			Initializer: val.Origin(),
		})
	}
	return construct[T](ir.Var(name), val.Type())
}

// Array is a uniform array.
type Array[T Storable] struct {
	name string
	elem ir.Type
	size uint32
}

// UniformArray declares a uniform array of size elements.
func UniformArray[T Storable](b *ShaderBuilder, name string, p ir.Precision, size uint32) Array[T] {
	elem := ir.WithPrecision(typeOf[T](), p)
	b.declare(name, ir.ArrayType{Base: elem, Size: size}, ir.QualifierUniform)
	return Array[T]{name: name, elem: elem, size: size}
}

// Len returns the number of elements.
func (a Array[T]) Len() uint32 { return a.size }

// Index returns a[i].
func (a Array[T]) Index(i Int) T {
	return construct[T](ir.ExprIndex{Base: ir.Var(a.name), Index: i.expr}, a.elem)
}

// At returns a[i] for a constant index.
func (a Array[T]) At(i int64) T { return a.Index(I(i)) }

// Sampler2D declares a sampler2D uniform.
func (b *ShaderBuilder) Sampler2D(name string) Sampler2D {
	b.declare(name, ir.SamplerType{}, ir.QualifierUniform)
	return construct[Sampler2D](ir.Var(name), ir.SamplerType{})
}

// SamplerCube declares a samplerCube uniform.
func (b *ShaderBuilder) SamplerCube(name string) SamplerCube {
	b.declare(name, ir.SamplerType{Cube: true}, ir.QualifierUniform)
	return construct[SamplerCube](ir.Var(name), ir.SamplerType{Cube: true})
}

// Function defines a helper function. The body is built in a scope where
// the parameters are declared. Functions must be defined before main uses
// them.
func (b *ShaderBuilder) Function(name string, result ir.Type, params []ir.FunctionParameter, body func(*Scope) error) error {
	if _, dup := b.global.LookupFunction(name); dup || name == "main" {
		return ir.Errorf(ir.ErrInvalidStatement, "function %q is already defined", name)
	}
	scope := b.global.Child()
	for _, p := range params {
		if err := scope.Define(p.Name, p.Type); err != nil {
			return fmt.Errorf("function %s: %w", name, err)
		}
	}
	// Declared before the body so the function can be referenced by
	// later functions; GLSL ES forbids recursion.
	b.global.DefineFunction(name, result)
	if err := body(scope); err != nil {
		return fmt.Errorf("function %s: %w", name, err)
	}
	b.functions = append(b.functions, ir.StmtFunction{
		Name:       name,
		Parameters: params,
		Result:     result,
		Body:       scope.Statements(),
	})
	return nil
}

// Main builds the body of main. It may be called more than once; each
// call appends to the same body.
func (b *ShaderBuilder) Main(body func(*Scope) error) error {
	if err := body(b.main); err != nil {
		return fmt.Errorf("main: %w", err)
	}
	return nil
}

func (b *ShaderBuilder) builtin(name string) ir.Type {
	t, _ := b.global.Lookup(name)
	return t
}

// Position returns gl_Position bound to main.
func (b *ShaderBuilder) Position() Var[Vec4] {
	return Var[Vec4]{name: "gl_Position", typ: b.builtinOr("gl_Position", ir.VectorType{Size: ir.Vec4, Precision: ir.PrecisionHigh}), scope: b.main}
}

// PointSize returns gl_PointSize bound to main.
func (b *ShaderBuilder) PointSize() Var[Float] {
	return Var[Float]{name: "gl_PointSize", typ: b.builtinOr("gl_PointSize", ir.FloatType{Precision: ir.PrecisionMedium}), scope: b.main}
}

// FragColor returns gl_FragColor bound to main.
func (b *ShaderBuilder) FragColor() Var[Vec4] {
	return Var[Vec4]{name: "gl_FragColor", typ: b.builtinOr("gl_FragColor", ir.VectorType{Size: ir.Vec4, Precision: ir.PrecisionMedium}), scope: b.main}
}

// FragCoord returns gl_FragCoord.
func (b *ShaderBuilder) FragCoord() Vec4 {
	return construct[Vec4](ir.Var("gl_FragCoord"), b.builtinOr("gl_FragCoord", ir.VectorType{Size: ir.Vec4, Precision: ir.PrecisionMedium}))
}

// FrontFacing returns gl_FrontFacing.
func (b *ShaderBuilder) FrontFacing() Bool {
	return construct[Bool](ir.Var("gl_FrontFacing"), ir.BoolType{})
}

// PointCoord returns gl_PointCoord.
func (b *ShaderBuilder) PointCoord() Vec2 {
	return construct[Vec2](ir.Var("gl_PointCoord"), b.builtinOr("gl_PointCoord", ir.VectorType{Size: ir.Vec2, Precision: ir.PrecisionMedium}))
}

// builtinOr returns the stage's type for a built-in, or fallback when the
// stage does not have it. Validation reports the misuse.
func (b *ShaderBuilder) builtinOr(name string, fallback ir.Type) ir.Type {
	if t := b.builtin(name); t != nil {
		return t
	}
	return fallback
}

// Build returns the shader: precision statements, then global
// declarations in declaration order, then functions, then void main().
func (b *ShaderBuilder) Build() (*ir.Shader, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	stmts := make(ir.Block, 0, len(b.precisions)+len(b.globals)+len(b.functions)+1)
	stmts = append(stmts, b.precisions...)
	stmts = append(stmts, b.globals...)
	stmts = append(stmts, b.functions...)
	stmts = append(stmts, ir.StmtFunction{
		Name:   "main",
		Result: ir.VoidType{},
		Body:   b.main.Statements(),
	})
	return &ir.Shader{Version: ir.Version100, Stage: b.stage, Statements: stmts}, nil
}
