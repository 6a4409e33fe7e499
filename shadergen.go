// Package shadergen builds GLSL ES 1.00 shaders from typed Go values.
//
// Shaders are assembled with the builder package, which only lets
// well-typed expressions be written, or decoded from YAML documents with
// the document package. Both produce an ir.Shader that the glsl package
// turns into source text together with the shader's interface bindings.
//
// Example usage:
//
//	source, info, err := shadergen.BuildSource(ir.StageVertex, func(b *builder.ShaderBuilder) error {
//	    a := builder.Uniform[builder.Float](b, "a", ir.PrecisionDefault)
//	    return b.Main(func(s *builder.Scope) error {
//	        _, err := builder.Declare(s, "test", a.AddF(5).MulF(2).EqF(10))
//	        return err
//	    })
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For lower-level control, build an ir.Shader directly and use the glsl
// package:
//
//	code, info, err := glsl.Compile(shader, glsl.DefaultOptions())
package shadergen

import (
	"fmt"

	"github.com/gogpu/shadergen/builder"
	"github.com/gogpu/shadergen/document"
	"github.com/gogpu/shadergen/glsl"
	"github.com/gogpu/shadergen/ir"
)

// CompileOptions configures shader compilation.
type CompileOptions struct {
	// Validate enables IR validation before code generation
	Validate bool

	// HoistCommon extracts repeated subexpressions into temporaries
	HoistCommon bool

	// Debug adds a comment naming the shader stage to the output
	Debug bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		Validate:    true,
		HoistCommon: false,
		Debug:       false,
	}
}

func (o CompileOptions) glsl() glsl.Options {
	opts := glsl.Options{
		Validate:    o.Validate,
		HoistCommon: o.HoistCommon,
	}
	if o.Debug {
		opts.WriterFlags |= glsl.WriterFlagDebugInfo
	}
	return opts
}

// Compile generates GLSL source for shader using default options.
func Compile(shader *ir.Shader) (string, error) {
	source, _, err := CompileWithOptions(shader, DefaultOptions())
	return source, err
}

// CompileWithOptions generates GLSL source for shader.
//
// The compilation pipeline is:
//  1. Validate IR (if enabled)
//  2. Hoist common subexpressions (if enabled)
//  3. Generate GLSL text and collect interface bindings
func CompileWithOptions(shader *ir.Shader, opts CompileOptions) (string, glsl.TranslationInfo, error) {
	source, info, err := glsl.Compile(shader, opts.glsl())
	if err != nil {
		return "", glsl.TranslationInfo{}, fmt.Errorf("GLSL generation error: %w", err)
	}
	return source, info, nil
}

// Build runs build against a fresh shader builder for stage and returns
// the resulting IR.
func Build(stage ir.ShaderStage, build func(*builder.ShaderBuilder) error) (*ir.Shader, error) {
	b := builder.NewShader(stage)
	if err := build(b); err != nil {
		return nil, fmt.Errorf("build error: %w", err)
	}
	shader, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build error: %w", err)
	}
	return shader, nil
}

// BuildSource builds a shader and generates its GLSL source with default
// options.
func BuildSource(stage ir.ShaderStage, build func(*builder.ShaderBuilder) error) (string, glsl.TranslationInfo, error) {
	return BuildSourceWithOptions(stage, build, DefaultOptions())
}

// BuildSourceWithOptions builds a shader and generates its GLSL source.
func BuildSourceWithOptions(stage ir.ShaderStage, build func(*builder.ShaderBuilder) error, opts CompileOptions) (string, glsl.TranslationInfo, error) {
	shader, err := Build(stage, build)
	if err != nil {
		return "", glsl.TranslationInfo{}, err
	}
	return CompileWithOptions(shader, opts)
}

// MustBuildSource is like BuildSource but panics on error. It is meant
// for shaders fixed at compile time, typically in package-level variables.
func MustBuildSource(stage ir.ShaderStage, build func(*builder.ShaderBuilder) error) string {
	source, _, err := BuildSource(stage, build)
	if err != nil {
		panic(fmt.Sprintf("shadergen: %v", err))
	}
	return source
}

// LoadDocument reads a YAML shader document and generates its GLSL source.
func LoadDocument(path string, opts CompileOptions) (string, glsl.TranslationInfo, error) {
	shader, err := document.Load(path)
	if err != nil {
		return "", glsl.TranslationInfo{}, err
	}
	return CompileWithOptions(shader, opts)
}

// CompileDocument decodes a YAML shader document and generates its GLSL
// source.
func CompileDocument(data []byte, opts CompileOptions) (string, glsl.TranslationInfo, error) {
	shader, err := document.Decode(data)
	if err != nil {
		return "", glsl.TranslationInfo{}, err
	}
	return CompileWithOptions(shader, opts)
}

// ExtractCommonExpressions hoists repeated subexpressions of expr into
// temporaries typed against env. It returns the temporary declarations,
// in dependency order, and the rewritten expression.
func ExtractCommonExpressions(env ir.TypeEnv, expr ir.Expression) (ir.Block, ir.Expression, error) {
	x, err := ir.ExtractCommon(env, expr)
	if err != nil {
		return nil, nil, err
	}
	return x.Block(), x.Output, nil
}

// Validate validates a shader.
//
// Validation checks include:
//   - Declaration qualifiers and initializers
//   - Type consistency of initializers, assignments and conditions
//   - Name resolution against declarations and GLSL built-ins
//   - Control flow placement (break/continue inside loops)
//
// Returns a slice of validation errors. If the slice is empty, validation passed.
func Validate(shader *ir.Shader) ([]ir.ValidationError, error) {
	return ir.Validate(shader)
}
