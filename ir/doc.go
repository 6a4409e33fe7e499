// Package ir defines the intermediate representation for shadergen.
//
// The IR is a direct model of GLSL ES 1.00 source:
//   - Type: comparable GLSL types; only the float family carries a precision
//   - Expression: an immutable tree of literals, variable references,
//     operators, calls, array indexing and swizzles
//   - Statement: declarations, assignments, functions, control flow and
//     preprocessor conditionals
//   - Shader: a version, a stage and the top-level statements
//
// # Analysis
//
// ResolveType infers the type of an expression from a variable
// environment. ExtractCommon rewrites an expression so that structurally
// repeated subtrees are computed once into temporaries, and HoistCommon
// applies it to every function body of a shader. Validate checks a shader
// against the GLSL ES 1.00 rules the code generator relies on.
//
// # Pipeline
//
//	builder (typed values) → IR → glsl.Compile → GLSL ES 1.00 source
package ir
