// Package builder constructs shader IR through typed Go values.
//
// Each GLSL type has a builder type (Float, Vec2, Vec3, Vec4, Int, Bool,
// BVec2, BVec3, BVec4, Sampler2D, SamplerCube). A builder wraps one
// ir.Expression and every operation returns a new builder of the GLSL
// result type, so a chain that compiles in Go always resolves to the type
// it claims:
//
//	b := builder.NewShader(ir.StageVertex)
//	a := builder.Uniform[builder.Float](b, "a", ir.PrecisionDefault)
//	err := b.Main(func(s *builder.Scope) error {
//		_, err := builder.Declare(s, "test", a.AddF(5).MulF(2).EqF(10))
//		return err
//	})
//
// Statements are collected in a Scope. Var handles emit assignments into
// their scope and hoist repeated subexpressions into temporaries first.
// Operations whose validity depends on run-time arguments, such as Pick
// and Concat, return an error instead of building an invalid expression.
package builder
