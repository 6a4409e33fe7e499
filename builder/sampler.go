package builder

import "github.com/gogpu/shadergen/ir"

func texture(name string, args ...ir.Expression) Vec4 {
	return construct[Vec4](ir.Call(name, args...), ir.VectorType{Size: ir.Vec4})
}

// Sampler2D is a GLSL sampler2D uniform.
type Sampler2D struct {
	base
}

// Texture2D samples the texture at uv.
func (s Sampler2D) Texture2D(uv Vec2) Vec4 { return texture("texture2D", s.expr, uv.expr) }

// Texture2DBias samples the texture at uv with a level-of-detail bias.
// Only valid in fragment shaders.
func (s Sampler2D) Texture2DBias(uv Vec2, bias Float) Vec4 {
	return texture("texture2D", s.expr, uv.expr, bias.expr)
}

// Texture2DProj samples with projective coordinates, dividing uv.xy by uv.z.
func (s Sampler2D) Texture2DProj(uv Vec3) Vec4 { return texture("texture2DProj", s.expr, uv.expr) }

// Texture2DProj4 samples with projective coordinates, dividing uv.xy by uv.w.
func (s Sampler2D) Texture2DProj4(uv Vec4) Vec4 { return texture("texture2DProj", s.expr, uv.expr) }

// Texture2DLod samples an explicit level of detail. Only valid in vertex
// shaders.
func (s Sampler2D) Texture2DLod(uv Vec2, lod Float) Vec4 {
	return texture("texture2DLod", s.expr, uv.expr, lod.expr)
}

// SamplerCube is a GLSL samplerCube uniform.
type SamplerCube struct {
	base
}

// TextureCube samples the cube map in direction dir.
func (s SamplerCube) TextureCube(dir Vec3) Vec4 { return texture("textureCube", s.expr, dir.expr) }

// TextureCubeBias samples the cube map with a level-of-detail bias.
func (s SamplerCube) TextureCubeBias(dir Vec3, bias Float) Vec4 {
	return texture("textureCube", s.expr, dir.expr, bias.expr)
}

// TextureCubeLod samples an explicit level of detail. Only valid in vertex
// shaders.
func (s SamplerCube) TextureCubeLod(dir Vec3, lod Float) Vec4 {
	return texture("textureCubeLod", s.expr, dir.expr, lod.expr)
}
