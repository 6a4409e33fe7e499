package document

import (
	"strconv"
	"strings"

	"github.com/gogpu/shadergen/ir"
)

var typeNames = map[string]ir.Type{
	"void":        ir.VoidType{},
	"bool":        ir.BoolType{},
	"int":         ir.IntType{},
	"float":       ir.FloatType{},
	"vec2":        ir.VectorType{Size: ir.Vec2},
	"vec3":        ir.VectorType{Size: ir.Vec3},
	"vec4":        ir.VectorType{Size: ir.Vec4},
	"bvec2":       ir.BoolVectorType{Size: ir.Vec2},
	"bvec3":       ir.BoolVectorType{Size: ir.Vec3},
	"bvec4":       ir.BoolVectorType{Size: ir.Vec4},
	"ivec2":       ir.IntVectorType{Size: ir.Vec2},
	"ivec3":       ir.IntVectorType{Size: ir.Vec3},
	"ivec4":       ir.IntVectorType{Size: ir.Vec4},
	"mat2":        ir.MatrixType{Size: ir.Vec2},
	"mat3":        ir.MatrixType{Size: ir.Vec3},
	"mat4":        ir.MatrixType{Size: ir.Vec4},
	"sampler2D":   ir.SamplerType{},
	"samplerCube": ir.SamplerType{Cube: true},
}

var precisions = map[string]ir.Precision{
	"lowp":    ir.PrecisionLow,
	"mediump": ir.PrecisionMedium,
	"highp":   ir.PrecisionHigh,
}

// ParseType parses a GLSL type spelling: an optional precision qualifier,
// a type name or "struct Name", and an optional array suffix.
//
//	float
//	highp vec3
//	mediump float[4]
//	struct Light[2]
func ParseType(spelling string) (ir.Type, error) {
	fields := strings.Fields(spelling)
	p := ir.PrecisionDefault
	if len(fields) > 0 {
		if q, ok := precisions[fields[0]]; ok {
			p = q
			fields = fields[1:]
		}
	}
	if len(fields) == 0 {
		return nil, ir.Errorf(ir.ErrInvalidStatement, "type %q has no name", spelling)
	}

	name, size, err := splitArray(strings.Join(fields, " "))
	if err != nil {
		return nil, err
	}

	var t ir.Type
	if s, ok := strings.CutPrefix(name, "struct "); ok {
		s = strings.TrimSpace(s)
		if s == "" || strings.ContainsAny(s, " \t") {
			return nil, ir.Errorf(ir.ErrInvalidStatement, "malformed struct type %q", spelling)
		}
		t = ir.StructType{Name: s}
	} else if named, ok := typeNames[name]; ok {
		t = named
	} else {
		return nil, ir.Errorf(ir.ErrInvalidStatement, "unknown type %q", name)
	}

	if p != ir.PrecisionDefault {
		if !ir.IsFloating(t) {
			return nil, ir.Errorf(ir.ErrInvalidStatement, "precision %s cannot qualify %s", p, name)
		}
		t = ir.WithPrecision(t, p)
	}
	if size > 0 {
		t = ir.ArrayType{Base: t, Size: size}
	}
	return t, nil
}

// parseDeclarationType is ParseType with an optional leading invariant
// qualifier.
func parseDeclarationType(spelling string) (ir.Type, bool, error) {
	rest, invariant := strings.CutPrefix(strings.TrimSpace(spelling), "invariant ")
	t, err := ParseType(rest)
	return t, invariant, err
}

// splitArray splits "name[N]" into name and N. Names without a suffix
// have size 0.
func splitArray(s string) (string, uint32, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "]") {
		return s, 0, nil
	}
	open := strings.LastIndexByte(s, '[')
	if open < 0 {
		return "", 0, ir.Errorf(ir.ErrInvalidStatement, "malformed array type %q", s)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s[open+1:len(s)-1]), 10, 32)
	if err != nil || n == 0 {
		return "", 0, ir.Errorf(ir.ErrInvalidStatement, "invalid array size in %q", s)
	}
	name := strings.TrimSpace(s[:open])
	if strings.HasSuffix(name, "]") {
		return "", 0, ir.Errorf(ir.ErrInvalidStatement, "nested array type %q", s)
	}
	return name, uint32(n), nil
}
