package builder

import (
	"fmt"

	"github.com/gogpu/shadergen/ir"
)

// swizzle validates axes against the receiver and builds the selection.
func swizzle(v base, axes []Axis) (ir.Expression, ir.Type, error) {
	size := v.components()
	if len(axes) == 0 || len(axes) > 4 {
		return nil, nil, ir.Errorf(ir.ErrInvalidSwizzleIndex, "swizzle selects %d components", len(axes))
	}
	for _, a := range axes {
		if int(a) >= size {
			return nil, nil, ir.Errorf(ir.ErrInvalidSwizzleIndex, "axis %d out of range for %s", uint8(a), v.TypeName())
		}
	}
	scalar, _ := ir.ScalarOf(v.typ)
	t, _ := ir.VectorOf(scalar, len(axes))
	pattern := append([]Axis(nil), axes...)
	return ir.ExprSwizzle{Vector: v.expr, Pattern: pattern}, t, nil
}

// pickAs swizzles into a statically known result type.
func pickAs[T any](v base, axes ...Axis) (T, error) {
	expr, t, err := swizzle(v, axes)
	if err != nil {
		var zero T
		return zero, err
	}
	return construct[T](expr, t), nil
}

// mustPick is pickAs for accessors whose axes are always in range.
func mustPick[T any](v base, axes ...Axis) T {
	out, err := pickAs[T](v, axes...)
	if err != nil {
		panic(fmt.Sprintf("builder: %v", err))
	}
	return out
}

func floatValueOf(expr ir.Expression, t ir.Type) FloatValue {
	switch ir.Components(t) {
	case 1:
		return construct[Float](expr, t)
	case 2:
		return construct[Vec2](expr, t)
	case 3:
		return construct[Vec3](expr, t)
	default:
		return construct[Vec4](expr, t)
	}
}

func boolValueOf(expr ir.Expression, t ir.Type) BoolValue {
	switch ir.Components(t) {
	case 1:
		return construct[Bool](expr, t)
	case 2:
		return construct[BVec2](expr, t)
	case 3:
		return construct[BVec3](expr, t)
	default:
		return construct[BVec4](expr, t)
	}
}

// Concat joins floats and float vectors into one vector, emitting a
// single vecN constructor. A lone part is returned unchanged. More than
// four components in total fail with ErrInvalidSwizzleIndex before any
// expression is built.
func Concat(parts ...FloatValue) (FloatValue, error) {
	args, n, err := concatParts(parts)
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	t := ir.VectorType{Size: ir.VectorSize(n), Precision: ir.PrecisionOf(parts[0].Type())}
	return floatValueOf(ir.Call(ir.TypeName(t), args...), t), nil
}

// ConcatBool is Concat for bools and boolean vectors.
func ConcatBool(parts ...BoolValue) (BoolValue, error) {
	values := make([]Value, len(parts))
	for i, p := range parts {
		values[i] = p
	}
	args, n, err := concatParts(values)
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	t := ir.BoolVectorType{Size: ir.VectorSize(n)}
	return boolValueOf(ir.Call(ir.TypeName(t), args...), t), nil
}

func concatParts[V Value](parts []V) ([]ir.Expression, int, error) {
	if len(parts) == 0 {
		return nil, 0, ir.NewError(ir.ErrInvalidSwizzleIndex, "concat of no values")
	}
	n := 0
	for _, p := range parts {
		n += ir.Components(p.Type())
	}
	if n > 4 {
		return nil, 0, ir.Errorf(ir.ErrInvalidSwizzleIndex, "concat yields %d components, at most 4 allowed", n)
	}
	args := make([]ir.Expression, len(parts))
	for i, p := range parts {
		args[i] = p.Origin()
	}
	return args, n, nil
}

// Vec2Of builds a vec2 from parts totalling exactly two components.
func Vec2Of(parts ...FloatValue) (Vec2, error) { return vecOf[Vec2](2, parts) }

// Vec3Of builds a vec3 from parts totalling exactly three components.
func Vec3Of(parts ...FloatValue) (Vec3, error) { return vecOf[Vec3](3, parts) }

// Vec4Of builds a vec4 from parts totalling exactly four components.
func Vec4Of(parts ...FloatValue) (Vec4, error) { return vecOf[Vec4](4, parts) }

func vecOf[T any](size int, parts []FloatValue) (T, error) {
	var zero T
	args, n, err := concatParts(parts)
	if err != nil {
		return zero, err
	}
	if n != size {
		return zero, ir.Errorf(ir.ErrInvalidSwizzleIndex, "vec%d needs %d components, got %d", size, size, n)
	}
	t := ir.VectorType{Size: ir.VectorSize(size), Precision: ir.PrecisionOf(parts[0].Type())}
	return construct[T](ir.Call(ir.TypeName(t), args...), t), nil
}
