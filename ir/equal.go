package ir

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// Equal reports whether a and b are structurally equal: the same variant
// with recursively equal contents. Float literals compare by bit pattern.
func Equal(a, b Expression) bool {
	switch a := a.(type) {
	case Literal:
		b, ok := b.(Literal)
		return ok && literalEqual(a.Value, b.Value)
	case ExprVariable:
		b, ok := b.(ExprVariable)
		return ok && a.Name == b.Name
	case ExprUnary:
		b, ok := b.(ExprUnary)
		return ok && a.Op == b.Op && Equal(a.Operand, b.Operand)
	case ExprBinary:
		b, ok := b.(ExprBinary)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case ExprCall:
		b, ok := b.(ExprCall)
		if !ok || a.Function != b.Function || len(a.Arguments) != len(b.Arguments) {
			return false
		}
		for i := range a.Arguments {
			if !Equal(a.Arguments[i], b.Arguments[i]) {
				return false
			}
		}
		return true
	case ExprIndex:
		b, ok := b.(ExprIndex)
		return ok && Equal(a.Base, b.Base) && Equal(a.Index, b.Index)
	case ExprSwizzle:
		b, ok := b.(ExprSwizzle)
		if !ok || len(a.Pattern) != len(b.Pattern) {
			return false
		}
		for i := range a.Pattern {
			if a.Pattern[i] != b.Pattern[i] {
				return false
			}
		}
		return Equal(a.Vector, b.Vector)
	case nil:
		return b == nil
	}
	return false
}

func literalEqual(a, b LiteralValue) bool {
	switch a := a.(type) {
	case LiteralFloat:
		b, ok := b.(LiteralFloat)
		return ok && math.Float64bits(float64(a)) == math.Float64bits(float64(b))
	case LiteralInt:
		b, ok := b.(LiteralInt)
		return ok && a == b
	case LiteralBool:
		b, ok := b.(LiteralBool)
		return ok && a == b
	}
	return false
}

// Node tags mixed into structural hashes.
const (
	tagLiteralInt byte = iota + 1
	tagLiteralFloat
	tagLiteralBool
	tagVariable
	tagUnary
	tagBinary
	tagCall
	tagIndex
	tagSwizzle
)

// Hash returns a structural hash of e. Expressions that are Equal always
// hash to the same value.
func Hash(e Expression) uint64 {
	children := Children(e)
	var hashes []uint64
	if len(children) > 0 {
		hashes = make([]uint64, len(children))
		for i, c := range children {
			hashes[i] = Hash(c)
		}
	}
	return nodeHash(e, hashes)
}

// nodeHash hashes a single node given the hashes of its children, so that a
// bottom-up walk hashes every subtree in linear time.
func nodeHash(e Expression, children []uint64) uint64 {
	buf := make([]byte, 0, 16+8*len(children))
	switch e := e.(type) {
	case Literal:
		switch v := e.Value.(type) {
		case LiteralInt:
			buf = append(buf, tagLiteralInt)
			buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
		case LiteralFloat:
			buf = append(buf, tagLiteralFloat)
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(v)))
		case LiteralBool:
			buf = append(buf, tagLiteralBool)
			if v {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		}
	case ExprVariable:
		buf = append(buf, tagVariable)
		buf = append(buf, e.Name...)
	case ExprUnary:
		buf = append(buf, tagUnary, byte(e.Op))
	case ExprBinary:
		buf = append(buf, tagBinary, byte(e.Op))
	case ExprCall:
		buf = append(buf, tagCall)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(e.Function)))
		buf = append(buf, e.Function...)
	case ExprIndex:
		buf = append(buf, tagIndex)
	case ExprSwizzle:
		buf = append(buf, tagSwizzle, byte(len(e.Pattern)))
		for _, c := range e.Pattern {
			buf = append(buf, byte(c))
		}
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(children)))
	for _, h := range children {
		buf = binary.LittleEndian.AppendUint64(buf, h)
	}
	return xxh3.Hash(buf)
}
