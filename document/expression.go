package document

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/shadergen/ir"
)

// expression is the YAML form of an ir.Expression.
//
// A plain scalar is a literal or a variable reference, by YAML tag:
//
//	3       int literal
//	3.0     float literal
//	true    bool literal
//	color   variable reference
//
// A mapping selects its kind with exactly one of var, int, float, bool,
// op, unary, call, index or swizzle.
type expression struct {
	node ir.Expression
}

type expressionFields struct {
	Var     *string      `yaml:"var"`
	Int     yaml.Node    `yaml:"int"`
	Float   *float64     `yaml:"float"`
	Bool    *bool        `yaml:"bool"`
	Op      string       `yaml:"op"`
	Left    *expression  `yaml:"left"`
	Right   *expression  `yaml:"right"`
	Unary   string       `yaml:"unary"`
	Operand *expression  `yaml:"operand"`
	Call    string       `yaml:"call"`
	Args    []expression `yaml:"args"`
	Index   *expression  `yaml:"index"`
	Swizzle string       `yaml:"swizzle"`
	Of      *expression  `yaml:"of"`
}

var expressionKinds = []string{"var", "int", "float", "bool", "op", "unary", "call", "index", "swizzle"}

var expressionKeys = keySet(append([]string{"left", "right", "operand", "args", "of"}, expressionKinds...))

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *expression) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		x, err := scalarExpression(value)
		if err != nil {
			return err
		}
		e.node = x
		return nil
	}

	kind, err := kindOf(value, expressionKinds, expressionKeys, ir.ErrInvalidExpression)
	if err != nil {
		return err
	}
	var f expressionFields
	if err := value.Decode(&f); err != nil {
		return err
	}
	x, err := f.build(kind)
	if err != nil {
		return atLine(value, err)
	}
	e.node = x
	return nil
}

func scalarExpression(value *yaml.Node) (ir.Expression, error) {
	switch value.ShortTag() {
	case "!!int":
		var v int64
		if err := value.Decode(&v); err != nil {
			return nil, atLine(value, ir.Errorf(ir.ErrInvalidIntegerLiteral, "%s is out of range", value.Value))
		}
		return ir.Int(v), nil
	case "!!float":
		var v float64
		if err := value.Decode(&v); err != nil {
			return nil, err
		}
		return ir.Float(v), nil
	case "!!bool":
		var v bool
		if err := value.Decode(&v); err != nil {
			return nil, err
		}
		return ir.Bool(v), nil
	case "!!str":
		if value.Value == "" {
			return nil, atLine(value, ir.NewError(ir.ErrInvalidExpression, "empty variable name"))
		}
		return ir.Var(value.Value), nil
	}
	return nil, atLine(value, ir.Errorf(ir.ErrInvalidExpression, "unsupported scalar %s %q", value.ShortTag(), value.Value))
}

func (f *expressionFields) build(kind string) (ir.Expression, error) {
	switch kind {
	case "var":
		if f.Var == nil || *f.Var == "" {
			return nil, ir.NewError(ir.ErrInvalidExpression, "empty variable name")
		}
		return ir.Var(*f.Var), nil

	case "int":
		if f.Int.Kind == 0 {
			return nil, ir.NewError(ir.ErrInvalidIntegerLiteral, "missing int value")
		}
		return intValue(&f.Int)

	case "float":
		if f.Float == nil {
			return nil, ir.NewError(ir.ErrInvalidExpression, "missing float value")
		}
		return ir.Float(*f.Float), nil

	case "bool":
		if f.Bool == nil {
			return nil, ir.NewError(ir.ErrInvalidExpression, "missing bool value")
		}
		return ir.Bool(*f.Bool), nil

	case "op":
		op, ok := ir.ParseBinaryOperator(f.Op)
		if !ok {
			return nil, ir.Errorf(ir.ErrUnknownOperator, "unknown binary operator %q", f.Op)
		}
		left, err := required(f.Left, "left")
		if err != nil {
			return nil, err
		}
		right, err := required(f.Right, "right")
		if err != nil {
			return nil, err
		}
		return ir.Binary(op, left, right), nil

	case "unary":
		op, ok := unaryOperators[f.Unary]
		if !ok {
			return nil, ir.Errorf(ir.ErrUnknownOperator, "unknown unary operator %q", f.Unary)
		}
		operand, err := required(f.Operand, "operand")
		if err != nil {
			return nil, err
		}
		return ir.Unary(op, operand), nil

	case "call":
		if f.Call == "" {
			return nil, ir.NewError(ir.ErrInvalidExpression, "call without a function name")
		}
		args := make([]ir.Expression, len(f.Args))
		for i, a := range f.Args {
			if a.node == nil {
				return nil, ir.Errorf(ir.ErrInvalidExpression, "%s argument %d is null", f.Call, i)
			}
			args[i] = a.node
		}
		return ir.Call(f.Call, args...), nil

	case "index":
		index, err := required(f.Index, "index")
		if err != nil {
			return nil, err
		}
		base, err := required(f.Of, "of")
		if err != nil {
			return nil, err
		}
		return ir.ExprIndex{Base: base, Index: index}, nil

	case "swizzle":
		pattern, err := ParseSwizzle(f.Swizzle)
		if err != nil {
			return nil, err
		}
		vector, err := required(f.Of, "of")
		if err != nil {
			return nil, err
		}
		return ir.ExprSwizzle{Vector: vector, Pattern: pattern}, nil
	}
	return nil, ir.Errorf(ir.ErrInvalidExpression, "unknown expression kind %q", kind)
}

// intValue decodes the value of an int mapping. Integer scalars are read
// exactly; float scalars must be integral.
func intValue(n *yaml.Node) (ir.Literal, error) {
	switch n.ShortTag() {
	case "!!int":
		var v int64
		if err := n.Decode(&v); err != nil {
			return ir.Literal{}, ir.Errorf(ir.ErrInvalidIntegerLiteral, "%s is out of range", n.Value)
		}
		return ir.Int(v), nil
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return ir.Literal{}, ir.Errorf(ir.ErrInvalidIntegerLiteral, "%s is not a number", n.Value)
		}
		return ir.IntLiteral(v)
	}
	return ir.Literal{}, ir.Errorf(ir.ErrInvalidIntegerLiteral, "int value %q is not a number", n.Value)
}

func required(e *expression, key string) (ir.Expression, error) {
	if e == nil || e.node == nil {
		return nil, ir.Errorf(ir.ErrInvalidExpression, "missing %q", key)
	}
	return e.node, nil
}

var unaryOperators = map[string]ir.UnaryOperator{
	"+":      ir.UnaryPlus,
	"-":      ir.UnaryNegate,
	"!":      ir.UnaryLogicalNot,
	"~":      ir.UnaryBitwiseNot,
	"++":     ir.UnaryPreIncrement,
	"--":     ir.UnaryPreDecrement,
	"post++": ir.UnaryPostIncrement,
	"post--": ir.UnaryPostDecrement,
}

var swizzleSets = [...]string{"xyzw", "rgba", "stpq"}

// ParseSwizzle parses a component selector such as "xyz" or "rgba". All
// letters must come from the same set.
func ParseSwizzle(s string) ([]ir.SwizzleComponent, error) {
	if len(s) == 0 || len(s) > 4 {
		return nil, ir.Errorf(ir.ErrInvalidSwizzleIndex, "swizzle %q must select 1 to 4 components", s)
	}
	for _, set := range swizzleSets {
		if !strings.ContainsRune(set, rune(s[0])) {
			continue
		}
		pattern := make([]ir.SwizzleComponent, len(s))
		for i := 0; i < len(s); i++ {
			c := strings.IndexByte(set, s[i])
			if c < 0 {
				return nil, ir.Errorf(ir.ErrInvalidSwizzleIndex, "swizzle %q mixes component sets", s)
			}
			pattern[i] = ir.SwizzleComponent(c)
		}
		return pattern, nil
	}
	return nil, ir.Errorf(ir.ErrInvalidSwizzleIndex, "invalid swizzle %q", s)
}

// kindOf returns the single key of a mapping that names its kind. Keys
// outside allowed are rejected.
func kindOf(value *yaml.Node, kinds []string, allowed map[string]bool, errKind ir.ErrorKind) (string, error) {
	if value.Kind != yaml.MappingNode {
		return "", atLine(value, ir.Errorf(errKind, "expected a mapping, found %s", nodeKind(value)))
	}
	var kind string
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		if !allowed[key] {
			return "", atLine(value.Content[i], ir.Errorf(errKind, "unknown key %q", key))
		}
		for _, k := range kinds {
			if key != k {
				continue
			}
			if kind != "" {
				return "", atLine(value.Content[i], ir.Errorf(errKind, "both %q and %q given", kind, key))
			}
			kind = key
		}
	}
	if kind == "" {
		return "", atLine(value, ir.Errorf(errKind, "mapping needs one of %s", strings.Join(kinds, ", ")))
	}
	return kind, nil
}

func keySet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return fmt.Sprintf("scalar %q", n.Value)
	case yaml.AliasNode:
		return "an alias"
	}
	return "a mapping"
}

// atLine prefixes err with the node's source line.
func atLine(n *yaml.Node, err error) error {
	return fmt.Errorf("line %d: %w", n.Line, err)
}
