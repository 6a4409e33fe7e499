package document

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/shadergen/ir"
)

// statement is the YAML form of an ir.Statement. A mapping selects its
// kind with exactly one tag key; the bare scalars break, continue, discard
// and return are accepted as shorthand.
type statement struct {
	node ir.Statement
}

type statementFields struct {
	Uniform   *string     `yaml:"uniform"`
	Attribute *string     `yaml:"attribute"`
	Varying   *string     `yaml:"varying"`
	Const     *string     `yaml:"const"`
	Declare   *string     `yaml:"declare"`
	Type      string      `yaml:"type"`
	Init      *expression `yaml:"init"`

	Assign *string     `yaml:"assign"`
	Op     string      `yaml:"op"`
	Value  *expression `yaml:"value"`

	Function *string     `yaml:"function"`
	Result   string      `yaml:"result"`
	Params   []parameter `yaml:"params"`
	Body     []statement `yaml:"body"`

	Precision *string `yaml:"precision"`
	Invariant *string `yaml:"invariant"`

	Struct  *string  `yaml:"struct"`
	Members []member `yaml:"members"`

	If    *expression `yaml:"if"`
	Ifdef *string     `yaml:"ifdef"`
	Then  []statement `yaml:"then"`
	Else  []statement `yaml:"else"`

	For   *loop       `yaml:"for"`
	While *expression `yaml:"while"`
	Do    bool        `yaml:"do"`

	Scope  []statement `yaml:"scope"`
	Return *expression `yaml:"return"`
}

type parameter struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Direction string `yaml:"dir"`
}

type member struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type loop struct {
	Init statement  `yaml:"init"`
	Cond expression `yaml:"cond"`
	Step statement  `yaml:"step"`
}

var statementKinds = []string{
	"uniform", "attribute", "varying", "const", "declare",
	"assign", "function", "precision", "invariant", "struct",
	"if", "ifdef", "for", "while", "scope",
	"return", "break", "continue", "discard",
}

var statementKeys = keySet(append([]string{
	"type", "init", "op", "value", "result", "params", "body",
	"members", "then", "else", "do",
}, statementKinds...))

var controlKinds = map[string]ir.ControlKind{
	"return":   ir.ControlReturn,
	"break":    ir.ControlBreak,
	"continue": ir.ControlContinue,
	"discard":  ir.ControlDiscard,
}

var qualifiers = map[string]ir.StorageQualifier{
	"uniform":   ir.QualifierUniform,
	"attribute": ir.QualifierAttribute,
	"varying":   ir.QualifierVarying,
	"const":     ir.QualifierConst,
	"declare":   ir.QualifierNone,
}

var directions = map[string]ir.ParameterDirection{
	"":      ir.DirectionNone,
	"in":    ir.DirectionIn,
	"out":   ir.DirectionOut,
	"inout": ir.DirectionInOut,
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *statement) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		kind, ok := controlKinds[value.Value]
		if !ok {
			return atLine(value, ir.Errorf(ir.ErrInvalidStatement, "unknown statement %q", value.Value))
		}
		s.node = ir.StmtControl{Kind: kind}
		return nil
	}

	kind, err := kindOf(value, statementKinds, statementKeys, ir.ErrInvalidStatement)
	if err != nil {
		return err
	}
	var f statementFields
	if err := value.Decode(&f); err != nil {
		return err
	}
	stmt, err := f.build(kind)
	if err != nil {
		return atLine(value, err)
	}
	s.node = stmt
	return nil
}

func (f *statementFields) build(kind string) (ir.Statement, error) {
	switch kind {
	case "uniform", "attribute", "varying", "const", "declare":
		return f.declaration(kind)

	case "assign":
		op := ir.AssignSet
		if f.Op != "" {
			var ok bool
			if op, ok = ir.ParseAssignOperator(f.Op); !ok {
				return nil, ir.Errorf(ir.ErrUnknownOperator, "unknown assignment operator %q", f.Op)
			}
		}
		stmt := ir.StmtAssign{Name: deref(f.Assign), Op: op}
		if f.Value != nil {
			stmt.Value = f.Value.node
		}
		if stmt.Name == "" {
			return nil, ir.NewError(ir.ErrInvalidStatement, "assignment without a target")
		}
		if op.HasValue() != (stmt.Value != nil) {
			return nil, ir.Errorf(ir.ErrInvalidStatement, "operator %s on %q: value mismatch", op, stmt.Name)
		}
		return stmt, nil

	case "function":
		return f.function()

	case "precision":
		p, ok := precisions[deref(f.Precision)]
		if !ok {
			return nil, ir.Errorf(ir.ErrInvalidStatement, "unknown precision %q", deref(f.Precision))
		}
		stmt := ir.StmtPrecision{Precision: p}
		if f.Type != "" {
			t, err := ParseType(f.Type)
			if err != nil {
				return nil, err
			}
			stmt.Type = t
		}
		return stmt, nil

	case "invariant":
		if deref(f.Invariant) == "" {
			return nil, ir.NewError(ir.ErrInvalidStatement, "invariant without a name")
		}
		return ir.StmtInvariant{Name: *f.Invariant}, nil

	case "struct":
		members := make([]ir.StructMember, len(f.Members))
		for i, m := range f.Members {
			t, err := ParseType(m.Type)
			if err != nil {
				return nil, fmt.Errorf("struct %s member %s: %w", deref(f.Struct), m.Name, err)
			}
			members[i] = ir.StructMember{Name: m.Name, Type: t}
		}
		return ir.StmtStruct{Name: deref(f.Struct), Members: members}, nil

	case "if":
		cond, err := required(f.If, "if")
		if err != nil {
			return nil, err
		}
		return ir.StmtIf{Condition: cond, Accept: block(f.Then), Reject: optionalBlock(f.Else)}, nil

	case "ifdef":
		return ir.StmtIfdef{Identifier: deref(f.Ifdef), Accept: block(f.Then), Reject: optionalBlock(f.Else)}, nil

	case "for":
		return f.forLoop()

	case "while":
		cond, err := required(f.While, "while")
		if err != nil {
			return nil, err
		}
		return ir.StmtWhile{Condition: cond, Body: block(f.Body), DoWhile: f.Do}, nil

	case "scope":
		return ir.StmtBlock{Body: block(f.Scope)}, nil

	case "return":
		stmt := ir.StmtControl{Kind: ir.ControlReturn}
		if f.Return != nil {
			stmt.Value = f.Return.node
		}
		return stmt, nil

	case "break", "continue", "discard":
		return ir.StmtControl{Kind: controlKinds[kind]}, nil
	}
	return nil, ir.Errorf(ir.ErrInvalidStatement, "unknown statement kind %q", kind)
}

func (f *statementFields) declaration(kind string) (ir.Statement, error) {
	name := deref(f.Uniform)
	switch kind {
	case "attribute":
		name = deref(f.Attribute)
	case "varying":
		name = deref(f.Varying)
	case "const":
		name = deref(f.Const)
	case "declare":
		name = deref(f.Declare)
	}
	if f.Type == "" {
		return nil, ir.Errorf(ir.ErrInvalidStatement, "%s %q has no type", kind, name)
	}
	t, invariant, err := parseDeclarationType(f.Type)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", kind, name, err)
	}
	decl := ir.StmtDeclare{Name: name, Type: t, Qualifier: qualifiers[kind], Invariant: invariant}
	if f.Init != nil {
		decl.Initializer = f.Init.node
	}
	return decl, nil
}

func (f *statementFields) function() (ir.Statement, error) {
	name := deref(f.Function)
	fn := ir.StmtFunction{Name: name, Result: ir.VoidType{}, Body: block(f.Body)}
	if f.Result != "" {
		t, err := ParseType(f.Result)
		if err != nil {
			return nil, fmt.Errorf("function %s result: %w", name, err)
		}
		fn.Result = t
	}
	for _, p := range f.Params {
		t, err := ParseType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("function %s parameter %s: %w", name, p.Name, err)
		}
		dir, ok := directions[p.Direction]
		if !ok {
			return nil, ir.Errorf(ir.ErrInvalidStatement, "function %s parameter %s: unknown direction %q", name, p.Name, p.Direction)
		}
		fn.Parameters = append(fn.Parameters, ir.FunctionParameter{Name: p.Name, Type: t, Direction: dir})
	}
	return fn, nil
}

func (f *statementFields) forLoop() (ir.Statement, error) {
	if f.For == nil {
		return nil, ir.NewError(ir.ErrInvalidStatement, "for needs init, cond and step")
	}
	init, ok := f.For.Init.node.(ir.StmtDeclare)
	if !ok {
		return nil, ir.NewError(ir.ErrInvalidStatement, "for init must be a declaration")
	}
	step, ok := f.For.Step.node.(ir.StmtAssign)
	if !ok {
		return nil, ir.NewError(ir.ErrInvalidStatement, "for step must be an assignment")
	}
	if f.For.Cond.node == nil {
		return nil, ir.NewError(ir.ErrInvalidStatement, "for without a condition")
	}
	return ir.StmtFor{Init: init, Condition: f.For.Cond.node, Increment: step, Body: block(f.Body)}, nil
}

func block(stmts []statement) ir.Block {
	b := make(ir.Block, len(stmts))
	for i, s := range stmts {
		b[i] = s.node
	}
	return b
}

// optionalBlock keeps an absent else branch nil.
func optionalBlock(stmts []statement) ir.Block {
	if stmts == nil {
		return nil
	}
	return block(stmts)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
