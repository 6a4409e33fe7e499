package builder

import (
	"fmt"

	"github.com/gogpu/shadergen/ir"
)

// Scope collects the statements of one block together with the variables
// declared in it. A child scope sees its parent's variables and may shadow
// them, but never adds to the parent.
//
// A Scope is owned by a single construction pass and is not safe for
// concurrent use.
type Scope struct {
	parent    *Scope
	vars      map[string]ir.Type
	functions map[string]ir.Type
	body      ir.Block

	// open is set while a nested block of s is being built. Statements
	// emitted into s meanwhile are dropped and reported as misplaced.
	open      bool
	misplaced error
}

// NewScope returns an empty scope nested in parent, which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: make(map[string]ir.Type)}
}

// Child returns a new scope nested in s.
func (s *Scope) Child() *Scope {
	return NewScope(s)
}

// Lookup implements ir.TypeEnv.
func (s *Scope) Lookup(name string) (ir.Type, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// LookupFunction implements ir.FunctionEnv.
func (s *Scope) LookupFunction(name string) (ir.Type, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.functions[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Define records a variable in s without emitting a statement. It fails
// when s already declares name.
func (s *Scope) Define(name string, t ir.Type) error {
	if _, dup := s.vars[name]; dup {
		return ir.Errorf(ir.ErrInvalidStatement, "%q is already declared in this scope", name)
	}
	s.vars[name] = t
	return nil
}

// DefineFunction records a user function and its result type.
func (s *Scope) DefineFunction(name string, result ir.Type) {
	if s.functions == nil {
		s.functions = make(map[string]ir.Type)
	}
	s.functions[name] = result
}

// Emit appends statements to the block. While a nested block of s is
// being built, the statements would land before the enclosing control
// statement, so they are rejected and the error surfaces from the call
// that opened the nested block.
func (s *Scope) Emit(stmts ...ir.Statement) {
	if s.open {
		if s.misplaced == nil && len(stmts) > 0 {
			s.misplaced = ir.Errorf(ir.ErrInvalidStatement,
				"%T emitted into an enclosing scope while a nested block is open; bind variables with In", stmts[0])
		}
		return
	}
	s.body = append(s.body, stmts...)
}

// enter builds inner by running body while s is marked open.
func (s *Scope) enter(inner *Scope, body func(*Scope) error) error {
	s.open = true
	err := body(inner)
	s.open = false
	misplaced := s.misplaced
	s.misplaced = nil
	if err != nil {
		return err
	}
	return misplaced
}

// Statements returns a copy of the statements emitted so far.
func (s *Scope) Statements() ir.Block {
	return append(ir.Block(nil), s.body...)
}

// hoist runs common subexpression extraction on expr, declaring and
// emitting the temporaries, and returns the rewritten expression.
func (s *Scope) hoist(expr ir.Expression) (ir.Expression, error) {
	x, err := ir.ExtractCommon(s, expr)
	if err != nil {
		return nil, err
	}
	for _, d := range x.Statements {
		if err := s.Define(d.Name, d.Type); err != nil {
			return nil, err
		}
		s.Emit(d)
	}
	return x.Output, nil
}

// If emits "if (cond) { ... }", building the body in a child scope.
func (s *Scope) If(cond Bool, then func(*Scope) error) error {
	return s.IfElse(cond, then, nil)
}

// IfElse emits an if statement with an optional else branch.
func (s *Scope) IfElse(cond Bool, then, otherwise func(*Scope) error) error {
	c, err := s.hoist(cond.expr)
	if err != nil {
		return fmt.Errorf("if condition: %w", err)
	}
	accept, err := s.block(then)
	if err != nil {
		return err
	}
	stmt := ir.StmtIf{Condition: c, Accept: accept}
	if otherwise != nil {
		reject, err := s.block(otherwise)
		if err != nil {
			return err
		}
		stmt.Reject = reject
	}
	s.Emit(stmt)
	return nil
}

// For emits "for (int name = from; name < to; name++) { ... }". The body
// receives the loop counter.
func (s *Scope) For(name string, from, to int64, body func(*Scope, Int) error) error {
	inner := s.Child()
	if err := inner.Define(name, ir.IntType{}); err != nil {
		return err
	}
	counter := Int{base{expr: ir.Var(name), typ: ir.IntType{}}}
	err := s.enter(inner, func(inner *Scope) error { return body(inner, counter) })
	if err != nil {
		return fmt.Errorf("for %s: %w", name, err)
	}
	s.Emit(ir.StmtFor{
		Init:      ir.StmtDeclare{Name: name, Type: ir.IntType{}, Initializer: ir.Int(from)},
		Condition: ir.Binary(ir.BinaryLess, ir.Var(name), ir.Int(to)),
		Increment: ir.StmtAssign{Name: name, Op: ir.AssignIncrement},
		Body:      inner.body,
	})
	return nil
}

// Block emits a nested "{ ... }" block.
func (s *Scope) Block(body func(*Scope) error) error {
	b, err := s.block(body)
	if err != nil {
		return err
	}
	s.Emit(ir.StmtBlock{Body: b})
	return nil
}

func (s *Scope) block(body func(*Scope) error) (ir.Block, error) {
	inner := s.Child()
	if body != nil {
		if err := s.enter(inner, body); err != nil {
			return nil, err
		}
	}
	if inner.body == nil {
		return ir.Block{}, nil
	}
	return inner.body, nil
}

// Return emits "return v;". A nil v emits a bare return.
func (s *Scope) Return(v Value) error {
	if v == nil {
		s.Emit(ir.StmtControl{Kind: ir.ControlReturn})
		return nil
	}
	e, err := s.hoist(v.Origin())
	if err != nil {
		return fmt.Errorf("return value: %w", err)
	}
	s.Emit(ir.StmtControl{Kind: ir.ControlReturn, Value: e})
	return nil
}

// Discard emits "discard;".
func (s *Scope) Discard() { s.Emit(ir.StmtControl{Kind: ir.ControlDiscard}) }

// Break emits "break;".
func (s *Scope) Break() { s.Emit(ir.StmtControl{Kind: ir.ControlBreak}) }

// Continue emits "continue;".
func (s *Scope) Continue() { s.Emit(ir.StmtControl{Kind: ir.ControlContinue}) }
