package builder

import (
	"fmt"

	"github.com/gogpu/shadergen/ir"
)

// Var is a declared variable bound to the scope its assignments are
// emitted into. Reading goes through Get, which returns a pure value;
// the mutators append statements to the scope.
type Var[T Storable] struct {
	name  string
	typ   ir.Type
	scope *Scope
}

// Declare emits "type name = v;" into s and returns a handle to the new
// variable. Repeated subexpressions of v are hoisted first.
func Declare[T Storable](s *Scope, name string, v T) (Var[T], error) {
	val := any(v).(Value)
	init, err := s.hoist(val.Origin())
	if err != nil {
		return Var[T]{}, fmt.Errorf("declare %s: %w", name, err)
	}
	if err := s.Define(name, val.Type()); err != nil {
		return Var[T]{}, err
	}
	s.Emit(ir.StmtDeclare{Name: name, Type: val.Type(), Initializer: init})
	return Var[T]{name: name, typ: val.Type(), scope: s}, nil
}

// Temp declares v under a name derived from its structural hash, the
// same naming used for hoisted temporaries.
func Temp[T Storable](s *Scope, v T) (Var[T], error) {
	h := ir.Hash(originOf(v))
	name := ir.TempName(h, func(n string) bool {
		_, taken := s.Lookup(n)
		return !taken
	})
	return Declare(s, name, v)
}

// Name returns the declared name.
func (v Var[T]) Name() string { return v.name }

// Type returns the declared type.
func (v Var[T]) Type() ir.Type { return v.typ }

// Origin returns a reference to the variable, so a Var can stand in
// wherever a Value is accepted.
func (v Var[T]) Origin() ir.Expression { return ir.Var(v.name) }

// TypeName returns the GLSL spelling of the declared type.
func (v Var[T]) TypeName() string { return ir.TypeName(v.typ) }

// In returns the same variable bound to another scope, typically a child
// scope of the one it was declared in.
func (v Var[T]) In(s *Scope) Var[T] {
	v.scope = s
	return v
}

// Get returns the variable as a pure value.
func (v Var[T]) Get() T {
	return construct[T](ir.Var(v.name), v.typ)
}

// Set emits "name = value;".
func (v Var[T]) Set(value T) error { return v.assign(ir.AssignSet, value) }

// AddSet emits "name += value;".
func (v Var[T]) AddSet(value T) error { return v.assign(ir.AssignAdd, value) }

// SubSet emits "name -= value;".
func (v Var[T]) SubSet(value T) error { return v.assign(ir.AssignSubtract, value) }

// MulSet emits "name *= value;".
func (v Var[T]) MulSet(value T) error { return v.assign(ir.AssignMultiply, value) }

// DivSet emits "name /= value;".
func (v Var[T]) DivSet(value T) error { return v.assign(ir.AssignDivide, value) }

// Increment emits "name++;".
func (v Var[T]) Increment() error { return v.step(ir.AssignIncrement) }

// Decrement emits "name--;".
func (v Var[T]) Decrement() error { return v.step(ir.AssignDecrement) }

func (v Var[T]) assign(op ir.AssignOperator, value T) error {
	if v.scope == nil {
		return ir.Errorf(ir.ErrInvalidStatement, "variable %q is not bound to a scope", v.name)
	}
	if op != ir.AssignSet && !numeric(v.typ) {
		return ir.Errorf(ir.ErrUnknownOperator, "operator %s is not defined for %s", op, ir.TypeName(v.typ))
	}
	expr, err := v.scope.hoist(originOf(value))
	if err != nil {
		return fmt.Errorf("assign %s: %w", v.name, err)
	}
	v.scope.Emit(ir.StmtAssign{Name: v.name, Op: op, Value: expr})
	return nil
}

func (v Var[T]) step(op ir.AssignOperator) error {
	if v.scope == nil {
		return ir.Errorf(ir.ErrInvalidStatement, "variable %q is not bound to a scope", v.name)
	}
	if !numeric(v.typ) {
		return ir.Errorf(ir.ErrUnknownOperator, "operator %s is not defined for %s", op, ir.TypeName(v.typ))
	}
	v.scope.Emit(ir.StmtAssign{Name: v.name, Op: op})
	return nil
}

func numeric(t ir.Type) bool {
	switch t.(type) {
	case ir.IntType, ir.FloatType, ir.VectorType, ir.IntVectorType, ir.MatrixType:
		return true
	}
	return false
}
