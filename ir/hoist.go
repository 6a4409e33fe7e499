package ir

import "fmt"

// scopeEnv is a chain of name-to-type maps used while walking statement
// blocks. Inner scopes shadow outer ones.
type scopeEnv struct {
	parent    *scopeEnv
	vars      map[string]Type
	functions map[string]Type
}

func newScopeEnv(parent *scopeEnv) *scopeEnv {
	return &scopeEnv{parent: parent, vars: make(map[string]Type)}
}

// Lookup implements TypeEnv.
func (s *scopeEnv) Lookup(name string) (Type, bool) {
	for e := s; e != nil; e = e.parent {
		if t, ok := e.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// LookupFunction implements FunctionEnv.
func (s *scopeEnv) LookupFunction(name string) (Type, bool) {
	for e := s; e != nil; e = e.parent {
		if t, ok := e.functions[name]; ok {
			return t, true
		}
	}
	return nil, false
}

func (s *scopeEnv) define(name string, t Type) {
	s.vars[name] = t
}

func (s *scopeEnv) defineFunction(name string, result Type) {
	if s.functions == nil {
		s.functions = make(map[string]Type)
	}
	s.functions[name] = result
}

// globalEnv returns the outermost scope for shader: gl_ built-ins of its
// stage plus every top-level declaration and function.
func globalEnv(shader *Shader) *scopeEnv {
	env := newScopeEnv(nil)
	for _, b := range BuiltinVariables(shader.Stage) {
		env.define(b.Name, b.Type)
	}
	for _, stmt := range shader.Statements {
		switch s := stmt.(type) {
		case StmtDeclare:
			env.define(s.Name, s.Type)
		case StmtFunction:
			env.defineFunction(s.Name, s.Result)
		}
	}
	return env
}

// HoistCommon runs ExtractCommon over every initializer, assigned value,
// if condition and return value inside the shader's function bodies and
// returns a new shader with the temporaries declared immediately before
// the statement that uses them. Loop conditions and increments are left
// alone because they are re-evaluated on every iteration.
func HoistCommon(shader *Shader) (*Shader, error) {
	if shader == nil {
		return nil, fmt.Errorf("shader is nil")
	}
	h := &hoister{names: collectNames(shader)}
	global := globalEnv(shader)

	out := &Shader{Version: shader.Version, Stage: shader.Stage}
	out.Statements = make(Block, 0, len(shader.Statements))
	for _, stmt := range shader.Statements {
		fn, ok := stmt.(StmtFunction)
		if !ok {
			out.Statements = append(out.Statements, stmt)
			continue
		}
		env := newScopeEnv(global)
		for _, p := range fn.Parameters {
			env.define(p.Name, p.Type)
		}
		body, err := h.block(env, fn.Body)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", fn.Name, err)
		}
		fn.Body = body
		out.Statements = append(out.Statements, fn)
	}
	return out, nil
}

type hoister struct {
	// names holds every identifier declared anywhere in the shader, plus
	// the temporaries created so far, so no temporary shadows a user name.
	names map[string]struct{}
}

func (h *hoister) taken(env TypeEnv) func(string) bool {
	return func(name string) bool {
		if _, ok := h.names[name]; ok {
			return true
		}
		_, ok := env.Lookup(name)
		return ok
	}
}

// extract hoists expr within env, returning the temporaries to emit.
func (h *hoister) extract(env *scopeEnv, expr Expression) (Block, Expression, error) {
	if expr == nil {
		return nil, nil, nil
	}
	x, err := extractCommon(env, expr, h.taken(env))
	if err != nil {
		return nil, nil, err
	}
	for _, d := range x.Statements {
		h.names[d.Name] = struct{}{}
		env.define(d.Name, d.Type)
	}
	return x.Block(), x.Output, nil
}

func (h *hoister) block(env *scopeEnv, body Block) (Block, error) {
	if body == nil {
		return nil, nil
	}
	out := make(Block, 0, len(body))
	for i, stmt := range body {
		pre, rewritten, err := h.statement(env, stmt)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		out = append(out, pre...)
		out = append(out, rewritten)
	}
	return out, nil
}

func (h *hoister) statement(env *scopeEnv, stmt Statement) (Block, Statement, error) {
	switch s := stmt.(type) {
	case StmtDeclare:
		// A const initializer must stay a constant expression.
		if s.Qualifier == QualifierConst {
			env.define(s.Name, s.Type)
			return nil, s, nil
		}
		pre, init, err := h.extract(env, s.Initializer)
		if err != nil {
			return nil, nil, err
		}
		s.Initializer = init
		env.define(s.Name, s.Type)
		return pre, s, nil
	case StmtAssign:
		pre, value, err := h.extract(env, s.Value)
		if err != nil {
			return nil, nil, err
		}
		s.Value = value
		return pre, s, nil
	case StmtControl:
		pre, value, err := h.extract(env, s.Value)
		if err != nil {
			return nil, nil, err
		}
		s.Value = value
		return pre, s, nil
	case StmtIf:
		pre, cond, err := h.extract(env, s.Condition)
		if err != nil {
			return nil, nil, err
		}
		s.Condition = cond
		if s.Accept, err = h.block(newScopeEnv(env), s.Accept); err != nil {
			return nil, nil, err
		}
		if s.Reject, err = h.block(newScopeEnv(env), s.Reject); err != nil {
			return nil, nil, err
		}
		return pre, s, nil
	case StmtBlock:
		body, err := h.block(newScopeEnv(env), s.Body)
		if err != nil {
			return nil, nil, err
		}
		s.Body = body
		return nil, s, nil
	case StmtFor:
		inner := newScopeEnv(env)
		inner.define(s.Init.Name, s.Init.Type)
		body, err := h.block(inner, s.Body)
		if err != nil {
			return nil, nil, err
		}
		s.Body = body
		return nil, s, nil
	case StmtWhile:
		body, err := h.block(newScopeEnv(env), s.Body)
		if err != nil {
			return nil, nil, err
		}
		s.Body = body
		return nil, s, nil
	case StmtIfdef:
		accept, err := h.block(env, s.Accept)
		if err != nil {
			return nil, nil, err
		}
		reject, err := h.block(env, s.Reject)
		if err != nil {
			return nil, nil, err
		}
		s.Accept, s.Reject = accept, reject
		return nil, s, nil
	default:
		return nil, stmt, nil
	}
}

// collectNames gathers every declared identifier in shader.
func collectNames(shader *Shader) map[string]struct{} {
	names := make(map[string]struct{})
	var walk func(Block)
	walk = func(body Block) {
		for _, stmt := range body {
			switch s := stmt.(type) {
			case StmtDeclare:
				names[s.Name] = struct{}{}
			case StmtFunction:
				names[s.Name] = struct{}{}
				for _, p := range s.Parameters {
					names[p.Name] = struct{}{}
				}
				walk(s.Body)
			case StmtStruct:
				names[s.Name] = struct{}{}
			case StmtIf:
				walk(s.Accept)
				walk(s.Reject)
			case StmtBlock:
				walk(s.Body)
			case StmtFor:
				names[s.Init.Name] = struct{}{}
				walk(s.Body)
			case StmtWhile:
				walk(s.Body)
			case StmtIfdef:
				walk(s.Accept)
				walk(s.Reject)
			}
		}
	}
	walk(shader.Statements)
	return names
}
