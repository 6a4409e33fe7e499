package ir

import (
	"fmt"
	"strconv"
)

// Extraction is the result of ExtractCommon.
type Extraction struct {
	// Statements declares one temporary per repeated subtree, in an order
	// where each initializer only references earlier temporaries.
	Statements []StmtDeclare

	// Output is the rewritten expression.
	Output Expression
}

// Block returns the temporaries as a statement block.
func (x Extraction) Block() Block {
	block := make(Block, len(x.Statements))
	for i, s := range x.Statements {
		block[i] = s
	}
	return block
}

// ExtractCommon hoists structurally repeated subtrees of expr into
// temporaries. Every distinct non-leaf subtree occurring at least twice
// gets exactly one temporary named "var" plus the shortest unused prefix of
// its structural hash, typed by ResolveType against env. Literals and
// variable references are never hoisted.
func ExtractCommon(env TypeEnv, expr Expression) (Extraction, error) {
	return extractCommon(env, expr, func(name string) bool {
		if env == nil {
			return false
		}
		_, taken := env.Lookup(name)
		return taken
	})
}

// subtreeClass groups structurally equal subtrees.
type subtreeClass struct {
	rep   Expression
	count int
	temp  string
}

type extractor struct {
	env     TypeEnv
	taken   func(string) bool
	buckets map[uint64][]*subtreeClass
	used    map[string]struct{}
	decls   []StmtDeclare
}

func extractCommon(env TypeEnv, expr Expression, taken func(string) bool) (Extraction, error) {
	if expr == nil {
		return Extraction{}, NewError(ErrInvalidExpression, "nil expression")
	}
	x := &extractor{
		env:     env,
		taken:   taken,
		buckets: make(map[uint64][]*subtreeClass),
		used:    make(map[string]struct{}),
	}
	x.count(expr)
	out, _, err := x.rewrite(expr)
	if err != nil {
		return Extraction{}, err
	}
	return Extraction{Statements: x.decls, Output: out}, nil
}

// count walks expr in post-order, tallying each non-leaf subtree class.
func (x *extractor) count(e Expression) uint64 {
	children := Children(e)
	hashes := make([]uint64, len(children))
	for i, c := range children {
		hashes[i] = x.count(c)
	}
	h := nodeHash(e, hashes)
	if !IsLeaf(e) {
		x.class(h, e).count++
	}
	return h
}

// class returns the class of e within bucket h, creating it if needed.
func (x *extractor) class(h uint64, e Expression) *subtreeClass {
	for _, c := range x.buckets[h] {
		if Equal(c.rep, e) {
			return c
		}
	}
	c := &subtreeClass{rep: e}
	x.buckets[h] = append(x.buckets[h], c)
	return c
}

// rewrite replaces repeated subtrees by temporaries, declaring each
// temporary on first encounter in post-order.
func (x *extractor) rewrite(e Expression) (Expression, uint64, error) {
	children := Children(e)
	hashes := make([]uint64, len(children))
	var rewritten []Expression
	if len(children) > 0 {
		rewritten = make([]Expression, len(children))
		for i, c := range children {
			out, h, err := x.rewrite(c)
			if err != nil {
				return nil, 0, err
			}
			rewritten[i], hashes[i] = out, h
		}
	}
	h := nodeHash(e, hashes)
	if IsLeaf(e) {
		return e, h, nil
	}

	class := x.class(h, e)
	if class.count < 2 {
		return withChildren(e, rewritten), h, nil
	}
	if class.temp == "" {
		t, err := ResolveType(x.env, e)
		if err != nil {
			return nil, 0, fmt.Errorf("common subexpression: %w", err)
		}
		class.temp = x.uniqueName(h)
		x.decls = append(x.decls, StmtDeclare{
			Name:        class.temp,
			Type:        t,
			Initializer: withChildren(e, rewritten),
		})
	}
	return ExprVariable{Name: class.temp}, h, nil
}

// uniqueName reserves a temporary name for hash h.
func (x *extractor) uniqueName(h uint64) string {
	name := TempName(h, x.free)
	x.used[name] = struct{}{}
	return name
}

// TempName returns "var" followed by the shortest prefix of the hex form of
// h for which free reports true. If every prefix is taken a numeric suffix
// is appended to the full hash.
func TempName(h uint64, free func(string) bool) string {
	hex := fmt.Sprintf("%016x", h)
	for n := 1; n <= len(hex); n++ {
		if name := "var" + hex[:n]; free(name) {
			return name
		}
	}
	for i := 1; ; i++ {
		if name := "var" + hex + "_" + strconv.Itoa(i); free(name) {
			return name
		}
	}
}

func (x *extractor) free(name string) bool {
	if _, used := x.used[name]; used {
		return false
	}
	return x.taken == nil || !x.taken(name)
}

// Inline substitutes the temporaries declared by stmts back into expr,
// undoing ExtractCommon. Declarations are applied in reverse so that a
// temporary referencing an earlier one is fully expanded.
func Inline(stmts []StmtDeclare, expr Expression) Expression {
	for i := len(stmts) - 1; i >= 0; i-- {
		expr = substitute(expr, stmts[i].Name, stmts[i].Initializer)
	}
	return expr
}

func substitute(e Expression, name string, value Expression) Expression {
	if v, ok := e.(ExprVariable); ok {
		if v.Name == name {
			return value
		}
		return e
	}
	children := Children(e)
	if len(children) == 0 {
		return e
	}
	rewritten := make([]Expression, len(children))
	for i, c := range children {
		rewritten[i] = substitute(c, name, value)
	}
	return withChildren(e, rewritten)
}
