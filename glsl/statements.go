// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadergen/ir"
)

// writeBlock writes a block of statements.
func (w *Writer) writeBlock(block ir.Block) error {
	for _, stmt := range block {
		if err := w.writeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// writeIndentedBlock writes a block one level deeper. Braces are written
// by the caller.
func (w *Writer) writeIndentedBlock(block ir.Block) error {
	w.pushIndent()
	if err := w.writeBlock(block); err != nil {
		return err
	}
	w.popIndent()
	return nil
}

// writeStatement writes a single statement.
func (w *Writer) writeStatement(stmt ir.Statement) error {
	switch s := stmt.(type) {
	case ir.StmtDeclare:
		line, err := w.declaration(s)
		if err != nil {
			return err
		}
		w.writeLine("%s;", line)
		return nil

	case ir.StmtAssign:
		line, err := w.assignment(s)
		if err != nil {
			return err
		}
		w.writeLine("%s;", line)
		return nil

	case ir.StmtFunction:
		return w.writeFunction(s)

	case ir.StmtPrecision:
		return w.writePrecision(s)

	case ir.StmtInvariant:
		if s.Name == "" {
			return ir.NewError(ir.ErrInvalidStatement, "invariant declaration without a name")
		}
		w.writeLine("invariant %s;", escapeVariable(s.Name))
		return nil

	case ir.StmtBlock:
		w.writeLine("{")
		if err := w.writeIndentedBlock(s.Body); err != nil {
			return err
		}
		w.writeLine("}")
		return nil

	case ir.StmtIfdef:
		return w.writeIfdef(s)

	case ir.StmtStruct:
		return w.writeStruct(s)

	case ir.StmtControl:
		return w.writeControl(s)

	case ir.StmtIf:
		return w.writeIf(s)

	case ir.StmtFor:
		return w.writeFor(s)

	case ir.StmtWhile:
		return w.writeWhile(s)

	case nil:
		return ir.NewError(ir.ErrInvalidStatement, "nil statement")

	default:
		return ir.Errorf(ir.ErrInvalidStatement, "unsupported statement kind: %T", stmt)
	}
}

// declaration returns a declaration without its trailing semicolon:
// [invariant ][qualifier ][precision ]type name[[size]][ = initializer].
func (w *Writer) declaration(s ir.StmtDeclare) (string, error) {
	if s.Name == "" {
		return "", ir.NewError(ir.ErrInvalidStatement, "declaration without a name")
	}
	_, isArray := s.Type.(ir.ArrayType)
	switch {
	case s.Qualifier.IsInterface() && s.Initializer != nil:
		return "", ir.Errorf(ir.ErrInvalidStatement, "%s %q cannot have an initializer", s.Qualifier, s.Name)
	case isArray && s.Initializer != nil:
		return "", ir.Errorf(ir.ErrInvalidStatement, "array %q cannot have an initializer", s.Name)
	case s.Qualifier == ir.QualifierConst && s.Initializer == nil:
		return "", ir.Errorf(ir.ErrInvalidStatement, "const %q requires an initializer", s.Name)
	case s.Qualifier == ir.QualifierNone && !isArray && s.Initializer == nil:
		return "", ir.Errorf(ir.ErrInvalidStatement, "variable %q requires an initializer", s.Name)
	}

	typ, suffix, err := w.typeParts(s.Type)
	if err != nil {
		return "", fmt.Errorf("declaration of %s: %w", s.Name, err)
	}

	var b strings.Builder
	if s.Invariant {
		b.WriteString("invariant ")
	}
	if q := s.Qualifier.String(); q != "" {
		b.WriteString(q)
		b.WriteByte(' ')
	}
	b.WriteString(typ)
	b.WriteByte(' ')
	b.WriteString(escapeVariable(s.Name))
	b.WriteString(suffix)

	if s.Initializer != nil {
		init, err := w.writeExpression(s.Initializer)
		if err != nil {
			return "", fmt.Errorf("initializer of %s: %w", s.Name, err)
		}
		b.WriteString(" = ")
		b.WriteString(init)
	}
	return b.String(), nil
}

// assignment returns an assignment without its trailing semicolon.
func (w *Writer) assignment(s ir.StmtAssign) (string, error) {
	if s.Name == "" {
		return "", ir.NewError(ir.ErrInvalidStatement, "assignment without a target")
	}
	if s.Op > ir.AssignDecrement {
		return "", ir.Errorf(ir.ErrUnknownOperator, "unknown assignment operator %d", uint8(s.Op))
	}
	name := escapeVariable(s.Name)
	if !s.Op.HasValue() {
		if s.Value != nil {
			return "", ir.Errorf(ir.ErrInvalidStatement, "%s on %q cannot take a value", s.Op, s.Name)
		}
		return name + s.Op.String(), nil
	}
	if s.Value == nil {
		return "", ir.Errorf(ir.ErrInvalidStatement, "%s on %q requires a value", s.Op, s.Name)
	}
	value, err := w.writeExpression(s.Value)
	if err != nil {
		return "", fmt.Errorf("assignment to %s: %w", s.Name, err)
	}
	return name + " " + s.Op.String() + " " + value, nil
}

// writeFunction writes a function definition.
func (w *Writer) writeFunction(fn ir.StmtFunction) error {
	if fn.Name == "" {
		return ir.NewError(ir.ErrInvalidStatement, "function without a name")
	}
	if w.currentFunction != nil {
		return ir.Errorf(ir.ErrInvalidStatement, "function %q nested in %q", fn.Name, w.currentFunction.Name)
	}
	result, err := w.typeName(fn.Result)
	if err != nil {
		return fmt.Errorf("function %s result: %w", fn.Name, err)
	}

	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		typ, suffix, err := w.typeParts(p.Type)
		if err != nil {
			return fmt.Errorf("function %s parameter %s: %w", fn.Name, p.Name, err)
		}
		param := typ + " " + escapeVariable(p.Name) + suffix
		if d := p.Direction.String(); d != "" {
			param = d + " " + param
		}
		params[i] = param
	}

	name := fn.Name
	if name != "main" {
		name = Escape(name)
	}

	w.currentFunction = &fn
	defer func() { w.currentFunction = nil }()

	w.writeLine("%s %s(%s) {", result, name, strings.Join(params, ", "))
	if err := w.writeIndentedBlock(fn.Body); err != nil {
		return fmt.Errorf("function %s: %w", fn.Name, err)
	}
	w.writeLine("}")
	return nil
}

// writePrecision writes a default precision declaration.
func (w *Writer) writePrecision(s ir.StmtPrecision) error {
	if s.Precision == ir.PrecisionDefault {
		return ir.NewError(ir.ErrInvalidStatement, "precision declaration without a qualifier")
	}
	typ := "float"
	if s.Type != nil {
		switch s.Type.(type) {
		case ir.FloatType, ir.IntType, ir.SamplerType:
			typ = ir.TypeName(s.Type)
		default:
			return ir.Errorf(ir.ErrInvalidStatement, "precision cannot be declared for %s", ir.TypeName(s.Type))
		}
	}
	w.writeLine("precision %s %s;", s.Precision, typ)
	return nil
}

// writeIfdef writes a preprocessor conditional. Branch bodies are not
// braced.
func (w *Writer) writeIfdef(s ir.StmtIfdef) error {
	if s.Identifier == "" {
		return ir.NewError(ir.ErrInvalidStatement, "#ifdef without an identifier")
	}
	w.writeDirective("#ifdef %s", s.Identifier)
	if err := w.writeBlock(s.Accept); err != nil {
		return err
	}
	if s.Reject != nil {
		w.writeDirective("#else")
		if err := w.writeBlock(s.Reject); err != nil {
			return err
		}
	}
	w.writeDirective("#endif")
	return nil
}

// writeStruct writes a struct declaration.
func (w *Writer) writeStruct(s ir.StmtStruct) error {
	if s.Name == "" {
		return ir.NewError(ir.ErrInvalidStatement, "struct without a name")
	}
	if len(s.Members) == 0 {
		return ir.Errorf(ir.ErrInvalidStatement, "struct %q has no members", s.Name)
	}
	w.writeLine("struct %s {", Escape(s.Name))
	w.pushIndent()
	for _, m := range s.Members {
		typ, suffix, err := w.typeParts(m.Type)
		if err != nil {
			return fmt.Errorf("struct %s member %s: %w", s.Name, m.Name, err)
		}
		w.writeLine("%s %s%s;", typ, Escape(m.Name), suffix)
	}
	w.popIndent()
	w.writeLine("};")
	return nil
}

// writeControl writes return, break, continue or discard.
func (w *Writer) writeControl(s ir.StmtControl) error {
	switch s.Kind {
	case ir.ControlReturn:
		if s.Value == nil {
			w.writeLine("return;")
			return nil
		}
		value, err := w.writeExpression(s.Value)
		if err != nil {
			return fmt.Errorf("return value: %w", err)
		}
		w.writeLine("return %s;", value)
		return nil
	case ir.ControlBreak, ir.ControlContinue, ir.ControlDiscard:
		if s.Value != nil {
			return ir.Errorf(ir.ErrInvalidStatement, "%s cannot carry a value", s.Kind)
		}
		w.writeLine("%s;", s.Kind)
		return nil
	default:
		return ir.Errorf(ir.ErrInvalidStatement, "unknown control kind %d", uint8(s.Kind))
	}
}

// writeIf writes an if statement, collapsing a lone nested if in the
// else branch into "else if".
func (w *Writer) writeIf(s ir.StmtIf) error {
	cond, err := w.writeExpression(s.Condition)
	if err != nil {
		return fmt.Errorf("if condition: %w", err)
	}
	w.writeLine("if (%s) {", cond)
	if err := w.writeIndentedBlock(s.Accept); err != nil {
		return err
	}

	for s.Reject != nil {
		if len(s.Reject) == 1 {
			if next, ok := s.Reject[0].(ir.StmtIf); ok {
				cond, err := w.writeExpression(next.Condition)
				if err != nil {
					return fmt.Errorf("else if condition: %w", err)
				}
				w.writeLine("} else if (%s) {", cond)
				if err := w.writeIndentedBlock(next.Accept); err != nil {
					return err
				}
				s = next
				continue
			}
		}
		w.writeLine("} else {")
		if err := w.writeIndentedBlock(s.Reject); err != nil {
			return err
		}
		break
	}
	w.writeLine("}")
	return nil
}

// writeFor writes a for loop.
func (w *Writer) writeFor(s ir.StmtFor) error {
	init, err := w.declaration(s.Init)
	if err != nil {
		return fmt.Errorf("for init: %w", err)
	}
	cond, err := w.writeExpression(s.Condition)
	if err != nil {
		return fmt.Errorf("for condition: %w", err)
	}
	incr, err := w.assignment(s.Increment)
	if err != nil {
		return fmt.Errorf("for increment: %w", err)
	}
	w.writeLine("for (%s; %s; %s) {", init, cond, incr)
	if err := w.writeIndentedBlock(s.Body); err != nil {
		return err
	}
	w.writeLine("}")
	return nil
}

// writeWhile writes a while or do-while loop.
func (w *Writer) writeWhile(s ir.StmtWhile) error {
	cond, err := w.writeExpression(s.Condition)
	if err != nil {
		return fmt.Errorf("while condition: %w", err)
	}
	if s.DoWhile {
		w.writeLine("do {")
		if err := w.writeIndentedBlock(s.Body); err != nil {
			return err
		}
		w.writeLine("} while (%s);", cond)
		return nil
	}
	w.writeLine("while (%s) {", cond)
	if err := w.writeIndentedBlock(s.Body); err != nil {
		return err
	}
	w.writeLine("}")
	return nil
}
