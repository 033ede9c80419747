package eval

import (
	"fmt"
	"log/slog"
	"strings"

	"nickandperla.net/goryl/internal/ast"
	"nickandperla.net/goryl/internal/diag"
	"nickandperla.net/goryl/internal/token"
	"nickandperla.net/goryl/internal/value"
)

func (e *Evaluator) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case ast.Expression:
		_, err := e.Evaluate(s.Expr)
		return err
	case ast.Print:
		v, err := e.Evaluate(s.Expr)
		if err != nil {
			return err
		}
		if err := e.outputWriter(v.String() + "\n"); err != nil {
			return diag.Runtimef(s.Keyword.Line, "output: %v", err)
		}
		return nil
	case ast.Let:
		v, err := e.Evaluate(s.Initializer)
		if err != nil {
			return err
		}
		e.env.Define(s.Name.Lexeme, v)
		e.logger.Debug("define", slog.String("name", s.Name.Lexeme), slog.String("kind", v.Kind().String()))
		return nil
	case ast.Import:
		return e.importFile(s)
	default:
		return diag.Runtimef(0, "unsupported statement %T", stmt)
	}
}

// Evaluate reduces an expression to a value.
func (e *Evaluator) Evaluate(ex ast.Expr) (value.Value, error) {
	switch x := ex.(type) {
	case ast.Literal:
		return value.FromLiteral(x.Value), nil
	case ast.Grouping:
		return e.Evaluate(x.Inner)
	case ast.Variable:
		if v, ok := e.env.Get(x.Name.Lexeme); ok {
			return v, nil
		}
		return value.None, diag.Runtimef(x.Name.Line, "Undefined variable '%s'", x.Name.Lexeme)
	case ast.Unary:
		operand, err := e.Evaluate(x.Operand)
		if err != nil {
			return value.None, err
		}
		return unary(x.Operator, operand)
	case ast.Binary:
		left, err := e.Evaluate(x.Left)
		if err != nil {
			return value.None, err
		}
		right, err := e.Evaluate(x.Right)
		if err != nil {
			return value.None, err
		}
		return binary(x.Operator, left, right)
	default:
		return value.None, diag.Runtimef(0, "unsupported expression %T", ex)
	}
}

func unary(op token.Token, v value.Value) (value.Value, error) {
	switch op.Type {
	case token.MINUS:
		return lift(op)(value.Negate(v))
	case token.BANG:
		return value.Not(v), nil
	}
	return value.None, diag.Runtimef(op.Line, "Invalid unary operator %s", op.Lexeme)
}

func binary(op token.Token, l, r value.Value) (value.Value, error) {
	switch op.Type {
	case token.PLUS:
		return lift(op)(value.Add(l, r))
	case token.MINUS:
		return lift(op)(value.Subtract(l, r))
	case token.STAR:
		return lift(op)(value.Multiply(l, r))
	case token.SLASH:
		return lift(op)(value.Divide(l, r))
	case token.GREATER:
		return value.Greater(l, r), nil
	case token.GREATER_EQUAL:
		return value.GreaterEqual(l, r), nil
	case token.LESS:
		return value.Less(l, r), nil
	case token.LESS_EQUAL:
		return value.LessEqual(l, r), nil
	case token.EQUAL_EQUAL:
		return value.Bool(value.Equal(l, r)), nil
	case token.BANG_EQUAL:
		return value.Bool(!value.Equal(l, r)), nil
	}
	return value.None, diag.Runtimef(op.Line, "Invalid binary operator %s", op.Lexeme)
}

// lift attaches the operator's line to a value-level error.
func lift(op token.Token) func(value.Value, error) (value.Value, error) {
	return func(v value.Value, err error) (value.Value, error) {
		if err != nil {
			return value.None, diag.NewRuntimeError(op.Line, err.Error())
		}
		return v, nil
	}
}

// importFile runs another file's statements in this evaluator's
// environment. Diagnostics inside the imported file are reported as they
// occur; only a failure to load it is returned.
func (e *Evaluator) importFile(s ast.Import) error {
	name := CleanFileName(s.FileName)
	line := s.Keyword.Line
	fail := func(format string, args ...any) error {
		return diag.Runtimef(line, "Could not resolve file import: %s: %s", name, fmt.Sprintf(format, args...))
	}

	if e.resolver == nil {
		return fail("no resolver")
	}
	path := e.resolver.Path(name)
	if e.imports.Contains(path) {
		return fail("import cycle: %s", e.importChain(path))
	}
	if e.imports.Size() >= e.maxImportDepth {
		return fail("import depth limit exceeded (%d)", e.maxImportDepth)
	}

	mod, err := e.resolver.Resolve(name)
	if err != nil {
		return fail("%v", err)
	}
	for _, pe := range mod.ParseErrors {
		e.reporter.Report(pe)
	}
	if len(mod.ParseErrors) > 0 && e.haltOnParseError {
		return fail("%d parse errors", len(mod.ParseErrors))
	}

	e.imports.Add(path)
	defer e.imports.Remove(path)
	e.logger.Debug("import", slog.String("path", path), slog.Int("depth", e.imports.Size()))
	e.Interpret(mod.Stmts)
	return nil
}

func (e *Evaluator) importChain(next string) string {
	var parts []string
	for _, p := range e.imports.Values() {
		parts = append(parts, p.(string))
	}
	return strings.Join(append(parts, next), " -> ")
}
