// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"nickandperla.net/goryl/internal/ast"
	"nickandperla.net/goryl/internal/diag"
	"nickandperla.net/goryl/internal/parser"
	"nickandperla.net/goryl/internal/scanner"
)

// DefaultMaxImportDepth bounds how deeply imports may nest.
const DefaultMaxImportDepth = 64

// OutputWriter writes program output (print and diagnostics).
type OutputWriter func(text string) error

// Result counts the diagnostics one Eval produced.
type Result struct {
	SyntaxErrors  int
	ParseErrors   int
	RuntimeErrors int
}

// OK reports whether the run produced no diagnostics.
func (r Result) OK() bool {
	return r.SyntaxErrors == 0 && r.ParseErrors == 0 && r.RuntimeErrors == 0
}

// Evaluator runs goryl programs against an Environment.
type Evaluator struct {
	env              Environment
	resolver         *Resolver
	outputWriter     OutputWriter
	reporter         *diag.Reporter
	logger           *slog.Logger
	haltOnParseError bool
	maxImportDepth   int
	imports          *linkedhashset.Set // absolute paths of imports in flight
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithEnvironment sets the global environment.
func WithEnvironment(env Environment) Option {
	return func(e *Evaluator) { e.env = env }
}

// WithResolver sets the import resolver.
func WithResolver(r *Resolver) Option {
	return func(e *Evaluator) { e.resolver = r }
}

// WithOutputWriter sets where print output and diagnostics go.
func WithOutputWriter(w OutputWriter) Option {
	return func(e *Evaluator) { e.outputWriter = w }
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// WithHaltOnParseError stops a run (or an import) before execution when
// the parser reported anything.
func WithHaltOnParseError(halt bool) Option {
	return func(e *Evaluator) { e.haltOnParseError = halt }
}

// WithMaxImportDepth bounds import nesting. Values below 1 are ignored.
func WithMaxImportDepth(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxImportDepth = n
		}
	}
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		env: NewNamespace(),
		outputWriter: func(text string) error {
			fmt.Print(text)
			return nil
		},
		logger:         slog.New(slog.DiscardHandler),
		maxImportDepth: DefaultMaxImportDepth,
		imports:        linkedhashset.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.resolver == nil {
		r, err := NewOSResolver()
		if err != nil {
			e.logger.Warn("no import resolver", slog.Any("error", err))
		} else {
			e.resolver = r
		}
	}
	if e.resolver != nil {
		e.resolver.SetLogger(e.logger)
	}
	e.reporter = diag.NewReporter(outputAdapter(e.outputWriter))
	return e
}

// Environment returns the evaluator's global environment.
func (e *Evaluator) Environment() Environment {
	return e.env
}

// Reporter returns the diagnostic reporter, whose counts cover every run.
func (e *Evaluator) Reporter() *diag.Reporter {
	return e.reporter
}

// Eval scans, parses and interprets source. A syntax error stops the run
// before parsing. Parse errors are reported and the recovered statements
// still run unless the evaluator halts on parse errors. Runtime errors are
// reported per statement and execution continues.
func (e *Evaluator) Eval(source string) Result {
	before := e.counts()

	tokens, serrs := scanner.Scan(source)
	e.logger.Debug("scanned", slog.Int("tokens", len(tokens)), slog.Int("syntax-errors", len(serrs)))
	if len(serrs) > 0 {
		for _, se := range serrs {
			e.reporter.Report(se)
		}
		return e.counts().since(before)
	}

	stmts, perrs := parser.Parse(tokens)
	e.logger.Debug("parsed", slog.Int("statements", len(stmts)), slog.Int("parse-errors", len(perrs)))
	for _, pe := range perrs {
		e.reporter.Report(pe)
	}
	if len(perrs) > 0 && e.haltOnParseError {
		return e.counts().since(before)
	}

	e.Interpret(stmts)
	return e.counts().since(before)
}

// EvalReader reads all of r and evaluates it.
func (e *Evaluator) EvalReader(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, err
	}
	return e.Eval(string(data)), nil
}

// EvalFile reads the program at path from the host filesystem and
// evaluates it. The file counts as an import in flight while it runs, so
// importing itself is reported as a cycle.
func (e *Evaluator) EvalFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	if e.resolver != nil {
		entry := e.resolver.Path(path)
		e.imports.Add(entry)
		defer e.imports.Remove(entry)
		e.logger.Debug("run file", slog.String("path", entry))
	}
	return e.Eval(string(data)), nil
}

// Interpret executes statements in order. A statement that fails is
// reported and skipped; the rest still run.
func (e *Evaluator) Interpret(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		if err := e.execute(stmt); err != nil {
			e.report(err)
		}
	}
}

func (e *Evaluator) report(err error) {
	var d diag.Diagnostic
	if errors.As(err, &d) {
		e.reporter.Report(d)
		return
	}
	e.reporter.Report(diag.NewRuntimeError(0, err.Error()))
}

func (e *Evaluator) counts() Result {
	return Result{
		SyntaxErrors:  e.reporter.Count(diag.Syntax),
		ParseErrors:   e.reporter.Count(diag.Parse),
		RuntimeErrors: e.reporter.Count(diag.Runtime),
	}
}

func (r Result) since(before Result) Result {
	return Result{
		SyntaxErrors:  r.SyntaxErrors - before.SyntaxErrors,
		ParseErrors:   r.ParseErrors - before.ParseErrors,
		RuntimeErrors: r.RuntimeErrors - before.RuntimeErrors,
	}
}

type outputAdapter OutputWriter

func (w outputAdapter) Write(p []byte) (int, error) {
	if err := w(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
