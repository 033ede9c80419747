// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package goryl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-git/go-billy/v5"

	"nickandperla.net/goryl/internal/eval"
	"nickandperla.net/goryl/internal/store"
)

// Result counts the diagnostics reported during one run.
type Result = eval.Result

// Runtime is the goryl interpreter runtime.
type Runtime struct {
	evaluator        *eval.Evaluator
	env              eval.Environment
	store            store.Store
	fs               billy.Filesystem
	outputWriter     func(text string) error
	logger           *slog.Logger
	maxImportDepth   int
	haltOnParseError bool
	prelude          string
	err              error
}

// New creates a new goryl runtime with the given options.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}
	if r.err != nil {
		return nil, fmt.Errorf("goryl: %w", r.err)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}

	evalOpts := []eval.Option{
		eval.WithLogger(r.logger),
		eval.WithHaltOnParseError(r.haltOnParseError),
		eval.WithMaxImportDepth(r.maxImportDepth),
	}
	if r.store != nil {
		r.env = eval.NewStoredNamespace(r.store, r.logger)
	} else {
		r.env = eval.NewNamespace()
	}
	evalOpts = append(evalOpts, eval.WithEnvironment(r.env))
	if r.fs != nil {
		evalOpts = append(evalOpts, eval.WithResolver(eval.NewResolver(r.fs, "/")))
	} else {
		res, err := eval.NewOSResolver()
		if err != nil {
			r.closeStore()
			return nil, fmt.Errorf("goryl: %w", err)
		}
		evalOpts = append(evalOpts, eval.WithResolver(res))
	}
	if r.outputWriter != nil {
		evalOpts = append(evalOpts, eval.WithOutputWriter(r.outputWriter))
	}

	r.evaluator = eval.New(evalOpts...)

	if r.prelude != "" {
		if res := r.evaluator.Eval(r.prelude); !res.OK() {
			r.closeStore()
			return nil, fmt.Errorf("goryl: prelude failed: %d syntax, %d parse, %d runtime errors",
				res.SyntaxErrors, res.ParseErrors, res.RuntimeErrors)
		}
	}
	return r, nil
}

// Run evaluates a goryl program. Diagnostics are written to the output;
// the Result counts them.
func (r *Runtime) Run(source string) Result {
	return r.evaluator.Eval(source)
}

// RunReader evaluates a goryl program read from reader.
func (r *Runtime) RunReader(reader io.Reader) (Result, error) {
	return r.evaluator.EvalReader(reader)
}

// RunFile evaluates the goryl file at path. An import of the file from
// within itself is reported as an import cycle.
func (r *Runtime) RunFile(path string) (Result, error) {
	return r.evaluator.EvalFile(path)
}

// Environment returns the global environment.
func (r *Runtime) Environment() eval.Environment {
	return r.env
}

// Close releases the store, returning the first persistence error seen
// during the runtime's life, if any.
func (r *Runtime) Close() error {
	var errs []error
	if sn, ok := r.env.(*eval.StoredNamespace); ok {
		if err := sn.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Runtime) closeStore() {
	if r.store != nil {
		r.store.Close()
	}
}
