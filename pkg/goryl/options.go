// Package goryl provides the public API for the goryl interpreter.
package goryl

import (
	"io"
	"log/slog"

	"github.com/go-git/go-billy/v5"

	"nickandperla.net/goryl/internal/store"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithSQLiteStore persists global bindings in the SQLite database at path.
func WithSQLiteStore(path string) Option {
	return func(r *Runtime) {
		s, err := store.NewSQLite(path)
		if err != nil {
			r.err = err
			return
		}
		r.store = s
	}
}

// WithMemoryStore persists global bindings in memory (for testing).
func WithMemoryStore() Option {
	return func(r *Runtime) {
		r.store = store.NewMemory()
	}
}

// WithStore persists global bindings in s. The Runtime takes ownership.
func WithStore(s store.Store) Option {
	return func(r *Runtime) {
		r.store = s
	}
}

// WithOutputWriter sets where print output and diagnostics go.
func WithOutputWriter(writer func(text string) error) Option {
	return func(r *Runtime) {
		r.outputWriter = writer
	}
}

// WithOutput sets the io.Writer for output.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.outputWriter = func(text string) error {
			_, err := io.WriteString(w, text)
			return err
		}
	}
}

// WithFilesystem resolves imports against fs, rooted at "/".
func WithFilesystem(fs billy.Filesystem) Option {
	return func(r *Runtime) {
		r.fs = fs
	}
}

// WithMaxImportDepth bounds import nesting.
func WithMaxImportDepth(n int) Option {
	return func(r *Runtime) {
		r.maxImportDepth = n
	}
}

// WithHaltOnParseError skips execution of any program that failed to parse
// cleanly.
func WithHaltOnParseError() Option {
	return func(r *Runtime) {
		r.haltOnParseError = true
	}
}

// WithLogger sets the logger for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = l
	}
}

// WithPrelude sets goryl source evaluated once when the Runtime is built,
// before any user program.
func WithPrelude(source string) Option {
	return func(r *Runtime) {
		r.prelude = source
	}
}
