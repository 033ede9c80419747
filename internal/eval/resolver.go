package eval

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"nickandperla.net/goryl/internal/ast"
	"nickandperla.net/goryl/internal/diag"
	"nickandperla.net/goryl/internal/parser"
	"nickandperla.net/goryl/internal/scanner"
)

// ImportReason classifies why an import could not be resolved.
type ImportReason int

const (
	FileNotFound ImportReason = iota
	ImportSyntax
)

// ImportError is returned by Resolver.Resolve.
type ImportError struct {
	Reason ImportReason
	File   string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Reason == ImportSyntax {
		return e.Err.Error()
	}
	return fmt.Sprintf("Could not find import %s", e.File)
}

func (e *ImportError) Unwrap() error { return e.Err }

// Module is a resolved import: its statements plus any parse errors. Parse
// errors do not fail an import; the statements are the parser's best effort.
type Module struct {
	Path        string
	Stmts       []ast.Stmt
	ParseErrors []*diag.ParseError
}

// Resolver loads imported files and runs them through the scanner and
// parser. Relative names are resolved against Dir.
type Resolver struct {
	fs     billy.Filesystem
	dir    string
	logger *slog.Logger
}

// NewResolver creates a Resolver reading from fs, resolving relative names
// against dir.
func NewResolver(fs billy.Filesystem, dir string) *Resolver {
	return &Resolver{fs: fs, dir: dir, logger: slog.New(slog.DiscardHandler)}
}

// NewOSResolver creates a Resolver over the host filesystem, resolving
// relative names against the process working directory.
func NewOSResolver() (*Resolver, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolver: working directory: %w", err)
	}
	return NewResolver(osfs.New(string(filepath.Separator)), wd), nil
}

// SetLogger sets the logger used for resolution tracing.
func (r *Resolver) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Path returns the absolute path a file name resolves to.
func (r *Resolver) Path(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(r.dir, name)
}

// Resolve reads name and parses it. A lexical error fails the import with
// the first syntax error; parse errors are returned on the Module.
func (r *Resolver) Resolve(name string) (*Module, error) {
	path := r.Path(name)
	data, err := util.ReadFile(r.fs, path)
	if err != nil {
		r.logger.Debug("import not readable", slog.String("path", path), slog.Any("error", err))
		return nil, &ImportError{Reason: FileNotFound, File: name, Err: err}
	}

	tokens, serrs := scanner.Scan(string(data))
	if len(serrs) > 0 {
		return nil, &ImportError{Reason: ImportSyntax, File: name, Err: serrs[0]}
	}

	stmts, perrs := parser.Parse(tokens)
	r.logger.Debug("resolved import",
		slog.String("path", path),
		slog.Int("statements", len(stmts)),
		slog.Int("parse-errors", len(perrs)))
	return &Module{Path: path, Stmts: stmts, ParseErrors: perrs}, nil
}

// CleanFileName strips the quotes and backslashes an import's string
// lexeme carries.
func CleanFileName(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' {
			return -1
		}
		return r
	}, raw)
}
