// Command goryl is the goryl interpreter CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"nickandperla.net/goryl/internal/config"
	"nickandperla.net/goryl/internal/parser"
	"nickandperla.net/goryl/internal/scanner"
	"nickandperla.net/goryl/pkg/goryl"
)

// Exit statuses, following sysexits(3).
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 64
	exitDataErr  = 65
	exitSoftware = 70
)

type options struct {
	cfg        config.Config
	debugLex   bool
	debugParse bool
	logger     *slog.Logger
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("goryl", flag.ContinueOnError)
	fset.SetOutput(stderr)
	var (
		configPath     = fset.String("config", "", "YAML config file")
		dbPath         = fset.String("db", "", "SQLite database for persistent bindings")
		strict         = fset.Bool("strict", false, "Do not run programs that fail to parse")
		maxImportDepth = fset.Int("max-import-depth", config.DefaultMaxImportDepth, "Maximum import nesting")
		verbose        = fset.Bool("verbose", false, "Log interpreter tracing to stderr")
		debugLex       = fset.Bool("debug-lex", false, "Dump tokens to stderr before running")
		debugParse     = fset.Bool("debug-parse", false, "Dump statements to stderr before running")
		list           = fset.Bool("list", false, "List the bindings stored in -db and exit")
		forget         = fset.String("forget", "", "Comma-separated bindings to remove from -db, then exit")
	)
	fset.Usage = func() {
		fmt.Fprintln(stderr, "Usage: goryl [flags] [file]")
		fset.PrintDefaults()
	}
	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	// Flags given explicitly win over the config file.
	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "db":
			cfg.DB = *dbPath
		case "strict":
			cfg.Strict = *strict
		case "max-import-depth":
			cfg.MaxImportDepth = *maxImportDepth
		case "verbose":
			cfg.Verbose = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	opts := options{
		cfg:        cfg,
		debugLex:   *debugLex,
		debugParse: *debugParse,
		logger:     newLogger(cfg.Verbose, stderr),
	}

	if *list || *forget != "" {
		if cfg.DB == "" {
			fmt.Fprintln(stderr, "Error: -list and -forget need a database (-db or config db)")
			return exitUsage
		}
		if err := manageBindings(cfg.DB, *forget, *list, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}
		return exitOK
	}

	switch fset.NArg() {
	case 0:
		return runREPL(stdin, stdout, stderr, opts)
	case 1:
		return runFile(fset.Arg(0), stdout, stderr, opts)
	default:
		fmt.Fprintln(stdout, "Usage: goryl [flags] [file]")
		return exitUsage
	}
}

func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newRuntime builds a runtime writing to out according to opts.
func newRuntime(out io.Writer, opts options) (*goryl.Runtime, error) {
	rOpts := []goryl.Option{
		goryl.WithOutput(out),
		goryl.WithLogger(opts.logger),
		goryl.WithMaxImportDepth(opts.cfg.MaxImportDepth),
	}
	if opts.cfg.DB != "" {
		rOpts = append(rOpts, goryl.WithSQLiteStore(opts.cfg.DB))
	}
	if opts.cfg.Strict {
		rOpts = append(rOpts, goryl.WithHaltOnParseError())
	}
	return goryl.New(rOpts...)
}

func runFile(path string, stdout, stderr io.Writer, opts options) int {
	if opts.debugLex || opts.debugParse {
		if data, err := os.ReadFile(path); err == nil {
			dump(string(data), stderr, opts)
		}
	}

	runtime, err := newRuntime(stdout, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	res, err := runtime.RunFile(path)
	if err != nil {
		runtime.Close()
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return exitFailure
	}
	if err := runtime.Close(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitStatus(res)
}

func exitStatus(res goryl.Result) int {
	switch {
	case res.SyntaxErrors > 0 || res.ParseErrors > 0:
		return exitDataErr
	case res.RuntimeErrors > 0:
		return exitSoftware
	}
	return exitOK
}

// dump writes the token stream and/or the parsed statements of source.
func dump(source string, w io.Writer, opts options) {
	if !opts.debugLex && !opts.debugParse {
		return
	}
	tokens, serrs := scanner.Scan(source)
	if opts.debugLex {
		for _, tok := range tokens {
			fmt.Fprintf(w, "%4d %-14s %s\n", tok.Line, tok.Type, strconv.Quote(tok.Lexeme))
		}
	}
	if opts.debugParse && len(serrs) == 0 {
		stmts, _ := parser.Parse(tokens)
		for _, stmt := range stmts {
			fmt.Fprintln(w, stmt)
		}
	}
}
