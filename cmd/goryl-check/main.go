// goryl-check: syntax checker for goryl source files.
//
// Scans and parses each file without running it and reports every
// syntax and parse error. A file whose "// EXPECTED:" lines mention an
// error is a negative test: errors are expected and do not fail the check.
//
// Usage:
//
//	goryl-check FILE [FILE...]
//	goryl-check --dir DIR
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"nickandperla.net/goryl/internal/parser"
	"nickandperla.net/goryl/internal/scanner"
)

// Extensions recognised when scanning a directory.
var sourceExts = []string{".grl", ".src"}

const expectedDirective = "// EXPECTED:"

// checkResult holds the outcome of checking a single file.
type checkResult struct {
	path         string
	errors       []string
	expectsError bool
}

// checkFile scans and parses a file and collects its diagnostics. Parsing
// only happens if scanning succeeded, as in a real run.
func checkFile(fs billy.Filesystem, path string) checkResult {
	content, err := util.ReadFile(fs, path)
	if err != nil {
		return checkResult{
			path:   path,
			errors: []string{fmt.Sprintf("read error: %v", err)},
		}
	}

	res := checkResult{path: path}
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, expectedDirective); ok {
			if strings.Contains(strings.ToLower(rest), "error") {
				res.expectsError = true
			}
		}
	}

	tokens, serrs := scanner.Scan(string(content))
	for _, e := range serrs {
		res.errors = append(res.errors, e.Error())
	}
	if len(serrs) > 0 {
		return res
	}
	_, perrs := parser.Parse(tokens)
	for _, e := range perrs {
		res.errors = append(res.errors, e.Error())
	}
	return res
}

// findSourceFiles recursively finds goryl files under dir.
func findSourceFiles(fs billy.Filesystem, dir string) ([]string, error) {
	var files []string
	err := util.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && isSource(path) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

func isSource(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range sourceExts {
		if ext == e {
			return true
		}
	}
	return false
}

func main() {
	os.Exit(run(os.Args[1:], osfs.New(""), os.Stdout, os.Stderr))
}

func run(args []string, fs billy.Filesystem, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: goryl-check [--dir DIR] FILE [FILE...]")
		return 1
	}

	var files []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--dir" {
			if i+1 >= len(args) {
				fmt.Fprintln(stderr, "Error: --dir requires an argument")
				return 1
			}
			i++
			found, err := findSourceFiles(fs, args[i])
			if err != nil {
				fmt.Fprintf(stderr, "Error scanning directory %s: %v\n", args[i], err)
				return 1
			}
			files = append(files, found...)
		} else {
			files = append(files, args[i])
		}
	}

	if len(files) == 0 {
		fmt.Fprintln(stderr, "No goryl files found")
		return 1
	}

	passed := 0
	failed := 0
	expectedErr := 0

	for _, f := range files {
		result := checkFile(fs, f)
		hasErrors := len(result.errors) > 0

		switch {
		case result.expectsError:
			expectedErr++
			if hasErrors {
				fmt.Fprintf(stdout, "OK   %s (expected error, found %d)\n", f, len(result.errors))
			} else {
				// Runtime errors are invisible to the checker.
				fmt.Fprintf(stdout, "OK   %s (expected error, parser accepted)\n", f)
			}
		case hasErrors:
			failed++
			fmt.Fprintf(stdout, "FAIL %s\n", f)
			for _, e := range result.errors {
				fmt.Fprintf(stdout, "     %s\n", e)
			}
		default:
			passed++
			fmt.Fprintf(stdout, "OK   %s\n", f)
		}
	}

	fmt.Fprintf(stdout, "\n--- Summary ---\n")
	fmt.Fprintf(stdout, "Passed:          %d\n", passed)
	fmt.Fprintf(stdout, "Expected errors: %d\n", expectedErr)
	fmt.Fprintf(stdout, "Failed:          %d\n", failed)
	fmt.Fprintf(stdout, "Total:           %d\n", len(files))

	if failed > 0 {
		return 1
	}
	return 0
}
