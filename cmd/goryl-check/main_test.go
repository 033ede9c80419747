package main

import (
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

func newFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for name, content := range files {
		if err := util.WriteFile(fs, name, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return fs
}

func TestCheckFile(t *testing.T) {
	fs := newFS(t, map[string]string{
		"ok.grl":     "let x = 1; print x;",
		"syntax.grl": "print #;",
		"parse.grl":  "print 1\nprint 2;",
	})

	if res := checkFile(fs, "ok.grl"); len(res.errors) != 0 {
		t.Errorf("expected no errors, got %v", res.errors)
	}

	res := checkFile(fs, "syntax.grl")
	if len(res.errors) != 1 || res.errors[0] != "Syntax Error: Unexpected token # on line 1" {
		t.Errorf("unexpected errors %v", res.errors)
	}

	res = checkFile(fs, "parse.grl")
	if len(res.errors) != 1 || !strings.HasPrefix(res.errors[0], "Parse Error on line 2:") {
		t.Errorf("unexpected errors %v", res.errors)
	}
}

func TestCheckFileExpectedError(t *testing.T) {
	fs := newFS(t, map[string]string{
		"neg.grl": "// EXPECTED: Error unterminated\nprint \"abc;",
	})
	res := checkFile(fs, "neg.grl")
	if !res.expectsError {
		t.Error("expected directive to be detected")
	}
	if len(res.errors) != 1 {
		t.Errorf("expected 1 error, got %v", res.errors)
	}
}

func TestRunDir(t *testing.T) {
	fs := newFS(t, map[string]string{
		"progs/a.grl":       "print 1;",
		"progs/sub/b.src":   "let b = true;",
		"progs/notes.txt":   "not goryl @",
		"progs/sub/bad.grl": "// EXPECTED: Error\nlet;",
	})
	var stdout, stderr strings.Builder
	code := run([]string{"--dir", "progs"}, fs, &stdout, &stderr)
	if code != 0 {
		t.Errorf("expected exit 0, got %d: %s%s", code, stdout.String(), stderr.String())
	}
	if !strings.Contains(stdout.String(), "Total:           3") {
		t.Errorf("expected 3 files checked, got '%s'", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Expected errors: 1") {
		t.Errorf("expected 1 negative test, got '%s'", stdout.String())
	}
}

func TestRunFailure(t *testing.T) {
	fs := newFS(t, map[string]string{"bad.grl": "print (1;"})
	var stdout, stderr strings.Builder
	if code := run([]string{"bad.grl"}, fs, &stdout, &stderr); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout.String(), "FAIL bad.grl") {
		t.Errorf("unexpected output '%s'", stdout.String())
	}
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr strings.Builder
	if code := run(nil, memfs.New(), &stdout, &stderr); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.HasPrefix(stderr.String(), "Usage: goryl-check") {
		t.Errorf("unexpected stderr '%s'", stderr.String())
	}
}
