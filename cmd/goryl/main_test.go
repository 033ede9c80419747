package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProgram(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr strings.Builder
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := writeProgram(t, dir, "main.grl", "let x = 20;\nprint x + 1;\n")

	code, out, _ := runCLI(t, "", path)
	if code != exitOK {
		t.Errorf("expected exit %d, got %d", exitOK, code)
	}
	if out != "21.0\n" {
		t.Errorf("expected '21.0', got '%s'", out)
	}
}

func TestRunFileWithImport(t *testing.T) {
	dir := t.TempDir()
	writeProgram(t, dir, "mod.src", "let v = 5;")
	path := writeProgram(t, dir, "main.grl", `import "mod.src"; print v;`)
	t.Chdir(dir)

	_, out, _ := runCLI(t, "", path)
	if out != "5.0\n" {
		t.Errorf("expected '5.0', got '%s'", out)
	}
}

func TestRunFileSelfImport(t *testing.T) {
	dir := t.TempDir()
	writeProgram(t, dir, "main.grl", `print "top"; import "main.grl";`)
	t.Chdir(dir)

	code, out, _ := runCLI(t, "", "main.grl")
	if n := strings.Count(out, `"top"`); n != 1 {
		t.Errorf("expected the file to run once, ran %d times: '%s'", n, out)
	}
	if !strings.Contains(out, "import cycle:") {
		t.Errorf("expected import cycle error, got '%s'", out)
	}
	if code != exitSoftware {
		t.Errorf("expected exit %d, got %d", exitSoftware, code)
	}
}

func TestTooManyArgs(t *testing.T) {
	code, out, _ := runCLI(t, "", "a.grl", "b.grl")
	if code != exitUsage {
		t.Errorf("expected exit %d, got %d", exitUsage, code)
	}
	if out != "Usage: goryl [flags] [file]\n" {
		t.Errorf("unexpected output '%s'", out)
	}
}

func TestMissingFile(t *testing.T) {
	code, out, _ := runCLI(t, "", filepath.Join(t.TempDir(), "absent.grl"))
	if code != exitFailure {
		t.Errorf("expected exit %d, got %d", exitFailure, code)
	}
	if !strings.HasPrefix(out, "Error: ") {
		t.Errorf("unexpected output '%s'", out)
	}
}

func TestExitStatusReflectsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		src  string
		want int
	}{
		{"print 1;", exitOK},
		{"print @;", exitDataErr},
		{"print 1", exitDataErr},
		{"print -true;", exitSoftware},
	}
	for i, tt := range tests {
		path := writeProgram(t, dir, filepath.Base(t.Name())+string(rune('a'+i))+".grl", tt.src)
		if code, _, _ := runCLI(t, "", path); code != tt.want {
			t.Errorf("%s: expected exit %d, got %d", tt.src, tt.want, code)
		}
	}
}

func TestStrictFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeProgram(t, dir, "main.grl", "print 1\nprint 2;")

	_, out, _ := runCLI(t, "", path)
	if !strings.Contains(out, "2.0") {
		t.Errorf("expected best-effort run, got '%s'", out)
	}
	_, out, _ = runCLI(t, "", "-strict", path)
	if strings.Contains(out, "2.0") {
		t.Errorf("expected strict mode to skip execution, got '%s'", out)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeProgram(t, dir, "goryl.yaml", "strict: true\n")
	path := writeProgram(t, dir, "main.grl", "print 1\nprint 2;")

	_, out, _ := runCLI(t, "", "-config", cfgPath, path)
	if strings.Contains(out, "2.0") {
		t.Errorf("expected config to enable strict mode, got '%s'", out)
	}
	_, out, _ = runCLI(t, "", "-config", cfgPath, "-strict=false", path)
	if !strings.Contains(out, "2.0") {
		t.Errorf("expected flag to override config, got '%s'", out)
	}
}

func TestBadConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeProgram(t, dir, "goryl.yaml", "colour: blue\n")
	code, _, errOut := runCLI(t, "", "-config", cfgPath)
	if code != exitFailure {
		t.Errorf("expected exit %d, got %d", exitFailure, code)
	}
	if !strings.Contains(errOut, "config: parse") {
		t.Errorf("unexpected stderr '%s'", errOut)
	}
}

func TestDBFlagPersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "bindings.db")
	first := writeProgram(t, dir, "first.grl", `let name = "goryl";`)
	second := writeProgram(t, dir, "second.grl", "print name;")

	if code, out, _ := runCLI(t, "", "-db", db, first); code != exitOK {
		t.Fatalf("first run failed with %d: %s", code, out)
	}
	_, out, _ := runCLI(t, "", "-db", db, second)
	if out != "\"goryl\"\n" {
		t.Errorf("expected '\"goryl\"', got '%s'", out)
	}
}

func TestListAndForgetBindings(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "bindings.db")
	prog := writeProgram(t, dir, "defs.grl", `let b = "two"; let a = 1; let c = true;`)
	if code, out, _ := runCLI(t, "", "-db", db, prog); code != exitOK {
		t.Fatalf("run failed with %d: %s", code, out)
	}

	code, out, _ := runCLI(t, "", "-db", db, "-list")
	if code != exitOK {
		t.Errorf("expected exit %d, got %d", exitOK, code)
	}
	want := "a = 1.0\nb = \"two\"\nc = true\n"
	if out != want {
		t.Errorf("expected '%s', got '%s'", want, out)
	}

	_, out, _ = runCLI(t, "", "-db", db, "-forget", "a, c", "-list")
	if out != "b = \"two\"\n" {
		t.Errorf("expected only b to remain, got '%s'", out)
	}
}

func TestListNeedsDatabase(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-list")
	if code != exitUsage {
		t.Errorf("expected exit %d, got %d", exitUsage, code)
	}
	if !strings.Contains(errOut, "need a database") {
		t.Errorf("unexpected stderr '%s'", errOut)
	}
}

func TestDebugDumps(t *testing.T) {
	dir := t.TempDir()
	path := writeProgram(t, dir, "main.grl", "print 1 + 2;")

	_, _, errOut := runCLI(t, "", "-debug-lex", "-debug-parse", path)
	if !strings.Contains(errOut, "PRINT") {
		t.Errorf("expected token dump, got '%s'", errOut)
	}
	if !strings.Contains(errOut, "print (+ 1 2);") {
		t.Errorf("expected statement dump, got '%s'", errOut)
	}
}

func TestBasicREPL(t *testing.T) {
	code, out, _ := runCLI(t, "let x = 1;\nprint x;\nprint 2 \\\n+ 3;\n")
	if code != exitOK {
		t.Errorf("expected exit %d, got %d", exitOK, code)
	}
	// Each line runs in a fresh runtime, so x is gone by the second line.
	if !strings.Contains(out, "Undefined variable 'x'") {
		t.Errorf("expected undefined variable error, got '%s'", out)
	}
	if !strings.Contains(out, "... 5.0\n") {
		t.Errorf("expected continued line to evaluate, got '%s'", out)
	}
}

func TestLineBuffer(t *testing.T) {
	var l lineBuffer
	if _, ok := l.add(`print "a" +\`); ok {
		t.Fatal("expected continuation")
	}
	if l.prompt() != "... " {
		t.Errorf("expected continuation prompt, got '%s'", l.prompt())
	}
	input, ok := l.add(`"b";`)
	if !ok {
		t.Fatal("expected complete input")
	}
	if input != "print \"a\" +\n\"b\";" {
		t.Errorf("unexpected input '%s'", input)
	}
	if l.prompt() != prompt {
		t.Errorf("expected prompt reset, got '%s'", l.prompt())
	}
}
