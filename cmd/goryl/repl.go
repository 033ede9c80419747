package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const prompt = "> "

// runREPL reads programs a line at a time. Every line runs in a fresh
// runtime. A line ending in a backslash continues on the next line.
func runREPL(stdin io.Reader, stdout, stderr io.Writer, opts options) int {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if err := runTerminalREPL(f, stdout, stderr, opts); err != nil {
			fmt.Fprintf(stderr, "Failed to set raw mode: %v\n", err)
		} else {
			return exitOK
		}
	}
	runBasicREPL(stdin, stdout, stderr, opts)
	return exitOK
}

// runBasicREPL handles non-TTY input (piped input).
func runBasicREPL(stdin io.Reader, stdout, stderr io.Writer, opts options) {
	reader := bufio.NewReader(stdin)
	var pending lineBuffer
	for {
		fmt.Fprint(stdout, pending.prompt())
		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			fmt.Fprintln(stdout)
			return
		}
		if input, ok := pending.add(strings.TrimRight(line, "\r\n")); ok {
			evalLine(input, stdout, stderr, opts)
		}
		if err != nil {
			fmt.Fprintln(stdout)
			return
		}
	}
}

// runTerminalREPL uses x/term line editing on a raw-mode terminal.
func runTerminalREPL(f *os.File, stdout, stderr io.Writer, opts options) error {
	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{f, stdout}, prompt)
	fmt.Fprint(t, "goryl REPL (Ctrl+D to exit)\n")

	var pending lineBuffer
	for {
		t.SetPrompt(pending.prompt())
		line, err := t.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(t, "Error: %v\n", err)
			}
			return nil
		}
		if input, ok := pending.add(line); ok {
			evalLine(input, t, stderr, opts)
		}
	}
}

func evalLine(input string, out, stderr io.Writer, opts options) {
	if strings.TrimSpace(input) == "" {
		return
	}
	dump(input, stderr, opts)
	runtime, err := newRuntime(out, opts)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	runtime.Run(input)
	if err := runtime.Close(); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
}

// lineBuffer joins backslash-continued lines.
type lineBuffer struct {
	b         strings.Builder
	multiline bool
}

func (l *lineBuffer) prompt() string {
	if l.multiline {
		return "... "
	}
	return prompt
}

// add appends line and reports whether a complete input is ready.
func (l *lineBuffer) add(line string) (string, bool) {
	if strings.HasSuffix(line, "\\") {
		l.b.WriteString(strings.TrimSuffix(line, "\\"))
		l.b.WriteString("\n")
		l.multiline = true
		return "", false
	}
	l.b.WriteString(line)
	input := l.b.String()
	l.b.Reset()
	l.multiline = false
	return input, true
}
