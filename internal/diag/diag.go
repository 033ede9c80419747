// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package diag defines the syntax, parse and runtime errors reported by the
// goryl pipeline and the Reporter that prints them.
package diag

import (
	"fmt"

	"nickandperla.net/goryl/internal/token"
)

// Kind classifies a diagnostic by the pipeline stage that produced it.
type Kind int

const (
	Syntax Kind = iota
	Parse
	Runtime
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax"
	case Parse:
		return "parse"
	case Runtime:
		return "runtime"
	}
	return "unknown"
}

// Diagnostic is implemented by every error the pipeline reports to the user.
type Diagnostic interface {
	error
	Kind() Kind
	Line() int
}

// SyntaxKind distinguishes the scanner's failure modes.
type SyntaxKind int

const (
	UnexpectedToken SyntaxKind = iota
	UnterminatedString
	MalformedNumber
)

// SyntaxError is a lexical error recorded by the scanner.
type SyntaxError struct {
	Reason SyntaxKind
	Text   string // offending character or numeric text
	line   int
}

// NewUnexpectedToken records a character the scanner has no rule for.
func NewUnexpectedToken(c rune, line int) *SyntaxError {
	return &SyntaxError{Reason: UnexpectedToken, Text: string(c), line: line}
}

// NewUnterminatedString records a string literal that runs to end of input.
// line is where the string began.
func NewUnterminatedString(line int) *SyntaxError {
	return &SyntaxError{Reason: UnterminatedString, line: line}
}

// NewMalformedNumber records numeric text that does not fit a float64.
func NewMalformedNumber(text string, line int) *SyntaxError {
	return &SyntaxError{Reason: MalformedNumber, Text: text, line: line}
}

// Message returns the error text without the "Syntax Error" prefix.
func (e *SyntaxError) Message() string {
	switch e.Reason {
	case UnterminatedString:
		return fmt.Sprintf("Unterminated string on line %d", e.line)
	case MalformedNumber:
		return fmt.Sprintf("Malformed number %s on line %d", e.Text, e.line)
	default:
		return fmt.Sprintf("Unexpected token %s on line %d", e.Text, e.line)
	}
}

func (e *SyntaxError) Error() string { return "Syntax Error: " + e.Message() }
func (e *SyntaxError) Kind() Kind    { return Syntax }
func (e *SyntaxError) Line() int     { return e.line }

// ParseError is a grammar violation at a specific token.
type ParseError struct {
	Token token.Token
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse Error on line %d: %s", e.Token.Line, e.Msg)
}
func (e *ParseError) Kind() Kind { return Parse }
func (e *ParseError) Line() int  { return e.Token.Line }

// RuntimeError is a failure while evaluating a statement.
type RuntimeError struct {
	Msg  string
	line int
}

// NewRuntimeError creates a RuntimeError at line.
func NewRuntimeError(line int, msg string) *RuntimeError {
	return &RuntimeError{Msg: msg, line: line}
}

// Runtimef creates a RuntimeError with a formatted message.
func Runtimef(line int, format string, args ...any) *RuntimeError {
	return NewRuntimeError(line, fmt.Sprintf(format, args...))
}

func (e *RuntimeError) Error() string {
	if e.line <= 0 {
		return "Runtime error: " + e.Msg
	}
	return fmt.Sprintf("Runtime error on line %d: %s", e.line, e.Msg)
}
func (e *RuntimeError) Kind() Kind { return Runtime }
func (e *RuntimeError) Line() int  { return e.line }
