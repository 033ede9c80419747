// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines goryl token types and the scanned token record.
package token

import "fmt"

// Type identifies the lexical class of a token.
type Type int

const (
	// Single-character tokens.
	LEFT_PAREN Type = iota
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR

	// One or two character tokens.
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	// Literals.
	IDENTIFIER
	STRING
	NUMBER

	// Keywords.
	AND
	JUNGLE
	ELSE
	FALSE
	GORILLA
	FOR
	IF
	NULL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	LET
	WHILE
	IMPORT

	EOF
)

var names = [...]string{
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	COMMA:         "COMMA",
	DOT:           "DOT",
	MINUS:         "MINUS",
	PLUS:          "PLUS",
	SEMICOLON:     "SEMICOLON",
	SLASH:         "SLASH",
	STAR:          "STAR",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	AND:           "AND",
	JUNGLE:        "JUNGLE",
	ELSE:          "ELSE",
	FALSE:         "FALSE",
	GORILLA:       "GORILLA",
	FOR:           "FOR",
	IF:            "IF",
	NULL:          "NULL",
	OR:            "OR",
	PRINT:         "PRINT",
	RETURN:        "RETURN",
	SUPER:         "SUPER",
	THIS:          "THIS",
	TRUE:          "TRUE",
	LET:           "LET",
	WHILE:         "WHILE",
	IMPORT:        "IMPORT",
	EOF:           "EOF",
}

// String returns the string representation of a token type.
func (t Type) String() string {
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return "UNKNOWN"
}

// keywords maps reserved words to their token types. JUNGLE and GORILLA are
// the class-like words; they and the control-flow words are reserved but the
// grammar does not use them yet.
var keywords = map[string]Type{
	"and":     AND,
	"Jungle":  JUNGLE,
	"else":    ELSE,
	"false":   FALSE,
	"for":     FOR,
	"gorilla": GORILLA,
	"if":      IF,
	"null":    NULL,
	"or":      OR,
	"print":   PRINT,
	"return":  RETURN,
	"super":   SUPER,
	"this":    THIS,
	"true":    TRUE,
	"let":     LET,
	"while":   WHILE,
	"import":  IMPORT,
}

// Lookup returns the keyword type for word, or IDENTIFIER.
func Lookup(word string) Type {
	if t, ok := keywords[word]; ok {
		return t
	}
	return IDENTIFIER
}

// StartsStatement returns true if t can begin a new statement. The parser
// stops skipping tokens here when recovering from an error.
func (t Type) StartsStatement() bool {
	switch t {
	case JUNGLE, GORILLA, LET, FOR, IF, WHILE, PRINT, RETURN:
		return true
	}
	return false
}

// Token is a classified lexeme.
//
// Literal holds the decoded value of STRING (string) and NUMBER (float64)
// tokens and is nil otherwise. Start and End are byte offsets into the
// scanned source; Lexeme is always source[Start:End].
type Token struct {
	Type    Type
	Lexeme  string
	Literal any
	Line    int
	Start   int
	End     int
}

// Placeholder returns the synthetic EOF token the parser substitutes when a
// required name is missing.
func Placeholder() Token {
	return Token{Type: EOF}
}

// String implements fmt.Stringer.
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %q %v", t.Type, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
}
