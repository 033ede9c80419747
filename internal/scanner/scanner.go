// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner converts goryl source text into tokens.
package scanner

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"nickandperla.net/goryl/internal/diag"
	"nickandperla.net/goryl/internal/token"
)

// Scanner tokenizes goryl source in a single left-to-right pass.
type Scanner struct {
	source  string
	tokens  []token.Token
	errors  []*diag.SyntaxError
	start   int // Byte offset where the current lexeme began
	current int // Byte offset of the next unread rune
	line    int // Current line number (1-based)
}

// New creates a new Scanner over source.
func New(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
	}
}

// Scan tokenizes source and returns the tokens along with every lexical
// error encountered. The token slice always ends with an EOF token.
func Scan(source string) ([]token.Token, []*diag.SyntaxError) {
	return New(source).ScanTokens()
}

// ScanTokens scans the whole source. Errors do not stop the scan.
func (s *Scanner) ScanTokens() ([]token.Token, []*diag.SyntaxError) {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.Token{
		Type:  token.EOF,
		Line:  s.line,
		Start: s.current,
		End:   s.current,
	})
	return s.tokens, s.errors
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LEFT_PAREN)
	case ')':
		s.addToken(token.RIGHT_PAREN)
	case '{':
		s.addToken(token.LEFT_BRACE)
	case '}':
		s.addToken(token.RIGHT_BRACE)
	case ',':
		s.addToken(token.COMMA)
	case '.':
		s.addToken(token.DOT)
	case '-':
		s.addToken(token.MINUS)
	case '+':
		s.addToken(token.PLUS)
	case ';':
		s.addToken(token.SEMICOLON)
	case '*':
		s.addToken(token.STAR)
	case '!':
		s.addCompound('=', token.BANG_EQUAL, token.BANG)
	case '=':
		s.addCompound('=', token.EQUAL_EQUAL, token.EQUAL)
	case '<':
		s.addCompound('=', token.LESS_EQUAL, token.LESS)
	case '>':
		s.addCompound('=', token.GREATER_EQUAL, token.GREATER)
	case '/':
		if s.match('/') {
			// Line comment runs to end of line
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		} else {
			s.addToken(token.SLASH)
		}
	case ' ', '\r', '\t', '\\':
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case unicode.IsLetter(c):
			s.scanIdentifier()
		default:
			s.errors = append(s.errors, diag.NewUnexpectedToken(c, s.line))
		}
	}
}

func (s *Scanner) scanString() {
	startLine := s.line
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.isAtEnd() {
		s.errors = append(s.errors, diag.NewUnterminatedString(startLine))
		s.addLiteral(token.STRING, s.source[s.start+1:s.current])
		return
	}

	// Closing quote
	s.advance()
	s.addLiteral(token.STRING, s.source[s.start+1:s.current-1])
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	text := s.source[s.start:s.current]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.errors = append(s.errors, diag.NewMalformedNumber(text, s.line))
		return
	}
	s.addLiteral(token.NUMBER, n)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	s.addToken(token.Lookup(s.source[s.start:s.current]))
}

// Helpers

func (s *Scanner) addToken(t token.Type) {
	s.addLiteral(t, nil)
}

func (s *Scanner) addLiteral(t token.Type, literal any) {
	s.tokens = append(s.tokens, token.Token{
		Type:    t,
		Lexeme:  s.source[s.start:s.current],
		Literal: literal,
		Line:    s.line,
		Start:   s.start,
		End:     s.current,
	})
}

// addCompound emits compound if the next rune is expected, single otherwise.
func (s *Scanner) addCompound(expected rune, compound, single token.Type) {
	if s.match(expected) {
		s.addToken(compound)
		return
	}
	s.addToken(single)
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) advance() rune {
	if s.isAtEnd() {
		return 0
	}
	r, width := utf8.DecodeRuneInString(s.source[s.current:])
	s.current += width
	return r
}

// match consumes the next rune if it is expected.
func (s *Scanner) match(expected rune) bool {
	if s.isAtEnd() {
		return false
	}
	r, width := utf8.DecodeRuneInString(s.source[s.current:])
	if r != expected {
		return false
	}
	s.current += width
	return true
}

// peek returns the next rune without consuming it, or 0 at end of input.
func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.current:])
	return r
}

// peekNext returns the rune after the next one, or 0 past end of input.
func (s *Scanner) peekNext() rune {
	if s.isAtEnd() {
		return 0
	}
	_, width := utf8.DecodeRuneInString(s.source[s.current:])
	if s.current+width >= len(s.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.current+width:])
	return r
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
