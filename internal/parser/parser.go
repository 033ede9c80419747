// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser builds goryl statements from a token slice.
//
// Grammar, lowest to highest precedence:
//
//	program    --> declaration* EOF ;
//	declaration--> "let" IDENTIFIER ( "=" expression )? ";" | statement ;
//	statement  --> "print" expression ";"
//	             | "import" STRING ";"
//	             | expression ";" ;
//	expression --> equality ;
//	equality   --> comparison ( ( "!=" | "==" ) comparison )* ;
//	comparison --> term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
//	term       --> factor ( ( "-" | "+" ) factor )* ;
//	factor     --> unary ( ( "/" | "*" ) unary )* ;
//	unary      --> ( "!" | "-" ) unary | primary ;
//	primary    --> NUMBER | STRING | "true" | "false" | "null"
//	             | "(" expression ")" | IDENTIFIER ;
//
// Parsing never aborts. A missing token is recorded as a ParseError and a
// placeholder node takes its place.
package parser

import (
	"nickandperla.net/goryl/internal/ast"
	"nickandperla.net/goryl/internal/diag"
	"nickandperla.net/goryl/internal/token"
)

// Parser is a recursive-descent parser over a scanned token slice.
type Parser struct {
	tokens  []token.Token
	current int
	errors  []*diag.ParseError
}

// New creates a Parser. tokens must end with an EOF token, as produced by
// the scanner.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens, token.Token{Type: token.EOF})
	}
	return &Parser{tokens: tokens}
}

// Parse parses tokens into statements, returning every parse error found.
func Parse(tokens []token.Token) ([]ast.Stmt, []*diag.ParseError) {
	p := New(tokens)
	stmts := p.Parse()
	return stmts, p.errors
}

// Parse parses declarations until EOF.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	return stmts
}

func (p *Parser) declaration() ast.Stmt {
	before := len(p.errors)
	start := p.current

	if p.match(token.LET) {
		stmt := p.letDeclaration()
		// A declaration that still reached its ';' has nothing left to skip.
		if len(p.errors) > before && p.previous().Type != token.SEMICOLON {
			p.synchronize()
		}
		return stmt
	}

	stmt := p.statement()
	// A statement that failed without consuming anything would be retried
	// forever on the same token.
	if len(p.errors) > before && p.current == start {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) letDeclaration() ast.Stmt {
	name, ok := p.consume(token.IDENTIFIER, "Expected an identifier")
	if !ok {
		name = token.Placeholder()
	}
	initializer := ast.Null()
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}
	p.consume(token.SEMICOLON, "Expected ; after variable declaration")
	return ast.Let{Name: name, Initializer: initializer}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.IMPORT):
		return p.importStatement()
	}
	return p.expressionStatement()
}

func (p *Parser) printStatement() ast.Stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(token.SEMICOLON, "Expected ; after value.")
	return ast.Print{Keyword: keyword, Expr: value}
}

func (p *Parser) importStatement() ast.Stmt {
	keyword := p.previous()
	file, ok := p.consume(token.STRING, "Expected file name")
	p.consume(token.SEMICOLON, "Expected ; after file name in import statement")
	if !ok {
		return ast.Expression{Expr: ast.Null()}
	}
	return ast.Import{Keyword: keyword, FileName: file.Lexeme}
}

func (p *Parser) expressionStatement() ast.Stmt {
	e := p.expression()
	p.consume(token.SEMICOLON, "Expected ; after expression")
	return ast.Expression{Expr: e}
}

func (p *Parser) expression() ast.Expr {
	return p.equality()
}

// Binary levels

func (p *Parser) equality() ast.Expr {
	return p.binary(p.comparison, token.BANG_EQUAL, token.EQUAL_EQUAL)
}

func (p *Parser) comparison() ast.Expr {
	return p.binary(p.term, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL)
}

func (p *Parser) term() ast.Expr {
	return p.binary(p.factor, token.MINUS, token.PLUS)
}

func (p *Parser) factor() ast.Expr {
	return p.binary(p.unary, token.SLASH, token.STAR)
}

// binary parses a left-associative chain of operand (op operand)*.
func (p *Parser) binary(operand func() ast.Expr, ops ...token.Type) ast.Expr {
	e := operand()
	for p.match(ops...) {
		op := p.previous()
		right := operand()
		e = ast.Binary{Left: e, Operator: op, Right: right}
	}
	return e
}

// Unary and primary

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		return ast.Unary{Operator: op, Operand: p.unary()}
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return ast.Literal{Value: false}
	case p.match(token.TRUE):
		return ast.Literal{Value: true}
	case p.match(token.NULL):
		return ast.Null()
	case p.match(token.NUMBER, token.STRING):
		return ast.Literal{Value: p.previous().Literal}
	case p.match(token.LEFT_PAREN):
		inner := p.expression()
		p.consume(token.RIGHT_PAREN, `Expected ")" after expression.`)
		return ast.Grouping{Inner: inner}
	case p.match(token.IDENTIFIER):
		return ast.Variable{Name: p.previous()}
	}
	p.errorAt(p.peek(), "Unexpected token")
	return ast.Null()
}

// Helpers

// consume advances past a token of type t, or records msg at the current
// token without advancing.
func (p *Parser) consume(t token.Type, msg string) (token.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	p.errorAt(p.peek(), msg)
	return token.Token{}, false
}

func (p *Parser) errorAt(tok token.Token, msg string) {
	p.errors = append(p.errors, &diag.ParseError{Token: tok, Msg: msg})
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

// synchronize skips the failing token, then stops right after a ';' or in
// front of a token that begins a statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		if p.peek().Type.StartsStatement() {
			return
		}
		p.advance()
	}
}
