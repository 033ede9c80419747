// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package ast defines goryl expression and statement nodes.
//
// Both families are closed: only the types in this package implement Expr
// and Stmt. Nodes are built once by the parser and never mutated.
package ast

import (
	"strconv"
	"strings"

	"nickandperla.net/goryl/internal/token"
)

// Expr is the interface all expression nodes implement.
type Expr interface {
	// String returns a parenthesized prefix form of the expression.
	String() string
	exprNode()
}

// Binary is an infix operation.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Inner Expr
}

// Literal is a constant. Value is a string, float64, bool, or nil for null.
type Literal struct {
	Value any
}

// Unary is a prefix operation.
type Unary struct {
	Operator token.Token
	Operand  Expr
}

// Variable is a reference to a named binding.
type Variable struct {
	Name token.Token
}

func (Binary) exprNode()   {}
func (Grouping) exprNode() {}
func (Literal) exprNode()  {}
func (Unary) exprNode()    {}
func (Variable) exprNode() {}

func (b Binary) String() string {
	return parenthesize(b.Operator.Lexeme, b.Left, b.Right)
}

func (g Grouping) String() string {
	return parenthesize("group", g.Inner)
}

func (l Literal) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return "?"
}

func (u Unary) String() string {
	return parenthesize(u.Operator.Lexeme, u.Operand)
}

func (v Variable) String() string {
	return v.Name.Lexeme
}

// Null returns the placeholder expression used for absent initializers and
// unparseable operands.
func Null() Expr {
	return Literal{}
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteString(" ")
		sb.WriteString(e.String())
	}
	sb.WriteString(")")
	return sb.String()
}
