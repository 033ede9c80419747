package ast

import "nickandperla.net/goryl/internal/token"

// Stmt is the interface all statement nodes implement.
type Stmt interface {
	String() string
	stmtNode()
}

// Expression evaluates an expression for its side effects and discards the
// result.
type Expression struct {
	Expr Expr
}

// Print writes the rendered value of Expr.
type Print struct {
	Keyword token.Token
	Expr    Expr
}

// Let binds Name to the value of Initializer. When the parser could not
// find an identifier, Name is token.Placeholder().
type Let struct {
	Name        token.Token
	Initializer Expr
}

// Import includes another source file. FileName is the raw string lexeme,
// quotes included.
type Import struct {
	Keyword  token.Token
	FileName string
}

func (Expression) stmtNode() {}
func (Print) stmtNode()      {}
func (Let) stmtNode()        {}
func (Import) stmtNode()     {}

func (s Expression) String() string { return s.Expr.String() + ";" }
func (s Print) String() string      { return "print " + s.Expr.String() + ";" }
func (s Let) String() string {
	return "let " + s.Name.Lexeme + " = " + s.Initializer.String() + ";"
}
func (s Import) String() string { return "import " + s.FileName + ";" }
