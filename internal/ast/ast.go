// Package ast defines Crema's abstract syntax tree: a value tree owned by a
// single compilation unit, with unique ownership of children and
// cross-references resolved by identifier string rather than by pointer.
//
// Every node is produced by the parser (internal/parser), mutated only by
// the analyzer (internal/analyzer, which fills each Expr's Type slot), and
// then read only by the emitter (internal/emit).
package ast

import "github.com/ainfosec/crema/internal/types"

// Position is a source span, used only for diagnostics. The lexer/parser
// populate it; the core never inspects its fields beyond passing them to
// diagnostics.
type Position struct {
	Line, Col int
}

// Node is the root interface implemented by every statement and expression.
type Node interface {
	Pos() Position
}

// Stmt is implemented by every statement-level AST node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression-level AST node. Every Expr has a
// mutable Type slot filled in by the analyzer; it is Invalid until then.
type Expr interface {
	Node
	exprNode()
	Type() types.Type
	SetType(types.Type)
}

// ExprBase carries the position and mutable type slot shared by every
// expression node, mirroring the teacher's ExprBase/NewExprBase split.
type ExprBase struct {
	position Position
	typ      types.Type
}

// NewExprBase creates an ExprBase at the given position with an as-yet
// unresolved (Invalid) type.
func NewExprBase(pos Position) ExprBase {
	return ExprBase{position: pos, typ: types.InvalidType}
}

func (b *ExprBase) Pos() Position          { return b.position }
func (b *ExprBase) Type() types.Type       { return b.typ }
func (b *ExprBase) SetType(t types.Type)   { b.typ = t }
func (b *ExprBase) exprNode()              {}

// StmtBase carries the position shared by every statement node.
type StmtBase struct {
	position Position
}

func NewStmtBase(pos Position) StmtBase { return StmtBase{position: pos} }

func (b *StmtBase) Pos() Position { return b.position }
func (b *StmtBase) stmtNode()     {}

// Block is a sequence of statements sharing a lexical scope.
type Block struct {
	StmtBase
	Stmts []Stmt
}

func NewBlock(pos Position, stmts []Stmt) *Block {
	return &Block{StmtBase: NewStmtBase(pos), Stmts: stmts}
}
