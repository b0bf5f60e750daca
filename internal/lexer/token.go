// Package lexer scans Crema source text into a token stream consumed by
// internal/parser. Token kinds and keyword spelling are drawn from the
// original Crema compiler's bison grammar (TIDENTIFIER, TDEF, TIF, TFOREACH,
// TAS, TSTRUCT, TRETURN and the comparison/arithmetic token set), extended
// with the bool/char literal forms and logical/bitwise operators spec.md's
// type lattice and operator table add beyond what that grammar had (see
// DESIGN.md).
package lexer

// Kind enumerates every token kind the lexer produces.
type Kind int

const (
	EOF Kind = iota
	ILLEGAL

	Ident
	IntLit
	UIntLit
	DoubleLit
	CharLit
	StringLit

	// Keywords
	KwDef
	KwStruct
	KwLet
	KwIf
	KwElseif
	KwElse
	KwForeach
	KwAs
	KwReturn
	KwTrue
	KwFalse

	// Type keywords
	KwInt
	KwUInt
	KwDouble
	KwBool
	KwChar
	KwVoid
	KwStr

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semi
	Dot
	Arrow // ->

	// Operators
	Assign // =
	Add
	Sub
	Mul
	Div
	Mod
	BitAnd
	BitOr
	BitXor
	And // &&
	Or  // ||
	Not // !
	Eq
	Neq
	Lt
	Leq
	Gt
	Geq
)

var keywords = map[string]Kind{
	"def":     KwDef,
	"struct":  KwStruct,
	"let":     KwLet,
	"if":      KwIf,
	"elseif":  KwElseif,
	"else":    KwElse,
	"foreach": KwForeach,
	"as":      KwAs,
	"return":  KwReturn,
	"true":    KwTrue,
	"false":   KwFalse,
	"int":     KwInt,
	"uint":    KwUInt,
	"double":  KwDouble,
	"bool":    KwBool,
	"char":    KwChar,
	"void":    KwVoid,
	"str":     KwStr,
}

// Token is one lexeme: its kind, literal text as it appeared in the source,
// and its starting line/column (1-based).
type Token struct {
	Kind Kind
	Lit  string
	Line int
	Col  int
}
