package ast

import "github.com/ainfosec/crema/internal/types"

// VarDecl declares a block-scoped variable, optionally with an initializer.
type VarDecl struct {
	StmtBase
	Name        string
	DeclType    types.Type
	Initializer Expr // nil if no initializer
}

// RecordMember is one named, typed field of a record declaration. Order is
// significant: it defines the IR struct layout.
type RecordMember struct {
	Name string
	Type types.Type
}

// RecordDecl declares a named aggregate type with an ordered member list.
type RecordDecl struct {
	StmtBase
	Name    string
	Members []RecordMember
}

// Param is one formal parameter of a function declaration.
type Param struct {
	Name string
	Type types.Type
}

// FuncDecl declares a top-level function. Body is nil for an external
// (stdlib) declaration.
type FuncDecl struct {
	StmtBase
	Name       string
	ReturnType types.Type
	Params     []Param
	Body       *Block // nil => external declaration
}
