// Package parser is a hand-written recursive-descent parser producing an
// *ast.Block from Crema source text. It is genuinely external to the
// compiler core: neither internal/analyzer nor internal/emit import it,
// only internal/ast.
//
// Concrete surface syntax (keywords, braces, the `foreach x as list`
// form) is this repo's own, grounded on the keyword and operator
// vocabulary of the original Crema compiler's bison grammar (TDEF, TIF,
// TFOREACH, TAS, TSTRUCT, TRETURN, and the arithmetic/comparison token
// set -- see internal/lexer) since the grammar file itself did not survive
// into the retrieval pack; bool/char literals and the bitwise/logical
// operators spec.md's type lattice and operator table add are new surface
// forms layered on top of that vocabulary (see DESIGN.md).
package parser

import (
	"fmt"

	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/lexer"
	"github.com/ainfosec/crema/internal/types"
)

// Parser holds a two-token lookahead window over a lexer's token stream.
type Parser struct {
	lex       *lexer.Lexer
	cur, peek lexer.Token
}

// New creates a Parser over src.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.cur = p.lex.NextToken()
	p.peek = p.lex.NextToken()
	return p
}

// Parse parses src in full and returns the program's top-level block.
func Parse(src string) (*ast.Block, error) {
	return New(src).ParseProgram()
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) pos() ast.Position {
	return ast.Position{Line: p.cur.Line, Col: p.cur.Col}
}

func (p *Parser) expect(k lexer.Kind, what string) (lexer.Token, error) {
	if p.cur.Kind != k {
		return lexer.Token{}, fmt.Errorf("line %d: expected %s, got %q", p.cur.Line, what, p.cur.Lit)
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

// ParseProgram parses every top-level statement until EOF.
func (p *Parser) ParseProgram() (*ast.Block, error) {
	pos := p.pos()
	var stmts []ast.Stmt
	for p.cur.Kind != lexer.EOF {
		s, err := p.parseTopStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return ast.NewBlock(pos, stmts), nil
}

// parseTopStmt parses a top-level statement: a function/record declaration,
// or any ordinary statement (which runs inline in the program's entry
// point, per the emitter's module prelude).
func (p *Parser) parseTopStmt() (ast.Stmt, error) {
	switch p.cur.Kind {
	case lexer.KwDef:
		return p.parseFuncDecl()
	case lexer.KwStruct:
		return p.parseRecordDecl()
	default:
		return p.parseStmt()
	}
}

func (p *Parser) parseType() (types.Type, error) {
	var t types.Type
	switch p.cur.Kind {
	case lexer.KwInt:
		t = types.Scalar(types.Int)
	case lexer.KwUInt:
		t = types.Scalar(types.UInt)
	case lexer.KwDouble:
		t = types.Scalar(types.Double)
	case lexer.KwBool:
		t = types.Scalar(types.Bool)
	case lexer.KwChar:
		t = types.Scalar(types.Char)
	case lexer.KwVoid:
		t = types.Scalar(types.Void)
	case lexer.KwStr:
		p.advance()
		return types.ListOf(types.Char), nil
	case lexer.Ident:
		t = types.RecordType(p.cur.Lit, false)
	default:
		return types.Type{}, fmt.Errorf("line %d: expected a type, got %q", p.cur.Line, p.cur.Lit)
	}
	p.advance()

	if p.cur.Kind == lexer.LBracket {
		p.advance()
		if _, err := p.expect(lexer.RBracket, "]"); err != nil {
			return types.Type{}, err
		}
		t.IsList = true
	}
	return t, nil
}

// parseFuncDecl parses `def name(param: type, ...) -> type { ... }`.
func (p *Parser) parseFuncDecl() (*ast.FuncDecl, error) {
	pos := p.pos()
	p.advance() // 'def'

	name, err := p.expect(lexer.Ident, "function name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LParen, "("); err != nil {
		return nil, err
	}

	var params []ast.Param
	for p.cur.Kind != lexer.RParen {
		if len(params) > 0 {
			if _, err := p.expect(lexer.Comma, ","); err != nil {
				return nil, err
			}
		}
		pname, err := p.expect(lexer.Ident, "parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon, ":"); err != nil {
			return nil, err
		}
		ptype, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: pname.Lit, Type: ptype})
	}
	p.advance() // ')'

	if _, err := p.expect(lexer.Arrow, "->"); err != nil {
		return nil, err
	}
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{
		StmtBase:   ast.NewStmtBase(pos),
		Name:       name.Lit,
		ReturnType: retType,
		Params:     params,
		Body:       body,
	}, nil
}

// parseRecordDecl parses `struct name { field: type ... }`, with optional
// trailing commas or semicolons between members.
func (p *Parser) parseRecordDecl() (*ast.RecordDecl, error) {
	pos := p.pos()
	p.advance() // 'struct'

	name, err := p.expect(lexer.Ident, "struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace, "{"); err != nil {
		return nil, err
	}

	var members []ast.RecordMember
	for p.cur.Kind != lexer.RBrace {
		mname, err := p.expect(lexer.Ident, "field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon, ":"); err != nil {
			return nil, err
		}
		mtype, err := p.parseType()
		if err != nil {
			return nil, err
		}
		members = append(members, ast.RecordMember{Name: mname.Lit, Type: mtype})

		if p.cur.Kind == lexer.Comma || p.cur.Kind == lexer.Semi {
			p.advance()
		}
	}
	p.advance() // '}'

	return &ast.RecordDecl{
		StmtBase: ast.NewStmtBase(pos),
		Name:     name.Lit,
		Members:  members,
	}, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	pos := p.pos()
	if _, err := p.expect(lexer.LBrace, "{"); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for p.cur.Kind != lexer.RBrace {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.advance() // '}'
	return ast.NewBlock(pos, stmts), nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur.Kind {
	case lexer.KwLet:
		return p.parseVarDecl()
	case lexer.KwIf:
		return p.parseIf()
	case lexer.KwForeach:
		return p.parseForeach()
	case lexer.KwReturn:
		return p.parseReturn()
	case lexer.Ident:
		return p.parseAssignment()
	default:
		return nil, fmt.Errorf("line %d: unexpected token %q at start of statement", p.cur.Line, p.cur.Lit)
	}
}

// parseVarDecl parses `let name: type [= expr];`.
func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	pos := p.pos()
	p.advance() // 'let'

	name, err := p.expect(lexer.Ident, "variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon, ":"); err != nil {
		return nil, err
	}
	declType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	var init ast.Expr
	if p.cur.Kind == lexer.Assign {
		p.advance()
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.Semi, ";"); err != nil {
		return nil, err
	}

	return &ast.VarDecl{
		StmtBase:    ast.NewStmtBase(pos),
		Name:        name.Lit,
		DeclType:    declType,
		Initializer: init,
	}, nil
}

// parseAssignment parses any of the three assignment forms: scalar
// (`name = v;`), list element (`name[idx] = v;` or append `name[] = v;`),
// or record field (`name.field = v;`).
func (p *Parser) parseAssignment() (ast.Stmt, error) {
	pos := p.pos()
	name, _ := p.expect(lexer.Ident, "identifier")

	switch p.cur.Kind {
	case lexer.LBracket:
		p.advance()
		var idx ast.Expr
		if p.cur.Kind != lexer.RBracket {
			var err error
			idx, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.RBracket, "]"); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Assign, "="); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semi, ";"); err != nil {
			return nil, err
		}
		return &ast.AssignListElt{
			StmtBase: ast.NewStmtBase(pos),
			ListName: name.Lit,
			Index:    idx,
			Value:    val,
		}, nil

	case lexer.Dot:
		p.advance()
		field, err := p.expect(lexer.Ident, "field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Assign, "="); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semi, ";"); err != nil {
			return nil, err
		}
		return &ast.AssignRecordField{
			StmtBase:   ast.NewStmtBase(pos),
			RecordName: name.Lit,
			Field:      field.Lit,
			Value:      val,
		}, nil

	default:
		if _, err := p.expect(lexer.Assign, "="); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Semi, ";"); err != nil {
			return nil, err
		}
		return &ast.AssignScalar{
			StmtBase: ast.NewStmtBase(pos),
			Name:     name.Lit,
			Value:    val,
		}, nil
	}
}

// parseIf parses `if cond { ... } (elseif cond { ... })* (else { ... })?`.
func (p *Parser) parseIf() (*ast.If, error) {
	pos := p.pos()
	p.advance() // 'if'

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseIfs []ast.ElseIf
	for p.cur.Kind == lexer.KwElseif {
		p.advance()
		eiCond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		eiBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		elseIfs = append(elseIfs, ast.ElseIf{Cond: eiCond, Body: eiBody})
	}

	var els *ast.Block
	if p.cur.Kind == lexer.KwElse {
		p.advance()
		els, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{
		StmtBase: ast.NewStmtBase(pos),
		Cond:     cond,
		Then:     then,
		ElseIfs:  elseIfs,
		Else:     els,
	}, nil
}

// parseForeach parses `foreach iterVar as listName { ... }`.
func (p *Parser) parseForeach() (*ast.Foreach, error) {
	pos := p.pos()
	p.advance() // 'foreach'

	iterVar, err := p.expect(lexer.Ident, "iteration variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwAs, "'as'"); err != nil {
		return nil, err
	}
	listName, err := p.expect(lexer.Ident, "list name")
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Foreach{
		StmtBase: ast.NewStmtBase(pos),
		ListName: listName.Lit,
		IterVar:  iterVar.Lit,
		Body:     body,
	}, nil
}

// parseReturn parses `return [expr];`.
func (p *Parser) parseReturn() (*ast.Return, error) {
	pos := p.pos()
	p.advance() // 'return'

	var val ast.Expr
	if p.cur.Kind != lexer.Semi {
		var err error
		val, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.Semi, ";"); err != nil {
		return nil, err
	}

	return &ast.Return{StmtBase: ast.NewStmtBase(pos), Value: val}, nil
}
