package parser

import (
	"fmt"
	"strconv"

	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/lexer"
)

// parseExpr parses a full expression via precedence climbing, starting at
// the lowest-precedence operator (logical or).
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseAnd, map[lexer.Kind]ast.Op{lexer.Or: ast.OpOr})
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseBitOr, map[lexer.Kind]ast.Op{lexer.And: ast.OpAnd})
}

func (p *Parser) parseBitOr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseBitXor, map[lexer.Kind]ast.Op{lexer.BitOr: ast.OpBitOr})
}

func (p *Parser) parseBitXor() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseBitAnd, map[lexer.Kind]ast.Op{lexer.BitXor: ast.OpBitXor})
}

func (p *Parser) parseBitAnd() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseEquality, map[lexer.Kind]ast.Op{lexer.BitAnd: ast.OpBitAnd})
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseRelational, map[lexer.Kind]ast.Op{
		lexer.Eq:  ast.OpEq,
		lexer.Neq: ast.OpNeq,
	})
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseAdditive, map[lexer.Kind]ast.Op{
		lexer.Lt:  ast.OpLt,
		lexer.Leq: ast.OpLeq,
		lexer.Gt:  ast.OpGt,
		lexer.Geq: ast.OpGeq,
	})
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, map[lexer.Kind]ast.Op{
		lexer.Add: ast.OpAdd,
		lexer.Sub: ast.OpSub,
	})
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseUnary, map[lexer.Kind]ast.Op{
		lexer.Mul: ast.OpMul,
		lexer.Div: ast.OpDiv,
		lexer.Mod: ast.OpMod,
	})
}

// parseBinaryLevel parses a left-associative chain of operators at one
// precedence level, given the next-higher level's parse function and the
// token-kind -> Op mapping this level recognizes.
func (p *Parser) parseBinaryLevel(next func() (ast.Expr, error), ops map[lexer.Kind]ast.Op) (ast.Expr, error) {
	lhs, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.cur.Kind]
		if !ok {
			return lhs, nil
		}
		pos := p.pos()
		p.advance()
		rhs, err := next()
		if err != nil {
			return nil, err
		}
		base := ast.NewExprBase(pos)
		lhs = &ast.BinaryOp{ExprBase: base, Op: op, Lhs: lhs, Rhs: rhs}
	}
}

// parseUnary handles the sole unary operator spec.md's operator table
// defines: logical not. There is no unary minus; negative values are
// written as a subtraction (`0 - x`).
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.cur.Kind == lexer.Not {
		pos := p.pos()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryNot{ExprBase: ast.NewExprBase(pos), Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	pos := p.pos()

	switch p.cur.Kind {
	case lexer.IntLit:
		v, err := strconv.ParseInt(p.cur.Lit, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid int literal %q: %v", p.cur.Line, p.cur.Lit, err)
		}
		p.advance()
		return &ast.IntLit{ExprBase: ast.NewExprBase(pos), Value: v}, nil

	case lexer.UIntLit:
		v, err := strconv.ParseUint(p.cur.Lit, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid uint literal %q: %v", p.cur.Line, p.cur.Lit, err)
		}
		p.advance()
		return &ast.UIntLit{ExprBase: ast.NewExprBase(pos), Value: v}, nil

	case lexer.DoubleLit:
		v, err := strconv.ParseFloat(p.cur.Lit, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid double literal %q: %v", p.cur.Line, p.cur.Lit, err)
		}
		p.advance()
		return &ast.DoubleLit{ExprBase: ast.NewExprBase(pos), Value: v}, nil

	case lexer.KwTrue:
		p.advance()
		return &ast.BoolLit{ExprBase: ast.NewExprBase(pos), Value: true}, nil

	case lexer.KwFalse:
		p.advance()
		return &ast.BoolLit{ExprBase: ast.NewExprBase(pos), Value: false}, nil

	case lexer.CharLit:
		r := []rune(p.cur.Lit)[0]
		p.advance()
		return &ast.CharLit{ExprBase: ast.NewExprBase(pos), Value: r}, nil

	case lexer.StringLit:
		s := p.cur.Lit
		p.advance()
		return &ast.StringLit{ExprBase: ast.NewExprBase(pos), Value: s}, nil

	case lexer.LBracket:
		return p.parseListLit(pos)

	case lexer.LParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, ")"); err != nil {
			return nil, err
		}
		return e, nil

	case lexer.Ident:
		return p.parseIdentExpr(pos)

	default:
		return nil, fmt.Errorf("line %d: unexpected token %q in expression", p.cur.Line, p.cur.Lit)
	}
}

func (p *Parser) parseListLit(pos ast.Position) (ast.Expr, error) {
	p.advance() // '['
	var elems []ast.Expr
	for p.cur.Kind != lexer.RBracket {
		if len(elems) > 0 {
			if _, err := p.expect(lexer.Comma, ","); err != nil {
				return nil, err
			}
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	p.advance() // ']'
	return &ast.ListLit{ExprBase: ast.NewExprBase(pos), Elements: elems}, nil
}

// parseIdentExpr disambiguates the four identifier-headed expression forms:
// a call (`name(...)`), a list access (`name[expr]`), a record access
// (`name.field`), or a bare variable access.
func (p *Parser) parseIdentExpr(pos ast.Position) (ast.Expr, error) {
	name := p.cur.Lit
	p.advance()

	switch p.cur.Kind {
	case lexer.LParen:
		p.advance()
		var args []ast.Expr
		for p.cur.Kind != lexer.RParen {
			if len(args) > 0 {
				if _, err := p.expect(lexer.Comma, ","); err != nil {
					return nil, err
				}
			}
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		p.advance() // ')'
		return &ast.FunctionCall{ExprBase: ast.NewExprBase(pos), Name: name, Args: args}, nil

	case lexer.LBracket:
		p.advance()
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBracket, "]"); err != nil {
			return nil, err
		}
		return &ast.ListAccess{ExprBase: ast.NewExprBase(pos), ListName: name, Index: idx}, nil

	case lexer.Dot:
		p.advance()
		field, err := p.expect(lexer.Ident, "field name")
		if err != nil {
			return nil, err
		}
		return &ast.RecordAccess{ExprBase: ast.NewExprBase(pos), RecordName: name, Field: field.Lit}, nil

	default:
		return &ast.VariableAccess{ExprBase: ast.NewExprBase(pos), Name: name}, nil
	}
}
