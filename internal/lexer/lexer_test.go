package lexer

import "testing"

type expected struct {
	kind Kind
	lit  string
}

func checkTokens(t *testing.T, input string, want []expected) {
	l := New(input)
	for i, w := range want {
		tok := l.NextToken()
		if tok.Kind != w.kind {
			t.Fatalf("tokens[%d] - kind wrong. expected=%d, got=%d (lit %q)", i, w.kind, tok.Kind, tok.Lit)
		}
		if tok.Lit != w.lit {
			t.Fatalf("tokens[%d] - literal wrong. expected=%q, got=%q", i, w.lit, tok.Lit)
		}
	}
}

func TestNextTokenPunctuationAndKeywords(t *testing.T) {
	input := `def add(x: int, y: int) -> int {
		return x + y;
	}`

	checkTokens(t, input, []expected{
		{KwDef, "def"},
		{Ident, "add"},
		{LParen, "("},
		{Ident, "x"},
		{Colon, ":"},
		{KwInt, "int"},
		{Comma, ","},
		{Ident, "y"},
		{Colon, ":"},
		{KwInt, "int"},
		{RParen, ")"},
		{Arrow, "->"},
		{KwInt, "int"},
		{LBrace, "{"},
		{KwReturn, "return"},
		{Ident, "x"},
		{Add, "+"},
		{Ident, "y"},
		{Semi, ";"},
		{RBrace, "}"},
		{EOF, ""},
	})
}

func TestNextTokenOperators(t *testing.T) {
	checkTokens(t, "== != <= >= && || !", []expected{
		{Eq, "=="},
		{Neq, "!="},
		{Leq, "<="},
		{Geq, ">="},
		{And, "&&"},
		{Or, "||"},
		{Not, "!"},
		{EOF, ""},
	})
}

func TestNextTokenLiterals(t *testing.T) {
	checkTokens(t, `42 7u 3.5 'a' "hi"`, []expected{
		{IntLit, "42"},
		{UIntLit, "7"},
		{DoubleLit, "3.5"},
		{CharLit, "a"},
		{StringLit, "hi"},
		{EOF, ""},
	})
}

func TestNextTokenSkipsComments(t *testing.T) {
	checkTokens(t, "# a comment\nlet x: int = 1;", []expected{
		{KwLet, "let"},
		{Ident, "x"},
		{Colon, ":"},
		{KwInt, "int"},
		{Assign, "="},
		{IntLit, "1"},
		{Semi, ";"},
		{EOF, ""},
	})
}
