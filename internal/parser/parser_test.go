package parser

import (
	"testing"

	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/types"
)

func TestParseFuncDecl(t *testing.T) {
	src := `def add(x: int, y: int) -> int {
		return x + y;
	}`

	block, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(block.Stmts) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(block.Stmts))
	}

	fd, ok := block.Stmts[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", block.Stmts[0])
	}
	if fd.Name != "add" {
		t.Errorf("name = %q, want %q", fd.Name, "add")
	}
	if len(fd.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fd.Params))
	}
	if !types.Equal(fd.ReturnType, types.Scalar(types.Int)) {
		t.Errorf("return type = %s, want Int", fd.ReturnType)
	}
	if len(fd.Body.Stmts) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fd.Body.Stmts))
	}
	if _, ok := fd.Body.Stmts[0].(*ast.Return); !ok {
		t.Errorf("expected *ast.Return, got %T", fd.Body.Stmts[0])
	}
}

func TestParseVarDeclAndListType(t *testing.T) {
	src := `let xs: int[] = [1, 2, 3];`
	block, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vd, ok := block.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", block.Stmts[0])
	}
	if !vd.DeclType.IsList || vd.DeclType.Kind != types.Int {
		t.Errorf("decl type = %s, want int[]", vd.DeclType)
	}
	lit, ok := vd.Initializer.(*ast.ListLit)
	if !ok {
		t.Fatalf("expected *ast.ListLit initializer, got %T", vd.Initializer)
	}
	if len(lit.Elements) != 3 {
		t.Errorf("expected 3 elements, got %d", len(lit.Elements))
	}
}

func TestParseIfElseifElse(t *testing.T) {
	src := `def f() -> void {
		if x == 1 {
			return;
		} elseif x == 2 {
			return;
		} else {
			return;
		}
	}`
	block, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fd := block.Stmts[0].(*ast.FuncDecl)
	ifStmt := fd.Body.Stmts[0].(*ast.If)
	if len(ifStmt.ElseIfs) != 1 {
		t.Fatalf("expected 1 elseif arm, got %d", len(ifStmt.ElseIfs))
	}
	if ifStmt.Else == nil {
		t.Fatal("expected an else block")
	}
}

func TestParseForeachAndListAccess(t *testing.T) {
	src := `def f(xs: int[]) -> void {
		foreach x as xs {
			let y: int = xs[0];
		}
	}`
	block, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fd := block.Stmts[0].(*ast.FuncDecl)
	fe, ok := fd.Body.Stmts[0].(*ast.Foreach)
	if !ok {
		t.Fatalf("expected *ast.Foreach, got %T", fd.Body.Stmts[0])
	}
	if fe.IterVar != "x" || fe.ListName != "xs" {
		t.Errorf("foreach = (%s, %s), want (x, xs)", fe.IterVar, fe.ListName)
	}
}

func TestParseRecordDeclAndAccess(t *testing.T) {
	src := `struct Point {
		x: int,
		y: int
	}
	def f(p: Point) -> int {
		p.x = 1;
		return p.x;
	}`
	block, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rd, ok := block.Stmts[0].(*ast.RecordDecl)
	if !ok {
		t.Fatalf("expected *ast.RecordDecl, got %T", block.Stmts[0])
	}
	if len(rd.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(rd.Members))
	}

	fd := block.Stmts[1].(*ast.FuncDecl)
	assign, ok := fd.Body.Stmts[0].(*ast.AssignRecordField)
	if !ok {
		t.Fatalf("expected *ast.AssignRecordField, got %T", fd.Body.Stmts[0])
	}
	if assign.RecordName != "p" || assign.Field != "x" {
		t.Errorf("assign = %s.%s, want p.x", assign.RecordName, assign.Field)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	src := `let x: bool = 1 + 2 * 3 == 7 && true;`
	block, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vd := block.Stmts[0].(*ast.VarDecl)
	top, ok := vd.Initializer.(*ast.BinaryOp)
	if !ok || top.Op != ast.OpAnd {
		t.Fatalf("expected top-level &&, got %#v", vd.Initializer)
	}
	eq, ok := top.Lhs.(*ast.BinaryOp)
	if !ok || eq.Op != ast.OpEq {
		t.Fatalf("expected == under &&, got %#v", top.Lhs)
	}
	add, ok := eq.Lhs.(*ast.BinaryOp)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("expected + under ==, got %#v", eq.Lhs)
	}
	if _, ok := add.Rhs.(*ast.BinaryOp); !ok {
		t.Fatalf("expected * nested under +, got %#v", add.Rhs)
	}
}
