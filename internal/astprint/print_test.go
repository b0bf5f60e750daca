package astprint

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ainfosec/crema/internal/parser"
)

func render(t *testing.T, src string) string {
	t.Helper()
	block, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	var buf bytes.Buffer
	Block(&buf, block)
	return buf.String()
}

func TestPrintFuncDeclAndReturn(t *testing.T) {
	out := render(t, `def add(x: int, y: int) -> int {
		return x + y;
	}`)
	if !strings.Contains(out, "def add(...) -> Int") {
		t.Errorf("expected rendered function header, got:\n%s", out)
	}
	if !strings.Contains(out, "return (x + y)") {
		t.Errorf("expected rendered return statement, got:\n%s", out)
	}
}

func TestPrintIfElseifElse(t *testing.T) {
	out := render(t, `def f() -> void {
		if x == 1 {
			return;
		} elseif x == 2 {
			return;
		} else {
			return;
		}
	}`)
	for _, want := range []string{"if (x == 1)", "elseif (x == 2)", "} else {"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintListLit(t *testing.T) {
	out := render(t, `let xs: int[] = [1, 2, 3];`)
	if !strings.Contains(out, "let xs: Int[] = [1, 2, 3]") {
		t.Errorf("expected rendered list literal, got:\n%s", out)
	}
}

func TestPrintRecordDecl(t *testing.T) {
	out := render(t, `struct Point {
		x: int,
		y: int
	}`)
	if !strings.Contains(out, "struct Point {") || !strings.Contains(out, "x: Int") {
		t.Errorf("expected rendered record declaration, got:\n%s", out)
	}
}
