package emit

import (
	"strings"
	"testing"

	"github.com/ainfosec/crema/internal/analyzer"
	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/diag"
	"github.com/ainfosec/crema/internal/parser"
)

// analyzed parses and analyzes src, failing the test if either step
// reports an error, and returns the ready-to-emit root block.
func analyzed(t *testing.T, src string) *ast.Block {
	t.Helper()
	block, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	sink := diag.NewSink()
	if ok := analyzer.New(sink).Analyze(block); !ok {
		t.Fatalf("unexpected analysis failure: %+v", sink.Diagnostics())
	}
	return block
}

func TestEmitProducesMainEntryPoint(t *testing.T) {
	block := analyzed(t, `let x: int = 1;`)
	mod := New().Emit(block)
	text := mod.String()
	if !strings.Contains(text, "define i64 @main(i64 %argc, i8** %argv)") {
		t.Errorf("expected a main entry point, got:\n%s", text)
	}
	if !strings.Contains(text, "@save_args") {
		t.Errorf("expected a call to save_args, got:\n%s", text)
	}
}

func TestEmitFunctionBecomesModuleLevelDefinition(t *testing.T) {
	block := analyzed(t, `def add(x: int, y: int) -> int {
		return x + y;
	}`)
	text := New().Emit(block).String()
	if !strings.Contains(text, "define i64 @add(i64 %x, i64 %y)") {
		t.Errorf("expected a top-level add definition, got:\n%s", text)
	}
}

func TestEmitExternalStdlibDeclarationHasNoBody(t *testing.T) {
	block := analyzed(t, `let x: int = 1;`)
	text := New().Emit(block).String()
	if !strings.Contains(text, "declare void @str_println(i8*") {
		t.Errorf("expected an external declaration for str_println, got:\n%s", text)
	}
}

func TestEmitRecordBecomesStructType(t *testing.T) {
	block := analyzed(t, `struct Point {
		x: int,
		y: int
	}
	def f(p: Point) -> int {
		return p.x;
	}`)
	text := New().Emit(block).String()
	if !strings.Contains(text, "%Point = type { i64, i64 }") {
		t.Errorf("expected a Point struct type, got:\n%s", text)
	}
}

func TestEmitUpCastInsertsConversion(t *testing.T) {
	block := analyzed(t, `def f() -> double {
		let x: int = 1;
		return x;
	}`)
	text := New().Emit(block).String()
	if !strings.Contains(text, "sitofp") {
		t.Errorf("expected an int -> double conversion instruction, got:\n%s", text)
	}
}

func TestEmitTopLevelReturnCoercesAndTerminatesMain(t *testing.T) {
	block := analyzed(t, `let a: int = 3;
	let b: int = a + 4;
	return b;`)
	text := New().Emit(block).String()
	if !strings.Contains(text, "ret i64 %") {
		t.Errorf("expected @main to return the computed i64 value, got:\n%s", text)
	}
	if strings.Contains(text, "ret i64 0\n}") {
		t.Errorf("expected the top-level return to replace the default `ret i64 0`, got:\n%s", text)
	}
}

func TestEmitBareTopLevelReturnYieldsZero(t *testing.T) {
	block := analyzed(t, `let a: int = 1;
	return;`)
	text := New().Emit(block).String()
	if !strings.Contains(text, "ret i64 0") {
		t.Errorf("expected a bare top-level return to emit `ret i64 0`, got:\n%s", text)
	}
	if strings.Contains(text, "ret void") {
		t.Errorf("a bare top-level return must not emit `ret void` inside i64 @main, got:\n%s", text)
	}
}

func TestEmitUIntListIndexDoesNotPanic(t *testing.T) {
	block := analyzed(t, `let u: uint = 5u;
	let xs: int[] = [1, 2, 3];
	let v: int = xs[u];`)
	text := New().Emit(block).String()
	if !strings.Contains(text, "@int_list_retrieve") {
		t.Errorf("expected a call to int_list_retrieve, got:\n%s", text)
	}
}

func TestEmitBoolToIntCoercionZeroExtends(t *testing.T) {
	block := analyzed(t, `def f() -> int {
		let b: bool = true;
		return b;
	}`)
	text := New().Emit(block).String()
	if !strings.Contains(text, "zext") {
		t.Errorf("expected a bool -> int zero extension, got:\n%s", text)
	}
}
