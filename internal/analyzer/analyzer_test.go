package analyzer

import (
	"testing"

	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/diag"
	"github.com/ainfosec/crema/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Block {
	t.Helper()
	block, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return block
}

func TestAnalyzeSimpleFunctionSucceeds(t *testing.T) {
	block := mustParse(t, `def add(x: int, y: int) -> int {
		return x + y;
	}`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); !ok {
		t.Fatalf("expected analysis to succeed, diagnostics: %+v", sink.Diagnostics())
	}
}

func TestAnalyzeUndefinedVariableFails(t *testing.T) {
	block := mustParse(t, `def f() -> int {
		return y;
	}`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); ok {
		t.Fatal("expected analysis to fail on undefined variable")
	}
	diags := sink.Diagnostics()
	if len(diags) != 1 || diags[0].Kind != diag.KindUndefined {
		t.Errorf("expected one KindUndefined diagnostic, got %+v", diags)
	}
}

func TestAnalyzeTypeMismatchFails(t *testing.T) {
	block := mustParse(t, `def f() -> void {
		let x: int = true;
		let y: bool = x;
	}`)
	sink := diag.NewSink()
	// true -> int is a valid up-cast, so only the second statement fails.
	if ok := New(sink).Analyze(block); ok {
		t.Fatal("expected analysis to fail on int -> bool narrowing")
	}
	foundMismatch := false
	for _, d := range sink.Diagnostics() {
		if d.Kind == diag.KindTypeMismatch {
			foundMismatch = true
		}
	}
	if !foundMismatch {
		t.Errorf("expected a KindTypeMismatch diagnostic, got %+v", sink.Diagnostics())
	}
}

func TestAnalyzeUpCastWarnsButSucceeds(t *testing.T) {
	block := mustParse(t, `def f() -> void {
		let x: double = 1;
	}`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); !ok {
		t.Fatalf("expected up-cast to succeed with only a warning, got %+v", sink.Diagnostics())
	}
	diags := sink.Diagnostics()
	if len(diags) != 1 || diags[0].Kind != diag.KindUpCast || diags[0].Severity != diag.Warning {
		t.Errorf("expected one KindUpCast warning, got %+v", diags)
	}
}

func TestAnalyzeDirectRecursionFails(t *testing.T) {
	block := mustParse(t, `def f(x: int) -> int {
		return f(x);
	}`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); ok {
		t.Fatal("expected analysis to fail on direct recursion")
	}
	foundRecursion := false
	for _, d := range sink.Diagnostics() {
		if d.Kind == diag.KindRecursion {
			foundRecursion = true
		}
	}
	if !foundRecursion {
		t.Errorf("expected a KindRecursion diagnostic, got %+v", sink.Diagnostics())
	}
}

func TestAnalyzeTransitiveRecursionFails(t *testing.T) {
	block := mustParse(t, `def a() -> void {
		b();
	}
	def b() -> void {
		a();
	}`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); ok {
		t.Fatal("expected analysis to fail on transitive recursion")
	}
}

func TestAnalyzeCallToStdlibSucceeds(t *testing.T) {
	block := mustParse(t, `def f() -> void {
		let s: char[] = "hi";
		str_println(s);
	}`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); !ok {
		t.Fatalf("expected call to stdlib function to succeed, got %+v", sink.Diagnostics())
	}
}

func TestAnalyzeRecordFieldAssignAndAccess(t *testing.T) {
	block := mustParse(t, `struct Point {
		x: int,
		y: int
	}
	def f(p: Point) -> int {
		p.x = 1;
		return p.x;
	}`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); !ok {
		t.Fatalf("expected record field assignment/access to succeed, got %+v", sink.Diagnostics())
	}
}

func TestAnalyzeUndefinedRecordFieldFails(t *testing.T) {
	block := mustParse(t, `struct Point {
		x: int
	}
	def f(p: Point) -> int {
		return p.z;
	}`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); ok {
		t.Fatal("expected access to an undefined field to fail")
	}
}

func TestAnalyzeForeachBindsElementType(t *testing.T) {
	block := mustParse(t, `def f(xs: int[]) -> int {
		let total: int = 0;
		foreach x as xs {
			total = total + x;
		}
		return total;
	}`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); !ok {
		t.Fatalf("expected foreach over int[] to succeed, got %+v", sink.Diagnostics())
	}
}

func TestAnalyzeDuplicateFunctionDeclarationFails(t *testing.T) {
	block := mustParse(t, `def f() -> void {
		return;
	}
	def f() -> void {
		return;
	}`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); ok {
		t.Fatal("expected duplicate function declaration to fail")
	}
}

func TestAnalyzeTopLevelReturnIntSucceeds(t *testing.T) {
	block := mustParse(t, `let a: int = 3;
	let b: int = a + 4;
	return b;`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); !ok {
		t.Fatalf("expected a top-level `return <int>` to succeed, got %+v", sink.Diagnostics())
	}
}

func TestAnalyzeBareTopLevelReturnSucceeds(t *testing.T) {
	block := mustParse(t, `let a: int = 1;
	return;`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); !ok {
		t.Fatalf("expected a bare top-level `return;` to succeed, got %+v", sink.Diagnostics())
	}
}

func TestAnalyzeTopLevelReturnDoubleFails(t *testing.T) {
	block := mustParse(t, `let a: int;
	let b: double = a;
	return b;`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); ok {
		t.Fatal("expected a top-level `return <double>` to fail -- Double is never <= Int")
	}
	foundMismatch := false
	for _, d := range sink.Diagnostics() {
		if d.Kind == diag.KindTypeMismatch {
			foundMismatch = true
		}
	}
	if !foundMismatch {
		t.Errorf("expected a KindTypeMismatch diagnostic, got %+v", sink.Diagnostics())
	}
}

func TestAnalyzeVariableFunctionNamespaceCollisionFails(t *testing.T) {
	block := mustParse(t, `def f() -> void {
		return;
	}
	def g() -> void {
		let f: int = 1;
		return;
	}`)
	sink := diag.NewSink()
	if ok := New(sink).Analyze(block); ok {
		t.Fatal("expected a variable shadowing a function name to fail")
	}
}
