// Package analyzer implements Crema's semantic analyzer (spec.md §4.3): it
// walks a parser-produced AST, builds and tears down scopes, resolves
// identifiers, checks types against the promotion lattice, enforces the
// no-recursion rule, and annotates every expression node's Type slot.
//
// The Analyzer struct is an explicit local value threaded through every
// pass -- mirroring the teacher's walk.Walker -- so no package-level mutable
// context exists, per spec.md §5's "no process-wide mutable singleton"
// resource policy.
package analyzer

import (
	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/diag"
	"github.com/ainfosec/crema/internal/scope"
	"github.com/ainfosec/crema/internal/stdlib"
	"github.com/ainfosec/crema/internal/types"
)

// Analyzer performs semantic analysis on a single compilation unit.
type Analyzer struct {
	stack *scope.Stack
	sink  *diag.Sink

	// funcDeclsByName maps each pre-registered top-level function name to
	// its declaration, so the call-graph DFS in recursion.go can walk a
	// callee's body by name.
	funcDeclsByName map[string]*ast.FuncDecl

	// funcDepth is >0 while walking a user function's body, 0 while walking
	// top-level statements. analyzeReturn uses it to tell a top-level
	// `return` (which may always omit its value -- the ABI's "returns 0
	// unless overridden") from a `return` inside a Void-returning function
	// (which may only omit it because the function is declared Void).
	funcDepth int
}

// New creates an Analyzer reporting into sink.
func New(sink *diag.Sink) *Analyzer {
	return &Analyzer{
		stack:           scope.NewStack(),
		sink:            sink,
		funcDeclsByName: make(map[string]*ast.FuncDecl),
	}
}

// Analyze runs the full analysis entry point of spec.md §4.3 over root and
// returns true iff no fatal diagnostic was recorded. It mutates root:
// stdlib declarations are prepended, and every Expr's Type slot is filled.
func (a *Analyzer) Analyze(root *ast.Block) bool {
	// 1. Create the root scope with expected-return-type = Int: the entry
	// function's ABI (spec.md §6) is `int64 main(...)`, so a top-level
	// `return <value>` must type-check against Int, not Void. A bare
	// top-level `return;` is still allowed regardless (see analyzeReturn) --
	// it just leaves the ABI's default 0 in place.
	a.stack.Push(types.Scalar(types.Int), false)

	// 2. Inject stdlib declarations at the head of the root block.
	root.Stmts = append(stdlib.Declarations(), root.Stmts...)

	// Pre-register every top-level function's signature so forward
	// references and (rejected) self-references still resolve, per
	// spec.md §4.3's note on NFunctionDeclaration registration.
	for _, stmt := range root.Stmts {
		if fd, ok := stmt.(*ast.FuncDecl); ok {
			a.registerFuncSignature(fd)
		}
	}

	// 3. Invoke analyze on each statement of the root block. Unlike a
	// nested block, the root block does not stop at the first failing
	// top-level statement: each top-level declaration is an independent
	// unit, and continuing lets unrelated functions/records still get
	// checked in the same run.
	ok := true
	for _, stmt := range root.Stmts {
		if !a.analyzeStmt(stmt) {
			ok = false
		}
	}

	// 4. Assert the scope stack returns to depth 1 (just the root scope,
	// not yet popped) -- any other depth is an analyzer bug, not a user
	// diagnostic.
	if a.stack.Depth() != 1 {
		panic("analyzer: scope stack imbalance at end of analysis")
	}
	a.stack.Pop()

	// 5. Return success iff no errors were emitted (warnings are not
	// failures).
	return ok && !a.sink.HasErrors()
}
