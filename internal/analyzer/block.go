package analyzer

import (
	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/types"
)

// analyzeBlock implements spec.md §4.3's Block contract: push a fresh scope
// inheriting the enclosing expected-return-type, analyze each statement
// in order, stop at the first failing statement, and always pop exactly
// the scope this call pushed.
func (a *Analyzer) analyzeBlock(b *ast.Block) bool {
	a.stack.Push(types.InvalidType, true)
	ok := a.analyzeStmtsStopOnFail(b.Stmts)
	a.stack.Pop()
	return ok
}

// analyzeStmtsStopOnFail analyzes stmts in order within the *already
// pushed* current scope, stopping at the first statement that fails. Used
// directly by analyzeBlock (which pushes its own scope first) and by
// foreach (whose single pushed scope also holds the loop body, per
// spec.md §4.3's Foreach contract, rather than delegating to a second,
// redundant Block-level push).
func (a *Analyzer) analyzeStmtsStopOnFail(stmts []ast.Stmt) bool {
	for _, s := range stmts {
		if !a.analyzeStmt(s) {
			return false
		}
	}
	return true
}
