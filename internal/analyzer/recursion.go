package analyzer

import "github.com/ainfosec/crema/internal/ast"

// hasRecursion implements spec.md §4.3's whole-call-graph recursion check:
// Crema forbids user functions from appearing in their own call graph,
// directly or transitively. It walks the static call graph rooted at fd
// with a DFS over a visited set, using the pre-registered function bodies
// collected during the Analyzer's pre-scan pass.
func (a *Analyzer) hasRecursion(fd *ast.FuncDecl) bool {
	visited := make(map[string]bool)
	return a.walksBackTo(fd.Name, fd, visited)
}

// walksBackTo returns true if root's name appears anywhere in the call
// graph reachable from node, including node itself when node != root's
// entry call (i.e. any cycle back to root).
func (a *Analyzer) walksBackTo(root string, node *ast.FuncDecl, visited map[string]bool) bool {
	if node == nil || node.Body == nil {
		return false
	}
	for _, callee := range collectCalls(node.Body) {
		if callee == root {
			return true
		}
		if visited[callee] {
			continue
		}
		visited[callee] = true

		next, ok := a.funcDeclsByName[callee]
		if !ok {
			continue // external/stdlib function: no body to walk
		}
		if a.walksBackTo(root, next, visited) {
			return true
		}
	}
	return false
}

// collectCalls walks a block and returns the name of every function called
// anywhere within it, including inside nested expressions and nested
// blocks (if/foreach bodies).
func collectCalls(b *ast.Block) []string {
	var calls []string
	for _, s := range b.Stmts {
		collectCallsStmt(s, &calls)
	}
	return calls
}

func collectCallsStmt(s ast.Stmt, out *[]string) {
	switch v := s.(type) {
	case *ast.VarDecl:
		if v.Initializer != nil {
			collectCallsExpr(v.Initializer, out)
		}
	case *ast.RecordDecl, *ast.FuncDecl:
		// A nested function declaration is not part of Crema's grammar;
		// a record declaration holds no expressions.
	case *ast.AssignScalar:
		collectCallsExpr(v.Value, out)
	case *ast.AssignListElt:
		if v.Index != nil {
			collectCallsExpr(v.Index, out)
		}
		collectCallsExpr(v.Value, out)
	case *ast.AssignRecordField:
		collectCallsExpr(v.Value, out)
	case *ast.If:
		collectCallsExpr(v.Cond, out)
		*out = append(*out, collectCalls(v.Then)...)
		for _, ei := range v.ElseIfs {
			collectCallsExpr(ei.Cond, out)
			*out = append(*out, collectCalls(ei.Body)...)
		}
		if v.Else != nil {
			*out = append(*out, collectCalls(v.Else)...)
		}
	case *ast.Foreach:
		*out = append(*out, collectCalls(v.Body)...)
	case *ast.Return:
		if v.Value != nil {
			collectCallsExpr(v.Value, out)
		}
	case *ast.Block:
		*out = append(*out, collectCalls(v)...)
	}
}

func collectCallsExpr(e ast.Expr, out *[]string) {
	switch v := e.(type) {
	case *ast.ListLit:
		for _, elem := range v.Elements {
			collectCallsExpr(elem, out)
		}
	case *ast.ListAccess:
		collectCallsExpr(v.Index, out)
	case *ast.FunctionCall:
		*out = append(*out, v.Name)
		for _, arg := range v.Args {
			collectCallsExpr(arg, out)
		}
	case *ast.BinaryOp:
		collectCallsExpr(v.Lhs, out)
		collectCallsExpr(v.Rhs, out)
	case *ast.UnaryNot:
		collectCallsExpr(v.Operand, out)
	}
}
