// Package astprint renders an AST back to readable, indented text for the
// driver's -p (parse+print) and -v (verbose dump) modes. It is
// driver-level convenience, not part of the compiler core: nothing under
// internal/analyzer or internal/emit depends on it.
package astprint

import (
	"fmt"
	"io"
	"strings"

	"github.com/ainfosec/crema/internal/ast"
)

// Block writes an indented rendering of b to w, one statement per line,
// recursing into nested blocks.
func Block(w io.Writer, b *ast.Block) {
	printBlock(w, b, 0)
}

func printBlock(w io.Writer, b *ast.Block, depth int) {
	for _, s := range b.Stmts {
		printStmt(w, s, depth)
	}
}

func indent(depth int) string { return strings.Repeat("  ", depth) }

func printStmt(w io.Writer, s ast.Stmt, depth int) {
	pad := indent(depth)
	switch v := s.(type) {
	case *ast.VarDecl:
		fmt.Fprintf(w, "%slet %s: %s", pad, v.Name, v.DeclType)
		if v.Initializer != nil {
			fmt.Fprintf(w, " = %s", exprStr(v.Initializer))
		}
		fmt.Fprintln(w)

	case *ast.RecordDecl:
		fmt.Fprintf(w, "%sstruct %s {\n", pad, v.Name)
		for _, m := range v.Members {
			fmt.Fprintf(w, "%s  %s: %s\n", pad, m.Name, m.Type)
		}
		fmt.Fprintf(w, "%s}\n", pad)

	case *ast.FuncDecl:
		fmt.Fprintf(w, "%sdef %s(...) -> %s", pad, v.Name, v.ReturnType)
		if v.Body == nil {
			fmt.Fprintln(w, " (external)")
			return
		}
		fmt.Fprintln(w, " {")
		printBlock(w, v.Body, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)

	case *ast.AssignScalar:
		fmt.Fprintf(w, "%s%s = %s\n", pad, v.Name, exprStr(v.Value))

	case *ast.AssignListElt:
		if v.Index == nil {
			fmt.Fprintf(w, "%s%s[] = %s\n", pad, v.ListName, exprStr(v.Value))
		} else {
			fmt.Fprintf(w, "%s%s[%s] = %s\n", pad, v.ListName, exprStr(v.Index), exprStr(v.Value))
		}

	case *ast.AssignRecordField:
		fmt.Fprintf(w, "%s%s.%s = %s\n", pad, v.RecordName, v.Field, exprStr(v.Value))

	case *ast.If:
		fmt.Fprintf(w, "%sif %s {\n", pad, exprStr(v.Cond))
		printBlock(w, v.Then, depth+1)
		for _, ei := range v.ElseIfs {
			fmt.Fprintf(w, "%s} elseif %s {\n", pad, exprStr(ei.Cond))
			printBlock(w, ei.Body, depth+1)
		}
		if v.Else != nil {
			fmt.Fprintf(w, "%s} else {\n", pad)
			printBlock(w, v.Else, depth+1)
		}
		fmt.Fprintf(w, "%s}\n", pad)

	case *ast.Foreach:
		fmt.Fprintf(w, "%sforeach %s as %s {\n", pad, v.IterVar, v.ListName)
		printBlock(w, v.Body, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)

	case *ast.Return:
		if v.Value == nil {
			fmt.Fprintf(w, "%sreturn\n", pad)
		} else {
			fmt.Fprintf(w, "%sreturn %s\n", pad, exprStr(v.Value))
		}

	case *ast.Block:
		fmt.Fprintf(w, "%s{\n", pad)
		printBlock(w, v, depth+1)
		fmt.Fprintf(w, "%s}\n", pad)

	default:
		fmt.Fprintf(w, "%s<unknown statement %T>\n", pad, s)
	}
}

func exprStr(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.IntLit:
		return fmt.Sprintf("%d", v.Value)
	case *ast.UIntLit:
		return fmt.Sprintf("%du", v.Value)
	case *ast.DoubleLit:
		return fmt.Sprintf("%g", v.Value)
	case *ast.BoolLit:
		return fmt.Sprintf("%t", v.Value)
	case *ast.CharLit:
		return fmt.Sprintf("%q", v.Value)
	case *ast.StringLit:
		return fmt.Sprintf("%q", v.Value)
	case *ast.ListLit:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = exprStr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.VariableAccess:
		return v.Name
	case *ast.ListAccess:
		return fmt.Sprintf("%s[%s]", v.ListName, exprStr(v.Index))
	case *ast.RecordAccess:
		return fmt.Sprintf("%s.%s", v.RecordName, v.Field)
	case *ast.FunctionCall:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = exprStr(a)
		}
		return fmt.Sprintf("%s(%s)", v.Name, strings.Join(parts, ", "))
	case *ast.BinaryOp:
		return fmt.Sprintf("(%s %s %s)", exprStr(v.Lhs), v.Op, exprStr(v.Rhs))
	case *ast.UnaryNot:
		return fmt.Sprintf("!%s", exprStr(v.Operand))
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}
