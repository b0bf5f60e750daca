package analyzer

import (
	"fmt"

	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/diag"
	"github.com/ainfosec/crema/internal/scope"
	"github.com/ainfosec/crema/internal/types"
)

func (a *Analyzer) analyzeVarDecl(v *ast.VarDecl) bool {
	if v.DeclType.Kind == types.Record {
		if _, ok := a.stack.Records[v.DeclType.RecordName]; !ok {
			a.errorAt(v.Pos(), diag.KindUndefined, fmt.Sprintf("undefined record type %q for variable %q", v.DeclType.RecordName, v.Name))
			return false
		}
	}

	if !a.stack.DefineVar(&scope.VarBinding{Name: v.Name, Type: v.DeclType}) {
		a.errorAt(v.Pos(), diag.KindDuplicateDecl, fmt.Sprintf("duplicate declaration of variable %q", v.Name))
		return false
	}

	if v.Initializer == nil {
		return true
	}

	if !a.analyzeExpr(v.Initializer) {
		return false
	}

	return a.checkAssignable(v.Initializer.Pos(), v.Initializer.Type(), v.DeclType, fmt.Sprintf("initializer for %q", v.Name))
}

func (a *Analyzer) analyzeRecordDecl(r *ast.RecordDecl) bool {
	seen := make(map[string]bool, len(r.Members))
	for _, m := range r.Members {
		if seen[m.Name] {
			a.errorAt(r.Pos(), diag.KindDuplicateDecl, fmt.Sprintf("duplicate field %q in record %q", m.Name, r.Name))
			return false
		}
		seen[m.Name] = true
	}

	members := make([]scope.VarBinding, len(r.Members))
	for i, m := range r.Members {
		members[i] = scope.VarBinding{Name: m.Name, Type: m.Type}
	}

	if !a.stack.DefineRecord(&scope.RecordDecl{Name: r.Name, Members: members}) {
		a.errorAt(r.Pos(), diag.KindDuplicateDecl, fmt.Sprintf("duplicate declaration of record %q", r.Name))
		return false
	}
	return true
}

// registerFuncSignature pre-registers a top-level function's name,
// parameter types, and return type, without analyzing its body. Called
// during the Analyzer's pre-scan pass so forward references (and
// self-references, which the recursion check later rejects) resolve.
func (a *Analyzer) registerFuncSignature(fd *ast.FuncDecl) {
	params := make([]types.Type, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = p.Type
	}

	fdecl := &scope.FuncDecl{
		Name:       fd.Name,
		ReturnType: fd.ReturnType,
		Params:     params,
		External:   fd.Body == nil,
	}

	if !a.stack.DefineFunc(fdecl) {
		a.errorAt(fd.Pos(), diag.KindDuplicateDecl, fmt.Sprintf("duplicate declaration of function %q", fd.Name))
		return
	}

	a.funcDeclsByName[fd.Name] = fd
}

// analyzeFuncDecl walks the body of a function whose signature has already
// been registered by registerFuncSignature.
func (a *Analyzer) analyzeFuncDecl(fd *ast.FuncDecl) bool {
	if fd.Body == nil {
		// External declaration (stdlib): nothing to analyze.
		return true
	}

	a.stack.Push(fd.ReturnType, false)
	a.funcDepth++

	ok := true
	for _, p := range fd.Params {
		if !a.stack.DefineVar(&scope.VarBinding{Name: p.Name, Type: p.Type}) {
			a.errorAt(fd.Pos(), diag.KindDuplicateDecl, fmt.Sprintf("duplicate parameter %q in function %q", p.Name, fd.Name))
			ok = false
			break
		}
	}

	if ok {
		ok = a.analyzeBlock(fd.Body)
	}

	a.funcDepth--
	a.stack.Pop()

	if a.hasRecursion(fd) {
		a.errorAt(fd.Pos(), diag.KindRecursion, fmt.Sprintf("recursive function call in %q", fd.Name))
		ok = false
	}

	return ok
}
