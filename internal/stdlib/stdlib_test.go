package stdlib

import (
	"testing"

	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/types"
)

func byName(t *testing.T, decls []ast.Stmt, name string) *ast.FuncDecl {
	t.Helper()
	for _, s := range decls {
		fd, ok := s.(*ast.FuncDecl)
		if !ok {
			t.Fatalf("non-FuncDecl statement in stdlib.Declarations: %T", s)
		}
		if fd.Name == name {
			return fd
		}
	}
	t.Fatalf("no stdlib declaration named %q", name)
	return nil
}

func TestDeclarationsAreAllExternal(t *testing.T) {
	for _, s := range Declarations() {
		fd := s.(*ast.FuncDecl)
		if fd.Body != nil {
			t.Errorf("stdlib declaration %q has a non-nil body", fd.Name)
		}
	}
}

func TestDeclarationsHaveNoDuplicateNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Declarations() {
		fd := s.(*ast.FuncDecl)
		if seen[fd.Name] {
			t.Errorf("duplicate stdlib declaration name %q", fd.Name)
		}
		seen[fd.Name] = true
	}
}

func TestStrPrintlnSignature(t *testing.T) {
	decls := Declarations()
	fd := byName(t, decls, "str_println")
	if !types.Equal(fd.ReturnType, types.Scalar(types.Void)) {
		t.Errorf("str_println return type = %s, want Void", fd.ReturnType)
	}
	if len(fd.Params) != 1 || !types.Equal(fd.Params[0].Type, types.ListOf(types.Char)) {
		t.Errorf("str_println params = %+v, want one char[] param", fd.Params)
	}
}

func TestIntListRetrieveSignature(t *testing.T) {
	decls := Declarations()
	fd := byName(t, decls, "int_list_retrieve")
	if !types.Equal(fd.ReturnType, types.Scalar(types.Int)) {
		t.Errorf("int_list_retrieve return type = %s, want Int", fd.ReturnType)
	}
	if len(fd.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fd.Params))
	}
	if !types.Equal(fd.Params[0].Type, types.ListOf(types.Int)) {
		t.Errorf("param 0 = %s, want int[]", fd.Params[0].Type)
	}
	if !types.Equal(fd.Params[1].Type, types.Scalar(types.Int)) {
		t.Errorf("param 1 = %s, want Int", fd.Params[1].Type)
	}
}
