// Package stdlib holds the fixed table of runtime library function
// declarations that the analyzer injects at the head of the root block
// before analysis begins (spec.md §4.2 "Stdlib injection", §6 "Runtime
// library"). These functions are never defined by the core -- only
// declared, so the analyzer resolves calls to them exactly like any other
// function and the emitter marks them external linkage.
package stdlib

import (
	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/types"
)

func str() types.Type    { return types.ListOf(types.Char) }
func intList() types.Type { return types.ListOf(types.Int) }
func dblList() types.Type { return types.ListOf(types.Double) }

func p(name string, t types.Type) ast.Param { return ast.Param{Name: name, Type: t} }

// Declarations builds the fixed set of external function declarations from
// spec.md §6, as a slice of ast.FuncDecl statements with Body == nil.
func Declarations() []ast.Stmt {
	decls := []ast.FuncDecl{
		{Name: "int_list_create", ReturnType: intList()},
		{Name: "double_list_create", ReturnType: dblList()},
		{Name: "str_create", ReturnType: str()},

		{Name: "list_length", ReturnType: types.Scalar(types.Int), Params: []ast.Param{p("l", intList())}},

		{Name: "int_list_retrieve", ReturnType: types.Scalar(types.Int), Params: []ast.Param{p("l", intList()), p("i", types.Scalar(types.Int))}},
		{Name: "double_list_retrieve", ReturnType: types.Scalar(types.Double), Params: []ast.Param{p("l", dblList()), p("i", types.Scalar(types.Int))}},
		{Name: "str_retrieve", ReturnType: types.Scalar(types.Char), Params: []ast.Param{p("s", str()), p("i", types.Scalar(types.Int))}},

		{Name: "int_list_insert", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("l", intList()), p("i", types.Scalar(types.Int)), p("v", types.Scalar(types.Int))}},
		{Name: "int_list_append", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("l", intList()), p("v", types.Scalar(types.Int))}},
		{Name: "double_list_insert", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("l", dblList()), p("i", types.Scalar(types.Int)), p("v", types.Scalar(types.Double))}},
		{Name: "double_list_append", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("l", dblList()), p("v", types.Scalar(types.Double))}},
		{Name: "str_insert", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("s", str()), p("i", types.Scalar(types.Int)), p("c", types.Scalar(types.Char))}},
		{Name: "str_append", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("s", str()), p("c", types.Scalar(types.Char))}},

		{Name: "str_print", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("s", str())}},
		{Name: "str_println", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("s", str())}},
		{Name: "int_print", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("v", types.Scalar(types.Int))}},
		{Name: "int_println", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("v", types.Scalar(types.Int))}},
		{Name: "double_print", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("v", types.Scalar(types.Double))}},
		{Name: "double_println", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("v", types.Scalar(types.Double))}},

		{Name: "prog_arg_count", ReturnType: types.Scalar(types.Int)},
		{Name: "prog_argument", ReturnType: str(), Params: []ast.Param{p("i", types.Scalar(types.Int))}},
		{Name: "save_args", ReturnType: types.Scalar(types.Void), Params: []ast.Param{p("argc", types.Scalar(types.Int)), p("argv", types.Scalar(types.Int))}},

		{Name: "crema_seq", ReturnType: intList(), Params: []ast.Param{p("start", types.Scalar(types.Int)), p("end", types.Scalar(types.Int))}},

		{Name: "double_floor", ReturnType: types.Scalar(types.Double), Params: []ast.Param{p("v", types.Scalar(types.Double))}},
		{Name: "double_ceiling", ReturnType: types.Scalar(types.Double), Params: []ast.Param{p("v", types.Scalar(types.Double))}},
		{Name: "double_round", ReturnType: types.Scalar(types.Double), Params: []ast.Param{p("v", types.Scalar(types.Double))}},
		{Name: "double_square", ReturnType: types.Scalar(types.Double), Params: []ast.Param{p("v", types.Scalar(types.Double))}},
		{Name: "double_pow", ReturnType: types.Scalar(types.Double), Params: []ast.Param{p("base", types.Scalar(types.Double)), p("exp", types.Scalar(types.Double))}},
		{Name: "double_sin", ReturnType: types.Scalar(types.Double), Params: []ast.Param{p("v", types.Scalar(types.Double))}},
		{Name: "double_sqrt", ReturnType: types.Scalar(types.Double), Params: []ast.Param{p("v", types.Scalar(types.Double))}},
		{Name: "double_abs", ReturnType: types.Scalar(types.Double), Params: []ast.Param{p("v", types.Scalar(types.Double))}},
		{Name: "int_square", ReturnType: types.Scalar(types.Int), Params: []ast.Param{p("v", types.Scalar(types.Int))}},
		{Name: "int_pow", ReturnType: types.Scalar(types.Int), Params: []ast.Param{p("base", types.Scalar(types.Int)), p("exp", types.Scalar(types.Int))}},
		{Name: "int_abs", ReturnType: types.Scalar(types.Int), Params: []ast.Param{p("v", types.Scalar(types.Int))}},
	}

	stmts := make([]ast.Stmt, len(decls))
	for i := range decls {
		d := decls[i]
		stmts[i] = &d
	}
	return stmts
}
