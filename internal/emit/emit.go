// Package emit lowers an analyzed AST into LLVM IR text via
// github.com/llir/llvm/ir. It is the second traversal of the compiler core:
// it assumes every expression node already carries a stable Type() (the
// analyzer's job) and never re-derives or re-checks types -- an emission
// failure here is an internal-compiler-error, not a user diagnostic.
package emit

import (
	"fmt"

	"github.com/llir/llvm/ir"
	llconstant "github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	llvalue "github.com/llir/llvm/ir/value"

	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/types"
)

// valueBinding is an emitter scope entry: a storage handle (always a
// pointer -- an *ir.InstAlloca or *ir.Global) paired with the Crema type it
// holds.
type valueBinding struct {
	ptr llvalue.Value
	typ types.Type
}

// recordLayout is the IR-level shape of a Crema record: a struct type with
// fields in declaration order, plus a name -> field-index map for
// GetElementPtr addressing.
type recordLayout struct {
	structType *lltypes.StructType
	fieldIndex map[string]int
	fieldTypes []types.Type
}

// Emitter holds all per-compilation-unit emission state, threaded
// explicitly through every emit* method -- there is no package-level
// mutable state, per spec.md §5's resource policy.
type Emitter struct {
	module *ir.Module

	blocks []*ir.Block // insertion-point stack; top is current

	scopes []map[string]*valueBinding

	funcs   map[string]*ir.Func
	entries map[*ir.Func]*ir.Block // each function's entry block, for alloca hoisting
	records map[string]*recordLayout

	curFunc *ir.Func
	retType types.Type // the enclosing function's declared Crema return type

	counter int // disambiguates generated global/block names
}

// New creates an Emitter around a fresh LLVM module.
func New() *Emitter {
	return &Emitter{
		module:  ir.NewModule(),
		funcs:   make(map[string]*ir.Func),
		entries: make(map[*ir.Func]*ir.Block),
		records: make(map[string]*recordLayout),
	}
}

// Emit lowers root -- the fully analyzed program, stdlib declarations
// already prepended by the analyzer -- into this Emitter's module and
// returns it. root must have already passed Analyzer.Analyze.
func (e *Emitter) Emit(root *ast.Block) *ir.Module {
	e.emitModulePrelude(root)
	return e.module
}

// emitModulePrelude builds the program's entry function per spec.md §4.4 /
// §6's ABI: `int64 main(int64 argc, char** argv)`, calls `save_args`, then
// runs every top-level statement inline in the entry block, then returns 0
// unless a top-level `return` already terminated the block.
func (e *Emitter) emitModulePrelude(root *ast.Block) {
	argc := ir.NewParam("argc", lltypes.I64)
	argv := ir.NewParam("argv", lltypes.NewPointer(lltypes.NewPointer(lltypes.I8)))
	main := e.module.NewFunc("main", lltypes.I64, argc, argv)

	entry := main.NewBlock("entry")
	e.curFunc = main
	e.retType = types.Scalar(types.Int)
	e.entries[main] = entry
	e.pushBlock(entry)
	e.pushScope()

	// External (stdlib) declarations are emitted first so save_args, and
	// every other runtime routine, is declared before its first call.
	for _, stmt := range root.Stmts {
		if fd, ok := stmt.(*ast.FuncDecl); ok && fd.Body == nil {
			e.emitFuncDecl(fd)
		}
	}

	argvAsInt := e.current().NewPtrToInt(argv, lltypes.I64)
	e.emitRuntimeCall("save_args", argc, argvAsInt)

	for _, stmt := range root.Stmts {
		if fd, ok := stmt.(*ast.FuncDecl); ok && fd.Body == nil {
			continue
		}
		e.emitTopLevelStmt(stmt)
	}

	if e.current().Term == nil {
		e.current().NewRet(llconstant.NewInt(lltypes.I64, 0))
	}

	e.popScope()
	e.popBlock()
}

// emitTopLevelStmt dispatches function/record declarations (which become
// module-level IR definitions, not entry-block instructions) separately
// from ordinary statements, which execute inline in main's entry block.
func (e *Emitter) emitTopLevelStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.FuncDecl:
		e.emitFuncDecl(v)
	case *ast.RecordDecl:
		e.emitRecordDecl(v)
	default:
		e.emitStmt(s)
	}
}

// --- insertion-point stack --------------------------------------------------

func (e *Emitter) pushBlock(b *ir.Block) { e.blocks = append(e.blocks, b) }
func (e *Emitter) popBlock()             { e.blocks = e.blocks[:len(e.blocks)-1] }
func (e *Emitter) current() *ir.Block    { return e.blocks[len(e.blocks)-1] }
func (e *Emitter) setCurrent(b *ir.Block) {
	e.blocks[len(e.blocks)-1] = b
}

// --- scope stack -------------------------------------------------------------

func (e *Emitter) pushScope() { e.scopes = append(e.scopes, make(map[string]*valueBinding)) }
func (e *Emitter) popScope()  { e.scopes = e.scopes[:len(e.scopes)-1] }

func (e *Emitter) isTopLevel() bool { return len(e.scopes) == 1 }

func (e *Emitter) define(name string, b *valueBinding) {
	e.scopes[len(e.scopes)-1][name] = b
}

func (e *Emitter) lookup(name string) *valueBinding {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i][name]; ok {
			return b
		}
	}
	panic(fmt.Sprintf("emit: unresolved binding %q -- analyzer should have rejected this program", name))
}

// llIndex builds an i32 constant used as a GetElementPtr index.
func llIndex(n int64) llvalue.Value {
	return llconstant.NewInt(lltypes.I32, n)
}

// nextName produces a disambiguated name for a generated global or block.
func (e *Emitter) nextName(prefix string) string {
	e.counter++
	return fmt.Sprintf("%s_%d", prefix, e.counter)
}

// emitRuntimeCall emits a call to a previously declared (possibly stdlib)
// function by name.
func (e *Emitter) emitRuntimeCall(name string, args ...llvalue.Value) llvalue.Value {
	f, ok := e.funcs[name]
	if !ok {
		panic(fmt.Sprintf("emit: call to undeclared runtime function %q", name))
	}
	return e.current().NewCall(f, args...)
}
