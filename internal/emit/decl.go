package emit

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
	llvalue "github.com/llir/llvm/ir/value"

	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/types"
)

// emitRecordDecl registers a record's IR struct layout, fields in
// declaration order, so later GetElementPtr addressing can find them.
func (e *Emitter) emitRecordDecl(r *ast.RecordDecl) {
	fieldTypes := make([]lltypes.Type, len(r.Members))
	fieldIndex := make(map[string]int, len(r.Members))
	crTypes := make([]types.Type, len(r.Members))

	for i, m := range r.Members {
		fieldTypes[i] = e.toIRType(m.Type)
		fieldIndex[m.Name] = i
		crTypes[i] = m.Type
	}

	st := lltypes.NewStruct(fieldTypes...)
	st.TypeName = r.Name
	e.module.NewTypeDef(r.Name, st)

	e.records[r.Name] = &recordLayout{
		structType: st,
		fieldIndex: fieldIndex,
		fieldTypes: crTypes,
	}
}

// emitFuncDecl creates an IR function of the declared signature. A nil body
// yields an external (declaration-only) function -- the analyzer already
// verified these are only ever called, never redefined.
func (e *Emitter) emitFuncDecl(fd *ast.FuncDecl) {
	params := make([]*ir.Param, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = ir.NewParam(p.Name, e.toIRType(p.Type))
	}

	f := e.module.NewFunc(fd.Name, e.toIRType(fd.ReturnType), params...)
	e.funcs[fd.Name] = f

	if fd.Body == nil {
		return
	}

	entry := f.NewBlock("entry")
	prevFunc, prevRet := e.curFunc, e.retType
	e.curFunc = f
	e.retType = fd.ReturnType
	e.entries[f] = entry

	e.pushBlock(entry)
	e.pushScope()

	for i, p := range fd.Params {
		if p.Type.Kind == types.Record && !p.Type.IsList {
			// Records pass by reference: bind the parameter's incoming
			// pointer directly, no local slot indirection.
			e.define(p.Name, &valueBinding{ptr: f.Params[i], typ: p.Type})
			continue
		}
		// Allocated directly on entry (not e.current()) since these run
		// before any nested block exists; emitForeach relies on the same
		// entry-hoisting trick later in the body, once entry may already
		// carry a terminator.
		slot := entry.NewAlloca(e.toIRType(p.Type))
		entry.NewStore(f.Params[i], slot)
		e.define(p.Name, &valueBinding{ptr: slot, typ: p.Type})
	}

	e.emitStmts(fd.Body.Stmts)

	if e.current().Term == nil {
		if fd.ReturnType.Kind == types.Void {
			e.current().NewRet(nil)
		} else {
			e.current().NewRet(e.zeroValue(fd.ReturnType))
		}
	}

	e.popScope()
	e.popBlock()
	e.curFunc, e.retType = prevFunc, prevRet
}

// emitVarDecl implements spec.md §4.4's variable-declaration rule: allocate
// storage, default-construct list/string handles when there's no explicit
// initializer, otherwise emit the initializer as an assignment.
func (e *Emitter) emitVarDecl(v *ast.VarDecl) {
	slot := e.allocate(v.Name, v.DeclType)
	e.define(v.Name, &valueBinding{ptr: slot, typ: v.DeclType})

	if v.Initializer != nil {
		if v.DeclType.Kind == types.Record && !v.DeclType.IsList {
			e.emitRecordCopy(slot, e.emitExpr(v.Initializer), v.DeclType)
			return
		}
		val := e.emitExpr(v.Initializer)
		val = e.coerce(val, v.Initializer.Type(), v.DeclType)
		e.current().NewStore(val, slot)
		return
	}

	if ctor, ok := listConstructor(v.DeclType); ok {
		handle := e.emitRuntimeCall(ctor)
		e.current().NewStore(handle, slot)
	}
}

// emitRecordCopy performs a field-by-field copy from src to dst, both
// pointers to the same record's struct type -- used when a record variable
// is declared with another record as its initializer.
func (e *Emitter) emitRecordCopy(dst, src llvalue.Value, t types.Type) {
	layout := e.records[t.RecordName]
	for i, ft := range layout.fieldTypes {
		irFt := e.toIRType(ft)
		srcField := e.current().NewGetElementPtr(layout.structType, src,
			llIndex(0), llIndex(int64(i)))
		dstField := e.current().NewGetElementPtr(layout.structType, dst,
			llIndex(0), llIndex(int64(i)))
		val := e.current().NewLoad(irFt, srcField)
		e.current().NewStore(val, dstField)
	}
}

// listConstructor names the runtime constructor for a list/string type
// declared without an initializer, per spec.md §6's runtime table. UInt
// lists reuse int_list_create: the runtime only distinguishes "integral"
// and "floating" list storage, and Crema's UInt and Int share the same
// 64-bit integral representation at the runtime boundary (see DESIGN.md).
func listConstructor(t types.Type) (string, bool) {
	if !t.IsList {
		return "", false
	}
	switch t.Kind {
	case types.Char:
		return "str_create", true
	case types.Double:
		return "double_list_create", true
	case types.Int, types.UInt:
		return "int_list_create", true
	default:
		return "", false
	}
}
