package emit

import (
	"fmt"

	llconstant "github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	llvalue "github.com/llir/llvm/ir/value"

	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/types"
)

// emitStmt dispatches on the statement's concrete type -- the single
// dispatch point mirroring the analyzer's analyzeStmt.
func (e *Emitter) emitStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.VarDecl:
		e.emitVarDecl(v)
	case *ast.RecordDecl:
		e.emitRecordDecl(v)
	case *ast.FuncDecl:
		e.emitFuncDecl(v)
	case *ast.AssignScalar:
		e.emitAssignScalar(v)
	case *ast.AssignListElt:
		e.emitAssignListElt(v)
	case *ast.AssignRecordField:
		e.emitAssignRecordField(v)
	case *ast.If:
		e.emitIf(v)
	case *ast.Foreach:
		e.emitForeach(v)
	case *ast.Return:
		e.emitReturn(v)
	case *ast.Block:
		e.emitStmts(v.Stmts)
	default:
		panic(fmt.Sprintf("emit: unhandled statement type %T", s))
	}
}

func (e *Emitter) emitStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		e.emitStmt(s)
	}
}

func (e *Emitter) emitAssignScalar(s *ast.AssignScalar) {
	b := e.lookup(s.Name)
	val := e.emitExpr(s.Value)
	val = e.coerce(val, s.Value.Type(), b.typ)
	e.current().NewStore(val, b.ptr)
}

// emitAssignListElt dispatches to the element-kind-appropriate runtime
// insert/append routine, per spec.md §4.4's Assignment rule.
func (e *Emitter) emitAssignListElt(s *ast.AssignListElt) {
	b := e.lookup(s.ListName)
	elemType := types.Type{Kind: b.typ.Kind, RecordName: b.typ.RecordName}

	handle := e.current().NewLoad(e.toIRType(b.typ), b.ptr)
	val := e.emitExpr(s.Value)
	val = e.coerce(val, s.Value.Type(), elemType)

	fn := listWriteFunc(elemType, s.Index != nil)

	if s.Index != nil {
		idx := e.emitExpr(s.Index)
		idx = e.coerceIndex(idx, s.Index.Type())
		e.emitRuntimeCall(fn, handle, idx, val)
	} else {
		e.emitRuntimeCall(fn, handle, val)
	}
}

// listWriteFunc names the runtime insert/append routine for an element
// kind, per spec.md §6's runtime table.
func listWriteFunc(elemType types.Type, withIndex bool) string {
	var base string
	switch elemType.Kind {
	case types.Char:
		base = "str"
	case types.Double:
		base = "double_list"
	default:
		base = "int_list"
	}
	if withIndex {
		return base + "_insert"
	}
	return base + "_append"
}

// emitAssignRecordField computes the field address via the record layout
// and stores.
func (e *Emitter) emitAssignRecordField(s *ast.AssignRecordField) {
	b := e.lookup(s.RecordName)
	layout := e.records[b.typ.RecordName]
	idx := layout.fieldIndex[s.Field]
	fieldType := layout.fieldTypes[idx]

	fieldPtr := e.current().NewGetElementPtr(layout.structType, b.ptr,
		llconstant.NewInt(lltypes.I32, 0), llconstant.NewInt(lltypes.I32, int64(idx)))
	fieldPtr.InBounds = true

	val := e.emitExpr(s.Value)
	val = e.coerce(val, s.Value.Type(), fieldType)
	e.current().NewStore(val, fieldPtr)
}

// emitIf lowers the condition to boolean, branches to then/else/ifcont,
// recursively emits both arms, and leaves the insertion point at ifcont.
func (e *Emitter) emitIf(s *ast.If) {
	e.emitIfChain(s.Cond, s.Then, s.ElseIfs, s.Else)
}

// emitIfChain recursively lowers an if/elseif*/else chain: each elseif is
// emitted as the else-arm's own nested if, matching the analyzer's
// recursive treatment of ElseIfs.
func (e *Emitter) emitIfChain(cond ast.Expr, then *ast.Block, elseIfs []ast.ElseIf, els *ast.Block) {
	id := e.nextName("if")
	condVal := e.emitBoolCondition(cond)

	thenBB := e.curFunc.NewBlock(id + "_then")
	elseBB := e.curFunc.NewBlock(id + "_else")
	mergeBB := e.curFunc.NewBlock(id + "_merge")

	e.current().NewCondBr(condVal, thenBB, elseBB)

	e.setCurrent(thenBB)
	e.pushScope()
	e.emitStmts(then.Stmts)
	if e.current().Term == nil {
		e.current().NewBr(mergeBB)
	}
	e.popScope()

	e.setCurrent(elseBB)
	switch {
	case len(elseIfs) > 0:
		e.emitIfChain(elseIfs[0].Cond, elseIfs[0].Body, elseIfs[1:], els)
	case els != nil:
		e.pushScope()
		e.emitStmts(els.Stmts)
		e.popScope()
	}
	if e.current().Term == nil {
		e.current().NewBr(mergeBB)
	}

	e.setCurrent(mergeBB)
}

// emitBoolCondition lowers a condition expression to an i1, comparing
// against the appropriate zero for non-boolean conditions.
func (e *Emitter) emitBoolCondition(cond ast.Expr) llvalue.Value {
	val := e.emitExpr(cond)
	t := cond.Type()
	if t.Kind == types.Bool {
		return val
	}
	if t.Kind == types.Double {
		return e.current().NewFCmp(enum.FPredONE, val, llconstant.NewFloat(lltypes.Double, 0))
	}
	return e.current().NewICmp(enum.IPredNE, val, llconstant.NewInt(lltypes.I64, 0))
}

// emitForeach synthesizes an induction variable, a pre-block testing it
// against list_length, a body block that retrieves the current element and
// runs the user body, and a termination block, per spec.md §4.4.
func (e *Emitter) emitForeach(s *ast.Foreach) {
	b := e.lookup(s.ListName)
	elemType := types.Type{Kind: b.typ.Kind, RecordName: b.typ.RecordName}
	retrieveFn := listRetrieveFunc(elemType)

	handle := e.current().NewLoad(e.toIRType(b.typ), b.ptr)
	length := e.emitRuntimeCall("list_length", handle)

	id := e.nextName("foreach")
	condBB := e.curFunc.NewBlock(id + "_cond")
	bodyBB := e.curFunc.NewBlock(id + "_body")
	doneBB := e.curFunc.NewBlock(id + "_done")

	// Hoisted directly onto the entry block rather than e.current(), so a
	// later loop's induction variable still lands in the same alloca region
	// as the function's parameters. Safe even after the entry block has
	// been given its terminator (by an earlier construct in the same
	// function): llir keeps a block's non-terminator instructions and its
	// terminator in separate fields, so NewAlloca always appends before the
	// terminator in rendered order regardless of call order.
	indSlot := e.entries[e.curFunc].NewAlloca(lltypes.I64)
	e.current().NewStore(llconstant.NewInt(lltypes.I64, 0), indSlot)

	e.current().NewBr(condBB)

	e.setCurrent(condBB)
	ind := e.current().NewLoad(lltypes.I64, indSlot)
	cmp := e.current().NewICmp(enum.IPredSLT, ind, length)
	e.current().NewCondBr(cmp, bodyBB, doneBB)

	e.setCurrent(bodyBB)
	e.pushScope()
	elem := e.emitRuntimeCall(retrieveFn, handle, ind)
	// Same entry-hoisting as indSlot above.
	elemSlot := e.entries[e.curFunc].NewAlloca(e.toIRType(elemType))
	e.current().NewStore(elem, elemSlot)
	e.define(s.IterVar, &valueBinding{ptr: elemSlot, typ: elemType})

	e.emitStmts(s.Body.Stmts)

	if e.current().Term == nil {
		next := e.current().NewAdd(e.current().NewLoad(lltypes.I64, indSlot), llconstant.NewInt(lltypes.I64, 1))
		e.current().NewStore(next, indSlot)
		e.current().NewBr(condBB)
	}
	e.popScope()

	e.setCurrent(doneBB)
}

func listRetrieveFunc(elemType types.Type) string {
	switch elemType.Kind {
	case types.Char:
		return "str_retrieve"
	case types.Double:
		return "double_list_retrieve"
	default:
		return "int_list_retrieve"
	}
}

// emitReturn emits the return expression, inserting a coercion if its
// IR type differs from the enclosing function's declared return type. A
// bare `return;` inside a non-Void context (only possible at the top
// level -- the analyzer rejects it everywhere else) returns the ABI
// default of zero rather than `ret void`, which would be invalid inside
// `i64 @main`.
func (e *Emitter) emitReturn(s *ast.Return) {
	if s.Value == nil {
		if e.retType.Kind == types.Void {
			e.current().NewRet(nil)
		} else {
			e.current().NewRet(e.zeroValue(e.retType))
		}
		return
	}
	val := e.emitExpr(s.Value)
	val = e.coerce(val, s.Value.Type(), e.retType)
	e.current().NewRet(val)
}
