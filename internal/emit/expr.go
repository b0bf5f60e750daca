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

// emitExpr dispatches on the expression's concrete type and returns the
// value it computes.
func (e *Emitter) emitExpr(expr ast.Expr) llvalue.Value {
	switch v := expr.(type) {
	case *ast.IntLit:
		return llconstant.NewInt(lltypes.I64, v.Value)
	case *ast.UIntLit:
		return llconstant.NewInt(lltypes.I64, int64(v.Value))
	case *ast.DoubleLit:
		return llconstant.NewFloat(lltypes.Double, v.Value)
	case *ast.BoolLit:
		return llconstant.NewBool(v.Value)
	case *ast.CharLit:
		return llconstant.NewInt(lltypes.I8, int64(v.Value))
	case *ast.StringLit:
		return e.emitStringLit(v)
	case *ast.ListLit:
		return e.emitListLit(v)
	case *ast.VariableAccess:
		b := e.lookup(v.Name)
		if b.typ.Kind == types.Record && !b.typ.IsList {
			return b.ptr
		}
		return e.current().NewLoad(e.toIRType(b.typ), b.ptr)
	case *ast.ListAccess:
		return e.emitListAccess(v)
	case *ast.RecordAccess:
		return e.emitRecordAccess(v)
	case *ast.FunctionCall:
		return e.emitFunctionCall(v)
	case *ast.BinaryOp:
		return e.emitBinaryOp(v)
	case *ast.UnaryNot:
		return e.emitUnaryNot(v)
	default:
		panic(fmt.Sprintf("emit: unhandled expression type %T", expr))
	}
}

// emitStringLit lowers a string literal to str_create followed by one
// str_append per constituent rune, per spec.md §4.4's Literals rule.
func (e *Emitter) emitStringLit(v *ast.StringLit) llvalue.Value {
	handle := e.emitRuntimeCall("str_create")
	for _, r := range v.Value {
		e.emitRuntimeCall("str_append", handle, llconstant.NewInt(lltypes.I8, int64(r)))
	}
	return handle
}

// emitListLit lowers a list literal the same way string literals lower:
// construct empty, then append each element. spec.md §4.4 only names the
// string case explicitly; this extends the same append-based pattern to
// int/double list literals (see DESIGN.md).
func (e *Emitter) emitListLit(v *ast.ListLit) llvalue.Value {
	elemType := types.Type{Kind: v.Type().Kind, RecordName: v.Type().RecordName}
	ctor, _ := listConstructor(v.Type())
	handle := e.emitRuntimeCall(ctor)
	appendFn := listWriteFunc(elemType, false)

	for _, elem := range v.Elements {
		val := e.emitExpr(elem)
		val = e.coerce(val, elem.Type(), elemType)
		e.emitRuntimeCall(appendFn, handle, val)
	}
	return handle
}

func (e *Emitter) emitListAccess(la *ast.ListAccess) llvalue.Value {
	b := e.lookup(la.ListName)
	elemType := types.Type{Kind: b.typ.Kind, RecordName: b.typ.RecordName}

	handle := e.current().NewLoad(e.toIRType(b.typ), b.ptr)
	idx := e.emitExpr(la.Index)
	idx = e.coerceIndex(idx, la.Index.Type())

	return e.emitRuntimeCall(listRetrieveFunc(elemType), handle, idx)
}

func (e *Emitter) emitRecordAccess(ra *ast.RecordAccess) llvalue.Value {
	b := e.lookup(ra.RecordName)
	layout := e.records[b.typ.RecordName]
	idx := layout.fieldIndex[ra.Field]
	fieldType := layout.fieldTypes[idx]

	fieldPtr := e.current().NewGetElementPtr(layout.structType, b.ptr,
		llconstant.NewInt(lltypes.I32, 0), llconstant.NewInt(lltypes.I32, int64(idx)))
	fieldPtr.InBounds = true

	return e.current().NewLoad(e.toIRType(fieldType), fieldPtr)
}

func (e *Emitter) emitFunctionCall(c *ast.FunctionCall) llvalue.Value {
	f, ok := e.funcs[c.Name]
	if !ok {
		panic(fmt.Sprintf("emit: call to undeclared function %q", c.Name))
	}

	args := make([]llvalue.Value, len(c.Args))
	for i, a := range c.Args {
		args[i] = e.emitExpr(a)
	}

	return e.current().NewCall(f, args...)
}

func (e *Emitter) emitUnaryNot(u *ast.UnaryNot) llvalue.Value {
	val := e.emitBoolCondition(u.Operand)
	return e.current().NewXor(val, llconstant.NewBool(true))
}

// emitBinaryOp coerces both operands up to the larger operand type, then
// selects the typed instruction per spec.md §4.4's Binary op rule.
func (e *Emitter) emitBinaryOp(b *ast.BinaryOp) llvalue.Value {
	lhs := e.emitExpr(b.Lhs)
	rhs := e.emitExpr(b.Rhs)

	opType := types.Larger(b.Lhs.Type(), b.Rhs.Type())
	lhs = e.coerce(lhs, b.Lhs.Type(), opType)
	rhs = e.coerce(rhs, b.Rhs.Type(), opType)

	bb := e.current()
	isFloat := opType.Kind == types.Double

	switch b.Op {
	case ast.OpAdd:
		if isFloat {
			return bb.NewFAdd(lhs, rhs)
		}
		return bb.NewAdd(lhs, rhs)
	case ast.OpSub:
		if isFloat {
			return bb.NewFSub(lhs, rhs)
		}
		return bb.NewSub(lhs, rhs)
	case ast.OpMul:
		if isFloat {
			return bb.NewFMul(lhs, rhs)
		}
		return bb.NewMul(lhs, rhs)
	case ast.OpDiv:
		if isFloat {
			return bb.NewFDiv(lhs, rhs)
		}
		return bb.NewSDiv(lhs, rhs)
	case ast.OpMod:
		if isFloat {
			return bb.NewFRem(lhs, rhs)
		}
		return bb.NewSRem(lhs, rhs)
	case ast.OpBitAnd:
		return bb.NewAnd(lhs, rhs)
	case ast.OpBitOr:
		return bb.NewOr(lhs, rhs)
	case ast.OpBitXor:
		return bb.NewXor(lhs, rhs)
	case ast.OpAnd:
		return bb.NewAnd(lhs, rhs)
	case ast.OpOr:
		return bb.NewOr(lhs, rhs)
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLeq, ast.OpGt, ast.OpGeq:
		if isFloat {
			return bb.NewFCmp(fpred(b.Op), lhs, rhs)
		}
		return bb.NewICmp(ipred(b.Op), lhs, rhs)
	default:
		panic(fmt.Sprintf("emit: unhandled binary operator %s", b.Op))
	}
}

func ipred(op ast.Op) enum.IPred {
	switch op {
	case ast.OpEq:
		return enum.IPredEQ
	case ast.OpNeq:
		return enum.IPredNE
	case ast.OpLt:
		return enum.IPredSLT
	case ast.OpLeq:
		return enum.IPredSLE
	case ast.OpGt:
		return enum.IPredSGT
	default:
		return enum.IPredSGE
	}
}

func fpred(op ast.Op) enum.FPred {
	switch op {
	case ast.OpEq:
		return enum.FPredOEQ
	case ast.OpNeq:
		return enum.FPredONE
	case ast.OpLt:
		return enum.FPredOLT
	case ast.OpLeq:
		return enum.FPredOLE
	case ast.OpGt:
		return enum.FPredOGT
	default:
		return enum.FPredOGE
	}
}
