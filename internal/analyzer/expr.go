package analyzer

import (
	"fmt"

	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/diag"
	"github.com/ainfosec/crema/internal/types"
)

// analyzeExpr dispatches on the expression's concrete type and fills its
// Type slot. It returns false (and leaves the type Invalid) on any fatal
// type error.
func (a *Analyzer) analyzeExpr(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.IntLit:
		v.SetType(types.Scalar(types.Int))
		return true
	case *ast.UIntLit:
		v.SetType(types.Scalar(types.UInt))
		return true
	case *ast.DoubleLit:
		v.SetType(types.Scalar(types.Double))
		return true
	case *ast.BoolLit:
		v.SetType(types.Scalar(types.Bool))
		return true
	case *ast.CharLit:
		v.SetType(types.Scalar(types.Char))
		return true
	case *ast.StringLit:
		v.SetType(types.ListOf(types.Char))
		return true
	case *ast.ListLit:
		return a.analyzeListLit(v)
	case *ast.VariableAccess:
		return a.analyzeVariableAccess(v)
	case *ast.ListAccess:
		return a.analyzeListAccess(v)
	case *ast.RecordAccess:
		return a.analyzeRecordAccess(v)
	case *ast.FunctionCall:
		return a.analyzeFunctionCall(v)
	case *ast.BinaryOp:
		return a.analyzeBinaryOp(v)
	case *ast.UnaryNot:
		return a.analyzeUnaryNot(v)
	default:
		panic(fmt.Sprintf("analyzer: unhandled expression type %T", e))
	}
}

func (a *Analyzer) analyzeListLit(l *ast.ListLit) bool {
	if len(l.Elements) == 0 {
		a.errorAt(l.Pos(), diag.KindTypeMismatch, "cannot infer the element type of an empty list literal")
		l.SetType(types.InvalidType)
		return false
	}

	if !a.analyzeExpr(l.Elements[0]) {
		l.SetType(types.InvalidType)
		return false
	}
	elemType := l.Elements[0].Type()

	for _, elem := range l.Elements[1:] {
		if !a.analyzeExpr(elem) {
			l.SetType(types.InvalidType)
			return false
		}
		if !types.Equal(elemType, elem.Type()) {
			a.errorAt(elem.Pos(), diag.KindTypeMismatch, "list contains differing types")
			l.SetType(types.InvalidType)
			return false
		}
	}

	l.SetType(types.Type{Kind: elemType.Kind, IsList: true, RecordName: elemType.RecordName})
	return true
}

func (a *Analyzer) analyzeVariableAccess(v *ast.VariableAccess) bool {
	binding, ok := a.stack.Lookup(v.Name)
	if !ok {
		a.errorAt(v.Pos(), diag.KindUndefined, fmt.Sprintf("undefined variable %q", v.Name))
		v.SetType(types.InvalidType)
		return false
	}
	v.SetType(binding.Type)
	return true
}

func (a *Analyzer) analyzeListAccess(la *ast.ListAccess) bool {
	binding, ok := a.stack.Lookup(la.ListName)
	if !ok {
		a.errorAt(la.Pos(), diag.KindUndefined, fmt.Sprintf("undefined list %q", la.ListName))
		la.SetType(types.InvalidType)
		return false
	}
	if !binding.Type.IsList {
		a.errorAt(la.Pos(), diag.KindTypeMismatch, fmt.Sprintf("%q is not a list", la.ListName))
		la.SetType(types.InvalidType)
		return false
	}
	if !a.analyzeExpr(la.Index) {
		la.SetType(types.InvalidType)
		return false
	}
	if k := la.Index.Type().Kind; k != types.Int && k != types.UInt {
		a.errorAt(la.Index.Pos(), diag.KindTypeMismatch, "list index must be Int or UInt")
		la.SetType(types.InvalidType)
		return false
	}
	la.SetType(types.Type{Kind: binding.Type.Kind, RecordName: binding.Type.RecordName})
	return true
}

func (a *Analyzer) analyzeRecordAccess(ra *ast.RecordAccess) bool {
	binding, ok := a.stack.Lookup(ra.RecordName)
	if !ok {
		a.errorAt(ra.Pos(), diag.KindUndefined, fmt.Sprintf("undefined record %q", ra.RecordName))
		ra.SetType(types.InvalidType)
		return false
	}
	if binding.Type.Kind != types.Record {
		a.errorAt(ra.Pos(), diag.KindTypeMismatch, fmt.Sprintf("%q is not a record", ra.RecordName))
		ra.SetType(types.InvalidType)
		return false
	}
	rec, ok := a.stack.Records[binding.Type.RecordName]
	if !ok {
		a.errorAt(ra.Pos(), diag.KindUndefined, fmt.Sprintf("undefined record type %q", binding.Type.RecordName))
		ra.SetType(types.InvalidType)
		return false
	}
	fieldType, ok := rec.MemberType(ra.Field)
	if !ok {
		a.errorAt(ra.Pos(), diag.KindUndefined, fmt.Sprintf("record %q has no field %q", rec.Name, ra.Field))
		ra.SetType(types.InvalidType)
		return false
	}
	ra.SetType(fieldType)
	return true
}

func (a *Analyzer) analyzeFunctionCall(c *ast.FunctionCall) bool {
	fd, ok := a.stack.Functions[c.Name]
	if !ok {
		a.errorAt(c.Pos(), diag.KindUndefined, fmt.Sprintf("undefined function %q", c.Name))
		c.SetType(types.InvalidType)
		return false
	}
	if len(c.Args) != len(fd.Params) {
		a.errorAt(c.Pos(), diag.KindTypeMismatch, fmt.Sprintf("function %q expects %d argument(s), got %d", c.Name, len(fd.Params), len(c.Args)))
		c.SetType(types.InvalidType)
		return false
	}

	ok = true
	for i, arg := range c.Args {
		if !a.analyzeExpr(arg) {
			ok = false
			continue
		}
		if !a.checkAssignable(arg.Pos(), arg.Type(), fd.Params[i], fmt.Sprintf("argument %d of %q", i+1, c.Name)) {
			ok = false
		}
	}

	c.SetType(fd.ReturnType)
	return ok
}

func (a *Analyzer) analyzeBinaryOp(b *ast.BinaryOp) bool {
	lok := a.analyzeExpr(b.Lhs)
	rok := a.analyzeExpr(b.Rhs)
	if !lok || !rok {
		b.SetType(types.InvalidType)
		return false
	}

	lt, rt := b.Lhs.Type(), b.Rhs.Type()
	if !types.Comparable(lt, rt) {
		a.errorAt(b.Pos(), diag.KindTypeMismatch, fmt.Sprintf("binary operator %q type mismatch: %s vs %s", b.Op, lt, rt))
		b.SetType(types.InvalidType)
		return false
	}

	if b.Op.IsComparison() || b.Op.IsLogical() {
		b.SetType(types.Scalar(types.Bool))
		return true
	}

	b.SetType(types.Larger(lt, rt))
	return true
}

func (a *Analyzer) analyzeUnaryNot(u *ast.UnaryNot) bool {
	if !a.analyzeExpr(u.Operand) {
		u.SetType(types.InvalidType)
		return false
	}
	t := u.Operand.Type()
	if t.IsList || !types.Comparable(t, types.Scalar(types.Bool)) {
		a.errorAt(u.Pos(), diag.KindTypeMismatch, fmt.Sprintf("operator %q requires a boolean-evaluable operand, got %s", "!", t))
		u.SetType(types.InvalidType)
		return false
	}
	u.SetType(types.Scalar(types.Bool))
	return true
}
