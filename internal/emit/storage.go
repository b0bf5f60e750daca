package emit

import (
	llconstant "github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	llvalue "github.com/llir/llvm/ir/value"

	"github.com/ainfosec/crema/internal/types"
)

// allocate implements spec.md §4.4's storage rule: a global with an
// undefined (here, zero) initial value at the top level, or a stack slot in
// the current function's entry block everywhere else.
func (e *Emitter) allocate(name string, t types.Type) llvalue.Value {
	// Records are reference types in this emitter: a record variable's
	// storage handle is a direct pointer to its struct, never a slot that
	// in turn holds a pointer (unlike every other variable kind). This
	// mirrors how list/string handles are opaque pointers, but a record's
	// backing memory lives in the compiled program's own stack/globals
	// rather than behind a runtime constructor call.
	if t.Kind == types.Record && !t.IsList {
		structType := e.records[t.RecordName].structType
		if e.isTopLevel() {
			return e.module.NewGlobalDef(e.nextName("g_"+name), llconstant.NewZeroInitializer(structType))
		}
		return e.entries[e.curFunc].NewAlloca(structType)
	}

	irType := e.toIRType(t)

	if e.isTopLevel() {
		return e.module.NewGlobalDef(e.nextName("g_"+name), llconstant.NewZeroInitializer(irType))
	}

	return e.entries[e.curFunc].NewAlloca(irType)
}

// zeroValue returns the LLVM zero constant for a Crema scalar type, used
// for default function returns and for a bare `return;` in a non-Void
// context.
func (e *Emitter) zeroValue(t types.Type) llvalue.Value {
	switch {
	case t.IsList:
		return llconstant.NewNull(lltypes.NewPointer(lltypes.I8))
	case t.Kind == types.Double:
		return llconstant.NewFloat(lltypes.Double, 0)
	case t.Kind == types.Bool:
		return llconstant.NewBool(false)
	case t.Kind == types.Char:
		return llconstant.NewInt(lltypes.I8, 0)
	case t.Kind == types.Record:
		return llconstant.NewNull(lltypes.NewPointer(e.records[t.RecordName].structType))
	default:
		return llconstant.NewInt(lltypes.I64, 0)
	}
}
