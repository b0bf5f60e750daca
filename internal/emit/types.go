package emit

import (
	"fmt"

	lltypes "github.com/llir/llvm/ir/types"

	"github.com/ainfosec/crema/internal/types"
)

// toIRType maps a Crema value type onto its LLVM representation. List and
// string handles (including records' backing storage, when listed) are
// always opaque `i8*` values returned by the external runtime -- the
// emitter never looks inside them, per SPEC_FULL.md §4.4.
func (e *Emitter) toIRType(t types.Type) lltypes.Type {
	if t.IsList {
		return lltypes.NewPointer(lltypes.I8)
	}
	switch t.Kind {
	case types.Int, types.UInt:
		return lltypes.I64
	case types.Double:
		return lltypes.Double
	case types.Char:
		return lltypes.I8
	case types.Bool:
		return lltypes.I1
	case types.Void:
		return lltypes.Void
	case types.Record:
		return lltypes.NewPointer(e.records[t.RecordName].structType)
	default:
		panic(fmt.Sprintf("emit: no IR representation for type %s", t))
	}
}
