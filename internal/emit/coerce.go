package emit

import (
	"fmt"

	lltypes "github.com/llir/llvm/ir/types"
	llvalue "github.com/llir/llvm/ir/value"

	"github.com/ainfosec/crema/internal/types"
)

// coerce implements spec.md §4.4's coercion table. from/to must already be
// in the `from <= to` relation (the analyzer's job); anything not listed
// here other than an identity conversion is an internal-compiler-error,
// never a user diagnostic.
func (e *Emitter) coerce(v llvalue.Value, from, to types.Type) llvalue.Value {
	if types.Equal(from, to) {
		return v
	}

	bb := e.current()

	switch {
	case (from.Kind == types.Int || from.Kind == types.UInt) && to.Kind == types.Double:
		return bb.NewSIToFP(v, lltypes.Double)

	case from.Kind == types.Char && to.Kind == types.Int:
		return bb.NewZExt(v, lltypes.I64)

	case from.Kind == types.Bool && to.Kind == types.Int:
		return bb.NewZExt(v, lltypes.I64)
	case from.Kind == types.Bool && to.Kind == types.UInt:
		return bb.NewZExt(v, lltypes.I64)
	case from.Kind == types.Bool && to.Kind == types.Double:
		asInt := bb.NewZExt(v, lltypes.I64)
		return bb.NewSIToFP(asInt, lltypes.Double)

	default:
		panic(fmt.Sprintf("emit: unsupported coercion from %s to %s", from, to))
	}
}

// coerceIndex normalizes a list/string index to the i64 the runtime
// retrieve/insert routines expect. The analyzer permits either an Int or a
// UInt index (spec.md's "list index must be Int or UInt" rule); both share
// the same i64 representation, so a UInt index needs no conversion --
// coerce's table has no UInt -> Int entry because nothing else in the
// language ever narrows UInt to Int implicitly.
func (e *Emitter) coerceIndex(v llvalue.Value, from types.Type) llvalue.Value {
	if from.Kind == types.Int || from.Kind == types.UInt {
		return v
	}
	return e.coerce(v, from, types.Scalar(types.Int))
}
