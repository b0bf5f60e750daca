// Package types implements Crema's value-type lattice: the finite set of
// scalar kinds, the list modifier, record identity, and the promotion order
// used by the analyzer for assignability and by the emitter for coercion.
package types

// Kind enumerates the scalar value kinds a Crema type can carry.
type Kind int

const (
	Invalid Kind = iota
	Int
	UInt
	Double
	Char
	Bool
	Void
	Record
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "Int"
	case UInt:
		return "UInt"
	case Double:
		return "Double"
	case Char:
		return "Char"
	case Bool:
		return "Bool"
	case Void:
		return "Void"
	case Record:
		return "Record"
	default:
		return "Invalid"
	}
}

// Type is a value type: a scalar kind, optionally wrapped in a list, with a
// record name carried alongside Record-kind types.
type Type struct {
	Kind       Kind
	IsList     bool
	RecordName string
}

// Scalar builds a non-list type of the given kind.
func Scalar(k Kind) Type { return Type{Kind: k} }

// ListOf builds a list type whose element kind is k.
func ListOf(k Kind) Type { return Type{Kind: k, IsList: true} }

// RecordType builds a (possibly list-of-) record type named by name.
func RecordType(name string, isList bool) Type {
	return Type{Kind: Record, IsList: isList, RecordName: name}
}

var InvalidType = Type{Kind: Invalid}

// String renders the kind, list modifier, and record name for diagnostics.
func (t Type) String() string {
	s := t.Kind.String()
	if t.Kind == Record && t.RecordName != "" {
		s = t.RecordName
	}
	if t.IsList {
		s += "[]"
	}
	return s
}

// Equal reports whether two types are identical: same kind, same list
// modifier, and (for records) same record name.
func Equal(a, b Type) bool {
	if a.Kind != b.Kind || a.IsList != b.IsList {
		return false
	}
	if a.Kind == Record {
		return a.RecordName == b.RecordName
	}
	return true
}

// promotionEdges lists the strict "<" relation pairs from spec.md §4.1.
// Only scalar (non-list) pairs are ever consulted; the relation is not
// transitively closed here -- each edge is listed explicitly, matching the
// spec's instruction to preserve the asymmetric pairs verbatim rather than
// deriving them from a total order.
var promotionEdges = map[Kind][]Kind{
	Bool:   {Int, UInt, Double},
	Char:   {Int},
	Int:    {Double},
	UInt:   {Double},
	// The String kind does not exist as a distinct scalar kind in this
	// implementation: Crema strings are represented as Type{Kind: Char,
	// IsList: true} (a list of Char), so the spec's "Int/UInt/Double <
	// String" quirk is modeled as numeric-to-char-list, which is never a
	// valid promotion target under Less below -- see AssignableTo and
	// SPEC_FULL.md Open Questions §1 for the rejection this implies.
}

// Less reports whether a < b under the strict promotion order. It is only
// ever true between scalars of matching IsList.
func Less(a, b Type) bool {
	if a.IsList || b.IsList {
		return false
	}
	for _, up := range promotionEdges[a.Kind] {
		if up == b.Kind {
			return true
		}
	}
	return false
}

// LessEq is "<=" : Less or Equal.
func LessEq(a, b Type) bool {
	return Equal(a, b) || Less(a, b)
}

// Larger returns a if a >= b, b if b >= a, or Invalid if the two types are
// incomparable. This is the single choke point the analyzer and emitter both
// use for arithmetic result types and up-cast detection.
func Larger(a, b Type) Type {
	if LessEq(b, a) {
		return a
	}
	if LessEq(a, b) {
		return b
	}
	return InvalidType
}

// AssignableTo reports whether a value of type src may be assigned/passed to
// a binding of type dst, and whether doing so is a strict up-cast (meaning
// the caller should emit an up-cast warning).
func AssignableTo(src, dst Type) (ok bool, isUpCast bool) {
	if Equal(src, dst) {
		return true, false
	}
	if Less(src, dst) {
		return true, true
	}
	return false, false
}

// Comparable reports whether two types may appear on either side of a
// comparison or logical operator, or be unified as list-literal elements:
// one must be <= the other.
func Comparable(a, b Type) bool {
	return LessEq(a, b) || LessEq(b, a)
}
