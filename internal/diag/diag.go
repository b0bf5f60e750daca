// Package diag implements Crema's diagnostics sink: the structured,
// leveled collector of semantic errors and warnings described in spec.md
// §7, modeled on the teacher's logging.Logger but instantiated explicitly
// per compilation unit rather than stashed in a package-level global.
package diag

import (
	"sort"
	"sync"

	"github.com/ainfosec/crema/internal/ast"
)

// Severity distinguishes fatal diagnostics from non-fatal warnings.
type Severity int

const (
	Warning Severity = iota
	Error
)

// Kind categorizes a diagnostic for display and for test assertions,
// corresponding to spec.md §7's taxonomy.
type Kind int

const (
	KindDuplicateDecl Kind = iota
	KindUndefined
	KindTypeMismatch
	KindRecursion
	KindUpCast
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateDecl:
		return "Duplicate Declaration"
	case KindUndefined:
		return "Undefined Reference"
	case KindTypeMismatch:
		return "Type Mismatch"
	case KindRecursion:
		return "Recursion"
	case KindUpCast:
		return "Up-cast"
	case KindInternal:
		return "Internal"
	default:
		return "Diagnostic"
	}
}

// Diagnostic is a single reported message, tied to a source position.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Pos      ast.Position
}

func (d Diagnostic) IsError() bool { return d.Severity == Error }

// Sink collects diagnostics for a single compilation unit in source order
// and reports whether any fatal diagnostic was recorded. A mutex guards
// concurrent access, mirroring the teacher's logger -- the analyzer itself
// is single-threaded per spec.md §5, but nothing prevents an embedding
// driver from sharing one Sink across concurrently-analyzed units.
type Sink struct {
	mu    sync.Mutex
	items []Diagnostic
	seq   []int // unused: Diagnostics keeps insertion order for tied positions via sort.SliceStable
}

// NewSink creates an empty diagnostics sink.
func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) add(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, d)
}

// Error records a fatal diagnostic.
func (s *Sink) Error(kind Kind, pos ast.Position, message string) {
	s.add(Diagnostic{Severity: Error, Kind: kind, Message: message, Pos: pos})
}

// Warn records a non-fatal diagnostic.
func (s *Sink) Warn(kind Kind, pos ast.Position, message string) {
	s.add(Diagnostic{Severity: Warning, Kind: kind, Message: message, Pos: pos})
}

// HasErrors reports whether any fatal diagnostic has been recorded.
func (s *Sink) HasErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.items {
		if d.IsError() {
			return true
		}
	}
	return false
}

// Diagnostics returns all recorded diagnostics in source order (stable with
// respect to insertion order for diagnostics sharing a position).
func (s *Sink) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Pos, out[j].Pos
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Col < pj.Col
	})
	return out
}
