// Package scope implements the analyzer's (and, in mirrored form, the
// emitter's) scope stack and global symbol tables: variable bindings,
// function declarations, and record declarations, with the shared
// variable/function namespace reservation rule from spec.md §3.
package scope

import "github.com/ainfosec/crema/internal/types"

// VarBinding is a declared variable: its name and type. Any initializer
// AST node stays with the ast.VarDecl node; VarBinding only keeps the
// type for lookup.
type VarBinding struct {
	Name string
	Type types.Type
}

// FuncDecl is a registered function signature.
type FuncDecl struct {
	Name       string
	ReturnType types.Type
	Params     []types.Type
	External   bool // true if declared without a body (stdlib)
}

// RecordDecl is a registered record's ordered member list.
type RecordDecl struct {
	Name    string
	Members []VarBinding // order defines IR layout
}

// MemberType looks up a member's type by name.
func (r *RecordDecl) MemberType(name string) (types.Type, bool) {
	for _, m := range r.Members {
		if m.Name == name {
			return m.Type, true
		}
	}
	return types.InvalidType, false
}

// Scope is one frame of the scope stack: a flat map of locally-visible
// variable bindings, plus the expected return type inherited from the
// innermost enclosing function (used to check `return` statements).
type Scope struct {
	vars               map[string]*VarBinding
	ExpectedReturnType types.Type
}

func newScope(expectedReturn types.Type) *Scope {
	return &Scope{vars: make(map[string]*VarBinding), ExpectedReturnType: expectedReturn}
}

// Define adds a binding to this scope. It does not check for duplicates --
// that is the caller's (Stack's) responsibility, since duplicate checking
// also needs to consult the global function table.
func (s *Scope) Define(b *VarBinding) {
	s.vars[b.Name] = b
}

// Lookup finds a binding declared directly in this scope (no outward walk).
func (s *Scope) Lookup(name string) (*VarBinding, bool) {
	b, ok := s.vars[name]
	return b, ok
}

// Stack is the analyzer's (or emitter's) scope stack plus the global
// function and record tables. It is an explicit local value threaded
// through passes -- there is no package-level singleton, per spec.md §5.
type Stack struct {
	frames    []*Scope
	Functions map[string]*FuncDecl
	Records   map[string]*RecordDecl
}

// NewStack creates an empty stack with no scopes pushed.
func NewStack() *Stack {
	return &Stack{
		Functions: make(map[string]*FuncDecl),
		Records:   make(map[string]*RecordDecl),
	}
}

// Push creates and pushes a new scope. If inherit is true and a scope is
// already pushed, the new scope takes the innermost scope's expected return
// type and expectedReturn is ignored (used for blocks nested inside a
// function, per spec.md §4.3's Block contract); pass inherit=false with a
// concrete type when entering a function body.
func (s *Stack) Push(expectedReturn types.Type, inherit bool) *Scope {
	ret := expectedReturn
	if inherit && len(s.frames) > 0 {
		ret = s.frames[len(s.frames)-1].ExpectedReturnType
	}
	sc := newScope(ret)
	s.frames = append(s.frames, sc)
	return sc
}

// Pop removes the innermost scope.
func (s *Stack) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth reports how many scopes are currently pushed.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Current returns the innermost scope, or nil if the stack is empty.
func (s *Stack) Current() *Scope {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// Lookup walks the scope stack inward-to-outward looking for a variable
// binding. It does not consult the global function/record tables -- those
// live in disjoint namespaces reached via Functions/Records directly.
func (s *Stack) Lookup(name string) (*VarBinding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i].Lookup(name); ok {
			return b, true
		}
	}
	return nil, false
}

// IsNameTaken reports whether name is already reserved as either a variable
// visible from the current scope or a registered function -- the shared
// reservation check spec.md §3 requires between the two namespaces.
func (s *Stack) IsNameTaken(name string) bool {
	if _, ok := s.Lookup(name); ok {
		return true
	}
	if _, ok := s.Functions[name]; ok {
		return true
	}
	return false
}

// DefineVar attempts to register a variable binding in the current scope.
// It fails if the name is already bound in the current scope, or already
// registered as a function name anywhere.
func (s *Stack) DefineVar(b *VarBinding) bool {
	cur := s.Current()
	if cur == nil {
		return false
	}
	if _, ok := cur.Lookup(b.Name); ok {
		return false
	}
	if _, ok := s.Functions[b.Name]; ok {
		return false
	}
	cur.Define(b)
	return true
}

// DefineFunc registers a function in the global function table. It fails
// if the name is already a registered function or already a variable
// visible from the current scope.
func (s *Stack) DefineFunc(f *FuncDecl) bool {
	if _, ok := s.Functions[f.Name]; ok {
		return false
	}
	if _, ok := s.Lookup(f.Name); ok {
		return false
	}
	s.Functions[f.Name] = f
	return true
}

// DefineRecord registers a record in the global record table. It fails if
// the name is already registered.
func (s *Stack) DefineRecord(r *RecordDecl) bool {
	if _, ok := s.Records[r.Name]; ok {
		return false
	}
	s.Records[r.Name] = r
	return true
}
