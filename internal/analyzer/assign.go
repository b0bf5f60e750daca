package analyzer

import (
	"fmt"

	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/diag"
	"github.com/ainfosec/crema/internal/types"
)

// checkAssignable implements the assignability rule of spec.md §4.1: src
// must be <= dst. A strict up-cast (src < dst) is a warning, not an error;
// anything else (src > dst or incomparable) is a fatal type mismatch.
func (a *Analyzer) checkAssignable(pos ast.Position, src, dst types.Type, what string) bool {
	ok, isUpCast := types.AssignableTo(src, dst)
	if !ok {
		a.errorAt(pos, diag.KindTypeMismatch, fmt.Sprintf("type mismatch for %s: %s is not assignable to %s", what, src, dst))
		return false
	}
	if isUpCast {
		a.warnAt(pos, diag.KindUpCast, fmt.Sprintf("up-cast from %s to %s for %s", src, dst, what))
	}
	return true
}
