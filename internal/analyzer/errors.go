package analyzer

import (
	"github.com/ainfosec/crema/internal/ast"
	"github.com/ainfosec/crema/internal/diag"
)

func (a *Analyzer) errorAt(pos ast.Position, kind diag.Kind, msg string) {
	a.sink.Error(kind, pos, msg)
}

func (a *Analyzer) warnAt(pos ast.Position, kind diag.Kind, msg string) {
	a.sink.Warn(kind, pos, msg)
}
