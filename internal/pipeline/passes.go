package pipeline

import (
	"github.com/packetc-lang/packetc/internal/defuse"
	"github.com/packetc-lang/packetc/internal/diag"
	"github.com/packetc-lang/packetc/internal/effects"
	"github.com/packetc-lang/packetc/internal/fold"
	"github.com/packetc-lang/packetc/internal/ir"
	"github.com/packetc-lang/packetc/internal/resolver"
	"github.com/packetc-lang/packetc/internal/simplify"
)

// funcPass adapts a plain pass function to the Pass interface.
type funcPass struct {
	name string
	run  func(prog *ir.Program, b *resolver.Bindings, sink diag.Sink) (bool, error)
}

func (p funcPass) Name() string { return p.name }

func (p funcPass) Run(prog *ir.Program, ctx *Context) (bool, error) {
	return p.run(prog, ctx.Bindings, ctx.Diags)
}

// DefaultPasses returns the standard pass order. Resolution runs first
// in every round so later passes see bindings for the current tree;
// analyses report through the shared sink and never change the tree.
func DefaultPasses() []Pass {
	return []Pass{
		funcPass{resolver.PassName, func(prog *ir.Program, b *resolver.Bindings, sink diag.Sink) (bool, error) {
			return false, resolver.Resolve(prog, b, sink)
		}},
		funcPass{fold.PassName, fold.Fold},
		funcPass{defuse.PassName, func(prog *ir.Program, b *resolver.Bindings, sink diag.Sink) (bool, error) {
			return false, defuse.Check(prog, b, sink)
		}},
		funcPass{effects.PassName, effects.Order},
		funcPass{simplify.PassName, simplify.Simplify},
	}
}

// PassNames lists the names of the standard passes in run order.
func PassNames() []string {
	ps := DefaultPasses()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name()
	}
	return names
}
