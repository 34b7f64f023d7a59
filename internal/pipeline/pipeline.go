// Package pipeline schedules the midend passes. Passes run in a fixed
// order, repeatedly, until a full round changes nothing; a round limit
// turns a non-converging pass set into an internal error instead of a
// hang.
package pipeline

import (
	"github.com/Masterminds/semver/v3"

	"github.com/packetc-lang/packetc/internal/diag"
	"github.com/packetc-lang/packetc/internal/ir"
	"github.com/packetc-lang/packetc/internal/position"
	"github.com/packetc-lang/packetc/internal/resolver"
)

// CompilerVersion is the semver the `@requires_version` pragma is
// checked against.
const CompilerVersion = "1.4.0"

// DefaultMaxRounds bounds fixpoint iteration. Well-formed pass sets
// converge in a handful of rounds; hitting the bound means a pass
// oscillates.
const DefaultMaxRounds = 1000

// Context is the shared state passed to every pass in a run.
type Context struct {
	// Diags receives every diagnostic of the run.
	Diags *diag.Bag
	// Bindings is rebuilt by resolution each round; later passes in the
	// same round read it.
	Bindings *resolver.Bindings
	// Round is the 1-based fixpoint round currently executing.
	Round int
}

// NewContext creates a run context with empty diagnostics and bindings.
func NewContext() *Context {
	return &Context{Diags: diag.NewBag(), Bindings: resolver.NewBindings()}
}

// Pass is one midend transformation or analysis. Run reports whether it
// changed the tree; a returned error is the run's primary fatal
// diagnostic and stops the pipeline immediately.
type Pass interface {
	Name() string
	Run(prog *ir.Program, ctx *Context) (bool, error)
}

// Scheduler drives passes to a fixpoint over one program.
type Scheduler struct {
	Passes    []Pass
	MaxRounds int
	// Version is the running compiler version checked against the
	// program's version pragma. Nil skips the check.
	Version *semver.Version
}

// NewDefault builds the standard pipeline: resolution, constant
// folding, definite assignment, side-effect ordering, control-flow
// simplification.
func NewDefault() *Scheduler {
	return &Scheduler{
		Passes:    DefaultPasses(),
		MaxRounds: DefaultMaxRounds,
		Version:   semver.MustParse(CompilerVersion),
	}
}

// Run executes the pipeline on prog until a round makes no change.
// Diagnostics accumulate in ctx.Diags; the returned error is the first
// fatal one, and warnings alone never fail the run.
func (s *Scheduler) Run(prog *ir.Program, ctx *Context) error {
	if err := s.checkVersion(prog, ctx); err != nil {
		return err
	}
	max := s.MaxRounds
	if max <= 0 {
		max = DefaultMaxRounds
	}
	for round := 1; round <= max; round++ {
		ctx.Round = round
		changed := false
		for _, p := range s.Passes {
			c, err := p.Run(prog, ctx)
			changed = changed || c
			if err != nil {
				return err
			}
		}
		if !changed {
			return nil
		}
	}
	return diag.Internalf(ctx.Diags, "Scheduler", "Program", position.Span{},
		"no fixpoint after %d rounds", max)
}

// checkVersion enforces the program's `@requires_version` pragma.
func (s *Scheduler) checkVersion(prog *ir.Program, ctx *Context) error {
	if prog.RequiresVersion == "" || s.Version == nil {
		return nil
	}
	c, err := semver.NewConstraint(prog.RequiresVersion)
	if err != nil {
		return diag.Fatalf(ctx.Diags, diag.CodeUnsupportedVersion, position.Span{},
			"invalid version requirement %q: %v", prog.RequiresVersion, err)
	}
	if !c.Check(s.Version) {
		return diag.Fatalf(ctx.Diags, diag.CodeUnsupportedVersion, position.Span{},
			"program requires compiler version %q, this compiler is %s",
			prog.RequiresVersion, s.Version)
	}
	return nil
}
