// Package simplify cleans up control flow after folding and ordering:
// branches with literal conditions collapse to the taken side, empty
// branches and blocks disappear, and statements after an exit or
// return are dropped.
package simplify

import (
	"github.com/packetc-lang/packetc/internal/diag"
	"github.com/packetc-lang/packetc/internal/ir"
	"github.com/packetc-lang/packetc/internal/resolver"
)

// PassName is the scheduler-visible name of this pass.
const PassName = "SimplifyControlFlow"

// Simplify rewrites prog in place and reports whether anything changed.
// Conditions are never dropped while they carry side effects, so
// observable behavior is preserved exactly.
func Simplify(prog *ir.Program, b *resolver.Bindings, sink diag.Sink) (bool, error) {
	s := &simplifier{}
	for _, d := range prog.Decls {
		switch v := d.(type) {
		case *ir.ActionDecl:
			s.block(v.Body)
		case *ir.ControlDecl:
			s.block(v.Body)
		case *ir.ParserDecl:
			for _, st := range v.States {
				st.Body = s.stmts(st.Body)
			}
		}
	}
	return s.changed, nil
}

type simplifier struct {
	changed bool
}

func (s *simplifier) block(b *ir.BlockStmt) {
	if b == nil {
		return
	}
	b.Stmts = s.stmts(b.Stmts)
}

// stmts rewrites a statement list. Each statement may simplify away
// entirely; anything after a terminating statement is unreachable and
// dropped.
func (s *simplifier) stmts(in []ir.Stmt) []ir.Stmt {
	out := make([]ir.Stmt, 0, len(in))
	for i, st := range in {
		ns, keep := s.stmt(st)
		if keep {
			out = append(out, ns)
		} else {
			s.changed = true
		}
		if terminates(ns) && keep {
			if i+1 < len(in) {
				s.changed = true
			}
			break
		}
	}
	return out
}

// stmt rewrites one statement; keep is false when it simplifies away.
func (s *simplifier) stmt(st ir.Stmt) (ir.Stmt, bool) {
	switch v := st.(type) {
	case *ir.IfStmt:
		return s.ifStmt(v)
	case *ir.BlockStmt:
		s.block(v)
		if len(v.Stmts) == 0 {
			return nil, false
		}
		// A one-statement block without a declaration has no scoping
		// effect; unwrap it.
		if len(v.Stmts) == 1 {
			if _, isDecl := v.Stmts[0].(*ir.DeclStmt); !isDecl {
				s.changed = true
				return v.Stmts[0], true
			}
		}
		return v, true
	default:
		return st, true
	}
}

func (s *simplifier) ifStmt(v *ir.IfStmt) (ir.Stmt, bool) {
	s.block(v.Then)
	s.block(v.Else)

	if v.Else != nil && len(v.Else.Stmts) == 0 {
		v.Else = nil
		s.changed = true
	}

	if c, ok := v.Cond.(*ir.BoolLit); ok {
		s.changed = true
		taken := v.Then
		if !c.Val {
			taken = v.Else
		}
		if taken == nil || len(taken.Stmts) == 0 {
			return nil, false
		}
		// Keep the block so declarations inside the branch stay scoped.
		return s.stmt(taken)
	}

	if len(v.Then.Stmts) == 0 && v.Else == nil && !ir.HasSideEffects(v.Cond) {
		return nil, false
	}
	return v, true
}

// terminates reports whether control cannot continue past st.
func terminates(st ir.Stmt) bool {
	switch v := st.(type) {
	case *ir.ExitStmt, *ir.ReturnStmt:
		return true
	case *ir.BlockStmt:
		if n := len(v.Stmts); n > 0 {
			return terminates(v.Stmts[n-1])
		}
	case *ir.IfStmt:
		if v.Else == nil {
			return false
		}
		n, m := len(v.Then.Stmts), len(v.Else.Stmts)
		return n > 0 && m > 0 && terminates(v.Then.Stmts[n-1]) && terminates(v.Else.Stmts[m-1])
	}
	return false
}
