// Package defuse checks definite assignment: every read of a local
// variable or out parameter must be reached by an assignment on all
// paths, and every out parameter must be assigned on every path that
// leaves its control or action.
package defuse

import (
	"github.com/packetc-lang/packetc/internal/diag"
	"github.com/packetc-lang/packetc/internal/ir"
	"github.com/packetc-lang/packetc/internal/position"
	"github.com/packetc-lang/packetc/internal/resolver"
)

// PassName is the scheduler-visible name of this pass.
const PassName = "DefUse"

// Check runs the analysis over prog. It does not rewrite the tree, so
// the changed flag it reports to the scheduler is always false.
// Analysis is field-insensitive: assigning any field of an aggregate
// counts as assigning the whole value.
func Check(prog *ir.Program, b *resolver.Bindings, sink diag.Sink) error {
	c := &checker{b: b, sink: sink}
	for _, d := range prog.Decls {
		switch v := d.(type) {
		case *ir.ActionDecl:
			if err := c.routine(v.Params, nil, v.Body); err != nil {
				return err
			}
		case *ir.ControlDecl:
			if err := c.routine(v.Params, v.Locals, v.Body); err != nil {
				return err
			}
		case *ir.ParserDecl:
			if err := c.parser(v); err != nil {
				return err
			}
		}
	}
	return nil
}

type checker struct {
	b    *resolver.Bindings
	sink diag.Sink
}

// state is the flow fact at one program point: which tracked
// declarations are definitely assigned, and whether the point is
// reachable at all. Unreachable points satisfy every check.
type state struct {
	assigned map[ir.Decl]bool
	live     bool
}

func newState() *state {
	return &state{assigned: make(map[ir.Decl]bool), live: true}
}

func (s *state) clone() *state {
	c := &state{assigned: make(map[ir.Decl]bool, len(s.assigned)), live: s.live}
	for d := range s.assigned {
		c.assigned[d] = true
	}
	return c
}

// merge joins two branch exits. A declaration is assigned after the
// join only when both live branches assign it.
func merge(a, b *state) *state {
	switch {
	case !a.live:
		return b
	case !b.live:
		return a
	}
	out := newState()
	for d := range a.assigned {
		if b.assigned[d] {
			out.assigned[d] = true
		}
	}
	return out
}

// routine analyzes one action or control body. In and inout parameters
// enter assigned; out parameters must be assigned before every exit.
func (c *checker) routine(params []*ir.Param, locals []ir.Decl, body *ir.BlockStmt) error {
	st := newState()
	var outs []*ir.Param
	for _, p := range params {
		if p.Dir == ir.DirOut {
			outs = append(outs, p)
		} else {
			st.assigned[p] = true
		}
	}
	for _, l := range locals {
		if v, ok := l.(*ir.VarDecl); ok {
			if v.Init != nil {
				if err := c.expr(v.Init, st); err != nil {
					return err
				}
				st.assigned[v] = true
			}
		} else {
			// Constants, tables and nested instances need no assignment.
			st.assigned[l] = true
		}
	}
	st, err := c.block(body, st, outs)
	if err != nil {
		return err
	}
	if st.live && body != nil {
		if err := c.outsAssigned(outs, st, body.Span); err != nil {
			return err
		}
	}
	return nil
}

// parser analyzes each state body in isolation. The state machine may
// enter a state along many transition paths, so cross-state flow facts
// are not tracked; parser params and locals are assumed assigned, and
// only variables declared inside a state body are checked.
func (c *checker) parser(v *ir.ParserDecl) error {
	for _, ps := range v.States {
		st := newState()
		for _, p := range v.Params {
			st.assigned[p] = true
		}
		for _, l := range v.Locals {
			st.assigned[l] = true
		}
		for _, s := range ps.Body {
			var err error
			st, err = c.stmt(s, st, nil)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// outsAssigned reports the first out parameter not definitely assigned
// at an exit point.
func (c *checker) outsAssigned(outs []*ir.Param, st *state, at position.Span) error {
	for _, p := range outs {
		if !st.assigned[p] {
			return diag.Fatalf(c.sink, diag.CodeDefiniteAssignment, at,
				"out parameter %q may be unassigned here: no definitions reach this use", p.Name)
		}
	}
	return nil
}

func (c *checker) block(b *ir.BlockStmt, st *state, outs []*ir.Param) (*state, error) {
	if b == nil {
		return st, nil
	}
	var err error
	for _, s := range b.Stmts {
		st, err = c.stmt(s, st, outs)
		if err != nil {
			return st, err
		}
	}
	return st, nil
}

func (c *checker) stmt(s ir.Stmt, st *state, outs []*ir.Param) (*state, error) {
	if !st.live {
		return st, nil
	}
	switch v := s.(type) {
	case *ir.AssignStmt:
		if err := c.expr(v.RHS, st); err != nil {
			return st, err
		}
		if err := c.write(v.LHS, st); err != nil {
			return st, err
		}
		return st, nil
	case *ir.IfStmt:
		if err := c.expr(v.Cond, st); err != nil {
			return st, err
		}
		thenSt, err := c.block(v.Then, st.clone(), outs)
		if err != nil {
			return st, err
		}
		elseSt := st
		if v.Else != nil {
			elseSt, err = c.block(v.Else, st.clone(), outs)
			if err != nil {
				return st, err
			}
		}
		return merge(thenSt, elseSt), nil
	case *ir.BlockStmt:
		return c.block(v, st, outs)
	case *ir.CallStmt:
		if err := c.expr(v.Call, st); err != nil {
			return st, err
		}
		return st, nil
	case *ir.ExitStmt:
		if err := c.outsAssigned(outs, st, v.Span); err != nil {
			return st, err
		}
		st.live = false
		return st, nil
	case *ir.ReturnStmt:
		if err := c.outsAssigned(outs, st, v.Span); err != nil {
			return st, err
		}
		st.live = false
		return st, nil
	case *ir.DeclStmt:
		if v.Decl.Init != nil {
			if err := c.expr(v.Decl.Init, st); err != nil {
				return st, err
			}
			st.assigned[v.Decl] = true
		}
		return st, nil
	default:
		return st, diag.Internalf(c.sink, PassName, ir.KindOf(s), s.Pos(),
			"unhandled statement")
	}
}

// write records an assignment through an lvalue. A field write marks
// the base declaration assigned.
func (c *checker) write(lhs ir.Expr, st *state) error {
	switch v := lhs.(type) {
	case *ir.Ref:
		if d := c.b.DeclOf(v); d != nil {
			st.assigned[d] = true
		}
		return nil
	case *ir.FieldExpr:
		return c.write(v.X, st)
	default:
		return diag.Internalf(c.sink, PassName, ir.KindOf(lhs), lhs.Pos(),
			"unhandled lvalue")
	}
}

// expr checks every read in e against the current state.
func (c *checker) expr(e ir.Expr, st *state) error {
	switch v := e.(type) {
	case nil:
		return nil
	case *ir.IntLit, *ir.BoolLit:
		return nil
	case *ir.Ref:
		return c.use(v, st)
	case *ir.FieldExpr:
		return c.expr(v.X, st)
	case *ir.UnaryExpr:
		return c.expr(v.X, st)
	case *ir.BinaryExpr:
		if err := c.expr(v.L, st); err != nil {
			return err
		}
		return c.expr(v.R, st)
	case *ir.CondExpr:
		if err := c.expr(v.Cond, st); err != nil {
			return err
		}
		if err := c.expr(v.Then, st); err != nil {
			return err
		}
		return c.expr(v.Else, st)
	case *ir.CallExpr:
		return c.call(v, st)
	case *ir.ApplyExpr:
		return c.apply(v, st)
	default:
		return diag.Internalf(c.sink, PassName, ir.KindOf(e), e.Pos(),
			"unhandled expression")
	}
}

// use flags a read of a declaration that needs assignment and has none
// reaching it.
func (c *checker) use(r *ir.Ref, st *state) error {
	d := c.b.DeclOf(r)
	if d == nil {
		return nil
	}
	switch d.(type) {
	case *ir.VarDecl, *ir.Param:
		if !st.assigned[d] {
			return diag.Fatalf(c.sink, diag.CodeDefiniteAssignment, r.Span,
				"%q may be read before assignment: no definitions reach this use", r.Name)
		}
	}
	return nil
}

// call checks argument reads honoring parameter direction: out
// arguments are writes, inout arguments are reads then writes.
func (c *checker) call(v *ir.CallExpr, st *state) error {
	var params []*ir.Param
	if callee, ok := v.Callee.(*ir.Ref); ok {
		if ad, ok := c.b.DeclOf(callee).(*ir.ActionDecl); ok {
			params = ad.Params
		}
	}
	if fe, ok := v.Callee.(*ir.FieldExpr); ok {
		if err := c.expr(fe.X, st); err != nil {
			return err
		}
	}
	for i, arg := range v.Args {
		dir := ir.DirIn
		if i < len(params) {
			dir = params[i].Dir
		}
		switch dir {
		case ir.DirIn, ir.DirInOut:
			if err := c.expr(arg, st); err != nil {
				return err
			}
		}
		switch dir {
		case ir.DirOut, ir.DirInOut:
			if err := c.write(arg, st); err != nil {
				return err
			}
		}
	}
	return nil
}

// apply reads the applied table's key expressions and bound action
// arguments.
func (c *checker) apply(v *ir.ApplyExpr, st *state) error {
	t := c.b.Tables[v]
	if t == nil {
		return nil
	}
	for _, k := range t.Keys {
		if err := c.expr(k.Expr, st); err != nil {
			return err
		}
	}
	for _, a := range t.Actions {
		for _, arg := range a.Args {
			if err := c.expr(arg, st); err != nil {
				return err
			}
		}
	}
	if t.Default != nil {
		for _, arg := range t.Default.Args {
			if err := c.expr(arg, st); err != nil {
				return err
			}
		}
	}
	return nil
}
