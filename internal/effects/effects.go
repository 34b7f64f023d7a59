// Package effects normalizes side-effect order. Method calls and table
// applies embedded inside larger expressions are hoisted into
// temporaries so every side effect happens exactly once, left to
// right, at statement level. Conditionally evaluated operands keep
// their conditional semantics by lowering to if/else.
package effects

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/packetc-lang/packetc/internal/diag"
	"github.com/packetc-lang/packetc/internal/ir"
	"github.com/packetc-lang/packetc/internal/position"
	"github.com/packetc-lang/packetc/internal/resolver"
)

// PassName is the scheduler-visible name of this pass.
const PassName = "SideEffectOrdering"

// tempPrefix names hoisted temporaries. The frontend rejects user
// identifiers with this prefix, so re-running the pass never collides.
const tempPrefix = "__se_tmp"

// Order rewrites prog in place. A call or apply that is already the
// whole right-hand side, condition or call statement stays put; only
// nested occurrences are hoisted. Output is a fixpoint of the pass.
func Order(prog *ir.Program, b *resolver.Bindings, sink diag.Sink) (bool, error) {
	o := &orderer{b: b, sink: sink}
	for _, d := range prog.Decls {
		switch v := d.(type) {
		case *ir.ActionDecl:
			if err := o.body(v.Body); err != nil {
				return o.changed, err
			}
		case *ir.ControlDecl:
			o.liftLocals(v)
			if err := o.body(v.Body); err != nil {
				return o.changed, err
			}
		case *ir.ParserDecl:
			if err := o.parser(v); err != nil {
				return o.changed, err
			}
		}
	}
	return o.changed, nil
}

type orderer struct {
	b       *resolver.Bindings
	sink    diag.Sink
	changed bool
	tmpID   int
}

// parser orders every state body. Temporaries are numbered continuously
// across the states: state bodies resolve in the shared parser scope's
// children, and one counter per parser keeps the minted names unique
// within it.
func (o *orderer) parser(v *ir.ParserDecl) error {
	max := -1
	for _, st := range v.States {
		if n := maxTempStmts(st.Body); n > max {
			max = n
		}
	}
	o.tmpID = max + 1
	for _, st := range v.States {
		ss, err := o.stmts(st.Body)
		if err != nil {
			return err
		}
		st.Body = ss
	}
	return nil
}

// liftLocals moves side-effecting local initializers into assignments
// at the start of the body, where the normal statement rewrite orders
// them. Every initialized local after the first lifted one moves too,
// so an initializer reading an earlier local still runs after it.
func (o *orderer) liftLocals(v *ir.ControlDecl) {
	lifting := false
	var pre []ir.Stmt
	for _, d := range v.Locals {
		vd, ok := d.(*ir.VarDecl)
		if !ok || vd.Init == nil {
			continue
		}
		if !lifting && !ir.HasSideEffects(vd.Init) {
			continue
		}
		lifting = true
		pre = append(pre, &ir.AssignStmt{
			Span: vd.Span,
			LHS:  &ir.Ref{Span: vd.Span, Name: vd.Name},
			RHS:  vd.Init,
		})
		vd.Init = nil
		o.changed = true
	}
	if len(pre) == 0 {
		return
	}
	if v.Body == nil {
		v.Body = &ir.BlockStmt{Span: v.Span}
	}
	v.Body.Stmts = append(pre, v.Body.Stmts...)
}

func (o *orderer) body(b *ir.BlockStmt) error {
	if b == nil {
		return nil
	}
	o.tmpID = maxTempBlock(b) + 1
	ss, err := o.stmts(b.Stmts)
	if err != nil {
		return err
	}
	b.Stmts = ss
	return nil
}

func (o *orderer) newTemp() string {
	name := fmt.Sprintf("%s%d", tempPrefix, o.tmpID)
	o.tmpID++
	return name
}

func (o *orderer) stmts(ss []ir.Stmt) ([]ir.Stmt, error) {
	out := make([]ir.Stmt, 0, len(ss))
	for _, s := range ss {
		var pre []ir.Stmt
		ns, err := o.stmt(s, &pre)
		if err != nil {
			return nil, err
		}
		out = append(out, pre...)
		out = append(out, ns)
	}
	return out, nil
}

func (o *orderer) stmt(s ir.Stmt, pre *[]ir.Stmt) (ir.Stmt, error) {
	switch v := s.(type) {
	case *ir.AssignStmt:
		rhs, err := o.root(v.RHS, pre)
		if err != nil {
			return nil, err
		}
		v.RHS = rhs
		return v, nil
	case *ir.IfStmt:
		cond, err := o.root(v.Cond, pre)
		if err != nil {
			return nil, err
		}
		v.Cond = cond
		if err := o.rewriteBlock(v.Then); err != nil {
			return nil, err
		}
		if err := o.rewriteBlock(v.Else); err != nil {
			return nil, err
		}
		return v, nil
	case *ir.BlockStmt:
		if err := o.rewriteBlock(v); err != nil {
			return nil, err
		}
		return v, nil
	case *ir.CallStmt:
		call, err := o.root(v.Call, pre)
		if err != nil {
			return nil, err
		}
		v.Call = call
		return v, nil
	case *ir.DeclStmt:
		if v.Decl.Init != nil {
			init, err := o.root(v.Decl.Init, pre)
			if err != nil {
				return nil, err
			}
			v.Decl.Init = init
		}
		return v, nil
	case *ir.ExitStmt, *ir.ReturnStmt:
		return s, nil
	default:
		return nil, diag.Internalf(o.sink, PassName, ir.KindOf(s), s.Pos(),
			"unhandled statement")
	}
}

// rewriteBlock rewrites a nested block's statement list in place.
func (o *orderer) rewriteBlock(b *ir.BlockStmt) error {
	if b == nil {
		return nil
	}
	ss, err := o.stmts(b.Stmts)
	if err != nil {
		return err
	}
	b.Stmts = ss
	return nil
}

// root rewrites an expression whose outermost node may legally remain a
// call or apply. Only its operands are subject to hoisting.
func (o *orderer) root(e ir.Expr, pre *[]ir.Stmt) (ir.Expr, error) {
	switch v := e.(type) {
	case *ir.CallExpr:
		if err := o.callee(v, pre); err != nil {
			return nil, err
		}
		if err := o.args(v, pre); err != nil {
			return nil, err
		}
		return v, nil
	case *ir.ApplyExpr:
		return v, nil
	default:
		return o.expr(e, pre)
	}
}

// callee hoists side effects out of a method call's receiver chain.
// The receiver evaluates before the arguments, so its effects come
// first.
func (o *orderer) callee(v *ir.CallExpr, pre *[]ir.Stmt) error {
	fe, ok := v.Callee.(*ir.FieldExpr)
	if !ok {
		return nil
	}
	x, err := o.expr(fe.X, pre)
	if err != nil {
		return err
	}
	fe.X = x
	return nil
}

// args hoists side effects out of a call's argument list, preserving
// left-to-right argument order.
func (o *orderer) args(v *ir.CallExpr, pre *[]ir.Stmt) error {
	for i, a := range v.Args {
		na, err := o.expr(a, pre)
		if err != nil {
			return err
		}
		v.Args[i] = na
	}
	return nil
}

// expr rewrites e so that the result contains no call or apply nodes;
// each one encountered is hoisted to a fresh temporary in evaluation
// order.
func (o *orderer) expr(e ir.Expr, pre *[]ir.Stmt) (ir.Expr, error) {
	switch v := e.(type) {
	case nil:
		return nil, nil
	case *ir.IntLit, *ir.BoolLit, *ir.Ref:
		return e, nil
	case *ir.FieldExpr:
		x, err := o.expr(v.X, pre)
		if err != nil {
			return nil, err
		}
		v.X = x
		return v, nil
	case *ir.UnaryExpr:
		x, err := o.expr(v.X, pre)
		if err != nil {
			return nil, err
		}
		v.X = x
		return v, nil
	case *ir.BinaryExpr:
		return o.binary(v, pre)
	case *ir.CondExpr:
		return o.cond(v, pre)
	case *ir.CallExpr:
		if err := o.callee(v, pre); err != nil {
			return nil, err
		}
		if err := o.args(v, pre); err != nil {
			return nil, err
		}
		return o.hoist(v, pre)
	case *ir.ApplyExpr:
		return o.hoist(v, pre)
	default:
		return nil, diag.Internalf(o.sink, PassName, ir.KindOf(e), e.Pos(),
			"unhandled expression")
	}
}

func (o *orderer) binary(v *ir.BinaryExpr, pre *[]ir.Stmt) (ir.Expr, error) {
	l, err := o.expr(v.L, pre)
	if err != nil {
		return nil, err
	}
	v.L = l
	// A side-effecting right operand of && or || is only evaluated when
	// the left operand requires it. Hoisting it unconditionally would
	// run the effect on the short-circuit path, so lower to if/else.
	if v.Op.IsLogical() && ir.HasSideEffects(v.R) {
		if v.Op == ir.OpLAnd {
			return o.lower(v.Span, ir.Bool, v.L, v.R, &ir.BoolLit{Span: v.Span, Val: false}, pre)
		}
		return o.lower(v.Span, ir.Bool, v.L, &ir.BoolLit{Span: v.Span, Val: true}, v.R, pre)
	}
	r, err := o.expr(v.R, pre)
	if err != nil {
		return nil, err
	}
	v.R = r
	return v, nil
}

func (o *orderer) cond(v *ir.CondExpr, pre *[]ir.Stmt) (ir.Expr, error) {
	cond, err := o.expr(v.Cond, pre)
	if err != nil {
		return nil, err
	}
	v.Cond = cond
	if !ir.HasSideEffects(v.Then) && !ir.HasSideEffects(v.Else) {
		return v, nil
	}
	ty := o.b.TypeOf(v)
	if ty == nil {
		return nil, diag.Internalf(o.sink, PassName, ir.KindOf(v), v.Span,
			"conditional expression has no computed type")
	}
	return o.lower(v.Span, ty, v.Cond, v.Then, v.Else, pre)
}

// lower materializes `cond ? thenE : elseE` as a temporary assigned in
// an if/else, so each branch's side effects stay on their branch.
func (o *orderer) lower(span position.Span, ty ir.Type, cond, thenE, elseE ir.Expr, pre *[]ir.Stmt) (ir.Expr, error) {
	name := o.newTemp()
	*pre = append(*pre, &ir.DeclStmt{
		Span: span,
		Decl: &ir.VarDecl{Span: span, Name: name, Type: ty},
	})
	thenStmts, err := o.branch(name, thenE)
	if err != nil {
		return nil, err
	}
	elseStmts, err := o.branch(name, elseE)
	if err != nil {
		return nil, err
	}
	*pre = append(*pre, &ir.IfStmt{
		Span: span,
		Cond: cond,
		Then: &ir.BlockStmt{Span: span, Stmts: thenStmts},
		Else: &ir.BlockStmt{Span: span, Stmts: elseStmts},
	})
	o.changed = true
	return &ir.Ref{Span: span, Name: name}, nil
}

// branch builds the statements assigning one lowered branch value into
// the temporary, hoisting that branch's nested effects inside the
// branch.
func (o *orderer) branch(tmp string, e ir.Expr) ([]ir.Stmt, error) {
	var pre []ir.Stmt
	val, err := o.root(e, &pre)
	if err != nil {
		return nil, err
	}
	return append(pre, &ir.AssignStmt{
		Span: e.Pos(),
		LHS:  &ir.Ref{Span: e.Pos(), Name: tmp},
		RHS:  val,
	}), nil
}

// hoist moves a side-effecting expression into a fresh temporary
// declared immediately before the enclosing statement.
func (o *orderer) hoist(e ir.Expr, pre *[]ir.Stmt) (ir.Expr, error) {
	ty := o.b.TypeOf(e)
	if ty == nil {
		return nil, diag.Internalf(o.sink, PassName, ir.KindOf(e), e.Pos(),
			"embedded call has no result type")
	}
	name := o.newTemp()
	*pre = append(*pre, &ir.DeclStmt{
		Span: e.Pos(),
		Decl: &ir.VarDecl{Span: e.Pos(), Name: name, Type: ty, Init: e},
	})
	o.changed = true
	return &ir.Ref{Span: e.Pos(), Name: name}, nil
}

// maxTempBlock scans for already-hoisted temporaries so fresh names
// never collide across rounds.
func maxTempBlock(b *ir.BlockStmt) int {
	if b == nil {
		return -1
	}
	return maxTempStmts(b.Stmts)
}

func maxTempStmts(ss []ir.Stmt) int {
	max := -1
	for _, s := range ss {
		if n := maxTempStmt(s); n > max {
			max = n
		}
	}
	return max
}

func maxTempStmt(s ir.Stmt) int {
	switch v := s.(type) {
	case *ir.DeclStmt:
		if n, ok := tempIndex(v.Decl.Name); ok {
			return n
		}
	case *ir.IfStmt:
		a, b := maxTempBlock(v.Then), maxTempBlock(v.Else)
		if a > b {
			return a
		}
		return b
	case *ir.BlockStmt:
		return maxTempStmts(v.Stmts)
	}
	return -1
}

func tempIndex(name string) (int, bool) {
	if !strings.HasPrefix(name, tempPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(name[len(tempPrefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}
