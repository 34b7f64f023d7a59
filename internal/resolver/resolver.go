// Package resolver binds name references to declarations and assigns
// types to expressions. Bindings land in an explicit side table keyed
// by node identity; the tree itself is never reordered.
package resolver

import (
	"fmt"
	"strings"

	"github.com/packetc-lang/packetc/internal/diag"
	"github.com/packetc-lang/packetc/internal/ir"
	"github.com/packetc-lang/packetc/internal/position"
)

// PassName is the scheduler-visible name of this pass.
const PassName = "ResolveReferences"

// maxBitWidth bounds literal and declared bit-vector widths; the
// backing representation is uint64.
const maxBitWidth = 64

type resolver struct {
	b    *Bindings
	sink diag.Sink
	cur  *scope
}

// Resolve resolves and type-checks prog, repopulating b. It returns
// the first fatal diagnostic as an error, leaving warnings in the sink.
func Resolve(prog *ir.Program, b *Bindings, sink diag.Sink) error {
	b.Reset()
	r := &resolver{b: b, sink: sink, cur: newScope(nil)}
	return r.program(prog)
}

func (r *resolver) program(prog *ir.Program) error {
	// Declare all top-level names first so declarations may reference
	// each other regardless of order.
	for _, d := range prog.Decls {
		if err := r.declare(d); err != nil {
			return err
		}
	}
	for _, d := range prog.Decls {
		if err := r.decl(d); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) declare(d ir.Decl) error {
	name := d.DeclName()
	if prev, ok := r.cur.define(name, d); !ok {
		return diag.Fatalf(r.sink, diag.CodeAmbiguousReference, d.Pos(),
			"'%s' is already declared in this scope (previous declaration at %s)",
			name, declSite(prev.Pos()))
	}
	return nil
}

// declSite renders a previous declaration's location, falling back to
// <unknown> for synthetic nodes without source positions.
func declSite(sp position.Span) string {
	if !sp.IsValid() {
		return "<unknown>"
	}
	return sp.Start.String()
}

func (r *resolver) pushScope() { r.cur = newScope(r.cur) }
func (r *resolver) popScope()  { r.cur = r.cur.parent }

func (r *resolver) defineParams(ps []*ir.Param) error {
	for _, p := range ps {
		if err := r.declare(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) decl(d ir.Decl) error {
	switch v := d.(type) {
	case *ir.HeaderDecl, *ir.StructDecl, *ir.ExternDecl:
		return nil
	case *ir.ConstDecl:
		t, err := r.expr(v.Value)
		if err != nil {
			return err
		}
		if ir.HasSideEffects(v.Value) {
			return diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
				"initializer of constant '%s' must be compile-time constant", v.Name)
		}
		if !ir.Same(t, v.Type) {
			return r.typeMismatch(v.Value, v.Type, t)
		}
		return nil
	case *ir.VarDecl:
		if v.Init == nil {
			return nil
		}
		t, err := r.expr(v.Init)
		if err != nil {
			return err
		}
		if t == nil {
			return diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Init.Pos(),
				"initializer of '%s' produces no value", v.Name)
		}
		if !ir.Same(t, v.Type) {
			return r.typeMismatch(v.Init, v.Type, t)
		}
		return nil
	case *ir.ActionDecl:
		r.pushScope()
		defer r.popScope()
		if err := r.defineParams(v.Params); err != nil {
			return err
		}
		return r.block(v.Body)
	case *ir.TableDecl:
		return r.table(v)
	case *ir.ControlDecl:
		r.pushScope()
		defer r.popScope()
		if err := r.defineParams(v.Params); err != nil {
			return err
		}
		for _, l := range v.Locals {
			if err := r.declare(l); err != nil {
				return err
			}
		}
		for _, l := range v.Locals {
			if err := r.decl(l); err != nil {
				return err
			}
		}
		return r.block(v.Body)
	case *ir.ParserDecl:
		return r.parser(v)
	case *ir.PackageDecl:
		for _, arg := range v.Args {
			d, ok := r.cur.lookup(arg)
			if !ok {
				return diag.Fatalf(r.sink, diag.CodeUnresolvedReference, v.Pos(),
					"unresolved reference '%s'", arg)
			}
			switch d.(type) {
			case *ir.ControlDecl, *ir.ParserDecl:
			default:
				return diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
					"package argument '%s' is not a control or parser", arg)
			}
		}
		return nil
	default:
		return diag.Internalf(r.sink, PassName, ir.KindOf(d), d.Pos(),
			"unexpected declaration kind")
	}
}

func (r *resolver) parser(v *ir.ParserDecl) error {
	r.pushScope()
	defer r.popScope()
	if err := r.defineParams(v.Params); err != nil {
		return err
	}
	for _, l := range v.Locals {
		if err := r.declare(l); err != nil {
			return err
		}
	}
	for _, l := range v.Locals {
		if err := r.decl(l); err != nil {
			return err
		}
		// A parser state machine has no entry block to order initializer
		// effects into, so parser locals must initialize without calls or
		// applies.
		if vd, ok := l.(*ir.VarDecl); ok && vd.Init != nil && ir.HasSideEffects(vd.Init) {
			return diag.Fatalf(r.sink, diag.CodeTypeMismatch, vd.Init.Pos(),
				"initializer of parser local '%s' cannot contain method calls or table applies",
				vd.Name)
		}
	}
	states := make(map[string]*ir.ParserState, len(v.States))
	for _, st := range v.States {
		if prev, dup := states[st.Name]; dup {
			return diag.Fatalf(r.sink, diag.CodeAmbiguousReference, st.Pos(),
				"state '%s' is already declared (previous declaration at %s)",
				st.Name, declSite(prev.Pos()))
		}
		states[st.Name] = st
	}
	if _, ok := states["start"]; !ok {
		return diag.Fatalf(r.sink, diag.CodeUnresolvedReference, v.Pos(),
			"parser '%s' has no 'start' state", v.Name)
	}
	for _, st := range v.States {
		if err := r.stateBody(st); err != nil {
			return err
		}
		switch st.Transition {
		case "accept", "reject":
		default:
			if _, ok := states[st.Transition]; !ok {
				return diag.Fatalf(r.sink, diag.CodeUnresolvedReference, st.Pos(),
					"transition to undeclared state '%s'", st.Transition)
			}
		}
	}
	return nil
}

// stateBody resolves one parser state in its own scope. States are
// separate lexical scopes: a variable declared in one state is not
// visible in another, and same-named declarations in different states
// never collide.
func (r *resolver) stateBody(st *ir.ParserState) error {
	r.pushScope()
	defer r.popScope()
	for _, s := range st.Body {
		if err := r.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) block(b *ir.BlockStmt) error {
	if b == nil {
		return nil
	}
	r.pushScope()
	defer r.popScope()
	for _, s := range b.Stmts {
		if err := r.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) stmt(s ir.Stmt) error {
	switch v := s.(type) {
	case *ir.AssignStmt:
		lt, err := r.lvalue(v.LHS)
		if err != nil {
			return err
		}
		rt, err := r.expr(v.RHS)
		if err != nil {
			return err
		}
		if rt == nil {
			return diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.RHS.Pos(),
				"right-hand side produces no value")
		}
		if !ir.Same(lt, rt) {
			return r.typeMismatch(v.RHS, lt, rt)
		}
		return nil
	case *ir.IfStmt:
		ct, err := r.expr(v.Cond)
		if err != nil {
			return err
		}
		if !ir.Same(ct, ir.Bool) {
			return r.typeMismatch(v.Cond, ir.Bool, ct)
		}
		if err := r.block(v.Then); err != nil {
			return err
		}
		return r.block(v.Else)
	case *ir.BlockStmt:
		return r.block(v)
	case *ir.CallStmt:
		switch v.Call.(type) {
		case *ir.CallExpr, *ir.ApplyExpr:
			_, err := r.expr(v.Call)
			return err
		default:
			return diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
				"only calls and table applies may be used as statements")
		}
	case *ir.DeclStmt:
		if err := r.decl(v.Decl); err != nil {
			return err
		}
		return r.declare(v.Decl)
	case *ir.ExitStmt, *ir.ReturnStmt:
		return nil
	default:
		return diag.Internalf(r.sink, PassName, ir.KindOf(s), s.Pos(),
			"unexpected statement kind")
	}
}

// lvalue resolves e in assignment-target position.
func (r *resolver) lvalue(e ir.Expr) (ir.Type, error) {
	switch v := e.(type) {
	case *ir.Ref:
		d, ok := r.cur.lookup(v.Name)
		if !ok {
			return nil, diag.Fatalf(r.sink, diag.CodeUnresolvedReference, v.Pos(),
				"unresolved reference '%s'", v.Name)
		}
		r.b.Uses[v] = d
		switch dv := d.(type) {
		case *ir.VarDecl:
			r.b.Types[v] = dv.Type
			return dv.Type, nil
		case *ir.Param:
			if dv.Dir == ir.DirIn {
				return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
					"cannot assign to in parameter '%s'", v.Name)
			}
			r.b.Types[v] = dv.Type
			return dv.Type, nil
		case *ir.ConstDecl:
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
				"cannot assign to constant '%s'", v.Name)
		default:
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
				"'%s' is not assignable", v.Name)
		}
	case *ir.FieldExpr:
		xt, err := r.lvalue(v.X)
		if err != nil {
			return nil, err
		}
		ft, err := r.member(v, xt)
		if err != nil {
			return nil, err
		}
		r.b.Types[v] = ft
		return ft, nil
	default:
		return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, e.Pos(),
			"expression is not assignable")
	}
}

func (r *resolver) member(v *ir.FieldExpr, xt ir.Type) (ir.Type, error) {
	switch t := xt.(type) {
	case *ir.StructType:
		f, ok := t.Field(v.Name)
		if !ok {
			return nil, diag.Fatalf(r.sink, diag.CodeUnresolvedReference, v.Pos(),
				"no member '%s' in %s", v.Name, t)
		}
		return f.Type, nil
	case *ir.HeaderType:
		f, ok := t.Field(v.Name)
		if !ok {
			return nil, diag.Fatalf(r.sink, diag.CodeUnresolvedReference, v.Pos(),
				"no member '%s' in %s", v.Name, t)
		}
		return f.Type, nil
	default:
		return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
			"member access on non-composite type %s", typeName(xt))
	}
}

// expr resolves e in value position, computing its type bottom-up.
// Calls with no result return a nil type and no error; the caller
// decides whether a value was required.
func (r *resolver) expr(e ir.Expr) (ir.Type, error) {
	switch v := e.(type) {
	case *ir.IntLit:
		if v.Width < 1 || v.Width > maxBitWidth {
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
				"unsupported bit width %d", v.Width)
		}
		t := ir.Bits(v.Width)
		r.b.Types[v] = t
		return t, nil
	case *ir.BoolLit:
		r.b.Types[v] = ir.Bool
		return ir.Bool, nil
	case *ir.Ref:
		d, ok := r.cur.lookup(v.Name)
		if !ok {
			return nil, diag.Fatalf(r.sink, diag.CodeUnresolvedReference, v.Pos(),
				"unresolved reference '%s'", v.Name)
		}
		r.b.Uses[v] = d
		var t ir.Type
		switch dv := d.(type) {
		case *ir.VarDecl:
			t = dv.Type
		case *ir.ConstDecl:
			t = dv.Type
		case *ir.Param:
			t = dv.Type
		default:
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
				"'%s' is not a value", v.Name)
		}
		r.b.Types[v] = t
		return t, nil
	case *ir.FieldExpr:
		xt, err := r.expr(v.X)
		if err != nil {
			return nil, err
		}
		ft, err := r.member(v, xt)
		if err != nil {
			return nil, err
		}
		r.b.Types[v] = ft
		return ft, nil
	case *ir.UnaryExpr:
		xt, err := r.expr(v.X)
		if err != nil {
			return nil, err
		}
		var t ir.Type
		switch v.Op {
		case ir.OpNot:
			if !ir.Same(xt, ir.Bool) {
				return nil, r.typeMismatch(v.X, ir.Bool, xt)
			}
			t = ir.Bool
		default:
			if _, ok := xt.(*ir.BitsType); !ok {
				return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
					"operator '%s' requires a bit-vector operand, got %s", v.Op, typeName(xt))
			}
			t = xt
		}
		r.b.Types[v] = t
		return t, nil
	case *ir.BinaryExpr:
		return r.binary(v)
	case *ir.CallExpr:
		return r.call(v)
	case *ir.ApplyExpr:
		d, ok := r.cur.lookup(v.Table)
		if !ok {
			return nil, diag.Fatalf(r.sink, diag.CodeUnresolvedReference, v.Pos(),
				"unresolved reference '%s'", v.Table)
		}
		td, ok := d.(*ir.TableDecl)
		if !ok {
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
				"'%s' is not a table", v.Table)
		}
		r.b.Tables[v] = td
		r.b.Types[v] = ir.Bool
		return ir.Bool, nil
	case *ir.CondExpr:
		ct, err := r.expr(v.Cond)
		if err != nil {
			return nil, err
		}
		if !ir.Same(ct, ir.Bool) {
			return nil, r.typeMismatch(v.Cond, ir.Bool, ct)
		}
		tt, err := r.expr(v.Then)
		if err != nil {
			return nil, err
		}
		et, err := r.expr(v.Else)
		if err != nil {
			return nil, err
		}
		if tt == nil || et == nil || !ir.Same(tt, et) {
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
				"conditional branches have mismatched types: %s vs %s",
				typeName(tt), typeName(et))
		}
		r.b.Types[v] = tt
		return tt, nil
	default:
		return nil, diag.Internalf(r.sink, PassName, ir.KindOf(e), e.Pos(),
			"unexpected expression kind")
	}
}

func (r *resolver) binary(v *ir.BinaryExpr) (ir.Type, error) {
	lt, err := r.expr(v.L)
	if err != nil {
		return nil, err
	}
	rt, err := r.expr(v.R)
	if err != nil {
		return nil, err
	}
	var t ir.Type
	switch {
	case v.Op.IsLogical():
		if !ir.Same(lt, ir.Bool) {
			return nil, r.typeMismatch(v.L, ir.Bool, lt)
		}
		if !ir.Same(rt, ir.Bool) {
			return nil, r.typeMismatch(v.R, ir.Bool, rt)
		}
		t = ir.Bool
	case v.Op.IsComparison():
		if !scalar(lt) || !scalar(rt) || !ir.Same(lt, rt) {
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
				"cannot compare %s with %s", typeName(lt), typeName(rt))
		}
		t = ir.Bool
	case v.Op.IsShift():
		if _, ok := lt.(*ir.BitsType); !ok {
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.L.Pos(),
				"operator '%s' requires a bit-vector operand, got %s", v.Op, typeName(lt))
		}
		if _, ok := rt.(*ir.BitsType); !ok {
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.R.Pos(),
				"shift amount must be a bit vector, got %s", typeName(rt))
		}
		t = lt
	default:
		lb, lok := lt.(*ir.BitsType)
		rb, rok := rt.(*ir.BitsType)
		if !lok || !rok {
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
				"operator '%s' requires bit-vector operands, got %s and %s",
				v.Op, typeName(lt), typeName(rt))
		}
		if lb.Width != rb.Width {
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
				"type mismatch in '%s': expected %s, got %s", v.Op, lb, rb)
		}
		t = lt
	}
	r.b.Types[v] = t
	return t, nil
}

func (r *resolver) call(v *ir.CallExpr) (ir.Type, error) {
	switch callee := v.Callee.(type) {
	case *ir.Ref:
		d, ok := r.cur.lookup(callee.Name)
		if !ok {
			return nil, diag.Fatalf(r.sink, diag.CodeUnresolvedReference, callee.Pos(),
				"unresolved reference '%s'", callee.Name)
		}
		r.b.Uses[callee] = d
		ad, ok := d.(*ir.ActionDecl)
		if !ok {
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, callee.Pos(),
				"'%s' is not callable", callee.Name)
		}
		if len(v.Args) != len(ad.Params) {
			return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
				"action '%s' expects %d arguments, got %d",
				ad.Name, len(ad.Params), len(v.Args))
		}
		for i, arg := range v.Args {
			p := ad.Params[i]
			var at ir.Type
			var err error
			if p.Dir == ir.DirIn {
				at, err = r.expr(arg)
			} else {
				at, err = r.lvalue(arg)
			}
			if err != nil {
				return nil, err
			}
			if !ir.Same(at, p.Type) {
				return nil, r.typeMismatch(arg, p.Type, at)
			}
		}
		// Actions produce no value.
		return nil, nil
	case *ir.FieldExpr:
		return r.methodCall(v, callee)
	default:
		return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
			"unsupported call target")
	}
}

func (r *resolver) methodCall(v *ir.CallExpr, callee *ir.FieldExpr) (ir.Type, error) {
	// Extern instance methods: the receiver names an extern declaration.
	if base, ok := callee.X.(*ir.Ref); ok {
		if d, found := r.cur.lookup(base.Name); found {
			if ext, isExt := d.(*ir.ExternDecl); isExt {
				r.b.Uses[base] = ext
				m, ok := ext.Type.Method(callee.Name)
				if !ok {
					return nil, diag.Fatalf(r.sink, diag.CodeUnresolvedReference, callee.Pos(),
						"no method '%s' in %s", callee.Name, ext.Type)
				}
				for _, arg := range v.Args {
					if _, err := r.expr(arg); err != nil {
						return nil, err
					}
				}
				if m.Result != nil {
					r.b.Types[v] = m.Result
				}
				return m.Result, nil
			}
		}
	}
	// Header validity methods.
	xt, err := r.expr(callee.X)
	if err != nil {
		return nil, err
	}
	ht, ok := xt.(*ir.HeaderType)
	if !ok {
		return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, callee.Pos(),
			"no methods on type %s", typeName(xt))
	}
	if len(v.Args) != 0 {
		return nil, diag.Fatalf(r.sink, diag.CodeTypeMismatch, v.Pos(),
			"method '%s' takes no arguments", callee.Name)
	}
	switch callee.Name {
	case "isValid":
		r.b.Types[v] = ir.Bool
		return ir.Bool, nil
	case "setValid", "setInvalid":
		return nil, nil
	default:
		return nil, diag.Fatalf(r.sink, diag.CodeUnresolvedReference, callee.Pos(),
			"no method '%s' in %s", callee.Name, ht)
	}
}

func (r *resolver) table(v *ir.TableDecl) error {
	selector := false
	for _, k := range v.Keys {
		if k.Expr == nil {
			return diag.Fatalf(r.sink, diag.CodeTableConsistency, v.Pos(),
				"table '%s' has a %s match kind with no key field", v.Name, k.Match)
		}
		if ir.HasSideEffects(k.Expr) {
			return diag.Fatalf(r.sink, diag.CodeTableConsistency, k.Expr.Pos(),
				"table key of '%s' cannot have side effects", v.Name)
		}
		kt, err := r.expr(k.Expr)
		if err != nil {
			return err
		}
		if !scalar(kt) {
			return diag.Fatalf(r.sink, diag.CodeTypeMismatch, k.Expr.Pos(),
				"table key must be a scalar, got %s", typeName(kt))
		}
		if k.Match == ir.MatchSelector {
			selector = true
		}
	}
	if selector && v.Implementation == "" {
		return diag.Fatalf(r.sink, diag.CodeTableConsistency, v.Pos(),
			"table '%s' has selector keys but no implementation binding", v.Name)
	}
	if v.Implementation != "" {
		d, ok := r.cur.lookup(v.Implementation)
		if !ok {
			return diag.Fatalf(r.sink, diag.CodeUnresolvedReference, v.Pos(),
				"unresolved reference '%s'", v.Implementation)
		}
		if _, ok := d.(*ir.ExternDecl); !ok {
			return diag.Fatalf(r.sink, diag.CodeTableConsistency, v.Pos(),
				"implementation '%s' of table '%s' is not an extern instance",
				v.Implementation, v.Name)
		}
	}
	listed := make(map[string]string, len(v.Actions))
	for _, ref := range v.Actions {
		ad, sig, err := r.actionRef(v, ref)
		if err != nil {
			return err
		}
		if prev, dup := listed[ad.Name]; dup && prev != sig {
			return diag.Fatalf(r.sink, diag.CodeTableConsistency, ref.Pos(),
				"conflicting argument bindings for action '%s' in table '%s'",
				ad.Name, v.Name)
		}
		listed[ad.Name] = sig
	}
	if v.Default != nil {
		if _, ok := listed[v.Default.Name]; !ok {
			return diag.Fatalf(r.sink, diag.CodeTableConsistency, v.Default.Pos(),
				"default action '%s' does not appear in the action list of table '%s'",
				v.Default.Name, v.Name)
		}
		if _, _, err := r.actionRef(v, v.Default); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) actionRef(t *ir.TableDecl, ref *ir.ActionRef) (*ir.ActionDecl, string, error) {
	d, ok := r.cur.lookup(ref.Name)
	if !ok {
		return nil, "", diag.Fatalf(r.sink, diag.CodeUnresolvedReference, ref.Pos(),
			"unresolved reference '%s'", ref.Name)
	}
	ad, ok := d.(*ir.ActionDecl)
	if !ok {
		return nil, "", diag.Fatalf(r.sink, diag.CodeTypeMismatch, ref.Pos(),
			"'%s' in table '%s' is not an action", ref.Name, t.Name)
	}
	r.b.Actions[ref] = ad
	if len(ref.Args) > len(ad.Params) {
		return nil, "", diag.Fatalf(r.sink, diag.CodeTypeMismatch, ref.Pos(),
			"action '%s' expects at most %d bound arguments, got %d",
			ad.Name, len(ad.Params), len(ref.Args))
	}
	parts := make([]string, 0, len(ref.Args))
	for i, arg := range ref.Args {
		at, err := r.expr(arg)
		if err != nil {
			return nil, "", err
		}
		if !ir.Same(at, ad.Params[i].Type) {
			return nil, "", r.typeMismatch(arg, ad.Params[i].Type, at)
		}
		parts = append(parts, ir.ExprString(arg))
	}
	return ad, strings.Join(parts, ","), nil
}

func (r *resolver) typeMismatch(e ir.Expr, expected, actual ir.Type) error {
	return diag.Fatalf(r.sink, diag.CodeTypeMismatch, e.Pos(),
		"type mismatch in '%s': expected %s, got %s",
		ir.ExprString(e), typeName(expected), typeName(actual))
}

func scalar(t ir.Type) bool {
	switch t.(type) {
	case *ir.BitsType, *ir.BoolType:
		return true
	default:
		return false
	}
}

func typeName(t ir.Type) string {
	if t == nil {
		return "<no value>"
	}
	return fmt.Sprint(t)
}
