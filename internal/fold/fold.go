// Package fold evaluates compile-time-constant subexpressions and
// replaces them with literal nodes of the same type, preserving the
// wraparound semantics of fixed-width arithmetic.
package fold

import (
	"github.com/packetc-lang/packetc/internal/diag"
	"github.com/packetc-lang/packetc/internal/ir"
	"github.com/packetc-lang/packetc/internal/resolver"
)

// PassName is the scheduler-visible name of this pass.
const PassName = "ConstantFolding"

type folder struct {
	b       *resolver.Bindings
	changed bool
}

// Fold rewrites prog in place, folding every expression whose full
// subtree is compile-time constant. Expressions containing a method
// call or table apply are never folded. A second run over folded
// output is a no-op.
func Fold(prog *ir.Program, b *resolver.Bindings, sink diag.Sink) (bool, error) {
	f := &folder{b: b}
	for _, d := range prog.Decls {
		f.decl(d)
	}
	return f.changed, nil
}

func (f *folder) decl(d ir.Decl) {
	switch v := d.(type) {
	case *ir.ConstDecl:
		v.Value = f.expr(v.Value)
	case *ir.VarDecl:
		if v.Init != nil {
			v.Init = f.expr(v.Init)
		}
	case *ir.ActionDecl:
		f.block(v.Body)
	case *ir.TableDecl:
		for i := range v.Keys {
			v.Keys[i].Expr = f.expr(v.Keys[i].Expr)
		}
		for _, a := range v.Actions {
			f.exprs(a.Args)
		}
		if v.Default != nil {
			f.exprs(v.Default.Args)
		}
	case *ir.ControlDecl:
		for _, l := range v.Locals {
			f.decl(l)
		}
		f.block(v.Body)
	case *ir.ParserDecl:
		for _, l := range v.Locals {
			f.decl(l)
		}
		for _, st := range v.States {
			for _, s := range st.Body {
				f.stmt(s)
			}
		}
	}
}

func (f *folder) block(b *ir.BlockStmt) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		f.stmt(s)
	}
}

func (f *folder) stmt(s ir.Stmt) {
	switch v := s.(type) {
	case *ir.AssignStmt:
		v.RHS = f.expr(v.RHS)
	case *ir.IfStmt:
		v.Cond = f.expr(v.Cond)
		f.block(v.Then)
		f.block(v.Else)
	case *ir.BlockStmt:
		f.block(v)
	case *ir.CallStmt:
		v.Call = f.expr(v.Call)
	case *ir.DeclStmt:
		if v.Decl.Init != nil {
			v.Decl.Init = f.expr(v.Decl.Init)
		}
	}
}

func (f *folder) exprs(es []ir.Expr) {
	for i := range es {
		es[i] = f.expr(es[i])
	}
}

func (f *folder) expr(e ir.Expr) ir.Expr {
	switch v := e.(type) {
	case *ir.IntLit, *ir.BoolLit, *ir.ApplyExpr:
		return e
	case *ir.Ref:
		// Substitute references to constants whose value is already a
		// literal; a not-yet-folded constant is picked up next round.
		if cd, ok := f.b.DeclOf(v).(*ir.ConstDecl); ok {
			switch lit := cd.Value.(type) {
			case *ir.IntLit:
				f.changed = true
				return &ir.IntLit{Span: v.Span, Val: lit.Val, Width: lit.Width}
			case *ir.BoolLit:
				f.changed = true
				return &ir.BoolLit{Span: v.Span, Val: lit.Val}
			}
		}
		return e
	case *ir.FieldExpr:
		v.X = f.expr(v.X)
		return v
	case *ir.UnaryExpr:
		return f.unary(v)
	case *ir.BinaryExpr:
		return f.binary(v)
	case *ir.CallExpr:
		// Calls are side-effecting: fold the arguments, never the call.
		f.exprs(v.Args)
		return v
	case *ir.CondExpr:
		v.Cond = f.expr(v.Cond)
		v.Then = f.expr(v.Then)
		v.Else = f.expr(v.Else)
		if c, ok := v.Cond.(*ir.BoolLit); ok {
			f.changed = true
			if c.Val {
				return v.Then
			}
			return v.Else
		}
		return v
	default:
		return e
	}
}

func (f *folder) unary(v *ir.UnaryExpr) ir.Expr {
	v.X = f.expr(v.X)
	switch x := v.X.(type) {
	case *ir.BoolLit:
		if v.Op == ir.OpNot {
			f.changed = true
			return &ir.BoolLit{Span: v.Span, Val: !x.Val}
		}
	case *ir.IntLit:
		switch v.Op {
		case ir.OpNeg:
			f.changed = true
			return &ir.IntLit{Span: v.Span, Val: ir.Truncate(-x.Val, x.Width), Width: x.Width}
		case ir.OpBitNot:
			f.changed = true
			return &ir.IntLit{Span: v.Span, Val: ir.Truncate(^x.Val, x.Width), Width: x.Width}
		}
	}
	return v
}

func (f *folder) binary(v *ir.BinaryExpr) ir.Expr {
	v.L = f.expr(v.L)
	v.R = f.expr(v.R)

	if v.Op.IsLogical() {
		return f.logical(v)
	}

	if lb, ok := v.L.(*ir.BoolLit); ok {
		if rb, ok := v.R.(*ir.BoolLit); ok && v.Op.IsComparison() {
			switch v.Op {
			case ir.OpEq:
				f.changed = true
				return &ir.BoolLit{Span: v.Span, Val: lb.Val == rb.Val}
			case ir.OpNe:
				f.changed = true
				return &ir.BoolLit{Span: v.Span, Val: lb.Val != rb.Val}
			}
		}
		return v
	}

	li, lok := v.L.(*ir.IntLit)
	ri, rok := v.R.(*ir.IntLit)
	if !lok || !rok {
		return v
	}

	if v.Op.IsComparison() {
		var res bool
		switch v.Op {
		case ir.OpEq:
			res = li.Val == ri.Val
		case ir.OpNe:
			res = li.Val != ri.Val
		case ir.OpLt:
			res = li.Val < ri.Val
		case ir.OpLe:
			res = li.Val <= ri.Val
		case ir.OpGt:
			res = li.Val > ri.Val
		case ir.OpGe:
			res = li.Val >= ri.Val
		}
		f.changed = true
		return &ir.BoolLit{Span: v.Span, Val: res}
	}

	w := li.Width
	var res uint64
	switch v.Op {
	case ir.OpAdd:
		res = li.Val + ri.Val
	case ir.OpSub:
		res = li.Val - ri.Val
	case ir.OpMul:
		res = li.Val * ri.Val
	case ir.OpBitAnd:
		res = li.Val & ri.Val
	case ir.OpBitOr:
		res = li.Val | ri.Val
	case ir.OpBitXor:
		res = li.Val ^ ri.Val
	case ir.OpShl:
		// Shifting by the full width or more drains the vector.
		if ri.Val >= uint64(w) {
			res = 0
		} else {
			res = li.Val << ri.Val
		}
	case ir.OpShr:
		if ri.Val >= uint64(w) {
			res = 0
		} else {
			res = li.Val >> ri.Val
		}
	default:
		return v
	}
	f.changed = true
	return &ir.IntLit{Span: v.Span, Val: ir.Truncate(res, w), Width: w}
}

// logical folds && and ||, dropping an unevaluated operand only when
// that cannot erase a side effect.
func (f *folder) logical(v *ir.BinaryExpr) ir.Expr {
	lb, lok := v.L.(*ir.BoolLit)
	rb, rok := v.R.(*ir.BoolLit)
	switch {
	case lok && rok:
		f.changed = true
		if v.Op == ir.OpLAnd {
			return &ir.BoolLit{Span: v.Span, Val: lb.Val && rb.Val}
		}
		return &ir.BoolLit{Span: v.Span, Val: lb.Val || rb.Val}
	case lok:
		if v.Op == ir.OpLAnd {
			if lb.Val {
				f.changed = true
				return v.R
			}
			if !ir.HasSideEffects(v.R) {
				f.changed = true
				return &ir.BoolLit{Span: v.Span, Val: false}
			}
		} else {
			if !lb.Val {
				f.changed = true
				return v.R
			}
			if !ir.HasSideEffects(v.R) {
				f.changed = true
				return &ir.BoolLit{Span: v.Span, Val: true}
			}
		}
	}
	return v
}
