package defuse

import (
	"errors"
	"testing"

	"github.com/packetc-lang/packetc/internal/diag"
	"github.com/packetc-lang/packetc/internal/ir"
	"github.com/packetc-lang/packetc/internal/resolver"
)

func check(t *testing.T, prog *ir.Program) error {
	t.Helper()
	b := resolver.NewBindings()
	if err := resolver.Resolve(prog, b, diag.NewBag()); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return Check(prog, b, diag.NewBag())
}

func wantDefUse(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a definite-assignment error, got nil")
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *diag.Error, got %T: %v", err, err)
	}
	if de.Diagnostic.Code != diag.CodeDefiniteAssignment {
		t.Fatalf("code = %s, want %s", de.Diagnostic.Code, diag.CodeDefiniteAssignment)
	}
}

func ctrl(locals []ir.Decl, stmts ...ir.Stmt) *ir.Program {
	return &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ControlDecl{
			Name:   "ingress",
			Locals: locals,
			Body:   &ir.BlockStmt{Stmts: stmts},
		},
	}}
}

func TestReadBeforeAssignment(t *testing.T) {
	prog := ctrl(
		[]ir.Decl{
			&ir.VarDecl{Name: "x", Type: ir.Bits(8)},
			&ir.VarDecl{Name: "y", Type: ir.Bits(8)},
		},
		&ir.AssignStmt{LHS: &ir.Ref{Name: "y"}, RHS: &ir.Ref{Name: "x"}},
	)
	wantDefUse(t, check(t, prog))
}

func TestAssignmentOnBothBranchesReaches(t *testing.T) {
	prog := ctrl(
		[]ir.Decl{
			&ir.VarDecl{Name: "flag", Type: ir.Bool, Init: &ir.BoolLit{Val: true}},
			&ir.VarDecl{Name: "x", Type: ir.Bits(8)},
			&ir.VarDecl{Name: "y", Type: ir.Bits(8)},
		},
		&ir.IfStmt{
			Cond: &ir.Ref{Name: "flag"},
			Then: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.AssignStmt{LHS: &ir.Ref{Name: "x"}, RHS: &ir.IntLit{Val: 1, Width: 8}},
			}},
			Else: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.AssignStmt{LHS: &ir.Ref{Name: "x"}, RHS: &ir.IntLit{Val: 2, Width: 8}},
			}},
		},
		&ir.AssignStmt{LHS: &ir.Ref{Name: "y"}, RHS: &ir.Ref{Name: "x"}},
	)
	if err := check(t, prog); err != nil {
		t.Fatalf("both branches assign, want no error: %v", err)
	}
}

func TestAssignmentOnOneBranchDoesNotReach(t *testing.T) {
	prog := ctrl(
		[]ir.Decl{
			&ir.VarDecl{Name: "flag", Type: ir.Bool, Init: &ir.BoolLit{Val: true}},
			&ir.VarDecl{Name: "x", Type: ir.Bits(8)},
			&ir.VarDecl{Name: "y", Type: ir.Bits(8)},
		},
		&ir.IfStmt{
			Cond: &ir.Ref{Name: "flag"},
			Then: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.AssignStmt{LHS: &ir.Ref{Name: "x"}, RHS: &ir.IntLit{Val: 1, Width: 8}},
			}},
		},
		&ir.AssignStmt{LHS: &ir.Ref{Name: "y"}, RHS: &ir.Ref{Name: "x"}},
	)
	wantDefUse(t, check(t, prog))
}

func TestExitBeforeOutParamAssignment(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ControlDecl{
			Name: "ingress",
			Params: []*ir.Param{
				{Name: "ok", Dir: ir.DirIn, Type: ir.Bool},
				{Name: "port", Dir: ir.DirOut, Type: ir.Bits(9)},
			},
			Body: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.IfStmt{
					Cond: &ir.Ref{Name: "ok"},
					Then: &ir.BlockStmt{Stmts: []ir.Stmt{&ir.ExitStmt{}}},
				},
				&ir.AssignStmt{LHS: &ir.Ref{Name: "port"}, RHS: &ir.IntLit{Val: 1, Width: 9}},
			}},
		},
	}}
	wantDefUse(t, check(t, prog))
}

func TestOutParamAssignedBeforeEveryExit(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ControlDecl{
			Name: "ingress",
			Params: []*ir.Param{
				{Name: "ok", Dir: ir.DirIn, Type: ir.Bool},
				{Name: "port", Dir: ir.DirOut, Type: ir.Bits(9)},
			},
			Body: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.AssignStmt{LHS: &ir.Ref{Name: "port"}, RHS: &ir.IntLit{Val: 0, Width: 9}},
				&ir.IfStmt{
					Cond: &ir.Ref{Name: "ok"},
					Then: &ir.BlockStmt{Stmts: []ir.Stmt{&ir.ExitStmt{}}},
				},
				&ir.AssignStmt{LHS: &ir.Ref{Name: "port"}, RHS: &ir.IntLit{Val: 1, Width: 9}},
			}},
		},
	}}
	if err := check(t, prog); err != nil {
		t.Fatalf("out param assigned before exit, want no error: %v", err)
	}
}

func TestStatementsAfterReturnNotChecked(t *testing.T) {
	// Unreachable code satisfies every check; the simplifier deletes it
	// separately.
	prog := ctrl(
		[]ir.Decl{
			&ir.VarDecl{Name: "x", Type: ir.Bits(8)},
			&ir.VarDecl{Name: "y", Type: ir.Bits(8)},
		},
		&ir.ReturnStmt{},
		&ir.AssignStmt{LHS: &ir.Ref{Name: "y"}, RHS: &ir.Ref{Name: "x"}},
	)
	if err := check(t, prog); err != nil {
		t.Fatalf("unreachable read reported: %v", err)
	}
}

func TestOutArgumentCountsAsAssignment(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ActionDecl{
			Name:   "pick",
			Params: []*ir.Param{{Name: "dst", Dir: ir.DirOut, Type: ir.Bits(9)}},
			Body: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.AssignStmt{LHS: &ir.Ref{Name: "dst"}, RHS: &ir.IntLit{Val: 3, Width: 9}},
			}},
		},
		&ir.ControlDecl{
			Name: "ingress",
			Locals: []ir.Decl{
				&ir.VarDecl{Name: "p", Type: ir.Bits(9)},
				&ir.VarDecl{Name: "q", Type: ir.Bits(9)},
			},
			Body: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.CallStmt{Call: &ir.CallExpr{
					Callee: &ir.Ref{Name: "pick"},
					Args:   []ir.Expr{&ir.Ref{Name: "p"}},
				}},
				&ir.AssignStmt{LHS: &ir.Ref{Name: "q"}, RHS: &ir.Ref{Name: "p"}},
			}},
		},
	}}
	if err := check(t, prog); err != nil {
		t.Fatalf("out argument should define p: %v", err)
	}
}

func TestInOutArgumentRequiresAssignment(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ActionDecl{
			Name:   "bump",
			Params: []*ir.Param{{Name: "v", Dir: ir.DirInOut, Type: ir.Bits(8)}},
			Body: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.AssignStmt{
					LHS: &ir.Ref{Name: "v"},
					RHS: &ir.BinaryExpr{Op: ir.OpAdd, L: &ir.Ref{Name: "v"}, R: &ir.IntLit{Val: 1, Width: 8}},
				},
			}},
		},
		&ir.ControlDecl{
			Name:   "ingress",
			Locals: []ir.Decl{&ir.VarDecl{Name: "p", Type: ir.Bits(8)}},
			Body: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.CallStmt{Call: &ir.CallExpr{
					Callee: &ir.Ref{Name: "bump"},
					Args:   []ir.Expr{&ir.Ref{Name: "p"}},
				}},
			}},
		},
	}}
	wantDefUse(t, check(t, prog))
}
