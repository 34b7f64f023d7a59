package resolver

import (
	"errors"
	"strings"
	"testing"

	"github.com/packetc-lang/packetc/internal/diag"
	"github.com/packetc-lang/packetc/internal/ir"
)

func codeOf(t *testing.T, err error) diag.Code {
	t.Helper()
	if err == nil {
		t.Fatal("expected a fatal diagnostic, got nil")
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *diag.Error, got %T: %v", err, err)
	}
	return de.Diagnostic.Code
}

func resolve(t *testing.T, prog *ir.Program) (*Bindings, error) {
	t.Helper()
	b := NewBindings()
	return b, Resolve(prog, b, diag.NewBag())
}

func metaType() *ir.StructType {
	return &ir.StructType{Name: "meta_t", Fields: []ir.Field{
		{Name: "port", Type: ir.Bits(9)},
		{Name: "hash", Type: ir.Bits(16)},
		{Name: "hash2", Type: ir.Bits(16)},
	}}
}

func fwdAction() *ir.ActionDecl {
	return &ir.ActionDecl{
		Name:   "fwd",
		Params: []*ir.Param{{Name: "port", Dir: ir.DirIn, Type: ir.Bits(9)}},
		Body:   &ir.BlockStmt{},
	}
}

func dropAction() *ir.ActionDecl {
	return &ir.ActionDecl{Name: "drop", Body: &ir.BlockStmt{}}
}

func TestResolveSelectorTable(t *testing.T) {
	table := &ir.TableDecl{
		Name: "nexthop",
		Keys: []ir.TableKey{
			{Expr: &ir.FieldExpr{X: &ir.Ref{Name: "meta"}, Name: "port"}, Match: ir.MatchExact},
			{Expr: &ir.FieldExpr{X: &ir.Ref{Name: "meta"}, Name: "hash"}, Match: ir.MatchSelector},
			{Expr: &ir.FieldExpr{X: &ir.Ref{Name: "meta"}, Name: "hash2"}, Match: ir.MatchSelector},
		},
		Actions: []*ir.ActionRef{
			{Name: "fwd", Args: []ir.Expr{&ir.IntLit{Val: 1, Width: 9}}},
			{Name: "drop"},
		},
		Default:        &ir.ActionRef{Name: "drop"},
		Implementation: "sel",
	}
	apply := &ir.ApplyExpr{Table: "nexthop"}
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ExternDecl{Name: "sel", Type: &ir.ExternType{Name: "action_selector"}},
		fwdAction(),
		dropAction(),
		&ir.ControlDecl{
			Name:   "ingress",
			Params: []*ir.Param{{Name: "meta", Dir: ir.DirInOut, Type: metaType()}},
			Locals: []ir.Decl{table},
			Body:   &ir.BlockStmt{Stmts: []ir.Stmt{&ir.CallStmt{Call: apply}}},
		},
	}}

	b, err := resolve(t, prog)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := b.Tables[apply]; got != table {
		t.Fatalf("apply bound to %v, want the declared table", got)
	}
	// Key order is semantic: selector members feed the hashing extern in
	// declaration order.
	want := []ir.MatchKind{ir.MatchExact, ir.MatchSelector, ir.MatchSelector}
	for i, k := range table.Keys {
		if k.Match != want[i] {
			t.Errorf("key %d match = %v, want %v", i, k.Match, want[i])
		}
	}
	for _, ref := range table.Actions {
		if b.Actions[ref] == nil {
			t.Errorf("action ref %q not bound", ref.Name)
		}
	}
	if ty := b.TypeOf(apply); !ir.Same(ty, ir.Bool) {
		t.Errorf("apply type = %v, want bool", ty)
	}
}

func TestSelectorKeyRequiresImplementation(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		dropAction(),
		&ir.ControlDecl{
			Name:   "ingress",
			Params: []*ir.Param{{Name: "meta", Dir: ir.DirInOut, Type: metaType()}},
			Locals: []ir.Decl{&ir.TableDecl{
				Name:    "t",
				Keys:    []ir.TableKey{{Expr: &ir.FieldExpr{X: &ir.Ref{Name: "meta"}, Name: "hash"}, Match: ir.MatchSelector}},
				Actions: []*ir.ActionRef{{Name: "drop"}},
			}},
			Body: &ir.BlockStmt{},
		},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeTableConsistency {
		t.Errorf("code = %s, want %s", got, diag.CodeTableConsistency)
	}
}

func TestDefaultActionMustBeListed(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		fwdAction(),
		dropAction(),
		&ir.ControlDecl{
			Name: "ingress",
			Locals: []ir.Decl{&ir.TableDecl{
				Name:    "t",
				Actions: []*ir.ActionRef{{Name: "fwd", Args: []ir.Expr{&ir.IntLit{Val: 2, Width: 9}}}},
				Default: &ir.ActionRef{Name: "drop"},
			}},
			Body: &ir.BlockStmt{},
		},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeTableConsistency {
		t.Errorf("code = %s, want %s", got, diag.CodeTableConsistency)
	}
}

func TestConflictingActionBindings(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		fwdAction(),
		&ir.ControlDecl{
			Name: "ingress",
			Locals: []ir.Decl{&ir.TableDecl{
				Name: "t",
				Actions: []*ir.ActionRef{
					{Name: "fwd", Args: []ir.Expr{&ir.IntLit{Val: 1, Width: 9}}},
					{Name: "fwd", Args: []ir.Expr{&ir.IntLit{Val: 2, Width: 9}}},
				},
			}},
			Body: &ir.BlockStmt{},
		},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeTableConsistency {
		t.Errorf("code = %s, want %s", got, diag.CodeTableConsistency)
	}
}

func TestSideEffectingTableKeyRejected(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		dropAction(),
		&ir.ControlDecl{
			Name:   "ingress",
			Params: []*ir.Param{{Name: "meta", Dir: ir.DirInOut, Type: metaType()}},
			Locals: []ir.Decl{
				&ir.TableDecl{
					Name:    "inner",
					Actions: []*ir.ActionRef{{Name: "drop"}},
				},
				&ir.TableDecl{
					Name:    "outer",
					Keys:    []ir.TableKey{{Expr: &ir.ApplyExpr{Table: "inner"}, Match: ir.MatchExact}},
					Actions: []*ir.ActionRef{{Name: "drop"}},
				},
			},
			Body: &ir.BlockStmt{},
		},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeTableConsistency {
		t.Errorf("code = %s, want %s", got, diag.CodeTableConsistency)
	}
}

func TestUnresolvedReference(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ControlDecl{
			Name: "ingress",
			Body: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.AssignStmt{LHS: &ir.Ref{Name: "ghost"}, RHS: &ir.IntLit{Val: 1, Width: 8}},
			}},
		},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeUnresolvedReference {
		t.Errorf("code = %s, want %s", got, diag.CodeUnresolvedReference)
	}
}

func TestDuplicateTopLevelDeclaration(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		dropAction(),
		&ir.ConstDecl{Name: "drop", Type: ir.Bits(8), Value: &ir.IntLit{Val: 0, Width: 8}},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeAmbiguousReference {
		t.Errorf("code = %s, want %s", got, diag.CodeAmbiguousReference)
	}
}

func TestInnerBlockShadowsOuter(t *testing.T) {
	outer := &ir.VarDecl{Name: "x", Type: ir.Bits(8), Init: &ir.IntLit{Val: 1, Width: 8}}
	inner := &ir.VarDecl{Name: "x", Type: ir.Bits(8), Init: &ir.IntLit{Val: 2, Width: 8}}
	use := &ir.Ref{Name: "x"}
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ControlDecl{
			Name:   "ingress",
			Locals: []ir.Decl{outer},
			Body: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.BlockStmt{Stmts: []ir.Stmt{
					&ir.DeclStmt{Decl: inner},
					&ir.AssignStmt{LHS: use, RHS: &ir.IntLit{Val: 3, Width: 8}},
				}},
			}},
		},
	}}
	b, err := resolve(t, prog)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := b.DeclOf(use); got != ir.Decl(inner) {
		t.Errorf("x bound to %v, want the inner declaration", got)
	}
}

func TestAssignBoolToBitsRejected(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ControlDecl{
			Name:   "ingress",
			Locals: []ir.Decl{&ir.VarDecl{Name: "x", Type: ir.Bits(8)}},
			Body: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.AssignStmt{LHS: &ir.Ref{Name: "x"}, RHS: &ir.BoolLit{Val: true}},
			}},
		},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeTypeMismatch {
		t.Errorf("code = %s, want %s", got, diag.CodeTypeMismatch)
	}
}

func TestAssignToInParamRejected(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ActionDecl{
			Name:   "a",
			Params: []*ir.Param{{Name: "p", Dir: ir.DirIn, Type: ir.Bits(8)}},
			Body: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.AssignStmt{LHS: &ir.Ref{Name: "p"}, RHS: &ir.IntLit{Val: 1, Width: 8}},
			}},
		},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeTypeMismatch {
		t.Errorf("code = %s, want %s", got, diag.CodeTypeMismatch)
	}
}

func TestLiteralWidthBounds(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ConstDecl{Name: "c", Type: ir.Bits(65), Value: &ir.IntLit{Val: 0, Width: 65}},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeTypeMismatch {
		t.Errorf("code = %s, want %s", got, diag.CodeTypeMismatch)
	}
}

func TestParserRequiresStartState(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ParserDecl{
			Name:   "p",
			States: []*ir.ParserState{{Name: "parse_eth", Transition: "accept"}},
		},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeUnresolvedReference {
		t.Errorf("code = %s, want %s", got, diag.CodeUnresolvedReference)
	}
}

func TestParserTransitionTargets(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ParserDecl{
			Name: "p",
			States: []*ir.ParserState{
				{Name: "start", Transition: "parse_eth"},
				{Name: "parse_eth", Transition: "nowhere"},
			},
		},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeUnresolvedReference {
		t.Errorf("code = %s, want %s", got, diag.CodeUnresolvedReference)
	}
}

func TestParserStatesAreSeparateScopes(t *testing.T) {
	first := &ir.VarDecl{Name: "len", Type: ir.Bits(8), Init: &ir.IntLit{Val: 1, Width: 8}}
	second := &ir.VarDecl{Name: "len", Type: ir.Bits(8), Init: &ir.IntLit{Val: 2, Width: 8}}
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ParserDecl{
			Name: "p",
			States: []*ir.ParserState{
				{Name: "start", Body: []ir.Stmt{&ir.DeclStmt{Decl: first}}, Transition: "parse_eth"},
				{Name: "parse_eth", Body: []ir.Stmt{&ir.DeclStmt{Decl: second}}, Transition: "accept"},
			},
		},
	}}
	if _, err := resolve(t, prog); err != nil {
		t.Fatalf("same-named locals in different states should not collide: %v", err)
	}
}

func TestStateLocalNotVisibleInOtherState(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ParserDecl{
			Name:   "p",
			Locals: []ir.Decl{&ir.VarDecl{Name: "x", Type: ir.Bits(8)}},
			States: []*ir.ParserState{
				{
					Name: "start",
					Body: []ir.Stmt{&ir.DeclStmt{
						Decl: &ir.VarDecl{Name: "len", Type: ir.Bits(8), Init: &ir.IntLit{Val: 1, Width: 8}},
					}},
					Transition: "parse_eth",
				},
				{
					Name: "parse_eth",
					Body: []ir.Stmt{
						&ir.AssignStmt{LHS: &ir.Ref{Name: "x"}, RHS: &ir.Ref{Name: "len"}},
					},
					Transition: "accept",
				},
			},
		},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeUnresolvedReference {
		t.Errorf("code = %s, want %s", got, diag.CodeUnresolvedReference)
	}
}

func TestParserLocalInitializerMustBePure(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ExternDecl{Name: "hasher", Type: &ir.ExternType{
			Name:    "hash_unit",
			Methods: []ir.ExternMethod{{Name: "hash16", Result: ir.Bits(16)}},
		}},
		&ir.ParserDecl{
			Name: "p",
			Locals: []ir.Decl{&ir.VarDecl{
				Name: "seed",
				Type: ir.Bits(16),
				Init: &ir.CallExpr{Callee: &ir.FieldExpr{X: &ir.Ref{Name: "hasher"}, Name: "hash16"}},
			}},
			States: []*ir.ParserState{{Name: "start", Transition: "accept"}},
		},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeTypeMismatch {
		t.Errorf("code = %s, want %s", got, diag.CodeTypeMismatch)
	}
}

func TestDuplicateDeclarationSiteUnknown(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		dropAction(),
		dropAction(),
	}}
	_, err := resolve(t, prog)
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *diag.Error, got %T: %v", err, err)
	}
	if !strings.Contains(de.Diagnostic.Message, "<unknown>") {
		t.Errorf("message = %q, want the unlocated previous site rendered as <unknown>",
			de.Diagnostic.Message)
	}
}

func TestExternMethodCall(t *testing.T) {
	call := &ir.CallExpr{
		Callee: &ir.FieldExpr{X: &ir.Ref{Name: "hasher"}, Name: "hash16"},
		Args:   []ir.Expr{&ir.IntLit{Val: 7, Width: 16}},
	}
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		&ir.ExternDecl{Name: "hasher", Type: &ir.ExternType{
			Name:    "hash_unit",
			Methods: []ir.ExternMethod{{Name: "hash16", Result: ir.Bits(16)}},
		}},
		&ir.ControlDecl{
			Name:   "ingress",
			Locals: []ir.Decl{&ir.VarDecl{Name: "h", Type: ir.Bits(16)}},
			Body: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.AssignStmt{LHS: &ir.Ref{Name: "h"}, RHS: call},
			}},
		},
	}}
	b, err := resolve(t, prog)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ty := b.TypeOf(call); !ir.Same(ty, ir.Bits(16)) {
		t.Errorf("call type = %v, want bit<16>", ty)
	}
}

func TestVoidCallHasNoValue(t *testing.T) {
	prog := &ir.Program{Name: "main", Decls: []ir.Decl{
		dropAction(),
		&ir.ControlDecl{
			Name:   "ingress",
			Locals: []ir.Decl{&ir.VarDecl{Name: "x", Type: ir.Bits(8)}},
			Body: &ir.BlockStmt{Stmts: []ir.Stmt{
				&ir.AssignStmt{
					LHS: &ir.Ref{Name: "x"},
					RHS: &ir.CallExpr{Callee: &ir.Ref{Name: "drop"}},
				},
			}},
		},
	}}
	_, err := resolve(t, prog)
	if got := codeOf(t, err); got != diag.CodeTypeMismatch {
		t.Errorf("code = %s, want %s", got, diag.CodeTypeMismatch)
	}
}
