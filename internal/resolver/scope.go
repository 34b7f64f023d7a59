package resolver

import "github.com/packetc-lang/packetc/internal/ir"

// scope is one level of the lexical scope chain. Inner scopes shadow
// outer ones; collisions within a single scope are ambiguity errors.
type scope struct {
	parent *scope
	names  map[string]ir.Decl
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]ir.Decl)}
}

// define binds name in this scope. It returns the previous declaration
// and false when the name is already taken here.
func (s *scope) define(name string, d ir.Decl) (ir.Decl, bool) {
	if prev, ok := s.names[name]; ok {
		return prev, false
	}
	s.names[name] = d
	return nil, true
}

// lookup finds the nearest visible declaration of name.
func (s *scope) lookup(name string) (ir.Decl, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if d, ok := cur.names[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// Bindings is the side table produced by resolution. It maps node
// identity to resolved declarations and computed types instead of
// mutating symbol information into the tree, so passes stay composable
// and independently testable.
type Bindings struct {
	// Uses maps each name reference to its unique declaration.
	Uses map[*ir.Ref]ir.Decl
	// Types maps each expression to its computed type. Calls without a
	// result have no entry.
	Types map[ir.Expr]ir.Type
	// Tables maps each apply expression to the applied table.
	Tables map[*ir.ApplyExpr]*ir.TableDecl
	// Actions maps each table action reference to the declared action.
	Actions map[*ir.ActionRef]*ir.ActionDecl
}

// NewBindings creates an empty binding table.
func NewBindings() *Bindings {
	b := &Bindings{}
	b.Reset()
	return b
}

// Reset clears all recorded bindings. The resolver repopulates the
// table on every run so stale entries never survive tree rewrites.
func (b *Bindings) Reset() {
	b.Uses = make(map[*ir.Ref]ir.Decl)
	b.Types = make(map[ir.Expr]ir.Type)
	b.Tables = make(map[*ir.ApplyExpr]*ir.TableDecl)
	b.Actions = make(map[*ir.ActionRef]*ir.ActionDecl)
}

// TypeOf returns the computed type of e, or nil when e has no value.
func (b *Bindings) TypeOf(e ir.Expr) ir.Type {
	return b.Types[e]
}

// DeclOf returns the declaration a reference resolved to, or nil.
func (b *Bindings) DeclOf(r *ir.Ref) ir.Decl {
	return b.Uses[r]
}
