// Package ir defines the mid-level intermediate representation of the
// packetc compiler: a typed tree of declarations, statements and
// expressions for headers, actions, tables, controls and parsers.
// The external frontend constructs the tree once; passes then rewrite
// it in place until the scheduler reaches a fixpoint.
package ir

import "github.com/packetc-lang/packetc/internal/position"

// Node is implemented by every IR node.
type Node interface {
	Pos() position.Span
}

// Program is one compilation unit: an ordered set of top-level
// declarations. It owns all nested nodes.
type Program struct {
	Name string
	// RequiresVersion is an optional semver constraint from a
	// `@requires_version` pragma; the scheduler rejects the program when
	// the running compiler does not satisfy it.
	RequiresVersion string
	Decls           []Decl
}

// Decl is the variant over top-level and local declarations. Each has a
// unique name within its enclosing scope.
type Decl interface {
	Node
	isDecl()
	DeclName() string
}

// HeaderDecl introduces a header type.
type HeaderDecl struct {
	Span position.Span
	Name string
	Type *HeaderType
}

// StructDecl introduces a struct type.
type StructDecl struct {
	Span position.Span
	Name string
	Type *StructType
}

// ExternDecl introduces an extern instance, e.g. an action selector
// bound to a table implementation.
type ExternDecl struct {
	Span position.Span
	Name string
	Type *ExternType
}

// ConstDecl binds a name to a compile-time constant value.
type ConstDecl struct {
	Span  position.Span
	Name  string
	Type  Type
	Value Expr
}

// VarDecl declares a mutable local. Init may be nil, in which case the
// variable is unassigned until written.
type VarDecl struct {
	Span position.Span
	Name string
	Type Type
	Init Expr
}

// ParamDir is the direction of a control/action parameter.
type ParamDir int

const (
	DirIn ParamDir = iota
	DirOut
	DirInOut
)

func (d ParamDir) String() string {
	switch d {
	case DirIn:
		return "in"
	case DirOut:
		return "out"
	case DirInOut:
		return "inout"
	default:
		return "dir?"
	}
}

// Param is one parameter of a control, parser or action. Params are
// declarations: name references may bind to them.
type Param struct {
	Span position.Span
	Name string
	Dir  ParamDir
	Type Type
}

func (p *Param) Pos() position.Span { return p.Span }
func (p *Param) DeclName() string   { return p.Name }
func (*Param) isDecl()              {}

// ActionDecl is a named action with parameters and a body.
type ActionDecl struct {
	Span   position.Span
	Name   string
	Params []*Param
	Body   *BlockStmt
}

// MatchKind is the comparison semantics of one table key field.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchTernary
	MatchRange
	MatchSelector
)

func (m MatchKind) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchTernary:
		return "ternary"
	case MatchRange:
		return "range"
	case MatchSelector:
		return "selector"
	default:
		return "match?"
	}
}

// TableKey is one key field of a table with its match kind.
type TableKey struct {
	Expr  Expr
	Match MatchKind
}

// ActionRef names an action in a table's action list, optionally with
// bound arguments.
type ActionRef struct {
	Span position.Span
	Name string
	Args []Expr
}

func (a *ActionRef) Pos() position.Span { return a.Span }

// TableDecl is a match-action table: ordered key fields, an action
// list, an optional default action, and an optional implementation
// binding (the name of an extern instance such as an action selector).
type TableDecl struct {
	Span           position.Span
	Name           string
	Keys           []TableKey
	Actions        []*ActionRef
	Default        *ActionRef
	Implementation string
}

// ControlDecl is a named control block: parameters, local declarations
// and an apply body.
type ControlDecl struct {
	Span   position.Span
	Name   string
	Params []*Param
	Locals []Decl
	Body   *BlockStmt
}

// ParserState is one named state of a parser state machine. Transition
// names the next state; "accept" and "reject" are terminal.
type ParserState struct {
	Span       position.Span
	Name       string
	Body       []Stmt
	Transition string
}

func (s *ParserState) Pos() position.Span { return s.Span }

// ParserDecl is a named parser: parameters, locals and a state machine
// starting at the state named "start".
type ParserDecl struct {
	Span   position.Span
	Name   string
	Params []*Param
	Locals []Decl
	States []*ParserState
}

// PackageDecl wires controls and parsers into a target package.
type PackageDecl struct {
	Span position.Span
	Name string
	// Args name the parser/control declarations instantiated by the
	// package, in target order.
	Args []string
}

func (*HeaderDecl) isDecl()  {}
func (*StructDecl) isDecl()  {}
func (*ExternDecl) isDecl()  {}
func (*ConstDecl) isDecl()   {}
func (*VarDecl) isDecl()     {}
func (*ActionDecl) isDecl()  {}
func (*TableDecl) isDecl()   {}
func (*ControlDecl) isDecl() {}
func (*ParserDecl) isDecl()  {}
func (*PackageDecl) isDecl() {}

func (d *HeaderDecl) Pos() position.Span  { return d.Span }
func (d *StructDecl) Pos() position.Span  { return d.Span }
func (d *ExternDecl) Pos() position.Span  { return d.Span }
func (d *ConstDecl) Pos() position.Span   { return d.Span }
func (d *VarDecl) Pos() position.Span     { return d.Span }
func (d *ActionDecl) Pos() position.Span  { return d.Span }
func (d *TableDecl) Pos() position.Span   { return d.Span }
func (d *ControlDecl) Pos() position.Span { return d.Span }
func (d *ParserDecl) Pos() position.Span  { return d.Span }
func (d *PackageDecl) Pos() position.Span { return d.Span }

func (d *HeaderDecl) DeclName() string  { return d.Name }
func (d *StructDecl) DeclName() string  { return d.Name }
func (d *ExternDecl) DeclName() string  { return d.Name }
func (d *ConstDecl) DeclName() string   { return d.Name }
func (d *VarDecl) DeclName() string     { return d.Name }
func (d *ActionDecl) DeclName() string  { return d.Name }
func (d *TableDecl) DeclName() string   { return d.Name }
func (d *ControlDecl) DeclName() string { return d.Name }
func (d *ParserDecl) DeclName() string  { return d.Name }
func (d *PackageDecl) DeclName() string { return d.Name }
