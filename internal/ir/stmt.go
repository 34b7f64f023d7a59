package ir

import "github.com/packetc-lang/packetc/internal/position"

// Stmt is the variant over statements. Statements form an ordered
// sequence within a block; blocks nest.
type Stmt interface {
	Node
	isStmt()
}

// AssignStmt writes RHS into the lvalue LHS.
type AssignStmt struct {
	Span position.Span
	LHS  Expr
	RHS  Expr
}

// IfStmt is a conditional. Else may be nil.
type IfStmt struct {
	Span position.Span
	Cond Expr
	Then *BlockStmt
	Else *BlockStmt
}

// BlockStmt is a nested statement sequence with its own lexical scope.
type BlockStmt struct {
	Span  position.Span
	Stmts []Stmt
}

// CallStmt evaluates a side-effecting call or table apply for its
// effect, discarding any result.
type CallStmt struct {
	Span position.Span
	Call Expr
}

// ExitStmt terminates packet processing immediately.
type ExitStmt struct {
	Span position.Span
}

// ReturnStmt leaves the enclosing control or action.
type ReturnStmt struct {
	Span position.Span
}

// DeclStmt introduces a local variable at statement position.
type DeclStmt struct {
	Span position.Span
	Decl *VarDecl
}

func (*AssignStmt) isStmt() {}
func (*IfStmt) isStmt()     {}
func (*BlockStmt) isStmt()  {}
func (*CallStmt) isStmt()   {}
func (*ExitStmt) isStmt()   {}
func (*ReturnStmt) isStmt() {}
func (*DeclStmt) isStmt()   {}

func (s *AssignStmt) Pos() position.Span { return s.Span }
func (s *IfStmt) Pos() position.Span     { return s.Span }
func (s *BlockStmt) Pos() position.Span  { return s.Span }
func (s *CallStmt) Pos() position.Span   { return s.Span }
func (s *ExitStmt) Pos() position.Span   { return s.Span }
func (s *ReturnStmt) Pos() position.Span { return s.Span }
func (s *DeclStmt) Pos() position.Span   { return s.Span }
