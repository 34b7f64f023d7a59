package ir

import "github.com/packetc-lang/packetc/internal/position"

// Expr is the variant over expressions. Method calls and table applies
// are the side-effecting leaves that trigger side-effect ordering.
type Expr interface {
	Node
	isExpr()
}

// IntLit is a fixed-width integer literal. Val holds the value already
// truncated to Width bits.
type IntLit struct {
	Span  position.Span
	Val   uint64
	Width int
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Span position.Span
	Val  bool
}

// Ref is a reference to a named declaration.
type Ref struct {
	Span position.Span
	Name string
}

// FieldExpr selects a member of a struct or header value, or names a
// method of a header or extern when it is the callee of a CallExpr.
type FieldExpr struct {
	Span position.Span
	X    Expr
	Name string
}

// UnaryOp enumerates unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota // arithmetic negation, wraps modulo 2^N
	OpBitNot
	OpNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpBitNot:
		return "~"
	case OpNot:
		return "!"
	default:
		return "unop?"
	}
}

// UnaryExpr applies a unary operator.
type UnaryExpr struct {
	Span position.Span
	Op   UnaryOp
	X    Expr
}

// BinaryOp enumerates binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLAnd
	OpLOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpLAnd:
		return "&&"
	case OpLOr:
		return "||"
	default:
		return "binop?"
	}
}

// IsComparison reports whether op yields a boolean from two operands of
// one common type.
func (op BinaryOp) IsComparison() bool {
	return op >= OpEq && op <= OpGe
}

// IsLogical reports whether op combines booleans.
func (op BinaryOp) IsLogical() bool {
	return op == OpLAnd || op == OpLOr
}

// IsShift reports whether op is a shift, whose operands may differ in
// width; the result takes the left operand's type.
func (op BinaryOp) IsShift() bool {
	return op == OpShl || op == OpShr
}

// BinaryExpr applies a binary operator.
type BinaryExpr struct {
	Span position.Span
	Op   BinaryOp
	L    Expr
	R    Expr
}

// CallExpr invokes an action, a header method (isValid, setValid,
// setInvalid) or an extern method. Calls are side-effecting.
type CallExpr struct {
	Span   position.Span
	Callee Expr // *Ref for actions, *FieldExpr for methods
	Args   []Expr
}

// ApplyExpr applies a match-action table, producing its hit flag.
// Applies are side-effecting.
type ApplyExpr struct {
	Span  position.Span
	Table string
}

// CondExpr is the ternary conditional.
type CondExpr struct {
	Span position.Span
	Cond Expr
	Then Expr
	Else Expr
}

func (*IntLit) isExpr()     {}
func (*BoolLit) isExpr()    {}
func (*Ref) isExpr()        {}
func (*FieldExpr) isExpr()  {}
func (*UnaryExpr) isExpr()  {}
func (*BinaryExpr) isExpr() {}
func (*CallExpr) isExpr()   {}
func (*ApplyExpr) isExpr()  {}
func (*CondExpr) isExpr()   {}

func (e *IntLit) Pos() position.Span     { return e.Span }
func (e *BoolLit) Pos() position.Span    { return e.Span }
func (e *Ref) Pos() position.Span        { return e.Span }
func (e *FieldExpr) Pos() position.Span  { return e.Span }
func (e *UnaryExpr) Pos() position.Span  { return e.Span }
func (e *BinaryExpr) Pos() position.Span { return e.Span }
func (e *CallExpr) Pos() position.Span   { return e.Span }
func (e *ApplyExpr) Pos() position.Span  { return e.Span }
func (e *CondExpr) Pos() position.Span   { return e.Span }

// Truncate wraps v to width bits, matching the wraparound semantics of
// arithmetic over bit<N>.
func Truncate(v uint64, width int) uint64 {
	if width <= 0 {
		return 0
	}
	if width >= 64 {
		return v
	}
	return v & (1<<uint(width) - 1)
}

// HasSideEffects reports whether e contains a method call or table
// apply anywhere in its subtree.
func HasSideEffects(e Expr) bool {
	switch v := e.(type) {
	case nil:
		return false
	case *IntLit, *BoolLit, *Ref:
		return false
	case *FieldExpr:
		return HasSideEffects(v.X)
	case *UnaryExpr:
		return HasSideEffects(v.X)
	case *BinaryExpr:
		return HasSideEffects(v.L) || HasSideEffects(v.R)
	case *CondExpr:
		return HasSideEffects(v.Cond) || HasSideEffects(v.Then) || HasSideEffects(v.Else)
	case *CallExpr, *ApplyExpr:
		return true
	default:
		return true
	}
}
