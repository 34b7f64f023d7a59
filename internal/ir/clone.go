package ir

// CloneProgram deep-copies a program tree. Types are shared: they are
// immutable after construction. The pipeline clones before mutating
// when the caller needs to keep the input tree, and tests clone to
// compare pass output against untouched input.
func CloneProgram(p *Program) *Program {
	if p == nil {
		return nil
	}
	out := &Program{
		Name:            p.Name,
		RequiresVersion: p.RequiresVersion,
		Decls:           cloneDecls(p.Decls),
	}
	return out
}

// CloneDecl deep-copies a declaration.
func CloneDecl(d Decl) Decl {
	switch v := d.(type) {
	case nil:
		return nil
	case *HeaderDecl:
		c := *v
		return &c
	case *StructDecl:
		c := *v
		return &c
	case *ExternDecl:
		c := *v
		return &c
	case *ConstDecl:
		c := *v
		c.Value = CloneExpr(v.Value)
		return &c
	case *VarDecl:
		c := *v
		c.Init = CloneExpr(v.Init)
		return &c
	case *ActionDecl:
		c := *v
		c.Params = cloneParams(v.Params)
		c.Body = cloneBlock(v.Body)
		return &c
	case *TableDecl:
		// Nil and empty slices clone to themselves so a clone compares
		// structurally equal to its source.
		c := *v
		if v.Keys != nil {
			c.Keys = make([]TableKey, len(v.Keys))
			for i, k := range v.Keys {
				c.Keys[i] = TableKey{Expr: CloneExpr(k.Expr), Match: k.Match}
			}
		}
		if v.Actions != nil {
			c.Actions = make([]*ActionRef, len(v.Actions))
			for i, a := range v.Actions {
				c.Actions[i] = cloneActionRef(a)
			}
		}
		c.Default = cloneActionRef(v.Default)
		return &c
	case *ControlDecl:
		c := *v
		c.Params = cloneParams(v.Params)
		c.Locals = cloneDecls(v.Locals)
		c.Body = cloneBlock(v.Body)
		return &c
	case *ParserDecl:
		c := *v
		c.Params = cloneParams(v.Params)
		c.Locals = cloneDecls(v.Locals)
		if v.States != nil {
			c.States = make([]*ParserState, len(v.States))
			for i, st := range v.States {
				sc := *st
				sc.Body = cloneStmts(st.Body)
				c.States[i] = &sc
			}
		}
		return &c
	case *PackageDecl:
		c := *v
		c.Args = append([]string(nil), v.Args...)
		return &c
	default:
		return d
	}
}

// CloneStmt deep-copies a statement.
func CloneStmt(s Stmt) Stmt {
	switch v := s.(type) {
	case nil:
		return nil
	case *AssignStmt:
		c := *v
		c.LHS = CloneExpr(v.LHS)
		c.RHS = CloneExpr(v.RHS)
		return &c
	case *IfStmt:
		c := *v
		c.Cond = CloneExpr(v.Cond)
		c.Then = cloneBlock(v.Then)
		c.Else = cloneBlock(v.Else)
		return &c
	case *BlockStmt:
		return cloneBlock(v)
	case *CallStmt:
		c := *v
		c.Call = CloneExpr(v.Call)
		return &c
	case *ExitStmt:
		c := *v
		return &c
	case *ReturnStmt:
		c := *v
		return &c
	case *DeclStmt:
		c := *v
		c.Decl = CloneDecl(v.Decl).(*VarDecl)
		return &c
	default:
		return s
	}
}

// CloneExpr deep-copies an expression.
func CloneExpr(e Expr) Expr {
	switch v := e.(type) {
	case nil:
		return nil
	case *IntLit:
		c := *v
		return &c
	case *BoolLit:
		c := *v
		return &c
	case *Ref:
		c := *v
		return &c
	case *FieldExpr:
		c := *v
		c.X = CloneExpr(v.X)
		return &c
	case *UnaryExpr:
		c := *v
		c.X = CloneExpr(v.X)
		return &c
	case *BinaryExpr:
		c := *v
		c.L = CloneExpr(v.L)
		c.R = CloneExpr(v.R)
		return &c
	case *CallExpr:
		c := *v
		c.Callee = CloneExpr(v.Callee)
		c.Args = cloneExprs(v.Args)
		return &c
	case *ApplyExpr:
		c := *v
		return &c
	case *CondExpr:
		c := *v
		c.Cond = CloneExpr(v.Cond)
		c.Then = CloneExpr(v.Then)
		c.Else = CloneExpr(v.Else)
		return &c
	default:
		return e
	}
}

func cloneParams(ps []*Param) []*Param {
	if ps == nil {
		return nil
	}
	out := make([]*Param, len(ps))
	for i, p := range ps {
		c := *p
		out[i] = &c
	}
	return out
}

func cloneDecls(ds []Decl) []Decl {
	if ds == nil {
		return nil
	}
	out := make([]Decl, len(ds))
	for i, d := range ds {
		out[i] = CloneDecl(d)
	}
	return out
}

func cloneStmts(ss []Stmt) []Stmt {
	if ss == nil {
		return nil
	}
	out := make([]Stmt, len(ss))
	for i, s := range ss {
		out[i] = CloneStmt(s)
	}
	return out
}

func cloneExprs(es []Expr) []Expr {
	if es == nil {
		return nil
	}
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = CloneExpr(e)
	}
	return out
}

func cloneBlock(b *BlockStmt) *BlockStmt {
	if b == nil {
		return nil
	}
	c := *b
	c.Stmts = cloneStmts(b.Stmts)
	return &c
}

func cloneActionRef(a *ActionRef) *ActionRef {
	if a == nil {
		return nil
	}
	c := *a
	c.Args = cloneExprs(a.Args)
	return &c
}
