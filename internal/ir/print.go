package ir

import (
	"fmt"
	"strings"
)

// Printing is used by tests and by the debug dump the CLI layer exposes.
// The output is not meant to be re-parsed.

func (p *Program) String() string {
	if p == nil {
		return "<nil-program>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "program %s\n", p.Name)
	if p.RequiresVersion != "" {
		fmt.Fprintf(&b, "@requires_version(%q)\n", p.RequiresVersion)
	}
	for _, d := range p.Decls {
		writeDecl(&b, d, 0)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func writeDecl(b *strings.Builder, d Decl, depth int) {
	indent(b, depth)
	switch v := d.(type) {
	case *HeaderDecl:
		fmt.Fprintf(b, "header %s {", v.Name)
		writeFields(b, v.Type.Fields)
		b.WriteString("}\n")
	case *StructDecl:
		fmt.Fprintf(b, "struct %s {", v.Name)
		writeFields(b, v.Type.Fields)
		b.WriteString("}\n")
	case *ExternDecl:
		fmt.Fprintf(b, "extern %s %s\n", v.Type.Name, v.Name)
	case *ConstDecl:
		fmt.Fprintf(b, "const %s %s = %s\n", v.Type, v.Name, ExprString(v.Value))
	case *VarDecl:
		if v.Init != nil {
			fmt.Fprintf(b, "%s %s = %s\n", v.Type, v.Name, ExprString(v.Init))
		} else {
			fmt.Fprintf(b, "%s %s\n", v.Type, v.Name)
		}
	case *ActionDecl:
		fmt.Fprintf(b, "action %s(%s)", v.Name, paramList(v.Params))
		writeBlock(b, v.Body, depth)
	case *TableDecl:
		fmt.Fprintf(b, "table %s {\n", v.Name)
		for _, k := range v.Keys {
			indent(b, depth+1)
			fmt.Fprintf(b, "key %s: %s\n", ExprString(k.Expr), k.Match)
		}
		for _, a := range v.Actions {
			indent(b, depth+1)
			fmt.Fprintf(b, "action %s\n", actionRefString(a))
		}
		if v.Default != nil {
			indent(b, depth+1)
			fmt.Fprintf(b, "default_action %s\n", actionRefString(v.Default))
		}
		if v.Implementation != "" {
			indent(b, depth+1)
			fmt.Fprintf(b, "implementation %s\n", v.Implementation)
		}
		indent(b, depth)
		b.WriteString("}\n")
	case *ControlDecl:
		fmt.Fprintf(b, "control %s(%s) {\n", v.Name, paramList(v.Params))
		for _, l := range v.Locals {
			writeDecl(b, l, depth+1)
		}
		indent(b, depth+1)
		b.WriteString("apply")
		writeBlock(b, v.Body, depth+1)
		indent(b, depth)
		b.WriteString("}\n")
	case *ParserDecl:
		fmt.Fprintf(b, "parser %s(%s) {\n", v.Name, paramList(v.Params))
		for _, l := range v.Locals {
			writeDecl(b, l, depth+1)
		}
		for _, st := range v.States {
			indent(b, depth+1)
			fmt.Fprintf(b, "state %s {\n", st.Name)
			for _, s := range st.Body {
				writeStmt(b, s, depth+2)
			}
			indent(b, depth+2)
			fmt.Fprintf(b, "transition %s\n", st.Transition)
			indent(b, depth+1)
			b.WriteString("}\n")
		}
		indent(b, depth)
		b.WriteString("}\n")
	case *PackageDecl:
		fmt.Fprintf(b, "package %s(%s)\n", v.Name, strings.Join(v.Args, ", "))
	default:
		fmt.Fprintf(b, "<%s>\n", KindOf(d))
	}
}

func writeFields(b *strings.Builder, fields []Field) {
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		} else {
			b.WriteString(" ")
		}
		fmt.Fprintf(b, "%s %s", f.Type, f.Name)
	}
	if len(fields) > 0 {
		b.WriteString(" ")
	}
}

func paramList(params []*Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, fmt.Sprintf("%s %s %s", p.Dir, p.Type, p.Name))
	}
	return strings.Join(parts, ", ")
}

func actionRefString(a *ActionRef) string {
	args := make([]string, 0, len(a.Args))
	for _, e := range a.Args {
		args = append(args, ExprString(e))
	}
	return fmt.Sprintf("%s(%s)", a.Name, strings.Join(args, ", "))
}

func writeBlock(b *strings.Builder, blk *BlockStmt, depth int) {
	if blk == nil {
		b.WriteString(" {}\n")
		return
	}
	b.WriteString(" {\n")
	for _, s := range blk.Stmts {
		writeStmt(b, s, depth+1)
	}
	indent(b, depth)
	b.WriteString("}\n")
}

func writeStmt(b *strings.Builder, s Stmt, depth int) {
	indent(b, depth)
	switch v := s.(type) {
	case *AssignStmt:
		fmt.Fprintf(b, "%s = %s\n", ExprString(v.LHS), ExprString(v.RHS))
	case *IfStmt:
		fmt.Fprintf(b, "if (%s)", ExprString(v.Cond))
		writeBlock(b, v.Then, depth)
		if v.Else != nil {
			indent(b, depth)
			b.WriteString("else")
			writeBlock(b, v.Else, depth)
		}
	case *BlockStmt:
		b.WriteString("{\n")
		for _, inner := range v.Stmts {
			writeStmt(b, inner, depth+1)
		}
		indent(b, depth)
		b.WriteString("}\n")
	case *CallStmt:
		fmt.Fprintf(b, "%s\n", ExprString(v.Call))
	case *ExitStmt:
		b.WriteString("exit\n")
	case *ReturnStmt:
		b.WriteString("return\n")
	case *DeclStmt:
		if v.Decl.Init != nil {
			fmt.Fprintf(b, "%s %s = %s\n", v.Decl.Type, v.Decl.Name, ExprString(v.Decl.Init))
		} else {
			fmt.Fprintf(b, "%s %s\n", v.Decl.Type, v.Decl.Name)
		}
	default:
		fmt.Fprintf(b, "<%s>\n", KindOf(s))
	}
}

// ExprString renders an expression in source-like infix form.
func ExprString(e Expr) string {
	switch v := e.(type) {
	case nil:
		return "<nil>"
	case *IntLit:
		return fmt.Sprintf("%dw%d", v.Val, v.Width)
	case *BoolLit:
		if v.Val {
			return "true"
		}
		return "false"
	case *Ref:
		return v.Name
	case *FieldExpr:
		return ExprString(v.X) + "." + v.Name
	case *UnaryExpr:
		return fmt.Sprintf("%s%s", v.Op, ExprString(v.X))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", ExprString(v.L), v.Op, ExprString(v.R))
	case *CallExpr:
		args := make([]string, 0, len(v.Args))
		for _, a := range v.Args {
			args = append(args, ExprString(a))
		}
		return fmt.Sprintf("%s(%s)", ExprString(v.Callee), strings.Join(args, ", "))
	case *ApplyExpr:
		return v.Table + ".apply()"
	case *CondExpr:
		return fmt.Sprintf("(%s ? %s : %s)", ExprString(v.Cond), ExprString(v.Then), ExprString(v.Else))
	default:
		return "<" + KindOf(e) + ">"
	}
}
