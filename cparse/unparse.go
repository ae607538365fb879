package cparse

import (
	"fmt"
	"strings"

	"github.com/shadowdp-go/shadowdp/cast"
)

// TextUnparser renders a *cast.Program as indented C source text,
// reusing cast.SprintExpr for every expression and adding the
// statement/block/function-level rendering cast.SprintExpr itself does
// not cover.
type TextUnparser struct{}

func NewTextUnparser() *TextUnparser { return &TextUnparser{} }

func (u *TextUnparser) Unparse(prog *cast.Program) (string, error) {
	var sb strings.Builder
	for i, fn := range prog.Functions {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeFuncDecl(&sb, fn)
	}
	return sb.String(), nil
}

func writeFuncDecl(sb *strings.Builder, fn *cast.FuncDecl) {
	fmt.Fprintf(sb, "%s %s(", fn.Return, fn.Name)
	for i, param := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%s %s", param.Type, param.Name)
		if param.IsArray {
			sb.WriteString("[]")
		}
	}
	sb.WriteString(") ")
	writeBlock(sb, fn.Body, 0)
	sb.WriteString("\n")
}

func writeIndent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("    ", depth))
}

func writeBlock(sb *strings.Builder, block *cast.Block, depth int) {
	sb.WriteString("{\n")
	if block != nil {
		for _, stmt := range block.Stmts {
			writeStmt(sb, stmt, depth+1)
		}
	}
	writeIndent(sb, depth)
	sb.WriteString("}\n")
}

func writeStmt(sb *strings.Builder, stmt cast.Stmt, depth int) {
	switch n := stmt.(type) {
	case *cast.Decl:
		writeIndent(sb, depth)
		fmt.Fprintf(sb, "%s %s", n.Type, n.Name)
		if n.Init != nil {
			sb.WriteString(" = ")
			sb.WriteString(cast.SprintExpr(n.Init))
		}
		sb.WriteString(";\n")

	case *cast.Assign:
		writeIndent(sb, depth)
		fmt.Fprintf(sb, "%s = %s;\n", cast.SprintExpr(n.Lvalue), cast.SprintExpr(n.Rvalue))

	case *cast.ExprStmt:
		writeIndent(sb, depth)
		fmt.Fprintf(sb, "%s;\n", cast.SprintExpr(n.X))

	case *cast.If:
		writeIndent(sb, depth)
		fmt.Fprintf(sb, "if (%s) ", cast.SprintExpr(n.Cond))
		writeBlock(sb, n.Then, depth)
		if n.Else != nil {
			writeIndent(sb, depth)
			sb.WriteString("else ")
			writeBlock(sb, n.Else, depth)
		}

	case *cast.While:
		writeIndent(sb, depth)
		fmt.Fprintf(sb, "while (%s) ", cast.SprintExpr(n.Cond))
		writeBlock(sb, n.Body, depth)

	case *cast.Return:
		writeIndent(sb, depth)
		if n.Value != nil {
			fmt.Fprintf(sb, "return %s;\n", cast.SprintExpr(n.Value))
		} else {
			sb.WriteString("return;\n")
		}
	}
}
