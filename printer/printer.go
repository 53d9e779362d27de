// Package printer writes a lowered *ast.Program back out as JavaScript
// source text. Its main use is the lowered output shape (one
// VariableDeclaration prologue followed by a sequence of labeled basic
// blocks), but it also prints the structured statement kinds of the input
// grammar (if, loops, switch, try, break/continue/return/throw, function
// declarations). It never imports lower.
package printer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/RReverser/cfg/ast"
	"github.com/RReverser/cfg/cerr"
)

// Print renders prog as JavaScript source text.
func Print(prog *ast.Program) ([]byte, error) {
	var buf bytes.Buffer
	p := &printer{buf: &buf}
	if err := p.printStmts(prog.Body, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type printer struct {
	buf *bytes.Buffer
}

func (p *printer) indent(depth int) {
	for i := 0; i < depth; i++ {
		p.buf.WriteString("  ")
	}
}

func (p *printer) printStmts(stmts []ast.Stmt, depth int) error {
	for _, s := range stmts {
		if err := p.printStmt(s, depth); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) printStmt(stmt ast.Stmt, depth int) error {
	p.indent(depth)
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		p.buf.WriteString("var ")
		for i, d := range s.Declarations {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(d.Name)
			if d.Init != nil {
				p.buf.WriteString(" = ")
				if err := p.printExpr(d.Init); err != nil {
					return err
				}
			}
		}
		p.buf.WriteString(";\n")

	case *ast.ExpressionStatement:
		if err := p.printExpr(s.Expression); err != nil {
			return err
		}
		p.buf.WriteString(";\n")

	case *ast.EmptyStatement:
		p.buf.WriteString(";\n")

	case *ast.DebuggerStatement:
		p.buf.WriteString("debugger;\n")

	case *ast.LabeledStatement:
		fmt.Fprintf(p.buf, "%s: ", s.Label)
		return p.printBodyStmt(s.Body, depth)

	case *ast.BlockStatement:
		p.buf.WriteString("{\n")
		if err := p.printStmts(s.Body, depth+1); err != nil {
			return err
		}
		p.indent(depth)
		p.buf.WriteString("}\n")

	case *ast.BreakStatement:
		if s.Label != "" {
			fmt.Fprintf(p.buf, "break %s;\n", s.Label)
		} else {
			p.buf.WriteString("break;\n")
		}

	case *ast.ContinueStatement:
		if s.Label != "" {
			fmt.Fprintf(p.buf, "continue %s;\n", s.Label)
		} else {
			p.buf.WriteString("continue;\n")
		}

	case *ast.ReturnStatement:
		if s.Argument == nil {
			p.buf.WriteString("return;\n")
			return nil
		}
		p.buf.WriteString("return ")
		if err := p.printExpr(s.Argument); err != nil {
			return err
		}
		p.buf.WriteString(";\n")

	case *ast.ThrowStatement:
		p.buf.WriteString("throw ")
		if err := p.printExpr(s.Argument); err != nil {
			return err
		}
		p.buf.WriteString(";\n")

	case *ast.IfStatement:
		p.buf.WriteString("if (")
		if err := p.printExpr(s.Test); err != nil {
			return err
		}
		p.buf.WriteString(") ")
		if err := p.printBodyStmt(s.Consequent, depth); err != nil {
			return err
		}
		if s.Alternate != nil {
			p.indent(depth)
			p.buf.WriteString("else ")
			if err := p.printBodyStmt(s.Alternate, depth); err != nil {
				return err
			}
		}

	case *ast.WhileStatement:
		p.buf.WriteString("while (")
		if err := p.printExpr(s.Test); err != nil {
			return err
		}
		p.buf.WriteString(") ")
		return p.printBodyStmt(s.Body, depth)

	case *ast.DoWhileStatement:
		p.buf.WriteString("do ")
		if err := p.printBodyStmt(s.Body, depth); err != nil {
			return err
		}
		p.indent(depth)
		p.buf.WriteString("while (")
		if err := p.printExpr(s.Test); err != nil {
			return err
		}
		p.buf.WriteString(");\n")

	case *ast.ForStatement:
		p.buf.WriteString("for (")
		if s.Init != nil {
			if err := p.printForClause(s.Init); err != nil {
				return err
			}
		}
		p.buf.WriteString("; ")
		if s.Test != nil {
			if err := p.printExpr(s.Test); err != nil {
				return err
			}
		}
		p.buf.WriteString("; ")
		if s.Update != nil {
			if err := p.printExpr(s.Update); err != nil {
				return err
			}
		}
		p.buf.WriteString(") ")
		return p.printBodyStmt(s.Body, depth)

	case *ast.SwitchStatement:
		p.buf.WriteString("switch (")
		if err := p.printExpr(s.Discriminant); err != nil {
			return err
		}
		p.buf.WriteString(") {\n")
		for _, c := range s.Cases {
			p.indent(depth + 1)
			if c.Test != nil {
				p.buf.WriteString("case ")
				if err := p.printExpr(c.Test); err != nil {
					return err
				}
				p.buf.WriteString(":\n")
			} else {
				p.buf.WriteString("default:\n")
			}
			if err := p.printStmts(c.Consequent, depth+2); err != nil {
				return err
			}
		}
		p.indent(depth)
		p.buf.WriteString("}\n")

	case *ast.FunctionDeclaration:
		fmt.Fprintf(p.buf, "function %s(", s.Name)
		for i, param := range s.Function.Params {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(param)
		}
		p.buf.WriteString(") {\n")
		if err := p.printStmts(s.Function.Body, depth+1); err != nil {
			return err
		}
		p.indent(depth)
		p.buf.WriteString("}\n")

	case *ast.TryStatement:
		p.buf.WriteString("try ")
		if err := p.printStmt(s.Block, depth); err != nil {
			return err
		}
		if s.Handler != nil {
			p.indent(depth)
			fmt.Fprintf(p.buf, "catch (%s) ", s.Handler.Param)
			if err := p.printStmt(s.Handler.Body, depth); err != nil {
				return err
			}
		}
		if s.Finalizer != nil {
			p.indent(depth)
			p.buf.WriteString("finally ")
			if err := p.printStmt(s.Finalizer, depth); err != nil {
				return err
			}
		}

	default:
		return cerr.Errorf(cerr.UnsupportedNode, "printer: unsupported statement node %T", s)
	}
	return nil
}

// printBodyStmt prints a statement used as the single-statement body of an
// if/while/for/labeled construct. A *BlockStatement body opens on the same
// line as its header; any other statement kind is printed on the next line
// at one deeper indent, mirroring how the lowerer's own LabeledStatement
// bodies (always a BlockStatement) and the parser's any-statement bodies
// both need to round-trip through the same helper.
func (p *printer) printBodyStmt(stmt ast.Stmt, depth int) error {
	if _, ok := stmt.(*ast.BlockStatement); ok {
		return p.printStmt(stmt, depth)
	}
	p.buf.WriteString("\n")
	return p.printStmt(stmt, depth+1)
}

// printForClause prints a ForStatement.Init, which is either a
// *VariableDeclaration or an *ExpressionStatement, without the trailing
// newline and semicolon a standalone statement would get.
func (p *printer) printForClause(init ast.Stmt) error {
	switch s := init.(type) {
	case *ast.VariableDeclaration:
		p.buf.WriteString("var ")
		for i, d := range s.Declarations {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(d.Name)
			if d.Init != nil {
				p.buf.WriteString(" = ")
				if err := p.printExpr(d.Init); err != nil {
					return err
				}
			}
		}
		return nil
	case *ast.ExpressionStatement:
		return p.printExpr(s.Expression)
	default:
		return cerr.Errorf(cerr.UnsupportedNode, "printer: unsupported for-init node %T", s)
	}
}

func (p *printer) printExpr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.Identifier:
		p.buf.WriteString(e.Name)

	case *ast.Literal:
		switch e.Kind {
		case ast.StringLiteral:
			p.buf.WriteString(strconv.Quote(e.Value))
		default:
			p.buf.WriteString(e.Value)
		}

	case *ast.FunctionExpression:
		p.buf.WriteString("function")
		if e.Name != "" {
			p.buf.WriteString(" ")
			p.buf.WriteString(e.Name)
		}
		p.buf.WriteString("(")
		for i, param := range e.Params {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(param)
		}
		p.buf.WriteString(") {\n")
		if err := p.printStmts(e.Body, 1); err != nil {
			return err
		}
		p.buf.WriteString("}")

	case *ast.MemberExpression:
		if err := p.printOperand(e.Object); err != nil {
			return err
		}
		if e.Computed {
			p.buf.WriteString("[")
			if err := p.printExpr(e.Property); err != nil {
				return err
			}
			p.buf.WriteString("]")
		} else {
			p.buf.WriteString(".")
			if err := p.printExpr(e.Property); err != nil {
				return err
			}
		}

	case *ast.AssignmentExpression:
		if err := p.printExpr(e.Target); err != nil {
			return err
		}
		p.buf.WriteString(" = ")
		return p.printExpr(e.Value)

	case *ast.CallExpression:
		if err := p.printOperand(e.Callee); err != nil {
			return err
		}
		p.buf.WriteString("(")
		for i, arg := range e.Args {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			if err := p.printExpr(arg); err != nil {
				return err
			}
		}
		p.buf.WriteString(")")

	case *ast.UnaryExpression:
		p.buf.WriteString(e.Operator)
		return p.printOperand(e.Operand)

	case *ast.BinaryExpression:
		if err := p.printOperand(e.Left); err != nil {
			return err
		}
		fmt.Fprintf(p.buf, " %s ", e.Operator)
		return p.printOperand(e.Right)

	case *ast.ConditionalExpression:
		if err := p.printOperand(e.Test); err != nil {
			return err
		}
		p.buf.WriteString(" ? ")
		if err := p.printExpr(e.Consequent); err != nil {
			return err
		}
		p.buf.WriteString(" : ")
		return p.printExpr(e.Alternate)

	default:
		return cerr.Errorf(cerr.UnsupportedNode, "printer: unsupported expression node %T", e)
	}
	return nil
}

// printOperand parenthesizes a sub-expression when it could otherwise be
// misread at its parent's precedence; over-parenthesizing is harmless since
// byte-exact output is explicitly not a requirement.
func (p *printer) printOperand(expr ast.Expr) error {
	switch expr.(type) {
	case *ast.BinaryExpression, *ast.AssignmentExpression, *ast.ConditionalExpression, *ast.FunctionExpression:
		p.buf.WriteString("(")
		if err := p.printExpr(expr); err != nil {
			return err
		}
		p.buf.WriteString(")")
		return nil
	default:
		return p.printExpr(expr)
	}
}
