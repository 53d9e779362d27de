package lower

import "github.com/RReverser/cfg/ast"

// index walks body (not descending into nested function bodies, whose
// declarations belong to their own scope) collecting every `var` name and
// every FunctionDeclaration into the current Context: scope variables are
// hoisted to the top of the function regardless of where in the body they
// textually appear, and a FunctionDeclaration's value is materialized
// before any statement runs.
func (ctx *Context) index(body []ast.Stmt) []*ast.FunctionDeclaration {
	var fns []*ast.FunctionDeclaration
	for _, stmt := range body {
		fns = append(fns, ctx.indexStmt(stmt)...)
	}
	return fns
}

func (ctx *Context) indexStmt(stmt ast.Stmt) []*ast.FunctionDeclaration {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		for _, d := range s.Declarations {
			ctx.declareScopeVar(d.Name)
		}
		return nil

	case *ast.FunctionDeclaration:
		ctx.declareScopeVar(s.Name)
		return []*ast.FunctionDeclaration{s}

	case *ast.BlockStatement:
		return ctx.index(s.Body)

	case *ast.IfStatement:
		fns := ctx.indexStmt(s.Consequent)
		if s.Alternate != nil {
			fns = append(fns, ctx.indexStmt(s.Alternate)...)
		}
		return fns

	case *ast.WhileStatement:
		return ctx.indexStmt(s.Body)

	case *ast.DoWhileStatement:
		return ctx.indexStmt(s.Body)

	case *ast.ForStatement:
		var fns []*ast.FunctionDeclaration
		if s.Init != nil {
			fns = append(fns, ctx.indexStmt(s.Init)...)
		}
		return append(fns, ctx.indexStmt(s.Body)...)

	case *ast.SwitchStatement:
		var fns []*ast.FunctionDeclaration
		for _, c := range s.Cases {
			for _, cs := range c.Consequent {
				fns = append(fns, ctx.indexStmt(cs)...)
			}
		}
		return fns

	case *ast.LabeledStatement:
		return ctx.indexStmt(s.Body)

	case *ast.TryStatement:
		fns := ctx.indexStmt(s.Block)
		if s.Handler != nil {
			fns = append(fns, ctx.indexStmt(s.Handler.Body)...)
		}
		if s.Finalizer != nil {
			fns = append(fns, ctx.indexStmt(s.Finalizer)...)
		}
		return fns

	default:
		// ExpressionStatement, EmptyStatement, DebuggerStatement,
		// BreakStatement, ContinueStatement, ReturnStatement,
		// ThrowStatement declare no scope variables and contain no
		// nested statements to index.
		return nil
	}
}
