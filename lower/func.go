package lower

import (
	"fmt"

	"github.com/RReverser/cfg/ast"
)

// lowerFunctionBody runs the hoisting pass over body, opens the function's
// first block, emits the deferred initializers for every hoisted
// FunctionDeclaration, and then lowers body's statements in order.
func (ctx *Context) lowerFunctionBody(body []ast.Stmt) error {
	hoisted := ctx.index(body)
	ctx.openBlock()
	for _, fd := range hoisted {
		lowered, err := ctx.lowerFunctionLiteral(fd.Function)
		if err != nil {
			return err
		}
		ctx.emit(ast.NewAssign(ast.Ident(fd.Name), lowered))
	}
	for _, stmt := range body {
		if err := ctx.lowerStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// lowerFunctionLiteral lowers a nested function value (anonymous or named)
// in a fresh Context of its own: contexts share no state across a
// function boundary, including their temp pools and label stacks.
func (ctx *Context) lowerFunctionLiteral(fn *ast.FunctionExpression) (*ast.FunctionExpression, error) {
	inner := ctx.lowerer.newContext()
	for _, param := range fn.Params {
		inner.declareScopeVar(param)
	}
	if err := inner.lowerFunctionBody(fn.Body); err != nil {
		return nil, err
	}
	body, err := inner.finish()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionExpression{Name: fn.Name, Params: fn.Params, Body: body}, nil
}

// finish closes out the function: every pending return and pending throw
// resolves to a freshly opened epilogue block, and the hoisted var
// prologue (user variables, __RESULT/__ERROR, and every temporary name the
// pool minted) is prepended to the finished block sequence.
func (ctx *Context) finish() ([]ast.Stmt, error) {
	if len(ctx.labelStack) != 0 {
		return nil, ctx.invariantViolatedf("non-empty label stack (%d frames) at function finalization", len(ctx.labelStack))
	}

	epilogue := ctx.openBlock()
	for _, g := range ctx.pendingReturns {
		g.ResolveTo(epilogue.Label)
	}
	for _, g := range ctx.pendingThrows {
		g.ResolveTo(epilogue.Label)
	}
	ctx.pendingReturns = nil
	ctx.pendingThrows = nil

	if n := ctx.temps.outstanding(); n != 0 {
		return nil, ctx.invariantViolatedf("%d temporaries still live at function finalization", n)
	}

	for i := 0; i < ctx.temps.next; i++ {
		ctx.declareScopeVar(fmt.Sprintf("$%d", i))
	}

	out := make([]ast.Stmt, 0, 1+len(ctx.blocks))
	out = append(out, ast.NewVarDecl(ctx.scopeNames))
	for _, b := range ctx.blocks {
		out = append(out, ast.NewLabeledBlock(b.Label, b.Body))
	}
	return out, nil
}
