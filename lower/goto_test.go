package lower

import (
	"testing"

	"github.com/RReverser/cfg/ast"
)

func newTestContext() *Context {
	lo := New(func(error) {}, Options{})
	ctx := lo.newContext()
	ctx.openBlock()
	return ctx
}

func callArg(t *testing.T, stmt ast.Stmt) ast.Expr {
	t.Helper()
	es, ok := stmt.(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("stmt = %T, want *ast.ExpressionStatement", stmt)
	}
	call, ok := es.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expression = %T, want *ast.CallExpression", es.Expression)
	}
	if len(call.Args) != 1 {
		t.Fatalf("got %d args, want 1", len(call.Args))
	}
	return call.Args[0]
}

func TestGotoUnconditionalResolvesInPlace(t *testing.T) {
	ctx := newTestContext()
	g := ctx.newGotoUnconditional()
	lit := callArg(t, ctx.cur.Body[0]).(*ast.Literal)
	if lit.Value != "" {
		t.Fatalf("placeholder should start empty, got %q", lit.Value)
	}
	g.ResolveTo("B7")
	if lit.Value != "B7" {
		t.Errorf("ResolveTo did not mutate the emitted placeholder: got %q", lit.Value)
	}
}

func TestGotoConditionalResolveThenElse(t *testing.T) {
	ctx := newTestContext()
	g := ctx.newGotoConditional(ast.Ident("test"))
	cond := callArg(t, ctx.cur.Body[0]).(*ast.ConditionalExpression)
	g.ResolveThenElse("Bthen", "Belse")
	if cond.Consequent.(*ast.Literal).Value != "Bthen" {
		t.Errorf("then placeholder = %q, want Bthen", cond.Consequent.(*ast.Literal).Value)
	}
	if cond.Alternate.(*ast.Literal).Value != "Belse" {
		t.Errorf("else placeholder = %q, want Belse", cond.Alternate.(*ast.Literal).Value)
	}
}

func TestGotoConditionalResolveElseIndependently(t *testing.T) {
	ctx := newTestContext()
	g := ctx.newGotoConditional(ast.Ident("test"))
	cond := callArg(t, ctx.cur.Body[0]).(*ast.ConditionalExpression)
	g.ResolveElse("Bcont")
	if cond.Alternate.(*ast.Literal).Value != "Bcont" {
		t.Errorf("else placeholder = %q, want Bcont", cond.Alternate.(*ast.Literal).Value)
	}
	if cond.Consequent.(*ast.Literal).Value != "" {
		t.Error("then placeholder should remain unresolved")
	}
	g.ResolveTo("Berr")
	if cond.Consequent.(*ast.Literal).Value != "Berr" {
		t.Errorf("then placeholder after later ResolveTo = %q, want Berr", cond.Consequent.(*ast.Literal).Value)
	}
}
