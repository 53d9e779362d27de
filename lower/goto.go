package lower

import "github.com/RReverser/cfg/ast"

// Goto is a two-phase jump handle. The emit site builds the GOTO call
// immediately, with placeholder target labels it does not yet know; the
// resolve site, once the destination block's label has been chosen,
// mutates those placeholders in place. This lets statement lowering emit a
// break/continue/return/throw jump before the loop or function epilogue
// that will eventually catch it has been laid out.
type Goto struct {
	targets []*ast.Literal
}

// newGotoUnconditional emits `GOTO("");` into the current block, seals it,
// and returns a handle whose single target resolves the placeholder.
func (ctx *Context) newGotoUnconditional() *Goto {
	target := ast.StringLit("")
	ctx.emit(ast.NewCallStmt(gotoHelperName, target))
	return &Goto{targets: []*ast.Literal{target}}
}

// newGotoConditional emits `GOTO(test ? "" : "");` into the current block,
// seals it, and returns a handle whose two targets (then, else) resolve
// the two placeholders independently.
func (ctx *Context) newGotoConditional(test ast.Expr) *Goto {
	then := ast.StringLit("")
	els := ast.StringLit("")
	call := ast.NewCallStmt(gotoHelperName, &ast.ConditionalExpression{Test: test, Consequent: then, Alternate: els})
	ctx.emit(call)
	return &Goto{targets: []*ast.Literal{then, els}}
}

// gotoHelperName names the pseudo-call GOTO materializes into; kept as a
// constant here (rather than imported from ast) since ast.NewGoto* already
// bakes it in for the cases where the target is known up front.
const gotoHelperName = "GOTO"

// ResolveTo patches an unconditional handle's single placeholder.
func (g *Goto) ResolveTo(label string) {
	g.targets[0].Value = label
}

// ResolveThenElse patches a conditional handle's then/else placeholders.
func (g *Goto) ResolveThenElse(then, els string) {
	g.targets[0].Value = then
	g.targets[1].Value = els
}

// ResolveElse patches only a conditional handle's else placeholder,
// leaving the then placeholder for a later, independent ResolveTo. This
// is used by the throw-check protocol, where the continuation block
// (else) is known immediately but the error target (then) may not be
// resolved until an enclosing catch is found or, failing that, the
// function epilogue is reached at Context.finish.
func (g *Goto) ResolveElse(label string) {
	g.targets[1].Value = label
}
