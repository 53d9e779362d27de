package lower

import "fmt"

// Context owns everything scoped to one function body being lowered: its
// hoisted scope variables, its temporary register pool, the list of basic
// blocks it has opened so far, its label stack, and the pending-jump
// queues for returns and throws that escape every enclosing try frame.
// lowerFunctionLiteral opens a fresh Context per function; nothing here
// is shared between sibling functions.
type Context struct {
	lowerer *Lowerer

	scopeNames []string
	scopeSet   map[string]bool

	temps *tempPool

	blocks    []*Block
	cur       *Block
	nextBlock int

	labelStack []*LabelFrame

	// pendingReturns and pendingThrows collect jump handles whose target
	// block is not known until the function body has been fully walked:
	// every `return` and every `throw` that is not caught by an enclosing
	// try resolves here, into the function's single epilogue block.
	pendingReturns []*Goto
	pendingThrows  []*Goto
}

// newContext returns a Context for a fresh function body, pre-seeded with
// the two synthetic per-function registers every lowered function needs.
func (lo *Lowerer) newContext() *Context {
	ctx := &Context{
		lowerer:  lo,
		scopeSet: make(map[string]bool),
		temps:    newTempPool(),
	}
	ctx.declareScopeVar("__RESULT")
	ctx.declareScopeVar("__ERROR")
	return ctx
}

// declareScopeVar adds name to the function's hoisted `var` prologue if it
// is not already present.
func (ctx *Context) declareScopeVar(name string) {
	if ctx.scopeSet[name] {
		return
	}
	ctx.scopeSet[name] = true
	ctx.scopeNames = append(ctx.scopeNames, name)
}

// freshLabel returns the next unused block label, "B0", "B1", ... Label
// uniqueness across the function body follows directly from the counter
// never being reset or reused.
func (ctx *Context) freshLabel() string {
	label := fmt.Sprintf("B%d", ctx.nextBlock)
	ctx.nextBlock++
	return label
}
