package lower

import "github.com/RReverser/cfg/ast"

// Block is one basic block under construction: a label and the statements
// emitted into it so far. A Block is sealed the moment a Goto terminates
// it; nothing is ever appended to ctx.cur after that point, since every
// later statement belongs to whichever block the next openBlock call
// starts.
type Block struct {
	Label string
	Body  []ast.Stmt
}

// openBlock starts a new current block with a fresh label and returns it.
func (ctx *Context) openBlock() *Block {
	b := &Block{Label: ctx.freshLabel()}
	ctx.blocks = append(ctx.blocks, b)
	ctx.cur = b
	return b
}

// emit appends stmt to the current block.
func (ctx *Context) emit(stmt ast.Stmt) {
	ctx.cur.Body = append(ctx.cur.Body, stmt)
}
