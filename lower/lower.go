// Package lower flattens an ECMAScript-5-subset AST into a linear sequence
// of labeled basic blocks connected by explicit GOTOs. Structured control
// flow (if/else, while, do-while, for, switch, break, continue, return,
// throw, try/catch/finally, labeled statements) is rewritten into
// sequencing, assignments to scalar locals, conditional and unconditional
// GOTO pseudo-calls, and calls to the three runtime helpers (GET_PROPERTY,
// SET_PROPERTY, CALL) that may throw.
package lower

import (
	"github.com/RReverser/cfg/ast"
	"github.com/RReverser/cfg/cerr"
)

// Options configures the lowering pass.
type Options struct {
	// DropDebugger removes DebuggerStatement nodes instead of passing them
	// through verbatim (the default).
	DropDebugger bool
}

// Lowerer holds the options shared by every Context it creates; Context
// itself holds everything scoped to a single function body, one per
// function lowered.
type Lowerer struct {
	eh   func(error)
	opts Options
}

// New returns a Lowerer. The error handler eh is invoked once, with the
// first error encountered while lowering; subsequent errors are suppressed
// since the pass aborts after the first one.
func New(eh func(error), opts Options) *Lowerer {
	return &Lowerer{eh: eh, opts: opts}
}

// Lower lowers prog, a parsed top-level program, into the flattened
// output shape: a single VariableDeclaration naming every hoisted scope
// variable, followed by the sequence of labeled basic blocks.
func Lower(prog *ast.Program, opts Options) (*ast.Program, error) {
	var firstErr error
	lo := New(func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}, opts)
	out, err := lo.lowerProgram(prog)
	if err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// lowerProgram lowers the top-level program body as if it were the body of
// an implicit top-level function: it gets its own Context, its own
// __RESULT/__ERROR registers, and its own hoisted var/function scope.
func (lo *Lowerer) lowerProgram(prog *ast.Program) (*ast.Program, error) {
	ctx := lo.newContext()
	if err := ctx.lowerFunctionBody(prog.Body); err != nil {
		return nil, err
	}
	out, err := ctx.finish()
	if err != nil {
		return nil, err
	}
	return &ast.Program{Body: out}, nil
}

// errorf reports a domain error tagged with kind: it is handed to the
// error handler and also returned, so a caller that wants to abort
// immediately can do so without threading a second channel for the same
// failure.
func (ctx *Context) errorf(kind cerr.Kind, format string, a ...interface{}) error {
	err := cerr.Errorf(kind, format, a...)
	ctx.lowerer.eh(err)
	return err
}
