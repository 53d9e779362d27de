package lower

import "github.com/RReverser/cfg/cerr"

// Error is satisfied by every error this package deliberately reports;
// re-exported from cerr so a caller never needs to import cerr itself just
// to branch on Kind().
type Error = cerr.Error

// unsupportedf reports that the input (or an attempted lowering of it)
// uses a node kind outside the supported subset.
func (ctx *Context) unsupportedf(format string, a ...interface{}) error {
	return ctx.errorf(cerr.UnsupportedNode, format, a...)
}

// invalidContinuef reports a `continue` naming a label that matches no
// loop frame on the label stack.
func (ctx *Context) invalidContinuef(format string, a ...interface{}) error {
	return ctx.errorf(cerr.InvalidContinue, format, a...)
}

// invariantViolatedf reports an internal defect: unbalanced temporaries,
// an unresolved jump handle, or a non-empty label stack at finalization.
func (ctx *Context) invariantViolatedf(format string, a ...interface{}) error {
	return ctx.errorf(cerr.InvariantViolated, format, a...)
}
