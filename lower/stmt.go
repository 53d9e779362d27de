package lower

import "github.com/RReverser/cfg/ast"

// lowerStmt dispatches a single statement to its control-flow skeleton,
// driving the block writer and the jump-handle and temp pools as it
// goes.
func (ctx *Context) lowerStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		v, err := ctx.lowerExpr(s.Expression)
		if err != nil {
			return err
		}
		ctx.release(v)
		return nil

	case *ast.EmptyStatement:
		return nil

	case *ast.DebuggerStatement:
		if !ctx.lowerer.opts.DropDebugger {
			ctx.emit(s)
		}
		return nil

	case *ast.BlockStatement:
		return ctx.lowerBlockBody(s.Body)

	case *ast.VariableDeclaration:
		return ctx.lowerVarDecl(s)

	case *ast.FunctionDeclaration:
		// Already materialized in the function prologue by
		// lowerFunctionBody; nothing to do at its textual position.
		return nil

	case *ast.IfStatement:
		return ctx.lowerIfStmt(s)

	case *ast.WhileStatement:
		return ctx.lowerWhileStmt(s, "")

	case *ast.DoWhileStatement:
		return ctx.lowerDoWhileStmt(s, "")

	case *ast.ForStatement:
		return ctx.lowerForStmt(s, "")

	case *ast.SwitchStatement:
		return ctx.lowerSwitchStmt(s, "")

	case *ast.BreakStatement:
		return ctx.lowerBreakStmt(s)

	case *ast.ContinueStatement:
		return ctx.lowerContinueStmt(s)

	case *ast.ReturnStatement:
		return ctx.lowerReturnStmt(s)

	case *ast.ThrowStatement:
		return ctx.lowerThrowStmt(s)

	case *ast.LabeledStatement:
		return ctx.lowerLabeledStmt(s)

	case *ast.TryStatement:
		return ctx.lowerTryStmt(s)

	default:
		return ctx.unsupportedf("lower: unsupported statement node %T", s)
	}
}

// lowerBlockBody lowers a statement list in order, with no block boundary
// of its own: a BlockStatement's body is just its statements spliced into
// whatever block is current when it is entered.
func (ctx *Context) lowerBlockBody(body []ast.Stmt) error {
	for _, stmt := range body {
		if err := ctx.lowerStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *Context) lowerVarDecl(s *ast.VariableDeclaration) error {
	for _, d := range s.Declarations {
		if d.Init == nil {
			continue
		}
		v, err := ctx.lowerExpr(d.Init)
		if err != nil {
			return err
		}
		ctx.emit(ast.NewAssign(ast.Ident(d.Name), v.expr))
		ctx.release(v)
	}
	return nil
}

// lowerIfStmt opens the consequent as the conditional's fall-through
// path, so it needs no jump of its own; only a present alternate needs an
// extra unconditional jump past it to the merge point.
func (ctx *Context) lowerIfStmt(s *ast.IfStatement) error {
	test, err := ctx.lowerExpr(s.Test)
	if err != nil {
		return err
	}
	g := ctx.newGotoConditional(test.expr)
	ctx.release(test)

	cons := ctx.openBlock()
	g.ResolveTo(cons.Label)
	if err := ctx.lowerStmt(s.Consequent); err != nil {
		return err
	}

	if s.Alternate != nil {
		fulfill := ctx.newGotoUnconditional()

		alt := ctx.openBlock()
		g.ResolveElse(alt.Label)
		if err := ctx.lowerStmt(s.Alternate); err != nil {
			return err
		}

		merge := ctx.openBlock()
		fulfill.ResolveTo(merge.Label)
		return nil
	}

	merge := ctx.openBlock()
	g.ResolveElse(merge.Label)
	return nil
}

// lowerWhileStmt. The loop head is also the continue target: continuing
// re-tests the condition rather than skipping to an update step, since
// while has none.
func (ctx *Context) lowerWhileStmt(s *ast.WhileStatement, label string) error {
	head := ctx.openBlock()
	test, err := ctx.lowerExpr(s.Test)
	if err != nil {
		return err
	}
	g := ctx.newGotoConditional(test.expr)
	ctx.release(test)

	body := ctx.openBlock()
	g.ResolveTo(body.Label)

	f := ctx.pushFrame(label, true, head.Label)
	err = ctx.lowerStmt(s.Body)
	ctx.popFrame()
	if err != nil {
		return err
	}

	ctx.emit(ast.NewGotoUnconditional(head.Label))

	exit := ctx.openBlock()
	g.ResolveElse(exit.Label)
	ctx.resolveBreaks(f, exit.Label)
	return nil
}

// lowerDoWhileStmt. The continue target is the body's own entry block,
// not the test: a continue re-runs the body unconditionally rather than
// re-testing first.
func (ctx *Context) lowerDoWhileStmt(s *ast.DoWhileStatement, label string) error {
	body := ctx.openBlock()

	f := ctx.pushFrame(label, true, body.Label)
	err := ctx.lowerStmt(s.Body)
	ctx.popFrame()
	if err != nil {
		return err
	}

	test, err := ctx.lowerExpr(s.Test)
	if err != nil {
		return err
	}
	g := ctx.newGotoConditional(test.expr)
	ctx.release(test)
	g.ResolveTo(body.Label)

	exit := ctx.openBlock()
	g.ResolveElse(exit.Label)
	ctx.resolveBreaks(f, exit.Label)
	return nil
}

// lowerForStmt opens a dedicated update block between the body and the
// back-edge to the head, so that a continue can land on it directly: the
// update still runs, and the loop still re-tests, exactly as normal
// completion of the body does by falling through into the same block.
func (ctx *Context) lowerForStmt(s *ast.ForStatement, label string) error {
	if s.Init != nil {
		if err := ctx.lowerStmt(s.Init); err != nil {
			return err
		}
	}

	head := ctx.openBlock()
	var g *Goto
	if s.Test != nil {
		test, err := ctx.lowerExpr(s.Test)
		if err != nil {
			return err
		}
		g = ctx.newGotoConditional(test.expr)
		ctx.release(test)

		body := ctx.openBlock()
		g.ResolveTo(body.Label)
	}

	f := ctx.pushFrame(label, true, "")
	err := ctx.lowerStmt(s.Body)
	ctx.popFrame()
	if err != nil {
		return err
	}

	update := ctx.openBlock()
	ctx.resolveContinues(f, update.Label)
	if s.Update != nil {
		v, err := ctx.lowerExpr(s.Update)
		if err != nil {
			return err
		}
		ctx.release(v)
	}
	ctx.emit(ast.NewGotoUnconditional(head.Label))

	exit := ctx.openBlock()
	if g != nil {
		g.ResolveElse(exit.Label)
	}
	ctx.resolveBreaks(f, exit.Label)
	return nil
}

// lowerSwitchStmt threads a chain of equality tests over the cases in
// source order, then emits their bodies as a second, separate pass so
// that a case with no break falls through into the next case's body by
// ordinary block-emission order.
//
// The default clause (if present) is always emitted last, after every
// non-default body, regardless of its position in the source. This
// matches a switch whose default is textually last (the common case);
// a default written earlier in the source that falls through (no break)
// into a case textually following it will instead jump straight to the
// switch's exit. See DESIGN.md.
func (ctx *Context) lowerSwitchStmt(s *ast.SwitchStatement, label string) error {
	var nonDefault []*ast.SwitchCase
	var defaultCase *ast.SwitchCase
	for _, c := range s.Cases {
		if c.Test == nil {
			defaultCase = c
		} else {
			nonDefault = append(nonDefault, c)
		}
	}

	disc, err := ctx.lowerExpr(s.Discriminant)
	if err != nil {
		return err
	}
	d := ctx.materialize(disc)
	for i := 1; i < len(nonDefault); i++ {
		d.temp.retain()
	}
	if len(nonDefault) == 0 {
		ctx.release(d)
	}

	f := ctx.pushFrame(label, false, "")

	thenGotos := make([]*Goto, len(nonDefault))
	var fallback *Goto
	for i, c := range nonDefault {
		test, err := ctx.lowerExpr(c.Test)
		if err != nil {
			ctx.popFrame()
			return err
		}
		cmp := ctx.temps.useTempVar()
		ctx.emit(ast.NewAssign(ast.Ident(cmp.Name), &ast.BinaryExpression{Operator: "===", Left: d.expr, Right: test.expr}))
		ctx.release(d)
		ctx.release(test)

		g := ctx.newGotoConditional(ast.Ident(cmp.Name))
		ctx.release(value{expr: ast.Ident(cmp.Name), temp: cmp})
		thenGotos[i] = g

		if i+1 < len(nonDefault) {
			next := ctx.openBlock()
			g.ResolveElse(next.Label)
		} else {
			fallback = g
		}
	}

	for i, c := range nonDefault {
		body := ctx.openBlock()
		thenGotos[i].ResolveTo(body.Label)
		if err := ctx.lowerBlockBody(c.Consequent); err != nil {
			ctx.popFrame()
			return err
		}
	}

	if defaultCase != nil {
		body := ctx.openBlock()
		if fallback != nil {
			fallback.ResolveElse(body.Label)
		}
		if err := ctx.lowerBlockBody(defaultCase.Consequent); err != nil {
			ctx.popFrame()
			return err
		}
		jumpOut := ctx.newGotoUnconditional()

		exit := ctx.openBlock()
		jumpOut.ResolveTo(exit.Label)
		ctx.resolveBreaks(f, exit.Label)
		ctx.popFrame()
		return nil
	}

	exit := ctx.openBlock()
	if fallback != nil {
		fallback.ResolveElse(exit.Label)
	}
	ctx.resolveBreaks(f, exit.Label)
	ctx.popFrame()
	return nil
}

func (ctx *Context) lowerBreakStmt(s *ast.BreakStatement) error {
	f, ok := ctx.findBreakFrame(s.Label)
	if !ok {
		return ctx.unsupportedf("break targets no enclosing loop, switch, or label %q", s.Label)
	}
	g := ctx.newGotoUnconditional()
	f.pendingBreaks = append(f.pendingBreaks, g)
	ctx.openBlock()
	return nil
}

func (ctx *Context) lowerContinueStmt(s *ast.ContinueStatement) error {
	f, ok := ctx.findContinueFrame(s.Label)
	if !ok || !f.continuable {
		return ctx.invalidContinuef("continue names no enclosing loop (label %q)", s.Label)
	}
	if f.continueLabel != "" {
		ctx.emit(ast.NewGotoUnconditional(f.continueLabel))
	} else {
		g := ctx.newGotoUnconditional()
		f.pendingContinues = append(f.pendingContinues, g)
	}
	ctx.openBlock()
	return nil
}

func (ctx *Context) lowerReturnStmt(s *ast.ReturnStatement) error {
	if s.Argument != nil {
		v, err := ctx.lowerExpr(s.Argument)
		if err != nil {
			return err
		}
		ctx.emit(ast.NewAssign(ast.Ident("__RESULT"), v.expr))
		ctx.release(v)
	}
	g := ctx.newGotoUnconditional()
	ctx.pendingReturns = append(ctx.pendingReturns, g)
	ctx.openBlock()
	return nil
}

func (ctx *Context) lowerThrowStmt(s *ast.ThrowStatement) error {
	v, err := ctx.lowerExpr(s.Argument)
	if err != nil {
		return err
	}
	ctx.emit(ast.NewAssign(ast.Ident("__ERROR"), v.expr))
	ctx.release(v)

	g := ctx.newGotoUnconditional()
	ctx.pendingThrows = append(ctx.pendingThrows, g)
	ctx.openBlock()
	return nil
}

// lowerLabeledStmt pushes a label frame around a loop or switch body (so
// it can be targeted by name as well as being the innermost unlabeled
// target) or, for a bare labeled block, a break-only frame with no loop
// underneath it at all.
func (ctx *Context) lowerLabeledStmt(s *ast.LabeledStatement) error {
	switch body := s.Body.(type) {
	case *ast.WhileStatement:
		return ctx.lowerWhileStmt(body, s.Label)
	case *ast.DoWhileStatement:
		return ctx.lowerDoWhileStmt(body, s.Label)
	case *ast.ForStatement:
		return ctx.lowerForStmt(body, s.Label)
	case *ast.SwitchStatement:
		return ctx.lowerSwitchStmt(body, s.Label)
	default:
		f := ctx.pushFrame(s.Label, false, "")
		if err := ctx.lowerStmt(s.Body); err != nil {
			ctx.popFrame()
			return err
		}
		exit := ctx.openBlock()
		ctx.resolveBreaks(f, exit.Label)
		ctx.popFrame()
		return nil
	}
}

// lowerTryStmt lowers the protected block first, with every throw it
// produces landing in the function's ordinary pendingThrows queue; a
// present handler then reclaims whatever entries are new since entering
// the try (nesting needs no explicit catch stack, just this slice
// bookkeeping) and, only if it actually caught something, lowers the
// handler body on that path. The finalizer is inlined only on the
// normal-completion path out of the try/catch, not re-spliced into every
// abrupt exit.
func (ctx *Context) lowerTryStmt(s *ast.TryStatement) error {
	before := len(ctx.pendingThrows)
	if err := ctx.lowerBlockBody(s.Block.Body); err != nil {
		return err
	}

	if s.Handler != nil {
		caught := append([]*Goto(nil), ctx.pendingThrows[before:]...)
		ctx.pendingThrows = ctx.pendingThrows[:before]

		if len(caught) > 0 {
			allGood := ctx.newGotoUnconditional()

			handler := ctx.openBlock()
			for _, g := range caught {
				g.ResolveTo(handler.Label)
			}

			ctx.declareScopeVar(s.Handler.Param)
			ctx.emit(ast.NewAssign(ast.Ident(s.Handler.Param), ast.Ident("__ERROR")))
			ctx.emit(ast.NewAssign(ast.Ident("__ERROR"), ast.Undefined()))

			if err := ctx.lowerBlockBody(s.Handler.Body.Body); err != nil {
				return err
			}

			after := ctx.openBlock()
			allGood.ResolveTo(after.Label)
		}
	}

	if s.Finalizer != nil {
		return ctx.lowerBlockBody(s.Finalizer.Body)
	}
	return nil
}
