package lower

import "github.com/RReverser/cfg/ast"

// value is a reusable expression already materialized in the output:
// something the caller can embed directly wherever it needs to read the
// computed value again, as many times as needed before release. temp is
// non-nil whenever expr is backed by pool-managed state (an allocated
// temporary, or a shadowed named local) that release must account for;
// it is nil only for a bare Literal or a freshly lowered FunctionExpression,
// neither of which carries any pool bookkeeping.
type value struct {
	expr ast.Expr
	temp *Temp
}

// release returns v's backing Temp, if any, to the pool.
func (ctx *Context) release(v value) {
	if v.temp != nil {
		ctx.temps.freeTempVar(v.temp)
	}
}

// materialize forces v into a named, multiply-readable local: a bare
// Literal has no name to retain(), so a second read first assigns it into
// a fresh temporary. Every other value kind is already name-backed.
func (ctx *Context) materialize(v value) value {
	if v.temp != nil {
		return v
	}
	t := ctx.temps.useTempVar()
	ctx.emit(ast.NewAssign(ast.Ident(t.Name), v.expr))
	return value{expr: ast.Ident(t.Name), temp: t}
}

// emitThrowCheck emits the conditional GOTO every GET_PROPERTY/
// SET_PROPERTY/CALL invocation is followed by: on a truthy __ERROR the
// frame defers to pendingThrows, to be resolved once either an enclosing
// try/catch claims it or, failing that, the function's epilogue block is
// known. A try statement lowers its
// protected block first and then reclaims whatever new pendingThrows
// entries appeared during that lowering, so nesting falls out of ordinary
// slice bookkeeping rather than an explicit catch stack.
func (ctx *Context) emitThrowCheck() {
	g := ctx.newGotoConditional(ast.Ident("__ERROR"))
	cont := ctx.openBlock()
	g.ResolveElse(cont.Label)
	ctx.pendingThrows = append(ctx.pendingThrows, g)
}

// execForeign emits call (one of the three runtime helpers), runs the
// throw-check protocol after it, and reads the helper's result out of
// __RESULT into a fresh temporary.
func (ctx *Context) execForeign(call *ast.ExpressionStatement) value {
	ctx.emit(call)
	ctx.emitThrowCheck()
	t := ctx.temps.useTempVar()
	ctx.emit(ast.NewAssign(ast.Ident(t.Name), ast.Ident("__RESULT")))
	return value{expr: ast.Ident(t.Name), temp: t}
}

// lowerExpr lowers a single expression into a reusable value, emitting
// whatever statements are needed to compute it into the current block
// (and, for anything that can throw, spilling into however many
// continuation blocks the throw-check protocol requires).
func (ctx *Context) lowerExpr(expr ast.Expr) (value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return value{expr: e}, nil

	case *ast.Identifier:
		return value{expr: e, temp: ctx.temps.shadowVar(e.Name)}, nil

	case *ast.FunctionExpression:
		fn, err := ctx.lowerFunctionLiteral(e)
		if err != nil {
			return value{}, err
		}
		return value{expr: fn}, nil

	case *ast.UnaryExpression:
		return ctx.lowerUnaryExpr(e)

	case *ast.BinaryExpression:
		return ctx.lowerBinaryExpr(e)

	case *ast.MemberExpression:
		return ctx.lowerMemberExpr(e)

	case *ast.AssignmentExpression:
		return ctx.lowerAssignmentExpr(e)

	case *ast.CallExpression:
		return ctx.lowerCallExpr(e)

	case *ast.ConditionalExpression:
		return value{}, ctx.invariantViolatedf("ConditionalExpression reached lowerExpr; it is synthesized only as a GOTO argument, never lowered as a general sub-expression")

	default:
		return value{}, ctx.unsupportedf("lower: unsupported expression node %T", e)
	}
}

func (ctx *Context) lowerUnaryExpr(e *ast.UnaryExpression) (value, error) {
	operand, err := ctx.lowerExpr(e.Operand)
	if err != nil {
		return value{}, err
	}
	defer ctx.release(operand)

	t := ctx.temps.useTempVar()
	ctx.emit(ast.NewAssign(ast.Ident(t.Name), &ast.UnaryExpression{Operator: e.Operator, Operand: operand.expr}))
	return value{expr: ast.Ident(t.Name), temp: t}, nil
}

func (ctx *Context) lowerBinaryExpr(e *ast.BinaryExpression) (value, error) {
	left, err := ctx.lowerExpr(e.Left)
	if err != nil {
		return value{}, err
	}
	right, err := ctx.lowerExpr(e.Right)
	if err != nil {
		ctx.release(left)
		return value{}, err
	}
	defer ctx.release(left)
	defer ctx.release(right)

	t := ctx.temps.useTempVar()
	ctx.emit(ast.NewAssign(ast.Ident(t.Name), &ast.BinaryExpression{Operator: e.Operator, Left: left.expr, Right: right.expr}))
	return value{expr: ast.Ident(t.Name), temp: t}, nil
}

// lowerPropertyName lowers a MemberExpression's Property into the string
// or index expression GET_PROPERTY/SET_PROPERTY expect as their second
// argument: a bare name for `.Property`, the lowered key expression for
// `[Property]`.
func (ctx *Context) lowerPropertyName(m *ast.MemberExpression) (value, error) {
	if !m.Computed {
		id := m.Property.(*ast.Identifier)
		return value{expr: ast.StringLit(id.Name)}, nil
	}
	return ctx.lowerExpr(m.Property)
}

func (ctx *Context) lowerMemberExpr(e *ast.MemberExpression) (value, error) {
	obj, err := ctx.lowerExpr(e.Object)
	if err != nil {
		return value{}, err
	}
	prop, err := ctx.lowerPropertyName(e)
	if err != nil {
		ctx.release(obj)
		return value{}, err
	}
	defer ctx.release(obj)
	defer ctx.release(prop)

	return ctx.execForeign(ast.NewCallStmt("GET_PROPERTY", obj.expr, prop.expr)), nil
}

func (ctx *Context) lowerAssignmentExpr(e *ast.AssignmentExpression) (value, error) {
	switch target := e.Target.(type) {
	case *ast.Identifier:
		rhs, err := ctx.lowerExpr(e.Value)
		if err != nil {
			return value{}, err
		}
		ctx.emit(ast.NewAssign(target, rhs.expr))
		ctx.release(rhs)
		return value{expr: target, temp: ctx.temps.shadowVar(target.Name)}, nil

	case *ast.MemberExpression:
		obj, err := ctx.lowerExpr(target.Object)
		if err != nil {
			return value{}, err
		}
		prop, err := ctx.lowerPropertyName(target)
		if err != nil {
			ctx.release(obj)
			return value{}, err
		}
		rhs, err := ctx.lowerExpr(e.Value)
		if err != nil {
			ctx.release(obj)
			ctx.release(prop)
			return value{}, err
		}
		rhs = ctx.materialize(rhs)
		rhs.temp.retain() // read once as SET_PROPERTY's argument, once more as this expression's result

		ctx.emit(ast.NewCallStmt("SET_PROPERTY", obj.expr, prop.expr, rhs.expr))
		ctx.emitThrowCheck()

		ctx.release(obj)
		ctx.release(prop)
		ctx.release(rhs) // the SET_PROPERTY-embedded read; the other is the caller's eventual release of the returned value
		return rhs, nil

	default:
		return value{}, ctx.invariantViolatedf("assignment target %T is neither an Identifier nor a MemberExpression", target)
	}
}

func (ctx *Context) lowerCallExpr(e *ast.CallExpression) (value, error) {
	if member, ok := e.Callee.(*ast.MemberExpression); ok {
		return ctx.lowerMethodCallExpr(e, member)
	}

	callee, err := ctx.lowerExpr(e.Callee)
	if err != nil {
		return value{}, err
	}
	args, err := ctx.lowerArgs(e.Args)
	if err != nil {
		ctx.release(callee)
		return value{}, err
	}
	defer ctx.release(callee)
	defer ctx.releaseAll(args)

	return ctx.execForeign(ast.NewCallStmt("CALL", append([]ast.Expr{callee.expr, ast.Undefined()}, exprsOf(args)...)...)), nil
}

func (ctx *Context) lowerMethodCallExpr(e *ast.CallExpression, member *ast.MemberExpression) (value, error) {
	obj, err := ctx.lowerExpr(member.Object)
	if err != nil {
		return value{}, err
	}
	obj = ctx.materialize(obj)
	obj.temp.retain() // read once to fetch the method, once more as the receiver

	prop, err := ctx.lowerPropertyName(member)
	if err != nil {
		ctx.release(obj)
		ctx.release(obj)
		return value{}, err
	}

	fn := ctx.execForeign(ast.NewCallStmt("GET_PROPERTY", obj.expr, prop.expr))
	ctx.release(prop)
	ctx.release(obj) // the GET_PROPERTY-embedded read; the receiver read below is the second and last

	args, err := ctx.lowerArgs(e.Args)
	if err != nil {
		ctx.release(obj)
		ctx.release(fn)
		return value{}, err
	}
	defer ctx.release(obj)
	defer ctx.release(fn)
	defer ctx.releaseAll(args)

	return ctx.execForeign(ast.NewCallStmt("CALL", append([]ast.Expr{fn.expr, obj.expr}, exprsOf(args)...)...)), nil
}

func (ctx *Context) lowerArgs(args []ast.Expr) ([]value, error) {
	vals := make([]value, 0, len(args))
	for _, a := range args {
		v, err := ctx.lowerExpr(a)
		if err != nil {
			ctx.releaseAll(vals)
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func (ctx *Context) releaseAll(vals []value) {
	for _, v := range vals {
		ctx.release(v)
	}
}

func exprsOf(vals []value) []ast.Expr {
	exprs := make([]ast.Expr, len(vals))
	for i, v := range vals {
		exprs[i] = v.expr
	}
	return exprs
}
