package ast

// This file holds the constructors the emitter calls while lowering, named
// after the runtime operation each represents rather than after the
// underlying node kind. `lower` still builds a few node literals itself:
// the conditional GOTO (in goto.go) and the unary/binary operations and
// switch-case comparisons it assigns into temporaries.

// Undefined is the sentinel identifier denoting the undefined value. It is a
// reusable expression since it carries no mutable state.
func Undefined() *Identifier {
	return &Identifier{Name: "undefined"}
}

// Ident returns a reference to the named local.
func Ident(name string) *Identifier {
	return &Identifier{Name: name}
}

// StringLit returns a reusable string literal.
func StringLit(value string) *Literal {
	return &Literal{Kind: StringLiteral, Value: value}
}

// NewAssign builds `target = value;` as a statement.
func NewAssign(target Expr, value Expr) *ExpressionStatement {
	return &ExpressionStatement{Expression: &AssignmentExpression{Target: target, Value: value}}
}

// NewExprStmt wraps expr as a statement whose value is discarded.
func NewExprStmt(expr Expr) *ExpressionStatement {
	return &ExpressionStatement{Expression: expr}
}

// NewCall builds a bare call expression helper(args...), used both for the
// three runtime helpers (GET_PROPERTY, SET_PROPERTY, CALL) and for GOTO.
func NewCall(callee string, args ...Expr) *CallExpression {
	return &CallExpression{Callee: Ident(callee), Args: args}
}

// NewCallStmt builds helper(args...) as a bare statement (its result, if any,
// is discarded; used for GET_PROPERTY/SET_PROPERTY/CALL, whose actual result
// is read back out of __RESULT by the caller, not from the call expression).
func NewCallStmt(callee string, args ...Expr) *ExpressionStatement {
	return NewExprStmt(NewCall(callee, args...))
}

// gotoHelper is the name of the pseudo-call a Goto handle materializes into.
const gotoHelper = "GOTO"

// NewGotoUnconditional builds `GOTO("B<target>");` as a statement.
func NewGotoUnconditional(targetLabel string) *ExpressionStatement {
	return NewCallStmt(gotoHelper, StringLit(targetLabel))
}

// NewLabeledBlock wraps body as the labeled basic block "B<label>".
func NewLabeledBlock(label string, body []Stmt) *LabeledStatement {
	return &LabeledStatement{
		Label: label,
		Body:  &BlockStatement{Body: body},
	}
}

// NewVarDecl builds the single `var` prologue listing every scope variable by
// name, with no initializers.
func NewVarDecl(names []string) *VariableDeclaration {
	decls := make([]*VariableDeclarator, len(names))
	for i, name := range names {
		decls[i] = &VariableDeclarator{Name: name}
	}
	return &VariableDeclaration{Declarations: decls}
}
