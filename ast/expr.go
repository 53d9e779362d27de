package ast

// LiteralKind distinguishes the simple literal forms the subset allows.
type LiteralKind int

const (
	StringLiteral LiteralKind = iota
	NumberLiteral
	BoolLiteral
	NullLiteral
)

// Identifier is a named local: a user variable, a synthetic temporary ($n),
// one of the synthetic per-function registers (__RESULT, __ERROR), or the
// sentinel "undefined". Identifiers are the most common reusable expression.
type Identifier struct {
	Loc
	Name string
}

func (*Identifier) exprNode() {}

// Literal is a simple literal: string, number, boolean, or null.
type Literal struct {
	Loc
	Kind  LiteralKind
	Value string // the literal's source-level textual value, already unescaped for strings
}

func (*Literal) exprNode() {}

// FunctionExpression is a (possibly anonymous) function value. Name is empty
// for an anonymous function expression. Body is populated with ordinary
// statements before lowering and with labeled blocks after.
type FunctionExpression struct {
	Loc
	Name   string
	Params []string
	Body   []Stmt
}

func (*FunctionExpression) exprNode() {}

// MemberExpression is obj.Property (Computed == false) or obj[Property]
// (Computed == true).
type MemberExpression struct {
	Loc
	Object   Expr
	Property Expr // *Identifier (as a name, not a value) when !Computed; any Expr when Computed
	Computed bool
}

func (*MemberExpression) exprNode() {}

// AssignmentExpression is always the "=" operator in this subset (compound
// assignment operators are out of scope). Target is either an *Identifier or
// a *MemberExpression.
type AssignmentExpression struct {
	Loc
	Target Expr
	Value  Expr
}

func (*AssignmentExpression) exprNode() {}

// CallExpression is Callee(Args...). Callee may itself be a MemberExpression,
// in which case the call has a receiver.
type CallExpression struct {
	Loc
	Callee Expr
	Args   []Expr
}

func (*CallExpression) exprNode() {}

// UnaryExpression is a prefix unary operator (!, -, +, ~) over a single
// operand. Update operators (++/--) are out of scope.
type UnaryExpression struct {
	Loc
	Operator string
	Operand  Expr
}

func (*UnaryExpression) exprNode() {}

// BinaryExpression is a left-associative binary operator over two operands.
// Logical short-circuit operators (&&, ||) are out of scope; every supported
// operator here is treated as non-throwing and non-short-circuiting.
type BinaryExpression struct {
	Loc
	Operator string
	Left     Expr
	Right    Expr
}

func (*BinaryExpression) exprNode() {}

// ConditionalExpression is test ? consequent : alternate. The lowerer uses
// this node kind exclusively to materialize a conditional GOTO's argument
// (test ? "Bi" : "Bj"); the parser never produces one, since the ternary
// operator is not in the input grammar.
type ConditionalExpression struct {
	Loc
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

func (*ConditionalExpression) exprNode() {}
