package parser

import (
	"strconv"

	"github.com/RReverser/cfg/ast"
	"github.com/RReverser/cfg/lexer"
)

// === [ Expressions ] ==========================================================
//
// Precedence climbs from parseExpression (lowest) down to parsePrimary
// (highest), following the usual recursive-descent shape. Logical
// short-circuit operators (&&, ||) and the ternary conditional are not part
// of the supported grammar, so the chain stops at bitwise-or.

// parseExpression is the top-level expression entry point.
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseAssignment()
}

// parseAssignment parses `target = value`, right-associative, where target
// must be an Identifier or MemberExpression. Compound assignment operators
// are out of scope.
func (p *Parser) parseAssignment() (ast.Expr, error) {
	pos := p.pos()
	left, err := p.parseBitwiseOr()
	if err != nil {
		return nil, err
	}
	if !p.isPunct("=") {
		return left, nil
	}
	switch left.(type) {
	case *ast.Identifier, *ast.MemberExpression:
	default:
		return nil, p.errorf("invalid assignment target")
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpression{Loc: ast.Loc{Position: pos}, Target: left, Value: value}, nil
}

// binaryLevel parses one level of left-associative binary operators, given
// the operator set at this precedence and the parser for the next tighter
// level.
func (p *Parser) binaryLevel(ops map[string]bool, next func() (ast.Expr, error)) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == lexer.Punct && ops[p.tok.Literal] {
		pos := p.pos()
		op := p.tok.Literal
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Loc: ast.Loc{Position: pos}, Operator: op, Left: left, Right: right}
	}
	return left, nil
}

var (
	bitwiseOrOps  = map[string]bool{"|": true}
	bitwiseXorOps = map[string]bool{"^": true}
	bitwiseAndOps = map[string]bool{"&": true}
	equalityOps   = map[string]bool{"==": true, "!=": true, "===": true, "!==": true}
	relationalOps = map[string]bool{"<": true, "<=": true, ">": true, ">=": true}
	shiftOps      = map[string]bool{"<<": true, ">>": true}
	additiveOps   = map[string]bool{"+": true, "-": true}
	multOps       = map[string]bool{"*": true, "/": true, "%": true}
)

func (p *Parser) parseBitwiseOr() (ast.Expr, error) {
	return p.binaryLevel(bitwiseOrOps, p.parseBitwiseXor)
}

func (p *Parser) parseBitwiseXor() (ast.Expr, error) {
	return p.binaryLevel(bitwiseXorOps, p.parseBitwiseAnd)
}

func (p *Parser) parseBitwiseAnd() (ast.Expr, error) {
	return p.binaryLevel(bitwiseAndOps, p.parseEquality)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.binaryLevel(equalityOps, p.parseRelational)
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	return p.binaryLevel(relationalOps, p.parseShift)
}

func (p *Parser) parseShift() (ast.Expr, error) {
	return p.binaryLevel(shiftOps, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.binaryLevel(additiveOps, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.binaryLevel(multOps, p.parseUnary)
}

var unaryOps = map[string]bool{"!": true, "-": true, "+": true, "~": true}

// parseUnary handles the supported prefix-only unary operators. Update
// operators (++/--) and typeof/void/delete are not part of the input
// grammar.
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.tok.Kind == lexer.Punct && unaryOps[p.tok.Literal] {
		pos := p.pos()
		op := p.tok.Literal
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Loc: ast.Loc{Position: pos}, Operator: op, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of
// `.ident`, `[expr]`, and `(args)` suffixes.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		pos := p.pos()
		switch {
		case p.isPunct("."):
			if err := p.next(); err != nil {
				return nil, err
			}
			if p.tok.Kind != lexer.Ident {
				return nil, p.errorf("expected property name after '.', got %q", p.tok.Literal)
			}
			prop := ast.Ident(p.tok.Literal)
			if err := p.next(); err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Loc: ast.Loc{Position: pos}, Object: expr, Property: prop, Computed: false}
		case p.isPunct("["):
			if err := p.next(); err != nil {
				return nil, err
			}
			prop, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Loc: ast.Loc{Position: pos}, Object: expr, Property: prop, Computed: true}
		case p.isPunct("("):
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpression{Loc: ast.Loc{Position: pos}, Callee: expr, Args: args}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgs() ([]ast.Expr, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.isPunct(")") {
		arg, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.isPunct(",") {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	return args, p.expectPunct(")")
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	pos := p.pos()
	switch {
	case p.tok.Kind == lexer.Ident:
		name := p.tok.Literal
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Loc: ast.Loc{Position: pos}, Name: name}, nil

	case p.tok.Kind == lexer.Number:
		lit := p.tok.Literal
		if _, err := strconv.ParseFloat(lit, 64); err != nil {
			return nil, p.errorf("malformed number literal %q", lit)
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.Literal{Loc: ast.Loc{Position: pos}, Kind: ast.NumberLiteral, Value: lit}, nil

	case p.tok.Kind == lexer.String:
		lit := p.tok.Literal
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.Literal{Loc: ast.Loc{Position: pos}, Kind: ast.StringLiteral, Value: lit}, nil

	case p.isKeyword("true") || p.isKeyword("false"):
		lit := p.tok.Literal
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.Literal{Loc: ast.Loc{Position: pos}, Kind: ast.BoolLiteral, Value: lit}, nil

	case p.isKeyword("null"):
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.Literal{Loc: ast.Loc{Position: pos}, Kind: ast.NullLiteral, Value: "null"}, nil

	case p.isKeyword("undefined"):
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Loc: ast.Loc{Position: pos}, Name: "undefined"}, nil

	case p.isKeyword("function"):
		fn, _, err := p.parseFunctionRest(false)
		return fn, err

	case p.isPunct("("):
		if err := p.next(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return expr, p.expectPunct(")")

	default:
		return nil, p.errorf("unexpected token %q in expression", p.tok.Literal)
	}
}
