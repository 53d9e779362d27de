package parser

import (
	"github.com/RReverser/cfg/ast"
	"github.com/RReverser/cfg/lexer"
)

// === [ Statements ] ==========================================================

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.isPunct("{"):
		return p.parseBlock()
	case p.isPunct(";"):
		return p.parseEmpty()
	case p.isKeyword("var"):
		return p.parseVarDecl()
	case p.isKeyword("function"):
		return p.parseFunctionDeclaration()
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("do"):
		return p.parseDoWhile()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("switch"):
		return p.parseSwitch()
	case p.isKeyword("break"):
		return p.parseBreak()
	case p.isKeyword("continue"):
		return p.parseContinue()
	case p.isKeyword("return"):
		return p.parseReturn()
	case p.isKeyword("throw"):
		return p.parseThrow()
	case p.isKeyword("try"):
		return p.parseTry()
	case p.isKeyword("debugger"):
		return p.parseDebugger()
	default:
		return p.parseLabeledOrExpressionStatement()
	}
}

func (p *Parser) parseEmpty() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.next(); err != nil {
		return nil, err
	}
	return &ast.EmptyStatement{Loc: ast.Loc{Position: pos}}, nil
}

func (p *Parser) parseDebugger() (ast.Stmt, error) {
	pos := p.pos()
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.consumeOptionalSemi(); err != nil {
		return nil, err
	}
	return &ast.DebuggerStatement{Loc: ast.Loc{Position: pos}}, nil
}

func (p *Parser) parseBlock() (*ast.BlockStatement, error) {
	pos := p.pos()
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	blk := &ast.BlockStatement{Loc: ast.Loc{Position: pos}}
	for !p.isPunct("}") {
		if p.tok.Kind == lexer.EOF {
			return nil, p.errorf("unterminated block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		blk.Body = append(blk.Body, stmt)
	}
	return blk, p.expectPunct("}")
}

func (p *Parser) parseVarDecl() (*ast.VariableDeclaration, error) {
	pos := p.pos()
	if err := p.next(); err != nil { // consume "var"
		return nil, err
	}
	decl := &ast.VariableDeclaration{Loc: ast.Loc{Position: pos}}
	for {
		declPos := p.pos()
		if p.tok.Kind != lexer.Ident {
			return nil, p.errorf("expected identifier in var declaration, got %q", p.tok.Literal)
		}
		name := p.tok.Literal
		if err := p.next(); err != nil {
			return nil, err
		}
		d := &ast.VariableDeclarator{Loc: ast.Loc{Position: declPos}, Name: name}
		if p.isPunct("=") {
			if err := p.next(); err != nil {
				return nil, err
			}
			init, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			d.Init = init
		}
		decl.Declarations = append(decl.Declarations, d)
		if !p.isPunct(",") {
			break
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return decl, p.consumeOptionalSemi()
}

func (p *Parser) parseParamList() ([]string, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var params []string
	for !p.isPunct(")") {
		if p.tok.Kind != lexer.Ident {
			return nil, p.errorf("expected parameter name, got %q", p.tok.Literal)
		}
		params = append(params, p.tok.Literal)
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.isPunct(",") {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	return params, p.expectPunct(")")
}

func (p *Parser) parseFunctionDeclaration() (*ast.FunctionDeclaration, error) {
	fn, pos, err := p.parseFunctionRest(true)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{Loc: ast.Loc{Position: pos}, Name: fn.Name, Function: fn}, nil
}

// parseFunctionRest parses the `function` keyword onward, shared by
// FunctionDeclaration and FunctionExpression. requireName enforces that a
// name follows `function` (true for declarations, false for expressions,
// where a name is optional).
func (p *Parser) parseFunctionRest(requireName bool) (*ast.FunctionExpression, ast.Position, error) {
	pos := p.pos()
	if err := p.next(); err != nil { // consume "function"
		return nil, pos, err
	}
	var name string
	if p.tok.Kind == lexer.Ident {
		name = p.tok.Literal
		if err := p.next(); err != nil {
			return nil, pos, err
		}
	} else if requireName {
		return nil, pos, p.errorf("expected function name, got %q", p.tok.Literal)
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, pos, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, pos, err
	}
	return &ast.FunctionExpression{Loc: ast.Loc{Position: pos}, Name: name, Params: params, Body: body.Body}, pos, nil
}

func (p *Parser) parseIf() (*ast.IfStatement, error) {
	pos := p.pos()
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	cons, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Loc: ast.Loc{Position: pos}, Test: test, Consequent: cons}
	if p.isKeyword("else") {
		if err := p.next(); err != nil {
			return nil, err
		}
		alt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.Alternate = alt
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (*ast.WhileStatement, error) {
	pos := p.pos()
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Loc: ast.Loc{Position: pos}, Test: test, Body: body}, nil
}

func (p *Parser) parseDoWhile() (*ast.DoWhileStatement, error) {
	pos := p.pos()
	if err := p.next(); err != nil { // consume "do"
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if !p.isKeyword("while") {
		return nil, p.errorf("expected 'while' after do-block, got %q", p.tok.Literal)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &ast.DoWhileStatement{Loc: ast.Loc{Position: pos}, Test: test, Body: body}, p.consumeOptionalSemi()
}

func (p *Parser) parseFor() (*ast.ForStatement, error) {
	pos := p.pos()
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	stmt := &ast.ForStatement{Loc: ast.Loc{Position: pos}}
	if !p.isPunct(";") {
		if p.isKeyword("var") {
			init, err := p.parseVarDecl()
			if err != nil {
				return nil, err
			}
			stmt.Init = init
		} else {
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			stmt.Init = &ast.ExpressionStatement{Expression: expr}
			if err := p.expectPunct(";"); err != nil {
				return nil, err
			}
		}
	} else {
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if !p.isPunct(";") {
		test, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Test = test
	}
	if err := p.expectPunct(";"); err != nil {
		return nil, err
	}
	if !p.isPunct(")") {
		update, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Update = update
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) parseSwitch() (*ast.SwitchStatement, error) {
	pos := p.pos()
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	disc, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	stmt := &ast.SwitchStatement{Loc: ast.Loc{Position: pos}, Discriminant: disc}
	sawDefault := false
	for !p.isPunct("}") {
		casePos := p.pos()
		c := &ast.SwitchCase{Loc: ast.Loc{Position: casePos}}
		switch {
		case p.isKeyword("case"):
			if err := p.next(); err != nil {
				return nil, err
			}
			test, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			c.Test = test
		case p.isKeyword("default"):
			if sawDefault {
				return nil, p.errorf("switch statement may have at most one default clause")
			}
			sawDefault = true
			if err := p.next(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf("expected 'case' or 'default', got %q", p.tok.Literal)
		}
		if err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		for !p.isKeyword("case") && !p.isKeyword("default") && !p.isPunct("}") {
			s, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			c.Consequent = append(c.Consequent, s)
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	return stmt, p.expectPunct("}")
}

func (p *Parser) parseBreak() (*ast.BreakStatement, error) {
	pos := p.pos()
	if err := p.next(); err != nil {
		return nil, err
	}
	stmt := &ast.BreakStatement{Loc: ast.Loc{Position: pos}}
	if p.tok.Kind == lexer.Ident && p.tok.Line == pos.Line {
		stmt.Label = p.tok.Literal
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return stmt, p.consumeOptionalSemi()
}

func (p *Parser) parseContinue() (*ast.ContinueStatement, error) {
	pos := p.pos()
	if err := p.next(); err != nil {
		return nil, err
	}
	stmt := &ast.ContinueStatement{Loc: ast.Loc{Position: pos}}
	if p.tok.Kind == lexer.Ident && p.tok.Line == pos.Line {
		stmt.Label = p.tok.Literal
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return stmt, p.consumeOptionalSemi()
}

func (p *Parser) parseReturn() (*ast.ReturnStatement, error) {
	pos := p.pos()
	if err := p.next(); err != nil {
		return nil, err
	}
	stmt := &ast.ReturnStatement{Loc: ast.Loc{Position: pos}}
	if !p.isPunct(";") && !p.isPunct("}") && p.tok.Kind != lexer.EOF {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Argument = arg
	}
	return stmt, p.consumeOptionalSemi()
}

func (p *Parser) parseThrow() (*ast.ThrowStatement, error) {
	pos := p.pos()
	if err := p.next(); err != nil {
		return nil, err
	}
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ThrowStatement{Loc: ast.Loc{Position: pos}, Argument: arg}, p.consumeOptionalSemi()
}

func (p *Parser) parseTry() (*ast.TryStatement, error) {
	pos := p.pos()
	if err := p.next(); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.TryStatement{Loc: ast.Loc{Position: pos}, Block: block}
	if p.isKeyword("catch") {
		catchPos := p.pos()
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expectPunct("("); err != nil {
			return nil, err
		}
		if p.tok.Kind != lexer.Ident {
			return nil, p.errorf("expected catch parameter name, got %q", p.tok.Literal)
		}
		param := p.tok.Literal
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Handler = &ast.CatchClause{Loc: ast.Loc{Position: catchPos}, Param: param, Body: body}
	}
	if p.isKeyword("finally") {
		if err := p.next(); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Finalizer = body
	}
	if stmt.Handler == nil && stmt.Finalizer == nil {
		return nil, p.errorf("try statement requires a catch clause, a finally clause, or both")
	}
	return stmt, nil
}

// parseLabeledOrExpressionStatement disambiguates `ident:` (a
// LabeledStatement) from an ordinary expression statement that merely
// begins with an identifier; both are only resolvable with one token of
// lookahead past the identifier.
func (p *Parser) parseLabeledOrExpressionStatement() (ast.Stmt, error) {
	pos := p.pos()
	if p.tok.Kind == lexer.Ident && p.peek.Kind == lexer.Punct && p.peek.Literal == ":" {
		label := p.tok.Literal
		if err := p.next(); err != nil { // consume identifier
			return nil, err
		}
		if err := p.next(); err != nil { // consume ":"
			return nil, err
		}
		body, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return &ast.LabeledStatement{Loc: ast.Loc{Position: pos}, Label: label, Body: body}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt := &ast.ExpressionStatement{Loc: ast.Loc{Position: pos}, Expression: expr}
	return stmt, p.consumeOptionalSemi()
}
