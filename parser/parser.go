// Package parser is a recursive-descent parser over the lexer's token
// stream, restricted to a small ECMAScript-5 subset of statement and
// expression grammar. It is thin glue: the lowerer never imports this
// package, and builds its own trees directly.
package parser

import (
	"github.com/RReverser/cfg/ast"
	"github.com/RReverser/cfg/cerr"
	"github.com/RReverser/cfg/lexer"
)

// Parser holds a two-token lookahead window over a Lexer.
type Parser struct {
	lex  *lexer.Lexer
	tok  lexer.Token
	peek lexer.Token
}

// Parse lexes and parses src as a top-level program.
func Parse(src string) (*ast.Program, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	return p.parseProgram()
}

func newParser(src string) (*Parser, error) {
	p := &Parser{lex: lexer.New(src)}
	var err error
	if p.tok, err = p.lex.Next(); err != nil {
		return nil, err
	}
	if p.peek, err = p.lex.Next(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) next() error {
	p.tok = p.peek
	var err error
	p.peek, err = p.lex.Next()
	return err
}

func (p *Parser) pos() ast.Position {
	return ast.Position{Line: p.tok.Line, Column: p.tok.Column}
}

func (p *Parser) isPunct(lit string) bool {
	return p.tok.Kind == lexer.Punct && p.tok.Literal == lit
}

func (p *Parser) isKeyword(lit string) bool {
	return p.tok.Kind == lexer.Keyword && p.tok.Literal == lit
}

func (p *Parser) expectPunct(lit string) error {
	if !p.isPunct(lit) {
		return p.errorf("expected %q, got %q", lit, p.tok.Literal)
	}
	return p.next()
}

// consumeOptionalSemi eats a trailing ";" if one is present; the subset's test
// fixtures are expected to write semicolons, but omitting one before a
// closing "}" or at EOF is tolerated rather than treated as a parse error.
func (p *Parser) consumeOptionalSemi() error {
	if p.isPunct(";") {
		return p.next()
	}
	return nil
}

func (p *Parser) errorf(format string, a ...interface{}) error {
	return cerr.Errorf(cerr.UnsupportedNode, "%d:%d: "+format, append([]interface{}{p.tok.Line, p.tok.Column}, a...)...)
}

// === [ Program ] =============================================================

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.tok.Kind != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	return prog, nil
}
