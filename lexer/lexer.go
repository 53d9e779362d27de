package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/RReverser/cfg/cerr"
)

// Lexer scans ES5-subset source text into a Token stream. It has no
// knowledge of statement or expression grammar; that lives in the parser.
type Lexer struct {
	src       string
	pos       int
	line, col int
}

// New returns a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.src) {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	return r, size
}

func (l *Lexer) advance() rune {
	r, size := l.peekRune()
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		r, _ := l.peekRune()
		switch {
		case r == 0:
			return nil
		case unicode.IsSpace(r):
			l.advance()
		case r == '/' && strings.HasPrefix(l.src[l.pos:], "//"):
			for r, _ := l.peekRune(); r != '\n' && r != 0; r, _ = l.peekRune() {
				l.advance()
			}
		case r == '/' && strings.HasPrefix(l.src[l.pos:], "/*"):
			l.advance()
			l.advance()
			closed := false
			for {
				r, _ := l.peekRune()
				if r == 0 {
					break
				}
				if r == '*' && strings.HasPrefix(l.src[l.pos:], "*/") {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return cerr.Errorf(cerr.UnsupportedNode, "unterminated block comment at %d:%d", l.line, l.col)
			}
		default:
			return nil
		}
	}
}

// Next scans and returns the next token. A Token with Kind == EOF is
// returned (with a nil error) once the input is exhausted; Next may be
// called again after EOF and will keep returning EOF.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return Token{}, err
	}
	line, col := l.line, l.col
	r, _ := l.peekRune()
	switch {
	case r == 0:
		return Token{Kind: EOF, Line: line, Column: col}, nil
	case isIdentStart(r):
		return l.scanIdent(line, col), nil
	case unicode.IsDigit(r):
		return l.scanNumber(line, col)
	case r == '"' || r == '\'':
		return l.scanString(line, col)
	default:
		return l.scanPunct(line, col)
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func (l *Lexer) scanIdent(line, col int) Token {
	start := l.pos
	for {
		r, _ := l.peekRune()
		if !isIdentPart(r) {
			break
		}
		l.advance()
	}
	lit := l.src[start:l.pos]
	kind := Ident
	if keywords[lit] {
		kind = Keyword
	}
	return Token{Kind: kind, Literal: lit, Line: line, Column: col}
}

func (l *Lexer) scanNumber(line, col int) (Token, error) {
	start := l.pos
	sawDot := false
scan:
	for {
		r, _ := l.peekRune()
		switch {
		case unicode.IsDigit(r):
			l.advance()
		case r == '.' && !sawDot:
			sawDot = true
			l.advance()
		default:
			break scan
		}
	}
	lit := l.src[start:l.pos]
	if lit == "" || lit == "." {
		return Token{}, cerr.Errorf(cerr.UnsupportedNode, "malformed number literal at %d:%d", line, col)
	}
	return Token{Kind: Number, Literal: lit, Line: line, Column: col}, nil
}

func (l *Lexer) scanString(line, col int) (Token, error) {
	quote := l.advance()
	var b strings.Builder
	for {
		r, _ := l.peekRune()
		switch {
		case r == 0 || r == '\n':
			return Token{}, cerr.Errorf(cerr.UnsupportedNode, "unterminated string literal at %d:%d", line, col)
		case r == quote:
			l.advance()
			return Token{Kind: String, Literal: b.String(), Line: line, Column: col}, nil
		case r == '\\':
			l.advance()
			esc, _ := l.peekRune()
			l.advance()
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '\'', '"':
				b.WriteRune(esc)
			default:
				return Token{}, cerr.Errorf(cerr.UnsupportedNode, "unsupported escape sequence \\%c at %d:%d", esc, line, col)
			}
		default:
			b.WriteRune(r)
			l.advance()
		}
	}
}

// puncts is ordered longest-first so the greedy match below never splits a
// multi-character operator.
var puncts = []string{
	"===", "!==", "<<", ">>",
	"==", "!=", "<=", ">=", "&&", "||",
	"{", "}", "(", ")", "[", "]",
	",", ";", ":", ".", "?",
	"=", "+", "-", "*", "/", "%",
	"!", "<", ">", "&", "|", "^", "~",
}

func (l *Lexer) scanPunct(line, col int) (Token, error) {
	for _, p := range puncts {
		if strings.HasPrefix(l.src[l.pos:], p) {
			for range p {
				l.advance()
			}
			return Token{Kind: Punct, Literal: p, Line: line, Column: col}, nil
		}
	}
	r, _ := l.peekRune()
	return Token{}, cerr.Errorf(cerr.UnsupportedNode, "unexpected character %q at %d:%d", r, line, col)
}
