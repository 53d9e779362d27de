package lexer

import "testing"

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func TestLexerIdentAndKeyword(t *testing.T) {
	toks := scanAll(t, "var x = foo;")
	want := []struct {
		kind Kind
		lit  string
	}{
		{Keyword, "var"},
		{Ident, "x"},
		{Punct, "="},
		{Ident, "foo"},
		{Punct, ";"},
		{EOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Literal != w.lit {
			t.Errorf("token %d = %+v, want kind=%v lit=%q", i, toks[i], w.kind, w.lit)
		}
	}
}

func TestLexerMultiCharPunctGreedy(t *testing.T) {
	toks := scanAll(t, "a === b !== c")
	var lits []string
	for _, tok := range toks {
		if tok.Kind == Punct {
			lits = append(lits, tok.Literal)
		}
	}
	if len(lits) != 2 || lits[0] != "===" || lits[1] != "!==" {
		t.Fatalf("got puncts %v, want [=== !==]", lits)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	toks := scanAll(t, `"a\nb\tc\\d"`)
	if toks[0].Kind != String {
		t.Fatalf("expected String token, got %+v", toks[0])
	}
	if got, want := toks[0].Literal, "a\nb\tc\\d"; got != want {
		t.Errorf("literal = %q, want %q", got, want)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	if _, err := l.Next(); err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestLexerLineComment(t *testing.T) {
	toks := scanAll(t, "a // comment\nb")
	if len(toks) != 3 || toks[0].Literal != "a" || toks[1].Literal != "b" {
		t.Fatalf("got %v", toks)
	}
}

func TestLexerBlockCommentUnterminated(t *testing.T) {
	l := New("/* never closes")
	if _, err := l.Next(); err == nil {
		t.Fatal("expected error for unterminated block comment")
	}
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	l := New("@")
	if _, err := l.Next(); err == nil {
		t.Fatal("expected error for unexpected character")
	}
}

func TestLexerNumberLiteral(t *testing.T) {
	toks := scanAll(t, "3.14 42")
	if toks[0].Kind != Number || toks[0].Literal != "3.14" {
		t.Errorf("got %+v", toks[0])
	}
	if toks[1].Kind != Number || toks[1].Literal != "42" {
		t.Errorf("got %+v", toks[1])
	}
}

func TestLexerPositionTracking(t *testing.T) {
	l := New("ab\ncd")
	first, _ := l.Next()
	if first.Line != 1 || first.Column != 1 {
		t.Errorf("first token at %d:%d, want 1:1", first.Line, first.Column)
	}
	second, _ := l.Next()
	if second.Line != 2 || second.Column != 1 {
		t.Errorf("second token at %d:%d, want 2:1", second.Line, second.Column)
	}
}

func TestLexerGotoAndHelpersAreOrdinaryIdents(t *testing.T) {
	toks := scanAll(t, "GOTO GET_PROPERTY")
	if toks[0].Kind != Ident || toks[1].Kind != Ident {
		t.Fatalf("expected GOTO/GET_PROPERTY to lex as Ident, got %+v %+v", toks[0], toks[1])
	}
}
