package parser

import (
	"testing"

	"github.com/RReverser/cfg/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return prog
}

func TestParseVarDeclaration(t *testing.T) {
	prog := mustParse(t, "var x = 1, y;")
	if len(prog.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Body))
	}
	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.VariableDeclaration", prog.Body[0])
	}
	if len(decl.Declarations) != 2 || decl.Declarations[0].Name != "x" || decl.Declarations[1].Name != "y" {
		t.Fatalf("got %+v", decl.Declarations)
	}
	if decl.Declarations[1].Init != nil {
		t.Error("y should have no initializer")
	}
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, "if (a) b(); else c();")
	s, ok := prog.Body[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("got %T", prog.Body[0])
	}
	if s.Alternate == nil {
		t.Fatal("expected Alternate to be set")
	}
}

func TestParseWhile(t *testing.T) {
	prog := mustParse(t, "while (x < 10) { x = x + 1; }")
	s, ok := prog.Body[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("got %T", prog.Body[0])
	}
	if _, ok := s.Test.(*ast.BinaryExpression); !ok {
		t.Errorf("test = %T, want *ast.BinaryExpression", s.Test)
	}
}

func TestParseForAllClauses(t *testing.T) {
	prog := mustParse(t, "for (var i = 0; i < n; i = i + 1) foo(i);")
	s, ok := prog.Body[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("got %T", prog.Body[0])
	}
	if s.Init == nil || s.Test == nil || s.Update == nil {
		t.Fatalf("got %+v", s)
	}
	if _, ok := s.Init.(*ast.VariableDeclaration); !ok {
		t.Errorf("Init = %T, want *ast.VariableDeclaration", s.Init)
	}
}

func TestParseForOmittedClauses(t *testing.T) {
	prog := mustParse(t, "for (;;) { break; }")
	s, ok := prog.Body[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("got %T", prog.Body[0])
	}
	if s.Init != nil || s.Test != nil || s.Update != nil {
		t.Errorf("expected all clauses nil, got %+v", s)
	}
}

func TestParseSwitchAtMostOneDefault(t *testing.T) {
	_, err := Parse("switch (x) { default: break; default: break; }")
	if err == nil {
		t.Fatal("expected error for duplicate default clause")
	}
}

func TestParseSwitchCases(t *testing.T) {
	prog := mustParse(t, "switch (x) { case 1: a(); break; default: b(); }")
	s, ok := prog.Body[0].(*ast.SwitchStatement)
	if !ok {
		t.Fatalf("got %T", prog.Body[0])
	}
	if len(s.Cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(s.Cases))
	}
	if s.Cases[0].Test == nil {
		t.Error("first case should have a Test")
	}
	if s.Cases[1].Test != nil {
		t.Error("second case (default) should have a nil Test")
	}
}

func TestParseBreakContinueLabel(t *testing.T) {
	prog := mustParse(t, "outer: while (a) { break outer; continue outer; }")
	labeled, ok := prog.Body[0].(*ast.LabeledStatement)
	if !ok {
		t.Fatalf("got %T", prog.Body[0])
	}
	while, ok := labeled.Body.(*ast.WhileStatement)
	if !ok {
		t.Fatalf("labeled body = %T", labeled.Body)
	}
	block := while.Body.(*ast.BlockStatement)
	brk := block.Body[0].(*ast.BreakStatement)
	cont := block.Body[1].(*ast.ContinueStatement)
	if brk.Label != "outer" || cont.Label != "outer" {
		t.Errorf("got break label %q continue label %q", brk.Label, cont.Label)
	}
}

func TestParseTryRequiresHandlerOrFinalizer(t *testing.T) {
	_, err := Parse("try { a(); }")
	if err == nil {
		t.Fatal("expected error for try with neither catch nor finally")
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := mustParse(t, "try { a(); } catch (e) { b(); } finally { c(); }")
	s, ok := prog.Body[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("got %T", prog.Body[0])
	}
	if s.Handler == nil || s.Handler.Param != "e" {
		t.Fatalf("got handler %+v", s.Handler)
	}
	if s.Finalizer == nil {
		t.Fatal("expected a finalizer")
	}
}

func TestParseMemberAndCallChain(t *testing.T) {
	prog := mustParse(t, "a.b[c](d, e);")
	es := prog.Body[0].(*ast.ExpressionStatement)
	call, ok := es.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("got %T", es.Expression)
	}
	if len(call.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(call.Args))
	}
	member, ok := call.Callee.(*ast.MemberExpression)
	if !ok || !member.Computed {
		t.Fatalf("callee = %+v, want computed MemberExpression", call.Callee)
	}
}

func TestParseAssignmentRequiresValidTarget(t *testing.T) {
	_, err := Parse("1 = 2;")
	if err == nil {
		t.Fatal("expected error assigning to a literal")
	}
}

func TestParseLabeledVsExpressionDisambiguation(t *testing.T) {
	prog := mustParse(t, "foo: bar();")
	if _, ok := prog.Body[0].(*ast.LabeledStatement); !ok {
		t.Fatalf("got %T, want *ast.LabeledStatement", prog.Body[0])
	}
	prog = mustParse(t, "foo();")
	if _, ok := prog.Body[0].(*ast.ExpressionStatement); !ok {
		t.Fatalf("got %T, want *ast.ExpressionStatement", prog.Body[0])
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	prog := mustParse(t, "a + b * c;")
	es := prog.Body[0].(*ast.ExpressionStatement)
	bin, ok := es.Expression.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("got %+v", es.Expression)
	}
	if _, ok := bin.Right.(*ast.BinaryExpression); !ok {
		t.Errorf("right operand = %T, want *ast.BinaryExpression (the multiplication)", bin.Right)
	}
}

func TestParseFunctionDeclarationAndExpression(t *testing.T) {
	prog := mustParse(t, "function f(a, b) { return a; } var g = function(x) { return x; };")
	decl, ok := prog.Body[0].(*ast.FunctionDeclaration)
	if !ok || decl.Name != "f" || len(decl.Function.Params) != 2 {
		t.Fatalf("got %+v", prog.Body[0])
	}
	varDecl := prog.Body[1].(*ast.VariableDeclaration)
	fn, ok := varDecl.Declarations[0].Init.(*ast.FunctionExpression)
	if !ok || fn.Name != "" {
		t.Fatalf("got %+v", varDecl.Declarations[0].Init)
	}
}
