package lox

import (
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tabula"
	"github.com/npillmayer/tabula/lr"
	"github.com/npillmayer/tabula/lr/parser"
	"github.com/npillmayer/tabula/lr/tree"
)

func newParser(t *testing.T, s Snapshot) *parser.Parser {
	lang, err := Language(s)
	if err != nil {
		t.Fatalf("cannot compile %s: %v", s, err)
	}
	p, err := parser.NewParser(lang)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func find(n *tree.Node, name string) *tree.Node {
	if n.Name() == name {
		return n
	}
	for _, c := range n.VisibleChildren() {
		if f := find(c, name); f != nil {
			return f
		}
	}
	return nil
}

func operands(n *tree.Node, source []byte) []string {
	var s []string
	for _, c := range n.NamedChildren() {
		s = append(s, c.Text(source))
	}
	return s
}

func TestConditionals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	p := newParser(t, Conditionals)
	cst := p.Parse([]byte(`var x = 1; if (x < 2) { print x; } else { print 0; }`))
	if cst.HasError() {
		t.Fatalf("unexpected errors: %v", cst.Errors())
	}
	expected := "(source_file" +
		" (variable_declaration (variable) (number_literal))" +
		" (if_statement (binary_expression (variable) (number_literal))" +
		" (block (print_statement (variable)))" +
		" (else_statement (block (print_statement (number_literal))))))"
	if s := cst.String(); s != expected {
		t.Errorf("expected\n%s\nhave\n%s", expected, s)
	}
	decls := cst.Root().NamedChildren()
	if len(decls) != 2 {
		t.Fatalf("expected a declaration and an if statement, have %s", cst)
	}
	ifStmt := decls[1].NamedChildren()
	if len(ifStmt) != 3 {
		t.Fatalf("expected condition, block and else branch, have %s", decls[1])
	}
	spans := []struct {
		n    *tree.Node
		span tabula.Span
	}{
		{decls[0], tabula.Span{0, 10}},
		{decls[1], tabula.Span{11, 52}},
		{ifStmt[0], tabula.Span{15, 20}},
		{ifStmt[1], tabula.Span{22, 34}},
		{ifStmt[2], tabula.Span{35, 52}},
		{ifStmt[2].NamedChildren()[0], tabula.Span{40, 52}},
	}
	for _, x := range spans {
		if x.n.Span() != x.span {
			t.Errorf("expected %s at %s, is at %s", x.n.Name(), x.span, x.n.Span())
		}
	}
}

func TestOperatorPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	p := newParser(t, Conditionals)
	cases := []struct {
		input    string
		operands []string
	}{
		{`print 1 + 2 * 3 == 7;`, []string{"1 + 2 * 3", "7"}},
		{`print 1 * 2 + 3;`, []string{"1 * 2", "3"}},
		{`print 1 - 2 - 3;`, []string{"1 - 2", "3"}},
		{`print -1 - 2;`, []string{"-1", "2"}},
		{`print 1 < 2 == 3 > 4;`, []string{"1 < 2", "3 > 4"}},
		{`print (1 + 2) * 3;`, []string{"(1 + 2)", "3"}},
	}
	for _, c := range cases {
		source := []byte(c.input)
		cst := p.Parse(source)
		if cst.HasError() {
			t.Errorf("%q: unexpected errors %v", c.input, cst.Errors())
			continue
		}
		bin := find(cst.Root(), "binary_expression")
		if bin == nil {
			t.Errorf("%q: no binary expression in %s", c.input, cst)
			continue
		}
		s := operands(bin, source)
		if len(s) != 2 || s[0] != c.operands[0] || s[1] != c.operands[1] {
			t.Errorf("%q: expected operands %q, have %q", c.input, c.operands, s)
		}
	}
}

func TestLoops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	p := newParser(t, Loops)
	source := []byte(`while (i < 10) { print f(i, 2); i = i + 1; } print true && !nil;`)
	cst := p.Parse(source)
	if cst.HasError() {
		t.Fatalf("unexpected errors: %v", cst.Errors())
	}
	expected := "(source_file" +
		" (while_statement (binary_expression (variable) (number_literal))" +
		" (block (print_statement (call_expression (variable) (arguments (variable) (number_literal))))" +
		" (assignment_statement (variable) (binary_expression (variable) (number_literal)))))" +
		" (print_statement (binary_expression (boolean_literal) (unary_expression (nil_literal)))))"
	if s := cst.String(); s != expected {
		t.Errorf("expected\n%s\nhave\n%s", expected, s)
	}
	call := newParser(t, Loops).Parse([]byte(`print a + f(1) * 2;`))
	if bin := find(call.Root(), "binary_expression"); bin == nil ||
		operands(bin, call.Source())[1] != "f(1) * 2" {
		t.Errorf("calls should bind tighter than binary operators, tree is %s", call)
	}
}

func TestKeywordPrefixes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	p := newParser(t, Loops)
	source := []byte(`var iffy = whilex; print printer;`)
	cst := p.Parse(source)
	if cst.HasError() {
		t.Fatalf("identifiers starting with keywords should lex as variables: %v", cst.Errors())
	}
	if n := find(cst.Root(), "print_statement"); n == nil || n.Text(source) != "print printer;" {
		t.Errorf("expected print statement, tree is %s", cst)
	}
}

func TestRecovery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	p := newParser(t, Conditionals)
	source := []byte(`var x = ; print x;`)
	cst := p.Parse(source)
	if !cst.HasError() {
		t.Fatalf("expected a syntax error")
	}
	errs := cst.Errors()
	if len(errs) == 0 || errs[0].Class != tabula.SyntaxError {
		t.Errorf("expected syntax error to be reported, have %v", errs)
	}
	if n := find(cst.Root(), "print_statement"); n == nil || n.Text(source) != "print x;" {
		t.Errorf("statement after the error should be parsed, tree is %s", cst)
	}
	source = []byte(`var x = ; if (x) { print x; }`)
	cst = p.Parse(source)
	if n := find(cst.Root(), "if_statement"); n == nil || n.Text(source) != "if (x) { print x; }" {
		t.Errorf("keywords after skipped tokens should start a statement, tree is %s", cst)
	}
	//
	source = []byte(`if (x < 2) { print x;`)
	cst = p.Parse(source)
	if !cst.HasError() {
		t.Fatalf("expected incomplete input to be detected")
	}
	if root := cst.Root(); root.StartByte() != 0 || root.EndByte() != uint64(len(source)) {
		t.Errorf("tree should cover all of the input, covers %s", root.Span())
	}
	if n := find(cst.Root(), "print_statement"); n == nil {
		t.Errorf("complete statements should survive in the ERROR tree, tree is %s", cst)
	}
}

func TestIncrementalReparse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	p := newParser(t, Conditionals)
	old := p.Parse([]byte("var x = 1;\nif (x < 2) { print x; }\nprint 3;"))
	source := []byte("var x = 10;\nif (x < 2) { print x; }\nprint 3;")
	old.Edit(tree.NewEdit(8, 1, 2))
	if !old.IsEdited() {
		t.Errorf("tree should be marked as edited")
	}
	re := p.Reparse(source, old)
	fresh := newParser(t, Conditionals).Parse(source)
	if !tree.Equal(re.Root(), fresh.Root()) {
		t.Errorf("re-parsed tree differs from fresh parse:\n%s\n%s", re, fresh)
	}
	if re.ReusedNodes() == 0 {
		t.Errorf("expected the if statement to be re-used")
	}
	if fresh.ReusedNodes() != 0 {
		t.Errorf("a fresh parse should not re-use nodes")
	}
	// editing a keyword must not re-use nodes depending on it
	old = re
	source = []byte("var x = 10;\nif (x < 2) { print x; }\nprinter = 3;")
	old.Edit(tree.NewEdit(41, 0, 4))
	re = p.Reparse(source, old)
	fresh = newParser(t, Conditionals).Parse(source)
	if !tree.Equal(re.Root(), fresh.Root()) {
		t.Errorf("re-parsed tree differs from fresh parse:\n%s\n%s", re, fresh)
	}
	if find(re.Root(), "assignment_statement") == nil {
		t.Errorf("expected assignment after edit, tree is %s", re)
	}
}

func TestReparseErroneousInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	p := newParser(t, Conditionals)
	inputs := []string{
		"{ print 2; } ; else ",
		"var x = ; print x;",
		"print 1; ) print 2; { print 3; } else",
		"if (x) { print 1; } } print 2;",
		"{ var a = 1; print a;",
	}
	for _, input := range inputs {
		source := []byte(input)
		fresh := p.Parse(source)
		if !fresh.HasError() {
			t.Errorf("%q: expected errors", input)
		}
		edits := []tree.Edit{tree.NewEdit(uint64(len(source)), 0, 0)}
		for pos := 0; pos < len(source); pos += 3 {
			edits = append(edits, tree.NewEdit(uint64(pos), 1, 1)) // same text
		}
		for _, edit := range edits {
			old := p.Parse(source)
			old.Edit(edit)
			if re := p.Reparse(source, old); !tree.Equal(re.Root(), fresh.Root()) {
				t.Errorf("%q, edit at %d: re-parsed tree differs from fresh parse:\n%s\n%s",
					input, edit.StartByte, re, fresh)
			}
		}
	}
}

func TestDisableReuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	lang, err := Language(Conditionals)
	if err != nil {
		t.Fatal(err)
	}
	p, err := parser.NewParser(lang, parser.DisableReuse(true), parser.StackCapacity(16))
	if err != nil {
		t.Fatal(err)
	}
	old := p.Parse([]byte(`print 1; print 2;`))
	old.Edit(tree.NewEdit(6, 1, 1))
	re := p.Reparse([]byte(`print 5; print 2;`), old)
	if re.ReusedNodes() != 0 || re.HasError() {
		t.Errorf("expected a parse from scratch, %d nodes re-used", re.ReusedNodes())
	}
}

func TestConcurrentParsers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	lang, err := Language(Loops)
	if err != nil {
		t.Fatal(err)
	}
	source := []byte(`var n = 0; while (n < 3) { print n; n = n + 1; }`)
	reference := newParser(t, Loops).Parse(source)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := parser.NewParser(lang)
			if err != nil {
				t.Error(err)
				return
			}
			for k := 0; k < 10; k++ {
				if cst := p.Parse(source); !tree.Equal(cst.Root(), reference.Root()) {
					t.Errorf("concurrent parse differs: %s", cst)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestAssets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	for _, s := range []Snapshot{Expressions, Conditionals, Loops} {
		asset, err := Asset(s)
		if err != nil {
			t.Fatal(err)
		}
		loaded, err := lr.LoadBytes(asset)
		if err != nil {
			t.Fatalf("cannot load asset of %s: %v", s, err)
		}
		lang, _ := Language(s)
		fp1, err1 := loaded.Fingerprint()
		fp2, err2 := lang.Fingerprint()
		if err1 != nil || err2 != nil || fp1 != fp2 {
			t.Errorf("%s: fingerprints of loaded asset differ", s)
		}
		if lang.Name != s.String() {
			t.Errorf("expected language name %s, is %s", s, lang.Name)
		}
	}
	if _, err := Language(Snapshot(7)); err == nil {
		t.Errorf("expected error for unknown snapshot")
	}
	if s := Snapshot(7).String(); s != "lox-snapshot(7)" {
		t.Errorf("unexpected name %s", s)
	}
}

func TestGrammarCopies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	g1, err := Grammar(Loops)
	if err != nil {
		t.Fatal(err)
	}
	g2, _ := Grammar(Loops)
	if g1 == g2 || g1.Size() != g2.Size() {
		t.Errorf("expected equal but distinct grammar copies")
	}
	if g1.Nonterminal("call_expression") == nil || g1.Terminal("while") == nil {
		t.Errorf("loops grammar should have calls and while loops")
	}
}
