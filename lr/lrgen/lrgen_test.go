package lrgen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tabula/lr"
	"github.com/npillmayer/tabula/lr/parser"
	"github.com/npillmayer/tabula/lr/tree"
)

func digits() Pattern {
	return Plus(Class(Range('0', '9')))
}

// exprGrammar is an ambiguous expression grammar, made deterministic by
// operator precedence:
//
//    E ➞ E + E | E - E | E * E | E ^ E | ( E ) | num
func exprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("E")
	b.Token("num", digits())
	b.Whitespace(Char(' '))
	b.Left(1, "+", "-")
	b.Left(2, "*")
	b.Right(3, "^")
	for _, op := range []string{"+", "-", "*", "^"} {
		b.LHS("E").N("E").T(op).N("E").End()
	}
	b.LHS("E").T("(").N("E").T(")").End()
	b.LHS("E").T("num").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func compile(t *testing.T, g *Grammar, opts ...PackOption) (*lr.Language, bool) {
	lang, conflicts, err := Compile(g, opts...)
	if err != nil {
		t.Fatalf("cannot compile grammar %s: %v", g.Name, err)
	}
	return lang, conflicts
}

func parse(t *testing.T, lang *lr.Language, input string) *tree.Tree {
	p, err := parser.NewParser(lang)
	if err != nil {
		t.Fatal(err)
	}
	return p.Parse([]byte(input))
}

// texts returns the source texts of the named children of n.
func texts(n *tree.Node, source []byte) []string {
	var s []string
	for _, c := range n.NamedChildren() {
		s = append(s, c.Text(source))
	}
	return s
}

func equalStrings(a, b []string) bool {
	return strings.Join(a, "|") == strings.Join(b, "|")
}

func TestSymbolValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	g := exprGrammar(t)
	var names []string
	g.EachSymbol(func(A *Symbol) interface{} {
		names = append(names, A.Name)
		return nil
	})
	expected := []string{"end", "+", "-", "*", "^", "(", ")", "num", "E", "E'"}
	if !equalStrings(names, expected) {
		t.Errorf("expected symbols %v, have %v", expected, names)
	}
	if g.Size() != 7 {
		t.Errorf("expected 7 rules including the start rule, have %d", g.Size())
	}
	if g.Start().Name != "E" {
		t.Errorf("expected start symbol E, have %s", g.Start())
	}
	if r := g.Rule(3); r.Prec != 2 || r.LHS.Name != "E" {
		t.Errorf("expected rule 3 to have precedence of '*', is %v with %d", r, r.Prec)
	}
	if p, a := g.Terminal("^").Precedence(); p != 3 || a != RightAssoc {
		t.Errorf("expected '^' to be right-associative on level 3")
	}
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	b := NewGrammarBuilder("undefined")
	b.LHS("S").N("A").End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for undefined non-terminal A")
	}
	b = NewGrammarBuilder("twice")
	b.Token("id", Plus(Class(Range('a', 'z'))))
	b.Token("id", Plus(Class(Range('a', 'z'))))
	b.LHS("S").T("id").End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected error for token declared twice")
	}
	if _, err := NewGrammarBuilder("empty").Grammar(); err == nil {
		t.Errorf("expected error for grammar without rules")
	}
}

func TestFirstAndFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	// S ➞ A c ;  A ➞ a A | ε
	b := NewGrammarBuilder("FF")
	b.LHS("S").N("A").T("c").End()
	b.LHS("A").T("a").N("A").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ga := Analysis(g)
	S, A := g.Nonterminal("S"), g.Nonterminal("A")
	a, c := g.Terminal("a").Value, g.Terminal("c").Value
	if !ga.Nullable(A) || ga.Nullable(S) {
		t.Errorf("expected A to be nullable and S not to be")
	}
	if F := ga.First(S); F.Size() != 2 || !F.Contains(a, c) {
		t.Errorf("expected FIRST(S) = {a, c}, is %v", F.Values())
	}
	if F := ga.Follow(A); F.Size() != 1 || !F.Contains(c) {
		t.Errorf("expected FOLLOW(A) = {c}, is %v", F.Values())
	}
	if F := ga.Follow(S); F.Size() != 1 || !F.Contains(0) {
		t.Errorf("expected FOLLOW(S) = {end}, is %v", F.Values())
	}
	F, nullable := ga.FirstOfSequence([]*Symbol{A, A})
	if !nullable || F.Size() != 1 || !F.Contains(a) {
		t.Errorf("expected FIRST(A A) = {a} and nullable, is %v", F.Values())
	}
}

func TestPrecedenceAndAssociativity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	lang, conflicts := compile(t, exprGrammar(t))
	if conflicts {
		t.Errorf("precedence should resolve all conflicts")
	}
	input := "1 + 2 * 3 ^ 4 ^ 5 - 6"
	cst := parse(t, lang, input)
	if cst.HasError() {
		t.Fatalf("unexpected errors: %v", cst.Errors())
	}
	source := cst.Source()
	root := cst.Root()
	if s := texts(root, source); !equalStrings(s, []string{"1 + 2 * 3 ^ 4 ^ 5", "6"}) {
		t.Errorf("'-' should be applied last, operands are %v", s)
	}
	sum := root.NamedChildren()[0]
	if s := texts(sum, source); !equalStrings(s, []string{"1", "2 * 3 ^ 4 ^ 5"}) {
		t.Errorf("'*' should bind tighter than '+', operands are %v", s)
	}
	product := sum.NamedChildren()[1]
	power := product.NamedChildren()[1]
	if s := texts(power, source); !equalStrings(s, []string{"3", "4 ^ 5"}) {
		t.Errorf("'^' should be right-associative, operands are %v", s)
	}
	paren := parse(t, lang, "(1 + 2) * 3")
	if s := texts(paren.Root(), paren.Source()); !equalStrings(s, []string{"(1 + 2)", "3"}) {
		t.Errorf("parentheses should group, operands are %v", s)
	}
}

func TestShiftReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	// dangling else
	b := NewGrammarBuilder("IfElse")
	b.Whitespace(Char(' '))
	b.LHS("S").T("if").N("S").T("else").N("S").End()
	b.LHS("S").T("if").N("S").End()
	b.LHS("S").T("x").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	gen := NewTableGenerator(Analysis(g))
	gen.CreateTables()
	if !gen.HasConflicts {
		t.Fatalf("expected a shift/reduce conflict")
	}
	elseSym := g.Terminal("else").Value
	var found bool
	for _, state := range gen.CFSM().States() {
		a1, a2 := gen.ActionTable().Values(int(state.ID), elseSym)
		if a1 == ShiftAction && a2 > 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected shift to win, with the reduction kept as second entry")
	}
	lang, err := gen.Language()
	if err != nil {
		t.Fatal(err)
	}
	cst := parse(t, lang, "if if x else x")
	if s := texts(cst.Root(), cst.Source()); !equalStrings(s, []string{"if x else x"}) {
		t.Errorf("else should belong to the inner if, have %v", s)
	}
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	b := NewGrammarBuilder("RR")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("x").End()
	b.LHS("B").T("x").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lang, conflicts := compile(t, g)
	if !conflicts {
		t.Fatalf("expected a reduce/reduce conflict")
	}
	cst := parse(t, lang, "x")
	if kids := cst.Root().NamedChildren(); len(kids) != 1 || kids[0].Name() != "A" {
		t.Errorf("expected the rule listed first to win, tree is %s", cst)
	}
}

func TestAcceptingStates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	gen := NewTableGenerator(Analysis(exprGrammar(t)))
	gen.CreateTables()
	acc := gen.AcceptingStates()
	if len(acc) != 1 {
		t.Fatalf("expected 1 accepting state, have %v", acc)
	}
	if v := gen.ActionTable().Value(int(acc[0]), 0); v != AcceptAction {
		t.Errorf("expected accept action on end in state %d, is %d", acc[0], v)
	}
}

func TestDenseAndSparseTablesAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	g := exprGrammar(t)
	sparse, _ := compile(t, g, WithLargeStateCount(0))
	dense, _ := compile(t, g, WithLargeStateCount(10000))
	mixed, _ := compile(t, g)
	if sparse.LargeStateCount != 0 || sparse.ParseTable != nil {
		t.Errorf("expected all states to be sparse")
	}
	if dense.LargeStateCount != dense.StateCount || dense.SmallParseTableMap != nil {
		t.Errorf("expected all states to be dense")
	}
	if mixed.LargeStateCount < 2 {
		t.Errorf("expected recovery and initial state to be dense, %d of %d are dense",
			mixed.LargeStateCount, mixed.StateCount)
	}
	for s := uint32(0); s < dense.StateCount; s++ {
		for sym := uint32(0); sym < dense.SymbolCount; sym++ {
			st, sy := lr.StateID(s), lr.Symbol(sym)
			e1, e2 := sparse.Entry(st, sy), dense.Entry(st, sy)
			if (e1 == nil) != (e2 == nil) || (e1 != nil && e1.Actions[0] != e2.Actions[0]) {
				t.Errorf("entries for (%d,%d) differ: %v / %v", s, sym, e1, e2)
			}
			g1, ok1 := sparse.Goto(st, sy)
			g2, ok2 := mixed.Goto(st, sy)
			if g1 != g2 || ok1 != ok2 {
				t.Errorf("gotos for (%d,%d) differ: %d / %d", s, sym, g1, g2)
			}
		}
	}
	for _, input := range []string{"1", "1 + 2 * (3 - 4)", "1 +", "((1)"} {
		a, b := parse(t, sparse, input), parse(t, dense, input)
		if !tree.Equal(a.Root(), b.Root()) {
			t.Errorf("%q: trees differ\n%s\n%s", input, a, b)
		}
	}
}

func TestRecoveryStateAndAssetRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	lang, _ := compile(t, exprGrammar(t))
	for sym := uint32(0); sym < lang.TokenCount; sym++ {
		e := lang.Entry(lr.RecoveryState, lr.Symbol(sym))
		if e == nil || e.Actions[0].Type != lr.RecoverAction {
			t.Errorf("expected recover action for terminal %d in recovery state", sym)
		}
	}
	if lang.InitialState != 1 {
		t.Errorf("expected initial state 1, is %d", lang.InitialState)
	}
	asset, err := lang.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := lr.LoadBytes(asset)
	if err != nil {
		t.Fatal(err)
	}
	a, b := parse(t, lang, "1 * 2 + 3"), parse(t, loaded, "1 * 2 + 3")
	if !tree.Equal(a.Root(), b.Root()) {
		t.Errorf("loaded language parses differently")
	}
}

func TestExportTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lrgen")
	defer teardown()
	//
	gen := NewTableGenerator(Analysis(exprGrammar(t)))
	gen.CreateTables()
	var dot, gotos, actions bytes.Buffer
	gen.CFSM().CFSM2GraphViz(&dot)
	if !strings.HasPrefix(dot.String(), "digraph {") || !strings.Contains(dot.String(), "s000 ->") {
		t.Errorf("unexpected Graphviz output:\n%s", dot.String())
	}
	GotoTableAsHTML(gen, &gotos)
	ActionTableAsHTML(gen, &actions)
	if !strings.Contains(gotos.String(), "GOTO table") || !strings.Contains(actions.String(), "&lt;shift&gt;") {
		t.Errorf("unexpected HTML output")
	}
	if !strings.Contains(actions.String(), "&lt;accept&gt;") {
		t.Errorf("expected accept action in HTML ACTION table")
	}
}
