package parser

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tabula"
	"github.com/npillmayer/tabula/languages/swlox"
	"github.com/npillmayer/tabula/lr"
	"github.com/npillmayer/tabula/lr/scanner"
	"github.com/npillmayer/tabula/lr/tree"
)

func swloxParser(t *testing.T, opts ...Option) *Parser {
	lang, err := swlox.Language()
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewParser(lang, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// tinyLanguage has a single terminal (end of input) and a single
// non-terminal A. State 1 acts on end of input according to action entry
// onEnd, with 0 meaning no action.
func tinyLanguage(onEnd uint16) *lr.Language {
	return &lr.Language{
		Name:            "tiny",
		Version:         lr.FormatVersion,
		SymbolCount:     2,
		TokenCount:      1,
		StateCount:      2,
		LargeStateCount: 2,
		Symbols: []lr.SymbolMetadata{
			{Name: "end", Terminal: true, Named: true},
			{Name: "A", Visible: true, Named: true},
		},
		ParseTable: []uint16{
			1, 0, // recovery state
			onEnd, 1, // A loops back to state 1
		},
		ParseActions: []lr.ActionEntry{
			{},
			{Actions: []lr.Action{{Type: lr.RecoverAction}}},
			{Actions: []lr.Action{{Type: lr.ReduceAction, Symbol: 1}}},
		},
		LexModes:     make([]lr.LexMode, 2),
		LexStates:    []lr.LexState{{}},
		InitialState: 1,
	}
}

func TestRejectCorruptTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lr")
	defer teardown()
	//
	lang, _ := swlox.Language()
	bad := *lang
	bad.InitialState = 99
	_, err := NewParser(&bad)
	if !errors.Is(err, tabula.ErrTable) {
		t.Errorf("expected table error, have %v", err)
	}
	if !errors.Is(err, &tabula.Error{Class: tabula.TableError, Code: tabula.DanglingState}) {
		t.Errorf("expected dangling state to be reported, have %v", err)
	}
	if _, err = NewParser(tinyLanguage(7)); !errors.Is(err, tabula.ErrTable) {
		t.Errorf("expected dangling action entry to be reported, have %v", err)
	}
}

func TestParserStuck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lr")
	defer teardown()
	//
	p, err := NewParser(tinyLanguage(2)) // reduces ε to A forever
	if err != nil {
		t.Fatal(err)
	}
	cst := p.Parse(nil)
	if !cst.HasError() || !cst.Root().IsError() {
		t.Errorf("expected an ERROR tree from a stuck parser, have %s", cst)
	}
	if n := cst.Root().ChildCount(); n < 1024 {
		t.Errorf("expected the parser to give up after the step limit, has %d nodes", n)
	}
}

func TestErrorRootAtEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lr")
	defer teardown()
	//
	p, err := NewParser(tinyLanguage(0)) // accepts nothing
	if err != nil {
		t.Fatal(err)
	}
	cst := p.Parse([]byte{})
	if root := cst.Root(); !root.IsError() || root.ChildCount() != 0 {
		t.Errorf("expected an empty ERROR root, have %s", cst)
	}
	if errs := cst.Errors(); len(errs) != 1 || errs[0].Code != tabula.IncompleteInput {
		t.Errorf("expected incomplete input, have %v", errs)
	}
	cst = p.Parse([]byte("x"))
	root := cst.Root()
	if !root.IsError() || root.Span() != (tabula.Span{0, 1}) {
		t.Errorf("expected ERROR root covering the input, have %s at %s", cst, root.Span())
	}
	errs := cst.Errors()
	if len(errs) != 1 || errs[0].Class != tabula.LexicalError || errs[0].Code != tabula.UnrecognizedInput {
		t.Errorf("expected a single lexical error, have %v", errs)
	}
}

// tokens is a tokenizer handing out a fixed list of tokens.
type tokens struct {
	list []scanner.Token
	pos  int
}

func (tt *tokens) NextToken(lexState uint16) scanner.Token {
	tok := tt.list[tt.pos]
	if tt.pos < len(tt.list)-1 {
		tt.pos++
	}
	tok.LexState = lexState
	return tok
}

func (tt *tokens) SkipTo(pos uint64) {
	for i, tok := range tt.list {
		if tok.Span.From() >= pos {
			tt.pos = i
			return
		}
	}
}

func (tt *tokens) SetErrorHandler(func(error)) {}

func TestParseWithTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lr")
	defer teardown()
	//
	source := []byte("print 1;")
	tok := &tokens{list: []scanner.Token{
		{Symbol: 4, Span: tabula.Span{0, 5}, Examined: 6},  // print
		{Symbol: 18, Span: tabula.Span{6, 7}, Examined: 8}, // number_literal
		{Symbol: 1, Span: tabula.Span{7, 8}, Examined: 9},  // ;
		{Symbol: lr.EndOfInput, Span: tabula.Span{8, 8}, Examined: 9},
	}}
	p := swloxParser(t, StackCapacity(8))
	a := p.ParseWith(source, tok)
	b := p.Parse(source)
	if a.HasError() || !tree.Equal(a.Root(), b.Root()) {
		t.Errorf("trees from token list and lexer differ:\n%s\n%s", a, b)
	}
	if p.Language().Name != "swlox" {
		t.Errorf("expected parser for swlox")
	}
}

func TestReparseWithoutOldTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lr")
	defer teardown()
	//
	p := swloxParser(t)
	source := []byte(`var a = 1; a = a + 1;`)
	re, fresh := p.Reparse(source, nil), p.Parse(source)
	if !tree.Equal(re.Root(), fresh.Root()) || re.ReusedNodes() != 0 {
		t.Errorf("Reparse without an old tree should parse from scratch")
	}
}

func TestRecoveryTerminates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lr")
	defer teardown()
	//
	p := swloxParser(t)
	for _, input := range []string{
		`)`, `;;;;`, `print`, `var`, `((((`, `1 + + 2;`, `"`, `@#$ print 1;`, "var x = \x00;",
	} {
		source := []byte(input)
		cst := p.Parse(source)
		if !cst.HasError() {
			t.Errorf("%q: expected errors", input)
		}
		if root := cst.Root(); root.EndByte() != uint64(len(source)) {
			t.Errorf("%q: tree should cover all input, covers %s", input, root.Span())
		}
	}
}
