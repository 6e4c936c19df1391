package lrgen

import (
	"fmt"

	"github.com/npillmayer/tabula/lr"
	"github.com/npillmayer/tabula/lr/sparse"
)

// PackOption configures the packing of tables into a language.
type PackOption func(*packer)

// WithLargeStateCount sets the number of states stored as dense rows. By
// default, the recovery state, the initial state and the following states
// which are at least one third full are dense.
func WithLargeStateCount(n int) PackOption {
	return func(p *packer) {
		p.large = n
	}
}

type packer struct {
	large   int
	entries []lr.ActionEntry
	index   map[string]uint16
}

// entry returns the index of an action entry, adding it if necessary.
func (p *packer) entry(e lr.ActionEntry) uint16 {
	if len(e.Actions) == 0 {
		e.Actions = nil
	}
	key := fmt.Sprintf("%v", e)
	if i, ok := p.index[key]; ok {
		return i
	}
	i := uint16(len(p.entries))
	p.entries = append(p.entries, e)
	p.index[key] = i
	return i
}

// Language packs the tables into a language. Parser state 0 is the recovery
// state, CFSM state n becomes parser state n+1. The language is validated
// before it is returned. Clients have to call CreateTables() first.
func (lrgen *TableGenerator) Language(opts ...PackOption) (*lr.Language, error) {
	if lrgen.actiontable == nil {
		return nil, fmt.Errorf("grammar %s: tables not yet generated; call CreateTables() first", lrgen.g.Name)
	}
	g := lrgen.g
	p := &packer{large: -1, index: make(map[string]uint16)}
	for _, opt := range opts {
		opt(p)
	}
	p.entry(lr.ActionEntry{})
	lx := newLexer(g)
	symcnt := g.SymbolCount() - 1 // the augmented start symbol is not packed
	statecnt := lrgen.dfa.Size() + 1
	if statecnt > 0xFFFF {
		return nil, fmt.Errorf("grammar %s: too many states: %d", g.Name, statecnt)
	}
	lang := &lr.Language{
		Name:         g.Name,
		Version:      lr.FormatVersion,
		SymbolCount:  uint32(symcnt),
		TokenCount:   uint32(len(g.terminals)),
		StateCount:   uint32(statecnt),
		LexModes:     make([]lr.LexMode, statecnt),
		InitialState: lr.StateID(lrgen.dfa.S0.ID + 1),
	}
	for _, A := range g.terminals {
		lang.Symbols = append(lang.Symbols, lr.SymbolMetadata{
			Name:     A.Name,
			Terminal: true,
			Visible:  !A.IsHidden(),
			Named:    !A.IsLiteral(),
		})
	}
	for _, A := range g.nonterminals[:len(g.nonterminals)-1] {
		lang.Symbols = append(lang.Symbols, lr.SymbolMetadata{
			Name:    A.Name,
			Visible: !A.IsHidden(),
			Named:   !A.IsAuxiliary(),
		})
	}
	cells := sparse.NewIntMatrix(statecnt, symcnt, 0)
	// recovery state
	recovery := p.entry(lr.ActionEntry{Actions: []lr.Action{{Type: lr.RecoverAction}}})
	for _, t := range g.terminals {
		cells.Set(0, t.Value, int32(recovery))
	}
	lang.LexModes[0].LexState = lx.mode(g.terminals)
	for _, state := range lrgen.dfa.States() {
		row := int(state.ID) + 1
		var valid []*Symbol
		for _, t := range g.terminals {
			a, ok := lrgen.action(state, t)
			if !ok {
				continue
			}
			valid = append(valid, t)
			e := lr.ActionEntry{Reusable: lx.reusable(t), Actions: []lr.Action{a}}
			cells.Set(row, t.Value, int32(p.entry(e)))
		}
		for _, A := range g.nonterminals[:len(g.nonterminals)-1] {
			if target := lrgen.gototable.Value(int(state.ID), A.Value); target != lrgen.gototable.NullValue() {
				cells.Set(row, A.Value, target+1)
			}
		}
		lang.LexModes[row].LexState = lx.mode(valid)
	}
	lang.ParseActions = p.entries
	lang.LexStates = lx.lexstates
	packRows(lang, cells, p.large)
	tracer().Infof("language %s: %d states (%d dense), %d action entries, %d lex modes, %d lex states",
		lang.Name, lang.StateCount, lang.LargeStateCount, len(lang.ParseActions),
		len(lx.modeTokens), len(lang.LexStates))
	if err := lang.Validate(); err != nil {
		return nil, err
	}
	return lang, nil
}

// action returns the parser action for a terminal in a CFSM state.
func (lrgen *TableGenerator) action(state *CFSMState, t *Symbol) (lr.Action, bool) {
	v := lrgen.actiontable.Value(int(state.ID), t.Value)
	switch v {
	case lrgen.actiontable.NullValue():
		return lr.Action{}, false
	case AcceptAction:
		return lr.Action{Type: lr.AcceptAction}, true
	case ShiftAction:
		target := lrgen.gototable.Value(int(state.ID), t.Value)
		a := lr.Action{Type: lr.ShiftAction, State: lr.StateID(target + 1)}
		if lrgen.continuesRepetition(state, t) {
			a.Type = lr.ShiftRepeatAction
		}
		return a, true
	}
	r := lrgen.g.rules[v]
	if len(r.RHS) > 0xFF {
		tracer().Errorf("rule %v too long", r)
	}
	return lr.Action{
		Type:       lr.ReduceAction,
		Symbol:     lr.Symbol(r.LHS.Value),
		ChildCount: uint8(len(r.RHS)),
		Repetition: r.Repetition,
	}, true
}

// continuesRepetition is true if shifting t in state continues a
// repetition, i.e. the state holds an item R ➞ R • X with t in FIRST(X).
func (lrgen *TableGenerator) continuesRepetition(state *CFSMState, t *Symbol) bool {
	for _, x := range state.kernel.Values() {
		i := asItem(x)
		r := lrgen.g.rules[i.rule]
		if !r.Repetition || i.dot != 1 || len(r.RHS) < 2 || r.RHS[0] != r.LHS {
			continue
		}
		if F, _ := lrgen.ga.FirstOfSequence(r.RHS[1:]); F.Contains(t.Value) {
			return true
		}
	}
	return false
}

// packRows distributes the table rows into dense and sparse storage. With
// large < 0, the count of dense states is chosen by occupancy.
func packRows(lang *lr.Language, cells *sparse.IntMatrix, large int) {
	statecnt, symcnt := cells.M(), cells.N()
	if large < 0 {
		large = 2
		for large < statecnt && 3*cells.RowValueCount(large) >= symcnt {
			large++
		}
	}
	if large > statecnt {
		large = statecnt
	}
	lang.LargeStateCount = uint32(large)
	if large == 0 {
		lang.ParseTable = nil // as decoded from an asset
	} else {
		lang.ParseTable = make([]uint16, large*symcnt)
	}
	for s := 0; s < large; s++ {
		cells.EachInRow(s, func(sym int, v int32) {
			lang.ParseTable[s*symcnt+sym] = uint16(v)
		})
	}
	if large == statecnt {
		return
	}
	lang.SmallParseTableMap = make([]uint32, statecnt-large)
	for s := large; s < statecnt; s++ {
		lang.SmallParseTableMap[s-large] = uint32(len(lang.SmallParseTable))
		groups := cells.Groups(s)
		lang.SmallParseTable = append(lang.SmallParseTable, uint16(len(groups)))
		for _, grp := range groups {
			lang.SmallParseTable = append(lang.SmallParseTable, uint16(grp.Value), uint16(len(grp.Columns)))
			for _, sym := range grp.Columns {
				lang.SmallParseTable = append(lang.SmallParseTable, uint16(sym))
			}
		}
	}
}

// Compile is a shortcut: it analyses g, creates the tables and packs them.
// The tables of grammars with unresolved conflicts are packed nevertheless;
// Compile reports conflicts in its second result.
func Compile(g *Grammar, opts ...PackOption) (*lr.Language, bool, error) {
	gen := NewTableGenerator(Analysis(g))
	gen.CreateTables()
	lang, err := gen.Language(opts...)
	return lang, gen.HasConflicts, err
}
