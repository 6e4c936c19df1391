package lrgen

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/tabula/lr/sparse"
)

// Actions for parser action tables. Reduce actions are represented by the
// serial number of the rule to reduce.
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// === Items =================================================================

// An item is a rule with a dot somewhere in its right hand side.
type item struct {
	rule int
	dot  int
}

func itemComparator(i1, i2 interface{}) int {
	a, b := i1.(item), i2.(item)
	if a.rule != b.rule {
		return utils.IntComparator(a.rule, b.rule)
	}
	return utils.IntComparator(a.dot, b.dot)
}

func newItemSet() *treeset.Set {
	return treeset.NewWith(itemComparator)
}

func asItem(x interface{}) item {
	return x.(item)
}

// peek returns the symbol after the dot, or nil if the dot is at the end.
func (g *Grammar) peek(i item) *Symbol {
	r := g.rules[i.rule]
	if i.dot >= len(r.RHS) {
		return nil
	}
	return r.RHS[i.dot]
}

func (g *Grammar) itemString(i item) string {
	var b bytes.Buffer
	r := g.rules[i.rule]
	b.WriteString("[")
	b.WriteString(r.LHS.Name)
	b.WriteString(" ➞")
	for k, A := range r.RHS {
		if k == i.dot {
			b.WriteString(" •")
		}
		b.WriteByte(' ')
		b.WriteString(A.String())
	}
	if i.dot >= len(r.RHS) {
		b.WriteString(" •")
	}
	b.WriteString("]")
	return b.String()
}

func itemSetKey(S *treeset.Set) string {
	var b bytes.Buffer
	for _, x := range S.Values() {
		i := asItem(x)
		b.WriteString(strconv.Itoa(i.rule))
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(i.dot))
		b.WriteByte(' ')
	}
	return b.String()
}

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// closure of a set of items.
func (ga *LRAnalysis) closure(S *treeset.Set) *treeset.Set {
	C := newItemSet()
	work := S.Values()
	C.Add(work...)
	for len(work) > 0 {
		i := asItem(work[len(work)-1])
		work = work[:len(work)-1]
		A := ga.g.peek(i)
		if A == nil || A.IsTerminal() {
			continue
		}
		for _, r := range ga.g.rulesFor(A) {
			ii := item{rule: r.Serial}
			if !C.Contains(ii) {
				C.Add(ii)
				work = append(work, ii)
			}
		}
	}
	return C
}

// gotoSet computes the kernel of the state reached from closure C with
// symbol A: for every item N ➞ … • A … in C, advance to N ➞ … A • … .
func (ga *LRAnalysis) gotoSet(C *treeset.Set, A *Symbol) *treeset.Set {
	kernel := newItemSet()
	for _, x := range C.Values() {
		i := asItem(x)
		if ga.g.peek(i) == A {
			kernel.Add(item{rule: i.rule, dot: i.dot + 1})
		}
	}
	return kernel
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     uint         // serial ID of this state
	kernel *treeset.Set // kernel items, identifying the state
	items  *treeset.Set // closure of the kernel
	Accept bool         // is this an accepting state?
}

// CFSM edge between 2 states, directed and with a symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Dump is a debugging helper
func (s *CFSMState) Dump(g *Grammar) {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, x := range s.items.Values() {
		tracer().Debugf("    %s", g.itemString(asItem(x)))
	}
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule(g *Grammar) bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.rule == 0 && g.peek(i) == nil {
			return true
		}
	}
	return false
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(int(c1.ID), int(c2.ID))
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes.
type CFSM struct {
	g        *Grammar
	states   *treeset.Set    // all the states
	edges    *arraylist.List // all the edges between states
	S0       *CFSMState      // start state
	byKernel map[string]*CFSMState
	cfsmIds  uint // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:        g,
		states:   treeset.NewWith(stateComparator),
		edges:    arraylist.New(),
		byKernel: make(map[string]*CFSMState),
	}
}

// addState adds a state for a kernel, if one for it is not yet present. It
// reports if the state is new.
func (c *CFSM) addState(ga *LRAnalysis, kernel *treeset.Set) (*CFSMState, bool) {
	key := itemSetKey(kernel)
	if s, ok := c.byKernel[key]; ok {
		return s, false
	}
	s := &CFSMState{ID: c.cfsmIds, kernel: kernel, items: ga.closure(kernel)}
	c.cfsmIds++
	s.Accept = s.containsCompletedStartRule(c.g)
	c.byKernel[key] = s
	c.states.Add(s)
	return s, true
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) {
	c.edges.Add(&cfsmEdge{from: s0, to: s1, label: sym})
}

func (c *CFSM) allEdges(s *CFSMState) []*cfsmEdge {
	it := c.edges.Iterator()
	r := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r = append(r, e)
		}
	}
	return r
}

// States returns the states of the CFSM, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	states := make([]*CFSMState, 0, c.states.Size())
	for _, x := range c.states.Values() {
		states = append(states, x.(*CFSMState))
	}
	return states
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, c.forGraphviz(s.items))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		fmt.Fprintf(w, "s%03d -> s%03d [label=%q]\n", edge.from.ID, edge.to.ID, edge.label.Name)
	}
	io.WriteString(w, "}\n")
}

func (c *CFSM) forGraphviz(S *treeset.Set) string {
	var b bytes.Buffer
	for k, x := range S.Values() {
		if k > 0 {
			b.WriteString("\\l")
		}
		s := c.g.itemString(asItem(x))
		for _, r := range s {
			switch r {
			case '"', '{', '}', '|', '<', '>':
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	b.WriteString("\\l")
	return b.String()
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

// === Table Generator =======================================================

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an LR-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *sparse.IntMatrix
	actiontable  *sparse.IntMatrix
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	return &TableGenerator{
		g:  ga.Grammar(),
		ga: ga,
	}
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// The CFSM will be created, if it has not been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *sparse.IntMatrix {
	if lrgen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *sparse.IntMatrix {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// CreateTables creates the necessary data structures for an SLR parser.
func (lrgen *TableGenerator) CreateTables() {
	lrgen.dfa = lrgen.buildCFSM()
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable, lrgen.HasConflicts = lrgen.BuildSLR1ActionTable()
}

// AcceptingStates returns all states of the CFSM which represent an accept action.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []uint {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	var acc []uint
	for _, state := range lrgen.dfa.States() {
		if state.Accept {
			acc = append(acc, state.ID)
		}
	}
	return acc
}

// Construct the characteristic finite state machine CFSM for a grammar.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	start := newItemSet()
	start.Add(item{rule: 0})
	cfsm.S0, _ = cfsm.addState(lrgen.ga, start)
	cfsm.S0.Dump(G)
	S := arraylist.New()
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		x, _ := S.Get(0)
		S.Remove(0)
		s := x.(*CFSMState)
		G.EachSymbol(func(A *Symbol) interface{} {
			kernel := lrgen.ga.gotoSet(s.items, A)
			if kernel.Empty() {
				return nil
			}
			snew, isNew := cfsm.addState(lrgen.ga, kernel)
			if isNew {
				tracer().Debugf("goto(%d, %s) = new state %d", s.ID, A, snew.ID)
				snew.Dump(G)
				S.Add(snew)
			}
			cfsm.addEdge(s, snew, A)
			return nil
		})
	}
	tracer().Infof("CFSM for grammar %s has %d states", G.Name, cfsm.Size())
	return cfsm
}

// BuildGotoTable builds the GOTO table, which holds the target state for every
// edge of the CFSM, for terminals and non-terminals alike. This is normally
// not called directly, but rather via CreateTables().
func (lrgen *TableGenerator) BuildGotoTable() *sparse.IntMatrix {
	statescnt := lrgen.dfa.Size()
	tracer().Infof("GOTO table of size %d x %d", statescnt, lrgen.g.SymbolCount())
	gototable := sparse.NewIntMatrix(statescnt, lrgen.g.SymbolCount(), sparse.DefaultNullValue)
	for _, state := range lrgen.dfa.States() {
		for _, e := range lrgen.dfa.allEdges(state) {
			gototable.Set(int(state.ID), e.label.Value, int32(e.to.ID))
		}
	}
	return gototable
}

// BuildSLR1ActionTable constructs the SLR(1) Action table. This method is normally not called
// by clients, but rather via CreateTables(). It builds an action table including
// lookahead (using the FOLLOW-set created by the grammar analyzer).
//
// For building an ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state.
// If an item has a terminal immediately after the dot, we produce a shift
// entry. If an item's dot is behind the complete RHS of a rule, then we
// produce a reduce-entry for the rule for each terminal from FOLLOW(LHS).
//
// Conflicts are resolved by precedence and associativity, yacc-style. The
// losing action stays in the table as the second value of an entry pair.
// Unresolved conflicts are resolved in favour of shifting (shift/reduce) or
// the rule listed first (reduce/reduce), and reported.
func (lrgen *TableGenerator) BuildSLR1ActionTable() (*sparse.IntMatrix, bool) {
	statescnt := lrgen.dfa.Size()
	tracer().Infof("ACTION.1 table of size %d x %d", statescnt, len(lrgen.g.terminals))
	actions := sparse.NewIntMatrix(statescnt, len(lrgen.g.terminals), sparse.DefaultNullValue)
	hasConflicts := false
	for _, state := range lrgen.dfa.States() {
		shifts := make(map[int]bool)
		reduces := make(map[int][]*Rule)
		accept := false
		for _, x := range state.items.Values() {
			i := asItem(x)
			A := lrgen.g.peek(i)
			switch {
			case A != nil && A.IsTerminal():
				shifts[A.Value] = true
			case A == nil && i.rule == 0:
				accept = true
			case A == nil:
				rule := lrgen.g.rules[i.rule]
				for _, la := range lrgen.ga.Follow(rule.LHS).Values() {
					reduces[la.(int)] = append(reduces[la.(int)], rule)
				}
			}
		}
		for _, t := range lrgen.g.terminals {
			if t.Value == 0 && accept {
				actions.Set(int(state.ID), 0, AcceptAction)
				if len(reduces[0]) > 0 {
					tracer().Infof("state %d: accept/reduce conflict on end of input", state.ID)
					hasConflicts = true
				}
				continue
			}
			shift, rules := shifts[t.Value], reduces[t.Value]
			if !shift && len(rules) == 0 {
				continue
			}
			winner, loser, conflict := lrgen.resolve(state, t, shift, rules)
			actions.Set(int(state.ID), t.Value, winner)
			if loser != actions.NullValue() {
				actions.Add(int(state.ID), t.Value, loser)
			}
			hasConflicts = hasConflicts || conflict
		}
	}
	return actions, hasConflicts
}

// resolve selects the action for a table cell with a possible shift and
// possible reductions.
func (lrgen *TableGenerator) resolve(state *CFSMState, t *Symbol, shift bool, rules []*Rule) (
	winner, loser int32, conflict bool) {
	//
	loser = sparse.DefaultNullValue
	if len(rules) == 0 {
		return ShiftAction, loser, false
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Serial < rules[j].Serial })
	r := rules[0]
	if len(rules) > 1 {
		tracer().Infof("state %d: reduce/reduce conflict on %s between %v and %v", state.ID, t, r, rules[1])
		conflict = true
		loser = int32(rules[1].Serial)
	}
	if !shift {
		return int32(r.Serial), loser, conflict
	}
	tprec, assoc := t.Precedence()
	switch {
	case r.Prec == 0 || tprec == 0:
		tracer().Infof("state %d: shift/reduce conflict on %s with %v", state.ID, t, r)
		return ShiftAction, int32(r.Serial), true
	case r.Prec > tprec:
		return int32(r.Serial), ShiftAction, conflict
	case r.Prec < tprec:
		return ShiftAction, int32(r.Serial), conflict
	case assoc == LeftAssoc:
		return int32(r.Serial), ShiftAction, conflict
	case assoc == RightAssoc:
		return ShiftAction, int32(r.Serial), conflict
	}
	tracer().Infof("state %d: non-associative %s with %v", state.ID, t, r)
	return ShiftAction, int32(r.Serial), true
}

// ===========================================================================

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "GOTO", lrgen.gototable, w)
}

// ActionTableAsHTML exports the SLR(1) ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "ACTION", lrgen.actiontable, w)
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, table *sparse.IntMatrix, w io.Writer) {
	var symvec []*Symbol
	lrgen.g.EachSymbol(func(A *Symbol) interface{} {
		if A.Value < table.N() {
			symvec = append(symvec, A)
		}
		return nil
	})
	io.WriteString(w, "<html><body>\n")
	fmt.Fprintf(w, "%s table of size = %d<p>", tname, table.ValueCount())
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range symvec {
		fmt.Fprintf(w, "<td>%s</td>", A)
	}
	io.WriteString(w, "</tr>\n")
	var td string // table cell
	for _, state := range lrgen.dfa.States() {
		fmt.Fprintf(w, "<tr><td>state %d</td>\n", state.ID)
		for _, A := range symvec {
			v1, v2 := table.Values(int(state.ID), A.Value)
			if v1 == table.NullValue() {
				td = "&nbsp;"
			} else if v2 == table.NullValue() {
				td = valstring(v1, table)
			} else {
				td = valstring(v1, table) + "/" + valstring(v2, table)
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *sparse.IntMatrix) string {
	switch v {
	case m.NullValue():
		return "&lt;none&gt;"
	case AcceptAction:
		return "&lt;accept&gt;"
	case ShiftAction:
		return "&lt;shift&gt;"
	}
	return fmt.Sprintf("%d", v)
}
