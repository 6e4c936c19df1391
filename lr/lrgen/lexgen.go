package lrgen

import (
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/tabula/lr"
)

// --- NFA -------------------------------------------------------------------

type nfa struct {
	states []nfaState
}

type nfaState struct {
	eps    []int
	edges  []nfaEdge
	accept *Symbol
}

type nfaEdge struct {
	lo, hi rune
	to     int
}

func (n *nfa) add() int {
	n.states = append(n.states, nfaState{})
	return len(n.states) - 1
}

func (n *nfa) epsilon(from, to int) {
	n.states[from].eps = append(n.states[from].eps, to)
}

func (n *nfa) edge(from, to int, lo, hi rune) {
	n.states[from].edges = append(n.states[from].edges, nfaEdge{lo: lo, hi: hi, to: to})
}

// closure returns the ε-closure of a set of states, sorted.
func (n *nfa) closure(set []int) []int {
	in := make(map[int]bool, len(set))
	work := make([]int, 0, len(set))
	for _, q := range set {
		if !in[q] {
			in[q] = true
			work = append(work, q)
		}
	}
	for len(work) > 0 {
		q := work[len(work)-1]
		work = work[:len(work)-1]
		for _, p := range n.states[q].eps {
			if !in[p] {
				in[p] = true
				work = append(work, p)
			}
		}
	}
	c := make([]int, 0, len(in))
	for q := range in {
		c = append(c, q)
	}
	sort.Ints(c)
	return c
}

func setKey(set []int) string {
	var b strings.Builder
	for _, q := range set {
		b.WriteString(strconv.Itoa(q))
		b.WriteByte(',')
	}
	return b.String()
}

// --- DFA -------------------------------------------------------------------

// outranks is true if token a wins over token b when both match the same
// input: literals outrank patterns, otherwise the token declared first wins.
func outranks(a, b *Symbol) bool {
	if b == nil {
		return true
	}
	if a.IsLiteral() != b.IsLiteral() {
		return a.IsLiteral()
	}
	return a.Value < b.Value
}

func tokenPattern(A *Symbol) Pattern {
	if A.IsLiteral() {
		return Lit(A.Name)
	}
	return A.pattern
}

// lexAutomaton builds the deterministic lexer automaton recognizing tokens,
// using subset construction. State 0 is the start state, transition targets
// are relative to it. Whitespace is consumed by skip transitions of the start
// state.
func lexAutomaton(tokens []*Symbol, whitespace []CharRange) []lr.LexState {
	n := &nfa{}
	start := n.add()
	for _, A := range tokens {
		final := n.add()
		n.states[final].accept = A
		tokenPattern(A).build(n, start, final)
	}
	var dstates [][]int
	index := make(map[string]int)
	find := func(set []int) int {
		key := setKey(set)
		if d, ok := index[key]; ok {
			return d
		}
		index[key] = len(dstates)
		dstates = append(dstates, set)
		return len(dstates) - 1
	}
	find(n.closure([]int{start}))
	var lexstates []lr.LexState
	for d := 0; d < len(dstates); d++ {
		set := dstates[d]
		ls := lr.LexState{}
		var best *Symbol
		var bounds []rune
		for _, q := range set {
			if A := n.states[q].accept; A != nil && outranks(A, best) {
				best = A
			}
			for _, e := range n.states[q].edges {
				bounds = append(bounds, e.lo, e.hi+1)
			}
		}
		if best != nil {
			ls.HasAccept, ls.Accept = true, lr.Symbol(best.Value)
		}
		bounds = uniqueRunes(bounds)
		for i := 0; i+1 < len(bounds); i++ {
			lo, hi := bounds[i], bounds[i+1]-1
			var targets []int
			for _, q := range set {
				for _, e := range n.states[q].edges {
					if e.lo <= lo && hi <= e.hi {
						targets = append(targets, e.to)
					}
				}
			}
			if len(targets) == 0 {
				continue
			}
			next := uint16(find(n.closure(targets)))
			if k := len(ls.Transitions) - 1; k >= 0 && ls.Transitions[k].Next == next &&
				ls.Transitions[k].Hi+1 == lo {
				ls.Transitions[k].Hi = hi
				continue
			}
			ls.Transitions = append(ls.Transitions, lr.LexTransition{Lo: lo, Hi: hi, Next: next})
		}
		lexstates = append(lexstates, ls)
	}
	for _, r := range normalize(whitespace) {
		lexstates[0].Transitions = append(lexstates[0].Transitions,
			lr.LexTransition{Lo: r.Lo, Hi: r.Hi, Next: 0, Skip: true})
	}
	tracer().Debugf("lexer automaton for %d tokens has %d states", len(tokens), len(lexstates))
	return lexstates
}

func uniqueRunes(rs []rune) []rune {
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	j := 0
	for i := range rs {
		if i == 0 || rs[i] != rs[j-1] {
			rs[j] = rs[i]
			j++
		}
	}
	return rs[:j]
}

// --- Lex modes -------------------------------------------------------------

// lexer collects the lexer automata of all lex modes.
type lexer struct {
	g          *Grammar
	keywordOf  map[*Symbol][]*Symbol // literal ➞ pattern tokens accepting it
	modes      map[string]uint16
	lexstates  []lr.LexState
	modeTokens [][]*Symbol
}

func newLexer(g *Grammar) *lexer {
	lx := &lexer{
		g:         g,
		keywordOf: make(map[*Symbol][]*Symbol),
		modes:     make(map[string]uint16),
	}
	for _, lit := range g.terminals {
		if !lit.IsLiteral() {
			continue
		}
		for _, tok := range g.terminals {
			if tok.kind == patternSym && Accepts(tok.pattern, lit.Name) {
				lx.keywordOf[lit] = append(lx.keywordOf[lit], tok)
			}
		}
	}
	return lx
}

// mode returns the lexer entry state for a set of valid terminals. Wherever a
// keyword is valid, the tokens it could be mistaken for are recognized, too.
// Then a keyword is never lexed as a prefix of an identifier.
func (lx *lexer) mode(valid []*Symbol) uint16 {
	in := make(map[*Symbol]bool)
	var tokens []*Symbol
	include := func(A *Symbol) {
		if !in[A] && A.kind != endSym {
			in[A] = true
			tokens = append(tokens, A)
		}
	}
	for _, A := range valid {
		include(A)
		for _, id := range lx.keywordOf[A] {
			include(id)
		}
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Value < tokens[j].Value })
	var key strings.Builder
	for _, A := range tokens {
		key.WriteString(strconv.Itoa(A.Value))
		key.WriteByte(',')
	}
	if m, ok := lx.modes[key.String()]; ok {
		return m
	}
	offset := uint16(len(lx.lexstates))
	for _, ls := range lexAutomaton(tokens, lx.g.whitespace) {
		for i := range ls.Transitions {
			ls.Transitions[i].Next += offset
		}
		lx.lexstates = append(lx.lexstates, ls)
	}
	lx.modes[key.String()] = offset
	lx.modeTokens = append(lx.modeTokens, tokens)
	return offset
}

// reusable decides if a node created with lookahead A may be re-used after
// an edit next to it. Tokens which may lex differently depending on their
// neighbourhood are not: keywords (which extend to identifiers), identifiers
// (which may shrink to keywords), and literals which prefix other literals.
func (lx *lexer) reusable(A *Symbol) bool {
	switch A.kind {
	case literalSym:
		if len(lx.keywordOf[A]) > 0 {
			return false
		}
		for _, B := range lx.g.terminals {
			if B != A && B.IsLiteral() && strings.HasPrefix(B.Name, A.Name) {
				return false
			}
		}
	case patternSym:
		for _, ids := range lx.keywordOf {
			for _, id := range ids {
				if id == A {
					return false
				}
			}
		}
	}
	return true
}
