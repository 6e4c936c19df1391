package lrgen

import (
	"bytes"
	"fmt"
	"strings"
)

// Assoc is the associativity of an operator token.
type Assoc uint8

// Associativities for precedence declarations.
const (
	NoAssoc Assoc = iota
	LeftAssoc
	RightAssoc
)

type symKind uint8

const (
	nonterminalSym symKind = iota
	literalSym
	patternSym
	endSym
)

// Symbol is a terminal or non-terminal of a grammar. Values are serial
// numbers, unique within a grammar: the end-of-input terminal has value 0,
// followed by the other terminals, the non-terminals and finally the
// auxiliary non-terminals.
type Symbol struct {
	Name    string
	Value   int
	kind    symKind
	pattern Pattern // for pattern tokens
	prec    int
	assoc   Assoc
	aux     bool
}

// IsTerminal is true for tokens, including end of input.
func (A *Symbol) IsTerminal() bool {
	return A.kind != nonterminalSym
}

// IsLiteral is true for tokens matching a fixed string, the symbol's name.
func (A *Symbol) IsLiteral() bool {
	return A.kind == literalSym
}

// IsAuxiliary is true for non-terminals introduced for repetitions.
func (A *Symbol) IsAuxiliary() bool {
	return A.aux
}

// IsHidden is true for symbols which do not appear in the visible tree.
func (A *Symbol) IsHidden() bool {
	return A.aux || A.kind == endSym || strings.HasPrefix(A.Name, "_")
}

// Precedence returns the precedence level and associativity of a terminal.
// Level 0 means "no precedence".
func (A *Symbol) Precedence() (int, Assoc) {
	return A.prec, A.assoc
}

func (A *Symbol) String() string {
	if A.kind == literalSym {
		return fmt.Sprintf("%q", A.Name)
	}
	return A.Name
}

// Rule is a grammar rule (production). Rule 0 is the rule for the augmented
// start symbol.
type Rule struct {
	Serial     int
	LHS        *Symbol
	RHS        []*Symbol
	Prec       int  // precedence level, 0 for none
	Repetition bool // rule of an auxiliary repetition symbol
	explicit   bool // precedence set explicitly
}

// IsEps is true for rules with an empty right hand side.
func (r *Rule) IsEps() bool {
	return len(r.RHS) == 0
}

func (r *Rule) String() string {
	var b bytes.Buffer
	b.WriteString(r.LHS.Name)
	b.WriteString(" ➞")
	if r.IsEps() {
		b.WriteString(" ε")
	}
	for _, A := range r.RHS {
		b.WriteByte(' ')
		b.WriteString(A.String())
	}
	return b.String()
}

// Grammar is a context-free grammar, prepared for table construction.
// Create one with a GrammarBuilder.
type Grammar struct {
	Name         string
	rules        []*Rule
	terminals    []*Symbol // terminals[0] is end of input
	nonterminals []*Symbol // last one is the augmented start symbol
	byLHS        [][]*Rule // rules indexed by LHS value
	whitespace   []CharRange
}

// Rule returns rule no. n.
func (g *Grammar) Rule(n int) *Rule {
	return g.rules[n]
}

// Size returns the number of rules, including the start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// SymbolCount returns the number of symbols, including the augmented start
// symbol.
func (g *Grammar) SymbolCount() int {
	return len(g.terminals) + len(g.nonterminals)
}

// Terminals returns the terminals of g in value order.
func (g *Grammar) Terminals() []*Symbol {
	return g.terminals
}

// Nonterminals returns the non-terminals of g in value order.
func (g *Grammar) Nonterminals() []*Symbol {
	return g.nonterminals
}

// Start returns the start symbol of g (not the augmented one).
func (g *Grammar) Start() *Symbol {
	return g.rules[0].RHS[0]
}

// EachSymbol iterates over all symbols of g in value order.
func (g *Grammar) EachSymbol(f func(A *Symbol) interface{}) {
	for _, A := range g.terminals {
		f(A)
	}
	for _, A := range g.nonterminals {
		f(A)
	}
}

// Symbol returns the symbol with value v.
func (g *Grammar) Symbol(v int) *Symbol {
	if v < len(g.terminals) {
		return g.terminals[v]
	}
	return g.nonterminals[v-len(g.terminals)]
}

// Terminal finds a terminal by name.
func (g *Grammar) Terminal(name string) *Symbol {
	for _, A := range g.terminals {
		if A.Name == name {
			return A
		}
	}
	return nil
}

// Nonterminal finds a non-terminal by name.
func (g *Grammar) Nonterminal(name string) *Symbol {
	for _, A := range g.nonterminals {
		if A.Name == name {
			return A
		}
	}
	return nil
}

// rulesFor returns the rules with left hand side A.
func (g *Grammar) rulesFor(A *Symbol) []*Rule {
	if A.IsTerminal() {
		return nil
	}
	return g.byLHS[A.Value]
}

// Dump is a debugging helper.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------")
}

// === Grammar Builder =======================================================

// GrammarBuilder collects rules and token declarations. The LHS of the first
// rule which is not a repetition is the start symbol. Errors are sticky and
// reported by Grammar().
//
//    b := NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a").End()   // S ➞ A "a"
//    b.LHS("A").Epsilon()             // A ➞ ε
//    g, err := b.Grammar()
type GrammarBuilder struct {
	name       string
	rules      []*Rule
	nts        map[string]*Symbol
	literals   map[string]*Symbol
	tokens     map[string]*Symbol
	tokenOrder []*Symbol
	ntPrec     map[string]int
	opPrec     map[string]precDecl
	repeats    map[string]int
	whitespace []CharRange
	start      *Symbol
	err        error
}

type precDecl struct {
	level int
	assoc Assoc
}

// NewGrammarBuilder creates a builder for a grammar.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:     name,
		nts:      make(map[string]*Symbol),
		literals: make(map[string]*Symbol),
		tokens:   make(map[string]*Symbol),
		ntPrec:   make(map[string]int),
		opPrec:   make(map[string]precDecl),
		repeats:  make(map[string]int),
	}
}

func (gb *GrammarBuilder) fail(format string, args ...interface{}) {
	if gb.err == nil {
		gb.err = fmt.Errorf("grammar %s: "+format, append([]interface{}{gb.name}, args...)...)
		tracer().Errorf(gb.err.Error())
	}
}

// Token declares a token matching pattern p. Rules refer to it by name.
func (gb *GrammarBuilder) Token(name string, p Pattern) *GrammarBuilder {
	if _, dup := gb.tokens[name]; dup {
		gb.fail("token %s declared twice", name)
		return gb
	}
	if p == nil {
		gb.fail("token %s without pattern", name)
		return gb
	}
	A := &Symbol{Name: name, kind: patternSym, pattern: p}
	gb.tokens[name] = A
	gb.tokenOrder = append(gb.tokenOrder, A)
	return gb
}

// Whitespace declares the characters skipped between tokens.
func (gb *GrammarBuilder) Whitespace(ranges ...CharRange) *GrammarBuilder {
	gb.whitespace = append(gb.whitespace, ranges...)
	return gb
}

// Left declares left-associative operator tokens of a precedence level.
// Higher levels bind tighter.
func (gb *GrammarBuilder) Left(level int, ops ...string) *GrammarBuilder {
	return gb.operators(level, LeftAssoc, ops)
}

// Right declares right-associative operator tokens of a precedence level.
func (gb *GrammarBuilder) Right(level int, ops ...string) *GrammarBuilder {
	return gb.operators(level, RightAssoc, ops)
}

func (gb *GrammarBuilder) operators(level int, assoc Assoc, ops []string) *GrammarBuilder {
	if level <= 0 {
		gb.fail("precedence level must be positive, is %d", level)
	}
	for _, op := range ops {
		gb.opPrec[op] = precDecl{level: level, assoc: assoc}
	}
	return gb
}

// PrecOf sets the precedence level for all rules of a non-terminal which do
// not declare their own.
func (gb *GrammarBuilder) PrecOf(nonterm string, level int) *GrammarBuilder {
	gb.ntPrec[nonterm] = level
	return gb
}

func (gb *GrammarBuilder) nonterminal(name string) *Symbol {
	A, ok := gb.nts[name]
	if !ok {
		A = &Symbol{Name: name, kind: nonterminalSym}
		gb.nts[name] = A
	}
	return A
}

// terminal resolves a token name: declared tokens first, literals otherwise.
func (gb *GrammarBuilder) terminal(name string) *Symbol {
	if A, ok := gb.tokens[name]; ok {
		return A
	}
	A, ok := gb.literals[name]
	if !ok {
		if name == "" {
			gb.fail("empty literal token")
		}
		A = &Symbol{Name: name, kind: literalSym}
		gb.literals[name] = A
	}
	return A
}

// LHS starts a new rule.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	A := gb.nonterminal(name)
	if gb.start == nil && !A.aux {
		gb.start = A
	}
	return &RuleBuilder{gb: gb, rule: &Rule{LHS: A}}
}

// repetition creates a fresh auxiliary symbol for a repetition within the
// rules of lhs.
func (gb *GrammarBuilder) repetition(lhs string) *Symbol {
	gb.repeats[lhs]++
	A := gb.nonterminal(fmt.Sprintf("%s_repeat%d", lhs, gb.repeats[lhs]))
	A.aux = true
	return A
}

// RuleBuilder builds the right hand side of a rule.
type RuleBuilder struct {
	gb   *GrammarBuilder
	rule *Rule
}

// N appends a non-terminal.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rule.RHS = append(rb.rule.RHS, rb.gb.nonterminal(name))
	return rb
}

// T appends a terminal: a token declared with Token, or a literal token.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.rule.RHS = append(rb.rule.RHS, rb.gb.terminal(name))
	return rb
}

func (rb *RuleBuilder) sym(A *Symbol) *RuleBuilder {
	rb.rule.RHS = append(rb.rule.RHS, A)
	return rb
}

// Prec sets the precedence level of the rule.
func (rb *RuleBuilder) Prec(level int) *RuleBuilder {
	rb.rule.Prec = level
	rb.rule.explicit = true
	return rb
}

// End completes the rule.
func (rb *RuleBuilder) End() *Rule {
	rb.rule.Repetition = rb.rule.LHS.aux
	rb.gb.rules = append(rb.gb.rules, rb.rule)
	return rb.rule
}

// Epsilon completes the rule with an empty right hand side.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rule.RHS = nil
	return rb.End()
}

// Grammar returns the grammar built so far, or the first error encountered.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if len(gb.rules) == 0 || gb.start == nil {
		return nil, fmt.Errorf("grammar %s has no rules", gb.name)
	}
	defined := make(map[*Symbol]bool)
	for _, r := range gb.rules {
		defined[r.LHS] = true
	}
	g := &Grammar{Name: gb.name, whitespace: gb.whitespace}
	g.terminals = []*Symbol{{Name: "end", kind: endSym}}
	var literals, patterns []*Symbol
	seen := make(map[*Symbol]bool)
	for _, r := range gb.rules {
		for _, A := range r.RHS {
			if !A.IsTerminal() {
				if !defined[A] {
					return nil, fmt.Errorf("grammar %s: no rule for non-terminal %s", gb.name, A.Name)
				}
				continue
			}
			if !seen[A] {
				seen[A] = true
				if A.kind == literalSym {
					literals = append(literals, A)
				}
			}
		}
	}
	for _, A := range gb.tokenOrder {
		if seen[A] {
			patterns = append(patterns, A)
		}
	}
	g.terminals = append(g.terminals, literals...)
	g.terminals = append(g.terminals, patterns...)
	for _, A := range g.terminals {
		if d, ok := gb.opPrec[A.Name]; ok {
			A.prec, A.assoc = d.level, d.assoc
		}
	}
	var plain, aux []*Symbol
	for _, r := range gb.rules { // order of first definition
		if seen[r.LHS] {
			continue
		}
		seen[r.LHS] = true
		if r.LHS.aux {
			aux = append(aux, r.LHS)
		} else {
			plain = append(plain, r.LHS)
		}
	}
	g.nonterminals = append(plain, aux...)
	start := gb.start
	augmented := &Symbol{Name: start.Name + "'", kind: nonterminalSym}
	g.nonterminals = append(g.nonterminals, augmented)
	for i, A := range g.terminals {
		A.Value = i
	}
	for i, A := range g.nonterminals {
		A.Value = len(g.terminals) + i
	}
	g.rules = append(g.rules, &Rule{LHS: augmented, RHS: []*Symbol{start}})
	g.rules = append(g.rules, gb.rules...)
	g.byLHS = make([][]*Rule, g.SymbolCount())
	for i, r := range g.rules {
		r.Serial = i
		if !r.explicit {
			r.Prec = gb.precedence(r)
		}
		g.byLHS[r.LHS.Value] = append(g.byLHS[r.LHS.Value], r)
	}
	g.Dump()
	return g, nil
}

// precedence of a rule: the level declared for its LHS, or else the level
// of its last terminal.
func (gb *GrammarBuilder) precedence(r *Rule) int {
	if level, ok := gb.ntPrec[r.LHS.Name]; ok {
		return level
	}
	for i := len(r.RHS) - 1; i >= 0; i-- {
		if r.RHS[i].IsTerminal() {
			return r.RHS[i].prec
		}
	}
	return 0
}
