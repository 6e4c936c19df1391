package lrgen

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// LRAnalysis is an object for grammar analysis: it computes which
// non-terminals derive ε, and the FIRST and FOLLOW sets of all symbols.
// Sets contain terminal values (int).
type LRAnalysis struct {
	g        *Grammar
	nullable []bool
	first    []*treeset.Set
	follow   []*treeset.Set
}

// Analysis analyses a grammar.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{
		g:        g,
		nullable: make([]bool, g.SymbolCount()),
		first:    make([]*treeset.Set, g.SymbolCount()),
		follow:   make([]*treeset.Set, g.SymbolCount()),
	}
	g.EachSymbol(func(A *Symbol) interface{} {
		ga.first[A.Value] = treeset.NewWithIntComparator()
		ga.follow[A.Value] = treeset.NewWithIntComparator()
		if A.IsTerminal() {
			ga.first[A.Value].Add(A.Value)
		}
		return nil
	})
	ga.computeFirst()
	ga.computeFollow()
	return ga
}

// Grammar returns the grammar this analysis is about.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// Nullable is true for non-terminals deriving ε.
func (ga *LRAnalysis) Nullable(A *Symbol) bool {
	return ga.nullable[A.Value]
}

// First returns FIRST(A). Interpret the result as read-only.
func (ga *LRAnalysis) First(A *Symbol) *treeset.Set {
	return ga.first[A.Value]
}

// Follow returns FOLLOW(A). Interpret the result as read-only.
func (ga *LRAnalysis) Follow(A *Symbol) *treeset.Set {
	return ga.follow[A.Value]
}

// FirstOfSequence returns FIRST(X1…Xn), and whether X1…Xn derives ε.
func (ga *LRAnalysis) FirstOfSequence(seq []*Symbol) (*treeset.Set, bool) {
	F := treeset.NewWithIntComparator()
	for _, X := range seq {
		F.Add(ga.first[X.Value].Values()...)
		if X.IsTerminal() || !ga.nullable[X.Value] {
			return F, false
		}
	}
	return F, true
}

func (ga *LRAnalysis) computeFirst() {
	for changed := true; changed; {
		changed = false
		for _, r := range ga.g.rules {
			A := r.LHS
			F, eps := ga.FirstOfSequence(r.RHS)
			before := ga.first[A.Value].Size()
			ga.first[A.Value].Add(F.Values()...)
			if ga.first[A.Value].Size() != before {
				changed = true
			}
			if eps && !ga.nullable[A.Value] {
				ga.nullable[A.Value] = true
				changed = true
			}
		}
	}
}

// computeFollow: for every rule A ➞ α B β, FIRST(β) is in FOLLOW(B), and if
// β derives ε, FOLLOW(A) is in FOLLOW(B).
func (ga *LRAnalysis) computeFollow() {
	ga.follow[ga.g.rules[0].LHS.Value].Add(0) // end of input
	for changed := true; changed; {
		changed = false
		for _, r := range ga.g.rules {
			for i, B := range r.RHS {
				if B.IsTerminal() {
					continue
				}
				F, eps := ga.FirstOfSequence(r.RHS[i+1:])
				before := ga.follow[B.Value].Size()
				ga.follow[B.Value].Add(F.Values()...)
				if eps {
					ga.follow[B.Value].Add(ga.follow[r.LHS.Value].Values()...)
				}
				if ga.follow[B.Value].Size() != before {
					changed = true
				}
			}
		}
	}
}
