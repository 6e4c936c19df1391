package lrgen

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

// CharRange is an inclusive range of runes.
type CharRange struct {
	Lo, Hi rune
}

// Char is a range of a single rune.
func Char(r rune) CharRange {
	return CharRange{r, r}
}

// Range is a range of runes lo…hi.
func Range(lo, hi rune) CharRange {
	return CharRange{lo, hi}
}

// Pattern describes the strings a token matches. Patterns are regular
// expressions, built from the constructors of this package:
//
//    // \d+(\.\d+)?
//    digits := Plus(Class(Range('0', '9')))
//    number := Seq(digits, Opt(Seq(Lit("."), digits)))
type Pattern interface {
	build(n *nfa, from, to int)
}

type lit string

// Lit matches the string s.
func Lit(s string) Pattern {
	return lit(s)
}

func (p lit) build(n *nfa, from, to int) {
	s := string(p)
	if s == "" {
		n.epsilon(from, to)
		return
	}
	at := from
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		next := to
		if len(s) > 0 {
			next = n.add()
		}
		n.edge(at, next, r, r)
		at = next
	}
}

type class []CharRange

// Class matches a single rune out of ranges.
func Class(ranges ...CharRange) Pattern {
	return class(normalize(ranges))
}

// Not matches a single rune not in ranges. The NUL character is never matched.
func Not(ranges ...CharRange) Pattern {
	var c class
	next := rune(1)
	for _, r := range normalize(ranges) {
		if r.Lo > next {
			c = append(c, CharRange{next, r.Lo - 1})
		}
		if r.Hi+1 > next {
			next = r.Hi + 1
		}
	}
	if next <= unicode.MaxRune {
		c = append(c, CharRange{next, unicode.MaxRune})
	}
	return c
}

func (p class) build(n *nfa, from, to int) {
	for _, r := range p {
		n.edge(from, to, r.Lo, r.Hi)
	}
}

type seq []Pattern

// Seq matches a sequence of patterns.
func Seq(ps ...Pattern) Pattern {
	return seq(ps)
}

func (p seq) build(n *nfa, from, to int) {
	if len(p) == 0 {
		n.epsilon(from, to)
		return
	}
	at := from
	for i, q := range p {
		next := to
		if i < len(p)-1 {
			next = n.add()
		}
		q.build(n, at, next)
		at = next
	}
}

type alt []Pattern

// Alt matches any one of patterns.
func Alt(ps ...Pattern) Pattern {
	return alt(ps)
}

func (p alt) build(n *nfa, from, to int) {
	for _, q := range p {
		q.build(n, from, to)
	}
}

type star struct{ p Pattern }

// Star matches zero or more repetitions of p.
func Star(p Pattern) Pattern {
	return star{p}
}

func (p star) build(n *nfa, from, to int) {
	loop, back := n.add(), n.add()
	n.epsilon(from, loop)
	p.p.build(n, loop, back)
	n.epsilon(back, loop)
	n.epsilon(loop, to)
}

// Plus matches one or more repetitions of p.
func Plus(p Pattern) Pattern {
	return seq{p, star{p}}
}

type opt struct{ p Pattern }

// Opt matches p or the empty string.
func Opt(p Pattern) Pattern {
	return opt{p}
}

func (p opt) build(n *nfa, from, to int) {
	n.epsilon(from, to)
	p.p.build(n, from, to)
}

// Accepts is true if p matches all of s.
func Accepts(p Pattern, s string) bool {
	n := &nfa{}
	start, final := n.add(), n.add()
	p.build(n, start, final)
	current := n.closure([]int{start})
	for _, r := range s {
		var targets []int
		for _, q := range current {
			for _, e := range n.states[q].edges {
				if r >= e.lo && r <= e.hi {
					targets = append(targets, e.to)
				}
			}
		}
		if len(targets) == 0 {
			return false
		}
		current = n.closure(targets)
	}
	for _, q := range current {
		if q == final {
			return true
		}
	}
	return false
}

// normalize sorts ranges and merges overlapping or adjacent ones.
func normalize(ranges []CharRange) []CharRange {
	rs := make([]CharRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Lo <= r.Hi {
			rs = append(rs, r)
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo })
	var merged []CharRange
	for _, r := range rs {
		if k := len(merged) - 1; k >= 0 && r.Lo <= merged[k].Hi+1 {
			if r.Hi > merged[k].Hi {
				merged[k].Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
