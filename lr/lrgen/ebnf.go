package lrgen

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/exp/ebnf"
)

// ReadEBNF parses a grammar in Go-style EBNF.
func ReadEBNF(name string, r io.Reader) (ebnf.Grammar, error) {
	return ebnf.Parse(name, r)
}

// verify checks that every name refers to a production or a declared token,
// and that every production is reachable from start.
func verify(b *GrammarBuilder, grammar ebnf.Grammar, start string) error {
	g := make(ebnf.Grammar, len(grammar))
	for name, p := range grammar {
		g[name] = p
	}
	for _, p := range grammar {
		eachName(p.Expr, func(x *ebnf.Name) {
			if _, ok := g[x.String]; ok {
				return
			}
			if _, ok := b.tokens[x.String]; ok { // stand-in production for the token
				g[x.String] = &ebnf.Production{
					Name: &ebnf.Name{StringPos: x.StringPos, String: x.String},
					Expr: &ebnf.Token{StringPos: x.StringPos, String: x.String},
				}
			}
		})
	}
	return ebnf.Verify(g, start)
}

func eachName(expr ebnf.Expression, f func(*ebnf.Name)) {
	switch x := expr.(type) {
	case ebnf.Alternative:
		for _, e := range x {
			eachName(e, f)
		}
	case ebnf.Sequence:
		for _, e := range x {
			eachName(e, f)
		}
	case *ebnf.Name:
		f(x)
	case *ebnf.Group:
		eachName(x.Body, f)
	case *ebnf.Option:
		eachName(x.Body, f)
	case *ebnf.Repetition:
		eachName(x.Body, f)
	}
}

// FromEBNF adds the productions of an EBNF grammar to a builder, start
// production first, the rest in source order.
//
// Names of productions denote non-terminals, other names denote tokens
// declared with b.Token. Quoted strings are literal tokens. Alternatives,
// groups and options are expanded into separate rules, repetitions into
// auxiliary non-terminals
//
//    R ➞ R X | X
//
// Character ranges are not supported, use patterns instead.
func FromEBNF(b *GrammarBuilder, grammar ebnf.Grammar, start string) error {
	if err := verify(b, grammar, start); err != nil {
		return err
	}
	prods := make([]*ebnf.Production, 0, len(grammar))
	for _, p := range grammar {
		prods = append(prods, p)
	}
	sort.Slice(prods, func(i, j int) bool {
		if prods[i].Name.String == start {
			return true
		}
		if prods[j].Name.String == start {
			return false
		}
		return prods[i].Name.StringPos.Offset < prods[j].Name.StringPos.Offset
	})
	imp := &ebnfImport{b: b, grammar: grammar}
	for _, p := range prods {
		alts, err := imp.expand(p.Name.String, p.Expr)
		if err != nil {
			return err
		}
		for _, alt := range alts {
			imp.rule(p.Name.String, alt)
		}
	}
	return b.err
}

type ebnfImport struct {
	b       *GrammarBuilder
	grammar ebnf.Grammar
}

// A right hand side under construction.
type rhs []*Symbol

func (imp *ebnfImport) rule(lhs string, alt rhs) {
	rb := imp.b.LHS(lhs)
	for _, A := range alt {
		rb.sym(A)
	}
	rb.End()
}

// expand returns the alternative right hand sides an expression stands for.
func (imp *ebnfImport) expand(lhs string, expr ebnf.Expression) ([]rhs, error) {
	switch x := expr.(type) {
	case nil:
		return []rhs{nil}, nil
	case ebnf.Alternative:
		var alts []rhs
		for _, e := range x {
			sub, err := imp.expand(lhs, e)
			if err != nil {
				return nil, err
			}
			alts = append(alts, sub...)
		}
		return alts, nil
	case ebnf.Sequence:
		alts := []rhs{nil}
		for _, e := range x {
			sub, err := imp.expand(lhs, e)
			if err != nil {
				return nil, err
			}
			var prod []rhs
			for _, a := range alts {
				for _, s := range sub {
					r := make(rhs, 0, len(a)+len(s))
					prod = append(prod, append(append(r, a...), s...))
				}
			}
			alts = prod
		}
		return alts, nil
	case *ebnf.Name:
		if _, ok := imp.grammar[x.String]; ok {
			return []rhs{{imp.b.nonterminal(x.String)}}, nil
		}
		if A, ok := imp.b.tokens[x.String]; ok {
			return []rhs{{A}}, nil
		}
		return nil, fmt.Errorf("%s: undefined token %s", x.StringPos, x.String)
	case *ebnf.Token:
		return []rhs{{imp.b.terminal(x.String)}}, nil
	case *ebnf.Group:
		return imp.expand(lhs, x.Body)
	case *ebnf.Option:
		alts, err := imp.expand(lhs, x.Body)
		if err != nil {
			return nil, err
		}
		return append(alts, nil), nil
	case *ebnf.Repetition:
		alts, err := imp.expand(lhs, x.Body)
		if err != nil {
			return nil, err
		}
		R := imp.b.repetition(lhs)
		for _, alt := range alts {
			if len(alt) == 0 {
				continue // R ➞ R would be cyclic
			}
			imp.rule(R.Name, append(rhs{R}, alt...))
			imp.rule(R.Name, alt)
		}
		return []rhs{{R}, nil}, nil
	case *ebnf.Range:
		return nil, fmt.Errorf("%s: character ranges are not supported", x.Begin.StringPos)
	case *ebnf.Bad:
		return nil, fmt.Errorf("%s: %s", x.TokPos, x.Error)
	}
	return nil, fmt.Errorf("unsupported EBNF expression %T", expr)
}
