/*
Package lox provides compiled grammars of a small scripting language in the
tradition of Lox, as snapshots of its growing syntax:

    Expressions    variables, print statements, unary and binary expressions
    Conditionals   + blocks, if/else, operator precedence levels
    Loops          + while loops, calls, booleans, nil, logical operators

Snapshots are compiled on first use, written to a table asset and loaded
back from it, exactly like a language shipped as a binary asset. Languages
are safe for concurrent use.

    lang, err := lox.Language(lox.Conditionals)
    p, err := parser.NewParser(lang)
    tree := p.Parse([]byte(`if (x < 2) { print x; }`))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lox

import (
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tabula/lr"
	"github.com/npillmayer/tabula/lr/lrgen"
)

// tracer traces with key 'tabula.lrgen'.
func tracer() tracing.Trace {
	return tracing.Select("tabula.lrgen")
}

// Snapshot selects a version of the language's syntax.
type Snapshot int

// Snapshots of the syntax, each one extending the previous.
const (
	Expressions Snapshot = iota
	Conditionals
	Loops
)

func (s Snapshot) String() string {
	switch s {
	case Expressions:
		return "lox-expressions"
	case Conditionals:
		return "lox-conditionals"
	case Loops:
		return "lox-loops"
	}
	return fmt.Sprintf("lox-snapshot(%d)", int(s))
}

type compiled struct {
	once  sync.Once
	asset []byte
	lang  *lr.Language
	err   error
}

var snapshots [3]compiled

func lookup(s Snapshot) (*compiled, error) {
	if s < Expressions || s > Loops {
		return nil, fmt.Errorf("unknown snapshot %d", int(s))
	}
	c := &snapshots[s]
	c.once.Do(func() {
		c.asset, c.err = compile(s)
		if c.err == nil {
			c.lang, c.err = lr.LoadBytes(c.asset)
		}
		if c.err != nil {
			tracer().Errorf("cannot compile %s: %v", s, c.err)
		}
	})
	return c, c.err
}

func compile(s Snapshot) ([]byte, error) {
	g, err := grammar(s)
	if err != nil {
		return nil, err
	}
	lang, conflicts, err := lrgen.Compile(g)
	if err != nil {
		return nil, err
	}
	if conflicts {
		tracer().Infof("grammar %s has unresolved conflicts", s)
	}
	return lang.Bytes()
}

// Language returns the compiled language of a snapshot.
func Language(s Snapshot) (*lr.Language, error) {
	c, err := lookup(s)
	if err != nil {
		return nil, err
	}
	return c.lang, nil
}

// Asset returns the binary table asset of a snapshot. Clients must not modify it.
func Asset(s Snapshot) ([]byte, error) {
	c, err := lookup(s)
	if err != nil {
		return nil, err
	}
	return c.asset, nil
}

// Grammar returns a fresh copy of the grammar of a snapshot.
func Grammar(s Snapshot) (*lrgen.Grammar, error) {
	return grammar(s)
}
