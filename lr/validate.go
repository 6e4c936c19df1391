package lr

import (
	"github.com/npillmayer/tabula"
)

func corrupt(code tabula.ErrorCode, format string, args ...interface{}) *tabula.Error {
	return tabula.NewError(tabula.TableError, code, tabula.Span{}, format, args...)
}

// Validate checks the internal consistency of the tables. Any violation is
// reported as a table error and makes the language unusable. Validate never
// changes l.
func (l *Language) Validate() error {
	if err := l.validateCounts(); err != nil {
		return err
	}
	if err := l.validateSymbols(); err != nil {
		return err
	}
	if err := l.validateActions(); err != nil {
		return err
	}
	if err := l.validateParseTable(); err != nil {
		return err
	}
	if err := l.validateLexer(); err != nil {
		return err
	}
	tracer().Debugf("language %q: %d symbols, %d states validated", l.Name, l.SymbolCount, l.StateCount)
	return nil
}

func (l *Language) validateCounts() error {
	switch {
	case l.Version != FormatVersion:
		return corrupt(tabula.MalformedTable, "table format version %d, expected %d", l.Version, FormatVersion)
	case l.SymbolCount == 0 || l.SymbolCount >= uint32(ErrorSymbol):
		return corrupt(tabula.MalformedTable, "symbol count %d out of range", l.SymbolCount)
	case l.TokenCount == 0 || l.TokenCount > l.SymbolCount:
		return corrupt(tabula.MalformedTable, "token count %d out of range", l.TokenCount)
	case l.StateCount == 0 || l.StateCount > 0xFFFF:
		return corrupt(tabula.MalformedTable, "state count %d out of range", l.StateCount)
	case l.LargeStateCount > l.StateCount:
		return corrupt(tabula.MalformedTable, "large state count %d exceeds state count %d",
			l.LargeStateCount, l.StateCount)
	case uint32(l.InitialState) >= l.StateCount:
		return corrupt(tabula.DanglingState, "initial state %d does not exist", l.InitialState)
	case uint32(len(l.Symbols)) != l.SymbolCount:
		return corrupt(tabula.MalformedTable, "%d symbol descriptions for %d symbols",
			len(l.Symbols), l.SymbolCount)
	case uint32(len(l.ParseTable)) != l.LargeStateCount*l.SymbolCount:
		return corrupt(tabula.MalformedTable, "dense parse table has %d cells, expected %d",
			len(l.ParseTable), l.LargeStateCount*l.SymbolCount)
	case uint32(len(l.SmallParseTableMap)) != l.StateCount-l.LargeStateCount:
		return corrupt(tabula.MalformedTable, "sparse map has %d entries, expected %d",
			len(l.SmallParseTableMap), l.StateCount-l.LargeStateCount)
	case uint32(len(l.LexModes)) != l.StateCount:
		return corrupt(tabula.MalformedTable, "%d lex modes for %d states", len(l.LexModes), l.StateCount)
	case len(l.ParseActions) == 0 || !l.ParseActions[0].Empty():
		return corrupt(tabula.MalformedTable, "action entry 0 must exist and be empty")
	case len(l.LexStates) == 0:
		return corrupt(tabula.MalformedTable, "no lexer states")
	}
	return nil
}

func (l *Language) validateSymbols() error {
	if !l.Symbols[EndOfInput].Terminal {
		return corrupt(tabula.UnknownSymbol, "symbol 0 must be the end-of-input terminal")
	}
	for i, md := range l.Symbols {
		if md.Terminal != (uint32(i) < l.TokenCount) {
			return corrupt(tabula.UnknownSymbol, "symbol %d (%s): terminal flag inconsistent with token count",
				i, md.Name)
		}
	}
	return nil
}

func (l *Language) validateActions() error {
	for i, e := range l.ParseActions {
		for _, a := range e.Actions {
			switch a.Type {
			case ShiftAction, ShiftRepeatAction:
				if uint32(a.State) >= l.StateCount {
					return corrupt(tabula.DanglingState, "action entry %d: shift to unknown state %d", i, a.State)
				}
			case ReduceAction:
				if uint32(a.Symbol) >= l.SymbolCount || l.IsTerminal(a.Symbol) {
					return corrupt(tabula.UnknownSymbol, "action entry %d: reduce to invalid symbol %d", i, a.Symbol)
				}
			case AcceptAction, RecoverAction:
			default:
				return corrupt(tabula.MalformedTable, "action entry %d: unknown action type %d", i, a.Type)
			}
		}
	}
	return nil
}

func (l *Language) checkCell(state uint32, sym, value uint16) error {
	if uint32(sym) >= l.SymbolCount {
		return corrupt(tabula.UnknownSymbol, "state %d: entry for unknown symbol %d", state, sym)
	}
	if value == 0 {
		return nil
	}
	if l.IsTerminal(Symbol(sym)) {
		if int(value) >= len(l.ParseActions) || l.ParseActions[value].Empty() {
			return corrupt(tabula.MalformedTable, "state %d, symbol %d: dangling action entry %d",
				state, sym, value)
		}
		return nil
	}
	if uint32(value) >= l.StateCount {
		return corrupt(tabula.DanglingState, "state %d, symbol %d: goto unknown state %d", state, sym, value)
	}
	return nil
}

func (l *Language) validateParseTable() error {
	for s := uint32(0); s < l.LargeStateCount; s++ {
		for sym := uint32(0); sym < l.SymbolCount; sym++ {
			if err := l.checkCell(s, uint16(sym), l.ParseTable[s*l.SymbolCount+sym]); err != nil {
				return err
			}
		}
	}
	table := l.SmallParseTable
	size := uint32(len(table))
	for k, offset := range l.SmallParseTableMap {
		state := l.LargeStateCount + uint32(k)
		i := offset
		if i >= size {
			return corrupt(tabula.MalformedTable, "state %d: sparse block offset %d out of range", state, offset)
		}
		groups := table[i]
		i++
		for g := uint16(0); g < groups; g++ {
			if i+2 > size {
				return corrupt(tabula.MalformedTable, "state %d: truncated sparse group", state)
			}
			value, n := table[i], uint32(table[i+1])
			i += 2
			if i+n > size {
				return corrupt(tabula.MalformedTable, "state %d: sparse group overruns table", state)
			}
			for _, sym := range table[i : i+n] {
				if err := l.checkCell(state, sym, value); err != nil {
					return err
				}
			}
			i += n
		}
	}
	return nil
}

func (l *Language) validateLexer() error {
	n := len(l.LexStates)
	for s, m := range l.LexModes {
		if int(m.LexState) >= n {
			return corrupt(tabula.DanglingState, "parser state %d: unknown lex state %d", s, m.LexState)
		}
	}
	for i, ls := range l.LexStates {
		if ls.HasAccept && uint32(ls.Accept) >= l.TokenCount {
			return corrupt(tabula.UnknownSymbol, "lex state %d accepts non-terminal %d", i, ls.Accept)
		}
		for _, t := range ls.Transitions {
			if t.Lo > t.Hi {
				return corrupt(tabula.MalformedTable, "lex state %d: empty transition range", i)
			}
			if int(t.Next) >= n {
				return corrupt(tabula.DanglingState, "lex state %d: transition to unknown lex state %d", i, t.Next)
			}
		}
	}
	return nil
}
