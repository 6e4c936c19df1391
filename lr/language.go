package lr

import "fmt"

// Symbol identifies a terminal or non-terminal of a language.
type Symbol uint16

// StateID identifies a parser state.
type StateID uint16

const (
	// EndOfInput is the terminal produced by a lexer at the end of input.
	EndOfInput Symbol = 0
	// ErrorSymbol is the symbol of ERROR nodes and of erroneous tokens.
	// It never appears as a table column.
	ErrorSymbol Symbol = 0xFFFF
)

// RecoveryState is the state reserved for error recovery.
const RecoveryState StateID = 0

// FormatVersion is the version of the table format implemented by this package.
const FormatVersion uint16 = 1

// SymbolMetadata describes a symbol.
//
// Hidden non-terminals (visible=false, named=true) do not produce visible
// nodes. Auxiliary non-terminals (visible=false, named=false) are introduced
// by the generator for repetitions.
type SymbolMetadata struct {
	Name     string
	Terminal bool
	Visible  bool
	Named    bool
}

// ActionType is the kind of a parser action.
type ActionType uint8

// Kinds of parser actions.
const (
	ShiftAction ActionType = iota
	ShiftRepeatAction
	ReduceAction
	AcceptAction
	RecoverAction
)

func (t ActionType) String() string {
	switch t {
	case ShiftAction:
		return "shift"
	case ShiftRepeatAction:
		return "shift-repeat"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	case RecoverAction:
		return "recover"
	}
	return fmt.Sprintf("action(%d)", uint8(t))
}

// Action is a single parser action.
//
// Shift actions carry the target State. Reduce actions carry the Symbol
// to reduce to, the number of (non-extra) children to pop, and the
// Repetition flag for reductions of auxiliary repetition symbols.
type Action struct {
	Type       ActionType
	State      StateID
	Symbol     Symbol
	ChildCount uint8
	Repetition bool
}

func (a Action) String() string {
	switch a.Type {
	case ShiftAction, ShiftRepeatAction:
		return fmt.Sprintf("%s(%d)", a.Type, a.State)
	case ReduceAction:
		if a.Repetition {
			return fmt.Sprintf("reduce*(%d,%d)", a.Symbol, a.ChildCount)
		}
		return fmt.Sprintf("reduce(%d,%d)", a.Symbol, a.ChildCount)
	}
	return a.Type.String()
}

// ActionEntry is the set of actions for a (state, terminal) pair.
//
// Reusable is false if the token which selected the entry might lex
// differently once its neighbourhood changes. Entries may list more than one
// action; a deterministic driver executes the first one.
type ActionEntry struct {
	Reusable bool
	Actions  []Action
}

// Empty is true for the entry meaning "no action".
func (e *ActionEntry) Empty() bool {
	return e == nil || len(e.Actions) == 0
}

// LexMode selects the lexer entry state for a parser state.
type LexMode struct {
	LexState uint16
}

// LexTransition is a transition of the lexer automaton, covering the runes
// Lo…Hi (inclusive). A Skip transition consumes trivia: it moves to Next and
// restarts the token behind the consumed rune.
type LexTransition struct {
	Lo, Hi rune
	Next   uint16
	Skip   bool
}

// LexState is a state of the lexer automaton. Transitions are tested in
// order; the first match wins. HasAccept states accept token Accept.
type LexState struct {
	Transitions []LexTransition
	Accept      Symbol
	HasAccept   bool
}

// Next returns the transition taken on rune r, if any.
func (ls *LexState) Next(r rune) (LexTransition, bool) {
	for _, t := range ls.Transitions {
		if r >= t.Lo && r <= t.Hi {
			return t, true
		}
	}
	return LexTransition{}, false
}

// Language is the compiled form of a grammar.
//
// A Language is immutable after it has been validated. All exported fields
// are part of the asset format.
type Language struct {
	Name               string
	Version            uint16
	SymbolCount        uint32
	TokenCount         uint32
	StateCount         uint32
	LargeStateCount    uint32
	Symbols            []SymbolMetadata
	ParseTable         []uint16 // LargeStateCount × SymbolCount
	SmallParseTable    []uint16
	SmallParseTableMap []uint32
	ParseActions       []ActionEntry
	LexModes           []LexMode
	LexStates          []LexState
	InitialState       StateID
}

// --- Symbols ---------------------------------------------------------------

// SymbolName returns the name of a symbol.
func (l *Language) SymbolName(sym Symbol) string {
	if sym == ErrorSymbol {
		return "ERROR"
	}
	if int(sym) < len(l.Symbols) {
		return l.Symbols[sym].Name
	}
	return fmt.Sprintf("?%d", sym)
}

// IsTerminal is true for tokens, including end of input.
func (l *Language) IsTerminal(sym Symbol) bool {
	return uint32(sym) < l.TokenCount
}

// IsVisible is true for symbols which appear in the visible tree.
// ERROR is always visible.
func (l *Language) IsVisible(sym Symbol) bool {
	if sym == ErrorSymbol {
		return true
	}
	return int(sym) < len(l.Symbols) && l.Symbols[sym].Visible
}

// IsNamed is true for named symbols, i.e. symbols not denoting a literal token.
func (l *Language) IsNamed(sym Symbol) bool {
	if sym == ErrorSymbol {
		return true
	}
	return int(sym) < len(l.Symbols) && l.Symbols[sym].Named
}

// IsAuxiliary is true for generator-made repetition symbols.
func (l *Language) IsAuxiliary(sym Symbol) bool {
	if int(sym) >= len(l.Symbols) || l.IsTerminal(sym) {
		return false
	}
	md := l.Symbols[sym]
	return !md.Visible && !md.Named
}

// SymbolByName finds a symbol by its name. Non-terminals are preferred over
// terminals of the same name.
func (l *Language) SymbolByName(name string) (Symbol, bool) {
	found, ok := Symbol(0), false
	for i, md := range l.Symbols {
		if md.Name == name {
			if !md.Terminal {
				return Symbol(i), true
			}
			if !ok {
				found, ok = Symbol(i), true
			}
		}
	}
	return found, ok
}

// --- Table lookup ----------------------------------------------------------

// lookup returns the raw table value for (state, sym). Dense states are
// O(1), sparse states are linear in the size of their own block.
func (l *Language) lookup(state StateID, sym Symbol) uint16 {
	if uint32(state) >= l.StateCount || uint32(sym) >= l.SymbolCount {
		return 0
	}
	if uint32(state) < l.LargeStateCount {
		return l.ParseTable[uint32(state)*l.SymbolCount+uint32(sym)]
	}
	i := l.SmallParseTableMap[uint32(state)-l.LargeStateCount]
	table := l.SmallParseTable
	groups := table[i]
	i++
	for g := uint16(0); g < groups; g++ {
		value, n := table[i], uint32(table[i+1])
		i += 2
		for _, s := range table[i : i+n] {
			if s == uint16(sym) {
				return value
			}
		}
		i += n
	}
	return 0
}

// Entry returns the action entry for a terminal in a state, or nil if there
// is none.
func (l *Language) Entry(state StateID, sym Symbol) *ActionEntry {
	if !l.IsTerminal(sym) {
		return nil
	}
	v := l.lookup(state, sym)
	if v == 0 || int(v) >= len(l.ParseActions) {
		return nil
	}
	e := &l.ParseActions[v]
	if e.Empty() {
		return nil
	}
	return e
}

// Goto returns the state to move to after a reduction to non-terminal sym in
// state.
func (l *Language) Goto(state StateID, sym Symbol) (StateID, bool) {
	if l.IsTerminal(sym) {
		return 0, false
	}
	v := l.lookup(state, sym)
	return StateID(v), v != 0
}

// LexState returns the lexer entry state to use in a parser state.
func (l *Language) LexState(state StateID) uint16 {
	if int(state) < len(l.LexModes) {
		return l.LexModes[state].LexState
	}
	return 0
}

// ValidTerminals lists the terminals having an action in state, Recover
// actions excluded.
func (l *Language) ValidTerminals(state StateID) []Symbol {
	var valid []Symbol
	for t := uint32(0); t < l.TokenCount; t++ {
		if e := l.Entry(state, Symbol(t)); e != nil && e.Actions[0].Type != RecoverAction {
			valid = append(valid, Symbol(t))
		}
	}
	return valid
}

// EachEntry calls f for every non-empty table cell of a state.
func (l *Language) EachEntry(state StateID, f func(sym Symbol, value uint16)) {
	if uint32(state) >= l.StateCount {
		return
	}
	if uint32(state) < l.LargeStateCount {
		row := l.ParseTable[uint32(state)*l.SymbolCount : uint32(state+1)*l.SymbolCount]
		for s, v := range row {
			if v != 0 {
				f(Symbol(s), v)
			}
		}
		return
	}
	i := l.SmallParseTableMap[uint32(state)-l.LargeStateCount]
	table := l.SmallParseTable
	groups := table[i]
	i++
	for g := uint16(0); g < groups; g++ {
		value, n := table[i], uint32(table[i+1])
		i += 2
		for _, s := range table[i : i+n] {
			f(Symbol(s), value)
		}
		i += n
	}
}
