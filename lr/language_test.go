package lr

import (
	"bytes"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tabula"
)

// tinyLanguage is a hand-compiled language for
//
//     S ➞ a S | b
//
// with states 0 and 1 stored dense and states 2…5 sparse.
func tinyLanguage() *Language {
	const a, b, S = 1, 2, 3
	return &Language{
		Name:            "tiny",
		Version:         FormatVersion,
		SymbolCount:     4,
		TokenCount:      3,
		StateCount:      6,
		LargeStateCount: 2,
		Symbols: []SymbolMetadata{
			{Name: "end", Terminal: true, Named: true},
			{Name: "a", Terminal: true, Visible: true},
			{Name: "b", Terminal: true, Visible: true},
			{Name: "S", Visible: true, Named: true},
		},
		ParseTable: []uint16{
			1, 1, 1, 0, // state 0: recover
			0, 2, 3, 4, // state 1
		},
		SmallParseTable: []uint16{
			3, 2, 1, a, 3, 1, b, 5, 1, S, // state 2
			1, 4, 1, 0, // state 3
			1, 5, 1, 0, // state 4
			1, 6, 1, 0, // state 5
		},
		SmallParseTableMap: []uint32{0, 10, 14, 18},
		ParseActions: []ActionEntry{
			{},
			{Actions: []Action{{Type: RecoverAction}}},
			{Reusable: true, Actions: []Action{{Type: ShiftAction, State: 2}}},
			{Reusable: true, Actions: []Action{{Type: ShiftAction, State: 3}}},
			{Reusable: true, Actions: []Action{{Type: ReduceAction, Symbol: S, ChildCount: 1}}},
			{Reusable: true, Actions: []Action{{Type: AcceptAction}}},
			{Reusable: true, Actions: []Action{{Type: ReduceAction, Symbol: S, ChildCount: 2}}},
		},
		LexModes: []LexMode{{0}, {0}, {0}, {0}, {0}, {0}},
		LexStates: []LexState{
			{Transitions: []LexTransition{{Lo: 'a', Hi: 'a', Next: 1}, {Lo: 'b', Hi: 'b', Next: 2},
				{Lo: ' ', Hi: ' ', Next: 0, Skip: true}}},
			{Accept: a, HasAccept: true},
			{Accept: b, HasAccept: true},
		},
		InitialState: 1,
	}
}

func TestLookupDenseAndSparse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lr")
	defer teardown()
	//
	l := tinyLanguage()
	if err := l.Validate(); err != nil {
		t.Fatalf("tiny language does not validate: %v", err)
	}
	if e := l.Entry(1, 1); e == nil || e.Actions[0].Type != ShiftAction || e.Actions[0].State != 2 {
		t.Errorf("expected shift(2) for 'a' in dense state 1, have %v", e)
	}
	if e := l.Entry(2, 2); e == nil || e.Actions[0].State != 3 {
		t.Errorf("expected shift(3) for 'b' in sparse state 2, have %v", e)
	}
	if e := l.Entry(3, 1); e != nil {
		t.Errorf("expected no action for 'a' in state 3, have %v", e)
	}
	if s, ok := l.Goto(2, 3); !ok || s != 5 {
		t.Errorf("expected goto(2,S) = 5, have %d", s)
	}
	if s, ok := l.Goto(1, 3); !ok || s != 4 {
		t.Errorf("expected goto(1,S) = 4, have %d", s)
	}
	if _, ok := l.Goto(3, 3); ok {
		t.Errorf("did not expect goto from state 3")
	}
	if e := l.Entry(5, 0); e == nil || e.Actions[0].ChildCount != 2 {
		t.Errorf("expected reduce(S,2) on end in state 5, have %v", e)
	}
	valid := l.ValidTerminals(2)
	if len(valid) != 2 || valid[0] != 1 || valid[1] != 2 {
		t.Errorf("expected valid terminals [a b] in state 2, have %v", valid)
	}
	if len(l.ValidTerminals(0)) != 0 {
		t.Errorf("recover actions should not count as valid terminals")
	}
	if s, ok := l.SymbolByName("S"); !ok || s != 3 {
		t.Errorf("expected to find S as symbol 3")
	}
	if l.SymbolName(ErrorSymbol) != "ERROR" || !l.IsVisible(ErrorSymbol) {
		t.Errorf("ERROR should be a visible pseudo symbol")
	}
}

func TestValidationDetectsCorruption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lr")
	defer teardown()
	//
	corruptions := map[string]func(l *Language){
		"dangling shift": func(l *Language) {
			l.ParseActions[2].Actions[0].State = 17
		},
		"dangling goto": func(l *Language) {
			l.ParseTable[7] = 33
		},
		"unknown symbol in sparse block": func(l *Language) {
			l.SmallParseTable[3] = 12
		},
		"reduce to terminal": func(l *Language) {
			l.ParseActions[4].Actions[0].Symbol = 1
		},
		"sparse offset out of range": func(l *Language) {
			l.SmallParseTableMap[3] = 99
		},
		"truncated sparse group": func(l *Language) {
			l.SmallParseTable = l.SmallParseTable[:20]
		},
		"dangling lex transition": func(l *Language) {
			l.LexStates[0].Transitions[0].Next = 8
		},
		"lex mode out of range": func(l *Language) {
			l.LexModes[4].LexState = 3
		},
		"reference to empty entry": func(l *Language) {
			l.ParseActions[6].Actions = nil
		},
		"version": func(l *Language) {
			l.Version = 99
		},
	}
	for name, damage := range corruptions {
		l := tinyLanguage()
		damage(l)
		err := l.Validate()
		if err == nil {
			t.Errorf("%s: corruption not detected", name)
			continue
		}
		if !errors.Is(err, tabula.ErrTable) {
			t.Errorf("%s: expected a table error, have %v", name, err)
		}
		t.Logf("%s: %v", name, err)
	}
}

func TestAssetRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tabula.lr")
	defer teardown()
	//
	l := tinyLanguage()
	var buf bytes.Buffer
	n, err := l.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo reported %d bytes, wrote %d", n, buf.Len())
	}
	asset := buf.Bytes()
	loaded, err := LoadBytes(asset)
	if err != nil {
		t.Fatalf("cannot load asset: %v", err)
	}
	fp1, _ := l.Fingerprint()
	fp2, _ := loaded.Fingerprint()
	if fp1 != fp2 {
		t.Errorf("fingerprints differ after round trip")
	}
	if e := loaded.Entry(2, 2); e == nil || e.Actions[0].State != 3 {
		t.Errorf("loaded language lost sparse entries")
	}
	//
	if _, err := LoadBytes(asset[:len(asset)/2]); !errors.Is(err, tabula.ErrTable) {
		t.Errorf("expected truncated asset to fail with table error, have %v", err)
	}
	broken := append([]byte{}, asset...)
	broken[0] = 'X'
	if _, err := LoadBytes(broken); err == nil {
		t.Errorf("expected bad magic to be rejected")
	}
	// header: magic, version, name "tiny", then the fingerprint string
	fingerprinted := append([]byte{}, asset...)
	at := 4 + 2 + 2 + len("tiny") + 2 + len("v1_")
	if fingerprinted[at] == '0' {
		fingerprinted[at] = '1'
	} else {
		fingerprinted[at] = '0'
	}
	if _, err := LoadBytes(fingerprinted); !errors.Is(err, tabula.ErrTable) {
		t.Errorf("expected fingerprint mismatch to be rejected, have %v", err)
	}
}
