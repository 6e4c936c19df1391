package lr

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cnf/structhash"
	"github.com/npillmayer/tabula"
)

// assetMagic starts every table asset.
var assetMagic = [4]byte{'T', 'B', 'L', 'A'}

// Fingerprint returns a hash over all tables of l.
func (l *Language) Fingerprint() (string, error) {
	return structhash.Hash(l, int(FormatVersion))
}

// --- Writing ---------------------------------------------------------------

type encoder struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (enc *encoder) put(v interface{}) {
	if enc.err != nil {
		return
	}
	enc.err = binary.Write(enc.w, binary.LittleEndian, v)
	enc.n += int64(binary.Size(v))
}

func (enc *encoder) putString(s string) {
	enc.put(uint16(len(s)))
	if enc.err != nil {
		return
	}
	k, err := enc.w.WriteString(s)
	enc.n += int64(k)
	enc.err = err
}

func flags(bits ...bool) uint8 {
	var f uint8
	for i, b := range bits {
		if b {
			f |= 1 << uint(i)
		}
	}
	return f
}

// WriteTo writes l as a binary table asset.
func (l *Language) WriteTo(w io.Writer) (int64, error) {
	fp, err := l.Fingerprint()
	if err != nil {
		return 0, fmt.Errorf("cannot fingerprint language %q: %w", l.Name, err)
	}
	enc := &encoder{w: bufio.NewWriter(w)}
	enc.put(assetMagic)
	enc.put(l.Version)
	enc.putString(l.Name)
	enc.putString(fp)
	enc.put([]uint32{l.SymbolCount, l.TokenCount, l.StateCount, l.LargeStateCount})
	enc.put(uint16(l.InitialState))
	enc.put(uint32(len(l.Symbols)))
	for _, md := range l.Symbols {
		enc.putString(md.Name)
		enc.put(flags(md.Terminal, md.Visible, md.Named))
	}
	enc.put(uint32(len(l.ParseTable)))
	enc.put(l.ParseTable)
	enc.put(uint32(len(l.SmallParseTable)))
	enc.put(l.SmallParseTable)
	enc.put(uint32(len(l.SmallParseTableMap)))
	enc.put(l.SmallParseTableMap)
	enc.put(uint32(len(l.ParseActions)))
	for _, e := range l.ParseActions {
		enc.put(flags(e.Reusable))
		enc.put(uint8(len(e.Actions)))
		for _, a := range e.Actions {
			enc.put(uint8(a.Type))
			enc.put(uint16(a.State))
			enc.put(uint16(a.Symbol))
			enc.put(a.ChildCount)
			enc.put(flags(a.Repetition))
		}
	}
	enc.put(uint32(len(l.LexModes)))
	for _, m := range l.LexModes {
		enc.put(m.LexState)
	}
	enc.put(uint32(len(l.LexStates)))
	for _, ls := range l.LexStates {
		enc.put(uint16(ls.Accept))
		enc.put(flags(ls.HasAccept))
		enc.put(uint32(len(ls.Transitions)))
		for _, t := range ls.Transitions {
			enc.put(int32(t.Lo))
			enc.put(int32(t.Hi))
			enc.put(t.Next)
			enc.put(flags(t.Skip))
		}
	}
	if enc.err == nil {
		enc.err = enc.w.Flush()
	}
	return enc.n, enc.err
}

// Bytes returns l encoded as a binary table asset.
func (l *Language) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := l.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- Loading ---------------------------------------------------------------

// maxElements bounds every length prefix read from an asset.
const maxElements = 1 << 24

type decoder struct {
	r   *bufio.Reader
	err error
}

func (dec *decoder) get(v interface{}) {
	if dec.err != nil {
		return
	}
	dec.err = binary.Read(dec.r, binary.LittleEndian, v)
}

func (dec *decoder) u8() (v uint8)   { dec.get(&v); return }
func (dec *decoder) u16() (v uint16) { dec.get(&v); return }
func (dec *decoder) u32() (v uint32) { dec.get(&v); return }
func (dec *decoder) i32() (v int32)  { dec.get(&v); return }

func (dec *decoder) length() int {
	n := dec.u32()
	if dec.err == nil && n > maxElements {
		dec.err = fmt.Errorf("length %d exceeds limit", n)
	}
	if dec.err != nil {
		return 0
	}
	return int(n)
}

func (dec *decoder) str() string {
	n := dec.u16()
	if dec.err != nil {
		return ""
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(dec.r, b); err != nil {
		dec.err = err
	}
	return string(b)
}

func (dec *decoder) u16s() []uint16 {
	n := dec.length()
	if n == 0 {
		return nil
	}
	s := make([]uint16, n)
	dec.get(s)
	return s
}

func (dec *decoder) u32s() []uint32 {
	n := dec.length()
	if n == 0 {
		return nil
	}
	s := make([]uint32, n)
	dec.get(s)
	return s
}

func bit(f uint8, i uint) bool {
	return f&(1<<i) != 0
}

func badAsset(format string, args ...interface{}) *tabula.Error {
	return tabula.NewError(tabula.TableError, tabula.BadAsset, tabula.Span{}, format, args...)
}

// Load reads a binary table asset and validates it. Any inconsistency is
// reported as an error of class tabula.TableError.
func Load(r io.Reader) (*Language, error) {
	dec := &decoder{r: bufio.NewReader(r)}
	var magic [4]byte
	dec.get(&magic)
	if dec.err != nil {
		return nil, badAsset("cannot read asset header: %v", dec.err)
	}
	if magic != assetMagic {
		return nil, badAsset("not a table asset")
	}
	l := &Language{}
	l.Version = dec.u16()
	if dec.err == nil && l.Version != FormatVersion {
		return nil, badAsset("unsupported table format version %d", l.Version)
	}
	l.Name = dec.str()
	fp := dec.str()
	var counts [4]uint32
	dec.get(&counts)
	l.SymbolCount, l.TokenCount, l.StateCount, l.LargeStateCount = counts[0], counts[1], counts[2], counts[3]
	l.InitialState = StateID(dec.u16())
	l.Symbols = make([]SymbolMetadata, dec.length())
	for i := range l.Symbols {
		l.Symbols[i].Name = dec.str()
		f := dec.u8()
		l.Symbols[i].Terminal, l.Symbols[i].Visible, l.Symbols[i].Named = bit(f, 0), bit(f, 1), bit(f, 2)
	}
	l.ParseTable = dec.u16s()
	l.SmallParseTable = dec.u16s()
	l.SmallParseTableMap = dec.u32s()
	l.ParseActions = make([]ActionEntry, dec.length())
	for i := range l.ParseActions {
		e := &l.ParseActions[i]
		e.Reusable = bit(dec.u8(), 0)
		if n := dec.u8(); n > 0 {
			e.Actions = make([]Action, n)
		}
		for j := range e.Actions {
			a := &e.Actions[j]
			a.Type = ActionType(dec.u8())
			a.State = StateID(dec.u16())
			a.Symbol = Symbol(dec.u16())
			a.ChildCount = dec.u8()
			a.Repetition = bit(dec.u8(), 0)
		}
	}
	l.LexModes = make([]LexMode, dec.length())
	for i := range l.LexModes {
		l.LexModes[i].LexState = dec.u16()
	}
	l.LexStates = make([]LexState, dec.length())
	for i := range l.LexStates {
		ls := &l.LexStates[i]
		ls.Accept = Symbol(dec.u16())
		ls.HasAccept = bit(dec.u8(), 0)
		if n := dec.length(); n > 0 {
			ls.Transitions = make([]LexTransition, n)
		}
		for j := range ls.Transitions {
			t := &ls.Transitions[j]
			t.Lo, t.Hi = rune(dec.i32()), rune(dec.i32())
			t.Next = dec.u16()
			t.Skip = bit(dec.u8(), 0)
		}
	}
	if dec.err != nil {
		if errors.Is(dec.err, io.EOF) {
			dec.err = io.ErrUnexpectedEOF
		}
		return nil, badAsset("truncated table asset %q: %v", l.Name, dec.err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if check, err := l.Fingerprint(); err != nil || check != fp {
		return nil, badAsset("fingerprint mismatch for table asset %q", l.Name)
	}
	tracer().Infof("loaded language %q with %d states", l.Name, l.StateCount)
	return l, nil
}

// LoadBytes loads a table asset from memory.
func LoadBytes(b []byte) (*Language, error) {
	return Load(bytes.NewReader(b))
}
