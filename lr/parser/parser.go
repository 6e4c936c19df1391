package parser

import (
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/tabula"
	"github.com/npillmayer/tabula/lr"
	"github.com/npillmayer/tabula/lr/scanner"
	"github.com/npillmayer/tabula/lr/tree"
)

// Parser is an LR parser type, driven by the tables of a language. Create and
// initialize one with parser.NewParser(...)
type Parser struct {
	lang  *lr.Language
	stack []stackitem // parser stack
	reuse bool
}

// We store pairs of states and nodes on the parse stack. Extra items (ERROR
// nodes) do not change the state; they carry the state of the item below.
type stackitem struct {
	state lr.StateID
	node  *tree.Node
	extra bool
}

// NewParser creates a parser for a language. The language's tables are
// validated; NewParser returns an error of class tabula.TableError for
// inconsistent tables.
func NewParser(lang *lr.Language, opts ...Option) (*Parser, error) {
	if err := lang.Validate(); err != nil {
		return nil, err
	}
	p := &Parser{
		lang:  lang,
		stack: make([]stackitem, 0, 512),
		reuse: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Language returns the language of a parser.
func (p *Parser) Language() *lr.Language {
	return p.lang
}

// Parse parses source, using the lexer of the parser's language.
func (p *Parser) Parse(source []byte) *tree.Tree {
	return p.run(source, scanner.NewLexer(p.lang, source), nil)
}

// ParseWith parses source, going through tokens from a tokenizer.
func (p *Parser) ParseWith(source []byte, tok scanner.Tokenizer) *tree.Tree {
	return p.run(source, tok, nil)
}

// Reparse parses source after old has been edited to match it. Untouched
// subtrees of old are re-used. After Reparse, old must not be used any more.
func (p *Parser) Reparse(source []byte, old *tree.Tree) *tree.Tree {
	return p.ReparseWith(source, old, scanner.NewLexer(p.lang, source))
}

// ReparseWith is Reparse with tokens from a tokenizer.
func (p *Parser) ReparseWith(source []byte, old *tree.Tree, tok scanner.Tokenizer) *tree.Tree {
	if old == nil || !p.reuse {
		return p.run(source, tok, nil)
	}
	return p.run(source, tok, tree.NewReuseIndex(old, uint64(len(source))))
}

// run holds the state of one parse run.
type run struct {
	*Parser
	source    []byte
	b         *tree.Builder
	tok       scanner.Tokenizer
	reuse     *tree.ReuseIndex
	la        scanner.Token // lookahead
	relexed   bool          // la has been re-lexed for recovery
	resynced  bool          // the stack has been popped for recovery
	resyncPos uint64        // position of the lookahead at the last pop
}

func (p *Parser) run(source []byte, tok scanner.Tokenizer, ri *tree.ReuseIndex) *tree.Tree {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	r := &run{
		Parser: p,
		source: source,
		b:      tree.NewBuilder(p.lang),
		tok:    tok,
		reuse:  ri,
	}
	p.stack = p.stack[:0]
	p.push(p.lang.InitialState, nil, false)
	r.next(p.lang.LexState(p.lang.InitialState))
	limit := 64*(len(source)+1) + 1024
	for steps := 0; ; steps++ {
		if steps > limit {
			return r.stuck()
		}
		state := p.top().state
		if r.reuse != nil && r.tryReuse(state) {
			continue
		}
		entry := p.lang.Entry(state, r.la.Symbol)
		if entry == nil || entry.Actions[0].Type == lr.RecoverAction {
			if r.recover() {
				continue
			}
			return r.finishWithError()
		}
		action := entry.Actions[0]
		tracer().Debugf("action(%d,%s) = %s", state, p.lang.SymbolName(r.la.Symbol), action)
		switch action.Type {
		case lr.ShiftAction, lr.ShiftRepeatAction:
			r.shift(state, action.State, entry.Reusable)
		case lr.ReduceAction:
			r.reduce(action, entry.Reusable)
		case lr.AcceptAction:
			return r.accept()
		}
	}
}

func (p *Parser) push(state lr.StateID, node *tree.Node, extra bool) {
	p.stack = append(p.stack, stackitem{state: state, node: node, extra: extra})
}

func (p *Parser) top() stackitem {
	return p.stack[len(p.stack)-1]
}

// next fetches a new lookahead token.
func (r *run) next(lexState uint16) {
	r.la = r.tok.NextToken(lexState)
	r.relexed = false
}

func (r *run) info(state lr.StateID, reusable bool) tree.ParseInfo {
	return tree.ParseInfo{
		State:    state,
		LexState: r.la.LexState,
		Examined: r.la.Examined,
		Fragile:  !reusable,
	}
}

// shift pushes a leaf for the lookahead. Shift-repeat is a plain shift for a
// deterministic driver: repetitions get flattened on reduction.
func (r *run) shift(state, target lr.StateID, reusable bool) {
	leaf := r.b.Leaf(r.la.Symbol, r.la.Span, r.info(state, reusable))
	r.push(target, leaf, false)
	r.next(r.lang.LexState(target))
}

// reduce performs a reduce action for a rule
//
//    LHS ➞ X1 … Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stack as items
//
//    [TOS]  Sn(Xn) … S1(X1)  …
//
// possibly with extra items in between, which become children as well.
// Extra items on top of Sn are put back on top of the new item.
func (r *run) reduce(action lr.Action, reusable bool) {
	var trailing []stackitem
	for len(r.stack) > 1 && r.top().extra {
		trailing = append(trailing, r.top())
		r.stack = r.stack[:len(r.stack)-1]
	}
	i := len(r.stack)
	for count := 0; count < int(action.ChildCount) && i > 1; {
		i--
		if !r.stack[i].extra {
			count++
		}
	}
	children := make([]*tree.Node, 0, len(r.stack)-i)
	for _, it := range r.stack[i:] {
		children = append(children, it.node)
	}
	r.stack = r.stack[:i]
	below := r.top().state
	at := r.la.Span.From()
	if len(trailing) > 0 {
		at = trailing[len(trailing)-1].node.StartByte()
	}
	node := r.b.Reduce(action.Symbol, children, r.info(below, reusable), action.Repetition, at)
	if target, ok := r.lang.Goto(below, action.Symbol); ok {
		r.push(target, node, false)
	} else {
		tracer().Errorf("no goto for %s in state %d", r.lang.SymbolName(action.Symbol), below)
		r.push(below, r.b.Error([]*tree.Node{node}, at), true)
	}
	for k := len(trailing) - 1; k >= 0; k-- {
		r.push(r.top().state, trailing[k].node, true)
	}
}

// tryReuse pushes a subtree of the old tree, if one fits the current state
// and lookahead. The subtree has to start with the lookahead token and must
// have been pushed onto the same state in the old parse, then the
// deterministic automaton would rebuild it identically.
func (r *run) tryReuse(state lr.StateID) bool {
	if r.la.IsError() || r.la.Symbol == lr.EndOfInput {
		return false
	}
	for _, n := range r.reuse.Candidates(r.la.Span.From()) {
		if n.ParseState() != state {
			continue
		}
		leaf := n.FirstLeaf()
		if leaf == nil || leaf.Symbol() != r.la.Symbol || leaf.Span() != r.la.Span {
			continue
		}
		target, ok := r.lang.Goto(state, n.Symbol())
		if !ok {
			continue
		}
		r.push(target, n, false)
		r.b.Reused(n)
		r.tok.SkipTo(n.EndByte())
		r.next(n.LookaheadLexState())
		return true
	}
	return false
}

// accept creates the tree. Extra items left on the stack are adopted by the root.
func (r *run) accept() *tree.Tree {
	var root *tree.Node
	var before, after []*tree.Node
	for _, it := range r.stack[1:] {
		switch {
		case !it.extra && root == nil:
			root = it.node
		case root == nil:
			before = append(before, it.node)
		default:
			after = append(after, it.node)
		}
	}
	if root == nil {
		return r.b.Tree(r.b.Error(before, uint64(len(r.source))), r.source)
	}
	root = r.b.Adopt(root, before, after)
	tracer().Infof("accepted input of length %d, %d nodes re-used", len(r.source), r.b.ReusedCount())
	return r.b.Tree(root, r.source)
}

// finishWithError creates a tree with an ERROR root for input which could not
// be recovered at the end.
func (r *run) finishWithError() *tree.Tree {
	var nodes []*tree.Node
	for _, it := range r.stack[1:] {
		nodes = append(nodes, it.node)
	}
	if len(nodes) == 1 && nodes[0].IsError() {
		return r.b.Tree(nodes[0], r.source)
	}
	tracer().Infof("input of length %d not accepted", len(r.source))
	return r.b.Tree(r.b.Error(nodes, uint64(len(r.source))), r.source)
}

// stuck handles an exhausted step budget, which only corrupt tables can cause.
func (r *run) stuck() *tree.Tree {
	err := tabula.NewError(tabula.SyntaxError, tabula.ParserStuck, r.la.Span,
		"parser stuck in state %d", r.top().state)
	tracer().Errorf(err.Error())
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(err)
	}
	return r.finishWithError()
}
