package parser

import (
	"github.com/npillmayer/tabula/lr"
	"github.com/npillmayer/tabula/lr/tree"
)

// recover is called if there is no action for the lookahead in the current
// state. It returns false if parsing cannot continue; this happens at the end
// of input only.
//
// Every strategy makes progress: re-lexing is done at most once per token,
// popping at most once per input position, and skipping consumes the token.
func (r *run) recover() bool {
	la := r.la
	tracer().Debugf("no action for %s in state %d", la, r.top().state)
	// the lookahead may lex differently with all tokens enabled
	recLex := r.lang.LexState(lr.RecoveryState)
	if !r.relexed && la.LexState != recLex && la.Symbol != lr.EndOfInput {
		r.tok.SkipTo(la.Span.From())
		r.la = r.tok.NextToken(recLex)
		r.relexed = true
		if r.la.Symbol != la.Symbol || r.la.Span != la.Span {
			tracer().Debugf("re-lexed lookahead as %s", r.la)
			return true
		}
	}
	if !r.poppedAt(la.Span.From()) && r.popToResync() {
		return true
	}
	if la.Symbol == lr.EndOfInput {
		return false
	}
	r.skip()
	return true
}

// popToResync searches the stack for the topmost state with an action for the
// lookahead. The items above it are popped and wrapped into an ERROR node,
// which is pushed as an extra item.
func (r *run) popToResync() bool {
	for i := len(r.stack) - 2; i >= 0; i-- {
		it := r.stack[i]
		if it.extra {
			continue
		}
		e := r.lang.Entry(it.state, r.la.Symbol)
		if e == nil || e.Actions[0].Type == lr.RecoverAction {
			continue
		}
		popped := make([]*tree.Node, 0, len(r.stack)-i-1)
		for _, p := range r.stack[i+1:] {
			popped = append(popped, p.node)
		}
		r.stack = r.stack[:i+1]
		r.push(it.state, r.b.Error(popped, r.la.Span.From()), true)
		r.resynced, r.resyncPos = true, r.la.Span.From()
		tracer().Debugf("popped %d items to resync in state %d", len(popped), it.state)
		return true
	}
	return false
}

// poppedAt is true if the stack has already been popped for a lookahead at pos.
func (r *run) poppedAt(pos uint64) bool {
	return r.resynced && r.resyncPos == pos
}

// skip discards the lookahead, recording it as part of an ERROR node. The
// next token is lexed in the recovery state's mode, where every token is
// valid: keywords must not be taken for identifiers while resynchronizing.
func (r *run) skip() {
	state := r.top().state
	info := r.info(state, false)
	var leaf *tree.Node
	if r.la.IsError() {
		leaf = r.b.ErrorLeaf(r.la.Err, r.la.Span, info)
	} else {
		leaf = r.b.Leaf(r.la.Symbol, r.la.Span, info)
	}
	tracer().Debugf("skipping %s", r.la)
	if top := r.top(); !top.extra || !r.b.AppendError(top.node, leaf) {
		r.push(state, r.b.Error([]*tree.Node{leaf}, r.la.Span.From()), true)
	}
	r.next(r.lang.LexState(lr.RecoveryState))
}
