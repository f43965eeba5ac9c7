// Package earley implements a generalized Earley-Scott parser: it parses
// an arbitrary (possibly ambiguous, recursive, nullable) grammar and
// produces a Shared Packed Parse Forest, driven by a token-vs-terminal
// match predicate supplied by the morphological layer (spec §4.4).
//
// The control-flow shape (state sets processed via predict/complete/scan
// in a single inner work-queue loop) is ported from the teacher's
// lr/earley/earley.go. What differs from the teacher is the SPPF: the
// teacher reduces to an LR(0) automaton first and only reconstructs a
// forest after acceptance via WalkDerivation; this grammar is parsed
// directly against arbitrary productions, so the SPPF must be built
// inline via Scott's make_node construction (spec §4.4, §9).
package earley

import (
	"github.com/malfong/greinir/grammar"
	"github.com/malfong/greinir/match"
	"github.com/malfong/greinir/sppf"
	"github.com/malfong/greinir/token"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("greinir.earley")
}

// TerminalMatcher decides whether token i's readings license terminal t.
// package match's *Matcher satisfies this directly (spec §9 design note:
// "prefer a trait/interface... over a C-ABI handle pool"). *grammar.Terminal
// satisfies match.Terminal, so callers pass grammar terminals straight
// through without an adapter.
type TerminalMatcher interface {
	Matches(tok *token.Token, term match.Terminal) bool
}

// ParseError carries the earliest token index at which parsing could not
// proceed, per spec §4.4's termination rule and §7's error-handling
// design. It is non-fatal and recoverable at the call site.
type ParseError struct {
	TokenIndex int
	Msg        string
}

func (e *ParseError) Error() string {
	return e.Msg
}

// Parse runs Earley-Scott over toks against g's grammar, starting from
// root, using tm to decide terminal matches. It returns the SPPF root
// node and the forest that owns it, or a *ParseError if no parse exists.
func Parse(g *grammar.Grammar, root int32, toks []token.Token, tm TerminalMatcher) (sppf.NodeID, *sppf.Forest, *ParseError) {
	ps := newParseState(g, toks, tm)
	handle, release := acquire(ps)
	defer release()
	ps.handle = handle

	n := uint32(len(toks))
	ps.states = make([]*stateSet, n+1)
	ps.queues = make([]*stateSet, n+1)
	ps.h = make([]map[int32]sppf.NodeID, n+1)
	for i := range ps.states {
		ps.states[i] = newStateSet()
		ps.queues[i] = newStateSet()
		ps.h[i] = make(map[int32]sppf.NodeID)
	}

	for _, p := range g.ProductionsOf(root) {
		ps.addItem(0, ps.makeInitialItem(p, 0, 0))
	}

	for i := uint32(0); i <= n; i++ {
		ps.saturate(i)
		if i < n {
			ps.scan(i)
		}
	}

	if node, ok := ps.findAccepting(root, n); ok {
		return node, ps.forest, nil
	}
	return sppf.NilNode, ps.forest, &ParseError{
		TokenIndex: ps.failureIndex(n),
		Msg:        "no parse found",
	}
}

// parseState holds everything owned by a single parse job: its Earley
// columns, its SPPF, and its token sequence. It is never shared between
// goroutines (spec §5: "Per-parse state ... is owned by a single parse
// job and not shared").
type parseState struct {
	g      *grammar.Grammar
	toks   []token.Token
	tm     TerminalMatcher
	forest *sppf.Forest
	states []*stateSet
	queues []*stateSet
	h      []map[int32]sppf.NodeID
	handle int

	matchCache map[matchKey]bool
}

func newParseState(g *grammar.Grammar, toks []token.Token, tm TerminalMatcher) *parseState {
	return &parseState{
		g:          g,
		toks:       toks,
		tm:         tm,
		forest:     sppf.NewForest(),
		matchCache: make(map[matchKey]bool),
	}
}

func (ps *parseState) makeInitialItem(p *grammar.Production, origin, pos uint32) item {
	it := item{prod: p, dot: 0, origin: origin}
	if p.Len() == 0 {
		it.node = ps.forest.MakeNode(p.LHS, p.ID, 0, 0, origin, pos, sppf.NilNode, sppf.NilNode)
	}
	return it
}

// addItem classifies a newly built item into E[i] (dot before a
// nonterminal, or completed) or Q[i] (dot before a terminal), per spec
// §4.4's initialization rule, applied uniformly to every item creation
// site.
func (ps *parseState) addItem(i uint32, it item) {
	peek := it.peek()
	if peek == 0 || grammar.IsNonterminal(peek) {
		ps.states[i].add(it)
	} else {
		ps.queues[i].add(it)
	}
}

// saturate runs predictor/completer over E[i] to a fixed point. New items
// discovered mid-iteration are appended to the same work queue, mirroring
// the teacher's S.IterateOnce()/S.Next() pattern in lr/earley/earley.go.
func (ps *parseState) saturate(i uint32) {
	S := ps.states[i]
	for idx := 0; idx < S.len(); idx++ {
		it := S.at(idx)
		if it.atEnd() {
			ps.complete(i, it)
		} else {
			ps.predict(i, it)
		}
	}
	tracer().Debugf("state %d saturated: %d items, %d pending scans", i, S.len(), ps.queues[i].len())
}

// predict implements spec §4.4's Predictor step.
func (ps *parseState) predict(i uint32, it item) {
	C := grammar.NonterminalIndex(it.peek())
	for _, p := range ps.g.ProductionsOf(C) {
		ps.addItem(i, ps.makeInitialItem(p, i, i))
	}
	if node, ok := ps.h[i][C]; ok {
		newNode := ps.forest.MakeNode(it.prod.LHS, it.prod.ID, it.dot+1, it.prod.Len(), it.origin, i, it.node, node)
		ps.addItem(i, it.advance(newNode))
	}
}

// complete implements spec §4.4's Completer step.
func (ps *parseState) complete(i uint32, it item) {
	D := it.prod.LHS
	j := it.origin
	w := it.node

	for _, pit := range ps.states[j].items {
		if pit.atEnd() {
			continue
		}
		if grammar.IsNonterminal(pit.peek()) && grammar.NonterminalIndex(pit.peek()) == D {
			newNode := ps.forest.MakeNode(pit.prod.LHS, pit.prod.ID, pit.dot+1, pit.prod.Len(), pit.origin, i, pit.node, w)
			ps.addItem(i, pit.advance(newNode))
		}
	}
	if j == i {
		ps.h[i][D] = w
	}
}

// scan implements spec §4.4's Scanner step: run after E[i] is saturated,
// over every item in Q[i] whose dot stands on a terminal matching
// tokens[i].
func (ps *parseState) scan(i uint32) {
	Q := ps.queues[i]
	tok := &ps.toks[i]
	for idx := 0; idx < Q.len(); idx++ {
		it := Q.at(idx)
		term := it.peek() // positive: terminal index
		termSym := ps.g.Terminal(term)
		if termSym == nil {
			continue
		}
		if !ps.matches(int(i), termSym) {
			continue
		}
		tokNode := ps.forest.Token(term, i)
		newNode := ps.forest.MakeNode(it.prod.LHS, it.prod.ID, it.dot+1, it.prod.Len(), it.origin, i+1, it.node, tokNode)
		ps.addItem(i+1, it.advance(newNode))
	}
	_ = tok
}

// findAccepting searches E[n] for a completed item deriving root from
// origin 0, per spec §4.4's termination rule.
func (ps *parseState) findAccepting(root int32, n uint32) (sppf.NodeID, bool) {
	for _, it := range ps.states[n].items {
		if it.atEnd() && it.prod.LHS == root && it.origin == 0 {
			return it.node, true
		}
	}
	return sppf.NilNode, false
}

// failureIndex finds the greatest index i >= 1 for which E[i] or Q[i]
// holds an item, or 0 if none does.
func (ps *parseState) failureIndex(n uint32) int {
	for i := int(n); i >= 1; i-- {
		if ps.states[i].len() > 0 || ps.queues[i].len() > 0 {
			return i
		}
	}
	return 0
}
