package earley

import "github.com/malfong/greinir/grammar"

// matchKey identifies one token/terminal pairing. The match callback
// contract (spec §6) requires it to be a pure function of (token,
// terminal), which is exactly what makes memoizing it within one parse
// safe: a scanned position is revisited whenever more than one item is
// waiting on the same terminal at the same column.
type matchKey struct {
	tok  int
	term int32
}

// matches wraps tm.Matches with a per-parse memo keyed by (token index,
// terminal index). This is per-request memoization of a sub-computation,
// not the whole-parse-result caching the spec's Non-goals exclude
// (SPEC_FULL.md, Non-goals): a fresh parseState, and therefore a fresh cache,
// is built for every call to Parse.
func (ps *parseState) matches(tokIdx int, term *grammar.Terminal) bool {
	key := matchKey{tok: tokIdx, term: term.Index}
	if v, ok := ps.matchCache[key]; ok {
		return v
	}
	v := ps.tm.Matches(&ps.toks[tokIdx], term)
	ps.matchCache[key] = v
	return v
}
