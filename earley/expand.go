package earley

import "github.com/malfong/greinir/token"

// Splitter breaks a single token into the grammatical units the grammar's
// terminals actually describe (e.g. an Icelandic compound word the
// tokenizer left joined). It returns nil when tok needs no splitting.
type Splitter func(tok token.Token) []token.Token

// Expand pre-splits toks with split, building the expanded token sequence
// Parse should run over together with a mapping back to original indices
// (spec §4.4: "the caller may pre-split compound tokens ... the mapping
// from original to expanded token indices must be preserved so that error
// indices returned by the parser can be translated back").
func Expand(toks []token.Token, split Splitter) (expanded []token.Token, toOriginal []int) {
	for i, t := range toks {
		parts := split(t)
		if len(parts) == 0 {
			parts = []token.Token{t}
		}
		for _, p := range parts {
			expanded = append(expanded, p)
			toOriginal = append(toOriginal, i)
		}
	}
	return expanded, toOriginal
}

// TranslateIndex maps an index into the expanded token sequence back to
// its original index, using the mapping Expand produced. Indices outside
// the expanded range are returned unchanged, so it is always safe to call
// on a ParseError.TokenIndex even when no expansion took place.
func TranslateIndex(toOriginal []int, expandedIdx int) int {
	if expandedIdx < 0 || expandedIdx >= len(toOriginal) {
		return expandedIdx
	}
	return toOriginal[expandedIdx]
}
