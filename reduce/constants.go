// Package reduce collapses an ambiguous SPPF to a single highest-scoring
// parse tree, using lexical preferences, morphological heuristics, a
// verb-argument table and per-production priorities (spec §4.6).
//
// Grounded on original_source/reducer.py (Reducer.go_with_score,
// _find_options, _find_scores, _reduce) and original_source/matcher.py
// for the verb-argument table shape.
package reduce

// Named weights for the pass-2 heuristics (spec.md §4.6, and its own open
// question: "a reimplementation should keep the weights as named
// constants to enable re-tuning without changing the structure of the
// algorithm").
const (
	preferenceWorseFactor  = -2
	preferenceBetterFactor = 4
	preferenceLiteralBonus = 6 // betterFactor when the better terminal is a literal

	adverbPenalty = -1 // ao, eo

	nounSingularBonus  = 1
	nounAbbrevPenalty  = -1

	prepNominativePenalty = -4
	prepOtherBonus        = 2

	verbArityFactor      = 2
	verbZeroArityPenalty = -4

	verbSagnbBonus = 4
	verbLhBonus    = 3
	verbLhVbPenalty = -2
	verbSubjCaseBonus = 1
	verbSubjNonePenalty = -3
	verbNhNhmBonus     = 4
	verbNhmBonus       = 2
	verbNhNoEfFtBonus  = 4

	numeralTalaPenalty  = -1
	numeralGenitivePenalty = -1

	sernafnNoReadingsBonus = 4

	literalBonus = 1
)
