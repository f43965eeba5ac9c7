package match

import (
	"strings"

	"github.com/malfong/greinir/token"
)

// Terminal is the minimal view of a grammar terminal that the matcher
// needs. package grammar's *Terminal satisfies this.
type Terminal interface {
	First() string        // category before the first underscore, e.g. "so" in "so_1_nh"
	Name() string          // full terminal name, e.g. "so_1_nh"
	Variants() VariantSet  // union of variant bits named by the terminal
	HasVariant(v VariantSet) bool
}

// classAliases maps a terminal's literal-looking first category to the
// word class it actually requires, for terminals named after specific
// lemmas rather than categories (spec §4.3 policy step 1).
var classAliases = map[string]string{
	"sá":   "fn",
	"vera": "so",
	"hver": "st",
}

// literalCategories are the word-class tags that require an exact
// reading.Class match (as opposed to terminals that key off a literal
// word form, e.g. quoted terminals).
var literalCategories = map[string]bool{
	"no": true, "so": true, "lo": true, "fs": true,
	"fn": true, "pfn": true, "st": true, "ao": true, "eo": true,
	"nhm": true, "gr": true, "tala": true, "töl": true,
	"raðnr": true, "sérnafn": true, "entity": true, "person": true,
}

// undesirableBits marks verb-form variants that are rejected unless the
// terminal explicitly re-enables them via a matching variant.
const undesirableBits = VMoodBh | VMoodSagnb | VMoodLhtht

// Matcher implements the TerminalMatcher contract of spec §4.3: given a
// token and a terminal, decide whether any reading of the token licenses
// the terminal.
type Matcher struct{}

// NewMatcher returns a ready-to-use Matcher. It carries no mutable state;
// a single value may be shared by any number of concurrent parses.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Matches implements the earley.TerminalMatcher interface used by
// package earley's inline callback (see spec §6, "Match callback
// contract"). It must be side-effect-free with respect to caller state;
// the only mutation it performs is memoizing a reading's own variant
// bitset, idempotently, on the reading itself.
func (m *Matcher) Matches(tok *token.Token, term Terminal) bool {
	if len(tok.Readings) == 0 {
		return m.matchesEmptyReadings(tok, term)
	}
	for i := range tok.Readings {
		if m.matchesReading(&tok.Readings[i], term) {
			return true
		}
	}
	return false
}

// matchesEmptyReadings covers tokens without readings (spec §7): an
// unknown word still matches the fallback sérnafn terminal (treated as a
// proper noun when no analysis exists). No other terminal matches a token
// without readings, punctuation tokens included.
func (m *Matcher) matchesEmptyReadings(tok *token.Token, term Terminal) bool {
	return term.First() == "sérnafn" && tok.Kind == token.Word
}

func (m *Matcher) matchesReading(r *token.Reading, term Terminal) bool {
	wanted := requiredClass(term.First())
	if wanted != "" && r.Class != wanted {
		return false
	}

	variants, ok := r.Variants()
	if !ok {
		variants = uint64(ParseTag(r.Tag))
		r.SetVariants(variants)
	}
	have := VariantSet(variants)

	need := term.Variants()
	if !have.Has(need) {
		return false
	}

	if have.HasAny(undesirableBits) && !term.HasVariant(have&undesirableBits) {
		return false
	}
	return true
}

// requiredClass resolves literal-word aliases and literal-category
// terminals to the BÍN word class a matching reading must carry. It
// returns "" for terminals that are not keyed by word class (e.g. quoted
// literal terminals); such terminals then accept a reading of any class,
// and the token's text is not checked.
func requiredClass(first string) string {
	if alias, ok := classAliases[strings.ToLower(first)]; ok {
		return alias
	}
	if literalCategories[first] {
		return first
	}
	return ""
}
