package reduce

import "strings"

// Preference is one (worse, better, factor) triple: terminals whose
// First() is in Worse are penalized relative to terminals whose First()
// is in Better, for the word this entry is keyed by (spec §4.6 pass 2
// step 1). The original system loads these from an external
// Reynir.conf-equivalent; that config/front-end layer is out of core
// scope (SPEC_FULL.md §4.6), so this table ships a small, representative
// built-in set instead of a file loader.
type Preference struct {
	Worse  []string
	Better []string
	Factor int
}

// PreferenceTable maps a lowercased word to its preference triples.
type PreferenceTable map[string][]Preference

// DefaultPreferences is a representative built-in table: a handful of
// genuinely ambiguous Icelandic function words, to exercise pass 2 step 1
// end to end without depending on the licensed external config.
var DefaultPreferences = PreferenceTable{
	// "að" is most often the infinitive marker, rarely a preposition.
	"að": {{Worse: []string{"fs"}, Better: []string{"nhm"}, Factor: 1}},
	// "sem" is the relative conjunction far more often than a pronoun.
	"sem": {{Worse: []string{"pfn"}, Better: []string{"st"}, Factor: 1}},
	// "til" is almost always a preposition, rarely a noun reading of the
	// homograph.
	"til": {{Worse: []string{"no"}, Better: []string{"fs"}, Factor: 1}},
}

// Get returns the preference triples for word (case-folded), or nil.
func (t PreferenceTable) Get(word string) []Preference {
	return t[strings.ToLower(word)]
}
