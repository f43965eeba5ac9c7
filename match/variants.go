// Package match decides whether a token's morphological readings license a
// given grammar terminal. It is a pure function over a terminal's name
// (first category plus underscore-delimited variants) and a reading's BÍN
// inflection tag.
package match

import "strings"

// VariantSet is a bitset over the variant-category universe described in
// spec §4.3. Representing inflection tags as bitsets (rather than
// substring checks against the raw tag string) turns matching into a
// bitset-subset test, per the design note in spec §9.
type VariantSet uint64

// Variant bits. Each BÍN-derived tag component maps to exactly one bit.
const (
	// Case
	VCaseNf VariantSet = 1 << iota // nf - nominative
	VCaseThf                       // þf - accusative
	VCaseThgf                      // þgf - dative
	VCaseEf                        // ef - genitive

	// Number
	VNumEt // et - singular
	VNumFt // ft - plural

	// Gender
	VGenKk  // kk - masculine
	VGenKvk // kvk - feminine
	VGenHk  // hk - neuter

	// Person
	VPersP1
	VPersP2
	VPersP3

	// Mood
	VMoodFh    // fh - indicative
	VMoodVh    // vh - subjunctive
	VMoodBh    // bh - imperative
	VMoodSagnb // sagnb - supine
	VMoodLh    // lh - present participle
	VMoodLhtht // lhþt - past participle
	VMoodNh    // nh - infinitive

	// Voice
	VVoiceGm // gm - active
	VVoiceMm // mm - middle

	// Tense
	VTenseNt // nt - present
	VTenseTht // þt - past

	// Degree
	VDegMst // mst - comparative
	VDegEsb
	VDegEvb
	VDegFsb // fsb - positive, strong
	VDegVb
	VDegSb

	// Misc flags
	VOp      // op - impersonal verb
	VSubj    // subj - takes a case-marked subject
	VNone    // none - no case required
	VGr      // gr - with suffixed article
	VAbbrev  // abbreviation form
)

// CaseBits, NumberBits and GenderBits group related bits by variant
// category. The matcher in this package does not consult them.
const (
	CaseBits   = VCaseNf | VCaseThf | VCaseThgf | VCaseEf
	NumberBits = VNumEt | VNumFt
	GenderBits = VGenKk | VGenKvk | VGenHk
)

// tagTokens maps a single BÍN-code token (as it appears, underscore- or
// space-delimited, in an inflection tag) to its variant bit.
var tagTokens = map[string]VariantSet{
	"nf": VCaseNf, "þf": VCaseThf, "þgf": VCaseThgf, "ef": VCaseEf,
	"et": VNumEt, "ft": VNumFt,
	"kk": VGenKk, "kvk": VGenKvk, "hk": VGenHk,
	"p1": VPersP1, "p2": VPersP2, "p3": VPersP3,
	"fh": VMoodFh, "vh": VMoodVh, "bh": VMoodBh, "sagnb": VMoodSagnb,
	"lh": VMoodLh, "lhþt": VMoodLhtht, "nh": VMoodNh,
	"gm": VVoiceGm, "mm": VVoiceMm,
	"nt": VTenseNt, "þt": VTenseTht,
	"mst": VDegMst, "esb": VDegEsb, "evb": VDegEvb, "fsb": VDegFsb, "vb": VDegVb, "sb": VDegSb,
	"op": VOp, "subj": VSubj, "none": VNone, "gr": VGr, "abbrev": VAbbrev,
}

// ParseTag splits an inflection tag on '_', '-' and ' ' into its
// components and returns the union of their variant bits. Components are
// looked up exactly as written against the lowercase codes in tagTokens
// ("nf", "p3", "gm", …); anything else, including uppercase BÍN codes
// such as the parts of "GM-FH-NT-3P-ET" and undelimited tags such as
// "NFET", is silently ignored and contributes no bits.
func ParseTag(tag string) VariantSet {
	var v VariantSet
	for _, part := range splitTag(tag) {
		if bit, ok := tagTokens[part]; ok {
			v |= bit
		}
	}
	return v
}

func splitTag(tag string) []string {
	return strings.FieldsFunc(tag, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
}

// Has reports whether all bits in want are present in v.
func (v VariantSet) Has(want VariantSet) bool {
	return v&want == want
}

// HasAny reports whether v shares any bit with want.
func (v VariantSet) HasAny(want VariantSet) bool {
	return v&want != 0
}
