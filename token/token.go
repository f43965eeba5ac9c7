// Package token defines the token and morphological-reading types that
// flow from an external tokenizer into the dictionary, matcher and parser.
//
// The tokenizer itself is out of scope for this module (see
// internal/demotok for a stand-in used by the CLI and tests); this package
// only fixes the shape of what crosses that boundary.
package token

// Kind identifies the category of a token, as produced by an external
// tokenizer.
type Kind int

const (
	Word Kind = iota
	Punctuation
	Number
	Percent
	Date
	Time
	Year
	Ordinal
	Currency
	Person
	Entity
	SentenceBegin
	SentenceEnd
	ParagraphBegin
	ParagraphEnd
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "WORD"
	case Punctuation:
		return "PUNCTUATION"
	case Number:
		return "NUMBER"
	case Percent:
		return "PERCENT"
	case Date:
		return "DATE"
	case Time:
		return "TIME"
	case Year:
		return "YEAR"
	case Ordinal:
		return "ORDINAL"
	case Currency:
		return "CURRENCY"
	case Person:
		return "PERSON"
	case Entity:
		return "ENTITY"
	case SentenceBegin:
		return "S_BEGIN"
	case SentenceEnd:
		return "S_END"
	case ParagraphBegin:
		return "P_BEGIN"
	case ParagraphEnd:
		return "P_END"
	default:
		return "?"
	}
}

// Reading is one morphological analysis of a token: a BÍN-style
// (lemma, class, subclass, inflection-tag) tuple.
type Reading struct {
	Lemma    string
	Class    string // word class, e.g. "no", "so", "lo"
	Subclass string
	Tag      string // inflection tag, e.g. "NFET" rendered as underscore parts elsewhere

	// variants caches the parsed bitset for Tag. It is filled lazily by
	// whatever package first needs it (normally package match) and is not
	// part of the token's identity.
	variants    uint64
	variantsSet bool
}

// SetVariants caches a pre-computed variant bitset on the reading. Package
// match calls this the first time it parses a reading's tag so that
// repeated matcher calls against the same token do not re-parse the tag
// string every time.
func (r *Reading) SetVariants(v uint64) {
	r.variants = v
	r.variantsSet = true
}

// Variants returns the cached variant bitset and whether one has been set.
func (r *Reading) Variants() (uint64, bool) {
	return r.variants, r.variantsSet
}

// Token is one lexical unit of input: a (kind, text) pair plus an optional
// set of morphological readings.
type Token struct {
	Kind     Kind
	Text     string
	Readings []Reading // nil or empty: no analysis attempted or available
}

// IsUnknownWord reports whether this is a WORD token with no morphological
// readings. Per the parser's error-handling contract this is not itself an
// error: such tokens may still match fallback terminals (e.g. sérnafn).
func (t Token) IsUnknownWord() bool {
	return t.Kind == Word && len(t.Readings) == 0
}

// New constructs a token with no readings.
func New(k Kind, text string) Token {
	return Token{Kind: k, Text: text}
}
