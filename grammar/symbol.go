// Package grammar loads and represents a precompiled binary context-free
// grammar: nonterminals, terminals, productions with priorities, and
// per-nonterminal score adjustments (spec §4.2).
package grammar

import (
	"strings"

	"github.com/malfong/greinir/match"
)

// Nonterminal is a grammar symbol that may be reduced to. Index is stable
// for the lifetime of a loaded Grammar.
type Nonterminal struct {
	Index int32
	Name  string
}

// IsOptional reports whether this nonterminal is an "optional" wrapper —
// its name ends in '?' or '*' — used by dumpers and simpletree to elide
// empty optionals (spec §3).
func (n *Nonterminal) IsOptional() bool {
	if n.Name == "" {
		return false
	}
	last := n.Name[len(n.Name)-1]
	return last == '?' || last == '*'
}

// Terminal is a grammar symbol that is matched directly against tokens.
// Its name is a category optionally followed by underscore-delimited
// variants, e.g. "so_1_nh" (verb, one object, infinitive).
type Terminal struct {
	Index    int32
	name     string
	first    string
	variants match.VariantSet
}

// NewTerminal parses a terminal name into its first category and variant
// bitset, per spec §4.3.
func NewTerminal(index int32, name string) *Terminal {
	parts := strings.Split(name, "_")
	t := &Terminal{Index: index, name: name, first: parts[0]}
	for _, p := range parts[1:] {
		t.variants |= match.ParseTag(p)
	}
	return t
}

func (t *Terminal) First() string    { return t.first }
func (t *Terminal) Name() string     { return t.name }
func (t *Terminal) Variants() match.VariantSet { return t.variants }
func (t *Terminal) HasVariant(v match.VariantSet) bool {
	return t.variants.HasAny(v)
}

// --- aspect queries (spec §3) -----------------------------------------

// IsVerbWithNObjects reports whether this terminal names a verb terminal
// requiring exactly n objects (e.g. "so_2_...").
func (t *Terminal) IsVerbWithNObjects(n int) bool {
	if t.first != "so" {
		return false
	}
	parts := strings.Split(t.name, "_")
	for _, p := range parts[1:] {
		switch p {
		case "0":
			if n == 0 {
				return true
			}
		case "1":
			if n == 1 {
				return true
			}
		case "2":
			if n == 2 {
				return true
			}
		}
	}
	return false
}

// IsSubjunctiveParticiple reports whether this is a "so_sagnb" terminal.
func (t *Terminal) IsSubjunctiveParticiple() bool {
	return t.first == "so" && t.HasVariant(match.VMoodSagnb)
}

// IsInfinitive reports whether this is a "so_nh" terminal.
func (t *Terminal) IsInfinitive() bool {
	return t.first == "so" && t.HasVariant(match.VMoodNh)
}

// IsNominalSingular reports whether this is a singular noun terminal.
func (t *Terminal) IsNominalSingular() bool {
	return t.first == "no" && t.HasVariant(match.VNumEt)
}

// IsAbbreviationForm reports whether this terminal only matches
// abbreviated word forms.
func (t *Terminal) IsAbbreviationForm() bool {
	return t.HasVariant(match.VAbbrev)
}

// IsLiteral reports whether the terminal's name is a quoted literal, e.g.
// "\"og\"". Package match puts no word-class requirement on such
// terminals and does not compare them against the token's text.
func (t *Terminal) IsLiteral() bool {
	return strings.HasPrefix(t.name, "\"") || strings.HasPrefix(t.name, "'")
}
