package grammar

// Production is an ordered sequence of symbols, packed as signed integers:
// negative entries are nonterminal indices, positive entries are terminal
// indices (spec §3). Productions are owned by the Grammar; they are
// referenced by packed integer vectors and, once loaded, never mutated.
type Production struct {
	ID       int32
	LHS      int32 // nonterminal index this production reduces to
	Priority int32 // lower is preferred
	Symbols  []int32
}

// Len returns the number of symbols on the right-hand side.
func (p *Production) Len() int { return len(p.Symbols) }

// SymbolAt returns the encoded symbol at position i (negative: nonterminal
// index; positive: terminal index).
func (p *Production) SymbolAt(i int) int32 { return p.Symbols[i] }

// IsNonterminal reports whether the encoded symbol s denotes a
// nonterminal.
func IsNonterminal(s int32) bool { return s < 0 }

// NonterminalIndex decodes a nonterminal symbol back to its index.
func NonterminalIndex(s int32) int32 { return -s }

// EncodeNonterminal encodes a nonterminal index as a grammar symbol.
func EncodeNonterminal(index int32) int32 { return -index }
