// Package navigate implements a generic top-down walk over an SPPF, with
// per-node memoization by default (spec §4.5). It is the shared substrate
// for the reducer and simpletree; sppf's Pretty and FlatDump printers walk
// the forest on their own.
package navigate

import "github.com/malfong/greinir/sppf"

// Hooks are the six hook points spec §4.5 names: epsilon-node,
// token-node, nonterminal-node, family-entry (once per child family),
// add-child-result, and finalize-node.
type Hooks struct {
	// Epsilon is called for an absent child (epsilon).
	Epsilon func() any

	// Token is called for a leaf terminal/token node.
	Token func(f *sppf.Forest, id sppf.NodeID) any

	// Nonterminal is called once a nonterminal (or partial-item) node's
	// families have all been walked (for ambiguous nodes, Walk visits every
	// family unless FamilyEntry says otherwise), and only when FinalizeNode
	// is nil; its return value is then the node's result.
	Nonterminal func(f *sppf.Forest, id sppf.NodeID) any

	// FamilyEntry is invoked once per child family of the current node,
	// before descending into it. Returning false skips that family
	// entirely (used by callers, e.g. the reducer post-reduction, that
	// only want to visit an already-chosen single family).
	FamilyEntry func(f *sppf.Forest, id sppf.NodeID, fam sppf.Family, famIdx int) bool

	// AddChildResult folds one child's result into an accumulator for the
	// family currently being visited. acc starts as nil for each family.
	AddChildResult func(acc any, child any) any

	// FinalizeNode is called once per node, after all of its families
	// (that FamilyEntry allowed) have been folded via AddChildResult; the
	// per-family fold results are passed in family order. Its return
	// value is what Walk (and any parent's AddChildResult) sees for this
	// node.
	FinalizeNode func(f *sppf.Forest, id sppf.NodeID, familyResults []any) any
}

// Walk traverses the forest top-down from root, applying h's hooks, and
// returns FinalizeNode's result for root. When memo is true (the
// default), each node's result is computed once and reused on subsequent
// visits — required for the reducer's correctness on a shared DAG, since
// naive re-visiting would re-score shared subtrees as if they were
// distinct and, for deeply ambiguous forests, blow up exponentially.
func Walk(f *sppf.Forest, root sppf.NodeID, h Hooks, memo bool) any {
	w := &walker{f: f, h: h, memo: memo}
	if memo {
		w.cache = map[sppf.NodeID]any{}
	}
	return w.visit(root)
}

type walker struct {
	f     *sppf.Forest
	h     Hooks
	memo  bool
	cache map[sppf.NodeID]any
}

func (w *walker) visit(id sppf.NodeID) any {
	if id == sppf.NilNode {
		if w.h.Epsilon != nil {
			return w.h.Epsilon()
		}
		return nil
	}
	if w.memo {
		if v, ok := w.cache[id]; ok {
			return v
		}
	}

	if w.f.Label(id).Kind == sppf.LabelToken {
		var v any
		if w.h.Token != nil {
			v = w.h.Token(w.f, id)
		}
		if w.memo {
			w.cache[id] = v
		}
		return v
	}

	_, _, _, families := w.f.Get(id)

	var familyResults []any
	for fi, fam := range families {
		if w.h.FamilyEntry != nil && !w.h.FamilyEntry(w.f, id, fam, fi) {
			continue
		}
		var acc any
		acc = w.addChild(acc, w.visit(fam.W))
		acc = w.addChild(acc, w.visit(fam.V))
		familyResults = append(familyResults, acc)
	}

	var result any
	if w.h.FinalizeNode != nil {
		result = w.h.FinalizeNode(w.f, id, familyResults)
	} else if w.h.Nonterminal != nil {
		result = w.h.Nonterminal(w.f, id)
	}
	if w.memo {
		w.cache[id] = result
	}
	return result
}

func (w *walker) addChild(acc any, child any) any {
	if w.h.AddChildResult != nil {
		return w.h.AddChildResult(acc, child)
	}
	return child
}
