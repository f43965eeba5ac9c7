// Package sppf implements a Shared Packed Parse Forest, binarized in the
// style of Scott & Johnstone: each family is a pair of child pointers
// (w, v), either of which may be absent (epsilon), per spec §3/§4.4.
//
// Rather than reference-counted, possibly-cyclic node pointers, nodes
// live in an arena and are addressed by a stable NodeID; the
// shared-packing registry is a hash map from (label, start, end) to
// arena index (spec §9 design note).
package sppf

import "fmt"

// NodeID addresses a node within a Forest's arena. The zero value, NilNode,
// denotes an absent child (epsilon) within a Family.
type NodeID uint32

// NilNode is the absent-child sentinel.
const NilNode NodeID = 0

// LabelKind distinguishes the three kinds of SPPF node label (spec §3).
type LabelKind uint8

const (
	// LabelCompleted: a completed nonterminal at [start, end).
	LabelCompleted LabelKind = iota
	// LabelPartial: a partial item A → α·β at [start, end).
	LabelPartial
	// LabelToken: a terminal/token at [start, start+1).
	LabelToken
)

// Label identifies what an SPPF node represents.
type Label struct {
	Kind LabelKind

	// For LabelCompleted and LabelPartial: the nonterminal index.
	Nonterminal int32
	// For LabelPartial: the production and dot position that define the
	// partial item, needed because two different productions (or dot
	// positions) for the same nonterminal at the same span are distinct
	// interior nodes.
	Production int32
	Dot        int32

	// For LabelToken: the terminal index actually matched.
	Terminal int32
}

// Family is one alternative way to build a node's children: an ordered
// pair (W, V) of child pointers, either of which may be NilNode
// (epsilon), plus the production responsible for this family (needed by
// the reducer to score by production priority, and to distinguish
// alternatives that happen to share the same children under different
// productions).
type Family struct {
	W, V NodeID
	Prod int32
}

// node is the internal arena record for one SPPF node.
type node struct {
	label      Label
	start, end uint32
	families   []Family
}

// Forest owns the node arena and the shared-packing registry for
// completed-nonterminal nodes. Interior (partial-item) and token nodes are
// not required to be unique, but in practice this implementation shares
// them too, since doing so is free given the same registry.
type Forest struct {
	nodes    []node // index 0 is unused; NilNode == 0
	registry map[regKey]NodeID
}

type regKey struct {
	label Label
	start uint32
	end   uint32
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	f := &Forest{registry: make(map[regKey]NodeID)}
	f.nodes = append(f.nodes, node{}) // reserve index 0 == NilNode
	return f
}

// Get returns the node data for id. Calling Get(NilNode) is invalid.
func (f *Forest) Get(id NodeID) (Label, uint32, uint32, []Family) {
	n := &f.nodes[id]
	return n.label, n.start, n.end, n.families
}

// Label returns just the label of id.
func (f *Forest) Label(id NodeID) Label { return f.nodes[id].label }

// Span returns the [start, end) span of id.
func (f *Forest) Span(id NodeID) (uint32, uint32) {
	n := &f.nodes[id]
	return n.start, n.end
}

// Families returns the families of id. A node is "ambiguous" (spec §3)
// iff len(Families) > 1.
func (f *Forest) Families(id NodeID) []Family { return f.nodes[id].families }

// IsAmbiguous reports whether id has more than one family.
func (f *Forest) IsAmbiguous(id NodeID) bool { return len(f.nodes[id].families) > 1 }

// IsCompleted reports whether id is not a partial item, i.e. it is
// labelled by a completed nonterminal or a token.
func (f *Forest) IsCompleted(id NodeID) bool {
	return f.nodes[id].label.Kind != LabelPartial
}

// getOrCreate returns the existing node for (label, start, end) if one is
// registered, or creates and registers a new one. This is what guarantees
// shared packing: a completed-nonterminal node with label (N, i, j) is
// unique within the forest (spec §3 invariant).
func (f *Forest) getOrCreate(label Label, start, end uint32) NodeID {
	key := regKey{label: label, start: start, end: end}
	if id, ok := f.registry[key]; ok {
		return id
	}
	id := NodeID(len(f.nodes))
	f.nodes = append(f.nodes, node{label: label, start: start, end: end})
	f.registry[key] = id
	return id
}

// AddFamily appends family fam to node id unless an identical family
// (same W, V and production) is already present — families within one
// node must be distinct alternatives, not duplicate edges.
func (f *Forest) AddFamily(id NodeID, fam Family) {
	n := &f.nodes[id]
	for _, existing := range n.families {
		if existing == fam {
			return
		}
	}
	n.families = append(n.families, fam)
}

// Prune restricts id's families to the single family at index keep,
// discarding the rest. Used by the reducer to collapse an ambiguous node
// once it has chosen a winning family (spec §4.6 pass 3's post-condition:
// "every ambiguous node has exactly one family"). A no-op if id already
// has at most one family and keep is 0.
func (f *Forest) Prune(id NodeID, keep int) {
	n := &f.nodes[id]
	if len(n.families) <= 1 {
		return
	}
	n.families = []Family{n.families[keep]}
}

// Token creates (or returns the shared) leaf node for terminal term
// matched at position pos (spanning [pos, pos+1)), per spec §4.4's
// scanner step.
func (f *Forest) Token(term int32, pos uint32) NodeID {
	label := Label{Kind: LabelToken, Terminal: term}
	return f.getOrCreate(label, pos, pos+1)
}

// Completed returns (creating if necessary) the unique node for completed
// nonterminal nt spanning [start, end).
func (f *Forest) Completed(nt int32, start, end uint32) NodeID {
	label := Label{Kind: LabelCompleted, Nonterminal: nt}
	return f.getOrCreate(label, start, end)
}

// Partial returns (creating if necessary) the node for the partial item
// "prod with dot at position dot of nonterminal nt" spanning [start, end).
func (f *Forest) Partial(nt, prod, dot int32, start, end uint32) NodeID {
	label := Label{Kind: LabelPartial, Nonterminal: nt, Production: prod, Dot: dot}
	return f.getOrCreate(label, start, end)
}

// MakeNode implements the Scott/Johnstone construction referenced in
// spec §4.4:
//
//	make_node(A → α x • β, j, i, w, v, V)
//
// If dot == 1 and the production has at least 2 symbols, the new node is
// just v (no packing needed yet — there is nothing to disambiguate until
// a second symbol has been consumed). Otherwise an SPPF node is found or
// created with label (A, i) when β is empty (a completed nonterminal) or
// (A → α x • β) when β is non-empty (a partial item), spanning [j, i];
// the family (w, v) — or, if w is NilNode, simply v as the sole element of
// a unary family — is added to it.
func (f *Forest) MakeNode(nt, prod int32, dot int, symCount int, j, i uint32, w, v NodeID) NodeID {
	if dot == 1 && symCount >= 2 {
		return v
	}

	var label Label
	if dot == symCount {
		label = Label{Kind: LabelCompleted, Nonterminal: nt}
	} else {
		label = Label{Kind: LabelPartial, Nonterminal: nt, Production: prod, Dot: int32(dot)}
	}
	id := f.getOrCreate(label, j, i)

	var fam Family
	if w == NilNode {
		fam = Family{W: NilNode, V: v, Prod: prod}
	} else {
		fam = Family{W: w, V: v, Prod: prod}
	}
	f.AddFamily(id, fam)
	return id
}

func (l Label) String() string {
	switch l.Kind {
	case LabelToken:
		return fmt.Sprintf("T%d", l.Terminal)
	case LabelPartial:
		return fmt.Sprintf("N%d@%d/%d·", l.Nonterminal, l.Production, l.Dot)
	default:
		return fmt.Sprintf("N%d", l.Nonterminal)
	}
}
