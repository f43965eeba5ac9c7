// Package simpletree is a thin post-reduction projection of an SPPF: once
// the reducer has collapsed every node to a single family, Build walks
// that tree into a plain, child-slice-based Node, eliding empty optional
// nonterminals (spec.md §2's table: "non-core adjunct; thin wrapper", and
// §3's Nonterminal "optional" flag).
package simpletree

import (
	"github.com/malfong/greinir/grammar"
	"github.com/malfong/greinir/navigate"
	"github.com/malfong/greinir/sppf"
)

// Node is either a terminal leaf (Terminal != nil) or an interior
// nonterminal node (Nonterminal != nil), spanning [Start, End) tokens.
type Node struct {
	Nonterminal *grammar.Nonterminal
	Terminal    *grammar.Terminal
	Start, End  uint32
	Children    []*Node
}

// IsLeaf reports whether n is a terminal leaf.
func (n *Node) IsLeaf() bool { return n.Terminal != nil }

// Build projects the forest rooted at root — which must already be
// unambiguous, i.e. every reachable node has at most one family — into a
// Node tree. g resolves nonterminal/terminal indices to their definitions
// and decides which nonterminals are elidable optionals.
func Build(f *sppf.Forest, root sppf.NodeID, g *grammar.Grammar) *Node {
	h := navigate.Hooks{
		Epsilon: func() any { return (*Node)(nil) },
		Token: func(f *sppf.Forest, id sppf.NodeID) any {
			label := f.Label(id)
			start, end := f.Span(id)
			return &Node{Terminal: g.Terminal(label.Terminal), Start: start, End: end}
		},
		// A child result is either a *Node (a token leaf or a completed
		// nonterminal) or a []*Node (a partial-item node splicing its
		// accumulated children straight into the parent's list) —
		// partial-item nodes are a binarization artifact of the forest,
		// not grammatical structure, and must not appear as tree nodes.
		AddChildResult: func(acc any, child any) any {
			children, _ := acc.([]*Node)
			switch c := child.(type) {
			case *Node:
				if c != nil {
					children = append(children, c)
				}
			case []*Node:
				children = append(children, c...)
			}
			return children
		},
		FinalizeNode: func(f *sppf.Forest, id sppf.NodeID, familyResults []any) any {
			label, start, end, _ := f.Get(id)
			var children []*Node
			if len(familyResults) > 0 {
				children, _ = familyResults[0].([]*Node)
			}
			if label.Kind == sppf.LabelPartial {
				return children
			}
			nt := g.Nonterminal(label.Nonterminal)
			if nt != nil && nt.IsOptional() && len(children) == 0 {
				return (*Node)(nil)
			}
			return &Node{Nonterminal: nt, Start: start, End: end, Children: children}
		},
	}
	n, _ := navigate.Walk(f, root, h, true).(*Node)
	return n
}
