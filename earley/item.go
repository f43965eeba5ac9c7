package earley

import (
	"github.com/malfong/greinir/grammar"
	"github.com/malfong/greinir/sppf"
)

// item is an Earley state: (A, dot-position, production, origin, sppf
// node), per spec §4.4. node is the SPPF node representing everything
// matched so far by this item (NilNode while dot == 0, except for an
// empty production, whose item carries its epsilon node from the start).
type item struct {
	prod   *grammar.Production
	dot    int
	origin uint32
	node   sppf.NodeID
}

// atEnd reports whether the dot stands at the end of the production (the
// item is completed).
func (it item) atEnd() bool { return it.dot == it.prod.Len() }

// peek returns the encoded symbol the dot precedes, or 0 if the item is
// completed. 0 is never a valid encoded symbol (terminals are 1-indexed
// and nonterminal encodings are negative), so it doubles as "none".
func (it item) peek() int32 {
	if it.atEnd() {
		return 0
	}
	return it.prod.SymbolAt(it.dot)
}

// advance returns a copy of it with the dot moved one position to the
// right and node set to the SPPF node built for that position by
// make_node.
func (it item) advance(node sppf.NodeID) item {
	return item{prod: it.prod, dot: it.dot + 1, origin: it.origin, node: node}
}

// itemKey identifies an item for set-membership purposes, independent of
// its SPPF node (two derivations of the same (production, dot, origin)
// share the item; their SPPF contributions are merged by make_node's
// registry, not by duplicating the item).
type itemKey struct {
	prod   int32
	dot    int
	origin uint32
}

func (it item) key() itemKey {
	return itemKey{prod: it.prod.ID, dot: it.dot, origin: it.origin}
}

// stateSet is an append-only, order-preserving, deduplicated collection of
// items, processed worklist-style: new items may be appended while the
// set is being iterated (the teacher's lr/earley/earley.go does the same
// over its iteratable.Set; here the structure is simpler, since Earley
// items additionally need identity-preserving dedup keyed independently
// of the SPPF node they carry).
type stateSet struct {
	items []item
	index map[itemKey]int
}

func newStateSet() *stateSet {
	return &stateSet{index: make(map[itemKey]int)}
}

// add inserts it if no item with the same key is already present.
// Reports whether it was newly added.
func (s *stateSet) add(it item) bool {
	k := it.key()
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, it)
	return true
}

func (s *stateSet) len() int { return len(s.items) }
func (s *stateSet) at(i int) item { return s.items[i] }
