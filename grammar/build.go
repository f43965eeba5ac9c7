package grammar

import "github.com/emirpasic/gods/maps/treemap"

// New builds and validates a Grammar from in-memory components, without
// going through the binary format. Used by the tests of other packages
// (earley, reduce, simpletree, cmd/greinir) that need a small hand-built
// grammar rather than a compiled .grammar file.
func New(nts []*Nonterminal, terms []*Terminal, prods []*Production, root int32, scoreAdjust map[int32]int) (*Grammar, error) {
	g := build(nts, terms, prods, root, scoreAdjust)
	if err := validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// build assembles a Grammar from parsed components, indexing productions
// both by nonterminal and, within that, by priority. Used by both the
// binary decoder and New.
func build(nts []*Nonterminal, terms []*Terminal, prods []*Production, root int32, scoreAdjust map[int32]int) *Grammar {
	g := &Grammar{
		Root:         root,
		nonterminals: nts,
		terminals:    terms,
		productions:  make(map[int32][]*Production),
		byID:         make(map[int32]*Production),
		byPriority:   make(map[int32]*treemap.Map),
		scoreAdjust:  scoreAdjust,
	}
	if g.scoreAdjust == nil {
		g.scoreAdjust = map[int32]int{}
	}
	for _, p := range prods {
		g.byID[p.ID] = p
		g.productions[p.LHS] = append(g.productions[p.LHS], p)
		tm, ok := g.byPriority[p.LHS]
		if !ok {
			tm = treemap.NewWithIntComparator()
			g.byPriority[p.LHS] = tm
		}
		var bucket []*Production
		if v, ok := tm.Get(int(p.Priority)); ok {
			bucket = v.([]*Production)
		}
		bucket = append(bucket, p)
		tm.Put(int(p.Priority), bucket)
	}
	return g
}
