package grammar

import "fmt"

// validate checks the load-time invariants of spec §4.2: every
// nonterminal has at least one production, no nonterminal derives itself
// in a single step without alternatives, every nonterminal is reachable
// from the root, and every nonterminal derives some terminal string (no
// dead nonterminals).
func validate(g *Grammar) error {
	if g.Nonterminal(g.Root) == nil {
		return fmt.Errorf("root nonterminal %d is undefined", g.Root)
	}
	for nt := range g.nonterminals {
		if g.nonterminals[nt] == nil {
			continue
		}
		idx := int32(nt)
		prods := g.productions[idx]
		if len(prods) == 0 {
			return fmt.Errorf("nonterminal %q has no productions", g.nonterminals[nt].Name)
		}
		if len(prods) == 1 && len(prods[0].Symbols) == 1 && prods[0].Symbols[0] == EncodeNonterminal(idx) {
			return fmt.Errorf("nonterminal %q derives only itself in one step", g.nonterminals[nt].Name)
		}
	}

	reachable := reachableFrom(g, g.Root)
	for nt, n := range g.nonterminals {
		if n == nil {
			continue
		}
		if !reachable[int32(nt)] {
			return fmt.Errorf("nonterminal %q is unreachable from root", n.Name)
		}
	}

	productive := productiveSet(g)
	for nt, n := range g.nonterminals {
		if n == nil {
			continue
		}
		if !productive[int32(nt)] {
			return fmt.Errorf("nonterminal %q derives no terminal string", n.Name)
		}
	}
	return nil
}

// reachableFrom computes the set of nonterminal indices reachable from
// root by following productions' nonterminal symbols, breadth-first.
func reachableFrom(g *Grammar, root int32) map[int32]bool {
	seen := map[int32]bool{root: true}
	queue := []int32{root}
	for len(queue) > 0 {
		nt := queue[0]
		queue = queue[1:]
		for _, p := range g.productions[nt] {
			for _, s := range p.Symbols {
				if IsNonterminal(s) {
					child := NonterminalIndex(s)
					if !seen[child] {
						seen[child] = true
						queue = append(queue, child)
					}
				}
			}
		}
	}
	return seen
}

// productiveSet computes, via fixed-point iteration, the set of
// nonterminals that derive at least one finite terminal string (possibly
// the empty string). A nonterminal is productive once it has a
// production all of whose nonterminal symbols are already known
// productive.
func productiveSet(g *Grammar) map[int32]bool {
	productive := map[int32]bool{}
	changed := true
	for changed {
		changed = false
		for nt, prods := range g.productions {
			if productive[nt] {
				continue
			}
			for _, p := range prods {
				ok := true
				for _, s := range p.Symbols {
					if IsNonterminal(s) && !productive[NonterminalIndex(s)] {
						ok = false
						break
					}
				}
				if ok {
					productive[nt] = true
					changed = true
					break
				}
			}
		}
	}
	return productive
}
