package sppf

// CountCombinations returns the number of distinct derivations reachable
// from root — for each node, the sum over its families of the product of
// the two children's counts (an absent child or a leaf counts 1),
// composed bottom-up and memoized per node. Used by tests to
// verify end-to-end scenario #6 of spec §8: a heavily ambiguous sentence
// should report more than 100 combinations before reduction, and exactly
// 1 after.
func CountCombinations(f *Forest, root NodeID) int {
	memo := map[NodeID]int{}
	return countNode(f, root, memo)
}

func countNode(f *Forest, id NodeID, memo map[NodeID]int) int {
	if id == NilNode {
		return 1
	}
	if v, ok := memo[id]; ok {
		return v
	}
	memo[id] = 1 // break cycles defensively; SPPFs here are acyclic by construction
	total := 0
	_, _, _, families := f.Get(id)
	if len(families) == 0 {
		total = 1
	}
	for _, fam := range families {
		total += countNode(f, fam.W, memo) * countNode(f, fam.V, memo)
	}
	memo[id] = total
	return total
}
