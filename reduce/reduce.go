package reduce

import (
	"strings"

	"github.com/malfong/greinir/grammar"
	"github.com/malfong/greinir/match"
	"github.com/malfong/greinir/navigate"
	"github.com/malfong/greinir/sppf"
	"github.com/malfong/greinir/token"
)

// Reduce collapses the ambiguous forest rooted at root to a single
// highest-scoring parse tree, per spec.md §4.6's three passes, and
// returns the (unchanged) root node id together with its total score.
// After Reduce returns, every node reachable from root has at most one
// family (sppf.Forest.Prune's post-condition).
func Reduce(f *sppf.Forest, root sppf.NodeID, toks []token.Token, g *grammar.Grammar) (sppf.NodeID, int) {
	finals := gatherFinals(f, root, g)
	scores := scoreTerminals(finals, toks)
	total := reduceTree(f, root, g, scores)
	return root, total
}

// gatherFinals implements pass 1: record, for each token index, the set
// of terminals actually matched in some family of the pre-reduction
// forest. A single memoized navigate.Walk visits every node (and every
// family of every node) exactly once, which is enough since we only need
// the occurrence set, not a per-path accounting.
func gatherFinals(f *sppf.Forest, root sppf.NodeID, g *grammar.Grammar) map[int][]*grammar.Terminal {
	finals := map[int][]*grammar.Terminal{}
	seen := map[int]map[int32]bool{}

	h := navigate.Hooks{
		Token: func(f *sppf.Forest, id sppf.NodeID) any {
			label := f.Label(id)
			start, _ := f.Span(id)
			i := int(start)
			if seen[i] == nil {
				seen[i] = map[int32]bool{}
			}
			if !seen[i][label.Terminal] {
				seen[i][label.Terminal] = true
				finals[i] = append(finals[i], g.Terminal(label.Terminal))
			}
			return nil
		},
	}
	navigate.Walk(f, root, h, true)
	return finals
}

// scoreTerminals implements pass 2: initialize every matched terminal's
// score to 0, then apply preference pairs and the per-category
// heuristics of spec.md §4.6.
func scoreTerminals(finals map[int][]*grammar.Terminal, toks []token.Token) map[int]map[int32]int {
	scores := map[int]map[int32]int{}
	for i, terms := range finals {
		scores[i] = map[int32]int{}
		for _, t := range terms {
			scores[i][t.Index] = 0
		}
	}

	applyPreferences(finals, toks, scores)
	applyHeuristics(finals, toks, scores)

	return scores
}

func applyPreferences(finals map[int][]*grammar.Terminal, toks []token.Token, scores map[int]map[int32]int) {
	for i, terms := range finals {
		if len(terms) == 0 || sameFirst(terms) {
			continue
		}
		prefs := DefaultPreferences.Get(toks[i].Text)
		if prefs == nil {
			continue
		}
		adjWorse := map[int32]int{}
		adjBetter := map[int32]int{}
		for _, pref := range prefs {
			for _, wt := range terms {
				if !containsStr(pref.Worse, wt.First()) {
					continue
				}
				for _, bt := range terms {
					if wt.Index == bt.Index || !containsStr(pref.Better, bt.First()) {
						continue
					}
					adjW := preferenceWorseFactor * pref.Factor
					adjB := preferenceBetterFactor * pref.Factor
					if isLiteralName(bt.Name()) {
						adjB = preferenceLiteralBonus * pref.Factor
					}
					if cur, ok := adjWorse[wt.Index]; !ok || adjW < cur {
						adjWorse[wt.Index] = adjW
					}
					if cur, ok := adjBetter[bt.Index]; !ok || adjB > cur {
						adjBetter[bt.Index] = adjB
					}
				}
			}
		}
		for idx, adj := range adjWorse {
			scores[i][idx] += adj
		}
		for idx, adj := range adjBetter {
			scores[i][idx] += adj
		}
	}
}

func applyHeuristics(finals map[int][]*grammar.Terminal, toks []token.Token, scores map[int]map[int32]int) {
	for i, terms := range finals {
		tok := &toks[i]
		for _, t := range terms {
			s := scores[i][t.Index]

			switch t.First() {
			case "ao", "eo":
				s += adverbPenalty
			case "no":
				if t.HasVariant(match.VNumEt) {
					s += nounSingularBonus
				}
				if t.HasVariant(match.VAbbrev) {
					s += nounAbbrevPenalty
				}
			case "fs":
				if t.HasVariant(match.VCaseNf) {
					s += prepNominativePenalty
				} else {
					s += prepOtherBonus
				}
			case "so":
				s += verbScore(t, tok, finals, i)
			case "tala", "töl":
				if t.First() == "tala" {
					s += numeralTalaPenalty
				}
				for _, alt := range terms {
					if (alt.First() == "no" || alt.First() == "töl") && alt.HasVariant(match.VCaseEf) {
						scores[i][alt.Index] += numeralGenitivePenalty
					}
				}
			case "sérnafn":
				if len(tok.Readings) == 0 {
					s += sernafnNoReadingsBonus
				}
			}

			if isLiteralName(t.Name()) {
				s += literalBonus
			}
			scores[i][t.Index] = s
		}

		// The nhm bonus feeds back into the *previous* token's nhm
		// terminal; applied in its own pass so it doesn't depend on
		// iteration order within the terminal loop above.
		for _, t := range terms {
			if t.First() == "so" && t.IsInfinitive() && i > 0 {
				for _, pt := range finals[i-1] {
					if pt.First() == "nhm" {
						scores[i-1][pt.Index] += verbNhmBonus
					}
				}
			}
		}
	}
}

// verbScore computes the so-category contribution of pass 2 step 2
// (spec.md §4.6), excluding the nhm-propping side effect on the previous
// token, which applyHeuristics applies separately.
func verbScore(t *grammar.Terminal, tok *token.Token, finals map[int][]*grammar.Terminal, i int) int {
	s := 0
	for arity := 0; arity <= 2; arity++ {
		if !t.IsVerbWithNObjects(arity) {
			continue
		}
		if arity == 0 && !t.HasVariant(match.VVoiceMm) && !zeroArgVerbListed(tok) {
			s += verbZeroArityPenalty
		} else {
			s += verbArityFactor * arity
		}
		break
	}
	for _, r := range tok.Readings {
		if r.Class == "so" {
			s += DefaultVerbScores.Score(r.Lemma, caseSignature(t.Name()))
			break // one match per terminal, per spec.md §4.6
		}
	}
	if t.IsSubjunctiveParticiple() {
		s += verbSagnbBonus
	}
	if t.HasVariant(match.VMoodLh) {
		if t.HasVariant(match.VDegVb) {
			s += verbLhVbPenalty
		} else {
			s += verbLhBonus
		}
	}
	if t.HasVariant(match.VSubj) {
		s += verbSubjCaseBonus
	}
	if t.HasVariant(match.VNone) {
		s += verbSubjNonePenalty
	}
	if t.IsInfinitive() {
		if i > 0 {
			for _, pt := range finals[i-1] {
				if pt.First() == "nhm" {
					s += verbNhNhmBonus
					break
				}
			}
		}
		if hasAlternative(finals[i], "no", match.VCaseEf|match.VNumFt) {
			s += verbNhNoEfFtBonus
		}
	}
	return s
}

func zeroArgVerbListed(tok *token.Token) bool {
	for _, r := range tok.Readings {
		if ZeroArgVerbs[r.Lemma] {
			return true
		}
	}
	return false
}

func hasAlternative(terms []*grammar.Terminal, first string, want match.VariantSet) bool {
	for _, t := range terms {
		if t.First() == first && t.Variants().Has(want) {
			return true
		}
	}
	return false
}

func sameFirst(terms []*grammar.Terminal) bool {
	for _, t := range terms[1:] {
		if t.First() != terms[0].First() {
			return false
		}
	}
	return true
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func isLiteralName(name string) bool {
	return strings.HasPrefix(name, "\"") || strings.HasPrefix(name, "'")
}

// reduceTree implements pass 3: a bottom-up, memoized navigate.Walk that
// folds each family's child scores, partitions a node's families by
// minimum production priority, keeps the highest-scoring survivor, prunes
// the rest, and adds the nonterminal's score adjustment for completed
// nodes.
func reduceTree(f *sppf.Forest, root sppf.NodeID, g *grammar.Grammar, scores map[int]map[int32]int) int {
	h := navigate.Hooks{
		Epsilon: func() any { return 0 },
		Token: func(f *sppf.Forest, id sppf.NodeID) any {
			label := f.Label(id)
			start, _ := f.Span(id)
			return scores[int(start)][label.Terminal]
		},
		AddChildResult: func(acc any, child any) any {
			c, _ := child.(int)
			if acc == nil {
				return c
			}
			a, _ := acc.(int)
			return a + c
		},
		FinalizeNode: func(f *sppf.Forest, id sppf.NodeID, familyResults []any) any {
			label, _, _, families := f.Get(id)
			best := chooseFamily(g, families, familyResults)
			f.Prune(id, best)
			total, _ := familyResults[best].(int)
			if label.Kind == sppf.LabelCompleted {
				total += g.ScoreAdjustment(label.Nonterminal)
			}
			return total
		},
	}
	result := navigate.Walk(f, root, h, true)
	total, _ := result.(int)
	return total
}

// chooseFamily applies spec.md §4.6 pass 3's selection rule: partition by
// minimum production priority, then pick the highest score among
// survivors (first-encountered wins ties).
func chooseFamily(g *grammar.Grammar, families []sppf.Family, results []any) int {
	if len(families) <= 1 {
		return 0
	}
	minPriority := int32(0)
	havePriority := false
	for _, fam := range families {
		p := g.ProductionByID(fam.Prod)
		if p == nil {
			continue
		}
		if !havePriority || p.Priority < minPriority {
			minPriority = p.Priority
			havePriority = true
		}
	}

	best := 0
	bestScore := 0
	haveBest := false
	for i, fam := range families {
		if havePriority {
			if p := g.ProductionByID(fam.Prod); p != nil && p.Priority != minPriority {
				continue
			}
		}
		s, _ := results[i].(int)
		if !haveBest || s > bestScore {
			best = i
			bestScore = s
			haveBest = true
		}
	}
	return best
}
