package reduce_test

import (
	"testing"

	"github.com/malfong/greinir/earley"
	"github.com/malfong/greinir/grammar"
	"github.com/malfong/greinir/match"
	"github.com/malfong/greinir/reduce"
	"github.com/malfong/greinir/sppf"
	"github.com/malfong/greinir/token"
)

func arithGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	nts := []*grammar.Nonterminal{{Index: 0, Name: "S"}, {Index: 1, Name: "E"}}
	terms := []*grammar.Terminal{
		nil,
		grammar.NewTerminal(1, "NUM"),
		grammar.NewTerminal(2, "PLUS"),
		grammar.NewTerminal(3, "STAR"),
	}
	E := grammar.EncodeNonterminal(1)
	prods := []*grammar.Production{
		{ID: 0, LHS: 0, Priority: 0, Symbols: []int32{E}},
		{ID: 1, LHS: 1, Priority: 0, Symbols: []int32{E, 2, E}},
		{ID: 2, LHS: 1, Priority: 0, Symbols: []int32{E, 3, E}},
		{ID: 3, LHS: 1, Priority: 0, Symbols: []int32{1}},
	}
	g, err := grammar.New(nts, terms, prods, 0, nil)
	if err != nil {
		t.Fatalf("arithGrammar: %v", err)
	}
	return g
}

type arithMatcher struct{}

func (arithMatcher) Matches(tok *token.Token, term match.Terminal) bool {
	switch term.Name() {
	case "NUM":
		return tok.Kind == token.Number
	case "PLUS":
		return tok.Kind == token.Punctuation && tok.Text == "+"
	case "STAR":
		return tok.Kind == token.Punctuation && tok.Text == "*"
	}
	return false
}

func TestReduceCollapsesAmbiguity(t *testing.T) {
	g := arithGrammar(t)
	toks := []token.Token{
		token.New(token.Number, "2"),
		token.New(token.Punctuation, "+"),
		token.New(token.Number, "3"),
		token.New(token.Punctuation, "*"),
		token.New(token.Number, "4"),
	}

	root, forest, perr := earley.Parse(g, g.Root, toks, arithMatcher{})
	if perr != nil {
		t.Fatalf("Parse failed: %s", perr.Msg)
	}
	// The root S -> E is unary; the ambiguity sits in E below it.
	if sppf.CountCombinations(forest, root) < 2 {
		t.Fatal("expected the pre-reduction forest to be ambiguous")
	}

	reducedRoot, score := reduce.Reduce(forest, root, toks, g)
	if reducedRoot != root {
		t.Fatalf("Reduce changed the root id: got %v, want %v", reducedRoot, root)
	}
	if forest.IsAmbiguous(reducedRoot) {
		t.Fatal("root still ambiguous after Reduce")
	}
	if score != 0 {
		t.Errorf("score = %d, want 0 (no heuristic triggers NUM/PLUS/STAR terminals)", score)
	}

	// Idempotence: applying Reduce again must be a no-op.
	again, score2 := reduce.Reduce(forest, root, toks, g)
	if again != root || score2 != score {
		t.Errorf("Reduce is not idempotent: (%v,%d) != (%v,%d)", again, score2, root, score)
	}
}
