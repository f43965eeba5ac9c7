package simpletree_test

import (
	"testing"

	"github.com/malfong/greinir/earley"
	"github.com/malfong/greinir/grammar"
	"github.com/malfong/greinir/match"
	"github.com/malfong/greinir/reduce"
	"github.com/malfong/greinir/simpletree"
	"github.com/malfong/greinir/token"
)

func arithGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	nts := []*grammar.Nonterminal{{Index: 0, Name: "S"}, {Index: 1, Name: "E"}}
	terms := []*grammar.Terminal{
		nil,
		grammar.NewTerminal(1, "NUM"),
		grammar.NewTerminal(2, "PLUS"),
	}
	E := grammar.EncodeNonterminal(1)
	prods := []*grammar.Production{
		{ID: 0, LHS: 0, Priority: 0, Symbols: []int32{E}},
		{ID: 1, LHS: 1, Priority: 0, Symbols: []int32{E, 2, E}},
		{ID: 2, LHS: 1, Priority: 0, Symbols: []int32{1}},
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
	}
	return false
}

func TestBuildProjectsUnambiguousTree(t *testing.T) {
	g := arithGrammar(t)
	toks := []token.Token{
		token.New(token.Number, "2"),
		token.New(token.Punctuation, "+"),
		token.New(token.Number, "3"),
	}

	root, forest, perr := earley.Parse(g, g.Root, toks, arithMatcher{})
	if perr != nil {
		t.Fatalf("Parse failed: %s", perr.Msg)
	}
	reduce.Reduce(forest, root, toks, g)
	if forest.IsAmbiguous(root) {
		t.Fatal("root still ambiguous after Reduce")
	}

	tree := simpletree.Build(forest, root, g)
	if tree == nil {
		t.Fatal("Build returned nil")
	}
	if tree.Nonterminal == nil || tree.Nonterminal.Name != "S" {
		t.Fatalf("root node = %+v, want nonterminal S", tree)
	}
	if len(tree.Children) != 1 || tree.Children[0].Nonterminal == nil || tree.Children[0].Nonterminal.Name != "E" {
		t.Fatalf("unexpected children: %+v", tree.Children)
	}
	e := tree.Children[0]
	if len(e.Children) != 3 {
		t.Fatalf("E node has %d children, want 3 (E PLUS E)", len(e.Children))
	}
	if !e.Children[1].IsLeaf() || e.Children[1].Terminal.Name() != "PLUS" {
		t.Errorf("middle child = %+v, want PLUS leaf", e.Children[1])
	}
}
