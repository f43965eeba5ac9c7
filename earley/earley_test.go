package earley

import (
	"testing"

	"github.com/malfong/greinir/grammar"
	"github.com/malfong/greinir/match"
	"github.com/malfong/greinir/sppf"
	"github.com/malfong/greinir/token"
)

// arithGrammar builds the classic ambiguous arithmetic grammar
// (S -> E; E -> E PLUS E | E STAR E | NUM) directly, bypassing the binary
// format — exactly the use grammar.New documents itself for.
func arithGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	nts := []*grammar.Nonterminal{
		{Index: 0, Name: "S"},
		{Index: 1, Name: "E"},
	}
	terms := []*grammar.Terminal{
		nil, // index 0 unused, terminals are 1-indexed
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

// arithMatcher matches NUM against token.Number and PLUS/STAR against
// literal text, independent of package match's BÍN-oriented policy —
// this exercises the TerminalMatcher contract in isolation.
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

func numTok(text string) token.Token { return token.New(token.Number, text) }
func opTok(text string) token.Token  { return token.New(token.Punctuation, text) }

func TestParseAmbiguousArithmetic(t *testing.T) {
	g := arithGrammar(t)
	toks := []token.Token{numTok("2"), opTok("+"), numTok("3"), opTok("*"), numTok("4")}

	root, forest, perr := Parse(g, g.Root, toks, arithMatcher{})
	if perr != nil {
		t.Fatalf("Parse failed: %s (at token %d)", perr.Msg, perr.TokenIndex)
	}
	if got := sppf.CountCombinations(forest, root); got != 2 {
		t.Errorf("CountCombinations = %d, want 2 (Catalan(2))", got)
	}
}

func TestParseSingleNumber(t *testing.T) {
	g := arithGrammar(t)
	toks := []token.Token{numTok("7")}

	root, forest, perr := Parse(g, g.Root, toks, arithMatcher{})
	if perr != nil {
		t.Fatalf("Parse failed: %s", perr.Msg)
	}
	if n := sppf.CountCombinations(forest, root); n != 1 {
		t.Errorf("CountCombinations = %d, want 1", n)
	}
}

func TestParseFailureReportsTokenIndex(t *testing.T) {
	g := arithGrammar(t)
	// "2 + + 3" — the second PLUS has no left operand.
	toks := []token.Token{numTok("2"), opTok("+"), opTok("+"), numTok("3")}

	_, _, perr := Parse(g, g.Root, toks, arithMatcher{})
	if perr == nil {
		t.Fatal("expected a parse error, got none")
	}
	if perr.TokenIndex != 2 {
		t.Errorf("TokenIndex = %d, want 2 (the unexpected second '+')", perr.TokenIndex)
	}
}

func TestExpandTranslatesIndices(t *testing.T) {
	toks := []token.Token{numTok("12"), opTok("+")}
	split := func(tok token.Token) []token.Token {
		if tok.Kind == token.Number && tok.Text == "12" {
			return []token.Token{numTok("1"), numTok("2")}
		}
		return nil
	}
	expanded, toOriginal := Expand(toks, split)
	if len(expanded) != 3 {
		t.Fatalf("len(expanded) = %d, want 3", len(expanded))
	}
	if TranslateIndex(toOriginal, 0) != 0 || TranslateIndex(toOriginal, 1) != 0 || TranslateIndex(toOriginal, 2) != 1 {
		t.Errorf("toOriginal = %v, want [0 0 1]", toOriginal)
	}
}

func TestHandlePoolReleases(t *testing.T) {
	g := arithGrammar(t)
	toks := []token.Token{numTok("1")}
	for i := 0; i < handlePoolSize+1; i++ {
		if _, _, perr := Parse(g, g.Root, toks, arithMatcher{}); perr != nil {
			t.Fatalf("iteration %d: Parse failed: %s", i, perr.Msg)
		}
	}
}
