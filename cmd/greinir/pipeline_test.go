package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/malfong/greinir/dict"
	"github.com/malfong/greinir/grammar"
	"github.com/malfong/greinir/sppf"
)

// testDict writes a small compiled lexicon blob covering the two words
// used by testGrammar's sentence and returns its path.
func testDict(t *testing.T) string {
	t.Helper()
	var b dict.Builder
	b.Add(dict.Entry{Form: "hestur", Stem: "hestur", WordID: 1, Class: "no", Subclass: "kk", Tag: ""})
	b.Add(dict.Entry{Form: "hleypur", Stem: "hlaupa", WordID: 2, Class: "so", Subclass: "alm", Tag: ""})
	blob, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	path := filepath.Join(t.TempDir(), "test.dict")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatalf("write dict: %v", err)
	}
	return path
}

// testGrammar writes a minimal two-word sentence grammar, S -> no so, and
// returns its path.
func testGrammar(t *testing.T) string {
	t.Helper()
	nts := []*grammar.Nonterminal{{Index: 0, Name: "S"}}
	terms := []*grammar.Terminal{
		nil,
		grammar.NewTerminal(1, "no"),
		grammar.NewTerminal(2, "so"),
	}
	prods := []*grammar.Production{
		{ID: 0, LHS: 0, Priority: 0, Symbols: []int32{1, 2}},
	}
	g, err := grammar.New(nts, terms, prods, 0, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if err := grammar.Encode(&buf, g); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "test.grammar")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write grammar: %v", err)
	}
	return path
}

func TestPipelineParsesSentence(t *testing.T) {
	dictPath, grammarPath := testDict(t), testGrammar(t)

	d, err := dict.Open(dictPath)
	if err != nil {
		t.Fatalf("Open dict: %v", err)
	}
	defer d.Close()
	g, err := grammar.Load(grammarPath)
	if err != nil {
		t.Fatalf("Load grammar: %v", err)
	}

	toks, root, forest, perr, err := pipeline("hestur hleypur", d, g)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if perr != nil {
		t.Fatalf("parse failed: %s (token %d)", perr.Msg, perr.TokenIndex)
	}
	if root == sppf.NilNode {
		t.Fatalf("expected a root node")
	}
	if len(toks) != 2 {
		t.Fatalf("expected 2 sentence-internal tokens, got %d", len(toks))
	}
	if len(toks[0].Readings) != 1 || toks[0].Readings[0].Class != "no" {
		t.Errorf("token 0 readings = %+v, want one reading of class no", toks[0].Readings)
	}
	if len(toks[1].Readings) != 1 || toks[1].Readings[0].Class != "so" {
		t.Errorf("token 1 readings = %+v, want one reading of class so", toks[1].Readings)
	}
}

func TestPipelineUnknownWordFails(t *testing.T) {
	dictPath, grammarPath := testDict(t), testGrammar(t)
	d, err := dict.Open(dictPath)
	if err != nil {
		t.Fatalf("Open dict: %v", err)
	}
	defer d.Close()
	g, err := grammar.Load(grammarPath)
	if err != nil {
		t.Fatalf("Load grammar: %v", err)
	}

	_, root, _, perr, err := pipeline("bifreið hleypur", d, g)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if perr == nil {
		t.Fatalf("expected a parse error for an unanalyzed first word, got root %v", root)
	}
}

func TestFirstSentenceStripsMarkers(t *testing.T) {
	dictPath, grammarPath := testDict(t), testGrammar(t)
	d, err := dict.Open(dictPath)
	if err != nil {
		t.Fatalf("Open dict: %v", err)
	}
	defer d.Close()
	g, err := grammar.Load(grammarPath)
	if err != nil {
		t.Fatalf("Load grammar: %v", err)
	}

	toks, _, _, perr, err := pipeline("hestur hleypur. Seinni setning.", d, g)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if perr != nil {
		t.Fatalf("parse failed: %s", perr.Msg)
	}
	if len(toks) != 2 {
		t.Fatalf("firstSentence should only return the first sentence's tokens, got %d", len(toks))
	}
}

func TestGrammarNamerFallsBackOnMiss(t *testing.T) {
	g, err := grammar.New(
		[]*grammar.Nonterminal{{Index: 0, Name: "S"}},
		[]*grammar.Terminal{nil, grammar.NewTerminal(1, "no")},
		[]*grammar.Production{{ID: 0, LHS: 0, Priority: 0, Symbols: []int32{1}}},
		0, nil,
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	n := grammarNamer{g}
	if got := n.NonterminalName(0); got != "S" {
		t.Errorf("NonterminalName(0) = %q, want S", got)
	}
	if got := n.NonterminalName(99); got != "?" {
		t.Errorf("NonterminalName(99) = %q, want ?", got)
	}
	if got := n.TerminalName(1); got != "no" {
		t.Errorf("TerminalName(1) = %q, want no", got)
	}
	if got := n.TerminalName(99); got != "?" {
		t.Errorf("TerminalName(99) = %q, want ?", got)
	}
}
