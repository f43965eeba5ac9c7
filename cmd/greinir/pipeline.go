package main

import (
	"os"

	"github.com/malfong/greinir/dict"
	"github.com/malfong/greinir/earley"
	"github.com/malfong/greinir/grammar"
	"github.com/malfong/greinir/internal/demotok"
	"github.com/malfong/greinir/match"
	"github.com/malfong/greinir/reduce"
	"github.com/malfong/greinir/sppf"
	"github.com/malfong/greinir/token"
)

// grammarNamer adapts *grammar.Grammar to sppf.SymbolNamer.
type grammarNamer struct{ g *grammar.Grammar }

func (n grammarNamer) NonterminalName(idx int32) string {
	if nt := n.g.Nonterminal(idx); nt != nil {
		return nt.Name
	}
	return "?"
}

func (n grammarNamer) TerminalName(idx int32) string {
	if t := n.g.Terminal(idx); t != nil {
		return t.Name()
	}
	return "?"
}

// annotate fills in each word token's Readings from d, leaving
// non-word tokens (punctuation, sentence markers) untouched.
func annotate(toks []token.Token, d *dict.Dict) error {
	for i := range toks {
		if toks[i].Kind != token.Word {
			continue
		}
		readings, ok, err := d.Lookup(toks[i].Text)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		for _, r := range readings {
			toks[i].Readings = append(toks[i].Readings, token.Reading{
				Lemma:    r.Stem,
				Class:    r.Class,
				Subclass: r.Subclass,
				Tag:      r.Tag,
			})
		}
	}
	return nil
}

// firstSentence returns the tokens between the first SentenceBegin/
// SentenceEnd pair, excluding the markers themselves and a sentence-final
// ".", "!" or "?" punctuation token right before SentenceEnd. The
// grammar's root production models a sentence's words, not the
// tokenizer's boundary markers or terminators, so those never reach
// earley.Parse.
func firstSentence(toks []token.Token) []token.Token {
	start := -1
	for i, tok := range toks {
		if tok.Kind == token.SentenceBegin {
			start = i + 1
			continue
		}
		if tok.Kind == token.SentenceEnd && start >= 0 {
			end := i
			if end > start && toks[end-1].Kind == token.Punctuation {
				switch toks[end-1].Text {
				case ".", "!", "?":
					end--
				}
			}
			return toks[start:end]
		}
	}
	if start >= 0 {
		return toks[start:]
	}
	return toks
}

// pipeline runs the full tokenize → lookup → parse chain over the first
// sentence of text, without reducing; callers decide whether to reduce
// (parse) or dump the raw forest (dump-forest).
func pipeline(text string, d *dict.Dict, g *grammar.Grammar) ([]token.Token, sppf.NodeID, *sppf.Forest, *earley.ParseError, error) {
	all, err := demotok.Tokenize(text)
	if err != nil {
		return nil, sppf.NilNode, nil, nil, err
	}
	toks := firstSentence(all)
	if err := annotate(toks, d); err != nil {
		return nil, sppf.NilNode, nil, nil, err
	}
	m := match.NewMatcher()
	root, forest, perr := earley.Parse(g, g.Root, toks, m)
	return toks, root, forest, perr, nil
}

func reduceAndPrint(root sppf.NodeID, forest *sppf.Forest, toks []token.Token, g *grammar.Grammar, flat bool) {
	reduce.Reduce(forest, root, toks, g)
	namer := grammarNamer{g}
	if flat {
		sppf.FlatDump(os.Stdout, forest, root, namer)
		return
	}
	sppf.Pretty(os.Stdout, forest, root, namer)
}
