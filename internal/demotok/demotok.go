// Package demotok is a stand-in tokenizer for cmd/greinir and the
// end-to-end tests. It is deliberately not a linguistically correct
// Icelandic tokenizer — the real one is out of scope for this module —
// it only needs to produce something upstream of []token.Token so the
// dictionary/parser pipeline has an input to run against.
package demotok

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/malfong/greinir/token"
)

func tracer() tracing.Trace {
	return tracing.Select("greinir.demotok")
}

const (
	tokWord = iota
	tokNumber
	tokSentenceEnd
	tokPunct
)

var lexer *lexmachine.Lexer

func init() {
	lexer = lexmachine.NewLexer()
	// Icelandic letters beyond ASCII (á, é, í, ó, ú, ý, þ, æ, ö, ð, and
	// uppercase forms) are UTF-8 two-byte sequences with lead byte
	// 0xC3; matching that lead byte followed by any continuation byte
	// is a loose but workable stand-in for a real letter class.
	lexer.Add([]byte(`([a-zA-Z]|\xc3[\x80-\xbf])+`), action(tokWord))
	lexer.Add([]byte(`[0-9]+`), action(tokNumber))
	lexer.Add([]byte(`\.|!|\?`), action(tokSentenceEnd))
	lexer.Add([]byte(`,|:|;|\(|\)|"|-`), action(tokPunct))
	lexer.Add([]byte(" |\t|\n|\r"), skip)
	if err := lexer.Compile(); err != nil {
		panic("demotok: DFA compile failed: " + err.Error())
	}
}

func action(kind int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return rawToken{kind, string(m.Bytes)}, nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

type rawToken struct {
	kind int
	text string
}

// Tokenize splits text into a flat token stream, wrapped in a single
// SentenceBegin/SentenceEnd pair per sentence (sentences are delimited by
// ".", "!" or "?"). Returned tokens carry no Readings; callers run them
// through dict.Lookup themselves.
func Tokenize(text string) ([]token.Token, error) {
	scanner, err := lexer.Scanner([]byte(text))
	if err != nil {
		return nil, err
	}

	var out []token.Token
	out = append(out, token.New(token.SentenceBegin, ""))
	for {
		tok, err, eof := scanner.Next()
		if eof {
			break
		}
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				tracer().Errorf("demotok: unconsumed input at %d", ui.StartColumn)
				scanner.TC = ui.FailTC
				continue
			}
			return nil, err
		}
		raw := tok.(*lexmachine.Token).Value.(rawToken)
		switch raw.kind {
		case tokWord:
			out = append(out, token.New(token.Word, raw.text))
		case tokNumber:
			out = append(out, token.New(token.Number, raw.text))
		case tokPunct:
			out = append(out, token.New(token.Punctuation, raw.text))
		case tokSentenceEnd:
			out = append(out, token.New(token.Punctuation, raw.text))
			out = append(out, token.New(token.SentenceEnd, ""))
			out = append(out, token.New(token.SentenceBegin, ""))
		}
	}
	if out[len(out)-1].Kind == token.SentenceBegin {
		out = out[:len(out)-1]
	} else {
		out = append(out, token.New(token.SentenceEnd, ""))
	}
	return out, nil
}
