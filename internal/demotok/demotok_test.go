package demotok

import (
	"testing"

	"github.com/malfong/greinir/token"
)

func TestTokenizeSplitsWordsAndSentences(t *testing.T) {
	toks, err := Tokenize("Hestur hleypur. Hann er fljótur!")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Kind != token.SentenceBegin {
		t.Fatalf("first token = %v, want SentenceBegin", toks[0].Kind)
	}
	if toks[len(toks)-1].Kind != token.SentenceEnd {
		t.Fatalf("last token = %v, want SentenceEnd", toks[len(toks)-1].Kind)
	}

	var words []string
	sentences := 0
	for _, tk := range toks {
		if tk.Kind == token.Word {
			words = append(words, tk.Text)
		}
		if tk.Kind == token.SentenceEnd {
			sentences++
		}
	}
	if sentences != 2 {
		t.Errorf("got %d sentences, want 2", sentences)
	}
	want := []string{"Hestur", "hleypur", "Hann", "er", "fljótur"}
	if len(words) != len(want) {
		t.Fatalf("words = %v, want %v", words, want)
	}
	for i, w := range want {
		if words[i] != w {
			t.Errorf("word %d = %q, want %q", i, words[i], w)
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	toks, err := Tokenize("2 kettir")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	foundNum := false
	for _, tk := range toks {
		if tk.Kind == token.Number && tk.Text == "2" {
			foundNum = true
		}
	}
	if !foundNum {
		t.Errorf("expected a Number token for %q in %+v", "2", toks)
	}
}
