package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompileDictCmdRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "lex.tsv")
	out := filepath.Join(dir, "out.dict")

	content := "# comment, skipped\n\nhestur\thestur\t1\tno\tkk\tNFET\n"
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := compileDictCmd.RunE(compileDictCmd, []string{src, out}); err != nil {
		t.Fatalf("compile-dict: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat out: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected a non-empty compiled blob")
	}
}

func TestCompileDictCmdRejectsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "lex.tsv")
	out := filepath.Join(dir, "out.dict")
	if err := os.WriteFile(src, []byte("too\tfew\tfields\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	err := compileDictCmd.RunE(compileDictCmd, []string{src, out})
	if err == nil {
		t.Fatalf("expected an error for a malformed line")
	}
	if !strings.Contains(err.Error(), "6 tab-separated fields") {
		t.Errorf("error = %v, want a field-count complaint", err)
	}
}

func TestParseCmdEndToEnd(t *testing.T) {
	origDict, origGrammar, origFlat := parseDictPath, parseGrammarPath, parseFlat
	defer func() {
		parseDictPath, parseGrammarPath, parseFlat = origDict, origGrammar, origFlat
	}()

	parseDictPath = testDict(t)
	parseGrammarPath = testGrammar(t)
	parseFlat = true

	if err := parseCmd.RunE(parseCmd, []string{"hestur hleypur"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
}

func TestParseCmdReportsNoParse(t *testing.T) {
	origDict, origGrammar := parseDictPath, parseGrammarPath
	defer func() { parseDictPath, parseGrammarPath = origDict, origGrammar }()

	parseDictPath = testDict(t)
	parseGrammarPath = testGrammar(t)

	err := parseCmd.RunE(parseCmd, []string{"hleypur hestur"})
	if err == nil {
		t.Fatalf("expected a parse failure for a word-order mismatch")
	}
}

func TestDumpForestCmdReportsCombinations(t *testing.T) {
	origDict, origGrammar := dumpDictPath, dumpGrammarPath
	defer func() { dumpDictPath, dumpGrammarPath = origDict, origGrammar }()

	dumpDictPath = testDict(t)
	dumpGrammarPath = testGrammar(t)

	if err := dumpForestCmd.RunE(dumpForestCmd, []string{"hestur hleypur"}); err != nil {
		t.Fatalf("dump-forest: %v", err)
	}
}
