package dict_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/malfong/greinir/dict"
)

func buildTestBlob(t *testing.T) string {
	t.Helper()
	var b dict.Builder
	b.Add(dict.Entry{Form: "hestur", Stem: "hestur", WordID: 101, Class: "no", Subclass: "kk", Tag: "NFET"})
	b.Add(dict.Entry{Form: "hesti", Stem: "hestur", WordID: 101, Class: "no", Subclass: "kk", Tag: "ÞGFET"})
	b.Add(dict.Entry{Form: "hests", Stem: "hestur", WordID: 101, Class: "no", Subclass: "kk", Tag: "EFET"})
	b.Add(dict.Entry{Form: "hestar", Stem: "hestur", WordID: 101, Class: "no", Subclass: "kk", Tag: "NFFT"})
	b.Add(dict.Entry{Form: "er", Stem: "vera", WordID: 202, Class: "so", Subclass: "alm", Tag: "GM-FH-NT-3P-ET"})
	b.Add(dict.Entry{Form: "er", Stem: "er", WordID: 303, Class: "st", Subclass: "alm", Tag: ""})

	blob, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	path := filepath.Join(t.TempDir(), "test.dict")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLookupRoundTrip(t *testing.T) {
	path := buildTestBlob(t)
	d, err := dict.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	readings, ok, err := d.Lookup("hesti")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok {
		t.Fatal("Lookup(\"hesti\") not found")
	}
	if len(readings) != 1 {
		t.Fatalf("got %d readings, want 1", len(readings))
	}
	r := readings[0]
	if r.Stem != "hestur" || r.WordID != 101 || r.Class != "no" || r.Tag != "ÞGFET" {
		t.Errorf("unexpected reading: %+v", r)
	}
}

func TestLookupAmbiguousForm(t *testing.T) {
	path := buildTestBlob(t)
	d, err := dict.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	readings, ok, err := d.Lookup("er")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok || len(readings) != 2 {
		t.Fatalf("got %d readings (ok=%v), want 2", len(readings), ok)
	}
	stems := map[string]bool{}
	for _, r := range readings {
		stems[r.Stem] = true
	}
	if !stems["vera"] || !stems["er"] {
		t.Errorf("missing expected stems in %+v", readings)
	}
}

func TestLookupMissingForm(t *testing.T) {
	path := buildTestBlob(t)
	d, err := dict.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	_, ok, err := d.Lookup("hestarnir")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok {
		t.Fatal("expected Lookup to report not found")
	}
}

func TestLookupOutsideAlphabet(t *testing.T) {
	path := buildTestBlob(t)
	d, err := dict.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	_, ok, err := d.Lookup("中文")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok {
		t.Fatal("expected a non-Latin-1 form to report not found")
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dict")
	if err := os.WriteFile(path, make([]byte, 64), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := dict.Open(path); err != dict.ErrBadMagic {
		t.Fatalf("Open error = %v, want ErrBadMagic", err)
	}
}
