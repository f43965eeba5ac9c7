// Package dict implements the compressed morphological lexicon: a
// read-only, mmap'd binary blob mapping a word form to its readings
// (stem, word id, class, subclass, inflection tag), per spec.md §4.1.
//
// The blob is mapped and used in place — Lookup never builds an
// auxiliary index proportional to the dictionary's size; it decodes
// directly out of the mapped bytes on every call, following the
// teacher-pack's mmap-backed-blob idiom (golang.org/x/exp/mmap).
package dict

import "encoding/binary"

// Magic is the 16-byte ASCII version header every blob must start with.
const Magic = "GREINIR-DICT1.0\x00"

var byteOrder = binary.LittleEndian

// headerSize is the fixed preamble: the 16-byte magic plus five DWORD
// section pointers (mappings, forms, stems, meanings, alphabet).
const headerSize = 16 + 5*4

// internalValue is the trie node "value" sentinel meaning "no word ends
// here" (spec.md §4.1: "0x7FFFFF = internal, no value").
const internalValue uint32 = 0x7FFFFF

// alphabetTag is the 16-byte tag preceding the alphabet section.
const alphabetTag = "ALPHABET\x00\x00\x00\x00\x00\x00\x00\x00"

func init() {
	if len(Magic) != 16 {
		panic("dict: Magic must be exactly 16 bytes")
	}
	if len(alphabetTag) != 16 {
		panic("dict: alphabetTag must be exactly 16 bytes")
	}
}

// alignDWORD rounds n up to the next multiple of 4.
func alignDWORD(n int) int {
	return (n + 3) &^ 3
}

// toLatin1 re-encodes s into Latin-1 bytes. Latin-1 is simply "low byte
// of the rune" for runes in [0, 0xFF]; this is a deliberate standard
// library exception (DESIGN.md) since a full golang.org/x/text codec
// would be overkill for a one-byte-per-rune transcoding with a single
// range check.
func toLatin1(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, false
		}
		out = append(out, byte(r))
	}
	return out, true
}

// fromLatin1 decodes Latin-1 bytes back into a string.
func fromLatin1(b []byte) string {
	rs := make([]rune, len(b))
	for i, c := range b {
		rs[i] = rune(c)
	}
	return string(rs)
}
