package dict

import (
	"bytes"
	"fmt"
	"sort"
)

// Entry is one morphological reading: Form is the inflected word as it
// appears in text, Stem is its dictionary headword, WordID is BÍN's
// signed word identifier, and Class/Subclass/Tag describe the reading
// ("so" "alm" "GM-FH-NT-1P-ET", for instance).
type Entry struct {
	Form     string
	Stem     string
	WordID   int32
	Class    string
	Subclass string
	Tag      string
}

// Builder assembles entries in memory and serializes them into the
// on-disk blob format described by spec.md §4.1.
type Builder struct {
	entries []Entry
}

// Add appends one reading to the builder.
func (b *Builder) Add(e Entry) {
	b.entries = append(b.entries, e)
}

// meaningKey is the fixed "<class> <subclass> <tag>" record, truncated
// or padded to 24 bytes on disk.
func meaningKey(e Entry) string {
	return fmt.Sprintf("%s %s %s", e.Class, e.Subclass, e.Tag)
}

// Build serializes the accumulated entries into a blob.
func (b *Builder) Build() ([]byte, error) {
	// 1. Dedup stems and meanings, assigning dense indices.
	stemIndex := map[string]uint32{}
	var stems []Entry // one representative Entry (Stem, WordID) per index
	meaningIndex := map[string]uint32{}
	var meanings []Entry // one representative Entry per index

	for _, e := range b.entries {
		if _, ok := stemIndex[e.Stem]; !ok {
			stemIndex[e.Stem] = uint32(len(stems))
			stems = append(stems, e)
		}
		mk := meaningKey(e)
		if _, ok := meaningIndex[mk]; !ok {
			meaningIndex[mk] = uint32(len(meanings))
			meanings = append(meanings, e)
		}
	}
	if len(stems) >= 1<<20 {
		return nil, fmt.Errorf("dict: too many distinct stems (%d, max %d)", len(stems), 1<<20)
	}
	if len(meanings) >= 1<<11 {
		return nil, fmt.Errorf("dict: too many distinct meanings (%d, max %d)", len(meanings), 1<<11)
	}

	// 2. Group entries by form, in first-seen order, and build one
	// contiguous mapping run per form.
	var forms []string
	formOrder := map[string]int{}
	grouped := map[string][]Entry{}
	for _, e := range b.entries {
		if _, ok := formOrder[e.Form]; !ok {
			formOrder[e.Form] = len(forms)
			forms = append(forms, e.Form)
		}
		grouped[e.Form] = append(grouped[e.Form], e)
	}

	var mappings bytes.Buffer
	formValue := make([]uint32, len(forms))
	for i, form := range forms {
		startEntry := uint32(mappings.Len() / 4)
		formValue[i] = startEntry
		es := grouped[form]
		for j, e := range es {
			stemIdx := stemIndex[e.Stem]
			meanIdx := meaningIndex[meaningKey(e)]
			word := (stemIdx&0xFFFFF)<<11 | (meanIdx & 0x7FF)
			if j == len(es)-1 {
				word |= 1 << 31
			}
			writeU32(&mappings, word)
		}
	}

	// 3. Alphabet: sorted distinct Latin-1 bytes across every form.
	seen := map[byte]bool{}
	var alphabet []byte
	latin1Forms := make([][]byte, len(forms))
	for i, form := range forms {
		lb, ok := toLatin1(form)
		if !ok {
			return nil, fmt.Errorf("dict: form %q has a character outside Latin-1", form)
		}
		latin1Forms[i] = lb
		for _, c := range lb {
			if !seen[c] {
				seen[c] = true
				alphabet = append(alphabet, c)
			}
		}
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })
	if len(alphabet) > 127 {
		return nil, fmt.Errorf("dict: alphabet has %d distinct bytes, max 127", len(alphabet))
	}
	alphaIndex := map[byte]byte{}
	for i, c := range alphabet {
		alphaIndex[c] = byte(i + 1) // index 0 reserved for "no fragment byte"
	}

	// 4. Forms trie.
	trieRoot := buildTrie(latin1Forms, formValue)
	var formsBuf bytes.Buffer
	writeTrie(&formsBuf, trieRoot, alphaIndex)

	// 5. Stems section: count, then (signed word id + NUL-terminated
	// Latin-1 stem string, DWORD-padded) per stem, then an offset table.
	var stemsBody bytes.Buffer
	stemOffsets := make([]uint32, len(stems))
	for i, e := range stems {
		stemOffsets[i] = uint32(stemsBody.Len())
		var wid [4]byte
		byteOrder.PutUint32(wid[:], uint32(e.WordID))
		stemsBody.Write(wid[:])
		lb, ok := toLatin1(e.Stem)
		if !ok {
			return nil, fmt.Errorf("dict: stem %q has a character outside Latin-1", e.Stem)
		}
		stemsBody.Write(lb)
		stemsBody.WriteByte(0)
		pad(&stemsBody)
	}

	// 6. Meanings section: count, then fixed 24-byte records, then an
	// offset table (redundant with index*24 but kept for a uniform
	// section shape with the stems table).
	var meaningsBody bytes.Buffer
	meaningOffsets := make([]uint32, len(meanings))
	for i, e := range meanings {
		meaningOffsets[i] = uint32(meaningsBody.Len())
		rec := [24]byte{}
		copy(rec[:], meaningKey(e))
		meaningsBody.Write(rec[:])
	}

	// Assemble the full blob: header, then sections in mappings / forms
	// / stems / meanings / alphabet order, with absolute offsets
	// recorded into the header as each section is appended.
	var out bytes.Buffer
	out.WriteString(Magic)
	// Placeholder pointers, patched below once offsets are known.
	ptrPos := out.Len()
	out.Write(make([]byte, 5*4))

	mappingsOff := uint32(out.Len())
	out.Write(mappings.Bytes())

	formsOff := uint32(out.Len())
	out.Write(formsBuf.Bytes())

	stemsOff := uint32(out.Len())
	writeU32(&out, uint32(len(stems)))
	out.Write(stemsBody.Bytes())
	for _, o := range stemOffsets {
		writeU32(&out, stemsOff+4+o)
	}

	meaningsOff := uint32(out.Len())
	writeU32(&out, uint32(len(meanings)))
	out.Write(meaningsBody.Bytes())
	for _, o := range meaningOffsets {
		writeU32(&out, meaningsOff+4+o)
	}

	alphabetOff := uint32(out.Len())
	out.WriteString(alphabetTag)
	writeU32(&out, uint32(len(alphabet)))
	out.Write(alphabet)
	pad(&out)

	final := out.Bytes()
	byteOrder.PutUint32(final[ptrPos:], mappingsOff)
	byteOrder.PutUint32(final[ptrPos+4:], formsOff)
	byteOrder.PutUint32(final[ptrPos+8:], stemsOff)
	byteOrder.PutUint32(final[ptrPos+12:], meaningsOff)
	byteOrder.PutUint32(final[ptrPos+16:], alphabetOff)

	return final, nil
}
