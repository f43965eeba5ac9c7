package dict

import (
	"errors"
	"io"

	"golang.org/x/exp/mmap"
)

// ErrBadMagic is returned by Open when the blob's version header does
// not match Magic.
var ErrBadMagic = errors.New("dict: bad magic header")

// ErrTruncated is returned when a read falls off the end of the blob.
var ErrTruncated = errors.New("dict: truncated blob")

// Reading is one morphological analysis of a looked-up form.
type Reading struct {
	WordID   int32
	Stem     string
	Class    string
	Subclass string
	Tag      string
}

// Dict is a read-only, mmap'd handle onto a compressed lexicon blob.
// It never builds an index over the whole dictionary; Lookup decodes
// directly out of the mapped bytes.
type Dict struct {
	r        *mmap.ReaderAt
	alphabet []byte

	mappingsOff int64
	formsOff    int64
	stemsOff    int64
	meaningsOff int64

	stemsTableOff    int64
	meaningsTableOff int64
}

// Open mmaps the blob at path and validates its header.
func Open(path string) (*Dict, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	d := &Dict{r: r}
	if err := d.readHeader(); err != nil {
		r.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the mapping.
func (d *Dict) Close() error {
	return d.r.Close()
}

func (d *Dict) readHeader() error {
	if d.r.Len() < int64(headerSize) {
		return ErrTruncated
	}
	magic := make([]byte, 16)
	if _, err := d.r.ReadAt(magic, 0); err != nil {
		return err
	}
	if string(magic) != Magic {
		return ErrBadMagic
	}
	mappingsOff, err := d.readU32(16)
	if err != nil {
		return err
	}
	formsOff, err := d.readU32(20)
	if err != nil {
		return err
	}
	stemsOff, err := d.readU32(24)
	if err != nil {
		return err
	}
	meaningsOff, err := d.readU32(28)
	if err != nil {
		return err
	}
	alphabetOff, err := d.readU32(32)
	if err != nil {
		return err
	}
	d.mappingsOff = int64(mappingsOff)
	d.formsOff = int64(formsOff)
	d.stemsOff = int64(stemsOff)
	d.meaningsOff = int64(meaningsOff)
	if err := d.readAlphabet(int64(alphabetOff)); err != nil {
		return err
	}

	// The stems/meanings offset tables follow their section's
	// variable-length bodies; locate them once here rather than on
	// every Lookup. Meanings records are fixed-size so their table
	// offset is arithmetic; stems records are not, so finding their
	// table requires one linear walk over the section — paid once, at
	// Open, not per Lookup.
	stemCount, err := d.readU32(d.stemsOff)
	if err != nil {
		return err
	}
	d.stemsTableOff, err = d.scanStemsTable(stemCount)
	if err != nil {
		return err
	}
	meaningCount, err := d.readU32(d.meaningsOff)
	if err != nil {
		return err
	}
	d.meaningsTableOff = d.meaningsOff + 4 + int64(meaningCount)*24
	return nil
}

func (d *Dict) readAlphabet(off int64) error {
	n, err := d.readU32(off + 16)
	if err != nil {
		return err
	}
	buf := make([]byte, n)
	if n > 0 {
		if _, err := d.r.ReadAt(buf, off+16+4); err != nil {
			return err
		}
	}
	d.alphabet = buf
	return nil
}

func (d *Dict) readU32(off int64) (uint32, error) {
	var buf [4]byte
	if _, err := d.r.ReadAt(buf[:], off); err != nil {
		if err == io.EOF {
			return 0, ErrTruncated
		}
		return 0, err
	}
	return byteOrder.Uint32(buf[:]), nil
}

func (d *Dict) readCString(off int64) ([]byte, error) {
	var out []byte
	var b [1]byte
	for {
		if _, err := d.r.ReadAt(b[:], off); err != nil {
			if err == io.EOF {
				return nil, ErrTruncated
			}
			return nil, err
		}
		if b[0] == 0 {
			break
		}
		out = append(out, b[0])
		off++
	}
	return out, nil
}

// Lookup returns every reading for form, or ok==false if form is not in
// the dictionary (including when form contains a character outside the
// blob's Latin-1 alphabet).
func (d *Dict) Lookup(form string) ([]Reading, bool, error) {
	lb, ok := toLatin1(form)
	if !ok {
		return nil, false, nil
	}
	start, ok, err := d.lookupForm(lb)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	var out []Reading
	off := d.mappingsOff + int64(start)*4
	for {
		word, err := d.readU32(off)
		if err != nil {
			return nil, false, err
		}
		stemIdx := (word >> 11) & 0xFFFFF
		meanIdx := word & 0x7FF
		reading, err := d.resolveReading(stemIdx, meanIdx)
		if err != nil {
			return nil, false, err
		}
		out = append(out, reading)
		if word&(1<<31) != 0 {
			break
		}
		off += 4
	}
	return out, true, nil
}

func (d *Dict) resolveReading(stemIdx, meanIdx uint32) (Reading, error) {
	stemCount, err := d.readU32(d.stemsOff)
	if err != nil {
		return Reading{}, err
	}
	if stemIdx >= stemCount {
		return Reading{}, ErrTruncated
	}
	meaningCount, err := d.readU32(d.meaningsOff)
	if err != nil {
		return Reading{}, err
	}
	if meanIdx >= meaningCount {
		return Reading{}, ErrTruncated
	}

	stemRecOff, err := d.readU32(d.stemsTableOff + int64(stemIdx)*4)
	if err != nil {
		return Reading{}, err
	}
	var widBuf [4]byte
	if _, err := d.r.ReadAt(widBuf[:], int64(stemRecOff)); err != nil {
		return Reading{}, err
	}
	wid := int32(byteOrder.Uint32(widBuf[:]))
	stemBytes, err := d.readCString(int64(stemRecOff) + 4)
	if err != nil {
		return Reading{}, err
	}

	meanRecOff, err := d.readU32(d.meaningsTableOff + int64(meanIdx)*4)
	if err != nil {
		return Reading{}, err
	}
	rec := make([]byte, 24)
	if _, err := d.r.ReadAt(rec, int64(meanRecOff)); err != nil {
		return Reading{}, err
	}
	class, subclass, tag := splitMeaning(rec)

	return Reading{
		WordID:   wid,
		Stem:     fromLatin1(stemBytes),
		Class:    class,
		Subclass: subclass,
		Tag:      tag,
	}, nil
}

// scanStemsTable locates the stems offset table, which sits right after
// stemCount variable-length records. There's no cheap way to skip over
// them without walking each one; that's fine since this runs once at
// Open, not once per Lookup — the result is cached in d.stemsTableOff.
func (d *Dict) scanStemsTable(stemCount uint32) (int64, error) {
	pos := d.stemsOff + 4
	for i := uint32(0); i < stemCount; i++ {
		pos += 4 // word id
		for {
			var b [1]byte
			if _, err := d.r.ReadAt(b[:], pos); err != nil {
				return 0, err
			}
			pos++
			if b[0] == 0 {
				break
			}
		}
		if pos%4 != 0 {
			pos += 4 - pos%4
		}
	}
	return pos, nil
}

func splitMeaning(rec []byte) (class, subclass, tag string) {
	n := 0
	for n < len(rec) && rec[n] != 0 {
		n++
	}
	s := string(rec[:n])
	parts := make([]string, 0, 3)
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' {
			if i > start {
				parts = append(parts, s[start:i])
			}
			start = i + 1
		}
	}
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}
