package dict

import (
	"bytes"
	"sort"
)

// trieNode is the builder-side, in-memory representation of a forms-trie
// node before it is flattened into the on-disk layout described by
// spec.md §4.1: a node carries a fragment of the word form (possibly
// empty at the root), a value (the mapping-run index for a form that
// ends exactly here, or internalValue if none does), and the sorted set
// of child branches continuing past the fragment.
type trieNode struct {
	fragment []byte
	value    uint32
	children []*trieNode
}

// buildTrie assembles a compressed trie over the given (form, value)
// pairs. forms must be distinct; values are opaque to the trie (the
// caller's mapping-run index).
func buildTrie(forms [][]byte, values []uint32) *trieNode {
	type pair struct {
		form  []byte
		value uint32
	}
	pairs := make([]pair, len(forms))
	for i := range forms {
		pairs[i] = pair{forms[i], values[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return bytes.Compare(pairs[i].form, pairs[j].form) < 0 })

	var build func(ps []pair, depth int) *trieNode
	build = func(ps []pair, depth int) *trieNode {
		n := &trieNode{value: internalValue}
		if len(ps) == 0 {
			return n
		}

		// Longest common prefix (from depth) across all suffixes.
		prefix := ps[0].form[depth:]
		for _, p := range ps[1:] {
			suf := p.form[depth:]
			prefix = commonPrefix(prefix, suf)
		}
		n.fragment = prefix
		depth += len(prefix)

		// Entries whose form ends exactly at this depth assign this
		// node's value; there is at most one (forms are distinct).
		rest := ps[:0:0]
		for _, p := range ps {
			if len(p.form) == depth {
				n.value = p.value
			} else {
				rest = append(rest, p)
			}
		}

		// Group the remaining entries by their next byte and recurse.
		groups := map[byte][]pair{}
		var order []byte
		for _, p := range rest {
			b := p.form[depth]
			if _, ok := groups[b]; !ok {
				order = append(order, b)
			}
			groups[b] = append(groups[b], p)
		}
		sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
		for _, b := range order {
			n.children = append(n.children, build(groups[b], depth))
		}
		return n
	}
	return build(pairs, 0)
}

func commonPrefix(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// writeTrie serializes root depth-first, children before parents (so a
// parent's child-pointer DWORDs can reference an already-written
// offset), and returns root's offset, relative to the start of buf.
//
// Per node: a header DWORD (format depends on len(fragment) <= 1, per
// spec.md §4.1), then — unless the node is childless — a DWORD child
// count followed by that many child-offset DWORDs, then — only for
// fragments longer than one byte — the fragment bytes, NUL-terminated
// and padded to DWORD alignment.
func writeTrie(buf *bytes.Buffer, n *trieNode, alphaIndex map[byte]byte) uint32 {
	childOffsets := make([]uint32, len(n.children))
	for i, c := range n.children {
		childOffsets[i] = writeTrie(buf, c, alphaIndex)
	}

	offset := uint32(buf.Len())
	childless := len(n.children) == 0

	var header uint32
	if len(n.fragment) <= 1 {
		header = 1 << 31
		if childless {
			header |= 1 << 30
		}
		if len(n.fragment) == 1 {
			header |= uint32(alphaIndex[n.fragment[0]]) << 23
		}
		header |= n.value & 0x7FFFFF
	} else {
		if childless {
			header |= 1 << 30
		}
		header |= n.value & 0x7FFFFF
	}
	writeU32(buf, header)

	if !childless {
		writeU32(buf, uint32(len(childOffsets)))
		for _, off := range childOffsets {
			writeU32(buf, off)
		}
	}
	if len(n.fragment) > 1 {
		buf.Write(n.fragment)
		buf.WriteByte(0)
		pad(buf)
	}
	return offset
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	byteOrder.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func pad(buf *bytes.Buffer) {
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
}

// decodedNode is the reader-side view of one on-disk trie node: its
// fragment, its value, and the absolute file offsets of its children.
type decodedNode struct {
	fragment []byte
	value    uint32
	children []int64
}

// decodeNode reads the node at absolute byte offset off.
func (d *Dict) decodeNode(off int64) (decodedNode, error) {
	header, err := d.readU32(off)
	if err != nil {
		return decodedNode{}, err
	}
	single := header&(1<<31) != 0
	childless := header&(1<<30) != 0
	value := header & 0x7FFFFF

	pos := off + 4
	var children []int64
	if !childless {
		count, err := d.readU32(pos)
		if err != nil {
			return decodedNode{}, err
		}
		pos += 4
		children = make([]int64, count)
		for i := range children {
			co, err := d.readU32(pos)
			if err != nil {
				return decodedNode{}, err
			}
			children[i] = d.formsOff + int64(co)
			pos += 4
		}
	}

	var fragment []byte
	if single {
		alphaIdx := byte((header >> 23) & 0x7F)
		if alphaIdx != 0 {
			fragment = []byte{d.alphabet[alphaIdx-1]}
		}
	} else {
		frag, err := d.readCString(pos)
		if err != nil {
			return decodedNode{}, err
		}
		fragment = frag
	}
	return decodedNode{fragment: fragment, value: value, children: children}, nil
}

// lookupForm descends the forms trie looking for word (Latin-1 bytes),
// starting at the root (d.formsOff). It returns the mapping-run value
// stored at the node where word is fully consumed, if any.
func (d *Dict) lookupForm(word []byte) (uint32, bool, error) {
	off := d.formsOff
	for {
		n, err := d.decodeNode(off)
		if err != nil {
			return 0, false, err
		}
		if !bytes.HasPrefix(word, n.fragment) {
			return 0, false, nil
		}
		word = word[len(n.fragment):]
		if len(word) == 0 {
			if n.value == internalValue {
				return 0, false, nil
			}
			return n.value, true, nil
		}
		// Binary search n.children by first fragment byte.
		lo, hi := 0, len(n.children)
		next := byte(0)
		if len(word) > 0 {
			next = word[0]
		}
		found := false
		var childOff int64
		for lo < hi {
			mid := (lo + hi) / 2
			cn, err := d.decodeNode(n.children[mid])
			if err != nil {
				return 0, false, err
			}
			var first byte
			if len(cn.fragment) > 0 {
				first = cn.fragment[0]
			}
			switch {
			case first == next:
				found = true
				childOff = n.children[mid]
				lo = hi
			case first < next:
				lo = mid + 1
			default:
				hi = mid
			}
		}
		if !found {
			return 0, false, nil
		}
		off = childOff
	}
}
