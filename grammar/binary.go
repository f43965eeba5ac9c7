package grammar

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the 16-byte ASCII header every binary grammar file must start
// with (spec §6).
const Magic = "GREINIR-GRAMMAR1"

var byteOrder = binary.LittleEndian

// decode parses the binary grammar format described in SPEC_FULL.md §6:
// a 16-byte magic, nonterminal/terminal name tables, a production table
// and a score-adjustment table, all little-endian DWORDs, mirroring the
// DWORD conventions of spec §4.1's dictionary format.
func decode(data []byte) (*Grammar, error) {
	r := bytes.NewReader(data)
	magic := make([]byte, 16)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("truncated header: %w", err)
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("bad magic %q", magic)
	}

	// Root is stored using the negative-nonterminal convention of spec §6;
	// decode back to a plain index.
	var rootRaw int32
	if err := binary.Read(r, byteOrder, &rootRaw); err != nil {
		return nil, err
	}
	root := NonterminalIndex(rootRaw)

	nts, err := readSymbolTable(r)
	if err != nil {
		return nil, fmt.Errorf("nonterminal table: %w", err)
	}
	nonterminals := make([]*Nonterminal, len(nts))
	for i, name := range nts {
		nonterminals[i] = &Nonterminal{Index: int32(i), Name: name}
	}

	terms, err := readSymbolTable(r)
	if err != nil {
		return nil, fmt.Errorf("terminal table: %w", err)
	}
	terminals := make([]*Terminal, len(terms))
	for i, name := range terms {
		if name == "" {
			continue // slot 0 is unused; terminals are 1-indexed
		}
		terminals[i] = NewTerminal(int32(i), name)
	}

	var prodCount uint32
	if err := binary.Read(r, byteOrder, &prodCount); err != nil {
		return nil, err
	}
	prods := make([]*Production, 0, prodCount)
	for i := uint32(0); i < prodCount; i++ {
		p := &Production{}
		var id, lhs, prio, symCount uint32
		if err := binary.Read(r, byteOrder, &id); err != nil {
			return nil, err
		}
		if err := binary.Read(r, byteOrder, &lhs); err != nil {
			return nil, err
		}
		if err := binary.Read(r, byteOrder, &prio); err != nil {
			return nil, err
		}
		if err := binary.Read(r, byteOrder, &symCount); err != nil {
			return nil, err
		}
		p.ID = int32(id)
		p.LHS = int32(lhs)
		p.Priority = int32(prio)
		p.Symbols = make([]int32, symCount)
		for j := range p.Symbols {
			if err := binary.Read(r, byteOrder, &p.Symbols[j]); err != nil {
				return nil, err
			}
		}
		prods = append(prods, p)
	}

	scoreAdjust := map[int32]int{}
	var scoreCount uint32
	if err := binary.Read(r, byteOrder, &scoreCount); err != nil {
		return nil, err
	}
	for i := uint32(0); i < scoreCount; i++ {
		var nt int32
		var adj int32
		if err := binary.Read(r, byteOrder, &nt); err != nil {
			return nil, err
		}
		if err := binary.Read(r, byteOrder, &adj); err != nil {
			return nil, err
		}
		scoreAdjust[nt] = int(adj)
	}

	return build(nonterminals, terminals, prods, root, scoreAdjust), nil
}

func readSymbolTable(r *bytes.Reader) ([]string, error) {
	var count uint32
	if err := binary.Read(r, byteOrder, &count); err != nil {
		return nil, err
	}
	out := make([]string, count)
	for i := range out {
		var l uint32
		if err := binary.Read(r, byteOrder, &l); err != nil {
			return nil, err
		}
		buf := make([]byte, l)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		out[i] = string(buf)
	}
	return out, nil
}

// Encode writes g out in the binary grammar format. Used by tests to build
// fixture grammars; the production toolchain that compiles the real
// Icelandic grammar is out of scope (spec §1).
func Encode(w io.Writer, g *Grammar) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Magic); err != nil {
		return err
	}
	if err := binary.Write(bw, byteOrder, EncodeNonterminal(g.Root)); err != nil {
		return err
	}
	if err := writeSymbolTable(bw, nonterminalNames(g.nonterminals)); err != nil {
		return err
	}
	if err := writeSymbolTable(bw, terminalNames(g.terminals)); err != nil {
		return err
	}

	var allProds []*Production
	for _, ps := range g.productions {
		allProds = append(allProds, ps...)
	}
	if err := binary.Write(bw, byteOrder, uint32(len(allProds))); err != nil {
		return err
	}
	for _, p := range allProds {
		if err := binary.Write(bw, byteOrder, uint32(p.ID)); err != nil {
			return err
		}
		if err := binary.Write(bw, byteOrder, uint32(p.LHS)); err != nil {
			return err
		}
		if err := binary.Write(bw, byteOrder, uint32(p.Priority)); err != nil {
			return err
		}
		if err := binary.Write(bw, byteOrder, uint32(len(p.Symbols))); err != nil {
			return err
		}
		for _, s := range p.Symbols {
			if err := binary.Write(bw, byteOrder, s); err != nil {
				return err
			}
		}
	}

	if err := binary.Write(bw, byteOrder, uint32(len(g.scoreAdjust))); err != nil {
		return err
	}
	for nt, adj := range g.scoreAdjust {
		if err := binary.Write(bw, byteOrder, nt); err != nil {
			return err
		}
		if err := binary.Write(bw, byteOrder, int32(adj)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func nonterminalNames(nts []*Nonterminal) []string {
	out := make([]string, len(nts))
	for i, n := range nts {
		if n != nil {
			out[i] = n.Name
		}
	}
	return out
}

func terminalNames(terms []*Terminal) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		if t != nil {
			out[i] = t.Name()
		}
	}
	return out
}

func writeSymbolTable(w io.Writer, names []string) error {
	if err := binary.Write(w, byteOrder, uint32(len(names))); err != nil {
		return err
	}
	for _, n := range names {
		if err := binary.Write(w, byteOrder, uint32(len(n))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, n); err != nil {
			return err
		}
	}
	return nil
}
