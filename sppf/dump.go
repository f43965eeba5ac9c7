package sppf

import (
	"fmt"
	"io"
	"strings"
)

// SymbolNamer resolves nonterminal/terminal indices to display names for
// dumping. package grammar's *Grammar satisfies this via small adapter
// functions at the call site.
type SymbolNamer interface {
	NonterminalName(idx int32) string
	TerminalName(idx int32) string
}

// Pretty writes an indented, human-readable rendering of the forest
// rooted at root, for debugging (spec §6).
func Pretty(w io.Writer, f *Forest, root NodeID, names SymbolNamer) {
	prettyNode(w, f, root, names, 0, map[NodeID]bool{})
}

func prettyNode(w io.Writer, f *Forest, id NodeID, names SymbolNamer, depth int, seen map[NodeID]bool) {
	indent := strings.Repeat("  ", depth)
	label, start, end, families := f.Get(id)
	fmt.Fprintf(w, "%s%s [%d,%d)", indent, describeLabel(label, names), start, end)
	if len(families) > 1 {
		fmt.Fprintf(w, "  (%d alternatives)", len(families))
	}
	fmt.Fprintln(w)
	if seen[id] {
		fmt.Fprintf(w, "%s  ...\n", indent)
		return
	}
	seen[id] = true
	for fi, fam := range families {
		if len(families) > 1 {
			fmt.Fprintf(w, "%s  O%d:\n", indent, fi)
		}
		if fam.W != NilNode {
			prettyNode(w, f, fam.W, names, depth+1, seen)
		}
		if fam.V != NilNode {
			prettyNode(w, f, fam.V, names, depth+1, seen)
		} else if fam.W == NilNode {
			fmt.Fprintf(w, "%s  E\n", indent)
		}
	}
}

func describeLabel(l Label, names SymbolNamer) string {
	switch l.Kind {
	case LabelToken:
		if names != nil {
			return "T:" + names.TerminalName(l.Terminal)
		}
		return fmt.Sprintf("T:%d", l.Terminal)
	case LabelPartial:
		if names != nil {
			return fmt.Sprintf("%s·(prod %d, dot %d)", names.NonterminalName(l.Nonterminal), l.Production, l.Dot)
		}
		return fmt.Sprintf("N%d·(%d,%d)", l.Nonterminal, l.Production, l.Dot)
	default:
		if names != nil {
			return names.NonterminalName(l.Nonterminal)
		}
		return fmt.Sprintf("N%d", l.Nonterminal)
	}
}

// FlatDump emits the compact flat-dump format of spec §6: one line per
// node, each prefixed by a one-letter kind tag and its nesting level (E
// epsilon, T terminal, N nonterminal, O ambiguous-option index), framed
// by a leading "R1" version line and a trailing "Q0" marker. Interior
// (partial-item) nodes are transparent: they contribute no line of their
// own and do not increase the nesting level, matching how simpletree
// and the reducer already treat them as binarization artifacts rather
// than grammatical structure.
func FlatDump(w io.Writer, f *Forest, root NodeID, names SymbolNamer) {
	lines := []string{"R1"}
	flatVisit(f, root, names, 0, &lines)
	lines = append(lines, "Q0")
	fmt.Fprint(w, strings.Join(lines, "\n"))
}

func flatVisit(f *Forest, id NodeID, names SymbolNamer, level int, lines *[]string) {
	if id == NilNode {
		*lines = append(*lines, fmt.Sprintf("E%d", level))
		return
	}
	label, start, end, families := f.Get(id)
	switch label.Kind {
	case LabelToken:
		*lines = append(*lines, fmt.Sprintf("T%d %s [%d,%d)", level, names.TerminalName(label.Terminal), start, end))
	case LabelPartial:
		// Transparent: no line, no level increase.
		flatFamilies(f, families, names, level, lines)
	default:
		name := names.NonterminalName(label.Nonterminal)
		if isElidableOptionalName(name) && isEmptyFamilies(families) {
			return
		}
		*lines = append(*lines, fmt.Sprintf("N%d %s", level, name))
		flatFamilies(f, families, names, level+1, lines)
	}
}

func flatFamilies(f *Forest, families []Family, names SymbolNamer, level int, lines *[]string) {
	if len(families) == 0 {
		*lines = append(*lines, fmt.Sprintf("E%d", level))
		return
	}
	for ix, fam := range families {
		if len(families) > 1 {
			*lines = append(*lines, fmt.Sprintf("O%d %d", level, ix))
		}
		if fam.W == NilNode && fam.V == NilNode {
			*lines = append(*lines, fmt.Sprintf("E%d", level))
			continue
		}
		if fam.W != NilNode {
			flatVisit(f, fam.W, names, level, lines)
		}
		if fam.V != NilNode {
			flatVisit(f, fam.V, names, level, lines)
		}
	}
}

// isElidableOptionalName mirrors grammar.Nonterminal.IsOptional's suffix
// rule without importing package grammar; no import cycle prevents the
// import, but a one-line rule does not justify the dependency.
func isElidableOptionalName(name string) bool {
	if name == "" {
		return false
	}
	last := name[len(name)-1]
	return last == '?' || last == '*'
}

func isEmptyFamilies(families []Family) bool {
	if len(families) == 0 {
		return true
	}
	for _, fam := range families {
		if fam.W != NilNode || fam.V != NilNode {
			return false
		}
	}
	return true
}
