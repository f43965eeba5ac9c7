package grammar

import (
	"fmt"
	"os"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'greinir.grammar', mirroring the teacher's
// package-local tracer() helper convention.
func tracer() tracing.Trace {
	return tracing.Select("greinir.grammar")
}

// Grammar is a loaded, read-only, binary context-free grammar: the
// mapping nonterminal-index → productions, a distinguished root, index
// lookup vectors for both symbol kinds, and per-nonterminal score
// adjustments (spec §3/§4.2). Once loaded a Grammar is never mutated and
// may be shared freely across goroutines.
type Grammar struct {
	Root          int32
	nonterminals  []*Nonterminal // indexed by nonterminal index
	terminals     []*Terminal    // indexed by terminal index, 1-indexed per spec §6
	productions   map[int32][]*Production
	byID          map[int32]*Production
	byPriority    map[int32]*treemap.Map // nonterminal index -> treemap[priority][]*Production
	scoreAdjust   map[int32]int
}

// ProductionByID returns the production with the given ID, or nil. Used
// by the reducer to recover a family's production priority from the
// production ID an sppf.Family carries.
func (g *Grammar) ProductionByID(id int32) *Production {
	return g.byID[id]
}

// Nonterminal returns the nonterminal with the given index, or nil.
func (g *Grammar) Nonterminal(index int32) *Nonterminal {
	if index < 0 || int(index) >= len(g.nonterminals) {
		return nil
	}
	return g.nonterminals[index]
}

// Terminal returns the terminal with the given 1-based index, or nil.
func (g *Grammar) Terminal(index int32) *Terminal {
	if index <= 0 || int(index) >= len(g.terminals) {
		return nil
	}
	return g.terminals[index]
}

// NumNonterminals and NumTerminals report the sizes of the index vectors.
func (g *Grammar) NumNonterminals() int { return len(g.nonterminals) }
func (g *Grammar) NumTerminals() int    { return len(g.terminals) }

// ScoreAdjustment returns the per-nonterminal score adjustment used by the
// reducer (spec §3, §4.6 pass 3).
func (g *Grammar) ScoreAdjustment(nt int32) int {
	return g.scoreAdjust[nt]
}

// ProductionsOf returns the productions of a nonterminal, in ascending
// priority order (lower priority value first). Iterating a treemap keyed
// by priority, rather than sorting on every call, mirrors the teacher's
// own use of gods' ordered containers in lr/tables.go to keep set/map
// iteration deterministic.
func (g *Grammar) ProductionsOf(nt int32) []*Production {
	tm, ok := g.byPriority[nt]
	if !ok {
		return nil
	}
	var out []*Production
	it := tm.Iterator()
	for it.Next() {
		out = append(out, it.Value().([]*Production)...)
	}
	return out
}

// --- Loading & process-wide cache --------------------------------------

var (
	loadMu    sync.Mutex
	cache     = map[string]*cacheEntry{}
)

type cacheEntry struct {
	mtime int64
	g     *Grammar
}

// Load reads a grammar from a binary file (spec §6), validating the
// load-time invariants of spec §4.2. Results are cached process-wide,
// keyed by path, and only re-read when the file's modification time
// changes. Access to the cache is serialized by a single named lock, as
// described in spec §5 ("the grammar load ... is serialized by a
// process-wide named lock").
func Load(path string) (*Grammar, error) {
	loadMu.Lock()
	defer loadMu.Unlock()

	fi, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Msg: err.Error()}
	}
	mtime := fi.ModTime().UnixNano()

	if entry, ok := cache[path]; ok && entry.mtime == mtime {
		return entry.g, nil
	}

	tracer().Debugf("loading grammar from %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Msg: err.Error()}
	}
	g, err := decode(data)
	if err != nil {
		return nil, &LoadError{Path: path, Msg: err.Error()}
	}
	if err := validate(g); err != nil {
		return nil, &LoadError{Path: path, Msg: err.Error()}
	}
	cache[path] = &cacheEntry{mtime: mtime, g: g}
	return g, nil
}

// LoadError is returned for any grammar load failure: file missing,
// unreadable, or structurally inconsistent. It is fatal to the parser
// instance that tried to load it (spec §7).
type LoadError struct {
	Path string
	Msg  string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("grammar load error: %s: %s", e.Path, e.Msg)
}
