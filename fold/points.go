// Package fold implements the folding engine: the symbol-based and
// indentation-based strategies for turning a chunk of text (plus the
// host's per-position style map) into one fold level per line, and the
// fold-point table a Lexer accumulates its symbols into.
package fold

// Predicate decides the fold delta a symbol contributes at a specific
// occurrence, given the whole chunk of text, the byte offset the line
// starts at, the line's 1-based number, the 1-based column the symbol was
// found at, and the symbol text itself. It returns +1, -1, or 0.
type Predicate func(text string, linePos, line, col int, symbol string) int

// Value is the tagged union a fold point resolves to: either a fixed delta
// or a predicate invoked per occurrence.
type Value struct {
	Delta     int
	Predicate Predicate
}

func (v Value) resolve(text string, linePos, line, col int, symbol string) int {
	if v.Predicate != nil {
		return v.Predicate(text, linePos, line, col, symbol)
	}
	return v.Delta
}

// Table holds one lexer's fold-point registrations: which tag+symbol pairs
// open or close a foldable region, plus the insertion-ordered alphabet the
// folder scans each line against.
type Table struct {
	byTag   map[string]map[string]Value
	symbols []string // insertion order: the folder's scan alphabet
	seen    map[string]bool
}

// NewTable builds an empty fold-point table.
func NewTable() *Table {
	return &Table{byTag: map[string]map[string]Value{}, seen: map[string]bool{}}
}

// Add registers symbol under tag with value v. If caseInsensitive is set
// the symbol is lowercased before being registered (matching how the
// folder will look it up against a lowercased scan).
func (t *Table) Add(tag, symbol string, v Value, caseInsensitive bool) {
	if caseInsensitive {
		symbol = asciiLower(symbol)
	}
	m, ok := t.byTag[tag]
	if !ok {
		m = map[string]Value{}
		t.byTag[tag] = m
	}
	m[symbol] = v
	if !t.seen[symbol] {
		t.seen[symbol] = true
		t.symbols = append(t.symbols, symbol)
	}
}

// Lookup resolves the fold value registered for tag+symbol, if any.
func (t *Table) Lookup(tag, symbol string) (Value, bool) {
	m, ok := t.byTag[tag]
	if !ok {
		return Value{}, false
	}
	v, ok := m[symbol]
	return v, ok
}

// Symbols returns the insertion-ordered scan alphabet.
func (t *Table) Symbols() []string { return t.symbols }

// Merge mirrors every entry of other onto t, used when embedding a child
// lexer's fold points into its parent so a single compiled grammar's fold
// table stays authoritative.
func (t *Table) Merge(other *Table) {
	for tag, symbols := range other.byTag {
		for symbol, v := range symbols {
			t.Add(tag, symbol, v, false)
		}
	}
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
