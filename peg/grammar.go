package peg

import "fmt"

// Grammar binds named non-terminals together so that rules can reference
// each other (and themselves) by name via V. The grammar compiler
// (compiler.go in the root scintillua package) builds these for lexers;
// language definitions never see a Grammar, only Patterns.
type Grammar struct {
	rules map[string]Pattern
	start string
}

// NewGrammar builds a Grammar over the given named non-terminals with the
// given start symbol. rules may reference each other (including
// recursively) via V, since lookups happen at match time rather than at
// construction time.
func NewGrammar(start string, rules map[string]Pattern) *Grammar {
	return &Grammar{rules: rules, start: start}
}

// Start returns the grammar's start symbol.
func (g *Grammar) Start() string { return g.start }

// WithStart returns a shallow copy of g with a different start symbol,
// letting the same compiled rule set be re-entered at a different initial
// rule (the mechanism that lets lexing resume inside an embedded
// language).
func (g *Grammar) WithStart(start string) *Grammar {
	return &Grammar{rules: g.rules, start: start}
}

// HasRule reports whether name is a known non-terminal.
func (g *Grammar) HasRule(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// Match runs the grammar's start symbol over input from a zero-based byte
// offset, returning the captures produced and the position just past the
// match.
func (g *Grammar) Match(input string, pos int) (int, Captures, bool) {
	return V(g.start).fn(g, input, pos, nil)
}

// V is a (possibly forward, possibly recursive) reference to a named
// non-terminal in whatever Grammar the match is running against. Matching
// a V pattern outside of Grammar.Match (i.e. with a nil grammar) is a
// programmer error and panics, since there is nothing to resolve it
// against.
func V(name string) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		if g == nil {
			panic(fmt.Sprintf("peg.V(%q): no grammar in scope to resolve against", name))
		}
		rule, ok := g.rules[name]
		if !ok {
			panic(fmt.Sprintf("peg.V(%q): undefined non-terminal", name))
		}
		return rule.fn(g, input, pos, caps)
	}}
}
