package scintillua

import (
	"github.com/openSUSE-Python/scintillua/fold"
	"github.com/openSUSE-Python/scintillua/pattern"
	"github.com/openSUSE-Python/scintillua/peg"
)

// compiledGrammar bundles the compiled peg.Grammar together with the
// bookkeeping the tagger and folder need: which lexer (by name) every
// participating rule set belongs to, and a style-number-to-tag-name table
// gathered across the whole embedding tree.
type compiledGrammar struct {
	grammar      *peg.Grammar
	root         *Lexer
	byName       map[string]*Lexer // every lexer (root + children, recursively) keyed by name
	stylesByName map[int]string    // style number -> tag name, across the whole tree
}

// compile lowers l (plus, recursively, every embedded child) into a single
// runnable peg.Grammar whose start symbol is l.name. Every call rebuilds
// all rules from scratch; caching of the result is ensureCompiled's job.
func compile(l *Lexer) *compiledGrammar {
	rules := map[string]peg.Pattern{}
	byName := map[string]*Lexer{}
	stylesByName := map[int]string{}

	var visit func(lx *Lexer)
	visit = func(lx *Lexer) {
		if _, seen := byName[lx.name]; seen {
			return
		}
		byName[lx.name] = lx
		for tag, style := range lx.tags {
			if style != 0 {
				stylesByName[style] = tag
			}
		}
		compileLexerRules(lx, rules)
		for _, ec := range lx.children {
			visit(ec.child)
		}
	}
	visit(l)

	// Wire embedding transitions after every participating lexer's base
	// rule set exists, since both sides of a transition reference the
	// other lexer's non-terminals.
	for _, lx := range byName {
		for _, ec := range lx.children {
			wireEmbedding(lx, ec, rules)
		}
	}

	return &compiledGrammar{
		grammar:      peg.NewGrammar(l.name, rules),
		root:         l,
		byName:       byName,
		stylesByName: stylesByName,
	}
}

func ruleNonTerminal(lexerName, id string) string { return qualifiedRuleName(lexerName, id) }
func fallbackNonTerminal(lexerName string) string { return lexerName + "_fallback" }
func ruleChoiceNonTerminal(lexerName string) string { return lexerName + "_rule" }

func compileLexerRules(lx *Lexer, rules map[string]peg.Pattern) {
	var alts []peg.Pattern
	for _, r := range lx.rules {
		nt := ruleNonTerminal(lx.name, r.id)
		rules[nt] = r.pattern
		alts = append(alts, peg.V(nt))
	}

	rules[fallbackNonTerminal(lx.name)] = lx.Tag(Default, peg.P(1))
	alts = append(alts, peg.V(fallbackNonTerminal(lx.name)))
	rules[ruleChoiceNonTerminal(lx.name)] = peg.Alt(alts...)
	rules[lx.name] = peg.Star(peg.V(ruleChoiceNonTerminal(lx.name)))

	for i, wl := range lx.wordLists {
		nt := wordListNonTerminal(lx.name, i)
		if len(wl.Words) == 0 {
			rules[nt] = peg.P(false)
			continue
		}
		rules[nt] = pattern.WordMatch(wl.Words, wl.CaseInsensitive)
	}
}

// wireEmbedding implements step 5 of grammar compilation: the parent gets a
// "<parent>_to_<child>" alternative prepended ahead of its existing rule
// choice, and the child's own rule choice is rewritten so its end rule
// both escapes the child's normal rules (via Diff, so the end delimiter
// isn't also swallowed as ordinary child content) and resumes the parent.
//
// Wiring multiple embeds one at a time, each prepending onto whatever the
// parent's rule choice currently is, means the embed wired last ends up
// matched first — which is what makes a self-embedding child (conventionally
// appended to children last) take precedence over sibling embeds, per the
// grammar compiler's design notes.
func wireEmbedding(parent *Lexer, ec *embeddedChild, rules map[string]peg.Pattern) {
	child := ec.child
	toChild := parent.name + "_to_" + child.name
	toParent := child.name + "_to_" + parent.name

	rules[toChild] = peg.Seq(ec.startRule, peg.V(child.name))
	parentChoice := ruleChoiceNonTerminal(parent.name)
	rules[parentChoice] = peg.Alt(peg.V(toChild), rules[parentChoice])

	rules[toParent] = ec.endRule
	childChoice := ruleChoiceNonTerminal(child.name)
	originalChildRule := rules[childChoice]
	rules[childChoice] = peg.Alt(
		peg.Diff(originalChildRule, peg.V(toParent)),
		peg.Seq(peg.V(toParent), peg.V(parent.name)),
	)
}

// foldOptionsFor translates a lexer's build flags plus host properties into
// fold.Options.
func foldOptionsFor(l *Lexer, props Properties) fold.Options {
	return fold.Options{
		Enabled:         props.Bool("fold", true),
		ZeroSumLines:    props.Bool("fold.scintillua.on.zero.sum.lines", false),
		Compact:         props.Bool("fold.scintillua.compact", false),
		ByIndentation:   l.foldByIndentation || props.Bool("fold.scintillua.by.indentation", false),
		CaseInsensitive: l.caseInsensitiveFoldPoints,
	}
}
