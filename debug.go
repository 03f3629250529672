package scintillua

import (
	"fmt"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/alecthomas/units"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Dump renders a read-only, human-readable view of a lexer's rule order,
// tag table, fold-point symbols, and word-list slots. It is not part of
// the host-facing contract; it exists for diagnosing a language-definition
// script and backs cmd/scintillua-lex's --debug flag.
func (l *Lexer) Dump() string {
	eff := l.effective()
	var b strings.Builder

	fmt.Fprintf(&b, "lexer %q (%d rules, %d tags, %d word lists, %d children)\n",
		eff.name, len(eff.rules), len(eff.tagOrder), len(eff.wordLists), len(eff.children))

	b.WriteString("rules:\n")
	for i, r := range eff.rules {
		fmt.Fprintf(&b, "  %2d. %s\n", i, r.id)
	}

	tagNames := maps.Keys(eff.tags)
	slices.Sort(tagNames)
	b.WriteString("tags:\n")
	for _, t := range tagNames {
		fmt.Fprintf(&b, "  %-24s style=%d\n", t, eff.tags[t])
	}

	b.WriteString("fold symbols: ")
	b.WriteString(strings.Join(eff.foldPoints.Symbols(), ", "))
	b.WriteString("\n")

	b.WriteString("word lists:\n")
	for i, wl := range eff.wordLists {
		fmt.Fprintf(&b, "  [%d] %s (%d words, case_insensitive=%v)\n", i, wl.Name, len(wl.Words), wl.CaseInsensitive)
	}

	if eff.compiled != nil {
		ruleCount := 0
		for _, lx := range eff.compiled.byName {
			ruleCount += len(lx.rules)
		}
		size := units.MetricBytes(ruleCount * 64) // rough per-non-terminal footprint estimate
		fmt.Fprintf(&b, "compiled grammar: %d participating lexers, ~%d non-terminals (~%s)\n",
			len(eff.compiled.byName), ruleCount, size)
	}

	return b.String()
}

// DumpTags is a repr-backed dump of the resolved tag table, a structured
// (as opposed to prose) companion to Dump.
func (l *Lexer) DumpTags() string {
	eff := l.effective()
	return repr.String(eff.tags, repr.Indent("  "))
}
