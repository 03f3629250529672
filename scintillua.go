package scintillua

import "github.com/openSUSE-Python/scintillua/fold"

// HostViews bundles the read-only borrows the host lends to Fold for the
// duration of a single call: style_at and fold_level from §6's external
// interfaces. indent_amount and line_state are accepted by language
// definitions directly through match-time guards and are not needed here.
type HostViews struct {
	StyleAt   func(pos int) string
	FoldLevel func(line int) int
}

// Lex is the host-facing lex(lexer, text, init_style) operation: it runs
// the compiled grammar over text and returns the flat [tag, end_pos]
// sequence. See Lexer.Lex for the line-by-line and empty-grammar cases.
func Lex(l *Lexer, text string, initStyle int) []interface{} {
	return l.Lex(text, initStyle)
}

// Fold is the host-facing fold(lexer, text, start_pos, start_line,
// start_level) operation: it looks up whichever lexer in l's embedding
// tree owns the style at start_pos (falling back to l itself) and runs the
// folder against its fold-point table, honoring that lexer's
// fold-by-indentation flag and the host's property gates.
func Fold(l *Lexer, props Properties, text string, startPos, startLine, startLevel int, views HostViews) map[int]int {
	cg := l.ensureCompiled()
	owner := l
	if views.StyleAt != nil {
		if tag := views.StyleAt(startPos); tag != "" {
			if lx := ownerOfTag(cg, tag); lx != nil {
				owner = lx
			}
		}
	}
	opts := foldOptionsFor(owner, props)
	fv := fold.Views{StyleAt: views.StyleAt, FoldLevel: views.FoldLevel}
	return fold.Compute(owner.foldPoints, opts, text, startPos, startLine, startLevel, fv)
}

// ownerOfTag finds the most specific lexer in the compiled tree whose own
// tag map assigned tag a non-zero style, so folding inside an embedded
// language consults that language's fold points and by-indentation flag
// rather than the host lexer's. Every lexer shares the same predefined tag
// names, so a child that tags spans with a predefined name (Keyword,
// Operator, ...) must still be found — checking tags directly rather than
// extraTags (which only tracks a lexer's custom tag names) is what makes
// that possible. Root only wins when no embedded child claims the tag.
func ownerOfTag(cg *compiledGrammar, tag string) *Lexer {
	var rootMatch *Lexer
	for _, lx := range cg.byName {
		if lx.tags[tag] == 0 {
			continue
		}
		if lx == cg.root {
			rootMatch = lx
			continue
		}
		return lx
	}
	return rootMatch
}
