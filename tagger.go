package scintillua

import (
	"strings"

	"github.com/openSUSE-Python/scintillua/peg"
)

// ensureCompiled (re)builds the grammar cache for l if it is dirty or has
// never been built, walking the embedding tree the same way on every
// rebuild so stale children never linger in a cached entry.
func (l *Lexer) ensureCompiled() *compiledGrammar {
	if l.compiled != nil && !l.anyDirty() {
		return l.compiled
	}
	l.compiled = compile(l)
	l.clearDirty()
	return l.compiled
}

func (l *Lexer) anyDirty() bool {
	if l.dirty {
		return true
	}
	for _, ec := range l.children {
		if ec.child.anyDirty() {
			return true
		}
	}
	return false
}

func (l *Lexer) clearDirty() {
	l.dirty = false
	for _, ec := range l.children {
		ec.child.clearDirty()
	}
}

// initialRule implements the grammar compiler's initial-rule selection: a
// lexer normally starts at its own name, but if init_style names a
// "whitespace.<lang>" tag belonging to some lexer in the embedding tree,
// lexing resumes at that lexer's name instead (its parent's name, if that
// lexer is a proxy), letting the host hand back a chunk that starts mid
// embedded-language region.
func initialRule(cg *compiledGrammar, initStyle int) string {
	tag, ok := cg.stylesByName[initStyle]
	if !ok || !strings.HasPrefix(tag, "whitespace.") {
		return cg.root.name
	}
	lang := strings.TrimPrefix(tag, "whitespace.")
	if lx, ok := cg.byName[lang]; ok {
		return lx.effective().name
	}
	return cg.root.name
}

// Lex runs the grammar over text starting at the style init_style (used
// only for initial-rule selection when l has embedded children), returning
// the flat, ordered [tag, end_pos] sequence described in the tagger
// component design: one-based, exclusive end positions, total coverage,
// and the guaranteed one-character fallback.
func (l *Lexer) Lex(text string, initStyle int) []interface{} {
	if len(text) == 0 {
		return nil
	}
	if l.lexByLine {
		return l.lexByLines(text, initStyle)
	}
	return lexChunk(l, text, initStyle, 0)
}

func lexChunk(l *Lexer, text string, initStyle int, offset int) []interface{} {
	if len(l.effective().rules) == 0 {
		return []interface{}{Default, offset + len(text) + 1}
	}
	cg := l.ensureCompiled()
	g := cg.grammar
	start := initialRule(cg, initStyle)
	if start != g.Start() {
		g = g.WithStart(start)
	}

	// g.Start() is already a Star of the per-token rule choice (the
	// grammar compiler's "<lexer>" non-terminal), so one Match call drives
	// the whole chunk: Star only stops once the universal fallback itself
	// can no longer consume a byte, i.e. at end of input.
	_, caps, ok := g.Match(text, 0)
	out := []interface{}{}
	if !ok {
		return []interface{}{Default, offset + len(text) + 1}
	}
	for i := 0; i+1 < len(caps); i += 2 {
		tag, _ := caps[i].(string)
		end, _ := caps[i+1].(int)
		out = append(out, tag, offset+end)
	}
	return out
}

// lexByLines splits text on newlines (keeping the terminator with the line
// it ends), lexes each line independently starting fresh from initStyle,
// and offsets every returned position by the byte count of preceding
// lines; a line whose captures fall short of its own end gets a synthetic
// fallback capture so coverage is never broken at a line boundary.
func (l *Lexer) lexByLines(text string, initStyle int) []interface{} {
	out := []interface{}{}
	offset := 0
	start := 0
	for start <= len(text) {
		end := strings.IndexByte(text[start:], '\n')
		var line string
		if end < 0 {
			line = text[start:]
			start = len(text) + 1
		} else {
			line = text[start : start+end+1]
			start += end + 1
		}
		if line == "" {
			break
		}
		lineCaps := lexChunk(l, line, initStyle, offset)
		lineEnd := offset + len(line) + 1
		if len(lineCaps) == 0 || lineCaps[len(lineCaps)-1].(int) != lineEnd {
			lineCaps = append(lineCaps, Default, lineEnd)
		}
		out = append(out, lineCaps...)
		offset += len(line)
	}
	return out
}
