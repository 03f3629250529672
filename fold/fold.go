package fold

import "strings"

// Encoded fold level: level = Base + depth, OR-combined with Header and/or
// Blank. These mirror the values a Scintilla-like host already uses for
// SC_FOLDLEVELBASE / SC_FOLDLEVELHEADERFLAG / SC_FOLDLEVELWHITEFLAG so a
// level computed here can be handed straight back across the host boundary.
const (
	Base   = 0x400
	Header = 0x2000
	Blank  = 0x1000
)

// Options mirrors the host-set property gates consulted at fold time:
// `fold`, `fold.scintillua.on.zero.sum.lines`, `fold.scintillua.compact`,
// and `fold.scintillua.by.indentation`. `fold.scintillua.line.groups` is
// consulted by ConsecutiveLines directly, not here.
type Options struct {
	Enabled         bool
	ZeroSumLines    bool
	Compact         bool
	ByIndentation   bool
	CaseInsensitive bool
}

// Views are the host-provided, read-only borrows the folder consults:
// StyleAt maps a one-based byte position to the tag active there, and
// FoldLevel returns a previously encoded level for a line (0 if the host
// has nothing recorded yet, used for in-place-typing stability on
// zero-sum lines).
type Views struct {
	StyleAt   func(pos int) string
	FoldLevel func(line int) int
}

// Compute returns one encoded fold level per line of text, honoring
// Options and consulting Views. text starts at byte offset startPos
// (one-based, matching the host's position convention) on line startLine
// (one-based), with a fold level of startLevel carried in from whatever
// came before the chunk.
func Compute(table *Table, opts Options, text string, startPos, startLine, startLevel int, views Views) map[int]int {
	levels := map[int]int{}
	if !opts.Enabled {
		lines := splitLines(text)
		for i := range lines {
			levels[startLine+i] = startLevel
		}
		return levels
	}
	if opts.ByIndentation {
		return computeIndentation(opts, text, startLine, startLevel, views)
	}
	return computeSymbols(table, opts, text, startPos, startLine, startLevel, views)
}

type lineSpan struct {
	start, end int // byte offsets into text, end exclusive of the newline
}

func splitLines(text string) []lineSpan {
	var spans []lineSpan
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			spans = append(spans, lineSpan{start, i})
			start = i + 1
		}
	}
	if start <= len(text) {
		spans = append(spans, lineSpan{start, len(text)})
	}
	return spans
}

func isBlank(s string) bool {
	s = strings.TrimRight(s, "\r")
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return false
		}
	}
	return true
}

func computeSymbols(table *Table, opts Options, text string, startPos, startLine, startLevel int, views Views) map[int]int {
	levels := map[int]int{}
	lines := splitLines(text)
	prevLevel := startLevel
	symbols := table.Symbols()

	for i, span := range lines {
		lineNo := startLine + i
		lineText := text[span.start:span.end]
		if isBlank(lineText) {
			flag := 0
			if opts.Compact {
				flag = Blank
			}
			levels[lineNo] = prevLevel | flag
			continue
		}

		currentLevel := prevLevel
		decreased := false
		consumed := make([]bool, len(lineText)+1)

		scanText := lineText
		if opts.CaseInsensitive {
			scanText = asciiLower(lineText)
		}

		for _, symbol := range symbols {
			isWord := isWordSymbol(symbol)
			start := 0
			for {
				idx := strings.Index(scanText[start:], symbol)
				if idx < 0 {
					break
				}
				col := start + idx // zero-based column within line
				overlap := false
				for k := col; k < col+len(symbol); k++ {
					if consumed[k] {
						overlap = true
						break
					}
				}
				start = col + 1
				if overlap {
					continue
				}
				if isWord {
					if col > 0 && isWordByte(lineText[col-1]) {
						continue
					}
					endCol := col + len(symbol)
					if endCol < len(lineText) && isWordByte(lineText[endCol]) {
						continue
					}
				}
				pos := startPos + span.start + col // one-based overall position of the symbol's first byte
				tag := views.StyleAt(pos)
				v, ok := table.Lookup(tag, symbol)
				if !ok {
					continue
				}
				for k := col; k < col+len(symbol); k++ {
					consumed[k] = true
				}
				delta := v.resolve(text, span.start, lineNo, col+1, symbol)
				if delta < 0 {
					decreased = true
				}
				currentLevel += delta
			}
		}

		if currentLevel < Base {
			currentLevel = Base
		}

		flag := 0
		displayLevel := prevLevel
		if currentLevel > prevLevel {
			flag = Header
		} else if decreased && currentLevel == prevLevel && opts.ZeroSumLines {
			// A net-zero line that closed a block before reopening one
			// (e.g. "} else {") is itself the fold header for the block
			// it opens, displayed one level down from where the block it
			// closed was sitting (prevLevel-1). If the host has recorded a
			// level for this line (typing in place), that level with its
			// flags stripped is shown instead. Without a recorded level,
			// prevLevel-1 is floored at Base; the caller's start_level is
			// not consulted.
			recorded := views.FoldLevel(lineNo)
			base := prevLevel - 1
			if recorded != 0 {
				base = recorded &^ (Header | Blank)
			} else if prevLevel-1 < Base {
				base = Base
			}
			displayLevel = base
			flag = Header
		}
		levels[lineNo] = displayLevel | flag
		prevLevel = currentLevel
	}
	return levels
}

func isWordSymbol(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

func computeIndentation(opts Options, text string, startLine, startLevel int, views Views) map[int]int {
	levels := map[int]int{}
	lines := splitLines(text)

	indentOf := func(s string) (int, bool) {
		s = strings.TrimRight(s, "\r")
		if isBlank(s) {
			return 0, true
		}
		col := 0
		for i := 0; i < len(s); i++ {
			if s[i] == ' ' {
				col++
			} else if s[i] == '\t' {
				col++
			} else {
				break
			}
		}
		return col, false
	}

	indents := make([]int, len(lines))
	blanks := make([]bool, len(lines))
	for i, span := range lines {
		indents[i], blanks[i] = indentOf(text[span.start:span.end])
	}

	// When the chunk has a non-blank line, carry in the level the host
	// recorded for the line just before the chunk (flags stripped), if any.
	// Only that one line is read: blank prior lines are not skipped, its
	// indent is not compared with the chunk's, and it is never promoted to
	// a header.
	priorLevel := startLevel
	firstNonBlank := -1
	for i, blank := range blanks {
		if !blank {
			firstNonBlank = i
			break
		}
	}
	if firstNonBlank >= 0 {
		for line := startLine - 1; line >= 1; line-- {
			prior := views.FoldLevel(line)
			if prior == 0 {
				break
			}
			priorLevel = prior &^ (Header | Blank)
			break
		}
	}

	current := priorLevel
	for i, span := range lines {
		lineNo := startLine + i
		_ = span
		if blanks[i] {
			levels[lineNo] = current | Blank
			continue
		}
		nextIndent, nextIsHeader := nextNonBlankIndent(indents, blanks, i)
		flag := 0
		if nextIsHeader && nextIndent > indents[i] {
			flag = Header
		}
		levels[lineNo] = current | flag
		if nextIsHeader && nextIndent > indents[i] {
			current += 1
		} else if nextIsHeader && nextIndent < indents[i] {
			current -= (indents[i] - nextIndent)
			if current < Base {
				current = Base
			}
		}
	}
	return levels
}

func nextNonBlankIndent(indents []int, blanks []bool, from int) (int, bool) {
	for i := from + 1; i < len(indents); i++ {
		if !blanks[i] {
			return indents[i], true
		}
	}
	return 0, false
}

// ConsecutiveLines produces a Predicate suitable for a fold point: it
// returns +1 on the first of a run of lines whose leading non-whitespace
// starts with prefix, -1 on the last, and 0 otherwise. enabled should be
// fed from the host's `fold.scintillua.line.groups` property.
func ConsecutiveLines(prefix string, enabled bool) Predicate {
	return func(text string, linePos, line, col int, symbol string) int {
		if !enabled {
			return 0
		}
		lineEnd := strings.IndexByte(text[linePos:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += linePos
		}
		if !strings.HasPrefix(strings.TrimLeft(text[linePos:lineEnd], " \t"), prefix) {
			return 0
		}
		prevMatches := linePrefixMatches(text, linePos-1, prefix, -1)
		nextMatches := linePrefixMatches(text, lineEnd+1, prefix, 1)
		switch {
		case !prevMatches && nextMatches:
			return 1
		case prevMatches && !nextMatches:
			return -1
		default:
			return 0
		}
	}
}

func linePrefixMatches(text string, from int, prefix string, dir int) bool {
	if dir < 0 {
		if from < 0 {
			return false
		}
		// from is the newline ending the previous line; that line starts
		// just after the newline before it.
		start := strings.LastIndexByte(text[:from], '\n')
		start++
		return strings.HasPrefix(strings.TrimLeft(text[start:from], " \t"), prefix)
	}
	if from > len(text) {
		return false
	}
	end := strings.IndexByte(text[from:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += from
	}
	return strings.HasPrefix(strings.TrimLeft(text[from:end], " \t"), prefix)
}
