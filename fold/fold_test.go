package fold

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func operatorStyleAt(text string) func(pos int) string {
	return func(pos int) string {
		idx := pos - 1
		if idx < 0 || idx >= len(text) {
			return ""
		}
		if text[idx] == '{' || text[idx] == '}' {
			return "operator"
		}
		return ""
	}
}

func TestZeroSumFoldLine(t *testing.T) {
	table := NewTable()
	table.Add("operator", "{", Value{Delta: 1}, false)
	table.Add("operator", "}", Value{Delta: -1}, false)

	text := "x\n} else {\ny"
	opts := Options{Enabled: true, ZeroSumLines: true}
	views := Views{
		StyleAt:   operatorStyleAt(text),
		FoldLevel: func(line int) int { return 0 },
	}

	levels := Compute(table, opts, text, 1, 1, Base, views)
	require.NotZero(t, levels[2]&Header, `"} else {" nets to zero but is itself the header for the block it opens`)
}

func TestSymbolFoldNesting(t *testing.T) {
	table := NewTable()
	table.Add("operator", "{", Value{Delta: 1}, false)
	table.Add("operator", "}", Value{Delta: -1}, false)
	text := "a {\nb {\nc\n}\n}\n"
	views := Views{
		StyleAt:   operatorStyleAt(text),
		FoldLevel: func(line int) int { return 0 },
	}
	levels := Compute(table, Options{Enabled: true}, text, 1, 1, Base, views)
	require.NotZero(t, levels[1]&Header, "line opening the outer block should be a header")
	require.NotZero(t, levels[2]&Header, "line opening the nested block should be a header")
	require.Zero(t, levels[4]&Header, "a closing-brace-only line is never itself a header")
	require.Zero(t, levels[5]&Header)
	require.Greater(t, levels[3]&^Header&^Blank, levels[5]&^Header&^Blank, "nesting must unwind back down by line 5")
}

func TestFoldNeverBelowBase(t *testing.T) {
	table := NewTable()
	table.Add("operator", "}", Value{Delta: -1}, false)
	text := "}\n}\n}\n"
	views := Views{StyleAt: operatorStyleAt(text), FoldLevel: func(int) int { return 0 }}
	levels := Compute(table, Options{Enabled: true}, text, 1, 1, Base, views)
	for line, level := range levels {
		require.GreaterOrEqual(t, level&0xFFF, Base&0xFFF, "line %d fell below Base", line)
	}
}

func TestFoldDisabledReturnsStartLevel(t *testing.T) {
	table := NewTable()
	levels := Compute(table, Options{Enabled: false}, "a\nb\nc\n", 1, 5, Base+3, Views{})
	for _, level := range levels {
		require.Equal(t, Base+3, level)
	}
}

func TestSymbolFoldCaseInsensitive(t *testing.T) {
	table := NewTable()
	table.Add("keyword", "begin", Value{Delta: 1}, true)
	table.Add("keyword", "end", Value{Delta: -1}, true)
	text := "BEGIN\n  x\nEND\n"
	views := Views{
		StyleAt:   func(int) string { return "keyword" },
		FoldLevel: func(int) int { return 0 },
	}
	levels := Compute(table, Options{Enabled: true, CaseInsensitive: true}, text, 1, 1, Base, views)
	require.NotZero(t, levels[1]&Header, "BEGIN should fold even though the registered symbol is lowercase")
	require.Greater(t, levels[2]&^Header&^Blank, Base, "line inside the BEGIN/END block should be nested")
}

func TestIndentationFolding(t *testing.T) {
	text := "def f():\n    return 1\n\ndef g():\n    return 2\n"
	views := Views{FoldLevel: func(int) int { return 0 }}
	levels := Compute(nil, Options{Enabled: true, ByIndentation: true}, text, 1, 1, Base, views)
	require.NotZero(t, levels[1]&Header, "line opening a deeper-indented block should be a header")
	require.NotZero(t, levels[3]&Blank, "blank line should carry the blank flag")
}

func TestConsecutiveLines(t *testing.T) {
	text := "// a\n// b\n// c\nx\n"
	pred := ConsecutiveLines("//", true)
	require.Equal(t, 1, pred(text, 0, 1, 1, "//"))
	require.Equal(t, 0, pred(text, strings.Index(text, "// b"), 2, 1, "//"))
	require.Equal(t, -1, pred(text, strings.Index(text, "// c"), 3, 1, "//"))
}
