package scintillua

import (
	"testing"

	"github.com/openSUSE-Python/scintillua/peg"
	"github.com/stretchr/testify/require"
)

func newKeywordLexer() *Lexer {
	l := New("kwlang")
	l.AddRule("ws", l.Tag(Whitespace, peg.Plus(peg.S(" \t"))))
	// Keyword must be tried before identifier, or "do" would always lose.
	l.AddRule("kw", l.Tag(Keyword, pegWordBoundary("do")))
	l.AddRule("id", l.Tag(Identifier, peg.Plus(peg.R("az", "09"))))
	return l
}

func pegWordBoundary(word string) peg.Pattern {
	return peg.Seq(peg.P(word), peg.Not(peg.R("az", "09")))
}

func TestLexKeywordBeforeIdentifierOrdering(t *testing.T) {
	l := newKeywordLexer()
	caps := l.Lex("do done", 0)
	require.Equal(t, []interface{}{Keyword, 3, Whitespace, 4, Identifier, 8}, caps)
}

func TestLexTotalCoverageAndMonotonicPositions(t *testing.T) {
	l := newKeywordLexer()
	text := "do x!y"
	caps := l.Lex(text, 0)
	require.True(t, len(caps) >= 2)
	last := 0
	for i := 0; i+1 < len(caps); i += 2 {
		end := caps[i+1].(int)
		require.Greater(t, end, last)
		last = end
	}
	require.Equal(t, len(text)+1, last)
}

func TestLexEmptyGrammarFallsBackToDefault(t *testing.T) {
	l := New("empty")
	caps := l.Lex("xyz", 0)
	require.Equal(t, []interface{}{Default, 4}, caps)
}

func TestLexEmptyTextReturnsNoCaptures(t *testing.T) {
	l := newKeywordLexer()
	require.Empty(t, l.Lex("", 0))
}

func TestLexByLineOffsetsPositionsAndPadsShortLines(t *testing.T) {
	l := New("lines", LexByLine())
	l.AddRule("id", l.Tag(Identifier, peg.Plus(peg.R("az"))))

	text := "ab\ncd\n"
	caps := l.Lex(text, 0)
	require.Equal(t, []interface{}{Identifier, 3, Default, 4, Identifier, 6, Default, 7}, caps)
}
