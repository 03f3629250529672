package scintillua

import (
	"testing"

	"github.com/openSUSE-Python/scintillua/peg"
	"github.com/stretchr/testify/require"
)

func TestCompileFallbackGuaranteesProgress(t *testing.T) {
	l := New("lang")
	l.AddRule("id", l.Tag(Identifier, peg.Plus(peg.R("az"))))

	cg := compile(l)
	// "lang" is a Star over the per-token rule choice, so one Match call
	// drives the whole input: each non-letter byte falls through to the
	// one-character Default fallback, guaranteeing progress.
	newPos, caps, ok := cg.grammar.Match("!!x", 0)
	require.True(t, ok)
	require.Equal(t, 3, newPos)
	require.Equal(t, []interface{}{Default, 2, Default, 3, Identifier, 4}, []interface{}(caps))
}

func TestCompileEmbeddingWiresTransitions(t *testing.T) {
	parent := New("html")
	parent.AddRule("text", parent.Tag(Default, peg.Plus(peg.Diff(peg.P(1), peg.P("<")))))

	child := New("css")
	child.AddRule("id", child.Tag(Identifier, peg.Plus(peg.R("az"))))

	require.NoError(t, parent.Embed(child, peg.P("<style>"), peg.P("</style>")))

	cg := compile(parent)
	text := "a<style>b</style>c"
	newPos, caps, ok := cg.grammar.Match(text, 0)
	require.True(t, ok)
	require.Equal(t, len(text), newPos)
	var tags []string
	for i := 0; i+1 < len(caps); i += 2 {
		tags = append(tags, caps[i].(string))
	}
	require.Contains(t, tags, Identifier, "child lexer's rule must have fired inside the embedded region")
}

func TestCompileWordListSlotEmptyMatchesNothing(t *testing.T) {
	l := New("lang")
	ref := l.GetWordList("kw", false)
	l.AddRule("kw", l.Tag(Keyword, ref))
	l.AddRule("id", l.Tag(Identifier, peg.Plus(peg.R("az"))))

	cg := compile(l)
	_, caps, ok := cg.grammar.Match("foo", 0)
	require.True(t, ok)
	require.Equal(t, []interface{}{Identifier, 4}, []interface{}(caps), "unpopulated word list must never shadow the identifier rule")
}
