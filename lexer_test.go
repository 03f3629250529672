package scintillua

import (
	"testing"

	"github.com/openSUSE-Python/scintillua/peg"
	"github.com/stretchr/testify/require"
)

func TestTagRegistersStyleOnce(t *testing.T) {
	l := New("t")
	l.Tag("mytag", peg.P("x"))
	first := l.StyleOf("mytag")
	require.NotZero(t, first)
	l.Tag("mytag", peg.P("y"))
	require.Equal(t, first, l.StyleOf("mytag"))
}

func TestTagSkipsHostReservedStyleBand(t *testing.T) {
	l := New("t")
	for i := 0; i < 40; i++ {
		l.Tag(string(rune('a'+i)), peg.P("z"))
	}
	for _, name := range l.tagOrder {
		style := l.StyleOf(name)
		require.False(t, style >= hostStyleBandLo && style <= hostStyleBandHi, "style %d for %q falls in host band", style, name)
	}
}

func TestAddRuleWhitespaceReplacesInPlace(t *testing.T) {
	l := New("t")
	l.AddRule("a", peg.P("a"))
	l.AddRule(Whitespace, peg.P(" "))
	l.AddRule("b", peg.P("b"))
	l.AddRule(Whitespace, peg.P("\t"))
	require.Equal(t, []string{"a", Whitespace, "b"}, ruleIDs(l))
}

func ruleIDs(l *Lexer) []string {
	ids := make([]string, len(l.rules))
	for i, r := range l.rules {
		ids[i] = r.id
	}
	return ids
}

func TestModifyRuleRejectsUnknownID(t *testing.T) {
	l := New("t")
	err := l.ModifyRule("nope", peg.P("x"))
	require.Error(t, err)
	var cve *ContractViolationError
	require.ErrorAs(t, err, &cve)
}

func TestProxyForwardsToParent(t *testing.T) {
	parent := New("parent")
	child := New("child", Proxy(parent))
	child.AddRule("a", peg.P("a"))
	child.Tag("childtag", peg.P("b"))

	require.Len(t, parent.rules, 1)
	require.NotZero(t, parent.StyleOf("childtag"))
	require.Empty(t, child.rules)
}

func TestEmbedRejectsRulelessChild(t *testing.T) {
	parent := New("parent")
	parent.AddRule("a", peg.P("a"))
	child := New("child")
	err := parent.Embed(child, peg.P("<"), peg.P(">"))
	require.Error(t, err)
	var de *DefinitionError
	require.ErrorAs(t, err, &de)
}

func TestEmbedMirrorsTagsAndFoldPoints(t *testing.T) {
	parent := New("parent")
	parent.AddRule("a", parent.Tag(Default, peg.P("a")))
	child := New("child")
	child.AddRule("b", child.Tag("childtag", peg.P("b")))
	child.AddFoldPoint("childtag", "{", "}")

	require.NoError(t, parent.Embed(child, peg.P("<"), peg.P(">")))
	require.NotZero(t, parent.StyleOf("childtag"))
	_, ok := parent.foldPoints.Lookup("childtag", "{")
	require.True(t, ok)
}

func TestGetWordListReservesSlotBeforeSetWordList(t *testing.T) {
	l := New("t")
	ref := l.GetWordList("kw", false)
	l.SetWordList(l.WordListIndexByName("kw"), "foo bar baz", false)
	l.AddRule("kw", l.Tag(Keyword, ref))

	cg := l.ensureCompiled()
	newPos, caps, ok := cg.grammar.Match("foo", 0)
	require.True(t, ok)
	require.Equal(t, 3, newPos)
	require.Equal(t, []interface{}{Keyword, 4}, []interface{}(caps))
}
