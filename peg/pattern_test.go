package peg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLiteralAndSet(t *testing.T) {
	tests := []struct {
		name  string
		patt  Pattern
		input string
		pos   int
		end   int
		ok    bool
	}{
		{"literal match", P("foo"), "foobar", 0, 3, true},
		{"literal mismatch", P("foo"), "bar", 0, 0, false},
		{"any char", P(1), "x", 0, 1, true},
		{"any char at eof", P(1), "", 0, 0, false},
		{"set match", S("abc"), "bxy", 0, 1, true},
		{"set mismatch", S("abc"), "xyz", 0, 0, false},
		{"range match", R("az", "AZ"), "Q", 0, 1, true},
		{"range mismatch", R("az", "AZ"), "5", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, _, ok := tt.patt.Match(tt.input, tt.pos)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.end, end)
			}
		})
	}
}

func TestSeqAndAlt(t *testing.T) {
	p := Seq(P("if"), S(" "))
	end, _, ok := p.Match("if then", 0)
	require.True(t, ok)
	require.Equal(t, 3, end)

	_, _, ok = p.Match("ifthen", 0)
	require.False(t, ok)

	choice := Alt(P("if"), P("else"), P("elseif"))
	// ordered choice commits to the first matching alternative even when a
	// later one would consume more: "elseif" never gets a chance here.
	end, _, ok = choice.Match("elseif", 0)
	require.True(t, ok)
	require.Equal(t, 4, end)
}

func TestDiffAndLookahead(t *testing.T) {
	notKeyword := Diff(Plus(R("az")), P("if"))
	_, _, ok := notKeyword.Match("if", 0)
	require.False(t, ok)
	// b is checked only at the starting position, so "fix" (which does not
	// start with "if") still matches a in full.
	end, _, ok := notKeyword.Match("fix", 0)
	require.True(t, ok)
	require.Equal(t, 3, end)

	la := Look(P("foo"))
	end, _, ok = la.Match("foobar", 0)
	require.True(t, ok)
	require.Equal(t, 0, end, "lookahead must not consume")

	neg := Not(P("foo"))
	_, _, ok = neg.Match("foobar", 0)
	require.False(t, ok)
	end, _, ok = neg.Match("barfoo", 0)
	require.True(t, ok)
	require.Equal(t, 0, end)
}

func TestRepetition(t *testing.T) {
	digits := AtLeast(R("09"), 1)
	_, _, ok := digits.Match("abc", 0)
	require.False(t, ok)
	end, _, ok := digits.Match("123abc", 0)
	require.True(t, ok)
	require.Equal(t, 3, end)

	atMost3 := AtMost(R("09"), 3)
	end, _, ok = atMost3.Match("12345", 0)
	require.True(t, ok)
	require.Equal(t, 3, end)

	end, _, ok = atMost3.Match("ab", 0)
	require.True(t, ok, "at-most repetition always succeeds, even zero times")
	require.Equal(t, 0, end)
}

func TestCapturesConstantPositionAndText(t *testing.T) {
	patt := Seq(C(Plus(R("az"))), Cc("word"), Cp())
	end, caps, ok := patt.Match("abc123", 0)
	require.True(t, ok)
	require.Equal(t, 3, end)
	require.Equal(t, Captures{"abc", "word", 4}, caps)
}

func TestCmtRejectsAndAccepts(t *testing.T) {
	reject := Cmt(Plus(R("az")), func(input string, start, end int, caps Captures) (int, bool) {
		return end, input[start:end] != "no"
	})
	_, _, ok := reject.Match("no", 0)
	require.False(t, ok)

	end, _, ok := reject.Match("yes", 0)
	require.True(t, ok)
	require.Equal(t, 3, end)
}

func TestGrammarRecursiveReference(t *testing.T) {
	// balanced parens: Paren = '(' * (Paren + [a-z])* * ')'
	rules := map[string]Pattern{
		"Paren": Seq(P("("), Star(Alt(V("Paren"), R("az"))), P(")")),
	}
	g := NewGrammar("Paren", rules)
	end, _, ok := g.Match("(a(b)c)d", 0)
	require.True(t, ok)
	require.Equal(t, 7, end)
}
