package pattern

import (
	"strings"

	"github.com/openSUSE-Python/scintillua/peg"
)

// wordMatchOrderedChoiceLimit is the cutoff under which WordMatch compiles
// to a flat ordered choice instead of a match-time set lookup. Below it the
// choice is cheap and keeps the common case (a handful of keywords) free of
// a closure call per candidate token.
const wordMatchOrderedChoiceLimit = 6

// WordMatch builds an efficient whole-word membership test over words,
// which may be a []string or a single whitespace-separated string.
//
// The trailing-character class that disqualifies a prefix match (so "do"
// does not match inside "done") is alnum, underscore, and every non-alnum,
// non-whitespace byte that appears in any of the words — which is what
// makes hyphenated keywords like "no-c-format" work.
func WordMatch(words interface{}, caseInsensitive bool) peg.Pattern {
	list := wordList(words)
	trailing := trailingClass(list)

	if len(list) <= wordMatchOrderedChoiceLimit && !caseInsensitive {
		alts := make([]peg.Pattern, 0, len(list))
		for _, w := range list {
			alts = append(alts, peg.Seq(peg.P(w), peg.Not(trailing)))
		}
		return peg.Alt(alts...)
	}

	set := make(map[string]bool, len(list))
	for _, w := range list {
		if caseInsensitive {
			w = strings.ToLower(w)
		}
		set[w] = true
	}
	body := peg.Plus(trailing)
	return peg.Cmt(body, func(input string, start, end int, caps peg.Captures) (int, bool) {
		word := input[start:end]
		if caseInsensitive {
			word = strings.ToLower(word)
		}
		return end, set[word]
	})
}

func wordList(words interface{}) []string {
	switch w := words.(type) {
	case []string:
		return w
	case string:
		return strings.Fields(w)
	default:
		panic("pattern.WordMatch: words must be []string or a whitespace-separated string")
	}
}

func trailingClass(words []string) peg.Pattern {
	extra := map[byte]bool{}
	for _, w := range words {
		for i := 0; i < len(w); i++ {
			b := w[i]
			isAlnum := (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
			isSpace := b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
			if !isAlnum && !isSpace {
				extra[b] = true
			}
		}
	}
	chars := make([]byte, 0, len(extra)+1)
	chars = append(chars, '_')
	for b := range extra {
		chars = append(chars, b)
	}
	return peg.Alt(Alnum, peg.S(string(chars)))
}
