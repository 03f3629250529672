// Package peg implements the ordered-choice Parsing Expression Grammar
// kernel that the lexer framework is built on: literals, character sets and
// ranges, repetition, concatenation, ordered choice, difference, lookahead,
// and the capture primitives needed to emit (tag, position) pairs.
//
// There is no backtracking across a committed alternative and no ambiguity:
// within a choice the leftmost matching branch wins. Strings are compared
// byte-wise; character classes are ASCII only, matching the framework's
// non-goal of Unicode-property classes.
package peg

import "strings"

// matchFunc is the shape every Pattern reduces to. g carries the Grammar a
// pattern was compiled against so that V (a forward/recursive reference to
// another rule) can resolve lazily; input/pos are the subject and current
// byte offset; caps is the capture stream accumulated so far. A failed
// match returns ok=false and must leave pos and caps untouched by the
// caller's perspective (the zero-value return is discarded by Alt/Seq).
type matchFunc func(g *Grammar, input string, pos int, caps Captures) (newPos int, newCaps Captures, ok bool)

// Pattern is an immutable PEG expression. Patterns are built up from the
// kernel primitives and combined with Seq, Alt, Diff, and the lookahead and
// repetition combinators; none of them mutate their operands.
type Pattern struct {
	fn matchFunc
}

// Match runs patt against input starting at a zero-based byte offset pos,
// returning the byte offset just past the match and the captures it
// produced. It is the entry point used by the tagger; grammar rules
// normally go through a Grammar instead so that V can resolve.
func (p Pattern) Match(input string, pos int) (int, Captures, bool) {
	return p.fn(nil, input, pos, nil)
}

// P builds a literal-string pattern from a string, or a fixed-width
// any-character pattern from an int (P(1) is the classic PEG "any single
// character", used as the lexer's default fallback).
func P(v interface{}) Pattern {
	switch x := v.(type) {
	case string:
		return literal(x)
	case int:
		return anyN(x)
	case bool:
		if x {
			return literal("")
		}
		return never()
	default:
		panic("peg.P: unsupported argument type")
	}
}

func literal(s string) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		if strings.HasPrefix(input[pos:], s) {
			return pos + len(s), caps, true
		}
		return pos, caps, false
	}}
}

func anyN(n int) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		if pos+n > len(input) || n < 0 {
			return pos, caps, false
		}
		return pos + n, caps, true
	}}
}

// never never matches; it backs P(false) and unpopulated word-list slots.
func never() Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		return pos, caps, false
	}}
}

// S builds a one-byte character-set pattern: it matches any single byte
// that appears literally in chars.
func S(chars string) Pattern {
	set := make([]bool, 256)
	for i := 0; i < len(chars); i++ {
		set[chars[i]] = true
	}
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		if pos >= len(input) || !set[input[pos]] {
			return pos, caps, false
		}
		return pos + 1, caps, true
	}}
}

// R builds a one-byte character-range pattern from one or more two-byte
// strings, each giving an inclusive [lo, hi] range, e.g. R("az", "AZ").
func R(pairs ...string) Pattern {
	ranges := make([][2]byte, 0, len(pairs))
	for _, p := range pairs {
		if len(p) != 2 {
			panic("peg.R: range must be exactly two bytes")
		}
		ranges = append(ranges, [2]byte{p[0], p[1]})
	}
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		if pos >= len(input) {
			return pos, caps, false
		}
		b := input[pos]
		for _, r := range ranges {
			if b >= r[0] && b <= r[1] {
				return pos + 1, caps, true
			}
		}
		return pos, caps, false
	}}
}

// Seq matches each pattern in order, failing (and consuming nothing) the
// moment any of them fails. It is the `a * b` concatenation operator.
func Seq(patts ...Pattern) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		cur := pos
		cc := caps
		for _, p := range patts {
			newPos, newCaps, ok := p.fn(g, input, cur, cc)
			if !ok {
				return pos, caps, false
			}
			cur, cc = newPos, newCaps
		}
		return cur, cc, true
	}}
}

// Alt is ordered choice: it tries each pattern in turn and commits to the
// first one that matches, regardless of whether a later alternative might
// match more. It is the `a + b` operator.
func Alt(patts ...Pattern) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		for _, p := range patts {
			if newPos, newCaps, ok := p.fn(g, input, pos, caps); ok {
				return newPos, newCaps, true
			}
		}
		return pos, caps, false
	}}
}

// Diff matches a provided b does not match at the same position. It is the
// `a - b` operator, most useful when a and b both describe character
// classes or ranges of text (e.g. "balanced range minus its own closer").
func Diff(a, b Pattern) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		if _, _, ok := b.fn(g, input, pos, caps); ok {
			return pos, caps, false
		}
		return a.fn(g, input, pos, caps)
	}}
}

// Look is the non-consuming positive lookahead `#patt`: it succeeds iff
// patt matches at pos, without advancing past it or keeping its captures.
func Look(patt Pattern) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		if _, _, ok := patt.fn(g, input, pos, caps); ok {
			return pos, caps, true
		}
		return pos, caps, false
	}}
}

// Not is the non-consuming negative lookahead `-patt`: it succeeds iff
// patt does not match at pos.
func Not(patt Pattern) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		if _, _, ok := patt.fn(g, input, pos, caps); ok {
			return pos, caps, false
		}
		return pos, caps, true
	}}
}

// AtLeast is the repetition `patt^n`: patt must match at least n times
// (n may be zero) and is then matched greedily for as long as it keeps
// consuming input; a zero-width match ends the repetition to guarantee
// termination.
func AtLeast(patt Pattern, n int) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		cur, cc, count := pos, caps, 0
		for {
			newPos, newCaps, ok := patt.fn(g, input, cur, cc)
			if !ok || newPos == cur {
				break
			}
			cur, cc = newPos, newCaps
			count++
		}
		if count < n {
			return pos, caps, false
		}
		return cur, cc, true
	}}
}

// AtMost is the repetition `patt^-n`: patt is matched greedily, up to n
// times, and always succeeds (zero matches is fine).
func AtMost(patt Pattern, n int) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		cur, cc := pos, caps
		for i := 0; i < n; i++ {
			newPos, newCaps, ok := patt.fn(g, input, cur, cc)
			if !ok || newPos == cur {
				break
			}
			cur, cc = newPos, newCaps
		}
		return cur, cc, true
	}}
}

// Star matches patt zero or more times: shorthand for AtLeast(patt, 0).
func Star(patt Pattern) Pattern { return AtLeast(patt, 0) }

// Plus matches patt one or more times: shorthand for AtLeast(patt, 1).
func Plus(patt Pattern) Pattern { return AtLeast(patt, 1) }

// Opt matches patt zero or one times: shorthand for AtMost(patt, 1).
func Opt(patt Pattern) Pattern { return AtMost(patt, 1) }

// Lazy defers evaluation of f until match time, which lets a pattern
// library helper reference a pattern that is still being constructed (for
// example a balanced-range pattern recursing into itself) without needing a
// full Grammar.
func Lazy(f func() Pattern) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		return f().fn(g, input, pos, caps)
	}}
}
