// Package pattern is the reusable pattern library built on top of the peg
// kernel: character classes, numeric literals, identifiers, whitespace, and
// the newline-aware helpers (to_eol, range, starts_line,
// last_char_includes) and word_match that every language definition reaches
// for.
package pattern

import "github.com/openSUSE-Python/scintillua/peg"

// Character classes, named after the C ctype.h families the original
// lexer-definition surface exposes. ASCII only: no Unicode-property
// classes.
var (
	Any    = peg.P(1)
	Alpha  = peg.R("az", "AZ")
	Digit  = peg.R("09")
	Alnum  = peg.R("az", "AZ", "09")
	Lower  = peg.R("az")
	Upper  = peg.R("AZ")
	XDigit = peg.R("09", "af", "AF")
	Punct  = peg.S("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~")
	Graph  = peg.Diff(peg.R("!~"), peg.S(" "))
	Space  = peg.S("\t\v\f\n\r ")
)

// Newline is an optional carriage return followed by a line feed; NonNewline
// is any byte except the bytes that make up a newline.
var (
	Newline    = peg.Seq(peg.Opt(peg.P("\r")), peg.P("\n"))
	NonNewline = peg.Diff(Any, Newline)
)

// Word is a letter or underscore followed by zero or more alphanumerics or
// underscores: the identifier shape shared by almost every language.
var Word = peg.Seq(peg.Alt(Alpha, peg.S("_")), peg.Star(peg.Alt(Alnum, peg.S("_"))))

// DecNum, HexNum and OctNum are the three numeric-literal bases; Integer
// tries them in that order (a hex or octal prefix must be checked before
// falling back to decimal digits); Number is a float, falling back to an
// integer.
var (
	DecNum = peg.Plus(Digit)
	HexNum = peg.Seq(peg.P("0"), peg.S("xX"), peg.Plus(XDigit))
	OctNum = peg.Seq(peg.P("0"), peg.Plus(peg.R("07")))
	Integer = peg.Seq(peg.Opt(peg.S("-+")), peg.Alt(HexNum, OctNum, DecNum))
	Float = peg.Seq(
		peg.Opt(peg.S("-+")),
		peg.Alt(
			peg.Seq(peg.Star(Digit), peg.P("."), peg.Plus(Digit), peg.Opt(exponent)),
			peg.Seq(peg.Plus(Digit), exponent),
		),
	)
	Number = peg.Alt(Float, Integer)
)

var exponent = peg.Seq(peg.S("eE"), peg.Opt(peg.S("-+")), peg.Plus(Digit))

// ToEOL matches prefix and then everything up to (but not including) the
// next newline. If escape is true, a backslash immediately before the
// newline continues the match onto the following line, the shape shell,
// Python, and C preprocessor line continuations all share.
func ToEOL(prefix string, escape bool) peg.Pattern {
	var body peg.Pattern
	if escape {
		body = peg.Star(peg.Alt(peg.Seq(peg.P("\\"), Any), NonNewline))
	} else {
		body = peg.Star(NonNewline)
	}
	return peg.Seq(peg.P(prefix), body)
}

// RangeOptions configures Range; the zero value gives its usual defaults
// once Start/End are known (see Range's doc comment).
type RangeOptions struct {
	End         string // defaults to Start if empty
	SingleLine  bool
	Escapes     *bool // nil selects the default: true iff Start == End and both are one byte
	Balanced    bool
}

// Range matches from s up to (and including, if e is non-empty) e.
//
// Defaults: escapes default to true iff s equals e and both are a single
// character (so `'...'`-style quoted strings honor backslash escapes by
// default, but `/*...*/`-style block comments do not); the match may span
// newlines unless SingleLine is set; when Balanced is set and s != e,
// nested s...e pairs are consumed so the match stops at the matching
// closer rather than the first one.
func Range(s string, opts RangeOptions) peg.Pattern {
	e := opts.End
	if e == "" {
		e = s
	}
	escapes := s == e && len(s) == 1 && len(e) == 1
	if opts.Escapes != nil {
		escapes = *opts.Escapes
	}

	var stopChar peg.Pattern
	if opts.SingleLine {
		stopChar = peg.Diff(NonNewline, peg.P(e))
	} else {
		stopChar = peg.Diff(Any, peg.P(e))
	}
	if escapes {
		stopChar = peg.Alt(peg.Seq(peg.P("\\"), Any), stopChar)
	}

	if opts.Balanced && s != e {
		// A nested open reopens the body rather than being treated as body
		// text, so the match only closes once every nested pair has.
		var body peg.Pattern
		body = peg.Star(peg.Alt(
			peg.Seq(peg.P(s), peg.Lazy(func() peg.Pattern { return body }), peg.P(e)),
			stopChar,
		))
		return peg.Seq(peg.P(s), body, peg.Opt(peg.P(e)))
	}

	return peg.Seq(peg.P(s), peg.Star(stopChar), peg.Opt(peg.P(e)))
}

// StartsLine matches patt only when it begins at the start of input or
// immediately after a newline. When allowIndent is set, tabs and spaces may
// sit between the line start and patt, whether they lie before the match
// position or are consumed by this pattern.
func StartsLine(patt peg.Pattern, allowIndent bool) peg.Pattern {
	var indent peg.Pattern
	if allowIndent {
		indent = peg.Star(peg.S("\t "))
	} else {
		indent = peg.P("")
	}
	atLineStart := peg.Cmt(peg.P(true), func(input string, start, end int, caps peg.Captures) (int, bool) {
		i := start
		if allowIndent {
			for i > 0 && (input[i-1] == ' ' || input[i-1] == '\t') {
				i--
			}
		}
		return end, i == 0 || input[i-1] == '\n' || input[i-1] == '\r'
	})
	return peg.Seq(atLineStart, indent, patt)
}

// LastCharIncludes is a zero-width predicate over the last non-whitespace
// byte before the current position, used to disambiguate context-sensitive
// tokens such as a regex literal only being legal after an operator.
func LastCharIncludes(set string) peg.Pattern {
	member := make([]bool, 256)
	for i := 0; i < len(set); i++ {
		member[set[i]] = true
	}
	return peg.Cmt(peg.P(true), func(input string, start, end int, caps peg.Captures) (int, bool) {
		i := start - 1
		for i >= 0 && (input[i] == ' ' || input[i] == '\t' || input[i] == '\n' || input[i] == '\r') {
			i--
		}
		if i < 0 {
			return end, false
		}
		return end, member[input[i]]
	})
}
