package peg

// Captures is the flat, ordered sequence of values produced while matching
// a Pattern. A lexer's tag captures append a (tagName, endPosition) pair;
// other capture primitives below append a single value.
type Captures []interface{}

// Cc always succeeds without consuming input and appends the constant value v.
func Cc(v interface{}) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		return pos, append(caps, v), true
	}}
}

// Cp always succeeds without consuming input and appends the current
// position, expressed one-based as the host expects.
func Cp() Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		return pos, append(caps, pos+1), true
	}}
}

// C matches patt and appends the substring it consumed.
func C(patt Pattern) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		newPos, _, ok := patt.fn(g, input, pos, caps)
		if !ok {
			return pos, caps, false
		}
		return newPos, append(caps, input[pos:newPos]), true
	}}
}

// Ct matches patt and flattens whatever captures it produced into the
// caller's capture stream. Because Captures is already a flat slice, Ct is
// effectively the identity operation on captures, but it marks the
// boundary that grammar compilation wraps the whole program in.
func Ct(patt Pattern) Pattern {
	return patt
}

// MatchTimeFunc is called by Cmt once patt has matched, with the byte range
// it covered and the captures it produced. Returning ok=false rejects the
// match as if patt itself had failed; returning a newEnd different from end
// lets the guard adjust the consumed range (used by word_match and
// starts_line style predicates).
type MatchTimeFunc func(input string, start, end int, caps Captures) (newEnd int, ok bool)

// Cmt matches patt, then calls f as a match-time guard. f may accept the
// match (optionally moving the end position) or reject it; rejection is a
// local, non-fatal choice failure, never a panic.
func Cmt(patt Pattern, f MatchTimeFunc) Pattern {
	return Pattern{fn: func(g *Grammar, input string, pos int, caps Captures) (int, Captures, bool) {
		newPos, subCaps, ok := patt.fn(g, input, pos, caps)
		if !ok {
			return pos, caps, false
		}
		end, accept := f(input, pos, newPos, subCaps)
		if !accept {
			return pos, caps, false
		}
		return end, subCaps, true
	}}
}
