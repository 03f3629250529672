package scintillua

import "strconv"

// Properties is the host-provided configuration map consulted by Fold and
// the loader: the string-valued `property` table (e.g. `fold`,
// `fold.scintillua.*`, `scintillua.lexers`, `scintillua.comment`) and its
// `property_int` sibling, modeled here as a single map since property_int
// is defined as the same table interpreted as an integer.
type Properties map[string]string

// String returns the raw string value for key, or def if unset.
func (p Properties) String(key, def string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Int returns key interpreted as an integer (property_int), defaulting to
// 0 for anything unset or unparsable.
func (p Properties) Int(key string) int {
	v, ok := p[key]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// Bool treats any non-zero property_int value as true, matching how
// Scintilla-style hosts encode boolean properties; def applies when the
// key is entirely unset.
func (p Properties) Bool(key string, def bool) bool {
	if _, ok := p[key]; !ok {
		return def
	}
	return p.Int(key) != 0
}
