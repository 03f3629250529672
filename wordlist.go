package scintillua

// WordListSlot is one indexed word-list slot on a Lexer. A slot may be
// referenced (via GetWordList) before it is populated (via SetWordList): an
// empty slot compiles to a pattern that matches nothing, rather than an
// error, so language definitions can wire up a rule before deciding what
// words belong in it.
type WordListSlot struct {
	Name            string
	Words           []string
	CaseInsensitive bool
}
