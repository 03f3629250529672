// Package scintillua is a lexer framework that recognizes and tags elements
// of source code for syntax highlighting, built atop Parsing Expression
// Grammars. A host (a text editor, or something Scintilla-like) hands it
// chunks of text and a starting style identifier; the framework returns a
// sequence of (tag, end-position) pairs covering the chunk, and separately
// computes per-line fold levels.
//
// Concrete language lexers are *data* against this framework, built from
// the peg and pattern packages and composed with the operations on Lexer
// below; none ship here.
//
// The framework is single-threaded and synchronous: a Lexer is built up by
// its language-definition script, compiled lazily on first Lex or Fold, and
// is not safe for concurrent use afterward. Hosts that want to parallelize
// across languages should keep per-goroutine Lexer instances.
package scintillua

import (
	"github.com/openSUSE-Python/scintillua/fold"
	"github.com/openSUSE-Python/scintillua/peg"
)

// rule is one named entry in a Lexer's ordered rule list.
type rule struct {
	id      string
	pattern peg.Pattern
}

// embeddedChild is one child lexer embedded into a parent, along with the
// transition patterns that move lexing across the boundary.
type embeddedChild struct {
	child     *Lexer
	startRule peg.Pattern
	endRule   peg.Pattern
}

// Lexer holds a named, ordered rule list, a tag-to-style-number map,
// embedded-child registry, fold-point registry, word-list slots, and build
// flags. It is mutable until first compiled (on first Lex or Fold), after
// which mutations simply invalidate and lazily rebuild the cached grammar.
type Lexer struct {
	name string

	rules     []rule
	ruleIndex map[string]int

	tags      map[string]int
	tagOrder  []string
	nextStyle int
	extraTags map[string]bool

	foldPoints                *fold.Table
	caseInsensitiveFoldPoints bool

	wordLists        []*WordListSlot
	wordListIndex    map[string]int
	noUserWordLists  bool
	numUserWordLists int

	children []*embeddedChild

	// parent is set for a proxy lexer (one that forwards mutations) and
	// for the loader's bookkeeping when a proxy is resolved. parentName
	// records the declared name of a proxy being rewritten to its parent's
	// effective identity (set by ResolveIdentity; nothing else reads it).
	parent     *Lexer
	parentName string
	isProxy    bool

	lexByLine         bool
	foldByIndentation bool

	compiled *compiledGrammar
	dirty    bool
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// Proxy declares this lexer as a thin inheritor of parent: all rule, fold
// point, and word-list mutations on it forward to parent instead of being
// stored locally, and the loader will rewrite its identity so parent
// becomes the effective lexer.
func Proxy(parent *Lexer) Option {
	return func(l *Lexer) {
		l.parent = parent
		l.isProxy = true
	}
}

// LexByLine marks the lexer as needing the line-by-line tagging strategy
// (the grammar is reapplied to each line independently and the results
// stitched together), for lexers whose rules assume they start at column
// zero.
func LexByLine() Option {
	return func(l *Lexer) { l.lexByLine = true }
}

// FoldByIndentation selects the indentation-based folding strategy instead
// of the default symbol-based one.
func FoldByIndentation() Option {
	return func(l *Lexer) { l.foldByIndentation = true }
}

// CaseInsensitiveFoldPoints lowercases fold-point symbols as they are
// registered (and, correspondingly, the folder must lowercase the text it
// scans against them).
func CaseInsensitiveFoldPoints() Option {
	return func(l *Lexer) { l.caseInsensitiveFoldPoints = true }
}

// NumUserWordLists overrides the default count (4) of word-list slots a
// plain New allocates up front.
func NumUserWordLists(n int) Option {
	return func(l *Lexer) { l.numUserWordLists = n }
}

// NoUserWordLists sets the lexer's no-user-word-lists build flag. The flag
// is only recorded: neither this package nor the loader reads it, so it
// does not stop word lists from being extended at load time.
func NoUserWordLists() Option {
	return func(l *Lexer) { l.noUserWordLists = true }
}

// New creates a named Lexer. Build flags and proxy parentage are set via
// Option; the lexer is otherwise empty until rules, fold points, and word
// lists are added by its language-definition script.
func New(name string, opts ...Option) *Lexer {
	l := &Lexer{
		name:             name,
		ruleIndex:        map[string]int{},
		tags:             map[string]int{},
		extraTags:        map[string]bool{},
		foldPoints:       fold.NewTable(),
		wordListIndex:    map[string]int{},
		numUserWordLists: 4,
		dirty:            true,
	}
	for _, opt := range opts {
		opt(l)
	}
	for i := 0; i < l.numUserWordLists; i++ {
		l.wordLists = append(l.wordLists, &WordListSlot{})
	}
	for _, t := range predefinedTags {
		l.tags[t] = 0 // style assigned lazily on first real use, via registerTag
	}
	return l
}

// Name returns the lexer's immutable identity.
func (l *Lexer) Name() string { return l.name }

func (l *Lexer) invalidate() { l.dirty = true }

// effective is the lexer whose tables mutations actually land on: a proxy
// forwards everything to its parent, while a self-embedding child (one
// that appears in some other lexer's children, but was not built with
// Proxy) keeps its own tables.
func (l *Lexer) effective() *Lexer {
	if l.isProxy && l.parent != nil {
		return l.parent.effective()
	}
	return l
}

// Tag returns a pattern that, when matched, emits the capture sequence
// (name, end_position). It registers name in the tag map if new, assigning
// the next available style number (skipping the host-reserved 33-40
// band). On a proxy lexer the name is also registered on the parent.
func (l *Lexer) Tag(name string, patt peg.Pattern) peg.Pattern {
	l.effective().registerTag(name)
	return peg.Seq(patt, peg.Cc(name), peg.Cp())
}

func (l *Lexer) registerTag(name string) {
	if style, ok := l.tags[name]; ok && style != 0 {
		return
	}
	if !isPredefinedTag(name) {
		l.extraTags[name] = true
	}
	if len(l.tagOrder) >= maxStyles {
		panic(&StyleOverflowError{Lexer: l.name, Tag: name})
	}
	l.nextStyle = nextStyleNumber(l.nextStyle)
	l.tags[name] = l.nextStyle
	l.tagOrder = append(l.tagOrder, name)
}

func isPredefinedTag(name string) bool {
	for _, t := range predefinedTags {
		if t == name {
			return true
		}
	}
	return false
}

// StyleOf returns the style number assigned to tag, or 0 if it has never
// been used.
func (l *Lexer) StyleOf(tag string) int {
	return l.effective().tags[tag]
}

// AddRule appends (id, patt) to the ordered rule list, or — for the
// legacy-compatible special case id == "whitespace" when a rule by that id
// already exists — replaces it in place so its relative position is kept.
// Either way the cached grammar is invalidated. Proxies forward.
func (l *Lexer) AddRule(id string, patt peg.Pattern) {
	eff := l.effective()
	if id == "whitespace" {
		if i, ok := eff.ruleIndex[id]; ok {
			eff.rules[i].pattern = patt
			eff.invalidate()
			return
		}
	}
	eff.ruleIndex[id] = len(eff.rules)
	eff.rules = append(eff.rules, rule{id: id, pattern: patt})
	eff.invalidate()
}

// ModifyRule replaces the pattern of an existing rule, returning a
// ContractViolationError if id is absent.
func (l *Lexer) ModifyRule(id string, patt peg.Pattern) error {
	eff := l.effective()
	i, ok := eff.ruleIndex[id]
	if !ok {
		return contractViolationf("modify_rule", "lexer %q has no rule %q", eff.name, id)
	}
	eff.rules[i].pattern = patt
	eff.invalidate()
	return nil
}

// GetRule returns a by-name reference to the rule in the eventual compiled
// grammar, not the pattern directly: it resolves lazily, so it is safe to
// call before the rule it names has been added, or before later
// modifications to it.
func (l *Lexer) GetRule(id string) peg.Pattern {
	return peg.V(qualifiedRuleName(l.effective().name, id))
}

func qualifiedRuleName(lexerName, id string) string {
	return lexerName + "." + id
}

// GetWordList reserves a word-list slot (if name hasn't been seen before on
// this lexer) and returns a by-name reference to it, safe to use in a rule
// before SetWordList populates it.
func (l *Lexer) GetWordList(name string, caseInsensitive bool) peg.Pattern {
	eff := l.effective()
	idx, ok := eff.wordListIndex[name]
	if !ok {
		eff.wordLists = append(eff.wordLists, &WordListSlot{Name: name, CaseInsensitive: caseInsensitive})
		idx = len(eff.wordLists) - 1
		eff.wordListIndex[name] = idx
	}
	return peg.V(wordListNonTerminal(eff.name, idx))
}

func wordListNonTerminal(lexerName string, idx int) string {
	return lexerName + "_wordlist" + itoa(idx)
}

// SetWordList populates (or, with append=true, extends) the word-list slot
// at index idx with words, and invalidates the cached grammar. A words
// value of the literal string "scintillua" is a no-op hand-off reserved for
// the host.
func (l *Lexer) SetWordList(idx int, words interface{}, appendWords bool) {
	eff := l.effective()
	if idx < 0 || idx >= len(eff.wordLists) {
		panic(contractViolationf("set_word_list", "lexer %q has no word list slot %d", eff.name, idx))
	}
	if s, ok := words.(string); ok && s == "scintillua" {
		return
	}
	list := splitWords(words)
	if appendWords {
		eff.wordLists[idx].Words = append(eff.wordLists[idx].Words, list...)
	} else {
		eff.wordLists[idx].Words = list
	}
	eff.invalidate()
}

// AddFoldPoint registers a fold symbol for tag. If endOrPredicate is a
// string, both start (as +1) and end (as -1) are registered under it; if a
// fold.Predicate, it is stored as-is and invoked later with the line
// context; an int registers a fixed delta directly. Proxies forward.
func (l *Lexer) AddFoldPoint(tagName, start string, endOrPredicate interface{}) {
	eff := l.effective()
	switch v := endOrPredicate.(type) {
	case string:
		eff.foldPoints.Add(tagName, start, fold.Value{Delta: 1}, eff.caseInsensitiveFoldPoints)
		eff.foldPoints.Add(tagName, v, fold.Value{Delta: -1}, eff.caseInsensitiveFoldPoints)
	case fold.Predicate:
		eff.foldPoints.Add(tagName, start, fold.Value{Predicate: v}, eff.caseInsensitiveFoldPoints)
	case int:
		eff.foldPoints.Add(tagName, start, fold.Value{Delta: v}, eff.caseInsensitiveFoldPoints)
	default:
		panic(contractViolationf("add_fold_point", "end_or_predicate must be a string, int delta, or fold.Predicate"))
	}
	eff.invalidate()
}

// Embed registers child with this lexer as parent, records the transition
// rules, mirrors the child's extra tags and fold points onto this lexer,
// and copies the child's word lists under namespaced keys
// (<child_name>.<slot>). Embedding a child with no rules is a definition
// error.
func (l *Lexer) Embed(child *Lexer, startRule, endRule peg.Pattern) error {
	eff := l.effective()
	ceff := child.effective()
	if len(ceff.rules) == 0 {
		return definitionErrorf(eff.name, "cannot embed %q: it has no rules", ceff.name)
	}

	eff.children = append(eff.children, &embeddedChild{child: ceff, startRule: startRule, endRule: endRule})
	for t := range ceff.extraTags {
		eff.registerTag(t)
	}
	eff.foldPoints.Merge(ceff.foldPoints)
	for i, wl := range ceff.wordLists {
		name := ceff.name + "." + itoa(i)
		eff.wordLists = append(eff.wordLists, &WordListSlot{Name: name, Words: wl.Words, CaseInsensitive: wl.CaseInsensitive})
		eff.wordListIndex[name] = len(eff.wordLists) - 1
	}
	eff.invalidate()
	return nil
}

// ResolveIdentity implements the loader's proxy-rewriting step (§4.7): if
// l is a proxy, it returns l's effective parent, recording declaredName on
// the parent's parentName field if that field is still empty. The grammar
// compiler does not consult parentName when naming transition rules. A
// non-proxy lexer is returned unchanged.
func (l *Lexer) ResolveIdentity(declaredName string) *Lexer {
	if !l.isProxy || l.parent == nil {
		return l
	}
	eff := l.effective()
	if eff.parentName == "" {
		eff.parentName = declaredName
	}
	return eff
}

// WordListIndexByName returns the slot index a word list was reserved
// under by GetWordList, or -1 if name is unknown. Intended for host-side
// or manifest-driven extension of a lexer's word lists after load.
func (l *Lexer) WordListIndexByName(name string) int {
	eff := l.effective()
	idx, ok := eff.wordListIndex[name]
	if !ok {
		return -1
	}
	return idx
}

func splitWords(words interface{}) []string {
	switch w := words.(type) {
	case []string:
		return w
	case string:
		return splitFields(w)
	default:
		panic("scintillua: SetWordList: words must be []string or a whitespace-separated string")
	}
}

func splitFields(s string) []string {
	var out []string
	start := -1
	for i := 0; i < len(s); i++ {
		isSpace := s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r'
		if isSpace {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
