// Package loader implements §4.7 of the lexer framework: resolving a
// language name to a compiled lexer via a search path, evaluating its
// definition inside a restricted environment, and rewriting a proxy
// lexer's identity onto its parent.
//
// Go has no sandboxed interpreter to restrict the way a scripting-language
// host would; here "restricted environment" means a language definition is
// a registered constructor function whose only argument besides its name is
// an *Env. Env exposes the pattern library, the PEG kernel re-exports, and
// a read-only view of already-loaded lexers for cross-language embedding;
// it does not expose this package's registry or any I/O. A definition is
// still ordinary Go code: it builds its lexer with scintillua.New directly,
// and nothing here stops it from importing and calling other packages.
package loader

import (
	"fmt"
	"strings"
	"sync"

	"github.com/openSUSE-Python/scintillua"
	"github.com/openSUSE-Python/scintillua/pattern"
	"github.com/openSUSE-Python/scintillua/peg"
)

// Env is the restricted surface a language-definition constructor sees.
// It intentionally does not expose the registry (so a definition can't
// register other languages as a side effect) or any I/O.
type Env struct {
	// Pattern is the reusable pattern library (identifiers, numbers,
	// to_eol, range, word_match, …).
	Pattern patternLib
	// Peg is the raw PEG kernel, for definitions that need a primitive
	// the pattern library doesn't cover.
	Peg pegKernel
	// Loaded returns an already-compiled sibling lexer by name, for
	// definitions that embed another language (e.g. CSS into HTML);
	// it is read-only and never triggers a fresh load.
	Loaded func(name string) (*scintillua.Lexer, bool)
}

type patternLib struct{}
type pegKernel struct{}

func (patternLib) Word() peg.Pattern                            { return pattern.Word }
func (patternLib) Number() peg.Pattern                          { return pattern.Number }
func (patternLib) ToEOL(prefix string, escape bool) peg.Pattern { return pattern.ToEOL(prefix, escape) }
func (patternLib) Range(s string, opts pattern.RangeOptions) peg.Pattern {
	return pattern.Range(s, opts)
}
func (patternLib) WordMatch(words interface{}, caseInsensitive bool) peg.Pattern {
	return pattern.WordMatch(words, caseInsensitive)
}
func (patternLib) StartsLine(patt peg.Pattern, allowIndent bool) peg.Pattern {
	return pattern.StartsLine(patt, allowIndent)
}

func (pegKernel) P(v interface{}) peg.Pattern        { return peg.P(v) }
func (pegKernel) S(chars string) peg.Pattern         { return peg.S(chars) }
func (pegKernel) R(pairs ...string) peg.Pattern      { return peg.R(pairs...) }
func (pegKernel) Seq(p ...peg.Pattern) peg.Pattern   { return peg.Seq(p...) }
func (pegKernel) Alt(p ...peg.Pattern) peg.Pattern   { return peg.Alt(p...) }

// Definition is a registered language constructor: given name (or
// alt_name, per §4.7) and a restricted Env, it builds and returns a fresh
// Lexer. Definitions must not retain env or the lexer they're handed
// beyond the call.
type Definition func(name string, env *Env) *scintillua.Lexer

// Registry holds definitions under a namespace-qualified key
// ("<namespace>/<name>"), where namespaces stand in for the directories a
// semicolon-joined scintillua.lexers search path would otherwise name.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition
	cache       map[string]*scintillua.Lexer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		definitions: map[string]Definition{},
		cache:       map[string]*scintillua.Lexer{},
	}
}

// Register adds a definition under namespace/name. Re-registering the same
// key replaces the definition and evicts any cached compile of it.
func (r *Registry) Register(namespace, name string, def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := namespace + "/" + name
	r.definitions[key] = def
	delete(r.cache, key)
}

// Load implements load(name, alt_name?): it walks searchPath (a
// semicolon-joined list of namespaces, mirroring the scintillua.lexers
// host property) looking for a registered definition of name, invokes the
// first match with (alt_name or name) as its construction argument, and
// — if the returned lexer is a proxy — rewrites its identity so the
// parent becomes the effective lexer, recording the proxy's original name
// as the parent's parent_name.
//
// If manifestDir is non-empty, a sibling manifest file
// (<manifestDir>/<name>.lang.toml or .lang.yaml) is consulted after
// construction and merged on top: it can add word-list words and
// fold-point symbols without requiring a Go rebuild.
func (r *Registry) Load(name, altName string, searchPath string, manifestDir string) (*scintillua.Lexer, error) {
	effectiveName := name
	if altName != "" {
		effectiveName = altName
	}

	for _, ns := range splitSearchPath(searchPath) {
		key := ns + "/" + name
		r.mu.RLock()
		def, ok := r.definitions[key]
		cached, cachedOK := r.cache[key]
		r.mu.RUnlock()
		if !ok {
			continue
		}
		if cachedOK {
			return cached, nil
		}

		env := &Env{Loaded: r.loadedView()}
		lx, err := build(effectiveName, def, env)
		if err != nil {
			return nil, err
		}
		lx = resolveProxy(lx, name)

		if manifestDir != "" {
			if err := applyManifest(lx, manifestDir, name); err != nil {
				return nil, err
			}
		}

		r.mu.Lock()
		r.cache[key] = lx
		r.mu.Unlock()
		return lx, nil
	}
	return nil, errLexerNotFound(name, searchPath)
}

func (r *Registry) loadedView() func(name string) (*scintillua.Lexer, bool) {
	return func(name string) (*scintillua.Lexer, bool) {
		r.mu.RLock()
		defer r.mu.RUnlock()
		for key, lx := range r.cache {
			if strings.HasSuffix(key, "/"+name) {
				return lx, true
			}
		}
		return nil, false
	}
}

// build invokes def, converting a panic raised by a misbehaving
// language-definition script (e.g. a StyleOverflowError or a
// ContractViolationError panic from the Lexer API) into a returned error
// rather than letting it escape to the host, per §7's "surface to the
// host; do not cache a partial lexer". A panic value that is an error is
// wrapped with %w, so errors.As still finds its original type; any other
// value is formatted into the message.
func build(name string, def Definition, env *Env) (lx *scintillua.Lexer, err error) {
	defer func() {
		if p := recover(); p != nil {
			lx = nil
			if e, ok := p.(error); ok {
				err = fmt.Errorf("scintillua: loading %q: %w", name, e)
			} else {
				err = fmt.Errorf("scintillua: loading %q: %v", name, p)
			}
		}
	}()
	return def(name, env), nil
}

// resolveProxy rewrites a proxy lexer's identity onto its effective
// parent, per §4.7: the loader hands the host back the parent, and the
// proxy's own declared name is recorded on it as parent_name. The grammar
// compiler does not read that record: transition non-terminals are always
// named after the lexers' own names.
func resolveProxy(lx *scintillua.Lexer, declaredName string) *scintillua.Lexer {
	return lx.ResolveIdentity(declaredName)
}

func splitSearchPath(path string) []string {
	if path == "" {
		return []string{"default"}
	}
	parts := strings.Split(path, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func errLexerNotFound(name, searchPath string) error {
	return &NotFoundError{Name: name, SearchPath: searchPath}
}

// NotFoundError reports a load() that matched no registered definition
// anywhere on the search path.
type NotFoundError struct {
	Name       string
	SearchPath string
}

func (e *NotFoundError) Error() string {
	return Localize("lexer_not_found", map[string]interface{}{"Name": e.Name, "SearchPath": e.SearchPath})
}
