package loader_test

import (
	"testing"

	"github.com/openSUSE-Python/scintillua/loader"
	"github.com/openSUSE-Python/scintillua/peg"
	"github.com/stretchr/testify/require"

	"github.com/openSUSE-Python/scintillua"
)

func trivialDefinition(name string, env *loader.Env) *scintillua.Lexer {
	l := scintillua.New(name)
	l.AddRule("id", l.Tag(scintillua.Identifier, peg.Plus(peg.R("az"))))
	return l
}

func TestLoadFindsRegisteredDefinition(t *testing.T) {
	r := loader.NewRegistry()
	r.Register("default", "trivial", trivialDefinition)

	lx, err := r.Load("trivial", "", "default", "")
	require.NoError(t, err)
	require.Equal(t, "trivial", lx.Name())
}

func TestLoadFallsThroughSearchPath(t *testing.T) {
	r := loader.NewRegistry()
	r.Register("extra", "trivial", trivialDefinition)

	_, err := r.Load("trivial", "", "default;extra", "")
	require.NoError(t, err)
}

func TestLoadUnknownNameReturnsNotFoundError(t *testing.T) {
	r := loader.NewRegistry()
	_, err := r.Load("missing", "", "default", "")
	require.Error(t, err)
	var nf *loader.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestLoadCachesAcrossCalls(t *testing.T) {
	r := loader.NewRegistry()
	calls := 0
	r.Register("default", "counted", func(name string, env *loader.Env) *scintillua.Lexer {
		calls++
		return scintillua.New(name)
	})

	first, err := r.Load("counted", "", "default", "")
	require.NoError(t, err)
	second, err := r.Load("counted", "", "default", "")
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 1, calls)
}

func TestLoadSurfacesDefinitionPanicAsError(t *testing.T) {
	r := loader.NewRegistry()
	r.Register("default", "broken", func(name string, env *loader.Env) *scintillua.Lexer {
		l := scintillua.New(name)
		l.Tag(scintillua.Identifier, peg.P("x"))
		panic("boom")
	})

	_, err := r.Load("broken", "", "default", "")
	require.Error(t, err)
}
