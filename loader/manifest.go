package loader

import (
	"os"
	"strings"

	"github.com/openSUSE-Python/scintillua"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// manifest is the declarative side-channel a language definition's Go
// constructor can be augmented by without a rebuild: extra word-list
// entries and fold-point symbols, keyed by the name a rule or tag was
// already registered under from Go. It deliberately cannot introduce new
// rules or tags — only extend what the Go definition already declared —
// keeping the restricted-environment guarantee that a manifest cannot
// inject arbitrary pattern logic.
type manifest struct {
	WordLists map[string][]string `toml:"word_lists" yaml:"word_lists"`
	FoldPoints []manifestFoldPoint `toml:"fold_points" yaml:"fold_points"`
}

type manifestFoldPoint struct {
	Tag   string `toml:"tag" yaml:"tag"`
	Start string `toml:"start" yaml:"start"`
	End   string `toml:"end" yaml:"end"`
}

// applyManifest looks for <manifestDir>/<name>.lang.toml, then
// <manifestDir>/<name>.lang.yaml, and merges either into lx if found. A
// missing manifest is not an error; a malformed one is.
func applyManifest(lx *scintillua.Lexer, manifestDir, name string) error {
	for _, path := range []string{
		manifestDir + "/" + name + ".lang.toml",
		manifestDir + "/" + name + ".lang.yaml",
	} {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		var m manifest
		if strings.HasSuffix(path, ".toml") {
			err = toml.Unmarshal(data, &m)
		} else {
			err = yaml.Unmarshal(data, &m)
		}
		if err != nil {
			return err
		}
		mergeManifest(lx, &m)
		return nil
	}
	return nil
}

func mergeManifest(lx *scintillua.Lexer, m *manifest) {
	for listName, words := range m.WordLists {
		idx := lx.WordListIndexByName(listName)
		if idx < 0 {
			continue
		}
		lx.SetWordList(idx, words, true)
	}
	for _, fp := range m.FoldPoints {
		if fp.Tag == "" || fp.Start == "" || fp.End == "" {
			continue
		}
		lx.AddFoldPoint(fp.Tag, fp.Start, fp.End)
	}
}
