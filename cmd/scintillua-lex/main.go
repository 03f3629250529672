// Command scintillua-lex is a small demonstration CLI, mirroring
// participle's own cmd/participle tool: it loads a registered language by
// name, lexes a file (or stdin) from argv, and prints the resulting
// (tag, end_pos) stream, optionally alongside computed fold levels.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/openSUSE-Python/scintillua"
	"github.com/openSUSE-Python/scintillua/examples/demolang"
	"github.com/openSUSE-Python/scintillua/loader"
)

var (
	app = kingpin.New("scintillua-lex", "Lex a file with a registered language and print its tag stream.")

	lang = app.Flag("lang", "registered language name").Default("demolang").String()
	fold = app.Flag("fold", "also compute and print fold levels").Bool()
	debug = app.Flag("debug", "print a Dump() of the compiled lexer before lexing").Bool()
	file = app.Arg("file", "source file to lex (defaults to stdin)").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	registry := loader.NewRegistry()
	registry.Register("default", "demolang", demolang.New)
	registry.Register("default", "demolang_indent", demolang.FoldByIndentationVariant)

	lx, err := registry.Load(*lang, "", "default", "")
	kingpin.FatalIfError(err, "")

	var src []byte
	if *file != "" {
		src, err = os.ReadFile(*file)
	} else {
		src, err = io.ReadAll(os.Stdin)
	}
	kingpin.FatalIfError(err, "reading input")

	if *debug {
		fmt.Fprintln(os.Stderr, lx.Dump())
	}

	text := string(src)
	caps := scintillua.Lex(lx, text, 0)
	pos := 0
	for i := 0; i+1 < len(caps); i += 2 {
		tag, _ := caps[i].(string)
		end, _ := caps[i+1].(int)
		fmt.Printf("%-16s %q\n", tag, text[pos:end-1])
		pos = end - 1
	}

	if *fold {
		views := scintillua.HostViews{
			StyleAt:   func(int) string { return "" },
			FoldLevel: func(int) int { return 0 },
		}
		levels := scintillua.Fold(lx, scintillua.Properties{}, text, 1, 1, 0x400, views)
		for line := 1; line <= len(levels); line++ {
			fmt.Printf("line %d: level=%#x\n", line, levels[line])
		}
	}
}
