package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"

	sass "github.com/sassgo/sass"
	"github.com/sassgo/sass/emit"
	"github.com/sassgo/sass/env"
	"github.com/sassgo/sass/parser"
	"github.com/sassgo/sass/source"
)

func main() {
	style := flag.String("style", "expanded", "output style: expanded, compressed, nested")
	precision := flag.Int("precision", 10, "numeric precision for emitted values")
	includePath := flag.String("I", "", "additional include path for @import resolution")
	dumpAST := flag.Bool("dump-ast", false, "print the parsed AST instead of compiling")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: sassc [flags] <file.scss>\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	file := flag.Arg(0)
	content, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *dumpAST {
		if err := dump(file, string(content)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := sass.Options{
		Style:     emit.ParseStyle(*style),
		Precision: *precision,
		FS:        os.DirFS(filepath.Dir(file)),
	}
	if *includePath != "" {
		opts.IncludePaths = []string{*includePath}
	}

	result, err := sass.Compile(sass.Import{
		Path:    filepath.Base(file),
		Content: string(content),
	}, opts)
	if err != nil {
		if ce, ok := err.(*sass.Error); ok {
			fmt.Fprint(os.Stderr, ce.Render())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	for _, entry := range result.Log {
		fmt.Fprintf(os.Stderr, "%s: %s\n", entry.Kind, entry.Message)
	}
	fmt.Print(result.CSS)
}

// dump parses without evaluating and spews the AST, for grammar debugging.
func dump(path, content string) error {
	reg := source.NewRegistry()
	dialect := source.DialectFromPath(path)
	if dialect == source.DialectSass {
		content = parser.ConvertIndented(content)
	}
	src := reg.Add(path, path, content, dialect)
	p, err := parser.New(src, env.NewTable())
	if err != nil {
		return err
	}
	sheet, err := p.Parse()
	if err != nil {
		return err
	}
	spew.Fdump(os.Stdout, sheet)
	return nil
}
