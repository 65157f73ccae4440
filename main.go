// Command soxsh is the soxscript interpreter: run with no arguments for an
// interactive REPL, with a file path to execute a script, or with -e to run
// a one-line program directly.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/gitofleonardo/soxscript/eval"
	"github.com/gitofleonardo/soxscript/lexer"
	"github.com/gitofleonardo/soxscript/parser"
	"github.com/gitofleonardo/soxscript/repl"
	"github.com/gitofleonardo/soxscript/resolver"
)

const (
	version = "0.1.0"
	author  = "gitofleonardo"
	prompt  = "soxsh> "
	line    = "----------------------------------------------------------------"
	banner  = `
  ___  _____  __  ___  _   _
 / __||  _  \ \ \/ / |/ | | | __
 \__ \| |_| |  >  <| |   |_|/ _ \
 |___/|_____/ /_/\_\_|   (_)___/
`
)

var redColor = color.New(color.FgRed)

func main() {
	args := os.Args[1:]

	for _, a := range args {
		switch a {
		case "--version", "-v":
			fmt.Printf("soxsh %s (%s)\n", version, author)
			return
		}
	}

	if len(args) >= 2 && args[0] == "-e" {
		runSource(args[1])
		return
	}

	if len(args) >= 1 {
		runFile(args[0])
		return
	}

	repl.New(banner, version, author, line, prompt).Start(os.Stdout)
}

func runFile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "could not read '%s': %v\n", path, err)
		os.Exit(1)
	}
	runSource(string(src))
}

// runSource lexes, parses, resolves, and evaluates one complete program,
// printing every diagnostic to stdout in the "[<line>] <where>: <message>"
// form. Exit code stays 0 even after a compile or runtime failure; nonzero
// is reserved for unrecoverable I/O failure only.
func runSource(src string) {
	lx := lexer.New(src)
	toks := lx.Tokenize()
	for _, e := range lx.Errors() {
		redColor.Fprintln(os.Stdout, e.Error())
	}

	ps := parser.New(toks)
	stmts := ps.Parse()
	for _, e := range ps.Errors() {
		redColor.Fprintln(os.Stdout, e.Error())
	}
	if ps.HasErrors() {
		return
	}

	res := resolver.New()
	table := res.Resolve(stmts)
	for _, e := range res.Errors() {
		redColor.Fprintln(os.Stdout, e.Error())
	}
	if len(res.Errors()) > 0 {
		return
	}

	interp := eval.New(table, func(s string) { fmt.Print(s) })
	if err := interp.Run(stmts); err != nil {
		redColor.Fprintln(os.Stdout, err.Error())
	}
}
