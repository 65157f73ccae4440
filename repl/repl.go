// Package repl implements the interactive read-eval-print loop for
// soxscript. It reads from stdin with readline for history and line
// editing, and persists one Interpreter (and its global scope) across the
// whole session so declarations in one line are visible to the next.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/gitofleonardo/soxscript/eval"
	"github.com/gitofleonardo/soxscript/lexer"
	"github.com/gitofleonardo/soxscript/parser"
	"github.com/gitofleonardo/soxscript/resolver"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the session chrome shown at startup; Start runs the loop.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	Prompt  string
}

func New(banner, version, author, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, Prompt: prompt}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintf(w, "Version: %s | Author: %s\n", r.Version, r.Author)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintln(w, "Type soxscript statements and press enter. Ctrl+D to quit.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the loop until EOF (Ctrl+D) or an unrecoverable readline error.
// A single Interpreter backs the whole session, so `var x = 1;` on one line
// is visible to `println(x);` on the next: statements are independent only
// with respect to errors, not to the shared global scope.
func (r *Repl) Start(w io.Writer) {
	r.printBanner(w)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		redColor.Fprintf(w, "readline init failed: %v\n", err)
		return
	}
	defer rl.Close()

	interp := eval.New(nil, func(s string) { io.WriteString(w, s) })

	var pending strings.Builder
	continuing := false

	for {
		prompt := r.Prompt
		if continuing {
			prompt = strings.Repeat(" ", len(r.Prompt)-3) + "... "
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err != nil {
			return
		}
		if strings.TrimSpace(line) == "" && !continuing {
			continue
		}

		rl.SaveHistory(line)

		pending.WriteString(line)
		pending.WriteByte('\n')

		src := pending.String()
		lx := lexer.New(src)
		toks := lx.Tokenize()
		ps := parser.New(toks)
		stmts := ps.Parse()

		if ps.HasErrors() && incompleteInput(ps) {
			continuing = true
			continue
		}

		pending.Reset()
		continuing = false

		for _, e := range lx.Errors() {
			redColor.Fprintf(w, "%s\n", e.Error())
		}
		for _, e := range ps.Errors() {
			redColor.Fprintf(w, "%s\n", e.Error())
		}
		if len(stmts) == 0 {
			continue
		}

		res := resolver.New()
		table := res.Resolve(stmts)
		if rerrs := res.Errors(); len(rerrs) > 0 {
			for _, e := range rerrs {
				redColor.Fprintf(w, "%s\n", e.Error())
			}
			continue
		}
		interp.SetTable(table)

		for _, s := range stmts {
			if execErr := interp.RunOne(s); execErr != nil {
				redColor.Fprintf(w, "%s\n", execErr.Error())
			}
		}
	}
}

// incompleteInput reports whether ps's only failure is running out of
// tokens mid-statement — the signal this REPL uses to keep buffering lines
// instead of reporting a syntax error, so a `fun`/`if` body split across
// several lines parses correctly.
func incompleteInput(ps *parser.Parser) bool {
	errs := ps.Errors()
	if len(errs) == 0 {
		return false
	}
	last := errs[len(errs)-1]
	return last.Where == "end"
}
