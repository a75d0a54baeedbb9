// Package repl is crochet's interactive driver, grounded on the
// teacher's internal/repl: github.com/peterh/liner for line editing and
// history, internal/cli (this package's analogue of the teacher's
// package-level color.SprintFunc values) for prompt and status coloring.
// Unlike the teacher's REPL, which drives a tree-walking evaluator, this
// one drives the compiler pipeline itself: each line is parsed, inferred
// and lowered on its own, with the resulting Env threaded forward so
// later lines see earlier bindings, exactly as spec.md §5's "child-env
// write-back" discipline intends for a sequence of top-level statements.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/crochet-lang/crochet/internal/cli"
	"github.com/crochet-lang/crochet/internal/infer"
	"github.com/crochet-lang/crochet/internal/jsprinter"
	"github.com/crochet-lang/crochet/internal/lexer"
	"github.com/crochet-lang/crochet/internal/lower"
	"github.com/crochet-lang/crochet/internal/parser"
	ty "github.com/crochet-lang/crochet/internal/types"
)

// REPL holds the environment threaded across lines.
type REPL struct {
	env     *ty.Env
	history []string
}

// New creates a REPL seeded with env (typically the result of
// internal/declloader.Load, or types.NewEnv() for no ambient bindings).
func New(env *ty.Env) *REPL {
	return &REPL{env: env}
}

func historyPath() string {
	return filepath.Join(os.TempDir(), ".crochet_history")
}

// Start runs the read-eval-print loop, reading lines from the terminal
// and writing results to out, until EOF or :quit.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	if f, err := os.Open(historyPath()); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	line.SetCompleter(func(input string) (c []string) {
		for _, cmd := range []string{":help", ":quit", ":env"} {
			if strings.HasPrefix(cmd, input) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Fprintln(out, cli.Bold("crochet"))
	fmt.Fprintln(out, cli.Dim("Type :help for help, :quit to exit"))

loop:
	for {
		input, err := line.Prompt(cli.Cyan("crochet> "))
		if err == io.EOF {
			fmt.Fprintln(out, cli.Green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", cli.Red("error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.history = append(r.history, input)

		switch {
		case input == ":quit" || input == ":q":
			fmt.Fprintln(out, cli.Green("Goodbye!"))
			break loop
		case input == ":help":
			fmt.Fprintln(out, "Enter a crochet statement to parse, infer, and lower it to JavaScript.")
			fmt.Fprintln(out, ":env shows the current bindings, :quit exits.")
			continue
		case input == ":env":
			r.printEnv(out)
			continue
		}

		r.eval(input, out)
	}

	if f, err := os.Create(historyPath()); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (r *REPL) printEnv(out io.Writer) {
	if len(r.env.Values) == 0 {
		fmt.Fprintln(out, cli.Dim("(empty)"))
		return
	}
	for name := range r.env.Values {
		fmt.Fprintf(out, "%s\n", name)
	}
}

// eval runs one line through the full parse -> infer -> lower -> print
// pipeline, threading r.env forward on success.
func (r *REPL) eval(input string, out io.Writer) {
	src := string(lexer.Normalize([]byte(input)))
	prog, err := parser.ParseProgram(src, "<repl>")
	if err != nil {
		cli.PrintError(out, err)
		return
	}

	nextEnv, err := infer.InferProgram(prog, r.env)
	if err != nil {
		cli.PrintError(out, err)
		return
	}

	ctx := lower.NewContext()
	stmts := lower.BuildProgram(prog, ctx)
	if ctx.Err() != nil {
		cli.PrintError(out, ctx.Err())
		return
	}

	r.env = nextEnv
	fmt.Fprint(out, jsprinter.Print(stmts))
}
