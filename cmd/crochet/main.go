// Command crochet is the CLI driver: it reads a source file, parses it,
// infers its types, lowers it to JavaScript, and prints the result (spec
// §6). Exit code 0 on success, 1 on a type error, 2 on a syntax error.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/crochet-lang/crochet/internal/cli"
	"github.com/crochet-lang/crochet/internal/config"
	"github.com/crochet-lang/crochet/internal/declloader"
	"github.com/crochet-lang/crochet/internal/infer"
	"github.com/crochet-lang/crochet/internal/jsprinter"
	"github.com/crochet-lang/crochet/internal/lexer"
	"github.com/crochet-lang/crochet/internal/lower"
	"github.com/crochet-lang/crochet/internal/parser"
	"github.com/crochet-lang/crochet/internal/repl"
	ty "github.com/crochet-lang/crochet/internal/types"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("crochet", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	declPath := fs.String("decl", "", "path to an ambient declaration manifest (YAML)")
	configPath := fs.String("config", ".crochet.yaml", "path to a crochet config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "usage: crochet [-decl manifest.yaml] [-config .crochet.yaml] (<file.croc>|repl)")
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		cli.PrintError(os.Stderr, err)
		return 2
	}
	if *declPath == "" {
		*declPath = cfg.DeclPath
	}

	if rest[0] == "repl" {
		env := ty.NewEnv()
		if *declPath != "" {
			env, err = declloader.Load(*declPath)
			if err != nil {
				cli.PrintError(os.Stderr, err)
				return 2
			}
		}
		repl.New(env).Start(os.Stdout)
		return 0
	}

	path := rest[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	src := string(lexer.Normalize(raw))

	prog, err := parser.ParseProgram(src, path)
	if err != nil {
		cli.PrintError(os.Stderr, err)
		return 2
	}

	env := ty.NewEnv()
	if *declPath != "" {
		env, err = declloader.Load(*declPath)
		if err != nil {
			cli.PrintError(os.Stderr, err)
			return 2
		}
	}

	if _, err := infer.InferProgram(prog, env); err != nil {
		cli.PrintError(os.Stderr, err)
		return 1
	}

	ctx := lower.NewContext()
	stmts := lower.BuildProgram(prog, ctx)
	if ctx.Err() != nil {
		cli.PrintError(os.Stderr, ctx.Err())
		return 1
	}

	fmt.Print(jsprinter.Print(stmts))
	return 0
}
