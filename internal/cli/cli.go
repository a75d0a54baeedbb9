// Package cli holds the color/output helpers shared by cmd/crochet and
// internal/repl. Grounded on the teacher's own house style
// (cmd/ailang/main.go and internal/repl/repl.go both build the same set
// of package-level color.SprintFunc values): there is no structured
// logging library in the teacher's stack, so diagnostics and status
// lines go straight to stdout/stderr through fatih/color.
package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	Green  = color.New(color.FgGreen).SprintFunc()
	Red    = color.New(color.FgRed, color.Bold).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
	Bold   = color.New(color.Bold).SprintFunc()
	Dim    = color.New(color.Faint).SprintFunc()
)

// PrintError writes err in red to w, the shape every diagnostic printed
// by cmd/crochet and internal/repl goes through.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, Red(err.Error()))
}

// PrintSuccess writes a green status line to w.
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, Green(fmt.Sprintf(format, args...)))
}
