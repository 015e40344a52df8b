package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// stepHeader formats a pipeline step's name as printed progress output,
// styling it in bold when w is connected to an interactive terminal and
// falling back to plain text otherwise (for instance when output is
// piped to a file or another process).
func stepHeader(w io.Writer, name string) string {
	if !isTerminal(w) {
		return "== " + name + " ==\n"
	}
	const bold = "\x1b[1m"
	const reset = "\x1b[0m"
	return bold + "== " + name + " ==" + reset + "\n"
}

// isTerminal reports whether w is a terminal device, so output styling
// can be skipped for redirected or piped output.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
