package banner

import (
	"fmt"
	"io"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// PrintBanner writes the tool banner to w.
func PrintBanner(w io.Writer) {
	myFigure := figure.NewFigure("DOICHECK", "doom", true)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	for _, line := range myFigure.Slicify() {
		_, _ = cyan.Fprintln(w, line)
	}
	_, _ = cyan.Fprintln(w, "════════════════════════════════════════════════")
	_, _ = green.Fprintln(w, "    DOI resolution checker | https://github.com/selimozcann/doicheck")
	_, _ = cyan.Fprintln(w, "════════════════════════════════════════════════")
}

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PrintIfTerminal prints the banner to f only when f is a terminal, so
// piped or redirected output stays clean.
func PrintIfTerminal(f *os.File) bool {
	if !IsTerminal(f) {
		return false
	}
	PrintBanner(f)
	fmt.Fprintln(f)
	return true
}
