package output

import (
	"io"

	"github.com/fatih/color"

	"github.com/selimozcann/doicheck/internal/model"
)

// Printer writes the human-readable check log, one line per event.
type Printer struct {
	w     io.Writer
	ok    *color.Color
	fail  *color.Color
	warn  *color.Color
	plain *color.Color
}

// NewPrinter returns a Printer writing to w. Colours are only emitted when
// useColor is set.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w:     w,
		ok:    color.New(color.FgGreen),
		fail:  color.New(color.FgRed),
		warn:  color.New(color.FgYellow),
		plain: color.New(color.Reset),
	}
	for _, c := range []*color.Color{p.ok, p.fail, p.warn, p.plain} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) PrintChecking(r model.Record) {
	p.plain.Fprintf(p.w, "checking resolving %s -> %s\n", r.DOI, r.Standard)
}

func (p *Printer) PrintResolved(standard string) {
	p.ok.Fprintf(p.w, "  resolved: %s\n", standard)
}

func (p *Printer) PrintMismatch(resolved, standard string) {
	p.fail.Fprintf(p.w, "  error: %s, not %s\n", resolved, standard)
}

// PrintConnectionError follows each line with a blank one, as the
// catalog tooling this output is compared against always did.
func (p *Printer) PrintConnectionError(err error) {
	p.fail.Fprint(p.w, "    connection error\n\n")
	p.fail.Fprintf(p.w, "    %v\n\n", err)
}

func (p *Printer) PrintTimeout() {
	p.warn.Fprintln(p.w, "    timed out")
}

// PrintRedirectError reports a chain that never reached a final response.
func (p *Printer) PrintRedirectError(err error) {
	p.fail.Fprintf(p.w, "    redirect error: %v\n", err)
}

// PrintOutcome writes the result line(s) for a checked record.
func (p *Printer) PrintOutcome(o model.Outcome) {
	switch o.Kind {
	case model.FailureNone:
		p.PrintResolved(o.Record.Standard)
	case model.FailureMismatch:
		p.PrintMismatch(o.Resolved, o.Record.Standard)
	case model.FailureTimeout:
		p.PrintTimeout()
	case model.FailureTooManyRedirects:
		p.PrintRedirectError(o.Err)
	default:
		p.PrintConnectionError(o.Err)
	}
}

// PrintSummary writes the closing tally of a run.
func (p *Printer) PrintSummary(s model.Summary) {
	c := p.ok
	if s.HasError() {
		c = p.fail
	}
	c.Fprintf(p.w, "checked %d DOI(s): %d resolved, %d failed\n", s.Total, s.Resolved, s.Failed)
}
