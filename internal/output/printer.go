package output

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Printer writes robot reports to the user.
type Printer struct {
	w      io.Writer
	prefix string
	color  bool
}

// NewPrinter creates a Printer. With color enabled the report is styled
// using the terminal's detected color profile.
func NewPrinter(w io.Writer, prefix string, color bool) *Printer {
	return &Printer{w: w, prefix: prefix, color: color}
}

// Report prints one report line.
func (p *Printer) Report(report string) error {
	if p.color {
		profile := termenv.ColorProfile()
		report = termenv.String(report).Foreground(profile.Color("#22c55e")).Bold().String()
	}
	_, err := fmt.Fprintf(p.w, "%s%s\n", p.prefix, report)
	return err
}

// Echo prints a raw input record, as the batch driver does before running it.
func (p *Printer) Echo(record string) error {
	_, err := fmt.Fprintln(p.w, record)
	return err
}

// Printf writes free-form status text such as batch start and completion.
func (p *Printer) Printf(format string, args ...any) error {
	_, err := fmt.Fprintf(p.w, format, args...)
	return err
}
