package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Writer is a Sink that renders diagnostics as they arrive, one per
// line, with severity coloring when the destination is a terminal.
type Writer struct {
	out      io.Writer
	fatalFn  func(format string, a ...any) string
	warnFn   func(format string, a ...any) string
	plainLoc bool
}

// NewWriter creates a writer sink. Color is enabled only when w is a
// terminal file descriptor.
func NewWriter(w io.Writer) *Writer {
	wr := &Writer{
		out:     w,
		fatalFn: fmt.Sprintf,
		warnFn:  fmt.Sprintf,
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		wr.fatalFn = color.New(color.FgRed, color.Bold).SprintfFunc()
		wr.warnFn = color.New(color.FgYellow).SprintfFunc()
	}
	return wr
}

// Report renders a single diagnostic.
func (w *Writer) Report(d Diagnostic) {
	loc := d.Span.Start.String()
	if !d.Span.Start.IsValid() {
		loc = "<unknown>"
	}
	sev := w.warnFn("%s", d.Severity)
	if d.Severity == SeverityFatal {
		sev = w.fatalFn("%s", d.Severity)
	}
	fmt.Fprintf(w.out, "%s: %s[%s]: %s", loc, sev, d.Code, d.Message)
	if d.Code == CodeInternal && d.Pass != "" {
		fmt.Fprintf(w.out, " (pass %s, node %s)", d.Pass, d.NodeKind)
	}
	fmt.Fprintln(w.out)
}

// Tee fans a diagnostic out to several sinks, letting callers both
// accumulate and render in one pass run.
type Tee []Sink

func (t Tee) Report(d Diagnostic) {
	for _, s := range t {
		s.Report(d)
	}
}
