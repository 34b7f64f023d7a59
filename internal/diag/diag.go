// Diagnostic model for the packetc midend.
// Passes report through a Sink; the pipeline never decides process exit
// codes or output formatting.
package diag

import (
	"fmt"
	"sort"

	"github.com/packetc-lang/packetc/internal/position"
)

// Severity is the severity level of a diagnostic.
type Severity int

const (
	SeverityFatal Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Code classifies a diagnostic.
type Code int

const (
	CodeUnresolvedReference Code = iota
	CodeAmbiguousReference
	CodeTypeMismatch
	CodeDefiniteAssignment
	CodeTableConsistency
	CodeUnsupportedVersion
	// CodeInternal signals a bug in the pipeline itself rather than an
	// error in the user program.
	CodeInternal
)

func (c Code) String() string {
	switch c {
	case CodeUnresolvedReference:
		return "unresolved-reference"
	case CodeAmbiguousReference:
		return "ambiguous-reference"
	case CodeTypeMismatch:
		return "type-mismatch"
	case CodeDefiniteAssignment:
		return "definite-assignment"
	case CodeTableConsistency:
		return "table-consistency"
	case CodeUnsupportedVersion:
		return "unsupported-version"
	case CodeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Diagnostic is a single message produced by a pass.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Span     position.Span
	// Pass and NodeKind give structural context for internal errors so a
	// pipeline bug can be reproduced from the report alone.
	Pass     string
	NodeKind string
}

func (d Diagnostic) String() string {
	loc := d.Span.Start.String()
	if !d.Span.Start.IsValid() {
		loc = "<unknown>"
	}
	msg := fmt.Sprintf("%s: %s[%s]: %s", loc, d.Severity, d.Code, d.Message)
	if d.Code == CodeInternal && d.Pass != "" {
		msg += fmt.Sprintf(" (pass %s, node %s)", d.Pass, d.NodeKind)
	}
	return msg
}

// Sink receives diagnostics from passes. Implementations decide storage
// and presentation; the pipeline only calls Report.
type Sink interface {
	Report(d Diagnostic)
}

// Bag is a Sink that accumulates diagnostics in report order.
type Bag struct {
	diags []Diagnostic
}

// NewBag creates an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{diags: make([]Diagnostic, 0, 4)}
}

// Report appends a diagnostic.
func (b *Bag) Report(d Diagnostic) {
	b.diags = append(b.diags, d)
}

// All returns every accumulated diagnostic in report order.
func (b *Bag) All() []Diagnostic {
	return b.diags
}

// Warnings returns only warning-level diagnostics.
func (b *Bag) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range b.diags {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// HasFatal reports whether any fatal diagnostic was recorded.
func (b *Bag) HasFatal() bool {
	for _, d := range b.diags {
		if d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// Primary returns the first fatal diagnostic, which is the one surfaced
// to callers; ok is false when compilation saw no fatal error.
func (b *Bag) Primary() (Diagnostic, bool) {
	for _, d := range b.diags {
		if d.Severity == SeverityFatal {
			return d, true
		}
	}
	return Diagnostic{}, false
}

// Err returns the primary fatal diagnostic as an error, or nil.
func (b *Bag) Err() error {
	if d, ok := b.Primary(); ok {
		return &Error{Diagnostic: d}
	}
	return nil
}

// Sort orders diagnostics by source position, fatal first within a
// position. Report order is preserved for unlocated diagnostics.
func (b *Bag) Sort() {
	sort.SliceStable(b.diags, func(i, j int) bool {
		a, c := b.diags[i], b.diags[j]
		if a.Span.Start != c.Span.Start {
			return a.Span.Start.Before(c.Span.Start)
		}
		return a.Severity < c.Severity
	})
}

// Error wraps a fatal diagnostic so callers can errors.As on pipeline
// failures and still reach the structured report.
type Error struct {
	Diagnostic Diagnostic
}

func (e *Error) Error() string {
	return e.Diagnostic.String()
}

// Fatalf reports a fatal diagnostic to sink and returns it as an error.
func Fatalf(sink Sink, code Code, span position.Span, format string, args ...any) error {
	d := Diagnostic{
		Severity: SeverityFatal,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	}
	sink.Report(d)
	return &Error{Diagnostic: d}
}

// Warnf reports a warning diagnostic to sink.
func Warnf(sink Sink, code Code, span position.Span, format string, args ...any) {
	sink.Report(Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}

// Internalf reports an internal (compiler bug) diagnostic with the pass
// name and offending node kind, and returns it as an error.
func Internalf(sink Sink, pass, nodeKind string, span position.Span, format string, args ...any) error {
	d := Diagnostic{
		Severity: SeverityFatal,
		Code:     CodeInternal,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
		Pass:     pass,
		NodeKind: nodeKind,
	}
	sink.Report(d)
	return &Error{Diagnostic: d}
}
