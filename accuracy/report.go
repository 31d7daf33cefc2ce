// Package accuracy checks that drawings are rendered to SVG exactly
// as recorded in reference files.
package accuracy

import (
	"fmt"
	"strings"
)

// ErrorCode identifies why a test failed.
type ErrorCode string

const (
	// ErrCannotGenerateSVG is reported when the painter fails.
	ErrCannotGenerateSVG ErrorCode = "accuracy.error.cannot.generate.svg"
	// ErrCannotOpenReference is reported when the reference can't be opened.
	ErrCannotOpenReference ErrorCode = "accuracy.error.cannot.open.reference.svg"
	// ErrWhileComparing is reported on I/O errors during the comparison.
	ErrWhileComparing ErrorCode = "accuracy.error.while.comparing.files"
	// ErrGeneratedSVGInaccurate is reported when the generated SVG
	// differs from the reference.
	ErrGeneratedSVGInaccurate ErrorCode = "accuracy.error.generated.svg.inaccurate"
)

// Keys of the report entries
const (
	EntryPainter       = "painter"
	EntryErrorType     = "error type"
	EntryMessage       = "message"
	EntryStackTrace    = "stack trace"
	EntryReference     = "reference"
	EntryLineNumber    = "line number"
	EntryReferenceLine = "reference line"
	EntryNewLine       = "new line"
)

// Entry is a diagnostic attached to a failed report.
type Entry struct {
	Key, Value string
}

// Report is the outcome of a test.
type Report struct {
	Name      string
	Passed    bool
	ErrorCode ErrorCode // empty for passed reports
	Entries   []Entry
}

func passed(name string) *Report { return &Report{Name: name, Passed: true} }

func failed(name string, code ErrorCode, entries ...Entry) *Report {
	return &Report{Name: name, ErrorCode: code, Entries: entries}
}

// Entry returns the value of the first entry with the given key.
func (r *Report) Entry(key string) (string, bool) {
	for _, e := range r.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func (r *Report) String() string {
	if r.Passed {
		return r.Name + ": passed"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: failed (%s)", r.Name, r.ErrorCode)
	for _, e := range r.Entries {
		value := strings.ReplaceAll(strings.TrimRight(e.Value, "\n"), "\n", "\n\t\t")
		fmt.Fprintf(&b, "\n\t%s: %s", e.Key, value)
	}
	return b.String()
}

// Summary counts the outcomes of a suite.
type Summary struct {
	Total, Passed, Failed int
}

// Summarize counts `reports`.
func Summarize(reports []*Report) Summary {
	s := Summary{Total: len(reports)}
	for _, r := range reports {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d tests: %d passed, %d failed", s.Total, s.Passed, s.Failed)
}
