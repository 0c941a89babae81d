package ot

import (
	"errors"
	"fmt"
)

// ErrFontFormat is wrapped by every error Parse returns for malformed fonts.
var ErrFontFormat = errors.New("TrueType font format")

func errFontFormat(message string) error {
	return fmt.Errorf("%w: %s", ErrFontFormat, message)
}

// ErrorSeverity grades the issues found while decoding a font.
type ErrorSeverity int

const (
	SeverityCritical ErrorSeverity = iota // font cannot be used
	SeverityMajor                         // font is usable, some lookups may be wrong
	SeverityMinor
)

func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	}
	return "UNKNOWN"
}

// FontError is an issue of a tiny font's structure, located by table,
// section within the table, and byte offset within the font (0 if unknown).
type FontError struct {
	Table    Tag
	Section  string // e.g. "Offset", "Format4", "EndMarker"
	Issue    string
	Severity ErrorSeverity
	Offset   uint32
}

func (e FontError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, e.Table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// FontWarning is a deviation which consumers of the font tolerate, e.g. an
// unaligned table length or inconsistent binary search parameters.
type FontWarning struct {
	Table  Tag
	Issue  string
	Offset uint32
}

func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// ParseError is returned by Parse if a font cannot be used. It carries the
// issues collected up to the point where decoding stopped.
type ParseError struct {
	Err      error
	Errors   []FontError
	Warnings []FontWarning
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Critical returns the errors of severity SeverityCritical.
func (e *ParseError) Critical() []FontError {
	return filterCritical(e.Errors)
}

// errorCollector accumulates issues while a font is decoded.
type errorCollector struct {
	errors   []FontError
	warnings []FontWarning
}

func (ec *errorCollector) addError(table Tag, section string, issue string, severity ErrorSeverity, offset uint32) {
	ec.errors = append(ec.errors, FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: severity,
		Offset:   offset,
	})
}

func (ec *errorCollector) addWarning(table Tag, issue string, offset uint32) {
	ec.warnings = append(ec.warnings, FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	})
}

// abort packs err together with the issues collected so far.
func (ec *errorCollector) abort(err error) error {
	return &ParseError{Err: err, Errors: ec.errors, Warnings: ec.warnings}
}

func (ec *errorCollector) hasCriticalErrors() bool {
	return len(filterCritical(ec.errors)) > 0
}

func filterCritical(errs []FontError) []FontError {
	critical := make([]FontError, 0)
	for _, err := range errs {
		if err.Severity == SeverityCritical {
			critical = append(critical, err)
		}
	}
	return critical
}
