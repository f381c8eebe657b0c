package parser

import (
	"fmt"
	"strings"
)

// Error is one structural problem found in a scenario document.
type Error struct {
	// Source is the document path or label the error was found in.
	Source string

	// Field locates the offending element, e.g. "items[2].duration".
	Field string

	// Message describes the problem.
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Source, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// ErrorList accumulates structural errors across one parse so a single
// run reports every problem in the document.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates an empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends a structural error.
func (l *ErrorList) Add(source, field, format string, args ...any) {
	l.Errors = append(l.Errors, &Error{
		Source:  source,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any error was accumulated.
func (l *ErrorList) HasErrors() bool {
	return len(l.Errors) > 0
}

func (l *ErrorList) Error() string {
	if len(l.Errors) == 0 {
		return "no errors"
	}
	msgs := make([]string, len(l.Errors))
	for i, e := range l.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d structural error(s):\n%s", len(l.Errors), strings.Join(msgs, "\n"))
}
