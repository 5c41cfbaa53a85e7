package errors

import (
	"fmt"
	"strings"

	"slr-hq/atlas/pkg/annotation/ast"
)

// ErrorType categorizes a parser diagnostic.
type ErrorType string

const (
	ErrorTypeSyntax     ErrorType = "syntax"     // Unbalanced brackets
	ErrorTypeStructural ErrorType = "structural" // Block dropped because of the cell shape
	ErrorTypeSentinel   ErrorType = "sentinel"   // Un-specified block, key or value dropped
	ErrorTypeEscape     ErrorType = "escape"     // Unterminated <...> span
)

// Severity ranks diagnostics for lint output.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Error represents a diagnostic with location, context, and suggestion.
type Error struct {
	Type       ErrorType    // Category of the diagnostic
	Severity   Severity     // How serious the diagnostic is
	Message    string       // Diagnostic message
	Location   ast.Location // Column, row and byte offset
	Context    string       // Cell excerpt with a caret
	Suggestion string       // Suggested fix (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Type, e.Message))
	sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.String()))

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// ErrorList accumulates diagnostics for a cell or a column.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// Merge appends every error of other to the list.
func (el *ErrorList) Merge(other *ErrorList) {
	if other == nil {
		return
	}
	el.Errors = append(el.Errors, other.Errors...)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, severity Severity, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Severity: severity,
		Message:  message,
		Location: location,
	})
}

// AddErrorWithSuggestion creates and adds a new error with a suggestion.
func (el *ErrorList) AddErrorWithSuggestion(errType ErrorType, severity Severity, message string, location ast.Location, suggestion string) {
	el.Add(&Error{
		Type:       errType,
		Severity:   severity,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// HasErrors returns true if the list contains any diagnostic.
func (el *ErrorList) HasErrors() bool {
	return el != nil && len(el.Errors) > 0
}

// Count returns the number of diagnostics in the list.
func (el *ErrorList) Count() int {
	if el == nil {
		return 0
	}
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d diagnostic(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Diagnostic %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all diagnostics of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// BySeverity returns all diagnostics of the given severity.
func (el *ErrorList) BySeverity(severity Severity) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Severity == severity {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the list contains at least one diagnostic of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}

// WithRow returns the diagnostics relocated to the given column and row.
func (el *ErrorList) WithRow(column string, row int) *ErrorList {
	for _, err := range el.Errors {
		err.Location.Column = column
		err.Location.Row = row
	}
	return el
}
