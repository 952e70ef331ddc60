package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryInput  Category = "input"
	CategoryDecode Category = "decode"
	CategoryConfig Category = "config"
	CategoryServer Category = "server"
	CategoryCLI    Category = "cli"
)

// Location is a position inside an input document.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// RenderError is a structured error with an optional document location and hint.
type RenderError struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Category is the error type (input, decode, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the position in the document where the error occurred.
	Location *Location

	// Context contains surrounding document lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Status is the HTTP status reported by the preview server.
	Status int

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RenderError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a document location to the error.
func (e *RenderError) WithLocation(file string, line, column int) *RenderError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RenderError) WithSuggestion(s string) *RenderError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the registered explanation.
func (e *RenderError) WithDetail(d string) *RenderError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *RenderError) Wrap(err error) *RenderError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	if targetLine <= 0 {
		return nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a RenderError from a registered error code.
func New(code string) *RenderError {
	template, ok := registry[code]
	if !ok {
		return &RenderError{
			Code:    code,
			Message: "Unknown error",
			Status:  500,
		}
	}
	return &RenderError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		Status:   template.Status,
	}
}

// Newf creates a new RenderError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RenderError {
	return &RenderError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Status:   500,
	}
}

// FromError wraps a standard error in a RenderError.
func FromError(err error, code string) *RenderError {
	if err == nil {
		return nil
	}
	var re *RenderError
	if stderrors.As(err, &re) {
		return re
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err, or any error it wraps, is a RenderError
// with the given code.
func HasCode(err error, code string) bool {
	var re *RenderError
	return stderrors.As(err, &re) && re.Code == code
}
