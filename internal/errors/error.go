package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/vango-dev/fileroutes/pkg/routetree"
)

// Category represents the type of error.
type Category string

const (
	CategoryRoutes  Category = "routes"
	CategoryConfig  Category = "config"
	CategoryListing Category = "listing"
	CategoryServe   Category = "serve"
)

// Error is a structured error with the involved files, a suggestion and
// documentation.
type Error struct {
	// Code is a unique error identifier (e.g., "R001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Files are the source files involved.
	Files []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithFiles sets the files involved.
func (e *Error) WithFiles(files ...string) *Error {
	e.Files = files
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
		DocURL:     template.DocURL,
	}
}

// Newf creates an Error with a formatted message and no code.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error with the given code.
// Errors that already are *Error are returned unchanged.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return New(code).Wrap(err)
}

// kindCodes maps compiler error kinds to codes.
var kindCodes = map[routetree.ErrorKind]string{
	routetree.ErrorDuplicateRoute:       "R001",
	routetree.ErrorSegmentAfterSplat:    "R002",
	routetree.ErrorUnclassifiable:       "R003",
	routetree.ErrorMisplacedSegment:     "R004",
	routetree.ErrorDynamicSibling:       "R005",
	routetree.ErrorUnsupportedExtension: "R006",
}

// FromConfiguration converts a compiler error into a coded Error.
func FromConfiguration(err *routetree.ConfigurationError) *Error {
	code, ok := kindCodes[err.Kind]
	if !ok {
		return Newf(CategoryRoutes, "%s", err.Message).WithFiles(err.Files...).Wrap(err)
	}
	return New(code).WithDetail(err.Message).WithFiles(err.Files...).Wrap(err)
}

// Expand flattens a compile error into coded Errors, one per configuration
// error. Other errors become a single Error with code fallback.
func Expand(err error, fallback string) []*Error {
	if err == nil {
		return nil
	}
	var multi *routetree.ConfigurationErrors
	if stderrors.As(err, &multi) {
		out := make([]*Error, len(multi.Errors))
		for i, e := range multi.Errors {
			out[i] = FromConfiguration(e)
		}
		return out
	}
	var single *routetree.ConfigurationError
	if stderrors.As(err, &single) {
		return []*Error{FromConfiguration(single)}
	}
	return []*Error{FromError(err, fallback)}
}
