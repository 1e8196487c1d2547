package routetree

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes configuration errors.
type ErrorKind string

const (
	// ErrorDuplicateRoute indicates multiple files resolve to the same route.
	// Example: messages/$id.go and messages.$id.go
	ErrorDuplicateRoute ErrorKind = "DUPLICATE_ROUTE"

	// ErrorSegmentAfterSplat indicates a segment follows a catch-all.
	// Example: $/extra.go
	ErrorSegmentAfterSplat ErrorKind = "SEGMENT_AFTER_SPLAT"

	// ErrorUnclassifiable indicates a segment matches no naming convention.
	// Example: _private.go, a..b.go
	ErrorUnclassifiable ErrorKind = "UNCLASSIFIABLE_SEGMENT"

	// ErrorMisplacedSegment indicates an index or layout segment that is not
	// the last segment of its path.
	// Example: index/about.go
	ErrorMisplacedSegment ErrorKind = "MISPLACED_SEGMENT"

	// ErrorDynamicSibling indicates two differently named parameters at the
	// same level.
	// Example: users/$id.go and users/$name.go
	ErrorDynamicSibling ErrorKind = "DYNAMIC_SIBLING_CONFLICT"

	// ErrorUnsupportedExtension indicates a file without a recognized extension.
	ErrorUnsupportedExtension ErrorKind = "UNSUPPORTED_EXTENSION"
)

// ConfigurationError reports a route file layout that cannot be compiled.
type ConfigurationError struct {
	// Kind is the error category.
	Kind ErrorKind

	// Message is the human-readable error message.
	Message string

	// Files are the source files involved.
	Files []string

	// Pattern is the route pattern involved, if one could be derived.
	Pattern string

	// Segment is the offending segment, if any.
	Segment string
}

func (e *ConfigurationError) Error() string {
	if len(e.Files) > 0 {
		return fmt.Sprintf("%s: %s (files: %s)", e.Kind, e.Message, strings.Join(e.Files, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ConfigurationErrors wraps every error found during one compile.
type ConfigurationErrors struct {
	Errors []*ConfigurationError
}

func (e *ConfigurationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no configuration errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d route configuration errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *ConfigurationErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// FormatError formats a configuration error for display:
//
//	ERROR: Duplicate route at /messages/:id
//	  messages/$id.go → /messages/:id
//	  messages.$id.go → /messages/:id
func FormatError(err *ConfigurationError) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "ERROR: %s\n", err.Message)
	for _, file := range err.Files {
		if err.Pattern != "" {
			fmt.Fprintf(&sb, "  %s → %s\n", file, err.Pattern)
		} else {
			fmt.Fprintf(&sb, "  %s\n", file)
		}
	}
	return sb.String()
}
