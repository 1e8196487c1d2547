// Package errors provides coded, actionable error messages for the
// fileroutes CLI.
//
// Each error has a code (e.g. "R001") registered with a category, a short
// message, a detail paragraph and a documentation URL. Route configuration
// errors from the compiler are converted with FromConfiguration so that the
// CLI can print the offending files together with a hint.
//
// # Usage
//
//	err := errors.New("R001").
//	    WithFiles("messages/$id.go", "messages.$id.go").
//	    WithSuggestion("Delete one of the files")
//
//	fmt.Print(err.Format())
//	// Output:
//	// ERROR R001: Duplicate route
//	//
//	//   messages/$id.go
//	//   messages.$id.go
//	//
//	//   Two route files resolve to the same route.
//	//
//	//   Hint: Delete one of the files
//	//
//	//   Learn more: https://vango.dev/docs/fileroutes/errors/R001
package errors
