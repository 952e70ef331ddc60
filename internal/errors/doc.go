// Package errors provides structured, actionable error messages for domrender.
//
// Every error carries a short code (e.g. "E102") that maps to a registered
// message and explanation, and may add a source location inside the input
// document, a hint, and the underlying cause.
//
// # Error Categories
//
//   - input: reading vnode documents (missing files, unknown formats)
//   - decode: parsing documents into vnode descriptors
//   - config: loading and validating configuration
//   - server: preview server request errors
//   - cli: command-line usage errors
//
// # Usage
//
//	err := errors.New("E102").
//	    Wrap(cause).
//	    WithLocation("page.json", 4, 17).
//	    WithSuggestion("Check for a trailing comma in the children list")
//
//	errors.PrintError(err)
package errors
