// Package errors provides structured, coded errors for outlet.
//
// Every configuration failure the transition machinery can report has a
// code (e.g. "E202") that maps to a short message, a longer explanation
// and a documentation link. Callers decorate the error with what they know:
//
//	err := errors.New("E202").
//	    WithDetail(`outlet path "/app" is already registered`).
//	    WithSuggestion("Give each nested layout its own route segment")
//
//	fmt.Println(err.Format())
//
// # Error Categories
//
//   - config: the transition system was wired up incorrectly (missing
//     router, duplicate outlet, invalid transition timing)
//   - runtime: a request could not be served (invalid navigation path)
//   - cli: command-line and config-file problems
//
// Use [IsCode] to test for a specific code anywhere in a wrapped chain.
package errors
