// Package errors provides structured, actionable error messages for the
// sonner tooling.
//
// The toast store itself never fails. Errors here come from the layers
// around it: loading sonner.json, parsing replay scripts and running the
// feed server.
//
// # Error Codes
//
// Each error has a unique code (e.g., "E120") that maps to a category, a
// short message and a detailed explanation:
//
//	err := errors.New("E141").
//	    WithDetail("No sonner.json found in ./app").
//	    WithSuggestion("Run 'sonner serve' without --config to use defaults")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E141: Configuration file not found
//	//
//	//   No sonner.json found in ./app
//	//
//	//   Hint: Run 'sonner serve' without --config to use defaults
package errors
