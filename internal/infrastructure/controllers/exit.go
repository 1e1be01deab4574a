package controllers

import "os"

// exitFunc is indirected so tests can observe fatal exits.
var exitFunc = os.Exit

// exitCode terminates the process with a non-zero status on store-level
// failures, so CI pipelines fail the step.
func exitCode(code int) {
	exitFunc(code)
}
