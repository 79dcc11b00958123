// Package parser reduces the free-form (or, for Java, pre-emptively
// structured) text a test framework writes to stdout into the
// canonical Result shape. Every parser here must be total: unrecognized
// output yields zero counts, never a panic.
package parser

import "judgebox/internal/model"

// Parser is bound to a LanguageProfile and consumes the captured
// stdout/stderr of a test-harness run.
type Parser interface {
	// Parse returns a Result populated with TestsRun, Passed, Failed,
	// and FailureDetails. State is left at whatever the caller later
	// derives from Failed (passed iff Failed == 0). An error is
	// returned only when the output cannot be interpreted at all (the
	// JUnit parser's malformed-JSON case); the pytest and CxxTest
	// parsers never return one.
	Parse(stdout, stderr string) (*model.Result, error)
}

// rawout concatenates stdout and stderr the way every parser's
// FailureDetail.RawOut does.
func rawout(stdout, stderr string) string {
	return stdout + "\n" + stderr
}
