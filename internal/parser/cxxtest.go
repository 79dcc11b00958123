package parser

import (
	"regexp"
	"strings"

	"judgebox/internal/model"
)

var (
	cxxtestRunning  = regexp.MustCompile(`Running cxxtest tests \((\d+) tests?\)`)
	cxxtestOverride = regexp.MustCompile(`Failed (\d+) and Skipped \d+ of (\d+) tests`)
	cxxtestError    = regexp.MustCompile(`Error: Expected \((.+?)\), found \((.+?)\)`)
)

// CxxTestParser reduces the CxxTest error-printer's console output.
// The test generator is a black box, so this parser carries the most
// risk of the three and must never fail to produce a total count.
type CxxTestParser struct{}

// NewCxxTestParser returns a parser bound to CxxTest's error-printer format.
func NewCxxTestParser() *CxxTestParser {
	return &CxxTestParser{}
}

func (p *CxxTestParser) Parse(stdout, stderr string) (*model.Result, error) {
	testsRun, failed := cxxtestTotals(stdout)
	passed := testsRun - failed
	if passed < 0 {
		passed = 0
	}

	result := &model.Result{
		TestsRun:       testsRun,
		Passed:         passed,
		Failed:         failed,
		FailureDetails: cxxtestFailureDetails(stdout, stderr),
	}
	return result, nil
}

func cxxtestTotals(stdout string) (testsRun, failed int) {
	if m := cxxtestRunning.FindStringSubmatch(stdout); m != nil {
		testsRun = atoiOr0(m[1])
	}
	if m := cxxtestOverride.FindStringSubmatch(stdout); m != nil {
		failed = atoiOr0(m[1])
		testsRun = atoiOr0(m[2])
	}
	return testsRun, failed
}

func cxxtestFailureDetails(stdout, stderr string) []model.FailureDetail {
	details := make([]model.FailureDetail, 0)

	matches := cxxtestError.FindAllStringSubmatch(stdout, -1)
	for i, m := range matches {
		lhs := m[1]
		rhs := m[2]

		expected := lhs
		if idx := strings.Index(lhs, "=="); idx >= 0 {
			expected = strings.TrimSpace(lhs[idx+2:])
		}

		received := rhs
		if idx := strings.Index(rhs, "!="); idx >= 0 {
			received = strings.TrimSpace(rhs[:idx])
		}

		details = append(details, model.FailureDetail{
			TestCase:     i + 1,
			Expected:     expected,
			Received:     received,
			ErrorMessage: "AssertionError: Output did not match expected result",
			RawOut:       rawout(stdout, stderr),
		})
	}
	return details
}
