package parser

import (
	"regexp"
	"strconv"
	"strings"

	"judgebox/internal/model"
)

var (
	pytestBothTotals = regexp.MustCompile(`(\d+) passed, (\d+) failed`)
	pytestPassedOnly = regexp.MustCompile(`(\d+) passed`)
	pytestFailedOnly = regexp.MustCompile(`(\d+) failed`)

	pytestFailuresHeader = regexp.MustCompile(`={10,}\s*FAILURES\s*={10,}`)
	pytestSeparator      = regexp.MustCompile(`={10,}`)

	// failedExpr (group 3) is matched greedily, bounded to its own line
	// (Go's "." never crosses a newline): it must capture the whole
	// "0 == 1" expression, not stop after its first character, since
	// the optional where-clause that follows is itself optional and
	// would otherwise let the match end early.
	pytestFailureBlock = regexp.MustCompile(
		`_{5,}\s*(.+?)\s*_{5,}[\s\S]*?>\s*assert\s+(.+?)\nE\s+assert\s+(.+)(?:\nE\s+\+\s+where\s+(.+?)\s+=)?`)
)

// PytestParser reduces pytest's console summary and failure blocks.
type PytestParser struct{}

// NewPytestParser returns a parser bound to pytest's output format.
func NewPytestParser() *PytestParser {
	return &PytestParser{}
}

func (p *PytestParser) Parse(stdout, stderr string) (*model.Result, error) {
	passed, failed := pytestTotals(stdout)

	result := &model.Result{
		TestsRun:       passed + failed,
		Passed:         passed,
		Failed:         failed,
		FailureDetails: pytestFailureDetails(stdout, stderr),
	}
	return result, nil
}

func pytestTotals(stdout string) (passed, failed int) {
	if m := pytestBothTotals.FindStringSubmatch(stdout); m != nil {
		return atoiOr0(m[1]), atoiOr0(m[2])
	}
	if m := pytestPassedOnly.FindStringSubmatch(stdout); m != nil {
		passed = atoiOr0(m[1])
	}
	if m := pytestFailedOnly.FindStringSubmatch(stdout); m != nil {
		failed = atoiOr0(m[1])
	}
	return passed, failed
}

func pytestFailureDetails(stdout, stderr string) []model.FailureDetail {
	details := make([]model.FailureDetail, 0)

	block := extractFailuresBlock(stdout)
	if block == "" {
		return details
	}

	matches := pytestFailureBlock.FindAllStringSubmatch(block, -1)
	for _, m := range matches {
		testCase := m[1]
		assertion := m[2]
		failedExpr := m[3]
		evaluated := ""
		if len(m) > 4 {
			evaluated = m[4]
		}

		expected := ""
		received := failedExpr
		if idx := strings.Index(failedExpr, "=="); idx >= 0 {
			received = strings.TrimSpace(failedExpr[:idx])
			expected = strings.TrimSpace(failedExpr[idx+2:])
		}
		if evaluated != "" {
			received = evaluated
		}

		details = append(details, model.FailureDetail{
			TestCase:     testCase,
			Expected:     expected,
			Received:     received,
			ErrorMessage: "Assertion failed: " + assertion,
			RawOut:       rawout(stdout, stderr),
		})
	}
	return details
}

func extractFailuresBlock(stdout string) string {
	loc := pytestFailuresHeader.FindStringIndex(stdout)
	if loc == nil {
		return ""
	}
	rest := stdout[loc[1]:]
	if sepLoc := pytestSeparator.FindStringIndex(rest); sepLoc != nil {
		return rest[:sepLoc[0]]
	}
	return rest
}

func atoiOr0(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
