package parser_test

import (
	"testing"

	"judgebox/internal/parser"

	"github.com/stretchr/testify/require"
)

func TestPytestParserTotalsBothPresent(t *testing.T) {
	p := parser.NewPytestParser()
	result, err := p.Parse("===== 1 passed, 1 failed in 0.01s =====", "")
	require.NoError(t, err)
	require.Equal(t, 1, result.Passed)
	require.Equal(t, 1, result.Failed)
	require.Equal(t, 2, result.TestsRun)
}

func TestPytestParserFailureBlock(t *testing.T) {
	stdout := `
========================= FAILURES =========================
_________________________ test_add _________________________

    def test_add():
>       assert add(-1, 1) == 1
E       assert 0 == 1
E        +  where 0 = add(-1, 1)

test_program.py:5: AssertionError
========================= short test summary info =========================
1 passed, 1 failed
`
	p := parser.NewPytestParser()
	result, err := p.Parse(stdout, "")
	require.NoError(t, err)
	require.Len(t, result.FailureDetails, 1)
	detail := result.FailureDetails[0]
	require.Equal(t, "test_add", detail.TestCase)
	require.Equal(t, "1", detail.Expected)
	require.Equal(t, "0", detail.Received)
	require.Contains(t, detail.ErrorMessage, "Assertion failed")
}

func TestPytestParserNoMatchesIsTotal(t *testing.T) {
	p := parser.NewPytestParser()
	result, err := p.Parse("unrelated noise, no summary line here", "")
	require.NoError(t, err)
	require.Equal(t, 0, result.TestsRun)
	require.Empty(t, result.FailureDetails)
}
