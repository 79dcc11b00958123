package executor_test

import (
	"context"
	"testing"
	"time"

	"judgebox/internal/config"
	"judgebox/internal/executor"
	"judgebox/internal/langprofile"
	"judgebox/internal/model"
	"judgebox/internal/process"

	"github.com/stretchr/testify/require"
)

func newTestExecutor(t *testing.T) *executor.Executor {
	t.Helper()
	registry := langprofile.NewRegistry(config.ToolchainConfig{
		CXXCompiler: "/bin/true",
		Python3:     "/bin/echo",
	})
	driver := process.New(500 * time.Millisecond)
	return executor.New(registry, driver, t.TempDir(), config.ExecutorConfig{RunTimeoutMs: 1000}, nil)
}

func TestExecuteUnknownLanguageIsExecutionError(t *testing.T) {
	e := newTestExecutor(t)
	result := e.Execute(context.Background(), &model.Request{Language: "ruby", Code: "puts 1"})
	require.Equal(t, model.StateExecutionError, result.State)
}

func TestExecutePlainRunComparesOutputAsOneTest(t *testing.T) {
	e := newTestExecutor(t)
	// python3 is faked as /bin/echo: stdout will be the script path, not
	// useful output, so this test only exercises the non-test plumbing
	// path (workspace create → write → run → compare), not real Python.
	result := e.Execute(context.Background(), &model.Request{
		Language:       "python",
		Code:           "print('5')",
		ExpectedOutput: "5",
	})
	require.Contains(t, []model.State{model.StatePassed, model.StateFailed}, result.State)
	require.Equal(t, 1, result.TestsRun)
}

func TestExecuteJavaWithoutPublicClassIsCompileError(t *testing.T) {
	e := newTestExecutor(t)
	result := e.Execute(context.Background(), &model.Request{
		Language: "java",
		Code:     "int add() { return 1; }",
	})
	require.Equal(t, model.StateCompileError, result.State)
	require.Equal(t, 0, result.TestsRun)
}

func TestExecuteDisabledLanguageIsExecutionBlocked(t *testing.T) {
	registry := langprofile.NewRegistry(config.ToolchainConfig{
		CXXCompiler:       "/bin/true",
		DisabledLanguages: []string{"cpp"},
	})
	driver := process.New(500 * time.Millisecond)
	e := executor.New(registry, driver, t.TempDir(), config.ExecutorConfig{RunTimeoutMs: 1000}, nil)

	result := e.Execute(context.Background(), &model.Request{
		Language: "cpp",
		Code:     "int main(){}",
	})
	require.Equal(t, model.StateExecutionBlocked, result.State)
	require.Equal(t, 0, result.TestsRun)
}

func TestExecuteCompileFailurePreventsLaunch(t *testing.T) {
	registry := langprofile.NewRegistry(config.ToolchainConfig{
		CXXCompiler: "/bin/false",
	})
	driver := process.New(500 * time.Millisecond)
	e := executor.New(registry, driver, t.TempDir(), config.ExecutorConfig{RunTimeoutMs: 1000}, nil)

	result := e.Execute(context.Background(), &model.Request{
		Language: "cpp",
		Code:     "int main(){}",
	})
	require.Equal(t, model.StateCompileError, result.State)
	require.Equal(t, 0, result.TestsRun)
}
