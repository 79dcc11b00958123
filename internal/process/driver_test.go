package process_test

import (
	"context"
	"testing"
	"time"

	"judgebox/internal/process"

	"github.com/stretchr/testify/require"
)

func TestDriverRunCapturesStdout(t *testing.T) {
	d := process.New(3000 * time.Millisecond)
	outcome, err := d.Run(context.Background(), "/bin/echo", []string{"hello"}, t.TempDir(), "", 0)
	require.NoError(t, err)
	require.False(t, outcome.TimedOut)
	require.Equal(t, "hello\n", outcome.Stdout)
	require.Equal(t, 0, outcome.ExitCode)
}

func TestDriverRunFeedsStdin(t *testing.T) {
	d := process.New(3000 * time.Millisecond)
	outcome, err := d.Run(context.Background(), "/bin/cat", nil, t.TempDir(), "ping", 0)
	require.NoError(t, err)
	require.Equal(t, "ping", outcome.Stdout)
}

func TestDriverRunTimesOut(t *testing.T) {
	d := process.New(100 * time.Millisecond)
	outcome, err := d.Run(context.Background(), "/bin/sleep", []string{"5"}, t.TempDir(), "", 0)
	require.NoError(t, err)
	require.True(t, outcome.TimedOut)
}

func TestDriverRunNonzeroExitCarriesOutput(t *testing.T) {
	d := process.New(3000 * time.Millisecond)
	outcome, err := d.Run(context.Background(), "/bin/sh", []string{"-c", "echo oops 1>&2; exit 7"}, t.TempDir(), "", 0)
	require.NoError(t, err)
	require.Equal(t, 7, outcome.ExitCode)
	require.Equal(t, "oops\n", outcome.Stderr)
}

func TestDriverCompileFailureCarriesStderr(t *testing.T) {
	d := process.New(3000 * time.Millisecond)
	err := d.Compile(context.Background(), "/bin/sh", []string{"-c", "echo bad syntax 1>&2; exit 1"}, t.TempDir())
	require.Error(t, err)
	var compileErr *process.CompileError
	require.ErrorAs(t, err, &compileErr)
	require.Contains(t, compileErr.Stderr, "bad syntax")
}

func TestDriverCompileSuccess(t *testing.T) {
	d := process.New(3000 * time.Millisecond)
	err := d.Compile(context.Background(), "/bin/true", nil, t.TempDir())
	require.NoError(t, err)
}
