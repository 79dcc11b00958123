// Package process implements the ProcessDriver: spawning child
// processes, feeding stdin, capturing stdout/stderr, and enforcing a
// wall-clock timeout on run with guaranteed cleanup of the whole
// process group.
package process

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"judgebox/internal/model"
)

// CompileError carries the failing compiler's stderr.
type CompileError struct {
	Stderr string
}

func (e *CompileError) Error() string {
	return e.Stderr
}

// InfraError marks a failure not attributable to the user's program —
// the child never ran at all.
type InfraError struct {
	Err error
}

func (e *InfraError) Error() string {
	return fmt.Sprintf("infrastructure failure: %v", e.Err)
}

func (e *InfraError) Unwrap() error {
	return e.Err
}

// Driver spawns child processes on behalf of a single request. A
// Driver has no state shared across calls and is safe to construct
// fresh per request or reuse across requests.
type Driver struct {
	// DefaultTimeout is used by Run when the caller passes timeoutMs <= 0.
	DefaultTimeout time.Duration
}

// New returns a Driver with the given default run timeout.
func New(defaultTimeout time.Duration) *Driver {
	if defaultTimeout <= 0 {
		defaultTimeout = 3000 * time.Millisecond
	}
	return &Driver{DefaultTimeout: defaultTimeout}
}

// Compile spawns command with args in cwd, captures stderr, and waits
// for exit. It never feeds stdin and never applies a timeout — build
// steps are assumed bounded by the environment. A nonzero exit returns
// a *CompileError carrying the accumulated stderr. A spawn failure
// returns a *InfraError.
func (d *Driver) Compile(ctx context.Context, command string, args []string, cwd string) error {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = cwd

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return &InfraError{Err: err}
	}

	if err := cmd.Wait(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return &CompileError{Stderr: stderr.String()}
		}
		return &InfraError{Err: err}
	}
	return nil
}

// Run spawns command with args in cwd, writes stdin then closes it,
// accumulates stdout/stderr, and enforces a wall-clock deadline. If
// timeoutMs <= 0 the Driver's DefaultTimeout is used.
//
// On timeout the returned ExecutionOutcome has TimedOut=true and
// whatever was captured is discarded in favor of empty streams — the
// caller should not trust partial output from a killed process. On a
// nonzero exit the outcome still carries the captured stdout/stderr so
// callers can inspect them for frameworks that signal failure via exit
// code. A spawn failure returns a *InfraError and a nil outcome.
func (d *Driver) Run(ctx context.Context, command string, args []string, cwd, stdin string, timeoutMs int) (*model.ExecutionOutcome, error) {
	timeout := d.DefaultTimeout
	if timeoutMs > 0 {
		timeout = time.Duration(timeoutMs) * time.Millisecond
	}

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = cwd
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, &InfraError{Err: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &InfraError{Err: err}
	}

	go func() {
		if stdin != "" {
			_, _ = stdinPipe.Write([]byte(stdin))
		}
		_ = stdinPipe.Close()
	}()

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var once sync.Once
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		once.Do(func() {})
		if err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				return &model.ExecutionOutcome{
					Stdout:   stdout.String(),
					Stderr:   stderr.String(),
					ExitCode: exitErr.ExitCode(),
				}, nil
			}
			return nil, &InfraError{Err: err}
		}
		return &model.ExecutionOutcome{
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			ExitCode: 0,
		}, nil

	case <-timer.C:
		once.Do(func() {
			killProcessGroup(cmd.Process.Pid)
		})
		<-done // reap to avoid a zombie; its result is discarded
		return &model.ExecutionOutcome{TimedOut: true}, nil
	}
}

// killProcessGroup sends SIGKILL to the whole process group so a
// compiled test runner that forks cannot outlive the deadline.
func killProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
