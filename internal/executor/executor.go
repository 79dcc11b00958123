// Package executor implements the top-level orchestrator: it
// sequences Workspace creation, the profile's compile step, the
// profile's run step, and the output parser, then assembles the
// canonical Result. This is the only package that understands the
// full state machine; profiles and parsers are pure building blocks.
package executor

import (
	"context"
	"errors"
	"strings"

	"judgebox/internal/config"
	"judgebox/internal/langprofile"
	"judgebox/internal/model"
	"judgebox/internal/observer"
	"judgebox/internal/process"
	"judgebox/internal/workspace"

	"go.uber.org/zap"
	"judgebox/pkg/utils/logger"
)

// Executor drives a single request's pipeline: Workspace → compile →
// run → parse. It holds no per-request state; a single Executor is
// shared across concurrent requests, each of which gets its own
// Workspace and Context.
type Executor struct {
	registry *langprofile.Registry
	driver   *process.Driver
	tempRoot string
	timeout  config.ExecutorConfig
	metrics  observer.MetricsRecorder
}

// New builds an Executor from the resolved toolchain/executor config
// and a shared registry of language profiles.
func New(registry *langprofile.Registry, driver *process.Driver, tempRoot string, execCfg config.ExecutorConfig, metrics observer.MetricsRecorder) *Executor {
	if metrics == nil {
		metrics = observer.NoopMetricsRecorder{}
	}
	return &Executor{
		registry: registry,
		driver:   driver,
		tempRoot: tempRoot,
		timeout:  execCfg,
		metrics:  metrics,
	}
}

// Execute runs the full pipeline for req and always returns a Result
// (never an error) — every failure mode the pipeline can hit is a
// classification, not a Go error, by the time it reaches the caller.
func (e *Executor) Execute(ctx context.Context, req *model.Request) *model.Result {
	lang := model.Normalize(req.Language)

	profile, err := e.registry.Resolve(lang)
	if err != nil {
		if errors.Is(err, langprofile.ErrLanguageDisabled) {
			return errorResult(model.StateExecutionBlocked, "", "language administratively disabled: "+string(lang))
		}
		return unknownLanguage(lang)
	}

	ws, err := workspace.Create(e.tempRoot)
	if err != nil {
		logger.Error(ctx, "workspace creation failed", zap.Error(err))
		return errorResult(model.StateExecutionError, "", err.Error())
	}
	defer ws.Destroy(ctx)

	pctx, err := profile.WriteSource(ws, req.Code)
	if err != nil {
		return e.compileFailureResult(ctx, profile, err)
	}

	var runCmd langprofile.Command
	if req.RunTests {
		if err := profile.BuildTestHarness(ctx, e.driver, ws, pctx, req.TestCode); err != nil {
			return e.compileFailureResult(ctx, profile, err)
		}
		runCmd = profile.TestRunCommand(ws, pctx)
	} else {
		if err := profile.CompilePlain(ctx, e.driver, ws, pctx); err != nil {
			return e.compileFailureResult(ctx, profile, err)
		}
		runCmd = profile.PlainRunCommand(ws, pctx)
	}

	outcome, err := e.driver.Run(ctx, runCmd.Path, runCmd.Args, ws.Root, req.Stdin, e.timeout.RunTimeoutMs)
	if err != nil {
		e.metrics.RecordExecutionError(profile.Name())
		return errorResult(model.StateExecutionError, "", err.Error())
	}

	result := e.classify(profile, req, outcome)
	e.metrics.RecordOutcome(profile.Name(), string(result.State))
	return result
}

// compileFailureResult turns a *process.CompileError into a
// compile_error Result carrying the tool's stderr; any other error is
// an infrastructure failure and becomes execution_error.
func (e *Executor) compileFailureResult(ctx context.Context, profile langprofile.Profile, err error) *model.Result {
	if compileErr, ok := err.(*process.CompileError); ok {
		e.metrics.RecordOutcome(profile.Name(), string(model.StateCompileError))
		return errorResult(model.StateCompileError, compileErr.Stderr, "")
	}
	logger.Error(ctx, "infrastructure failure during compile", zap.Error(err))
	e.metrics.RecordOutcome(profile.Name(), string(model.StateExecutionError))
	return errorResult(model.StateExecutionError, "", err.Error())
}

// classify implements §4.7 steps 4-6: turning a completed
// ExecutionOutcome into the final Result, either via the test-output
// parser (runTests) or a direct expected-output comparison.
func (e *Executor) classify(profile langprofile.Profile, req *model.Request, outcome *model.ExecutionOutcome) *model.Result {
	if outcome.TimedOut {
		result := model.NewResult(timeoutState(profile))
		result.ExecutionTimeExceeded = true
		return result
	}

	if !req.RunTests {
		return e.classifyPlainRun(profile, req, outcome)
	}
	return e.classifyTestRun(profile, outcome)
}

// classifyPlainRun handles the non-test path: a nonzero exit is a
// runtime error (compiled) or failure (interpreted); otherwise the
// captured stdout is compared against expectedOutput.
func (e *Executor) classifyPlainRun(profile langprofile.Profile, req *model.Request, outcome *model.ExecutionOutcome) *model.Result {
	if outcome.ExitCode != 0 {
		if profile.IsInterpreted() {
			result := model.NewResult(model.StateFailed)
			result.RuntimeError = outcome.Stderr
			return result
		}
		result := model.NewResult(model.StateRuntimeError)
		result.RuntimeError = outcome.Stderr
		return result
	}

	// Open question (a): both sides are compared after trimming
	// leading/trailing whitespace, applied consistently for every
	// language.
	got := strings.TrimSpace(outcome.Stdout)
	want := strings.TrimSpace(req.ExpectedOutput)

	result := model.NewResult(model.StatePassed)
	result.TestsRun = 1
	if got == want {
		result.Passed = 1
		return result
	}

	result.State = model.StateFailed
	result.Failed = 1
	result.FailureDetails = append(result.FailureDetails, model.FailureDetail{
		TestCase:     1,
		Expected:     req.ExpectedOutput,
		Received:     outcome.Stdout,
		ErrorMessage: "Output did not match expected output",
		RawOut:       outcome.Stdout + outcome.Stderr,
	})
	return result
}

// classifyTestRun dispatches to the profile's parser and finalizes
// the passed/failed state from its Failed count.
func (e *Executor) classifyTestRun(profile langprofile.Profile, outcome *model.ExecutionOutcome) *model.Result {
	parsed, err := profile.Parser().Parse(outcome.Stdout, outcome.Stderr)
	if err != nil {
		result := model.NewResult(model.StateExecutionError)
		result.RuntimeError = err.Error()
		return result
	}

	parsed.State = model.StatePassed
	if parsed.Failed != 0 {
		parsed.State = model.StateFailed
	}
	if parsed.FailureDetails == nil {
		parsed.FailureDetails = make([]model.FailureDetail, 0)
	}
	return parsed
}

// timeoutState picks runtime_error for compiled languages and failed
// for interpreted ones, per §4.7 step 4 and open question (b): the
// flag is always set when the deadline fires, on every path.
func timeoutState(profile langprofile.Profile) model.State {
	if profile.IsInterpreted() {
		return model.StateFailed
	}
	return model.StateRuntimeError
}

func unknownLanguage(lang model.Language) *model.Result {
	return errorResult(model.StateExecutionError, "", "unsupported language: "+string(lang))
}

func errorResult(state model.State, compileErr, runtimeErr string) *model.Result {
	result := model.NewResult(state)
	result.CompilationError = compileErr
	result.RuntimeError = runtimeErr
	return result
}
