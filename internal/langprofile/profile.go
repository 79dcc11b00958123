// Package langprofile binds each supported language to its file
// layout, compile steps, run commands, test-harness construction, and
// output parser. The profile set is closed and small, so dispatch is
// a plain map lookup rather than reflection or inheritance.
package langprofile

import (
	"context"
	"errors"
	"fmt"

	"judgebox/internal/config"
	"judgebox/internal/model"
	"judgebox/internal/parser"
	"judgebox/internal/process"
	"judgebox/internal/workspace"
)

// ErrLanguageDisabled is returned by Resolve for a language that is
// administratively disabled via ToolchainConfig.DisabledLanguages,
// distinct from an unsupported language entirely.
var ErrLanguageDisabled = errors.New("language administratively disabled")

// Command is a single command+args pair, expanded and ready to hand
// to the ProcessDriver.
type Command struct {
	Path string
	Args []string
}

// Context carries whatever a profile derived while writing source or
// building the test harness (today, only Java's extracted public class
// names) forward to its later steps, without the profile itself holding any
// per-request state — a single Profile instance is shared across
// concurrent requests.
type Context struct {
	ClassName     string
	TestClassName string
}

// Profile is the per-language rule set the Executor drives.
type Profile interface {
	// Name identifies the profile for logging.
	Name() string

	// WriteSource writes the user's program into the workspace and
	// returns any metadata later steps need.
	WriteSource(ws *workspace.Workspace, code string) (*Context, error)

	// CompilePlain builds the plain (non-test) program. Returns
	// *process.CompileError on a nonzero compiler exit, following the
	// same error type Run/Compile already use.
	CompilePlain(ctx context.Context, driver *process.Driver, ws *workspace.Workspace, pctx *Context) error

	// PlainRunCommand returns the command to execute the plain program.
	PlainRunCommand(ws *workspace.Workspace, pctx *Context) Command

	// BuildTestHarness writes the test source and any generated files,
	// then compiles everything needed to run the tests. Returns
	// *process.CompileError on failure of any harness compile step.
	BuildTestHarness(ctx context.Context, driver *process.Driver, ws *workspace.Workspace, pctx *Context, testCode string) error

	// TestRunCommand returns the command to execute the test harness.
	TestRunCommand(ws *workspace.Workspace, pctx *Context) Command

	// Parser returns the TestOutputParser bound to this profile.
	Parser() parser.Parser

	// IsInterpreted reports whether a timed-out or nonzero-exit plain
	// run should classify as `failed` (interpreted languages, whose
	// test frameworks signal failure via exit code) instead of
	// `runtime_error` (compiled languages).
	IsInterpreted() bool
}

// Registry resolves a model.Language to its Profile.
type Registry struct {
	profiles map[model.Language]Profile
	disabled map[model.Language]bool
}

// NewRegistry builds the closed set of profiles from toolchain config.
// Languages named in cfg.DisabledLanguages are kept out of dispatch
// entirely; Resolve reports them as ErrLanguageDisabled rather than as
// unsupported.
func NewRegistry(cfg config.ToolchainConfig) *Registry {
	disabled := make(map[model.Language]bool, len(cfg.DisabledLanguages))
	for _, raw := range cfg.DisabledLanguages {
		disabled[model.Normalize(raw)] = true
	}
	return &Registry{
		profiles: map[model.Language]Profile{
			model.LanguageCPP:    newCPPProfile(cfg),
			model.LanguageJava:   newJavaProfile(cfg),
			model.LanguagePython: newPythonProfile(cfg),
		},
		disabled: disabled,
	}
}

// Resolve returns the Profile for lang, ErrLanguageDisabled if it has
// been administratively disabled, or a plain error if it is unsupported.
func (r *Registry) Resolve(lang model.Language) (Profile, error) {
	if r.disabled[lang] {
		return nil, ErrLanguageDisabled
	}
	p, ok := r.profiles[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language %q", lang)
	}
	return p, nil
}
