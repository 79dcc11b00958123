package langprofile

import (
	"context"

	"judgebox/internal/config"
	"judgebox/internal/parser"
	"judgebox/internal/process"
	"judgebox/internal/workspace"
)

type pythonProfile struct {
	cfg    config.ToolchainConfig
	parser parser.Parser
}

func newPythonProfile(cfg config.ToolchainConfig) *pythonProfile {
	return &pythonProfile{cfg: cfg, parser: parser.NewPytestParser()}
}

func (p *pythonProfile) Name() string { return "python/pytest" }

// IsInterpreted is true: pytest signals a failing run via nonzero
// exit code, so a timed-out or nonzero plain run classifies as
// `failed`, never `runtime_error`.
func (p *pythonProfile) IsInterpreted() bool { return true }

func (p *pythonProfile) WriteSource(ws *workspace.Workspace, code string) (*Context, error) {
	if err := ws.WriteFile("program.py", []byte(code)); err != nil {
		return nil, err
	}
	return &Context{}, nil
}

// CompilePlain is a no-op: Python has no compile step.
func (p *pythonProfile) CompilePlain(ctx context.Context, driver *process.Driver, ws *workspace.Workspace, _ *Context) error {
	return nil
}

func (p *pythonProfile) PlainRunCommand(ws *workspace.Workspace, _ *Context) Command {
	return Command{Path: p.cfg.Python3, Args: []string{ws.Path("program.py")}}
}

// BuildTestHarness writes the test source verbatim; it imports
// `program` by convention. No compile step exists for Python, so the
// only failure mode is the (exceedingly rare) write failing.
func (p *pythonProfile) BuildTestHarness(ctx context.Context, driver *process.Driver, ws *workspace.Workspace, _ *Context, testCode string) error {
	if err := ws.WriteFile("test_program.py", []byte(testCode)); err != nil {
		return &process.CompileError{Stderr: err.Error()}
	}
	return nil
}

func (p *pythonProfile) TestRunCommand(ws *workspace.Workspace, _ *Context) Command {
	return Command{Path: p.cfg.Pytest, Args: []string{ws.Path("test_program.py")}}
}

func (p *pythonProfile) Parser() parser.Parser {
	return p.parser
}
