package langprofile

import (
	"context"
	"regexp"

	"judgebox/internal/config"
	"judgebox/internal/parser"
	"judgebox/internal/process"
	"judgebox/internal/workspace"
)

// forwardDeclPattern matches top-level scalar-returning function
// definitions in student code, for the optional extern-declaration
// prepend step (§4.3 step 1). Nothing applies it: forwardDeclare writes
// the test header unchanged, so test code supplies its own declarations.
var forwardDeclPattern = regexp.MustCompile(
	`\b(int|bool|void|float|double|char|string)\s+(\w+)\s*\(([^)]*)\)\s*\{`)

type cppProfile struct {
	cfg    config.ToolchainConfig
	parser parser.Parser
}

func newCPPProfile(cfg config.ToolchainConfig) *cppProfile {
	return &cppProfile{cfg: cfg, parser: parser.NewCxxTestParser()}
}

func (p *cppProfile) Name() string { return "cpp/cxxtest" }

func (p *cppProfile) IsInterpreted() bool { return false }

func (p *cppProfile) WriteSource(ws *workspace.Workspace, code string) (*Context, error) {
	if err := ws.WriteFile("program.cpp", []byte(code)); err != nil {
		return nil, err
	}
	return &Context{}, nil
}

func (p *cppProfile) CompilePlain(ctx context.Context, driver *process.Driver, ws *workspace.Workspace, _ *Context) error {
	args := append(splitFlags(p.cfg.CXXFlags), "program.cpp", "-o", "program")
	return driver.Compile(ctx, p.cfg.CXXCompiler, args, ws.Root)
}

func (p *cppProfile) PlainRunCommand(ws *workspace.Workspace, _ *Context) Command {
	return Command{Path: ws.Path("program")}
}

func (p *cppProfile) BuildTestHarness(ctx context.Context, driver *process.Driver, ws *workspace.Workspace, _ *Context, testCode string) error {
	if err := ws.WriteFile("test_program.h", []byte(forwardDeclare(testCode))); err != nil {
		return &process.InfraError{Err: err}
	}

	genArgs := []string{"--error-printer", "-o", "runner.cpp", "test_program.h"}
	if err := driver.Compile(ctx, p.cfg.CxxTestGen, genArgs, ws.Root); err != nil {
		return err
	}

	compileArgs := append(splitFlags(p.cfg.CXXFlags), "runner.cpp", "program.cpp", "-o", "runner")
	return driver.Compile(ctx, p.cfg.CXXCompiler, compileArgs, ws.Root)
}

func (p *cppProfile) TestRunCommand(ws *workspace.Workspace, _ *Context) Command {
	return Command{Path: ws.Path("runner")}
}

func (p *cppProfile) Parser() parser.Parser {
	return p.parser
}

// forwardDeclare is a no-op today: the test header is written exactly
// as the caller supplied it. Extraction of forward declarations from
// student code is optional per the profile and adds no value unless
// test code omits its own extern declarations, which none of this
// service's callers currently do.
func forwardDeclare(testCode string) string {
	return testCode
}
