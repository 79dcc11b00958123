package langprofile

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"judgebox/internal/config"
	"judgebox/internal/parser"
	"judgebox/internal/process"
	"judgebox/internal/workspace"
)

var publicClassPattern = regexp.MustCompile(`public\s+class\s+(\w+)`)

// errClassNotFound is returned when no public class name can be
// extracted from user or test source; the Executor maps this to
// compile_error per §4.4.
var errClassNotFound = errors.New("no public class declaration found")

type javaProfile struct {
	cfg    config.ToolchainConfig
	parser parser.Parser
}

func newJavaProfile(cfg config.ToolchainConfig) *javaProfile {
	return &javaProfile{cfg: cfg, parser: parser.NewJUnitParser()}
}

func (p *javaProfile) Name() string { return "java/junit" }

func (p *javaProfile) IsInterpreted() bool { return false }

// WriteSource extracts the public class name and writes the file as
// CLASS.java. Failure to match a class name surfaces as a
// *process.CompileError, matching §4.4's "failure to match ⇒
// compile_error".
func (p *javaProfile) WriteSource(ws *workspace.Workspace, code string) (*Context, error) {
	class, err := extractPublicClass(code)
	if err != nil {
		return nil, &process.CompileError{Stderr: err.Error()}
	}
	if err := ws.WriteFile(class+".java", []byte(code)); err != nil {
		return nil, &process.InfraError{Err: err}
	}
	return &Context{ClassName: class}, nil
}

func (p *javaProfile) CompilePlain(ctx context.Context, driver *process.Driver, ws *workspace.Workspace, pctx *Context) error {
	return driver.Compile(ctx, p.cfg.JavaC, []string{"-d", ws.Root, pctx.ClassName + ".java"}, ws.Root)
}

func (p *javaProfile) PlainRunCommand(ws *workspace.Workspace, pctx *Context) Command {
	return Command{Path: p.cfg.Java, Args: []string{"-cp", ws.Root, pctx.ClassName}}
}

func (p *javaProfile) BuildTestHarness(ctx context.Context, driver *process.Driver, ws *workspace.Workspace, pctx *Context, testCode string) error {
	testClass, err := extractPublicClass(testCode)
	if err != nil {
		return &process.CompileError{Stderr: err.Error()}
	}
	if err := ws.WriteFile(testClass+".java", []byte(testCode)); err != nil {
		return &process.InfraError{Err: err}
	}
	pctx.TestClassName = testClass

	runnerSource := strings.ReplaceAll(testRunnerTemplate, "__TARGET_TEST_CLASS__", testClass)
	if err := ws.WriteFile("TestRunner.java", []byte(runnerSource)); err != nil {
		return &process.InfraError{Err: err}
	}

	cpArgs := []string{"-cp", p.cfg.JUnitClasspath, "-d", ws.Root,
		pctx.ClassName + ".java", testClass + ".java", "TestRunner.java"}
	return driver.Compile(ctx, p.cfg.JavaC, cpArgs, ws.Root)
}

func (p *javaProfile) TestRunCommand(ws *workspace.Workspace, _ *Context) Command {
	classpath := ws.Root + ":" + p.cfg.JUnitClasspath
	return Command{Path: p.cfg.Java, Args: []string{"-cp", classpath, "TestRunner"}}
}

func (p *javaProfile) Parser() parser.Parser {
	return p.parser
}

func extractPublicClass(source string) (string, error) {
	m := publicClassPattern.FindStringSubmatch(source)
	if m == nil {
		return "", errClassNotFound
	}
	return m[1], nil
}

// testRunnerTemplate is the service's own JUnit harness. It discovers
// __TARGET_TEST_CLASS__, runs it, and writes a single JSON document
// (the canonical Result shape minus infrastructure fields) to stdout.
const testRunnerTemplate = `
import org.junit.runner.JUnitCore;
import org.junit.runner.Result;
import org.junit.runner.notification.Failure;
import java.util.regex.Matcher;
import java.util.regex.Pattern;

public class TestRunner {
    public static void main(String[] args) {
        Result result = JUnitCore.runClasses(__TARGET_TEST_CLASS__.class);

        int testsRun = result.getRunCount();
        int failed = result.getFailureCount();
        int passed = testsRun - failed;

        StringBuilder json = new StringBuilder();
        json.append("{");
        json.append("\"state\":\"").append(failed == 0 ? "passed" : "failed").append("\",");
        json.append("\"tests_run\":").append(testsRun).append(",");
        json.append("\"passed\":").append(passed).append(",");
        json.append("\"failed\":").append(failed).append(",");
        json.append("\"failure_details\":[");

        Pattern expectedFound = Pattern.compile("expected:\\s*<(.*?)>\\s*but was:\\s*<(.*?)>");
        Pattern binaryCompare = Pattern.compile("(.*?)\\s*[!=]=\\s*(.*)");

        for (int i = 0; i < result.getFailures().size(); i++) {
            Failure failure = result.getFailures().get(i);
            String message = failure.getMessage() == null ? "" : failure.getMessage();
            String expected = "";
            String received = "";

            Matcher m1 = expectedFound.matcher(message);
            Matcher m2 = binaryCompare.matcher(message);
            if (m1.find()) {
                expected = m1.group(1);
                received = m1.group(2);
            } else if (m2.find()) {
                received = m2.group(1).trim();
                expected = m2.group(2).trim();
            }

            if (i > 0) json.append(",");
            json.append("{");
            json.append("\"test_case\":\"").append(escape(failure.getTestHeader())).append("\",");
            json.append("\"expected\":\"").append(escape(expected)).append("\",");
            json.append("\"received\":\"").append(escape(received)).append("\",");
            json.append("\"error_message\":\"").append(escape(message)).append("\",");
            json.append("\"rawout\":\"").append(escape(failure.getTrace())).append("\"");
            json.append("}");
        }
        json.append("]}");

        System.out.println(json.toString());
    }

    private static String escape(String s) {
        if (s == null) return "";
        return s.replace("\\", "\\\\").replace("\"", "\\\"").replace("\n", "\\n");
    }
}
`
