package langprofile_test

import (
	"testing"

	"judgebox/internal/config"
	"judgebox/internal/langprofile"
	"judgebox/internal/model"
	"judgebox/internal/workspace"

	"github.com/stretchr/testify/require"
)

func testRegistry() *langprofile.Registry {
	return langprofile.NewRegistry(config.ToolchainConfig{
		CXXCompiler:    "g++",
		CxxTestGen:     "cxxtestgen",
		JavaC:          "javac",
		Java:           "java",
		JUnitClasspath: "/opt/junit/junit.jar",
		Python3:        "python3",
	})
}

func TestRegistryResolvesAllThreeLanguages(t *testing.T) {
	r := testRegistry()
	for _, lang := range []model.Language{model.LanguageCPP, model.LanguageJava, model.LanguagePython} {
		p, err := r.Resolve(lang)
		require.NoError(t, err)
		require.NotEmpty(t, p.Name())
	}
}

func TestRegistryRejectsUnknownLanguage(t *testing.T) {
	r := testRegistry()
	_, err := r.Resolve(model.Language("ruby"))
	require.Error(t, err)
	require.NotErrorIs(t, err, langprofile.ErrLanguageDisabled)
}

func TestRegistryReportsDisabledLanguageDistinctly(t *testing.T) {
	r := langprofile.NewRegistry(config.ToolchainConfig{
		CXXCompiler:       "g++",
		Python3:           "python3",
		DisabledLanguages: []string{"CPP"},
	})
	_, err := r.Resolve(model.LanguageCPP)
	require.ErrorIs(t, err, langprofile.ErrLanguageDisabled)

	_, err = r.Resolve(model.LanguagePython)
	require.NoError(t, err)
}

func TestCPPProfileWritesProgramCPP(t *testing.T) {
	r := testRegistry()
	p, err := r.Resolve(model.LanguageCPP)
	require.NoError(t, err)

	ws, err := workspace.Create(t.TempDir())
	require.NoError(t, err)

	_, err = p.WriteSource(ws, "int main(){}")
	require.NoError(t, err)
	require.FileExists(t, ws.Path("program.cpp"))
}

func TestJavaProfileExtractsClassName(t *testing.T) {
	r := testRegistry()
	p, err := r.Resolve(model.LanguageJava)
	require.NoError(t, err)

	ws, err := workspace.Create(t.TempDir())
	require.NoError(t, err)

	pctx, err := p.WriteSource(ws, "public class Main { public int add(int a, int b) { return a+b; } }")
	require.NoError(t, err)
	require.Equal(t, "Main", pctx.ClassName)
	require.FileExists(t, ws.Path("Main.java"))
}

func TestJavaProfileRejectsMissingClass(t *testing.T) {
	r := testRegistry()
	p, err := r.Resolve(model.LanguageJava)
	require.NoError(t, err)

	ws, err := workspace.Create(t.TempDir())
	require.NoError(t, err)

	_, err = p.WriteSource(ws, "int add() { return 1; }")
	require.Error(t, err)
}

func TestPythonProfileIsInterpreted(t *testing.T) {
	r := testRegistry()
	p, err := r.Resolve(model.LanguagePython)
	require.NoError(t, err)
	require.True(t, p.IsInterpreted())

	cpp, err := r.Resolve(model.LanguageCPP)
	require.NoError(t, err)
	require.False(t, cpp.IsInterpreted())
}
