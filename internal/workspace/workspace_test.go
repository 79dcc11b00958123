package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"judgebox/internal/workspace"

	"github.com/stretchr/testify/require"
)

func TestCreateProducesUniqueDirectories(t *testing.T) {
	root := t.TempDir()
	a, err := workspace.Create(root)
	require.NoError(t, err)
	b, err := workspace.Create(root)
	require.NoError(t, err)
	require.NotEqual(t, a.Root, b.Root)
	require.DirExists(t, a.Root)
	require.DirExists(t, b.Root)
}

func TestWriteFileCreatesParentDirs(t *testing.T) {
	ws, err := workspace.Create(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, ws.WriteFile("nested/program.cpp", []byte("int main(){}")))

	contents, err := os.ReadFile(filepath.Join(ws.Root, "nested/program.cpp"))
	require.NoError(t, err)
	require.Equal(t, "int main(){}", string(contents))
}

func TestDestroyRemovesDirectory(t *testing.T) {
	ws, err := workspace.Create(t.TempDir())
	require.NoError(t, err)

	ws.Destroy(context.Background())
	require.NoDirExists(t, ws.Root)
}

func TestDestroyIsIdempotent(t *testing.T) {
	ws, err := workspace.Create(t.TempDir())
	require.NoError(t, err)

	ws.Destroy(context.Background())
	ws.Destroy(context.Background()) // second call must not panic or error visibly
}
