// Package workspace manages the per-request filesystem directory that
// holds every artifact a pipeline run produces: source, tests,
// intermediates, and executables.
package workspace

import (
	"context"
	"os"
	"path/filepath"

	"judgebox/pkg/utils/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Workspace is a filesystem path owned exclusively by one request.
type Workspace struct {
	Root string
}

// Create produces a directory under root whose name is a fresh random
// identifier with negligible collision probability.
func Create(root string) (*Workspace, error) {
	dir := filepath.Join(root, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Workspace{Root: dir}, nil
}

// Path returns the absolute path of a file relative to the workspace root.
func (w *Workspace) Path(relative string) string {
	return filepath.Join(w.Root, relative)
}

// WriteFile writes data to a path relative to the workspace root,
// creating parent directories as needed.
func (w *Workspace) WriteFile(relative string, data []byte) error {
	full := w.Path(relative)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

// Destroy recursively removes the workspace directory. "Not found" is
// ignored; other errors are logged but never alter the caller's
// Result — destroy runs on every exit path and must not fail a
// request that has already completed.
func (w *Workspace) Destroy(ctx context.Context) {
	if err := os.RemoveAll(w.Root); err != nil && !os.IsNotExist(err) {
		logger.Warn(ctx, "workspace teardown failed", zap.Error(err), zap.String("path", w.Root))
	}
}
