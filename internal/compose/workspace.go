package compose

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Workspace is a per-call scratch directory for staging source images.
// Every composition or upload gets its own; Close removes everything.
// This replaces ambient process-wide temp state with ownership the
// calling scope controls on every exit path.
type Workspace struct {
	dir string
}

// NewWorkspace creates a fresh scratch directory under parent, or under
// the system temp dir when parent is empty.
func NewWorkspace(parent string) (*Workspace, error) {
	if parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, fmt.Errorf("compose: ensure workspace parent: %w", err)
		}
	}
	dir, err := os.MkdirTemp(parent, "compose-")
	if err != nil {
		return nil, fmt.Errorf("compose: create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace root.
func (w *Workspace) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// Stage writes data under the workspace and returns the absolute path.
// Names are flattened to their base so a staged file can never escape
// the workspace.
func (w *Workspace) Stage(name string, data []byte) (string, error) {
	path, err := w.target(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("compose: stage %s: %w", name, err)
	}
	return path, nil
}

// StageFrom streams r into the workspace, returning the absolute path and
// byte count. Used for multipart uploads that should not be buffered
// whole in memory before validation.
func (w *Workspace) StageFrom(name string, r io.Reader) (string, int64, error) {
	path, err := w.target(name)
	if err != nil {
		return "", 0, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", 0, fmt.Errorf("compose: stage %s: %w", name, err)
	}
	n, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil {
		return "", n, fmt.Errorf("compose: stage %s: %w", name, copyErr)
	}
	if closeErr != nil {
		return "", n, fmt.Errorf("compose: stage %s: %w", name, closeErr)
	}
	return path, n, nil
}

func (w *Workspace) target(name string) (string, error) {
	if w == nil || w.dir == "" {
		return "", errors.New("compose: workspace not initialized")
	}
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("compose: invalid staged name %q", name)
	}
	return filepath.Join(w.dir, base), nil
}

// Close removes the workspace and everything staged in it.
func (w *Workspace) Close() error {
	if w == nil || w.dir == "" {
		return nil
	}
	dir := w.dir
	w.dir = ""
	return os.RemoveAll(dir)
}
