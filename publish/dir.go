package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Dir copies files into a local directory.
type Dir struct {
	Path string
}

func (d Dir) Name() string {
	return d.Path
}

func (d Dir) Upload(_ context.Context, rc io.ReadCloser, fileName, _ string) (string, error) {
	defer rc.Close()
	if err := os.MkdirAll(d.Path, 0o750); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", d.Path, err)
	}

	dest := filepath.Join(d.Path, fileName)
	tmp, err := os.CreateTemp(d.Path, ".publish-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, rc); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to copy %s: %w", fileName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("failed to move %s into place: %w", fileName, err)
	}
	return dest, nil
}
