package pptx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/decks/exec"
)

// OfficeBinaries are tried in order when exporting to PDF.
var OfficeBinaries = []string{"soffice", "libreoffice"}

// ExportPDF converts a presentation to PDF with a headless LibreOffice and
// returns the written path, dir/<name>.pdf.
func ExportPDF(ctx context.Context, path, dir string) (string, error) {
	office, err := exec.Which(OfficeBinaries...)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	// a private profile lets exports run next to an open LibreOffice
	profile, err := os.MkdirTemp("", "decks-office-")
	if err != nil {
		return "", fmt.Errorf("failed to create office profile: %w", err)
	}
	defer os.RemoveAll(profile)

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	// HOME points at the profile too, older builds write caches there
	p := exec.New(office,
		"-env:UserInstallation=file://"+filepath.ToSlash(profile),
		"--headless", "--convert-to", "pdf", "--outdir", ".", abs).
		WithCwd(dir).
		WithEnv(map[string]string{"HOME": profile})
	if err := p.Run(ctx); err != nil {
		return "", err
	}

	out := filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+".pdf")
	if _, err := os.Stat(out); err != nil {
		return "", fmt.Errorf("%s wrote no pdf: %s", office, strings.TrimSpace(p.Out()))
	}
	logger.Debugf("exported %s", out)
	return out, nil
}
