// Package export writes generated shorts to disk.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
	"github.com/mitchellh/go-homedir"

	"github.com/nickpending/psyquotes/internal/imagegen"
)

// FilePrefix starts every exported file name
const FilePrefix = "PsyShort-"

// ErrNothingToSave is returned when there is no completed image
var ErrNothingToSave = errors.New("no generated image to save")

// Filename returns the deterministic file name for a quote's short,
// e.g. PsyShort-F-001.png
func Filename(quoteID, mimeType string) string {
	return FilePrefix + sanitize(quoteID) + imagegen.ExtensionFor(mimeType)
}

// sanitize keeps ids safe to use as a path element
func sanitize(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "untitled"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, id)
}

// ResolveDir expands ~ and makes dir absolute
func ResolveDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", dir, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", expanded, err)
	}
	return abs, nil
}

// Save writes img to dir atomically and returns the full path.
// An existing file for the same quote is replaced.
func Save(dir, quoteID string, img *imagegen.Image) (string, error) {
	if img.Empty() {
		return "", ErrNothingToSave
	}

	target, err := ResolveDir(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(target, Filename(quoteID, img.MIMEType))
	if err := renameio.WriteFile(path, img.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
