package cellar

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"pantry-ci/src/pkgspec"
)

// FSCellar reads installations from a tea prefix laid out as
// <prefix>/<project>/v<version>/.
type FSCellar struct {
	prefix string
}

// NewFSCellar creates a cellar rooted at prefix.
func NewFSCellar(prefix string) (*FSCellar, error) {
	if prefix == "" {
		return nil, errors.New("cellar prefix is required (set TEA_PREFIX or HOME)")
	}
	return &FSCellar{prefix: prefix}, nil
}

// Prefix returns the cellar root.
func (c *FSCellar) Prefix() string {
	return c.prefix
}

// Has implements Cellar. A project directory that does not exist means the
// project is not installed.
func (c *FSCellar) Has(ctx context.Context, req pkgspec.Requirement) (*Installation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(c.prefix, filepath.FromSlash(req.Project))
	if !c.contains(dir) {
		return nil, fmt.Errorf("%w: project %q is outside the cellar", ErrInvalidProject, req.Project)
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cellar entry %s: %w", dir, err)
	}

	var installs []Installation
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "v") || !isDir(dir, e) {
			continue
		}
		// Symlinks such as v* and v1 point at real installs; only full
		// versions count.
		v, err := semver.StrictNewVersion(strings.TrimPrefix(e.Name(), "v"))
		if err != nil {
			continue
		}
		installs = append(installs, Installation{
			Project: req.Project,
			Version: v,
			Path:    filepath.Join(dir, e.Name()),
		})
	}

	return best(req, installs), nil
}

// contains reports whether dir lies strictly below the cellar root.
func (c *FSCellar) contains(dir string) bool {
	rel, err := filepath.Rel(c.prefix, dir)
	if err != nil || rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isDir(parent string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	info, err := os.Stat(filepath.Join(parent, e.Name()))
	return err == nil && info.IsDir()
}
