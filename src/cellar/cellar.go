// Package cellar answers whether a package requirement is already installed.
package cellar

import (
	"context"
	"errors"

	"github.com/Masterminds/semver/v3"

	"pantry-ci/src/pkgspec"
)

// ErrInvalidProject is returned for project names that do not name an entry
// inside the cellar.
var ErrInvalidProject = errors.New("invalid project")

// Installation is an installed version of a project.
type Installation struct {
	Project string
	Version *semver.Version
	Path    string
}

// Cellar defines the interface for installed-package registries.
type Cellar interface {
	// Has returns the highest installed version satisfying req, or nil if
	// nothing installed satisfies it.
	Has(ctx context.Context, req pkgspec.Requirement) (*Installation, error)
}

// best returns the highest installation satisfying req.
func best(req pkgspec.Requirement, candidates []Installation) *Installation {
	var found *Installation
	for i := range candidates {
		c := candidates[i]
		if !req.Satisfies(c.Version) {
			continue
		}
		if found == nil || c.Version.GreaterThan(found.Version) {
			found = &c
		}
	}
	return found
}
