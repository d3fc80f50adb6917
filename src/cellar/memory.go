package cellar

import (
	"context"
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"

	"pantry-ci/src/pkgspec"
)

// MemoryCellar is a thread-safe in-memory Cellar.
type MemoryCellar struct {
	mu       sync.RWMutex
	installs map[string][]Installation
}

// NewMemoryCellar creates an empty in-memory cellar.
func NewMemoryCellar() *MemoryCellar {
	return &MemoryCellar{
		installs: make(map[string][]Installation),
	}
}

// Add records project@version as installed.
func (c *MemoryCellar) Add(project, version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid version %q for %s: %w", version, project, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.installs[project] = append(c.installs[project], Installation{
		Project: project,
		Version: v,
	})
	return nil
}

// Has implements Cellar.
func (c *MemoryCellar) Has(ctx context.Context, req pkgspec.Requirement) (*Installation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return best(req, c.installs[req.Project]), nil
}
