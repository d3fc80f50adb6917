package cellar

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-ci/src/pkgspec"
)

func mkInstall(t *testing.T, prefix, project, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(prefix, project, dir), 0o755))
}

func req(t *testing.T, s string) pkgspec.Requirement {
	t.Helper()
	r, err := pkgspec.Parse(s)
	require.NoError(t, err)
	return r
}

func TestNewFSCellar_RequiresPrefix(t *testing.T) {
	_, err := NewFSCellar("")
	assert.Error(t, err)
}

func TestFSCellar_Has(t *testing.T) {
	prefix := t.TempDir()
	mkInstall(t, prefix, "deno.land", "v1.29.4")
	mkInstall(t, prefix, "deno.land", "v1.30.3")
	mkInstall(t, prefix, "deno.land", "vnot-a-version")
	mkInstall(t, prefix, "github.com/google/re2", "v2023.3.1")
	require.NoError(t, os.WriteFile(filepath.Join(prefix, "deno.land", "v9.9.9"), nil, 0o644))
	require.NoError(t, os.Symlink(filepath.Join(prefix, "deno.land", "v1.30.3"), filepath.Join(prefix, "deno.land", "v1")))

	c, err := NewFSCellar(prefix)
	require.NoError(t, err)
	assert.Equal(t, prefix, c.Prefix())

	ctx := context.Background()

	t.Run("highest version wins", func(t *testing.T) {
		inst, err := c.Has(ctx, req(t, "deno.land"))
		require.NoError(t, err)
		require.NotNil(t, inst)
		assert.Equal(t, "1.30.3", inst.Version.String())
		assert.Equal(t, filepath.Join(prefix, "deno.land", "v1.30.3"), inst.Path)
	})

	t.Run("constraint narrows choice", func(t *testing.T) {
		inst, err := c.Has(ctx, req(t, "deno.land<1.30"))
		require.NoError(t, err)
		require.NotNil(t, inst)
		assert.Equal(t, "1.29.4", inst.Version.String())
	})

	t.Run("unsatisfied constraint", func(t *testing.T) {
		inst, err := c.Has(ctx, req(t, "deno.land^2"))
		require.NoError(t, err)
		assert.Nil(t, inst)
	})

	t.Run("missing project", func(t *testing.T) {
		inst, err := c.Has(ctx, req(t, "ziglang.org"))
		require.NoError(t, err)
		assert.Nil(t, inst)
	})

	t.Run("nested project path", func(t *testing.T) {
		inst, err := c.Has(ctx, req(t, "github.com/google/re2"))
		require.NoError(t, err)
		require.NotNil(t, inst)
		assert.Equal(t, "2023.3.1", inst.Version.String())
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := c.Has(cctx, req(t, "deno.land"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFSCellar_Has_PrereleaseOnly(t *testing.T) {
	prefix := t.TempDir()
	mkInstall(t, prefix, "deno.land", "v1.31.0-rc.1")

	c, err := NewFSCellar(prefix)
	require.NoError(t, err)

	inst, err := c.Has(context.Background(), req(t, "deno.land"))
	require.NoError(t, err)
	require.NotNil(t, inst)
	assert.Equal(t, "1.31.0-rc.1", inst.Version.String())

	inst, err = c.Has(context.Background(), req(t, "deno.land^1"))
	require.NoError(t, err)
	assert.Nil(t, inst)
}

func TestFSCellar_Has_StaysInsidePrefix(t *testing.T) {
	root := t.TempDir()
	prefix := filepath.Join(root, "tea")
	mkInstall(t, root, "outside", "v1.0.0")
	require.NoError(t, os.MkdirAll(prefix, 0o755))

	c, err := NewFSCellar(prefix)
	require.NoError(t, err)

	for _, project := range []string{"../outside", "..", "a/../../outside"} {
		t.Run(project, func(t *testing.T) {
			inst, err := c.Has(context.Background(), pkgspec.Requirement{Project: project})
			assert.ErrorIs(t, err, ErrInvalidProject)
			assert.Nil(t, inst)
		})
	}
}
