package main

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"pantry-ci/src/cellar"
	"pantry-ci/src/config"
	"pantry-ci/src/pkgspec"
)

// recorder writes installations to a shared registry.
type recorder interface {
	EnsureSchema(ctx context.Context) error
	Record(ctx context.Context, project, version, path string) error
}

func (a *app) cellarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cellar",
		Short: "Manage the shared Postgres cellar",
	}
	cmd.AddCommand(a.cellarRecordCmd())
	return cmd
}

func (a *app) cellarRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record <project> <version> [path]",
		Short: "Mark a project version as installed in the Postgres cellar",
		Long: `Records project@version in the installations table of $CELLAR_DSN,
creating the table if needed. Recording the same version again replaces its
path.

Example:
  CELLAR_DSN=postgres://ci@db/pantry pantry-ci cellar record deno.land 1.30.3 /opt/deno.land/v1.30.3`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := pkgspec.Parse(args[0])
			if err != nil {
				return err
			}
			if req.Constraint != nil {
				return fmt.Errorf("%w: %q: expected a project without a version constraint", pkgspec.ErrInvalidRequirement, args[0])
			}

			v, err := semver.NewVersion(args[1])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[1], err)
			}

			var path string
			if len(args) == 3 {
				path = args[2]
			}

			r, closeRecorder, err := a.openRecorder(a.cfg)
			if err != nil {
				return fmt.Errorf("failed to open cellar: %w", err)
			}
			defer closeRecorder()

			ctx := cmd.Context()
			if err := r.EnsureSchema(ctx); err != nil {
				return err
			}
			if err := r.Record(ctx, req.Project, v.String(), path); err != nil {
				return err
			}

			a.log.Info("recorded %s v%s", req.Project, v)
			return nil
		},
	}
}

func openRecorder(cfg *config.Config) (recorder, func() error, error) {
	dsn, err := cfg.RequireCellarDSN()
	if err != nil {
		return nil, nil, err
	}
	c, err := cellar.NewPostgresCellar(dsn)
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}
