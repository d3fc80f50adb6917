package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pantry-ci/src/contracts"
	"pantry-ci/src/filter"
	"pantry-ci/src/githubactions"
	"pantry-ci/src/pkgspec"
	"pantry-ci/src/summary"
)

func (a *app) filterCmd() *cobra.Command {
	var (
		invert      bool
		showSummary bool
	)

	cmd := &cobra.Command{
		Use:   "filter [package...]",
		Short: "Print the packages that are not yet installed",
		Long: `Looks up every package in the cellar and prints the projects that are
NOT installed. With INVERT set (or --invert) it prints the installed ones
instead.

Inside GitHub Actions the result is printed as a "pkgs" step output, and
appended to $GITHUB_OUTPUT when that is set.

Example:
  pantry-ci filter deno.land ziglang.org@0.11
  INVERT=1 pantry-ci filter deno.land`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("invert") {
				a.cfg.Invert = invert
			}

			reqs, err := pkgspec.ParseAll(args)
			if err != nil {
				return err
			}

			c, closeCellar, err := a.openCellar(a.cfg)
			if err != nil {
				return fmt.Errorf("failed to open cellar: %w", err)
			}
			defer closeCellar()
			a.log.Info("checking %d packages against %s", len(reqs), describeCellar(c))

			kept, err := filter.Filter(cmd.Context(), c, reqs, a.cfg.Invert, a.log)
			if err != nil {
				return err
			}

			key := a.cfg.RunID
			if key == "" {
				key = "local"
			}
			err = a.publish(cmd, contracts.TopicFilterResults, key, contracts.FilterResult{
				RunInfo:   a.runInfo(),
				Requested: args,
				Kept:      kept,
				Invert:    a.cfg.Invert,
			})
			if err != nil {
				return err
			}

			if _, err := fmt.Fprint(a.stdout, filter.Format(kept, a.cfg.GitHubActions)); err != nil {
				return err
			}

			if a.cfg.GitHubOutput != "" {
				if err := githubactions.AppendOutput(a.cfg.GitHubOutput, filter.OutputFileEntry(kept)); err != nil {
					return err
				}
			}

			if showSummary {
				projects := make([]string, len(reqs))
				for i, r := range reqs {
					projects[i] = r.Project
				}
				fmt.Fprint(a.stderr, summary.RenderFilter(projects, kept, a.cfg.Invert, summary.DefaultWidth))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&invert, "invert", false, "print installed packages instead of missing ones (default $INVERT)")
	cmd.Flags().BoolVar(&showSummary, "summary", false, "write a human-readable summary to stderr")

	return cmd
}
