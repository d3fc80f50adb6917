package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pantry-ci/src/contracts"
	"pantry-ci/src/githubactions"
	"pantry-ci/src/pkgspec"
	"pantry-ci/src/summary"
)

func (a *app) platformCmd() *cobra.Command {
	var (
		platformFlag string
		showSummary  bool
	)

	cmd := &cobra.Command{
		Use:     "platform [package...]",
		Aliases: []string{"get-platform"},
		Short:   "Print the job-matrix parameters for $PLATFORM",
		Long: `Resolves $PLATFORM (or --platform) to its CI configuration and prints it
as key=value lines with JSON values:

  os, build-os, container, test-matrix, cache-set

The build runner grows when a listed package needs more cores. The lines are
also appended to $GITHUB_OUTPUT when that is set.

Example:
  PLATFORM=linux+x86-64 pantry-ci platform ziglang.org`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if platformFlag != "" {
				a.cfg.Platform = platformFlag
			}

			reqs, err := pkgspec.ParseAll(args)
			if err != nil {
				return err
			}

			name, err := a.cfg.RequirePlatform()
			if err != nil {
				return err
			}

			table, err := a.table()
			if err != nil {
				return err
			}

			rec, err := table.Resolve(name, reqs)
			if err != nil {
				return err
			}

			fields, err := rec.Fields()
			if err != nil {
				return err
			}
			text, err := rec.Format()
			if err != nil {
				return err
			}

			outputs := make(map[string]string, len(fields))
			for _, f := range fields {
				outputs[f.Key] = f.Value
			}
			err = a.publish(cmd, contracts.TopicPlatformResolved, name, contracts.PlatformResolved{
				RunInfo:    a.runInfo(),
				Platform:   name,
				Packages:   args,
				RunnerSize: table.RunnerSize(reqs),
				Outputs:    outputs,
			})
			if err != nil {
				return err
			}

			if _, err := fmt.Fprint(a.stdout, text); err != nil {
				return err
			}

			if a.cfg.GitHubOutput != "" {
				if err := githubactions.AppendOutput(a.cfg.GitHubOutput, text); err != nil {
					return err
				}
			}

			if showSummary {
				s, err := summary.RenderPlatform(name, rec, table.RunnerSize(reqs), summary.DefaultWidth)
				if err != nil {
					return err
				}
				fmt.Fprint(a.stderr, s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&platformFlag, "platform", "", "platform descriptor, e.g. linux+x86-64 (default $PLATFORM)")
	cmd.Flags().BoolVar(&showSummary, "summary", false, "write a human-readable summary to stderr")

	return cmd
}

func (a *app) platformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List the known platform descriptors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.table()
			if err != nil {
				return err
			}
			for _, name := range table.Platforms() {
				fmt.Fprintln(a.stdout, name)
			}
			return nil
		},
	}
}
