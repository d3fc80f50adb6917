// Package filter narrows a package list by whether each package is installed.
package filter

import (
	"context"
	"fmt"
	"strings"

	"pantry-ci/src/cellar"
	"pantry-ci/src/githubactions"
	"pantry-ci/src/logger"
	"pantry-ci/src/pkgspec"
)

// OutputName is the step output the GitHub Actions format sets.
const OutputName = "pkgs"

// Filter returns the projects of reqs whose installed state equals invert:
// with invert false it keeps what is missing, with invert true what is
// installed. Lookups run one at a time in input order, and input order and
// duplicates are preserved.
func Filter(ctx context.Context, c cellar.Cellar, reqs []pkgspec.Requirement, invert bool, log logger.Logger) ([]string, error) {
	kept := make([]string, 0, len(reqs))
	for _, req := range reqs {
		inst, err := c.Has(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("cellar lookup for %s failed: %w", req.Raw, err)
		}

		installed := inst != nil
		if installed {
			log.Debug("%s: installed %s", req.Raw, inst.Version)
		} else {
			log.Debug("%s: not installed", req.Raw)
		}

		if installed == invert {
			kept = append(kept, req.Project)
		}
	}
	return kept, nil
}

// Format renders the kept projects for stdout: a set-output workflow command
// inside GitHub Actions, otherwise one project per line.
func Format(projects []string, githubActions bool) string {
	if githubActions {
		return githubactions.SetOutputCommand(OutputName, strings.Join(projects, " ")) + "\n"
	}
	return strings.Join(projects, "\n") + "\n"
}

// OutputFileEntry is the line appended to $GITHUB_OUTPUT.
func OutputFileEntry(projects []string) string {
	return githubactions.OutputEntry(OutputName, strings.Join(projects, " "))
}
