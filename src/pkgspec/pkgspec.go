// Package pkgspec parses package identifiers of the form "project[constraint]",
// e.g. "deno.land", "deno.land^1.30", "ziglang.org@0.11" or "zlib.net>=1.2<2".
package pkgspec

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidRequirement is returned for identifiers that cannot be parsed.
var ErrInvalidRequirement = errors.New("invalid package identifier")

// operators are the characters that end the project name and begin the constraint.
const operators = "^=~<>@"

// adjacentClause finds a range clause that directly follows the previous one,
// as in ">=1<2", so the clauses can be joined with an explicit AND.
var adjacentClause = regexp.MustCompile(`([0-9A-Za-z*])([<>~^]|=[^=])`)

// Requirement is a project name plus the version constraint it must satisfy.
type Requirement struct {
	Project    string
	Constraint *semver.Constraints
	// Raw is the identifier as given.
	Raw string
}

// Parse parses a single package identifier. An identifier without a constraint
// accepts any version, prereleases included.
func Parse(s string) (Requirement, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Requirement{}, fmt.Errorf("%w: empty string", ErrInvalidRequirement)
	}

	i := strings.IndexAny(raw, operators)
	if i == 0 {
		return Requirement{}, fmt.Errorf("%w: %q has no project", ErrInvalidRequirement, raw)
	}
	project := raw
	if i > 0 {
		project = raw[:i]
	}
	if err := checkProject(project); err != nil {
		return Requirement{}, fmt.Errorf("%w: %q: %v", ErrInvalidRequirement, raw, err)
	}

	req := Requirement{Project: project, Raw: raw}
	if i < 0 {
		return req, nil
	}

	normalized, err := normalizeConstraint(raw[i:])
	if err != nil {
		return Requirement{}, fmt.Errorf("%w: %q: %v", ErrInvalidRequirement, raw, err)
	}

	c, err := semver.NewConstraint(normalized)
	if err != nil {
		return Requirement{}, fmt.Errorf("%w: %q: %v", ErrInvalidRequirement, raw, err)
	}
	req.Constraint = c
	return req, nil
}

// checkProject rejects names that would not map to a directory below the
// cellar root.
func checkProject(project string) error {
	if strings.ContainsRune(project, '\\') {
		return errors.New("backslash in project name")
	}
	if strings.HasPrefix(project, "/") {
		return errors.New("project name is an absolute path")
	}
	for _, seg := range strings.Split(project, "/") {
		switch seg {
		case "":
			return errors.New("empty path segment in project name")
		case ".", "..":
			return fmt.Errorf("%q path segment in project name", seg)
		}
	}
	return nil
}

// ParseAll parses every identifier, stopping at the first invalid one.
func ParseAll(args []string) ([]Requirement, error) {
	reqs := make([]Requirement, 0, len(args))
	for _, arg := range args {
		req, err := Parse(arg)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Satisfies reports whether v meets the requirement's constraint.
func (r Requirement) Satisfies(v *semver.Version) bool {
	if v == nil {
		return false
	}
	if r.Constraint == nil {
		return true
	}
	return r.Constraint.Check(v)
}

func (r Requirement) String() string {
	if r.Raw != "" {
		return r.Raw
	}
	return r.Project
}

// normalizeConstraint rewrites the "@" shorthand and unseparated clause lists
// into a form semver.NewConstraint understands.
//
//	@1      -> ^1
//	@1.2    -> ~1.2
//	@1.2.3  -> =1.2.3
//	>=1<2   -> >=1,<2
func normalizeConstraint(c string) (string, error) {
	if strings.HasPrefix(c, "@") {
		body := strings.TrimPrefix(c, "@")
		if body == "" {
			return "", errors.New("empty version after @")
		}
		switch strings.Count(body, ".") {
		case 0:
			return "^" + body, nil
		case 1:
			return "~" + body, nil
		default:
			return "=" + body, nil
		}
	}
	return adjacentClause.ReplaceAllString(c, "$1,$2"), nil
}
