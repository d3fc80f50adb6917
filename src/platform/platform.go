// Package platform maps a platform descriptor such as "linux+x86-64" to the
// CI job-matrix parameters used to build and test packages on it.
package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"pantry-ci/src/pkgspec"
)

var (
	ErrUnknownPlatform = errors.New("invalid platform description")
	ErrInvalidSize     = errors.New("invalid size")
)

// OS is a runner selector: either a single runner label or a list of labels
// that must all match (self-hosted runners).
type OS struct {
	label  string
	labels []string
}

// Label selects a runner by a single label.
func Label(l string) OS {
	return OS{label: l}
}

// Labels selects a runner by a set of labels.
func Labels(ls ...string) OS {
	return OS{labels: append([]string(nil), ls...)}
}

// IsZero reports whether no runner is selected.
func (o OS) IsZero() bool {
	return o.label == "" && o.labels == nil
}

func (o OS) String() string {
	if o.labels != nil {
		return fmt.Sprint(o.labels)
	}
	return o.label
}

// MarshalJSON encodes a single label as a string and a label set as an array.
func (o OS) MarshalJSON() ([]byte, error) {
	if o.labels != nil {
		return json.Marshal(o.labels)
	}
	return json.Marshal(o.label)
}

// MatrixEntry is one test job: a runner and, optionally, a container image.
type MatrixEntry struct {
	OS        OS     `json:"os"`
	Container string `json:"container,omitempty"`
}

// Record is the resolved configuration for one platform.
type Record struct {
	OS         OS
	BuildOS    OS
	Container  string
	TestMatrix []MatrixEntry
	CacheSet   string
}

// Definition describes a platform before package-dependent sizing.
type Definition struct {
	OS OS
	// BuildOS defaults to OS when zero.
	BuildOS OS
	// SizedBuild selects an Ubuntu build runner sized by RunnerSize.
	SizedBuild bool
	Container  string
	TestMatrix []MatrixEntry
	CacheSet   string
}

// Table holds the known platforms and the runner size exceptions.
type Table struct {
	platforms  map[string]Definition
	exceptions map[string]int
}

// NewTable creates a table from platform definitions and size exceptions.
func NewTable(platforms map[string]Definition, exceptions map[string]int) *Table {
	t := &Table{
		platforms:  make(map[string]Definition, len(platforms)),
		exceptions: make(map[string]int, len(exceptions)),
	}
	for k, v := range platforms {
		t.platforms[k] = v
	}
	for k, v := range exceptions {
		t.exceptions[k] = v
	}
	return t
}

// Platforms returns the known platform names, sorted.
func (t *Table) Platforms() []string {
	names := make([]string, 0, len(t.platforms))
	for name := range t.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exception returns the runner size required by project, if any.
func (t *Table) Exception(project string) (int, bool) {
	size, ok := t.exceptions[project]
	return size, ok
}

// Resolve computes the record for platform given the packages being built.
func (t *Table) Resolve(platform string, reqs []pkgspec.Requirement) (Record, error) {
	def, ok := t.platforms[platform]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}

	rec := Record{
		OS:         def.OS,
		BuildOS:    def.BuildOS,
		Container:  def.Container,
		TestMatrix: append([]MatrixEntry(nil), def.TestMatrix...),
		CacheSet:   def.CacheSet,
	}
	if rec.BuildOS.IsZero() {
		rec.BuildOS = def.OS
	}

	if def.SizedBuild {
		label, err := SizedUbuntu(t.RunnerSize(reqs))
		if err != nil {
			return Record{}, err
		}
		rec.BuildOS = Label(label)
	}

	return rec, nil
}

// RunnerSize is the largest core count any package needs, at least 2.
func (t *Table) RunnerSize(reqs []pkgspec.Requirement) int {
	size := DefaultSize
	for _, req := range reqs {
		if s, ok := t.exceptions[req.Project]; ok && s > size {
			size = s
		}
	}
	return size
}

// SizedUbuntu returns the Ubuntu runner label for a core count.
func SizedUbuntu(size int) (string, error) {
	switch size {
	case 2:
		return "ubuntu-latest", nil
	case 4, 8, 16:
		return fmt.Sprintf("ubuntu-latest-%d-cores", size), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
}

// Resolve resolves platform against the built-in table.
func Resolve(platform string, reqs []pkgspec.Requirement) (Record, error) {
	return DefaultTable().Resolve(platform, reqs)
}
