package platform

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is returned for override files that cannot be applied.
var ErrInvalidConfig = errors.New("invalid platform config")

// Overrides is the TOML form of platform table additions:
//
//	[exceptions]
//	"llvm.org" = 16
//
//	[[platforms]]
//	name = "linux+riscv64"
//	os = ["self-hosted", "linux", "RISCV64"]
//	cache_set = "linux"
type Overrides struct {
	Exceptions map[string]int     `toml:"exceptions"`
	Platforms  []PlatformOverride `toml:"platforms"`
}

// PlatformOverride adds or replaces one platform. OS values are either a
// string or an array of strings.
type PlatformOverride struct {
	Name      string                `toml:"name"`
	OS        any                   `toml:"os"`
	BuildOS   any                   `toml:"build_os"`
	Sized     bool                  `toml:"sized"`
	Container string                `toml:"container"`
	Matrix    []MatrixEntryOverride `toml:"test_matrix"`
	// CacheSet is a path, or "darwin"/"linux" for the built-in paths.
	CacheSet string `toml:"cache_set"`
}

// MatrixEntryOverride is one test job in an override file.
type MatrixEntryOverride struct {
	OS        any    `toml:"os"`
	Container string `toml:"container"`
}

// LoadOverrides reads an override file.
func LoadOverrides(path string) (*Overrides, error) {
	var o Overrides
	if _, err := toml.DecodeFile(path, &o); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return &o, nil
}

// DecodeOverrides parses override TOML from a string.
func DecodeOverrides(data string) (*Overrides, error) {
	var o Overrides
	if _, err := toml.Decode(data, &o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &o, nil
}

// Apply returns a copy of t with the overrides merged in. Exception sizes are
// not validated here; an unsupported size fails at Resolve time.
func (t *Table) Apply(o *Overrides) (*Table, error) {
	out := NewTable(t.platforms, t.exceptions)
	if o == nil {
		return out, nil
	}

	for project, size := range o.Exceptions {
		out.exceptions[project] = size
	}

	for i, p := range o.Platforms {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: platforms[%d] has no name", ErrInvalidConfig, i)
		}
		def, err := p.definition()
		if err != nil {
			return nil, fmt.Errorf("%w: platform %s: %v", ErrInvalidConfig, p.Name, err)
		}
		out.platforms[p.Name] = def
	}

	return out, nil
}

func (p PlatformOverride) definition() (Definition, error) {
	runner, err := decodeOS(p.OS)
	if err != nil {
		return Definition{}, fmt.Errorf("os: %v", err)
	}
	if runner.IsZero() {
		return Definition{}, errors.New("os is required")
	}

	def := Definition{
		OS:         runner,
		SizedBuild: p.Sized,
		Container:  p.Container,
		CacheSet:   p.CacheSet,
	}

	if p.BuildOS != nil {
		if def.BuildOS, err = decodeOS(p.BuildOS); err != nil {
			return Definition{}, fmt.Errorf("build_os: %v", err)
		}
	}

	switch p.CacheSet {
	case "darwin":
		def.CacheSet = DarwinCacheSet
	case "linux":
		def.CacheSet = LinuxCacheSet
	}

	for i, m := range p.Matrix {
		entry := MatrixEntry{OS: runner, Container: m.Container}
		if m.OS != nil {
			if entry.OS, err = decodeOS(m.OS); err != nil {
				return Definition{}, fmt.Errorf("test_matrix[%d].os: %v", i, err)
			}
		}
		def.TestMatrix = append(def.TestMatrix, entry)
	}
	if len(def.TestMatrix) == 0 {
		def.TestMatrix = []MatrixEntry{{OS: runner}}
	}

	return def, nil
}

func decodeOS(v any) (OS, error) {
	switch val := v.(type) {
	case nil:
		return OS{}, nil
	case string:
		return Label(val), nil
	case []any:
		labels := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return OS{}, fmt.Errorf("label %v is not a string", item)
			}
			labels = append(labels, s)
		}
		return Labels(labels...), nil
	default:
		return OS{}, fmt.Errorf("unsupported value %v", v)
	}
}
