package platform

// DefaultSize is the core count of the standard hosted runner.
const DefaultSize = 2

const (
	DarwinCacheSet = "$HOME/Library/Caches/deno/deps/https/"
	LinuxCacheSet  = "$HOME/.cache/deno/deps/https/"

	InfuserImage = "ghcr.io/teaxyz/infuser:latest"
)

// DefaultExceptions lists projects that need a larger build runner.
func DefaultExceptions() map[string]int {
	return map[string]int{
		"deno.land":   4,
		"ziglang.org": 8,
	}
}

// DefaultPlatforms returns the built-in platform definitions.
func DefaultPlatforms() map[string]Definition {
	// Hosted macOS and Ubuntu runners until the self-hosted x86-64 runners
	// are reliable again.
	macos := Label("macos-11")
	ubuntu := Label("ubuntu-latest")
	darwinARM := Labels("self-hosted", "macOS", "ARM64")
	linuxARM := Labels("self-hosted", "linux", "ARM64")

	return map[string]Definition{
		"darwin+x86-64": {
			OS:         macos,
			TestMatrix: []MatrixEntry{{OS: macos}},
			CacheSet:   DarwinCacheSet,
		},
		"darwin+aarch64": {
			OS:         darwinARM,
			TestMatrix: []MatrixEntry{{OS: darwinARM}},
			CacheSet:   DarwinCacheSet,
		},
		"linux+aarch64": {
			OS:         linuxARM,
			TestMatrix: []MatrixEntry{{OS: linuxARM}},
			CacheSet:   LinuxCacheSet,
		},
		"linux+x86-64": {
			OS:         ubuntu,
			SizedBuild: true,
			Container:  InfuserImage,
			TestMatrix: []MatrixEntry{
				{OS: ubuntu},
				{OS: ubuntu, Container: InfuserImage},
				{OS: ubuntu, Container: "debian:buster-slim"},
			},
			CacheSet: LinuxCacheSet,
		},
	}
}

// DefaultTable returns a table of the built-in platforms and exceptions.
func DefaultTable() *Table {
	return NewTable(DefaultPlatforms(), DefaultExceptions())
}
