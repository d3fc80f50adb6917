package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func lookup(env map[string]string) func(string) string {
	return func(k string) string { return env[k] }
}

func TestFromLookup(t *testing.T) {
	cfg := FromLookup(lookup(map[string]string{
		"INVERT":            "1",
		"GITHUB_ACTIONS":    "true",
		"GITHUB_OUTPUT":     "/tmp/out",
		"PLATFORM":          " linux+x86-64 ",
		"TEA_PREFIX":        "/opt/tea",
		"CELLAR_DSN":        "postgres://localhost/cellar",
		"REDPANDA_BROKERS":  "a:9092, b:9092,,",
		"PANTRY_CONFIG":     "pantry.toml",
		"GITHUB_RUN_ID":     "42",
		"GITHUB_REPOSITORY": "teaxyz/pantry",
	}))

	if !cfg.Invert {
		t.Error("Invert = false, want true")
	}
	if !cfg.GitHubActions {
		t.Error("GitHubActions = false, want true")
	}
	if cfg.GitHubOutput != "/tmp/out" {
		t.Errorf("GitHubOutput = %q", cfg.GitHubOutput)
	}
	if cfg.Platform != "linux+x86-64" {
		t.Errorf("Platform = %q", cfg.Platform)
	}
	if cfg.TeaPrefix != "/opt/tea" {
		t.Errorf("TeaPrefix = %q", cfg.TeaPrefix)
	}
	if cfg.CellarDSN != "postgres://localhost/cellar" {
		t.Errorf("CellarDSN = %q", cfg.CellarDSN)
	}
	if len(cfg.RedpandaBrokers) != 2 || cfg.RedpandaBrokers[0] != "a:9092" || cfg.RedpandaBrokers[1] != "b:9092" {
		t.Errorf("RedpandaBrokers = %v", cfg.RedpandaBrokers)
	}
	if cfg.OverridesFile != "pantry.toml" {
		t.Errorf("OverridesFile = %q", cfg.OverridesFile)
	}
	if cfg.RunID != "42" || cfg.Repository != "teaxyz/pantry" {
		t.Errorf("RunID/Repository = %q/%q", cfg.RunID, cfg.Repository)
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg := FromLookup(lookup(map[string]string{"HOME": "/home/ci"}))

	if cfg.Invert || cfg.GitHubActions {
		t.Errorf("unexpected flags set: %+v", cfg)
	}
	if want := filepath.Join("/home/ci", ".tea"); cfg.TeaPrefix != want {
		t.Errorf("TeaPrefix = %q, want %q", cfg.TeaPrefix, want)
	}
	if cfg.RedpandaBrokers != nil {
		t.Errorf("RedpandaBrokers = %v, want nil", cfg.RedpandaBrokers)
	}
}

func TestRequirePlatform(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.RequirePlatform(); !errors.Is(err, ErrPlatformNotSet) {
		t.Errorf("RequirePlatform() error = %v, want ErrPlatformNotSet", err)
	}

	cfg.Platform = "darwin+aarch64"
	got, err := cfg.RequirePlatform()
	if err != nil || got != "darwin+aarch64" {
		t.Errorf("RequirePlatform() = %q, %v", got, err)
	}
}

func TestParseFlag(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", false},
		{"  ", false},
		{"false", false},
		{"0", false},
		{"true", true},
		{"1", true},
		{"yes", true},
	}

	for _, tt := range tests {
		if got := ParseFlag(tt.raw); got != tt.want {
			t.Errorf("ParseFlag(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestLoadFromEnv(t *testing.T) {
	// Run in an empty directory so no stray .env is picked up.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	t.Setenv("PLATFORM", "linux+aarch64")
	t.Setenv("INVERT", "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() unexpected error: %v", err)
	}
	if cfg.Platform != "linux+aarch64" {
		t.Errorf("Platform = %q", cfg.Platform)
	}
	if cfg.Invert {
		t.Error("Invert = true, want false")
	}
}

func TestLoadFromEnv_DotEnv(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PANTRY_CONFIG=from-dotenv.toml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	// godotenv sets the variable for the process; restore it afterwards.
	t.Setenv("PANTRY_CONFIG", "")
	os.Unsetenv("PANTRY_CONFIG")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() unexpected error: %v", err)
	}
	if cfg.OverridesFile != "from-dotenv.toml" {
		t.Errorf("OverridesFile = %q, want from-dotenv.toml", cfg.OverridesFile)
	}
}
