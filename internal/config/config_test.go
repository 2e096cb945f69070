package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"courseplan/internal/charset"
	"courseplan/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("COURSEPLAN_OUTPUT_DIR", "")
	t.Setenv("COURSEPLAN_LOG_LEVEL", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "courseplan", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if !filepath.IsAbs(cfg.Output.Dir) || filepath.Base(cfg.Output.Dir) != "output" {
		t.Fatalf("unexpected output dir: %q", cfg.Output.Dir)
	}
	if cfg.Encoding.Default != "utf-8" {
		t.Fatalf("unexpected default encoding: %q", cfg.Encoding.Default)
	}
	if cfg.Encoding.SampleBytes != charset.DefaultSampleBytes {
		t.Fatalf("unexpected sample bytes: %d", cfg.Encoding.SampleBytes)
	}
	if !reflect.DeepEqual(cfg.Encoding.Fallbacks, charset.DefaultFallbacks) {
		t.Fatalf("unexpected fallbacks: %v", cfg.Encoding.Fallbacks)
	}
	if cfg.Inputs.MaxFileBytes != 64<<20 {
		t.Fatalf("unexpected max file bytes: %d", cfg.Inputs.MaxFileBytes)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Database.Path != "" {
		t.Fatalf("expected no database by default, got %q", cfg.Database.Path)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("COURSEPLAN_OUTPUT_DIR", "")
	t.Setenv("COURSEPLAN_LOG_LEVEL", "")

	dir := t.TempDir()
	configPath := filepath.Join(dir, "custom.toml")
	content := `
[inputs]
files = ["~/a.csv", "  ", "b.csv"]
seed_majors = "~/majors.txt"

[encoding]
default = "UTF_8"
fallbacks = ["GB18030", "", "Latin1"]

[columns]
code = [" Code ", "code", "编号"]
major = []

[output]
dir = "~/out"

[database]
path = "~/catalog.db"

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if len(cfg.Inputs.Files) != 2 || cfg.Inputs.Files[0] != filepath.Join(tempHome, "a.csv") {
		t.Fatalf("unexpected input files: %v", cfg.Inputs.Files)
	}
	if !filepath.IsAbs(cfg.Inputs.Files[1]) {
		t.Fatalf("expected relative input to be made absolute, got %q", cfg.Inputs.Files[1])
	}
	if cfg.Inputs.SeedMajors != filepath.Join(tempHome, "majors.txt") {
		t.Fatalf("unexpected seed path: %q", cfg.Inputs.SeedMajors)
	}
	if cfg.Encoding.Default != "utf-8" {
		t.Fatalf("expected normalized default label, got %q", cfg.Encoding.Default)
	}
	if want := []string{"gb18030", "latin1"}; !reflect.DeepEqual(cfg.Encoding.Fallbacks, want) {
		t.Fatalf("unexpected fallbacks: got %v want %v", cfg.Encoding.Fallbacks, want)
	}
	if want := []string{"Code", "编号"}; !reflect.DeepEqual(cfg.Columns.Code, want) {
		t.Fatalf("unexpected code keywords: got %v want %v", cfg.Columns.Code, want)
	}
	if len(cfg.Columns.Name) == 0 {
		t.Fatal("expected default name keywords when the key is absent")
	}
	if len(cfg.Columns.Major) != 0 {
		t.Fatalf("expected explicit empty major keywords to stay empty, got %v", cfg.Columns.Major)
	}
	if cfg.Output.Dir != filepath.Join(tempHome, "out") {
		t.Fatalf("unexpected output dir: %q", cfg.Output.Dir)
	}
	if cfg.Database.Path != filepath.Join(tempHome, "catalog.db") {
		t.Fatalf("unexpected database path: %q", cfg.Database.Path)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}

	keywords := cfg.Keywords()
	keywords.Code[0] = "mutated"
	if cfg.Columns.Code[0] != "Code" {
		t.Fatal("Keywords must return a copy")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(configPath, []byte("[output]\ndirectory = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to fail parsing")
	}
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	envOut := filepath.Join(t.TempDir(), "env-out")
	t.Setenv("COURSEPLAN_OUTPUT_DIR", envOut)
	t.Setenv("COURSEPLAN_LOG_LEVEL", "WARN")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[output]\ndir = \"/tmp/file-out\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Output.Dir != envOut {
		t.Errorf("expected output dir from env, got %q", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level from env, got %q", cfg.Logging.Level)
	}
}

func TestSetInputsExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg := config.Default()
	if err := cfg.SetInputs([]string{"~/x.csv", ""}); err != nil {
		t.Fatalf("SetInputs: %v", err)
	}
	if len(cfg.Inputs.Files) != 1 || cfg.Inputs.Files[0] != filepath.Join(tempHome, "x.csv") {
		t.Fatalf("unexpected inputs: %v", cfg.Inputs.Files)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[columns]") {
		t.Fatalf("sample config missing columns section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	defaults := config.Default()
	if !reflect.DeepEqual(cfg.Columns, defaults.Columns) {
		t.Fatalf("sample keywords drifted from defaults: %+v", cfg.Columns)
	}
	if !reflect.DeepEqual(cfg.Encoding.Fallbacks, defaults.Encoding.Fallbacks) {
		t.Fatalf("sample fallbacks drifted from defaults: %v", cfg.Encoding.Fallbacks)
	}

	t.Setenv("HOME", t.TempDir())
	t.Setenv("COURSEPLAN_OUTPUT_DIR", "")
	t.Setenv("COURSEPLAN_LOG_LEVEL", "")
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"sample bytes", func(c *config.Config) { c.Encoding.SampleBytes = 0 }},
		{"max file bytes", func(c *config.Config) { c.Inputs.MaxFileBytes = -1 }},
		{"unknown default label", func(c *config.Config) { c.Encoding.Default = "klingon-8" }},
		{"no code keywords", func(c *config.Config) { c.Columns.Code = nil }},
		{"no name keywords", func(c *config.Config) { c.Columns.Name = []string{} }},
		{"output dir", func(c *config.Config) { c.Output.Dir = " " }},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
