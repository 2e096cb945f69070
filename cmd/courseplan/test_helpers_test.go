package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"courseplan/internal/config"
	"courseplan/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("COURSEPLAN_OUTPUT_DIR", "")
	t.Setenv("COURSEPLAN_LOG_LEVEL", "")

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(base, "courseplan.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// writeSchedules writes two overlapping exports into dir.
func writeSchedules(t *testing.T, dir string) []string {
	t.Helper()
	first := testsupport.WriteCSV(t, dir, "fall.csv", "utf-8",
		"Course Code,Course Name,Major",
		`CS101,Intro to CS,"Computer Science,Math (2021)"`,
		"MA201,Linear Algebra,Math",
		"CS101,Intro CS,Computer Science",
	)
	second := testsupport.WriteCSV(t, dir, "spring.csv", "utf-8",
		"Course Code,Course Name,Major",
		"CS101,Intro to Computing,Physics",
		"PH100,Mechanics,Physics",
	)
	return []string{first, second}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
