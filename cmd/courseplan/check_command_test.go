package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckPasses(t *testing.T) {
	env := setupCLITestEnv(t)
	files := writeSchedules(t, env.baseDir)

	out, _, err := runCLI(t, append([]string{"check"}, files...), env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "== Preflight ==")
	requireContains(t, out, "Input 1:")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "checks passed")
	if strings.Contains(out, ansiReset) {
		t.Fatalf("buffer output must not be colorized: %q", out)
	}
}

func TestCheckFailsOnMissingInput(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.baseDir, "missing.csv")

	out, _, err := runCLI(t, []string{"check", "--json", missing}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "1 check(s) failed") {
		t.Fatalf("expected one failed check, got %v", err)
	}
	var results []struct {
		Name   string `json:"name"`
		Passed bool   `json:"passed"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(results) == 0 || results[0].Name != "Input 1" || results[0].Passed {
		t.Fatalf("unexpected results: %+v", results)
	}
	requireContains(t, results[0].Detail, "does not exist")
}
