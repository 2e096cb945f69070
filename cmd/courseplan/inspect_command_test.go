package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"courseplan/internal/testsupport"
)

func TestInspectReportsColumns(t *testing.T) {
	env := setupCLITestEnv(t)
	files := writeSchedules(t, env.baseDir)

	out, _, err := runCLI(t, []string{"inspect", files[0]}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "File: "+files[0])
	requireContains(t, out, "Columns:  code=0 name=1 major=2")
	requireContains(t, out, "success")

	entries, err := os.ReadDir(env.cfg.Output.Dir)
	if err == nil && len(entries) > 0 {
		t.Fatalf("inspect must not write output, found %d entries", len(entries))
	}
}

func TestInspectJSONCoversFailures(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFallbacks())
	noHeader := testsupport.WriteFile(t, env.baseDir, "bad.csv", "a,b,c\n1,2,3\n")
	missing := filepath.Join(env.baseDir, "gone.csv")

	out, _, err := runCLI(t, []string{"inspect", "--json", noHeader, missing}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var entries []struct {
		Path     string `json:"path"`
		Encoding string `json:"encoding"`
		Error    string `json:"error"`
		Attempts []struct {
			Result string `json:"result"`
		} `json:"attempts"`
	}
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Encoding != "" || len(entries[0].Attempts) == 0 {
		t.Fatalf("expected failed attempts for %s: %+v", noHeader, entries[0])
	}
	for _, a := range entries[0].Attempts {
		if a.Result == "success" {
			t.Fatalf("no candidate should succeed: %+v", entries[0].Attempts)
		}
	}
	if entries[1].Error == "" {
		t.Fatalf("expected read error for missing file")
	}
}
