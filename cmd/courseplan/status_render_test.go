package main

import (
	"fmt"
	"strings"
	"testing"

	"courseplan/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Output directory", statusError, "missing", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Output directory:", "[ERROR] missing")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Encodings", statusOK, "", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, "[OK]"+ansiReset) {
		t.Fatalf("unexpected colored line %q", got)
	}
}

func TestPreflightLines(t *testing.T) {
	results := []preflight.Result{
		{Name: "Input 1", Passed: true, Detail: "a.csv (10 bytes)"},
		{Name: "Encodings", Detail: "unknown labels: klingon"},
	}
	lines := preflightLines(results, false)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[OK] a.csv (10 bytes)") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "[ERROR] unknown labels: klingon") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
	if !strings.Contains(lines[2], "[ERROR] 1 of 2 checks failed") {
		t.Fatalf("unexpected summary %q", lines[2])
	}

	empty := preflightLines(nil, false)
	if len(empty) != 1 || !strings.Contains(empty[0], "[INFO] no checks ran") {
		t.Fatalf("unexpected empty summary %v", empty)
	}
}

func TestRenderTablePadsRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, []columnAlignment{alignLeft, alignRight})
	if !strings.Contains(out, "only") || !strings.HasSuffix(out, "\n") {
		t.Fatalf("unexpected table %q", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatalf("expected empty table for no headers")
	}
}
