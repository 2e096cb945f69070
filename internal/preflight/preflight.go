package preflight

import (
	"fmt"
	"path/filepath"

	"courseplan/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every applicable check for cfg and the given input files.
// Optional paths are only checked when configured.
func RunAll(cfg *config.Config, files []string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for i, path := range files {
		results = append(results, CheckInputFile(fmt.Sprintf("Input %d", i+1), path, cfg.Inputs.MaxFileBytes))
	}
	if len(files) == 0 {
		results = append(results, Result{Name: "Inputs", Detail: "no input files configured"})
	}

	if cfg.Inputs.SeedMajors != "" {
		results = append(results, CheckInputFile("Seed majors", cfg.Inputs.SeedMajors, cfg.Inputs.MaxFileBytes))
	}

	labels := append([]string{cfg.Encoding.Default}, cfg.Encoding.Fallbacks...)
	results = append(results, CheckEncodingLabels("Encodings", labels))

	results = append(results, CheckCreatableDirectory("Output directory", cfg.Output.Dir))

	if cfg.Database.Path != "" {
		results = append(results, CheckCreatableDirectory("Database directory", filepath.Dir(cfg.Database.Path)))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
