package config

import (
	"fmt"
	"os"
	"strings"

	"courseplan/internal/charset"
	"courseplan/internal/columns"
	"courseplan/internal/textutil"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEncoding()
	c.normalizeColumns()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("COURSEPLAN_OUTPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Output.Dir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("COURSEPLAN_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.TrimSpace(value)
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Inputs.Files, err = expandPaths(c.Inputs.Files); err != nil {
		return fmt.Errorf("inputs.files: %w", err)
	}
	if c.Inputs.SeedMajors, err = expandPath(strings.TrimSpace(c.Inputs.SeedMajors)); err != nil {
		return fmt.Errorf("inputs.seed_majors: %w", err)
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Output.Dir, err = expandPath(strings.TrimSpace(c.Output.Dir)); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	if c.Database.Path, err = expandPath(strings.TrimSpace(c.Database.Path)); err != nil {
		return fmt.Errorf("database.path: %w", err)
	}
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	if c.Inputs.MaxFileBytes == 0 {
		c.Inputs.MaxFileBytes = defaultMaxFileBytes
	}
	return nil
}

func (c *Config) normalizeEncoding() {
	c.Encoding.Default = charset.NormalizeLabel(c.Encoding.Default)
	if c.Encoding.Default == "" {
		c.Encoding.Default = charset.DefaultLabel
	}
	if c.Encoding.SampleBytes == 0 {
		c.Encoding.SampleBytes = charset.DefaultSampleBytes
	}
	if c.Encoding.Fallbacks == nil {
		c.Encoding.Fallbacks = append([]string(nil), charset.DefaultFallbacks...)
		return
	}
	labels := make([]string, 0, len(c.Encoding.Fallbacks))
	for _, label := range c.Encoding.Fallbacks {
		if normalized := charset.NormalizeLabel(label); normalized != "" {
			labels = append(labels, normalized)
		}
	}
	c.Encoding.Fallbacks = labels
}

func (c *Config) normalizeColumns() {
	defaults := columns.DefaultKeywords()
	c.Columns.Code = normalizeKeywords(c.Columns.Code, defaults.Code)
	c.Columns.Name = normalizeKeywords(c.Columns.Name, defaults.Name)
	c.Columns.Major = normalizeKeywords(c.Columns.Major, defaults.Major)
}

// normalizeKeywords trims and dedups by folded form. A missing list takes the
// defaults; an explicitly empty list stays empty.
func normalizeKeywords(values, fallback []string) []string {
	if values == nil {
		return append([]string(nil), fallback...)
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = textutil.TrimCell(value)
		if value == "" {
			continue
		}
		folded := textutil.Fold(value)
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		out = append(out, value)
	}
	return out
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
