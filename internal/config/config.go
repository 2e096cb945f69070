package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"courseplan/internal/columns"
	"courseplan/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Inputs lists the schedule exports to reconcile.
type Inputs struct {
	Files        []string `toml:"files"`
	SeedMajors   string   `toml:"seed_majors"`
	MaxFileBytes int64    `toml:"max_file_bytes"`
}

// Encoding controls charset detection and the fallback candidates.
type Encoding struct {
	Default     string   `toml:"default"`
	SampleBytes int      `toml:"sample_bytes"`
	Fallbacks   []string `toml:"fallbacks"`
}

// Columns holds the header keywords for each column category.
type Columns struct {
	Code  []string `toml:"code"`
	Name  []string `toml:"name"`
	Major []string `toml:"major"`
}

// Output contains the destination of generated files.
type Output struct {
	Dir string `toml:"dir"`
}

// Database configures the optional SQLite apply step.
type Database struct {
	Path string `toml:"path"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config is the root configuration document.
type Config struct {
	Inputs   Inputs   `toml:"inputs"`
	Encoding Encoding `toml:"encoding"`
	Columns  Columns  `toml:"columns"`
	Output   Output   `toml:"output"`
	Database Database `toml:"database"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Keywords converts the [columns] section into a column keyword set.
func (c *Config) Keywords() columns.Keywords {
	return columns.Keywords{
		Code:  append([]string(nil), c.Columns.Code...),
		Name:  append([]string(nil), c.Columns.Name...),
		Major: append([]string(nil), c.Columns.Major...),
	}
}

// SetInputs replaces the configured input files, expanding each path.
func (c *Config) SetInputs(files []string) error {
	expanded, err := expandPaths(files)
	if err != nil {
		return fmt.Errorf("inputs.files: %w", err)
	}
	c.Inputs.Files = expanded
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPaths(values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		expanded, err := expandPath(value)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := fileutil.WriteAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
