package testsupport

import (
	"path/filepath"
	"testing"

	"courseplan/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Output.Dir = filepath.Join(base, "output")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithInputs sets the input file list.
func WithInputs(files ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Inputs.Files = append([]string(nil), files...)
	}
}

// WithSeed sets the seed-majors file.
func WithSeed(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Inputs.SeedMajors = path
	}
}

// WithFallbacks replaces the fallback encoding list.
func WithFallbacks(labels ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Encoding.Fallbacks = append([]string{}, labels...)
	}
}

// WithDatabase points the catalog database at a file under the temp dir.
func WithDatabase() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Database.Path = filepath.Join(b.baseDir, "catalog.db")
	}
}
