package config

import (
	"courseplan/internal/charset"
	"courseplan/internal/columns"
)

const (
	defaultConfigPath   = "~/.config/courseplan/config.toml"
	projectConfigName   = "courseplan.toml"
	defaultOutputDir    = "output"
	defaultMaxFileBytes = 64 << 20
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	keywords := columns.DefaultKeywords()
	return Config{
		Inputs: Inputs{
			MaxFileBytes: defaultMaxFileBytes,
		},
		Encoding: Encoding{
			Default:     charset.DefaultLabel,
			SampleBytes: charset.DefaultSampleBytes,
			Fallbacks:   append([]string(nil), charset.DefaultFallbacks...),
		},
		Columns: Columns{
			Code:  keywords.Code,
			Name:  keywords.Name,
			Major: keywords.Major,
		},
		Output: Output{
			Dir: defaultOutputDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
