package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"courseplan/internal/config"
	"courseplan/internal/extract"
	"courseplan/internal/logging"
	"courseplan/internal/textutil"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// logger builds a logger from cfg with the --log-* flags applied. A non-empty
// runID is attached to every record.
func (c *commandContext) logger(cfg *config.Config, runID string) (*slog.Logger, error) {
	effective := *cfg
	if level := strings.ToLower(flagValue(c.logLevelFlag)); level != "" {
		switch level {
		case "debug", "info", "warn", "error":
		default:
			return nil, fmt.Errorf("--log-level: unsupported value %q", level)
		}
		effective.Logging.Level = level
	}
	if format := strings.ToLower(flagValue(c.logFormatFlag)); format != "" {
		effective.Logging.Format = format
	}

	logger, err := logging.NewFromConfig(&effective)
	if err != nil {
		return nil, err
	}
	if runID != "" {
		logger = logger.With(logging.String(logging.FieldRunID, runID))
	}
	return logger, nil
}

func extractOptions(cfg *config.Config) extract.Options {
	return extract.Options{
		DefaultLabel: cfg.Encoding.Default,
		Fallbacks:    append([]string{}, cfg.Encoding.Fallbacks...),
		SampleBytes:  cfg.Encoding.SampleBytes,
		MaxFileBytes: cfg.Inputs.MaxFileBytes,
		Keywords:     cfg.Keywords(),
	}
}

// resolveInputs returns args as expanded paths, or the configured inputs
// when no args were given.
func resolveInputs(cfg *config.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		return append([]string(nil), cfg.Inputs.Files...), nil
	}
	runCfg := *cfg
	if err := runCfg.SetInputs(args); err != nil {
		return nil, err
	}
	return runCfg.Inputs.Files, nil
}

func resolvePathFlag(name, value, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	expanded, err := config.ExpandPath(value)
	if err != nil {
		return "", fmt.Errorf("--%s: %w", name, err)
	}
	return expanded, nil
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	return textutil.Ternary(value, "yes", "no")
}
