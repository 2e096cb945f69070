package config

import (
	"errors"
	"fmt"
	"strings"

	"courseplan/internal/charset"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInputs(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateColumns(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return errors.New("output.dir must be set")
	}
	return c.validateLogging()
}

func (c *Config) validateInputs() error {
	if c.Inputs.MaxFileBytes <= 0 {
		return errors.New("inputs.max_file_bytes must be positive")
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if c.Encoding.SampleBytes <= 0 {
		return errors.New("encoding.sample_bytes must be positive")
	}
	if !charset.Known(c.Encoding.Default) {
		return fmt.Errorf("encoding.default: unknown label %q", c.Encoding.Default)
	}
	return nil
}

func (c *Config) validateColumns() error {
	if len(c.Columns.Code) == 0 {
		return errors.New("columns.code must list at least one keyword")
	}
	if len(c.Columns.Name) == 0 {
		return errors.New("columns.name must list at least one keyword")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
