package config

import (
	"io/fs"
	"strconv"

	"github.com/arthur-debert/filemap/pkg/errors"
	"github.com/arthur-debert/filemap/pkg/output"
)

// Config is the effective filemap configuration
type Config struct {
	ReplaceDuplicates bool         `koanf:"replace_duplicates" toml:"replace_duplicates"`
	Excludes          []string     `koanf:"excludes" toml:"excludes"`
	Output            OutputConfig `koanf:"output" toml:"output"`
	Stage             StageConfig  `koanf:"stage" toml:"stage"`
}

// OutputConfig controls manifest rendering
type OutputConfig struct {
	Format    string `koanf:"format" toml:"format"`
	ShowWidth int    `koanf:"show_width" toml:"show_width"`
}

// StageConfig controls manifest staging
type StageConfig struct {
	DirMode string `koanf:"dir_mode" toml:"dir_mode"`
}

// OutputFormat parses Output.Format
func (c *Config) OutputFormat() (output.Format, error) {
	f, err := output.ParseFormat(c.Output.Format)
	if err != nil {
		return f, errors.Wrap(err, errors.ErrConfigParse, "invalid output.format")
	}
	return f, nil
}

// DirMode parses Stage.DirMode as an octal permission
func (c *Config) DirMode() (fs.FileMode, error) {
	mode, err := strconv.ParseUint(c.Stage.DirMode, 8, 32)
	if err != nil || mode > 0777 {
		return 0, errors.Newf(errors.ErrConfigParse, "invalid stage.dir_mode %q", c.Stage.DirMode).
			WithDetail("value", c.Stage.DirMode)
	}
	return fs.FileMode(mode), nil
}

// Validate checks values that decoding alone cannot
func (c *Config) Validate() error {
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	if c.Output.ShowWidth < 0 {
		return errors.Newf(errors.ErrConfigParse, "output.show_width must not be negative, got %d", c.Output.ShowWidth)
	}
	if _, err := c.DirMode(); err != nil {
		return err
	}
	return nil
}
