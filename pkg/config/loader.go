package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/filemap/pkg/errors"
	"github.com/arthur-debert/filemap/pkg/logging"
	"github.com/arthur-debert/filemap/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable the loader reads
const EnvPrefix = "FILEMAP_"

// LoadOptions selects the layers Load reads
type LoadOptions struct {
	// ConfigFile replaces the user config file when set; it must exist
	ConfigFile string

	// WorkDir is searched for the project file, "." when empty
	WorkDir string

	// Overrides are applied last, keyed by dotted path
	Overrides map[string]interface{}
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		if err := loadFile(k, opts.ConfigFile); err != nil {
			return nil, err
		}
	} else if err := loadOptionalFile(k, paths.UserConfigPath()); err != nil {
		return nil, err
	}

	// 3. Project config
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	if err := loadOptionalFile(k, paths.ProjectConfigPath(workDir)); err != nil {
		return nil, err
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Bool("replaceDuplicates", cfg.ReplaceDuplicates).
		Strs("excludes", cfg.Excludes).
		Str("format", cfg.Output.Format).
		Msg("Configuration loaded")
	return &cfg, nil
}

// Default returns the embedded defaults alone
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal defaults")
	}
	return &cfg, nil
}

// envKey maps FILEMAP_OUTPUT__SHOW_WIDTH to output.show_width
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func loadOptionalFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot read %s", path).
			WithDetail("path", path)
	}
	return loadFile(k, path)
}

func loadFile(k *koanf.Koanf, path string) error {
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Loading config file")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}
