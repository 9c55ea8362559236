package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into the settings
const EnvPrefix = "FSORG_"

// Config holds the resolved settings for one invocation
type Config struct {
	Source      string          `koanf:"source"`
	Destination string          `koanf:"destination"`
	RulesFile   string          `koanf:"rules_file"`
	Execution   ExecutionConfig `koanf:"execution"`
	Journal     JournalConfig   `koanf:"journal"`
	Watch       WatchConfig     `koanf:"watch"`
	Output      OutputConfig    `koanf:"output"`
}

// ExecutionConfig controls how planned moves are carried out
type ExecutionConfig struct {
	VerifyCopy bool   `koanf:"verify_copy"`
	DirMode    string `koanf:"dir_mode"`
}

// JournalConfig controls the sqlite run journal
type JournalConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// WatchConfig controls watch mode
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format string `koanf:"format"`
}

// LoadOptions selects the settings file. An empty SettingsFile skips the
// file layer; a missing file is only an error when Required is set.
type LoadOptions struct {
	SettingsFile string
	Required     bool
}

// Load builds the configuration from defaults, the settings file and the
// environment, in that order of precedence (lowest first).
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Settings file
	if opts.SettingsFile != "" {
		if _, err := os.Stat(opts.SettingsFile); err == nil {
			if err := k.Load(file.Provider(opts.SettingsFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse,
					"failed to load settings from %s", opts.SettingsFile)
			}
		} else if opts.Required {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad,
				"settings file %s is not readable", opts.SettingsFile)
		}
	}

	// 3. Environment, FSORG_EXECUTION__VERIFY_COPY -> execution.verify_copy
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if _, err := cfg.DirMode(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DirMode parses execution.dir_mode as an octal permission
func (c *Config) DirMode() (os.FileMode, error) {
	raw := c.Execution.DirMode
	if raw == "" {
		return 0755, nil
	}
	mode, err := strconv.ParseUint(raw, 8, 32)
	if err != nil || mode > 0777 {
		return 0, errors.Newf(errors.ErrConfigParse, "execution.dir_mode %q is not an octal permission", raw)
	}
	return os.FileMode(mode), nil
}

// String renders the config for debug logging
func (c *Config) String() string {
	return fmt.Sprintf("source=%s destination=%s rules=%s verify_copy=%t journal=%t format=%s",
		c.Source, c.Destination, c.RulesFile, c.Execution.VerifyCopy, c.Journal.Enabled, c.Output.Format)
}
