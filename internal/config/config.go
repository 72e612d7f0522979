package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cvri18n/internal/errors"
	"cvri18n/internal/paths"
)

// FileName is the config file name looked up in the current directory,
// without extension (.toml, .json and .yaml are all accepted).
const FileName = ".cvr-i18n"

// EnvPrefix prefixes environment overrides, e.g. CVR_I18N_BASE.
const EnvPrefix = "CVR_I18N"

// Config is the effective cvr-i18n configuration.
type Config struct {
	Directory           string        `json:"directory" mapstructure:"directory" toml:"directory"`
	DirectoryCandidates []string      `json:"directory_candidates" mapstructure:"directory_candidates" toml:"directory_candidates"`
	Base                string        `json:"base" mapstructure:"base" toml:"base"`
	Export              string        `json:"export" mapstructure:"export" toml:"export"`
	Exclude             []string      `json:"exclude" mapstructure:"exclude" toml:"exclude"`
	Format              string        `json:"format" mapstructure:"format" toml:"format"`
	Backup              bool          `json:"backup" mapstructure:"backup" toml:"backup"`
	Logging             LoggingConfig `json:"logging" mapstructure:"logging" toml:"logging"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level" toml:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DirectoryCandidates: append([]string(nil), paths.DefaultCandidates...),
		Base:                paths.DefaultBase,
		Exclude:             []string{},
		Format:              "human",
		Logging: LoggingConfig{
			Level: "",
		},
	}
}

// flagKeys maps config keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"directory": "directory",
	"base":      "base",
	"export":    "export",
	"exclude":   "exclude",
	"format":    "format",
	"backup":    "backup",
}

// LoadResult contains the loaded config and metadata about how it was loaded
type LoadResult struct {
	Config     *Config
	ConfigPath string   // Path to config file (empty if none was found)
	Warnings   []string // Unknown keys and similar non-fatal problems
}

// Load builds the effective configuration. Precedence: changed flags >
// CVR_I18N_* environment variables > config file > defaults. An explicit
// configFile must exist; otherwise .cvr-i18n.* in the current directory is
// optional. flags may be nil.
func Load(fs afero.Fs, configFile string, flags *pflag.FlagSet) (*LoadResult, error) {
	v := viper.New()
	v.SetFs(fs)

	defaults := DefaultConfig()
	v.SetDefault("directory", defaults.Directory)
	v.SetDefault("directory_candidates", defaults.DirectoryCandidates)
	v.SetDefault("base", defaults.Base)
	v.SetDefault("export", defaults.Export)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("backup", defaults.Backup)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.New(errors.InternalError, "", "bind flag "+name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
	}

	result := &LoadResult{}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, errors.New(errors.ConfigInvalid, configFile, "read config", err)
		}
	} else {
		result.ConfigPath = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New(errors.ConfigInvalid, result.ConfigPath, "decode config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.ConfigInvalid, result.ConfigPath, "invalid config", err)
	}
	result.Config = &cfg

	if strings.EqualFold(filepath.Ext(result.ConfigPath), ".toml") {
		warnings, err := unknownTOMLKeys(fs, result.ConfigPath)
		if err != nil {
			return nil, err
		}
		result.Warnings = warnings
	}

	return result, nil
}

// unknownTOMLKeys decodes a TOML config strictly and lists keys that do not
// map onto Config. viper ignores them silently, which hides typos.
func unknownTOMLKeys(fs afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid, path, "read config", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid, path, "parse config", err)
	}

	var warnings []string
	for _, key := range md.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("unknown config key %q", key.String()))
	}
	sort.Strings(warnings)
	return warnings, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Format {
	case "human", "json", "yaml":
	default:
		return &ConfigError{Field: "format", Message: "unsupported format " + c.Format + " (use: human, json, yaml)"}
	}
	if c.Base == "" {
		return &ConfigError{Field: "base", Message: "must not be empty"}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "unsupported level " + c.Logging.Level}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
