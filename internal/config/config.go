package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultStoreURL is the store the form was built against.
const DefaultStoreURL = "https://ddh-front-default-rtdb.europe-west1.firebasedatabase.app"

// Config holds every setting of the form client.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Log     LogConfig     `mapstructure:"log"`
	Output  OutputConfig  `mapstructure:"output"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// StoreConfig locates the remote store serving both endpoints.
type StoreConfig struct {
	URL string `mapstructure:"url"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console, json
}

// OutputConfig controls how the form is rendered.
type OutputConfig struct {
	Format string `mapstructure:"format"` // text, json
}

// MetricsConfig controls the optional metrics dump.
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"store-url":    "store.url",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"format":       "output.format",
	"metrics-file": "metrics.file",
}

// Load reads defaults, then the config file (configPath, or userform.yaml
// in . or $HOME/.userform when empty), then USERFORM_* environment
// variables, then any flags set in fs. fs may be nil.
func Load(configPath string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("userform")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.userform")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("USERFORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling defaults: %w", err)
	}
	return &cfg, nil
}

// Validate returns an error if any setting is out of range.
func (c *Config) Validate() error {
	if c.Store.URL == "" {
		return fmt.Errorf("store.url must not be empty")
	}
	if !strings.HasPrefix(c.Store.URL, "http://") && !strings.HasPrefix(c.Store.URL, "https://") {
		return fmt.Errorf("store.url must be an http(s) URL, got %q", c.Store.URL)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("output.format must be text or json, got %q", c.Output.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.url", DefaultStoreURL)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("output.format", "text")
	v.SetDefault("metrics.file", "")
}
