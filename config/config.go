// Package config loads the diffkit configuration.
//
// Settings are read, in order of precedence, from command line flags bound to the viper instance,
// DIFFKIT_* environment variables, a .diffkit.{yaml,json,toml} file in the working directory or
// in $HOME, and the defaults below.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"znkr.io/diffkit/diff"
)

const appName = "diffkit"

// Formats lists the supported output formats.
var Formats = []string{"unified", "context", "normal", "inline"}

// Config is the diffkit configuration.
type Config struct {
	Engine          string `mapstructure:"engine"`
	Format          string `mapstructure:"format"`
	Context         int    `mapstructure:"context"` // -1 selects the default of the format
	Color           string `mapstructure:"color"`   // auto, always or never
	IndentHeuristic bool   `mapstructure:"indent_heuristic"`

	Inline Inline `mapstructure:"inline"`
	Merge  Merge  `mapstructure:"merge"`
	Ignore Ignore `mapstructure:"ignore"`
}

// Inline configures the inline format.
type Inline struct {
	SplitCharacters bool   `mapstructure:"split_characters"`
	InsPrefix       string `mapstructure:"ins_prefix"`
	InsSuffix       string `mapstructure:"ins_suffix"`
	DelPrefix       string `mapstructure:"del_prefix"`
	DelSuffix       string `mapstructure:"del_suffix"`
}

// Merge configures three-way merges.
type Merge struct {
	Label1 string `mapstructure:"label1"`
	Label2 string `mapstructure:"label2"`
	Style  string `mapstructure:"style"` // merge or diff3
}

// Ignore selects differences that are not reported.
type Ignore struct {
	Case       bool `mapstructure:"case"`
	Space      bool `mapstructure:"space"`
	TrailingCR bool `mapstructure:"trailing_cr"` // strip carriage returns before comparing
}

// Load reads the configuration into v and returns it. Flags should be bound to v before calling
// Load.
func Load(v *viper.Viper, workingDir string) (*Config, error) {
	configure(v, workingDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the config file doesn't exist
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func configure(v *viper.Viper, workingDir string) {
	v.SetConfigName("." + appName)
	v.AddConfigPath(workingDir)
	v.AddConfigPath("$HOME")
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// setDefaults sets a default for every key, environment variables are only picked up for known
// keys.
func setDefaults(v *viper.Viper) {
	v.SetDefault("engine", diff.Auto)
	v.SetDefault("format", "unified")
	v.SetDefault("context", -1)
	v.SetDefault("color", "auto")
	v.SetDefault("indent_heuristic", false)
	v.SetDefault("inline.split_characters", false)
	v.SetDefault("inline.ins_prefix", "<ins>")
	v.SetDefault("inline.ins_suffix", "</ins>")
	v.SetDefault("inline.del_prefix", "<del>")
	v.SetDefault("inline.del_suffix", "</del>")
	v.SetDefault("merge.label1", "")
	v.SetDefault("merge.label2", "")
	v.SetDefault("merge.style", "merge")
	v.SetDefault("ignore.case", false)
	v.SetDefault("ignore.space", false)
	v.SetDefault("ignore.trailing_cr", false)
}

// Validate checks that all values are in range.
func (c *Config) Validate() error {
	if c.Engine != diff.Auto && !slices.Contains(diff.Engines(), c.Engine) {
		return fmt.Errorf("unknown engine %q, available: %s", c.Engine, strings.Join(diff.Engines(), ", "))
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("unknown format %q, available: %s", c.Format, strings.Join(Formats, ", "))
	}
	if c.Context < -1 {
		return fmt.Errorf("invalid context %d", c.Context)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q, must be auto, always or never", c.Color)
	}
	switch c.Merge.Style {
	case "merge", "diff3":
	default:
		return fmt.Errorf("invalid merge style %q, must be merge or diff3", c.Merge.Style)
	}
	return nil
}
