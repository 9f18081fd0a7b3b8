// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

// Package config loads Shadowtrack settings from defaults, a YAML file and
// command-line flags, in that order of precedence.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/shadowtrack/shadowtrack/internal/xdg"
)

// Configuration keys.
const (
	KeyIntervalMinutes = "interval_minutes"
	KeyPollInterval    = "poll_interval"
	KeyLogFormat       = "log_format"
	KeyLogLevel        = "log_level"
	KeyLogFile         = "log_file"
	KeySaveDir         = "save_dir"
	KeyMetricsAddr     = "metrics_addr"
	KeyArchive         = "archive"
	KeySeed            = "seed"
)

// Default values.
const (
	DefaultIntervalMinutes uint64 = 10
	DefaultPollInterval           = 250 * time.Millisecond
	DefaultLogFormat              = "text"
	DefaultLogLevel               = "info"
	DefaultSaveDir                = "."
)

// Tables overrides the built-in roll tables for fresh sessions.
type Tables struct {
	Encounters    []string `koanf:"encounters"`
	AmbientEvents []string `koanf:"ambient_events"`
}

// Config holds all Shadowtrack settings.
type Config struct {
	IntervalMinutes uint64        `koanf:"interval_minutes"`
	PollInterval    time.Duration `koanf:"poll_interval"`
	LogFormat       string        `koanf:"log_format"`
	LogLevel        string        `koanf:"log_level"`
	LogFile         string        `koanf:"log_file"`
	SaveDir         string        `koanf:"save_dir"`
	MetricsAddr     string        `koanf:"metrics_addr"`
	Archive         string        `koanf:"archive"`
	Seed            uint64        `koanf:"seed"`
	Tables          Tables        `koanf:"tables"`
}

var defaults = map[string]any{
	KeyIntervalMinutes: DefaultIntervalMinutes,
	KeyPollInterval:    DefaultPollInterval,
	KeyLogFormat:       DefaultLogFormat,
	KeyLogLevel:        DefaultLogLevel,
	KeyLogFile:         "",
	KeySaveDir:         DefaultSaveDir,
	KeyMetricsAddr:     "",
	KeyArchive:         "",
	KeySeed:            uint64(0),
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		IntervalMinutes: DefaultIntervalMinutes,
		PollInterval:    DefaultPollInterval,
		LogFormat:       DefaultLogFormat,
		LogLevel:        DefaultLogLevel,
		SaveDir:         DefaultSaveDir,
	}
}

// Load builds the configuration. An explicit path must exist; with an empty
// path the XDG config file is used when present. Only flags the user set
// override file values. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	ko := koanf.New(".")
	for k, v := range defaults {
		if err := ko.Set(k, v); err != nil {
			return nil, oops.Code("CONFIG_INVALID").With("key", k).Wrap(err)
		}
	}

	explicit := path != ""
	if !explicit {
		path = xdg.ConfigFile()
	}
	if err := loadFile(ko, path, explicit); err != nil {
		return nil, err
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", ko, func(f *pflag.Flag) (string, any) {
			key := FlagKey(f.Name)
			if _, ok := defaults[key]; !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := ko.Load(provider, nil); err != nil {
			return nil, oops.Code("CONFIG_INVALID").Wrapf(err, "read flags")
		}
	}

	cfg := &Config{}
	if err := ko.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("path", path).Wrapf(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(ko *koanf.Koanf, path string, explicit bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return oops.Code("CONFIG_NOT_FOUND").With("path", path).Wrapf(err, "config file")
	}
	if err := ko.Load(file.Provider(path), yaml.Parser()); err != nil {
		return oops.Code("CONFIG_INVALID").With("path", path).Wrapf(err, "parse config file")
	}
	return nil
}

// FlagKey maps a flag name such as log-format to its config key.
func FlagKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.IntervalMinutes == 0 {
		return oops.Code("CONFIG_INVALID").With("key", KeyIntervalMinutes).Errorf("interval_minutes must be at least 1")
	}
	if c.PollInterval <= 0 {
		return oops.Code("CONFIG_INVALID").With("key", KeyPollInterval).
			Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").With("key", KeyLogFormat).
			Errorf("log_format must be 'json' or 'text', got %q", c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return oops.Code("CONFIG_INVALID").With("key", KeyLogLevel).
			Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}
