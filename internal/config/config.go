// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the rtlsim command line configuration file.
//
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// DefaultFile is the configuration file looked up in the working directory.
//
const DefaultFile = "rtlsim.toml"

// Sim holds simulation settings.
//
type Sim struct {
	MaxTime     uint64 `toml:"max_time"`
	ClockPeriod uint64 `toml:"clock_period"`
	Strict      bool   `toml:"strict"`
}

// Log holds logging settings.
//
type Log struct {
	Level string `toml:"level"`
}

// Trace holds value change trace settings.
//
type Trace struct {
	Output  string   `toml:"output"`
	Signals []string `toml:"signals"`
}

// Config is the configuration of the rtlsim command.
//
type Config struct {
	Sim   Sim   `toml:"sim"`
	Log   Log   `toml:"log"`
	Trace Trace `toml:"trace"`
}

// Default returns the default configuration.
//
func Default() Config {
	return Config{
		Sim: Sim{MaxTime: 1000, ClockPeriod: 10},
		Log: Log{Level: "info"},
	}
}

// Load reads the configuration file at path on top of the default
// configuration. If path is empty, DefaultFile is used if it exists.
//
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return cfg, nil
		}
		path = DefaultFile
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s: failed to parse TOML", path)
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return Config{}, errors.Errorf("%s: unknown keys %s", path, strings.Join(names, ", "))
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Validate checks the configuration values.
//
func (c *Config) Validate() error {
	if c.Sim.ClockPeriod < 2 || c.Sim.ClockPeriod%2 != 0 {
		return errors.Errorf("sim.clock_period must be an even number >= 2, got %d", c.Sim.ClockPeriod)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts the configured level to a slog.Level.
//
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, errors.Errorf("invalid log level %q", l.Level)
	}
	return lvl, nil
}
