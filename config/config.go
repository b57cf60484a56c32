// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the optional hackasm.toml file that overrides the
// assembler's built-in defaults for variable allocation, reserved-name
// prefixes, the macro-expansion fixpoint cap, and verbose diagnostics.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors the [symbols], [macros], and [diagnostics] tables of
// hackasm.toml.
type Config struct {
	Symbols struct {
		VariableBase     int      `toml:"variable_base"`
		ReservedPrefixes []string `toml:"reserved_prefixes"`
	} `toml:"symbols"`

	Macros struct {
		MaxFixpointIterations int `toml:"max_fixpoint_iterations"`
	} `toml:"macros"`

	Diagnostics struct {
		Verbose bool `toml:"verbose"`
	} `toml:"diagnostics"`
}

// Default returns the hardcoded fallback configuration: variable allocation
// starting at 16, the "__" reserved prefix, an 8-pass fixpoint safety cap
// (the catalog itself never recurses past 3), and non-verbose output.
func Default() *Config {
	cfg := &Config{}
	cfg.Symbols.VariableBase = 16
	cfg.Symbols.ReservedPrefixes = []string{"__"}
	cfg.Macros.MaxFixpointIterations = 8
	cfg.Diagnostics.Verbose = false
	return cfg
}

// Load reads path and overlays it onto Default(). A missing file is not an
// error: Default() is returned unchanged. A present-but-malformed file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	return cfg, nil
}
