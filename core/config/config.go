/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads the optional tabula.yaml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/google/tabula/core/logging"
	"github.com/google/tabula/core/measure"
	"github.com/google/tabula/core/tables"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the optional tabula.yaml configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Grid   GridConfig   `yaml:"grid"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr             string  `yaml:"addr,omitempty"`
	SessionCacheSize int     `yaml:"session_cache_size,omitempty"`
	ActionsPerSecond float64 `yaml:"actions_per_second,omitempty"`
	Burst            int     `yaml:"burst,omitempty"`
}

// GridConfig contains grid limits and the text measurer.
type GridConfig struct {
	MinColumnWidth float64       `yaml:"min_column_width,omitempty"`
	MaxColumnWidth float64       `yaml:"max_column_width,omitempty"`
	CellPadding    float64       `yaml:"cell_padding,omitempty"`
	ClickDelay     time.Duration `yaml:"click_delay,omitempty"`
	HoverGrace     time.Duration `yaml:"hover_grace,omitempty"`
	// Measurer is "font" (7x13 bitmap font) or "cells" (terminal cells).
	Measurer string `yaml:"measurer,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	l := tables.DefaultLimits()
	return &Config{
		Server: ServerConfig{
			Addr:             ":8097",
			SessionCacheSize: 256,
			ActionsPerSecond: 50,
			Burst:            100,
		},
		Grid: GridConfig{
			MinColumnWidth: l.MinColumnWidth,
			MaxColumnWidth: l.MaxColumnWidth,
			CellPadding:    l.CellPadding,
			ClickDelay:     l.ClickDelay,
			HoverGrace:     l.HoverGrace,
			Measurer:       "font",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// LoadOptional reads the file at path if present. Values missing from the
// file keep their defaults.
func LoadOptional(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the grid cannot work with.
func (c *Config) Validate() error {
	g := c.Grid
	switch {
	case g.MinColumnWidth <= 0:
		return fmt.Errorf("%w: grid.min_column_width must be positive", ErrInvalid)
	case g.MaxColumnWidth <= 0:
		return fmt.Errorf("%w: grid.max_column_width must be positive", ErrInvalid)
	case g.MinColumnWidth > g.MaxColumnWidth:
		return fmt.Errorf("%w: grid.min_column_width %v exceeds max_column_width %v",
			ErrInvalid, g.MinColumnWidth, g.MaxColumnWidth)
	case g.CellPadding < 0:
		return fmt.Errorf("%w: grid.cell_padding must not be negative", ErrInvalid)
	case g.ClickDelay < 0 || g.HoverGrace < 0:
		return fmt.Errorf("%w: grid delays must not be negative", ErrInvalid)
	}
	switch strings.ToLower(g.Measurer) {
	case "", "font", "cells":
	default:
		return fmt.Errorf("%w: unknown grid.measurer %q", ErrInvalid, g.Measurer)
	}
	if c.Server.SessionCacheSize < 0 || c.Server.Burst < 0 || c.Server.ActionsPerSecond < 0 {
		return fmt.Errorf("%w: server limits must not be negative", ErrInvalid)
	}
	return nil
}

// Limits converts the grid settings for tables.Config.
func (g GridConfig) Limits() tables.Limits {
	return tables.Limits{
		MinColumnWidth: g.MinColumnWidth,
		MaxColumnWidth: g.MaxColumnWidth,
		CellPadding:    g.CellPadding,
		ClickDelay:     g.ClickDelay,
		HoverGrace:     g.HoverGrace,
	}
}

// NewMeasurer returns the configured text measurer.
func (g GridConfig) NewMeasurer() measure.Measurer {
	if strings.EqualFold(g.Measurer, "cells") {
		return measure.CellMeasurer{CellWidth: 8}
	}
	return measure.NewFontMeasurer(nil)
}

// Logger builds the configured logger.
func (l LogConfig) Logger() logging.Logger {
	return logging.New(logging.Options{Level: l.Level, Format: l.Format})
}
