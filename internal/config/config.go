// Copyright 2025 go-forkjoin Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads parsort settings from a YAML file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-forkjoin/fj"
)

// Merge strategies accepted in SortConfig.Merge.
const (
	MergeInPlace  = "inplace"
	MergeBuffered = "buffered"
)

// Config holds all parsort configuration.
type Config struct {
	Sort     SortConfig     `yaml:"sort"`
	Pool     PoolConfig     `yaml:"pool"`
	Generate GenerateConfig `yaml:"generate"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SortConfig configures the fork-join sorter.
type SortConfig struct {
	Mode      string `yaml:"mode"`      // spawn, pool, sequential
	Threshold int    `yaml:"threshold"` // granularity threshold
	MaxDepth  int    `yaml:"max_depth"` // 0 = fork at every level
	Merge     string `yaml:"merge"`     // inplace, buffered
}

// PoolConfig configures the shared worker pool.
type PoolConfig struct {
	// Workers is the pool size; 0 uses the CPUs available to the process.
	Workers int `yaml:"workers"`
}

// GenerateConfig configures input generation.
type GenerateConfig struct {
	Parallel bool `yaml:"parallel"`
}

// LoggingConfig configures diagnostics on stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Sort: SortConfig{
			Mode:      fj.ModePool.String(),
			Threshold: 10,
			MaxDepth:  0,
			Merge:     MergeInPlace,
		},
		Pool: PoolConfig{
			Workers: 0,
		},
		Generate: GenerateConfig{
			Parallel: true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads configuration from path on top of the defaults and applies
// environment overrides. A missing file yields the defaults. An empty path
// skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PARSORT_MODE"); v != "" {
		c.Sort.Mode = v
	}
	if v := os.Getenv("PARSORT_MERGE"); v != "" {
		c.Sort.Merge = v
	}
	if v := os.Getenv("PARSORT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"PARSORT_THRESHOLD", &c.Sort.Threshold},
		{"PARSORT_MAX_DEPTH", &c.Sort.MaxDepth},
		{"PARSORT_WORKERS", &c.Pool.Workers},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", o.env, v, err)
		}
		*o.dst = n
	}
	return nil
}

// SortMode returns the parsed sort mode.
func (c *Config) SortMode() (fj.Mode, error) {
	return fj.ParseMode(c.Sort.Mode)
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if _, err := c.SortMode(); err != nil {
		return fmt.Errorf("sort.mode: %w", err)
	}
	if c.Sort.Threshold < 1 {
		return fmt.Errorf("sort.threshold must be >= 1, got %d", c.Sort.Threshold)
	}
	if c.Sort.MaxDepth < 0 {
		return fmt.Errorf("sort.max_depth must be >= 0, got %d", c.Sort.MaxDepth)
	}
	switch c.Sort.Merge {
	case MergeInPlace, MergeBuffered:
	default:
		return fmt.Errorf("sort.merge must be %q or %q, got %q", MergeInPlace, MergeBuffered, c.Sort.Merge)
	}
	if c.Pool.Workers < 0 {
		return fmt.Errorf("pool.workers must be >= 0, got %d", c.Pool.Workers)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// Workers returns the effective pool size.
func (c *Config) Workers() int {
	if c.Pool.Workers > 0 {
		return c.Pool.Workers
	}
	return fj.DefaultWorkers()
}
