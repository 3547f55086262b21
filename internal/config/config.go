// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package config loads the runtime's tunables: where the on-disk
// shader cache lives, how many pipelines the in-memory cache holds,
// and the log level. A TOML file supplies defaults; environment
// variables, checked afterward, always win, so a deployment can
// override a single value without shipping a new file.
package config

import (
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config holds dx8gl's process-wide tunables.
type Config struct {
	// CacheDir is the directory internal/diskcache stores translated
	// shader source in. Empty disables the on-disk tier.
	CacheDir string `toml:"cache_dir"`
	// PipelineCacheSize is the in-memory program.Cache capacity (number
	// of compiled pipelines kept before LRU eviction).
	PipelineCacheSize int `toml:"pipeline_cache_size"`
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in fallback configuration, used when
// neither a file nor environment variables supply a value.
func Default() Config {
	return Config{
		CacheDir:          "",
		PipelineCacheSize: 256,
		LogLevel:          "info",
	}
}

// Load reads path (if non-empty) as a TOML file layered over
// Default(), then applies DX8GL_* environment variable overrides.
// A missing file at a caller-supplied path is an error; an empty
// path simply skips the file layer.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := toml.Unmarshal(data, &c); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&c)
	return c, nil
}

func applyEnv(c *Config) {
	if v, ok := os.LookupEnv("DX8GL_CACHE_DIR"); ok {
		c.CacheDir = v
	}
	if v, ok := os.LookupEnv("DX8GL_PIPELINE_CACHE_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.PipelineCacheSize = n
		}
	}
	if v, ok := os.LookupEnv("DX8GL_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
}
