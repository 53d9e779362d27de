package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configFileName = "cfg.toml"

// lowerConfig mirrors the [lower] and [output] tables of cfg.toml.
type lowerConfig struct {
	Lower struct {
		StripDebugger bool   `toml:"strip_debugger"`
		CacheDir      string `toml:"cache_dir"`
	} `toml:"lower"`
	Output struct {
		Color bool `toml:"color"`
	} `toml:"output"`
}

func defaultConfig() lowerConfig {
	var cfg lowerConfig
	cfg.Lower.StripDebugger = false
	cfg.Lower.CacheDir = ""
	cfg.Output.Color = true
	return cfg
}

// findConfig searches startDir and each of its ancestors for cfg.toml,
// stopping at the filesystem root. ok is false (with a nil error) when no
// config file is found anywhere in the walk; the caller falls back to
// defaultConfig rather than treating this as an error.
func findConfig(startDir string) (path string, ok bool, err error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// loadConfig resolves the effective config: an explicit --config path is
// used verbatim and it is an error for it not to exist; otherwise the
// upward search from the working directory is tried, and a miss silently
// falls back to defaultConfig().
func loadConfig(explicitPath string) (lowerConfig, error) {
	cfg := defaultConfig()

	path := explicitPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return cfg, err
		}
		found, ok, err := findConfig(wd)
		if err != nil {
			return cfg, err
		}
		if !ok {
			return cfg, nil
		}
		path = found
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
