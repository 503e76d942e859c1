package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dendrascience/dendra-file-organizer/index"
)

// Tree contains folder tree configuration.
type Tree struct {
	RootName string `toml:"root_name"`
}

// Index contains hash index configuration.
type Index struct {
	InitialCapacity int     `toml:"initial_capacity"`
	GrowthFactor    int     `toml:"growth_factor"`
	LoadFactor      float64 `toml:"load_factor"`
	Probing         string  `toml:"probing"`
}

// Logging contains logger configuration. File enables a rotating log file in
// addition to stderr.
type Logging struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Metrics contains the Prometheus endpoint configuration. An empty Addr
// disables the endpoint.
type Metrics struct {
	Addr string `toml:"addr"`
}

// Mount contains FUSE mount configuration.
type Mount struct {
	LockFile string `toml:"lock_file"`
}

// Config is the full organizer configuration.
type Config struct {
	Tree    Tree    `toml:"tree"`
	Index   Index   `toml:"index"`
	Logging Logging `toml:"logging"`
	Metrics Metrics `toml:"metrics"`
	Mount   Mount   `toml:"mount"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/organizer/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults are returned with exists set to false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("organizer.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// IndexOptions converts the [index] section into hash index options.
func (c *Config) IndexOptions() (index.Options, error) {
	probing, err := index.ParseProbing(c.Index.Probing)
	if err != nil {
		return index.Options{}, fmt.Errorf("index.probing: %w", err)
	}
	return index.Options{
		InitialCapacity: c.Index.InitialCapacity,
		GrowthFactor:    c.Index.GrowthFactor,
		LoadFactor:      c.Index.LoadFactor,
		Probing:         probing,
	}, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
