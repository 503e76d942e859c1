package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.Tree.RootName = strings.TrimSpace(c.Tree.RootName)
	c.normalizeIndex()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.Metrics.Addr = strings.TrimSpace(c.Metrics.Addr)

	var err error
	if c.Mount.LockFile, err = expandPath(strings.TrimSpace(c.Mount.LockFile)); err != nil {
		return fmt.Errorf("mount.lock_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeIndex() {
	c.Index.Probing = strings.ToLower(strings.TrimSpace(c.Index.Probing))
	if c.Index.Probing == "" {
		c.Index.Probing = "linear"
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.MaxAgeDays < 0 {
		c.Logging.MaxAgeDays = 0
	}

	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
