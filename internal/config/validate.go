package config

import (
	"errors"
	"fmt"

	"github.com/dendrascience/dendra-file-organizer/index"
	"github.com/dendrascience/dendra-file-organizer/util"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTree(); err != nil {
		return err
	}
	if err := c.validateIndex(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTree() error {
	if err := util.ValidateName(c.Tree.RootName); err != nil {
		return fmt.Errorf("tree.root_name: %w", err)
	}
	return nil
}

func (c *Config) validateIndex() error {
	if c.Index.InitialCapacity < 1 {
		return errors.New("index.initial_capacity must be at least 1")
	}
	if c.Index.GrowthFactor < 2 {
		return errors.New("index.growth_factor must be at least 2")
	}
	if c.Index.LoadFactor <= 0 || c.Index.LoadFactor > 1 {
		return errors.New("index.load_factor must be greater than 0 and at most 1")
	}
	if _, err := index.ParseProbing(c.Index.Probing); err != nil {
		return fmt.Errorf("index.probing: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
