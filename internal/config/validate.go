package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCollection(); err != nil {
		return err
	}
	if err := c.validateLayers(); err != nil {
		return err
	}
	if err := c.validateCID(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCollection() error {
	if c.Collection.Name == "" {
		return errors.New("collection.name must be set")
	}
	if c.Collection.RoyaltyPercentage < 0 || c.Collection.RoyaltyPercentage > 100 {
		return errors.New("collection.royalty_percentage must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateLayers() error {
	for i, name := range c.LayerNames() {
		if name == "" {
			return fmt.Errorf("layers.layer%02d must be set", i+1)
		}
	}
	return nil
}

func (c *Config) validateCID() error {
	if c.CID.Command == "" {
		return errors.New("cid.command must be set")
	}
	if c.CID.Version < 0 {
		return errors.New("cid.version must not be negative")
	}
	if c.CID.Concurrency < 1 {
		return errors.New("cid.concurrency must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
