package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCollection(); err != nil {
		return err
	}
	c.normalizeCID()
	if err := c.normalizeCIDCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.GeneratedDir) == "" {
		c.Paths.GeneratedDir = c.Paths.DataDir + "/generated"
	}
	if c.Paths.GeneratedDir, err = expandPath(c.Paths.GeneratedDir); err != nil {
		return fmt.Errorf("paths.generated_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.MetadataDir) == "" {
		c.Paths.MetadataDir = c.Paths.OutputDir + "/metadata"
	}
	if c.Paths.MetadataDir, err = expandPath(c.Paths.MetadataDir); err != nil {
		return fmt.Errorf("paths.metadata_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCollection() error {
	c.Collection.Name = strings.TrimSpace(c.Collection.Name)
	c.Collection.ImagesCID = strings.TrimSpace(c.Collection.ImagesCID)
	if c.Collection.ImagesCID == "" {
		if value, ok := os.LookupEnv("IMAGES_CID"); ok {
			c.Collection.ImagesCID = strings.TrimSpace(value)
		}
	}
	if c.Collection.Artist == "" {
		if value, ok := os.LookupEnv("ARTIST_NAME"); ok {
			c.Collection.Artist = strings.TrimSpace(value)
		}
	}
	if c.Collection.Minter == "" {
		if value, ok := os.LookupEnv("MINTER"); ok {
			c.Collection.Minter = strings.TrimSpace(value)
		}
	}
	if c.Collection.RoyaltyPercentage == 0 {
		if value, ok := os.LookupEnv("ROYALTY_PERCENTAGE"); ok {
			parsed, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("ROYALTY_PERCENTAGE: %w", err)
			}
			c.Collection.RoyaltyPercentage = parsed
		}
	}
	return nil
}

func (c *Config) normalizeCID() {
	c.CID.Command = strings.TrimSpace(c.CID.Command)
	if c.CID.Command == "" {
		c.CID.Command = defaultCIDCommand
	}
	if c.CID.Concurrency <= 0 {
		c.CID.Concurrency = defaultCIDConcurrency
	}
}

func (c *Config) normalizeCIDCache() error {
	if strings.TrimSpace(c.CIDCache.Path) == "" {
		c.CIDCache.Path = defaultCIDCachePath
	}
	var err error
	if c.CIDCache.Path, err = expandPath(c.CIDCache.Path); err != nil {
		return fmt.Errorf("cid_cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
