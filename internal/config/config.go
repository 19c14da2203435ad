package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir      string `toml:"data_dir"`
	GeneratedDir string `toml:"generated_dir"`
	OutputDir    string `toml:"output_dir"`
	MetadataDir  string `toml:"metadata_dir"`
	LogDir       string `toml:"log_dir"`
}

// Collection contains the collection-wide values substituted into every
// generated metadata document.
type Collection struct {
	Name              string `toml:"name"`
	Description       string `toml:"description"`
	Artist            string `toml:"artist"`
	Minter            string `toml:"minter"`
	RoyaltyPercentage int    `toml:"royalty_percentage"`
	ImagesCID         string `toml:"images_cid"`
}

// Layers maps the four layer slots to their display names. The same table is
// used both as attribute trait types and as lookup keys into trait records.
type Layers struct {
	Layer01 string `toml:"layer01"`
	Layer02 string `toml:"layer02"`
	Layer03 string `toml:"layer03"`
	Layer04 string `toml:"layer04"`
}

// CID contains configuration for the external CID executable.
type CID struct {
	Command     string `toml:"command"`
	Version     int    `toml:"version"`
	Concurrency int    `toml:"concurrency"`
}

// CIDCache contains configuration for the CID result cache.
type CIDCache struct {
	Enabled bool   `toml:"enabled"` // Default: false
	Path    string `toml:"path"`    // Default: ~/.cache/mintprep/cids.db
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for mintprep.
//
// Configuration sections by subsystem:
//   - Paths: trait data, generated metadata, and prepare output directories
//   - Collection: display name, royalty, artist/minter identities
//   - Layers: the four trait layer display names
//   - CID: external cid executable and batch concurrency
//   - CIDCache: cached CID results keyed by file identity
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Collection Collection `toml:"collection"`
	Layers     Layers     `toml:"layers"`
	CID        CID        `toml:"cid"`
	CIDCache   CIDCache   `toml:"cid_cache"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/mintprep/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
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
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
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

	projectPath, err := filepath.Abs("mintprep.toml")
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

// TraitsPath returns the location of the trait definition table.
func (c *Config) TraitsPath() string {
	return filepath.Join(c.Paths.DataDir, "all-traits.json")
}

// ManifestPath returns the location of the ID to CID manifest file.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Paths.OutputDir, "metadata-cids.json")
}

// LayerNames returns the four layer display names in fixed order.
func (c *Config) LayerNames() []string {
	return []string{c.Layers.Layer01, c.Layers.Layer02, c.Layers.Layer03, c.Layers.Layer04}
}

// BaseURI returns the content-addressed prefix generated image URLs live
// under, e.g. "ipfs://<images_cid>/".
func (c *Config) BaseURI() string {
	return "ipfs://" + c.Collection.ImagesCID + "/"
}

// EnsureOutputDirs creates the directories prepare writes into. The metadata
// directory is only required in metadata mode.
func (c *Config) EnsureOutputDirs(metadata bool) error {
	dirs := []string{c.Paths.OutputDir, c.Paths.LogDir}
	if metadata {
		dirs = append(dirs, c.Paths.MetadataDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// EnsureGeneratedDirs creates the directories expand writes into.
func (c *Config) EnsureGeneratedDirs() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.GeneratedDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
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

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
