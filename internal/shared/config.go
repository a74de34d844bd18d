package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Library  LibraryConfig  `toml:"library"`
	Database DatabaseConfig `toml:"database"`
	Output   OutputConfig   `toml:"output"`
}

// LibraryConfig describes the music library to scan.
type LibraryConfig struct {
	// Directories are the roots walked by the scanner.
	Directories []string `toml:"directories"`
	// PreferredExtensions orders the extensions kept when the same track
	// exists in several encodings.
	PreferredExtensions []string `toml:"preferred_extensions"`
	// ScanWorkers bounds the tag-reading worker pool. Zero means one
	// worker per CPU.
	ScanWorkers int `toml:"scan_workers"`
}

// DatabaseConfig contains track index database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// OutputConfig contains default path rewriting for listed playlists.
type OutputConfig struct {
	StripPrefix   string `toml:"strip_prefix"`
	PrependPrefix string `toml:"prepend_prefix"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Save writes the configuration back to path as TOML.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// AddDirectory appends dir to the scanned library directories.
func (c *Config) AddDirectory(dir string) error {
	if slices.Contains(c.Library.Directories, dir) {
		return fmt.Errorf("%w: %s", ErrDuplicateDir, dir)
	}
	c.Library.Directories = append(c.Library.Directories, dir)
	return nil
}

// RemoveDirectory removes dir from the scanned library directories.
func (c *Config) RemoveDirectory(dir string) error {
	i := slices.Index(c.Library.Directories, dir)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownDir, dir)
	}
	c.Library.Directories = slices.Delete(c.Library.Directories, i, i+1)
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
