// Package config loads the CLI configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fileform/pkg/i18n"
)

// Config holds the settings shared by CLI commands.
type Config struct {
	// Root is the installation root artifact file names resolve against.
	Root string `yaml:"root"`
	// Database is the bookkeeping database file.
	Database string `yaml:"database"`
	// Languages lists the installed language codes.
	Languages []string `yaml:"languages"`
	// DefaultLanguage is used when no language is requested. Empty selects
	// the first entry of Languages.
	DefaultLanguage string `yaml:"defaultLanguage"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
	// MetricsTextfile receives the metrics after each run when set.
	MetricsTextfile string `yaml:"metricsTextfile"`
	// FileMode is applied to artifacts after writing, in octal.
	FileMode string `yaml:"fileMode"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		Root:      ".",
		Database:  filepath.Join("data", "fileform.db"),
		Languages: []string{i18n.English},
		LogLevel:  "info",
		FileMode:  "0666",
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data into cfg, keeping cfg values for keys the document
// omits, and validates the result.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode: %w", err)
	}
	cfg.applyDefaults()
	return cfg.Validate()
}

func (c *Config) applyDefaults() {
	d := Defaults()
	if strings.TrimSpace(c.Root) == "" {
		c.Root = d.Root
	}
	if strings.TrimSpace(c.Database) == "" {
		c.Database = d.Database
	}
	if len(c.Languages) == 0 {
		c.Languages = d.Languages
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = d.LogLevel
	}
	if strings.TrimSpace(c.FileMode) == "" {
		c.FileMode = d.FileMode
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := c.Catalog(); err != nil {
		return fmt.Errorf("config: languages: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.Mode(); err != nil {
		return err
	}
	return nil
}

// Catalog builds the language catalog from Languages and DefaultLanguage.
func (c Config) Catalog() (*i18n.StaticCatalog, error) {
	return i18n.NewStaticCatalog(c.DefaultLanguage, c.Languages...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Mode parses FileMode.
func (c Config) Mode() (fs.FileMode, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(c.FileMode), 8, 32)
	if err != nil || v > 0o777 {
		return 0, fmt.Errorf("config: file mode %q is not an octal permission", c.FileMode)
	}
	return fs.FileMode(v), nil
}
