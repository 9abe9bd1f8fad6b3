// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > embedded > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vcv-app/vcv/internal/models"
	"github.com/vcv-app/vcv/internal/render"
)

// HostAuto asks for the host architecture to be detected.
const HostAuto = "auto"

// Config holds all vcv configuration.
type Config struct {
	Target        string                `yaml:"target"`
	Host          string                `yaml:"host"`
	Format        string                `yaml:"format"`
	VSVersion     int                   `yaml:"vs_version"`
	Quiet         bool                  `yaml:"quiet"`
	Check         bool                  `yaml:"validate"`
	Strict        bool                  `yaml:"strict"`
	VsWhere       VsWhereConfig         `yaml:"vswhere"`
	Installations []models.Installation `yaml:"installations,omitempty"`
	Toolset       ToolsetConfig         `yaml:"toolset"`
	Sdk           SdkConfig             `yaml:"sdk"`
	Logging       LoggingConfig         `yaml:"logging"`
}

// VsWhereConfig holds installation discovery settings.
type VsWhereConfig struct {
	Path       string `yaml:"path"`
	Prerelease bool   `yaml:"prerelease"`
}

// ToolsetConfig pins a VC++ toolset version.
type ToolsetConfig struct {
	Version string `yaml:"version"`
}

// SdkConfig overrides Windows SDK discovery.
type SdkConfig struct {
	Root    string `yaml:"root"`
	Version string `yaml:"version"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Target: "x64",
		Host:   HostAuto,
		Format: string(render.FormatAuto),
		Check:  true,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CLIOverrides holds values from command-line flags.
// Empty strings and false are treated as "not set" and skipped.
type CLIOverrides struct {
	Target     string
	Host       string
	Format     string
	VSVersion  string
	Quiet      bool
	NoValidate bool
	Strict     bool
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath is where `vcv config init` writes when given no path.
func DefaultPath() string {
	return configSearchPaths()[0]
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > external YAML file > embedded bytes > defaults.
//
// An optional configPath argument controls external-file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value → use that path, which must exist ("" means no external file)
func LoadLayered(cli CLIOverrides, embedded []byte, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	// Layer 1: embedded config (lowest priority data layer)
	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, cfg); err != nil {
			return nil, fmt.Errorf("parsing embedded config: %w", err)
		}
	}

	// Layer 2: external YAML file
	filePath, explicit := "", len(configPath) > 0
	if explicit {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
			}
		case explicit:
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Layer 3: environment variables
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	// Layer 4: CLI flags (highest priority)
	if cli.Target != "" {
		cfg.Target = cli.Target
	}
	if cli.Host != "" {
		cfg.Host = cli.Host
	}
	if cli.Format != "" {
		cfg.Format = cli.Format
	}
	if cli.VSVersion != "" {
		year, err := ParseVSVersion(cli.VSVersion)
		if err != nil {
			return nil, err
		}
		cfg.VSVersion = year
	}
	if cli.Quiet {
		cfg.Quiet = true
	}
	if cli.NoValidate {
		cfg.Check = false
	}
	if cli.Strict {
		cfg.Strict = true
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("VCV_ARCH"); v != "" {
		cfg.Target = v
	}
	if v := os.Getenv("VCV_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("VCV_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("VCV_VS"); v != "" {
		year, err := ParseVSVersion(v)
		if err != nil {
			return fmt.Errorf("VCV_VS: %w", err)
		}
		cfg.VSVersion = year
	}
	if v := os.Getenv("VCV_VSWHERE"); v != "" {
		cfg.VsWhere.Path = v
	}
	if v := os.Getenv("VCV_SDK_ROOT"); v != "" {
		cfg.Sdk.Root = v
	}
	if v := os.Getenv("VCV_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

// ParseVSVersion accepts a version year (2022), a major version (17) or
// "latest". It returns 0 for latest.
func ParseVSVersion(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "latest" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid Visual Studio version %q", s)
	}
	if n == 0 || models.ValidYear(n) {
		return n, nil
	}
	if year := models.YearFromVersion(s); year != 0 {
		return year, nil
	}
	return 0, fmt.Errorf("unsupported Visual Studio version %q (expected 2017, 2019 or 2022)", s)
}

// Validate checks that the configuration can drive a resolution.
func (c *Config) Validate() error {
	if _, err := models.ParseArch(c.Target); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	if c.Host != HostAuto {
		if _, err := models.ParseArch(c.Host); err != nil {
			return fmt.Errorf("host: %w", err)
		}
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.VSVersion != 0 && !models.ValidYear(c.VSVersion) {
		return fmt.Errorf("vs_version: unsupported year %d (expected 2017, 2019 or 2022)", c.VSVersion)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}
