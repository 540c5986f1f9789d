package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-imgresolve/internal/fileutil"
	"github.com/alnah/go-imgresolve/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DirName is the directory under the user config dir searched for named configs.
const DirName = "go-imgresolve"

// Modes.
const (
	ModeDevelopment = "development" // Warnings on missed lookups
	ModeProduction  = "production"  // Silent misses
)

// Output formats for listings.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Formats lists the accepted output formats in help order.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// Field limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxURLLength    = 2048 // Browser limit
	MaxStyleLength  = 50   // Chroma style names are short: "monokai", "github-dark"
	MaxExtensions   = 32   // Allow-list entries
	MaxWorkers      = 1024 // Loader concurrency
	MaxModeLength   = 20
	MaxFormatLength = 20
)

// DefaultStyle is the chroma style used when output.color is set.
const DefaultStyle = "monokai"

// Config holds all configuration for asset resolution.
type Config struct {
	Mode   string       `yaml:"mode"` // "development" (default) or "production"
	Assets AssetsConfig `yaml:"assets"`
	Output OutputConfig `yaml:"output"`
}

// AssetsConfig defines where images come from and how URLs are built.
type AssetsConfig struct {
	BasePath    string   `yaml:"basePath"`    // Empty = embedded images only
	Dir         string   `yaml:"dir"`         // Directory under basePath (default: basePath itself)
	BaseURL     string   `yaml:"baseURL"`     // URL prefix (default "./")
	Extensions  []string `yaml:"extensions"`  // Priority order (empty = jpg, jpeg, png, webp, svg)
	Fingerprint bool     `yaml:"fingerprint"` // Append ?v=<hash> to URLs
	Workers     int      `yaml:"workers"`     // Concurrent loaders, 0 = all at once
}

// OutputConfig defines listing output options.
type OutputConfig struct {
	Format string `yaml:"format"` // text (default), json, yaml, markdown, html
	Color  bool   `yaml:"color"`  // Highlight json/yaml output
	Style  string `yaml:"style"`  // Chroma style (default "monokai")
}

// IsProduction reports whether missed lookups should stay silent.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Mode, ModeProduction)
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., library users, env overrides).
func (c *Config) Validate() error {
	if err := validateFieldLength("mode", c.Mode, MaxModeLength); err != nil {
		return err
	}
	if c.Mode != "" {
		switch strings.ToLower(c.Mode) {
		case ModeDevelopment, ModeProduction:
			// valid
		default:
			return fmt.Errorf("%w: mode: %q (must be %s or %s)", ErrInvalidValue, c.Mode, ModeDevelopment, ModeProduction)
		}
	}

	// Validate asset fields
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.dir", c.Assets.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.baseURL", c.Assets.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if err := validateBaseURL(c.Assets.BaseURL); err != nil {
		return err
	}
	if len(c.Assets.Extensions) > MaxExtensions {
		return fmt.Errorf("%w: assets.extensions (%d entries, max %d)", ErrFieldTooLong, len(c.Assets.Extensions), MaxExtensions)
	}
	for i, ext := range c.Assets.Extensions {
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: assets.extensions[%d]: %q: %w", ErrInvalidValue, i, ext, err)
		}
	}
	if c.Assets.Workers < 0 || c.Assets.Workers > MaxWorkers {
		return fmt.Errorf("%w: assets.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Assets.Workers)
	}

	// Validate output fields
	if err := validateFieldLength("output.format", c.Output.Format, MaxFormatLength); err != nil {
		return err
	}
	if c.Output.Format != "" && !isFormat(c.Output.Format) {
		return fmt.Errorf("%w: output.format: %q (must be one of %s)", ErrInvalidValue, c.Output.Format, strings.Join(Formats, ", "))
	}
	if err := validateFieldLength("output.style", c.Output.Style, MaxStyleLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateBaseURL accepts absolute http(s) URLs and relative or rooted paths.
func validateBaseURL(s string) error {
	if s == "" {
		return nil
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return fmt.Errorf("%w: assets.baseURL: contains whitespace", ErrInvalidValue)
	}
	if fileutil.IsURL(s) || strings.HasPrefix(s, "/") || strings.HasPrefix(s, ".") {
		return nil
	}
	return fmt.Errorf("%w: assets.baseURL: %q (must start with http://, https://, / or .)", ErrInvalidValue, s)
}

func isFormat(s string) bool {
	for _, f := range Formats {
		if strings.EqualFold(s, f) {
			return true
		}
	}
	return false
}

// DefaultConfig returns the configuration used when no file is given:
// embedded images, development mode, text output.
func DefaultConfig() *Config {
	return &Config{
		Mode: ModeDevelopment,
		Assets: AssetsConfig{
			BasePath: "",
			BaseURL:  "./",
		},
		Output: OutputConfig{
			Format: FormatText,
			Style:  DefaultStyle,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
//
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-imgresolve/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, DirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
