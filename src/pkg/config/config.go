package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/gh-nvat/commitview/src/pkg/disclosure"
	"github.com/gh-nvat/commitview/src/pkg/repoapi"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var logger = log.WithField("package", "config")

// ConfigLoader defines the interface for loading configuration files
type ConfigLoader interface {
	// LoadConfig loads the configuration from a YAML file
	LoadConfig(path string) (*Config, error)
	// ValidateConfig validates the configuration
	ValidateConfig(config *Config) error
}

// Loader handles loading configuration files
type Loader struct{}

// Ensure Loader implements ConfigLoader
var _ ConfigLoader = (*Loader)(nil)

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Mode:    SourceModeService,
			BaseURL: repoapi.DefaultBaseURL,
		},
		View: ViewConfig{
			DisclosureKeying: string(disclosure.KeyByPosition),
		},
	}
}

// LoadConfig loads the configuration from a YAML file on top of the defaults.
// An empty path returns the defaults.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	logger.WithField("path", path).Debug("Loaded config")

	return config, nil
}

// ValidateConfig validates the configuration
func (l *Loader) ValidateConfig(config *Config) error {
	switch config.Source.Mode {
	case SourceModeService:
		if config.Source.BaseURL == "" {
			return fmt.Errorf("source.baseURL is required in %s mode", SourceModeService)
		}
		u, err := url.Parse(config.Source.BaseURL)
		if err != nil {
			return fmt.Errorf("source.baseURL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source.baseURL: scheme must be http or https, got %q", u.Scheme)
		}
	case SourceModeGitHub:
	default:
		return fmt.Errorf("source.mode: unsupported mode %q (expected %q or %q)", config.Source.Mode, SourceModeService, SourceModeGitHub)
	}

	if config.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout cannot be negative")
	}

	if _, err := disclosure.ParseKeying(config.View.DisclosureKeying); err != nil {
		return fmt.Errorf("view.disclosureKeying: %w", err)
	}

	return nil
}

// ResolveToken returns the configured token, reading TokenEnv when Token is empty
func (c *SourceConfig) ResolveToken() string {
	if c.Token != "" || c.TokenEnv == "" {
		return c.Token
	}
	return os.Getenv(c.TokenEnv)
}

// ClearOnNavigateEnabled defaults to true
func (v *ViewConfig) ClearOnNavigateEnabled() bool {
	return v.ClearOnNavigate == nil || *v.ClearOnNavigate
}

// DiscardStaleEnabled defaults to true
func (v *ViewConfig) DiscardStaleEnabled() bool {
	return v.DiscardStaleResponses == nil || *v.DiscardStaleResponses
}

// Keying returns the parsed disclosure keying; call after ValidateConfig
func (v *ViewConfig) Keying() disclosure.Keying {
	k, _ := disclosure.ParseKeying(v.DisclosureKeying)
	return k
}
