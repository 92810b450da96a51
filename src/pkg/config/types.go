package config

import "time"

const (
	SourceModeService = "service"
	SourceModeGitHub  = "github"
)

// Config represents the complete commitview configuration
type Config struct {
	Source SourceConfig `yaml:"source"`
	View   ViewConfig   `yaml:"view"`
}

// SourceConfig selects and configures the backend commits are read from
type SourceConfig struct {
	Mode    string `yaml:"mode"` // "service" or "github"
	BaseURL string `yaml:"baseURL"`
	Token   string `yaml:"token"`
	// TokenEnv names an environment variable holding the token; Token wins when both are set
	TokenEnv string `yaml:"tokenEnv"`
	// Zero means no timeout
	Timeout time.Duration `yaml:"timeout"`
}

// ViewConfig holds the page behaviors that can be switched
type ViewConfig struct {
	DisclosureKeying      string `yaml:"disclosureKeying"` // "position" or "path"
	ClearOnNavigate       *bool  `yaml:"clearOnNavigate,omitempty"`
	DiscardStaleResponses *bool  `yaml:"discardStaleResponses,omitempty"`
}
