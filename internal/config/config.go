package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AuthMethod represents the authentication a catalog requires
type AuthMethod string

const (
	AuthMethodNone   AuthMethod = "none"
	AuthMethodOAuth2 AuthMethod = "oauth2"
)

// Built-in platform names
const (
	PlatformITunes  = "itunes"
	PlatformSpotify = "spotify"
	PlatformGenius  = "genius"
)

// Cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendValkey = "valkey"
	CacheBackendMongo  = "mongo"
)

// PlatformConfig represents configuration for a single catalog
type PlatformConfig struct {
	Name       string     `json:"name"`
	Enabled    bool       `json:"enabled"`
	AuthMethod AuthMethod `json:"auth_method"`

	// OAuth2 client credentials
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
	TokenURL     string `json:"token_url,omitempty"`

	BaseURL   string `json:"base_url,omitempty"`
	RateLimit int    `json:"rate_limit,omitempty"` // requests per minute, 0 disables limiting
	Timeout   int    `json:"timeout,omitempty"`    // seconds
}

// RequestTimeout returns the per-call timeout, defaulting to 10 seconds
func (p *PlatformConfig) RequestTimeout() time.Duration {
	if p.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(p.Timeout) * time.Second
}

// HasCredentials reports whether both halves of the client credentials are set
func (p *PlatformConfig) HasCredentials() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// Config holds all configuration for the application
type Config struct {
	// Application settings
	Port      string `envconfig:"PORT" default:"8080"`
	GinMode   string `envconfig:"GIN_MODE" default:"debug"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// Response cache
	CacheBackend         string        `envconfig:"CACHE_BACKEND" default:"memory"`
	CacheTTL             time.Duration `envconfig:"CACHE_TTL" default:"6h"`
	CacheMaxItems        int           `envconfig:"CACHE_MAX_ITEMS" default:"1000"`
	CacheCleanupInterval time.Duration `envconfig:"CACHE_CLEANUP_INTERVAL" default:"10m"`
	ValkeyURL            string        `envconfig:"VALKEY_URL"`
	MongodbURL           string        `envconfig:"MONGODB_URL"`
	MongodbDatabase      string        `envconfig:"MONGODB_DATABASE" default:"songsearch"`

	// API authentication
	AuthEnabled bool   `envconfig:"AUTH_ENABLED" default:"false"`
	JWTSecret   string `envconfig:"JWT_SECRET"`

	// Catalog credentials
	SpotifyClientID     string `envconfig:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `envconfig:"SPOTIFY_CLIENT_SECRET"`
	GeniusClientID      string `envconfig:"GENIUS_CLIENT_ID"`
	GeniusClientSecret  string `envconfig:"GENIUS_CLIENT_SECRET"`

	// Platform configurations, keyed by platform name
	Platforms map[string]*PlatformConfig `json:"-" ignored:"true"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	cfg.Platforms = make(map[string]*PlatformConfig)
	cfg.loadBuiltinPlatforms()

	if err := cfg.applyPlatformOverrides(); err != nil {
		return nil, fmt.Errorf("failed to load platform overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadBuiltinPlatforms registers the three catalogs with their public endpoints.
// Credential-gated catalogs stay enabled without credentials; their token
// acquisition then fails on every search.
func (c *Config) loadBuiltinPlatforms() {
	c.Platforms[PlatformITunes] = &PlatformConfig{
		Name:       PlatformITunes,
		Enabled:    true,
		AuthMethod: AuthMethodNone,
		BaseURL:    "https://itunes.apple.com",
		RateLimit:  20, // the public search API allows roughly 20 calls per minute
		Timeout:    10,
	}

	c.Platforms[PlatformSpotify] = &PlatformConfig{
		Name:         PlatformSpotify,
		Enabled:      true,
		AuthMethod:   AuthMethodOAuth2,
		ClientID:     c.SpotifyClientID,
		ClientSecret: c.SpotifyClientSecret,
		TokenURL:     "https://accounts.spotify.com/api/token",
		BaseURL:      "https://api.spotify.com/v1",
		Timeout:      10,
	}

	c.Platforms[PlatformGenius] = &PlatformConfig{
		Name:         PlatformGenius,
		Enabled:      true,
		AuthMethod:   AuthMethodOAuth2,
		ClientID:     c.GeniusClientID,
		ClientSecret: c.GeniusClientSecret,
		TokenURL:     "https://api.genius.com/oauth/token",
		BaseURL:      "https://api.genius.com",
		Timeout:      10,
	}
}

// applyPlatformOverrides applies PLATFORM_<NAME>_<KEY> variables on top of
// the built-in platform configurations
func (c *Config) applyPlatformOverrides() error {
	for name, platform := range c.Platforms {
		prefix := fmt.Sprintf("PLATFORM_%s", strings.ToUpper(name))

		var override struct {
			Enabled   *bool  `envconfig:"ENABLED"`
			BaseURL   string `envconfig:"BASE_URL"`
			TokenURL  string `envconfig:"TOKEN_URL"`
			RateLimit *int   `envconfig:"RATE_LIMIT"`
			Timeout   *int   `envconfig:"TIMEOUT"`
		}

		if err := envconfig.Process(prefix, &override); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		if override.Enabled != nil {
			platform.Enabled = *override.Enabled
		}
		if override.BaseURL != "" {
			platform.BaseURL = override.BaseURL
		}
		if override.TokenURL != "" {
			platform.TokenURL = override.TokenURL
		}
		if override.RateLimit != nil {
			platform.RateLimit = *override.RateLimit
		}
		if override.Timeout != nil {
			platform.Timeout = *override.Timeout
		}
	}

	return nil
}

// Validate checks cross-field requirements
func (c *Config) Validate() error {
	switch c.CacheBackend {
	case CacheBackendMemory:
	case CacheBackendValkey:
		if c.ValkeyURL == "" {
			return fmt.Errorf("VALKEY_URL is required for the valkey cache backend")
		}
	case CacheBackendMongo:
		if c.MongodbURL == "" {
			return fmt.Errorf("MONGODB_URL is required for the mongo cache backend")
		}
	default:
		return fmt.Errorf("unsupported cache backend: %s", c.CacheBackend)
	}

	if c.AuthEnabled && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is set")
	}

	for name, platform := range c.Platforms {
		if err := ValidatePlatformConfig(platform); err != nil {
			return fmt.Errorf("invalid platform config for %s: %w", name, err)
		}
	}

	return nil
}

// GetPlatformConfig returns configuration for a specific platform
func (c *Config) GetPlatformConfig(platform string) (*PlatformConfig, bool) {
	config, exists := c.Platforms[platform]
	return config, exists
}

// GetEnabledPlatforms returns the enabled platform names in a stable order
func (c *Config) GetEnabledPlatforms() []string {
	var platforms []string
	for name, config := range c.Platforms {
		if config.Enabled {
			platforms = append(platforms, name)
		}
	}
	sort.Strings(platforms)
	return platforms
}

// IsEnabled checks if a platform is enabled
func (c *Config) IsEnabled(platform string) bool {
	config, exists := c.GetPlatformConfig(platform)
	return exists && config.Enabled
}

// ValidatePlatformConfig validates a platform configuration.
// Missing OAuth2 credentials are not an error here.
func ValidatePlatformConfig(config *PlatformConfig) error {
	if config.Name == "" {
		return fmt.Errorf("platform name cannot be empty")
	}

	switch config.AuthMethod {
	case AuthMethodNone:
	case AuthMethodOAuth2:
		if config.TokenURL == "" {
			return fmt.Errorf("OAuth2 requires token_url")
		}
	default:
		return fmt.Errorf("unsupported auth method: %s", config.AuthMethod)
	}

	if config.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}

	if config.RateLimit < 0 {
		return fmt.Errorf("rate_limit cannot be negative")
	}

	return nil
}
