package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)     // default value
	assert.Equal(t, "debug", cfg.GinMode) // default value
	assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
	assert.Equal(t, 6*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 10*time.Minute, cfg.CacheCleanupInterval)
	assert.Equal(t, 1000, cfg.CacheMaxItems)
	assert.False(t, cfg.AuthEnabled)
	assert.Equal(t, []string{PlatformGenius, PlatformITunes, PlatformSpotify}, cfg.GetEnabledPlatforms())
}

func TestLoadBuiltinPlatforms(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "Spotify configuration",
			env: map[string]string{
				"SPOTIFY_CLIENT_ID":     "test-client-id",
				"SPOTIFY_CLIENT_SECRET": "test-client-secret",
			},
			verify: func(t *testing.T, cfg *Config) {
				spotifyConfig, exists := cfg.GetPlatformConfig(PlatformSpotify)
				require.True(t, exists)
				assert.Equal(t, "spotify", spotifyConfig.Name)
				assert.True(t, spotifyConfig.Enabled)
				assert.Equal(t, AuthMethodOAuth2, spotifyConfig.AuthMethod)
				assert.Equal(t, "test-client-id", spotifyConfig.ClientID)
				assert.Equal(t, "test-client-secret", spotifyConfig.ClientSecret)
				assert.Equal(t, "https://accounts.spotify.com/api/token", spotifyConfig.TokenURL)
				assert.True(t, spotifyConfig.HasCredentials())
			},
		},
		{
			name: "Genius configuration",
			env: map[string]string{
				"GENIUS_CLIENT_ID":     "genius-id",
				"GENIUS_CLIENT_SECRET": "genius-secret",
			},
			verify: func(t *testing.T, cfg *Config) {
				geniusConfig, exists := cfg.GetPlatformConfig(PlatformGenius)
				require.True(t, exists)
				assert.Equal(t, AuthMethodOAuth2, geniusConfig.AuthMethod)
				assert.Equal(t, "genius-id", geniusConfig.ClientID)
				assert.Equal(t, "https://api.genius.com", geniusConfig.BaseURL)
				assert.Equal(t, "https://api.genius.com/oauth/token", geniusConfig.TokenURL)
			},
		},
		{
			name: "iTunes needs no credentials",
			verify: func(t *testing.T, cfg *Config) {
				itunesConfig, exists := cfg.GetPlatformConfig(PlatformITunes)
				require.True(t, exists)
				assert.Equal(t, AuthMethodNone, itunesConfig.AuthMethod)
				assert.Equal(t, "https://itunes.apple.com", itunesConfig.BaseURL)
				assert.Equal(t, 20, itunesConfig.RateLimit)
			},
		},
		{
			name: "missing credentials keep platform enabled",
			verify: func(t *testing.T, cfg *Config) {
				spotifyConfig, _ := cfg.GetPlatformConfig(PlatformSpotify)
				assert.True(t, spotifyConfig.Enabled)
				assert.False(t, spotifyConfig.HasCredentials())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)
			tt.verify(t, cfg)
		})
	}
}

func TestPlatformOverrides(t *testing.T) {
	t.Setenv("PLATFORM_ITUNES_BASE_URL", "http://localhost:9999")
	t.Setenv("PLATFORM_ITUNES_RATE_LIMIT", "0")
	t.Setenv("PLATFORM_GENIUS_ENABLED", "false")
	t.Setenv("PLATFORM_SPOTIFY_TOKEN_URL", "http://localhost:9998/token")
	t.Setenv("PLATFORM_SPOTIFY_TIMEOUT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	itunes, _ := cfg.GetPlatformConfig(PlatformITunes)
	assert.Equal(t, "http://localhost:9999", itunes.BaseURL)
	assert.Equal(t, 0, itunes.RateLimit)

	assert.False(t, cfg.IsEnabled(PlatformGenius))
	assert.Equal(t, []string{PlatformITunes, PlatformSpotify}, cfg.GetEnabledPlatforms())

	spotify, _ := cfg.GetPlatformConfig(PlatformSpotify)
	assert.Equal(t, "http://localhost:9998/token", spotify.TokenURL)
	assert.Equal(t, 3*time.Second, spotify.RequestTimeout())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "valkey backend without url",
			env:     map[string]string{"CACHE_BACKEND": "valkey"},
			wantErr: "VALKEY_URL is required",
		},
		{
			name:    "mongo backend without url",
			env:     map[string]string{"CACHE_BACKEND": "mongo"},
			wantErr: "MONGODB_URL is required",
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"CACHE_BACKEND": "memcached"},
			wantErr: "unsupported cache backend",
		},
		{
			name:    "auth without secret",
			env:     map[string]string{"AUTH_ENABLED": "true"},
			wantErr: "JWT_SECRET is required",
		},
		{
			name: "valkey backend with url",
			env: map[string]string{
				"CACHE_BACKEND": "valkey",
				"VALKEY_URL":    "valkey://localhost:6379",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidatePlatformConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  *PlatformConfig
		wantErr bool
	}{
		{
			name: "valid oauth2 config",
			config: &PlatformConfig{
				Name:       "spotify",
				AuthMethod: AuthMethodOAuth2,
				TokenURL:   "https://accounts.spotify.com/api/token",
				BaseURL:    "https://api.spotify.com/v1",
			},
		},
		{
			name: "oauth2 without credentials is still valid",
			config: &PlatformConfig{
				Name:       "genius",
				AuthMethod: AuthMethodOAuth2,
				TokenURL:   "https://api.genius.com/oauth/token",
				BaseURL:    "https://api.genius.com",
			},
		},
		{
			name: "oauth2 missing token url",
			config: &PlatformConfig{
				Name:       "spotify",
				AuthMethod: AuthMethodOAuth2,
				BaseURL:    "https://api.spotify.com/v1",
			},
			wantErr: true,
		},
		{
			name:    "empty name",
			config:  &PlatformConfig{AuthMethod: AuthMethodNone, BaseURL: "http://x"},
			wantErr: true,
		},
		{
			name:    "missing base url",
			config:  &PlatformConfig{Name: "itunes", AuthMethod: AuthMethodNone},
			wantErr: true,
		},
		{
			name:    "unsupported auth method",
			config:  &PlatformConfig{Name: "x", AuthMethod: "jwt", BaseURL: "http://x"},
			wantErr: true,
		},
		{
			name:    "negative rate limit",
			config:  &PlatformConfig{Name: "x", AuthMethod: AuthMethodNone, BaseURL: "http://x", RateLimit: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlatformConfig(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestTimeoutDefault(t *testing.T) {
	p := &PlatformConfig{}
	assert.Equal(t, 10*time.Second, p.RequestTimeout())
}
