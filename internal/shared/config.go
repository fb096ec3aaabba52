package shared

import (
	_ "embed"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	Stage    StageConfig    `toml:"stage"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Artwork  ArtworkConfig  `toml:"artwork"`
}

// EngineConfig contains simulation settings.
type EngineConfig struct {
	FPS  int     `toml:"fps"`
	Seed int64   `toml:"seed"`
	BPM  float64 `toml:"bpm"`
	// Choreography optionally points at a YAML pose library that replaces
	// the built-in one.
	Choreography string `toml:"choreography"`
}

// StageConfig contains render surface settings shared by the terminal and
// web stages.
type StageConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	BaseColor  string `toml:"base_color"`
	BodyColor  string `toml:"body_color"`
	Background string `toml:"background"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr joins host and port into a listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ArtworkConfig selects and tunes the album artwork provider.
type ArtworkConfig struct {
	// Provider is one of "itunes", "spotify", or "none".
	Provider      string        `toml:"provider"`
	CacheResults  bool          `toml:"cache_results"`
	RatePerMinute int           `toml:"rate_per_minute"`
	Spotify       SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains the client-credentials pair for Spotify lookups.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
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

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidInput)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
