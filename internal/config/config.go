package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"moviespot/internal/eventbus"
)

// Environment variables that override the file
const (
	EnvAPIKey  = "MOVIESPOT_OMDB_API_KEY"
	EnvOMDbURL = "MOVIESPOT_OMDB_URL"
	EnvGeoURL  = "MOVIESPOT_GEOIP_URL"
)

// Permission policies
const (
	PermissionAsk     = "ask"
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

// Position providers
const (
	ProviderGeoIP  = "geoip"
	ProviderStatic = "static"
)

// Config represents the application configuration
type Config struct {
	Version  int              `toml:"version"`
	OMDb     OMDbSettings     `toml:"omdb"`
	Location LocationSettings `toml:"location"`
	UI       UISettings       `toml:"ui"`
}

// OMDbSettings configures the movie lookup client
type OMDbSettings struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LocationSettings configures the permission policy and position provider
type LocationSettings struct {
	Permission     string  `toml:"permission"` // ask, granted, denied
	Provider       string  `toml:"provider"`   // geoip, static
	GeoIPURL       string  `toml:"geoip_url"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Latitude       float64 `toml:"latitude"`
	Longitude      float64 `toml:"longitude"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowMap   bool `toml:"show_map"`
	MapWidth  int  `toml:"map_width"`
	MapHeight int  `toml:"map_height"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "moviespot", "config.toml")
}

// NewConfigService creates a config service for the given file; empty means DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the config file, writing a default one when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := cs.SaveToPath(cfg, cs.filePath); err != nil {
			log.Printf("[config] could not write default config: %v", err)
		}
		cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Created: true})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold an API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) publish(e eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(e)
	}
}

// LoadEnv loads a .env file if present and applies environment overrides.
// A missing .env file is not an error.
func LoadEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		log.Printf("[config] using env from %s", envFile)
	} else if err := godotenv.Load(); err == nil {
		log.Printf("[config] using env from .env")
	}

	ApplyEnv(cfg)
	return nil
}

// ApplyEnv overrides settings from the process environment
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.OMDb.APIKey = v
	}
	if v := os.Getenv(EnvOMDbURL); v != "" {
		cfg.OMDb.BaseURL = v
	}
	if v := os.Getenv(EnvGeoURL); v != "" {
		cfg.Location.GeoIPURL = v
	}
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Location.Permission {
	case PermissionAsk, PermissionGranted, PermissionDenied:
	default:
		return fmt.Errorf("location.permission must be %q, %q or %q, got %q",
			PermissionAsk, PermissionGranted, PermissionDenied, c.Location.Permission)
	}
	switch c.Location.Provider {
	case ProviderGeoIP, ProviderStatic:
	default:
		return fmt.Errorf("location.provider must be %q or %q, got %q",
			ProviderGeoIP, ProviderStatic, c.Location.Provider)
	}
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("location.latitude out of range: %v", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("location.longitude out of range: %v", c.Location.Longitude)
	}
	return nil
}

// normalize fills zero values left by a partial file
func (c *Config) normalize() {
	def := DefaultConfig()
	c.Location.Permission = strings.ToLower(strings.TrimSpace(c.Location.Permission))
	c.Location.Provider = strings.ToLower(strings.TrimSpace(c.Location.Provider))
	if c.Location.Permission == "" {
		c.Location.Permission = def.Location.Permission
	}
	if c.Location.Provider == "" {
		c.Location.Provider = def.Location.Provider
	}
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = def.OMDb.BaseURL
	}
	if c.OMDb.TimeoutSeconds <= 0 {
		c.OMDb.TimeoutSeconds = def.OMDb.TimeoutSeconds
	}
	if c.Location.GeoIPURL == "" {
		c.Location.GeoIPURL = def.Location.GeoIPURL
	}
	if c.Location.TimeoutSeconds <= 0 {
		c.Location.TimeoutSeconds = def.Location.TimeoutSeconds
	}
	if c.UI.MapWidth <= 0 {
		c.UI.MapWidth = def.UI.MapWidth
	}
	if c.UI.MapHeight <= 0 {
		c.UI.MapHeight = def.UI.MapHeight
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		OMDb: OMDbSettings{
			BaseURL:        "http://www.omdbapi.com/",
			TimeoutSeconds: 10,
		},
		Location: LocationSettings{
			Permission:     PermissionAsk,
			Provider:       ProviderGeoIP,
			GeoIPURL:       "http://ip-api.com/json/",
			TimeoutSeconds: 10,
		},
		UI: UISettings{
			ShowMap:   true,
			MapWidth:  41,
			MapHeight: 11,
		},
	}
}
