// Package config loads the observer, display and logging settings of
// ls-ephem from a JSON or TOML file, a .env file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/naoina/toml"

	"github.com/litescript/ls-ephem/internal/coord"
)

// ErrInvalidObserver is returned by Validate for an observer outside the
// valid latitude and longitude ranges.
var ErrInvalidObserver = errors.New("config: invalid observer")

// Environment variables applied on top of the file.
const (
	EnvLat      = "LS_EPHEM_LAT"
	EnvLon      = "LS_EPHEM_LON"
	EnvHeight   = "LS_EPHEM_HEIGHT"
	EnvName     = "LS_EPHEM_NAME"
	EnvLogLevel = "LS_EPHEM_LOG_LEVEL"
	EnvRefresh  = "LS_EPHEM_REFRESH"
)

// Config is the complete application configuration.
type Config struct {
	Observer ObserverConfig `json:"observer" toml:"observer"`
	Display  DisplayConfig  `json:"display" toml:"display"`
	Logging  LoggingConfig  `json:"logging" toml:"logging"`
}

// ObserverConfig is the observer's geographic location.
type ObserverConfig struct {
	// Name is a label shown in the dashboard header.
	Name string `json:"name" toml:"name"`

	// Latitude in decimal degrees (-90 to +90)
	Latitude float64 `json:"latitude" toml:"latitude"`

	// Longitude in decimal degrees, east positive (-180 to +180)
	Longitude float64 `json:"longitude" toml:"longitude"`

	// Elevation in meters above sea level
	Elevation float64 `json:"elevation" toml:"elevation"`
}

// DisplayConfig controls the dashboard and the watch loop.
type DisplayConfig struct {
	// Refresh is the recompute interval as a Go duration ("5s", "1m").
	Refresh string `json:"refresh" toml:"refresh"`

	// MaxEvents bounds the horizon-crossing log.
	MaxEvents int `json:"max_events" toml:"max_events"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `json:"level" toml:"level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Observer: ObserverConfig{
			Name:      "Greenwich",
			Latitude:  51.4769,
			Longitude: -0.0005,
			Elevation: 46,
		},
		Display: DisplayConfig{
			Refresh:   "5s",
			MaxEvents: 50,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration at path. A missing file yields the defaults.
// Files ending in .toml are decoded as TOML, anything else as JSON. Keys
// absent from the file keep their default values. Environment overrides are
// applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := decode(path, data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func decode(path string, data []byte, cfg *Config) error {
	if isTOML(path) {
		return toml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

// Save writes the configuration to path in the format implied by its
// extension, creating the directory if needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(*c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadEnvFile loads variables from a .env file into the process environment
// without overriding variables already set. An empty path means ".env" in the
// working directory, which may be absent.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvironmentOverrides() error {
	floats := []struct {
		name string
		dst  *float64
	}{
		{EnvLat, &c.Observer.Latitude},
		{EnvLon, &c.Observer.Longitude},
		{EnvHeight, &c.Observer.Elevation},
	}
	for _, f := range floats {
		v := os.Getenv(f.name)
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = x
	}
	if name := os.Getenv(EnvName); name != "" {
		c.Observer.Name = name
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if refresh := os.Getenv(EnvRefresh); refresh != "" {
		c.Display.Refresh = refresh
	}
	return nil
}

// Validate checks the observer and display settings.
func (c *Config) Validate() error {
	o := c.Observer
	if math.IsNaN(o.Latitude) || o.Latitude < -90 || o.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidObserver, o.Latitude)
	}
	if math.IsNaN(o.Longitude) || o.Longitude < -180 || o.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidObserver, o.Longitude)
	}
	if math.IsNaN(o.Elevation) || math.IsInf(o.Elevation, 0) {
		return fmt.Errorf("%w: elevation %v", ErrInvalidObserver, o.Elevation)
	}
	if _, err := c.RefreshInterval(); err != nil {
		return err
	}
	return nil
}

// Location returns the observer as a coord.Location.
func (c *Config) Location() (coord.Location, error) {
	loc, err := coord.LocationFromDegrees(c.Observer.Latitude, c.Observer.Longitude, c.Observer.Elevation)
	if err != nil {
		return coord.Location{}, err
	}
	loc.Name = c.Observer.Name
	return loc, nil
}

// RefreshInterval parses Display.Refresh. An empty value means five seconds.
func (c *Config) RefreshInterval() (time.Duration, error) {
	if c.Display.Refresh == "" {
		return 5 * time.Second, nil
	}
	d, err := time.ParseDuration(c.Display.Refresh)
	if err != nil {
		return 0, fmt.Errorf("refresh interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("refresh interval %v must be positive", d)
	}
	return d, nil
}
