// Package config loads booking configuration from a single YAML file.
//
// The file is named by the BOOKING_CONFIG environment variable or passed
// explicitly to LoadFile. Values missing from the file keep their defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jacentio/booking/facade"
	"github.com/jacentio/booking/loader"
)

// EnvVar names the environment variable Load reads the config path from.
const EnvVar = "BOOKING_CONFIG"

// ErrInvalidConfig is returned when a loaded file holds unusable values.
var ErrInvalidConfig = errors.New("booking: invalid config")

// Config is the booking configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Booking BookingConfig `yaml:"booking"`
	Data    DataConfig    `yaml:"data"`
	Log     LogConfig     `yaml:"log"`
}

// StoreConfig configures the keyed store.
type StoreConfig struct {
	// IDSeed is the last id handed out before the first save.
	// Zero seeds the generator from the wall clock.
	IDSeed int64 `yaml:"id_seed"`
}

// BookingConfig configures the facade.
type BookingConfig struct {
	// LockStripes is the number of lock stripes bookings and deletes share.
	LockStripes int `yaml:"lock_stripes"`
}

// DataConfig configures the bulk load run at startup.
type DataConfig struct {
	// Path is the CSV file to load. Empty means start with an empty store.
	Path string `yaml:"path"`

	// DateLayout is the Go time layout of event dates in the file.
	DateLayout string `yaml:"date_layout"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Booking: BookingConfig{LockStripes: facade.DefaultConfig().LockStripes},
		Data:    DataConfig{DateLayout: loader.DefaultDateLayout},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load loads the file named by BOOKING_CONFIG.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your booking.yaml config file, or use --config flag", EnvVar)
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Store.IDSeed < 0 {
		return fmt.Errorf("%w: store.id_seed must not be negative", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidConfig, c.Log.Format)
	}
	if c.Data.DateLayout == "" {
		c.Data.DateLayout = loader.DefaultDateLayout
	}
	return nil
}

// Facade returns the facade settings.
func (c *Config) Facade() facade.Config {
	return facade.Config{LockStripes: c.Booking.LockStripes}
}

// NewLogger builds a logger writing to w in the configured format and level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, s)
	}
	return level, nil
}
