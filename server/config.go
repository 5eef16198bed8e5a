package server

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Config represents the configuration for the sundowner webservice
type Config struct {
	// HTTP settings
	Port int `json:"port"` // HTTP listen port

	// Dashboard location used by the live WebSocket feed
	Latitude  float64 `json:"latitude"`  // Latitude for the live solar feed
	Longitude float64 `json:"longitude"` // Longitude for the live solar feed

	// Request limits
	MaxRangeDays int `json:"max_range_days"` // Maximum number of days per query

	// Live feed settings
	BroadcastInterval time.Duration `json:"broadcast_interval"` // How often to push live frames

	// Logging settings
	LogLevel string `json:"log_level"` // Log level: debug, info, warn, error

	// Query metrics
	PostgresConnString string `json:"postgres_conn_string"` // PostgreSQL connection string (empty = disabled)

	// Static dashboard files
	StaticDir string `json:"static_dir"` // Directory served at /
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Port:               8080,
		Latitude:           51.5074, // London
		Longitude:          -0.1278, // London
		MaxRangeDays:       366,
		BroadcastInterval:  10 * time.Second,
		LogLevel:           "info",
		PostgresConnString: "",
		StaticDir:          "./web/dist",
	}
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	config := DefaultConfig()

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config JSON: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got: %d", c.Port)
	}

	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got: %f", c.Latitude)
	}

	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got: %f", c.Longitude)
	}

	if c.MaxRangeDays <= 0 {
		return fmt.Errorf("max_range_days must be greater than 0, got: %d", c.MaxRangeDays)
	}

	if c.BroadcastInterval <= 0 {
		return fmt.Errorf("broadcast_interval must be greater than 0, got: %s", c.BroadcastInterval)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level: %s, must be one of: debug, info, warn, error", c.LogLevel)
	}

	if c.StaticDir == "" {
		return fmt.Errorf("static_dir cannot be empty")
	}

	return nil
}
