package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	SQLite     SQLiteConfig  `yaml:"sqlite"`
	PostgreSQL ServerConfig  `yaml:"postgresql"`
	MySQL      ServerConfig  `yaml:"mysql"`
	MongoDB    MongoDBConfig `yaml:"mongodb"`
	Redis      RedisConfig   `yaml:"redis"`
	API        APIConfig     `yaml:"api,omitempty"`
	LogLevel   string        `yaml:"log_level,omitempty"`
}

// SQLiteConfig represents the SQLite backend configuration
type SQLiteConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ServerConfig represents a host/port style relational backend (PostgreSQL, MySQL)
type ServerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// MongoDBConfig represents the MongoDB backend configuration
type MongoDBConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// RedisConfig represents the result cache configuration
type RedisConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Password   string `yaml:"password,omitempty"`
	DB         int    `yaml:"db,omitempty"`
	TTLSeconds int    `yaml:"ttl"`
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	Host       string  `yaml:"host,omitempty"`
	Port       string  `yaml:"port,omitempty"`
	CORSOrigin string  `yaml:"cors_origin,omitempty"`
	RateLimit  float64 `yaml:"rate_limit,omitempty"` // requests per second, 0 disables
}

// DefaultConfig returns a default configuration for local database connections
func DefaultConfig() *Config {
	return &Config{
		SQLite: SQLiteConfig{
			Enabled: true,
			Path:    "./data/querygate.db",
		},
		PostgreSQL: ServerConfig{
			Enabled:  false,
			Host:     "localhost",
			Port:     5432,
			Database: "querygate",
			User:     "postgres",
			Password: "password",
		},
		MySQL: ServerConfig{
			Enabled:  false,
			Host:     "localhost",
			Port:     3306,
			Database: "querygate",
			User:     "root",
			Password: "password",
		},
		MongoDB: MongoDBConfig{
			Enabled:  false,
			URI:      "mongodb://localhost:27017",
			Database: "querygate",
		},
		Redis: RedisConfig{
			Enabled:    false,
			Host:       "localhost",
			Port:       6379,
			TTLSeconds: 3600,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: "8790",
		},
		LogLevel: "INFO",
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".querygate/config.yaml"
	}
	return filepath.Join(home, ".querygate", "config.yaml")
}

// Exists checks if config file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
