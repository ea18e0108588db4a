package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Auth     AuthConfig     `yaml:"auth"`
	Realtime RealtimeConfig `yaml:"realtime"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigin   string        `yaml:"cors_origin"`
}

// DatabaseConfig represents database configuration.
// Type is "postgres" or "sqlite"; DSN is driver-specific.
type DatabaseConfig struct {
	Type           string `yaml:"type"`
	DSN            string `yaml:"dsn"`
	MaxConnections int    `yaml:"max_connections"`
	MinConnections int    `yaml:"min_connections"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	SecretKey   string        `yaml:"secret_key"`
	TokenExpiry time.Duration `yaml:"token_expiry"`
	Issuer      string        `yaml:"issuer"`
}

// RealtimeConfig represents relay configuration
type RealtimeConfig struct {
	SendBufferSize int           `yaml:"send_buffer_size"`
	PingInterval   time.Duration `yaml:"ping_interval"`
	ReadDeadline   time.Duration `yaml:"read_deadline"`
	WriteDeadline  time.Duration `yaml:"write_deadline"`
	RingTimeout    time.Duration `yaml:"ring_timeout"`
}

// Load loads configuration from .env, a YAML file and environment variables
func Load() (*Config, error) {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	cfg := defaultConfig()

	configPath := getConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a configuration with default values
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			CORSOrigin:   "http://localhost:3000",
		},
		Database: DatabaseConfig{
			Type:           "sqlite",
			DSN:            "metch.db",
			MaxConnections: 20,
			MinConnections: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Auth: AuthConfig{
			SecretKey:   "change-me-in-production",
			TokenExpiry: 24 * time.Hour,
			Issuer:      "metch",
		},
		Realtime: RealtimeConfig{
			SendBufferSize: 256,
			PingInterval:   30 * time.Second,
			ReadDeadline:   60 * time.Second,
			WriteDeadline:  10 * time.Second,
			RingTimeout:    45 * time.Second,
		},
	}
}

func getConfigPath() string {
	if path := os.Getenv("METCH_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

// applyEnv overrides configuration with environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		c.Server.CORSOrigin = v
	}
	if v := os.Getenv("DATABASE_TYPE"); v != "" {
		c.Database.Type = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("AUTH_SECRET_KEY"); v != "" {
		c.Auth.SecretKey = v
	}
	if v := os.Getenv("AUTH_TOKEN_EXPIRY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Auth.TokenExpiry = d
		}
	}
	if v := os.Getenv("RING_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Realtime.RingTimeout = d
		}
	}
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Type != "postgres" && c.Database.Type != "sqlite" {
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	if c.Auth.SecretKey == "" {
		return fmt.Errorf("auth secret key is required")
	}
	if c.Realtime.SendBufferSize <= 0 {
		return fmt.Errorf("invalid send buffer size: %d", c.Realtime.SendBufferSize)
	}
	if c.Realtime.RingTimeout <= 0 {
		return fmt.Errorf("invalid ring timeout: %s", c.Realtime.RingTimeout)
	}
	return nil
}

// Addr returns the server listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
