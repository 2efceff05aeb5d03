package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultConfigPath is read when CONFIG_PATH is not set
const DefaultConfigPath = "config.json"

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `json:"server"`
	AI        AIConfig        `json:"ai"`
	Logging   LoggingConfig   `json:"logging"`
	Metrics   MetricsConfig   `json:"metrics"`
	Scheduler SchedulerConfig `json:"scheduler"`
	CORS      CORSConfig      `json:"cors"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// AIConfig configures the chat-completions endpoint
type AIConfig struct {
	APIKey  string `json:"api_key"`
	Model   string `json:"model"`
	BaseURL string `json:"base_url"`
}

// LoggingConfig
type LoggingConfig struct {
	Level       string `json:"level"`
	Environment string `json:"environment"`
}

// MetricsConfig
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// SchedulerConfig holds the snapshot job cron expression; empty disables it
type SchedulerConfig struct {
	SnapshotCron string `json:"snapshot_cron"`
}

// CORSConfig
type CORSConfig struct {
	AllowedOrigin string `json:"allowed_origin"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		AI: AIConfig{
			Model: "gpt-4o",
		},
		Logging: LoggingConfig{
			Level:       "info",
			Environment: "production",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		CORS: CORSConfig{
			AllowedOrigin: "*",
		},
	}
}

// LoadConfig loads .env, then the JSON file at configPath if it exists, then
// environment overrides. A missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	config := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := overrideWithEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// PathFromEnv returns CONFIG_PATH or the default path
func PathFromEnv() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultConfigPath
}

func overrideWithEnv(config *Config) error {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", port, err)
		}
		config.Server.Port = p
	}
	for env, dst := range map[string]*time.Duration{
		"SERVER_READ_TIMEOUT":     &config.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":    &config.Server.WriteTimeout,
		"SERVER_IDLE_TIMEOUT":     &config.Server.IdleTimeout,
		"SERVER_SHUTDOWN_TIMEOUT": &config.Server.ShutdownTimeout,
	} {
		if v := os.Getenv(env); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", env, v, err)
			}
			*dst = d
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.AI.APIKey = key
	} else if key := os.Getenv("OPENAI_API_KEY_ENV_VAR"); key != "" {
		config.AI.APIKey = key
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		config.AI.Model = model
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.AI.BaseURL = baseURL
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		config.Logging.Environment = env
	}

	if enabled := os.Getenv("METRICS_ENABLED"); enabled != "" {
		b, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid METRICS_ENABLED %q: %w", enabled, err)
		}
		config.Metrics.Enabled = b
	}
	if path := os.Getenv("METRICS_PATH"); path != "" {
		config.Metrics.Path = path
	}

	if expr, ok := os.LookupEnv("SNAPSHOT_CRON"); ok {
		config.Scheduler.SnapshotCron = expr
	}
	if origin := os.Getenv("CORS_ALLOWED_ORIGIN"); origin != "" {
		config.CORS.AllowedOrigin = origin
	}
	return nil
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
