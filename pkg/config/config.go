package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		RateLimit       struct {
			Enabled      bool    `yaml:"enabled"`
			Capacity     float64 `yaml:"capacity"`
			RefillPerSec float64 `yaml:"refill_per_sec"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Forecast struct {
		Backend         string        `yaml:"backend"` // linear or http
		IntervalWidth   float64       `yaml:"interval_width"`
		ModelServiceURL string        `yaml:"model_service_url"`
		Timeout         time.Duration `yaml:"timeout"`
	} `yaml:"forecast"`
	Summary struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url"`
		Model   string        `yaml:"model"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"summary"`
	Report struct {
		Currency string `yaml:"currency"`
	} `yaml:"report"`
	Cache struct {
		Enabled bool          `yaml:"enabled"`
		TTL     time.Duration `yaml:"ttl"`
		Redis   struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Archive struct {
		Enabled    bool `yaml:"enabled"`
		ClickHouse struct {
			Host             string        `yaml:"host"`
			Port             int           `yaml:"port"`
			Database         string        `yaml:"database"`
			User             string        `yaml:"user"`
			Password         string        `yaml:"password"`
			AsyncInsert      bool          `yaml:"async_insert"`
			WaitForAsync     bool          `yaml:"wait_for_async_insert"`
			DialTimeout      time.Duration `yaml:"dial_timeout"`
			ReadTimeout      time.Duration `yaml:"read_timeout"`
			WriteTimeout     time.Duration `yaml:"write_timeout"`
			MaxExecutionTime time.Duration `yaml:"max_execution_time"`
		} `yaml:"clickhouse"`
	} `yaml:"archive"`
	Events struct {
		Enabled bool `yaml:"enabled"`
		Kafka   struct {
			Brokers      []string      `yaml:"brokers"`
			Topic        string        `yaml:"topic"`
			Compression  string        `yaml:"compression"`
			RequiredAcks int           `yaml:"required_acks"`
			MaxAttempts  int           `yaml:"max_attempts"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
		} `yaml:"kafka"`
	} `yaml:"events"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Summary.APIKey = v
	}
	if v := os.Getenv("MODEL_SERVICE_URL"); v != "" {
		c.Forecast.ModelServiceURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.Archive.ClickHouse.Host = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Kafka.Brokers = strings.Split(v, ",")
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Forecast.Backend == "" {
		c.Forecast.Backend = "linear"
	}
	if c.Forecast.IntervalWidth == 0 {
		c.Forecast.IntervalWidth = 0.8
	}
	if c.Summary.BaseURL == "" {
		c.Summary.BaseURL = "https://api.openai.com/v1"
	}
	if c.Summary.Model == "" {
		c.Summary.Model = "gpt-4o-mini"
	}
	if c.Summary.Timeout <= 0 {
		c.Summary.Timeout = 20 * time.Second
	}
	if c.Report.Currency == "" {
		c.Report.Currency = "₹"
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 15 * time.Minute
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Forecast.Backend != "linear" && c.Forecast.Backend != "http" {
		return fmt.Errorf("forecast.backend must be 'linear' or 'http', got '%s'", c.Forecast.Backend)
	}
	if c.Forecast.Backend == "http" && c.Forecast.ModelServiceURL == "" {
		return fmt.Errorf("forecast.model_service_url is required for the http backend")
	}
	if c.Forecast.IntervalWidth <= 0 || c.Forecast.IntervalWidth >= 1 {
		return fmt.Errorf("forecast.interval_width must be in (0, 1), got %v", c.Forecast.IntervalWidth)
	}
	if c.Archive.Enabled && c.Archive.ClickHouse.Host == "" {
		return fmt.Errorf("archive.clickhouse.host is required when archive is enabled")
	}
	if c.Events.Enabled {
		if len(c.Events.Kafka.Brokers) == 0 {
			return fmt.Errorf("events.kafka.brokers cannot be empty when events are enabled")
		}
		if c.Events.Kafka.Topic == "" {
			return fmt.Errorf("events.kafka.topic is required when events are enabled")
		}
	}
	return nil
}
