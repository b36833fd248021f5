package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultUniverse is used when the config file does not list instruments.
var DefaultUniverse = []string{
	"AAPL", "MSFT", "NVDA", "AMZN", "META",
	"GOOGL", "TSLA", "JPM", "GS", "NFLX",
}

type Database struct {
	Host     string `yaml:"host" default:"localhost"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user" default:"postgres"`
	Password string `yaml:"password" default:"password"`
	Name     string `yaml:"name" default:"riskscore"`
	SSLMode  string `yaml:"sslmode" default:"disable"`
	TimeZone string `yaml:"timezone" default:"UTC"`
}

// DSN builds the Postgres connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode, d.TimeZone)
}

type Provider struct {
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url"`
	RequestsPerMinute int           `yaml:"requests_per_minute" default:"5" validate:"gt=0"`
	Retries           int           `yaml:"retries" default:"3" validate:"gte=1"`
	Backoff           time.Duration `yaml:"backoff" default:"20s"`
}

// Engine holds the scoring parameters. Windows and weights are injected into
// the engine at construction so tests can vary them freely.
type Engine struct {
	VolWindow      int     `yaml:"vol_window" default:"20" validate:"gt=1"`
	SentWindowDays int     `yaml:"sent_window_days" default:"7" validate:"gt=0"`
	VolWeight      float64 `yaml:"vol_weight" default:"0.6"`
	SentWeight     float64 `yaml:"sent_weight" default:"0.4"`
}

type Config struct {
	Environment string   `yaml:"environment" default:"development"`
	Database    Database `yaml:"database"`
	Server      struct {
		Port int `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
	} `yaml:"server"`
	Logging struct {
		Level string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
	} `yaml:"logging"`
	AlphaVantage Provider `yaml:"alphavantage"`
	Marketaux    Provider `yaml:"marketaux"`
	Engine       Engine   `yaml:"engine"`
	Universe     []string `yaml:"universe"`
	Schedule     string   `yaml:"schedule" default:"0 18 * * *"`
	Ingest       struct {
		Workers   int `yaml:"workers" default:"4" validate:"gt=0"`
		NewsLimit int `yaml:"news_limit" default:"20" validate:"gt=0"`
	} `yaml:"ingest"`
}

// Load reads the YAML config at path, applies struct defaults, overlays
// environment variables and validates the result. A missing file is not an
// error; the defaults alone are a runnable configuration.
func Load(path string) (*Config, error) {
	// API keys usually live in a .env next to the binary.
	_ = godotenv.Load()

	var c Config
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if c.AlphaVantage.BaseURL == "" {
		c.AlphaVantage.BaseURL = "https://www.alphavantage.co/query"
	}
	if c.Marketaux.BaseURL == "" {
		c.Marketaux.BaseURL = "https://api.marketaux.com/v1/news/all"
	}
	if len(c.Universe) == 0 {
		c.Universe = DefaultUniverse
	}

	c.applyEnv()

	if err := validator.New().Struct(&c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.Name = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		c.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("MARKETAUX_API_KEY"); v != "" {
		c.Marketaux.APIKey = v
	}
	if v := os.Getenv("UNIVERSE"); v != "" {
		c.Universe = strings.Split(v, ",")
	}
}
