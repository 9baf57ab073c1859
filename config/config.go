// Package config loads server configuration from an optional YAML file with
// environment-variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Site     SiteConfig     `yaml:"site"`
	Stripe   StripeConfig   `yaml:"stripe"`
	Supabase SupabaseConfig `yaml:"supabase"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type SiteConfig struct {
	// Origin is the public site URL checkout success/cancel URLs point at.
	Origin string `yaml:"origin"`
}

type StripeConfig struct {
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"`
}

// SupabaseConfig points the entitlement writer at the PostgREST edge.
type SupabaseConfig struct {
	URL        string `yaml:"url"`
	ServiceKey string `yaml:"service_key"`
}

// PostgresConfig is the direct-database alternative to Supabase.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the YAML file at path (skipped when path is empty), then
// applies environment overrides. Secrets normally arrive via env.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8787",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("LISTEN_ADDR", c.Server.Addr)
	c.Site.Origin = getEnv("SITE_ORIGIN", c.Site.Origin)
	c.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", c.Stripe.SecretKey)
	c.Stripe.WebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", c.Stripe.WebhookSecret)
	c.Supabase.URL = getEnv("SUPABASE_URL", c.Supabase.URL)
	c.Supabase.ServiceKey = getEnv("SUPABASE_SERVICE_KEY", c.Supabase.ServiceKey)
	c.Postgres.DSN = getEnv("DATABASE_URL", c.Postgres.DSN)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
}

// Validate fails fast on missing secrets so handlers never discover
// misconfiguration mid-request.
func (c *Config) Validate() error {
	if c.Site.Origin == "" {
		return fmt.Errorf("site.origin is required")
	}
	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("stripe.secret_key is required")
	}
	if c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("stripe.webhook_secret is required")
	}
	if (c.Supabase.URL == "") != (c.Supabase.ServiceKey == "") {
		return fmt.Errorf("supabase.url and supabase.service_key must be set together")
	}
	if c.Supabase.URL == "" && c.Postgres.DSN == "" {
		return fmt.Errorf("either supabase url+service_key or postgres.dsn is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
