// Package config loads settings from built-in defaults, an optional YAML
// file and environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// NoDatabase as DATABASE_PATH leaves the document store unconfigured.
const NoDatabase = "none"

type Config struct {
	Env            string        `yaml:"env"`
	Addr           string        `yaml:"addr"`
	PublicURL      string        `yaml:"public_url"`
	Timezone       string        `yaml:"timezone"`
	DatabasePath   string        `yaml:"database_path"`
	UploadDir      string        `yaml:"upload_dir"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
	NotifyTimeout  time.Duration `yaml:"notify_timeout"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Email EmailConfig `yaml:"email"`
}

// EmailConfig holds outbound transport credentials. Leaving all of them
// empty turns notifications into a logged no-op.
type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPass     string `yaml:"smtp_pass"`
	ResendAPIKey string `yaml:"resend_api_key"`
	From         string `yaml:"from"`
}

// SMTPConfigured reports whether SMTP credentials are present.
func (e EmailConfig) SMTPConfigured() bool {
	return e.SMTPUser != "" && e.SMTPPass != ""
}

// FromAddress is the sender for notifications.
func (e EmailConfig) FromAddress() string {
	if e.From != "" {
		return e.From
	}
	return e.SMTPUser
}

// StoreConfigured reports whether a database path is set.
func (c *Config) StoreConfigured() bool {
	return c.DatabasePath != "" && c.DatabasePath != NoDatabase
}

// Location resolves Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func defaults() *Config {
	cfg := &Config{
		Env:            "development",
		Addr:           ":8080",
		Timezone:       "America/Chicago",
		DatabasePath:   "welcome.db",
		UploadDir:      "uploads",
		MaxUploadBytes: 5 << 20,
		NotifyTimeout:  15 * time.Second,
	}
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	cfg.Email.SMTPHost = "smtp.gmail.com"
	cfg.Email.SMTPPort = 587
	return cfg
}

// Load builds a Config. path may be empty; otherwise it names a YAML file.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.Addr = getEnv("ADDR", cfg.Addr)
	cfg.PublicURL = getEnv("PUBLIC_URL", cfg.PublicURL)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.DatabasePath = getEnv("DATABASE_PATH", cfg.DatabasePath)
	cfg.UploadDir = getEnv("UPLOAD_DIR", cfg.UploadDir)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)

	cfg.Email.SMTPHost = getEnv("SMTP_HOST", cfg.Email.SMTPHost)
	cfg.Email.SMTPUser = getEnv("SMTP_USER", cfg.Email.SMTPUser)
	cfg.Email.SMTPPass = getEnv("SMTP_PASS", cfg.Email.SMTPPass)
	cfg.Email.ResendAPIKey = getEnv("RESEND_API_KEY", cfg.Email.ResendAPIKey)
	cfg.Email.From = getEnv("EMAIL_FROM", cfg.Email.From)

	var err error
	if cfg.Email.SMTPPort, err = envInt("SMTP_PORT", cfg.Email.SMTPPort); err != nil {
		return nil, err
	}
	if cfg.MaxUploadBytes, err = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes); err != nil {
		return nil, err
	}
	if v := os.Getenv("NOTIFY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFY_TIMEOUT %q: %w", v, err)
		}
		cfg.NotifyTimeout = d
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
