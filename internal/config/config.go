package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Provider exposes application configuration. Handlers and services depend on
// this interface so tests can substitute their own values.
type Provider interface {
	GetServerAddr() string
	GetSessionSecret() string
	GetAppBaseURL() string
	GetEmailProvider() string
	GetEmailSender() string
	GetEmailAPIKey() string
	GetSubmitDelay() time.Duration
	GetSubmitFail() bool
	GetResetPolicy() string
	GetRulesFile() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr    string
	SessionSecret string
	AppBaseURL    string
	EmailProvider string
	EmailSender   string
	EmailAPIKey   string
	SubmitDelay   time.Duration
	SubmitFail    bool
	ResetPolicy   string
	RulesFile     string
}

// New loads configuration from a .env file, if present, and the environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	return &Config{
		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production"),
		AppBaseURL:    getEnv("APP_BASE_URL", "http://localhost:8080"),
		EmailProvider: getEnv("EMAIL_PROVIDER", "log"),
		EmailSender:   os.Getenv("EMAIL_SENDER"),
		EmailAPIKey:   os.Getenv("EMAIL_API_KEY"),
		SubmitDelay:   getDuration("SUBMIT_DELAY", 2*time.Second),
		SubmitFail:    getBool("SUBMIT_FAIL", false),
		ResetPolicy:   getEnv("FORM_RESET_POLICY", "keep"),
		RulesFile:     os.Getenv("RULES_FILE"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("Invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("Invalid boolean, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func (c *Config) GetServerAddr() string         { return c.ServerAddr }
func (c *Config) GetSessionSecret() string      { return c.SessionSecret }
func (c *Config) GetAppBaseURL() string         { return c.AppBaseURL }
func (c *Config) GetEmailProvider() string      { return c.EmailProvider }
func (c *Config) GetEmailSender() string        { return c.EmailSender }
func (c *Config) GetEmailAPIKey() string        { return c.EmailAPIKey }
func (c *Config) GetSubmitDelay() time.Duration { return c.SubmitDelay }
func (c *Config) GetSubmitFail() bool           { return c.SubmitFail }
func (c *Config) GetResetPolicy() string        { return c.ResetPolicy }
func (c *Config) GetRulesFile() string          { return c.RulesFile }
