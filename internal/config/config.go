// Package config loads runtime settings for the portfolio server from an
// optional YAML file and the process environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config contains runtime configuration values.
type Config struct {
	Port       string `mapstructure:"port"`
	SiteURL    string `mapstructure:"site_url"`
	ContentDir string `mapstructure:"content_dir"`
	DBPath     string `mapstructure:"db_path"`
	GinMode    string `mapstructure:"gin_mode"`
	Watch      bool   `mapstructure:"watch"`

	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort string `mapstructure:"smtp_port"`
	SMTPUser string `mapstructure:"smtp_user"`
	SMTPPass string `mapstructure:"smtp_pass"`
	ToEmail  string `mapstructure:"to_email"`

	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`

	CleanupCron      string        `mapstructure:"cleanup_cron"`
	VisitorRetention time.Duration `mapstructure:"visitor_retention"`
}

const (
	defaultPort       = "8080"
	defaultSiteURL    = "http://localhost:8080"
	defaultContentDir = "content/blog"
	defaultDBPath     = "portfolio.db"
	defaultSMTPHost   = "smtp.gmail.com"
	defaultSMTPPort   = "587"
	defaultCron       = "0 3 * * *" // 03:00 every day
	defaultRetention  = 365 * 24 * time.Hour
)

// keys lists every setting so AutomaticEnv can resolve them during Unmarshal.
var keys = []string{
	"port", "site_url", "content_dir", "db_path", "gin_mode", "watch",
	"smtp_host", "smtp_port", "smtp_user", "smtp_pass", "to_email",
	"admin_username", "admin_password", "cleanup_cron", "visitor_retention",
}

// Load builds a Config from the file at path (or ./config.yaml when path is
// empty) overlaid with environment variables. A missing default file is not
// an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", defaultPort)
	v.SetDefault("site_url", defaultSiteURL)
	v.SetDefault("content_dir", defaultContentDir)
	v.SetDefault("db_path", defaultDBPath)
	v.SetDefault("smtp_host", defaultSMTPHost)
	v.SetDefault("smtp_port", defaultSMTPPort)
	v.SetDefault("cleanup_cron", defaultCron)
	v.SetDefault("visitor_retention", defaultRetention)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", k, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	if cfg.VisitorRetention <= 0 {
		cfg.VisitorRetention = defaultRetention
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// SMTPConfigured reports whether credentials for outgoing mail are present.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}
