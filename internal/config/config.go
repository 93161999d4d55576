package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Metadata struct {
		// BackendURL is the trusted server-side extraction service. Empty
		// means the primary stage is skipped and resolution starts at the relay.
		BackendURL string
		// RelayURL is the public CORS pass-through used as the best-effort
		// fallback. It receives the target URL percent-encoded as ?url=.
		RelayURL string
		// Timeout bounds each resolution stage independently.
		Timeout time.Duration
	}
}

// Load reads config from environment (LINKDECK_ prefix) and optional linkdeck.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LINKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("linkdeck")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("metadata.relay_url", "https://api.allorigins.win/get")
	v.SetDefault("metadata.timeout", "10s")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Metadata.BackendURL = v.GetString("metadata.backend_url")
	cfg.Metadata.RelayURL = v.GetString("metadata.relay_url")

	timeout, err := time.ParseDuration(v.GetString("metadata.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid LINKDECK_METADATA_TIMEOUT: %w", err)
	}
	cfg.Metadata.Timeout = timeout

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("LINKDECK_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("LINKDECK_DB_DSN is required")
	}

	return cfg, nil
}
