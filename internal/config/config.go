package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server and the TUI client need. Values
// come from an optional YAML file (PD_CONFIG) overridden by environment
// variables; env always wins.
type Config struct {
	Port     int
	LogLevel string

	// Database settings. When EncryptionKey is set the four DB values
	// are ciphertexts and are decrypted at startup.
	DBHost        string
	DBName        string
	DBUser        string
	DBPass        string
	EncryptionKey string

	// Stored procedure names; the legacy deployment allowed overriding
	// each of these.
	FetchProc  string
	DetailProc string
	InsertProc string
	UpdateProc string

	// Request gate.
	NonceSecret   string
	NonceLifetime time.Duration

	// TUI client.
	ServerURL string
}

// fileConfig is the YAML shape of PD_CONFIG.
type fileConfig struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	DB       struct {
		Host          string `yaml:"host"`
		Name          string `yaml:"name"`
		User          string `yaml:"user"`
		Pass          string `yaml:"pass"`
		EncryptionKey string `yaml:"encryption_key"`
	} `yaml:"db"`
	Procs struct {
		Fetch  string `yaml:"fetch"`
		Detail string `yaml:"detail"`
		Insert string `yaml:"insert"`
		Update string `yaml:"update"`
	} `yaml:"procs"`
	NonceSecret      string `yaml:"nonce_secret"`
	NonceLifetimeMin int    `yaml:"nonce_lifetime_minutes"`
	ServerURL        string `yaml:"server_url"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          8742,
		LogLevel:      "info",
		FetchProc:     "sessions_table_view",
		DetailProc:    "session_profile_view",
		InsertProc:    "add_session",
		UpdateProc:    "update_session",
		NonceLifetime: 24 * time.Hour,
		ServerURL:     "http://localhost:8742",
	}

	if path := os.Getenv("PD_CONFIG"); path != "" {
		if err := mergeFile(cfg, path); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}
	mergeEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	setIf(&cfg.LogLevel, fc.LogLevel)
	setIf(&cfg.DBHost, fc.DB.Host)
	setIf(&cfg.DBName, fc.DB.Name)
	setIf(&cfg.DBUser, fc.DB.User)
	setIf(&cfg.DBPass, fc.DB.Pass)
	setIf(&cfg.EncryptionKey, fc.DB.EncryptionKey)
	setIf(&cfg.FetchProc, fc.Procs.Fetch)
	setIf(&cfg.DetailProc, fc.Procs.Detail)
	setIf(&cfg.InsertProc, fc.Procs.Insert)
	setIf(&cfg.UpdateProc, fc.Procs.Update)
	setIf(&cfg.NonceSecret, fc.NonceSecret)
	setIf(&cfg.ServerURL, fc.ServerURL)
	if fc.NonceLifetimeMin > 0 {
		cfg.NonceLifetime = time.Duration(fc.NonceLifetimeMin) * time.Minute
	}
	return nil
}

func mergeEnv(cfg *Config) {
	cfg.Port = envInt("PD_PORT", cfg.Port)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	cfg.DBHost = envStr("PD_DB_HOST", cfg.DBHost)
	cfg.DBName = envStr("PD_DB_NAME", cfg.DBName)
	cfg.DBUser = envStr("PD_DB_USER", cfg.DBUser)
	cfg.DBPass = envStr("PD_DB_PASS", cfg.DBPass)
	cfg.EncryptionKey = envStr("PD_DB_ENCRYPTION_KEY", cfg.EncryptionKey)
	cfg.FetchProc = envStr("PD_FETCH_PROC", cfg.FetchProc)
	cfg.DetailProc = envStr("PD_DETAIL_PROC", cfg.DetailProc)
	cfg.InsertProc = envStr("PD_INSERT_PROC", cfg.InsertProc)
	cfg.UpdateProc = envStr("PD_UPDATE_PROC", cfg.UpdateProc)
	cfg.NonceSecret = envStr("PD_NONCE_SECRET", cfg.NonceSecret)
	cfg.ServerURL = envStr("PD_SERVER_URL", cfg.ServerURL)
	if m := envInt("PD_NONCE_LIFETIME_MINUTES", 0); m > 0 {
		cfg.NonceLifetime = time.Duration(m) * time.Minute
	}
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PD_PORT must be between 1 and 65535, got %d", c.Port)
	}
	for name, v := range map[string]string{
		"fetch":  c.FetchProc,
		"detail": c.DetailProc,
		"insert": c.InsertProc,
		"update": c.UpdateProc,
	} {
		if v == "" {
			return fmt.Errorf("%s procedure name must not be empty", name)
		}
	}
	if c.NonceSecret == "" {
		return fmt.Errorf("PD_NONCE_SECRET must not be empty")
	}
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
