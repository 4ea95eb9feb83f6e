package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv    string `yaml:"app_env"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	HTTPPort int `yaml:"http_port"`

	// Base URL of the storefront backend, e.g. https://shop.example.com/api.
	APIBaseURL  string        `yaml:"api_base_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	CartDBPath string `yaml:"cart_db_path"`

	PollInterval    time.Duration `yaml:"poll_interval"`
	PollMaxAttempts int           `yaml:"poll_max_attempts"`
	RedirectSeconds int           `yaml:"redirect_seconds"`
}

func Load() Config {
	cfg := Config{
		AppEnv:          getEnv("APP_ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:8080/api"),
		HTTPTimeout:     getEnvDuration("HTTP_TIMEOUT", 15*time.Second),
		CartDBPath:      getEnv("CART_DB_PATH", "cart.db"),
		PollInterval:    getEnvDuration("POLL_INTERVAL", 3*time.Second),
		PollMaxAttempts: getEnvInt("POLL_MAX_ATTEMPTS", 60),
		RedirectSeconds: getEnvInt("REDIRECT_SECONDS", 5),
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		cfg.applyFile(path)
	}

	return cfg
}

// applyFile overlays values from a YAML file on top of the env-derived
// config. A missing or unreadable file is not an error so the binaries
// run without any config file present.
func (c *Config) applyFile(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}

	overlay := *c
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return
	}
	*c = overlay
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}
