package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const defaultConfigFile = "config.toml"

type Env struct {
	AppAddr string `toml:"app_addr"`
	GinMode string `toml:"gin_mode"`
	LogMode string `toml:"log_mode"`

	GeminiAPIKey     string        `toml:"gemini_api_key"`
	GeminiModel      string        `toml:"gemini_model"`
	ProviderTimeout  time.Duration `toml:"-"`
	ProviderAttempts int           `toml:"provider_attempts"`
	DefaultRegion    string        `toml:"default_region"`

	RouteCacheSize   int           `toml:"route_cache_size"`
	RouteCacheTTL    time.Duration `toml:"-"`
	SessionCacheSize int           `toml:"session_cache_size"`

	HistoryBackend string `toml:"history_backend"`
	HistoryDir     string `toml:"history_dir"`
	MySQLDSN       string `toml:"mysql_dsn"`

	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`

	// duration strings as they appear in the TOML file
	ProviderTimeoutRaw string `toml:"provider_timeout"`
	RouteCacheTTLRaw   string `toml:"route_cache_ttl"`
}

func defaults() Env {
	return Env{
		AppAddr:          ":8080",
		LogMode:          "production",
		GeminiModel:      "gemini-2.5-flash",
		ProviderTimeout:  30 * time.Second,
		ProviderAttempts: 2,
		DefaultRegion:    "Lagos",
		RouteCacheSize:   256,
		RouteCacheTTL:    30 * time.Minute,
		SessionCacheSize: 1024,
		HistoryBackend:   "file",
		HistoryDir:       "data",
	}
}

// LoadEnv reads .env (optional), then the TOML file named by ALONG_CONFIG
// (default config.toml, optional), then environment variables. Later sources win.
func LoadEnv() (Env, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Env{}, fmt.Errorf("load .env: %w", err)
	}

	env := defaults()

	path := strings.TrimSpace(os.Getenv("ALONG_CONFIG"))
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if err := loadFile(path, &env); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
	}

	if err := applyEnv(&env); err != nil {
		return Env{}, err
	}
	return env, nil
}

func loadFile(path string, env *Env) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if _, err := toml.DecodeFile(path, env); err != nil {
		return fmt.Errorf("error decoding config file %s: %w", path, err)
	}
	if env.ProviderTimeoutRaw != "" {
		d, err := time.ParseDuration(env.ProviderTimeoutRaw)
		if err != nil {
			return fmt.Errorf("provider_timeout: %w", err)
		}
		env.ProviderTimeout = d
	}
	if env.RouteCacheTTLRaw != "" {
		d, err := time.ParseDuration(env.RouteCacheTTLRaw)
		if err != nil {
			return fmt.Errorf("route_cache_ttl: %w", err)
		}
		env.RouteCacheTTL = d
	}
	return nil
}

func applyEnv(env *Env) error {
	setString(&env.AppAddr, "APP_ADDR")
	setString(&env.GinMode, "GIN_MODE")
	setString(&env.LogMode, "LOG_MODE")
	setString(&env.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&env.GeminiAPIKey, "API_KEY")
	setString(&env.GeminiModel, "GEMINI_MODEL")
	setString(&env.DefaultRegion, "DEFAULT_REGION")
	setString(&env.HistoryBackend, "HISTORY_BACKEND")
	setString(&env.HistoryDir, "HISTORY_DIR")
	setString(&env.MySQLDSN, "MYSQL_DSN")

	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		env.CORSAllowedOrigins = env.CORSAllowedOrigins[:0]
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
			}
		}
	}

	for _, f := range []struct {
		key string
		dst *int
	}{
		{"PROVIDER_ATTEMPTS", &env.ProviderAttempts},
		{"ROUTE_CACHE_SIZE", &env.RouteCacheSize},
		{"SESSION_CACHE_SIZE", &env.SessionCacheSize},
	} {
		if err := setInt(f.dst, f.key); err != nil {
			return err
		}
	}
	if err := setDuration(&env.ProviderTimeout, "PROVIDER_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&env.RouteCacheTTL, "ROUTE_CACHE_TTL"); err != nil {
		return err
	}

	env.HistoryBackend = strings.ToLower(env.HistoryBackend)
	switch env.HistoryBackend {
	case "file", "mysql", "memory":
	default:
		return fmt.Errorf("HISTORY_BACKEND must be one of file, mysql, memory; got %q", env.HistoryBackend)
	}
	if env.HistoryBackend == "mysql" && env.MySQLDSN == "" {
		return fmt.Errorf("MYSQL_DSN is required when HISTORY_BACKEND=mysql")
	}
	if env.ProviderAttempts < 1 {
		env.ProviderAttempts = 1
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
