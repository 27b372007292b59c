package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the settings file
const (
	EnvRentCastAPIKey = "PROPCALC_RENTCAST_API_KEY"
	EnvRapidAPIKey    = "PROPCALC_RAPIDAPI_KEY"
	EnvRedisAddr      = "PROPCALC_REDIS_ADDR"
	EnvLogLevel       = "PROPCALC_LOG_LEVEL"
	EnvCacheBackend   = "PROPCALC_CACHE_BACKEND"
	EnvServerPort     = "PROPCALC_PORT"
)

// Cache backends
const (
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheNone   = "none"
)

// Settings holds per-user preferences and provider credentials
type Settings struct {
	General   GeneralSettings  `toml:"general"`
	Providers ProviderSettings `toml:"providers"`
	Cache     CacheSettings    `toml:"cache"`
	Server    ServerSettings   `toml:"server"`
}

// GeneralSettings holds logging preferences
type GeneralSettings struct {
	LogLevel  string `toml:"log_level"`
	PrettyLog bool   `toml:"pretty_log"`
}

// ProviderSettings holds property data provider credentials and endpoints
type ProviderSettings struct {
	RentCastAPIKey  string `toml:"rentcast_api_key,omitempty"`
	RentCastBaseURL string `toml:"rentcast_base_url,omitempty"`
	RapidAPIKey     string `toml:"rapidapi_key,omitempty"`
	RapidAPIHost    string `toml:"rapidapi_host,omitempty"`
	ZillowBaseURL   string `toml:"zillow_base_url,omitempty"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

// CacheSettings selects and configures the lookup cache
type CacheSettings struct {
	Backend    string `toml:"backend"`
	Path       string `toml:"path,omitempty"`
	RedisAddr  string `toml:"redis_addr,omitempty"`
	RedisDB    int    `toml:"redis_db,omitempty"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

// ServerSettings configures the HTTP API
type ServerSettings struct {
	Port int `toml:"port"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			LogLevel:  "info",
			PrettyLog: true,
		},
		Providers: ProviderSettings{
			RentCastBaseURL: "https://api.rentcast.io/v1",
			RapidAPIHost:    "zillow-zestimate.p.rapidapi.com",
			ZillowBaseURL:   "https://www.zillow.com",
			TimeoutSeconds:  15,
		},
		Cache: CacheSettings{
			Backend:    CacheSQLite,
			Path:       filepath.Join(SettingsDir(), "cache.db"),
			RedisAddr:  "localhost:6379",
			TTLMinutes: 24 * 60,
		},
		Server: ServerSettings{
			Port: 8080,
		},
	}
}

// SettingsDir returns the XDG-compliant settings directory
func SettingsDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "propcalc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "propcalc")
}

// SettingsPath returns the full path to the settings file
func SettingsPath() string {
	return filepath.Join(SettingsDir(), "config.toml")
}

// LoadSettings reads the settings file, returning defaults if it doesn't
// exist, then applies .env and environment overrides.
func LoadSettings() (Settings, error) {
	return LoadSettingsFrom(SettingsPath())
}

// LoadSettingsFrom is LoadSettings for an explicit path
func LoadSettingsFrom(path string) (Settings, error) {
	cfg := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing settings: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading settings: %w", err)
	}

	// .env is optional
	_ = godotenv.Load()
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveSettings writes the settings to the default path
func SaveSettings(cfg Settings) error {
	return SaveSettingsTo(SettingsPath(), cfg)
}

// SaveSettingsTo writes the settings to path, creating its directory
func SaveSettingsTo(path string, cfg Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// SettingsExist reports whether a settings file exists on disk
func SettingsExist() bool {
	_, err := os.Stat(SettingsPath())
	return err == nil
}

// Validate checks settings that would otherwise fail later at runtime
func (s Settings) Validate() error {
	switch s.Cache.Backend {
	case CacheSQLite, CacheRedis, CacheMemory, CacheNone:
	default:
		return fmt.Errorf("unknown cache backend %q", s.Cache.Backend)
	}
	if s.Cache.Backend == CacheSQLite && s.Cache.Path == "" {
		return fmt.Errorf("cache.path is required for the sqlite backend")
	}
	if s.Cache.Backend == CacheRedis && s.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required for the redis backend")
	}
	if s.Cache.TTLMinutes < 0 {
		return fmt.Errorf("cache.ttl_minutes cannot be negative")
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", s.Server.Port)
	}
	return nil
}

// CacheTTL returns the cache lifetime as a duration
func (s Settings) CacheTTL() time.Duration {
	return time.Duration(s.Cache.TTLMinutes) * time.Minute
}

// ProviderTimeout returns the HTTP timeout for provider requests
func (s Settings) ProviderTimeout() time.Duration {
	if s.Providers.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.Providers.TimeoutSeconds) * time.Second
}

func applyEnv(cfg *Settings) {
	cfg.Providers.RentCastAPIKey = getEnv(EnvRentCastAPIKey, cfg.Providers.RentCastAPIKey)
	cfg.Providers.RapidAPIKey = getEnv(EnvRapidAPIKey, cfg.Providers.RapidAPIKey)
	cfg.Cache.RedisAddr = getEnv(EnvRedisAddr, cfg.Cache.RedisAddr)
	cfg.Cache.Backend = getEnv(EnvCacheBackend, cfg.Cache.Backend)
	cfg.General.LogLevel = getEnv(EnvLogLevel, cfg.General.LogLevel)
	cfg.Server.Port = getEnvAsInt(EnvServerPort, cfg.Server.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
