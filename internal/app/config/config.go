package config

import (
	"strings"
	"time"

	common "github.com/usa-trezo/en-us/internal/app/common/exception_handler"
	"github.com/usa-trezo/en-us/internal/app/constants"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr           string        `mapstructure:"HTTP_ADDR"`
	MetricsAddr        string        `mapstructure:"METRICS_ADDR"`
	MarketsURL         string        `mapstructure:"MARKETS_URL"`
	RefreshInterval    time.Duration `mapstructure:"REFRESH_INTERVAL"`
	FetchTimeout       time.Duration `mapstructure:"FETCH_TIMEOUT"`
	BroadcastInterval  time.Duration `mapstructure:"BROADCAST_INTERVAL"`
	PriceLocale        string        `mapstructure:"PRICE_LOCALE"`
	StrictOrdering     bool          `mapstructure:"STRICT_ORDERING"`
	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int           `mapstructure:"REDIS_DB"`
	RedisTTL           time.Duration `mapstructure:"REDIS_TTL"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// CacheEnabled reports whether a shared Redis cache was configured.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func Load() (Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads an optional .env file from dir, then the environment.
func LoadFrom(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("MARKETS_URL", constants.DefaultMarketsURL)
	v.SetDefault("REFRESH_INTERVAL", constants.DefaultRefreshInterval.String())
	v.SetDefault("FETCH_TIMEOUT", "10s")
	v.SetDefault("BROADCAST_INTERVAL", "1s")
	v.SetDefault("PRICE_LOCALE", "en-US")
	v.SetDefault("STRICT_ORDERING", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", "25s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	if err := v.ReadInConfig(); err != nil {
		// Fallback to env if .env not found
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, common.NewCustomError(common.ErrConfigLoad, "Failed to read .env", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, common.NewCustomError(common.ErrConfigLoad, "Failed to unmarshal config", err)
	}
	cfg.CORSAllowedOrigins = splitOrigins(cfg.CORSAllowedOrigins)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.MarketsURL == "":
		return common.NewCustomError(common.ErrConfigLoad, "MARKETS_URL is required", nil)
	case c.RefreshInterval <= 0:
		return common.NewCustomError(common.ErrConfigLoad, "REFRESH_INTERVAL must be positive", nil)
	case c.FetchTimeout <= 0:
		return common.NewCustomError(common.ErrConfigLoad, "FETCH_TIMEOUT must be positive", nil)
	case c.BroadcastInterval <= 0:
		return common.NewCustomError(common.ErrConfigLoad, "BROADCAST_INTERVAL must be positive", nil)
	case c.CacheEnabled() && c.RedisTTL <= 0:
		return common.NewCustomError(common.ErrConfigLoad, "REDIS_TTL must be positive when REDIS_ADDR is set", nil)
	}
	return nil
}

// splitOrigins accepts both "a,b" from the environment and an already split list.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
