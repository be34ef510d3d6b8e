package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig
	Panel    PanelConfig
	Engine   EngineConfig
	Forecast ForecastConfig
	Matcher  MatcherConfig
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port      string
	StaticDir string
}

// PanelConfig points at the microdata panel export.
type PanelConfig struct {
	Path string
}

// EngineConfig holds the simulation engine endpoint settings.
type EngineConfig struct {
	URL      string
	Timeout  time.Duration
	RetryMax int
}

// ForecastConfig fixes the year pair the comparison is computed over.
type ForecastConfig struct {
	BaseYear    int
	CompareYear int
}

// MatcherConfig holds the household-matching knobs. Seed 0 means seed
// from the clock at startup.
type MatcherConfig struct {
	IncomeTolerance float64
	Seed            int64
}

// Load reads configuration from file and env. Env var overrides use
// prefix OBR_, e.g. OBR_ENGINE_URL. PORT and STATIC_FILES_DIR are also
// honored for deployment compatibility.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.static_dir", "../frontend/out")
	v.SetDefault("panel.path", "data/enhanced_frs_2022_23.csv")
	v.SetDefault("engine.url", "http://localhost:8001")
	v.SetDefault("engine.timeout", "30s")
	v.SetDefault("engine.retry_max", 0)
	v.SetDefault("forecast.base_year", 2025)
	v.SetDefault("forecast.compare_year", 2030)
	v.SetDefault("matcher.income_tolerance", 15000.0)
	v.SetDefault("matcher.seed", 0)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("OBR_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "read config file")
		}
	}

	v.SetEnvPrefix("OBR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Server: ServerConfig{
			Port:      v.GetString("server.port"),
			StaticDir: v.GetString("server.static_dir"),
		},
		Panel: PanelConfig{
			Path: v.GetString("panel.path"),
		},
		Engine: EngineConfig{
			URL:      v.GetString("engine.url"),
			Timeout:  v.GetDuration("engine.timeout"),
			RetryMax: v.GetInt("engine.retry_max"),
		},
		Forecast: ForecastConfig{
			BaseYear:    v.GetInt("forecast.base_year"),
			CompareYear: v.GetInt("forecast.compare_year"),
		},
		Matcher: MatcherConfig{
			IncomeTolerance: v.GetFloat64("matcher.income_tolerance"),
			Seed:            v.GetInt64("matcher.seed"),
		},
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if dir := os.Getenv("STATIC_FILES_DIR"); dir != "" {
		cfg.Server.StaticDir = dir
	}

	if cfg.Forecast.CompareYear <= cfg.Forecast.BaseYear {
		return Config{}, errors.Errorf("compare year %d must be after base year %d",
			cfg.Forecast.CompareYear, cfg.Forecast.BaseYear)
	}
	return cfg, nil
}
