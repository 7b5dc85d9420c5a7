package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// External APIs
	WeatherAPIKey  string `mapstructure:"WEATHER_API_KEY"`
	CricketAPIKey  string `mapstructure:"CRIC_API_KEY"`
	WeatherBaseURL string `mapstructure:"WEATHER_BASE_URL"`
	CricketBaseURL string `mapstructure:"CRICKET_BASE_URL"`

	// Upstream call budgets
	WeatherAPITimeout time.Duration `mapstructure:"WEATHER_API_TIMEOUT"`
	CricketAPITimeout time.Duration `mapstructure:"CRICKET_API_TIMEOUT"`
	WeatherRateLimit  int           `mapstructure:"WEATHER_RATE_LIMIT"` // requests per second
	CricketRateLimit  int           `mapstructure:"CRICKET_RATE_LIMIT"`

	// Cache TTLs
	PlayersCacheTTL time.Duration `mapstructure:"PLAYERS_CACHE_TTL"`
	MatchesCacheTTL time.Duration `mapstructure:"MATCHES_CACHE_TTL"`
	WeatherCacheTTL time.Duration `mapstructure:"WEATHER_CACHE_TTL"`

	// Roster file; searched after the built-in candidate paths.
	PlayersFile string `mapstructure:"PLAYERS_FILE"`

	// Feature flags
	EnableBackgroundRefresh bool `mapstructure:"ENABLE_BACKGROUND_REFRESH"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("WEATHER_API_KEY", "")
	viper.SetDefault("CRIC_API_KEY", "")
	viper.SetDefault("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather")
	viper.SetDefault("CRICKET_BASE_URL", "https://api.cricapi.com/v1/currentMatches")
	viper.SetDefault("WEATHER_API_TIMEOUT", "5s")
	viper.SetDefault("CRICKET_API_TIMEOUT", "10s")
	viper.SetDefault("WEATHER_RATE_LIMIT", 5)
	viper.SetDefault("CRICKET_RATE_LIMIT", 2)
	viper.SetDefault("PLAYERS_CACHE_TTL", "1h")
	viper.SetDefault("MATCHES_CACHE_TTL", "30s")
	viper.SetDefault("WEATHER_CACHE_TTL", "10m")
	viper.SetDefault("PLAYERS_FILE", "")
	viper.SetDefault("ENABLE_BACKGROUND_REFRESH", false)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
