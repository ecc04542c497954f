package config

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all service configuration, sourced from config.yaml and
// environment variables (environment wins).
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g. ":8080"
	DBPath        string `mapstructure:"DB_PATH"`
	OpenAIKey     string `mapstructure:"OPENAI_API_KEY"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	AppEnv        string `mapstructure:"APP_ENV"` // "development" | "production"
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	RateLimitRPS  int    `mapstructure:"RATE_LIMIT_RPS"`
}

// LoadConfig reads configuration from file and environment variables
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("DB_PATH", "atelier.db")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("RATE_LIMIT_RPS", 100)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Info().Msg("no config.yaml found, relying on environment variables")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.OpenAIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set, gateway categories will fail")
	}
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set, protected endpoints will reject all tokens")
	}

	return cfg, nil
}
