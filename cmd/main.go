package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/atelier-ia/server/internal/api"
	"github.com/atelier-ia/server/internal/assetbank"
	"github.com/atelier-ia/server/internal/blueprint"
	"github.com/atelier-ia/server/internal/config"
	"github.com/atelier-ia/server/internal/db"
	"github.com/atelier-ia/server/internal/gateway"
)

func main() {
	// .env is optional; production relies on real environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	initLogger(cfg)

	database, err := db.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.Close()

	generator := blueprint.NewGenerator(assetbank.DefaultCatalog())
	gatewayClient := gateway.NewClient(cfg.OpenAIKey)

	server := api.NewServer(database, generator, gatewayClient, cfg.JWTSecret, cfg.RateLimitRPS)

	log.Info().Str("addr", cfg.ServerAddress).Msg("starting server")
	if err := http.ListenAndServe(cfg.ServerAddress, server); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// initLogger configures the global zerolog logger
func initLogger(cfg config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.AppEnv != "production" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		level = lvl
	}
	zerolog.SetGlobalLevel(level)
}
