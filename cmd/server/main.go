// Package main is the entry point for the metrovoice server.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jdelgado/metrovoice/internal/alerts"
	"github.com/jdelgado/metrovoice/internal/api"
	"github.com/jdelgado/metrovoice/internal/config"
	"github.com/jdelgado/metrovoice/internal/timetable"
	"github.com/jdelgado/metrovoice/internal/wmata"
)

func main() {
	// Missing .env is fine; real deployments configure the environment
	// directly.
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	client := wmata.NewClient(cfg.WMATABaseURL, cfg.WMATAAPIKey, cfg.HTTPTimeout)
	aggregator := timetable.NewAggregator(client, client)
	alertSvc := alerts.NewService(cfg.AlertsFeedURL, cfg.HTTPTimeout, cfg.AlertsTTL)
	defer alertSvc.Close()

	router := api.NewRouter(cfg, aggregator, alertSvc, client)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Msg("metrovoice server starting")

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
