package main

import (
	"habit-tracker/auth"
	"habit-tracker/confs"
	"habit-tracker/db"
	"habit-tracker/insight"
	"habit-tracker/logging"
	"habit-tracker/server"

	"github.com/rs/zerolog/log"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	// connect to database Postgres
	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token service")
	}

	// run server
	srv := server.NewServer(cfg, database, tokens, insight.New(cfg))
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
