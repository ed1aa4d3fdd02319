package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sodstar/mountain-pos/config"
	"github.com/Sodstar/mountain-pos/internal/app"
	"github.com/Sodstar/mountain-pos/internal/infrastructure/database/mongodb"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	config := config.CreateNewConfig()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if config.Environment == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := mongodb.ConnectToMongoDB(ctx, config.MongoDBConfig.ConnectionURI(), config.MongoDBConfig.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer db.Client().Disconnect(context.Background())

	application := app.App{
		DB:     db,
		Config: config,
	}

	go func() {
		<-ctx.Done()
		if err := application.StopServer(); err != nil {
			log.Error().Err(err).Msg("Failed to stop server cleanly")
		}
	}()

	if err := application.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Server stopped")
		stop()
	}
}
