package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/api"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/auth"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/cache"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/config"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/kafka"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/metrics"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/presence"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/repository"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/service"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/users"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/ws"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	if cfg.App.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	metrics.Init()

	mc, err := repository.NewMongoClient(cfg.Mongo.URI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo init")
	}
	defer func() { _ = mc.Disconnect(context.Background()) }()

	rdb := cache.NewRedis(cfg)
	defer rdb.Close()

	kprod := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)

	db := mc.Database(cfg.Mongo.DB)
	msgRepo := repository.NewMongoMessageRepository(db.Collection("messages"))
	userRepo := repository.NewMongoUserRepository(db.Collection("users"))

	jm := auth.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLMinutes)*time.Minute)
	registry := presence.NewRegistry()

	userSvc := users.NewService(userRepo, jm)
	msgSvc := service.NewMessageService(msgRepo, registry, kprod)
	convSvc := service.NewConversationService(msgRepo, userRepo)

	hub := ws.NewHub(registry, msgSvc, rdb)

	app := api.NewServer(jm, userSvc, msgSvc, convSvc, hub)

	go func() {
		if err := app.Listen(":" + cfg.App.PortString()); err != nil {
			log.Fatal().Err(err).Msg("server listen")
		}
	}()
	log.Info().Str("port", cfg.App.PortString()).Msg("devconnect backend started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = app.ShutdownWithContext(ctx)
	_ = kprod.Close()
	log.Info().Msg("devconnect backend stopped")
}
