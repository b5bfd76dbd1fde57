package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"reviewhub/internal/app"
	"reviewhub/internal/config"
	"reviewhub/internal/database"
	"reviewhub/internal/mailer"
	"reviewhub/internal/repositories"
	"reviewhub/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, logger)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}

	if err := app.SeedAdmin(context.Background(), repositories.NewGORMUserRepository(db), cfg.AdminUsername, cfg.AdminEmail, logger); err != nil {
		logger.Error("failed to seed admin", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Mail ---
	var delivery mailer.Sender = mailer.LogSender{Logger: logger}
	if cfg.SMTPAddr != "" {
		delivery = mailer.SMTPSender{Addr: cfg.SMTPAddr, From: cfg.MailFrom}
	}

	sender := delivery
	if cfg.RabbitMQURL != "" {
		// Signup publishes to the queue and returns; the worker below delivers.
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.MailQueue}, logger)
		if err != nil {
			logger.Error("failed to initialize RabbitMQ client", slog.Any("error", err))
			os.Exit(1)
		}
		defer mqClient.Close()

		worker := mailer.NewWorker(delivery, logger)
		if err := mqClient.Consume(worker.Handle); err != nil {
			logger.Error("failed to start mail consumer", slog.Any("error", err))
			os.Exit(1)
		}
		sender = mailer.NewQueueSender(mqClient)
	}

	// --- HTTP ---
	server := app.New(app.Options{
		Config:    cfg,
		DB:        db,
		Mail:      sender,
		Logger:    logger,
		AccessLog: true,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", slog.String("addr", cfg.AppPort), slog.String("env", cfg.AppEnv))
		if err := server.Listen(cfg.AppPort); err != nil {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	logger.Info("shutting down server")

	if err := server.Shutdown(); err != nil {
		logger.Error("error during fiber shutdown", slog.Any("error", err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("server gracefully stopped")
}
