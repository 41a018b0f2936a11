package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/kalilfin/internal/app"
	"github.com/Alias1177/kalilfin/internal/bot"
	"github.com/Alias1177/kalilfin/internal/config"
	"github.com/Alias1177/kalilfin/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	app.SetupLogging(cfg.LogLevel)
	log.Info().Msg("Starting Kalilfin dashboard")
	app.PrintConfig(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := app.NewService(cfg)

	srv := server.New(server.Config{
		Port:           cfg.Port,
		Log:            log.Logger,
		Dashboard:      svc,
		RequestTimeout: cfg.Timeout(),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// the bot shares the web server's portfolio
	if cfg.TelegramBotToken != "" {
		b, err := bot.New(cfg.TelegramBotToken, svc, log.Logger)
		if err != nil {
			log.Error().Err(err).Msg("Telegram bot disabled")
		} else {
			go b.Run(ctx)
		}
	}

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}
