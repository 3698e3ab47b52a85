package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/subosito/gotenv"

	"github.com/Spok95/wb-sales-bot/internal/bot"
	"github.com/Spok95/wb-sales-bot/internal/config"
	"github.com/Spok95/wb-sales-bot/internal/dialog"
	"github.com/Spok95/wb-sales-bot/internal/domain/shops"
	httpx "github.com/Spok95/wb-sales-bot/internal/infra/http"
	"github.com/Spok95/wb-sales-bot/internal/infra/logger"
	"github.com/Spok95/wb-sales-bot/internal/wb"
)

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error("bad timezone", "tz", cfg.App.Timezone, "err", err)
		return
	}

	// Битый файл реестра — это не «пустой реестр», а повод не стартовать.
	registry, err := shops.Load(shops.NewFileStore(cfg.Registry.Path))
	if err != nil {
		log.Error("registry load failed", "path", cfg.Registry.Path, "err", err)
		return
	}
	log.Info("registry loaded", "shops", len(registry.List()))

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}
	log.Info("telegram authorized", "account", api.Self.UserName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	wbClient := wb.NewClient(cfg.Wildberries.StatisticsURL)
	router := bot.NewRouter(registry, wbClient, log, loc)
	b := bot.New(api, log, router, dialog.NewStore())

	if err := b.Run(ctx, cfg.Telegram.UpdateTimeout); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("bot stopped", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
