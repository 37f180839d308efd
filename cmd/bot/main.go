package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"mention_bot/internal/bot"
	"mention_bot/internal/collector"
	"mention_bot/internal/config"
	"mention_bot/internal/mutelist"
	"mention_bot/internal/poller"
	"mention_bot/internal/scheduler"
	"mention_bot/internal/storage"
	"mention_bot/internal/vk"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	// The mute-list file is a startup precondition: the bot must not run
	// without it. An empty JSON object is a valid initial file.
	mutes, err := mutelist.Load(cfg.MutelistPath)
	if err != nil {
		log.Error("load mute-list (create the file with contents {} if it does not exist)",
			"path", cfg.MutelistPath, "error", err)
		os.Exit(1)
	}

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	b, err := bot.New(cfg.TelegramBotToken, mutes, cfg, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	vkClient := vk.New(http.DefaultClient, cfg.VKAPIURL, cfg.VKToken)
	poll := poller.New(vkClient, collector.New(mutes), store, cfg.SearchKeys, cfg.NotifiedRetention, log)
	sched := scheduler.New(poll, b, cfg.PollInterval, cfg.FirstRunWindow, log)
	b.SetScheduler(sched)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting bot", "keywords", cfg.SearchKeys, "interval", cfg.PollInterval)

	b.Run(ctx)

	sched.StopAll()
	log.Info("bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
