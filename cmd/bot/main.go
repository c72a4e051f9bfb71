package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"

	"homework_bot/internal/bot"
	"homework_bot/internal/config"
	"homework_bot/internal/logging"
	"homework_bot/internal/poller"
	"homework_bot/internal/practicum"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML settings file")
	flag.Parse()

	log := logging.New(os.Stderr, os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load(*configPath, log)
	if err != nil {
		logging.Critical(log).Err(err).Msg("Не удалось загрузить конфигурацию")
		os.Exit(1)
	}
	log = log.Level(logging.ParseLevel(cfg.LogLevel))

	b := bot.New(cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := poller.New(cfg, practicum.NewClient(cfg, log), b, log)

	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Error().Err(err).Msg("sd_notify failed")
	} else if ok {
		log.Debug().Msg("systemd notified")
	}

	err = p.Run(ctx)
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("poller stopped")
		os.Exit(1)
	}
	log.Debug().Msg("Бот остановлен")
}
