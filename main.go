package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/paramon-tech/tgfetch/internal/config"
	"github.com/paramon-tech/tgfetch/internal/download"
	"github.com/paramon-tech/tgfetch/internal/logging"
	"github.com/paramon-tech/tgfetch/internal/telegram"
	"github.com/paramon-tech/tgfetch/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprint(os.Stderr, ui.RenderError(err))
		return 2
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.RenderError(err))
		return 2
	}

	filter, err := download.NewPatternFilter(cfg.FilePattern)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.RenderError(err))
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tg := telegram.NewClient(cfg, ui.Prompt{}, log)
	session := download.NewSession(tg, download.Options{
		Dir:          cfg.DownloadDir,
		Concurrency:  cfg.Concurrency,
		MessageLimit: cfg.MessageLimit,
		Filter:       filter,
	}, log)

	summary, err := session.Run(ctx, cfg.ChatName)
	if errors.Is(err, download.ErrInterrupted) {
		fmt.Print(ui.RenderSummary(cfg.ChatName, summary))
	}
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		fmt.Fprint(os.Stderr, ui.RenderError(err))
		return 1
	}

	fmt.Print(ui.RenderSummary(cfg.ChatName, summary))
	return 0
}
