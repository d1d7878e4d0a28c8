package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sglre6355/sgrhook/internal/bot"
	_ "github.com/sglre6355/sgrhook/internal/modules/test"
)

// version is set at build time via ldflags:
// go build -ldflags "-X main.version=1.0.0" ./cmd/sgrhook
var version = "dev"

const usage = `Usage: sgrhook [command]

Commands:
  serve      (default) Serve interaction and event webhooks.
  register   Overwrite the application's commands with those of all modules.
`

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "serve" && cmd != "register" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Load configuration
	cfg, err := bot.LoadConfig()
	if err == nil && cmd == "serve" {
		err = cfg.RequirePublicKey()
	}
	if err != nil {
		// Logging is not configured yet
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Configure JSON logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	b := bot.NewBot(cfg)
	b.LoadModules()

	switch cmd {
	case "serve":
		err = serve(b)
	case "register":
		err = register(b)
	}

	if err != nil {
		os.Exit(1)
	}
}

func serve(b *bot.Bot) error {
	slog.Info("starting sgrhook", "version", version)

	b.Use(bot.LogDuration())

	if err := b.Start(); err != nil {
		slog.Error("failed to start bot", "error", err)
		return err
	}

	// Wait for shutdown signal or server failure
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case <-stop:
		slog.Info("received termination signal, shutting down")
	case serveErr = <-b.Errors():
		slog.Error("server stopped unexpectedly", "error", serveErr)
	}

	if err := b.Stop(); err != nil {
		slog.Error("failed to shutdown", "error", err)
		return err
	}

	slog.Info("completed bot shutdown")
	return serveErr
}

func register(b *bot.Bot) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.RegisterCommands(ctx); err != nil {
		slog.Error("failed to register commands", "error", err)
		return err
	}

	slog.Info("registered commands")
	return nil
}
