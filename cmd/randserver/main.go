package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/xoshiro/internal/config"
	"github.com/lox/xoshiro/internal/server"
)

var CLI struct {
	Config   string `short:"c" default:"randserver.hcl" help:"Path to HCL configuration file"`
	Listen   string `short:"l" help:"Listen address (overrides config)"`
	LogLevel string `help:"Log level (overrides config)"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logger := log.New(os.Stderr)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		ctx.Exit(1)
	}
	if CLI.Listen != "" {
		cfg.Server.Listen = CLI.Listen
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid config", "error", err)
		ctx.Exit(1)
	}

	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	}

	srv := server.New(cfg, logger, nil)

	errs := make(chan error, 1)
	go func() { errs <- srv.Start() }()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Info("Shutting down", "signal", sig)
		if err := srv.Stop(); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	case err := <-errs:
		logger.Error("Server failed", "error", err)
		ctx.Exit(1)
	}
}
