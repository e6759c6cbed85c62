// Package main is the entry point for the Lantern game.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/lantern/internal/config"
	"github.com/Faultbox/lantern/internal/game"
	"github.com/Faultbox/lantern/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileConfig(cfg.Logging), true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Lantern ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	runErr := g.Run()
	g.Close()
	if runErr != nil {
		logger.Error("game error", zap.Error(runErr))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("game closed normally")
}

func fileConfig(l config.LoggingConfig) logger.FileConfig {
	if l.LogFile == "" {
		return logger.FileConfig{}
	}
	return logger.FileConfig{
		Path:       l.LogFile,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}
