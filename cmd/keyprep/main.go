package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"keyprep/internal/app"
	"keyprep/internal/config"
	"keyprep/internal/infrastructure"
	"keyprep/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("keyprep failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("keyprep", flag.ContinueOnError)
	configFile := fs.String("config", "", "path to YAML config (defaults to keyprep.yaml or config.yaml when present)")
	stagesFlag := fs.String("stages", "all", "all | comma-separated list of correlation,conditions,practice,responses")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}

	stages, err := app.ParseStages(*stagesFlag)
	if err != nil {
		return err
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	paths, err := cfg.GetPaths()
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}
	if cfg.Logging.FilePath != "" && !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = filepath.Join(paths.BaseDir, cfg.Logging.FilePath)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	tracing, err := infrastructure.InitializeTracing(cfg.Tracing, stdout, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	a, err := app.New(cfg, logger, tracing)
	if err != nil {
		return err
	}

	ctx = infrastructure.EnsureRunID(ctx)
	logger.InfoContext(ctx, "Starting keyprep",
		slog.Any("stages", stages),
		slog.String("config", *configFile))

	result, err := a.Run(ctx, stages...)
	if err != nil {
		logger.ErrorContext(ctx, "Run failed", slog.String("error", err.Error()))
		return err
	}

	for _, sr := range result.Stages {
		for _, artifact := range sr.Artifacts {
			fmt.Fprintf(stdout, "%s\t%s\n", sr.Stage, artifact)
		}
	}
	return nil
}
