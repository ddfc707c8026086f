package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/leverage-calc/internal/calculator"
	"github.com/rovshanmuradov/leverage-calc/internal/config"
	"github.com/rovshanmuradov/leverage-calc/internal/export"
	"github.com/rovshanmuradov/leverage-calc/internal/format"
	"github.com/rovshanmuradov/leverage-calc/internal/logger"
	"github.com/rovshanmuradov/leverage-calc/internal/metrics"
	"github.com/rovshanmuradov/leverage-calc/internal/ui/screen"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The alternate screen owns the terminal, so logs go to a file.
	fileCfg := logger.DefaultFileConfig(cfg.LogFile)
	fileCfg.Debug = cfg.DebugLogging || *debug
	appLogger, closeLog := logger.NewFileLogger(fileCfg)
	defer func() {
		_ = closeLog()
	}()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("TUI application failed", zap.Error(err))
		_ = closeLog()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger *zap.Logger) error {
	formatter, err := format.New(cfg.Locale)
	if err != nil {
		return err
	}

	registry := metrics.NewRegistry()
	service := calculator.NewService(&calculator.ServiceConfig{
		Logger:  appLogger,
		Metrics: metrics.NewCollector(registry),
		TopN:    cfg.TopN,
	})

	deps := screen.Deps{
		Service:   service,
		Exporter:  export.NewResultExporter(appLogger),
		Formatter: formatter,
		Defaults:  cfg.Defaults,
		ExportDir: cfg.ExportDir,
		Logger:    appLogger,
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(rootCtx)

	appLogger.Info("Starting leverage calculator TUI",
		zap.String("locale", formatter.Locale()),
		zap.Int("top_n", service.TopN()))

	program := tea.NewProgram(
		NewAppModel(deps),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	g.Go(func() error {
		// Leaving the program ends the other goroutines.
		defer stop()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run program: %w", err)
		}
		return nil
	})

	if cfg.MetricsAddr != "" {
		srv := metrics.NewServer(cfg.MetricsAddr, registry)
		g.Go(func() error {
			return metrics.Serve(ctx, srv, appLogger)
		})
	}

	err = g.Wait()
	appLogger.Info("Shutting down TUI application")
	return err
}
