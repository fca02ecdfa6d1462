// CH-PMS: Capital Hospital Patient Management System
//
// A single-operator patient, staffing, and billing records system with a
// terminal interface and an environment-driven batch mode.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/chpms/chpms/internal/auth"
	"github.com/chpms/chpms/internal/batch"
	"github.com/chpms/chpms/internal/config"
	"github.com/chpms/chpms/internal/hospital"
	"github.com/chpms/chpms/internal/store"
	"github.com/chpms/chpms/internal/tui"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version and exit")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("CH-PMS version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		slog.Info("received shutdown signal", "signal", sig)
		cancel()

		// Force exit after timeout
		time.AfterFunc(10*time.Second, func() {
			slog.Error("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	if err := run(ctx, *configPath, *debugMode); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, debugMode bool) error {
	cfg, cfgPath, err := config.Load(configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case config.LogLevelDebug:
			logLevel = slog.LevelDebug
		case config.LogLevelWarn:
			logLevel = slog.LevelWarn
		case config.LogLevelError:
			logLevel = slog.LevelError
		}
	}

	var logHandler slog.Handler
	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logFile.Close()

		logHandler = slog.NewJSONHandler(logFile, &slog.HandlerOptions{
			Level: logLevel,
		})
	} else {
		logHandler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		})
	}

	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	slog.Info("CH-PMS starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cfgPath,
	)

	// The environment surface can override storage paths and select batch
	// mode. Defaults come from the config file.
	env, err := config.LoadEnv(cfg.Storage)
	if err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	if env.Mode == config.ModeBatch {
		slog.Info("running in batch mode", "operation", env.Operation)
		if err := batch.Run(logger, cfg, env); err != nil {
			return fmt.Errorf("batch run: %w", err)
		}
		slog.Info("batch run complete")
		return nil
	}

	dataPath := filepath.Join(env.OutputDir, env.DataFile)
	sys, err := store.LoadOrInit(dataPath)
	if err != nil {
		return fmt.Errorf("loading records: %w", err)
	}
	slog.Info("records loaded",
		"path", dataPath,
		"patients", len(sys.Patients()),
		"departments", len(sys.Departments()),
	)

	gate := auth.NewGate(cfg.Auth.Username, cfg.Auth.Password)

	save := func(s *hospital.System) error {
		return store.Save(dataPath, s)
	}

	tui.Version = Version
	tui.BuildTime = BuildTime

	slog.Info("starting TUI", "hospital", cfg.Hospital.Name)

	if err := tui.Run(ctx, sys, cfg, gate, save, logger); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	slog.Info("CH-PMS shutdown complete")
	return nil
}
